// Package inquiries implements the inquiry intake domain: submission with
// model classification, durable recording, email notification, and manager
// replies.
package inquiries

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/JaimeStill/intake/internal/classifier"
)

// Inquiry is a stored customer inquiry with its classification.
// Records are never mutated after insert.
type Inquiry struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	InquiryText string              `json:"inquiry"`
	Category    classifier.Category `json:"category"`
	Urgency     classifier.Urgency  `json:"urgency"`
	Summary     string              `json:"summary"`
	CreatedAt   time.Time           `json:"created_at"`
}

// SubmitCommand carries a new inquiry from a customer.
type SubmitCommand struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Inquiry string `json:"inquiry"`
}

// Validate trims the fields and rejects blank values and unparsable addresses.
func (c *SubmitCommand) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Inquiry = strings.TrimSpace(c.Inquiry)

	switch {
	case c.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInquiry)
	case c.Email == "":
		return fmt.Errorf("%w: email is required", ErrInvalidInquiry)
	case c.Inquiry == "":
		return fmt.Errorf("%w: inquiry is required", ErrInvalidInquiry)
	}

	addr, err := mail.ParseAddress(c.Email)
	if err != nil {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInquiry)
	}
	c.Email = addr.Address

	return nil
}

// SubmitResult is returned to the customer after a successful submission.
type SubmitResult struct {
	Inquiry        Inquiry           `json:"inquiry"`
	Classification classifier.Result `json:"classification"`
}

// RespondCommand carries a manager's reply to an inquiry.
type RespondCommand struct {
	Response string `json:"response"`
}

// Validate rejects a blank reply.
func (c *RespondCommand) Validate() error {
	if strings.TrimSpace(c.Response) == "" {
		return fmt.Errorf("%w: response is required", ErrInvalidInquiry)
	}
	return nil
}

// RespondResult reports the delivery id of the reply email.
type RespondResult struct {
	InquiryID int64  `json:"inquiry_id"`
	MessageID string `json:"message_id"`
}
