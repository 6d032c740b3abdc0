// Package notifier sends templated transactional email to inquiry submitters.
package notifier

import (
	"context"
	"strconv"
)

// Kind selects the email template.
type Kind string

// Message kinds.
const (
	KindConfirmation Kind = "confirmation"
	KindResponse     Kind = "response"
)

// TemplateData is the variable mapping bound into a template.
type TemplateData map[string]string

// ConfirmationData binds the confirmation template variables.
func ConfirmationData(name string, inquiryID int64, inquiryText string) TemplateData {
	return TemplateData{
		"name":         name,
		"inquiry_id":   strconv.FormatInt(inquiryID, 10),
		"inquiry_text": inquiryText,
	}
}

// ResponseData binds the response template variables.
func ResponseData(inquiryID int64, responseText, inquiryText string) TemplateData {
	return TemplateData{
		"inquiry_id":    strconv.FormatInt(inquiryID, 10),
		"response_text": responseText,
		"inquiry_text":  inquiryText,
	}
}

// Notifier delivers one templated message and returns the delivery id
// assigned by the email service.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, to string, data TemplateData) (string, error)
}
