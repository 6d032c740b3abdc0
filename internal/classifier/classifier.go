// Package classifier assigns a category, urgency, and one-sentence summary to
// inquiry text using a language model. Backends are selected by configuration
// and sit behind the Classifier interface so callers and tests never depend on
// a particular inference service.
package classifier

import (
	"context"
	"fmt"
	"strings"
)

// Category is the closed set of inquiry categories.
type Category string

// Valid categories. NotApplicable is a member of the set, not an absence.
const (
	CategoryTechnical     Category = "Technical"
	CategoryBilling       Category = "Billing"
	CategorySales         Category = "Sales"
	CategoryGeneral       Category = "General"
	CategoryNotApplicable Category = "N/A"
)

// Categories lists every valid Category in prompt order.
var Categories = []Category{
	CategoryTechnical,
	CategoryBilling,
	CategorySales,
	CategoryGeneral,
	CategoryNotApplicable,
}

// Urgency is the closed set of inquiry urgency levels.
type Urgency string

// Valid urgency levels.
const (
	UrgencyHigh          Urgency = "High"
	UrgencyMedium        Urgency = "Medium"
	UrgencyLow           Urgency = "Low"
	UrgencyNotApplicable Urgency = "N/A"
)

// Urgencies lists every valid Urgency in prompt order.
var Urgencies = []Urgency{
	UrgencyHigh,
	UrgencyMedium,
	UrgencyLow,
	UrgencyNotApplicable,
}

// ParseCategory matches s against the category set, ignoring case and
// surrounding whitespace, and returns the canonical value.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("category %q not in %v", s, Categories)
}

// ParseUrgency matches s against the urgency set, ignoring case and
// surrounding whitespace, and returns the canonical value.
func ParseUrgency(s string) (Urgency, error) {
	s = strings.TrimSpace(s)
	for _, u := range Urgencies {
		if strings.EqualFold(s, string(u)) {
			return u, nil
		}
	}
	return "", fmt.Errorf("urgency %q not in %v", s, Urgencies)
}

// Result is a validated classification.
// Raw holds the unparsed model output when one was produced.
type Result struct {
	Category Category `json:"category"`
	Urgency  Urgency  `json:"urgency"`
	Summary  string   `json:"summary"`
	Raw      string   `json:"-"`
}

// Classifier classifies inquiry text. Implementations return either a Result
// whose fields are members of the closed sets or an *Error.
type Classifier interface {
	Classify(ctx context.Context, text string) (Result, error)
	// Name identifies the backend and model for logs and transcripts.
	Name() string
}
