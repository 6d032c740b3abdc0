package classifier

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/intake/pkg/formatting"
)

const responseSchemaName = "inquiry_classification"

// response is the JSON shape requested from the model.
type response struct {
	Category string `json:"category" jsonschema:"enum=Technical,enum=Billing,enum=Sales,enum=General,enum=N/A"`
	Urgency  string `json:"urgency" jsonschema:"enum=High,enum=Medium,enum=Low,enum=N/A"`
	Summary  string `json:"summary" jsonschema:"description=One sentence summary of the inquiry"`
}

func systemPrompt() string {
	var sb strings.Builder

	sb.WriteString("You are an expert customer service assistant. ")
	sb.WriteString("Classify the customer inquiry and respond with a single JSON object ")
	sb.WriteString(`with the keys "category", "urgency", and "summary". Output nothing else.`)
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "category must be one of: %s\n", joinValues(Categories))
	fmt.Fprintf(&sb, "urgency must be one of: %s\n", joinValues(Urgencies))
	sb.WriteString("summary must be one sentence.\n\n")

	sb.WriteString("Guidelines:\n")
	sb.WriteString("- Bugs, errors, crashes, or anything not working: Technical.\n")
	sb.WriteString("- Invoices, payments, charges, refunds, or subscriptions: Billing.\n")
	sb.WriteString("- Pricing, plans, discounts, demos, or buying: Sales.\n")
	sb.WriteString("- Anything else: General.\n")
	sb.WriteString("- Do not default to Technical or High; judge urgency by business impact.\n")

	return sb.String()
}

func userPrompt(text string) string {
	return "Customer inquiry:\n\n" + text
}

// parseResponse validates model output against the closed sets.
func parseResponse(raw string) (Result, error) {
	r, err := formatting.Parse[response](raw)
	if err != nil {
		return Result{}, &Error{Kind: KindInvalidResponse, Err: err, Raw: raw}
	}

	category, err := ParseCategory(r.Category)
	if err != nil {
		return Result{}, &Error{Kind: KindInvalidResponse, Err: err, Raw: raw}
	}

	urgency, err := ParseUrgency(r.Urgency)
	if err != nil {
		return Result{}, &Error{Kind: KindInvalidResponse, Err: err, Raw: raw}
	}

	summary := strings.TrimSpace(r.Summary)
	if summary == "" {
		return Result{}, &Error{Kind: KindInvalidResponse, Err: fmt.Errorf("empty summary"), Raw: raw}
	}

	return Result{
		Category: category,
		Urgency:  urgency,
		Summary:  summary,
		Raw:      raw,
	}, nil
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
