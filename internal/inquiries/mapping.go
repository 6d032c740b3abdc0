package inquiries

import (
	"net/url"

	"github.com/JaimeStill/intake/pkg/query"
	"github.com/JaimeStill/intake/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "inquiries", "i").
	Project("id", "ID").
	Project("name", "Name").
	Project("email", "Email").
	Project("inquiry_text", "InquiryText").
	Project("category", "Category").
	Project("urgency", "Urgency").
	Project("summary", "Summary").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// idTiebreak keeps ordering total when created_at values collide.
var idTiebreak = query.SortField{
	Field:      "ID",
	Descending: true,
}

// Filters contains optional filtering criteria for inquiry queries.
// Nil fields are ignored. Name matches any part of the submitter's name,
// case-insensitively; the other fields match exactly.
type Filters struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Urgency  *string `json:"urgency,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Name", f.Name).
		WhereEquals("Category", f.Category).
		WhereEquals("Urgency", f.Urgency).
		WhereEquals("Email", f.Email)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}

	if u := values.Get("urgency"); u != "" {
		f.Urgency = &u
	}

	if e := values.Get("email"); e != "" {
		f.Email = &e
	}

	return f
}

func scanInquiry(s repository.Scanner) (Inquiry, error) {
	var i Inquiry
	err := s.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		&i.InquiryText,
		&i.Category,
		&i.Urgency,
		&i.Summary,
		&i.CreatedAt,
	)
	return i, err
}
