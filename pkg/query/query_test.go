package query_test

import (
	"testing"

	"github.com/JaimeStill/intake/pkg/query"
)

const selectAll = "SELECT i.id, i.email, i.category, i.created_at FROM public.inquiries i"

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "inquiries", "i").
		Project("id", "id").
		Project("email", "email").
		Project("category", "category").
		Project("created_at", "created_at")
}

func ptr(s string) *string { return &s }

func TestProjectionMapFrom(t *testing.T) {
	if got := testProjection().From(); got != "public.inquiries i" {
		t.Errorf("From() = %q, want %q", got, "public.inquiries i")
	}
}

func TestProjectionMapColumns(t *testing.T) {
	want := "i.id, i.email, i.category, i.created_at"
	if got := testProjection().Columns(); got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestProjectionMapLookup(t *testing.T) {
	p := testProjection()

	if col, ok := p.Lookup("email"); !ok || col != "i.email" {
		t.Errorf("Lookup(email) = %q, %v; want i.email, true", col, ok)
	}
	if _, ok := p.Lookup("password"); ok {
		t.Error("Lookup(password) should not be mapped")
	}
	if got := p.Column("unknown"); got != "unknown" {
		t.Errorf("Column(unknown) = %q, want passthrough", got)
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty string", "", nil},
		{"single ascending", "email", []query.SortField{{Field: "email"}}},
		{"single descending", "-created_at", []query.SortField{{Field: "created_at", Descending: true}}},
		{
			"multiple mixed with spaces",
			" email , -created_at ",
			[]query.SortField{{Field: "email"}, {Field: "created_at", Descending: true}},
		},
		{
			"empty parts skipped",
			"email,,category",
			[]query.SortField{{Field: "email"}, {Field: "category"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if tt.want == nil {
				if got != nil {
					t.Errorf("ParseSortFields(%q) = %v, want nil", tt.input, got)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSortFields(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSortFields(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuilderBuild(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).Build()
	if sql != selectAll {
		t.Errorf("Build() sql = %q, want %q", sql, selectAll)
	}
	if len(args) != 0 {
		t.Errorf("Build() args = %v, want empty", args)
	}
}

func TestBuilderBuildCount(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.WhereEquals("category", "Billing")
	sql, args := b.BuildCount()

	want := "SELECT COUNT(*) FROM public.inquiries i WHERE i.category = $1"
	if sql != want {
		t.Errorf("BuildCount() sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "Billing" {
		t.Errorf("BuildCount() args = %v, want [Billing]", args)
	}
}

func TestBuilderBuildPage(t *testing.T) {
	b := query.NewBuilder(testProjection(),
		query.SortField{Field: "created_at", Descending: true},
		query.SortField{Field: "id", Descending: true},
	)
	sql, _ := b.BuildPage(2, 10)

	want := selectAll + " ORDER BY i.created_at DESC, i.id DESC LIMIT 10 OFFSET 10"
	if sql != want {
		t.Errorf("BuildPage() sql = %q, want %q", sql, want)
	}
}

func TestBuilderBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildSingle("id", int64(7))

	want := selectAll + " WHERE i.id = $1"
	if sql != want {
		t.Errorf("BuildSingle() sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != int64(7) {
		t.Errorf("BuildSingle() args = %v, want [7]", args)
	}
}

func TestBuilderConditions(t *testing.T) {
	tests := []struct {
		name     string
		apply    func(b *query.Builder)
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "equals",
			apply:    func(b *query.Builder) { b.WhereEquals("category", "Sales") },
			wantSQL:  selectAll + " WHERE i.category = $1",
			wantArgs: []any{"Sales"},
		},
		{
			name:    "equals nil skipped",
			apply:   func(b *query.Builder) { b.WhereEquals("category", (*string)(nil)) },
			wantSQL: selectAll,
		},
		{
			name:     "contains",
			apply:    func(b *query.Builder) { b.WhereContains("email", ptr("example")) },
			wantSQL:  selectAll + " WHERE i.email ILIKE $1",
			wantArgs: []any{"%example%"},
		},
		{
			name:    "contains empty skipped",
			apply:   func(b *query.Builder) { b.WhereContains("email", ptr("")) },
			wantSQL: selectAll,
		},
		{
			name:     "search",
			apply:    func(b *query.Builder) { b.WhereSearch(ptr("refund"), "email", "category") },
			wantSQL:  selectAll + " WHERE (i.email ILIKE $1 OR i.category ILIKE $2)",
			wantArgs: []any{"%refund%", "%refund%"},
		},
		{
			name: "multiple numbered in order",
			apply: func(b *query.Builder) {
				b.WhereEquals("category", "Billing").WhereContains("email", ptr("a"))
			},
			wantSQL:  selectAll + " WHERE i.category = $1 AND i.email ILIKE $2",
			wantArgs: []any{"Billing", "%a%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := query.NewBuilder(testProjection())
			tt.apply(b)
			sql, args := b.Build()

			if sql != tt.wantSQL {
				t.Errorf("sql = %q, want %q", sql, tt.wantSQL)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tt.wantArgs)
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("args[%d] = %v, want %v", i, args[i], tt.wantArgs[i])
				}
			}
		})
	}
}

func TestBuilderOrderByFieldsOverridesDefault(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "created_at", Descending: true})
	b.OrderByFields(
		[]query.SortField{{Field: "email"}},
		query.SortField{Field: "id", Descending: true},
	)
	sql, _ := b.Build()

	want := selectAll + " ORDER BY i.email ASC, i.id DESC"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestBuilderOrderByUnmappedFieldsSkipped(t *testing.T) {
	b := query.NewBuilder(testProjection())
	b.OrderByFields([]query.SortField{{Field: "id; DROP TABLE inquiries"}})
	sql, _ := b.Build()

	if sql != selectAll {
		t.Errorf("sql = %q, want %q", sql, selectAll)
	}
}

func TestBuilderOrderByEmptyKeepsDefault(t *testing.T) {
	b := query.NewBuilder(testProjection(), query.SortField{Field: "id", Descending: true})
	b.OrderByFields(nil)
	sql, _ := b.Build()

	want := selectAll + " ORDER BY i.id DESC"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}
