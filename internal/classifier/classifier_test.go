package classifier_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/JaimeStill/intake/internal/classifier"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    classifier.Category
		wantErr bool
	}{
		{"Technical", classifier.CategoryTechnical, false},
		{"billing", classifier.CategoryBilling, false},
		{"  SALES ", classifier.CategorySales, false},
		{"n/a", classifier.CategoryNotApplicable, false},
		{"Urgent", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := classifier.ParseCategory(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseUrgency(t *testing.T) {
	tests := []struct {
		in      string
		want    classifier.Urgency
		wantErr bool
	}{
		{"High", classifier.UrgencyHigh, false},
		{"medium", classifier.UrgencyMedium, false},
		{"LOW", classifier.UrgencyLow, false},
		{"N/A", classifier.UrgencyNotApplicable, false},
		{"Critical", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := classifier.ParseUrgency(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	tests := []struct {
		kind     classifier.Kind
		sentinel error
	}{
		{classifier.KindUnavailable, classifier.ErrUnavailable},
		{classifier.KindInvalidResponse, classifier.ErrInvalidResponse},
		{classifier.KindConfiguration, classifier.ErrConfiguration},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			err := fmt.Errorf("classify: %w", &classifier.Error{Kind: tt.kind, Err: io.EOF})

			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.sentinel)
			}
			if !errors.Is(err, io.EOF) {
				t.Error("cause should remain reachable")
			}
			if got := classifier.KindOf(err); got != tt.kind {
				t.Errorf("KindOf = %q, want %q", got, tt.kind)
			}
		})
	}
}

func TestKindOfForeignError(t *testing.T) {
	if got := classifier.KindOf(errors.New("boom")); got != classifier.KindUnavailable {
		t.Errorf("KindOf = %q, want %q", got, classifier.KindUnavailable)
	}
}

func TestResolve(t *testing.T) {
	ok := classifier.Result{
		Category: classifier.CategoryBilling,
		Urgency:  classifier.UrgencyLow,
		Summary:  "Customer asks about an invoice.",
	}

	if got := classifier.Resolve(ok, nil); got != ok {
		t.Errorf("Resolve(ok, nil) = %+v, want %+v", got, ok)
	}

	kinds := []classifier.Kind{
		classifier.KindUnavailable,
		classifier.KindInvalidResponse,
		classifier.KindConfiguration,
	}

	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			err := &classifier.Error{Kind: kind, Raw: "garbage"}
			got := classifier.Resolve(classifier.Result{}, err)

			if got.Category != classifier.CategoryNotApplicable {
				t.Errorf("category = %q", got.Category)
			}
			if got.Urgency != classifier.UrgencyNotApplicable {
				t.Errorf("urgency = %q", got.Urgency)
			}
			if got.Summary != classifier.FallbackSummary {
				t.Errorf("summary = %q", got.Summary)
			}
			if got.Raw != "garbage" {
				t.Errorf("raw = %q, want carried over", got.Raw)
			}
		})
	}
}

func TestResolveDoesNotMutateFallback(t *testing.T) {
	classifier.Resolve(classifier.Result{}, &classifier.Error{Raw: "x"})
	if classifier.Fallback.Raw != "" {
		t.Errorf("Fallback.Raw = %q, want empty", classifier.Fallback.Raw)
	}
}

func TestDisabled(t *testing.T) {
	c := classifier.Disabled(errors.New("no credentials"))

	_, err := c.Classify(context.Background(), "anything")
	if !errors.Is(err, classifier.ErrConfiguration) {
		t.Fatalf("err = %v, want configuration", err)
	}
	if c.Name() != classifier.ProviderNone {
		t.Errorf("Name() = %q", c.Name())
	}
}

func TestNewProviderNone(t *testing.T) {
	cfg := &classifier.Config{Provider: classifier.ProviderNone}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := classifier.New(context.Background(), cfg, logger)

	_, err := c.Classify(context.Background(), "help")
	if classifier.KindOf(err) != classifier.KindConfiguration {
		t.Errorf("kind = %q, want configuration", classifier.KindOf(err))
	}
}

func TestNewOpenAIWithoutKeyIsDisabled(t *testing.T) {
	cfg := &classifier.Config{Provider: classifier.ProviderOpenAI}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := classifier.New(context.Background(), cfg, logger)

	if c.Name() != classifier.ProviderNone {
		t.Errorf("Name() = %q, want disabled classifier", c.Name())
	}
}
