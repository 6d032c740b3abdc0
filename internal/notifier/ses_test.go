package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/smithy-go"
)

type fakeSender struct {
	input *ses.SendTemplatedEmailInput
	err   error
	calls int
}

func (f *fakeSender) SendTemplatedEmail(
	_ context.Context,
	params *ses.SendTemplatedEmailInput,
	_ ...func(*ses.Options),
) (*ses.SendTemplatedEmailOutput, error) {
	f.calls++
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendTemplatedEmailOutput{MessageId: aws.String("ses-123")}, nil
}

func sesConfig(t *testing.T, sender string) *Config {
	t.Helper()
	cfg := &Config{Sender: sender}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return cfg
}

func TestSESNotify(t *testing.T) {
	fake := &fakeSender{}
	n := newSES(fake, sesConfig(t, "support@example.com"))

	id, err := n.Notify(context.Background(), KindConfirmation, "a@x.com", ConfirmationData("Ann", 5, "help"))
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if id != "ses-123" {
		t.Errorf("id = %q", id)
	}

	if *fake.input.Source != "support@example.com" {
		t.Errorf("source = %q", *fake.input.Source)
	}
	if *fake.input.Template != defaultConfirmationTemplate {
		t.Errorf("template = %q", *fake.input.Template)
	}
	if got := fake.input.Destination.ToAddresses; len(got) != 1 || got[0] != "a@x.com" {
		t.Errorf("to = %v", got)
	}

	var data map[string]string
	if err := json.Unmarshal([]byte(*fake.input.TemplateData), &data); err != nil {
		t.Fatalf("template data: %v", err)
	}
	if data["inquiry_id"] != "5" || data["name"] != "Ann" {
		t.Errorf("template data = %v", data)
	}
}

func TestSESUnconfiguredSkipsNetwork(t *testing.T) {
	fake := &fakeSender{}
	n := newSES(fake, sesConfig(t, ""))

	_, err := n.Notify(context.Background(), KindResponse, "a@x.com", ResponseData(1, "r", "q"))
	if !errors.Is(err, ErrUnconfigured) {
		t.Errorf("err = %v, want unconfigured", err)
	}
	if fake.calls != 0 {
		t.Errorf("calls = %d, want 0", fake.calls)
	}
}

func TestSESDeliveryFailed(t *testing.T) {
	fake := &fakeSender{err: &smithy.GenericAPIError{Code: "MessageRejected", Message: "Email address is not verified."}}
	n := newSES(fake, sesConfig(t, "support@example.com"))

	_, err := n.Notify(context.Background(), KindResponse, "a@x.com", ResponseData(1, "r", "q"))
	if !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("err = %v, want delivery failed", err)
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) || apiErr.ErrorCode() != "MessageRejected" {
		t.Error("service error should remain reachable")
	}
}
