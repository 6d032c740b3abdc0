package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// sender is the subset of the SES client used here.
type sender interface {
	SendTemplatedEmail(
		ctx context.Context,
		params *ses.SendTemplatedEmailInput,
		optFns ...func(*ses.Options),
	) (*ses.SendTemplatedEmailOutput, error)
}

type sesNotifier struct {
	client sender
	cfg    *Config
}

// NewSES creates an SES templated-email notifier. SDK retries are disabled.
func NewSES(ctx context.Context, cfg *Config) (Notifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithRetryMaxAttempts(1),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newSES(ses.NewFromConfig(awsCfg), cfg), nil
}

func newSES(client sender, cfg *Config) *sesNotifier {
	return &sesNotifier{client: client, cfg: cfg}
}

func (s *sesNotifier) Notify(ctx context.Context, kind Kind, to string, data TemplateData) (string, error) {
	if s.cfg.Sender == "" {
		return "", unconfigured(errors.New("sender address not set"))
	}

	template, err := s.cfg.Template(kind)
	if err != nil {
		return "", deliveryFailed(err)
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return "", deliveryFailed(fmt.Errorf("marshal template data: %w", err))
	}

	out, err := s.client.SendTemplatedEmail(ctx, &ses.SendTemplatedEmailInput{
		Source:       aws.String(s.cfg.Sender),
		Destination:  &types.Destination{ToAddresses: []string{to}},
		Template:     aws.String(template),
		TemplateData: aws.String(string(payload)),
	})
	if err != nil {
		return "", deliveryFailed(err)
	}

	return aws.ToString(out.MessageId), nil
}
