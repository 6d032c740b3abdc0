package classifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go"
)

// converser is the subset of the Bedrock runtime client used here.
type converser interface {
	Converse(
		ctx context.Context,
		params *bedrockruntime.ConverseInput,
		optFns ...func(*bedrockruntime.Options),
	) (*bedrockruntime.ConverseOutput, error)
}

type bedrock struct {
	client      converser
	model       string
	temperature float32
	maxTokens   int32
}

// NewBedrock creates a Bedrock Converse classifier. Credentials are resolved
// from the default AWS chain and checked once so a missing identity fails
// construction instead of every call. SDK retries are disabled.
func NewBedrock(ctx context.Context, cfg *Config) (Classifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithRetryMaxAttempts(1),
	)
	if err != nil {
		return nil, newError(KindConfiguration, fmt.Errorf("load aws config: %w", err))
	}

	if _, err := awsCfg.Credentials.Retrieve(ctx); err != nil {
		return nil, newError(KindConfiguration, fmt.Errorf("resolve aws credentials: %w", err))
	}

	return newBedrock(bedrockruntime.NewFromConfig(awsCfg), cfg), nil
}

func newBedrock(client converser, cfg *Config) *bedrock {
	return &bedrock{
		client:      client,
		model:       cfg.Model,
		temperature: float32(cfg.TemperatureValue()),
		maxTokens:   int32(cfg.MaxTokens),
	}
}

func (b *bedrock) Name() string {
	return ProviderBedrock + "/" + b.model
}

func (b *bedrock) Classify(ctx context.Context, text string) (Result, error) {
	out, err := b.client.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(b.model),
		System: []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{Value: systemPrompt()},
		},
		Messages: []types.Message{
			{
				Role: types.ConversationRoleUser,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: userPrompt(text)},
				},
			},
		},
		InferenceConfig: &types.InferenceConfiguration{
			Temperature: aws.Float32(b.temperature),
			MaxTokens:   aws.Int32(b.maxTokens),
		},
	})
	if err != nil {
		return Result{}, newError(bedrockKind(err), err)
	}

	raw, err := converseText(out)
	if err != nil {
		return Result{}, newError(KindInvalidResponse, err)
	}

	return parseResponse(raw)
}

func converseText(out *bedrockruntime.ConverseOutput) (string, error) {
	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", fmt.Errorf("converse output has no message")
	}

	for _, block := range msg.Value.Content {
		if tb, ok := block.(*types.ContentBlockMemberText); ok {
			return tb.Value, nil
		}
	}

	return "", fmt.Errorf("converse message has no text content")
}

func bedrockKind(err error) Kind {
	if kind, ok := transportKind(err); ok {
		return kind
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDeniedException",
			"UnrecognizedClientException",
			"ValidationException",
			"ResourceNotFoundException",
			"ExpiredTokenException":
			return KindConfiguration
		}
	}

	return KindUnavailable
}
