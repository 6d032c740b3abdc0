package classifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openaiClassifier struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int64
	schema      any
}

// NewOpenAI creates a classifier for any OpenAI-compatible chat completions
// endpoint. Output is constrained by a strict JSON schema. Client retries are
// disabled.
func NewOpenAI(cfg *Config) (Classifier, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, newError(KindConfiguration, fmt.Errorf("api_key required for the public endpoint"))
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &openaiClassifier{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.TemperatureValue(),
		maxTokens:   int64(cfg.MaxTokens),
		schema:      responseSchema(),
	}, nil
}

func responseSchema() any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(response{})
}

func (o *openaiClassifier) Name() string {
	return ProviderOpenAI + "/" + o.model
}

func (o *openaiClassifier) Classify(ctx context.Context, text string) (Result, error) {
	params := openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt()),
			openai.UserMessage(userPrompt(text)),
		},
		MaxTokens:   openai.Int(o.maxTokens),
		Temperature: openai.Float(o.temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        responseSchemaName,
					Description: openai.String("Inquiry category, urgency, and summary"),
					Schema:      o.schema,
					Strict:      openai.Bool(true),
				},
			},
		},
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return Result{}, newError(openaiKind(err), err)
	}

	if len(resp.Choices) == 0 {
		return Result{}, newError(KindInvalidResponse, fmt.Errorf("no choices in response"))
	}

	return parseResponse(resp.Choices[0].Message.Content)
}

func openaiKind(err error) Kind {
	if kind, ok := transportKind(err); ok {
		return kind
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized,
			http.StatusForbidden,
			http.StatusNotFound,
			http.StatusBadRequest,
			http.StatusUnprocessableEntity:
			return KindConfiguration
		}
	}

	return KindUnavailable
}
