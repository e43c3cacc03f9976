package services

import (
	"context"
	"fmt"

	appconfig "stock-scout/config"
	"stock-scout/observability"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// openaiClient defines the interface for OpenAI API calls (for testing)
type openaiClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// openaiClientWrapper wraps the openai.Client to implement our interface
type openaiClientWrapper struct {
	client openai.Client
}

func (w *openaiClientWrapper) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return w.client.Chat.Completions.New(ctx, params)
}

// OpenAIService generates analysis narratives via the OpenAI chat API.
// It walks a configured model list in order and returns the first model's
// answer; a model that errors or answers empty is skipped, not fatal.
type OpenAIService struct {
	client    openaiClient
	models    []string
	maxTokens int
}

// NewOpenAIService creates a new OpenAIService instance
func NewOpenAIService(cfg *appconfig.Config) (*OpenAIService, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	client := openai.NewClient(option.WithAPIKey(cfg.OpenAI.APIKey))

	return &OpenAIService{
		client:    &openaiClientWrapper{client: client},
		models:    cfg.OpenAI.Models,
		maxTokens: cfg.OpenAI.MaxTokens,
	}, nil
}

// newOpenAIServiceWithClient creates an OpenAIService with a custom client (for testing)
func newOpenAIServiceWithClient(client openaiClient, models []string, maxTokens int) *OpenAIService {
	return &OpenAIService{
		client:    client,
		models:    models,
		maxTokens: maxTokens,
	}
}

// Name identifies this backend in logs and the response payload.
func (s *OpenAIService) Name() string {
	return "openai"
}

// Generate tries each configured model in order and returns the first
// non-empty completion.
func (s *OpenAIService) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	metrics := observability.GetMetrics()
	metrics.RecordProviderRequest(BreakerOpenAI, "generate")
	timer := metrics.NewTimer()

	result, err := WithCircuitBreaker(ctx, BreakerOpenAI, func() (string, error) {
		var lastErr error
		for _, model := range s.models {
			text, err := s.complete(ctx, model, systemPrompt, userPrompt)
			if err != nil {
				observability.Warn("model attempt failed, trying next",
					"model", model,
					"error", err)
				lastErr = err
				if ctx.Err() != nil {
					break
				}
				continue
			}
			observability.Debug("model attempt succeeded", "model", model)
			return text, nil
		}
		return "", fmt.Errorf("all %d models failed: %w", len(s.models), lastErr)
	})

	timer.ObserveProvider(BreakerOpenAI, "generate")
	if err != nil {
		metrics.RecordProviderError(BreakerOpenAI, "generate", categorizeAPIError(err))
	}
	return result, err
}

func (s *OpenAIService) complete(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:     shared.ChatModel(model),
		MaxTokens: openai.Int(int64(s.maxTokens)),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	}

	completion, err := s.client.CreateChatCompletion(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to invoke %s: %w", model, err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response from %s", model)
	}

	return completion.Choices[0].Message.Content, nil
}

// categorizeAPIError categorizes an error for metrics purposes
func categorizeAPIError(err error) string {
	if err == nil {
		return "none"
	}
	errStr := err.Error()
	switch {
	case contains(errStr, "timeout", "deadline"):
		return "timeout"
	case contains(errStr, "rate limit", "429"):
		return "rate_limit"
	case contains(errStr, "unauthorized", "401"):
		return "auth_error"
	case contains(errStr, "connection", "network"):
		return "connection_error"
	default:
		return "unknown"
	}
}

// contains checks if the string contains any of the substrings
func contains(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if len(s) >= len(sub) {
			for i := 0; i <= len(s)-len(sub); i++ {
				if s[i:i+len(sub)] == sub {
					return true
				}
			}
		}
	}
	return false
}
