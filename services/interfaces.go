package services

import (
	"context"
	"errors"

	"stock-scout/models"
)

// Sentinel errors returned by providers. The resolver uses these to decide
// whether to continue down the failover chain.
var (
	// ErrUnavailable means the upstream could not be reached or refused us.
	ErrUnavailable = errors.New("provider unavailable")
	// ErrMalformed means the upstream answered with a payload we cannot parse.
	ErrMalformed = errors.New("provider response malformed")
	// ErrTimeout means the upstream did not answer within the configured window.
	ErrTimeout = errors.New("provider timed out")
	// ErrNotFound means the upstream answered but does not know the symbol.
	ErrNotFound = errors.New("symbol not found")
)

// QuoteProvider fetches a quote record for one symbol from one upstream.
type QuoteProvider interface {
	// Name identifies the provider in logs, metrics, and the Source field.
	Name() string
	FetchQuote(ctx context.Context, symbol string) (*models.QuoteRecord, error)
}

// SearchProvider looks up matching instruments for a free-text query.
type SearchProvider interface {
	Name() string
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

// GenerationBackend produces a narrative for an analysis prompt.
type GenerationBackend interface {
	Name() string
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Compile-time interface verification
var (
	_ QuoteProvider = (*YahooService)(nil)
	_ QuoteProvider = (*NSEService)(nil)
	_ QuoteProvider = (*ScreenerService)(nil)
	_ QuoteProvider = (*CatalogService)(nil)

	_ SearchProvider = (*YahooService)(nil)
	_ SearchProvider = (*NSEService)(nil)
	_ SearchProvider = (*ScreenerService)(nil)
	_ SearchProvider = (*CatalogService)(nil)

	_ GenerationBackend = (*OpenAIService)(nil)
	_ GenerationBackend = (*BedrockService)(nil)
)
