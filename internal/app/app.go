package app

import (
	"context"
	"errors"
	"fmt"

	"stock-scout/analysis"
	"stock-scout/config"
	"stock-scout/models"
	"stock-scout/resolver"
)

// ErrBusy is returned when the analysis semaphore is full.
var ErrBusy = errors.New("analysis queue full, too many concurrent requests - try again later")

// ResolverInterface defines the resolution operations needed by App
type ResolverInterface interface {
	FetchQuote(ctx context.Context, symbol string) (*models.QuoteRecord, error)
	FetchMultiple(ctx context.Context, symbols []string) []*models.QuoteRecord
	Search(ctx context.Context, query string) *models.SearchResponse
}

// PipelineInterface defines the analysis operations
type PipelineInterface interface {
	Analyze(ctx context.Context, req *models.AnalysisRequest) *models.AnalysisResponse
}

// App struct holds application dependencies using interfaces for testability
type App struct {
	cfg         *config.Config
	resolver    ResolverInterface
	pipeline    PipelineInterface
	analysisSem chan struct{}
}

// New creates a new App application struct
func New(cfg *config.Config, res ResolverInterface, pipe PipelineInterface) *App {
	return &App{
		cfg:         cfg,
		resolver:    res,
		pipeline:    pipe,
		analysisSem: make(chan struct{}, cfg.Analysis.ConcurrencyLimit),
	}
}

// Search runs the multi-provider stock search.
func (a *App) Search(ctx context.Context, query string) *models.SearchResponse {
	return a.resolver.Search(ctx, query)
}

// FetchStock resolves one symbol through the provider chain.
func (a *App) FetchStock(ctx context.Context, symbol string) (*models.QuoteRecord, error) {
	return a.resolver.FetchQuote(ctx, symbol)
}

// FetchStocks resolves several symbols; unresolvable ones are omitted.
func (a *App) FetchStocks(ctx context.Context, symbols []string) []*models.QuoteRecord {
	return a.resolver.FetchMultiple(ctx, symbols)
}

// Analyze runs the analysis pipeline under the concurrency semaphore.
func (a *App) Analyze(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResponse, error) {
	if a.pipeline == nil {
		return nil, fmt.Errorf("analysis pipeline not initialized")
	}

	select {
	case a.analysisSem <- struct{}{}:
		defer func() { <-a.analysisSem }()
	default:
		return nil, ErrBusy
	}

	return a.pipeline.Analyze(ctx, req), nil
}

// AnalysisSemCapacity returns the capacity of the analysis semaphore (for testing)
func (a *App) AnalysisSemCapacity() int {
	return cap(a.analysisSem)
}

// Compile-time interface verification
var _ ResolverInterface = (*resolver.Resolver)(nil)
var _ PipelineInterface = (*analysis.Pipeline)(nil)
