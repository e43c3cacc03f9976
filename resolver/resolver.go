package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"stock-scout/models"
	"stock-scout/observability"
	"stock-scout/refdata"
	"stock-scout/services"
)

// ErrResolutionFailed means every provider in the chain failed for a symbol.
var ErrResolutionFailed = errors.New("quote resolution failed")

// Config carries resolver tunables.
type Config struct {
	ProviderTimeout time.Duration
	SearchTimeout   time.Duration
	MaxResults      int
	// MaxConcurrent bounds parallel symbol fetches in FetchMultiple.
	MaxConcurrent int
}

// Resolver turns symbols into complete quote records and queries into
// ranked search results. Quote providers run sequentially in priority
// order; search providers run in parallel.
type Resolver struct {
	quoteProviders  []services.QuoteProvider
	searchProviders []services.SearchProvider
	filler          *Filler
	cfg             Config
}

// New creates a Resolver. Provider slices are tried in the given order.
func New(quotes []services.QuoteProvider, searches []services.SearchProvider, catalog *refdata.Catalog, cfg Config) *Resolver {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 4
	}
	return &Resolver{
		quoteProviders:  quotes,
		searchProviders: searches,
		filler:          NewFiller(catalog),
		cfg:             cfg,
	}
}

// FetchQuote walks the provider chain and returns the first record that
// carries a price, completed by the synthetic filler. Providers that fail
// or answer without a price are skipped.
func (r *Resolver) FetchQuote(ctx context.Context, symbol string) (*models.QuoteRecord, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", ErrResolutionFailed)
	}

	metrics := observability.GetMetrics()
	metrics.RecordResolutionRequest()
	timer := metrics.NewTimer()

	log := observability.WithSymbol(symbol)

	var lastErr error
	for _, provider := range r.quoteProviders {
		providerCtx, cancel := context.WithTimeout(ctx, r.cfg.ProviderTimeout)
		rec, err := provider.FetchQuote(providerCtx, symbol)
		cancel()

		if err != nil {
			log.Debug("quote provider failed, trying next",
				"provider", provider.Name(),
				"error", err)
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if rec == nil || !rec.HasPrice() {
			log.Debug("quote provider returned no price, trying next",
				"provider", provider.Name())
			lastErr = fmt.Errorf("%s returned no price", provider.Name())
			continue
		}

		r.filler.Fill(rec)
		log.Info("quote resolved",
			"provider", provider.Name(),
			"price", rec.Price)
		timer.ObserveResolution("success")
		return rec, nil
	}

	metrics.RecordResolutionFailure()
	timer.ObserveResolution("error")
	if lastErr == nil {
		lastErr = errors.New("no providers configured")
	}
	log.Warn("quote resolution exhausted every provider", "error", lastErr)
	return nil, fmt.Errorf("%w for %s: %v", ErrResolutionFailed, symbol, lastErr)
}

// FetchMultiple resolves several symbols with bounded concurrency.
// Symbols that cannot be resolved are omitted from the result, in keeping
// with a comparison view: one dead symbol must not sink the rest.
func (r *Resolver) FetchMultiple(ctx context.Context, symbols []string) []*models.QuoteRecord {
	results := make([]*models.QuoteRecord, len(symbols))
	sem := make(chan struct{}, r.cfg.MaxConcurrent)
	var wg sync.WaitGroup

	for i, symbol := range symbols {
		wg.Add(1)
		go func(idx int, sym string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			rec, err := r.FetchQuote(ctx, sym)
			if err != nil {
				observability.WithSymbol(sym).Warn("skipping unresolvable symbol", "error", err)
				return
			}
			results[idx] = rec
		}(i, symbol)
	}
	wg.Wait()

	out := make([]*models.QuoteRecord, 0, len(symbols))
	for _, rec := range results {
		if rec != nil {
			out = append(out, rec)
		}
	}
	return out
}

// searchSlot holds one provider's search outcome.
type searchSlot struct {
	provider string
	results  []models.SearchResult
	err      error
}

// Search fans the query out to every search provider in parallel, then
// merges, dedups, and ranks the combined results. An empty query returns
// an empty response without touching any provider.
func (r *Resolver) Search(ctx context.Context, query string) *models.SearchResponse {
	query = strings.TrimSpace(query)
	resp := &models.SearchResponse{
		Quotes:    []models.SearchResult{},
		Query:     query,
		Timestamp: time.Now(),
	}
	if query == "" {
		resp.Source = "none"
		return resp
	}

	metrics := observability.GetMetrics()
	timer := metrics.NewTimer()

	slots := make([]searchSlot, len(r.searchProviders))
	var wg sync.WaitGroup

	for i, provider := range r.searchProviders {
		wg.Add(1)
		go func(idx int, p services.SearchProvider) {
			defer wg.Done()

			searchCtx, cancel := context.WithTimeout(ctx, r.cfg.SearchTimeout)
			defer cancel()

			results, err := p.Search(searchCtx, query)
			slots[idx] = searchSlot{provider: p.Name(), results: results, err: err}
		}(i, provider)
	}
	wg.Wait()

	// Concatenate in provider order so dedup keeps the priority source.
	var combined []models.SearchResult
	var sources []string
	for _, slot := range slots {
		if slot.err != nil {
			observability.WithProvider(slot.provider).Warn("search provider failed",
				"query", query,
				"error", slot.err)
			continue
		}
		if len(slot.results) > 0 {
			combined = append(combined, slot.results...)
			sources = append(sources, slot.provider)
		}
	}

	resp.Quotes = DedupAndRank(combined, query, r.cfg.MaxResults)
	resp.ResultCount = len(resp.Quotes)
	if len(sources) == 0 {
		resp.Source = "none"
	} else {
		resp.Source = strings.Join(sources, "+")
	}

	timer.ObserveSearch(resp.Source, resp.ResultCount)
	return resp
}
