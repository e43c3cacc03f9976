package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"stock-scout/models"
	"stock-scout/observability"
	"stock-scout/services"
)

// QuoteSource resolves a symbol into a quote record. Implemented by the
// resolver; faked in tests.
type QuoteSource interface {
	FetchQuote(ctx context.Context, symbol string) (*models.QuoteRecord, error)
}

// Pipeline runs one analysis request end to end: resolve the stock, build
// the prompt, walk the backend chain, fall back to templates, attach the
// category dataset, and scrub brand tokens. It never returns an error to
// the caller; degraded answers carry a lower DataQuality marker.
type Pipeline struct {
	quotes   QuoteSource
	backends []services.GenerationBackend
	redactor *Redactor
}

// Data quality markers on the response.
const (
	QualityLive     = "live"      // resolved stock + generated narrative
	QualityTemplate = "template"  // resolved stock + fallback narrative
	QualityDegraded = "estimated" // unresolved stock
)

// NewPipeline creates a Pipeline. Backends are tried in slice order.
func NewPipeline(quotes QuoteSource, backends []services.GenerationBackend, redactor *Redactor) *Pipeline {
	return &Pipeline{
		quotes:   quotes,
		backends: backends,
		redactor: redactor,
	}
}

// Analyze produces a complete response for the request. The stock is
// resolved first unless the caller attached one; generation failures fall
// through to the deterministic template.
func (p *Pipeline) Analyze(ctx context.Context, req *models.AnalysisRequest) *models.AnalysisResponse {
	metrics := observability.GetMetrics()
	log := observability.WithSymbol(req.Symbol)

	quality := QualityLive
	if req.Stock == nil {
		stock, err := p.quotes.FetchQuote(ctx, req.Symbol)
		if err != nil {
			log.Warn("analysis proceeding without resolved quote", "error", err)
			stock = &models.QuoteRecord{Symbol: req.Symbol, Name: strings.ToUpper(strings.TrimSpace(req.Symbol))}
			quality = QualityDegraded
		}
		req.Stock = stock
	}

	narrative, backend := p.generate(ctx, req)
	if backend == "" {
		narrative = FallbackNarrative(req)
		backend = "template"
		if quality == QualityLive {
			quality = QualityTemplate
		}
		metrics.RecordBackendFallback(string(req.Category.Normalize()))
	}

	category := req.Category.Normalize()
	resp := &models.AnalysisResponse{
		ID:          uuid.New(),
		Narrative:   p.redactor.Scrub(narrative),
		Charts:      BuildCharts(category, req.Stock),
		Tables:      BuildTables(category, req.Stock),
		DataQuality: quality,
		Backend:     backend,
		Stock:       req.Stock,
		LastUpdated: time.Now(),
	}
	return resp
}

// generate walks the backend chain and returns the first non-empty
// narrative together with the backend name. Empty name means all failed.
func (p *Pipeline) generate(ctx context.Context, req *models.AnalysisRequest) (string, string) {
	metrics := observability.GetMetrics()
	userPrompt := BuildPrompt(req)

	for _, backend := range p.backends {
		timer := metrics.NewTimer()
		text, err := backend.Generate(ctx, systemPrompt, userPrompt)
		timer.ObserveBackend(backend.Name())

		if err != nil || strings.TrimSpace(text) == "" {
			metrics.RecordBackendAttempt(backend.Name(), "error")
			observability.Warn("generation backend failed, trying next",
				"backend", backend.Name(),
				"symbol", req.Symbol,
				"error", err)
			if ctx.Err() != nil {
				return "", ""
			}
			continue
		}

		metrics.RecordBackendAttempt(backend.Name(), "success")
		return text, backend.Name()
	}
	return "", ""
}
