package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stock-scout/models"
	"stock-scout/services"
)

// fakeQuoteSource scripts quote resolution.
type fakeQuoteSource struct {
	stock *models.QuoteRecord
	err   error
}

func (f *fakeQuoteSource) FetchQuote(ctx context.Context, symbol string) (*models.QuoteRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stock, nil
}

// fakeBackend returns a fixed narrative or error and counts calls.
type fakeBackend struct {
	name  string
	text  string
	err   error
	calls int
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

var _ services.GenerationBackend = (*fakeBackend)(nil)

func pipelineStock() *models.QuoteRecord {
	return &models.QuoteRecord{
		Symbol:        "TCS.NS",
		Name:          "Tata Consultancy Services Limited",
		Price:         decimal.NewFromFloat(3850.25),
		ChangePercent: decimal.NewFromFloat(0.4),
		PERatio:       28.5,
		ROE:           42.1,
	}
}

func TestPipeline_Analyze_BackendSuccess(t *testing.T) {
	backend := &fakeBackend{name: "openai", text: "TCS shows robust earnings momentum."}
	p := NewPipeline(&fakeQuoteSource{stock: pipelineStock()}, []services.GenerationBackend{backend}, NewRedactor("Scout AI"))

	resp := p.Analyze(context.Background(), &models.AnalysisRequest{
		Symbol:   "TCS.NS",
		Category: models.CategoryOverview,
	})

	if resp.Narrative != "TCS shows robust earnings momentum." {
		t.Errorf("unexpected narrative: %q", resp.Narrative)
	}
	if resp.Backend != "openai" {
		t.Errorf("expected backend name on the response, got %s", resp.Backend)
	}
	if resp.DataQuality != QualityLive {
		t.Errorf("expected live quality, got %s", resp.DataQuality)
	}
	if resp.Stock == nil || resp.Stock.Symbol != "TCS.NS" {
		t.Error("expected the resolved stock attached")
	}
	if len(resp.Charts) == 0 || len(resp.Tables) == 0 {
		t.Error("every response carries charts and tables")
	}
	if resp.ID == uuid.Nil {
		t.Error("expected a generated response ID")
	}
}

func TestPipeline_Analyze_BackendChainFallsThrough(t *testing.T) {
	broken := &fakeBackend{name: "openai", err: errors.New("quota exhausted")}
	blank := &fakeBackend{name: "other", text: "   "}
	working := &fakeBackend{name: "bedrock", text: "Steady compounder."}

	p := NewPipeline(&fakeQuoteSource{stock: pipelineStock()},
		[]services.GenerationBackend{broken, blank, working}, NewRedactor("Scout AI"))

	resp := p.Analyze(context.Background(), &models.AnalysisRequest{Symbol: "TCS.NS"})

	if resp.Backend != "bedrock" {
		t.Errorf("expected the chain to reach the working backend, got %s", resp.Backend)
	}
	if broken.calls != 1 || blank.calls != 1 {
		t.Error("earlier backends should each be tried once")
	}
	if resp.DataQuality != QualityLive {
		t.Errorf("a later backend success is still live quality, got %s", resp.DataQuality)
	}
}

func TestPipeline_Analyze_AllBackendsFail(t *testing.T) {
	a := &fakeBackend{name: "openai", err: errors.New("down")}
	b := &fakeBackend{name: "bedrock", err: errors.New("down")}

	p := NewPipeline(&fakeQuoteSource{stock: pipelineStock()},
		[]services.GenerationBackend{a, b}, NewRedactor("Scout AI"))

	resp := p.Analyze(context.Background(), &models.AnalysisRequest{
		Symbol:   "TCS.NS",
		Category: models.CategoryFundamentals,
	})

	if strings.TrimSpace(resp.Narrative) == "" {
		t.Fatal("template fallback must produce a narrative")
	}
	if resp.Backend != "template" {
		t.Errorf("expected template backend marker, got %s", resp.Backend)
	}
	if resp.DataQuality != QualityTemplate {
		t.Errorf("expected template quality, got %s", resp.DataQuality)
	}
	if len(resp.Charts) == 0 || len(resp.Tables) == 0 {
		t.Error("fallback responses still carry charts and tables")
	}
}

func TestPipeline_Analyze_NoBackendsConfigured(t *testing.T) {
	p := NewPipeline(&fakeQuoteSource{stock: pipelineStock()}, nil, NewRedactor("Scout AI"))

	resp := p.Analyze(context.Background(), &models.AnalysisRequest{Symbol: "TCS.NS"})
	if resp.Backend != "template" || strings.TrimSpace(resp.Narrative) == "" {
		t.Errorf("expected template answer with no backends: %+v", resp.Backend)
	}
}

func TestPipeline_Analyze_ResolutionFailureDegrades(t *testing.T) {
	backend := &fakeBackend{name: "openai", text: "Little is known about this name."}
	p := NewPipeline(&fakeQuoteSource{err: errors.New("all providers failed")},
		[]services.GenerationBackend{backend}, NewRedactor("Scout AI"))

	resp := p.Analyze(context.Background(), &models.AnalysisRequest{Symbol: "nosuch"})

	if resp.DataQuality != QualityDegraded {
		t.Errorf("expected degraded quality, got %s", resp.DataQuality)
	}
	if resp.Stock == nil || resp.Stock.Name != "NOSUCH" {
		t.Errorf("expected a minimal placeholder stock, got %+v", resp.Stock)
	}
}

func TestPipeline_Analyze_ScrubsVendorTokens(t *testing.T) {
	backend := &fakeBackend{name: "openai", text: "As ChatGPT, I believe OpenAI models rate this a hold."}
	p := NewPipeline(&fakeQuoteSource{stock: pipelineStock()},
		[]services.GenerationBackend{backend}, NewRedactor("Scout AI"))

	resp := p.Analyze(context.Background(), &models.AnalysisRequest{Symbol: "TCS.NS"})

	lower := strings.ToLower(resp.Narrative)
	for _, banned := range []string{"chatgpt", "openai", "gpt-"} {
		if strings.Contains(lower, banned) {
			t.Errorf("vendor token %q leaked: %s", banned, resp.Narrative)
		}
	}
	if !strings.Contains(resp.Narrative, "Scout AI") {
		t.Errorf("expected brand substitution: %s", resp.Narrative)
	}
}

func TestPipeline_Analyze_CallerAttachedStockSkipsResolution(t *testing.T) {
	src := &fakeQuoteSource{err: errors.New("must not be called")}
	backend := &fakeBackend{name: "openai", text: "ok"}
	p := NewPipeline(src, []services.GenerationBackend{backend}, NewRedactor("Scout AI"))

	resp := p.Analyze(context.Background(), &models.AnalysisRequest{
		Symbol: "TCS.NS",
		Stock:  pipelineStock(),
	})

	if resp.DataQuality != QualityLive {
		t.Errorf("attached stock is live quality, got %s", resp.DataQuality)
	}
}

func TestPipeline_Analyze_CancelledContextAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	failing := &fakeBackend{name: "openai", err: ctx.Err()}
	never := &fakeBackend{name: "bedrock", text: "should not run"}
	p := NewPipeline(&fakeQuoteSource{stock: pipelineStock()},
		[]services.GenerationBackend{failing, never}, NewRedactor("Scout AI"))

	resp := p.Analyze(ctx, &models.AnalysisRequest{Symbol: "TCS.NS"})

	if never.calls != 0 {
		t.Error("cancelled context must stop the backend chain")
	}
	if resp.Backend != "template" {
		t.Errorf("cancelled generation falls back to template, got %s", resp.Backend)
	}
}
