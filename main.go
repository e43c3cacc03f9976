package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stock-scout/analysis"
	"stock-scout/config"
	"stock-scout/internal/api"
	"stock-scout/internal/app"
	"stock-scout/observability"
	"stock-scout/refdata"
	"stock-scout/resolver"
	"stock-scout/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		observability.Info("no .env file found, using environment variables")
	}

	production := os.Getenv("ENV") == "production"
	observability.InitLogger(production)
	observability.InitMetrics()

	cfg, err := config.Load()
	if err != nil {
		observability.Fatal("invalid configuration", "error", err)
	}

	ctx := context.Background()
	catalog := refdata.Default()
	providerTimeout := time.Duration(cfg.Providers.TimeoutSeconds) * time.Second

	// Provider adapters, instantiated once and selected by config order.
	yahoo := services.NewYahooService(catalog, providerTimeout)
	nse := services.NewNSEService(cfg.Providers.NSEBaseURL, catalog, providerTimeout)
	screener := services.NewScreenerService(cfg.Providers.ScreenerURL, catalog, providerTimeout)
	catalogSvc := services.NewCatalogService(catalog)

	quoteByName := map[string]services.QuoteProvider{
		"yahoo":    yahoo,
		"nse":      nse,
		"screener": screener,
		"catalog":  catalogSvc,
	}
	searchByName := map[string]services.SearchProvider{
		"yahoo":    yahoo,
		"nse":      nse,
		"screener": screener,
		"catalog":  catalogSvc,
	}

	var quoteChain []services.QuoteProvider
	var searchChain []services.SearchProvider
	for _, name := range cfg.Providers.Order {
		quoteChain = append(quoteChain, quoteByName[name])
		searchChain = append(searchChain, searchByName[name])
	}

	res := resolver.New(quoteChain, searchChain, catalog, resolver.Config{
		ProviderTimeout: providerTimeout,
		SearchTimeout:   time.Duration(cfg.Search.TimeoutSeconds) * time.Second,
		MaxResults:      cfg.Search.MaxResults,
		MaxConcurrent:   cfg.Analysis.ConcurrencyLimit,
	})

	// Generation backends, in fallback order. Missing credentials just
	// shorten the chain; the template fallback always remains.
	var backends []services.GenerationBackend
	if cfg.HasOpenAI() {
		openaiSvc, err := services.NewOpenAIService(cfg)
		if err != nil {
			observability.Warn("openai backend disabled", "error", err)
		} else {
			backends = append(backends, openaiSvc)
		}
	} else {
		observability.Warn("OPENAI_API_KEY not set, openai backend disabled")
	}
	if cfg.HasBedrock() {
		bedrockSvc, err := services.NewBedrockService(ctx, cfg.Bedrock.Region, cfg.Bedrock.ModelID, cfg.OpenAI.MaxTokens)
		if err != nil {
			observability.Warn("bedrock backend disabled", "error", err)
		} else {
			backends = append(backends, bedrockSvc)
		}
	}

	pipeline := analysis.NewPipeline(res, backends, analysis.NewRedactor(cfg.Analysis.RedactionTarget))

	application := app.New(cfg, res, pipeline)
	handler := api.NewHandler(application, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		observability.Info("starting server",
			"port", cfg.HTTP.Port,
			"providers", cfg.Providers.Order,
			"backends", len(backends))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			observability.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	observability.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		observability.Fatal("server forced to shutdown", "error", err)
	}
	observability.Info("server stopped")
}
