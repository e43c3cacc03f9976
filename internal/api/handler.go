package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"stock-scout/config"
	"stock-scout/internal/app"
	"stock-scout/models"
	"stock-scout/services"
)

// Handler handles HTTP API requests
type Handler struct {
	app *app.App
	cfg *config.Config
}

// NewHandler creates a new Handler
func NewHandler(application *app.App, cfg *config.Config) *Handler {
	return &Handler{app: application, cfg: cfg}
}

// HandleHealth returns the health status of the application
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
	}

	cbStatus := services.GetGlobalRegistry().Status()
	status["circuit_breakers"] = cbStatus

	for _, cb := range cbStatus {
		if cb.State == "open" {
			status["status"] = "degraded"
			break
		}
	}

	h.jsonResponse(w, status)
}

// HandleSearch runs the multi-provider stock search. An empty query is a
// valid request that answers immediately with an empty list.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	resp := h.app.Search(r.Context(), query)
	h.jsonResponse(w, resp)
}

// analysisEnvelope covers every request shape the analysis endpoint accepts.
type analysisEnvelope struct {
	Action  string   `json:"action,omitempty"`
	Symbol  string   `json:"symbol,omitempty"`
	Symbols []string `json:"symbols,omitempty"`

	StockSymbol  string `json:"stockSymbol,omitempty"`
	AnalysisType string `json:"analysisType,omitempty"`
	CustomQuery  string `json:"customQuery,omitempty"`
}

// HandleAnalysis dispatches on the request action: single fetch, multiple
// fetch, or a full analysis turn.
func (h *Handler) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysisEnvelope
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	switch {
	case req.Action == "fetchSingleStock":
		h.handleFetchSingle(w, r, req.Symbol)
	case req.Action == "fetchMultipleStocks":
		h.handleFetchMultiple(w, r, req.Symbols)
	case req.Action == "" && strings.TrimSpace(req.StockSymbol) != "":
		if strings.TrimSpace(req.AnalysisType) == "" {
			h.jsonError(w, "analysisType is required", http.StatusBadRequest)
			return
		}
		h.handleAnalyze(w, r, &req)
	default:
		h.jsonError(w, "unknown action or missing stockSymbol", http.StatusBadRequest)
	}
}

func (h *Handler) handleFetchSingle(w http.ResponseWriter, r *http.Request, symbol string) {
	if strings.TrimSpace(symbol) == "" {
		h.jsonError(w, "symbol is required", http.StatusBadRequest)
		return
	}

	stock, err := h.app.FetchStock(r.Context(), symbol)
	if err != nil {
		// Resolution exhaustion is an expected outcome, not a server error.
		h.jsonResponse(w, map[string]interface{}{
			"stock":   nil,
			"success": false,
		})
		return
	}

	h.jsonResponse(w, map[string]interface{}{
		"stock":   stock,
		"success": true,
	})
}

func (h *Handler) handleFetchMultiple(w http.ResponseWriter, r *http.Request, symbols []string) {
	if len(symbols) == 0 {
		h.jsonError(w, "symbols is required", http.StatusBadRequest)
		return
	}

	stocks := h.app.FetchStocks(r.Context(), symbols)
	h.jsonResponse(w, map[string]interface{}{
		"stocks":  stocks,
		"success": true,
	})
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request, env *analysisEnvelope) {
	req := &models.AnalysisRequest{
		Symbol:      strings.TrimSpace(env.StockSymbol),
		Category:    models.AnalysisCategory(env.AnalysisType),
		CustomQuery: env.CustomQuery,
	}

	resp, err := h.app.Analyze(r.Context(), req)
	if err != nil {
		if errors.Is(err, app.ErrBusy) {
			h.jsonError(w, err.Error(), http.StatusTooManyRequests)
			return
		}
		h.jsonError(w, "analysis failed", http.StatusInternalServerError)
		return
	}

	h.jsonResponse(w, resp)
}

// jsonResponse writes a JSON response
func (h *Handler) jsonResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// jsonError writes a JSON error response
func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
