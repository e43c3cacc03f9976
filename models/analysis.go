package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisCategory enumerates the supported analysis styles.
type AnalysisCategory string

const (
	CategoryOverview     AnalysisCategory = "overview"
	CategoryFundamentals AnalysisCategory = "fundamentals"
	CategoryFinancials   AnalysisCategory = "financials"
	CategoryShareholding AnalysisCategory = "shareholding"
	CategoryCustom       AnalysisCategory = "custom"
)

// Normalize maps unknown categories to the overview dataset.
func (c AnalysisCategory) Normalize() AnalysisCategory {
	switch c {
	case CategoryOverview, CategoryFundamentals, CategoryFinancials, CategoryShareholding, CategoryCustom:
		return c
	default:
		return CategoryOverview
	}
}

// AnalysisRequest is one chat turn: a symbol, a category, and optionally a
// free-text query. The resolved quote is attached by the pipeline before
// prompt construction.
type AnalysisRequest struct {
	Symbol      string           `json:"stockSymbol"`
	Category    AnalysisCategory `json:"analysisType"`
	CustomQuery string           `json:"customQuery,omitempty"`
	Stock       *QuoteRecord     `json:"-"`
}

// ChartType identifies how a chart's rows should be rendered.
type ChartType string

const (
	ChartLine ChartType = "line"
	ChartBar  ChartType = "bar"
	ChartPie  ChartType = "pie"
)

// ChartPoint is a single labeled value in a chart series.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSpec describes one renderable chart.
type ChartSpec struct {
	Type   ChartType    `json:"type"`
	Title  string       `json:"title"`
	Points []ChartPoint `json:"data"`
}

// TableSpec describes one renderable table.
type TableSpec struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// AnalysisResponse is the full payload returned for an analysis turn.
// Charts and Tables are never empty: the pipeline substitutes the
// category's fixed dataset when generation produces none.
type AnalysisResponse struct {
	ID          uuid.UUID    `json:"id"`
	Narrative   string       `json:"analysis"`
	Charts      []ChartSpec  `json:"chartData"`
	Tables      []TableSpec  `json:"tableData"`
	DataQuality string       `json:"dataQuality"`
	Backend     string       `json:"aiModel"`
	Stock       *QuoteRecord `json:"stockData,omitempty"`
	LastUpdated time.Time    `json:"lastUpdated"`
}
