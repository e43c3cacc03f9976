package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteRecord holds everything the pipeline knows about a single stock.
// Providers contribute partial records; Merge fills gaps left by
// higher-priority providers, and the synthetic filler completes the rest
// before a record leaves the pipeline.
type QuoteRecord struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"changePercent"`
	MarketCap     string          `json:"marketCap,omitempty"`
	PERatio       float64         `json:"pe,omitempty"`
	PBRatio       float64         `json:"pbRatio,omitempty"`
	Sector        string          `json:"sector,omitempty"`
	Exchange      string          `json:"exchange,omitempty"`
	LogoURL       string          `json:"logo,omitempty"`
	Volume        int64           `json:"volume"`
	DayHigh       decimal.Decimal `json:"dayHigh"`
	DayLow        decimal.Decimal `json:"dayLow"`
	Week52High    decimal.Decimal `json:"fiftyTwoWeekHigh"`
	Week52Low     decimal.Decimal `json:"fiftyTwoWeekLow"`

	// Descriptive fields, usually backfilled from the reference catalog.
	Description string `json:"description,omitempty"`
	CEO         string `json:"ceo,omitempty"`
	Founded     string `json:"founded,omitempty"`
	Website     string `json:"website,omitempty"`

	// Fundamentals and holdings, contributed by ratio providers or the catalog.
	ROE                  float64 `json:"roe,omitempty"`
	ROA                  float64 `json:"roa,omitempty"`
	DebtToEquity         float64 `json:"debtToEquity,omitempty"`
	CurrentRatio         float64 `json:"currentRatio,omitempty"`
	PromoterHolding      float64 `json:"promoterHolding,omitempty"`
	InstitutionalHolding float64 `json:"institutionalHolding,omitempty"`
	PublicHolding        float64 `json:"publicHolding,omitempty"`

	Source    string    `json:"source,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// HasPrice reports whether the record carries the mandatory field.
// A record without a price is unusable and must never leave the resolver.
func (q *QuoteRecord) HasPrice() bool {
	return !q.Price.IsZero()
}

// Merge copies every field that is still unset on q from other.
// First non-empty value wins: fields q already carries are never overwritten.
func (q *QuoteRecord) Merge(other *QuoteRecord) {
	if other == nil {
		return
	}
	if q.Name == "" {
		q.Name = other.Name
	}
	if q.Price.IsZero() {
		q.Price = other.Price
	}
	if q.Change.IsZero() {
		q.Change = other.Change
	}
	if q.ChangePercent.IsZero() {
		q.ChangePercent = other.ChangePercent
	}
	if q.MarketCap == "" {
		q.MarketCap = other.MarketCap
	}
	if q.PERatio == 0 {
		q.PERatio = other.PERatio
	}
	if q.PBRatio == 0 {
		q.PBRatio = other.PBRatio
	}
	if q.Sector == "" {
		q.Sector = other.Sector
	}
	if q.Exchange == "" {
		q.Exchange = other.Exchange
	}
	if q.LogoURL == "" {
		q.LogoURL = other.LogoURL
	}
	if q.Volume == 0 {
		q.Volume = other.Volume
	}
	if q.DayHigh.IsZero() {
		q.DayHigh = other.DayHigh
	}
	if q.DayLow.IsZero() {
		q.DayLow = other.DayLow
	}
	if q.Week52High.IsZero() {
		q.Week52High = other.Week52High
	}
	if q.Week52Low.IsZero() {
		q.Week52Low = other.Week52Low
	}
	if q.Description == "" {
		q.Description = other.Description
	}
	if q.CEO == "" {
		q.CEO = other.CEO
	}
	if q.Founded == "" {
		q.Founded = other.Founded
	}
	if q.Website == "" {
		q.Website = other.Website
	}
	if q.ROE == 0 {
		q.ROE = other.ROE
	}
	if q.ROA == 0 {
		q.ROA = other.ROA
	}
	if q.DebtToEquity == 0 {
		q.DebtToEquity = other.DebtToEquity
	}
	if q.CurrentRatio == 0 {
		q.CurrentRatio = other.CurrentRatio
	}
	if q.PromoterHolding == 0 {
		q.PromoterHolding = other.PromoterHolding
	}
	if q.InstitutionalHolding == 0 {
		q.InstitutionalHolding = other.InstitutionalHolding
	}
	if q.PublicHolding == 0 {
		q.PublicHolding = other.PublicHolding
	}
	if q.Source == "" {
		q.Source = other.Source
	}
}

// SearchResult is one entry returned by the search pipeline.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Region   string `json:"region,omitempty"`
	Exchange string `json:"exchange,omitempty"`
	Sector   string `json:"sector,omitempty"`
	LogoURL  string `json:"logo,omitempty"`
	Source   string `json:"source"`
}

// SearchResponse is the envelope returned by the search endpoint.
type SearchResponse struct {
	Quotes      []SearchResult `json:"quotes"`
	Source      string         `json:"source"`
	Query       string         `json:"query,omitempty"`
	ResultCount int            `json:"resultCount"`
	Timestamp   time.Time      `json:"timestamp"`
}
