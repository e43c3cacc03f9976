package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"stock-scout/models"
	"stock-scout/observability"
	"stock-scout/refdata"
)

// NSEService fetches quotes and symbol matches from the NSE India public
// API. NSE requires a session cookie obtained from the homepage before the
// JSON endpoints answer, so the client primes itself once per session.
type NSEService struct {
	http    *resty.Client
	baseURL string
	catalog *refdata.Catalog
	retry   RetryConfig

	primeMu sync.Mutex
	primed  bool
}

// NewNSEService creates a new NSEService instance
func NewNSEService(baseURL string, catalog *refdata.Catalog, timeout time.Duration) *NSEService {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36").
		SetHeader("Accept", "application/json").
		SetHeader("Accept-Language", "en-US,en;q=0.9").
		SetHeader("Referer", baseURL)

	return &NSEService{
		http:    client,
		baseURL: baseURL,
		catalog: catalog,
		retry:   DefaultRetryConfig,
	}
}

// Name identifies this provider in logs, metrics, and Source fields.
func (s *NSEService) Name() string {
	return "nse"
}

// prime fetches the NSE homepage so the client holds a valid session
// cookie. Resty's default cookie jar keeps it for subsequent calls. A
// successful prime sticks for the process lifetime; a failed one is
// retried on the next call so a transient outage does not kill the
// provider permanently.
func (s *NSEService) prime(ctx context.Context) error {
	s.primeMu.Lock()
	defer s.primeMu.Unlock()
	if s.primed {
		return nil
	}

	resp, err := s.http.R().SetContext(ctx).Get(s.baseURL)
	if err != nil {
		return fmt.Errorf("%w: nse session prime: %v", ErrUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: nse session prime returned %d", ErrUnavailable, resp.StatusCode())
	}

	s.primed = true
	return nil
}

// nseQuoteResponse is the quote-equity payload from the NSE API.
type nseQuoteResponse struct {
	Info struct {
		Symbol      string `json:"symbol"`
		CompanyName string `json:"companyName"`
		Industry    string `json:"industry"`
	} `json:"info"`
	PriceInfo struct {
		LastPrice       float64 `json:"lastPrice"`
		Change          float64 `json:"change"`
		PChange         float64 `json:"pChange"`
		IntraDayHighLow struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"intraDayHighLow"`
		WeekHighLow struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"weekHighLow"`
	} `json:"priceInfo"`
	SecurityWiseDP struct {
		QuantityTraded int64 `json:"quantityTraded"`
	} `json:"securityWiseDP"`
}

// FetchQuote retrieves a quote from the NSE quote-equity endpoint. NSE only
// knows bare symbols, so exchange suffixes are stripped before the call.
func (s *NSEService) FetchQuote(ctx context.Context, symbol string) (*models.QuoteRecord, error) {
	metrics := observability.GetMetrics()
	metrics.RecordProviderRequest(s.Name(), "quote")
	timer := metrics.NewTimer()
	defer timer.ObserveProvider(s.Name(), "quote")

	clean := refdata.CleanSymbol(symbol)

	record, err := WithCircuitBreaker(ctx, BreakerNSE, func() (*models.QuoteRecord, error) {
		if err := s.prime(ctx); err != nil {
			return nil, err
		}

		var rec *models.QuoteRecord
		retryErr := WithRetry(ctx, s.retry, func() error {
			var payload nseQuoteResponse
			resp, err := s.http.R().
				SetContext(ctx).
				SetQueryParam("symbol", clean).
				SetResult(&payload).
				Get(s.baseURL + "/api/quote-equity")
			if err != nil {
				return fmt.Errorf("%w: nse quote for %s: %v", ErrUnavailable, clean, err)
			}
			switch resp.StatusCode() {
			case http.StatusOK:
			case http.StatusNotFound:
				return fmt.Errorf("%w: nse does not list %s", ErrNotFound, clean)
			default:
				return fmt.Errorf("%w: nse quote returned %d", ErrUnavailable, resp.StatusCode())
			}
			if payload.PriceInfo.LastPrice == 0 {
				return fmt.Errorf("%w: nse quote for %s carries no price", ErrMalformed, clean)
			}

			rec = &models.QuoteRecord{
				Symbol:        symbol,
				Name:          payload.Info.CompanyName,
				Price:         decimal.NewFromFloat(payload.PriceInfo.LastPrice),
				Change:        decimal.NewFromFloat(payload.PriceInfo.Change),
				ChangePercent: decimal.NewFromFloat(payload.PriceInfo.PChange),
				Sector:        payload.Info.Industry,
				Exchange:      "NSE",
				Volume:        payload.SecurityWiseDP.QuantityTraded,
				DayHigh:       decimal.NewFromFloat(payload.PriceInfo.IntraDayHighLow.Max),
				DayLow:        decimal.NewFromFloat(payload.PriceInfo.IntraDayHighLow.Min),
				Week52High:    decimal.NewFromFloat(payload.PriceInfo.WeekHighLow.Max),
				Week52Low:     decimal.NewFromFloat(payload.PriceInfo.WeekHighLow.Min),
				Source:        s.Name(),
				Timestamp:     time.Now(),
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

// nseSearchResponse is the autocomplete payload from the NSE API.
type nseSearchResponse struct {
	Symbols []struct {
		Symbol        string `json:"symbol"`
		SymbolInfo    string `json:"symbol_info"`
		Result        string `json:"result"`
		ActivityType  string `json:"activity_type"`
		ListingStatus string `json:"listing_status"`
	} `json:"symbols"`
}

// Search queries the NSE autocomplete endpoint. Results are tagged with the
// ".NS" suffix so they resolve through the quote chain like any other symbol.
func (s *NSEService) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	metrics := observability.GetMetrics()
	metrics.RecordProviderRequest(s.Name(), "search")
	timer := metrics.NewTimer()
	defer timer.ObserveProvider(s.Name(), "search")

	results, err := WithCircuitBreaker(ctx, BreakerNSE, func() ([]models.SearchResult, error) {
		if err := s.prime(ctx); err != nil {
			return nil, err
		}

		var payload nseSearchResponse
		resp, err := s.http.R().
			SetContext(ctx).
			SetQueryParam("q", query).
			SetResult(&payload).
			Get(s.baseURL + "/api/search/autocomplete")
		if err != nil {
			return nil, fmt.Errorf("%w: nse search: %v", ErrUnavailable, err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("%w: nse search returned %d", ErrUnavailable, resp.StatusCode())
		}

		out := make([]models.SearchResult, 0, len(payload.Symbols))
		for _, m := range payload.Symbols {
			if m.Symbol == "" {
				continue
			}
			name := m.SymbolInfo
			if name == "" {
				name = m.Result
			}
			r := models.SearchResult{
				Symbol:   m.Symbol + ".NS",
				Name:     name,
				Type:     "Equity",
				Region:   "India",
				Exchange: "NSE",
				Source:   s.Name(),
			}
			if d, ok := s.catalog.Lookup(m.Symbol); ok {
				r.LogoURL = d.LogoURL()
				r.Sector = d.Sector
			} else {
				r.LogoURL = refdata.FallbackLogoURL(name)
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
