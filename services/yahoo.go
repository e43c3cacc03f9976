package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/equity"
	"github.com/shopspring/decimal"

	"stock-scout/models"
	"stock-scout/observability"
	"stock-scout/refdata"
)

const yahooSearchURL = "https://query1.finance.yahoo.com/v1/finance/search"

// YahooService fetches live quotes and symbol matches from Yahoo Finance.
// It is the highest-priority provider in the default failover order.
type YahooService struct {
	http      *resty.Client
	catalog   *refdata.Catalog
	retry     RetryConfig
	searchURL string
	getQuote  func(symbol string) (*finance.Equity, error)
}

// NewYahooService creates a new YahooService instance
func NewYahooService(catalog *refdata.Catalog, timeout time.Duration) *YahooService {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36").
		SetHeader("Accept", "application/json")

	return &YahooService{
		http:      client,
		catalog:   catalog,
		retry:     DefaultRetryConfig,
		searchURL: yahooSearchURL,
		getQuote:  equity.Get,
	}
}

// Name identifies this provider in logs, metrics, and Source fields.
func (s *YahooService) Name() string {
	return "yahoo"
}

// FetchQuote retrieves a full equity quote for the symbol.
func (s *YahooService) FetchQuote(ctx context.Context, symbol string) (*models.QuoteRecord, error) {
	metrics := observability.GetMetrics()
	metrics.RecordProviderRequest(s.Name(), "quote")
	timer := metrics.NewTimer()
	defer timer.ObserveProvider(s.Name(), "quote")

	record, err := WithCircuitBreaker(ctx, BreakerYahoo, func() (*models.QuoteRecord, error) {
		var rec *models.QuoteRecord
		retryErr := WithRetry(ctx, s.retry, func() error {
			q, err := s.fetchEquity(ctx, symbol)
			if err != nil {
				return err
			}
			if q == nil || q.RegularMarketPrice == 0 {
				return fmt.Errorf("%w: yahoo has no price for %s", ErrNotFound, symbol)
			}

			rec = &models.QuoteRecord{
				Symbol:        symbol,
				Name:          q.ShortName,
				Price:         decimal.NewFromFloat(q.RegularMarketPrice),
				Change:        decimal.NewFromFloat(q.RegularMarketChange),
				ChangePercent: decimal.NewFromFloat(q.RegularMarketChangePercent),
				PERatio:       q.TrailingPE,
				PBRatio:       q.PriceToBook,
				Exchange:      q.FullExchangeName,
				Volume:        int64(q.RegularMarketVolume),
				DayHigh:       decimal.NewFromFloat(q.RegularMarketDayHigh),
				DayLow:        decimal.NewFromFloat(q.RegularMarketDayLow),
				Week52High:    decimal.NewFromFloat(q.FiftyTwoWeekHigh),
				Week52Low:     decimal.NewFromFloat(q.FiftyTwoWeekLow),
				Source:        s.Name(),
				Timestamp:     time.Now(),
			}
			if q.LongName != "" {
				rec.Name = q.LongName
			}
			if q.MarketCap > 0 {
				rec.MarketCap = refdata.FormatMarketCap(decimal.NewFromInt(q.MarketCap))
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

// fetchEquity runs the equity lookup under the caller's context. The
// underlying client takes no context, so the call runs in a goroutine and
// the caller's deadline wins; a stalled lookup must not hold up the
// provider failover chain.
func (s *YahooService) fetchEquity(ctx context.Context, symbol string) (*finance.Equity, error) {
	type outcome struct {
		q   *finance.Equity
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		q, err := s.getQuote(symbol)
		ch <- outcome{q: q, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: yahoo equity lookup for %s: %v", ErrTimeout, symbol, ctx.Err())
	case out := <-ch:
		if out.err != nil {
			return nil, fmt.Errorf("%w: yahoo equity lookup for %s: %v", ErrUnavailable, symbol, out.err)
		}
		return out.q, nil
	}
}

// yahooSearchResponse is the autocomplete payload from the Yahoo search API.
type yahooSearchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		QuoteType string `json:"quoteType"`
		Exchange  string `json:"exchange"`
		ExchDisp  string `json:"exchDisp"`
		Sector    string `json:"sector"`
	} `json:"quotes"`
}

// Search queries the Yahoo autocomplete API and keeps only equity matches.
func (s *YahooService) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	metrics := observability.GetMetrics()
	metrics.RecordProviderRequest(s.Name(), "search")
	timer := metrics.NewTimer()
	defer timer.ObserveProvider(s.Name(), "search")

	results, err := WithCircuitBreaker(ctx, BreakerYahoo, func() ([]models.SearchResult, error) {
		var payload yahooSearchResponse
		resp, err := s.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"q":           query,
				"quotesCount": "10",
				"newsCount":   "0",
			}).
			SetResult(&payload).
			Get(s.searchURL)
		if err != nil {
			return nil, fmt.Errorf("%w: yahoo search: %v", ErrUnavailable, err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("%w: yahoo search returned %d", ErrUnavailable, resp.StatusCode())
		}

		out := make([]models.SearchResult, 0, len(payload.Quotes))
		for _, q := range payload.Quotes {
			if q.QuoteType != "EQUITY" || q.Symbol == "" {
				continue
			}
			name := q.LongName
			if name == "" {
				name = q.ShortName
			}
			r := models.SearchResult{
				Symbol:   q.Symbol,
				Name:     name,
				Type:     "Equity",
				Exchange: q.ExchDisp,
				Sector:   q.Sector,
				Source:   s.Name(),
			}
			if d, ok := s.catalog.Lookup(q.Symbol); ok {
				r.LogoURL = d.LogoURL()
				r.Region = d.Region
				if r.Sector == "" {
					r.Sector = d.Sector
				}
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
