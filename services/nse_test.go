package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"stock-scout/refdata"
)

func nseTestServer(t *testing.T, quoteStatus int, quoteBody string, searchBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/quote-equity", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(quoteStatus)
		w.Write([]byte(quoteBody))
	})
	mux.HandleFunc("/api/search/autocomplete", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchBody))
	})
	return httptest.NewServer(mux)
}

func TestNSEService_FetchQuote(t *testing.T) {
	freshRegistry(t)
	server := nseTestServer(t, http.StatusOK, `{
		"info": {"symbol": "RELIANCE", "companyName": "Reliance Industries Limited", "industry": "Oil & Gas"},
		"priceInfo": {
			"lastPrice": 2485.5, "change": 12.3, "pChange": 0.5,
			"intraDayHighLow": {"min": 2460.0, "max": 2495.0},
			"weekHighLow": {"min": 2100.0, "max": 2650.0}
		},
		"securityWiseDP": {"quantityTraded": 4500000}
	}`, `{}`)
	defer server.Close()

	svc := NewNSEService(server.URL, refdata.Default(), 5*time.Second)
	rec, err := svc.FetchQuote(context.Background(), "RELIANCE.NS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Symbol != "RELIANCE.NS" {
		t.Errorf("expected requested symbol preserved, got %s", rec.Symbol)
	}
	if rec.Name != "Reliance Industries Limited" {
		t.Errorf("unexpected name: %s", rec.Name)
	}
	if rec.Price.StringFixed(1) != "2485.5" {
		t.Errorf("unexpected price: %s", rec.Price)
	}
	if rec.Sector != "Oil & Gas" {
		t.Errorf("unexpected sector: %s", rec.Sector)
	}
	if rec.Week52High.StringFixed(1) != "2650.0" {
		t.Errorf("unexpected 52-week high: %s", rec.Week52High)
	}
	if rec.Volume != 4500000 {
		t.Errorf("unexpected volume: %d", rec.Volume)
	}
	if rec.Source != "nse" {
		t.Errorf("expected source 'nse', got %s", rec.Source)
	}
	if !rec.HasPrice() {
		t.Error("expected record to carry a price")
	}
}

func TestNSEService_FetchQuote_NotFound(t *testing.T) {
	freshRegistry(t)
	server := nseTestServer(t, http.StatusNotFound, `{}`, `{}`)
	defer server.Close()

	svc := NewNSEService(server.URL, refdata.Default(), 5*time.Second)
	_, err := svc.FetchQuote(context.Background(), "NOSUCH")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestNSEService_FetchQuote_NoPrice(t *testing.T) {
	freshRegistry(t)
	server := nseTestServer(t, http.StatusOK, `{"info": {"symbol": "X"}, "priceInfo": {"lastPrice": 0}}`, `{}`)
	defer server.Close()

	svc := NewNSEService(server.URL, refdata.Default(), 5*time.Second)
	_, err := svc.FetchQuote(context.Background(), "X")
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for priceless payload, got: %v", err)
	}
}

func TestNSEService_Search(t *testing.T) {
	freshRegistry(t)
	server := nseTestServer(t, http.StatusOK, `{}`, `{
		"symbols": [
			{"symbol": "TCS", "symbol_info": "Tata Consultancy Services Limited"},
			{"symbol": "TCSLTD", "symbol_info": "TCS Industries"},
			{"symbol": "", "symbol_info": "ignored"}
		]
	}`)
	defer server.Close()

	svc := NewNSEService(server.URL, refdata.Default(), 5*time.Second)
	results, err := svc.Search(context.Background(), "tcs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Symbol != "TCS.NS" {
		t.Errorf("expected .NS suffix, got %s", results[0].Symbol)
	}
	if results[0].LogoURL == "" {
		t.Error("expected a logo URL on every result")
	}
	// TCS is in the catalog, so the real-domain logo applies
	if results[0].LogoURL != "https://logo.clearbit.com/tcs.com" {
		t.Errorf("expected catalog logo, got %s", results[0].LogoURL)
	}
	if results[0].Region != "India" || results[0].Exchange != "NSE" {
		t.Errorf("unexpected region/exchange: %+v", results[0])
	}
}

func TestNSEService_PrimeRecoversAfterFailure(t *testing.T) {
	freshRegistry(t)
	var homeCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if homeCalls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/search/autocomplete", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"symbols": [{"symbol": "TCS", "symbol_info": "Tata Consultancy Services Limited"}]}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	svc := NewNSEService(server.URL, refdata.Default(), 5*time.Second)

	// First call fails while the homepage is down
	if _, err := svc.Search(context.Background(), "tcs"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable while upstream is down, got: %v", err)
	}

	// Once the homepage recovers, the session prime must be retried
	results, err := svc.Search(context.Background(), "tcs")
	if err != nil {
		t.Fatalf("expected recovery after upstream came back, got: %v", err)
	}
	if len(results) != 1 || results[0].Symbol != "TCS.NS" {
		t.Errorf("unexpected results after recovery: %+v", results)
	}
	if got := homeCalls.Load(); got != 2 {
		t.Errorf("expected the prime to run again after failing, home calls: %d", got)
	}

	// A successful prime sticks: further calls reuse the session
	if _, err := svc.Search(context.Background(), "tcs"); err != nil {
		t.Fatalf("unexpected error on primed session: %v", err)
	}
	if got := homeCalls.Load(); got != 2 {
		t.Errorf("expected no extra prime after success, home calls: %d", got)
	}
}

func TestNSEService_Search_UpstreamDown(t *testing.T) {
	freshRegistry(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := NewNSEService(server.URL, refdata.Default(), 5*time.Second)
	_, err := svc.Search(context.Background(), "tcs")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got: %v", err)
	}
}
