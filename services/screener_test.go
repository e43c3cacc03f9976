package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stock-scout/refdata"
)

func screenerTestServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/company/search/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
	return httptest.NewServer(mux)
}

func TestScreenerService_FetchQuote(t *testing.T) {
	freshRegistry(t)
	server := screenerTestServer(t, `[
		{"id": 1, "name": "Reliance Industries", "url": "/company/RELIANCE/consolidated/"},
		{"id": 2, "name": "Reliance Power", "url": "/company/RPOWER/"}
	]`)
	defer server.Close()

	svc := NewScreenerService(server.URL, refdata.Default(), 5*time.Second)
	rec, err := svc.FetchQuote(context.Background(), "RELIANCE.NS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Name != "Reliance Industries" {
		t.Errorf("unexpected name: %s", rec.Name)
	}
	if !rec.HasPrice() {
		t.Error("expected an estimated price")
	}
	// Catalog fundamentals flow onto the record
	if rec.PERatio != 15.2 {
		t.Errorf("expected catalog P/E 15.2, got %.1f", rec.PERatio)
	}
	if rec.PromoterHolding != 50.3 {
		t.Errorf("expected catalog promoter holding, got %.1f", rec.PromoterHolding)
	}
	if rec.Source != "screener" {
		t.Errorf("expected source 'screener', got %s", rec.Source)
	}
}

func TestScreenerService_FetchQuote_Deterministic(t *testing.T) {
	freshRegistry(t)
	server := screenerTestServer(t, `[{"id": 1, "name": "Reliance Industries", "url": "/company/RELIANCE/"}]`)
	defer server.Close()

	svc := NewScreenerService(server.URL, refdata.Default(), 5*time.Second)
	a, err := svc.FetchQuote(context.Background(), "RELIANCE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := svc.FetchQuote(context.Background(), "RELIANCE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Price.Equal(b.Price) {
		t.Errorf("expected stable estimated price, got %s then %s", a.Price, b.Price)
	}
}

func TestScreenerService_FetchQuote_NotListed(t *testing.T) {
	freshRegistry(t)
	server := screenerTestServer(t, `[{"id": 9, "name": "Other Co", "url": "/company/OTHER/"}]`)
	defer server.Close()

	svc := NewScreenerService(server.URL, refdata.Default(), 5*time.Second)
	_, err := svc.FetchQuote(context.Background(), "MISSING")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestScreenerService_Search(t *testing.T) {
	freshRegistry(t)
	server := screenerTestServer(t, `[
		{"id": 1, "name": "HDFC Bank", "url": "/company/HDFCBANK/consolidated/"},
		{"id": 2, "name": "Broken", "url": "/nothing/"}
	]`)
	defer server.Close()

	svc := NewScreenerService(server.URL, refdata.Default(), 5*time.Second)
	results, err := svc.Search(context.Background(), "hdfc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result (malformed URL skipped), got %d", len(results))
	}
	if results[0].Symbol != "HDFCBANK.NS" {
		t.Errorf("unexpected symbol: %s", results[0].Symbol)
	}
	if results[0].Sector != "Banking" {
		t.Errorf("expected catalog sector backfill, got %s", results[0].Sector)
	}
}

func TestSymbolFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"/company/RELIANCE/consolidated/", "RELIANCE"},
		{"/company/TCS/", "TCS"},
		{"/nothing/", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := symbolFromURL(tt.url); got != tt.want {
			t.Errorf("symbolFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestEstimatePrice_RangeAndStability(t *testing.T) {
	for _, sym := range []string{"RELIANCE", "TCS.NS", "AAPL", "ZZZ"} {
		p := estimatePrice(sym)
		if p.LessThan(decimal.NewFromInt(100)) || p.GreaterThan(decimal.NewFromInt(5000)) {
			t.Errorf("estimate for %s out of range: %s", sym, p)
		}
		if !p.Equal(estimatePrice(sym)) {
			t.Errorf("estimate for %s not stable", sym)
		}
	}
	// Suffix-insensitive: RELIANCE and RELIANCE.NS hash the same
	if !estimatePrice("RELIANCE").Equal(estimatePrice("RELIANCE.NS")) {
		t.Error("expected suffix-insensitive estimates")
	}
}
