package services

import (
	"context"
	"errors"
	"testing"

	"stock-scout/refdata"
)

func TestCatalogService_FetchQuote(t *testing.T) {
	svc := NewCatalogService(refdata.Default())

	rec, err := svc.FetchQuote(context.Background(), "TCS.NS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Name != "Tata Consultancy Services Limited" {
		t.Errorf("unexpected name: %s", rec.Name)
	}
	if !rec.HasPrice() {
		t.Error("catalog quotes must always carry a price")
	}
	if rec.PERatio != 28.5 {
		t.Errorf("expected catalog P/E, got %.1f", rec.PERatio)
	}
	if rec.Description == "" || rec.CEO == "" {
		t.Error("expected descriptive fields from the catalog")
	}
	if rec.Source != "catalog" {
		t.Errorf("expected source 'catalog', got %s", rec.Source)
	}
}

func TestCatalogService_FetchQuote_Deterministic(t *testing.T) {
	svc := NewCatalogService(refdata.Default())

	a, _ := svc.FetchQuote(context.Background(), "INFY.NS")
	b, _ := svc.FetchQuote(context.Background(), "INFY.NS")

	if !a.Price.Equal(b.Price) || !a.Change.Equal(b.Change) {
		t.Error("expected identical price and change on repeated fetches")
	}
}

func TestCatalogService_FetchQuote_Unknown(t *testing.T) {
	svc := NewCatalogService(refdata.Default())

	_, err := svc.FetchQuote(context.Background(), "UNKNOWN123")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestCatalogService_Search_SectorSubstring(t *testing.T) {
	svc := NewCatalogService(refdata.Default())

	results, err := svc.Search(context.Background(), "bank")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) < 3 {
		t.Fatalf("expected the banking sector to match, got %d results", len(results))
	}
	found := map[string]bool{}
	for _, r := range results {
		found[r.Symbol] = true
		if r.LogoURL == "" {
			t.Errorf("missing logo for %s", r.Symbol)
		}
	}
	for _, want := range []string{"HDFCBANK.NS", "ICICIBANK.NS", "SBIN.NS"} {
		if !found[want] {
			t.Errorf("expected %s in sector matches", want)
		}
	}
}

func TestCatalogService_Search_Cancelled(t *testing.T) {
	svc := NewCatalogService(refdata.Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Search(ctx, "bank"); err == nil {
		t.Error("expected context error")
	}
}
