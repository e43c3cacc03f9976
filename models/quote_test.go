package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestQuoteRecord_HasPrice(t *testing.T) {
	q := QuoteRecord{Symbol: "TCS.NS"}
	if q.HasPrice() {
		t.Error("zero price should not count as a price")
	}
	q.Price = decimal.NewFromFloat(3850.25)
	if !q.HasPrice() {
		t.Error("expected HasPrice after setting a price")
	}
}

func TestQuoteRecord_Merge_FillsOnlyGaps(t *testing.T) {
	q := &QuoteRecord{
		Symbol: "RELIANCE.NS",
		Name:   "Reliance Industries Limited",
		Price:  decimal.NewFromFloat(2485.5),
		Source: "yahoo",
	}
	q.Merge(&QuoteRecord{
		Name:    "Should Not Win",
		Price:   decimal.NewFromFloat(1.0),
		Sector:  "Oil & Gas",
		PERatio: 15.2,
		CEO:     "Mukesh Ambani",
		Source:  "catalog",
	})

	if q.Name != "Reliance Industries Limited" {
		t.Errorf("existing name overwritten: %s", q.Name)
	}
	if !q.Price.Equal(decimal.NewFromFloat(2485.5)) {
		t.Errorf("existing price overwritten: %s", q.Price)
	}
	if q.Source != "yahoo" {
		t.Errorf("existing source overwritten: %s", q.Source)
	}
	if q.Sector != "Oil & Gas" {
		t.Errorf("gap not filled: sector %q", q.Sector)
	}
	if q.PERatio != 15.2 {
		t.Errorf("gap not filled: pe %.1f", q.PERatio)
	}
	if q.CEO != "Mukesh Ambani" {
		t.Errorf("gap not filled: ceo %q", q.CEO)
	}
}

func TestQuoteRecord_Merge_Nil(t *testing.T) {
	q := &QuoteRecord{Symbol: "TCS.NS", Name: "TCS"}
	q.Merge(nil)
	if q.Name != "TCS" {
		t.Error("nil merge must be a no-op")
	}
}

func TestQuoteRecord_Merge_Holdings(t *testing.T) {
	q := &QuoteRecord{PromoterHolding: 72.2}
	q.Merge(&QuoteRecord{PromoterHolding: 1, InstitutionalHolding: 15.8, PublicHolding: 12.0})

	if q.PromoterHolding != 72.2 {
		t.Errorf("promoter holding overwritten: %.1f", q.PromoterHolding)
	}
	if q.InstitutionalHolding != 15.8 || q.PublicHolding != 12.0 {
		t.Errorf("holdings gaps not filled: %.1f / %.1f", q.InstitutionalHolding, q.PublicHolding)
	}
}
