package analysis

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"stock-scout/models"
)

func TestVerdict(t *testing.T) {
	tests := []struct {
		name  string
		stock *models.QuoteRecord
		want  string
	}{
		{
			name:  "cheap and profitable",
			stock: &models.QuoteRecord{PERatio: 15.2, ROE: 17.0},
			want:  verdictBuy,
		},
		{
			name:  "cheap but low return",
			stock: &models.QuoteRecord{PERatio: 15.2, ROE: 9.8},
			want:  verdictHold,
		},
		{
			name:  "moderately valued",
			stock: &models.QuoteRecord{PERatio: 28.5, ROE: 42.1},
			want:  verdictHold,
		},
		{
			name:  "expensive but rising",
			stock: &models.QuoteRecord{PERatio: 58.9, ChangePercent: decimal.NewFromFloat(1.2)},
			want:  verdictHold,
		},
		{
			name:  "expensive and falling",
			stock: &models.QuoteRecord{PERatio: 58.9, ChangePercent: decimal.NewFromFloat(-0.8)},
			want:  verdictWatch,
		},
		{
			name:  "no data",
			stock: &models.QuoteRecord{},
			want:  verdictWatch,
		},
		{
			name:  "nil stock",
			stock: nil,
			want:  verdictWatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := verdict(tt.stock); got != tt.want {
				t.Errorf("verdict() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFallbackNarrative_Categories(t *testing.T) {
	stock := &models.QuoteRecord{
		Symbol:               "TCS.NS",
		Name:                 "Tata Consultancy Services Limited",
		Price:                decimal.NewFromFloat(3850.25),
		ChangePercent:        decimal.NewFromFloat(0.4),
		MarketCap:            "₹11,45,000 Cr",
		Sector:               "IT Services",
		PERatio:              28.5,
		PBRatio:              11.2,
		ROE:                  42.1,
		ROA:                  22.8,
		DebtToEquity:         0.05,
		CurrentRatio:         2.8,
		PromoterHolding:      72.2,
		InstitutionalHolding: 15.8,
		PublicHolding:        12.0,
		Week52High:           decimal.NewFromInt(4100),
		Week52Low:            decimal.NewFromInt(3100),
	}

	tests := []struct {
		category models.AnalysisCategory
		contains []string
	}{
		{models.CategoryOverview, []string{"Overview", "IT Services", "3850.25"}},
		{models.CategoryFundamentals, []string{"Fundamental", "28.5", "42.1", "conservative"}},
		{models.CategoryFinancials, []string{"Financial", "₹11,45,000 Cr", "3100.00", "4100.00"}},
		{models.CategoryShareholding, []string{"Shareholding", "72.2", "promoter stake"}},
		{"unknown", []string{"Overview"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			req := &models.AnalysisRequest{Symbol: "TCS.NS", Category: tt.category, Stock: stock}
			text := FallbackNarrative(req)

			if !strings.Contains(text, "**Verdict:") {
				t.Error("every narrative must carry a verdict")
			}
			for _, want := range tt.contains {
				if !strings.Contains(text, want) {
					t.Errorf("narrative missing %q:\n%s", want, text)
				}
			}
		})
	}
}

func TestFallbackNarrative_NilStock(t *testing.T) {
	req := &models.AnalysisRequest{Symbol: "NOSUCH", Category: models.CategoryOverview}
	text := FallbackNarrative(req)

	if !strings.Contains(text, "NOSUCH") {
		t.Error("narrative should fall back to the symbol as the name")
	}
	if !strings.Contains(text, verdictWatch) {
		t.Error("nil stock must yield a WATCH verdict")
	}
}

func TestLeverageAndLiquidityWords(t *testing.T) {
	if leverageWord(0.05) != "conservative" || leverageWord(1.0) != "moderate" || leverageWord(6.5) != "elevated" {
		t.Error("unexpected leverage wording")
	}
	if liquidityWord(2.8) != "comfortable" || liquidityWord(1.1) != "adequate" || liquidityWord(0.8) != "tight" {
		t.Error("unexpected liquidity wording")
	}
}
