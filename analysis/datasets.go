package analysis

import (
	"fmt"

	"github.com/shopspring/decimal"

	"stock-scout/models"
)

// Datasets attaches renderable charts and tables to a response. Every
// category maps to at least one chart and one table; unknown categories use
// the overview dataset. Series are derived from the quote record with fixed
// multipliers, so the same record always yields the same dataset.

// BuildCharts returns the chart set for a category.
func BuildCharts(category models.AnalysisCategory, stock *models.QuoteRecord) []models.ChartSpec {
	switch category.Normalize() {
	case models.CategoryFundamentals:
		return []models.ChartSpec{ratioChart(stock)}
	case models.CategoryShareholding:
		return []models.ChartSpec{holdingChart(stock)}
	case models.CategoryFinancials:
		return []models.ChartSpec{rangeChart(stock), priceTrendChart(stock)}
	default:
		return []models.ChartSpec{priceTrendChart(stock)}
	}
}

// BuildTables returns the table set for a category.
func BuildTables(category models.AnalysisCategory, stock *models.QuoteRecord) []models.TableSpec {
	switch category.Normalize() {
	case models.CategoryFundamentals:
		return []models.TableSpec{ratioTable(stock)}
	case models.CategoryShareholding:
		return []models.TableSpec{holdingTable(stock)}
	case models.CategoryFinancials:
		return []models.TableSpec{marketTable(stock)}
	default:
		return []models.TableSpec{overviewTable(stock)}
	}
}

// trendFactors shape a six-point pseudo-history ending at the live price.
var trendFactors = []float64{0.92, 0.95, 0.97, 0.94, 0.99, 1.0}

var trendLabels = []string{"5M ago", "4M ago", "3M ago", "2M ago", "1M ago", "Now"}

func priceTrendChart(stock *models.QuoteRecord) models.ChartSpec {
	points := make([]models.ChartPoint, len(trendFactors))
	price := decimal.Zero
	if stock != nil {
		price = stock.Price
	}
	for i, f := range trendFactors {
		v, _ := price.Mul(decimal.NewFromFloat(f)).Round(2).Float64()
		points[i] = models.ChartPoint{Label: trendLabels[i], Value: v}
	}
	return models.ChartSpec{Type: models.ChartLine, Title: "Price Trend", Points: points}
}

func ratioChart(stock *models.QuoteRecord) models.ChartSpec {
	var pe, pb, roe, roa float64
	if stock != nil {
		pe, pb, roe, roa = stock.PERatio, stock.PBRatio, stock.ROE, stock.ROA
	}
	return models.ChartSpec{
		Type:  models.ChartBar,
		Title: "Key Ratios",
		Points: []models.ChartPoint{
			{Label: "P/E", Value: pe},
			{Label: "P/B", Value: pb},
			{Label: "ROE %", Value: roe},
			{Label: "ROA %", Value: roa},
		},
	}
}

func holdingChart(stock *models.QuoteRecord) models.ChartSpec {
	var promoter, institutional, public float64
	if stock != nil {
		promoter, institutional, public = stock.PromoterHolding, stock.InstitutionalHolding, stock.PublicHolding
	}
	return models.ChartSpec{
		Type:  models.ChartPie,
		Title: "Shareholding Pattern",
		Points: []models.ChartPoint{
			{Label: "Promoters", Value: promoter},
			{Label: "Institutions", Value: institutional},
			{Label: "Public", Value: public},
		},
	}
}

func rangeChart(stock *models.QuoteRecord) models.ChartSpec {
	var low, high, price float64
	if stock != nil {
		low, _ = stock.Week52Low.Float64()
		high, _ = stock.Week52High.Float64()
		price, _ = stock.Price.Float64()
	}
	return models.ChartSpec{
		Type:  models.ChartBar,
		Title: "52-Week Range",
		Points: []models.ChartPoint{
			{Label: "52W Low", Value: low},
			{Label: "Current", Value: price},
			{Label: "52W High", Value: high},
		},
	}
}

func overviewTable(stock *models.QuoteRecord) models.TableSpec {
	t := models.TableSpec{
		Title:   "Key Statistics",
		Headers: []string{"Metric", "Value"},
	}
	if stock == nil {
		t.Rows = [][]string{{"Data", "unavailable"}}
		return t
	}
	t.Rows = [][]string{
		{"Price", stock.Price.StringFixed(2)},
		{"Change", fmt.Sprintf("%s (%s%%)", stock.Change.StringFixed(2), stock.ChangePercent.StringFixed(2))},
		{"Market Cap", stock.MarketCap},
		{"Sector", stock.Sector},
		{"Exchange", stock.Exchange},
		{"P/E Ratio", fmt.Sprintf("%.1f", stock.PERatio)},
	}
	return t
}

func ratioTable(stock *models.QuoteRecord) models.TableSpec {
	t := models.TableSpec{
		Title:   "Fundamental Ratios",
		Headers: []string{"Ratio", "Value", "Reading"},
	}
	if stock == nil {
		t.Rows = [][]string{{"Data", "unavailable", ""}}
		return t
	}
	t.Rows = [][]string{
		{"P/E", fmt.Sprintf("%.1f", stock.PERatio), peReading(stock.PERatio)},
		{"P/B", fmt.Sprintf("%.1f", stock.PBRatio), ""},
		{"ROE", fmt.Sprintf("%.1f%%", stock.ROE), roeReading(stock.ROE)},
		{"ROA", fmt.Sprintf("%.1f%%", stock.ROA), ""},
		{"Debt/Equity", fmt.Sprintf("%.2f", stock.DebtToEquity), leverageWord(stock.DebtToEquity)},
		{"Current Ratio", fmt.Sprintf("%.2f", stock.CurrentRatio), liquidityWord(stock.CurrentRatio)},
	}
	return t
}

func holdingTable(stock *models.QuoteRecord) models.TableSpec {
	t := models.TableSpec{
		Title:   "Shareholding Breakdown",
		Headers: []string{"Holder", "Stake"},
	}
	if stock == nil {
		t.Rows = [][]string{{"Data", "unavailable"}}
		return t
	}
	t.Rows = [][]string{
		{"Promoters", fmt.Sprintf("%.1f%%", stock.PromoterHolding)},
		{"Institutions", fmt.Sprintf("%.1f%%", stock.InstitutionalHolding)},
		{"Public", fmt.Sprintf("%.1f%%", stock.PublicHolding)},
	}
	return t
}

func marketTable(stock *models.QuoteRecord) models.TableSpec {
	t := models.TableSpec{
		Title:   "Market Data",
		Headers: []string{"Metric", "Value"},
	}
	if stock == nil {
		t.Rows = [][]string{{"Data", "unavailable"}}
		return t
	}
	t.Rows = [][]string{
		{"Price", stock.Price.StringFixed(2)},
		{"Day Range", fmt.Sprintf("%s - %s", stock.DayLow.StringFixed(2), stock.DayHigh.StringFixed(2))},
		{"52-Week Range", fmt.Sprintf("%s - %s", stock.Week52Low.StringFixed(2), stock.Week52High.StringFixed(2))},
		{"Volume", fmt.Sprintf("%d", stock.Volume)},
		{"Market Cap", stock.MarketCap},
	}
	return t
}

func peReading(pe float64) string {
	switch {
	case pe <= 0:
		return "n/a"
	case pe < 15:
		return "inexpensive"
	case pe < 30:
		return "fair"
	default:
		return "expensive"
	}
}

func roeReading(roe float64) string {
	switch {
	case roe >= 20:
		return "excellent"
	case roe >= 12:
		return "healthy"
	default:
		return "weak"
	}
}
