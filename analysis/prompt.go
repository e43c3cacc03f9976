package analysis

import (
	"fmt"
	"strings"

	"stock-scout/models"
)

// systemPrompt frames every generation request. The assistant identity is
// brand-neutral; redaction scrubs anything a backend adds on its own.
const systemPrompt = `You are an experienced equity research analyst. Write clear,
structured stock analysis for retail investors. Use the provided market data
only; do not invent figures. Present risks alongside positives. Never mention
which AI system or model produced the analysis.`

// categoryPrompts holds the instruction block per analysis category.
var categoryPrompts = map[models.AnalysisCategory]string{
	models.CategoryOverview: `Give a company overview: what the business does, its market
position, recent price action, and a short outlook. End with a one-line
view (positive, neutral, or cautious).`,
	models.CategoryFundamentals: `Analyze the fundamentals: valuation (P/E, P/B), profitability
(ROE, ROA), leverage (debt-to-equity), and liquidity (current ratio).
Compare each figure against typical levels for the sector and conclude
whether the valuation looks stretched, fair, or attractive.`,
	models.CategoryFinancials: `Review the financial profile: market capitalisation, trading
range (day and 52-week), and volume. Comment on momentum based on the
day change and where the price sits within its 52-week range.`,
	models.CategoryShareholding: `Analyze the shareholding pattern: promoter, institutional,
and public holdings. Explain what the mix signals about insider conviction
and institutional interest, and flag any concentration risk.`,
}

// BuildPrompt assembles the user prompt for a request: a data context block
// followed by the category instructions or the custom query.
func BuildPrompt(req *models.AnalysisRequest) string {
	var b strings.Builder

	b.WriteString("Stock data:\n")
	writeContext(&b, req.Stock)
	b.WriteString("\n")

	category := req.Category.Normalize()
	if category == models.CategoryCustom && strings.TrimSpace(req.CustomQuery) != "" {
		b.WriteString("Question: ")
		b.WriteString(strings.TrimSpace(req.CustomQuery))
		b.WriteString("\nAnswer using only the data above.")
	} else {
		instr, ok := categoryPrompts[category]
		if !ok {
			instr = categoryPrompts[models.CategoryOverview]
		}
		b.WriteString(instr)
	}

	return b.String()
}

// writeContext renders the quote record as a compact key:value block.
func writeContext(b *strings.Builder, stock *models.QuoteRecord) {
	if stock == nil {
		b.WriteString("- no market data available\n")
		return
	}

	fmt.Fprintf(b, "- Symbol: %s\n", stock.Symbol)
	if stock.Name != "" {
		fmt.Fprintf(b, "- Name: %s\n", stock.Name)
	}
	if !stock.Price.IsZero() {
		fmt.Fprintf(b, "- Price: %s (change %s, %s%%)\n",
			stock.Price.StringFixed(2), stock.Change.StringFixed(2), stock.ChangePercent.StringFixed(2))
	}
	if stock.MarketCap != "" {
		fmt.Fprintf(b, "- Market cap: %s\n", stock.MarketCap)
	}
	if stock.Sector != "" {
		fmt.Fprintf(b, "- Sector: %s\n", stock.Sector)
	}
	if stock.PERatio != 0 {
		fmt.Fprintf(b, "- P/E: %.1f, P/B: %.1f\n", stock.PERatio, stock.PBRatio)
	}
	if stock.ROE != 0 {
		fmt.Fprintf(b, "- ROE: %.1f%%, ROA: %.1f%%\n", stock.ROE, stock.ROA)
	}
	if stock.DebtToEquity != 0 {
		fmt.Fprintf(b, "- Debt/Equity: %.2f, Current ratio: %.2f\n", stock.DebtToEquity, stock.CurrentRatio)
	}
	if !stock.Week52High.IsZero() {
		fmt.Fprintf(b, "- 52-week range: %s - %s\n",
			stock.Week52Low.StringFixed(2), stock.Week52High.StringFixed(2))
	}
	if stock.PromoterHolding != 0 || stock.InstitutionalHolding != 0 || stock.PublicHolding != 0 {
		fmt.Fprintf(b, "- Holdings: promoter %.1f%%, institutional %.1f%%, public %.1f%%\n",
			stock.PromoterHolding, stock.InstitutionalHolding, stock.PublicHolding)
	}
	if stock.Description != "" {
		fmt.Fprintf(b, "- About: %s\n", stock.Description)
	}
}
