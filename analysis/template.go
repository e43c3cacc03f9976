package analysis

import (
	"fmt"
	"strings"

	"stock-scout/models"
)

// Verdicts used by the fallback templates.
const (
	verdictBuy   = "BUY"
	verdictHold  = "HOLD"
	verdictWatch = "WATCH"
)

// verdict branches on valuation and profitability, with momentum as the
// tie-breaker for stretched valuations.
func verdict(stock *models.QuoteRecord) string {
	if stock == nil {
		return verdictWatch
	}
	switch {
	case stock.PERatio > 0 && stock.PERatio < 20 && stock.ROE > 15:
		return verdictBuy
	case stock.PERatio > 0 && stock.PERatio < 30:
		return verdictHold
	case stock.ChangePercent.IsPositive():
		return verdictHold
	default:
		return verdictWatch
	}
}

// FallbackNarrative renders a deterministic analysis when every generation
// backend has failed. The text is built entirely from the quote record, so
// the endpoint still answers with something grounded in real fields.
func FallbackNarrative(req *models.AnalysisRequest) string {
	stock := req.Stock
	name := req.Symbol
	if stock != nil && stock.Name != "" {
		name = stock.Name
	}

	var b strings.Builder
	v := verdict(stock)

	switch req.Category.Normalize() {
	case models.CategoryFundamentals:
		fmt.Fprintf(&b, "## %s - Fundamental Snapshot\n\n", name)
		if stock != nil {
			fmt.Fprintf(&b, "%s trades at a P/E of %.1f and a P/B of %.1f. ", name, stock.PERatio, stock.PBRatio)
			fmt.Fprintf(&b, "Return on equity stands at %.1f%% with return on assets of %.1f%%. ", stock.ROE, stock.ROA)
			fmt.Fprintf(&b, "Leverage is %s with debt-to-equity at %.2f, and the current ratio of %.2f ",
				leverageWord(stock.DebtToEquity), stock.DebtToEquity, stock.CurrentRatio)
			b.WriteString("indicates " + liquidityWord(stock.CurrentRatio) + " near-term liquidity.\n\n")
		}
		fmt.Fprintf(&b, "**Verdict: %s.** %s\n", v, verdictLine(v))

	case models.CategoryShareholding:
		fmt.Fprintf(&b, "## %s - Shareholding Pattern\n\n", name)
		if stock != nil {
			fmt.Fprintf(&b, "Promoters hold %.1f%%, institutions %.1f%%, and the public %.1f%%. ",
				stock.PromoterHolding, stock.InstitutionalHolding, stock.PublicHolding)
			if stock.PromoterHolding >= 50 {
				b.WriteString("A majority promoter stake signals strong insider conviction. ")
			} else if stock.InstitutionalHolding >= 40 {
				b.WriteString("Heavy institutional ownership suggests sustained professional interest. ")
			} else {
				b.WriteString("Ownership is broadly distributed with no dominant bloc. ")
			}
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "**Verdict: %s.** %s\n", v, verdictLine(v))

	case models.CategoryFinancials:
		fmt.Fprintf(&b, "## %s - Financial Profile\n\n", name)
		if stock != nil {
			fmt.Fprintf(&b, "The stock trades at %s", stock.Price.StringFixed(2))
			if stock.MarketCap != "" {
				fmt.Fprintf(&b, " with a market capitalisation of %s", stock.MarketCap)
			}
			fmt.Fprintf(&b, ". Today's move is %s%%, and the price sits between the 52-week band of %s to %s.\n\n",
				stock.ChangePercent.StringFixed(2), stock.Week52Low.StringFixed(2), stock.Week52High.StringFixed(2))
		}
		fmt.Fprintf(&b, "**Verdict: %s.** %s\n", v, verdictLine(v))

	default:
		fmt.Fprintf(&b, "## %s - Overview\n\n", name)
		if stock != nil {
			if stock.Description != "" {
				b.WriteString(stock.Description + ". ")
			}
			if stock.Sector != "" {
				fmt.Fprintf(&b, "The company operates in the %s sector. ", stock.Sector)
			}
			fmt.Fprintf(&b, "Shares last traded at %s (%s%% today)", stock.Price.StringFixed(2), stock.ChangePercent.StringFixed(2))
			if stock.MarketCap != "" {
				fmt.Fprintf(&b, " for a market value of %s", stock.MarketCap)
			}
			b.WriteString(".\n\n")
		}
		fmt.Fprintf(&b, "**Verdict: %s.** %s\n", v, verdictLine(v))
	}

	return b.String()
}

func verdictLine(v string) string {
	switch v {
	case verdictBuy:
		return "Reasonable valuation with healthy profitability supports accumulation on dips."
	case verdictHold:
		return "Valuation leaves limited margin of safety; existing holders can stay invested."
	default:
		return "Wait for either an earnings improvement or a better entry price before committing capital."
	}
}

func leverageWord(de float64) string {
	switch {
	case de < 0.5:
		return "conservative"
	case de < 1.5:
		return "moderate"
	default:
		return "elevated"
	}
}

func liquidityWord(cr float64) string {
	switch {
	case cr >= 1.5:
		return "comfortable"
	case cr >= 1.0:
		return "adequate"
	default:
		return "tight"
	}
}
