package refdata

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Descriptor is the static profile of a known company: everything that does
// not change intraday. Providers and the synthetic filler use it to complete
// records when live sources only return price data.
type Descriptor struct {
	Symbol               string
	Name                 string
	Sector               string
	Exchange             string
	Region               string
	Domain               string
	Description          string
	CEO                  string
	Founded              string
	Website              string
	MarketCap            string
	PERatio              float64
	PBRatio              float64
	ROE                  float64
	ROA                  float64
	DebtToEquity         float64
	CurrentRatio         float64
	PromoterHolding      float64
	InstitutionalHolding float64
	PublicHolding        float64
}

// LogoURL returns a real-logo URL for the company's domain.
func (d Descriptor) LogoURL() string {
	return "https://logo.clearbit.com/" + d.Domain
}

// Catalog is a read-only reference dataset mapping symbols to descriptors.
// It is injected into providers and the synthetic filler rather than being a
// package-level global, so tests can substitute a fixture catalog.
type Catalog struct {
	bySymbol map[string]Descriptor
	ordered  []Descriptor
}

// NewCatalog builds a catalog from the given descriptors. Lookup keys are
// bare symbols: exchange suffixes (".NS", ".BO") are stripped.
func NewCatalog(entries []Descriptor) *Catalog {
	c := &Catalog{
		bySymbol: make(map[string]Descriptor, len(entries)),
		ordered:  make([]Descriptor, 0, len(entries)),
	}
	for _, d := range entries {
		key := CleanSymbol(d.Symbol)
		if _, dup := c.bySymbol[key]; dup {
			continue
		}
		c.bySymbol[key] = d
		c.ordered = append(c.ordered, d)
	}
	return c
}

// Lookup returns the descriptor for a symbol, tolerating exchange suffixes.
func (c *Catalog) Lookup(symbol string) (Descriptor, bool) {
	d, ok := c.bySymbol[CleanSymbol(symbol)]
	return d, ok
}

// All returns every descriptor in declaration order.
func (c *Catalog) All() []Descriptor {
	return c.ordered
}

// Match returns descriptors whose symbol, name, or sector contains the query
// (case-insensitive). This is the comprehensive-fallback matching rule: a
// query like "bank" matches every company in the Banking sector.
func (c *Catalog) Match(query string) []Descriptor {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []Descriptor
	for _, d := range c.ordered {
		if strings.Contains(strings.ToLower(d.Symbol), q) ||
			strings.Contains(strings.ToLower(d.Name), q) ||
			strings.Contains(strings.ToLower(d.Sector), q) {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

// CleanSymbol strips NSE/BSE exchange suffixes from a symbol.
func CleanSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	s = strings.TrimSuffix(s, ".NS")
	s = strings.TrimSuffix(s, ".BO")
	return s
}

// FallbackLogoURL builds a generated-avatar logo from the first word of the
// company name. Used when no domain is known for the symbol.
func FallbackLogoURL(name string) string {
	initial := name
	if i := strings.IndexByte(name, ' '); i > 0 {
		initial = name[:i]
	}
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(initial) +
		"&background=6366f1&color=fff&size=64&bold=true"
}

// FormatMarketCap renders a rupee market-cap figure in crore units.
func FormatMarketCap(value decimal.Decimal) string {
	f, _ := value.Float64()
	switch {
	case f >= 1e12:
		return "₹" + decimal.NewFromFloat(f/1e12).StringFixed(1) + " L Cr"
	case f >= 1e10:
		return "₹" + decimal.NewFromFloat(f/1e10).StringFixed(0) + " K Cr"
	case f >= 1e7:
		return "₹" + decimal.NewFromFloat(f/1e7).StringFixed(0) + " Cr"
	default:
		return "₹" + value.StringFixed(0)
	}
}
