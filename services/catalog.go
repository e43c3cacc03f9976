package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/shopspring/decimal"

	"stock-scout/models"
	"stock-scout/observability"
	"stock-scout/refdata"
)

// CatalogService is the terminal provider in both failover chains. It never
// touches the network: quotes and matches come from the reference catalog,
// with prices estimated deterministically. It answers whenever every live
// provider is down, so it must not fail for any symbol the catalog knows.
type CatalogService struct {
	catalog *refdata.Catalog
}

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(catalog *refdata.Catalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// Name identifies this provider in logs, metrics, and Source fields.
func (s *CatalogService) Name() string {
	return "catalog"
}

// FetchQuote builds a quote from the catalog descriptor. The price is a
// stable estimate; the daily change is derived from the symbol as well so
// the same symbol always renders the same movement.
func (s *CatalogService) FetchQuote(ctx context.Context, symbol string) (*models.QuoteRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metrics := observability.GetMetrics()
	metrics.RecordProviderRequest(s.Name(), "quote")

	d, ok := s.catalog.Lookup(symbol)
	if !ok {
		metrics.RecordProviderError(s.Name(), "quote", "not_found")
		return nil, fmt.Errorf("%w: catalog does not know %s", ErrNotFound, symbol)
	}

	price := estimatePrice(symbol)
	change := estimateChange(symbol, price)
	changePct := decimal.Zero
	if !price.IsZero() {
		changePct = change.Div(price).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &models.QuoteRecord{
		Symbol:               symbol,
		Name:                 d.Name,
		Price:                price,
		Change:               change,
		ChangePercent:        changePct,
		MarketCap:            d.MarketCap,
		PERatio:              d.PERatio,
		PBRatio:              d.PBRatio,
		Sector:               d.Sector,
		Exchange:             d.Exchange,
		LogoURL:              d.LogoURL(),
		Description:          d.Description,
		CEO:                  d.CEO,
		Founded:              d.Founded,
		Website:              d.Website,
		ROE:                  d.ROE,
		ROA:                  d.ROA,
		DebtToEquity:         d.DebtToEquity,
		CurrentRatio:         d.CurrentRatio,
		PromoterHolding:      d.PromoterHolding,
		InstitutionalHolding: d.InstitutionalHolding,
		PublicHolding:        d.PublicHolding,
		Source:               s.Name(),
		Timestamp:            time.Now(),
	}, nil
}

// estimateChange derives a stable daily change within ±3% of the price.
func estimateChange(symbol string, price decimal.Decimal) decimal.Decimal {
	h := fnv.New32a()
	h.Write([]byte("chg:" + refdata.CleanSymbol(symbol)))
	// Spread across -300..300 basis points.
	bps := int64(h.Sum32()%601) - 300
	return price.Mul(decimal.NewFromInt(bps)).Div(decimal.NewFromInt(10000)).Round(2)
}

// Search matches the query against symbol, name, and sector of every
// catalog entry. A query like "bank" returns the whole banking sector.
func (s *CatalogService) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metrics := observability.GetMetrics()
	metrics.RecordProviderRequest(s.Name(), "search")

	matches := s.catalog.Match(query)
	out := make([]models.SearchResult, 0, len(matches))
	for _, d := range matches {
		out = append(out, models.SearchResult{
			Symbol:   d.Symbol,
			Name:     d.Name,
			Type:     "Equity",
			Region:   d.Region,
			Exchange: d.Exchange,
			Sector:   d.Sector,
			LogoURL:  d.LogoURL(),
			Source:   s.Name(),
		})
	}
	return out, nil
}
