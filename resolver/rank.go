package resolver

import (
	"sort"
	"strings"

	"stock-scout/models"
	"stock-scout/refdata"
)

// Relevance tiers, best first. Anything that matches none of the rules
// keeps the lowest tier but is not dropped: a provider thought it relevant.
const (
	tierExactSymbol = iota
	tierSymbolPrefix
	tierNamePrefix
	tierSymbolContains
	tierOther
)

// rankTier classifies how well a result matches the query.
func rankTier(r models.SearchResult, query string) int {
	q := strings.ToUpper(strings.TrimSpace(query))
	sym := strings.ToUpper(refdata.CleanSymbol(r.Symbol))
	name := strings.ToUpper(r.Name)

	switch {
	case sym == q:
		return tierExactSymbol
	case strings.HasPrefix(sym, q):
		return tierSymbolPrefix
	case strings.HasPrefix(name, q):
		return tierNamePrefix
	case strings.Contains(sym, q):
		return tierSymbolContains
	default:
		return tierOther
	}
}

// DedupAndRank merges results from all search providers into one ranked
// list. Duplicate symbols keep the first occurrence, which preserves
// provider priority: results arrive concatenated in provider order.
// The ranked list is capped at maxResults.
func DedupAndRank(results []models.SearchResult, query string, maxResults int) []models.SearchResult {
	seen := make(map[string]bool, len(results))
	deduped := make([]models.SearchResult, 0, len(results))
	for _, r := range results {
		key := refdata.CleanSymbol(r.Symbol)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, r)
	}

	// Stable sort keeps provider order within a tier.
	sort.SliceStable(deduped, func(i, j int) bool {
		return rankTier(deduped[i], query) < rankTier(deduped[j], query)
	})

	if maxResults > 0 && len(deduped) > maxResults {
		deduped = deduped[:maxResults]
	}
	return deduped
}
