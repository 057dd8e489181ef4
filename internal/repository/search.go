package repository

import (
	"strings"

	"github.com/stwalsh4118/icyapa/internal/models"
)

// MatchTier ranks how a business matched a search query. Lower tiers rank
// first; TierNone means no match.
type MatchTier int

const (
	TierNone MatchTier = iota
	// TierNamePrefix: the business name starts with the query.
	TierNamePrefix
	// TierNameContains: the name contains the query but does not start with it.
	TierNameContains
	// TierCategory: the name does not contain the query, a category does.
	TierCategory
)

// String returns the tier name used in API responses.
func (t MatchTier) String() string {
	switch t {
	case TierNamePrefix:
		return "name_prefix"
	case TierNameContains:
		return "name_contains"
	case TierCategory:
		return "category"
	default:
		return "none"
	}
}

// BusinessHit is a matched business and the tier it qualified for.
type BusinessHit struct {
	Business models.Business
	Tier     MatchTier
}

// SearchResult holds matches for the three entity types. Businesses are
// ordered by tier, then by collection order; buildings and zones keep
// collection order.
type SearchResult struct {
	Businesses []BusinessHit
	Buildings  []models.Building
	Zones      []models.StreetZone
}

// BusinessList returns the matched businesses without tier information.
func (r SearchResult) BusinessList() []models.Business {
	out := make([]models.Business, len(r.Businesses))
	for i, hit := range r.Businesses {
		out[i] = hit.Business
	}
	return out
}

// Total is the number of matches across all entity types.
func (r SearchResult) Total() int {
	return len(r.Businesses) + len(r.Buildings) + len(r.Zones)
}

// NormalizeQuery lower-cases and trims a raw query. An empty result means
// the query is blank.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// ClassifyBusiness returns the tier b qualifies for under the normalised
// query q. Each business lands in exactly one tier.
func ClassifyBusiness(b models.Business, q string) MatchTier {
	if q == "" {
		return TierNone
	}
	name := strings.ToLower(b.BusinessName)
	switch {
	case strings.HasPrefix(name, q):
		return TierNamePrefix
	case strings.Contains(name, q):
		return TierNameContains
	}
	for _, c := range b.Categories {
		if strings.Contains(strings.ToLower(c), q) {
			return TierCategory
		}
	}
	return TierNone
}

// searchCollections matches query against the given collections. Blank
// queries return empty (non-nil) lists rather than everything.
func searchCollections(query string, businesses []models.Business, buildings []models.Building, zones []models.StreetZone) SearchResult {
	result := SearchResult{
		Businesses: []BusinessHit{},
		Buildings:  []models.Building{},
		Zones:      []models.StreetZone{},
	}

	q := NormalizeQuery(query)
	if q == "" {
		return result
	}

	var tiers [TierCategory + 1][]BusinessHit
	for _, b := range businesses {
		if tier := ClassifyBusiness(b, q); tier != TierNone {
			tiers[tier] = append(tiers[tier], BusinessHit{Business: b.Clone(), Tier: tier})
		}
	}
	for _, hits := range tiers[TierNamePrefix:] {
		result.Businesses = append(result.Businesses, hits...)
	}

	for _, b := range buildings {
		if strings.Contains(strings.ToLower(b.BuildingName), q) ||
			strings.Contains(strings.ToLower(b.BuildingAddress), q) {
			result.Buildings = append(result.Buildings, b)
		}
	}

	for _, z := range zones {
		if strings.Contains(strings.ToLower(z.ZoneName), q) {
			result.Zones = append(result.Zones, z)
		}
	}

	return result
}
