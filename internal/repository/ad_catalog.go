package repository

import (
	"strings"

	"github.com/stwalsh4118/icyapa/internal/models"
)

// AdQuery narrows the active ads returned by AdCatalog.Find. Empty fields
// do not filter.
type AdQuery struct {
	Type     models.AdType
	Location string
	Category string
}

// AdCatalog is a read-only set of ads, seeded once and never mutated.
type AdCatalog struct {
	ads []models.Ad
}

// NewAdCatalog copies ads into a new catalog.
func NewAdCatalog(ads []models.Ad) *AdCatalog {
	return &AdCatalog{ads: append([]models.Ad(nil), ads...)}
}

// Active returns every active ad in seed order.
func (c *AdCatalog) Active() []models.Ad {
	return c.Find(AdQuery{})
}

// Find returns active ads matching q. An ad without a location or category
// target is shown everywhere; a targeted ad is shown when the requested
// location or category contains its target (case-insensitive).
func (c *AdCatalog) Find(q AdQuery) []models.Ad {
	out := []models.Ad{}
	for _, ad := range c.ads {
		if !ad.IsActive {
			continue
		}
		if q.Type != "" && ad.AdType != q.Type {
			continue
		}
		if !targetMatches(ad.TargetLocation, q.Location) || !targetMatches(ad.TargetCategory, q.Category) {
			continue
		}
		out = append(out, ad)
	}
	return out
}

// ForBusiness returns the active ads booked by a business.
func (c *AdCatalog) ForBusiness(businessID string) []models.Ad {
	out := []models.Ad{}
	for _, ad := range c.ads {
		if ad.IsActive && ad.AdvertiserBusinessID == businessID {
			out = append(out, ad)
		}
	}
	return out
}

func targetMatches(target, requested string) bool {
	if target == "" || requested == "" {
		return true
	}
	return strings.Contains(strings.ToLower(requested), strings.ToLower(target))
}
