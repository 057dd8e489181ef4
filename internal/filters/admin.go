package filters

import "github.com/stwalsh4118/icyapa/internal/models"

// BuildingsByName keeps buildings whose name contains term.
func BuildingsByName(buildings []models.Building, term string) []models.Building {
	q := normalize(term)
	out := []models.Building{}
	for _, b := range buildings {
		if containsFold(b.BuildingName, q) {
			out = append(out, b)
		}
	}
	return out
}

// ZonesByName keeps zones whose name contains term.
func ZonesByName(zones []models.StreetZone, term string) []models.StreetZone {
	q := normalize(term)
	out := []models.StreetZone{}
	for _, z := range zones {
		if containsFold(z.ZoneName, q) {
			out = append(out, z)
		}
	}
	return out
}

// BusinessesByName keeps businesses whose name contains term.
func BusinessesByName(businesses []models.Business, term string) []models.Business {
	q := normalize(term)
	out := []models.Business{}
	for _, b := range businesses {
		if containsFold(b.BusinessName, q) {
			out = append(out, b)
		}
	}
	return out
}

// PendingBusinesses keeps businesses awaiting verification.
func PendingBusinesses(businesses []models.Business) []models.Business {
	out := []models.Business{}
	for _, b := range businesses {
		if !b.IsVerified {
			out = append(out, b)
		}
	}
	return out
}

// SuggestedBuildings keeps buildings proposed by users.
func SuggestedBuildings(buildings []models.Building) []models.Building {
	out := []models.Building{}
	for _, b := range buildings {
		if b.IsUserSuggested {
			out = append(out, b)
		}
	}
	return out
}
