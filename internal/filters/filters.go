// Package filters derives page-level views from collections that were
// already fetched from the directory store. Every function is pure: it
// never queries the store and never mutates its inputs.
package filters

import (
	"strconv"
	"strings"

	"github.com/stwalsh4118/icyapa/internal/models"
	"github.com/stwalsh4118/icyapa/internal/repository"
)

// AllOption is the floor/category selection that disables that filter.
const AllOption = "All"

// GroundFloor is the floor label that precedes the numbered floors.
const GroundFloor = "Ground Floor"

// BuildingBusinessFilter is the building detail view selection. The three
// criteria are combined with AND; an empty or AllOption value for Floor or
// Category disables that criterion, and an empty Name matches everything.
type BuildingBusinessFilter struct {
	Floor    string
	Category string
	Name     string
}

// BuildingBusinesses narrows the businesses of one building.
func BuildingBusinesses(businesses []models.Business, f BuildingBusinessFilter) []models.Business {
	term := normalize(f.Name)
	out := []models.Business{}
	for _, b := range businesses {
		if !isAll(f.Floor) && b.FloorNumber != f.Floor {
			continue
		}
		if !isAll(f.Category) && !b.HasCategory(f.Category) {
			continue
		}
		if !containsFold(b.BusinessName, term) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// FloorOptions lists the selectable floors of a building: the ground floor
// followed by "1" through totalFloors.
func FloorOptions(totalFloors int) []string {
	if totalFloors < 0 {
		totalFloors = 0
	}
	out := make([]string, 0, totalFloors+1)
	out = append(out, GroundFloor)
	for i := 1; i <= totalFloors; i++ {
		out = append(out, strconv.Itoa(i))
	}
	return out
}

// Categories returns the distinct category names used by businesses, in
// first-seen order.
func Categories(businesses []models.Business) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, b := range businesses {
		for _, c := range b.Categories {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// SearchCategories returns the distinct categories of the matched businesses.
func SearchCategories(result repository.SearchResult) []string {
	return Categories(result.BusinessList())
}

// ByCategories keeps businesses tagged with at least one selected category.
// An empty selection keeps every business.
func ByCategories(businesses []models.Business, selected []string) []models.Business {
	if len(selected) == 0 {
		return append([]models.Business{}, businesses...)
	}
	out := []models.Business{}
	for _, b := range businesses {
		if hasAny(b, selected) {
			out = append(out, b)
		}
	}
	return out
}

// NarrowSearch applies a category selection to the business matches of a
// search result, keeping their tier order. Buildings and zones have no
// categories and are returned unfiltered.
func NarrowSearch(result repository.SearchResult, selected []string) repository.SearchResult {
	out := repository.SearchResult{
		Businesses: []repository.BusinessHit{},
		Buildings:  result.Buildings,
		Zones:      result.Zones,
	}
	for _, hit := range result.Businesses {
		if len(selected) == 0 || hasAny(hit.Business, selected) {
			out.Businesses = append(out.Businesses, hit)
		}
	}
	return out
}

// ZoneBuildings returns the buildings of zoneID whose name or address
// contains term.
func ZoneBuildings(buildings []models.Building, zoneID, term string) []models.Building {
	q := normalize(term)
	out := []models.Building{}
	for _, b := range buildings {
		if b.StreetZoneID != zoneID {
			continue
		}
		if containsFold(b.BuildingName, q) || containsFold(b.BuildingAddress, q) {
			out = append(out, b)
		}
	}
	return out
}

func hasAny(b models.Business, selected []string) bool {
	for _, c := range selected {
		if b.HasCategory(c) {
			return true
		}
	}
	return false
}

func isAll(v string) bool {
	return v == "" || v == AllOption
}

// normalize lower-cases term. Surrounding spaces are part of the term, so
// "law " does not match "ABC Law Firm".
func normalize(term string) string {
	return strings.ToLower(term)
}

// containsFold reports whether s contains the already normalised term.
func containsFold(s, term string) bool {
	return term == "" || strings.Contains(strings.ToLower(s), term)
}
