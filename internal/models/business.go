package models

// SocialLinks holds optional social profile URLs for a business.
type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
}

// Business is a tenant located on a floor/unit of a building.
//
// IsClaimed and IsVerified are independent flags. A claim sets IsClaimed and
// records the owner contact; only an admin approval sets IsVerified.
type Business struct {
	SocialLinks            *SocialLinks `json:"social_links,omitempty"`
	BusinessID             string       `json:"business_id"`
	BusinessName           string       `json:"business_name"`
	BuildingID             string       `json:"building_id"`
	FloorNumber            string       `json:"floor_number"`
	UnitNumber             string       `json:"unit_number"`
	Phone                  string       `json:"phone"`
	Email                  string       `json:"email"`
	Website                string       `json:"website,omitempty"`
	BusinessHours          string       `json:"business_hours"`
	Description            string       `json:"description"`
	NavigationInstructions string       `json:"navigation_instructions"`
	OwnerName              string       `json:"owner_name,omitempty"`
	OwnerEmail             string       `json:"owner_email,omitempty"`
	OwnerPhone             string       `json:"owner_phone,omitempty"`
	Categories             []string     `json:"categories"`
	Photos                 []string     `json:"photos"`
	IsClaimed              bool         `json:"is_claimed"`
	IsVerified             bool         `json:"is_verified"`
}

// Clone returns a deep copy of the business so callers can't reach the
// slices or social links held by the store.
func (b Business) Clone() Business {
	out := b
	out.Categories = cloneStrings(b.Categories)
	out.Photos = cloneStrings(b.Photos)
	if b.SocialLinks != nil {
		links := *b.SocialLinks
		out.SocialLinks = &links
	}
	return out
}

// HasCategory reports whether the business is tagged with the exact category name.
func (b Business) HasCategory(category string) bool {
	for _, c := range b.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// UniqueCategories returns categories with duplicates removed, keeping the
// first occurrence of each name. Blank names are dropped.
func UniqueCategories(categories []string) []string {
	seen := make(map[string]struct{}, len(categories))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
