package models

// BusinessPatch lists the business fields an update may change. Nil fields
// are left untouched by Apply.
type BusinessPatch struct {
	BusinessName           *string
	BuildingID             *string
	FloorNumber            *string
	UnitNumber             *string
	Categories             *[]string
	Phone                  *string
	Email                  *string
	Website                *string
	SocialLinks            *SocialLinks
	BusinessHours          *string
	Description            *string
	NavigationInstructions *string
	Photos                 *[]string
	IsClaimed              *bool
	IsVerified             *bool
	OwnerName              *string
	OwnerEmail             *string
	OwnerPhone             *string
}

// Apply returns a copy of b with every non-nil patch field applied.
func (p BusinessPatch) Apply(b Business) Business {
	out := b.Clone()
	setString(&out.BusinessName, p.BusinessName)
	setString(&out.BuildingID, p.BuildingID)
	setString(&out.FloorNumber, p.FloorNumber)
	setString(&out.UnitNumber, p.UnitNumber)
	setString(&out.Phone, p.Phone)
	setString(&out.Email, p.Email)
	setString(&out.Website, p.Website)
	setString(&out.BusinessHours, p.BusinessHours)
	setString(&out.Description, p.Description)
	setString(&out.NavigationInstructions, p.NavigationInstructions)
	setString(&out.OwnerName, p.OwnerName)
	setString(&out.OwnerEmail, p.OwnerEmail)
	setString(&out.OwnerPhone, p.OwnerPhone)
	if p.Categories != nil {
		out.Categories = UniqueCategories(*p.Categories)
	}
	if p.Photos != nil {
		out.Photos = cloneStrings(*p.Photos)
	}
	if p.SocialLinks != nil {
		links := *p.SocialLinks
		out.SocialLinks = &links
	}
	if p.IsClaimed != nil {
		out.IsClaimed = *p.IsClaimed
	}
	if p.IsVerified != nil {
		out.IsVerified = *p.IsVerified
	}
	return out
}

// IsEmpty reports whether the patch changes nothing.
func (p BusinessPatch) IsEmpty() bool {
	return p == BusinessPatch{}
}

// BuildingPatch lists the building fields an update may change.
type BuildingPatch struct {
	BuildingName    *string
	BuildingAddress *string
	StreetZoneID    *string
	Latitude        *float64
	Longitude       *float64
	QRCodeURL       *string
	TotalFloors     *int
	Slug            *string
	IsUserSuggested *bool
}

// Apply returns a copy of b with every non-nil patch field applied.
func (p BuildingPatch) Apply(b Building) Building {
	out := b
	setString(&out.BuildingName, p.BuildingName)
	setString(&out.BuildingAddress, p.BuildingAddress)
	setString(&out.StreetZoneID, p.StreetZoneID)
	setString(&out.QRCodeURL, p.QRCodeURL)
	setString(&out.Slug, p.Slug)
	if p.Latitude != nil {
		out.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		out.Longitude = *p.Longitude
	}
	if p.TotalFloors != nil {
		out.TotalFloors = *p.TotalFloors
	}
	if p.IsUserSuggested != nil {
		out.IsUserSuggested = *p.IsUserSuggested
	}
	return out
}

// IsEmpty reports whether the patch changes nothing.
func (p BuildingPatch) IsEmpty() bool {
	return p == BuildingPatch{}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
