package models

// Building is a physical premise that houses businesses across its floors.
// Slug is unique across buildings and is the routing key used by clients.
type Building struct {
	BuildingID      string  `json:"building_id"`
	BuildingName    string  `json:"building_name"`
	BuildingAddress string  `json:"building_address"`
	StreetZoneID    string  `json:"street_zone_id"`
	QRCodeURL       string  `json:"qr_code_url"`
	Slug            string  `json:"slug"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	TotalFloors     int     `json:"total_floors"`
	IsUserSuggested bool    `json:"is_user_suggested,omitempty"`
}

// Coordinates returns the building location as a Coordinates value.
func (b Building) Coordinates() Coordinates {
	return Coordinates{Latitude: b.Latitude, Longitude: b.Longitude}
}
