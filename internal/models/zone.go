package models

// StreetZone groups buildings by area (a corridor or neighbourhood).
// Buildings reference their zone through Building.StreetZoneID.
type StreetZone struct {
	ZoneID          string `json:"zone_id"`
	ZoneName        string `json:"zone_name"`
	ZoneDescription string `json:"zone_description"`
	QRCodeURL       string `json:"qr_code_url"`
	Slug            string `json:"slug"`
}
