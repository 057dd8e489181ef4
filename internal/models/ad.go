package models

// AdType is the placement an ad is booked for.
type AdType string

const (
	AdFeatured  AdType = "Featured"
	AdSearchTop AdType = "Search Top"
	AdBanner    AdType = "Banner"
	AdPopup     AdType = "Popup"
)

// AdContent is the creative shown for an ad.
type AdContent struct {
	ImageURL string `json:"imageUrl"`
	Text     string `json:"text"`
	CTA      string `json:"cta"`
}

// Ad is a read-only promotional placement for an advertiser business.
type Ad struct {
	AdContent            AdContent `json:"ad_content"`
	AdID                 string    `json:"ad_id"`
	AdvertiserBusinessID string    `json:"advertiser_business_id"`
	AdType               AdType    `json:"ad_type"`
	TargetLocation       string    `json:"target_location,omitempty"`
	TargetCategory       string    `json:"target_category,omitempty"`
	IsActive             bool      `json:"is_active"`
}
