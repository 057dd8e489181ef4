package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/icyapa/internal/filters"
	"github.com/stwalsh4118/icyapa/internal/middleware"
	"github.com/stwalsh4118/icyapa/internal/models"
	"github.com/stwalsh4118/icyapa/internal/repository"
	"github.com/stwalsh4118/icyapa/internal/services"
)

// DirectoryHandler serves the public browsing endpoints.
type DirectoryHandler struct {
	service services.DirectoryService
}

// NewDirectoryHandler creates a new DirectoryHandler instance.
func NewDirectoryHandler(service services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{
		service: service,
	}
}

// ZoneDetailRequest represents the query parameters for a zone page.
type ZoneDetailRequest struct {
	Query string `form:"q" binding:"max=100"`
}

// BuildingDetailRequest represents the query parameters for a building page.
// Floor and category accept "All" to disable the filter.
type BuildingDetailRequest struct {
	Floor    string `form:"floor" binding:"max=40"`
	Category string `form:"category" binding:"max=60"`
	Query    string `form:"q" binding:"max=100"`
}

// SearchRequest represents the query parameters for the search endpoint.
// category may repeat; a business is kept if it has any selected category.
type SearchRequest struct {
	Query      string   `form:"q" binding:"max=100"`
	Categories []string `form:"category" binding:"max=20,dive,max=60"`
}

// AdsRequest represents the query parameters for the ads endpoint.
type AdsRequest struct {
	Type     string `form:"type" binding:"omitempty,oneof=Featured 'Search Top' Banner Popup"`
	Location string `form:"location" binding:"max=80"`
	Category string `form:"category" binding:"max=60"`
}

// ZoneResponse is a zone with the number of buildings in it.
type ZoneResponse struct {
	models.StreetZone
	BuildingCount int `json:"building_count"`
}

// BuildingResponse is a building with the number of businesses in it.
type BuildingResponse struct {
	models.Building
	BusinessCount int `json:"business_count"`
}

// ZoneListResponse represents the response for the zone list endpoint.
type ZoneListResponse struct {
	Zones []ZoneResponse `json:"zones"`
	Count int            `json:"count"`
}

// BuildingListResponse represents the response for building lists.
type BuildingListResponse struct {
	Buildings []BuildingResponse `json:"buildings"`
	Count     int                `json:"count"`
}

// ZoneDetailResponse represents the response for a zone page.
type ZoneDetailResponse struct {
	Zone      models.StreetZone  `json:"zone"`
	Query     string             `json:"q,omitempty"`
	Buildings []BuildingResponse `json:"buildings"`
	Count     int                `json:"count"`
}

// BusinessListResponse represents the response for business lists.
type BusinessListResponse struct {
	Businesses []models.Business `json:"businesses"`
	Count      int               `json:"count"`
}

// AppliedFilters echoes the building page filters after normalisation.
type AppliedFilters struct {
	Floor    string `json:"floor"`
	Category string `json:"category"`
	Query    string `json:"q"`
}

// BuildingDetailResponse represents the response for a building page.
type BuildingDetailResponse struct {
	Building        models.Building          `json:"building"`
	Zone            *models.StreetZone       `json:"zone"`
	Filters         AppliedFilters           `json:"filters"`
	Businesses      []models.Business        `json:"businesses"`
	FloorOptions    []string                 `json:"floor_options"`
	Categories      []string                 `json:"categories"`
	Comments        []models.BuildingComment `json:"comments"`
	Count           int                      `json:"count"`
	TotalBusinesses int                      `json:"total_businesses"`
}

// CommentListResponse represents the response for building comments.
type CommentListResponse struct {
	Comments []models.BuildingComment `json:"comments"`
	Count    int                      `json:"count"`
}

// BusinessDetailResponse represents the response for a business page.
type BusinessDetailResponse struct {
	Business models.Business  `json:"business"`
	Building *models.Building `json:"building"`
	Ads      []models.Ad      `json:"ads"`
}

// SearchHit is a matched business tagged with how it matched.
type SearchHit struct {
	models.Business
	MatchTier string `json:"match_tier"`
}

// SearchResponse represents the response for the search endpoint.
type SearchResponse struct {
	Query      string              `json:"q"`
	Businesses []SearchHit         `json:"businesses"`
	Buildings  []models.Building   `json:"buildings"`
	Zones      []models.StreetZone `json:"zones"`
	Categories []string            `json:"categories"`
	Selected   []string            `json:"selected_categories"`
	Total      int                 `json:"total"`
}

// AdListResponse represents the response for the ads endpoint.
type AdListResponse struct {
	Ads   []models.Ad `json:"ads"`
	Count int         `json:"count"`
}

// ListZones handles GET /api/v1/zones.
func (h *DirectoryHandler) ListZones(c *gin.Context) {
	summaries := h.service.ListZones()

	zones := make([]ZoneResponse, 0, len(summaries))
	for _, s := range summaries {
		zones = append(zones, ZoneResponse{StreetZone: s.Zone, BuildingCount: s.BuildingCount})
	}

	c.JSON(http.StatusOK, ZoneListResponse{Zones: zones, Count: len(zones)})
}

// ZoneDetail handles GET /api/v1/zones/:slug.
// q narrows the zone's buildings by name or address.
func (h *DirectoryHandler) ZoneDetail(c *gin.Context) {
	var req ZoneDetailRequest
	if !bindQuery(c, &req) {
		return
	}

	detail, err := h.service.ZoneDetail(c.Param("slug"), req.Query)
	if err != nil {
		respondError(c, err, "Failed to load zone")
		return
	}

	buildings := mapBuildingSummaries(detail.Buildings)
	c.JSON(http.StatusOK, ZoneDetailResponse{
		Zone:      detail.Zone,
		Query:     detail.Term,
		Buildings: buildings,
		Count:     len(buildings),
	})
}

// ZoneBusinesses handles GET /api/v1/zones/:slug/businesses.
func (h *DirectoryHandler) ZoneBusinesses(c *gin.Context) {
	businesses, err := h.service.ZoneBusinesses(c.Param("slug"))
	if err != nil {
		respondError(c, err, "Failed to load zone businesses")
		return
	}

	c.JSON(http.StatusOK, BusinessListResponse{
		Businesses: nonNil(businesses),
		Count:      len(businesses),
	})
}

// ListBuildings handles GET /api/v1/buildings.
func (h *DirectoryHandler) ListBuildings(c *gin.Context) {
	buildings := mapBuildingSummaries(h.service.ListBuildings())
	c.JSON(http.StatusOK, BuildingListResponse{Buildings: buildings, Count: len(buildings)})
}

// BuildingDetail handles GET /api/v1/buildings/:slug.
// floor, category and q narrow the tenant list; all three must match.
func (h *DirectoryHandler) BuildingDetail(c *gin.Context) {
	log := middleware.GetLogger(c)

	var req BuildingDetailRequest
	if !bindQuery(c, &req) {
		return
	}

	filter := filters.BuildingBusinessFilter{
		Floor:    req.Floor,
		Category: req.Category,
		Name:     req.Query,
	}

	if log != nil {
		log.Debug("Processing building page request", map[string]interface{}{
			"slug":     c.Param("slug"),
			"floor":    filter.Floor,
			"category": filter.Category,
			"q":        filter.Name,
		})
	}

	detail, err := h.service.BuildingDetail(c.Param("slug"), filter)
	if err != nil {
		respondError(c, err, "Failed to load building")
		return
	}

	c.JSON(http.StatusOK, BuildingDetailResponse{
		Building: detail.Building,
		Zone:     detail.Zone,
		Filters: AppliedFilters{
			Floor:    detail.Filter.Floor,
			Category: detail.Filter.Category,
			Query:    detail.Filter.Name,
		},
		Businesses:      nonNil(detail.Businesses),
		FloorOptions:    nonNil(detail.FloorOptions),
		Categories:      nonNil(detail.Categories),
		Comments:        nonNil(detail.Comments),
		Count:           len(detail.Businesses),
		TotalBusinesses: detail.TotalBusinesses,
	})
}

// BuildingComments handles GET /api/v1/buildings/:slug/comments.
// Comments are returned newest first.
func (h *DirectoryHandler) BuildingComments(c *gin.Context) {
	comments, err := h.service.BuildingComments(c.Param("slug"))
	if err != nil {
		respondError(c, err, "Failed to load comments")
		return
	}

	c.JSON(http.StatusOK, CommentListResponse{Comments: nonNil(comments), Count: len(comments)})
}

// Business handles GET /api/v1/businesses/:id.
func (h *DirectoryHandler) Business(c *gin.Context) {
	detail, err := h.service.Business(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load business")
		return
	}

	c.JSON(http.StatusOK, BusinessDetailResponse{
		Business: detail.Business,
		Building: detail.Building,
		Ads:      nonNil(detail.Ads),
	})
}

// Trending handles GET /api/v1/businesses/trending.
func (h *DirectoryHandler) Trending(c *gin.Context) {
	businesses := h.service.Trending()
	c.JSON(http.StatusOK, BusinessListResponse{Businesses: nonNil(businesses), Count: len(businesses)})
}

// Search handles GET /api/v1/search.
// Businesses are ordered by match tier; buildings and zones keep directory order.
func (h *DirectoryHandler) Search(c *gin.Context) {
	log := middleware.GetLogger(c)

	var req SearchRequest
	if !bindQuery(c, &req) {
		return
	}

	outcome := h.service.Search(req.Query, req.Categories)

	if log != nil {
		log.Info("Processing search request", map[string]interface{}{
			"q":          outcome.Query,
			"categories": outcome.Selected,
			"businesses": len(outcome.Result.Businesses),
			"buildings":  len(outcome.Result.Buildings),
			"zones":      len(outcome.Result.Zones),
		})
	}

	c.JSON(http.StatusOK, mapSearchOutcome(outcome))
}

// Ads handles GET /api/v1/ads. Only active ads are returned.
func (h *DirectoryHandler) Ads(c *gin.Context) {
	var req AdsRequest
	if !bindQuery(c, &req) {
		return
	}

	ads := h.service.Ads(repository.AdQuery{
		Type:     models.AdType(req.Type),
		Location: req.Location,
		Category: req.Category,
	})

	c.JSON(http.StatusOK, AdListResponse{Ads: nonNil(ads), Count: len(ads)})
}

func mapBuildingSummaries(summaries []services.BuildingSummary) []BuildingResponse {
	out := make([]BuildingResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, BuildingResponse{Building: s.Building, BusinessCount: s.BusinessCount})
	}
	return out
}

func mapSearchOutcome(outcome services.SearchOutcome) SearchResponse {
	hits := make([]SearchHit, 0, len(outcome.Result.Businesses))
	for _, hit := range outcome.Result.Businesses {
		hits = append(hits, SearchHit{Business: hit.Business, MatchTier: hit.Tier.String()})
	}

	return SearchResponse{
		Query:      outcome.Query,
		Businesses: hits,
		Buildings:  nonNil(outcome.Result.Buildings),
		Zones:      nonNil(outcome.Result.Zones),
		Categories: nonNil(outcome.Categories),
		Selected:   nonNil(outcome.Selected),
		Total:      len(hits) + len(outcome.Result.Buildings) + len(outcome.Result.Zones),
	}
}
