package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/icyapa/internal/middleware"
	"github.com/stwalsh4118/icyapa/internal/models"
	"github.com/stwalsh4118/icyapa/internal/repository"
	"github.com/stwalsh4118/icyapa/internal/services"
)

// AdminHandler serves the moderation endpoints under /api/v1/admin.
type AdminHandler struct {
	service services.AdminService
}

// NewAdminHandler creates a new AdminHandler instance.
func NewAdminHandler(service services.AdminService) *AdminHandler {
	return &AdminHandler{
		service: service,
	}
}

// DashboardRequest represents the query parameters for the dashboard.
type DashboardRequest struct {
	Query string `form:"q" binding:"max=100"`
}

// UpdateBusinessRequest is the body of PATCH /admin/businesses/:id.
// Omitted fields are left unchanged.
type UpdateBusinessRequest struct {
	BusinessName           *string             `json:"business_name" binding:"omitempty,max=120"`
	BuildingID             *string             `json:"building_id"`
	FloorNumber            *string             `json:"floor_number" binding:"omitempty,max=40"`
	UnitNumber             *string             `json:"unit_number" binding:"omitempty,max=40"`
	Categories             *[]string           `json:"categories"`
	Phone                  *string             `json:"phone" binding:"omitempty,max=40"`
	Email                  *string             `json:"email" binding:"omitempty,email"`
	Website                *string             `json:"website" binding:"omitempty,url"`
	SocialLinks            *SocialLinksRequest `json:"social_links"`
	BusinessHours          *string             `json:"business_hours" binding:"omitempty,max=120"`
	Description            *string             `json:"description" binding:"omitempty,max=2000"`
	NavigationInstructions *string             `json:"navigation_instructions" binding:"omitempty,max=500"`
	Photos                 *[]string           `json:"photos"`
	IsClaimed              *bool               `json:"is_claimed"`
	IsVerified             *bool               `json:"is_verified"`
	OwnerName              *string             `json:"owner_name" binding:"omitempty,max=120"`
	OwnerEmail             *string             `json:"owner_email" binding:"omitempty,email"`
	OwnerPhone             *string             `json:"owner_phone" binding:"omitempty,max=40"`
}

func (r UpdateBusinessRequest) toPatch() models.BusinessPatch {
	return models.BusinessPatch{
		BusinessName:           r.BusinessName,
		BuildingID:             r.BuildingID,
		FloorNumber:            r.FloorNumber,
		UnitNumber:             r.UnitNumber,
		Categories:             r.Categories,
		Phone:                  r.Phone,
		Email:                  r.Email,
		Website:                r.Website,
		SocialLinks:            r.SocialLinks.toModel(),
		BusinessHours:          r.BusinessHours,
		Description:            r.Description,
		NavigationInstructions: r.NavigationInstructions,
		Photos:                 r.Photos,
		IsClaimed:              r.IsClaimed,
		IsVerified:             r.IsVerified,
		OwnerName:              r.OwnerName,
		OwnerEmail:             r.OwnerEmail,
		OwnerPhone:             r.OwnerPhone,
	}
}

// UpdateBuildingRequest is the body of PATCH /admin/buildings/:id.
type UpdateBuildingRequest struct {
	BuildingName    *string  `json:"building_name" binding:"omitempty,max=120"`
	BuildingAddress *string  `json:"building_address" binding:"omitempty,max=200"`
	StreetZoneID    *string  `json:"street_zone_id"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	QRCodeURL       *string  `json:"qr_code_url" binding:"omitempty,url"`
	TotalFloors     *int     `json:"total_floors" binding:"omitempty,max=200"`
	Slug            *string  `json:"slug" binding:"omitempty,max=80"`
	IsUserSuggested *bool    `json:"is_user_suggested"`
}

func (r UpdateBuildingRequest) toPatch() models.BuildingPatch {
	return models.BuildingPatch{
		BuildingName:    r.BuildingName,
		BuildingAddress: r.BuildingAddress,
		StreetZoneID:    r.StreetZoneID,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		QRCodeURL:       r.QRCodeURL,
		TotalFloors:     r.TotalFloors,
		Slug:            r.Slug,
		IsUserSuggested: r.IsUserSuggested,
	}
}

// DeleteBuildingRequest represents the query parameters for deleting a building.
type DeleteBuildingRequest struct {
	Force bool `form:"force"`
}

// MergeBuildingsRequest is the body of POST /admin/buildings/:id/merge.
type MergeBuildingsRequest struct {
	TargetID string `json:"target_id" binding:"required"`
}

// AddBuildingRequest is the body of POST /admin/buildings. A blank slug is
// derived from the name.
type AddBuildingRequest struct {
	Name        string  `json:"building_name" binding:"required,max=120"`
	Address     string  `json:"building_address" binding:"required,max=200"`
	ZoneID      string  `json:"street_zone_id" binding:"required"`
	QRCodeURL   string  `json:"qr_code_url" binding:"omitempty,url"`
	Slug        string  `json:"slug" binding:"max=80"`
	Latitude    float64 `json:"latitude" binding:"latitude"`
	Longitude   float64 `json:"longitude" binding:"longitude"`
	TotalFloors int     `json:"total_floors" binding:"min=1,max=200"`
}

// AddZoneRequest is the body of POST /admin/zones.
type AddZoneRequest struct {
	Name        string `json:"zone_name" binding:"required,max=120"`
	Description string `json:"zone_description" binding:"max=1000"`
	QRCodeURL   string `json:"qr_code_url" binding:"omitempty,url"`
	Slug        string `json:"slug" binding:"max=80"`
}

// DashboardResponse represents the admin console lists.
type DashboardResponse struct {
	Query      string                   `json:"q"`
	Counts     repository.Counts        `json:"counts"`
	Buildings  []models.Building        `json:"buildings"`
	Zones      []models.StreetZone      `json:"zones"`
	Businesses []models.Business        `json:"businesses"`
	Pending    []models.Business        `json:"pending"`
	Suggested  []models.Building        `json:"suggested_buildings"`
	Comments   []models.BuildingComment `json:"comments"`
}

// Dashboard handles GET /api/v1/admin/dashboard.
// q narrows buildings, zones, businesses and pending claims by name.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	var req DashboardRequest
	if !bindQuery(c, &req) {
		return
	}

	d := h.service.Dashboard(req.Query)

	c.JSON(http.StatusOK, DashboardResponse{
		Query:      d.Term,
		Counts:     d.Counts,
		Buildings:  nonNil(d.Buildings),
		Zones:      nonNil(d.Zones),
		Businesses: nonNil(d.Businesses),
		Pending:    nonNil(d.Pending),
		Suggested:  nonNil(d.Suggested),
		Comments:   nonNil(d.Comments),
	})
}

// ApproveBusiness handles POST /api/v1/admin/businesses/:id/approve.
func (h *AdminHandler) ApproveBusiness(c *gin.Context) {
	business, err := h.service.ApproveBusiness(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to approve business")
		return
	}
	c.JSON(http.StatusOK, business)
}

// UpdateBusiness handles PATCH /api/v1/admin/businesses/:id.
func (h *AdminHandler) UpdateBusiness(c *gin.Context) {
	var req UpdateBusinessRequest
	if !bindJSON(c, &req) {
		return
	}

	business, err := h.service.UpdateBusiness(c.Param("id"), req.toPatch())
	if err != nil {
		respondError(c, err, "Failed to update business")
		return
	}
	c.JSON(http.StatusOK, business)
}

// DeleteBusiness handles DELETE /api/v1/admin/businesses/:id.
func (h *AdminHandler) DeleteBusiness(c *gin.Context) {
	if err := h.service.DeleteBusiness(c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete business")
		return
	}
	c.Status(http.StatusNoContent)
}

// AddBuilding handles POST /api/v1/admin/buildings.
func (h *AdminHandler) AddBuilding(c *gin.Context) {
	var req AddBuildingRequest
	if !bindJSON(c, &req) {
		return
	}

	building, err := h.service.AddBuilding(services.BuildingInput{
		Name:        req.Name,
		Address:     req.Address,
		ZoneID:      req.ZoneID,
		QRCodeURL:   req.QRCodeURL,
		Slug:        req.Slug,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		TotalFloors: req.TotalFloors,
	})
	if err != nil {
		respondError(c, err, "Failed to add building")
		return
	}
	c.JSON(http.StatusCreated, building)
}

// UpdateBuilding handles PATCH /api/v1/admin/buildings/:id.
func (h *AdminHandler) UpdateBuilding(c *gin.Context) {
	var req UpdateBuildingRequest
	if !bindJSON(c, &req) {
		return
	}

	building, err := h.service.UpdateBuilding(c.Param("id"), req.toPatch())
	if err != nil {
		respondError(c, err, "Failed to update building")
		return
	}
	c.JSON(http.StatusOK, building)
}

// DeleteBuilding handles DELETE /api/v1/admin/buildings/:id.
// Occupied buildings are only removed with force=true; their businesses
// keep pointing at the removed id.
func (h *AdminHandler) DeleteBuilding(c *gin.Context) {
	log := middleware.GetLogger(c)

	var req DeleteBuildingRequest
	if !bindQuery(c, &req) {
		return
	}

	if req.Force && log != nil {
		log.Warn("Forced building delete requested", map[string]interface{}{
			"building_id": c.Param("id"),
		})
	}

	if err := h.service.DeleteBuilding(c.Param("id"), req.Force); err != nil {
		respondError(c, err, "Failed to delete building")
		return
	}
	c.Status(http.StatusNoContent)
}

// MergeBuildings handles POST /api/v1/admin/buildings/:id/merge.
// The building in the path is the source and is removed.
func (h *AdminHandler) MergeBuildings(c *gin.Context) {
	var req MergeBuildingsRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.MergeBuildings(c.Param("id"), req.TargetID)
	if err != nil {
		respondError(c, err, "Failed to merge buildings")
		return
	}
	c.JSON(http.StatusOK, result)
}

// AddZone handles POST /api/v1/admin/zones.
func (h *AdminHandler) AddZone(c *gin.Context) {
	var req AddZoneRequest
	if !bindJSON(c, &req) {
		return
	}

	zone, err := h.service.AddZone(services.ZoneInput{
		Name:        req.Name,
		Description: req.Description,
		QRCodeURL:   req.QRCodeURL,
		Slug:        req.Slug,
	})
	if err != nil {
		respondError(c, err, "Failed to add zone")
		return
	}
	c.JSON(http.StatusCreated, zone)
}
