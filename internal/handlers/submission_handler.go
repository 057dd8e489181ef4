package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/icyapa/internal/middleware"
	"github.com/stwalsh4118/icyapa/internal/models"
	"github.com/stwalsh4118/icyapa/internal/services"
)

// SubmissionHandler serves the public write endpoints: new listings,
// ownership claims and building comments.
type SubmissionHandler struct {
	service services.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler instance.
func NewSubmissionHandler(service services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
	}
}

// SocialLinksRequest carries optional social profile URLs.
type SocialLinksRequest struct {
	Facebook  string `json:"facebook" binding:"omitempty,url"`
	Instagram string `json:"instagram" binding:"omitempty,url"`
	Twitter   string `json:"twitter" binding:"omitempty,url"`
}

func (r *SocialLinksRequest) toModel() *models.SocialLinks {
	if r == nil {
		return nil
	}
	return &models.SocialLinks{Facebook: r.Facebook, Instagram: r.Instagram, Twitter: r.Twitter}
}

// NewBuildingRequest describes a building the submitter could not find.
type NewBuildingRequest struct {
	Name        string  `json:"name" binding:"required,max=120"`
	Address     string  `json:"address" binding:"required,max=200"`
	ZoneID      string  `json:"zone_id" binding:"required"`
	Latitude    float64 `json:"latitude" binding:"latitude"`
	Longitude   float64 `json:"longitude" binding:"longitude"`
	TotalFloors int     `json:"total_floors" binding:"omitempty,min=1,max=200"`
}

// CreateBusinessRequest is the body of POST /api/v1/businesses. Either
// building_id or new_building identifies where the business is.
type CreateBusinessRequest struct {
	NewBuilding            *NewBuildingRequest `json:"new_building"`
	SocialLinks            *SocialLinksRequest `json:"social_links"`
	BusinessName           string              `json:"business_name" binding:"required,max=120"`
	BuildingID             string              `json:"building_id" binding:"required_without=NewBuilding"`
	FloorNumber            string              `json:"floor_number" binding:"required,max=40"`
	UnitNumber             string              `json:"unit_number" binding:"required,max=40"`
	Phone                  string              `json:"phone" binding:"required,max=40"`
	Email                  string              `json:"email" binding:"required,email"`
	Website                string              `json:"website" binding:"omitempty,url"`
	BusinessHours          string              `json:"business_hours" binding:"max=120"`
	Description            string              `json:"description" binding:"max=2000"`
	NavigationInstructions string              `json:"navigation_instructions" binding:"max=500"`
	OwnerName              string              `json:"owner_name" binding:"required,max=120"`
	OwnerEmail             string              `json:"owner_email" binding:"required,email"`
	OwnerPhone             string              `json:"owner_phone" binding:"required,max=40"`
	Categories             []string            `json:"categories" binding:"required,min=1,dive,max=60"`
	Photos                 []string            `json:"photos" binding:"max=10,dive,url"`
}

// ClaimBusinessRequest is the body of POST /api/v1/businesses/:id/claim.
// Listing fields left empty keep their current values.
type ClaimBusinessRequest struct {
	OwnerName              string   `json:"owner_name" binding:"required,max=120"`
	OwnerEmail             string   `json:"owner_email" binding:"required,email"`
	OwnerPhone             string   `json:"owner_phone" binding:"required,max=40"`
	BusinessName           string   `json:"business_name" binding:"max=120"`
	FloorNumber            string   `json:"floor_number" binding:"max=40"`
	UnitNumber             string   `json:"unit_number" binding:"max=40"`
	Phone                  string   `json:"phone" binding:"max=40"`
	Email                  string   `json:"email" binding:"omitempty,email"`
	BusinessHours          string   `json:"business_hours" binding:"max=120"`
	Description            string   `json:"description" binding:"max=2000"`
	NavigationInstructions string   `json:"navigation_instructions" binding:"max=500"`
	Categories             []string `json:"categories" binding:"omitempty,dive,max=60"`
}

// CommentRequest is the body of POST /api/v1/buildings/:slug/comments.
type CommentRequest struct {
	UserName string `json:"user_name" binding:"max=80"`
	Comment  string `json:"comment" binding:"required,max=1000"`
	Type     string `json:"type" binding:"omitempty,oneof=general correction"`
}

// BuildingMatchesRequest represents the query for the building picker.
type BuildingMatchesRequest struct {
	Query string `form:"q" binding:"max=100"`
}

// CreatedBusinessResponse represents the response for a new listing.
type CreatedBusinessResponse struct {
	Business        models.Business `json:"business"`
	Building        models.Building `json:"building"`
	BuildingCreated bool            `json:"building_created"`
}

// BuildingMatchesResponse represents the response for the building picker.
type BuildingMatchesResponse struct {
	Buildings []models.Building `json:"buildings"`
	Count     int               `json:"count"`
}

// CreateBusiness handles POST /api/v1/businesses.
// New listings start claimed by the submitter and unverified.
func (h *SubmissionHandler) CreateBusiness(c *gin.Context) {
	log := middleware.GetLogger(c)

	var req CreateBusinessRequest
	if !bindJSON(c, &req) {
		return
	}

	in := services.CreateBusinessInput{
		SocialLinks:            req.SocialLinks.toModel(),
		BusinessName:           req.BusinessName,
		BuildingID:             req.BuildingID,
		FloorNumber:            req.FloorNumber,
		UnitNumber:             req.UnitNumber,
		Phone:                  req.Phone,
		Email:                  req.Email,
		Website:                req.Website,
		BusinessHours:          req.BusinessHours,
		Description:            req.Description,
		NavigationInstructions: req.NavigationInstructions,
		OwnerName:              req.OwnerName,
		OwnerEmail:             req.OwnerEmail,
		OwnerPhone:             req.OwnerPhone,
		Categories:             req.Categories,
		Photos:                 req.Photos,
	}
	if nb := req.NewBuilding; nb != nil {
		in.NewBuilding = &services.SuggestedBuilding{
			Name:        nb.Name,
			Address:     nb.Address,
			ZoneID:      nb.ZoneID,
			Latitude:    nb.Latitude,
			Longitude:   nb.Longitude,
			TotalFloors: nb.TotalFloors,
		}
	}

	if log != nil {
		log.Info("Processing business submission", map[string]interface{}{
			"business_name": req.BusinessName,
			"building_id":   req.BuildingID,
			"new_building":  req.NewBuilding != nil,
		})
	}

	created, err := h.service.CreateBusiness(in)
	if err != nil {
		respondError(c, err, "Failed to create business")
		return
	}

	c.JSON(http.StatusCreated, CreatedBusinessResponse{
		Business:        created.Business,
		Building:        created.Building,
		BuildingCreated: created.BuildingCreated,
	})
}

// ClaimBusiness handles POST /api/v1/businesses/:id/claim.
func (h *SubmissionHandler) ClaimBusiness(c *gin.Context) {
	var req ClaimBusinessRequest
	if !bindJSON(c, &req) {
		return
	}

	business, err := h.service.ClaimBusiness(c.Param("id"), services.ClaimBusinessInput{
		OwnerName:              req.OwnerName,
		OwnerEmail:             req.OwnerEmail,
		OwnerPhone:             req.OwnerPhone,
		BusinessName:           req.BusinessName,
		FloorNumber:            req.FloorNumber,
		UnitNumber:             req.UnitNumber,
		Phone:                  req.Phone,
		Email:                  req.Email,
		BusinessHours:          req.BusinessHours,
		Description:            req.Description,
		NavigationInstructions: req.NavigationInstructions,
		Categories:             req.Categories,
	})
	if err != nil {
		respondError(c, err, "Failed to claim business")
		return
	}

	c.JSON(http.StatusOK, business)
}

// AddComment handles POST /api/v1/buildings/:slug/comments.
// A missing user_name is recorded as the anonymous user.
func (h *SubmissionHandler) AddComment(c *gin.Context) {
	var req CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.service.AddComment(services.CommentInput{
		BuildingSlug: c.Param("slug"),
		UserName:     req.UserName,
		Comment:      req.Comment,
		Type:         models.CommentType(req.Type),
	})
	if err != nil {
		respondError(c, err, "Failed to add comment")
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// BuildingMatches handles GET /api/v1/search/buildings.
func (h *SubmissionHandler) BuildingMatches(c *gin.Context) {
	var req BuildingMatchesRequest
	if !bindQuery(c, &req) {
		return
	}

	buildings := h.service.SuggestBuildingMatches(req.Query)
	c.JSON(http.StatusOK, BuildingMatchesResponse{Buildings: nonNil(buildings), Count: len(buildings)})
}
