package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stwalsh4118/icyapa/internal/filters"
	"github.com/stwalsh4118/icyapa/internal/id"
	"github.com/stwalsh4118/icyapa/internal/logger"
	"github.com/stwalsh4118/icyapa/internal/models"
	"github.com/stwalsh4118/icyapa/internal/repository"
	"github.com/stwalsh4118/icyapa/internal/slug"
)

// ZoneInput is a new street zone. A blank Slug is derived from Name.
type ZoneInput struct {
	Name        string
	Description string
	QRCodeURL   string
	Slug        string
}

// BuildingInput is a new building added by an administrator. A blank Slug
// is derived from Name.
type BuildingInput struct {
	Name        string
	Address     string
	ZoneID      string
	QRCodeURL   string
	Slug        string
	Latitude    float64
	Longitude   float64
	TotalFloors int
}

// Dashboard is the admin console view. The name term narrows Buildings,
// Zones, Businesses and Pending; Suggested and Comments are unfiltered.
type Dashboard struct {
	Term       string
	Buildings  []models.Building
	Zones      []models.StreetZone
	Businesses []models.Business
	Pending    []models.Business
	Suggested  []models.Building
	Comments   []models.BuildingComment
	Counts     repository.Counts
}

// AdminService defines the moderation and maintenance operations.
type AdminService interface {
	// ApproveBusiness marks a listing verified (and claimed).
	ApproveBusiness(businessID string) (models.Business, error)
	UpdateBusiness(businessID string, patch models.BusinessPatch) (models.Business, error)
	UpdateBuilding(buildingID string, patch models.BuildingPatch) (models.Building, error)
	DeleteBusiness(businessID string) error

	// DeleteBuilding refuses to remove a building that still has businesses
	// unless force is set; MergeBuildings is the usual way to retire one.
	DeleteBuilding(buildingID string, force bool) error

	// MergeBuildings moves everything from sourceID onto targetID and
	// removes sourceID. Merging a building into itself is ErrInvalidOperation.
	MergeBuildings(sourceID, targetID string) (repository.MergeResult, error)

	AddZone(in ZoneInput) (models.StreetZone, error)
	AddBuilding(in BuildingInput) (models.Building, error)
	Dashboard(term string) *Dashboard
}

// adminService is the concrete implementation of AdminService.
type adminService struct {
	repo  repository.DirectoryRepository
	newID id.Generator
	log   *logger.Logger
}

// NewAdminService creates a new instance of AdminService.
func NewAdminService(repo repository.DirectoryRepository, newID id.Generator, log *logger.Logger) AdminService {
	return &adminService{
		repo:  repo,
		newID: newID,
		log:   log.WithComponent("admin_service"),
	}
}

func (s *adminService) ApproveBusiness(businessID string) (models.Business, error) {
	verified, claimed := true, true
	updated, err := s.repo.UpdateBusiness(businessID, models.BusinessPatch{
		IsVerified: &verified,
		IsClaimed:  &claimed,
	})
	if err != nil {
		s.log.Warn("Approve failed", map[string]interface{}{
			"business_id": businessID,
			"error":       err.Error(),
		})
		return models.Business{}, err
	}

	s.log.Info("Business approved", map[string]interface{}{
		"business_id": businessID,
	})
	return updated, nil
}

func (s *adminService) UpdateBusiness(businessID string, patch models.BusinessPatch) (models.Business, error) {
	if patch.IsEmpty() {
		return models.Business{}, invalidInput("update changes nothing")
	}
	if patch.BusinessName != nil && strings.TrimSpace(*patch.BusinessName) == "" {
		return models.Business{}, invalidInput("business name must not be blank")
	}
	if patch.Categories != nil {
		cleaned := cleanCategories(*patch.Categories)
		patch.Categories = &cleaned
	}

	updated, err := s.repo.UpdateBusiness(businessID, patch)
	if err != nil {
		s.log.Warn("Business update failed", map[string]interface{}{
			"business_id": businessID,
			"error":       err.Error(),
		})
		return models.Business{}, err
	}

	s.log.Info("Business updated", map[string]interface{}{
		"business_id": businessID,
	})
	return updated, nil
}

func (s *adminService) UpdateBuilding(buildingID string, patch models.BuildingPatch) (models.Building, error) {
	if patch.IsEmpty() {
		return models.Building{}, invalidInput("update changes nothing")
	}
	if patch.BuildingName != nil && strings.TrimSpace(*patch.BuildingName) == "" {
		return models.Building{}, invalidInput("building name must not be blank")
	}
	if patch.Slug != nil && !slug.Valid(*patch.Slug) {
		return models.Building{}, invalidInput("slug %q is not URL-safe", *patch.Slug)
	}
	if patch.TotalFloors != nil && *patch.TotalFloors < 0 {
		return models.Building{}, invalidInput("total floors must not be negative")
	}
	if patch.StreetZoneID != nil {
		if _, ok := s.repo.ZoneByID(*patch.StreetZoneID); !ok {
			return models.Building{}, fmt.Errorf("%w: %s", ErrZoneNotFound, *patch.StreetZoneID)
		}
	}
	if patch.Latitude != nil || patch.Longitude != nil {
		current, ok := s.repo.BuildingByID(buildingID)
		if !ok {
			return models.Building{}, fmt.Errorf("%w: %s", ErrBuildingNotFound, buildingID)
		}
		if err := patch.Apply(current).Coordinates().Validate(); err != nil {
			return models.Building{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	updated, err := s.repo.UpdateBuilding(buildingID, patch)
	if err != nil {
		s.log.Warn("Building update failed", map[string]interface{}{
			"building_id": buildingID,
			"error":       err.Error(),
		})
		return models.Building{}, err
	}

	s.log.Info("Building updated", map[string]interface{}{
		"building_id": buildingID,
	})
	return updated, nil
}

func (s *adminService) DeleteBusiness(businessID string) error {
	if err := s.repo.DeleteBusiness(businessID); err != nil {
		s.log.Warn("Business delete failed", map[string]interface{}{
			"business_id": businessID,
			"error":       err.Error(),
		})
		return err
	}
	s.log.Info("Business deleted", map[string]interface{}{
		"business_id": businessID,
	})
	return nil
}

func (s *adminService) DeleteBuilding(buildingID string, force bool) error {
	if !force {
		if err := s.repo.DeleteBuildingIfEmpty(buildingID); err != nil {
			s.log.Warn("Refused to delete building", map[string]interface{}{
				"building_id": buildingID,
				"error":       err.Error(),
			})
			return err
		}
		s.log.Info("Building deleted", map[string]interface{}{
			"building_id": buildingID,
		})
		return nil
	}

	tenants := len(s.repo.BusinessesInBuilding(buildingID))
	if err := s.repo.DeleteBuilding(buildingID); err != nil {
		s.log.Warn("Building delete failed", map[string]interface{}{
			"building_id": buildingID,
			"error":       err.Error(),
		})
		return err
	}

	s.log.Info("Building deleted", map[string]interface{}{
		"building_id":       buildingID,
		"orphaned_business": tenants,
	})
	return nil
}

func (s *adminService) MergeBuildings(sourceID, targetID string) (repository.MergeResult, error) {
	result, err := s.repo.MergeBuildings(sourceID, targetID)
	if err != nil {
		s.log.Warn("Merge rejected", map[string]interface{}{
			"source_id": sourceID,
			"target_id": targetID,
			"error":     err.Error(),
		})
		return repository.MergeResult{}, err
	}

	s.log.Info("Buildings merged", map[string]interface{}{
		"source_id":             result.SourceID,
		"target_id":             result.TargetID,
		"reassigned_businesses": result.ReassignedBusinesses,
		"reassigned_comments":   result.ReassignedComments,
	})
	return result, nil
}

func (s *adminService) AddZone(in ZoneInput) (models.StreetZone, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return models.StreetZone{}, invalidInput("zone name is required")
	}
	if in.Slug != "" && !slug.Valid(in.Slug) {
		return models.StreetZone{}, invalidInput("slug %q is not URL-safe", in.Slug)
	}

	zone := models.StreetZone{
		ZoneName:        in.Name,
		ZoneDescription: in.Description,
		QRCodeURL:       in.QRCodeURL,
		Slug:            in.Slug,
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		zoneID, err := s.newID(id.ZonePrefix)
		if err != nil {
			return models.StreetZone{}, fmt.Errorf("failed to generate zone id: %w", err)
		}
		zone.ZoneID = zoneID
		if in.Slug == "" {
			zone.Slug = slug.Unique(in.Name, zoneID, func(candidate string) bool {
				_, taken := s.repo.ZoneBySlug(candidate)
				return taken
			})
		}

		err = s.repo.AddZone(zone)
		if errors.Is(err, ErrDuplicateID) || (in.Slug == "" && errors.Is(err, ErrDuplicateSlug)) {
			continue
		}
		if err != nil {
			s.log.Warn("Zone add failed", map[string]interface{}{
				"slug":  zone.Slug,
				"error": err.Error(),
			})
			return models.StreetZone{}, err
		}

		s.log.Info("Zone added", map[string]interface{}{
			"zone_id": zone.ZoneID,
			"slug":    zone.Slug,
		})
		return zone, nil
	}
	return models.StreetZone{}, fmt.Errorf("%w: no free zone id after %d attempts", ErrDuplicateID, maxIDAttempts)
}

func (s *adminService) AddBuilding(in BuildingInput) (models.Building, error) {
	in.Name = strings.TrimSpace(in.Name)
	switch {
	case in.Name == "":
		return models.Building{}, invalidInput("building name is required")
	case in.Slug == "" && slug.Make(in.Name) == "":
		return models.Building{}, invalidInput("building name %q has no letters or digits", in.Name)
	case in.Slug != "" && !slug.Valid(in.Slug):
		return models.Building{}, invalidInput("slug %q is not URL-safe", in.Slug)
	case in.TotalFloors < 0:
		return models.Building{}, invalidInput("total floors must not be negative")
	}
	if err := (models.Coordinates{Latitude: in.Latitude, Longitude: in.Longitude}).Validate(); err != nil {
		return models.Building{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if _, ok := s.repo.ZoneByID(in.ZoneID); !ok {
		return models.Building{}, fmt.Errorf("%w: %s", ErrZoneNotFound, in.ZoneID)
	}

	building, err := addBuildingWithSlug(s.repo, s.newID, models.Building{
		BuildingName:    in.Name,
		BuildingAddress: in.Address,
		StreetZoneID:    in.ZoneID,
		QRCodeURL:       in.QRCodeURL,
		Slug:            in.Slug,
		Latitude:        in.Latitude,
		Longitude:       in.Longitude,
		TotalFloors:     in.TotalFloors,
	})
	if err != nil {
		s.log.Warn("Building add failed", map[string]interface{}{
			"building_name": in.Name,
			"error":         err.Error(),
		})
		return models.Building{}, err
	}

	s.log.Info("Building added", map[string]interface{}{
		"building_id": building.BuildingID,
		"slug":        building.Slug,
	})
	return building, nil
}

func (s *adminService) Dashboard(term string) *Dashboard {
	businesses := filters.BusinessesByName(s.repo.ListBusinesses(), term)
	buildings := s.repo.ListBuildings()

	return &Dashboard{
		Term:       term,
		Buildings:  filters.BuildingsByName(buildings, term),
		Zones:      filters.ZonesByName(s.repo.ListZones(), term),
		Businesses: businesses,
		Pending:    filters.PendingBusinesses(businesses),
		Suggested:  filters.SuggestedBuildings(buildings),
		Comments:   newestFirst(s.repo.AllComments()),
		Counts:     s.repo.Counts(),
	}
}
