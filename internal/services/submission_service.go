package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stwalsh4118/icyapa/internal/id"
	"github.com/stwalsh4118/icyapa/internal/logger"
	"github.com/stwalsh4118/icyapa/internal/models"
	"github.com/stwalsh4118/icyapa/internal/repository"
	"github.com/stwalsh4118/icyapa/internal/slug"
)

// Category caps applied to user submissions.
const (
	MaxCreateCategories = 5
	MaxClaimCategories  = 3
)

// Defaults for buildings suggested from the create-listing flow.
const (
	SuggestedBuildingFloors = 1
	maxIDAttempts           = 3
)

// SuggestedBuilding describes a building the submitter could not find in
// the directory. It is stored with IsUserSuggested set for admin review.
type SuggestedBuilding struct {
	Name        string
	Address     string
	ZoneID      string
	Latitude    float64
	Longitude   float64
	TotalFloors int
}

// CreateBusinessInput is a new listing. Exactly one of BuildingID and
// NewBuilding must be set.
type CreateBusinessInput struct {
	NewBuilding            *SuggestedBuilding
	SocialLinks            *models.SocialLinks
	BusinessName           string
	BuildingID             string
	FloorNumber            string
	UnitNumber             string
	Phone                  string
	Email                  string
	Website                string
	BusinessHours          string
	Description            string
	NavigationInstructions string
	OwnerName              string
	OwnerEmail             string
	OwnerPhone             string
	Categories             []string
	Photos                 []string
}

// CreatedBusiness reports a stored listing and the building it was placed in.
type CreatedBusiness struct {
	Business        models.Business
	Building        models.Building
	BuildingCreated bool
}

// ClaimBusinessInput carries the owner contact and the listing fields the
// owner confirmed or corrected. Empty listing fields keep their current value.
type ClaimBusinessInput struct {
	OwnerName              string
	OwnerEmail             string
	OwnerPhone             string
	BusinessName           string
	FloorNumber            string
	UnitNumber             string
	Phone                  string
	Email                  string
	BusinessHours          string
	Description            string
	NavigationInstructions string
	Categories             []string
}

// CommentInput is a comment submitted from a building page.
type CommentInput struct {
	BuildingSlug string
	UserName     string
	Comment      string
	Type         models.CommentType
}

// SubmissionService defines the operations available to public users that
// write to the directory.
type SubmissionService interface {
	// CreateBusiness stores a new unverified listing, creating a suggested
	// building first when requested.
	CreateBusiness(in CreateBusinessInput) (*CreatedBusiness, error)

	// ClaimBusiness attaches an owner to an unclaimed listing. Verification
	// is left to an administrator.
	ClaimBusiness(businessID string, in ClaimBusinessInput) (models.Business, error)

	// AddComment accepts general notes and corrections on a building.
	AddComment(in CommentInput) (models.BuildingComment, error)

	// SuggestBuildingMatches returns buildings matching a partial name or
	// address, for picking the building of a new listing.
	SuggestBuildingMatches(query string) []models.Building
}

// submissionService is the concrete implementation of SubmissionService.
type submissionService struct {
	repo  repository.DirectoryRepository
	newID id.Generator
	log   *logger.Logger
}

// NewSubmissionService creates a new instance of SubmissionService.
func NewSubmissionService(repo repository.DirectoryRepository, newID id.Generator, log *logger.Logger) SubmissionService {
	return &submissionService{
		repo:  repo,
		newID: newID,
		log:   log.WithComponent("submission_service"),
	}
}

func (s *submissionService) CreateBusiness(in CreateBusinessInput) (*CreatedBusiness, error) {
	if err := validateCreate(&in); err != nil {
		s.log.Warn("Rejected business submission", map[string]interface{}{
			"business_name": in.BusinessName,
			"reason":        err.Error(),
		})
		return nil, err
	}

	out := &CreatedBusiness{}
	if in.NewBuilding != nil {
		building, err := s.suggestBuilding(*in.NewBuilding)
		if err != nil {
			return nil, err
		}
		out.Building = building
		out.BuildingCreated = true
	} else {
		building, ok := s.repo.BuildingByID(in.BuildingID)
		if !ok {
			s.log.Warn("Business submitted for unknown building", map[string]interface{}{
				"building_id": in.BuildingID,
			})
			return nil, fmt.Errorf("%w: %s", ErrBuildingNotFound, in.BuildingID)
		}
		out.Building = building
	}

	business := models.Business{
		BusinessName:           in.BusinessName,
		BuildingID:             out.Building.BuildingID,
		FloorNumber:            in.FloorNumber,
		UnitNumber:             in.UnitNumber,
		Categories:             in.Categories,
		Phone:                  in.Phone,
		Email:                  in.Email,
		Website:                in.Website,
		SocialLinks:            in.SocialLinks,
		BusinessHours:          in.BusinessHours,
		Description:            in.Description,
		NavigationInstructions: in.NavigationInstructions,
		Photos:                 append([]string{}, in.Photos...),
		OwnerName:              in.OwnerName,
		OwnerEmail:             in.OwnerEmail,
		OwnerPhone:             in.OwnerPhone,
		IsClaimed:              true,
		IsVerified:             false,
	}

	stored, err := s.addBusiness(business)
	if err != nil {
		s.log.Error("Failed to store business", err, map[string]interface{}{
			"business_name": in.BusinessName,
			"building_id":   business.BuildingID,
		})
		if out.BuildingCreated {
			if rbErr := s.repo.DeleteBuilding(out.Building.BuildingID); rbErr != nil {
				s.log.Error("Failed to remove suggested building", rbErr, map[string]interface{}{
					"building_id": out.Building.BuildingID,
				})
			}
		}
		return nil, err
	}
	out.Business = stored

	s.log.Info("Business submitted for review", map[string]interface{}{
		"business_id":      stored.BusinessID,
		"building_id":      stored.BuildingID,
		"building_created": out.BuildingCreated,
		"categories":       stored.Categories,
	})

	return out, nil
}

func (s *submissionService) ClaimBusiness(businessID string, in ClaimBusinessInput) (models.Business, error) {
	if err := validateClaim(&in); err != nil {
		s.log.Warn("Rejected claim", map[string]interface{}{
			"business_id": businessID,
			"reason":      err.Error(),
		})
		return models.Business{}, err
	}

	patch := models.BusinessPatch{
		OwnerName:              &in.OwnerName,
		OwnerEmail:             &in.OwnerEmail,
		OwnerPhone:             &in.OwnerPhone,
		BusinessName:           nonEmpty(in.BusinessName),
		FloorNumber:            nonEmpty(in.FloorNumber),
		UnitNumber:             nonEmpty(in.UnitNumber),
		Phone:                  nonEmpty(in.Phone),
		Email:                  nonEmpty(in.Email),
		BusinessHours:          nonEmpty(in.BusinessHours),
		Description:            nonEmpty(in.Description),
		NavigationInstructions: nonEmpty(in.NavigationInstructions),
	}
	if len(in.Categories) > 0 {
		patch.Categories = &in.Categories
	}

	updated, err := s.repo.ClaimBusiness(businessID, patch)
	switch {
	case errors.Is(err, ErrAlreadyClaimed):
		s.log.Warn("Claim for already claimed business", map[string]interface{}{
			"business_id": businessID,
		})
		return models.Business{}, err
	case err != nil:
		s.log.Error("Failed to record claim", err, map[string]interface{}{
			"business_id": businessID,
		})
		return models.Business{}, err
	}

	s.log.Info("Business claimed", map[string]interface{}{
		"business_id": businessID,
		"owner_email": in.OwnerEmail,
	})

	return updated, nil
}

func (s *submissionService) AddComment(in CommentInput) (models.BuildingComment, error) {
	text := strings.TrimSpace(in.Comment)
	if text == "" {
		return models.BuildingComment{}, invalidInput("comment must not be blank")
	}
	commentType := in.Type
	if commentType == "" {
		commentType = models.CommentGeneral
	}
	if commentType != models.CommentGeneral && commentType != models.CommentCorrection {
		return models.BuildingComment{}, invalidInput("comment type must be %q or %q", models.CommentGeneral, models.CommentCorrection)
	}

	building, ok := s.repo.BuildingBySlug(in.BuildingSlug)
	if !ok {
		return models.BuildingComment{}, fmt.Errorf("%w: %s", ErrBuildingNotFound, in.BuildingSlug)
	}

	comment, err := s.repo.AddComment(models.CommentDraft{
		BuildingID: building.BuildingID,
		UserName:   in.UserName,
		Comment:    text,
		Type:       commentType,
	})
	if err != nil {
		s.log.Error("Failed to add comment", err, map[string]interface{}{
			"building_id": building.BuildingID,
		})
		return models.BuildingComment{}, err
	}

	s.log.Info("Comment added", map[string]interface{}{
		"building_id": building.BuildingID,
		"comment_id":  comment.ID,
		"type":        comment.Type,
	})

	return comment, nil
}

func (s *submissionService) SuggestBuildingMatches(query string) []models.Building {
	return s.repo.Search(query).Buildings
}

// suggestBuilding stores a user-proposed building with a generated id and
// a slug derived from its name.
func (s *submissionService) suggestBuilding(nb SuggestedBuilding) (models.Building, error) {
	if _, ok := s.repo.ZoneByID(nb.ZoneID); !ok {
		return models.Building{}, fmt.Errorf("%w: %s", ErrZoneNotFound, nb.ZoneID)
	}

	floors := nb.TotalFloors
	if floors <= 0 {
		floors = SuggestedBuildingFloors
	}

	building := models.Building{
		BuildingName:    nb.Name,
		BuildingAddress: nb.Address,
		StreetZoneID:    nb.ZoneID,
		Latitude:        nb.Latitude,
		Longitude:       nb.Longitude,
		TotalFloors:     floors,
		IsUserSuggested: true,
	}

	stored, err := addBuildingWithSlug(s.repo, s.newID, building)
	if err != nil {
		s.log.Error("Failed to store suggested building", err, map[string]interface{}{
			"building_name": nb.Name,
		})
		return models.Building{}, err
	}

	s.log.Info("Suggested building added", map[string]interface{}{
		"building_id": stored.BuildingID,
		"slug":        stored.Slug,
	})
	return stored, nil
}

// addBusiness assigns a fresh id and stores b, drawing again when the id
// is already taken.
func (s *submissionService) addBusiness(b models.Business) (models.Business, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		businessID, err := s.newID(id.BusinessPrefix)
		if err != nil {
			return models.Business{}, fmt.Errorf("failed to generate business id: %w", err)
		}
		b.BusinessID = businessID
		err = s.repo.AddBusiness(b)
		if errors.Is(err, ErrDuplicateID) {
			continue
		}
		if err != nil {
			return models.Business{}, err
		}
		stored, _ := s.repo.BusinessByID(businessID)
		return stored, nil
	}
	return models.Business{}, fmt.Errorf("%w: no free business id after %d attempts", ErrDuplicateID, maxIDAttempts)
}

// addBuildingWithSlug assigns an id (and a slug when b has none) and stores
// b. Derived slugs are made unique; an explicit slug must be free.
func addBuildingWithSlug(repo repository.DirectoryRepository, newID id.Generator, b models.Building) (models.Building, error) {
	deriveSlug := b.Slug == ""
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		buildingID, err := newID(id.BuildingPrefix)
		if err != nil {
			return models.Building{}, fmt.Errorf("failed to generate building id: %w", err)
		}
		b.BuildingID = buildingID
		if deriveSlug {
			b.Slug = slug.Unique(b.BuildingName, buildingID, func(candidate string) bool {
				_, taken := repo.BuildingBySlug(candidate)
				return taken
			})
		}
		err = repo.AddBuilding(b)
		if errors.Is(err, ErrDuplicateID) || (deriveSlug && errors.Is(err, ErrDuplicateSlug)) {
			continue
		}
		if err != nil {
			return models.Building{}, err
		}
		return b, nil
	}
	return models.Building{}, fmt.Errorf("%w: no free building id after %d attempts", ErrDuplicateID, maxIDAttempts)
}

func validateCreate(in *CreateBusinessInput) error {
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	in.OwnerName = strings.TrimSpace(in.OwnerName)
	in.Categories = cleanCategories(in.Categories)

	switch {
	case in.BusinessName == "":
		return invalidInput("business name is required")
	case in.OwnerName == "" || in.OwnerEmail == "" || in.OwnerPhone == "":
		return invalidInput("owner name, email and phone are required")
	case in.FloorNumber == "" || in.UnitNumber == "":
		return invalidInput("floor and unit are required")
	case in.Phone == "" || in.Email == "":
		return invalidInput("business phone and email are required")
	case len(in.Categories) == 0:
		return invalidInput("at least one category is required")
	case len(in.Categories) > MaxCreateCategories:
		return invalidInput("at most %d categories are allowed, got %d", MaxCreateCategories, len(in.Categories))
	case in.BuildingID == "" && in.NewBuilding == nil:
		return invalidInput("a building_id or a new building is required")
	case in.BuildingID != "" && in.NewBuilding != nil:
		return invalidInput("building_id and a new building are mutually exclusive")
	}

	if nb := in.NewBuilding; nb != nil {
		nb.Name = strings.TrimSpace(nb.Name)
		if nb.Name == "" || nb.ZoneID == "" {
			return invalidInput("new building needs a name and a zone")
		}
		if slug.Make(nb.Name) == "" {
			return invalidInput("new building name %q has no letters or digits", nb.Name)
		}
		if err := (models.Coordinates{Latitude: nb.Latitude, Longitude: nb.Longitude}).Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	return nil
}

func validateClaim(in *ClaimBusinessInput) error {
	in.OwnerName = strings.TrimSpace(in.OwnerName)
	in.Categories = cleanCategories(in.Categories)

	switch {
	case in.OwnerName == "" || in.OwnerEmail == "" || in.OwnerPhone == "":
		return invalidInput("owner name, email and phone are required")
	case len(in.Categories) > MaxClaimCategories:
		return invalidInput("at most %d categories are allowed, got %d", MaxClaimCategories, len(in.Categories))
	}
	return nil
}

// cleanCategories trims names and removes blanks and duplicates.
func cleanCategories(in []string) []string {
	trimmed := make([]string, len(in))
	for i, c := range in {
		trimmed[i] = strings.TrimSpace(c)
	}
	return models.UniqueCategories(trimmed)
}

func nonEmpty(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
