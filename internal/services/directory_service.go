package services

import (
	"github.com/stwalsh4118/icyapa/internal/filters"
	"github.com/stwalsh4118/icyapa/internal/logger"
	"github.com/stwalsh4118/icyapa/internal/models"
	"github.com/stwalsh4118/icyapa/internal/repository"
)

// AdFinder is the read side of the ad catalog.
type AdFinder interface {
	Find(q repository.AdQuery) []models.Ad
	ForBusiness(businessID string) []models.Ad
}

// ZoneSummary is a zone with the number of buildings assigned to it.
type ZoneSummary struct {
	Zone          models.StreetZone
	BuildingCount int
}

// BuildingSummary is a building with the number of businesses inside it.
type BuildingSummary struct {
	Building      models.Building
	BusinessCount int
}

// ZoneDetail is the zone page: the zone and its buildings narrowed by a
// name/address term.
type ZoneDetail struct {
	Zone      models.StreetZone
	Buildings []BuildingSummary
	Term      string
}

// BuildingDetail is the building page.
type BuildingDetail struct {
	Building models.Building
	// Zone is nil when the building references an unknown zone.
	Zone            *models.StreetZone
	Businesses      []models.Business
	TotalBusinesses int
	FloorOptions    []string
	Categories      []string
	Comments        []models.BuildingComment
	Filter          filters.BuildingBusinessFilter
}

// BusinessDetail is a business together with its building and the ads it runs.
type BusinessDetail struct {
	Business models.Business
	// Building is nil when the business points at a removed building.
	Building *models.Building
	Ads      []models.Ad
}

// SearchOutcome is a search result after category narrowing. Categories
// lists every category in the unnarrowed business matches so clients can
// offer them as choices.
type SearchOutcome struct {
	Query      string
	Result     repository.SearchResult
	Categories []string
	Selected   []string
}

// DirectoryService defines the read-only browsing operations.
type DirectoryService interface {
	ListZones() []ZoneSummary
	ListBuildings() []BuildingSummary

	// ZoneDetail returns ErrZoneNotFound when slug matches no zone.
	ZoneDetail(slug, term string) (*ZoneDetail, error)
	ZoneBusinesses(slug string) ([]models.Business, error)

	// BuildingDetail returns ErrBuildingNotFound when slug matches no building.
	BuildingDetail(slug string, filter filters.BuildingBusinessFilter) (*BuildingDetail, error)
	BuildingComments(slug string) ([]models.BuildingComment, error)

	// Business returns ErrBusinessNotFound when businessID is unknown.
	Business(businessID string) (*BusinessDetail, error)

	// Search never fails; a blank query yields an empty outcome.
	Search(query string, categories []string) SearchOutcome
	Trending() []models.Business
	Ads(q repository.AdQuery) []models.Ad
}

// directoryService is the concrete implementation of DirectoryService.
type directoryService struct {
	repo repository.DirectoryRepository
	ads  AdFinder
	log  *logger.Logger
}

// NewDirectoryService creates a new instance of DirectoryService.
func NewDirectoryService(repo repository.DirectoryRepository, ads AdFinder, log *logger.Logger) DirectoryService {
	return &directoryService{
		repo: repo,
		ads:  ads,
		log:  log.WithComponent("directory_service"),
	}
}

func (s *directoryService) ListZones() []ZoneSummary {
	zones := s.repo.ListZones()
	buildings := s.repo.ListBuildings()

	out := make([]ZoneSummary, len(zones))
	for i, z := range zones {
		count := 0
		for _, b := range buildings {
			if b.StreetZoneID == z.ZoneID {
				count++
			}
		}
		out[i] = ZoneSummary{Zone: z, BuildingCount: count}
	}
	return out
}

func (s *directoryService) ListBuildings() []BuildingSummary {
	return s.summarize(s.repo.ListBuildings())
}

func (s *directoryService) ZoneDetail(slug, term string) (*ZoneDetail, error) {
	zone, ok := s.repo.ZoneBySlug(slug)
	if !ok {
		s.log.Debug("Zone not found", map[string]interface{}{"slug": slug})
		return nil, ErrZoneNotFound
	}

	buildings := filters.ZoneBuildings(s.repo.ListBuildings(), zone.ZoneID, term)

	return &ZoneDetail{
		Zone:      zone,
		Buildings: s.summarize(buildings),
		Term:      term,
	}, nil
}

func (s *directoryService) ZoneBusinesses(slug string) ([]models.Business, error) {
	zone, ok := s.repo.ZoneBySlug(slug)
	if !ok {
		return nil, ErrZoneNotFound
	}
	return s.repo.BusinessesInZone(zone.ZoneID), nil
}

func (s *directoryService) BuildingDetail(slug string, filter filters.BuildingBusinessFilter) (*BuildingDetail, error) {
	building, ok := s.repo.BuildingBySlug(slug)
	if !ok {
		s.log.Debug("Building not found", map[string]interface{}{"slug": slug})
		return nil, ErrBuildingNotFound
	}

	all := s.repo.BusinessesInBuilding(building.BuildingID)
	detail := &BuildingDetail{
		Building:        building,
		Businesses:      filters.BuildingBusinesses(all, filter),
		TotalBusinesses: len(all),
		FloorOptions:    filters.FloorOptions(building.TotalFloors),
		Categories:      filters.Categories(all),
		Comments:        newestFirst(s.repo.CommentsForBuilding(building.BuildingID)),
		Filter:          filter,
	}
	if zone, ok := s.repo.ZoneByID(building.StreetZoneID); ok {
		detail.Zone = &zone
	}
	return detail, nil
}

func (s *directoryService) BuildingComments(slug string) ([]models.BuildingComment, error) {
	building, ok := s.repo.BuildingBySlug(slug)
	if !ok {
		return nil, ErrBuildingNotFound
	}
	return newestFirst(s.repo.CommentsForBuilding(building.BuildingID)), nil
}

func (s *directoryService) Business(businessID string) (*BusinessDetail, error) {
	business, ok := s.repo.BusinessByID(businessID)
	if !ok {
		s.log.Debug("Business not found", map[string]interface{}{"business_id": businessID})
		return nil, ErrBusinessNotFound
	}

	detail := &BusinessDetail{
		Business: business,
		Ads:      s.ads.ForBusiness(businessID),
	}
	if building, ok := s.repo.BuildingByID(business.BuildingID); ok {
		detail.Building = &building
	}
	return detail, nil
}

func (s *directoryService) Search(query string, categories []string) SearchOutcome {
	selected := models.UniqueCategories(categories)
	result := s.repo.Search(query)

	outcome := SearchOutcome{
		Query:      query,
		Result:     filters.NarrowSearch(result, selected),
		Categories: filters.SearchCategories(result),
		Selected:   selected,
	}

	s.log.Debug("Search executed", map[string]interface{}{
		"query":      query,
		"categories": selected,
		"businesses": len(outcome.Result.Businesses),
		"buildings":  len(outcome.Result.Buildings),
		"zones":      len(outcome.Result.Zones),
	})

	return outcome
}

func (s *directoryService) Trending() []models.Business {
	return s.repo.TrendingBusinesses()
}

func (s *directoryService) Ads(q repository.AdQuery) []models.Ad {
	return s.ads.Find(q)
}

func (s *directoryService) summarize(buildings []models.Building) []BuildingSummary {
	out := make([]BuildingSummary, len(buildings))
	for i, b := range buildings {
		out[i] = BuildingSummary{
			Building:      b,
			BusinessCount: len(s.repo.BusinessesInBuilding(b.BuildingID)),
		}
	}
	return out
}

// newestFirst reverses comments held in insertion order.
func newestFirst(comments []models.BuildingComment) []models.BuildingComment {
	out := make([]models.BuildingComment, len(comments))
	for i, c := range comments {
		out[len(comments)-1-i] = c
	}
	return out
}
