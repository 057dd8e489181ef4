package services

import (
	"github.com/stretchr/testify/mock"
	"github.com/stwalsh4118/icyapa/internal/models"
	"github.com/stwalsh4118/icyapa/internal/repository"
)

// MockDirectoryRepository is a mock implementation of DirectoryRepository for testing
type MockDirectoryRepository struct {
	mock.Mock
}

var _ repository.DirectoryRepository = (*MockDirectoryRepository)(nil)

func (m *MockDirectoryRepository) ListBuildings() []models.Building {
	return m.Called().Get(0).([]models.Building)
}

func (m *MockDirectoryRepository) ListZones() []models.StreetZone {
	return m.Called().Get(0).([]models.StreetZone)
}

func (m *MockDirectoryRepository) ListBusinesses() []models.Business {
	return m.Called().Get(0).([]models.Business)
}

func (m *MockDirectoryRepository) BuildingBySlug(slug string) (models.Building, bool) {
	args := m.Called(slug)
	return args.Get(0).(models.Building), args.Bool(1)
}

func (m *MockDirectoryRepository) BuildingByID(buildingID string) (models.Building, bool) {
	args := m.Called(buildingID)
	return args.Get(0).(models.Building), args.Bool(1)
}

func (m *MockDirectoryRepository) ZoneBySlug(slug string) (models.StreetZone, bool) {
	args := m.Called(slug)
	return args.Get(0).(models.StreetZone), args.Bool(1)
}

func (m *MockDirectoryRepository) ZoneByID(zoneID string) (models.StreetZone, bool) {
	args := m.Called(zoneID)
	return args.Get(0).(models.StreetZone), args.Bool(1)
}

func (m *MockDirectoryRepository) BusinessByID(businessID string) (models.Business, bool) {
	args := m.Called(businessID)
	return args.Get(0).(models.Business), args.Bool(1)
}

func (m *MockDirectoryRepository) BusinessesInBuilding(buildingID string) []models.Business {
	return m.Called(buildingID).Get(0).([]models.Business)
}

func (m *MockDirectoryRepository) BusinessesInZone(zoneID string) []models.Business {
	return m.Called(zoneID).Get(0).([]models.Business)
}

func (m *MockDirectoryRepository) TrendingBusinesses() []models.Business {
	return m.Called().Get(0).([]models.Business)
}

func (m *MockDirectoryRepository) AddBuilding(building models.Building) error {
	return m.Called(building).Error(0)
}

func (m *MockDirectoryRepository) AddBusiness(business models.Business) error {
	return m.Called(business).Error(0)
}

func (m *MockDirectoryRepository) AddZone(zone models.StreetZone) error {
	return m.Called(zone).Error(0)
}

func (m *MockDirectoryRepository) UpdateBusiness(businessID string, patch models.BusinessPatch) (models.Business, error) {
	args := m.Called(businessID, patch)
	return args.Get(0).(models.Business), args.Error(1)
}

func (m *MockDirectoryRepository) UpdateBuilding(buildingID string, patch models.BuildingPatch) (models.Building, error) {
	args := m.Called(buildingID, patch)
	return args.Get(0).(models.Building), args.Error(1)
}

func (m *MockDirectoryRepository) ClaimBusiness(businessID string, patch models.BusinessPatch) (models.Business, error) {
	args := m.Called(businessID, patch)
	return args.Get(0).(models.Business), args.Error(1)
}

func (m *MockDirectoryRepository) DeleteBuilding(buildingID string) error {
	return m.Called(buildingID).Error(0)
}

func (m *MockDirectoryRepository) DeleteBuildingIfEmpty(buildingID string) error {
	return m.Called(buildingID).Error(0)
}

func (m *MockDirectoryRepository) DeleteBusiness(businessID string) error {
	return m.Called(businessID).Error(0)
}

func (m *MockDirectoryRepository) MergeBuildings(sourceID, targetID string) (repository.MergeResult, error) {
	args := m.Called(sourceID, targetID)
	return args.Get(0).(repository.MergeResult), args.Error(1)
}

func (m *MockDirectoryRepository) CommentsForBuilding(buildingID string) []models.BuildingComment {
	return m.Called(buildingID).Get(0).([]models.BuildingComment)
}

func (m *MockDirectoryRepository) AllComments() []models.BuildingComment {
	return m.Called().Get(0).([]models.BuildingComment)
}

func (m *MockDirectoryRepository) AddComment(draft models.CommentDraft) (models.BuildingComment, error) {
	args := m.Called(draft)
	return args.Get(0).(models.BuildingComment), args.Error(1)
}

func (m *MockDirectoryRepository) Search(query string) repository.SearchResult {
	return m.Called(query).Get(0).(repository.SearchResult)
}

func (m *MockDirectoryRepository) Counts() repository.Counts {
	return m.Called().Get(0).(repository.Counts)
}
