package repository

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/stwalsh4118/icyapa/internal/id"
	"github.com/stwalsh4118/icyapa/internal/models"
	"github.com/stwalsh4118/icyapa/internal/seed"
)

// DefaultTrendingLimit caps TrendingBusinesses when no limit is configured.
const DefaultTrendingLimit = 5

// Store-level errors. Read lookups report absence with a false ok value
// instead of an error; these are returned by write operations only.
var (
	ErrBuildingNotFound = errors.New("building not found")
	ErrBusinessNotFound = errors.New("business not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrDuplicateID      = errors.New("duplicate id")
	ErrDuplicateSlug    = errors.New("duplicate slug")

	ErrAlreadyClaimed        = errors.New("business is already claimed")
	ErrBuildingHasBusinesses = errors.New("building still has businesses")
)

// Counts is a snapshot of collection sizes.
type Counts struct {
	Zones      int `json:"zones"`
	Buildings  int `json:"buildings"`
	Businesses int `json:"businesses"`
	Comments   int `json:"comments"`
}

// MergeResult describes what MergeBuildings moved.
type MergeResult struct {
	SourceID             string `json:"source_id"`
	TargetID             string `json:"target_id"`
	ReassignedBusinesses int    `json:"reassigned_businesses"`
	ReassignedComments   int    `json:"reassigned_comments"`
}

// DirectoryRepository defines the directory data access operations.
//
// Every list and lookup returns copies: mutating a returned value never
// changes the stored record. Writes go through the Add/Update/Delete/Merge
// methods and are visible to subsequent reads immediately.
type DirectoryRepository interface {
	ListBuildings() []models.Building
	ListZones() []models.StreetZone
	ListBusinesses() []models.Business

	// Lookups return ok=false when nothing matches; a miss is not an error.
	BuildingBySlug(slug string) (models.Building, bool)
	BuildingByID(buildingID string) (models.Building, bool)
	ZoneBySlug(slug string) (models.StreetZone, bool)
	ZoneByID(zoneID string) (models.StreetZone, bool)
	BusinessByID(businessID string) (models.Business, bool)

	BusinessesInBuilding(buildingID string) []models.Business
	BusinessesInZone(zoneID string) []models.Business
	TrendingBusinesses() []models.Business

	AddBuilding(building models.Building) error
	AddBusiness(business models.Business) error
	AddZone(zone models.StreetZone) error

	// Updates merge the patch onto the stored record and return the result.
	// An unknown id yields ErrBusinessNotFound / ErrBuildingNotFound.
	UpdateBusiness(businessID string, patch models.BusinessPatch) (models.Business, error)
	UpdateBuilding(buildingID string, patch models.BuildingPatch) (models.Building, error)

	// ClaimBusiness applies patch and marks the business claimed, failing
	// with ErrAlreadyClaimed when another owner got there first.
	ClaimBusiness(businessID string, patch models.BusinessPatch) (models.Business, error)

	// DeleteBuilding does not touch businesses that reference the building.
	DeleteBuilding(buildingID string) error
	// DeleteBuildingIfEmpty refuses with ErrBuildingHasBusinesses while any
	// business is located in the building.
	DeleteBuildingIfEmpty(buildingID string) error
	DeleteBusiness(businessID string) error

	// MergeBuildings repoints every business (and comment) of sourceID to
	// targetID and removes sourceID in one atomic step.
	MergeBuildings(sourceID, targetID string) (MergeResult, error)

	CommentsForBuilding(buildingID string) []models.BuildingComment
	AllComments() []models.BuildingComment
	AddComment(draft models.CommentDraft) (models.BuildingComment, error)

	Search(query string) SearchResult
	Counts() Counts
}

// Option configures a DirectoryStore.
type Option func(*DirectoryStore)

// WithClock overrides the time source used for comment timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *DirectoryStore) {
		s.now = now
	}
}

// WithIDGenerator overrides comment identifier generation.
func WithIDGenerator(gen id.Generator) Option {
	return func(s *DirectoryStore) {
		s.newID = gen
	}
}

// WithTrendingLimit sets how many verified businesses TrendingBusinesses returns.
func WithTrendingLimit(limit int) Option {
	return func(s *DirectoryStore) {
		if limit > 0 {
			s.trendingLimit = limit
		}
	}
}

// DirectoryStore is the in-memory owner of all directory collections.
// Collections keep insertion order, which is the default display order.
// A single RWMutex makes every operation atomic with respect to the others.
type DirectoryStore struct {
	now           func() time.Time
	newID         id.Generator
	zones         []models.StreetZone
	buildings     []models.Building
	businesses    []models.Business
	comments      []models.BuildingComment
	trendingLimit int
	mu            sync.RWMutex
}

var _ DirectoryRepository = (*DirectoryStore)(nil)

// NewDirectoryStore creates a store holding a private copy of the dataset.
func NewDirectoryStore(ds seed.Dataset, opts ...Option) *DirectoryStore {
	s := &DirectoryStore{
		now:           time.Now,
		newID:         id.Generate,
		zones:         append([]models.StreetZone(nil), ds.Zones...),
		buildings:     append([]models.Building(nil), ds.Buildings...),
		businesses:    cloneBusinesses(ds.Businesses),
		trendingLimit: DefaultTrendingLimit,
	}
	for i := range s.businesses {
		s.businesses[i].Categories = models.UniqueCategories(s.businesses[i].Categories)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListBuildings returns every building in insertion order.
func (s *DirectoryStore) ListBuildings() []models.Building {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Building{}, s.buildings...)
}

// ListZones returns every street zone in insertion order.
func (s *DirectoryStore) ListZones() []models.StreetZone {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.StreetZone{}, s.zones...)
}

// ListBusinesses returns every business in insertion order.
func (s *DirectoryStore) ListBusinesses() []models.Business {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneBusinesses(s.businesses)
}

// BuildingBySlug returns the first building with the given slug.
func (s *DirectoryStore) BuildingBySlug(slug string) (models.Building, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.buildings {
		if b.Slug == slug {
			return b, true
		}
	}
	return models.Building{}, false
}

// BuildingByID returns the building with the given id.
func (s *DirectoryStore) BuildingByID(buildingID string) (models.Building, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.buildingIndex(buildingID); i >= 0 {
		return s.buildings[i], true
	}
	return models.Building{}, false
}

// ZoneBySlug returns the first street zone with the given slug.
func (s *DirectoryStore) ZoneBySlug(slug string) (models.StreetZone, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, z := range s.zones {
		if z.Slug == slug {
			return z, true
		}
	}
	return models.StreetZone{}, false
}

// ZoneByID returns the street zone with the given id.
func (s *DirectoryStore) ZoneByID(zoneID string) (models.StreetZone, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, z := range s.zones {
		if z.ZoneID == zoneID {
			return z, true
		}
	}
	return models.StreetZone{}, false
}

// BusinessByID returns the business with the given id.
func (s *DirectoryStore) BusinessByID(businessID string) (models.Business, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.businessIndex(businessID); i >= 0 {
		return s.businesses[i].Clone(), true
	}
	return models.Business{}, false
}

// BusinessesInBuilding returns the businesses located in buildingID.
func (s *DirectoryStore) BusinessesInBuilding(buildingID string) []models.Business {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Business{}
	for _, b := range s.businesses {
		if b.BuildingID == buildingID {
			out = append(out, b.Clone())
		}
	}
	return out
}

// BusinessesInZone resolves the buildings of zoneID first, then returns the
// businesses located in any of them. A zone without buildings yields an
// empty slice.
func (s *DirectoryStore) BusinessesInZone(zoneID string) []models.Business {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inZone := make(map[string]struct{})
	for _, b := range s.buildings {
		if b.StreetZoneID == zoneID {
			inZone[b.BuildingID] = struct{}{}
		}
	}

	out := []models.Business{}
	if len(inZone) == 0 {
		return out
	}
	for _, b := range s.businesses {
		if _, ok := inZone[b.BuildingID]; ok {
			out = append(out, b.Clone())
		}
	}
	return out
}

// TrendingBusinesses returns the first verified businesses in collection
// order, capped at the trending limit. It is not a popularity ranking.
func (s *DirectoryStore) TrendingBusinesses() []models.Business {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Business{}
	for _, b := range s.businesses {
		if len(out) == s.trendingLimit {
			break
		}
		if b.IsVerified {
			out = append(out, b.Clone())
		}
	}
	return out
}

// AddBuilding appends a fully formed building.
func (s *DirectoryStore) AddBuilding(building models.Building) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buildingIndex(building.BuildingID) >= 0 {
		return fmt.Errorf("%w: building %s", ErrDuplicateID, building.BuildingID)
	}
	if s.buildingSlugTaken(building.Slug, "") {
		return fmt.Errorf("%w: building slug %s", ErrDuplicateSlug, building.Slug)
	}
	s.buildings = append(s.buildings, building)
	return nil
}

// AddBusiness appends a fully formed business. Its building must exist.
func (s *DirectoryStore) AddBusiness(business models.Business) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.businessIndex(business.BusinessID) >= 0 {
		return fmt.Errorf("%w: business %s", ErrDuplicateID, business.BusinessID)
	}
	if s.buildingIndex(business.BuildingID) < 0 {
		return fmt.Errorf("%w: %s", ErrBuildingNotFound, business.BuildingID)
	}
	stored := business.Clone()
	stored.Categories = models.UniqueCategories(stored.Categories)
	s.businesses = append(s.businesses, stored)
	return nil
}

// AddZone appends a fully formed street zone.
func (s *DirectoryStore) AddZone(zone models.StreetZone) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, z := range s.zones {
		if z.ZoneID == zone.ZoneID {
			return fmt.Errorf("%w: zone %s", ErrDuplicateID, zone.ZoneID)
		}
		if z.Slug == zone.Slug {
			return fmt.Errorf("%w: zone slug %s", ErrDuplicateSlug, zone.Slug)
		}
	}
	s.zones = append(s.zones, zone)
	return nil
}

// UpdateBusiness merges patch onto the business and returns the result.
// Moving a business to an unknown building is rejected.
func (s *DirectoryStore) UpdateBusiness(businessID string, patch models.BusinessPatch) (models.Business, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.businessIndex(businessID)
	if i < 0 {
		return models.Business{}, fmt.Errorf("%w: %s", ErrBusinessNotFound, businessID)
	}
	if patch.BuildingID != nil && s.buildingIndex(*patch.BuildingID) < 0 {
		return models.Business{}, fmt.Errorf("%w: %s", ErrBuildingNotFound, *patch.BuildingID)
	}
	s.businesses[i] = patch.Apply(s.businesses[i])
	return s.businesses[i].Clone(), nil
}

// ClaimBusiness marks the business claimed and applies patch. The claimed
// check and the write happen under one write lock.
func (s *DirectoryStore) ClaimBusiness(businessID string, patch models.BusinessPatch) (models.Business, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.businessIndex(businessID)
	if i < 0 {
		return models.Business{}, fmt.Errorf("%w: %s", ErrBusinessNotFound, businessID)
	}
	if s.businesses[i].IsClaimed {
		return models.Business{}, fmt.Errorf("%w: %s", ErrAlreadyClaimed, businessID)
	}
	if patch.BuildingID != nil && s.buildingIndex(*patch.BuildingID) < 0 {
		return models.Business{}, fmt.Errorf("%w: %s", ErrBuildingNotFound, *patch.BuildingID)
	}
	claimed := true
	patch.IsClaimed = &claimed
	s.businesses[i] = patch.Apply(s.businesses[i])
	return s.businesses[i].Clone(), nil
}

// UpdateBuilding merges patch onto the building and returns the result.
func (s *DirectoryStore) UpdateBuilding(buildingID string, patch models.BuildingPatch) (models.Building, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.buildingIndex(buildingID)
	if i < 0 {
		return models.Building{}, fmt.Errorf("%w: %s", ErrBuildingNotFound, buildingID)
	}
	if patch.Slug != nil && s.buildingSlugTaken(*patch.Slug, buildingID) {
		return models.Building{}, fmt.Errorf("%w: building slug %s", ErrDuplicateSlug, *patch.Slug)
	}
	s.buildings[i] = patch.Apply(s.buildings[i])
	return s.buildings[i], nil
}

// DeleteBuilding removes the building. Businesses located in it are left as
// they are; use MergeBuildings when the building still has tenants.
func (s *DirectoryStore) DeleteBuilding(buildingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.buildingIndex(buildingID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBuildingNotFound, buildingID)
	}
	s.buildings = append(s.buildings[:i:i], s.buildings[i+1:]...)
	return nil
}

// DeleteBuildingIfEmpty removes the building only when no business is
// located in it. The tenant count and the removal share one write lock.
func (s *DirectoryStore) DeleteBuildingIfEmpty(buildingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.buildingIndex(buildingID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBuildingNotFound, buildingID)
	}
	tenants := 0
	for _, b := range s.businesses {
		if b.BuildingID == buildingID {
			tenants++
		}
	}
	if tenants > 0 {
		return fmt.Errorf("%w: %s has %d businesses", ErrBuildingHasBusinesses, buildingID, tenants)
	}
	s.buildings = append(s.buildings[:i:i], s.buildings[i+1:]...)
	return nil
}

// DeleteBusiness removes the business.
func (s *DirectoryStore) DeleteBusiness(businessID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.businessIndex(businessID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBusinessNotFound, businessID)
	}
	s.businesses = append(s.businesses[:i:i], s.businesses[i+1:]...)
	return nil
}

// MergeBuildings moves every business and comment of sourceID onto targetID
// and then deletes sourceID. Both steps happen under one write lock, and
// nothing changes when the merge is rejected.
func (s *DirectoryStore) MergeBuildings(sourceID, targetID string) (MergeResult, error) {
	if sourceID == targetID {
		return MergeResult{}, fmt.Errorf("%w: cannot merge building %s into itself", ErrInvalidOperation, sourceID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	src := s.buildingIndex(sourceID)
	if src < 0 {
		return MergeResult{}, fmt.Errorf("%w: source %s", ErrBuildingNotFound, sourceID)
	}
	if s.buildingIndex(targetID) < 0 {
		return MergeResult{}, fmt.Errorf("%w: target %s", ErrBuildingNotFound, targetID)
	}

	result := MergeResult{SourceID: sourceID, TargetID: targetID}
	for i := range s.businesses {
		if s.businesses[i].BuildingID == sourceID {
			s.businesses[i].BuildingID = targetID
			result.ReassignedBusinesses++
		}
	}
	for i := range s.comments {
		if s.comments[i].BuildingID == sourceID {
			s.comments[i].BuildingID = targetID
			result.ReassignedComments++
		}
	}
	s.buildings = append(s.buildings[:src:src], s.buildings[src+1:]...)

	return result, nil
}

// CommentsForBuilding returns the building's comments, oldest first.
func (s *DirectoryStore) CommentsForBuilding(buildingID string) []models.BuildingComment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.BuildingComment{}
	for _, c := range s.comments {
		if c.BuildingID == buildingID {
			out = append(out, c)
		}
	}
	return out
}

// AllComments returns every comment, oldest first.
func (s *DirectoryStore) AllComments() []models.BuildingComment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.BuildingComment{}, s.comments...)
}

// AddComment stores a comment with a fresh id and the current time.
// A blank user name is recorded as AnonymousUserName and a blank type as general.
func (s *DirectoryStore) AddComment(draft models.CommentDraft) (models.BuildingComment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buildingIndex(draft.BuildingID) < 0 {
		return models.BuildingComment{}, fmt.Errorf("%w: %s", ErrBuildingNotFound, draft.BuildingID)
	}

	commentID, err := s.uniqueCommentID()
	if err != nil {
		return models.BuildingComment{}, err
	}

	userName := strings.TrimSpace(draft.UserName)
	if userName == "" {
		userName = models.AnonymousUserName
	}
	commentType := draft.Type
	if commentType == "" {
		commentType = models.CommentGeneral
	}

	comment := models.BuildingComment{
		ID:         commentID,
		BuildingID: draft.BuildingID,
		UserName:   userName,
		Comment:    draft.Comment,
		Type:       commentType,
		CreatedAt:  s.now().UTC(),
	}
	s.comments = append(s.comments, comment)
	return comment, nil
}

// Search runs the tiered query over the current collections.
func (s *DirectoryStore) Search(query string) SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return searchCollections(query, s.businesses, s.buildings, s.zones)
}

// Counts returns the size of every collection.
func (s *DirectoryStore) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Counts{
		Zones:      len(s.zones),
		Buildings:  len(s.buildings),
		Businesses: len(s.businesses),
		Comments:   len(s.comments),
	}
}

// uniqueCommentID draws ids until one is unused. Callers hold the write lock.
func (s *DirectoryStore) uniqueCommentID() (string, error) {
	const maxAttempts = 5
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate, err := s.newID(id.CommentPrefix)
		if err != nil {
			return "", fmt.Errorf("failed to generate comment id: %w", err)
		}
		if candidate == "" {
			continue
		}
		taken := false
		for _, c := range s.comments {
			if c.ID == candidate {
				taken = true
				break
			}
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique comment id after %d attempts", maxAttempts)
}

func (s *DirectoryStore) buildingIndex(buildingID string) int {
	for i, b := range s.buildings {
		if b.BuildingID == buildingID {
			return i
		}
	}
	return -1
}

func (s *DirectoryStore) businessIndex(businessID string) int {
	for i, b := range s.businesses {
		if b.BusinessID == businessID {
			return i
		}
	}
	return -1
}

// buildingSlugTaken reports whether another building than exceptID uses slug.
func (s *DirectoryStore) buildingSlugTaken(slug, exceptID string) bool {
	for _, b := range s.buildings {
		if b.Slug == slug && b.BuildingID != exceptID {
			return true
		}
	}
	return false
}

func cloneBusinesses(in []models.Business) []models.Business {
	out := make([]models.Business, len(in))
	for i, b := range in {
		out[i] = b.Clone()
	}
	return out
}
