package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/icyapa/internal/models"
	"github.com/stwalsh4118/icyapa/internal/repository"
)

func validCreateInput() CreateBusinessInput {
	return CreateBusinessInput{
		BusinessName: "Nyamata Pharmacy",
		BuildingID:   "b-2",
		FloorNumber:  "1",
		UnitNumber:   "Shop 12",
		Categories:   []string{"Pharmacy", " Pharmacy ", "Clinic"},
		Phone:        "+250 788 000 111",
		Email:        "hello@pharmacy.rw",
		OwnerName:    "Aline Uwase",
		OwnerEmail:   "aline@pharmacy.rw",
		OwnerPhone:   "+250 788 000 222",
	}
}

func TestCreateBusiness_ExistingBuilding(t *testing.T) {
	store := newSeededStore()
	service := NewSubmissionService(store, freshIDs(), testLogger())

	created, err := service.CreateBusiness(validCreateInput())
	require.NoError(t, err)

	assert.False(t, created.BuildingCreated)
	assert.Equal(t, "b-2", created.Building.BuildingID)
	assert.Equal(t, "biz-new-1", created.Business.BusinessID)
	assert.True(t, created.Business.IsClaimed)
	assert.False(t, created.Business.IsVerified)
	assert.Equal(t, []string{"Pharmacy", "Clinic"}, created.Business.Categories)
	assert.Equal(t, "Aline Uwase", created.Business.OwnerName)

	stored, ok := store.BusinessByID(created.Business.BusinessID)
	require.True(t, ok)
	assert.Equal(t, created.Business, stored)
}

func TestCreateBusiness_SuggestedBuilding(t *testing.T) {
	store := newSeededStore()
	service := NewSubmissionService(store, freshIDs(), testLogger())

	in := validCreateInput()
	in.BuildingID = ""
	in.NewBuilding = &SuggestedBuilding{
		Name:    "Centenary House",
		Address: "KN 5 Road, Nyamata",
		ZoneID:  "zone-1",
	}

	created, err := service.CreateBusiness(in)
	require.NoError(t, err)

	assert.True(t, created.BuildingCreated)
	assert.True(t, created.Building.IsUserSuggested)
	assert.Equal(t, "centenary-house-2", created.Building.Slug, "slug kept unique")
	assert.Equal(t, SuggestedBuildingFloors, created.Building.TotalFloors)
	assert.Equal(t, created.Building.BuildingID, created.Business.BuildingID)

	got, ok := store.BuildingBySlug("centenary-house-2")
	require.True(t, ok)
	assert.Equal(t, created.Building, got)
}

func TestCreateBusiness_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CreateBusinessInput)
	}{
		{"missing name", func(in *CreateBusinessInput) { in.BusinessName = "  " }},
		{"missing owner", func(in *CreateBusinessInput) { in.OwnerEmail = "" }},
		{"missing unit", func(in *CreateBusinessInput) { in.UnitNumber = "" }},
		{"missing contact", func(in *CreateBusinessInput) { in.Phone = "" }},
		{"no categories", func(in *CreateBusinessInput) { in.Categories = []string{" ", ""} }},
		{"too many categories", func(in *CreateBusinessInput) {
			in.Categories = []string{"A", "B", "C", "D", "E", "F"}
		}},
		{"no building", func(in *CreateBusinessInput) { in.BuildingID = "" }},
		{"both buildings", func(in *CreateBusinessInput) {
			in.NewBuilding = &SuggestedBuilding{Name: "X", ZoneID: "zone-1"}
		}},
		{"suggested building without zone", func(in *CreateBusinessInput) {
			in.BuildingID = ""
			in.NewBuilding = &SuggestedBuilding{Name: "New Block"}
		}},
		{"suggested building with bad latitude", func(in *CreateBusinessInput) {
			in.BuildingID = ""
			in.NewBuilding = &SuggestedBuilding{Name: "New Block", ZoneID: "zone-1", Latitude: 120}
		}},
		{"suggested building name without letters", func(in *CreateBusinessInput) {
			in.BuildingID = ""
			in.NewBuilding = &SuggestedBuilding{Name: "!!!", ZoneID: "zone-1"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockDirectoryRepository)
			service := NewSubmissionService(mockRepo, freshIDs(), testLogger())

			in := validCreateInput()
			tt.modify(&in)

			created, err := service.CreateBusiness(in)

			assert.Nil(t, created)
			assert.ErrorIs(t, err, ErrInvalidInput)
			mockRepo.AssertNotCalled(t, "AddBusiness", mock.Anything)
			mockRepo.AssertNotCalled(t, "AddBuilding", mock.Anything)
		})
	}
}

func TestCreateBusiness_FiveCategoriesAllowed(t *testing.T) {
	service := NewSubmissionService(newSeededStore(), freshIDs(), testLogger())

	in := validCreateInput()
	in.Categories = []string{"A", "B", "C", "D", "E", "A"}

	created, err := service.CreateBusiness(in)
	require.NoError(t, err)
	assert.Len(t, created.Business.Categories, 5)
}

func TestCreateBusiness_UnknownBuildingOrZone(t *testing.T) {
	service := NewSubmissionService(newSeededStore(), freshIDs(), testLogger())

	in := validCreateInput()
	in.BuildingID = "b-404"
	_, err := service.CreateBusiness(in)
	assert.ErrorIs(t, err, ErrBuildingNotFound)

	in = validCreateInput()
	in.BuildingID = ""
	in.NewBuilding = &SuggestedBuilding{Name: "New Block", ZoneID: "zone-404"}
	_, err = service.CreateBusiness(in)
	assert.ErrorIs(t, err, ErrZoneNotFound)
}

func TestCreateBusiness_RetriesTakenID(t *testing.T) {
	ids := []string{"biz-1", "biz-77"}
	next := 0
	gen := func(string) (string, error) {
		v := ids[next]
		next++
		return v, nil
	}
	service := NewSubmissionService(newSeededStore(), gen, testLogger())

	created, err := service.CreateBusiness(validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, "biz-77", created.Business.BusinessID)
}

func TestCreateBusiness_RemovesSuggestedBuildingOnFailure(t *testing.T) {
	mockRepo := new(MockDirectoryRepository)
	service := NewSubmissionService(mockRepo, freshIDs(), testLogger())
	storeErr := errors.New("store unavailable")

	mockRepo.On("ZoneByID", "zone-1").Return(models.StreetZone{ZoneID: "zone-1"}, true)
	mockRepo.On("BuildingBySlug", "new-block").Return(models.Building{}, false)
	mockRepo.On("AddBuilding", mock.AnythingOfType("models.Building")).Return(nil)
	mockRepo.On("AddBusiness", mock.AnythingOfType("models.Business")).Return(storeErr)
	mockRepo.On("DeleteBuilding", "b-new-1").Return(nil)

	in := validCreateInput()
	in.BuildingID = ""
	in.NewBuilding = &SuggestedBuilding{Name: "New Block", ZoneID: "zone-1"}

	_, err := service.CreateBusiness(in)

	assert.ErrorIs(t, err, storeErr)
	mockRepo.AssertExpectations(t)
}

func validClaim() ClaimBusinessInput {
	return ClaimBusinessInput{
		OwnerName:  "Jean Bosco",
		OwnerEmail: "jean@abclaw.rw",
		OwnerPhone: "+250 781 000 333",
	}
}

func TestClaimBusiness(t *testing.T) {
	store := newSeededStore()
	service := NewSubmissionService(store, freshIDs(), testLogger())

	in := validClaim()
	in.UnitNumber = "Suite 204"
	in.Categories = []string{"Legal Services", "Professional Services"}

	claimed, err := service.ClaimBusiness("biz-2", in)
	require.NoError(t, err)

	assert.True(t, claimed.IsClaimed)
	assert.False(t, claimed.IsVerified, "verification stays with admins")
	assert.Equal(t, "Jean Bosco", claimed.OwnerName)
	assert.Equal(t, "Suite 204", claimed.UnitNumber)
	assert.Equal(t, "ABC Law Firm", claimed.BusinessName, "blank fields keep their value")
	assert.Equal(t, []string{"Legal Services", "Professional Services"}, claimed.Categories)
}

func TestClaimBusiness_Rejections(t *testing.T) {
	service := NewSubmissionService(newSeededStore(), freshIDs(), testLogger())

	_, err := service.ClaimBusiness("biz-1", validClaim())
	assert.ErrorIs(t, err, ErrAlreadyClaimed)

	_, err = service.ClaimBusiness("biz-404", validClaim())
	assert.ErrorIs(t, err, ErrBusinessNotFound)

	in := validClaim()
	in.Categories = []string{"A", "B", "C", "D"}
	_, err = service.ClaimBusiness("biz-2", in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = validClaim()
	in.OwnerPhone = ""
	_, err = service.ClaimBusiness("biz-2", in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// claimRace lets a rival owner claim the listing after the service has read
// it, or right before the claim reaches the store if the service never
// reads it.
type claimRace struct {
	*repository.DirectoryStore
	rival func()
}

func (r *claimRace) rivalClaims() {
	if r.rival != nil {
		r.rival()
		r.rival = nil
	}
}

func (r *claimRace) BusinessByID(businessID string) (models.Business, bool) {
	b, ok := r.DirectoryStore.BusinessByID(businessID)
	r.rivalClaims()
	return b, ok
}

func (r *claimRace) ClaimBusiness(businessID string, patch models.BusinessPatch) (models.Business, error) {
	r.rivalClaims()
	return r.DirectoryStore.ClaimBusiness(businessID, patch)
}

func (r *claimRace) UpdateBusiness(businessID string, patch models.BusinessPatch) (models.Business, error) {
	r.rivalClaims()
	return r.DirectoryStore.UpdateBusiness(businessID, patch)
}

func TestClaimBusiness_ConcurrentClaimKeepsFirstOwner(t *testing.T) {
	store := newSeededStore()
	rival := validClaim()
	rival.OwnerName = "Marie Claire"
	rival.OwnerEmail = "marie@abclaw.rw"

	repo := &claimRace{DirectoryStore: store}
	service := NewSubmissionService(repo, freshIDs(), testLogger())
	repo.rival = func() {
		_, err := NewSubmissionService(store, freshIDs(), testLogger()).ClaimBusiness("biz-2", rival)
		require.NoError(t, err)
	}

	_, err := service.ClaimBusiness("biz-2", validClaim())
	assert.ErrorIs(t, err, ErrAlreadyClaimed)

	stored, ok := store.BusinessByID("biz-2")
	require.True(t, ok)
	assert.True(t, stored.IsClaimed)
	assert.Equal(t, "Marie Claire", stored.OwnerName)
	assert.Equal(t, "marie@abclaw.rw", stored.OwnerEmail)
}

func TestClaimBusiness_PassesPatchToStore(t *testing.T) {
	mockRepo := new(MockDirectoryRepository)
	service := NewSubmissionService(mockRepo, freshIDs(), testLogger())

	mockRepo.On("ClaimBusiness", "biz-2", mock.MatchedBy(func(p models.BusinessPatch) bool {
		return p.OwnerEmail != nil && *p.OwnerEmail == "jean@abclaw.rw" && p.BusinessName == nil
	})).Return(models.Business{}, fmt.Errorf("%w: biz-2", ErrAlreadyClaimed))

	_, err := service.ClaimBusiness("biz-2", validClaim())
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "UpdateBusiness", mock.Anything, mock.Anything)
}

func TestAddComment(t *testing.T) {
	store := newSeededStore()
	service := NewSubmissionService(store, freshIDs(), testLogger())

	comment, err := service.AddComment(CommentInput{
		BuildingSlug: "palm-plaza",
		Comment:      "  The fountain entrance is closed on Sundays.  ",
		Type:         models.CommentCorrection,
	})
	require.NoError(t, err)

	assert.Equal(t, "b-2", comment.BuildingID)
	assert.Equal(t, models.AnonymousUserName, comment.UserName)
	assert.Equal(t, "The fountain entrance is closed on Sundays.", comment.Comment)
	assert.Equal(t, models.CommentCorrection, comment.Type)
	assert.NotEmpty(t, comment.ID)
	assert.Len(t, store.CommentsForBuilding("b-2"), 1)
}

func TestAddComment_DefaultsToGeneral(t *testing.T) {
	mockRepo := new(MockDirectoryRepository)
	service := NewSubmissionService(mockRepo, freshIDs(), testLogger())

	draft := models.CommentDraft{BuildingID: "b-1", UserName: "Eric", Comment: "Nice", Type: models.CommentGeneral}
	mockRepo.On("BuildingBySlug", "centenary-house").Return(models.Building{BuildingID: "b-1"}, true)
	mockRepo.On("AddComment", draft).Return(models.BuildingComment{ID: "cmt-1", Type: models.CommentGeneral}, nil)

	comment, err := service.AddComment(CommentInput{BuildingSlug: "centenary-house", UserName: "Eric", Comment: "Nice"})

	require.NoError(t, err)
	assert.Equal(t, "cmt-1", comment.ID)
	mockRepo.AssertExpectations(t)
}

func TestAddComment_Rejections(t *testing.T) {
	service := NewSubmissionService(newSeededStore(), freshIDs(), testLogger())

	_, err := service.AddComment(CommentInput{BuildingSlug: "palm-plaza", Comment: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.AddComment(CommentInput{BuildingSlug: "palm-plaza", Comment: "Great", Type: models.CommentCompliment})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.AddComment(CommentInput{BuildingSlug: "nowhere", Comment: "Hello"})
	assert.ErrorIs(t, err, ErrBuildingNotFound)
}

func TestSuggestBuildingMatches(t *testing.T) {
	service := NewSubmissionService(newSeededStore(), freshIDs(), testLogger())

	matches := service.SuggestBuildingMatches("nyamata")
	assert.Len(t, matches, 2)

	assert.Empty(t, service.SuggestBuildingMatches(""))
	assert.IsType(t, []models.Building{}, service.SuggestBuildingMatches("palm"))
}
