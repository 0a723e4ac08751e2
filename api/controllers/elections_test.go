package controllers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	testutils "github.com/miracool-ctrl/backend-voteapp/api/controllers/testing"
	"github.com/miracool-ctrl/backend-voteapp/api/models"
	"github.com/miracool-ctrl/backend-voteapp/api/transport"
	"github.com/miracool-ctrl/backend-voteapp/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateElection(t *testing.T) {
	api := setupTestAPI(t)
	_, adminToken := api.createVoter(t, "boss@example.com", true)
	_, voterToken := api.createVoter(t, "voter@example.com", false)

	fields := map[string]string{"title": "Class rep", "description": "Pick one"}
	thumbnail := &testutils.Upload{Field: "thumbnail", Filename: "class rep.png", Content: []byte("png")}

	t.Run("Happy path - admin creates an election", func(t *testing.T) {
		res := testutils.PerformMultipartRequest(api.router, http.MethodPost, "/api/elections", fields, thumbnail, testutils.Bearer(adminToken))
		require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

		var election models.ElectionResponse
		decode(t, res, &election)
		assert.NotEmpty(t, election.ID)
		assert.Equal(t, "Class rep", election.Title)
		assert.Contains(t, election.Thumbnail, "http://assets.test/elections/")
		assert.Contains(t, election.Thumbnail, "_class_rep.png")
		assert.Empty(t, election.Candidates)
		assert.Equal(t, 1, api.assets.Len())
	})

	t.Run("Unhappy path - non-admin is rejected and nothing is stored", func(t *testing.T) {
		before, err := api.storages.Elections.GetAll(context.Background())
		require.NoError(t, err)

		res := testutils.PerformMultipartRequest(api.router, http.MethodPost, "/api/elections", fields, thumbnail, testutils.Bearer(voterToken))
		assert.Equal(t, http.StatusForbidden, res.Code)

		after, err := api.storages.Elections.GetAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})

	t.Run("Unhappy path - missing thumbnail", func(t *testing.T) {
		res := testutils.PerformMultipartRequest(api.router, http.MethodPost, "/api/elections", fields, nil, testutils.Bearer(adminToken))
		assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
		assert.Equal(t, "Thumbnail is required", errorMessage(t, res))
	})

	t.Run("Unhappy path - missing title", func(t *testing.T) {
		res := testutils.PerformMultipartRequest(api.router, http.MethodPost, "/api/elections", map[string]string{"description": "x"}, thumbnail, testutils.Bearer(adminToken))
		assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
		assert.Equal(t, "Title and description are required", errorMessage(t, res))
	})

	t.Run("Unhappy path - thumbnail too large", func(t *testing.T) {
		large := &testutils.Upload{Field: "thumbnail", Filename: "big.png", Content: bytes.Repeat([]byte("a"), testUploadMax+1)}
		uploads := api.assets.Len()

		res := testutils.PerformMultipartRequest(api.router, http.MethodPost, "/api/elections", fields, large, testutils.Bearer(adminToken))
		assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
		assert.Equal(t, "Image size should be less than 1MB", errorMessage(t, res))
		assert.Equal(t, uploads, api.assets.Len())
	})
}

func TestGetElections(t *testing.T) {
	api := setupTestAPI(t)
	_, adminToken := api.createVoter(t, "boss@example.com", true)
	_, voterToken := api.createVoter(t, "voter@example.com", false)

	first := api.createElection(t, adminToken, "First")
	second := api.createElection(t, adminToken, "Second")

	t.Run("Happy path - list", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodGet, "/api/elections", nil, testutils.Bearer(voterToken))
		require.Equal(t, http.StatusOK, res.Code)

		var elections []models.ElectionResponse
		decode(t, res, &elections)
		require.Len(t, elections, 2)
		ids := []string{elections[0].ID, elections[1].ID}
		assert.ElementsMatch(t, []string{first.ID, second.ID}, ids)
	})

	t.Run("Happy path - get one", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodGet, "/api/elections/"+first.ID, nil, testutils.Bearer(voterToken))
		require.Equal(t, http.StatusOK, res.Code)

		var election models.ElectionResponse
		decode(t, res, &election)
		assert.Equal(t, "First", election.Title)
	})

	t.Run("Unhappy path - unknown election", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodGet, "/api/elections/missing", nil, testutils.Bearer(voterToken))
		assert.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("Unhappy path - no token", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodGet, "/api/elections", nil, nil)
		assert.Equal(t, http.StatusForbidden, res.Code)
	})

	t.Run("Happy path - no candidates is an empty list", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodGet, "/api/elections/"+second.ID+"/candidates", nil, testutils.Bearer(voterToken))
		require.Equal(t, http.StatusOK, res.Code)
		assert.JSONEq(t, "[]", res.Body.String())
	})

	t.Run("Unhappy path - candidates of unknown election", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodGet, "/api/elections/missing/candidates", nil, testutils.Bearer(voterToken))
		assert.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("Happy path - no voters is an empty list", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodGet, "/api/elections/"+second.ID+"/voters", nil, testutils.Bearer(voterToken))
		require.Equal(t, http.StatusOK, res.Code)
		assert.JSONEq(t, "[]", res.Body.String())
	})
}

func TestUpdateElection(t *testing.T) {
	api := setupTestAPI(t)
	_, adminToken := api.createVoter(t, "boss@example.com", true)
	_, voterToken := api.createVoter(t, "voter@example.com", false)
	election := api.createElection(t, adminToken, "Original")
	candidate := api.createCandidate(t, adminToken, election.ID, "Ada")

	ctx := context.Background()
	stored, err := api.storages.Elections.Get(ctx, election.ID)
	require.NoError(t, err)
	oldThumbnailID := stored.ThumbnailID

	t.Run("Happy path - text only keeps thumbnail and candidates", func(t *testing.T) {
		res := testutils.PerformMultipartRequest(api.router, http.MethodPatch, "/api/elections/"+election.ID,
			map[string]string{"title": "Renamed", "description": "New text"}, nil, testutils.Bearer(adminToken))
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		updated, err := api.storages.Elections.Get(ctx, election.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, "New text", updated.Description)
		assert.Equal(t, oldThumbnailID, updated.ThumbnailID)
		assert.Equal(t, []string{candidate.ID}, updated.Candidates)
	})

	t.Run("Happy path - new thumbnail replaces the old asset", func(t *testing.T) {
		res := testutils.PerformMultipartRequest(api.router, http.MethodPatch, "/api/elections/"+election.ID,
			map[string]string{"title": "Renamed", "description": "New text"},
			&testutils.Upload{Field: "thumbnail", Filename: "new.png", Content: []byte("new")},
			testutils.Bearer(adminToken))
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		updated, err := api.storages.Elections.Get(ctx, election.ID)
		require.NoError(t, err)
		assert.NotEqual(t, oldThumbnailID, updated.ThumbnailID)
		assert.True(t, api.assets.Has(updated.ThumbnailID))
		assert.False(t, api.assets.Has(oldThumbnailID))
	})

	t.Run("Unhappy path - missing description", func(t *testing.T) {
		res := testutils.PerformMultipartRequest(api.router, http.MethodPatch, "/api/elections/"+election.ID,
			map[string]string{"title": "Only title"}, nil, testutils.Bearer(adminToken))
		assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
	})

	t.Run("Unhappy path - unknown election", func(t *testing.T) {
		res := testutils.PerformMultipartRequest(api.router, http.MethodPatch, "/api/elections/missing",
			map[string]string{"title": "a", "description": "b"}, nil, testutils.Bearer(adminToken))
		assert.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("Unhappy path - non-admin", func(t *testing.T) {
		res := testutils.PerformMultipartRequest(api.router, http.MethodPatch, "/api/elections/"+election.ID,
			map[string]string{"title": "Hijack", "description": "b"}, nil, testutils.Bearer(voterToken))
		assert.Equal(t, http.StatusForbidden, res.Code)
	})
}

func TestDeleteElection(t *testing.T) {
	api := setupTestAPI(t)
	_, adminToken := api.createVoter(t, "boss@example.com", true)
	_, voterToken := api.createVoter(t, "voter@example.com", false)

	doomed := api.createElection(t, adminToken, "Doomed")
	kept := api.createElection(t, adminToken, "Kept")
	first := api.createCandidate(t, adminToken, doomed.ID, "First")
	second := api.createCandidate(t, adminToken, doomed.ID, "Second")
	survivor := api.createCandidate(t, adminToken, kept.ID, "Survivor")

	t.Run("Unhappy path - non-admin", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodDelete, "/api/elections/"+doomed.ID, nil, testutils.Bearer(voterToken))
		assert.Equal(t, http.StatusForbidden, res.Code)
	})

	t.Run("Happy path - cascades to candidates and assets", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodDelete, "/api/elections/"+doomed.ID, nil, testutils.Bearer(adminToken))
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		ctx := context.Background()
		_, err := api.storages.Elections.Get(ctx, doomed.ID)
		assert.Error(t, err)
		for _, id := range []string{first.ID, second.ID} {
			_, err := api.storages.Candidates.Get(ctx, id)
			assert.Error(t, err, "candidate %s should be gone", id)
		}

		orphans, err := api.storages.Candidates.GetByElection(ctx, doomed.ID)
		require.NoError(t, err)
		assert.Empty(t, orphans)

		_, err = api.storages.Candidates.Get(ctx, survivor.ID)
		assert.NoError(t, err)
		// Kept election thumbnail and survivor image.
		assert.Equal(t, 2, api.assets.Len())
	})

	t.Run("Unhappy path - already deleted", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodDelete, "/api/elections/"+doomed.ID, nil, testutils.Bearer(adminToken))
		assert.Equal(t, http.StatusNotFound, res.Code)
	})
}

// contestedElections fails every delete as if the candidate set kept changing.
type contestedElections struct {
	storage.ElectionStorage
}

func (contestedElections) Delete(_ context.Context, id string) ([]*storage.Candidate, error) {
	return nil, fmt.Errorf("%w: candidates of election %s kept changing", storage.ErrTransactionConflict, id)
}

func TestDeleteElectionConflict(t *testing.T) {
	api := setupTestAPI(t)
	_, adminToken := api.createVoter(t, "boss@example.com", true)
	election := api.createElection(t, adminToken, "Contested")

	s := api.storages
	router := gin.New()
	NewElectionController(contestedElections{s.Elections}, s.Candidates, s.Voters, api.assets, testUploadMax).
		RegisterRoutes(router, transport.AuthMiddleware(api.tokens))

	uploads := api.assets.Len()
	res := testutils.PerformRequest(router, http.MethodDelete, "/api/elections/"+election.ID, nil, testutils.Bearer(adminToken))
	assert.Equal(t, http.StatusConflict, res.Code)

	_, err := s.Elections.Get(context.Background(), election.ID)
	assert.NoError(t, err)
	assert.Equal(t, uploads, api.assets.Len())
}
