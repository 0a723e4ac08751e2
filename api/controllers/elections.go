package controllers

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/miracool-ctrl/backend-voteapp/api/models"
	"github.com/miracool-ctrl/backend-voteapp/api/transport"
	"github.com/miracool-ctrl/backend-voteapp/assets"
	"github.com/miracool-ctrl/backend-voteapp/logging"
	"github.com/miracool-ctrl/backend-voteapp/storage"
)

type ElectionController struct {
	elections      storage.ElectionStorage
	candidates     storage.CandidateStorage
	voters         storage.VoterStorage
	assets         assets.Store
	maxUploadBytes int64
}

func NewElectionController(elections storage.ElectionStorage, candidates storage.CandidateStorage, voters storage.VoterStorage, store assets.Store, maxUploadBytes int64) *ElectionController {
	return &ElectionController{
		elections:      elections,
		candidates:     candidates,
		voters:         voters,
		assets:         store,
		maxUploadBytes: maxUploadBytes,
	}
}

func (c *ElectionController) RegisterRoutes(engine *gin.Engine, authenticate gin.HandlerFunc) {
	group := engine.Group("/api/elections", authenticate)

	group.POST("", transport.AdminOnly(), c.create)
	group.GET("", c.getAll)
	group.GET("/:id", c.get)
	group.PATCH("/:id", transport.AdminOnly(), c.update)
	group.DELETE("/:id", transport.AdminOnly(), c.delete)
	group.GET("/:id/candidates", c.getCandidates)
	group.GET("/:id/voters", c.getVoters)
}

// create godoc
// @Summary Create an election
// @Tags elections
// @Accept multipart/form-data
// @Produce json
// @Security BearerToken
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param thumbnail formData file true "Thumbnail, at most 1MB"
// @Success 201 {object} models.ElectionResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/elections [post]
func (c *ElectionController) create(g *gin.Context) {
	var req models.ElectionRequest
	if err := g.ShouldBind(&req); err != nil || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		status := http.StatusUnprocessableEntity
		if err != nil {
			status = bindErrorStatus(err)
		}
		respondError(g, status, "Title and description are required")
		return
	}

	fh, err := formFile(g, "thumbnail", c.maxUploadBytes)
	switch {
	case errors.Is(err, errUploadMissing):
		respondError(g, http.StatusUnprocessableEntity, "Thumbnail is required")
		return
	case errors.Is(err, errUploadTooLarge):
		respondError(g, http.StatusUnprocessableEntity, "Image size should be less than 1MB")
		return
	case err != nil:
		respondError(g, http.StatusBadRequest, "invalid upload")
		return
	}

	ctx := g.Request.Context()
	asset, err := storeFile(ctx, c.assets, models.FolderElections, fh)
	if err != nil {
		logging.Log.Errorf("ELECTION: thumbnail upload failed: %v", err)
		respondError(g, http.StatusInternalServerError, "Failed to upload thumbnail")
		return
	}

	election := &storage.Election{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Thumbnail:   asset.URL,
		ThumbnailID: asset.ID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := c.elections.Create(ctx, election); err != nil {
		logging.Log.Errorf("ELECTION: failed to create election: %v", err)
		deleteAsset(ctx, c.assets, asset.ID, "ELECTION")
		respondError(g, http.StatusInternalServerError, "Failed to create election")
		return
	}

	logging.Log.Infof("ELECTION: created %s by %s", election.ID, g.GetString(transport.ContextVoterID))
	g.JSON(http.StatusCreated, models.TransformElectionFromStorage(election))
}

// getAll godoc
// @Summary List elections
// @Tags elections
// @Produce json
// @Security BearerToken
// @Success 200 {array} models.ElectionResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/elections [get]
func (c *ElectionController) getAll(g *gin.Context) {
	elections, err := c.elections.GetAll(g.Request.Context())
	if err != nil {
		respondError(g, http.StatusInternalServerError, "Failed to fetch elections")
		return
	}

	sort.SliceStable(elections, func(i, j int) bool {
		return elections[i].CreatedAt.Before(elections[j].CreatedAt)
	})

	responses := make([]models.ElectionResponse, 0, len(elections))
	for _, e := range elections {
		responses = append(responses, models.TransformElectionFromStorage(e))
	}
	g.JSON(http.StatusOK, responses)
}

// get godoc
// @Summary Get an election
// @Tags elections
// @Produce json
// @Security BearerToken
// @Param id path string true "Election ID"
// @Success 200 {object} models.ElectionResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/elections/{id} [get]
func (c *ElectionController) get(g *gin.Context) {
	election, ok := c.lookup(g)
	if !ok {
		return
	}
	g.JSON(http.StatusOK, models.TransformElectionFromStorage(election))
}

// update godoc
// @Summary Update an election
// @Description Replaces title and description, and the thumbnail when a new one is sent
// @Tags elections
// @Accept multipart/form-data
// @Produce json
// @Security BearerToken
// @Param id path string true "Election ID"
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param thumbnail formData file false "New thumbnail, at most 1MB"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /api/elections/{id} [patch]
func (c *ElectionController) update(g *gin.Context) {
	var req models.ElectionRequest
	if err := g.ShouldBind(&req); err != nil || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		status := http.StatusUnprocessableEntity
		if err != nil {
			status = bindErrorStatus(err)
		}
		respondError(g, status, "Title and description are required")
		return
	}

	current, ok := c.lookup(g)
	if !ok {
		return
	}

	fh, err := formFile(g, "thumbnail", c.maxUploadBytes)
	switch {
	case errors.Is(err, errUploadMissing):
		fh = nil
	case errors.Is(err, errUploadTooLarge):
		respondError(g, http.StatusUnprocessableEntity, "Image size should be less than 1MB")
		return
	case err != nil:
		respondError(g, http.StatusBadRequest, "invalid upload")
		return
	}

	ctx := g.Request.Context()
	update := storage.ElectionUpdate{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
	}

	var replacement *assets.Asset
	if fh != nil {
		replacement, err = storeFile(ctx, c.assets, models.FolderElections, fh)
		if err != nil {
			logging.Log.Errorf("ELECTION: thumbnail upload failed: %v", err)
			respondError(g, http.StatusInternalServerError, "Failed to upload thumbnail")
			return
		}
		update.Thumbnail = replacement.URL
		update.ThumbnailID = replacement.ID
	}

	if _, err := c.elections.Update(ctx, current.ID, update); err != nil {
		if replacement != nil {
			deleteAsset(ctx, c.assets, replacement.ID, "ELECTION")
		}
		if errors.Is(err, storage.ErrNotFound) {
			respondError(g, http.StatusNotFound, "Election not found")
			return
		}
		respondError(g, http.StatusInternalServerError, "Failed to update election")
		return
	}

	if replacement != nil {
		deleteAsset(ctx, c.assets, current.ThumbnailID, "ELECTION")
	}

	g.JSON(http.StatusOK, models.MessageResponse{Message: "Election updated successfully"})
}

// delete godoc
// @Summary Delete an election and its candidates
// @Tags elections
// @Produce json
// @Security BearerToken
// @Param id path string true "Election ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/elections/{id} [delete]
func (c *ElectionController) delete(g *gin.Context) {
	election, ok := c.lookup(g)
	if !ok {
		return
	}

	ctx := g.Request.Context()
	removed, err := c.elections.Delete(ctx, election.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(g, http.StatusNotFound, "Election not found")
			return
		}
		if errors.Is(err, storage.ErrTransactionConflict) {
			respondError(g, http.StatusConflict, "Election is being modified, please try again")
			return
		}
		logging.Log.Errorf("ELECTION: failed to delete %s: %v", election.ID, err)
		respondError(g, http.StatusInternalServerError, "Failed to delete election")
		return
	}

	deleteAsset(ctx, c.assets, election.ThumbnailID, "ELECTION")
	for _, candidate := range removed {
		deleteAsset(ctx, c.assets, candidate.ImageID, "ELECTION")
	}

	g.JSON(http.StatusOK, models.MessageResponse{Message: "Election deleted successfully"})
}

// getCandidates godoc
// @Summary List the candidates of an election
// @Description An existing election without candidates returns an empty list
// @Tags elections
// @Produce json
// @Security BearerToken
// @Param id path string true "Election ID"
// @Success 200 {array} models.CandidateResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/elections/{id}/candidates [get]
func (c *ElectionController) getCandidates(g *gin.Context) {
	election, ok := c.lookup(g)
	if !ok {
		return
	}

	candidates, err := c.candidates.GetByElection(g.Request.Context(), election.ID)
	if err != nil {
		respondError(g, http.StatusInternalServerError, "Failed to fetch candidates")
		return
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})

	responses := make([]models.CandidateResponse, 0, len(candidates))
	for _, cand := range candidates {
		responses = append(responses, models.TransformCandidateFromStorage(cand))
	}
	g.JSON(http.StatusOK, responses)
}

// getVoters godoc
// @Summary List the voters who voted in an election
// @Tags elections
// @Produce json
// @Security BearerToken
// @Param id path string true "Election ID"
// @Success 200 {array} models.VoterResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/elections/{id}/voters [get]
func (c *ElectionController) getVoters(g *gin.Context) {
	election, ok := c.lookup(g)
	if !ok {
		return
	}

	voters, err := c.voters.GetMany(g.Request.Context(), election.Voters)
	if err != nil {
		respondError(g, http.StatusInternalServerError, "Failed to fetch voters")
		return
	}

	responses := make([]models.VoterResponse, 0, len(voters))
	for _, v := range voters {
		responses = append(responses, models.TransformVoterFromStorage(v))
	}
	g.JSON(http.StatusOK, responses)
}

// lookup loads the election named by the :id param, writing the error
// response itself when it cannot.
func (c *ElectionController) lookup(g *gin.Context) (*storage.Election, bool) {
	election, err := c.elections.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(g, http.StatusNotFound, "Election not found")
			return nil, false
		}
		respondError(g, http.StatusInternalServerError, "Failed to fetch election")
		return nil, false
	}
	return election, true
}
