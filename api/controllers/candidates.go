package controllers

import (
	"errors"
	"net/http"
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

type CandidateController struct {
	candidates     storage.CandidateStorage
	elections      storage.ElectionStorage
	assets         assets.Store
	maxUploadBytes int64
}

func NewCandidateController(candidates storage.CandidateStorage, elections storage.ElectionStorage, store assets.Store, maxUploadBytes int64) *CandidateController {
	return &CandidateController{
		candidates:     candidates,
		elections:      elections,
		assets:         store,
		maxUploadBytes: maxUploadBytes,
	}
}

func (c *CandidateController) RegisterRoutes(engine *gin.Engine, authenticate gin.HandlerFunc) {
	group := engine.Group("/api/candidates", authenticate)

	group.POST("", transport.AdminOnly(), c.create)
	group.GET("/:id", c.get)
	group.DELETE("/:id", transport.AdminOnly(), c.delete)
}

// create godoc
// @Summary Add a candidate to an election
// @Tags candidates
// @Accept multipart/form-data
// @Produce json
// @Security BearerToken
// @Param fullName formData string true "Full name"
// @Param motto formData string true "Motto"
// @Param currentElection formData string true "Election ID"
// @Param image formData file true "Image, at most 1MB"
// @Success 201 {object} models.CandidateCreateResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse "Election not found"
// @Failure 422 {object} models.ErrorResponse
// @Router /api/candidates [post]
func (c *CandidateController) create(g *gin.Context) {
	var req models.CandidateCreateRequest
	if err := g.ShouldBind(&req); err != nil || strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Motto) == "" {
		status := http.StatusUnprocessableEntity
		if err != nil {
			status = bindErrorStatus(err)
		}
		respondError(g, status, "Please fill all the fields")
		return
	}

	fh, err := formFile(g, "image", c.maxUploadBytes)
	switch {
	case errors.Is(err, errUploadMissing):
		respondError(g, http.StatusUnprocessableEntity, "Please choose an image")
		return
	case errors.Is(err, errUploadTooLarge):
		respondError(g, http.StatusUnprocessableEntity, "Image size should be less than 1MB")
		return
	case err != nil:
		respondError(g, http.StatusBadRequest, "invalid upload")
		return
	}

	ctx := g.Request.Context()
	if _, err := c.elections.Get(ctx, req.CurrentElection); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(g, http.StatusNotFound, "Election not found")
			return
		}
		respondError(g, http.StatusInternalServerError, "Failed to fetch election")
		return
	}

	asset, err := storeFile(ctx, c.assets, models.FolderCandidates, fh)
	if err != nil {
		logging.Log.Errorf("CANDIDATE: image upload failed: %v", err)
		respondError(g, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	candidate := &storage.Candidate{
		ID:        uuid.NewString(),
		FullName:  strings.TrimSpace(req.FullName),
		Motto:     strings.TrimSpace(req.Motto),
		Image:     asset.URL,
		ImageID:   asset.ID,
		Election:  req.CurrentElection,
		CreatedAt: time.Now().UTC(),
	}

	// The election may have been deleted since the check above; Create
	// refuses to attach to a missing election.
	if err := c.candidates.Create(ctx, candidate); err != nil {
		deleteAsset(ctx, c.assets, asset.ID, "CANDIDATE")
		if errors.Is(err, storage.ErrNotFound) {
			respondError(g, http.StatusNotFound, "Election not found")
			return
		}
		logging.Log.Errorf("CANDIDATE: failed to create candidate: %v", err)
		respondError(g, http.StatusInternalServerError, "Failed to add candidate")
		return
	}

	logging.Log.Infof("CANDIDATE: added %s to election %s", candidate.ID, candidate.Election)
	g.JSON(http.StatusCreated, models.CandidateCreateResponse{
		Message:   "Candidate added successfully",
		Candidate: models.TransformCandidateFromStorage(candidate),
	})
}

// get godoc
// @Summary Get a candidate
// @Tags candidates
// @Produce json
// @Security BearerToken
// @Param id path string true "Candidate ID"
// @Success 200 {object} models.CandidateResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/candidates/{id} [get]
func (c *CandidateController) get(g *gin.Context) {
	candidate, ok := c.lookup(g)
	if !ok {
		return
	}
	g.JSON(http.StatusOK, models.TransformCandidateFromStorage(candidate))
}

// delete godoc
// @Summary Remove a candidate
// @Tags candidates
// @Produce json
// @Security BearerToken
// @Param id path string true "Candidate ID"
// @Success 200 {object} models.MessageResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/candidates/{id} [delete]
func (c *CandidateController) delete(g *gin.Context) {
	candidate, ok := c.lookup(g)
	if !ok {
		return
	}

	ctx := g.Request.Context()
	if err := c.candidates.Delete(ctx, candidate); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(g, http.StatusNotFound, "Candidate not found")
			return
		}
		logging.Log.Errorf("CANDIDATE: failed to delete %s: %v", candidate.ID, err)
		respondError(g, http.StatusInternalServerError, "Failed to remove candidate")
		return
	}

	deleteAsset(ctx, c.assets, candidate.ImageID, "CANDIDATE")
	g.JSON(http.StatusOK, models.MessageResponse{Message: "Candidate removed successfully"})
}

func (c *CandidateController) lookup(g *gin.Context) (*storage.Candidate, bool) {
	candidate, err := c.candidates.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(g, http.StatusNotFound, "Candidate not found")
			return nil, false
		}
		respondError(g, http.StatusInternalServerError, "Failed to fetch candidate")
		return nil, false
	}
	return candidate, true
}
