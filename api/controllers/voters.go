package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/miracool-ctrl/backend-voteapp/api/models"
	"github.com/miracool-ctrl/backend-voteapp/auth"
	"github.com/miracool-ctrl/backend-voteapp/logging"
	"github.com/miracool-ctrl/backend-voteapp/storage"
)

type VoterController struct {
	voters      storage.VoterStorage
	tokens      *auth.TokenIssuer
	adminEmails map[string]bool
}

func NewVoterController(voters storage.VoterStorage, tokens *auth.TokenIssuer, adminEmails []string) *VoterController {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = true
	}
	return &VoterController{
		voters:      voters,
		tokens:      tokens,
		adminEmails: admins,
	}
}

func (c *VoterController) RegisterRoutes(engine *gin.Engine, authenticate gin.HandlerFunc) {
	group := engine.Group("/api/voters")

	group.POST("/register", c.register)
	group.POST("/login", c.login)
	group.GET("/:id", authenticate, c.get)
}

// register godoc
// @Summary Register a voter
// @Tags voters
// @Accept json
// @Produce json
// @Param voter body models.RegisterVoterRequest true "New voter"
// @Success 201 {string} string "confirmation message"
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/voters/register [post]
func (c *VoterController) register(g *gin.Context) {
	var req models.RegisterVoterRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		respondError(g, bindErrorStatus(err), "Please fill all the fields")
		return
	}

	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if fullName == "" || email == "" {
		respondError(g, http.StatusUnprocessableEntity, "Please fill all the fields")
		return
	}
	if err := validate.Var(email, "email"); err != nil {
		respondError(g, http.StatusUnprocessableEntity, "Please enter a valid email")
		return
	}
	if len(strings.TrimSpace(req.Password)) < models.MinPasswordLength {
		respondError(g, http.StatusUnprocessableEntity, "Password must be at least 6 characters")
		return
	}
	if len(req.Password) > models.MaxPasswordLength {
		respondError(g, http.StatusUnprocessableEntity, "Password must be at most 72 bytes")
		return
	}
	if req.Password != req.ConfirmPassword {
		respondError(g, http.StatusUnprocessableEntity, "Passwords do not match")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		logging.Log.Errorf("VOTER: failed to hash password: %v", err)
		respondError(g, http.StatusInternalServerError, "Registration failed, please try again later.")
		return
	}

	voter := &storage.Voter{
		ID:        uuid.NewString(),
		FullName:  fullName,
		Email:     email,
		Password:  hashed,
		IsAdmin:   c.adminEmails[email],
		CreatedAt: time.Now().UTC(),
	}

	if err := c.voters.Create(g.Request.Context(), voter); err != nil {
		if errors.Is(err, storage.ErrEmailAlreadyRegistered) {
			respondError(g, http.StatusUnprocessableEntity, "Email already exists, please use a different email")
			return
		}
		logging.Log.Errorf("VOTER: failed to register %s: %v", email, err)
		respondError(g, http.StatusInternalServerError, "Registration failed, please try again later.")
		return
	}

	logging.Log.Infof("VOTER: registered %s (admin=%t)", voter.ID, voter.IsAdmin)
	g.JSON(http.StatusCreated, fmt.Sprintf("New voter %s registered successfully!", fullName))
}

// login godoc
// @Summary Log a voter in
// @Tags voters
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 403 {object} models.ErrorResponse "Invalid credentials"
// @Failure 422 {object} models.ErrorResponse
// @Router /api/voters/login [post]
func (c *VoterController) login(g *gin.Context) {
	var req models.LoginRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		respondError(g, bindErrorStatus(err), "Please fill all the fields")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	voter, err := c.voters.GetByEmail(g.Request.Context(), email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		logging.Log.Errorf("VOTER: login lookup failed: %v", err)
		respondError(g, http.StatusInternalServerError, "Login failed, please try again later.")
		return
	}
	if voter == nil || !auth.CheckPassword(voter.Password, req.Password) {
		respondError(g, http.StatusForbidden, "Invalid credentials.")
		return
	}

	token, err := c.tokens.Issue(voter.ID, voter.IsAdmin)
	if err != nil {
		logging.Log.Errorf("VOTER: failed to issue token: %v", err)
		respondError(g, http.StatusInternalServerError, "Login failed, please try again later.")
		return
	}

	response := models.TransformVoterFromStorage(voter)
	g.JSON(http.StatusOK, models.LoginResponse{
		Token:          token,
		ID:             voter.ID,
		VotedElections: response.VotedElections,
		IsAdmin:        voter.IsAdmin,
	})
}

// get godoc
// @Summary Get a voter
// @Tags voters
// @Produce json
// @Security BearerToken
// @Param id path string true "Voter ID"
// @Success 200 {object} models.VoterResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/voters/{id} [get]
func (c *VoterController) get(g *gin.Context) {
	voter, err := c.voters.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(g, http.StatusNotFound, "Voter not found")
			return
		}
		respondError(g, http.StatusInternalServerError, "Failed to retrieve voter, please try again later.")
		return
	}
	g.JSON(http.StatusOK, models.TransformVoterFromStorage(voter))
}
