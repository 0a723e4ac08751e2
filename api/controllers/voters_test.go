package controllers

import (
	"net/http"
	"strings"
	"testing"

	testutils "github.com/miracool-ctrl/backend-voteapp/api/controllers/testing"
	"github.com/miracool-ctrl/backend-voteapp/api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerRequest(name, email string) models.RegisterVoterRequest {
	return models.RegisterVoterRequest{
		FullName:        name,
		Email:           email,
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegisterVoter(t *testing.T) {
	api := setupTestAPI(t)

	t.Run("Happy path - register", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodPost, "/api/voters/register", registerRequest("Jane Doe", "jane@example.com"), nil)
		require.Equal(t, http.StatusCreated, res.Code)

		var message string
		decode(t, res, &message)
		assert.Equal(t, "New voter Jane Doe registered successfully!", message)
	})

	t.Run("Unhappy path - email differing only in case", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodPost, "/api/voters/register", registerRequest("Jane Again", "JANE@Example.com"), nil)
		assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
		assert.Equal(t, "Email already exists, please use a different email", errorMessage(t, res))
	})

	t.Run("Unhappy path - missing fields", func(t *testing.T) {
		req := registerRequest("", "nobody@example.com")
		res := testutils.PerformRequest(api.router, http.MethodPost, "/api/voters/register", req, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
	})

	t.Run("Unhappy path - short password", func(t *testing.T) {
		req := registerRequest("Shorty", "short@example.com")
		req.Password, req.ConfirmPassword = "12345", "12345"
		res := testutils.PerformRequest(api.router, http.MethodPost, "/api/voters/register", req, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
		assert.Equal(t, "Password must be at least 6 characters", errorMessage(t, res))
	})

	t.Run("Unhappy path - password too long", func(t *testing.T) {
		req := registerRequest("Longpass", "longpass@example.com")
		req.Password = strings.Repeat("p", models.MaxPasswordLength+8)
		req.ConfirmPassword = req.Password
		res := testutils.PerformRequest(api.router, http.MethodPost, "/api/voters/register", req, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
		assert.Equal(t, "Password must be at most 72 bytes", errorMessage(t, res))
	})

	t.Run("Happy path - password at the byte limit", func(t *testing.T) {
		req := registerRequest("Edge", "edge@example.com")
		req.Password = strings.Repeat("p", models.MaxPasswordLength)
		req.ConfirmPassword = req.Password
		res := testutils.PerformRequest(api.router, http.MethodPost, "/api/voters/register", req, nil)
		assert.Equal(t, http.StatusCreated, res.Code)
	})

	t.Run("Happy path - surrounding spaces in email are trimmed", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodPost, "/api/voters/register", registerRequest("Spacey", "  spacey@example.com "), nil)
		require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

		res = testutils.PerformRequest(api.router, http.MethodPost, "/api/voters/login", models.LoginRequest{Email: "spacey@example.com", Password: "secret1"}, nil)
		assert.Equal(t, http.StatusOK, res.Code)
	})

	t.Run("Unhappy path - invalid email", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodPost, "/api/voters/register", registerRequest("Bad", "not-an-email"), nil)
		assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
		assert.Equal(t, "Please enter a valid email", errorMessage(t, res))
	})

	t.Run("Unhappy path - passwords do not match", func(t *testing.T) {
		req := registerRequest("Mismatch", "mismatch@example.com")
		req.ConfirmPassword = "secret2"
		res := testutils.PerformRequest(api.router, http.MethodPost, "/api/voters/register", req, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
		assert.Equal(t, "Passwords do not match", errorMessage(t, res))
	})

	t.Run("Unhappy path - malformed body", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodPost, "/api/voters/register", "not an object", nil)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Happy path - configured admin email gets the role", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodPost, "/api/voters/register", registerRequest("Admin", "Admin@Example.com"), nil)
		require.Equal(t, http.StatusCreated, res.Code)

		res = testutils.PerformRequest(api.router, http.MethodPost, "/api/voters/login", models.LoginRequest{Email: testAdminEmail, Password: "secret1"}, nil)
		require.Equal(t, http.StatusOK, res.Code)

		var login models.LoginResponse
		decode(t, res, &login)
		assert.True(t, login.IsAdmin)
	})
}

func TestLoginVoter(t *testing.T) {
	api := setupTestAPI(t)
	res := testutils.PerformRequest(api.router, http.MethodPost, "/api/voters/register", registerRequest("John Roe", "john@example.com"), nil)
	require.Equal(t, http.StatusCreated, res.Code)

	t.Run("Happy path - login and fetch self", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodPost, "/api/voters/login", models.LoginRequest{Email: "John@example.com", Password: "secret1"}, nil)
		require.Equal(t, http.StatusOK, res.Code)

		var login models.LoginResponse
		decode(t, res, &login)
		assert.NotEmpty(t, login.Token)
		assert.NotEmpty(t, login.ID)
		assert.Empty(t, login.VotedElections)
		assert.NotNil(t, login.VotedElections)
		assert.False(t, login.IsAdmin)

		claims, err := api.tokens.Verify(login.Token)
		require.NoError(t, err)
		assert.Equal(t, login.ID, claims.VoterID)

		res = testutils.PerformRequest(api.router, http.MethodGet, "/api/voters/"+login.ID, nil, testutils.Bearer(login.Token))
		require.Equal(t, http.StatusOK, res.Code)
		assert.NotContains(t, res.Body.String(), "password")

		var voter models.VoterResponse
		decode(t, res, &voter)
		assert.Equal(t, "john@example.com", voter.Email)
		assert.Equal(t, "John Roe", voter.FullName)
	})

	t.Run("Unhappy path - wrong password", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodPost, "/api/voters/login", models.LoginRequest{Email: "john@example.com", Password: "wrong-password"}, nil)
		assert.Equal(t, http.StatusForbidden, res.Code)
		assert.Equal(t, "Invalid credentials.", errorMessage(t, res))
	})

	t.Run("Unhappy path - unknown email", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodPost, "/api/voters/login", models.LoginRequest{Email: "ghost@example.com", Password: "secret1"}, nil)
		assert.Equal(t, http.StatusForbidden, res.Code)
		assert.Equal(t, "Invalid credentials.", errorMessage(t, res))
	})

	t.Run("Unhappy path - missing fields", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodPost, "/api/voters/login", models.LoginRequest{Email: "john@example.com"}, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
	})
}

func TestGetVoter(t *testing.T) {
	api := setupTestAPI(t)
	_, token := api.createVoter(t, "reader@example.com", false)

	t.Run("Unhappy path - no token", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodGet, "/api/voters/anything", nil, nil)
		assert.Equal(t, http.StatusForbidden, res.Code)
	})

	t.Run("Unhappy path - unknown voter", func(t *testing.T) {
		res := testutils.PerformRequest(api.router, http.MethodGet, "/api/voters/missing", nil, testutils.Bearer(token))
		assert.Equal(t, http.StatusNotFound, res.Code)
		assert.Equal(t, "Voter not found", errorMessage(t, res))
	})
}
