package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	testutils "github.com/miracool-ctrl/backend-voteapp/api/controllers/testing"
	"github.com/miracool-ctrl/backend-voteapp/api/models"
	"github.com/miracool-ctrl/backend-voteapp/api/transport"
	"github.com/miracool-ctrl/backend-voteapp/assets"
	"github.com/miracool-ctrl/backend-voteapp/auth"
	"github.com/miracool-ctrl/backend-voteapp/logging"
	"github.com/miracool-ctrl/backend-voteapp/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const (
	testAdminEmail = "admin@example.com"
	testUploadMax  = 1000
)

type testAPI struct {
	router   *gin.Engine
	storages *storage.Storages
	assets   *assets.MemoryStore
	tokens   *auth.TokenIssuer
}

func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()
	logging.Log = logrus.New()
	logging.Log.SetLevel(logrus.WarnLevel)
	gin.SetMode(gin.TestMode)

	api := &testAPI{
		router:   gin.New(),
		storages: storage.NewMemoryStorages(),
		assets:   assets.NewMemoryStore("http://assets.test"),
		tokens:   auth.NewTokenIssuer("test-secret", time.Hour),
	}

	authenticate := transport.AuthMiddleware(api.tokens)
	s := api.storages
	NewVoterController(s.Voters, api.tokens, []string{testAdminEmail}).RegisterRoutes(api.router, authenticate)
	NewElectionController(s.Elections, s.Candidates, s.Voters, api.assets, testUploadMax).RegisterRoutes(api.router, authenticate)
	NewCandidateController(s.Candidates, s.Elections, api.assets, testUploadMax).RegisterRoutes(api.router, authenticate)
	NewVotingController(s.Votes, s.Candidates, s.Voters, s.Elections).RegisterRoutes(api.router, authenticate)

	return api
}

// createVoter stores a voter directly and returns it with a session token.
func (a *testAPI) createVoter(t *testing.T, email string, isAdmin bool) (*storage.Voter, string) {
	t.Helper()
	hashed, err := auth.HashPassword("password123")
	require.NoError(t, err)

	voter := &storage.Voter{
		ID:        uuid.NewString(),
		FullName:  "Test " + email,
		Email:     email,
		Password:  hashed,
		IsAdmin:   isAdmin,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, a.storages.Voters.Create(context.Background(), voter))

	token, err := a.tokens.Issue(voter.ID, isAdmin)
	require.NoError(t, err)
	return voter, token
}

func (a *testAPI) createElection(t *testing.T, adminToken, title string) models.ElectionResponse {
	t.Helper()
	res := testutils.PerformMultipartRequest(a.router, http.MethodPost, "/api/elections",
		map[string]string{"title": title, "description": title + " description"},
		&testutils.Upload{Field: "thumbnail", Filename: "thumb nail.png", Content: []byte("png")},
		testutils.Bearer(adminToken))
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

	var election models.ElectionResponse
	decode(t, res, &election)
	return election
}

func (a *testAPI) createCandidate(t *testing.T, adminToken, electionID, name string) models.CandidateResponse {
	t.Helper()
	res := testutils.PerformMultipartRequest(a.router, http.MethodPost, "/api/candidates",
		map[string]string{"fullName": name, "motto": "Vote " + name, "currentElection": electionID},
		&testutils.Upload{Field: "image", Filename: name + ".jpg", Content: []byte("jpg")},
		testutils.Bearer(adminToken))
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

	var created models.CandidateCreateResponse
	decode(t, res, &created)
	return created.Candidate
}

func decode(t *testing.T, res *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), v), res.Body.String())
}

func errorMessage(t *testing.T, res *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.ErrorResponse
	decode(t, res, &body)
	return body.Message
}
