package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/miracool-ctrl/backend-voteapp/assets"
	"github.com/miracool-ctrl/backend-voteapp/logging"
	"github.com/miracool-ctrl/backend-voteapp/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvisionAdmins(t *testing.T) {
	logging.Log = logrus.New()
	ctx := context.Background()
	storages := storage.NewMemoryStorages()
	require.NoError(t, storages.Voters.Create(ctx, &storage.Voter{ID: "v1", Email: "root@example.com"}))
	require.NoError(t, storages.Voters.Create(ctx, &storage.Voter{ID: "v2", Email: "plain@example.com"}))

	err := ProvisionAdmins(ctx, storages.Voters, []string{" Root@Example.com ", "later@example.com", ""})
	require.NoError(t, err)

	root, err := storages.Voters.Get(ctx, "v1")
	require.NoError(t, err)
	assert.True(t, root.IsAdmin)

	plain, err := storages.Voters.Get(ctx, "v2")
	require.NoError(t, err)
	assert.False(t, plain.IsAdmin)
}

func TestBuildEngine(t *testing.T) {
	logging.Log = logrus.New()
	server := NewServer(&Config{
		ServerConfig: ServerConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		AuthConfig:   AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour},
		UploadConfig: UploadConfig{MaxBytes: 1000},
	})
	engine := server.buildEngine(storage.NewMemoryStorages(), assets.NewMemoryStore("http://assets.test"))

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/elections", http.StatusForbidden},
		{http.MethodGet, "/api/voters/someone", http.StatusForbidden},
		{http.MethodPost, "/api/candidates/c1/vote", http.StatusForbidden},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		res := httptest.NewRecorder()
		engine.ServeHTTP(res, req)
		assert.Equal(t, tc.want, res.Code, "%s %s", tc.method, tc.path)
	}
}
