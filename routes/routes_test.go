package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/djmgmz/tdd-jest/config"
	"github.com/djmgmz/tdd-jest/database"
	"github.com/djmgmz/tdd-jest/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPostLifecycle(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = config.DriverMemory
	r := SetupRouter(cfg, database.NewMemoryPosts())

	rec := do(t, r, http.MethodGet, "/posts", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, r, http.MethodPost, "/posts", `{"author":"stswenguser","title":"My first test post","content":"Random content"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var created models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, "stswenguser", created.Author)
	assert.Equal(t, "My first test post", created.Title)
	assert.Equal(t, "Random content", created.Content)

	rec = do(t, r, http.MethodGet, "/posts/"+created.ID.Hex(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var found models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	assert.Equal(t, created.ID, found.ID)

	rec = do(t, r, http.MethodPut, "/posts/"+created.ID.Hex(), `{"title":"New Title","content":"Updated"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "stswenguser", updated.Author)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "Updated", updated.Content)

	rec = do(t, r, http.MethodGet, "/posts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 1)
	assert.Equal(t, "New Title", all[0].Title)

	missing := primitive.NewObjectID().Hex()
	rec = do(t, r, http.MethodGet, "/posts/"+missing, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, r, http.MethodPut, "/posts/"+missing, `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHealthAndNoRoute(t *testing.T) {
	cfg := config.Default()
	r := SetupRouter(cfg, database.NewMemoryPosts())

	rec := do(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = do(t, r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var health map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])

	rec = do(t, r, http.MethodDelete, "/posts/abc123", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Endpoint not found")

	rec = do(t, r, http.MethodGet, "/posts", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRateLimitApplied(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit.Requests = 2
	r := SetupRouter(cfg, database.NewMemoryPosts())

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, r, http.MethodGet, "/health", "").Code)
}
