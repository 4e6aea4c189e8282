package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readtrack-backend/internal/shared/middleware"
	"readtrack-backend/internal/store"
	"readtrack-backend/internal/store/memory"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewUserHandler(memory.New())

	r := gin.New()
	r.Use(middleware.CurrentUser(store.SeedUserID))
	r.POST("/auth/register", h.Register)
	r.GET("/users/me", h.GetCurrentUser)
	r.GET("/stats", h.GetStats)
	r.GET("/preferences", h.GetPreferences)
	r.POST("/preferences", h.CreatePreferences)
	r.PATCH("/preferences", h.UpdatePreferences)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func TestRegister(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, http.MethodPost, "/auth/register", `{
		"username": "new_reader",
		"password": "longenough123",
		"email": "new@example.com"
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var user map[string]interface{}
	decodeData(t, w, &user)
	assert.Equal(t, "new_reader", user["username"])
	assert.NotContains(t, user, "password", "hash never leaves the process")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, http.MethodPost, "/auth/register", `{
		"username": "sarah_m",
		"password": "longenough123",
		"email": "different@example.com"
	}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	r := newTestRouter()

	// Too-short password.
	w := doRequest(t, r, http.MethodPost, "/auth/register", `{
		"username": "ok_name",
		"password": "short",
		"email": "ok@example.com"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Bad email.
	w = doRequest(t, r, http.MethodPost, "/auth/register", `{
		"username": "ok_name",
		"password": "longenough123",
		"email": "not-an-email"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCurrentUser(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, http.MethodGet, "/users/me", "")
	require.Equal(t, http.StatusOK, w.Code)

	var user map[string]interface{}
	decodeData(t, w, &user)
	assert.Equal(t, "sarah_m", user["username"])
}

func TestGetStats(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]interface{}
	decodeData(t, w, &stats)
	assert.Contains(t, stats, "booksReadThisYear")
	assert.Contains(t, stats, "currentStreak")
	assert.Contains(t, stats, "totalPages")
	assert.Equal(t, "Fiction", stats["favoriteGenre"])
}

func TestPreferencesEndpoints(t *testing.T) {
	r := newTestRouter()

	// Seeded preferences exist.
	w := doRequest(t, r, http.MethodGet, "/preferences", "")
	require.Equal(t, http.StatusOK, w.Code)

	var prefs map[string]interface{}
	decodeData(t, w, &prefs)
	assert.Equal(t, float64(30), prefs["readingGoal"])

	// A second insert is a conflict.
	w = doRequest(t, r, http.MethodPost, "/preferences", `{"readingGoal": 10}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Patch only the goal; genres survive.
	w = doRequest(t, r, http.MethodPatch, "/preferences", `{"readingGoal": 52}`)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &prefs)
	assert.Equal(t, float64(52), prefs["readingGoal"])
	assert.Len(t, prefs["favoriteGenres"], 3)

	// Malformed reminder time is rejected.
	w = doRequest(t, r, http.MethodPatch, "/preferences", `{
		"reminderSettings": {"enabled": true, "time": "25:99", "frequency": "daily"}
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
