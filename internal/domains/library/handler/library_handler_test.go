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

	h := NewLibraryHandler(memory.New())

	r := gin.New()
	r.Use(middleware.CurrentUser(store.SeedUserID))
	r.GET("/user-books", h.GetUserBooks)
	r.GET("/user-books/:bookId", h.GetUserBook)
	r.POST("/user-books", h.AddUserBook)
	r.PATCH("/user-books/:bookId", h.UpdateUserBook)
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

func TestGetUserBooksJoined(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, http.MethodGet, "/user-books", "")
	require.Equal(t, http.StatusOK, w.Code)

	var entries []map[string]interface{}
	decodeData(t, w, &entries)
	require.Len(t, entries, 2)

	// Entry 1 is the seeded Midnight Library at page 204 of 300.
	assert.Equal(t, "The Midnight Library", entries[0]["title"])
	assert.Equal(t, float64(68), entries[0]["progress"])
	userBook := entries[0]["userBook"].(map[string]interface{})
	assert.Equal(t, "reading", userBook["status"])
}

func TestGetUserBooksStatusFilter(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, http.MethodGet, "/user-books?status=completed", "")
	require.Equal(t, http.StatusOK, w.Code)

	var entries []map[string]interface{}
	decodeData(t, w, &entries)
	assert.Empty(t, entries)

	w = doRequest(t, r, http.MethodGet, "/user-books?status=banana", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddUserBookDuplicateConflict(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, http.MethodPost, "/user-books", `{"bookId": 3, "status": "want-to-read"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodPost, "/user-books", `{"bookId": 3, "status": "reading"}`)
	require.Equal(t, http.StatusConflict, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestUpdateUserBookProgress(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, http.MethodPatch, "/user-books/1", `{"currentPage": 250}`)
	require.Equal(t, http.StatusOK, w.Code)

	var entry map[string]interface{}
	decodeData(t, w, &entry)
	assert.Equal(t, float64(250), entry["currentPage"])
	assert.Equal(t, "reading", entry["status"], "unpatched fields stay put")
}

func TestUpdateUserBookNotFound(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, http.MethodPatch, "/user-books/999", `{"currentPage": 1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUserBookInvalidStatus(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, http.MethodPatch, "/user-books/1", `{"status": "paused"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
