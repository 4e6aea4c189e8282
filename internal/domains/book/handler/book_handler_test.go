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

	h := NewBookHandler(memory.New())

	r := gin.New()
	r.Use(middleware.CurrentUser(store.SeedUserID))
	r.GET("/books", h.GetBooks)
	r.GET("/books/search", h.SearchBooks)
	r.GET("/books/:id", h.GetBook)
	r.POST("/books", h.CreateBook)
	r.PATCH("/books/:id", h.UpdateBook)
	r.GET("/recommendations", h.GetRecommendations)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
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

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestGetBooks(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, http.MethodGet, "/books", "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)

	var books []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &books))
	require.Len(t, books, 4)
	assert.Equal(t, "The Midnight Library", books[0]["title"])
	assert.Equal(t, "4.2", books[0]["averageRating"])
}

func TestGetBookNotFound(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, http.MethodGet, "/books/999", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestGetBookInvalidID(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, http.MethodGet, "/books/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchBooksRequiresQuery(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, http.MethodGet, "/books/search", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodGet, "/books/search?q=weir", "")
	require.Equal(t, http.StatusOK, w.Code)

	var books []map[string]interface{}
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &books))
	assert.Len(t, books, 1)
}

func TestCreateBook(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, http.MethodPost, "/books", `{
		"title": "Dune",
		"author": "Frank Herbert",
		"totalPages": 412,
		"publishedYear": 1965,
		"genres": ["Science Fiction"]
	}`)
	require.Equal(t, http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w)
	var book map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &book))
	assert.Equal(t, float64(5), book["id"])
	assert.Equal(t, "0", book["averageRating"])
}

func TestCreateBookValidation(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, http.MethodPost, "/books", `{"title": "No Author", "totalPages": 100}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPost, "/books", `{"title": "X", "author": "Y", "totalPages": 0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBookNotFound(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, http.MethodPatch, "/books/999", `{"totalPages": 100}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRecommendationsExcludesShelved(t *testing.T) {
	r := newTestRouter()

	w := doRequest(t, r, http.MethodGet, "/recommendations", "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var recs []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &recs))
	require.Len(t, recs, 2)

	for _, rec := range recs {
		id := rec["id"].(float64)
		assert.NotContains(t, []float64{1, 2}, id, "shelved books never come back as recommendations")
		assert.GreaterOrEqual(t, rec["matchPercentage"].(float64), float64(60))
		assert.LessOrEqual(t, rec["matchPercentage"].(float64), float64(99))
		assert.NotEmpty(t, rec["reason"])
	}
}
