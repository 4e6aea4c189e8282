package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"readtrack-backend/internal/domains/book/model"
	"readtrack-backend/internal/shared/middleware"
	"readtrack-backend/internal/shared/response"
	"readtrack-backend/internal/store"
)

type BookHandler struct {
	store store.Storage
}

func NewBookHandler(s store.Storage) *BookHandler {
	return &BookHandler{store: s}
}

// GetBooks lists the catalog.
// GET /api/v1/books?limit=20&offset=0
func (h *BookHandler) GetBooks(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	books, err := h.store.GetBooks(c.Request.Context(), limit, offset)
	if err != nil {
		response.InternalServerError(c, "Failed to list books")
		return
	}

	response.Success(c, http.StatusOK, books)
}

// SearchBooks matches title, author and genres.
// GET /api/v1/books/search?q=midnight
func (h *BookHandler) SearchBooks(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "Query parameter q is required")
		return
	}

	books, err := h.store.SearchBooks(c.Request.Context(), query)
	if err != nil {
		response.InternalServerError(c, "Failed to search books")
		return
	}

	response.Success(c, http.StatusOK, books)
}

// GetBook fetches one catalog record.
// GET /api/v1/books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	book, err := h.store.GetBook(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			response.NotFound(c, "Book not found")
			return
		}
		response.InternalServerError(c, "Failed to get book")
		return
	}

	response.Success(c, http.StatusOK, book)
}

// CreateBook inserts a catalog record.
// POST /api/v1/books
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid book data", err.Error())
		return
	}

	book, err := h.store.CreateBook(c.Request.Context(), req.NewBook())
	if err != nil {
		response.InternalServerError(c, "Failed to create book")
		return
	}

	response.Success(c, http.StatusCreated, book)
}

// UpdateBook patches a catalog record. Absent fields stay untouched.
// PATCH /api/v1/books/:id
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid book data", err.Error())
		return
	}

	book, err := h.store.UpdateBook(c.Request.Context(), id, req.Patch())
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			response.NotFound(c, "Book not found")
			return
		}
		response.InternalServerError(c, "Failed to update book")
		return
	}

	response.Success(c, http.StatusOK, book)
}

// GetRecommendations ranks unshelved catalog books for the current user.
// GET /api/v1/recommendations?limit=6
func (h *BookHandler) GetRecommendations(c *gin.Context) {
	userID := middleware.UserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))

	recs, err := h.store.GetRecommendations(c.Request.Context(), userID, limit)
	if err != nil {
		response.InternalServerError(c, "Failed to get recommendations")
		return
	}

	response.Success(c, http.StatusOK, recs)
}
