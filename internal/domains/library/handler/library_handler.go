package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"readtrack-backend/internal/domains/library/model"
	"readtrack-backend/internal/shared/middleware"
	"readtrack-backend/internal/shared/response"
	"readtrack-backend/internal/store"
)

type LibraryHandler struct {
	store store.Storage
}

func NewLibraryHandler(s store.Storage) *LibraryHandler {
	return &LibraryHandler{store: s}
}

// GetUserBooks lists the current user's library, joined to catalog
// books, optionally filtered by status.
// GET /api/v1/user-books?status=reading
func (h *LibraryHandler) GetUserBooks(c *gin.Context) {
	userID := middleware.UserID(c)

	status := model.Status(c.Query("status"))
	if status != "" && !status.IsValid() {
		response.BadRequest(c, "Invalid status filter")
		return
	}

	entries, err := h.store.GetUserBooks(c.Request.Context(), userID, status)
	if err != nil {
		response.InternalServerError(c, "Failed to list library")
		return
	}

	response.Success(c, http.StatusOK, entries)
}

// GetUserBook fetches one library entry by book id.
// GET /api/v1/user-books/:bookId
func (h *LibraryHandler) GetUserBook(c *gin.Context) {
	userID := middleware.UserID(c)

	bookID, err := strconv.Atoi(c.Param("bookId"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	entry, err := h.store.GetUserBook(c.Request.Context(), userID, bookID)
	if err != nil {
		if errors.Is(err, model.ErrEntryNotFound) {
			response.NotFound(c, "Book is not in your library")
			return
		}
		response.InternalServerError(c, "Failed to get library entry")
		return
	}

	response.Success(c, http.StatusOK, entry)
}

// AddUserBook shelves a book for the current user. Adding a book twice
// is a conflict, not an update.
// POST /api/v1/user-books
func (h *LibraryHandler) AddUserBook(c *gin.Context) {
	userID := middleware.UserID(c)

	var req model.AddUserBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid library entry", err.Error())
		return
	}

	entry, err := h.store.AddUserBook(c.Request.Context(), req.NewUserBook(userID))
	if err != nil {
		if errors.Is(err, model.ErrAlreadyInLibrary) {
			response.Conflict(c, "Book is already in your library")
			return
		}
		response.InternalServerError(c, "Failed to add book to library")
		return
	}

	response.Success(c, http.StatusCreated, entry)
}

// UpdateUserBook patches a library entry addressed by book id.
// PATCH /api/v1/user-books/:bookId
func (h *LibraryHandler) UpdateUserBook(c *gin.Context) {
	userID := middleware.UserID(c)

	bookID, err := strconv.Atoi(c.Param("bookId"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	var req model.UpdateUserBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid library entry", err.Error())
		return
	}

	entry, err := h.store.UpdateUserBook(c.Request.Context(), userID, bookID, req.Patch())
	if err != nil {
		if errors.Is(err, model.ErrEntryNotFound) {
			response.NotFound(c, "Book is not in your library")
			return
		}
		response.InternalServerError(c, "Failed to update library entry")
		return
	}

	response.Success(c, http.StatusOK, entry)
}
