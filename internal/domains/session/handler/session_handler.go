package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"readtrack-backend/internal/domains/session/model"
	"readtrack-backend/internal/shared/middleware"
	"readtrack-backend/internal/shared/response"
	"readtrack-backend/internal/store"
)

type SessionHandler struct {
	store store.Storage
}

func NewSessionHandler(s store.Storage) *SessionHandler {
	return &SessionHandler{store: s}
}

// GetSessions lists the current user's reading sessions, optionally
// restricted to one calendar day.
// GET /api/v1/reading-sessions?date=2026-08-29
func (h *SessionHandler) GetSessions(c *gin.Context) {
	userID := middleware.UserID(c)

	var date *time.Time
	if v := c.Query("date"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			response.BadRequest(c, "Invalid date, want YYYY-MM-DD")
			return
		}
		date = &parsed
	}

	sessions, err := h.store.GetReadingSessions(c.Request.Context(), userID, date)
	if err != nil {
		response.InternalServerError(c, "Failed to list reading sessions")
		return
	}

	response.Success(c, http.StatusOK, sessions)
}

// CreateSession schedules a reading slot for the current user.
// POST /api/v1/reading-sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	userID := middleware.UserID(c)

	var req model.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reading session", err.Error())
		return
	}

	session, err := h.store.CreateReadingSession(c.Request.Context(), req.NewSession(userID))
	if err != nil {
		response.InternalServerError(c, "Failed to create reading session")
		return
	}

	response.Success(c, http.StatusCreated, session)
}

// UpdateSession patches a session, typically to mark it completed.
// PATCH /api/v1/reading-sessions/:id
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req model.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reading session", err.Error())
		return
	}

	session, err := h.store.UpdateReadingSession(c.Request.Context(), id, req.Patch())
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			response.NotFound(c, "Reading session not found")
			return
		}
		response.InternalServerError(c, "Failed to update reading session")
		return
	}

	response.Success(c, http.StatusOK, session)
}
