package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"readtrack-backend/internal/domains/user/model"
	"readtrack-backend/internal/shared/middleware"
	"readtrack-backend/internal/shared/response"
	"readtrack-backend/internal/store"
)

type UserHandler struct {
	store store.Storage
}

func NewUserHandler(s store.Storage) *UserHandler {
	return &UserHandler{store: s}
}

// Register creates an account. The password is bcrypt-hashed before it
// reaches the store.
// POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid registration", err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(c, "Failed to register")
		return
	}

	user, err := h.store.CreateUser(c.Request.Context(), model.NewUser{
		Username: req.Username,
		Password: string(hash),
		Email:    req.Email,
		Avatar:   req.Avatar,
	})
	if err != nil {
		if errors.Is(err, model.ErrUsernameTaken) || errors.Is(err, model.ErrEmailTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalServerError(c, "Failed to register")
		return
	}

	response.Success(c, http.StatusCreated, user)
}

// GetCurrentUser returns the acting account.
// GET /api/v1/users/me
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID := middleware.UserID(c)

	user, err := h.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalServerError(c, "Failed to get user")
		return
	}

	response.Success(c, http.StatusOK, user)
}

// GetPreferences returns the current user's settings record.
// GET /api/v1/preferences
func (h *UserHandler) GetPreferences(c *gin.Context) {
	userID := middleware.UserID(c)

	prefs, err := h.store.GetUserPreferences(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrPreferencesNotFound) {
			response.NotFound(c, "Preferences not set")
			return
		}
		response.InternalServerError(c, "Failed to get preferences")
		return
	}

	response.Success(c, http.StatusOK, prefs)
}

// CreatePreferences inserts the one-per-user settings record.
// POST /api/v1/preferences
func (h *UserHandler) CreatePreferences(c *gin.Context) {
	userID := middleware.UserID(c)

	var req model.CreatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid preferences", err.Error())
		return
	}

	prefs, err := h.store.CreateUserPreferences(c.Request.Context(), req.NewPreferences(userID))
	if err != nil {
		if errors.Is(err, model.ErrPreferencesExist) {
			response.Conflict(c, "Preferences already exist")
			return
		}
		response.InternalServerError(c, "Failed to create preferences")
		return
	}

	response.Success(c, http.StatusCreated, prefs)
}

// UpdatePreferences patches the settings record.
// PATCH /api/v1/preferences
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	userID := middleware.UserID(c)

	var req model.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid preferences", err.Error())
		return
	}

	prefs, err := h.store.UpdateUserPreferences(c.Request.Context(), userID, req.Patch())
	if err != nil {
		if errors.Is(err, model.ErrPreferencesNotFound) {
			response.NotFound(c, "Preferences not set")
			return
		}
		response.InternalServerError(c, "Failed to update preferences")
		return
	}

	response.Success(c, http.StatusOK, prefs)
}

// GetStats returns the dashboard aggregate for the current user.
// GET /api/v1/stats
func (h *UserHandler) GetStats(c *gin.Context) {
	userID := middleware.UserID(c)

	stats, err := h.store.GetReadingStats(c.Request.Context(), userID)
	if err != nil {
		response.InternalServerError(c, "Failed to compute reading stats")
		return
	}

	response.Success(c, http.StatusOK, stats)
}
