package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"readtrack-backend/internal/domains/review/model"
	"readtrack-backend/internal/shared/middleware"
	"readtrack-backend/internal/shared/response"
	"readtrack-backend/internal/store"
)

type ReviewHandler struct {
	store store.Storage
}

func NewReviewHandler(s store.Storage) *ReviewHandler {
	return &ReviewHandler{store: s}
}

// GetReviews lists reviews joined to their author and book. Filters
// combine conjunctively.
// GET /api/v1/reviews?bookId=1&userId=1&limit=20
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	filter := model.ReviewFilter{}

	if v := c.Query("bookId"); v != "" {
		bookID, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(c, "Invalid bookId filter")
			return
		}
		filter.BookID = &bookID
	}
	if v := c.Query("userId"); v != "" {
		userID, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(c, "Invalid userId filter")
			return
		}
		filter.UserID = &userID
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(c, "Invalid limit")
			return
		}
		filter.Limit = limit
	}

	reviews, err := h.store.GetReviews(c.Request.Context(), filter)
	if err != nil {
		response.InternalServerError(c, "Failed to list reviews")
		return
	}

	response.Success(c, http.StatusOK, reviews)
}

// GetReview fetches one review by id.
// GET /api/v1/reviews/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid review ID")
		return
	}

	review, err := h.store.GetReview(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			response.NotFound(c, "Review not found")
			return
		}
		response.InternalServerError(c, "Failed to get review")
		return
	}

	response.Success(c, http.StatusOK, review)
}

// CreateReview posts a review as the current user.
// POST /api/v1/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID := middleware.UserID(c)

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid review", err.Error())
		return
	}

	review, err := h.store.CreateReview(c.Request.Context(), req.NewReview(userID))
	if err != nil {
		response.InternalServerError(c, "Failed to create review")
		return
	}

	response.Success(c, http.StatusCreated, review)
}

// UpdateReview patches a review.
// PATCH /api/v1/reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid review ID")
		return
	}

	var req model.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid review", err.Error())
		return
	}

	review, err := h.store.UpdateReview(c.Request.Context(), id, req.Patch())
	if err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			response.NotFound(c, "Review not found")
			return
		}
		response.InternalServerError(c, "Failed to update review")
		return
	}

	response.Success(c, http.StatusOK, review)
}

// DeleteReview removes a review. Deleting an absent review is a 404.
// DELETE /api/v1/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid review ID")
		return
	}

	deleted, err := h.store.DeleteReview(c.Request.Context(), id)
	if err != nil {
		response.InternalServerError(c, "Failed to delete review")
		return
	}
	if !deleted {
		response.NotFound(c, "Review not found")
		return
	}

	c.Status(http.StatusNoContent)
}
