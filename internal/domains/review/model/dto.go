package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateReviewRequest posts a review as the current user.
type CreateReviewRequest struct {
	BookID         int     `json:"bookId" binding:"required"`
	Rating         int     `json:"rating" binding:"required"`
	Title          *string `json:"title"`
	Content        string  `json:"content" binding:"required"`
	IsTrailerStyle bool    `json:"isTrailerStyle"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required.Error("bookId is required"), validation.Min(1)),
		validation.Field(&r.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(1).Error("rating must be between 1 and 5"),
			validation.Max(5).Error("rating must be between 1 and 5"),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, 5000),
		),
		validation.Field(&r.Title, validation.When(r.Title != nil, validation.Length(1, 200))),
	)
}

// NewReview converts the request into a store insert for the given user.
func (r CreateReviewRequest) NewReview(userID int) NewReview {
	return NewReview{
		UserID:         userID,
		BookID:         r.BookID,
		Rating:         r.Rating,
		Title:          r.Title,
		Content:        r.Content,
		IsTrailerStyle: r.IsTrailerStyle,
	}
}

// UpdateReviewRequest patches a review.
type UpdateReviewRequest struct {
	Rating         *int    `json:"rating"`
	Title          *string `json:"title"`
	Content        *string `json:"content"`
	IsTrailerStyle *bool   `json:"isTrailerStyle"`
	LikesCount     *int    `json:"likesCount"`
}

func (r UpdateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating,
			validation.When(r.Rating != nil,
				validation.Min(1).Error("rating must be between 1 and 5"),
				validation.Max(5).Error("rating must be between 1 and 5"),
			),
		),
		validation.Field(&r.Content, validation.When(r.Content != nil, validation.Length(1, 5000))),
		validation.Field(&r.LikesCount, validation.When(r.LikesCount != nil, validation.Min(0))),
	)
}

func (r UpdateReviewRequest) Patch() ReviewPatch {
	return ReviewPatch{
		Rating:         r.Rating,
		Title:          r.Title,
		Content:        r.Content,
		IsTrailerStyle: r.IsTrailerStyle,
		LikesCount:     r.LikesCount,
	}
}
