package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AddUserBookRequest adds a catalog book to the caller's library.
type AddUserBookRequest struct {
	BookID      int        `json:"bookId" binding:"required"`
	Status      Status     `json:"status" binding:"required"`
	CurrentPage int        `json:"currentPage"`
	StartedAt   *time.Time `json:"startedAt"`
	Rating      *int       `json:"rating"`
}

func (r AddUserBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required.Error("bookId is required"), validation.Min(1)),
		validation.Field(&r.Status,
			validation.Required.Error("status is required"),
			validation.By(validStatus),
		),
		validation.Field(&r.CurrentPage, validation.Min(0).Error("currentPage must not be negative")),
		validation.Field(&r.Rating,
			validation.When(r.Rating != nil, validation.Min(1), validation.Max(5)),
		),
	)
}

// NewUserBook converts the request into a store insert for the given user.
func (r AddUserBookRequest) NewUserBook(userID int) NewUserBook {
	return NewUserBook{
		UserID:      userID,
		BookID:      r.BookID,
		Status:      r.Status,
		CurrentPage: r.CurrentPage,
		StartedAt:   r.StartedAt,
		Rating:      r.Rating,
	}
}

// UpdateUserBookRequest patches a library entry (progress updates and
// status transitions).
type UpdateUserBookRequest struct {
	Status      *Status    `json:"status"`
	CurrentPage *int       `json:"currentPage"`
	StartedAt   *time.Time `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Rating      *int       `json:"rating"`
}

func (r UpdateUserBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.When(r.Status != nil, validation.By(validStatus))),
		validation.Field(&r.CurrentPage,
			validation.When(r.CurrentPage != nil, validation.Min(0).Error("currentPage must not be negative")),
		),
		validation.Field(&r.Rating,
			validation.When(r.Rating != nil, validation.Min(1), validation.Max(5)),
		),
	)
}

func (r UpdateUserBookRequest) Patch() UserBookPatch {
	return UserBookPatch{
		Status:      r.Status,
		CurrentPage: r.CurrentPage,
		StartedAt:   r.StartedAt,
		CompletedAt: r.CompletedAt,
		Rating:      r.Rating,
	}
}

func validStatus(value interface{}) error {
	var s Status
	switch v := value.(type) {
	case Status:
		s = v
	case *Status:
		if v == nil {
			return nil
		}
		s = *v
	}
	if !s.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}
