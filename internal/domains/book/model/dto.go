package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateBookRequest inserts a catalog record.
type CreateBookRequest struct {
	Title         string   `json:"title" binding:"required"`
	Author        string   `json:"author" binding:"required"`
	ISBN          *string  `json:"isbn"`
	CoverImage    *string  `json:"coverImage"`
	Description   *string  `json:"description"`
	TotalPages    int      `json:"totalPages" binding:"required"`
	PublishedYear *int     `json:"publishedYear"`
	Genres        []string `json:"genres"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required"), validation.Length(1, 500)),
		validation.Field(&r.Author, validation.Required.Error("author is required"), validation.Length(1, 200)),
		validation.Field(&r.TotalPages,
			validation.Required.Error("totalPages is required"),
			validation.Min(1).Error("totalPages must be at least 1"),
		),
		validation.Field(&r.PublishedYear,
			validation.When(r.PublishedYear != nil,
				validation.Min(1000), validation.Max(time.Now().Year()+1),
			),
		),
		validation.Field(&r.CoverImage,
			validation.When(r.CoverImage != nil, is.URL.Error("coverImage must be a URL")),
		),
		validation.Field(&r.Genres, validation.Each(validation.Length(1, 100))),
	)
}

// NewBook converts the request into a store insert.
func (r CreateBookRequest) NewBook() NewBook {
	return NewBook{
		Title:         r.Title,
		Author:        r.Author,
		ISBN:          r.ISBN,
		CoverImage:    r.CoverImage,
		Description:   r.Description,
		TotalPages:    r.TotalPages,
		PublishedYear: r.PublishedYear,
		Genres:        r.Genres,
	}
}

// UpdateBookRequest patches a catalog record.
type UpdateBookRequest struct {
	Title         *string   `json:"title"`
	Author        *string   `json:"author"`
	ISBN          *string   `json:"isbn"`
	CoverImage    *string   `json:"coverImage"`
	Description   *string   `json:"description"`
	TotalPages    *int      `json:"totalPages"`
	PublishedYear *int      `json:"publishedYear"`
	Genres        *[]string `json:"genres"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.When(r.Title != nil, validation.Length(1, 500))),
		validation.Field(&r.Author, validation.When(r.Author != nil, validation.Length(1, 200))),
		validation.Field(&r.TotalPages,
			validation.When(r.TotalPages != nil, validation.Min(1).Error("totalPages must be at least 1")),
		),
	)
}

func (r UpdateBookRequest) Patch() BookPatch {
	return BookPatch{
		Title:         r.Title,
		Author:        r.Author,
		ISBN:          r.ISBN,
		CoverImage:    r.CoverImage,
		Description:   r.Description,
		TotalPages:    r.TotalPages,
		PublishedYear: r.PublishedYear,
		Genres:        r.Genres,
	}
}
