package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const MaxBookTitleLength = 200

type Book struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Title           string     `json:"title" gorm:"size:200;not null"`
	PublicationDate *time.Time `json:"publication_date,omitempty" gorm:"type:date"`
	WriterID        uint       `json:"writer" gorm:"not null;index"`
	Writer          Writer     `json:"-"`
	CreatedAt       time.Time  `json:"-"`
	UpdatedAt       time.Time  `json:"-"`
}

// Validate checks the book's own fields. The writer reference is enforced
// by the foreign key.
func (b Book) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Title, validation.Required, validation.By(notBlank), validation.RuneLength(1, MaxBookTitleLength)),
	)
}
