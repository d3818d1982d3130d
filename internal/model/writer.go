package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const MaxWriterNameLength = 100

type Writer struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"size:100;not null;uniqueIndex"`
	BirthDate *time.Time `json:"birth_date,omitempty" gorm:"type:date"`
	Books     []Book     `json:"books,omitempty" gorm:"foreignKey:WriterID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

func (w Writer) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Name, validation.Required, validation.By(notBlank), validation.RuneLength(1, MaxWriterNameLength)),
	)
}
