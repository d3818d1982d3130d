package handler

import (
	"github.com/snnyvrz/library-api/internal/model"
)

type WriterRequest struct {
	Name      string      `json:"name" binding:"required"`
	BirthDate *model.Date `json:"birth_date" swaggertype:"string" example:"1954-08-13"`
}

type PatchWriterRequest struct {
	Name      *string     `json:"name" binding:"omitempty,min=1"`
	BirthDate *model.Date `json:"birth_date" swaggertype:"string" example:"1954-08-13"`
}

type WriterResponse struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	BirthDate *model.Date `json:"birth_date,omitempty" swaggertype:"string" example:"1954-08-13"`
}

type LinkedWriterResponse struct {
	URL       string      `json:"url"`
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	BirthDate *model.Date `json:"birth_date,omitempty" swaggertype:"string" example:"1954-08-13"`
}
