package handler

import (
	"github.com/snnyvrz/library-api/internal/model"
)

type BookRequest struct {
	Title           string           `json:"title" binding:"required"`
	Writer          WriterDesignator `json:"writer" binding:"required" swaggertype:"string" example:"Carmen Posadas"`
	PublicationDate *model.Date      `json:"publication_date" swaggertype:"string" example:"2009-03-01"`
}

type PatchBookRequest struct {
	Title           *string           `json:"title" binding:"omitempty,min=1"`
	Writer          *WriterDesignator `json:"writer" binding:"omitempty,min=1" swaggertype:"string"`
	PublicationDate *model.Date       `json:"publication_date" swaggertype:"string" example:"2009-03-01"`
}

type BookResponse struct {
	ID              uint        `json:"id"`
	Title           string      `json:"title"`
	PublicationDate *model.Date `json:"publication_date,omitempty" swaggertype:"string" example:"2009-03-01"`
	Writer          string      `json:"writer"`
	WriterID        uint        `json:"writer_id"`
}

type LinkedBookResponse struct {
	URL             string      `json:"url"`
	ID              uint        `json:"id"`
	Title           string      `json:"title"`
	PublicationDate *model.Date `json:"publication_date,omitempty" swaggertype:"string" example:"2009-03-01"`
	Writer          string      `json:"writer"`
	WriterName      string      `json:"writer_name"`
}
