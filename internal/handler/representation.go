package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-api/internal/model"
)

// Representation renders stored writers and books for one API variant.
type Representation interface {
	Writer(c *gin.Context, w model.Writer) any
	Book(c *gin.Context, b model.Book) any
}

// PlainRepresentation identifies a book's writer by name and id.
type PlainRepresentation struct{}

func (PlainRepresentation) Writer(_ *gin.Context, w model.Writer) any {
	return WriterResponse{
		ID:        w.ID,
		Name:      w.Name,
		BirthDate: model.DateOf(w.BirthDate),
	}
}

func (PlainRepresentation) Book(_ *gin.Context, b model.Book) any {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		PublicationDate: model.DateOf(b.PublicationDate),
		Writer:          b.Writer.Name,
		WriterID:        b.WriterID,
	}
}

// LinkedRepresentation identifies resources by absolute URL under prefix,
// and adds the writer's name next to a book's writer URL.
type LinkedRepresentation struct {
	prefix string
}

func NewLinkedRepresentation(prefix string) LinkedRepresentation {
	return LinkedRepresentation{prefix: prefix}
}

func (r LinkedRepresentation) Writer(c *gin.Context, w model.Writer) any {
	return LinkedWriterResponse{
		URL:       r.url(c, "writers", w.ID),
		ID:        w.ID,
		Name:      w.Name,
		BirthDate: model.DateOf(w.BirthDate),
	}
}

func (r LinkedRepresentation) Book(c *gin.Context, b model.Book) any {
	return LinkedBookResponse{
		URL:             r.url(c, "books", b.ID),
		ID:              b.ID,
		Title:           b.Title,
		PublicationDate: model.DateOf(b.PublicationDate),
		Writer:          r.url(c, "writers", b.WriterID),
		WriterName:      b.Writer.Name,
	}
}

func (r LinkedRepresentation) url(c *gin.Context, collection string, id uint) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return fmt.Sprintf("%s://%s%s/%s/%d/", scheme, c.Request.Host, r.prefix, collection, id)
}

func renderWriters(c *gin.Context, present Representation, writers []model.Writer) []any {
	res := make([]any, 0, len(writers))
	for _, w := range writers {
		res = append(res, present.Writer(c, w))
	}
	return res
}

func renderBooks(c *gin.Context, present Representation, books []model.Book) []any {
	res := make([]any, 0, len(books))
	for _, b := range books {
		res = append(res, present.Book(c, b))
	}
	return res
}
