package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-api/internal/repository"
)

type CatalogBook struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

type CatalogAuthor struct {
	Name string `json:"name"`
}

// CatalogHandler serves the read-only listings of the library.
type CatalogHandler struct {
	books   repository.BookRepository
	writers repository.WriterRepository
}

func NewCatalogHandler(books repository.BookRepository, writers repository.WriterRepository) *CatalogHandler {
	return &CatalogHandler{books: books, writers: writers}
}

func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/books", h.ListBooks)
	r.GET("/authors", h.ListAuthors)
}

// ListBooks godoc
// @Summary      Catalog of books
// @Description  Every book title with its author's name
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   CatalogBook
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /library/books [get]
func (h *CatalogHandler) ListBooks(c *gin.Context) {
	books, err := h.books.List(c.Request.Context())
	if err != nil {
		writeInternalError(c, err,
			"BOOK_LIST_FAILED",
			"failed to fetch books",
		)
		return
	}

	res := make([]CatalogBook, 0, len(books))
	for _, b := range books {
		res = append(res, CatalogBook{Title: b.Title, Author: b.Writer.Name})
	}

	c.JSON(http.StatusOK, res)
}

// ListAuthors godoc
// @Summary      Catalog of authors
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   CatalogAuthor
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /library/authors [get]
func (h *CatalogHandler) ListAuthors(c *gin.Context) {
	writers, err := h.writers.List(c.Request.Context())
	if err != nil {
		writeInternalError(c, err,
			"WRITER_LIST_FAILED",
			"failed to list writers",
		)
		return
	}

	res := make([]CatalogAuthor, 0, len(writers))
	for _, w := range writers {
		res = append(res, CatalogAuthor{Name: w.Name})
	}

	c.JSON(http.StatusOK, res)
}
