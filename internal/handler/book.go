package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/repository"
	"github.com/snnyvrz/library-api/internal/validation"
	"gorm.io/gorm"
)

type BookHandler struct {
	repo    repository.BookRepository
	resolve WriterResolver
	present Representation
}

func NewBookHandler(repo repository.BookRepository, resolve WriterResolver, present Representation) *BookHandler {
	return &BookHandler{repo: repo, resolve: resolve, present: present}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	books := r.Group("/books")
	{
		books.GET("/", h.ListBooks)
		books.POST("/", h.CreateBook)
		books.GET("/:id/", h.GetBookByID)
		books.PUT("/:id/", h.ReplaceBook)
		books.PATCH("/:id/", h.UpdateBook)
		books.DELETE("/:id/", h.DeleteBook)
	}
}

// resolveWriter resolves designator into book.WriterID and writes the
// error response when it cannot.
func (h *BookHandler) resolveWriter(c *gin.Context, book *model.Book, designator WriterDesignator) bool {
	value := strings.TrimSpace(string(designator))
	if value == "" {
		validation.AbortWithModelErrors(c, ozzo.Errors{"writer": ozzo.ErrRequired})
		return false
	}

	writer, err := h.resolve.Resolve(c.Request.Context(), value)
	if err != nil {
		if errors.Is(err, errWriterUnresolved) {
			writeError(c, http.StatusBadRequest,
				"WRITER_NOT_FOUND",
				"writer not found",
			)
			return false
		}
		if validation.AbortWithModelErrors(c, err) {
			return false
		}

		writeInternalError(c, err,
			"WRITER_RESOLVE_FAILED",
			"failed to resolve writer",
		)
		return false
	}

	book.WriterID = writer.ID
	book.Writer = *writer
	return true
}

func (h *BookHandler) writeStoreError(c *gin.Context, err error, op, verb string) {
	if validation.AbortWithModelErrors(c, err) {
		return
	}

	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		// the writer was deleted after it was resolved
		writeError(c, http.StatusBadRequest,
			"WRITER_NOT_FOUND",
			"writer not found",
		)
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeError(c, http.StatusNotFound,
			"BOOK_NOT_FOUND",
			"book not found",
		)
	default:
		writeInternalError(c, err,
			"BOOK_"+op+"_FAILED",
			"failed to "+verb+" book",
		)
	}
}

func (h *BookHandler) findBook(c *gin.Context) (*model.Book, bool) {
	id, ok := parseID(c, "BOOK_NOT_FOUND", "book not found")
	if !ok {
		return nil, false
	}

	book, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"BOOK_NOT_FOUND",
				"book not found",
			)
			return nil, false
		}

		writeInternalError(c, err,
			"BOOK_FETCH_FAILED",
			"failed to fetch book",
		)
		return nil, false
	}

	return book, true
}

// ListBooks godoc
// @Summary      List books
// @Description  Get all books ordered by id
// @Tags         books
// @Produce      json
// @Success      200  {array}   BookResponse
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /api/books/ [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.repo.List(c.Request.Context())
	if err != nil {
		writeInternalError(c, err,
			"BOOK_LIST_FAILED",
			"failed to fetch books",
		)
		return
	}

	c.JSON(http.StatusOK, renderBooks(c, h.present, books))
}

// CreateBook godoc
// @Summary      Create a book
// @Description  Create a book. Under /api the writer is a name and is created when unknown;
// @Description  under /api/linked it is a writer id or URL and must exist.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        payload  body      BookRequest               true  "Book to create"
// @Success      201      {object}  BookResponse
// @Failure      400      {object}  validation.ErrorResponse  "Validation error or unknown writer"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /api/books/ [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req BookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	book := model.Book{
		Title:           strings.TrimSpace(req.Title),
		PublicationDate: req.PublicationDate.TimePtr(),
	}

	// checked before resolving so a rejected book never creates a writer
	if validation.AbortWithModelErrors(c, book.Validate()) {
		return
	}

	if !h.resolveWriter(c, &book, req.Writer) {
		return
	}

	ctx := c.Request.Context()

	if err := h.repo.Create(ctx, &book); err != nil {
		h.writeStoreError(c, err, "CREATE", "create")
		return
	}

	created, err := h.repo.FindByID(ctx, book.ID)
	if err != nil {
		writeInternalError(c, err,
			"BOOK_FETCH_FAILED",
			"failed to fetch created book",
		)
		return
	}

	c.JSON(http.StatusCreated, h.present.Book(c, *created))
}

// GetBookByID godoc
// @Summary      Get a book by ID
// @Tags         books
// @Produce      json
// @Param        id   path      int                       true  "Book ID"
// @Success      200  {object}  BookResponse
// @Failure      404  {object}  validation.ErrorResponse  "Book not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /api/books/{id}/ [get]
func (h *BookHandler) GetBookByID(c *gin.Context) {
	book, ok := h.findBook(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.present.Book(c, *book))
}

// ReplaceBook godoc
// @Summary      Replace a book
// @Description  Replace title, writer and publication date of a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Book ID"
// @Param        payload  body      BookRequest               true  "New book fields"
// @Success      200      {object}  BookResponse
// @Failure      400      {object}  validation.ErrorResponse  "Validation error or unknown writer"
// @Failure      404      {object}  validation.ErrorResponse  "Book not found"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /api/books/{id}/ [put]
func (h *BookHandler) ReplaceBook(c *gin.Context) {
	book, ok := h.findBook(c)
	if !ok {
		return
	}

	var req BookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	book.Title = strings.TrimSpace(req.Title)
	book.PublicationDate = req.PublicationDate.TimePtr()

	if validation.AbortWithModelErrors(c, book.Validate()) {
		return
	}

	if !h.resolveWriter(c, book, req.Writer) {
		return
	}

	h.saveAndRender(c, book)
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  Partially update a book; a provided writer is resolved like on create
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Book ID"
// @Param        payload  body      PatchBookRequest          true  "Fields to update"
// @Success      200      {object}  BookResponse
// @Failure      400      {object}  validation.ErrorResponse  "Validation error or unknown writer"
// @Failure      404      {object}  validation.ErrorResponse  "Book not found"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /api/books/{id}/ [patch]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	book, ok := h.findBook(c)
	if !ok {
		return
	}

	var req PatchBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.Title == nil && req.Writer == nil && req.PublicationDate == nil {
		writeError(c, http.StatusBadRequest,
			"NO_FIELDS_TO_UPDATE",
			"at least one field must be provided to update",
		)
		return
	}

	if req.Title != nil {
		book.Title = strings.TrimSpace(*req.Title)
	}
	if req.PublicationDate != nil {
		book.PublicationDate = req.PublicationDate.TimePtr()
	}

	if validation.AbortWithModelErrors(c, book.Validate()) {
		return
	}

	if req.Writer != nil && !h.resolveWriter(c, book, *req.Writer) {
		return
	}

	h.saveAndRender(c, book)
}

func (h *BookHandler) saveAndRender(c *gin.Context, book *model.Book) {
	ctx := c.Request.Context()

	if err := h.repo.Update(ctx, book); err != nil {
		h.writeStoreError(c, err, "UPDATE", "update")
		return
	}

	updated, err := h.repo.FindByID(ctx, book.ID)
	if err != nil {
		writeInternalError(c, err,
			"BOOK_FETCH_FAILED",
			"failed to fetch updated book",
		)
		return
	}

	c.JSON(http.StatusOK, h.present.Book(c, *updated))
}

// DeleteBook godoc
// @Summary      Delete a book
// @Description  Delete a book; its writer is kept
// @Tags         books
// @Produce      json
// @Param        id   path      int                       true  "Book ID"
// @Success      204  "No Content"
// @Failure      404  {object}  validation.ErrorResponse  "Book not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /api/books/{id}/ [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c, "BOOK_NOT_FOUND", "book not found")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.writeStoreError(c, err, "DELETE", "delete")
		return
	}

	c.Status(http.StatusNoContent)
}
