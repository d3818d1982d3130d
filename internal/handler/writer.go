package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/repository"
	"github.com/snnyvrz/library-api/internal/validation"
	"gorm.io/gorm"
)

type WriterHandler struct {
	repo    repository.WriterRepository
	present Representation
}

func NewWriterHandler(repo repository.WriterRepository, present Representation) *WriterHandler {
	return &WriterHandler{repo: repo, present: present}
}

func (h *WriterHandler) RegisterRoutes(r *gin.RouterGroup) {
	writers := r.Group("/writers")
	{
		writers.GET("/", h.ListWriters)
		writers.POST("/", h.CreateWriter)
		writers.GET("/:id/", h.GetWriterByID)
		writers.PUT("/:id/", h.ReplaceWriter)
		writers.PATCH("/:id/", h.UpdateWriter)
		writers.DELETE("/:id/", h.DeleteWriter)
	}
}

// writeStoreError maps a failed write to its response. op names the
// attempted operation in the error code, e.g. CREATE.
func (h *WriterHandler) writeStoreError(c *gin.Context, err error, op, verb string) {
	if validation.AbortWithModelErrors(c, err) {
		return
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		writeError(c, http.StatusConflict,
			"WRITER_NAME_TAKEN",
			"a writer with this name already exists",
		)
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeError(c, http.StatusNotFound,
			"WRITER_NOT_FOUND",
			"writer not found",
		)
	default:
		writeInternalError(c, err,
			"WRITER_"+op+"_FAILED",
			"failed to "+verb+" writer",
		)
	}
}

func (h *WriterHandler) findWriter(c *gin.Context) (*model.Writer, bool) {
	id, ok := parseID(c, "WRITER_NOT_FOUND", "writer not found")
	if !ok {
		return nil, false
	}

	writer, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"WRITER_NOT_FOUND",
				"writer not found",
			)
			return nil, false
		}

		writeInternalError(c, err,
			"WRITER_FETCH_FAILED",
			"failed to fetch writer",
		)
		return nil, false
	}

	return writer, true
}

// ListWriters godoc
// @Summary      List writers
// @Description  Get all writers ordered by id
// @Tags         writers
// @Produce      json
// @Success      200  {array}   WriterResponse
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /api/writers/ [get]
func (h *WriterHandler) ListWriters(c *gin.Context) {
	writers, err := h.repo.List(c.Request.Context())
	if err != nil {
		writeInternalError(c, err,
			"WRITER_LIST_FAILED",
			"failed to list writers",
		)
		return
	}

	c.JSON(http.StatusOK, renderWriters(c, h.present, writers))
}

// CreateWriter godoc
// @Summary      Create a writer
// @Description  Create a new writer with a name and optional birth date
// @Tags         writers
// @Accept       json
// @Produce      json
// @Param        payload  body      WriterRequest             true  "Writer to create"
// @Success      201      {object}  WriterResponse
// @Failure      400      {object}  validation.ErrorResponse  "Validation error"
// @Failure      409      {object}  validation.ErrorResponse  "Name already taken"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /api/writers/ [post]
func (h *WriterHandler) CreateWriter(c *gin.Context) {
	var req WriterRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	writer := model.Writer{
		Name:      strings.TrimSpace(req.Name),
		BirthDate: req.BirthDate.TimePtr(),
	}

	if err := h.repo.Create(c.Request.Context(), &writer); err != nil {
		h.writeStoreError(c, err, "CREATE", "create")
		return
	}

	c.JSON(http.StatusCreated, h.present.Writer(c, writer))
}

// GetWriterByID godoc
// @Summary      Get a writer by ID
// @Tags         writers
// @Produce      json
// @Param        id   path      int                       true  "Writer ID"
// @Success      200  {object}  WriterResponse
// @Failure      404  {object}  validation.ErrorResponse  "Writer not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /api/writers/{id}/ [get]
func (h *WriterHandler) GetWriterByID(c *gin.Context) {
	writer, ok := h.findWriter(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.present.Writer(c, *writer))
}

// ReplaceWriter godoc
// @Summary      Replace a writer
// @Description  Replace every field of a writer; an omitted birth date is cleared
// @Tags         writers
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Writer ID"
// @Param        payload  body      WriterRequest             true  "New writer fields"
// @Success      200      {object}  WriterResponse
// @Failure      400      {object}  validation.ErrorResponse  "Validation error"
// @Failure      404      {object}  validation.ErrorResponse  "Writer not found"
// @Failure      409      {object}  validation.ErrorResponse  "Name already taken"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /api/writers/{id}/ [put]
func (h *WriterHandler) ReplaceWriter(c *gin.Context) {
	writer, ok := h.findWriter(c)
	if !ok {
		return
	}

	var req WriterRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	writer.Name = strings.TrimSpace(req.Name)
	writer.BirthDate = req.BirthDate.TimePtr()

	if err := h.repo.Update(c.Request.Context(), writer); err != nil {
		h.writeStoreError(c, err, "UPDATE", "update")
		return
	}

	c.JSON(http.StatusOK, h.present.Writer(c, *writer))
}

// UpdateWriter godoc
// @Summary      Update a writer
// @Description  Partially update a writer; an empty birth_date string clears it
// @Tags         writers
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Writer ID"
// @Param        payload  body      PatchWriterRequest        true  "Writer fields to update"
// @Success      200      {object}  WriterResponse
// @Failure      400      {object}  validation.ErrorResponse  "Validation error"
// @Failure      404      {object}  validation.ErrorResponse  "Writer not found"
// @Failure      409      {object}  validation.ErrorResponse  "Name already taken"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /api/writers/{id}/ [patch]
func (h *WriterHandler) UpdateWriter(c *gin.Context) {
	writer, ok := h.findWriter(c)
	if !ok {
		return
	}

	var req PatchWriterRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.Name == nil && req.BirthDate == nil {
		writeError(c, http.StatusBadRequest,
			"NO_FIELDS_TO_UPDATE",
			"at least one field must be provided to update",
		)
		return
	}

	if req.Name != nil {
		writer.Name = strings.TrimSpace(*req.Name)
	}
	if req.BirthDate != nil {
		writer.BirthDate = req.BirthDate.TimePtr()
	}

	if err := h.repo.Update(c.Request.Context(), writer); err != nil {
		h.writeStoreError(c, err, "UPDATE", "update")
		return
	}

	c.JSON(http.StatusOK, h.present.Writer(c, *writer))
}

// DeleteWriter godoc
// @Summary      Delete a writer
// @Description  Delete a writer and every book that references it
// @Tags         writers
// @Produce      json
// @Param        id   path      int                       true  "Writer ID"
// @Success      204  "No Content"
// @Failure      404  {object}  validation.ErrorResponse  "Writer not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /api/writers/{id}/ [delete]
func (h *WriterHandler) DeleteWriter(c *gin.Context) {
	id, ok := parseID(c, "WRITER_NOT_FOUND", "writer not found")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.writeStoreError(c, err, "DELETE", "delete")
		return
	}

	c.Status(http.StatusNoContent)
}
