package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-api/internal/middleware"
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/repository"
	"github.com/snnyvrz/library-api/internal/validation"
	"gorm.io/gorm"
)

const linkedPrefix = "/api/linked"

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.RegisterJSONFieldNames()

	r := gin.New()
	r.Use(middleware.RequestID())
	return r
}

func setupRouterWithRepos(writerRepo repository.WriterRepository, bookRepo repository.BookRepository) *gin.Engine {
	r := newTestEngine()

	api := r.Group("/api")
	NewWriterHandler(writerRepo, PlainRepresentation{}).RegisterRoutes(api)
	NewBookHandler(bookRepo, NewNameResolver(writerRepo), PlainRepresentation{}).RegisterRoutes(api)

	linked := r.Group(linkedPrefix)
	rep := NewLinkedRepresentation(linkedPrefix)
	NewWriterHandler(writerRepo, rep).RegisterRoutes(linked)
	NewBookHandler(bookRepo, NewReferenceResolver(writerRepo, linkedPrefix), rep).RegisterRoutes(linked)

	NewCatalogHandler(bookRepo, writerRepo).RegisterRoutes(r.Group("/library"))

	return r
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	return setupRouterWithRepos(
		repository.NewWriterRepository(db),
		repository.NewGormBookRepository(db),
	)
}

// doJSON sends body as JSON; a string body is sent verbatim.
func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()

	if w.Code != status {
		t.Fatalf("expected status %d, got %d, body=%s", status, w.Code, w.Body.String())
	}
}

func expectErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) validation.ErrorResponse {
	t.Helper()

	expectStatus(t, w, status)
	resp := decodeBody[validation.ErrorResponse](t, w)
	if resp.Code != code {
		t.Fatalf("expected error code %s, got %q (body=%s)", code, resp.Code, w.Body.String())
	}
	return resp
}

type fakeWriterRepo struct {
	CreateFn            func(ctx context.Context, w *model.Writer) error
	FindByIDFn          func(ctx context.Context, id uint) (*model.Writer, error)
	ListFn              func(ctx context.Context) ([]model.Writer, error)
	UpdateFn            func(ctx context.Context, w *model.Writer) error
	DeleteFn            func(ctx context.Context, id uint) error
	GetOrCreateByNameFn func(ctx context.Context, name string) (*model.Writer, bool, error)
}

func (f *fakeWriterRepo) Create(ctx context.Context, w *model.Writer) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, w)
	}
	return nil
}

func (f *fakeWriterRepo) FindByID(ctx context.Context, id uint) (*model.Writer, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWriterRepo) List(ctx context.Context) ([]model.Writer, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	return nil, nil
}

func (f *fakeWriterRepo) Update(ctx context.Context, w *model.Writer) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, w)
	}
	return nil
}

func (f *fakeWriterRepo) Delete(ctx context.Context, id uint) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

func (f *fakeWriterRepo) GetOrCreateByName(ctx context.Context, name string) (*model.Writer, bool, error) {
	if f.GetOrCreateByNameFn != nil {
		return f.GetOrCreateByNameFn(ctx, name)
	}
	return &model.Writer{ID: 1, Name: name}, true, nil
}

type fakeBookRepo struct {
	CreateFn   func(ctx context.Context, b *model.Book) error
	FindByIDFn func(ctx context.Context, id uint) (*model.Book, error)
	ListFn     func(ctx context.Context) ([]model.Book, error)
	UpdateFn   func(ctx context.Context, b *model.Book) error
	DeleteFn   func(ctx context.Context, id uint) error
}

func (f *fakeBookRepo) Create(ctx context.Context, b *model.Book) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, b)
	}
	return nil
}

func (f *fakeBookRepo) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBookRepo) List(ctx context.Context) ([]model.Book, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	return nil, nil
}

func (f *fakeBookRepo) Update(ctx context.Context, b *model.Book) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, b)
	}
	return nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id uint) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}
