package handler

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/repository"
	"gorm.io/gorm"
)

var errWriterUnresolved = errors.New("writer not found")

// WriterResolver turns the writer value of a book payload into a stored
// writer.
type WriterResolver interface {
	Resolve(ctx context.Context, designator string) (*model.Writer, error)
}

// NameResolver treats the designator as a writer name and creates the
// writer when no writer has exactly that name.
type NameResolver struct {
	writers repository.WriterRepository
}

func NewNameResolver(writers repository.WriterRepository) *NameResolver {
	return &NameResolver{writers: writers}
}

func (r *NameResolver) Resolve(ctx context.Context, designator string) (*model.Writer, error) {
	writer, created, err := r.writers.GetOrCreateByName(ctx, designator)
	if err != nil {
		return nil, err
	}
	if created {
		log.Debug().Uint("writer_id", writer.ID).Str("name", writer.Name).Msg("writer created from book payload")
	}
	return writer, nil
}

// ReferenceResolver accepts a writer id or the URL of one of the writer
// resources mounted under prefix, and never creates writers.
type ReferenceResolver struct {
	writers    repository.WriterRepository
	collection string
}

func NewReferenceResolver(writers repository.WriterRepository, prefix string) *ReferenceResolver {
	return &ReferenceResolver{
		writers:    writers,
		collection: strings.TrimSuffix(prefix, "/") + "/writers/",
	}
}

func (r *ReferenceResolver) Resolve(ctx context.Context, designator string) (*model.Writer, error) {
	id, ok := parseWriterReference(designator, r.collection)
	if !ok {
		return nil, errWriterUnresolved
	}

	writer, err := r.writers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errWriterUnresolved
		}
		return nil, err
	}
	return writer, nil
}

// parseWriterReference accepts a bare id such as "7", or a URL whose path
// is collection followed by the id, e.g. "http://host/api/linked/writers/7/"
// for collection "/api/linked/writers/".
func parseWriterReference(designator, collection string) (uint, bool) {
	s := strings.TrimSpace(designator)
	if s == "" {
		return 0, false
	}

	if id, ok := parsePositiveID(s); ok {
		return id, true
	}

	u, err := url.Parse(s)
	if err != nil || u.RawQuery != "" || u.Fragment != "" {
		return 0, false
	}

	rest, found := strings.CutPrefix(u.Path, collection)
	if !found {
		return 0, false
	}
	return parsePositiveID(strings.TrimSuffix(rest, "/"))
}
