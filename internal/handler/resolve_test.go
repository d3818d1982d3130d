package handler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/snnyvrz/library-api/internal/model"
	"github.com/snnyvrz/library-api/internal/repository"
	"github.com/snnyvrz/library-api/internal/testutil"
)

func TestParseWriterReference(t *testing.T) {
	const collection = linkedPrefix + "/writers/"

	cases := []struct {
		in   string
		want uint
		ok   bool
	}{
		{"7", 7, true},
		{" 12 ", 12, true},
		{"/api/linked/writers/7/", 7, true},
		{"/api/linked/writers/7", 7, true},
		{"http://example.com/api/linked/writers/42/", 42, true},
		{"https://library.test/api/linked/writers/3/", 3, true},
		{"0", 0, false},
		{"", 0, false},
		{"Carmen Posadas", 0, false},
		{"http://example.com/api/writers/7/", 0, false},
		{"http://x/books/writers/7", 0, false},
		{"http://example.com/api/linked/books/7/", 0, false},
		{"http://example.com/api/linked/writers/abc/", 0, false},
		{"http://example.com/api/linked/writers/0/", 0, false},
		{"http://example.com/api/linked/writers/7/books/", 0, false},
		{"http://example.com/api/linked/writers/7/?x=1", 0, false},
		{"http://example.com/other/api/linked/writers/7/", 0, false},
	}

	for _, tc := range cases {
		got, ok := parseWriterReference(tc.in, collection)
		if ok != tc.ok || got != tc.want {
			t.Errorf("parseWriterReference(%q) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestWriterDesignator_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		raw     string
		want    WriterDesignator
		wantErr bool
	}{
		{`"Carmen Posadas"`, "Carmen Posadas", false},
		{`17`, "17", false},
		{`null`, "", false},
		{`true`, "", true},
		{`{"id":1}`, "", true},
	}

	for _, tc := range cases {
		var d WriterDesignator
		err := json.Unmarshal([]byte(tc.raw), &d)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%s: expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.raw, err)
			continue
		}
		if d != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.raw, tc.want, d)
		}
	}
}

func TestNameResolver_IsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	resolver := NewNameResolver(repository.NewWriterRepository(db))
	ctx := context.Background()

	first, err := resolver.Resolve(ctx, "Robert Menasse")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	second, err := resolver.Resolve(ctx, "Robert Menasse")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected the same writer, got %d and %d", first.ID, second.ID)
	}
	if n := testutil.CountWriters(t, db, "Robert Menasse"); n != 1 {
		t.Errorf("expected one writer, got %d", n)
	}
}

func TestReferenceResolver(t *testing.T) {
	db := testutil.NewTestDB(t)
	writer := testutil.SeedWriter(t, db, "Carmen Posadas")
	resolver := NewReferenceResolver(repository.NewWriterRepository(db), linkedPrefix)
	ctx := context.Background()

	got, err := resolver.Resolve(ctx, "http://example.com/api/linked/writers/1/")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got.ID != writer.ID || got.Name != "Carmen Posadas" {
		t.Errorf("unexpected writer %+v", got)
	}

	if _, err := resolver.Resolve(ctx, "999"); !errors.Is(err, errWriterUnresolved) {
		t.Errorf("expected errWriterUnresolved, got %v", err)
	}
}

func TestReferenceResolver_StoreError(t *testing.T) {
	boom := errors.New("db down")
	resolver := NewReferenceResolver(&fakeWriterRepo{
		FindByIDFn: func(ctx context.Context, id uint) (*model.Writer, error) {
			return nil, boom
		},
	}, linkedPrefix)

	if _, err := resolver.Resolve(context.Background(), "1"); !errors.Is(err, boom) {
		t.Errorf("expected store error to pass through, got %v", err)
	}
}
