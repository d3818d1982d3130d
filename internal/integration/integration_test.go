//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/library-api/internal/config"
	"github.com/snnyvrz/library-api/internal/db"
	"github.com/snnyvrz/library-api/internal/server"
	"gorm.io/gorm"
)

var (
	testDB     *gorm.DB
	testRouter *gin.Engine
)

func TestMain(m *testing.M) {
	cfg := &config.Config{
		GinMode:   gin.TestMode,
		TZ:        os.Getenv("TZ"),
		DBDriver:  config.DriverPostgres,
		DBHost:    os.Getenv("POSTGRES_HOST"),
		DBPort:    os.Getenv("POSTGRES_PORT"),
		DBUser:    os.Getenv("POSTGRES_USER"),
		DBPass:    os.Getenv("POSTGRES_PASSWORD"),
		DBName:    os.Getenv("POSTGRES_DB"),
		DBSSLMode: "disable",
	}
	if cfg.TZ == "" {
		cfg.TZ = "UTC"
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}
	testDB = gdb

	if err := db.Migrate(gdb); err != nil {
		panic("failed to migrate: " + err.Error())
	}

	gin.SetMode(gin.TestMode)
	testRouter = server.NewRouter(gdb, server.Options{Version: "integration", StartTime: time.Now()})

	os.Exit(m.Run())
}

func resetDB(t *testing.T) {
	t.Helper()
	sqlDB, err := testDB.DB()
	if err != nil {
		t.Fatalf("get sql.DB failed: %v", err)
	}
	_, err = sqlDB.Exec("TRUNCATE TABLE books, writers RESTART IDENTITY CASCADE;")
	if err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
}

func postJSON(t *testing.T, client *http.Client, url string, payload any) *http.Response {
	t.Helper()

	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

type writerBody struct {
	URL  string `json:"url"`
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type bookBody struct {
	URL        string `json:"url"`
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Writer     any    `json:"writer"`
	WriterID   uint   `json:"writer_id"`
	WriterName string `json:"writer_name"`
}

func TestCreateWriterAndBook_Integration(t *testing.T) {
	resetDB(t)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()
	client := srv.Client()

	resp := postJSON(t, client, srv.URL+"/api/writers/", map[string]any{"name": "Carmen Posadas"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var writer writerBody
	decode(t, resp, &writer)

	resp = postJSON(t, client, srv.URL+"/api/books/", map[string]any{
		"title":  "La leyenda de la peregrina",
		"writer": "Carmen Posadas",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var book bookBody
	decode(t, resp, &book)

	if book.WriterID != writer.ID {
		t.Errorf("expected writer_id=%d, got %d", writer.ID, book.WriterID)
	}

	resp, err := client.Get(fmt.Sprintf("%s/api/books/%d/", srv.URL, book.ID))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var fetched bookBody
	decode(t, resp, &fetched)

	if fetched.Title != "La leyenda de la peregrina" || fetched.Writer != "Carmen Posadas" {
		t.Errorf("unexpected book %+v", fetched)
	}
}

func TestDuplicateWriterName_Integration(t *testing.T) {
	resetDB(t)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()
	client := srv.Client()

	resp := postJSON(t, client, srv.URL+"/api/writers/", map[string]any{"name": "Robert Menasse"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	resp = postJSON(t, client, srv.URL+"/api/writers/", map[string]any{"name": "Robert Menasse"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestConcurrentUpsert_Integration(t *testing.T) {
	resetDB(t)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()
	client := srv.Client()

	const n = 8
	var wg sync.WaitGroup
	ids := make([]uint, n)
	codes := make([]int, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			b, _ := json.Marshal(map[string]any{
				"title":  fmt.Sprintf("Book %d", i),
				"writer": "Luis García Rey",
			})
			resp, err := client.Post(srv.URL+"/api/books/", "application/json", bytes.NewReader(b))
			if err != nil {
				return
			}
			defer resp.Body.Close()

			codes[i] = resp.StatusCode
			var book bookBody
			if json.NewDecoder(resp.Body).Decode(&book) == nil {
				ids[i] = book.WriterID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if codes[i] != http.StatusCreated {
			t.Fatalf("request %d: expected 201, got %d", i, codes[i])
		}
		if ids[i] != ids[0] {
			t.Errorf("request %d: expected writer %d, got %d", i, ids[0], ids[i])
		}
	}

	var count int64
	testDB.Table("writers").Where("name = ?", "Luis García Rey").Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one writer, got %d", count)
	}
}

func TestLinkedBookByURL_Integration(t *testing.T) {
	resetDB(t)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()
	client := srv.Client()

	resp := postJSON(t, client, srv.URL+server.LinkedPrefix+"/writers/", map[string]any{"name": "Carmen Posadas"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var writer writerBody
	decode(t, resp, &writer)

	if writer.URL == "" {
		t.Fatalf("expected writer url in response")
	}

	resp = postJSON(t, client, srv.URL+server.LinkedPrefix+"/books/", map[string]any{
		"title":  "The Capital",
		"writer": writer.URL,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var book bookBody
	decode(t, resp, &book)

	if book.Writer != writer.URL || book.WriterName != "Carmen Posadas" {
		t.Errorf("unexpected book %+v", book)
	}

	resp = postJSON(t, client, srv.URL+server.LinkedPrefix+"/books/", map[string]any{
		"title":  "Ghost Writer Book",
		"writer": 999,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown writer, got %d", resp.StatusCode)
	}
}

func TestDeleteWriterCascades_Integration(t *testing.T) {
	resetDB(t)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()
	client := srv.Client()

	resp := postJSON(t, client, srv.URL+"/api/books/", map[string]any{
		"title":  "Refactoring",
		"writer": "Martin Fowler",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var book bookBody
	decode(t, resp, &book)

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/writers/%d/", srv.URL, book.WriterID), nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	resp, err = client.Get(fmt.Sprintf("%s/api/books/%d/", srv.URL, book.ID))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after cascade, got %d", resp.StatusCode)
	}
}
