package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/snnyvrz/library-api/internal/db"
	"github.com/snnyvrz/library-api/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB returns a migrated in-memory SQLite database private to t.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb := open(t, "testdb_")

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return gdb
}

// NewUnmigratedDB returns a database without tables, so every query fails.
func NewUnmigratedDB(t *testing.T) *gorm.DB {
	t.Helper()

	return open(t, "errdb_")
}

func open(t *testing.T, prefix string) *gorm.DB {
	t.Helper()

	dsn := "file:" + prefix + uuid.New().String() + "?mode=memory&cache=shared&_foreign_keys=on"

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return gdb
}

func SeedWriter(t *testing.T, gdb *gorm.DB, name string) model.Writer {
	t.Helper()

	writer := model.Writer{Name: name}
	if err := gdb.Create(&writer).Error; err != nil {
		t.Fatalf("failed to seed writer %q: %v", name, err)
	}

	return writer
}

func SeedBook(t *testing.T, gdb *gorm.DB, writer model.Writer, title string) model.Book {
	t.Helper()

	book := model.Book{
		Title:    title,
		WriterID: writer.ID,
	}
	if err := gdb.Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book %q: %v", title, err)
	}
	book.Writer = writer

	return book
}

func CountWriters(t *testing.T, gdb *gorm.DB, name string) int64 {
	t.Helper()

	var n int64
	if err := gdb.Model(&model.Writer{}).Where("name = ?", name).Count(&n).Error; err != nil {
		t.Fatalf("failed to count writers named %q: %v", name, err)
	}
	return n
}
