package testutil

import (
	"testing"

	"github.com/smith3v/tg-phrase-reminder/pkg/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func SetupTestDB(t *testing.T) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	db.DB = gdb

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to access underlying DB: %v", err)
	}
	// Reminder fan-out writes from several goroutines; one connection keeps
	// the shared in-memory database from reporting table locks.
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}
		db.DB = nil
	})
}

// SeedSettings stores a settings row as-is, bypassing the wizard.
func SeedSettings(t *testing.T, settings db.UserSettings) {
	t.Helper()
	if _, err := db.ResetSettings(settings); err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}
}

func SeedWords(t *testing.T, userID int64, words ...string) {
	t.Helper()
	for _, word := range words {
		if _, err := db.InsertWord(&db.WordEntry{UserID: userID, Word: word}); err != nil {
			t.Fatalf("failed to seed word %q: %v", word, err)
		}
	}
}
