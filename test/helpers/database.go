package helpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/andrescamacho/starfleet-go/internal/infrastructure/database"
)

// NewTestDB opens a private in-memory SQLite database with the users,
// sessions and ships tables, closed when the test ends
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.NewTestConnection()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	return db
}
