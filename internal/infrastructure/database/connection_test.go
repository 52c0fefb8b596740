package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"

	"github.com/andrescamacho/starfleet-go/internal/infrastructure/config"
)

func TestSqliteDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
		want string
	}{
		{"empty path", config.DatabaseConfig{}, ":memory:"},
		{"memory ignores timeout", config.DatabaseConfig{Path: ":memory:", BusyTimeout: time.Second}, ":memory:"},
		{"file without timeout", config.DatabaseConfig{Path: "starfleet.db"}, "starfleet.db"},
		{"file with timeout", config.DatabaseConfig{Path: "starfleet.db", BusyTimeout: 5 * time.Second}, "starfleet.db?_busy_timeout=5000"},
		{"existing query", config.DatabaseConfig{Path: "file:fleet.db?cache=shared", BusyTimeout: time.Second}, "file:fleet.db?cache=shared&_busy_timeout=1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDSN(&tt.cfg))
		})
	}
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, logLevel(""))
	assert.Equal(t, logger.Silent, logLevel("silent"))
	assert.Equal(t, logger.Warn, logLevel("warn"))
	assert.Equal(t, logger.Info, logLevel("info"))
}

func TestNewTestConnection_Migrates(t *testing.T) {
	db, err := NewTestConnection()
	assert.NoError(t, err)
	defer Close(db)

	for _, table := range []string{"users", "sessions", "ships"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
