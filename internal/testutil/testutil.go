package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/pratik-mahalle/freelancehub/internal/db"
	"github.com/pratik-mahalle/freelancehub/internal/gateway"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
	"github.com/pratik-mahalle/freelancehub/migrations"
)

// NewTestDB creates a migrated in-memory SQLite database for testing
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// every connection to :memory: is a separate database
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if _, err := db.Migrate(context.Background(), conn, "sqlite", migrations.GetFS(), logger.Nop()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return conn
}

// NewTestStore returns a SQL gateway over a fresh test database
func NewTestStore(t *testing.T) *gateway.SQLStore {
	t.Helper()
	return gateway.NewSQLStore(NewTestDB(t), "sqlite", logger.Nop())
}

// NewTestLogger returns a logger that only prints errors
func NewTestLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

// FixedClock returns a clock frozen at t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
