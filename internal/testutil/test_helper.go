// Package testutil provides test database bootstrap and in-memory fakes.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/mcwaffles/concord/internal/database/migrations"
)

func ProjectRoot() string {
	_, file, _, _ := runtime.Caller(0)
	root := filepath.Join(filepath.Dir(file), "../../")
	return root
}

// DBInit connects to the test database and resets it to a freshly migrated
// schema. Skips the test when TEST_DB_URL is not set.
func DBInit(t *testing.T) *pgxpool.Pool {
	t.Helper()

	_ = godotenv.Load(filepath.Join(ProjectRoot(), ".env"))

	testURL := os.Getenv("TEST_DB_URL")
	if testURL == "" {
		t.Skip("TEST_DB_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, testURL)
	if err != nil {
		t.Fatalf("could not connect to the postgresql database: %v", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("goose.SetDialect() error = %+v", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	if err := goose.Reset(db, "."); err != nil {
		db.Close()
		t.Fatalf("goose.Reset() error = %+v", err)
	}
	if err := goose.Up(db, "."); err != nil {
		db.Close()
		t.Fatalf("goose.Up() error = %+v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("db.Close() error = %+v", err)
	}

	t.Cleanup(pool.Close)

	return pool
}
