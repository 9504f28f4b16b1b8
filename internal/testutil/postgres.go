// AngelaMos | 2026
// postgres.go

//go:build integration

package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/househunt/go-backend/internal/config"
	"github.com/househunt/go-backend/internal/core"
)

// Postgres returns a migrated database. TEST_DATABASE_URL reuses an
// existing server instead of starting a container.
func Postgres(t *testing.T) *sqlx.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		container, err := postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("househunt"),
			postgres.WithUsername("househunt"),
			postgres.WithPassword("househunt"),
			postgres.BasicWaitStrategies(),
		)
		if err != nil {
			t.Skipf("postgres container unavailable: %v", err)
		}
		t.Cleanup(func() {
			_ = container.Terminate(context.Background())
		})

		dsn, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			t.Fatalf("resolve connection string: %v", err)
		}
	}

	db, err := core.NewDatabase(ctx, config.DatabaseConfig{
		URL:             dsn,
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Minute,
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := core.Migrate(ctx, db.DB); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db.DB
}
