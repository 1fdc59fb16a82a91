package warehouse

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/fraudsim-project/fraudsim/internal/core"
)

// Warehouse wraps the Postgres store holding the raw and clean click
// tables. It is plain data movement: the enrichment core never imports
// this package.
type Warehouse struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open connects to the warehouse using the resolved DSN.
func Open(cfg core.WarehouseConfig, log zerolog.Logger) (*Warehouse, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening warehouse: %w", err)
	}
	return &Warehouse{db: db, log: log}, nil
}

// Ping verifies the connection is live.
func (w *Warehouse) Ping(ctx context.Context) error {
	if err := w.db.PingContext(ctx); err != nil {
		return fmt.Errorf("warehouse unreachable: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (w *Warehouse) Close() error {
	return w.db.Close()
}

// RecreateDatabase drops and recreates the configured database by
// connecting to the maintenance database. Destructive; used only by
// `fraudsim schema --recreate`.
func RecreateDatabase(ctx context.Context, cfg core.WarehouseConfig) error {
	maint := cfg
	maint.Database = "postgres"

	db, err := sql.Open("postgres", maint.DSN())
	if err != nil {
		return fmt.Errorf("opening maintenance connection: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %q", cfg.Database)); err != nil {
		return fmt.Errorf("dropping database %s: %w", cfg.Database, err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE %q", cfg.Database)); err != nil {
		return fmt.Errorf("creating database %s: %w", cfg.Database, err)
	}
	return nil
}
