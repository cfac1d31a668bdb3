package db

import (
	"context"
	"database/sql"
	"fmt"
)

// schema mirrors storage.Record, one column per canonical field.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS addresses (
		id                 UUID PRIMARY KEY,
		updated_at         TIMESTAMPTZ NOT NULL,
		kind               TEXT NOT NULL CHECK (kind IN ('individual', 'business')),
		name               TEXT NOT NULL DEFAULT '',
		company_name       TEXT NOT NULL DEFAULT '',
		contact            TEXT,
		has_delivery_point BOOLEAN NOT NULL DEFAULT FALSE,
		external_delivery  TEXT,
		internal_delivery  TEXT,
		postbox            TEXT,
		has_street         BOOLEAN NOT NULL DEFAULT FALSE,
		street_number      TEXT,
		street_name        TEXT NOT NULL DEFAULT '',
		postcode           TEXT NOT NULL,
		town               TEXT NOT NULL,
		town_location      TEXT,
		country            CHAR(2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_addresses_postcode ON addresses (postcode)`,
	`CREATE INDEX IF NOT EXISTS idx_addresses_updated_at ON addresses (updated_at)`,
}

// Migrate creates the address schema. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d failed: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	return nil
}
