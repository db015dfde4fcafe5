package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/zubbicodes/adsonsLab/internal/common"
)

// Timestamps are stored as RFC 3339 text so the same statements work on both
// Postgres and SQLite.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id           TEXT PRIMARY KEY,
		product_code TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		width        TEXT NOT NULL DEFAULT '',
		color        TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS shrinkage_reports (
		id                    TEXT PRIMARY KEY,
		product_code          TEXT NOT NULL,
		po_number             TEXT NOT NULL,
		dc_number             TEXT NOT NULL DEFAULT '',
		date                  TEXT NOT NULL DEFAULT '',
		item_number           TEXT NOT NULL DEFAULT '',
		product_description   TEXT NOT NULL DEFAULT '',
		color                 TEXT NOT NULL DEFAULT '',
		shrinkage_requirement TEXT NOT NULL DEFAULT '',
		temp                  TEXT NOT NULL DEFAULT '',
		dimensional_change    TEXT NOT NULL DEFAULT '',
		ph                    TEXT NOT NULL DEFAULT '',
		result                TEXT NOT NULL DEFAULT '',
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS loading_papers (
		id          TEXT PRIMARY KEY,
		dc_no       TEXT NOT NULL DEFAULT '',
		po_no       TEXT NOT NULL DEFAULT '',
		date        TEXT NOT NULL DEFAULT '',
		acc_name    TEXT NOT NULL DEFAULT '',
		acc_address TEXT NOT NULL DEFAULT '',
		remarks     TEXT NOT NULL DEFAULT '',
		header_note TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS loading_paper_items (
		id          TEXT PRIMARY KEY,
		paper_id    TEXT NOT NULL,
		sr          INTEGER NOT NULL,
		detail_name TEXT NOT NULL DEFAULT '',
		unit        TEXT NOT NULL DEFAULT '',
		job_no      TEXT NOT NULL DEFAULT '',
		pack        REAL NOT NULL DEFAULT 0,
		qty         REAL NOT NULL DEFAULT 0,
		weight      REAL NOT NULL DEFAULT 0,
		po_no       TEXT NOT NULL DEFAULT '',
		dc_no       TEXT NOT NULL DEFAULT '',
		remarks     TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_loading_paper_items_paper
		ON loading_paper_items (paper_id, sr)`,
	`CREATE INDEX IF NOT EXISTS idx_products_code
		ON products (product_code)`,
}

// Migrate bootstraps the schema. Statements are idempotent; there is no
// versioned migration tooling here.
func Migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logger.Error("schema bootstrap failed", "error", err)
			return common.WrapError(err, "schema bootstrap")
		}
	}
	logger.Info("schema ready")
	return nil
}
