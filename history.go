// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package graftcsv

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"
)

//go:embed schema.sql
var schemaFS embed.FS

// ImportRecord describes one completed import in the ledger.
type ImportRecord struct {
	ID        int
	Source    string
	Table     string
	Rows      int
	Duration  time.Duration
	CreatedAt time.Time
}

// ensureHistorySchema applies the embedded infrastructure schema. It is
// idempotent; the schema only uses create-if-absent statements.
func ensureHistorySchema(ctx context.Context, db *sql.DB) error {
	sqlBytes, err := fs.ReadFile(schemaFS, "schema.sql")
	if err != nil {
		return fmt.Errorf("read schema.sql: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
		return fmt.Errorf("exec schema.sql: %w", err)
	}
	return tx.Commit()
}

// recordImport appends a row to the import ledger.
func recordImport(ctx context.Context, db *sql.DB, rec ImportRecord) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO import_history (source, target_table, rows_inserted, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.Source, rec.Table, rec.Rows, rec.Duration.Milliseconds(), rec.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("record import: %w", err)
	}
	return nil
}

// ImportHistory returns all ledger entries, oldest first.
func ImportHistory(ctx context.Context, db *sql.DB) ([]ImportRecord, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, source, target_table, rows_inserted, duration_ms, created_at
		FROM import_history ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("import history: %w", err)
	}
	defer rows.Close()

	var result []ImportRecord
	for rows.Next() {
		var rec ImportRecord
		var durationMS, createdAt int64
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.Table, &rec.Rows, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("scan import history: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		rec.CreatedAt = time.Unix(createdAt, 0).UTC()
		result = append(result, rec)
	}
	return result, rows.Err()
}
