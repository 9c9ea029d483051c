// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package graftcsv

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// sampleLimit caps how many rows Verify fetches for diagnostic display.
const sampleLimit = 5

// VerifyReport describes the state of a destination table after an import.
type VerifyReport struct {
	Rows    int
	Columns []string
	Sample  [][]string
}

// Verify re-queries table after an import. A non-negative expected count is
// compared against the actual count; a mismatch is logged but is not an
// error. Verification fails (ErrVerify) only when the table cannot be
// queried at all.
func Verify(ctx context.Context, db *sql.DB, table string, expected int, logger *slog.Logger) (*VerifyReport, error) {
	if logger == nil {
		logger = slog.Default()
	}

	report := &VerifyReport{}

	countStmt := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(table))
	if err := db.QueryRowContext(ctx, countStmt).Scan(&report.Rows); err != nil {
		return nil, fmt.Errorf("%w: count %s: %w", ErrVerify, table, err)
	}
	logger.Info("verified row count", "table", table, "rows", report.Rows)

	if expected >= 0 && report.Rows != expected {
		logger.Warn("row count mismatch", "table", table, "expected", expected, "found", report.Rows)
	}

	cols, err := tableColumns(ctx, db, table)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerify, err)
	}
	report.Columns = cols

	sample, err := sampleRows(ctx, db, table, len(cols))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerify, err)
	}
	report.Sample = sample

	logger.Info("sample fetched", "table", table, "columns", cols, "sample_rows", len(sample))
	for i, row := range sample {
		logger.Debug("sample row", "n", i+1, "row", row)
	}
	return report, nil
}

// tableColumns returns the column names from PRAGMA table_info, in
// declaration order.
func tableColumns(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	stmt := fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table))
	rows, err := db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var cid, notnull, pk int
		var name, typ string
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scan table_info: %w", err)
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

// sampleRows fetches up to sampleLimit rows, rendered as strings for
// display.
func sampleRows(ctx context.Context, db *sql.DB, table string, width int) ([][]string, error) {
	stmt := fmt.Sprintf("SELECT * FROM %s LIMIT %d", quoteIdent(table), sampleLimit)
	rows, err := db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", table, err)
	}
	defer rows.Close()

	var sample [][]string
	vals := make([]any, width)
	ptrs := make([]any, width)
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		row := make([]string, width)
		for i, v := range vals {
			row[i] = fmt.Sprintf("%v", v)
		}
		sample = append(sample, row)
	}
	return sample, rows.Err()
}
