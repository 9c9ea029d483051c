// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package graftcsv

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ImportCSV imports the rows of a comma-delimited UTF-8 file into table,
// creating the table if absent with one TEXT column per sanitized header
// entry. The first line is the header and is mandatory. Rows whose field
// count differs from the header's are skipped with a diagnostic. All valid
// rows are inserted under a single transaction with one commit, so an
// insert failure leaves no partial batch behind. A header-only file commits
// the (empty) table and returns 0.
//
// Failures map to the package sentinels: ErrFileMissing, ErrEmptySource,
// ErrInsertFailed, and ErrImport for anything else during the pass.
func ImportCSV(ctx context.Context, db *sql.DB, csvPath, table string, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := os.Open(csvPath)
	if os.IsNotExist(err) {
		return 0, fmt.Errorf("%w: %s", ErrFileMissing, csvPath)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: open %s: %w", ErrImport, csvPath, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Rows with the wrong width are our problem, not the reader's.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return 0, fmt.Errorf("%w: %s", ErrEmptySource, csvPath)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: read header: %w", ErrImport, err)
	}

	cols := NormalizeHeader(header)

	// Accumulate the valid rows before touching the database so a read
	// failure never leaves a half-written batch.
	var batch [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w: read row: %w", ErrImport, err)
		}
		if len(row) != len(cols) {
			logger.Warn("skipping row with column mismatch",
				"expected", len(cols), "got", len(row), "row", strings.Join(row, ","))
			continue
		}
		batch = append(batch, row)
	}

	createStmt := createTableSQL(table, cols)
	insertStmt := insertSQL(table, cols)
	logger.Debug("ensuring table", "sql", createStmt)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin: %w", ErrImport, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, createStmt); err != nil {
		return 0, fmt.Errorf("%w: create table: %w", ErrImport, err)
	}

	if len(batch) > 0 {
		stmt, err := tx.PrepareContext(ctx, insertStmt)
		if err != nil {
			return 0, fmt.Errorf("%w: prepare insert: %w", ErrInsertFailed, err)
		}
		defer stmt.Close()

		args := make([]any, len(cols))
		for _, row := range batch {
			for i, v := range row {
				args[i] = v
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return 0, fmt.Errorf("%w: %w", ErrInsertFailed, err)
			}
		}
	} else {
		logger.Info("no valid data rows found to insert", "csv", csvPath)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit: %w", ErrInsertFailed, err)
	}

	logger.Info("imported rows", "csv", csvPath, "table", table, "rows", len(batch))
	return len(batch), nil
}

// createTableSQL builds a create-if-absent statement with every column
// typed TEXT.
func createTableSQL(table string, cols []string) string {
	defs := make([]string, len(cols))
	for i, col := range cols {
		defs[i] = quoteIdent(col) + " TEXT"
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quoteIdent(table), strings.Join(defs, ", "))
}

// insertSQL builds a parameterized insert matching the column count.
func insertSQL(table string, cols []string) string {
	quoted := make([]string, len(cols))
	params := make([]string, len(cols))
	for i, col := range cols {
		quoted[i] = quoteIdent(col)
		params[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(quoted, ", "), strings.Join(params, ", "))
}

// quoteIdent double-quotes an identifier, escaping embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
