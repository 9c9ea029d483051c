// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package graftcsv

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// Connect opens a connection to the volume named by id. With a non-empty
// vfs the target resolves through the extension's URI convention
// (file:<id>?vfs=graft); with an empty vfs the id is treated as a plain
// local database path. There is no retry; the caller decides whether a
// failure aborts the run.
func Connect(ctx context.Context, id, vfs string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dsn := buildDSN(id, vfs)
	logger.Debug("opening volume", "dsn", dsn)

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: sql.Open: %w", ErrConnect, err)
	}

	// Ensure cleanup on error
	success := false
	defer func() {
		if !success {
			db.Close()
		}
	}()

	// SQLite works best with limited connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: ping: %w", ErrConnect, err)
	}

	if err := logDatabaseList(ctx, db, logger); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	logger.Info("connected to volume", "volume", id)
	success = true
	return db, nil
}

// logDatabaseList echoes PRAGMA database_list, one log line per attached
// database.
func logDatabaseList(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	rows, err := db.QueryContext(ctx, `PRAGMA database_list`)
	if err != nil {
		return fmt.Errorf("pragma database_list: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var seq int
		var name, file string
		if err := rows.Scan(&seq, &name, &file); err != nil {
			return fmt.Errorf("scan database_list: %w", err)
		}
		logger.Info("attached database", "seq", seq, "name", name, "file", file)
	}
	return rows.Err()
}

// VolumeStatus returns the human-readable status string reported by the
// graft extension: the first column of the first row of PRAGMA
// graft_status. On connections without the extension the pragma yields no
// row, which is reported as an error; status is observability only, so
// callers treat it as best-effort.
func VolumeStatus(ctx context.Context, db *sql.DB) (string, error) {
	rows, err := db.QueryContext(ctx, `PRAGMA graft_status`)
	if err != nil {
		return "", fmt.Errorf("pragma graft_status: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", fmt.Errorf("pragma graft_status: %w", err)
		}
		return "", fmt.Errorf("pragma graft_status: no status row")
	}

	cols, err := rows.Columns()
	if err != nil {
		return "", fmt.Errorf("pragma graft_status: %w", err)
	}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return "", fmt.Errorf("scan graft_status: %w", err)
	}
	return fmt.Sprintf("%v", vals[0]), nil
}
