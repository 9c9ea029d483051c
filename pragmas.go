// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package graftcsv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// pragma represents a SQLite pragma setting.
type pragma struct {
	name  string
	value string
}

// bulkLoadPragmas trade durability for import speed. cache_size is appended
// at apply time because its value depends on the configured cache size.
var bulkLoadPragmas = []pragma{
	{name: "journal_mode", value: "OFF"},
	{name: "synchronous", value: "0"},
	{name: "locking_mode", value: "EXCLUSIVE"},
	{name: "temp_store", value: "MEMORY"},
}

// defaultPragmas restore the session to safe defaults after a bulk load.
var defaultPragmas = []pragma{
	{name: "journal_mode", value: "WAL"},
	{name: "synchronous", value: "FULL"},
	{name: "locking_mode", value: "NORMAL"},
	{name: "cache_size", value: "-2000"},
	{name: "temp_store", value: "DEFAULT"},
}

// ApplyBulkLoadPragmas applies the fast-import pragma set plus a cache_size
// sized from cacheSizeBytes. Each pragma is set independently; failures are
// collected and joined so a partially applied set still speeds up the
// import.
func ApplyBulkLoadPragmas(ctx context.Context, db *sql.DB, cacheSizeBytes int64, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("applying bulk-load pragmas", "cache_size_bytes", cacheSizeBytes)

	pragmas := bulkLoadPragmas
	if cacheSizeBytes > 0 {
		// A negative cache_size is interpreted by SQLite as KiB.
		pragmas = append(pragmas[:len(pragmas):len(pragmas)], pragma{
			name:  "cache_size",
			value: fmt.Sprintf("-%d", cacheSizeBytes/1024),
		})
	}
	return applyPragmas(ctx, db, pragmas, logger)
}

// RestoreDefaultPragmas resets the session pragmas touched by
// ApplyBulkLoadPragmas to standard defaults.
func RestoreDefaultPragmas(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("restoring default pragmas")
	return applyPragmas(ctx, db, defaultPragmas, logger)
}

// applyPragmas sets each pragma independently and joins any failures.
func applyPragmas(ctx context.Context, db *sql.DB, pragmas []pragma, logger *slog.Logger) error {
	var errs []error
	for _, p := range pragmas {
		stmt := fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logger.Warn("pragma failed", "pragma", p.name, "value", p.value, "error", err)
			errs = append(errs, fmt.Errorf("pragma %s: %w", p.name, err))
			continue
		}
		logger.Debug("pragma set", "pragma", p.name, "value", p.value)
	}
	return errors.Join(errs...)
}
