// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package graftcsv

import (
	"context"
	"database/sql"
	"log/slog"
	"time"
)

// Config holds import run options.
type Config struct {
	// CSVPath is the comma-delimited UTF-8 source file. Required.
	CSVPath string

	// TableName is the destination table, created if absent. Required.
	TableName string

	// VolumeIDFile is the text file persisting the volume identifier.
	// Default: "volume_id.txt".
	VolumeIDFile string

	// VFS names the SQLite VFS used to address the volume ("graft" for
	// remote-backed volumes). Empty means a plain local database file
	// named by the volume identifier.
	VFS string

	// Allocator mints a volume identifier when none is on file. Defaults
	// to GraftAllocator when VFS is "graft", RandomAllocator otherwise.
	Allocator VolumeAllocator

	// CacheSizeMB sizes the page cache while bulk-load pragmas are in
	// effect. Default: 2048.
	CacheSizeMB int

	// Optimize applies the bulk-load pragma set around the import and
	// restores defaults afterward.
	Optimize bool

	// Logger for operational logging. Uses slog.Default() if nil.
	Logger *slog.Logger
}

// defaults returns a copy of cfg with default values applied.
func (cfg Config) defaults() Config {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.VolumeIDFile == "" {
		cfg.VolumeIDFile = "volume_id.txt"
	}
	if cfg.CacheSizeMB == 0 {
		cfg.CacheSizeMB = 2048
	}
	if cfg.Allocator == nil {
		if cfg.VFS == "graft" {
			cfg.Allocator = GraftAllocator{Logger: cfg.Logger}
		} else {
			cfg.Allocator = RandomAllocator{}
		}
	}
	return cfg
}

// Run executes the whole import pipeline: resolve the volume identifier,
// connect, optionally apply bulk-load pragmas, import, verify, restore
// settings, close. Each step runs only if the prior one succeeded, except
// cleanup: once a connection is open, pragma restoration (when pragmas were
// applied) and the close always run, whatever happened upstream. Errors are
// logged and returned; none of them panic or skip cleanup.
func Run(ctx context.Context, cfg Config) error {
	cfg = cfg.defaults()
	logger := cfg.Logger

	logger.Info("starting import", "csv", cfg.CSVPath, "table", cfg.TableName)

	id, err := ResolveVolumeID(ctx, cfg.VolumeIDFile, cfg.Allocator, logger)
	if err != nil {
		logger.Error("failed to resolve volume id", "error", err)
		return err
	}

	db, err := Connect(ctx, id, cfg.VFS, logger)
	if err != nil {
		logger.Error("failed to connect to volume", "volume", id, "error", err)
		return err
	}

	// The one unconditional-release contract in the pipeline.
	defer func() {
		if cfg.Optimize {
			if err := RestoreDefaultPragmas(ctx, db, logger); err != nil {
				logger.Warn("failed to restore default pragmas", "error", err)
			}
		}
		if err := db.Close(); err != nil {
			logger.Warn("error closing connection", "error", err)
		} else {
			logger.Info("connection closed")
		}
	}()

	logVolumeStatus(ctx, db, logger, "before import")

	if cfg.Optimize {
		cacheBytes := int64(cfg.CacheSizeMB) * 1024 * 1024
		if err := ApplyBulkLoadPragmas(ctx, db, cacheBytes, logger); err != nil {
			logger.Warn("not all bulk-load pragmas applied", "error", err)
		}
	}

	if err := ensureHistorySchema(ctx, db); err != nil {
		logger.Warn("import ledger unavailable", "error", err)
	}

	start := time.Now()
	inserted, err := ImportCSV(ctx, db, cfg.CSVPath, cfg.TableName, logger)
	if err != nil {
		logger.Error("import failed", "csv", cfg.CSVPath, "error", err)
		return err
	}

	rec := ImportRecord{
		Source:    cfg.CSVPath,
		Table:     cfg.TableName,
		Rows:      inserted,
		Duration:  time.Since(start),
		CreatedAt: time.Now().UTC(),
	}
	if err := recordImport(ctx, db, rec); err != nil {
		logger.Warn("failed to record import in ledger", "error", err)
	}

	if _, err := Verify(ctx, db, cfg.TableName, inserted, logger); err != nil {
		logger.Error("verification failed", "table", cfg.TableName, "error", err)
		return err
	}

	logVolumeStatus(ctx, db, logger, "after import")

	logger.Info("import complete", "table", cfg.TableName, "rows", inserted)
	return nil
}

// logVolumeStatus reports graft status for observability. Connections
// without the extension have no status to report, so failure is debug-only.
func logVolumeStatus(ctx context.Context, db *sql.DB, logger *slog.Logger, when string) {
	status, err := VolumeStatus(ctx, db)
	if err != nil {
		logger.Debug("volume status unavailable", "when", when, "error", err)
		return
	}
	logger.Info("volume status", "when", when, "status", status)
}
