// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package graftcsv

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// VolumeAllocator mints a new volume identifier.
type VolumeAllocator interface {
	AllocateVolumeID(ctx context.Context) (string, error)
}

// GraftAllocator asks the graft extension for a fresh volume. It opens a
// throwaway connection to the extension's "random" target and reads the
// identifier the extension assigned from PRAGMA database_list.
type GraftAllocator struct {
	Logger *slog.Logger
}

// AllocateVolumeID implements VolumeAllocator.
func (a GraftAllocator) AllocateVolumeID(ctx context.Context) (string, error) {
	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}

	dsn := buildDSN("random", "graft")
	logger.Debug("allocating volume", "dsn", dsn)

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return "", fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()

	// The third column of PRAGMA database_list is the file name, which
	// graft populates with the allocated volume id.
	var seq int
	var name, file string
	err = db.QueryRowContext(ctx, `PRAGMA database_list`).Scan(&seq, &name, &file)
	if err != nil {
		return "", fmt.Errorf("pragma database_list: %w", err)
	}
	if file == "" {
		return "", fmt.Errorf("pragma database_list returned no volume id")
	}

	logger.Info("allocated new volume", "volume", file)
	return file, nil
}

// RandomAllocator mints a random identifier locally. It is the fallback for
// runs without the graft extension, where a volume is just a local database
// file named by the identifier.
type RandomAllocator struct{}

// AllocateVolumeID implements VolumeAllocator.
func (RandomAllocator) AllocateVolumeID(ctx context.Context) (string, error) {
	return uuid.NewString(), nil
}

// LoadVolumeID reads a volume identifier from path. It returns "" without
// error when the file does not exist or holds only whitespace.
func LoadVolumeID(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SaveVolumeID writes a volume identifier to path.
func SaveVolumeID(path, id string) error {
	if err := os.WriteFile(path, []byte(id), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ResolveVolumeID returns the identifier persisted at path, or allocates a
// new one and persists it first. An identifier that was allocated but could
// not be written is treated as not durable: the error is returned and the
// next run allocates again.
func ResolveVolumeID(ctx context.Context, path string, alloc VolumeAllocator, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	id, err := LoadVolumeID(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIdentityUnavailable, err)
	}
	if id != "" {
		logger.Info("read volume id from file", "path", path, "volume", id)
		return id, nil
	}

	logger.Info("no volume id on file, allocating", "path", path)
	id, err = alloc.AllocateVolumeID(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: allocate: %w", ErrIdentityUnavailable, err)
	}

	if err := SaveVolumeID(path, id); err != nil {
		// The id exists but is not persisted; reporting it anyway would
		// let the in-memory value diverge from the file.
		return "", fmt.Errorf("%w: %w", ErrIdentityUnavailable, err)
	}

	logger.Info("saved volume id", "path", path, "volume", id)
	return id, nil
}
