// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package graftcsv_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mdhender/graftcsv"
)

// pathAllocator hands out a fixed local database path as the volume id.
type pathAllocator struct {
	path string
}

func (a pathAllocator) AllocateVolumeID(ctx context.Context) (string, error) {
	return a.path, nil
}

// TestRun_FullPipeline tests the orchestrator end to end against a plain
// local database: resolve, connect, import, verify, ledger, close.
func TestRun_FullPipeline(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	volPath := filepath.Join(dir, "volume.db")
	idFile := filepath.Join(dir, "volume_id.txt")
	csvPath := filepath.Join(dir, "data.csv")

	if err := os.WriteFile(csvPath, []byte("a,b\n1,2\n3,4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := graftcsv.Config{
		CSVPath:      csvPath,
		TableName:    "messages",
		VolumeIDFile: idFile,
		Allocator:    pathAllocator{path: volPath},
		Optimize:     true,
		Logger:       quietLogger(),
	}
	if err := graftcsv.Run(ctx, cfg); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// The volume id must be persisted for the next run.
	data, err := os.ReadFile(idFile)
	if err != nil {
		t.Fatalf("volume id not persisted: %v", err)
	}
	if string(data) != volPath {
		t.Errorf("id file holds %q, expected %q", string(data), volPath)
	}

	// Inspect the volume directly.
	db, err := graftcsv.Connect(ctx, volPath, "", quietLogger())
	if err != nil {
		t.Fatalf("reopen volume: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "messages"`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows, got %d", count)
	}

	history, err := graftcsv.ImportHistory(ctx, db)
	if err != nil {
		t.Fatalf("ImportHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(history))
	}
	rec := history[0]
	if rec.Source != csvPath || rec.Table != "messages" || rec.Rows != 2 {
		t.Errorf("unexpected ledger entry: %+v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("ledger entry missing timestamp")
	}
}

// TestRun_SecondRunReusesVolume tests that a second run lands on the same
// volume and appends to the same table.
func TestRun_SecondRunReusesVolume(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	volPath := filepath.Join(dir, "volume.db")
	idFile := filepath.Join(dir, "volume_id.txt")
	csvPath := filepath.Join(dir, "data.csv")

	if err := os.WriteFile(csvPath, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := graftcsv.Config{
		CSVPath:      csvPath,
		TableName:    "messages",
		VolumeIDFile: idFile,
		Allocator:    pathAllocator{path: volPath},
		Logger:       quietLogger(),
	}
	for i := 0; i < 2; i++ {
		if err := graftcsv.Run(ctx, cfg); err != nil {
			t.Fatalf("run %d failed: %v", i+1, err)
		}
	}

	db, err := graftcsv.Connect(ctx, volPath, "", quietLogger())
	if err != nil {
		t.Fatalf("reopen volume: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "messages"`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows after two runs, got %d", count)
	}

	history, err := graftcsv.ImportHistory(ctx, db)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 {
		t.Errorf("expected 2 ledger entries, got %d", len(history))
	}
}

// TestRun_ImportFailureStillCleansUp tests that a failing import surfaces
// its sentinel while the connection is still opened, used, and released.
func TestRun_ImportFailureStillCleansUp(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	volPath := filepath.Join(dir, "volume.db")
	idFile := filepath.Join(dir, "volume_id.txt")

	cfg := graftcsv.Config{
		CSVPath:      filepath.Join(dir, "missing.csv"),
		TableName:    "messages",
		VolumeIDFile: idFile,
		Allocator:    pathAllocator{path: volPath},
		Optimize:     true,
		Logger:       quietLogger(),
	}
	err := graftcsv.Run(ctx, cfg)
	if !errors.Is(err, graftcsv.ErrFileMissing) {
		t.Fatalf("expected ErrFileMissing, got %v", err)
	}

	// The connection was opened (the volume file exists) and the
	// destination table was never created.
	if _, err := os.Stat(volPath); err != nil {
		t.Fatalf("volume was never opened: %v", err)
	}

	db, err := graftcsv.Connect(ctx, volPath, "", quietLogger())
	if err != nil {
		t.Fatalf("reopen volume: %v", err)
	}
	defer db.Close()

	var name string
	err = db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name='messages'`).Scan(&name)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected no destination table, got name=%q err=%v", name, err)
	}
}

// TestRun_IdentityFailureAborts tests that the pipeline aborts before
// connecting when no identifier can be resolved.
func TestRun_IdentityFailureAborts(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cfg := graftcsv.Config{
		CSVPath:      filepath.Join(dir, "data.csv"),
		TableName:    "messages",
		VolumeIDFile: filepath.Join(dir, "missing", "volume_id.txt"),
		Allocator:    pathAllocator{path: filepath.Join(dir, "volume.db")},
		Logger:       quietLogger(),
	}
	err := graftcsv.Run(ctx, cfg)
	if !errors.Is(err, graftcsv.ErrIdentityUnavailable) {
		t.Fatalf("expected ErrIdentityUnavailable, got %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "volume.db")); !os.IsNotExist(err) {
		t.Error("no connection should have been opened")
	}
}
