// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package graftcsv imports CSV files into tables on remote-backed SQLite
// volumes addressed through the graft VFS extension.
//
// The package provides the pieces of the import pipeline individually
// (identity store, volume connector, header normalizer, bulk importer,
// verifier) plus an orchestrator, Run, that sequences them the way the
// graftcsv CLI does.
//
// # Volumes
//
// A graft volume is named by an opaque identifier allocated by the
// extension. ResolveVolumeID keeps that identifier in a local text file so
// repeated runs land on the same volume; when the file is missing or empty
// a VolumeAllocator mints a new one. Connections use SQLite URI syntax:
//
//	file:<volume-id>?vfs=graft
//
// # Driver Support
//
// Two SQLite drivers are supported via build tags:
//   - modernc.org/sqlite (default, pure Go, no CGO)
//   - github.com/mattn/go-sqlite3 (CGO, use -tags mattn)
//
// Only the mattn driver can host the loadable graft extension; the default
// build is for plain local databases and tests. You must import the
// matching driver in your application:
//
//	import _ "modernc.org/sqlite"           // default
//	import _ "github.com/mattn/go-sqlite3"  // with -tags mattn
//
// # Import Semantics
//
// ImportCSV reads the first line as the header, creates the destination
// table if absent with one TEXT column per sanitized header entry, and
// inserts every well-formed data row under a single transaction. Rows whose
// width differs from the header are skipped with a diagnostic. Failures are
// reported through the package's sentinel errors (ErrFileMissing,
// ErrEmptySource, ErrInsertFailed, ErrImport) so callers can branch with
// errors.Is; any insert-phase failure rolls back the whole batch.
package graftcsv
