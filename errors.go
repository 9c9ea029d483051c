// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package graftcsv

import "errors"

// Sentinel errors for the import pipeline. Callers branch on these with
// errors.Is; the wrapped error carries the detail.
var (
	// ErrIdentityUnavailable means no volume identifier could be resolved
	// or persisted.
	ErrIdentityUnavailable = errors.New("volume id unavailable")

	// ErrConnect means the volume connection could not be opened.
	ErrConnect = errors.New("connect failed")

	// ErrFileMissing means the CSV source does not exist.
	ErrFileMissing = errors.New("csv file not found")

	// ErrEmptySource means the CSV source exists but has no header line.
	ErrEmptySource = errors.New("csv file empty or missing header")

	// ErrInsertFailed means the bulk insert failed and the batch was
	// rolled back.
	ErrInsertFailed = errors.New("bulk insert failed")

	// ErrImport covers any other failure during the import pass; the
	// batch is rolled back.
	ErrImport = errors.New("import failed")

	// ErrVerify means the destination table could not be queried after
	// the import.
	ErrVerify = errors.New("verification failed")
)
