// Copyright (c) 2026 Michael D Henderson. All rights reserved.

//go:build !mattn

package graftcsv

import "strings"

// driverName is the database/sql driver registered by modernc.org/sqlite.
const driverName = "sqlite"

// buildDSN constructs a DSN for modernc.org/sqlite. The modernc driver
// cannot host the loadable graft extension, so a non-empty vfs is passed
// through on the assumption that the VFS was registered by other means;
// runs without a VFS get a plain file or memory DSN.
func buildDSN(target, vfs string) string {
	var sb strings.Builder

	if target == ":memory:" {
		sb.WriteString("file::memory:?cache=shared")
		if vfs != "" {
			sb.WriteString("&vfs=")
			sb.WriteString(vfs)
		}
		return sb.String()
	}

	sb.WriteString("file:")
	sb.WriteString(target)
	if vfs != "" {
		sb.WriteString("?vfs=")
		sb.WriteString(vfs)
	}
	return sb.String()
}
