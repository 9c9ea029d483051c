// Copyright (c) 2026 Michael D Henderson. All rights reserved.

//go:build mattn

package graftcsv

import "strings"

// driverName is the database/sql driver registered by github.com/mattn/go-sqlite3.
const driverName = "sqlite3"

// buildDSN constructs a DSN for github.com/mattn/go-sqlite3. The mattn
// driver is the one that can load the native graft extension, so vfs=graft
// targets resolve to remote-backed volumes here.
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
