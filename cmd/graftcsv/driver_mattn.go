// Copyright (c) 2026 Michael D Henderson. All rights reserved.

//go:build mattn

package main

// CGO SQLite driver. Required for the loadable graft VFS extension.
import _ "github.com/mattn/go-sqlite3"
