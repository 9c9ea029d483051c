// Copyright (c) 2026 Michael D Henderson. All rights reserved.

//go:build !mattn

package main

// Pure-Go SQLite driver for builds without the graft extension.
import _ "modernc.org/sqlite"
