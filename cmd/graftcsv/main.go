// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package main is the entry point for the graftcsv binary.
package main

import "os"

func main() {
	os.Exit(execute())
}
