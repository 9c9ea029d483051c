// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mdhender/graftcsv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "graftcsv",
	Short:         "Import CSV files into graft-backed SQLite volumes",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var importOpts struct {
	csvPath     string
	tableName   string
	idFile      string
	vfs         string
	cacheSizeMB int
	optimize    bool
	verbose     bool
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a CSV file into a table on the volume",
	RunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if importOpts.verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		return graftcsv.Run(cmd.Context(), graftcsv.Config{
			CSVPath:      importOpts.csvPath,
			TableName:    importOpts.tableName,
			VolumeIDFile: importOpts.idFile,
			VFS:          importOpts.vfs,
			CacheSizeMB:  importOpts.cacheSizeMB,
			Optimize:     importOpts.optimize,
			Logger:       logger,
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the graftcsv version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(graftcsv.Version())
	},
}

func init() {
	importCmd.Flags().StringVar(&importOpts.csvPath, "csv", "", "path to the CSV source file")
	importCmd.Flags().StringVar(&importOpts.tableName, "table", "", "destination table name")
	importCmd.Flags().StringVar(&importOpts.idFile, "id-file", "volume_id.txt", "file persisting the volume identifier")
	importCmd.Flags().StringVar(&importOpts.vfs, "vfs", "graft", "SQLite VFS addressing the volume (empty for a plain local file)")
	importCmd.Flags().IntVar(&importOpts.cacheSizeMB, "cache-size-mb", 2048, "page cache size while bulk-load pragmas are in effect")
	importCmd.Flags().BoolVar(&importOpts.optimize, "optimize", false, "apply bulk-load pragmas around the import")
	importCmd.Flags().BoolVar(&importOpts.verbose, "verbose", false, "enable debug logging")
	_ = importCmd.MarkFlagRequired("csv")
	_ = importCmd.MarkFlagRequired("table")

	rootCmd.AddCommand(importCmd, versionCmd)
}

// execute runs the root command and maps failure to a process exit code.
func execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "graftcsv:", err)
		return 1
	}
	return 0
}
