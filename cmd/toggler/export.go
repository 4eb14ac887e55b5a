// Package main is the entry point for the toggler application.
// This file contains the export subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"toggler/internal/config"
	"toggler/internal/fsutil"
	"toggler/internal/reports"
	"toggler/internal/storage"
	"toggler/internal/timeutil"
)

// exportHelpText is the help message for the export subcommand.
const exportHelpText = `toggler export - Export a day's time entries

USAGE:
    toggler export [OPTIONS] [DATE]

OPTIONS:
    -f, --format FMT   Output format: csv (default) or json
    -o, --output FILE  Write to file instead of stdout
    -h, --help         Show this help message

ARGUMENTS:
    DATE               Day to export (YYYY-MM-DD). Defaults to today.

DESCRIPTION:
    Exports the completed intervals recorded for one calendar day, one row
    per interval with task name, start, end, and duration. A session still
    running on the exported day shows up with an open end.

EXAMPLES:
    # Today's entries as CSV
    toggler export

    # A specific day
    toggler export 2026-08-29

    # JSON format
    toggler export --format json

    # Save to file
    toggler export --output friday.csv
`

// runExport handles the "toggler export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	formatFlag := fs.String("format", "csv", "output format: csv or json")
	fs.StringVar(formatFlag, "f", "csv", "output format (shorthand)")

	outputFlag := fs.String("output", "", "write to file instead of stdout")
	fs.StringVar(outputFlag, "o", "", "write to file (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, exportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(exportHelpText)
		os.Exit(0)
	}

	// Validate format
	format := *formatFlag
	if format != "csv" && format != "json" {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q. Use 'csv' or 'json'.\n", format)
		os.Exit(1)
	}

	// Parse date argument
	day := timeutil.Today(time.Now())
	if fs.NArg() > 0 {
		if _, err := timeutil.ParseDayKey(fs.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid date %q. Use YYYY-MM-DD format.\n", fs.Arg(0))
			os.Exit(1)
		}
		day = fs.Arg(0)
	}

	// Load config and storage
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	gen := reports.NewGenerator(store)

	report, err := gen.GenerateDaily(day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating export: %v\n", err)
		os.Exit(1)
	}

	var output string
	if format == "json" {
		data, err := reports.FormatDailyJSON(report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting JSON: %v\n", err)
			os.Exit(1)
		}
		output = string(data)
	} else {
		output = reports.FormatDailyCSV(report)
	}

	// Write output
	if *outputFlag != "" {
		if err := os.MkdirAll(filepath.Dir(*outputFlag), 0700); err != nil && filepath.Dir(*outputFlag) != "." {
			fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
			os.Exit(1)
		}
		if err := fsutil.WriteFileAtomic(*outputFlag, []byte(output), 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Export written to %s\n", *outputFlag)
	} else {
		fmt.Print(output)
	}
}
