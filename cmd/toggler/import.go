// Package main is the entry point for the toggler application.
// This file contains the import subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"toggler/internal/config"
	"toggler/internal/importer"
	"toggler/internal/storage"
)

// importHelpText is the help message for the import subcommand.
const importHelpText = `toggler import - Import data from the browser app

USAGE:
    toggler import <format> <file>
    toggler import [OPTIONS] <format> <file>

FORMATS:
    web          Import a JSON export from the browser version

OPTIONS:
    --dry-run    Preview import without making changes
    -h, --help   Show this help message

DESCRIPTION:
    Merges a JSON export from the browser version of the tracker into the
    local data file. Tasks are matched by name, so the same task in both
    places ends up as one task with the combined history. Entries already
    present locally are skipped, never duplicated.

    A running session in the export is closed at its day's midnight and
    recorded as completed time. An already running local session is kept.

EXAMPLES:
    # Import a browser export
    toggler import web ~/Downloads/work-task-toggler-data.json

    # Preview before importing
    toggler import --dry-run web export.json

    # Show help
    toggler import --help
`

// runImport handles the "toggler import" subcommand.
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	dryRunFlag := fs.Bool("dry-run", false, "preview import without making changes")
	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, importHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(importHelpText)
		os.Exit(0)
	}

	// Need at least format and file
	if fs.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "Error: missing arguments\n\n")
		fmt.Fprintf(os.Stderr, "Usage: toggler import <format> <file>\n")
		fmt.Fprintf(os.Stderr, "Formats: %s\n", strings.Join(importer.SupportedFormats(), ", "))
		fmt.Fprintf(os.Stderr, "\nRun 'toggler import --help' for more information.\n")
		os.Exit(1)
	}

	format := strings.ToLower(fs.Arg(0))
	filePath := fs.Arg(1)

	// Get importer
	imp := importer.GetImporter(format)
	if imp == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", format)
		fmt.Fprintf(os.Stderr, "Supported formats: %s\n", strings.Join(importer.SupportedFormats(), ", "))
		os.Exit(1)
	}

	// Open file
	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if *dryRunFlag {
		runImportDryRun(imp, file)
	} else {
		runImportActual(imp, file)
	}
}

// runImportDryRun previews the import without making changes.
func runImportDryRun(imp importer.Importer, file *os.File) {
	summary, err := imp.Preview(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing file: %v\n", err)
		os.Exit(1)
	}

	if summary.Tasks == 0 && summary.Entries == 0 {
		fmt.Println("Nothing to import.")
		os.Exit(0)
	}

	fmt.Println("Preview:")
	fmt.Println("────────────────────────────")
	fmt.Printf("  Tasks:   %d\n", summary.Tasks)
	fmt.Printf("  Days:    %d\n", summary.Days)
	fmt.Printf("  Entries: %d\n", summary.Entries)
	if summary.HasActive {
		fmt.Println("  A running session will be closed at its day's midnight.")
	}
	if summary.CurrentDate != "" {
		fmt.Printf("  Exported on: %s\n", summary.CurrentDate)
	}

	fmt.Println()
	fmt.Println("Run without --dry-run to import.")
}

// runImportActual performs the actual import.
func runImportActual(imp importer.Importer, file *os.File) {
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

	// Perform import
	result, err := imp.Import(file, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		os.Exit(1)
	}

	// Print results
	fmt.Printf("Import complete!\n")
	fmt.Printf("  Tasks:   %d\n", result.Tasks)
	fmt.Printf("  Entries: %d\n", result.Entries)
	if result.Skipped > 0 {
		fmt.Printf("  Skipped: %d items\n", result.Skipped)
	}
	if len(result.Errors) > 0 {
		fmt.Printf("  Errors:  %d\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("    - %s\n", e)
		}
	}
}
