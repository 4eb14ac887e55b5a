// Package main is the entry point for the toggler application.
// It loads configuration, initializes storage, and starts the TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"toggler/internal/config"
	"toggler/internal/storage"
	"toggler/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `toggler - A keyboard-driven time tracker for your terminal

USAGE:
    toggler [OPTIONS]
    toggler <command> [ARGS]

COMMANDS:
    backup           Create a backup of the data file
    backup --list    List available backups
    restore NAME     Restore from a specific backup
    restore --latest Restore from the most recent backup
    export           Export a day's time entries (CSV)
    export -f json   Output the day as JSON
    import web FILE  Import a JSON export from the browser app

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    toggler tracks time against named tasks. At most one task runs at a
    time; toggling a task stops whatever else was running. Completed
    intervals land in a per-day ledger, and work spanning midnight is
    split so each day owns exactly its share.

KEYBINDINGS:
    Global:
        Tab          Switch between panes
        h / l        View previous/next day
        t            Jump back to today
        e            Export the viewed day as CSV
        ?            Show help overlay
        q            Quit

    Tasks Pane:
        j/k, ↓/↑     Navigate
        a            Add task
        Space        Start/stop tracking
        x            Archive task
        g/G          Go to top/bottom

    Summary Pane:
        j/k          Scroll entries

DATA STORAGE:
    All data lives in a single JSON file:
        ~/.toggler/work-task-toggler-data.json

CONFIGURATION:
    Optional config file: ~/.config/toggler/config.yaml
    See documentation for configuration options.

EXAMPLES:
    # Start the app
    toggler

    # Create a backup
    toggler backup

    # Restore from a backup
    toggler restore --latest

    # Export today's entries as CSV
    toggler export

    # Export a specific day as JSON
    toggler export --format json 2026-08-29

    # Show version
    toggler --version
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		}
	}

	// Define flags
	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	// Handle version flag
	if *showVersion {
		fmt.Printf("toggler version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	// Handle help flag
	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	// Reject unknown arguments
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration (from ~/.config/toggler/config.yaml or defaults)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Initialize storage with configured data directory
	store, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	// Create styles from theme config
	styles := ui.NewStylesFromTheme(&cfg.Theme)

	// Create app config with keys and UX settings
	appCfg := &ui.AppConfig{
		Keys:                  &cfg.Keys,
		ConfirmArchive:        cfg.UX.ConfirmArchive,
		NarrowLayoutThreshold: cfg.UX.NarrowLayoutThreshold,
		Notifications:         cfg.Notifications,
	}

	if err := ui.Run(store, styles, appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
