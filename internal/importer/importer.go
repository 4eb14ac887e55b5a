// Package importer migrates data exported from the original browser-based
// tracker into the local data file. The browser app stored the active task
// as a loose activeTaskId/activeStartTime pair on each day; importing
// converts that into the single session value used here.
package importer

import (
	"io"

	"toggler/internal/storage"
)

// ImportResult contains statistics about an import operation.
type ImportResult struct {
	Tasks   int      // Number of imported tasks
	Entries int      // Number of imported time entries
	Skipped int      // Number of skipped items (duplicates, malformed rows)
	Errors  []string // Error messages for failed items
}

// Summary previews what an import would bring in.
type Summary struct {
	Tasks       int
	Days        int
	Entries     int
	HasActive   bool
	CurrentDate string
}

// Importer defines the interface for import implementations.
type Importer interface {
	// Import reads exported data from the reader and merges it into storage.
	Import(reader io.Reader, store *storage.Storage) (*ImportResult, error)

	// Preview reads exported data from the reader without importing.
	Preview(reader io.Reader) (*Summary, error)

	// Name returns the importer name (e.g., "web").
	Name() string
}

// GetImporter returns the appropriate importer for the given format.
func GetImporter(format string) Importer {
	switch format {
	case "web":
		return &WebImporter{}
	default:
		return nil
	}
}

// SupportedFormats returns the list of supported import formats.
func SupportedFormats() []string {
	return []string{"web"}
}
