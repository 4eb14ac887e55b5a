package ui

import (
	"testing"
	"time"

	"toggler/internal/config"
	"toggler/internal/storage"
	"toggler/internal/timeutil"
	"toggler/internal/tracker"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// setupTest prepares the test environment for deterministic rendering.
// It disables colors to ensure consistent output across environments.
func setupTest(t *testing.T) {
	t.Helper()
	// Use ASCII profile to disable all color codes in output
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStorage creates a Storage instance with a temporary directory.
func createTestStorage(t *testing.T) *storage.Storage {
	t.Helper()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}
	return store
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

// loadState fetches the current state blob, failing the test on a storage error.
func loadState(t *testing.T, store *storage.Storage) (*tracker.AppState, string) {
	t.Helper()
	state, err := store.Load()
	if err != nil {
		t.Fatalf("failed to load state: %v", err)
	}
	return state, timeutil.Today(time.Now())
}
