// Package backup provides backup and restore functionality for the toggler
// data file. Backups are timestamped directories holding a copy of the
// state blob plus a manifest.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"toggler/internal/fsutil"
	"toggler/internal/tracker"
)

// Version constants for the backup format.
const (
	ManifestVersion = "1.0"
	ManifestFile    = "manifest.json"
	BackupsDir      = "backups"

	dataFile = "work-task-toggler-data.json"
)

// Manager handles backup and restore operations.
type Manager struct {
	dataDir    string // Path to data directory (e.g., ~/.toggler)
	backupDir  string // Path to backups directory (e.g., ~/.toggler/backups)
	appVersion string // Application version for manifest
}

// Manifest contains metadata about a backup.
type Manifest struct {
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Files      []string       `json:"files"`
	Stats      map[string]int `json:"stats"`
}

// BackupInfo contains summary information about a backup.
type BackupInfo struct {
	Name      string         // Directory name (2025-12-15_143022_123)
	Path      string         // Full path to backup directory
	CreatedAt time.Time      // When the backup was created
	Stats     map[string]int // Statistics (tasks, days, entries)
}

// NewManager creates a new backup manager.
func NewManager(dataDir, appVersion string) *Manager {
	return &Manager{
		dataDir:    dataDir,
		backupDir:  filepath.Join(dataDir, BackupsDir),
		appVersion: appVersion,
	}
}

// Create creates a new backup of the data file.
// Returns the backup name (timestamp format) on success.
func (m *Manager) Create() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	// Backup name is the current timestamp, with milliseconds for uniqueness.
	now := time.Now()
	name := fmt.Sprintf("%s_%03d", now.Format("2006-01-02_150405"), now.Nanosecond()/1e6)
	backupPath := filepath.Join(m.backupDir, name)

	if err := os.MkdirAll(backupPath, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	var copiedFiles []string
	stats := make(map[string]int)

	srcPath := filepath.Join(m.dataDir, dataFile)
	if _, err := os.Stat(srcPath); err == nil {
		dstPath := filepath.Join(backupPath, dataFile)
		if err := copyFileAtomic(srcPath, dstPath); err != nil {
			_ = os.RemoveAll(backupPath)
			return "", fmt.Errorf("failed to copy %s: %w", dataFile, err)
		}
		copiedFiles = append(copiedFiles, dataFile)

		if counted, err := countItems(srcPath); err == nil {
			stats = counted
		}
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Files:      copiedFiles,
		Stats:      stats,
	}

	manifestPath := filepath.Join(backupPath, ManifestFile)
	if err := writeJSON(manifestPath, manifest); err != nil {
		_ = os.RemoveAll(backupPath)
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	return name, nil
}

// List returns all available backups, sorted by creation time (newest first).
func (m *Manager) List() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		backupPath := filepath.Join(m.backupDir, entry.Name())
		manifestPath := filepath.Join(backupPath, ManifestFile)

		var manifest Manifest
		if err := readJSON(manifestPath, &manifest); err != nil {
			// Fall back to the timestamp in the directory name.
			createdAt, parseErr := parseBackupName(entry.Name())
			if parseErr != nil {
				continue // Skip invalid backups
			}
			manifest.CreatedAt = createdAt
			manifest.Stats = make(map[string]int)
		}

		backups = append(backups, BackupInfo{
			Name:      entry.Name(),
			Path:      backupPath,
			CreatedAt: manifest.CreatedAt,
			Stats:     manifest.Stats,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})

	return backups, nil
}

// Restore restores the data file from a specific backup.
// It creates a safety backup before restoring.
func (m *Manager) Restore(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}

	backupPath := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}

	srcPath := filepath.Join(backupPath, dataFile)
	if _, err := os.Stat(srcPath); os.IsNotExist(err) {
		return fmt.Errorf("backup %s holds no data file", name)
	}
	// Refuse to restore a blob that doesn't parse.
	if err := validateState(srcPath); err != nil {
		return fmt.Errorf("backup %s is invalid: %w", name, err)
	}

	safetyName, err := m.Create()
	if err != nil {
		return fmt.Errorf("failed to create safety backup: %w", err)
	}

	dstPath := filepath.Join(m.dataDir, dataFile)
	if err := copyFileAtomic(srcPath, dstPath); err != nil {
		return fmt.Errorf("failed to restore %s (safety backup: %s): %w", dataFile, safetyName, err)
	}

	return nil
}

// RestoreLatest restores from the most recent backup.
func (m *Manager) RestoreLatest() error {
	backups, err := m.List()
	if err != nil {
		return err
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups available")
	}

	return m.Restore(backups[0].Name)
}

// Delete removes a specific backup.
func (m *Manager) Delete(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}

	backupPath := filepath.Join(m.backupDir, name)

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}

	return os.RemoveAll(backupPath)
}

// Prune removes old backups, keeping only the N most recent.
func (m *Manager) Prune(keepCount int) (int, error) {
	if keepCount < 0 {
		return 0, fmt.Errorf("keepCount must be non-negative")
	}

	backups, err := m.List()
	if err != nil {
		return 0, err
	}

	if len(backups) <= keepCount {
		return 0, nil
	}

	deleted := 0
	for _, backup := range backups[keepCount:] {
		if err := m.Delete(backup.Name); err != nil {
			return deleted, err
		}
		deleted++
	}

	return deleted, nil
}

// GetBackup returns information about a specific backup.
func (m *Manager) GetBackup(name string) (*BackupInfo, error) {
	if err := validateBackupName(name); err != nil {
		return nil, err
	}

	backupPath := filepath.Join(m.backupDir, name)

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("backup not found: %s", name)
	}

	manifestPath := filepath.Join(backupPath, ManifestFile)
	var manifest Manifest
	if err := readJSON(manifestPath, &manifest); err != nil {
		createdAt, parseErr := parseBackupName(name)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid backup: %s", name)
		}
		manifest.CreatedAt = createdAt
		manifest.Stats = make(map[string]int)
	}

	return &BackupInfo{
		Name:      name,
		Path:      backupPath,
		CreatedAt: manifest.CreatedAt,
		Stats:     manifest.Stats,
	}, nil
}

// Helper functions

func validateBackupName(name string) error {
	if name == "" {
		return fmt.Errorf("backup name is required")
	}
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if _, err := parseBackupName(name); err != nil {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	return nil
}

func copyFileAtomic(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(dst, data, 0600)
}

// writeJSON writes a value as JSON to a file.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

// readJSON reads JSON from a file into a value.
func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// validateState checks that a file holds a parseable state blob.
func validateState(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var state tracker.AppState
	return json.Unmarshal(data, &state)
}

// countItems summarizes a state blob for the manifest.
func countItems(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var state tracker.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	entries := 0
	for _, day := range state.Days {
		if day != nil {
			entries += len(day.Entries)
		}
	}
	return map[string]int{
		"tasks":   len(state.Tasks),
		"days":    len(state.Days),
		"entries": entries,
	}, nil
}

// parseBackupName parses a backup directory name into a timestamp.
// Supports both old format (2006-01-02_150405) and new format (2006-01-02_150405_XXX).
func parseBackupName(name string) (time.Time, error) {
	// Try new format with milliseconds first
	if len(name) == 21 {
		// Format: 2006-01-02_150405_XXX
		baseTime, err := time.Parse("2006-01-02_150405", name[:17])
		if err != nil {
			return time.Time{}, err
		}
		if name[17] != '_' {
			return time.Time{}, fmt.Errorf("invalid backup format")
		}
		ms, err := strconv.Atoi(name[18:])
		if err != nil || ms < 0 || ms > 999 {
			return time.Time{}, fmt.Errorf("invalid milliseconds")
		}
		return baseTime.Add(time.Duration(ms) * time.Millisecond), nil
	}

	// Try old format without milliseconds
	return time.Parse("2006-01-02_150405", name)
}
