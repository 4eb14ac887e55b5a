// Package config handles configuration loading and defaults for the toggler app.
// Configuration is loaded from XDG-compliant paths (typically ~/.config/toggler/config.yaml).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"toggler/internal/fsutil"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.toggler)
	DataDir string `yaml:"data_dir,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty"`

	// Notifications configures desktop notifications
	Notifications NotificationConfig `yaml:"notifications,omitempty"`
}

// NotificationConfig defines desktop notification settings.
type NotificationConfig struct {
	// Enabled enables/disables notifications
	Enabled bool `yaml:"enabled,omitempty"`

	// SessionMilestones are session durations (in minutes) at which to notify
	SessionMilestones []int `yaml:"session_milestones,omitempty"`

	// Sound enables notification sounds
	Sound bool `yaml:"sound,omitempty"`
}

// ThemeConfig defines color and style settings.
type ThemeConfig struct {
	// Primary color for focused elements (hex, e.g., "#FF5733")
	Primary string `yaml:"primary,omitempty"`

	// Accent color for highlights (hex)
	Accent string `yaml:"accent,omitempty"`

	// Muted color for secondary text (hex)
	Muted string `yaml:"muted,omitempty"`

	// Background color (hex)
	Background string `yaml:"background,omitempty"`

	// Text color (hex)
	Text string `yaml:"text,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "tab", "j,down"
type KeysConfig struct {
	// Global keys
	Quit     string `yaml:"quit,omitempty"`      // default: "q,ctrl+c"
	Help     string `yaml:"help,omitempty"`      // default: "?"
	NextPane string `yaml:"next_pane,omitempty"` // default: "tab"

	// Navigation keys
	Up     string `yaml:"up,omitempty"`     // default: "k,up"
	Down   string `yaml:"down,omitempty"`   // default: "j,down"
	Top    string `yaml:"top,omitempty"`    // default: "g"
	Bottom string `yaml:"bottom,omitempty"` // default: "G"

	// Task keys
	AddTask     string `yaml:"add_task,omitempty"`     // default: "a"
	ToggleTask  string `yaml:"toggle_task,omitempty"`  // default: "enter,space"
	ArchiveTask string `yaml:"archive_task,omitempty"` // default: "x"

	// Date navigation keys
	PrevDay string `yaml:"prev_day,omitempty"` // default: "h,left"
	NextDay string `yaml:"next_day,omitempty"` // default: "l,right"
	Today   string `yaml:"today,omitempty"`    // default: "t"

	// Export key
	Export string `yaml:"export,omitempty"` // default: "e"

	// Input keys
	Confirm string `yaml:"confirm,omitempty"` // default: "enter"
	Cancel  string `yaml:"cancel,omitempty"`  // default: "esc"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// ConfirmArchive shows a confirmation dialog before archiving a task
	ConfirmArchive bool `yaml:"confirm_archive,omitempty"` // default: true

	// NarrowLayoutThreshold is the terminal width below which to use stacked layout
	NarrowLayoutThreshold int `yaml:"narrow_layout_threshold,omitempty"` // default: 80
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Theme: ThemeConfig{
			Primary:    "#7C3AED", // Violet
			Accent:     "#10B981", // Emerald
			Muted:      "#6B7280", // Gray
			Background: "",        // Terminal default
			Text:       "",        // Terminal default
		},
		Keys: KeysConfig{
			// Defaults are empty strings, which means use built-in defaults
		},
		UX: UXConfig{
			ConfirmArchive:        true,
			NarrowLayoutThreshold: 80,
		},
		Notifications: NotificationConfig{
			Enabled:           false, // Disabled by default
			SessionMilestones: nil,   // No milestones by default
			Sound:             false, // No sound by default
		},
	}
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".toggler"
	}
	return filepath.Join(home, ".toggler")
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "toggler")
	}

	// Fall back to ~/.config/toggler
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "toggler")
}

// configPath returns the path to the config file.
func configPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults.
// If no config file exists, returns default configuration.
func Load() (*Config, error) {
	cfg := Default()

	path := configPath()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file, use defaults
			return cfg, nil
		}
		return nil, err
	}

	// Parse YAML and merge with defaults
	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, err
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; fall back to conservative merge if this fails

	// Merge user config with defaults (presence-aware for booleans/slices)
	cfg.mergeFromYAML(&userCfg, &doc)

	return cfg, nil
}

// mergeNonEmpty applies non-empty values from other to c.
// It intentionally does not touch booleans or slices (those require presence-aware merging).
func (c *Config) mergeNonEmpty(other *Config) {
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}

	// Theme merging
	if other.Theme.Primary != "" {
		c.Theme.Primary = other.Theme.Primary
	}
	if other.Theme.Accent != "" {
		c.Theme.Accent = other.Theme.Accent
	}
	if other.Theme.Muted != "" {
		c.Theme.Muted = other.Theme.Muted
	}
	if other.Theme.Background != "" {
		c.Theme.Background = other.Theme.Background
	}
	if other.Theme.Text != "" {
		c.Theme.Text = other.Theme.Text
	}

	// Keys merging
	if other.Keys.Quit != "" {
		c.Keys.Quit = other.Keys.Quit
	}
	if other.Keys.Help != "" {
		c.Keys.Help = other.Keys.Help
	}
	if other.Keys.NextPane != "" {
		c.Keys.NextPane = other.Keys.NextPane
	}
	if other.Keys.Up != "" {
		c.Keys.Up = other.Keys.Up
	}
	if other.Keys.Down != "" {
		c.Keys.Down = other.Keys.Down
	}
	if other.Keys.Top != "" {
		c.Keys.Top = other.Keys.Top
	}
	if other.Keys.Bottom != "" {
		c.Keys.Bottom = other.Keys.Bottom
	}
	if other.Keys.AddTask != "" {
		c.Keys.AddTask = other.Keys.AddTask
	}
	if other.Keys.ToggleTask != "" {
		c.Keys.ToggleTask = other.Keys.ToggleTask
	}
	if other.Keys.ArchiveTask != "" {
		c.Keys.ArchiveTask = other.Keys.ArchiveTask
	}
	if other.Keys.PrevDay != "" {
		c.Keys.PrevDay = other.Keys.PrevDay
	}
	if other.Keys.NextDay != "" {
		c.Keys.NextDay = other.Keys.NextDay
	}
	if other.Keys.Today != "" {
		c.Keys.Today = other.Keys.Today
	}
	if other.Keys.Export != "" {
		c.Keys.Export = other.Keys.Export
	}
	if other.Keys.Confirm != "" {
		c.Keys.Confirm = other.Keys.Confirm
	}
	if other.Keys.Cancel != "" {
		c.Keys.Cancel = other.Keys.Cancel
	}

	// UX ints (presence-aware in mergeFromYAML)
	if other.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = other.UX.NarrowLayoutThreshold
	}
}

func (c *Config) mergeFromYAML(other *Config, doc *yaml.Node) {
	// Fall back to conservative behavior if we can't inspect presence.
	if doc == nil || len(doc.Content) == 0 {
		// Avoid clobbering defaults with zero-values: only apply non-empty strings and non-zero ints.
		c.mergeNonEmpty(other)
		if len(other.Notifications.SessionMilestones) > 0 {
			c.Notifications.SessionMilestones = other.Notifications.SessionMilestones
		}
		return
	}

	// First apply all non-empty string-ish merges.
	c.mergeNonEmpty(other)

	// Now re-apply booleans and slices only when present in YAML.
	if yamlHasPath(doc, "ux", "confirm_archive") {
		c.UX.ConfirmArchive = other.UX.ConfirmArchive
	}
	if yamlHasPath(doc, "ux", "narrow_layout_threshold") && other.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = other.UX.NarrowLayoutThreshold
	}

	if yamlHasPath(doc, "notifications", "enabled") {
		c.Notifications.Enabled = other.Notifications.Enabled
	}
	if yamlHasPath(doc, "notifications", "sound") {
		c.Notifications.Sound = other.Notifications.Sound
	}
	if yamlHasPath(doc, "notifications", "session_milestones") {
		c.Notifications.SessionMilestones = other.Notifications.SessionMilestones
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	// Document -> root mapping.
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			v := n.Content[i+1]
			if k.Kind == yaml.ScalarNode && k.Value == key {
				next = v
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := configPath()
	if path == "" {
		return nil
	}

	// Create config directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path.
func (c *Config) GetDataDir() string {
	if c.DataDir != "" {
		// Expand ~ if present
		if c.DataDir == "~" {
			home, err := os.UserHomeDir()
			if err == nil {
				return home
			}
			return c.DataDir
		}

		if strings.HasPrefix(c.DataDir, "~/") || strings.HasPrefix(c.DataDir, `~\`) {
			home, err := os.UserHomeDir()
			if err == nil {
				trimmed := strings.TrimPrefix(c.DataDir, "~/")
				trimmed = strings.TrimPrefix(trimmed, `~\`)
				trimmed = strings.TrimPrefix(trimmed, `\`)
				return filepath.Join(home, trimmed)
			}
		}
		return c.DataDir
	}
	return defaultDataDir()
}
