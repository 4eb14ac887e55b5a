// Package ui provides terminal user interface components for the toggler app.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation, and user customization.
package ui

import (
	"strings"

	"toggler/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// =============================================================================
// Global Keys (available in all contexts)
// =============================================================================

// GlobalKeyMap defines keys available throughout the application.
type GlobalKeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	NextPane key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	Today    key.Binding
	Export   key.Binding
}

// DefaultGlobalKeyMap returns the default global key bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return NewGlobalKeyMap(&config.KeysConfig{})
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Quit, "q", "ctrl+c")...),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Help, "?")...),
			key.WithHelp("?", "help"),
		),
		NextPane: key.NewBinding(
			key.WithKeys(parseKeys(cfg.NextPane, "tab")...),
			key.WithHelp("tab", "next pane"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys(parseKeys(cfg.PrevDay, "h", "left")...),
			key.WithHelp("h/←", "previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys(parseKeys(cfg.NextDay, "l", "right")...),
			key.WithHelp("l/→", "next day"),
		),
		Today: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Today, "t")...),
			key.WithHelp("t", "today"),
		),
		Export: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Export, "e")...),
			key.WithHelp("e", "export day"),
		),
	}
}

// =============================================================================
// Navigation Keys (shared by list-based panes)
// =============================================================================

// NavigationKeyMap defines keys for list navigation.
type NavigationKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

// DefaultNavigationKeyMap returns the default navigation key bindings.
func DefaultNavigationKeyMap() NavigationKeyMap {
	return NewNavigationKeyMap(&config.KeysConfig{})
}

// NewNavigationKeyMap creates navigation key bindings from config.
func NewNavigationKeyMap(cfg *config.KeysConfig) NavigationKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return NavigationKeyMap{
		Up: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Up, "k", "up")...),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Down, "j", "down")...),
			key.WithHelp("j/↓", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Top, "g")...),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Bottom, "G")...),
			key.WithHelp("G", "bottom"),
		),
	}
}

// =============================================================================
// Input Keys (shared by text input fields)
// =============================================================================

// InputKeyMap defines keys for text input mode.
type InputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultInputKeyMap returns the default input key bindings.
func DefaultInputKeyMap() InputKeyMap {
	return NewInputKeyMap(&config.KeysConfig{})
}

// NewInputKeyMap creates input key bindings from config.
func NewInputKeyMap(cfg *config.KeysConfig) InputKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return InputKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Confirm, "enter")...),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Cancel, "esc")...),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// =============================================================================
// Task Pane Keys
// =============================================================================

// TaskKeyMap defines keys for the task pane.
type TaskKeyMap struct {
	Add     key.Binding
	Toggle  key.Binding
	Archive key.Binding
	NavigationKeyMap
}

// DefaultTaskKeyMap returns the default task pane key bindings.
func DefaultTaskKeyMap() TaskKeyMap {
	return NewTaskKeyMap(&config.KeysConfig{})
}

// NewTaskKeyMap creates task key bindings from config.
func NewTaskKeyMap(cfg *config.KeysConfig) TaskKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return TaskKeyMap{
		Add: key.NewBinding(
			key.WithKeys(parseKeys(cfg.AddTask, "a")...),
			key.WithHelp("a", "add task"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ToggleTask, " ", "enter", "d")...),
			key.WithHelp("space", "start/stop"),
		),
		Archive: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ArchiveTask, "x")...),
			key.WithHelp("x", "archive"),
		),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp returns the short help for the task pane (implements help.KeyMap).
func (k TaskKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Archive, k.Down}
}

// FullHelp returns the full help for the task pane (implements help.KeyMap).
func (k TaskKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Toggle, k.Archive},
		{k.Up, k.Down, k.Top, k.Bottom},
	}
}

// =============================================================================
// Help Overlay Keys
// =============================================================================

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
