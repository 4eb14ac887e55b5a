package ui

import (
	"reflect"
	"testing"

	"toggler/internal/config"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestParseKeys(t *testing.T) {
	tests := []struct {
		name     string
		custom   string
		defaults []string
		want     []string
	}{
		{"empty uses defaults", "", []string{"q", "ctrl+c"}, []string{"q", "ctrl+c"}},
		{"single key", "x", []string{"q"}, []string{"x"}},
		{"comma separated", "h,left", []string{"j"}, []string{"h", "left"}},
		{"trims spaces", " h , left ", []string{"j"}, []string{"h", "left"}},
		{"drops empty segments", "h,,left", []string{"j"}, []string{"h", "left"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseKeys(tt.custom, tt.defaults...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseKeys(%q) = %v, want %v", tt.custom, got, tt.want)
			}
		})
	}
}

func TestGlobalKeyMapDefaults(t *testing.T) {
	keys := DefaultGlobalKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		press   string
	}{
		{"quit", keys.Quit, "q"},
		{"help", keys.Help, "?"},
		{"prev day", keys.PrevDay, "h"},
		{"next day", keys.NextDay, "l"},
		{"today", keys.Today, "t"},
		{"export", keys.Export, "e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.press)}
			if !key.Matches(msg, tt.binding) {
				t.Errorf("%q should match %s binding", tt.press, tt.name)
			}
		})
	}
}

func TestKeyMapCustomization(t *testing.T) {
	cfg := &config.KeysConfig{
		Quit:       "ctrl+q",
		ToggleTask: "s",
		PrevDay:    "b",
	}

	global := NewGlobalKeyMap(cfg)
	taskKeys := NewTaskKeyMap(cfg)

	if key.Matches(keyMsg("q"), global.Quit) {
		t.Error("default quit key still active after override")
	}
	if !key.Matches(keyMsg("b"), global.PrevDay) {
		t.Error("custom prev day key not active")
	}
	if !key.Matches(keyMsg("s"), taskKeys.Toggle) {
		t.Error("custom toggle key not active")
	}
	if key.Matches(keyMsg(" "), taskKeys.Toggle) {
		t.Error("default toggle key still active after override")
	}
}

func TestTaskKeyMapHelp(t *testing.T) {
	keys := DefaultTaskKeyMap()

	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp() returned no bindings")
	}
	if len(keys.FullHelp()) == 0 {
		t.Error("FullHelp() returned no groups")
	}
}
