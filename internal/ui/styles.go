package ui

import (
	"toggler/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all application styles, initialized with theme configuration.
type Styles struct {
	// Colors
	ColorPrimary   lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorBg        lipgloss.Color
	ColorBgLight   lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color

	// Component styles
	TitleStyle       lipgloss.Style
	DateStyle        lipgloss.Style
	PaneStyle        lipgloss.Style
	PaneFocusedStyle lipgloss.Style
	PaneTitleStyle   lipgloss.Style

	TaskNameStyle     lipgloss.Style
	TaskArchivedStyle lipgloss.Style
	TaskSelectedStyle lipgloss.Style
	TaskActiveMarker  string

	SessionRunningStyle lipgloss.Style
	SessionIdleStyle    lipgloss.Style
	TotalStyle          lipgloss.Style

	EntryTimeStyle lipgloss.Style
	EntryOpenStyle lipgloss.Style

	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style

	InputPromptStyle lipgloss.Style
	InputTextStyle   lipgloss.Style

	StatLabelStyle lipgloss.Style
	StatValueStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from the given config.
func NewStyles(cfg *config.Config) *Styles {
	return NewStylesFromTheme(&cfg.Theme)
}

// NewStylesFromTheme creates a new Styles instance from a ThemeConfig.
// If a theme color is empty, it uses the appropriate default.
func NewStylesFromTheme(theme *config.ThemeConfig) *Styles {
	s := &Styles{}

	// Initialize colors from config with fallbacks to defaults
	s.ColorPrimary = colorOrDefault(theme.Primary, "#7C3AED")
	s.ColorMuted = colorOrDefault(theme.Muted, "#6B7280")

	// Fixed semantic colors (not configurable from theme)
	s.ColorDanger = lipgloss.Color("#EF4444")
	s.ColorWarning = lipgloss.Color("#F59E0B")
	s.ColorSuccess = lipgloss.Color("#10B981")
	s.ColorAccent = colorOrDefault(theme.Accent, "#10B981")

	// Background and text colors
	s.ColorBg = lipgloss.Color("#1F2937")
	s.ColorBgLight = lipgloss.Color("#374151")
	s.ColorText = colorOrDefault(theme.Text, "#F9FAFB")
	s.ColorTextMuted = lipgloss.Color("#9CA3AF")

	s.initComponentStyles()

	return s
}

// colorOrDefault returns the lipgloss.Color from hex string, or default if empty.
func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

// initComponentStyles initializes all component styles based on the color palette.
func (s *Styles) initComponentStyles() {
	// Title bar
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorText).
		Background(s.ColorPrimary).
		Padding(0, 1)

	// Date in title bar
	s.DateStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	// Pane styles
	s.PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorMuted).
		Padding(0, 1)

	s.PaneFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorPrimary).
		Padding(0, 1)

	s.PaneTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary).
		MarginBottom(1)

	// Task list styles
	s.TaskNameStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.TaskArchivedStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Strikethrough(true)

	s.TaskSelectedStyle = lipgloss.NewStyle().
		Background(s.ColorBgLight).
		Foreground(s.ColorText).
		Bold(true)

	s.TaskActiveMarker = lipgloss.NewStyle().Foreground(s.ColorSuccess).Render("▶")

	// Session styles
	s.SessionRunningStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Bold(true)

	s.SessionIdleStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	s.TotalStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	// Summary entry styles
	s.EntryTimeStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.EntryOpenStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess)

	// Help bar
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	// Status messages
	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorSuccess).
		Italic(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	// Input
	s.InputPromptStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	s.InputTextStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	// Summary stats
	s.StatLabelStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.StatValueStyle = lipgloss.NewStyle().
		Foreground(s.ColorText).
		Bold(true)
}

// TaskDot renders the colored dot for a task. Falls back to the muted color
// when the task has no color assigned.
func (s *Styles) TaskDot(hex string) string {
	color := s.ColorMuted
	if hex != "" {
		color = lipgloss.Color(hex)
	}
	return lipgloss.NewStyle().Foreground(color).Render("●")
}

// RenderHelp renders help text with key bindings using the given styles.
func (s *Styles) RenderHelp(keys ...string) string {
	var result string
	for i := 0; i < len(keys); i += 2 {
		if i > 0 {
			result += "  "
		}
		key := keys[i]
		desc := keys[i+1]
		result += s.HelpKeyStyle.Render("["+key+"]") + " " + s.HelpStyle.Render(desc)
	}
	return result
}
