package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI. Bloom has exactly two: light and dark.
type Theme struct {
	Name string
	Dark bool

	// Base colors
	Background string
	Card       string // list and detail panels
	Border     string
	Text       string
	Muted      string
	Primary    string // purchased badge, progress fill, accents

	// Selection
	SelectionBg   string
	SelectionText string

	// Feedback
	Success string
	Warning string
	Danger  string

	// Stats screen palette
	StatsBackground string
	StatsHeader     string
	StatsAccent     string
	StatsBorder     string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)).
			Foreground(lipgloss.Color(t.Text)),

		Card: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Card)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Card)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Badge: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Primary)).
			Foreground(lipgloss.Color(t.SelectionText)).
			Padding(0, 1),

		StatsPanel: lipgloss.NewStyle().
			Background(lipgloss.Color(t.StatsBackground)).
			Foreground(lipgloss.Color(t.Text)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.StatsBorder)).
			BorderBackground(lipgloss.Color(t.StatsBackground)).
			Padding(1, 2),

		StatsHeader: lipgloss.NewStyle().
			Background(lipgloss.Color(t.StatsHeader)).
			Foreground(lipgloss.Color(t.StatsAccent)).
			Bold(true).
			Padding(0, 1),

		StatsAccent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.StatsAccent)).
			Background(lipgloss.Color(t.StatsBackground)).
			Bold(true),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background  lipgloss.Style
	Card        lipgloss.Style
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
	Badge    lipgloss.Style

	StatsPanel  lipgloss.Style
	StatsHeader lipgloss.Style
	StatsAccent lipgloss.Style
}

// ThemeFor returns the dark theme when dark is set, the light one otherwise.
func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}

// LightTheme is the default daytime palette.
func LightTheme() Theme {
	return Theme{
		Name: "Light",
		Dark: false,

		Background: "#F9FAFB", // gray-50
		Card:       "#FFFFFF",
		Border:     "#E5E7EB", // gray-200
		Text:       "#111827", // gray-900
		Muted:      "#A1A1AA", // zinc-400
		Primary:    "#10B981", // emerald-500

		SelectionBg:   "#10B981",
		SelectionText: "#FFFFFF",

		Success: "#059669", // emerald-600
		Warning: "#D97706", // amber-600
		Danger:  "#DC2626", // red-600

		StatsBackground: "#fff0f5", // lavender blush
		StatsHeader:     "#ffcce0",
		StatsAccent:     "#d63384",
		StatsBorder:     "#f8a5c2",
	}
}

// DarkTheme is the night palette.
func DarkTheme() Theme {
	return Theme{
		Name: "Dark",
		Dark: true,

		Background: "#1F2937", // gray-800
		Card:       "#374151", // gray-700
		Border:     "#4B5563", // gray-600
		Text:       "#F3F4F6", // gray-100
		Muted:      "#9CA3AF", // gray-400
		Primary:    "#22C55E", // green-500

		SelectionBg:   "#22C55E",
		SelectionText: "#111827",

		Success: "#4ADE80", // green-400
		Warning: "#FBBF24", // amber-400
		Danger:  "#F87171", // red-400

		StatsBackground: "#2b1b2f",
		StatsHeader:     "#3a2642",
		StatsAccent:     "#f3cfff",
		StatsBorder:     "#b48ec6",
	}
}
