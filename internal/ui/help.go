package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Bouquets",
			items: []helpItem{
				{"j/k", "Move down/up"},
				{"g/G", "Go to top/bottom"},
				{"enter", "Open details"},
				{"/", "Search by name"},
				{"a", "Add bouquet"},
				{"e", "Edit bouquet"},
				{"x", "Delete bouquet"},
				{"space", "Toggle purchased"},
			},
		},
		{
			title: "Form",
			items: []helpItem{
				{"tab", "Next field"},
				{"shift+tab", "Previous field"},
				{"ctrl+t", "Next preset category"},
				{"ctrl+s", "Save"},
				{"esc", "Cancel"},
			},
		},
		{
			title: "Screens",
			items: []helpItem{
				{"s", "Statistics"},
				{"L", "Activity log (r reloads)"},
				{"esc", "Back to list"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"T", "Toggle dark mode"},
				{"?", "Toggle help"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Primary)).
		Width(12)
	for i, section := range sections {
		b.WriteString(styles.AccentText.Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	return placeModal(m.theme, b.String(), m.width, m.height, 44, m.theme.Primary)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
