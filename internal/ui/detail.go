package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bloom/internal/catalog"
)

// handleDetailKey processes keyboard input for the detail screen.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Edit):
		m.openEditForm()
	case key.Matches(msg, m.keys.Delete):
		m.openDeleteConfirm()
	case key.Matches(msg, m.keys.TogglePurchased):
		cmd := m.togglePurchased()
		return m, cmd
	default:
		scrollViewport(m.keys, msg, &m.detailViewport)
	}
	return m, nil
}

func (m *Model) updateDetailViewport() {
	m.detailViewport.Width = max(m.width-4, 10)
	m.detailViewport.Height = max(m.contentHeight()-2, 1)
	m.detailViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.Card))

	rec, ok := m.selectedRecord()
	if !ok {
		m.detailViewport.SetContent(m.theme.Styles().MutedText.Render("Bouquet not found."))
		return
	}
	m.detailViewport.SetContent(m.renderDetailContent(rec, m.detailViewport.Width))
}

// renderDetail renders the detail screen for the selected bouquet.
func (m Model) renderDetail() string {
	title := "Details"
	if rec, ok := m.selectedRecord(); ok {
		title = rec.Name
	}
	return m.renderBox(title, " "+strings.ReplaceAll(m.detailViewport.View(), "\n", "\n "), m.width, m.contentHeight())
}

// renderDetailContent lays out every field of a bouquet as label/value rows.
func (m Model) renderDetailContent(r catalog.Record, width int) string {
	styles := m.theme.Styles()
	bg := newBgStyle(m.theme.Card)
	labelWidth := 13
	valueWidth := max(width-labelWidth-1, 10)

	var b strings.Builder

	b.WriteString(bg.render(r.Name, styles.Text.Bold(true)))
	b.WriteString("\n")
	b.WriteString(bg.render(formatPrice(r.Price), styles.AccentText))
	if r.Purchased {
		b.WriteString(bg.spaces(2))
		b.WriteString(styles.Badge.Render("Purchased"))
	}
	if r.IsSold {
		b.WriteString(bg.spaces(1))
		b.WriteString(bg.render("(sold out)", styles.WarningText))
	}
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(bg.render(padRight(label, labelWidth), styles.MutedText))
		b.WriteString(bg.spaces(1))
		b.WriteString(bg.render(value, styles.Text))
		b.WriteString("\n")
	}

	category := r.Category
	if category == "" {
		category = catalog.UncategorizedLabel
	}
	row("Category", category)
	row("Size", orDash(r.Size))
	row("Status", purchasedLabel(r.Purchased))
	row("Image", truncateMiddle(orDash(r.Image), valueWidth))
	row("ID", shortID(r.ID))

	b.WriteString("\n")
	b.WriteString(bg.render("Description", styles.MutedText))
	b.WriteString("\n")
	desc := strings.TrimSpace(r.Description)
	if desc == "" {
		b.WriteString(bg.render("No description.", styles.MutedText.Italic(true)))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Foreground(lipgloss.Color(m.theme.Text)).
			Background(lipgloss.Color(m.theme.Card)).
			Render(desc))
	}
	return b.String()
}

func purchasedLabel(purchased bool) string {
	if purchased {
		return "Purchased"
	}
	return "Not purchased yet"
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
