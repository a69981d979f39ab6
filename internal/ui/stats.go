package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bloom/internal/catalog"
)

func (m *Model) updateStatsViewport() {
	m.statsViewport.Width = m.width
	m.statsViewport.Height = m.contentHeight()
	m.statsViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.StatsBackground))
	m.statsViewport.SetContent(m.renderStatsContent(catalog.ComputeStatistics(m.records)))
}

// renderStats renders the statistics screen.
func (m Model) renderStats() string {
	return m.statsViewport.View()
}

// renderStatsContent draws the summary cards, progress bar and the top
// categories.
func (m Model) renderStatsContent(stats catalog.Statistics) string {
	styles := m.theme.Styles()
	panelWidth := min(max(m.width-4, 30), 72)
	inner := panelWidth - 6
	text := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Text)).
		Background(lipgloss.Color(m.theme.StatsBackground))
	muted := text.Foreground(lipgloss.Color(m.theme.Muted))
	accent := styles.StatsAccent

	var b strings.Builder
	b.WriteString(styles.StatsHeader.Width(inner).Render("Bouquet Statistics"))
	b.WriteString("\n\n")

	if stats.Total == 0 {
		b.WriteString(muted.Render("No bouquets yet. Add one to see statistics."))
		return m.placeStats(styles.StatsPanel.Width(panelWidth).Render(b.String()))
	}

	counts := []struct {
		label string
		value int
	}{
		{"Total bouquets", stats.Total},
		{"Purchased", stats.Purchased},
		{"Not purchased", stats.Unpurchased},
	}
	for _, c := range counts {
		b.WriteString(text.Render(padRight(c.label, 18)))
		b.WriteString(accent.Render(fmt.Sprintf("%d", c.value)))
		b.WriteString("\n")
	}
	b.WriteString(text.Render(padRight("Total value", 18)))
	b.WriteString(accent.Render(formatPrice(stats.TotalValue)))
	b.WriteString("\n")
	b.WriteString(text.Render(padRight("Purchased value", 18)))
	b.WriteString(accent.Render(formatPrice(stats.PurchasedValue)))
	b.WriteString("\n\n")

	b.WriteString(text.Bold(true).Render("Purchase progress"))
	b.WriteString("\n")
	barWidth := max(inner-6, 10)
	filled, empty := progressBar(stats.ProgressRatio(), barWidth)
	b.WriteString(accent.Render(filled))
	b.WriteString(muted.Render(empty))
	b.WriteString(text.Render(fmt.Sprintf(" %3d%%", stats.ProgressPercent())))
	b.WriteString("\n\n")

	b.WriteString(text.Bold(true).Render("Top categories"))
	b.WriteString("\n")
	labelWidth := 16
	countBarWidth := max(inner-labelWidth-6, 6)
	top := stats.TopCategories
	maxCount := 1
	if len(top) > 0 {
		maxCount = top[0].Count
	}
	for i, c := range top {
		f, _ := progressBar(float64(c.Count)/float64(maxCount), countBarWidth)
		b.WriteString(text.Render(padRight(fmt.Sprintf("%d. %s", i+1, truncate(c.Label, labelWidth-3)), labelWidth)))
		b.WriteString(accent.Render(f))
		b.WriteString(text.Render(fmt.Sprintf(" %d", c.Count)))
		if i < len(top)-1 {
			b.WriteString("\n")
		}
	}

	if extra := len(stats.Categories) - len(top); extra > 0 {
		b.WriteString("\n")
		b.WriteString(muted.Render(fmt.Sprintf("+%d more categories", extra)))
	}

	return m.placeStats(styles.StatsPanel.Width(panelWidth).Render(b.String()))
}

func (m Model) placeStats(panel string) string {
	return lipgloss.Place(m.width, max(m.contentHeight(), lipgloss.Height(panel)),
		lipgloss.Center, lipgloss.Top, panel,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.StatsBackground)))
}
