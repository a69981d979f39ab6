package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bloom/internal/catalog"
)

// visibleRecords is the snapshot narrowed by the current search query.
func (m Model) visibleRecords() []catalog.Record {
	return catalog.FilterByName(m.records, m.query)
}

// selectedRecord returns the bouquet under the cursor, if any.
func (m Model) selectedRecord() (catalog.Record, bool) {
	items := m.visibleRecords()
	if len(items) == 0 || m.selectedRow < 0 || m.selectedRow >= len(items) {
		return catalog.Record{}, false
	}
	return items[m.selectedRow], true
}

// syncSelection keeps the cursor on the same bouquet by id after the list
// changes, clamping when it disappeared.
func (m *Model) syncSelection() {
	items := m.visibleRecords()
	if len(items) == 0 {
		m.selectedRow = 0
		m.listOffset = 0
		return
	}

	if m.selectedID != "" {
		for i, r := range items {
			if r.ID == m.selectedID {
				m.selectedRow = i
				m.clampOffset()
				return
			}
		}
	}

	m.selectedRow = max(0, min(m.selectedRow, len(items)-1))
	m.selectedID = items[m.selectedRow].ID
	m.clampOffset()
}

func (m *Model) moveSelection(row int) {
	items := m.visibleRecords()
	if len(items) == 0 {
		return
	}
	m.selectedRow = max(0, min(row, len(items)-1))
	m.selectedID = items[m.selectedRow].ID
	m.clampOffset()
}

// listRows is how many bouquets fit inside the list box.
func (m Model) listRows() int {
	return max(m.contentHeight()-2, 1)
}

func (m *Model) clampOffset() {
	rows := m.listRows()
	if m.selectedRow < m.listOffset {
		m.listOffset = m.selectedRow
	}
	if m.selectedRow >= m.listOffset+rows {
		m.listOffset = m.selectedRow - rows + 1
	}
	m.listOffset = max(m.listOffset, 0)
}

// handleListKey processes keyboard input for the list screen.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.query)
		m.searchInput.CursorEnd()
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Add):
		m.openAddForm()
		return m, nil
	}

	if _, ok := m.selectedRecord(); !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(m.selectedRow + 1)
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(m.selectedRow - 1)
	case key.Matches(msg, m.keys.Top):
		m.moveSelection(0)
	case key.Matches(msg, m.keys.Bottom):
		m.moveSelection(len(m.visibleRecords()) - 1)
	case key.Matches(msg, m.keys.PageDown):
		m.moveSelection(m.selectedRow + m.listRows()/2)
	case key.Matches(msg, m.keys.PageUp):
		m.moveSelection(m.selectedRow - m.listRows()/2)
	case key.Matches(msg, m.keys.Open):
		m.currentView = ViewDetail
		m.updateDetailViewport()
		m.detailViewport.GotoTop()
	case key.Matches(msg, m.keys.Edit):
		m.openEditForm()
	case key.Matches(msg, m.keys.Delete):
		m.openDeleteConfirm()
	case key.Matches(msg, m.keys.TogglePurchased):
		cmd := m.togglePurchased()
		return m, cmd
	}
	return m, nil
}

// renderList renders the bouquet list inside a titled box.
func (m Model) renderList() string {
	styles := m.theme.Styles()
	height := m.contentHeight()
	items := m.visibleRecords()

	title := "Bouquets"
	if m.query != "" {
		title = fmt.Sprintf("Bouquets matching %q", truncate(m.query, 20))
	}

	if len(items) == 0 {
		var empty string
		switch {
		case len(m.records) == 0:
			empty = styles.MutedText.Render("No bouquets yet. Press a to add one.")
		default:
			empty = styles.MutedText.Render("No bouquets match your search.")
		}
		placed := lipgloss.Place(m.width-2, height-2, lipgloss.Center, lipgloss.Center, empty,
			lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Card)))
		return m.renderBox(title, placed, m.width, height)
	}

	innerWidth := m.width - 2
	end := min(m.listOffset+m.listRows(), len(items))
	lines := make([]string, 0, end-m.listOffset)
	for i := m.listOffset; i < end; i++ {
		lines = append(lines, m.renderRow(items[i], innerWidth, i == m.selectedRow))
	}
	return m.renderBox(title, strings.Join(lines, "\n"), m.width, height)
}

// renderRow formats one bouquet: "[x] Name ... Category  Rp 150.000".
func (m Model) renderRow(r catalog.Record, width int, selected bool) string {
	bgColor := m.theme.Card
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := newBgStyle(bgColor)

	check := "[ ]"
	if r.Purchased {
		check = "[x]"
	}
	price := formatPrice(r.Price)
	category := r.Category
	if category == "" {
		category = catalog.UncategorizedLabel
	}
	category = truncate(category, 16)

	nameWidth := max(width-len(check)-lipgloss.Width(price)-lipgloss.Width(category)-7, 8)
	name := truncate(r.Name, nameWidth)
	gap := max(width-len(check)-lipgloss.Width(name)-lipgloss.Width(category)-lipgloss.Width(price)-6, 1)

	var checkStyle, nameStyle, categoryStyle, priceStyle lipgloss.Style
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		checkStyle, nameStyle, categoryStyle, priceStyle = sel, sel.Bold(true), sel, sel
	} else {
		styles := m.theme.Styles()
		checkStyle = styles.MutedText
		if r.Purchased {
			checkStyle = styles.AccentText
		}
		nameStyle = styles.Text
		categoryStyle = styles.MutedText
		priceStyle = styles.Text
	}

	content := bg.spaces(1) +
		bg.render(check, checkStyle) + bg.spaces(1) +
		bg.render(name, nameStyle) + bg.spaces(gap) +
		bg.render(category, categoryStyle) + bg.spaces(2) +
		bg.render(price, priceStyle) + bg.spaces(1)
	return bg.fill(content, width)
}

// renderBox draws content in a rounded box with the title in the top border:
// ╭─ Title ─────╮
func (m Model) renderBox(title, content string, width, height int) string {
	bg := newBgStyle(m.theme.Card)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Border))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 0))
	rightPad := max(innerWidth-lipgloss.Width(title)-3, 0)

	top := bg.render("╭─", borderStyle) +
		bg.render(" "+title+" ", titleStyle) +
		bg.render(strings.Repeat("─", rightPad), borderStyle) +
		bg.render("╮", borderStyle)
	bottom := bg.render("╰"+strings.Repeat("─", innerWidth)+"╯", borderStyle)

	lineStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(m.theme.Card))
	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	rows := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		rows = append(rows, bg.render("│", borderStyle)+lineStyle.Render(line)+bg.render("│", borderStyle))
	}

	return top + "\n" + strings.Join(rows, "\n") + "\n" + bottom
}
