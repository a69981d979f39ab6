package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bloom/internal/logtail"
)

func (m *Model) updateActivityViewport() {
	m.activityViewport.Width = max(m.width-4, 10)
	m.activityViewport.Height = max(m.contentHeight()-2, 1)
	m.activityViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.Card))
	m.activityViewport.SetContent(m.renderActivityContent(time.Now()))
}

// renderActivity renders the app log tail.
func (m Model) renderActivity() string {
	title := "Activity"
	if !m.activityLoaded.IsZero() {
		title = fmt.Sprintf("Activity · %d entries", len(m.activity))
	}
	return m.renderBox(title, " "+strings.ReplaceAll(m.activityViewport.View(), "\n", "\n "), m.width, m.contentHeight())
}

func (m Model) renderActivityContent(now time.Time) string {
	styles := m.theme.Styles()
	bg := newBgStyle(m.theme.Card)

	switch {
	case m.activityErr != nil:
		return bg.render(fmt.Sprintf("Could not read %s: %v", m.logPath, m.activityErr), styles.DangerText)
	case m.logPath == "":
		return bg.render("Logging is going to the terminal; no activity file configured.", styles.MutedText)
	case len(m.activity) == 0:
		return bg.render("Nothing logged yet.", styles.MutedText)
	}

	lines := make([]string, 0, len(m.activity))
	for _, e := range m.activity {
		lines = append(lines, m.renderActivityEntry(e, bg, now))
	}
	return strings.Join(lines, "\n")
}

// renderActivityEntry formats "12s ago  WARN  catalog  message".
func (m Model) renderActivityEntry(e logtail.Entry, bg bgStyle, now time.Time) string {
	styles := m.theme.Styles()

	levelStyle := styles.MutedText
	switch e.Severity {
	case logtail.SeverityWarn:
		levelStyle = styles.WarningText
	case logtail.SeverityError:
		levelStyle = styles.DangerText
	}

	var parts []string
	if age := humanizeAge(e.Time, now); age != "" {
		parts = append(parts, bg.render(padRight(age, 8), styles.MutedText))
	}
	parts = append(parts, bg.render(padRight(e.Severity.String(), 5), levelStyle))
	if e.Component != "" {
		parts = append(parts, bg.render(e.Component, styles.AccentText))
	}
	parts = append(parts, bg.render(e.Message, styles.Text))
	return strings.Join(parts, bg.spaces(2))
}
