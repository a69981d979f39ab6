package ui

import (
	"fmt"
	"strings"
)

// renderHeader renders the logo and catalog counts.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := newBgStyle(m.theme.Card)

	purchased := 0
	for _, r := range m.records {
		if r.Purchased {
			purchased++
		}
	}

	left := bg.render("✿ Bloom", styles.Logo)
	right := bg.render(fmt.Sprintf("%d bouquets", len(m.records)), styles.Text) +
		bg.render(" · ", styles.MutedText) +
		bg.render(fmt.Sprintf("%d purchased", purchased), styles.AccentText)
	if m.query != "" {
		shown := len(m.visibleRecords())
		right = bg.render(fmt.Sprintf("%d shown", shown), styles.MutedText) + bg.render(" · ", styles.MutedText) + right
	}

	return bg.fill(bg.spaces(1)+left+bg.spaces(3)+right, m.width)
}

// renderCommandBar renders the key hints for the active screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	bg := newBgStyle(m.theme.Background)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewDetail:
		commands = []cmd{
			{"e", "Edit"},
			{"x", "Delete"},
			{"space", "Purchased"},
			{"esc", "Back"},
			{"?", "More"},
		}
	case ViewStats:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"esc", "Back"},
			{"?", "More"},
		}
	case ViewActivity:
		commands = []cmd{
			{"r", "Reload"},
			{"j/k", "Scroll"},
			{"esc", "Back"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"/", "Search"},
			{"a", "Add"},
			{"e", "Edit"},
			{"x", "Delete"},
			{"space", "Purchased"},
			{"enter", "Details"},
			{"s", "Stats"},
			{"?", "More"},
		}
	}

	colon := bg.render(":", styles.MutedText)
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, bg.render(c.key, styles.AccentText)+colon+bg.render(c.desc, styles.MutedText))
	}

	mode := "light"
	if m.theme.Dark {
		mode = "dark"
	}
	segments = append(segments, bg.render("T", styles.AccentText)+colon+bg.render(mode, styles.MutedText))

	return bg.fill(bg.spaces(1)+strings.Join(segments, bg.spaces(2)), m.width)
}

// renderStatusLine shows the search box while searching, then any flash
// message.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles()
	bg := newBgStyle(m.theme.Background)

	if m.searching {
		return bg.fill(bg.spaces(1)+m.searchInput.View(), m.width)
	}

	if m.flash != "" {
		style := styles.Text
		switch m.flashKind {
		case flashSuccess:
			style = styles.SuccessText
		case flashError:
			style = styles.DangerText
		}
		return bg.fill(bg.spaces(1)+bg.render(truncate(m.flash, m.width-2), style), m.width)
	}

	if m.query != "" {
		return bg.fill(bg.spaces(1)+bg.render("/"+m.query+"  (esc clears)", styles.MutedText), m.width)
	}
	return bg.fill("", m.width)
}
