package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// deleteConfirmedMsg is sent when the user accepts a delete prompt.
type deleteConfirmedMsg struct {
	id   string
	name string
}

// confirmDeleteModal asks before a bouquet is removed.
type confirmDeleteModal struct {
	id   string
	name string
}

func newConfirmDeleteModal(id, name string) confirmDeleteModal {
	return confirmDeleteModal{id: id, name: name}
}

func (c confirmDeleteModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Yes), key.Matches(keyMsg, keys.Confirm):
		return c, msgCmd(deleteConfirmedMsg{id: c.id, name: c.name}), true
	case key.Matches(keyMsg, keys.No):
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmDeleteModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Delete bouquet"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render("Are you sure you want to delete "))
	b.WriteString(styles.Text.Bold(true).Render(truncate(c.name, 30)))
	b.WriteString(styles.Text.Render("?"))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("y"))
	b.WriteString(styles.MutedText.Render(" delete   "))
	b.WriteString(styles.AccentText.Render("n"))
	b.WriteString(styles.MutedText.Render(" cancel"))

	return placeModal(theme, b.String(), width, height, 46, theme.Danger)
}
