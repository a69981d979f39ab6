package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bloom/internal/catalog"
	"github.com/five82/bloom/internal/form"
)

// Field order in the form. fieldPurchased is the checkbox after the inputs.
const (
	fieldName = iota
	fieldPrice
	fieldImage
	fieldSize
	fieldCategory
	fieldDescription
	fieldPurchased
	fieldCount
)

var fieldLabels = [...]string{
	fieldName:        "Name *",
	fieldPrice:       "Price *",
	fieldImage:       "Image URL",
	fieldSize:        "Size",
	fieldCategory:    "Category",
	fieldDescription: "Description",
}

// formSubmittedMsg carries validated values back to the root model. An empty
// id means the form was adding a new bouquet.
type formSubmittedMsg struct {
	id     string
	values form.Values
}

// bouquetForm is the add/edit dialog.
type bouquetForm struct {
	id          string
	placeholder string
	inputs      [fieldPurchased]textinput.Model
	purchased   bool
	focus       int
	err         error
}

func newBouquetForm(placeholder string) *bouquetForm {
	f := &bouquetForm{placeholder: placeholder}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 200
		f.inputs[i] = ti
	}
	f.inputs[fieldName].Placeholder = "Rose Bundle"
	f.inputs[fieldPrice].Placeholder = "150000"
	f.inputs[fieldImage].Placeholder = "blank uses the default photo"
	f.inputs[fieldSize].Placeholder = "Small, Medium, Large"
	f.inputs[fieldCategory].Placeholder = strings.Join(form.Presets[:3], ", ") + "..."
	f.inputs[fieldDescription].Placeholder = "Notes"
	f.inputs[fieldDescription].CharLimit = 500
	f.setFocus(fieldName)
	return f
}

// newEditForm pre-fills the dialog from an existing record.
func newEditForm(placeholder string, r catalog.Record) *bouquetForm {
	f := newBouquetForm(placeholder)
	f.id = r.ID
	f.load(form.FromRecord(r))
	return f
}

func (f *bouquetForm) load(fields form.Fields) {
	f.inputs[fieldName].SetValue(fields.Name)
	f.inputs[fieldPrice].SetValue(fields.Price)
	f.inputs[fieldImage].SetValue(fields.Image)
	f.inputs[fieldSize].SetValue(fields.Size)
	f.inputs[fieldCategory].SetValue(fields.Category)
	f.inputs[fieldDescription].SetValue(fields.Description)
	f.purchased = fields.Purchased
}

func (f *bouquetForm) fields() form.Fields {
	return form.Fields{
		Name:        f.inputs[fieldName].Value(),
		Price:       f.inputs[fieldPrice].Value(),
		Image:       f.inputs[fieldImage].Value(),
		Size:        f.inputs[fieldSize].Value(),
		Category:    f.inputs[fieldCategory].Value(),
		Description: f.inputs[fieldDescription].Value(),
		Purchased:   f.purchased,
	}
}

func (f *bouquetForm) setFocus(idx int) {
	f.focus = (idx + fieldCount) % fieldCount
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f *bouquetForm) editing() bool {
	return f.id != ""
}

func (f *bouquetForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if f.focus < fieldPurchased {
			var cmd tea.Cmd
			f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
			return f, cmd, false
		}
		return f, nil, false
	}

	switch {
	case key.Matches(keyMsg, keys.Escape):
		return f, nil, true

	case key.Matches(keyMsg, keys.Submit):
		return f.submit()

	case key.Matches(keyMsg, keys.NextField):
		f.setFocus(f.focus + 1)
		return f, nil, false

	case key.Matches(keyMsg, keys.PrevField):
		f.setFocus(f.focus - 1)
		return f, nil, false

	case key.Matches(keyMsg, keys.Confirm):
		if f.focus == fieldPurchased {
			return f.submit()
		}
		f.setFocus(f.focus + 1)
		return f, nil, false

	case key.Matches(keyMsg, keys.CyclePreset):
		f.inputs[fieldCategory].SetValue(form.NextPreset(f.inputs[fieldCategory].Value()))
		f.inputs[fieldCategory].CursorEnd()
		return f, nil, false
	}

	if f.focus == fieldPurchased {
		if key.Matches(keyMsg, keys.TogglePurchased) {
			f.purchased = !f.purchased
		}
		return f, nil, false
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(keyMsg)
	f.err = nil
	return f, cmd, false
}

func (f *bouquetForm) submit() (Modal, tea.Cmd, bool) {
	values, err := form.Validate(f.fields(), f.placeholder)
	if err != nil {
		f.err = err
		switch {
		case errors.Is(err, form.ErrNameRequired):
			f.setFocus(fieldName)
		case errors.Is(err, form.ErrPriceRequired):
			f.setFocus(fieldPrice)
		}
		return f, nil, false
	}
	return f, msgCmd(formSubmittedMsg{id: f.id, values: values}), true
}

func (f *bouquetForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	boxWidth := min(max(width-8, 40), 64)
	inputWidth := boxWidth - 6

	title := "Add bouquet"
	if f.editing() {
		title = "Edit bouquet"
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Render(title))
	b.WriteString("\n\n")

	for i := range f.inputs {
		labelStyle := styles.MutedText
		if i == f.focus {
			labelStyle = styles.AccentText
		}
		b.WriteString(labelStyle.Render(fieldLabels[i]))
		b.WriteString("\n")

		f.inputs[i].Width = inputWidth
		line := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color(borderFor(theme, i == f.focus))).
			Width(inputWidth).
			Render(f.inputs[i].View())
		b.WriteString(line)
		b.WriteString("\n")
	}

	box := "[ ]"
	if f.purchased {
		box = "[x]"
	}
	checkStyle := styles.Text
	if f.focus == fieldPurchased {
		checkStyle = styles.AccentText
	}
	b.WriteString(checkStyle.Render(box + " Purchased"))
	b.WriteString("\n")

	if f.err != nil {
		b.WriteString("\n")
		for _, line := range strings.Split(f.err.Error(), "\n") {
			b.WriteString(styles.DangerText.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("tab next · ctrl+t preset · ctrl+s save · esc cancel"))

	return placeModal(theme, b.String(), width, height, boxWidth, theme.Primary)
}

func borderFor(theme Theme, focused bool) string {
	if focused {
		return theme.Primary
	}
	return theme.Border
}
