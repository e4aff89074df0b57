package overlay

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zavlong/etsy-task-tracker/internal/domain"
)

// StatEditor edits one weekly counter
type StatEditor struct {
	field  domain.StatField
	input  textinput.Model
	styles *Styles
}

// NewStatEditor opens an editor prefilled with the current value
func NewStatEditor(field domain.StatField, current int) *StatEditor {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 12
	ti.Width = 20
	if field == domain.StatRevenue {
		ti.Prompt = "› $"
	}
	ti.SetValue(strconv.Itoa(current))
	ti.CursorEnd()
	ti.Focus()

	return &StatEditor{
		field:  field,
		input:  ti,
		styles: New(),
	}
}

// Field returns the counter being edited
func (e *StatEditor) Field() domain.StatField {
	return e.field
}

// Init implements tea.Model
func (e *StatEditor) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (e *StatEditor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			submit := StatSubmitMsg{Field: e.field, Raw: e.input.Value()}
			return e, func() tea.Msg { return submit }
		case tea.KeyEsc:
			return e, closeCmd
		}
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return e, cmd
}

// View implements tea.Model
func (e *StatEditor) View() string {
	preview := domain.ParseStatValue(e.input.Value())
	return e.styles.Input.Render(e.input.View()) + "\n" +
		e.styles.Footer.Render("saves as "+strconv.Itoa(preview)+" • Enter: save • Esc: cancel")
}

// Title implements Overlay
func (e *StatEditor) Title() string {
	return e.field.Label()
}

// Size implements Overlay
func (e *StatEditor) Size() (width, height int) {
	return 40, 7
}
