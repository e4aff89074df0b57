package overlay

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SearchMsg is emitted on every keystroke for live filtering
type SearchMsg struct {
	Query string
}

// SearchOverlay is a one-line task search bar
type SearchOverlay struct {
	input      textinput.Model
	styles     *Styles
	matchCount int
}

// NewSearchOverlay creates a search bar seeded with the current query
func NewSearchOverlay(query string) *SearchOverlay {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "task name or id..."
	ti.CharLimit = 60
	ti.Width = 40
	ti.SetValue(query)
	ti.CursorEnd()
	ti.Focus()

	return &SearchOverlay{
		input:  ti,
		styles: New(),
	}
}

// SetMatchCount updates the match count display
func (s *SearchOverlay) SetMatchCount(count int) {
	s.matchCount = count
}

// Query returns the current search text
func (s *SearchOverlay) Query() string {
	return s.input.Value()
}

// Init implements tea.Model
func (s *SearchOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (s *SearchOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			// keep the query applied
			return s, closeCmd
		case tea.KeyEsc:
			s.input.SetValue("")
			return s, tea.Batch(
				func() tea.Msg { return SearchMsg{Query: ""} },
				closeCmd,
			)
		}
	}

	prev := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if q := s.input.Value(); q != prev {
		return s, tea.Batch(cmd, func() tea.Msg { return SearchMsg{Query: q} })
	}
	return s, cmd
}

// View implements tea.Model
func (s *SearchOverlay) View() string {
	view := s.input.View()
	if s.input.Value() != "" {
		view += s.styles.Footer.UnsetMarginTop().Render(fmt.Sprintf(" (%d matches)", s.matchCount))
	}
	return s.styles.Input.Render(view)
}

// Title implements Overlay (search renders as a bar, not a box)
func (s *SearchOverlay) Title() string {
	return ""
}

// Size implements Overlay (full-width single line)
func (s *SearchOverlay) Size() (width, height int) {
	return 0, 1
}
