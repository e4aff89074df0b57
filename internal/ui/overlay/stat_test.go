package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zavlong/etsy-task-tracker/internal/domain"
)

func TestStatEditor_Prefilled(t *testing.T) {
	e := NewStatEditor(domain.StatSales, 12)
	assert.Equal(t, "12", e.input.Value())
	assert.Equal(t, domain.StatSales, e.Field())
	assert.Equal(t, "Sales", e.Title())
	assert.NotNil(t, e.Init())
}

func TestStatEditor_Submit(t *testing.T) {
	tests := []struct {
		name  string
		start int
		typed string
		want  string
	}{
		{"append digit", 4, "2", "42"},
		{"garbage is passed through", 0, "x", "0x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewStatEditor(domain.StatListed, tt.start)
			for _, r := range tt.typed {
				e.Update(runeKey(r))
			}

			_, cmd := e.Update(tea.KeyMsg{Type: tea.KeyEnter})
			require.NotNil(t, cmd)
			assert.Equal(t, StatSubmitMsg{Field: domain.StatListed, Raw: tt.want}, cmd())
		})
	}
}

func TestStatEditor_Backspace(t *testing.T) {
	e := NewStatEditor(domain.StatRevenue, 150)
	e.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	e.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	_, cmd := e.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, StatSubmitMsg{Field: domain.StatRevenue, Raw: "1"}, cmd())
}

func TestStatEditor_Esc(t *testing.T) {
	_, cmd := NewStatEditor(domain.StatSales, 1).Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, CloseOverlayMsg{}, cmd())
}

func TestStatEditor_ViewPreview(t *testing.T) {
	e := NewStatEditor(domain.StatRevenue, 0)
	e.Update(runeKey('7'))
	e.Update(runeKey('a'))

	view := ansi.Strip(e.View())
	assert.Contains(t, view, "$07a")
	assert.Contains(t, view, "saves as 7")
}
