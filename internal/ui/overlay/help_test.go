package overlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHelpOverlay(t *testing.T) {
	help := NewHelpOverlay()
	require.NotNil(t, help)
	assert.NotNil(t, help.styles)
	assert.Equal(t, 0, help.scroll)
	assert.Equal(t, "Keys", help.Title())

	width, height := help.Size()
	assert.GreaterOrEqual(t, width, 40)
	assert.GreaterOrEqual(t, height, helpViewHeight)
}

func TestHelpOverlay_View(t *testing.T) {
	help := NewHelpOverlay()
	view := ansi.Strip(help.View())

	for _, want := range []string{"Navigation", "Tasks", "h/l", "Space", "Toggle done", "[ ]"} {
		assert.Contains(t, view, want)
	}
	assert.Contains(t, view, "j/k to scroll")
	assert.LessOrEqual(t, len(strings.Split(view, "\n")), helpViewHeight+2)
}

func TestHelpOverlay_Scroll(t *testing.T) {
	help := NewHelpOverlay()
	_ = help.View()
	require.Greater(t, help.maxScroll, 0)

	key := func(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

	help.Update(key("k"))
	assert.Equal(t, 0, help.scroll, "cannot scroll above the top")

	help.Update(key("j"))
	assert.Equal(t, 1, help.scroll)

	help.Update(key("G"))
	assert.Equal(t, help.maxScroll, help.scroll)

	help.Update(key("j"))
	assert.Equal(t, help.maxScroll, help.scroll, "cannot scroll past the bottom")

	help.Update(key("g"))
	assert.Equal(t, 0, help.scroll)

	view := ansi.Strip(help.View())
	assert.Contains(t, view, "Navigation")
}

func TestHelpOverlay_Close(t *testing.T) {
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyRunes, Runes: []rune{'?'}},
	} {
		_, cmd := NewHelpOverlay().Update(k)
		require.NotNil(t, cmd, k.String())
		assert.IsType(t, CloseOverlayMsg{}, cmd())
	}
}

func TestCategories_UniqueKeys(t *testing.T) {
	seen := map[string]bool{}
	for _, cat := range Categories() {
		for _, b := range cat.Bindings {
			assert.False(t, seen[b.Key], "duplicate binding %q", b.Key)
			seen[b.Key] = true
		}
	}
}
