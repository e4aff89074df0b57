package overlay

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zavlong/etsy-task-tracker/internal/domain"
)

func TestTaskDetail_View(t *testing.T) {
	catalog := domain.DefaultCatalog()
	task, ok := catalog.Lookup("shipping")
	require.True(t, ok)

	completions := domain.CompletionRecord{"shipping-1": true, "shipping-2": true}
	d := NewTaskDetail(task, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), completions)

	// the snapshot is independent of later edits
	completions["shipping-4"] = true

	view := ansi.Strip(d.View())
	assert.Contains(t, view, "shipping")
	assert.Contains(t, view, "60 min")
	assert.Contains(t, view, "Tue ✓")
	assert.Contains(t, view, "Fri ○")
	assert.Contains(t, view, "Wed ·")
	assert.Contains(t, view, "1 of 2 done this week")
	assert.Equal(t, "Package & ship orders", d.Title())
}

func TestTaskDetail_Close(t *testing.T) {
	d := NewTaskDetail(domain.Task{ID: "x"}, time.Now(), nil)
	for _, k := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyEnter}, runeKey('q')} {
		_, cmd := d.Update(k)
		require.NotNil(t, cmd)
		assert.IsType(t, CloseOverlayMsg{}, cmd())
	}
	_, cmd := d.Update(runeKey('j'))
	assert.Nil(t, cmd)
}
