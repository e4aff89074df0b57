// Package overlay holds the modal views that sit above the week grid.
package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zavlong/etsy-task-tracker/internal/domain"
)

// Overlay represents a modal overlay component
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// CloseOverlayMsg signals that the overlay should be closed
type CloseOverlayMsg struct{}

// SelectionMsg is sent when a menu entry is picked
type SelectionMsg struct {
	Key   string
	Value any
}

// StatSubmitMsg carries the raw text typed into the stat editor
type StatSubmitMsg struct {
	Field domain.StatField
	Raw   string
}

func closeCmd() tea.Msg {
	return CloseOverlayMsg{}
}
