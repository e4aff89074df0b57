// Package toast renders and ages the transient notices shown over the grid.
package toast

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/zavlong/etsy-task-tracker/internal/types"
	"github.com/zavlong/etsy-task-tracker/internal/ui/styles"
)

// MaxVisible caps how many toasts stack at once
const MaxVisible = 3

// DefaultTTL is how long a toast stays up
const DefaultTTL = 4 * time.Second

// Renderer handles rendering of toast notifications
type Renderer struct {
	styles *styles.Styles
}

// New creates a new Renderer with the given styles
func New(styles *styles.Styles) *Renderer {
	return &Renderer{styles: styles}
}

// Render stacks the newest toasts right-aligned.
// Returns empty string if no toasts to display
func (r *Renderer) Render(toasts []types.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	if len(toasts) > MaxVisible {
		toasts = toasts[len(toasts)-MaxVisible:]
	}

	toastWidth := width / 3
	if toastWidth > 40 {
		toastWidth = 40
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, r.styleForLevel(t.Level).Width(toastWidth).Render(t.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

func (r *Renderer) styleForLevel(level types.ToastLevel) lipgloss.Style {
	switch level {
	case types.ToastSuccess:
		return r.styles.ToastSuccess
	case types.ToastWarning:
		return r.styles.ToastWarning
	case types.ToastError:
		return r.styles.ToastError
	default:
		return r.styles.ToastInfo
	}
}

// Push appends a toast that expires DefaultTTL after now. Repeating a
// visible message moves it to the end and restarts its timer.
func Push(toasts []types.Toast, level types.ToastLevel, msg string, now time.Time) []types.Toast {
	out := make([]types.Toast, 0, len(toasts)+1)
	for _, t := range toasts {
		if t.Message != msg || t.Expired(now) {
			out = append(out, t)
		}
	}
	return append(out, types.Toast{Level: level, Message: msg, Expires: now.Add(DefaultTTL)})
}

// Expire drops toasts whose deadline has passed
func Expire(toasts []types.Toast, now time.Time) []types.Toast {
	active := toasts[:0]
	for _, t := range toasts {
		if !t.Expired(now) {
			active = append(active, t)
		}
	}
	return active
}
