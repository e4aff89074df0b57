package statusbar

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/zavlong/etsy-task-tracker/internal/types"
	"github.com/zavlong/etsy-task-tracker/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode    types.Mode
	width   int
	styles  *styles.Styles
	online  bool
	filter  string
	loading bool
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
		online: true,
	}
}

// WithOnline sets the backend connectivity indicator
func (sb StatusBar) WithOnline(online bool) StatusBar {
	sb.online = online
	return sb
}

// WithFilter shows the active filter description
func (sb StatusBar) WithFilter(desc string) StatusBar {
	sb.filter = desc
	return sb
}

// WithLoading marks the week as still loading
func (sb StatusBar) WithLoading(loading bool) StatusBar {
	sb.loading = loading
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	modeBadge := sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")
	right := sb.renderInfo()

	// status bar padding
	room := sb.width - 2 - lipgloss.Width(modeBadge) - lipgloss.Width(right)

	var content string
	hints := GetHints(sb.mode)
	if hints != "" && room > 4 {
		hints = ansi.Truncate(" │ "+hints, room-1, "…")
		content = lipgloss.JoinHorizontal(lipgloss.Left, modeBadge, sb.styles.StatusHint.Render(hints))
	} else {
		content = modeBadge
	}

	if gap := sb.width - 2 - lipgloss.Width(content) - lipgloss.Width(right); gap > 0 {
		content += lipgloss.NewStyle().Width(gap).Render("")
	}
	content += right

	return sb.styles.StatusBar.Width(sb.width).MaxHeight(1).Render(content)
}

func (sb StatusBar) renderInfo() string {
	var parts []string
	if sb.filter != "" {
		parts = append(parts, sb.styles.StatusInfo.Render("filter: "+sb.filter))
	}
	if sb.loading {
		parts = append(parts, sb.styles.StatusInfo.Render("loading…"))
	}
	if sb.online {
		parts = append(parts, sb.styles.StatusOnline.Render("● online"))
	} else {
		parts = append(parts, sb.styles.StatusOffline.Render("● offline"))
	}

	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sb.styles.StatusHint.Render("  ")
		}
		out += p
	}
	return out
}
