package app

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/zavlong/etsy-task-tracker/internal/domain"
	"github.com/zavlong/etsy-task-tracker/internal/ui/board"
	"github.com/zavlong/etsy-task-tracker/internal/ui/compact"
	"github.com/zavlong/etsy-task-tracker/internal/ui/format"
	"github.com/zavlong/etsy-task-tracker/internal/ui/overlay"
	"github.com/zavlong/etsy-task-tracker/internal/ui/statusbar"
	"github.com/zavlong/etsy-task-tracker/internal/ui/toast"
)

// View renders header, grid, overlays, toasts and status bar within the window
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	sb := statusbar.New(m.Mode(), m.width, m.styles).
		WithOnline(m.isOnline).
		WithFilter(m.filter.Describe()).
		WithLoading(!m.state.Ready()).
		Render()

	header := m.renderHeader()

	var bottom []string
	if s, ok := m.overlayStack.Current().(*overlay.SearchOverlay); ok {
		bottom = append(bottom, s.View())
	}
	if t := toast.New(m.styles).Render(m.toasts, m.width); t != "" {
		bottom = append(bottom, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, t))
	}
	bottom = append(bottom, sb)
	footer := lipgloss.JoinVertical(lipgloss.Left, bottom...)

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	body := m.renderBody(bodyHeight)
	view := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return lipgloss.NewStyle().MaxHeight(m.height).MaxWidth(m.width).Render(view)
}

// renderBody shows the grid, the loading spinner or a centered modal overlay
func (m Model) renderBody(height int) string {
	if current := m.overlayStack.Current(); current != nil {
		if w, h := current.Size(); w > 0 {
			content := current.View()
			if title := current.Title(); title != "" {
				content = lipgloss.JoinVertical(lipgloss.Left, m.styles.OverlayTitle.Render(title), content)
			}
			box := m.styles.Overlay.
				Width(min(w, m.width-2)).
				MaxHeight(min(h, height)).
				Render(content)
			return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, box)
		}
	}

	if !m.state.Ready() {
		return m.renderLoading(height)
	}

	columns := m.buildColumns()
	pos := m.nav.GetPosition(columns)
	if m.compactView() {
		lv := compact.NewListView(columns, pos.Column, m.width, height)
		lv.SetCursor(pos.Task)
		return lv.Render()
	}
	return board.Render(columns, board.Cursor{Column: pos.Column, Task: pos.Task}, m.styles, m.width, height)
}

// renderHeader renders the title, week label, stats and the week progress bar
func (m Model) renderHeader() string {
	title := m.styles.Title.Render("Etsy Shop Tracker") + "  " +
		m.styles.WeekLabel.Render(format.WeekLabel(m.state.WeekStart))

	var stats []string
	for i, f := range domain.StatFields {
		value := "–"
		if m.state.Ready() {
			value = format.Stat(f == domain.StatRevenue, m.state.Record.Stats.Get(f))
		}
		stats = append(stats,
			m.styles.StatLabel.Render(strconv.Itoa(i+1)+" "+f.Label()+" ")+m.styles.StatValue.Render(value))
	}
	statsLine := strings.Join(stats, m.styles.StatLabel.Render("  ·  "))

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(statsLine)
	var top string
	if gap >= 2 {
		top = title + strings.Repeat(" ", gap) + statsLine
	} else {
		top = lipgloss.JoinVertical(lipgloss.Left, title, statsLine)
	}

	pct := 0
	if m.state.Ready() {
		pct = m.state.WeekProgress()
	}
	label := " " + format.Percent(float64(pct)) + " of the week done"
	bar := m.progress
	bar.Width = max(10, m.width-lipgloss.Width(label))
	progressLine := bar.ViewAs(float64(pct)/100) + m.styles.StatLabel.Render(label)

	return lipgloss.JoinVertical(lipgloss.Left, top, progressLine)
}

// renderLoading renders a centered loading spinner with message
func (m Model) renderLoading(height int) string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.spinner.View(),
		"Loading week of "+m.state.WeekStart.Format("Jan 2, 2006")+"...",
	)

	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, content)
}
