// Package compact renders one day of the week as a table. The dashboard
// switches to it when the terminal is too narrow for seven columns.
package compact

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/zavlong/etsy-task-tracker/internal/domain"
	"github.com/zavlong/etsy-task-tracker/internal/ui/board"
	"github.com/zavlong/etsy-task-tracker/internal/ui/format"
)

// MinBoardWidth is the narrowest window that still fits the seven-column grid
const MinBoardWidth = 84

// fixed column widths: # (5) + done (5) + pri (5) + time (8)
const fixedWidth = 23

// chrome lines above the rows: day strip, meta, header, separator
const chromeHeight = 4

// ListView renders the active day of a week as a table
type ListView struct {
	columns []board.Column
	day     int
	cursor  int
	styles  *Styles
	width   int
	height  int

	scrollOffset int
}

// NewListView creates a list for columns[day] with the given dimensions
func NewListView(columns []board.Column, day, width, height int) *ListView {
	if day < 0 || day >= len(columns) {
		day = 0
	}
	return &ListView{
		columns: columns,
		day:     day,
		styles:  NewStyles(),
		width:   width,
		height:  height,
	}
}

// SetCursor sets the cursor row and scrolls it into view
func (lv *ListView) SetCursor(index int) {
	n := lv.rowCount()
	switch {
	case index < 0 || n == 0:
		lv.cursor = 0
	case index >= n:
		lv.cursor = n - 1
	default:
		lv.cursor = index
	}
	lv.ensureCursorVisible()
}

// GetCursor returns the current cursor row
func (lv *ListView) GetCursor() int {
	return lv.cursor
}

func (lv *ListView) rowCount() int {
	if len(lv.columns) == 0 {
		return 0
	}
	return len(lv.columns[lv.day].Tasks)
}

func (lv *ListView) visibleRows() int {
	return max(1, lv.height-chromeHeight)
}

func (lv *ListView) ensureCursorVisible() {
	visible := lv.visibleRows()
	if lv.cursor < lv.scrollOffset {
		lv.scrollOffset = lv.cursor
	} else if lv.cursor >= lv.scrollOffset+visible {
		lv.scrollOffset = lv.cursor - visible + 1
	}
}

// Render renders the day strip, the active day's meta line and its task table
func (lv *ListView) Render() string {
	if len(lv.columns) == 0 {
		return lv.styles.Row.Render("No days to display")
	}
	col := lv.columns[lv.day]

	lines := []string{lv.renderTabs(), lv.renderMeta(col)}
	if len(col.Tasks) == 0 {
		lines = append(lines, lv.styles.Meta.Render("Nothing due"))
	} else {
		lines = append(lines, lv.renderHeader(), lv.renderSeparator())
		end := min(len(col.Tasks), lv.scrollOffset+lv.visibleRows())
		for i := lv.scrollOffset; i < end; i++ {
			lines = append(lines, lv.renderRow(i, col.Tasks[i], col.Done[col.Tasks[i].ID]))
		}
	}

	return lipgloss.NewStyle().MaxWidth(lv.width).MaxHeight(lv.height).
		Render(strings.Join(lines, "\n"))
}

// renderTabs renders one tab per day with its progress
func (lv *ListView) renderTabs() string {
	tabs := make([]string, 0, len(lv.columns))
	for i, col := range lv.columns {
		label := col.Date.Format("Mon")
		if lv.width >= 70 {
			label += " " + format.Percent(col.Progress)
		}
		style := lv.styles.Tab
		switch {
		case i == lv.day:
			style = lv.styles.TabActive
		case col.Today:
			style = lv.styles.TabToday
		}
		tabs = append(tabs, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (lv *ListView) renderMeta(col board.Column) string {
	done := 0
	for _, t := range col.Tasks {
		if col.Done[t.ID] {
			done++
		}
	}
	meta := fmt.Sprintf("%s · %d/%d done · %s · %s",
		col.Date.Format("Monday Jan 2"), done, len(col.Tasks),
		format.Minutes(col.Minutes), format.Percent(col.Progress))
	return lv.styles.Meta.Render(meta)
}

func (lv *ListView) titleWidth() int {
	return max(10, lv.width-fixedWidth)
}

func (lv *ListView) renderHeader() string {
	cells := []string{
		lv.styles.HeaderCell.Width(5).Render("#"),
		lv.styles.HeaderCell.Width(5).Render("Done"),
		lv.styles.HeaderCell.Width(lv.titleWidth()).Render("Task"),
		lv.styles.HeaderCell.Width(5).Render("Pri"),
		lv.styles.HeaderCell.Width(8).Render("Time"),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (lv *ListView) renderSeparator() string {
	return lv.styles.Separator.Render(strings.Repeat("─", lv.width))
}

func (lv *ListView) renderRow(index int, task domain.Task, done bool) string {
	isActive := index == lv.cursor

	rowStyle := lv.styles.Row
	if isActive {
		rowStyle = lv.styles.RowActive
	}

	indicator := "  "
	if isActive {
		indicator = lv.styles.Cursor.Render("▶ ")
	}
	number := rowStyle.Width(5).Render(indicator + lv.styles.ColNumber.Render(fmt.Sprintf("%2d", index+1)))

	box := lv.styles.Pending.Render("[ ]")
	if done {
		box = lv.styles.Done.Render("[✓]")
	}

	cells := []string{
		number,
		rowStyle.Width(5).Render(box),
		rowStyle.Width(lv.titleWidth()).Render(ansi.Truncate(task.Name, lv.titleWidth()-1, "…")),
		lv.styles.Priority(task.Priority).Width(5).Render(task.Priority.Short()),
		lv.styles.ColTime.Width(8).Render(format.Minutes(task.Minutes)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
