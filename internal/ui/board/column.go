package board

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/zavlong/etsy-task-tracker/internal/ui/format"
	"github.com/zavlong/etsy-task-tracker/internal/ui/styles"
)

// renderColumn renders a day header and its task rows
func renderColumn(col Column, cursorTask int, isActive bool, width int, height int, s *styles.Styles) string {
	headerStyle := s.DayHeader
	if col.Today {
		headerStyle = s.DayHeaderToday
	}
	header := headerStyle.Render(col.Date.Format("Mon Jan 2"))
	meta := s.DayMeta.Render(format.Minutes(col.Minutes) + " · " + format.Percent(col.Progress))

	// column border and padding
	cellWidth := width - 4
	var rows []string
	for i, task := range col.Tasks {
		isCursor := isActive && i == cursorTask
		rows = append(rows, renderCell(task, col.Done[task.ID], isCursor, cellWidth, s))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, meta, strings.Join(rows, "\n"))

	// border rows
	innerHeight := height - 2
	if innerHeight < 1 {
		innerHeight = 1
	}
	return s.DayColumn(col.Today, isActive).
		Width(width - 2).
		Height(innerHeight).
		MaxHeight(height).
		Render(content)
}
