// Package board renders the week grid: one column per day, one row per due task.
package board

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/zavlong/etsy-task-tracker/internal/ui/styles"
)

// Render renders the seven day columns side by side
func Render(columns []Column, cursor Cursor, s *styles.Styles, width int, height int) string {
	if len(columns) == 0 {
		return ""
	}

	columnWidth := width / len(columns)

	var columnStrings []string
	for i, col := range columns {
		isActive := i == cursor.Column
		cursorTask := 0
		if isActive {
			cursorTask = cursor.Task
		}

		columnStr := renderColumn(col, cursorTask, isActive, columnWidth, height, s)

		sized := lipgloss.NewStyle().Width(columnWidth).MaxHeight(height).Render(columnStr)
		columnStrings = append(columnStrings, sized)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnStrings...)
}
