package board

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/zavlong/etsy-task-tracker/internal/domain"
	"github.com/zavlong/etsy-task-tracker/internal/ui/styles"
)

// renderCell renders one task row inside a day column
func renderCell(task domain.Task, done bool, isCursor bool, width int, s *styles.Styles) string {
	box := s.CellPending.Render("[ ]")
	if done {
		box = s.CellDone.Render("[✓]")
	}

	badge := s.PriorityBadge(task.Priority).Render(task.Priority.Short())

	// box, badge and the spaces between them
	nameWidth := width - 8
	if nameWidth < 1 {
		nameWidth = 1
	}
	name := ansi.Truncate(task.Name, nameWidth, "…")

	line := lipgloss.JoinHorizontal(lipgloss.Left, box, " ", badge, " ", s.TaskName.Render(name))

	cellStyle := s.Cell
	if isCursor {
		cellStyle = s.CellActive
	}
	return cellStyle.Width(width).Render(line)
}
