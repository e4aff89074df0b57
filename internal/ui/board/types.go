package board

import (
	"time"

	"github.com/zavlong/etsy-task-tracker/internal/core/tracker"
	"github.com/zavlong/etsy-task-tracker/internal/domain"
)

// Column is one day of the week grid
type Column struct {
	Day      int
	Date     time.Time
	Tasks    []domain.Task
	Done     map[string]bool
	Minutes  int
	Progress float64
	Today    bool
}

// Cursor represents the current cursor position
type Cursor struct {
	Column int // Day index (0=Monday)
	Task   int // Row within the day's visible tasks
}

// BuildColumns lays out the seven day columns for a tracker state.
// Filter and sort narrow the visible rows only; minutes and progress
// always cover every task due that day.
func BuildColumns(state tracker.State, today int, filter *domain.Filter, sort *domain.Sort) []Column {
	columns := make([]Column, domain.DaysPerWeek)
	for day := range columns {
		tasks := state.TasksForDay(day)
		col := Column{
			Day:      day,
			Date:     domain.DayDate(state.WeekStart, day),
			Minutes:  state.Catalog.TotalMinutes(day),
			Progress: state.DayProgress(day),
			Today:    day == today,
			Done:     make(map[string]bool, len(tasks)),
		}

		if filter != nil {
			tasks = filter.Apply(tasks)
		}
		if sort != nil {
			tasks = sort.Apply(tasks)
		}
		col.Tasks = tasks

		for _, t := range tasks {
			if state.Record.Completions.IsComplete(t.ID, day) {
				col.Done[t.ID] = true
			}
		}
		columns[day] = col
	}
	return columns
}
