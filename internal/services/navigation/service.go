// Package navigation provides cursor and navigation state for the week grid
package navigation

import (
	"github.com/zavlong/etsy-task-tracker/internal/domain"
	"github.com/zavlong/etsy-task-tracker/internal/ui/board"
)

// Position represents a computed position in the grid
type Position struct {
	Column int  // Day index, 0=Monday
	Task   int  // Row within the day's visible tasks
	Valid  bool // Whether a task sits under the cursor
}

// Cursor tracks the selected day and task. The task is kept by ID so the
// selection survives filter and sort changes; Row is the fallback when the
// task is not visible in the day.
type Cursor struct {
	Day    int
	TaskID string
	Row    int
}

func clampDay(day, n int) int {
	if day < 0 {
		return 0
	}
	if day >= n {
		return n - 1
	}
	return day
}

// FindPosition computes where the cursor lands in the given columns
func (c *Cursor) FindPosition(columns []board.Column) Position {
	if len(columns) == 0 {
		return Position{}
	}
	col := clampDay(c.Day, len(columns))
	tasks := columns[col].Tasks

	if c.TaskID != "" {
		for i, t := range tasks {
			if t.ID == c.TaskID {
				return Position{Column: col, Task: i, Valid: true}
			}
		}
	}

	if len(tasks) == 0 {
		return Position{Column: col}
	}
	row := c.Row
	if row >= len(tasks) {
		row = len(tasks) - 1
	}
	if row < 0 {
		row = 0
	}
	return Position{Column: col, Task: row, Valid: true}
}

// settle pins the cursor to pos; an empty day keeps the previous task and row
func (c *Cursor) settle(columns []board.Column, pos Position) {
	c.Day = pos.Column
	if pos.Valid {
		c.Row = pos.Task
		c.TaskID = columns[pos.Column].Tasks[pos.Task].ID
	}
}

// MoveVertical moves up or down within the day
func (c *Cursor) MoveVertical(columns []board.Column, delta int) {
	pos := c.FindPosition(columns)
	if !pos.Valid {
		return
	}
	n := len(columns[pos.Column].Tasks)
	pos.Task += delta
	if pos.Task < 0 {
		pos.Task = 0
	}
	if pos.Task >= n {
		pos.Task = n - 1
	}
	c.settle(columns, pos)
}

// MoveHorizontal moves to an adjacent day, staying on the same task when
// it is due there too
func (c *Cursor) MoveHorizontal(columns []board.Column, delta int) {
	c.JumpToDay(columns, c.FindPosition(columns).Column+delta)
}

// JumpToDay moves to a specific day, keeping the task or the row
func (c *Cursor) JumpToDay(columns []board.Column, day int) {
	if len(columns) == 0 {
		return
	}
	if pos := c.FindPosition(columns); pos.Valid {
		c.Row = pos.Task
	}
	c.Day = clampDay(day, len(columns))
	c.settle(columns, c.FindPosition(columns))
}

// JumpToStart moves to the first task of the day
func (c *Cursor) JumpToStart(columns []board.Column) {
	pos := c.FindPosition(columns)
	if !pos.Valid {
		return
	}
	pos.Task = 0
	c.settle(columns, pos)
}

// JumpToEnd moves to the last task of the day
func (c *Cursor) JumpToEnd(columns []board.Column) {
	pos := c.FindPosition(columns)
	if !pos.Valid {
		return
	}
	pos.Task = len(columns[pos.Column].Tasks) - 1
	c.settle(columns, pos)
}

// Service manages navigation state
type Service struct {
	cursor Cursor
}

// NewService creates a new navigation service
func NewService() *Service {
	return &Service{}
}

// GetCursor returns the current cursor (for read access)
func (s *Service) GetCursor() *Cursor {
	return &s.cursor
}

// GetPosition returns the computed position of the cursor in the given columns
func (s *Service) GetPosition(columns []board.Column) Position {
	return s.cursor.FindPosition(columns)
}

// CurrentTask returns the task under the cursor and its day
func (s *Service) CurrentTask(columns []board.Column) (domain.Task, int, bool) {
	pos := s.cursor.FindPosition(columns)
	if !pos.Valid {
		return domain.Task{}, pos.Column, false
	}
	return columns[pos.Column].Tasks[pos.Task], pos.Column, true
}

// MoveDown moves cursor down in the current day
func (s *Service) MoveDown(columns []board.Column) {
	s.cursor.MoveVertical(columns, 1)
}

// MoveUp moves cursor up in the current day
func (s *Service) MoveUp(columns []board.Column) {
	s.cursor.MoveVertical(columns, -1)
}

// MoveLeft moves cursor to the previous day
func (s *Service) MoveLeft(columns []board.Column) {
	s.cursor.MoveHorizontal(columns, -1)
}

// MoveRight moves cursor to the next day
func (s *Service) MoveRight(columns []board.Column) {
	s.cursor.MoveHorizontal(columns, 1)
}

// GotoTop moves cursor to the first task of the day
func (s *Service) GotoTop(columns []board.Column) {
	s.cursor.JumpToStart(columns)
}

// GotoBottom moves cursor to the last task of the day
func (s *Service) GotoBottom(columns []board.Column) {
	s.cursor.JumpToEnd(columns)
}

// GotoDay moves cursor to a day column
func (s *Service) GotoDay(columns []board.Column, day int) {
	s.cursor.JumpToDay(columns, day)
}

// JumpToTaskByID selects a task in the current day if it is visible there
func (s *Service) JumpToTaskByID(columns []board.Column, taskID string) bool {
	if len(columns) == 0 {
		return false
	}
	pos := s.cursor.FindPosition(columns)
	for i, t := range columns[pos.Column].Tasks {
		if t.ID == taskID {
			s.cursor.settle(columns, Position{Column: pos.Column, Task: i, Valid: true})
			return true
		}
	}
	return false
}
