package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zavlong/etsy-task-tracker/internal/core/tracker"
	"github.com/zavlong/etsy-task-tracker/internal/domain"
)

// Message types for async operations

type weekLoadedMsg struct {
	weekKey string
	record  domain.WeekRecord
}

type weekSavedMsg struct {
	weekKey string
}

type tickMsg time.Time

// loadCmd fetches one week; the result carries its key so a late reply
// for a week we have navigated away from can be recognised
func (m Model) loadCmd(req tracker.LoadRequest) tea.Cmd {
	backend, timeout := m.backend, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return weekLoadedMsg{weekKey: req.WeekKey, record: backend.Load(ctx, req.WeekKey)}
	}
}

// saveCmd persists a snapshot; failures are logged by the backend
func (m Model) saveCmd(req tracker.SaveRequest) tea.Cmd {
	backend, timeout := m.backend, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		backend.Save(ctx, req.WeekKey, req.Record)
		return weekSavedMsg{weekKey: req.WeekKey}
	}
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
