// Package tracker holds the dashboard's week state and the transitions
// that toggles, stat edits and week navigation apply to it.
//
// State is a value: every transition returns a new State and, when the
// change has to reach the backend, a request describing the I/O to perform.
// Requests carry their own week key and record snapshot so they can run on
// another goroutine after the State has moved on.
//
//	Loading ──Loaded(current key)──▶ Ready ──Toggle/UpdateStat──▶ Ready
//	   ▲                               │
//	   └──────────ShiftWeek/GoTo───────┘
package tracker

import (
	"fmt"
	"time"

	"github.com/zavlong/etsy-task-tracker/internal/domain"
)

// Phase is the lifecycle of the displayed week
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
)

// String returns the display string
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// LoadRequest asks for the record of one week
type LoadRequest struct {
	WeekKey string
}

// SaveRequest carries a snapshot of a week's record to persist
type SaveRequest struct {
	WeekKey string
	Record  domain.WeekRecord
}

// State is the single owner of the active week record
type State struct {
	Catalog   domain.Catalog
	WeekStart time.Time
	Record    domain.WeekRecord
	Phase     Phase
}

// New starts in Loading for the week containing ref
func New(catalog domain.Catalog, ref time.Time) (State, LoadRequest) {
	s := State{
		Catalog:   catalog,
		WeekStart: domain.WeekStart(ref),
		Record:    domain.DefaultWeekRecord(),
		Phase:     PhaseLoading,
	}
	return s, LoadRequest{WeekKey: s.WeekKey()}
}

// WeekKey returns the key of the displayed week
func (s State) WeekKey() string {
	return s.WeekStart.Format(domain.WeekKeyLayout)
}

// Ready reports whether the record may be shown and mutated
func (s State) Ready() bool {
	return s.Phase == PhaseReady
}

// Loaded applies a load result. Results for any other week, or arriving
// after the week is already Ready, are discarded and ok is false.
func (s State) Loaded(weekKey string, rec domain.WeekRecord) (next State, ok bool) {
	if weekKey != s.WeekKey() || s.Phase != PhaseLoading {
		return s, false
	}
	if rec.Completions == nil {
		rec.Completions = domain.CompletionRecord{}
	}
	s.Record = rec
	s.Phase = PhaseReady
	return s, true
}

// ShiftWeek moves by deltaDays, re-anchors to Monday and starts loading.
// The previous week's record is dropped immediately.
func (s State) ShiftWeek(deltaDays int) (State, LoadRequest) {
	return s.GoTo(domain.ShiftWeek(s.WeekStart, deltaDays))
}

// GoTo jumps to the week containing t and starts loading
func (s State) GoTo(t time.Time) (State, LoadRequest) {
	s.WeekStart = domain.WeekStart(t)
	s.Record = domain.DefaultWeekRecord()
	s.Phase = PhaseLoading
	return s, LoadRequest{WeekKey: s.WeekKey()}
}

// Toggle flips the completion flag of one task on one day. A day the
// task is not due on is flipped too; progress only counts due days.
func (s State) Toggle(taskID string, day int) (State, SaveRequest, error) {
	if !s.Ready() {
		return s, SaveRequest{}, domain.ErrNotReady
	}
	if err := domain.ParseDay(day); err != nil {
		return s, SaveRequest{}, err
	}
	if _, ok := s.Catalog.Lookup(taskID); !ok {
		return s, SaveRequest{}, fmt.Errorf("%w: %q", domain.ErrUnknownTask, taskID)
	}

	rec := s.Record.Clone()
	key := domain.CompletionKey(taskID, day)
	rec.Completions[key] = !rec.Completions[key]
	s.Record = rec
	return s, s.saveRequest(), nil
}

// UpdateStat parses raw with integer-prefix semantics and stores it.
// Unparseable or negative input becomes 0.
func (s State) UpdateStat(field domain.StatField, raw string) (State, SaveRequest, error) {
	if !s.Ready() {
		return s, SaveRequest{}, domain.ErrNotReady
	}
	if _, err := domain.ParseStatField(string(field)); err != nil {
		return s, SaveRequest{}, err
	}

	rec := s.Record.Clone()
	rec.Stats = rec.Stats.With(field, domain.ParseStatValue(raw))
	s.Record = rec
	return s, s.saveRequest(), nil
}

func (s State) saveRequest() SaveRequest {
	return SaveRequest{WeekKey: s.WeekKey(), Record: s.Record.Clone()}
}

// TasksForDay returns the catalog tasks due on a day
func (s State) TasksForDay(day int) []domain.Task {
	return s.Catalog.TasksForDay(day)
}

// DayProgress returns the displayed week's progress for one day
func (s State) DayProgress(day int) float64 {
	return s.Catalog.DayProgress(day, s.Record.Completions)
}

// WeekProgress returns the displayed week's rounded progress
func (s State) WeekProgress() int {
	return s.Catalog.WeekProgress(s.Record.Completions)
}

// Today returns the day column of now when it falls in the displayed week, or -1
func (s State) Today(now time.Time) int {
	if domain.WeekKey(now) != s.WeekKey() {
		return -1
	}
	return domain.DayIndex(now)
}
