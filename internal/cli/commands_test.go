package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zavlong/etsy-task-tracker/internal/config"
	"github.com/zavlong/etsy-task-tracker/internal/domain"
	"github.com/zavlong/etsy-task-tracker/internal/server"
	"github.com/zavlong/etsy-task-tracker/internal/store"
)

var testWeek = time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newBackend serves the real API over an in-memory database
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := store.Open(store.MemoryPath, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	srv := server.New(server.Options{AllowedOrigins: []string{"*"}}, st, discardLogger())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func newTestDeps(t *testing.T, baseURL string) (*Dependencies, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Client.BaseURL = baseURL
	out := &bytes.Buffer{}
	return NewDependencies(cfg, discardLogger(), out), out
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"6", 6, false},
		{" 3 ", 3, false},
		{"mon", 0, false},
		{"Tue", 1, false},
		{"wednesday", 2, false},
		{"SUN", 6, false},
		{"Sunday", 6, false},
		{"THURSDAY", 3, false},
		{"7", 0, true},
		{"-1", 0, true},
		{"mo", 0, true},
		{"funday", 0, true},
		{"monkey", 0, true},
		{"Wedding", 0, true},
		{"sunny", 0, true},
		{"tues", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDay(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToggleCommand_SavesAndReports(t *testing.T) {
	ts := newBackend(t)
	deps, out := newTestDeps(t, ts.URL)
	ctx := context.Background()

	require.NoError(t, ToggleCommand(ctx, deps, testWeek, "orders", "wed"))
	assert.Contains(t, out.String(), "Process new orders on Wed Jan 3 marked done")
	assert.Contains(t, out.String(), "14%")

	rec, err := deps.Client.Fetch(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.True(t, rec.Completions.IsComplete("orders", 2))

	out.Reset()
	require.NoError(t, ToggleCommand(ctx, deps, testWeek, "orders", "2"))
	assert.Contains(t, out.String(), "marked not done")

	rec, err = deps.Client.Fetch(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.False(t, rec.Completions.IsComplete("orders", 2))
}

func TestToggleCommand_Rejects(t *testing.T) {
	ts := newBackend(t)
	deps, _ := newTestDeps(t, ts.URL)
	ctx := context.Background()

	tests := []struct {
		name   string
		task   string
		day    string
		target error
	}{
		{"unknown task", "taxes", "mon", domain.ErrUnknownTask},
		{"bad day", "orders", "8", domain.ErrInvalidDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ToggleCommand(ctx, deps, testWeek, tt.task, tt.day)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestToggleCommand_DayNotDue(t *testing.T) {
	ts := newBackend(t)
	deps, out := newTestDeps(t, ts.URL)
	ctx := context.Background()

	require.NoError(t, ToggleCommand(ctx, deps, testWeek, "seo", "mon"))
	assert.Contains(t, out.String(), "marked done (0% of the day done)")
	assert.Contains(t, out.String(), "seo is not due on Mon")

	rec, err := deps.Client.Fetch(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.True(t, rec.Completions.IsComplete("seo", 0))
}

func TestToggleCommand_BackendDown(t *testing.T) {
	ts := newBackend(t)
	deps, _ := newTestDeps(t, ts.URL)
	ts.Close()

	err := ToggleCommand(context.Background(), deps, testWeek, "orders", "mon")
	require.Error(t, err)
	var be *domain.BackendError
	assert.ErrorAs(t, err, &be)
}

func TestStatCommand(t *testing.T) {
	ts := newBackend(t)
	deps, out := newTestDeps(t, ts.URL)
	ctx := context.Background()

	require.NoError(t, StatCommand(ctx, deps, testWeek, "revenue", "1250.75"))
	assert.Contains(t, out.String(), "Revenue for Week of Jan 1, 2024 set to $1,250")

	require.NoError(t, StatCommand(ctx, deps, testWeek, "sales", "-3"))

	rec, err := deps.Client.Fetch(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Revenue: 1250}, rec.Stats)

	err = StatCommand(ctx, deps, testWeek, "profit", "10")
	assert.ErrorIs(t, err, domain.ErrUnknownStat)
}

func TestWeekCommand_Table(t *testing.T) {
	ts := newBackend(t)
	deps, out := newTestDeps(t, ts.URL)
	ctx := context.Background()

	require.NoError(t, ToggleCommand(ctx, deps, testWeek, "seo", "wed"))
	require.NoError(t, StatCommand(ctx, deps, testWeek, "listed", "4"))
	out.Reset()

	require.NoError(t, WeekCommand(ctx, deps, testWeek, OutputTable))
	got := out.String()

	assert.Contains(t, got, "Week of Jan 1, 2024")
	assert.Contains(t, got, "2% done")
	assert.Contains(t, got, "Items Listed 4")
	assert.Contains(t, got, "Revenue $0")
	assert.Contains(t, got, "DAY")
	assert.Regexp(t, `\[x\]\s+Update SEO tags`, got)
	assert.Regexp(t, `Sun 0%`, got)
}

func TestWeekCommand_Structured(t *testing.T) {
	ts := newBackend(t)
	deps, out := newTestDeps(t, ts.URL)
	ctx := context.Background()
	require.NoError(t, ToggleCommand(ctx, deps, testWeek, "orders", "mon"))

	t.Run("json", func(t *testing.T) {
		out.Reset()
		require.NoError(t, WeekCommand(ctx, deps, testWeek, OutputJSON))

		var report weekReport
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		assert.Equal(t, "2024-01-01", report.Week)
		require.Len(t, report.Days, domain.DaysPerWeek)
		assert.Equal(t, "Mon", report.Days[0].Day)
		assert.Equal(t, "2024-01-07", report.Days[6].Date)
		assert.Len(t, report.Days[0].Tasks, 6)
		assert.True(t, report.Days[0].Tasks[1].Done)
		assert.InDelta(t, 100.0/6.0, report.Days[0].Progress, 1e-9)
	})

	t.Run("yaml", func(t *testing.T) {
		out.Reset()
		require.NoError(t, WeekCommand(ctx, deps, testWeek, OutputYAML))

		var report weekReport
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &report))
		assert.Equal(t, "2024-01-01", report.Week)
		assert.Len(t, report.Days[3].Tasks, 7) // sourcing on Thursday
	})

	t.Run("unknown", func(t *testing.T) {
		err := WeekCommand(ctx, deps, testWeek, "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown output format")
	})
}

func TestWeekCommand_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()
	deps, _ := newTestDeps(t, ts.URL)

	err := WeekCommand(context.Background(), deps, testWeek, OutputTable)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load week")
}

func TestSummaryCommand(t *testing.T) {
	ts := newBackend(t)
	deps, out := newTestDeps(t, ts.URL)
	ctx := context.Background()

	require.NoError(t, StatCommand(ctx, deps, testWeek, "revenue", "1000"))
	require.NoError(t, StatCommand(ctx, deps, testWeek.AddDate(0, 0, 7), "revenue", "500"))
	require.NoError(t, StatCommand(ctx, deps, testWeek.AddDate(0, 0, 7), "sales", "3"))
	out.Reset()

	require.NoError(t, SummaryCommand(ctx, deps, OutputTable))
	assert.Regexp(t, `Weeks tracked\s+2`, out.String())
	assert.Regexp(t, `Sales\s+3`, out.String())
	assert.Regexp(t, `Revenue\s+\$1,500`, out.String())

	out.Reset()
	require.NoError(t, SummaryCommand(ctx, deps, OutputJSON))
	var s domain.Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &s))
	assert.Equal(t, domain.Summary{TotalSales: 3, TotalRevenue: 1500, WeeksTracked: 2}, s)
}

func TestTasksCommand(t *testing.T) {
	deps, out := newTestDeps(t, "http://unused.invalid")

	tests := []struct {
		name     string
		opts     TasksOptions
		contains []string
		excludes []string
	}{
		{
			name:     "whole catalog",
			opts:     TasksOptions{Day: -1},
			contains: []string{"messages", "analytics", "Tue,Thu,Sun", "daily", "1h 30m"},
		},
		{
			name:     "one day",
			opts:     TasksOptions{Day: 2},
			contains: []string{"seo", "7 tasks"},
			excludes: []string{"sourcing", "analytics"},
		},
		{
			name:     "weekly medium",
			opts:     TasksOptions{Day: -1, Priority: []string{"medium"}, Frequency: []string{"weekly"}},
			contains: []string{"seo", "research", "clean", "analytics"},
			excludes: []string{"social", "sourcing"},
		},
		{
			name:     "search",
			opts:     TasksOptions{Day: -1, Search: "ship"},
			contains: []string{"shipping"},
			excludes: []string{"messages"},
		},
		{
			name:     "no match",
			opts:     TasksOptions{Day: -1, Search: "taxes"},
			contains: []string{"No tasks match"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			require.NoError(t, TasksCommand(deps, tt.opts))
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}

func TestTasksCommand_SortByTimeDesc(t *testing.T) {
	deps, out := newTestDeps(t, "http://unused.invalid")

	require.NoError(t, TasksCommand(deps, TasksOptions{Day: 3, Sort: "time", Desc: true}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Greater(t, len(lines), 3)
	assert.True(t, strings.HasPrefix(lines[2], "sourcing"), lines[2])
}

func TestTasksCommand_BadDay(t *testing.T) {
	deps, _ := newTestDeps(t, "http://unused.invalid")
	assert.ErrorIs(t, TasksCommand(deps, TasksOptions{Day: 9}), domain.ErrInvalidDay)
}
