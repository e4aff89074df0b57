package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zavlong/etsy-task-tracker/internal/config"
	"github.com/zavlong/etsy-task-tracker/internal/core/tracker"
	"github.com/zavlong/etsy-task-tracker/internal/domain"
	"github.com/zavlong/etsy-task-tracker/internal/services/backend"
	"github.com/zavlong/etsy-task-tracker/internal/ui/format"
)

// Output formats accepted by --output
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

var dayNames = [domain.DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Dependencies holds all the services needed for CLI commands
type Dependencies struct {
	Config  *config.Config
	Client  *backend.Client
	Catalog domain.Catalog
	Logger  *slog.Logger
	Out     io.Writer
	Now     func() time.Time
}

// NewDependencies creates a new Dependencies instance with all required services
func NewDependencies(cfg *config.Config, logger *slog.Logger, out io.Writer) *Dependencies {
	httpClient := &http.Client{Timeout: cfg.Client.Timeout()}
	return &Dependencies{
		Config:  cfg,
		Client:  backend.NewClient(cfg.Client.BaseURL, httpClient, logger),
		Catalog: domain.DefaultCatalog(),
		Logger:  logger,
		Out:     out,
		Now:     time.Now,
	}
}

// ParseDay accepts a column index (0 = Monday) or a weekday name, short
// ("tue") or full ("Tuesday")
func ParseDay(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if err := domain.ParseDay(n); err != nil {
			return 0, err
		}
		return n, nil
	}
	for i, name := range dayNames {
		long := time.Weekday((i + 1) % 7).String()
		if strings.EqualFold(s, name) || strings.EqualFold(s, long) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", domain.ErrInvalidDay, s)
}

// loadState fetches a week and returns it as a Ready tracker state.
// Unlike the dashboard, a backend failure is reported instead of
// silently replaced by an empty week.
func loadState(ctx context.Context, deps *Dependencies, week time.Time) (tracker.State, error) {
	state, req := tracker.New(deps.Catalog, week)
	rec, err := deps.Client.Fetch(ctx, req.WeekKey)
	if err != nil {
		return state, err
	}
	state, _ = state.Loaded(req.WeekKey, rec)
	return state, nil
}

// weekReport is the machine-readable shape of `week`
type weekReport struct {
	Week     string       `json:"week" yaml:"week"`
	Progress int          `json:"progress" yaml:"progress"`
	Stats    domain.Stats `json:"stats" yaml:"stats"`
	Days     []dayReport  `json:"days" yaml:"days"`
}

type dayReport struct {
	Day      string       `json:"day" yaml:"day"`
	Date     string       `json:"date" yaml:"date"`
	Progress float64      `json:"progress" yaml:"progress"`
	Tasks    []taskReport `json:"tasks" yaml:"tasks"`
}

type taskReport struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Done bool   `json:"done" yaml:"done"`
}

func buildWeekReport(state tracker.State) weekReport {
	r := weekReport{
		Week:     state.WeekKey(),
		Progress: state.WeekProgress(),
		Stats:    state.Record.Stats,
	}
	for day := 0; day < domain.DaysPerWeek; day++ {
		d := dayReport{
			Day:      dayNames[day],
			Date:     domain.DayDate(state.WeekStart, day).Format(domain.WeekKeyLayout),
			Progress: state.DayProgress(day),
		}
		for _, t := range state.TasksForDay(day) {
			d.Tasks = append(d.Tasks, taskReport{
				ID:   t.ID,
				Name: t.Name,
				Done: state.Record.Completions.IsComplete(t.ID, day),
			})
		}
		r.Days = append(r.Days, d)
	}
	return r
}

// WeekCommand prints one week's checklist, stats and progress
func WeekCommand(ctx context.Context, deps *Dependencies, week time.Time, output string) error {
	state, err := loadState(ctx, deps, week)
	if err != nil {
		return fmt.Errorf("failed to load week: %w", err)
	}
	report := buildWeekReport(state)

	switch output {
	case OutputJSON:
		return writeJSON(deps.Out, report)
	case OutputYAML:
		return writeYAML(deps.Out, report)
	case OutputTable, "":
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", output)
	}

	fmt.Fprintf(deps.Out, "%s  ·  %d%% done\n", format.WeekLabel(state.WeekStart), report.Progress)
	printStats(deps.Out, state.Record.Stats)
	fmt.Fprintln(deps.Out)

	w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DAY\tDONE\tTASK\tID")
	fmt.Fprintln(w, "---\t----\t----\t--")
	for _, d := range report.Days {
		label := fmt.Sprintf("%s %s", d.Day, format.Percent(d.Progress))
		for _, t := range d.Tasks {
			mark := "[ ]"
			if t.Done {
				mark = "[x]"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", label, mark, t.Name, t.ID)
			label = ""
		}
	}
	return w.Flush()
}

// ToggleCommand flips one task's completion for one day and saves the week
func ToggleCommand(ctx context.Context, deps *Dependencies, week time.Time, taskID, dayArg string) error {
	day, err := ParseDay(dayArg)
	if err != nil {
		return err
	}
	state, err := loadState(ctx, deps, week)
	if err != nil {
		return fmt.Errorf("failed to load week: %w", err)
	}

	state, req, err := state.Toggle(taskID, day)
	if err != nil {
		return err
	}
	if err := deps.Client.Push(ctx, req.WeekKey, req.Record); err != nil {
		return fmt.Errorf("failed to save week: %w", err)
	}

	deps.Logger.Info("task toggled", "week", req.WeekKey, "task", taskID, "day", day)
	status := "not done"
	if state.Record.Completions.IsComplete(taskID, day) {
		status = "done"
	}
	task, _ := deps.Catalog.Lookup(taskID)
	fmt.Fprintf(deps.Out, "✓ %s on %s %s marked %s (%s of the day done)\n",
		task.Name, dayNames[day], domain.DayDate(state.WeekStart, day).Format("Jan 2"),
		status, format.Percent(state.DayProgress(day)))
	if !task.AppliesOn(day) {
		fmt.Fprintf(deps.Out, "  %s is not due on %s, so the day's progress is unchanged\n", task.ID, dayNames[day])
	}
	return nil
}

// StatCommand stores one weekly counter
func StatCommand(ctx context.Context, deps *Dependencies, week time.Time, fieldArg, raw string) error {
	field, err := domain.ParseStatField(fieldArg)
	if err != nil {
		return err
	}
	state, err := loadState(ctx, deps, week)
	if err != nil {
		return fmt.Errorf("failed to load week: %w", err)
	}

	state, req, err := state.UpdateStat(field, raw)
	if err != nil {
		return err
	}
	if err := deps.Client.Push(ctx, req.WeekKey, req.Record); err != nil {
		return fmt.Errorf("failed to save week: %w", err)
	}

	value := state.Record.Stats.Get(field)
	deps.Logger.Info("stat updated", "week", req.WeekKey, "field", field, "value", value)
	fmt.Fprintf(deps.Out, "✓ %s for %s set to %s\n",
		field.Label(), format.WeekLabel(state.WeekStart), format.Stat(field == domain.StatRevenue, value))
	return nil
}

// SummaryCommand prints the totals across every stored week
func SummaryCommand(ctx context.Context, deps *Dependencies, output string) error {
	s, err := deps.Client.Summary(ctx)
	if err != nil {
		return fmt.Errorf("failed to load summary: %w", err)
	}

	switch output {
	case OutputJSON:
		return writeJSON(deps.Out, s)
	case OutputYAML:
		return writeYAML(deps.Out, s)
	case OutputTable, "":
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", output)
	}

	w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Weeks tracked\t%s\n", format.Count(s.WeeksTracked))
	fmt.Fprintf(w, "Items listed\t%s\n", format.Count(s.TotalListed))
	fmt.Fprintf(w, "Sales\t%s\n", format.Count(s.TotalSales))
	fmt.Fprintf(w, "Revenue\t%s\n", format.Money(s.TotalRevenue))
	return w.Flush()
}

// TasksOptions narrows the tasks listing
type TasksOptions struct {
	Day       int // -1 lists the whole catalog
	Priority  []string
	Frequency []string
	Search    string
	Sort      string
	Desc      bool
}

// TasksCommand prints the catalog, or the tasks due on one day
func TasksCommand(deps *Dependencies, opts TasksOptions) error {
	tasks := []domain.Task(deps.Catalog)
	if opts.Day >= 0 {
		if err := domain.ParseDay(opts.Day); err != nil {
			return err
		}
		tasks = deps.Catalog.TasksForDay(opts.Day)
	}

	filter := domain.NewFilter()
	for _, p := range opts.Priority {
		filter.TogglePriority(domain.Priority(strings.ToLower(p)))
	}
	for _, f := range opts.Frequency {
		filter.ToggleFrequency(domain.Frequency(strings.ToLower(f)))
	}
	filter.SearchQuery = opts.Search
	tasks = filter.Apply(tasks)

	sort := domain.Sort{Field: domain.ParseSortField(opts.Sort), Order: domain.SortAsc}
	if opts.Desc {
		sort.Order = domain.SortDesc
	}
	tasks = sort.Apply(tasks)

	if len(tasks) == 0 {
		fmt.Fprintln(deps.Out, "No tasks match")
		return nil
	}

	w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTASK\tPRIORITY\tREPEATS\tTIME")
	fmt.Fprintln(w, "--\t----\t--------\t-------\t----")
	total := 0
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Priority, repeats(t), format.Minutes(t.Minutes))
		total += t.Minutes
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if opts.Day >= 0 {
		fmt.Fprintf(deps.Out, "\n%d tasks, %s on %s\n", len(tasks), format.Minutes(total), dayNames[opts.Day])
	}
	return nil
}

func repeats(t domain.Task) string {
	if t.Frequency == domain.FrequencyDaily {
		return "daily"
	}
	names := make([]string, 0, len(t.Days))
	for _, d := range t.Days {
		names = append(names, dayNames[d])
	}
	return strings.Join(names, ",")
}

func printStats(out io.Writer, s domain.Stats) {
	parts := make([]string, 0, len(domain.StatFields))
	for _, f := range domain.StatFields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Label(), format.Stat(f == domain.StatRevenue, s.Get(f))))
	}
	fmt.Fprintln(out, strings.Join(parts, "  ·  "))
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
