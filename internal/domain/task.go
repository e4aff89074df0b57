// Package domain contains the shop task catalog, week records and progress math.
package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DaysPerWeek is the number of day columns in a week view
const DaysPerWeek = 7

// Frequency says how often a task recurs
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// String returns the display string
func (f Frequency) String() string {
	return string(f)
}

// Priority represents task priority
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns 0 for the most urgent priority
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Short returns single character representation
func (p Priority) Short() string {
	switch p {
	case PriorityHigh:
		return "H"
	case PriorityMedium:
		return "M"
	case PriorityLow:
		return "L"
	default:
		return "?"
	}
}

// String returns the display string
func (p Priority) String() string {
	return string(p)
}

// Task is a recurring chore from the catalog
type Task struct {
	ID        string    `json:"id" yaml:"id" validate:"required,excludes=-"`
	Name      string    `json:"name" yaml:"name" validate:"required"`
	Frequency Frequency `json:"frequency" yaml:"frequency" validate:"oneof=daily weekly"`
	Priority  Priority  `json:"priority" yaml:"priority" validate:"oneof=high medium low"`
	Minutes   int       `json:"time" yaml:"time" validate:"gte=0"`
	Days      []int     `json:"days,omitempty" yaml:"days,omitempty" validate:"dive,gte=0,lte=6"`
}

// AppliesOn reports whether the task is due on the given weekday index
func (t Task) AppliesOn(day int) bool {
	if day < 0 || day >= DaysPerWeek {
		return false
	}
	switch t.Frequency {
	case FrequencyDaily:
		return true
	case FrequencyWeekly:
		for _, d := range t.Days {
			if d == day {
				return true
			}
		}
	}
	return false
}

// Catalog is the ordered, read-only list of recurring tasks
type Catalog []Task

var defaultCatalog = Catalog{
	{ID: "messages", Name: "Check & respond to messages", Frequency: FrequencyDaily, Priority: PriorityHigh, Minutes: 15},
	{ID: "orders", Name: "Process new orders", Frequency: FrequencyDaily, Priority: PriorityHigh, Minutes: 5},
	{ID: "photo", Name: "Photograph 3-5 items", Frequency: FrequencyDaily, Priority: PriorityHigh, Minutes: 30},
	{ID: "list", Name: "List 2-3 new items", Frequency: FrequencyDaily, Priority: PriorityHigh, Minutes: 30},
	{ID: "inventory", Name: "Update inventory counts", Frequency: FrequencyDaily, Priority: PriorityHigh, Minutes: 10},
	{ID: "social", Name: "Social media post", Frequency: FrequencyDaily, Priority: PriorityMedium, Minutes: 15},
	{ID: "sourcing", Name: "Visit tip/thrift stores", Frequency: FrequencyWeekly, Priority: PriorityHigh, Minutes: 90, Days: []int{1, 3, 6}},
	{ID: "shipping", Name: "Package & ship orders", Frequency: FrequencyWeekly, Priority: PriorityHigh, Minutes: 60, Days: []int{1, 4}},
	{ID: "seo", Name: "Update SEO tags (10-15 listings)", Frequency: FrequencyWeekly, Priority: PriorityMedium, Minutes: 45, Days: []int{2}},
	{ID: "research", Name: "Research pricing & trends", Frequency: FrequencyWeekly, Priority: PriorityMedium, Minutes: 30, Days: []int{5}},
	{ID: "clean", Name: "Clean & prep inventory", Frequency: FrequencyWeekly, Priority: PriorityMedium, Minutes: 60, Days: []int{5}},
	{ID: "analytics", Name: "Review analytics & sales", Frequency: FrequencyWeekly, Priority: PriorityMedium, Minutes: 20, Days: []int{6}},
}

// DefaultCatalog returns a copy of the built-in shop task catalog
func DefaultCatalog() Catalog {
	out := make(Catalog, len(defaultCatalog))
	for i, t := range defaultCatalog {
		t.Days = append([]int(nil), t.Days...)
		out[i] = t
	}
	return out
}

// TasksForDay returns the tasks due on a weekday in declaration order
func (c Catalog) TasksForDay(day int) []Task {
	tasks := make([]Task, 0, len(c))
	for _, t := range c {
		if t.AppliesOn(day) {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// TotalMinutes sums the estimated time of every task due on a weekday
func (c Catalog) TotalMinutes(day int) int {
	total := 0
	for _, t := range c.TasksForDay(day) {
		total += t.Minutes
	}
	return total
}

// Lookup finds a task by ID
func (c Catalog) Lookup(id string) (Task, bool) {
	for _, t := range c {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

var validate = validator.New()

// Validate checks field constraints plus the rules that span tasks
func (c Catalog) Validate() error {
	var problems []string
	seen := make(map[string]bool, len(c))

	for i, t := range c {
		if err := validate.Struct(t); err != nil {
			problems = append(problems, fmt.Sprintf("task %d (%s): %v", i, t.ID, err))
			continue
		}
		if seen[t.ID] {
			problems = append(problems, fmt.Sprintf("task %d: duplicate id %q", i, t.ID))
		}
		seen[t.ID] = true
		if t.Frequency == FrequencyWeekly && len(t.Days) == 0 {
			problems = append(problems, fmt.Sprintf("task %d (%s): weekly task has no days", i, t.ID))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid catalog: %s", strings.Join(problems, "; "))
	}
	return nil
}

// TasksForDay returns the default catalog's tasks for a weekday
func TasksForDay(day int) []Task {
	return defaultCatalog.TasksForDay(day)
}
