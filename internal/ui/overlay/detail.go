package overlay

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zavlong/etsy-task-tracker/internal/domain"
)

// TaskDetail shows one task and its completion across the week
type TaskDetail struct {
	task        domain.Task
	weekStart   time.Time
	completions domain.CompletionRecord
	styles      *Styles
}

// NewTaskDetail captures a snapshot of the week for display
func NewTaskDetail(task domain.Task, weekStart time.Time, completions domain.CompletionRecord) *TaskDetail {
	return &TaskDetail{
		task:        task,
		weekStart:   weekStart,
		completions: completions.Clone(),
		styles:      New(),
	}
}

// Init implements tea.Model
func (d *TaskDetail) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (d *TaskDetail) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q", "enter":
			return d, closeCmd
		}
	}
	return d, nil
}

// View implements tea.Model
func (d *TaskDetail) View() string {
	t := d.task
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(d.styles.MenuHeader.Render(fmt.Sprintf("%-10s", label)))
		b.WriteString(d.styles.MenuItem.Render(value))
		b.WriteString("\n")
	}
	row("ID", t.ID)
	row("Priority", t.Priority.String())
	row("Repeats", t.Frequency.String())
	row("Estimate", fmt.Sprintf("%d min", t.Minutes))

	b.WriteString("\n")
	done, due := 0, 0
	for day := 0; day < domain.DaysPerWeek; day++ {
		label := domain.DayDate(d.weekStart, day).Format("Mon")
		switch {
		case !t.AppliesOn(day):
			b.WriteString(d.styles.NotDue.Render(label + " ·  "))
		case d.completions.IsComplete(t.ID, day):
			done++
			due++
			b.WriteString(d.styles.Done.Render(label + " ✓  "))
		default:
			due++
			b.WriteString(d.styles.Pending.Render(label + " ○  "))
		}
	}
	b.WriteString("\n")
	b.WriteString(d.styles.Footer.Render(fmt.Sprintf("%d of %d done this week", done, due)))
	return b.String()
}

// Title implements Overlay
func (d *TaskDetail) Title() string {
	return d.task.Name
}

// Size implements Overlay
func (d *TaskDetail) Size() (width, height int) {
	return 52, 14
}
