package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zavlong/etsy-task-tracker/internal/domain"
)

type filterOption struct {
	key   string
	label string
}

var priorityOptions = []struct {
	filterOption
	value domain.Priority
}{
	{filterOption{"h", "High"}, domain.PriorityHigh},
	{filterOption{"m", "Medium"}, domain.PriorityMedium},
	{filterOption{"l", "Low"}, domain.PriorityLow},
}

var frequencyOptions = []struct {
	filterOption
	value domain.Frequency
}{
	{filterOption{"d", "Daily"}, domain.FrequencyDaily},
	{filterOption{"w", "Weekly"}, domain.FrequencyWeekly},
}

// FilterMenu toggles priority and frequency filters in place
type FilterMenu struct {
	filter *domain.Filter
	styles *Styles
}

// NewFilterMenu creates a new filter menu for the given filter
func NewFilterMenu(filter *domain.Filter) *FilterMenu {
	return &FilterMenu{
		filter: filter,
		styles: New(),
	}
}

// Init initializes the menu
func (m *FilterMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *FilterMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	k := key.String()
	switch k {
	case "esc", "q", "enter":
		return m, closeCmd
	case "c":
		m.filter.Clear()
		return m, m.changed(k)
	}

	for _, opt := range priorityOptions {
		if opt.key == k {
			m.filter.TogglePriority(opt.value)
			return m, m.changed(k)
		}
	}
	for _, opt := range frequencyOptions {
		if opt.key == k {
			m.filter.ToggleFrequency(opt.value)
			return m, m.changed(k)
		}
	}
	return m, nil
}

func (m *FilterMenu) changed(key string) tea.Cmd {
	f := m.filter
	return func() tea.Msg {
		return SelectionMsg{Key: "filter:" + key, Value: f}
	}
}

// View renders the menu
func (m *FilterMenu) View() string {
	var b strings.Builder

	b.WriteString(m.styles.MenuHeader.Render("Priority"))
	b.WriteString("\n")
	for _, opt := range priorityOptions {
		b.WriteString(m.renderOption(opt.filterOption, m.filter.Priority[opt.value]))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.MenuHeader.Render("Frequency"))
	b.WriteString("\n")
	for _, opt := range frequencyOptions {
		b.WriteString(m.renderOption(opt.filterOption, m.filter.Frequency[opt.value]))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.MenuKey.Render("[c]") + " " + m.styles.MenuItem.Render("Clear all"))
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("Press key to toggle • Esc to close"))
	return b.String()
}

func (m *FilterMenu) renderOption(opt filterOption, on bool) string {
	box := "[ ]"
	label := m.styles.MenuItem
	if on {
		box = "[●]"
		label = m.styles.MenuItemActive
	}
	return "  " + m.styles.MenuKey.Render(opt.key) + " " + label.Render(box+" "+opt.label) + "\n"
}

// Title returns the overlay title
func (m *FilterMenu) Title() string {
	return "Filter"
}

// Size returns the overlay dimensions
func (m *FilterMenu) Size() (width, height int) {
	return 44, len(priorityOptions) + len(frequencyOptions) + 10
}
