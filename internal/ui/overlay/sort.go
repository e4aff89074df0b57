package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zavlong/etsy-task-tracker/internal/domain"
)

// SortOption represents a sort option with metadata
type SortOption struct {
	Key         string
	Label       string
	Field       domain.SortField
	Description string
}

// SortOptions lists the orderings offered for task rows
var SortOptions = []SortOption{
	{Key: "c", Label: "Catalog", Field: domain.SortByCatalog, Description: "shop routine order"},
	{Key: "p", Label: "Priority", Field: domain.SortByPriority, Description: "high first"},
	{Key: "t", Label: "Time", Field: domain.SortByTime, Description: "estimated minutes"},
	{Key: "n", Label: "Name", Field: domain.SortByName, Description: "alphabetical"},
}

// SortMenu is a menu overlay for sorting configuration
type SortMenu struct {
	sort   *domain.Sort
	styles *Styles
}

// NewSortMenu creates a new sort menu for the given sort state
func NewSortMenu(sort *domain.Sort) *SortMenu {
	return &SortMenu{
		sort:   sort,
		styles: New(),
	}
}

// Init initializes the menu
func (m *SortMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *SortMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	k := key.String()
	if k == "esc" || k == "q" || k == "enter" {
		return m, closeCmd
	}

	for _, opt := range SortOptions {
		if opt.Key == k {
			// same key flips direction
			m.sort.Toggle(opt.Field)
			s := *m.sort
			return m, func() tea.Msg {
				return SelectionMsg{Key: "sort:" + k, Value: s}
			}
		}
	}
	return m, nil
}

// View renders the menu
func (m *SortMenu) View() string {
	var b strings.Builder

	for _, opt := range SortOptions {
		isActive := m.sort.Field == opt.Field

		keyStyle := m.styles.MenuItem
		labelStyle := m.styles.MenuItem
		if isActive {
			keyStyle = m.styles.MenuKey
			labelStyle = m.styles.MenuItemActive
		}

		line := keyStyle.Render("["+opt.Key+"]") + " " +
			labelStyle.Render(opt.Label) + " " +
			m.styles.Footer.UnsetMarginTop().Render("("+opt.Description+")")

		if isActive {
			arrow := "↑"
			if m.sort.Order == domain.SortDesc {
				arrow = "↓"
			}
			line += " " + m.styles.MenuItemActive.Render("● "+arrow)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render("Press same key to toggle direction • Esc to close"))
	return b.String()
}

// Title returns the overlay title
func (m *SortMenu) Title() string {
	return "Sort"
}

// Size returns the overlay dimensions
func (m *SortMenu) Size() (width, height int) {
	return 56, len(SortOptions) + 6
}
