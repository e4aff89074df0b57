package compact

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/zavlong/etsy-task-tracker/internal/domain"
	"github.com/zavlong/etsy-task-tracker/internal/ui/styles"
)

// Styles holds the styling for the single-day list
type Styles struct {
	// Day strip
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	TabToday  lipgloss.Style
	Meta      lipgloss.Style

	// Table structure
	HeaderCell lipgloss.Style
	Separator  lipgloss.Style

	// Row styles
	Row       lipgloss.Style
	RowActive lipgloss.Style
	Cursor    lipgloss.Style

	// Column styles
	ColNumber lipgloss.Style
	ColTime   lipgloss.Style
	Done      lipgloss.Style
	Pending   lipgloss.Style
}

// NewStyles creates a new Styles instance with Catppuccin Macchiato theme
func NewStyles() *Styles {
	return &Styles{
		Tab: lipgloss.NewStyle().
			Foreground(styles.Overlay1).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Foreground(styles.Base).
			Background(styles.Lavender).
			Bold(true).
			Padding(0, 1),

		TabToday: lipgloss.NewStyle().
			Foreground(styles.Peach).
			Bold(true).
			Padding(0, 1),

		Meta: lipgloss.NewStyle().
			Foreground(styles.Subtext0),

		HeaderCell: lipgloss.NewStyle().
			Foreground(styles.Text).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(styles.Surface1),

		Row: lipgloss.NewStyle().
			Foreground(styles.Text),

		RowActive: lipgloss.NewStyle().
			Foreground(styles.Text).
			Background(styles.Surface0),

		Cursor: lipgloss.NewStyle().
			Foreground(styles.Blue).
			Bold(true),

		ColNumber: lipgloss.NewStyle().
			Foreground(styles.Overlay1),

		ColTime: lipgloss.NewStyle().
			Foreground(styles.Subtext0),

		Done: lipgloss.NewStyle().
			Foreground(styles.Green).
			Bold(true),

		Pending: lipgloss.NewStyle().
			Foreground(styles.Overlay0),
	}
}

// Priority returns the colored style for a priority cell
func (s *Styles) Priority(p domain.Priority) lipgloss.Style {
	color, ok := styles.PriorityColors[string(p)]
	if !ok {
		return s.Row
	}
	return lipgloss.NewStyle().Foreground(color).Bold(p == domain.PriorityHigh)
}
