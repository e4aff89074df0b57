package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/zavlong/etsy-task-tracker/internal/domain"
)

// Styles holds all the UI styles
type Styles struct {
	// Grid
	Board          lipgloss.Style
	Column         lipgloss.Style
	ColumnToday    lipgloss.Style
	ColumnActive   lipgloss.Style
	DayHeader      lipgloss.Style
	DayHeaderToday lipgloss.Style
	DayMeta        lipgloss.Style

	// Cells
	Cell        lipgloss.Style
	CellActive  lipgloss.Style
	CellDone    lipgloss.Style
	CellPending lipgloss.Style
	TaskName    lipgloss.Style
	TaskMeta    lipgloss.Style

	// Badges
	PriorityBadge func(p domain.Priority) lipgloss.Style
	FrequencyTag  lipgloss.Style

	// Header
	Title      lipgloss.Style
	WeekLabel  lipgloss.Style
	StatLabel  lipgloss.Style
	StatValue  lipgloss.Style
	StatsPanel lipgloss.Style

	// Status bar
	StatusBar     lipgloss.Style
	StatusMode    lipgloss.Style
	StatusHint    lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusOnline  lipgloss.Style
	StatusOffline lipgloss.Style

	// Overlays
	Overlay        lipgloss.Style
	OverlayTitle   lipgloss.Style
	MenuItem       lipgloss.Style
	MenuItemActive lipgloss.Style
	MenuKey        lipgloss.Style
	Separator      lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	column := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Padding(0, 1)

	cell := lipgloss.NewStyle().
		Padding(0, 1)

	return &Styles{
		Board: lipgloss.NewStyle().
			Background(Base),

		Column:       column,
		ColumnToday:  column.BorderForeground(Peach),
		ColumnActive: column.BorderForeground(Lavender),

		DayHeader: lipgloss.NewStyle().
			Foreground(Subtext0).
			Bold(true),

		DayHeaderToday: lipgloss.NewStyle().
			Foreground(Peach).
			Bold(true),

		DayMeta: lipgloss.NewStyle().
			Foreground(Overlay1).
			MarginBottom(1),

		Cell: cell,

		CellActive: cell.
			Background(Surface0).
			Foreground(Lavender),

		CellDone: lipgloss.NewStyle().
			Foreground(Green).
			Bold(true),

		CellPending: lipgloss.NewStyle().
			Foreground(Overlay0),

		TaskName: lipgloss.NewStyle().
			Foreground(Text),

		TaskMeta: lipgloss.NewStyle().
			Foreground(Overlay1),

		PriorityBadge: func(p domain.Priority) lipgloss.Style {
			color, ok := PriorityColors[p.String()]
			if !ok {
				color = Overlay0
			}
			return lipgloss.NewStyle().
				Foreground(Base).
				Background(color).
				Bold(true)
		},

		FrequencyTag: lipgloss.NewStyle().
			Foreground(Subtext0).
			Italic(true),

		Title: lipgloss.NewStyle().
			Foreground(Mauve).
			Bold(true),

		WeekLabel: lipgloss.NewStyle().
			Foreground(Text),

		StatLabel: lipgloss.NewStyle().
			Foreground(Subtext0),

		StatValue: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		StatsPanel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		StatusOnline: lipgloss.NewStyle().
			Foreground(Green),

		StatusOffline: lipgloss.NewStyle().
			Foreground(Red).
			Bold(true),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Background(Base).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true),

		MenuKey: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(Surface1),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),
	}
}

// DayColumn picks the border style for a day column
func (s *Styles) DayColumn(today, active bool) lipgloss.Style {
	switch {
	case active:
		return s.ColumnActive
	case today:
		return s.ColumnToday
	default:
		return s.Column
	}
}
