package overlay

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/zavlong/etsy-task-tracker/internal/ui/styles"
)

// Styles holds all overlay-specific styles
type Styles struct {
	Overlay        lipgloss.Style
	Title          lipgloss.Style
	MenuItem       lipgloss.Style
	MenuItemActive lipgloss.Style
	MenuKey        lipgloss.Style
	MenuHeader     lipgloss.Style
	Separator      lipgloss.Style
	Footer         lipgloss.Style
	Input          lipgloss.Style
	Done           lipgloss.Style
	Pending        lipgloss.Style
	NotDue         lipgloss.Style
}

// New derives overlay styles from the shared Catppuccin theme
func New() *Styles {
	base := styles.New()
	return &Styles{
		Overlay:        base.Overlay,
		Title:          base.OverlayTitle,
		MenuItem:       base.MenuItem,
		MenuItemActive: base.MenuItemActive,
		MenuKey:        base.MenuKey,
		Separator:      base.Separator,

		MenuHeader: lipgloss.NewStyle().
			Foreground(styles.Sapphire).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(styles.Subtext0).
			MarginTop(1),

		Input: lipgloss.NewStyle().
			Foreground(styles.Text).
			Background(styles.Surface0),

		Done:    base.CellDone,
		Pending: base.CellPending,
		NotDue: lipgloss.NewStyle().
			Foreground(styles.Surface2),
	}
}
