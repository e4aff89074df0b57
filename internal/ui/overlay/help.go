package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding represents a single keybinding entry
type KeyBinding struct {
	Key         string
	Description string
}

// KeyCategory represents a category of keybindings
type KeyCategory struct {
	Name     string
	Bindings []KeyBinding
}

// helpViewHeight is the number of binding lines visible at once
const helpViewHeight = 18

// HelpOverlay displays keybinding reference
type HelpOverlay struct {
	styles    *Styles
	scroll    int
	maxScroll int
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{styles: New()}
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch key.String() {
	case "esc", "q", "?":
		return h, closeCmd
	case "j", "down":
		if h.scroll < h.maxScroll {
			h.scroll++
		}
	case "k", "up":
		if h.scroll > 0 {
			h.scroll--
		}
	case "g":
		h.scroll = 0
	case "G":
		h.scroll = h.maxScroll
	}
	return h, nil
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	var content strings.Builder
	for i, cat := range Categories() {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(h.styles.MenuHeader.Render(cat.Name + ":"))
		content.WriteString("\n")
		for _, b := range cat.Bindings {
			content.WriteString("  " + h.styles.MenuKey.Render(padRight(b.Key, 7)) + " " + h.styles.MenuItem.Render(b.Description))
			content.WriteString("\n")
		}
	}

	lines := strings.Split(strings.TrimRight(content.String(), "\n"), "\n")
	h.maxScroll = max(0, len(lines)-helpViewHeight)
	h.scroll = min(h.scroll, h.maxScroll)

	end := min(h.scroll+helpViewHeight, len(lines))
	result := strings.Join(lines[h.scroll:end], "\n")

	if h.maxScroll > 0 {
		result += "\n" + h.styles.Footer.Render("[j/k to scroll, g/G to jump]")
	}
	return result
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Keys"
}

// Size returns the overlay dimensions
func (h *HelpOverlay) Size() (width, height int) {
	return 52, helpViewHeight + 6
}

// Categories lists every dashboard keybinding
func Categories() []KeyCategory {
	return []KeyCategory{
		{
			Name: "Navigation",
			Bindings: []KeyBinding{
				{Key: "h/l", Description: "Previous / next day"},
				{Key: "j/k", Description: "Move between tasks"},
				{Key: "g/G", Description: "First / last task"},
				{Key: "[ ]", Description: "Previous / next week"},
				{Key: "t", Description: "Jump to this week and today"},
			},
		},
		{
			Name: "Tasks",
			Bindings: []KeyBinding{
				{Key: "Space", Description: "Toggle done"},
				{Key: "Enter", Description: "Task details"},
			},
		},
		{
			Name: "Weekly stats",
			Bindings: []KeyBinding{
				{Key: "1", Description: "Edit items listed"},
				{Key: "2", Description: "Edit sales"},
				{Key: "3", Description: "Edit revenue"},
			},
		},
		{
			Name: "View",
			Bindings: []KeyBinding{
				{Key: "/", Description: "Search tasks"},
				{Key: "f", Description: "Filter menu"},
				{Key: ",", Description: "Sort menu"},
				{Key: "v", Description: "Grid / single-day list"},
				{Key: "r", Description: "Reload week"},
			},
		},
		{
			Name: "Other",
			Bindings: []KeyBinding{
				{Key: "?", Description: "Help (this screen)"},
				{Key: "Ctrl+L", Description: "Refresh screen"},
				{Key: "q", Description: "Quit"},
			},
		},
	}
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
