package statusbar

import "github.com/zavlong/etsy-task-tracker/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "h/l: days  j/k: tasks  Space: toggle  [/]: week  1-3: stats  v: view  ?: help  q: quit"
	case types.ModeStat:
		return "Enter: save  Esc: cancel"
	case types.ModeSearch:
		return "Type to search  Enter: confirm  Esc: cancel"
	case types.ModeFilter:
		return "h/m/l: priority  d/w: frequency  c: clear  Esc: close"
	default:
		return ""
	}
}
