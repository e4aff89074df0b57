// Package types contains shared types used across the application.
package types

// Mode represents what the keyboard is currently driving
type Mode int

const (
	ModeNormal Mode = iota
	ModeStat
	ModeSearch
	ModeFilter
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeStat:
		return "STAT"
	case ModeSearch:
		return "SEARCH"
	case ModeFilter:
		return "FILTER"
	default:
		return "UNKNOWN"
	}
}
