package domain

import "strings"

// Filter narrows the catalog shown on the board and by the tasks command
type Filter struct {
	Priority    map[Priority]bool
	Frequency   map[Frequency]bool
	SearchQuery string
}

// NewFilter creates a new empty filter
func NewFilter() *Filter {
	return &Filter{
		Priority:  make(map[Priority]bool),
		Frequency: make(map[Frequency]bool),
	}
}

// IsActive returns true if any filter is active
func (f *Filter) IsActive() bool {
	return len(f.Priority) > 0 ||
		len(f.Frequency) > 0 ||
		f.SearchQuery != ""
}

// Apply filters a list of tasks, preserving order
func (f *Filter) Apply(tasks []Task) []Task {
	if !f.IsActive() {
		return tasks
	}

	result := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if f.Matches(task) {
			result = append(result, task)
		}
	}
	return result
}

// Matches returns true if the task passes all active filters.
// Filter kinds are ANDed, values within one kind are ORed.
func (f *Filter) Matches(t Task) bool {
	if len(f.Priority) > 0 && !f.Priority[t.Priority] {
		return false
	}

	if len(f.Frequency) > 0 && !f.Frequency[t.Frequency] {
		return false
	}

	// case-insensitive, matches name or ID
	if f.SearchQuery != "" {
		query := strings.ToLower(f.SearchQuery)
		if !strings.Contains(strings.ToLower(t.Name), query) &&
			!strings.Contains(strings.ToLower(t.ID), query) {
			return false
		}
	}

	return true
}

// Clear resets all filters
func (f *Filter) Clear() {
	f.Priority = make(map[Priority]bool)
	f.Frequency = make(map[Frequency]bool)
	f.SearchQuery = ""
}

// TogglePriority toggles a priority filter
func (f *Filter) TogglePriority(p Priority) {
	if f.Priority[p] {
		delete(f.Priority, p)
	} else {
		f.Priority[p] = true
	}
}

// ToggleFrequency toggles a frequency filter
func (f *Filter) ToggleFrequency(fr Frequency) {
	if f.Frequency[fr] {
		delete(f.Frequency, fr)
	} else {
		f.Frequency[fr] = true
	}
}

// Describe returns a short label for the status bar, empty when inactive
func (f *Filter) Describe() string {
	if !f.IsActive() {
		return ""
	}
	var parts []string
	for _, p := range []Priority{PriorityHigh, PriorityMedium, PriorityLow} {
		if f.Priority[p] {
			parts = append(parts, p.String())
		}
	}
	for _, fr := range []Frequency{FrequencyDaily, FrequencyWeekly} {
		if f.Frequency[fr] {
			parts = append(parts, fr.String())
		}
	}
	if f.SearchQuery != "" {
		parts = append(parts, "\""+f.SearchQuery+"\"")
	}
	return strings.Join(parts, " ")
}
