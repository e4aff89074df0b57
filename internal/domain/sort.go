package domain

import "sort"

// SortField represents a field to sort by
type SortField string

const (
	SortByCatalog  SortField = "catalog"
	SortByPriority SortField = "priority"
	SortByTime     SortField = "time"
	SortByName     SortField = "name"
)

// ParseSortField resolves a sort flag value, falling back to catalog order
func ParseSortField(s string) SortField {
	switch SortField(s) {
	case SortByPriority, SortByTime, SortByName:
		return SortField(s)
	default:
		return SortByCatalog
	}
}

// SortOrder represents sort direction
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

// Sort represents sorting state
type Sort struct {
	Field SortField
	Order SortOrder
}

// Toggle switches to a new field in ascending order, or flips the
// direction when the field is already selected
func (s *Sort) Toggle(field SortField) {
	if s.Field == field {
		if s.Order == SortAsc {
			s.Order = SortDesc
		} else {
			s.Order = SortAsc
		}
		return
	}
	s.Field = field
	s.Order = SortAsc
}

// Apply returns a sorted copy; ties keep catalog order
func (s *Sort) Apply(tasks []Task) []Task {
	if len(tasks) == 0 {
		return tasks
	}

	result := make([]Task, len(tasks))
	copy(result, tasks)

	var less func(a, b Task) bool
	switch s.Field {
	case SortByPriority:
		less = func(a, b Task) bool { return a.Priority.Rank() < b.Priority.Rank() }
	case SortByTime:
		less = func(a, b Task) bool { return a.Minutes < b.Minutes }
	case SortByName:
		less = func(a, b Task) bool { return a.Name < b.Name }
	default:
		if s.Order == SortDesc {
			for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
				result[i], result[j] = result[j], result[i]
			}
		}
		return result
	}

	sort.SliceStable(result, func(i, j int) bool {
		if s.Order == SortAsc {
			return less(result[i], result[j])
		}
		return less(result[j], result[i])
	})
	return result
}
