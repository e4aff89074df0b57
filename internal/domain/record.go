package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// MaxStatValue caps parsed stat input so oversized numbers stay representable
const MaxStatValue = 1_000_000_000

// CompletionKey builds the composite "<taskId>-<dayIndex>" key
func CompletionKey(taskID string, day int) string {
	return taskID + "-" + strconv.Itoa(day)
}

// CompletionRecord maps composite keys to done flags
type CompletionRecord map[string]bool

// IsComplete reports whether a task instance is checked off
func (c CompletionRecord) IsComplete(taskID string, day int) bool {
	return c[CompletionKey(taskID, day)]
}

// Clone returns an independent copy; a nil record clones to an empty one
func (c CompletionRecord) Clone() CompletionRecord {
	out := make(CompletionRecord, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// StatField names one of the weekly counters
type StatField string

const (
	StatListed  StatField = "listed"
	StatSales   StatField = "sales"
	StatRevenue StatField = "revenue"
)

// StatFields lists the counters in display order
var StatFields = []StatField{StatListed, StatSales, StatRevenue}

// Label returns the human-readable name
func (f StatField) Label() string {
	switch f {
	case StatListed:
		return "Items Listed"
	case StatSales:
		return "Sales"
	case StatRevenue:
		return "Revenue"
	default:
		return string(f)
	}
}

// ParseStatField resolves a field name
func ParseStatField(s string) (StatField, error) {
	f := StatField(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range StatFields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStat, s)
}

// Stats are the weekly counters entered by hand
type Stats struct {
	Listed  int `json:"listed" yaml:"listed" validate:"gte=0"`
	Sales   int `json:"sales" yaml:"sales" validate:"gte=0"`
	Revenue int `json:"revenue" yaml:"revenue" validate:"gte=0"`
}

// Get returns a counter by field
func (s Stats) Get(f StatField) int {
	switch f {
	case StatListed:
		return s.Listed
	case StatSales:
		return s.Sales
	case StatRevenue:
		return s.Revenue
	default:
		return 0
	}
}

// With returns a copy with one counter replaced, clamped to [0, MaxStatValue]
func (s Stats) With(f StatField, v int) Stats {
	v = max(0, min(v, MaxStatValue))
	switch f {
	case StatListed:
		s.Listed = v
	case StatSales:
		s.Sales = v
	case StatRevenue:
		s.Revenue = v
	}
	return s
}

// ParseStatValue reads the leading integer of raw input.
// Leading whitespace and a sign are accepted and trailing garbage is ignored
// ("12abc" is 12, "3.7" is 3). Input with no leading digits is 0, as is any
// negative number.
func ParseStatValue(raw string) int {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || negative {
		return 0
	}

	digits := strings.TrimLeft(s[:end], "0")
	if digits == "" {
		return 0
	}
	if len(digits) > 10 {
		return MaxStatValue
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return min(n, MaxStatValue)
}

// WeekRecord is everything persisted for one week
type WeekRecord struct {
	Completions CompletionRecord `json:"completions" yaml:"completions"`
	Stats       Stats            `json:"stats" yaml:"stats"`
}

// DefaultWeekRecord is the record of a week with no saved data
func DefaultWeekRecord() WeekRecord {
	return WeekRecord{Completions: CompletionRecord{}}
}

// Clone returns a deep copy safe to hand to another goroutine
func (r WeekRecord) Clone() WeekRecord {
	return WeekRecord{Completions: r.Completions.Clone(), Stats: r.Stats}
}

// Summary aggregates every tracked week
type Summary struct {
	TotalListed  int `json:"total_listed" yaml:"total_listed"`
	TotalSales   int `json:"total_sales" yaml:"total_sales"`
	TotalRevenue int `json:"total_revenue" yaml:"total_revenue"`
	WeeksTracked int `json:"weeks_tracked" yaml:"weeks_tracked"`
}
