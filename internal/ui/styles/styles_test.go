package styles

import (
	"testing"

	"github.com/zavlong/etsy-task-tracker/internal/domain"
)

func TestNew(t *testing.T) {
	s := New()
	if s == nil {
		t.Fatal("New() returned nil")
	}
}

func TestPriorityBadge(t *testing.T) {
	s := New()

	tests := []struct {
		priority domain.Priority
		name     string
	}{
		{domain.PriorityHigh, "high"},
		{domain.PriorityMedium, "medium"},
		{domain.PriorityLow, "low"},
		{domain.Priority("urgent"), "unknown falls back"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rendered := s.PriorityBadge(tt.priority).Render(tt.priority.Short())
			if len(rendered) == 0 {
				t.Error("PriorityBadge rendered empty string")
			}
		})
	}
}

func TestPriorityColors(t *testing.T) {
	for _, p := range []domain.Priority{domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow} {
		if _, ok := PriorityColors[p.String()]; !ok {
			t.Errorf("no color for priority %q", p)
		}
	}
	if PriorityColors["high"] != Red || PriorityColors["medium"] != Yellow || PriorityColors["low"] != Green {
		t.Error("priority colors should be red, yellow, green")
	}
}

func TestThemeColors(t *testing.T) {
	colors := []struct {
		name  string
		color string
	}{
		{"Base", string(Base)},
		{"Blue", string(Blue)},
		{"Red", string(Red)},
		{"Green", string(Green)},
		{"Yellow", string(Yellow)},
	}

	for _, c := range colors {
		t.Run(c.name, func(t *testing.T) {
			if c.color == "" {
				t.Errorf("%s color is empty", c.name)
			}
			if c.color[0] != '#' {
				t.Errorf("%s color should start with #, got %s", c.name, c.color)
			}
		})
	}
}

func TestDayColumn(t *testing.T) {
	s := New()
	if got := s.DayColumn(true, true).GetBorderTopForeground(); got != Lavender {
		t.Errorf("active column border = %v, want %v", got, Lavender)
	}
	if got := s.DayColumn(true, false).GetBorderTopForeground(); got != Peach {
		t.Errorf("today column border = %v, want %v", got, Peach)
	}
	if got := s.DayColumn(false, false).GetBorderTopForeground(); got != Surface1 {
		t.Errorf("plain column border = %v, want %v", got, Surface1)
	}
}
