package domain

import (
	"strings"
	"testing"
)

func TestFilter_IsActive(t *testing.T) {
	f := NewFilter()
	if f.IsActive() {
		t.Error("new filter should be inactive")
	}

	f.TogglePriority(PriorityHigh)
	if !f.IsActive() {
		t.Error("filter with priority should be active")
	}

	f.TogglePriority(PriorityHigh)
	if f.IsActive() {
		t.Error("toggling twice should deactivate")
	}

	f.SearchQuery = "seo"
	if !f.IsActive() {
		t.Error("filter with search should be active")
	}

	f.Clear()
	if f.IsActive() {
		t.Error("cleared filter should be inactive")
	}
}

func TestFilter_Apply(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		name  string
		setup func(f *Filter)
		want  string
	}{
		{
			name:  "inactive returns everything",
			setup: func(f *Filter) {},
			want:  "messages,orders,photo,list,inventory,social,sourcing,shipping,seo,research,clean,analytics",
		},
		{
			name:  "weekly medium",
			setup: func(f *Filter) { f.ToggleFrequency(FrequencyWeekly); f.TogglePriority(PriorityMedium) },
			want:  "seo,research,clean,analytics",
		},
		{
			name:  "daily medium",
			setup: func(f *Filter) { f.ToggleFrequency(FrequencyDaily); f.TogglePriority(PriorityMedium) },
			want:  "social",
		},
		{
			name:  "search matches name case-insensitively",
			setup: func(f *Filter) { f.SearchQuery = "ORDERS" },
			want:  "orders,shipping",
		},
		{
			name:  "search matches id",
			setup: func(f *Filter) { f.SearchQuery = "seo" },
			want:  "seo",
		},
		{
			name:  "no match",
			setup: func(f *Filter) { f.SearchQuery = "zzz" },
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter()
			tt.setup(f)
			got := strings.Join(taskIDs(f.Apply(catalog)), ",")
			if got != tt.want {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Describe(t *testing.T) {
	f := NewFilter()
	if got := f.Describe(); got != "" {
		t.Errorf("Describe() = %q, want empty", got)
	}

	f.TogglePriority(PriorityLow)
	f.TogglePriority(PriorityHigh)
	f.ToggleFrequency(FrequencyWeekly)
	f.SearchQuery = "ship"
	if got, want := f.Describe(), `high low weekly "ship"`; got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}
