package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionKey(t *testing.T) {
	assert.Equal(t, "orders-2", CompletionKey("orders", 2))
	assert.Equal(t, "seo-0", CompletionKey("seo", 0))
}

func TestCompletionRecord_Clone(t *testing.T) {
	orig := CompletionRecord{"orders-2": true}
	cp := orig.Clone()
	cp["photo-1"] = true

	assert.NotContains(t, orig, "photo-1")
	assert.True(t, cp.IsComplete("orders", 2))

	var nilRecord CompletionRecord
	assert.NotNil(t, nilRecord.Clone())
}

func TestParseStatValue(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"42", 42},
		{"  42", 42},
		{"+7", 7},
		{"12abc", 12},
		{"3.7", 3},
		{"007", 7},
		{"0", 0},
		{"", 0},
		{"abc", 0},
		{"-5", 0},
		{"-", 0},
		{"   ", 0},
		{"99999999999999999999", MaxStatValue},
		{"1000000001", MaxStatValue},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStatValue(tt.raw))
		})
	}
}

func TestParseStatField(t *testing.T) {
	f, err := ParseStatField(" Sales ")
	require.NoError(t, err)
	assert.Equal(t, StatSales, f)

	_, err = ParseStatField("profit")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownStat))
}

func TestStats_With(t *testing.T) {
	s := Stats{Listed: 1, Sales: 2, Revenue: 3}

	got := s.With(StatSales, 10)
	assert.Equal(t, Stats{Listed: 1, Sales: 10, Revenue: 3}, got)
	assert.Equal(t, 2, s.Sales, "With must not mutate the receiver")

	assert.Equal(t, 0, s.With(StatRevenue, -4).Revenue)
	assert.Equal(t, MaxStatValue, s.With(StatListed, MaxStatValue+1).Listed)
	assert.Equal(t, s, s.With(StatField("bogus"), 9))
}

func TestStats_Get(t *testing.T) {
	s := Stats{Listed: 4, Sales: 5, Revenue: 600}
	assert.Equal(t, 4, s.Get(StatListed))
	assert.Equal(t, 5, s.Get(StatSales))
	assert.Equal(t, 600, s.Get(StatRevenue))
	assert.Equal(t, 0, s.Get(StatField("bogus")))
}

func TestWeekRecord_Clone(t *testing.T) {
	r := WeekRecord{Completions: CompletionRecord{"seo-2": true}, Stats: Stats{Sales: 3}}
	cp := r.Clone()
	cp.Completions["seo-2"] = false
	cp.Stats.Sales = 9

	assert.True(t, r.Completions["seo-2"])
	assert.Equal(t, 3, r.Stats.Sales)
}

func TestDefaultWeekRecord(t *testing.T) {
	r := DefaultWeekRecord()
	assert.NotNil(t, r.Completions)
	assert.Empty(t, r.Completions)
	assert.Equal(t, Stats{}, r.Stats)
}
