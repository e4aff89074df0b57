package domain

import "math"

// Tally counts completed task instances against applicable ones
type Tally struct {
	Completed  int
	Applicable int
}

// Add combines two tallies
func (t Tally) Add(o Tally) Tally {
	return Tally{Completed: t.Completed + o.Completed, Applicable: t.Applicable + o.Applicable}
}

// Percent returns 100*Completed/Applicable, or 0 when nothing applies
func (t Tally) Percent() float64 {
	if t.Applicable == 0 {
		return 0
	}
	return 100 * float64(t.Completed) / float64(t.Applicable)
}

// DayTally counts the applicable and completed tasks for one weekday
func (c Catalog) DayTally(day int, completions CompletionRecord) Tally {
	var t Tally
	for _, task := range c.TasksForDay(day) {
		t.Applicable++
		if completions.IsComplete(task.ID, day) {
			t.Completed++
		}
	}
	return t
}

// DayProgress returns the completion percentage of one weekday
func (c Catalog) DayProgress(day int, completions CompletionRecord) float64 {
	return c.DayTally(day, completions).Percent()
}

// WeekTally sums DayTally over all seven days
func (c Catalog) WeekTally(completions CompletionRecord) Tally {
	var t Tally
	for day := 0; day < DaysPerWeek; day++ {
		t = t.Add(c.DayTally(day, completions))
	}
	return t
}

// WeekProgress returns the week's completion percentage rounded to the nearest integer
func (c Catalog) WeekProgress(completions CompletionRecord) int {
	return int(math.Round(c.WeekTally(completions).Percent()))
}
