// Package format renders counters and dates the same way in the dashboard and the CLI.
package format

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Count renders an integer with thousands separators
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Money renders whole dollars, e.g. "$1,250"
func Money(n int) string {
	return "$" + Count(n)
}

// Stat renders a counter, as money for revenue
func Stat(revenue bool, n int) string {
	if revenue {
		return Money(n)
	}
	return Count(n)
}

// WeekLabel renders the heading for the week starting at start
func WeekLabel(start time.Time) string {
	return "Week of " + start.Format("Jan 2, 2006")
}

// Minutes renders an estimate like "45m" or "2h 15m"
func Minutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// Percent renders a 0-100 value without decimals
func Percent(p float64) string {
	return fmt.Sprintf("%.0f%%", p)
}
