package domain

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze time via SetClock.
// Production code uses the real clock; tests inject a fake for deterministic
// ComputedAt stamps and reporting years.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// ReportingYear returns the current INGRES assessment year, e.g. "2024-2025".
// The groundwater assessment year runs June through May, so dates before
// June belong to the year that started the previous calendar year.
func ReportingYear() string {
	now := clock.Now().UTC()
	start := now.Year()
	if now.Month() < time.June {
		start--
	}
	return fmt.Sprintf("%d-%d", start, start+1)
}
