package scheduler

import "time"

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// NormalizeToDayStart returns midnight of t's calendar day in loc.
func NormalizeToDayStart(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// nextDay is the start of the following day, DST-safe.
func nextDay(dayStart time.Time) time.Time {
	return dayStart.AddDate(0, 0, 1)
}
