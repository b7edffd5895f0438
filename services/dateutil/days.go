package dateutil

import (
	"time"
)

// UpdateInterval is the number of days after which a tracked record must be refreshed.
const UpdateInterval = 20

const day = 24 * time.Hour

// Dates binds the clock-dependent helpers to a Clock.
type Dates struct {
	Clock Clock
}

// New returns a Dates using clock, or the real clock when clock is nil.
func New(clock Clock) *Dates {
	if clock == nil {
		clock = RealClock{}
	}
	return &Dates{Clock: clock}
}

var std = New(RealClock{})

// DaysDifference returns the whole days from `from` to `to`, truncated toward zero,
// so DaysDifference(a, b) == -DaysDifference(b, a).
func DaysDifference(from, to time.Time) int {
	return int(to.Sub(from) / day)
}

// DaysBetween parses both values and returns DaysDifference. An empty `to` means now.
func DaysBetween(from, to string) (int, error) {
	return std.DaysBetween(from, to)
}

// DaysBetween parses both values and returns DaysDifference. An empty `to` means now.
func (d *Dates) DaysBetween(from, to string) (int, error) {
	start, err := Parse(from)
	if err != nil {
		return 0, err
	}

	end := d.Clock.Now()
	if to != "" {
		if end, err = Parse(to); err != nil {
			return 0, err
		}
	}

	return DaysDifference(start, end), nil
}

// DaysSince returns the whole days elapsed between t and now.
func (d *Dates) DaysSince(t time.Time) int {
	return DaysDifference(t, d.Clock.Now())
}

// DaysUntilNextUpdate returns the days left before updatedAt goes stale, or nil when the
// record was never updated. The result is clamped to [0, UpdateInterval]: overdue records
// report 0 (see DaysOverdue) and timestamps in the future report a full interval.
func (d *Dates) DaysUntilNextUpdate(updatedAt *time.Time) *int {
	if updatedAt == nil || updatedAt.IsZero() {
		return nil
	}

	remaining := UpdateInterval - d.DaysSince(*updatedAt)
	if remaining < 0 {
		remaining = 0
	}
	if remaining > UpdateInterval {
		remaining = UpdateInterval
	}
	return &remaining
}

// DaysOverdue returns how many days past the update interval updatedAt is. Zero when the
// record is not overdue or was never updated.
func (d *Dates) DaysOverdue(updatedAt *time.Time) int {
	if updatedAt == nil || updatedAt.IsZero() {
		return 0
	}

	overdue := d.DaysSince(*updatedAt) - UpdateInterval
	if overdue < 0 {
		return 0
	}
	return overdue
}

// DaysUntilNextUpdate uses the real clock.
func DaysUntilNextUpdate(updatedAt *time.Time) *int {
	return std.DaysUntilNextUpdate(updatedAt)
}

// DaysOverdue uses the real clock.
func DaysOverdue(updatedAt *time.Time) int {
	return std.DaysOverdue(updatedAt)
}
