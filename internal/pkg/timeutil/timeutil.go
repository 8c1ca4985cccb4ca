package timeutil

import (
	"time"
)

// Clock resolves "now" and "today" in the organization's fixed timezone. All
// sheet dates and attendance dates are computed against this zone regardless
// of where the server runs.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(timezone string) (*Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// NewClockAt returns a Clock with a fixed now function, for tests.
func NewClockAt(loc *time.Location, now func() time.Time) *Clock {
	return &Clock{loc: loc, now: now}
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

// NowLocal returns the current time in the organization timezone.
func (c *Clock) NowLocal() time.Time {
	return c.now().In(c.loc)
}

// Today returns the current calendar date in the organization timezone,
// truncated to midnight.
func (c *Clock) Today() time.Time {
	return c.DateOf(c.NowLocal())
}

// DateOf returns the organization-local calendar date of t.
func (c *Clock) DateOf(t time.Time) time.Time {
	local := t.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
}

// FormatDate renders a date in the YYYY-MM-DD wire format.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
