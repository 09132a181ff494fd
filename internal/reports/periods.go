package reports

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownPeriod is returned for a period name outside the presets.
var ErrUnknownPeriod = errors.New("reports: unknown period")

// Period is a named reporting window preset.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// Range resolves the preset to a [from, to] window ending at now. Unknown
// presets are an error so callers surface typos instead of silently
// reporting on the wrong window.
func (p Period) Range(now time.Time) (time.Time, time.Time, error) {
	now = now.UTC()
	to := now
	var from time.Time
	switch p {
	case PeriodWeek:
		from = now.AddDate(0, 0, -7)
	case PeriodMonth:
		from = now.AddDate(0, -1, 0)
	case PeriodQuarter:
		from = now.AddDate(0, -3, 0)
	case PeriodYear:
		from = now.AddDate(-1, 0, 0)
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w %q", ErrUnknownPeriod, p)
	}
	return from, to, nil
}
