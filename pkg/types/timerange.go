package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeRange is returned when a time range would be empty or
// inverted. Every consumer of a TimeRange assumes a positive width.
var ErrInvalidTimeRange = errors.New("time range start must be before end")

// TimeRange is a half-open interval of time: the start instant is included,
// the end instant is excluded. Adjacent buckets therefore never share an
// instant. A TimeRange is a plain value and is never mutated.
type TimeRange struct {
	start time.Time
	end   time.Time
}

// NewTimeRange returns a TimeRange covering [start, end). It fails with
// ErrInvalidTimeRange unless start is strictly before end.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, fmt.Errorf("%w: start=%s end=%s", ErrInvalidTimeRange, start, end)
	}
	return TimeRange{start: start, end: end}, nil
}

// Start returns the inclusive start instant.
func (r TimeRange) Start() time.Time {
	return r.start
}

// End returns the exclusive end instant.
func (r TimeRange) End() time.Time {
	return r.end
}

// Duration returns the width of the range.
func (r TimeRange) Duration() time.Duration {
	return r.end.Sub(r.start)
}

// Contains reports whether t falls within the range. The start instant is
// contained, the end instant is not. Comparison is on absolute instants, so
// the zone t is expressed in does not matter.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.start) && t.Before(r.end)
}

// In returns a new TimeRange with both endpoints expressed in loc. The
// absolute instants, and therefore containment, are unchanged; only the
// wall-clock rendering differs.
func (r TimeRange) In(loc *time.Location) TimeRange {
	return TimeRange{start: r.start.In(loc), end: r.end.In(loc)}
}

// Equal reports whether both ranges cover the same instants. It compares
// instants, not wall-clock representations, so the same bucket reconstructed
// in a different zone still compares equal.
func (r TimeRange) Equal(other TimeRange) bool {
	return r.start.Equal(other.start) && r.end.Equal(other.end)
}

// IsZero reports whether the range is the zero value.
func (r TimeRange) IsZero() bool {
	return r.start.IsZero() && r.end.IsZero()
}

const timeRangeFormat = "2006-01-02 15:04:05"

// String renders the range without zone information, e.g.
// "2025-01-02 10:09:08 - 2025-03-04 07:06:05".
func (r TimeRange) String() string {
	return r.start.Format(timeRangeFormat) + " - " + r.end.Format(timeRangeFormat)
}
