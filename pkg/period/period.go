// Package period translates local calendar dates into the UTC instant
// windows the upstream API expects, per product.
package period

import "time"

// DefaultGasCutoverHour is the local hour at which a gas-pricing day begins.
const DefaultGasCutoverHour = 6

// Window is a half-open UTC interval to request from upstream.
type Window struct {
	From time.Time
	Till time.Time
}

// InclusiveTill returns the last included millisecond of the window, for
// wire formats that want an inclusive end bound (e.g. 23:59:59.999).
func (w Window) InclusiveTill() time.Time {
	return w.Till.Add(-time.Millisecond)
}

// Calculator computes request windows from calendar dates. Only the year,
// month and day of the date arguments are used, read as the arguments
// express them; the resulting wall-clock boundaries are interpreted in
// Location. Each boundary converts to UTC independently, so a local day
// shortened or stretched by a DST transition maps to a 23- or 25-hour
// window rather than a flat 24 hours.
type Calculator struct {
	// Location is the local zone for day boundaries; nil means the system
	// zone.
	Location *time.Location

	// Now returns the current instant, used to disambiguate the active gas
	// day; nil means time.Now. Tests freeze it.
	Now func() time.Time

	// GasCutoverHour is the local hour at which a gas day begins.
	GasCutoverHour int
}

// New returns a Calculator with the default gas cutover hour, the system
// zone and the real clock.
func New() *Calculator {
	return &Calculator{GasCutoverHour: DefaultGasCutoverHour}
}

func (c *Calculator) location() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return time.Local
}

func (c *Calculator) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// at builds the UTC instant for the given local wall clock. time.Date
// normalizes out-of-range days, which is what makes day arithmetic across
// month boundaries work.
func (c *Calculator) at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, c.location()).UTC()
}

// Electricity returns the window from local midnight on startDate through
// local midnight after endDate.
func (c *Calculator) Electricity(startDate, endDate time.Time) Window {
	sy, sm, sd := startDate.Date()
	ey, em, ed := endDate.Date()
	return Window{
		From: c.at(sy, sm, sd, 0),
		Till: c.at(ey, em, ed+1, 0),
	}
}

// Gas returns the window for the gas days of startDate through endDate. A
// gas day runs from the cutover hour to the cutover hour the next day; when
// the current local hour is before the cutover, the previous calendar day's
// gas day is still the active one, so the whole window shifts back a day.
func (c *Calculator) Gas(startDate, endDate time.Time) Window {
	h := c.GasCutoverHour
	sy, sm, sd := startDate.Date()
	ey, em, ed := endDate.Date()
	if c.now().In(c.location()).Hour() >= h {
		return Window{
			From: c.at(sy, sm, sd, h),
			Till: c.at(ey, em, ed+1, h),
		}
	}
	return Window{
		From: c.at(sy, sm, sd-1, h),
		Till: c.at(ey, em, ed, h),
	}
}

// GasSpan returns the gas window widened by one day on each side,
// independent of the current time. The graph protocol is queried with this
// margin so the response always covers the requested gas days in full.
func (c *Calculator) GasSpan(startDate, endDate time.Time) Window {
	h := c.GasCutoverHour
	sy, sm, sd := startDate.Date()
	ey, em, ed := endDate.Date()
	return Window{
		From: c.at(sy, sm, sd-1, h),
		Till: c.at(ey, em, ed+1, h),
	}
}
