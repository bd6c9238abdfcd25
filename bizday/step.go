package bizday

import (
	"math"

	"github.com/pkg/errors"

	"github.com/alpacahq/bizday/utils/date"
)

// AddBusinessDays returns the date amount business days after d, or before
// it when amount is negative.
//
// The walk moves one calendar day at a time and counts every day it lands on
// that is a working day; d itself is never counted, working or not. The
// result is therefore always a working day, except for amount == 0 which
// returns d unchanged. An invalid d yields date.Invalid.
func (c *Calendar) AddBusinessDays(d date.Date, amount int) (date.Date, error) {
	if !d.IsValid() {
		return date.Invalid, nil
	}
	if amount == 0 {
		return d, nil
	}
	if amount == math.MinInt {
		return date.Invalid, errors.Wrapf(ErrNoBusinessDays, "%d business days from %s is out of range", amount, d)
	}

	dir, remaining := 1, amount
	if amount < 0 {
		dir, remaining = -1, -amount
	}
	jd := d.JulianDay()

	perWeek := c.weekdays.Len()
	if perWeek == 0 {
		// only true exceptions are working days
		found, ok := c.exceptions.nthWorking(jd, dir, remaining)
		if !ok {
			return date.Invalid, errors.Wrapf(ErrNoBusinessDays,
				"%d business days from %s with no weekly business days", amount, d)
		}
		return date.FromJulianDay(found), nil
	}

	for remaining > 0 {
		// seven days without exceptions hold exactly perWeek business days
		if remaining > perWeek && !c.exceptions.anyWithin(jd+dir, jd+7*dir) {
			jd += 7 * dir
			remaining -= perWeek
			continue
		}
		jd += dir
		if c.isWorkingDay(jd) {
			remaining--
		}
	}
	return date.FromJulianDay(jd), nil
}

// SubBusinessDays returns the date amount business days before d.
func (c *Calendar) SubBusinessDays(d date.Date, amount int) (date.Date, error) {
	return c.AddBusinessDays(d, -amount)
}
