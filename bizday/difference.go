package bizday

import (
	"github.com/alpacahq/bizday/utils/date"
)

// NullDays is a signed day count that may be absent. Valid is false when
// the count is undefined because an input date was invalid.
type NullDays struct {
	Days  int
	Valid bool
}

// DifferenceInBusinessDays returns the signed number of business days
// between left and right: positive when left is later, negative when it is
// earlier and 0 on the same calendar day.
//
// Counting starts at right, which is counted if it is a working day, and
// walks toward left, which is not. For example from Thursday right to
// Saturday left under a Monday-Friday week the result is 2, while swapping
// the arguments gives -1. Swapping only negates the result when both days
// have the same working status.
func (c *Calendar) DifferenceInBusinessDays(left, right date.Date) NullDays {
	if !left.IsValid() || !right.IsValid() {
		return NullDays{}
	}

	span := left.DaysSince(right)
	l, r := left.JulianDay(), right.JulianDay()
	dir := 1
	if span < 0 {
		dir = -1
	}

	// whole weeks first, then patch in the exceptions they contain
	weeks := span / 7
	result := weeks * c.weekdays.Len()
	cursor := r + weeks*7
	if weeks != 0 {
		lo, hi := r, cursor-dir
		if lo > hi {
			lo, hi = hi, lo
		}
		c.exceptions.each(lo, hi, func(jd int, working bool) {
			if c.weekdays.Contains(date.WeekdayOf(jd)) == working {
				return
			}
			if working {
				result += dir
			} else {
				result -= dir
			}
		})
	}

	for ; cursor != l; cursor += dir {
		if c.isWorkingDay(cursor) {
			result += dir
		}
	}
	return NullDays{Days: result, Valid: true}
}
