package bizday

import (
	"math/bits"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Weekdays is the set of days of the week that are business days by default.
// Bit n is set when weekday n (0=Sunday) is a working day.
type Weekdays uint8

// DefaultWeekdays is Monday through Friday.
var DefaultWeekdays = NewWeekdays(1, 2, 3, 4, 5)

// NewWeekdays builds a set from weekday numbers already known to be in range.
// Out-of-range values are dropped; use ParseWeekdays for untrusted input.
func NewWeekdays(days ...int) Weekdays {
	var w Weekdays
	for _, day := range days {
		if day >= 0 && day <= 6 {
			w |= 1 << uint(day)
		}
	}
	return w
}

// ParseWeekdays validates a weekly pattern. A nil slice selects
// DefaultWeekdays; an empty non-nil slice is the empty set. Repeated days
// collapse.
func ParseWeekdays(days []int) (Weekdays, error) {
	if days == nil {
		return DefaultWeekdays, nil
	}
	var w Weekdays
	for _, day := range days {
		if day < 0 || day > 6 {
			return 0, errors.Wrapf(ErrInvalidBusinessDay, "got %d", day)
		}
		w |= 1 << uint(day)
	}
	return w, nil
}

// Contains reports whether weekday (0=Sunday) is a business day.
func (w Weekdays) Contains(weekday int) bool {
	if weekday < 0 || weekday > 6 {
		return false
	}
	return w&(1<<uint(weekday)) != 0
}

// Len returns the number of business days per week.
func (w Weekdays) Len() int {
	return bits.OnesCount8(uint8(w))
}

// Days lists the weekday numbers in ascending order.
func (w Weekdays) Days() []int {
	days := make([]int, 0, w.Len())
	for day := 0; day <= 6; day++ {
		if w.Contains(day) {
			days = append(days, day)
		}
	}
	return days
}

func (w Weekdays) String() string {
	days := w.Days()
	names := make([]string, len(days))
	for i, day := range days {
		names[i] = strconv.Itoa(day)
	}
	return "[" + strings.Join(names, ",") + "]"
}
