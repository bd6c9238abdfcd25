package bizday

import (
	"github.com/alpacahq/bizday/utils/date"
)

// Options configures which days count as business days.
type Options struct {
	// BusinessDays lists the weekdays, 0=Sunday through 6=Saturday, that are
	// business days. nil means Monday through Friday.
	BusinessDays []int `json:"business_days,omitempty" yaml:"business_days,omitempty"`

	// Exceptions forces single dates, keyed MM/DD/YY, to be business days
	// (true) or not (false). nil means no exceptions.
	Exceptions map[string]bool `json:"exceptions,omitempty" yaml:"exceptions,omitempty"`
}

// Calendar is a validated weekly pattern plus exception table. It is
// immutable and safe for concurrent use.
type Calendar struct {
	weekdays   Weekdays
	exceptions *Exceptions
}

// NewCalendar validates opts and parses its exception table once.
func NewCalendar(opts Options) (*Calendar, error) {
	weekdays, err := ParseWeekdays(opts.BusinessDays)
	if err != nil {
		return nil, err
	}
	return &Calendar{
		weekdays:   weekdays,
		exceptions: ParseExceptions(opts.Exceptions),
	}, nil
}

// MustCalendar is NewCalendar for options known to be valid.
func MustCalendar(opts Options) *Calendar {
	c, err := NewCalendar(opts)
	if err != nil {
		panic(err)
	}
	return c
}

// Weekdays returns the weekly business day pattern.
func (c *Calendar) Weekdays() Weekdays {
	return c.weekdays
}

// Exceptions returns the parsed exception table, never nil.
func (c *Calendar) Exceptions() *Exceptions {
	return c.exceptions
}

// IsWorkingDay reports whether d is a business day: its exception if it has
// one, otherwise its weekday. Invalid dates are never working days.
func (c *Calendar) IsWorkingDay(d date.Date) bool {
	if !d.IsValid() {
		return false
	}
	return c.isWorkingDay(d.JulianDay())
}

func (c *Calendar) isWorkingDay(jd int) bool {
	if working, ok := c.exceptions.lookup(jd); ok {
		return working
	}
	return c.weekdays.Contains(date.WeekdayOf(jd))
}
