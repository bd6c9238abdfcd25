package bizday

import (
	"github.com/alpacahq/bizday/utils/date"
)

// AddBusinessDays adds amount business days to d under opts. See
// Calendar.AddBusinessDays.
func AddBusinessDays(d date.Date, amount int, opts Options) (date.Date, error) {
	c, err := NewCalendar(opts)
	if err != nil {
		return date.Invalid, err
	}
	return c.AddBusinessDays(d, amount)
}

// SubBusinessDays subtracts amount business days from d under opts.
func SubBusinessDays(d date.Date, amount int, opts Options) (date.Date, error) {
	return AddBusinessDays(d, -amount, opts)
}

// DifferenceInBusinessDays counts the business days between left and right
// under opts. See Calendar.DifferenceInBusinessDays.
func DifferenceInBusinessDays(left, right date.Date, opts Options) (NullDays, error) {
	c, err := NewCalendar(opts)
	if err != nil {
		return NullDays{}, err
	}
	return c.DifferenceInBusinessDays(left, right), nil
}
