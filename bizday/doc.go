// Package bizday implements calendar arithmetic over business days.
//
// A business day is decided by two inputs. The weekly pattern (Weekdays)
// names the days of the week, 0=Sunday through 6=Saturday, that are working
// days by default; Monday to Friday unless told otherwise. The exception
// table (Exceptions) forces individual calendar dates to be working (true)
// or non-working (false) regardless of their weekday. An exception always
// wins over the weekly pattern for the date it names.
//
// AddBusinessDays and SubBusinessDays step a date by a number of business
// days; DifferenceInBusinessDays counts the business days between two
// dates. Each call validates its Options before looking at any date, so an
// out-of-range weekday fails with ErrInvalidBusinessDay even when the dates
// involved are invalid or equal. Callers evaluating many dates against the
// same options should build a Calendar once with NewCalendar.
//
// Invalid dates are not errors. Stepping an invalid date yields date.Invalid
// and the difference involving one is a NullDays with Valid set to false.
package bizday
