package bizday

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidBusinessDay is returned when a weekly pattern names a weekday
	// outside 0 (Sunday) to 6 (Saturday).
	ErrInvalidBusinessDay = errors.New("business days must be between 0 (Sunday) and 6 (Saturday)")

	// ErrNoBusinessDays is returned when a step cannot be completed because
	// the calendar runs out of working days in the walk direction.
	ErrNoBusinessDays = errors.New("not enough business days in calendar")
)
