package bizday_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpacahq/bizday/bizday"
	"github.com/alpacahq/bizday/utils/date"
)

func TestDifferenceInBusinessDays(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		left, right date.Date
		opts        bizday.Options
		want        int
	}{
		"ok/ excludes weekends": {
			left: date.New(2014, time.July, 18), right: date.New(2014, time.January, 10), want: 135,
		},
		"ok/ negative when left is earlier": {
			left: date.New(2014, time.January, 10), right: date.New(2014, time.July, 20), want: -135,
		},
		"ok/ left falls on a weekend": {
			left: date.New(2019, time.July, 20), right: date.New(2019, time.July, 18), want: 2,
		},
		"ok/ right falls on a weekend": {
			left: date.New(2019, time.July, 23), right: date.New(2019, time.July, 20), want: 1,
		},
		"ok/ both fall on a weekend": {
			left: date.New(2019, time.July, 28), right: date.New(2019, time.July, 20), want: 5,
		},
		"ok/ adjacent days": {
			left: date.New(2014, time.September, 5), right: date.New(2014, time.September, 4), want: 1,
		},
		"ok/ adjacent days swapped": {
			left: date.New(2014, time.September, 4), right: date.New(2014, time.September, 5), want: -1,
		},
		"ok/ same day": {
			left: date.New(2014, time.September, 5), right: date.New(2014, time.September, 5), want: 0,
		},
		"ok/ Saturday as a business day": {
			left: jan22(17), right: jan22(7), opts: bizday.Options{BusinessDays: monSat}, want: 8,
		},
		"ok/ Saturday business day, left on a Sunday": {
			left: jan22(16), right: jan22(7), opts: bizday.Options{BusinessDays: monSat}, want: 8,
		},
		"ok/ Saturday business day, right on a Sunday": {
			left: jan22(17), right: jan22(9), opts: bizday.Options{BusinessDays: monSat}, want: 6,
		},
		"ok/ Sunday as a business day": {
			left: jan22(17), right: jan22(7), opts: bizday.Options{BusinessDays: []int{0, 1, 2, 3, 4, 5}}, want: 8,
		},
		"ok/ every day": {
			left: jan22(17), right: jan22(7), opts: bizday.Options{BusinessDays: []int{0, 1, 2, 3, 4, 5, 6}}, want: 10,
		},
		"ok/ true exceptions add days": {
			left: jan22(17), right: jan22(7),
			opts: bizday.Options{Exceptions: map[string]bool{"01/08/22": true, "01/09/22": true}},
			want: 8,
		},
		"ok/ false exceptions remove days": {
			left: jan22(17), right: jan22(7),
			opts: bizday.Options{Exceptions: map[string]bool{"01/11/22": false, "01/12/22": false}},
			want: 4,
		},
		"ok/ true and false exceptions": {
			left: jan22(17), right: jan22(7),
			opts: bizday.Options{Exceptions: map[string]bool{
				"01/08/22": true, "01/09/22": true, "01/11/22": false, "01/12/22": false,
			}},
			want: 6,
		},
		"ok/ true exceptions on working days change nothing": {
			left: jan22(17), right: jan22(7),
			opts: bizday.Options{Exceptions: map[string]bool{
				"01/08/22": true, "01/09/22": true, "01/10/22": true, "01/11/22": true,
			}},
			want: 8,
		},
		"ok/ false exceptions on non-working days change nothing": {
			left: jan22(17), right: jan22(7),
			opts: bizday.Options{Exceptions: map[string]bool{
				"01/11/22": false, "01/12/22": false, "01/15/22": false, "01/16/22": false,
			}},
			want: 4,
		},
		"ok/ exceptions on both argument dates": {
			left: jan22(16), right: jan22(8),
			opts: bizday.Options{Exceptions: map[string]bool{"01/08/22": true, "01/09/22": true, "01/16/22": true}},
			want: 7,
		},
		"ok/ true Sundays on both argument dates": {
			left: jan22(16), right: jan22(9),
			opts: bizday.Options{BusinessDays: monSat, Exceptions: map[string]bool{"01/09/22": true, "01/16/22": true}},
			want: 7,
		},
		"ok/ exception on the left date is not counted": {
			left: jan22(16), right: jan22(8),
			opts: bizday.Options{Exceptions: map[string]bool{"01/09/22": true, "01/16/22": true}},
			want: 6,
		},
		"ok/ exception on the right date is counted": {
			left: jan22(16), right: jan22(8),
			opts: bizday.Options{Exceptions: map[string]bool{"01/08/22": true, "01/09/22": true}},
			want: 7,
		},
		"ok/ exceptions outside the range are inert": {
			left: jan22(17), right: jan22(7),
			opts: bizday.Options{Exceptions: map[string]bool{
				"01/01/22": true, "01/08/22": true, "01/09/22": true, "01/22/22": true,
			}},
			want: 8,
		},
		"ok/ many working Saturdays": {
			left: date.New(2022, time.February, 14), right: jan22(3),
			opts: bizday.Options{Exceptions: map[string]bool{
				"01/08/22": true, "01/15/22": true, "01/22/22": true, "01/29/22": true,
				"02/05/22": true, "02/12/22": true, "02/19/22": true,
			}},
			want: 36,
		},
		"ok/ false exception on a zero-day difference": {
			left: date.New(2018, time.January, 1), right: date.New(2018, time.January, 1),
			opts: bizday.Options{BusinessDays: []int{0, 1, 2, 3, 4, 5, 6}, Exceptions: map[string]bool{"01/01/18": false}},
			want: 0,
		},
		"ok/ false exceptions in a negative difference": {
			left: date.New(2018, time.January, 1), right: date.New(2018, time.January, 8),
			opts: bizday.Options{BusinessDays: []int{0, 1, 2, 3, 4, 5, 6}, Exceptions: map[string]bool{"01/06/18": false, "01/07/18": false}},
			want: -5,
		},
		"ok/ false exceptions in a negative difference across years": {
			left: date.New(2017, time.December, 25), right: date.New(2018, time.January, 1),
			opts: bizday.Options{BusinessDays: []int{0, 1, 2, 3, 4, 5, 6}, Exceptions: map[string]bool{"12/30/17": false, "12/31/17": false}},
			want: -5,
		},
		"ok/ exceptions inside whole weeks of a negative difference": {
			left: jan22(3), right: date.New(2022, time.February, 14),
			opts: bizday.Options{Exceptions: map[string]bool{
				"01/08/22": true, "01/15/22": true, "01/22/22": true, "01/29/22": true,
				"02/05/22": true, "02/12/22": true, "02/19/22": true, "01/04/22": false,
			}},
			want: -35,
		},
		"ok/ empty week counts true exceptions only": {
			left: jan22(31), right: jan22(1),
			opts: bizday.Options{BusinessDays: []int{}, Exceptions: map[string]bool{
				"01/01/22": true, "01/05/22": true, "01/12/22": false, "01/31/22": true,
			}},
			want: 2,
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			// --- when ---
			got, err := bizday.DifferenceInBusinessDays(tt.left, tt.right, tt.opts)

			// --- then ---
			require.NoError(t, err)
			require.True(t, got.Valid)
			assert.Equal(t, tt.want, got.Days)
		})
	}
}

func TestDifferenceLongRange(t *testing.T) {
	t.Parallel()

	start := time.Now()
	got, err := bizday.DifferenceInBusinessDays(date.New(15000, time.January, 1), date.New(2014, time.January, 1), bizday.Options{})
	require.NoError(t, err)
	assert.Equal(t, bizday.NullDays{Days: 3387885, Valid: true}, got)
	assert.Less(t, int64(time.Since(start)), int64(500*time.Millisecond))
}

func TestDifferenceInvalidDates(t *testing.T) {
	t.Parallel()

	valid := date.New(2017, time.January, 1)
	for _, pair := range [][2]date.Date{
		{date.Invalid, valid},
		{valid, date.Invalid},
		{date.Invalid, date.Invalid},
	} {
		got, err := bizday.DifferenceInBusinessDays(pair[0], pair[1], bizday.Options{})
		require.NoError(t, err)
		assert.False(t, got.Valid)
	}
}

func TestDifferenceInvalidBusinessDays(t *testing.T) {
	t.Parallel()

	opts := bizday.Options{BusinessDays: []int{3, 4, 5, 6, 7}}
	_, err := bizday.DifferenceInBusinessDays(jan22(7), jan22(14), opts)
	assert.ErrorIs(t, err, bizday.ErrInvalidBusinessDay)

	// fails the same way for a degenerate range and for invalid dates
	_, err = bizday.DifferenceInBusinessDays(jan22(7), jan22(7), opts)
	assert.ErrorIs(t, err, bizday.ErrInvalidBusinessDay)
	_, err = bizday.DifferenceInBusinessDays(date.Invalid, jan22(7), opts)
	assert.ErrorIs(t, err, bizday.ErrInvalidBusinessDay)
}

func TestDifferenceSwappedArguments(t *testing.T) {
	t.Parallel()

	cal := bizday.MustCalendar(bizday.Options{
		BusinessDays: []int{1, 2, 4, 6},
		Exceptions:   map[string]bool{"01/09/22": true, "01/13/22": false, "02/02/22": true},
	})
	working := func(d date.Date) int {
		if cal.IsWorkingDay(d) {
			return 1
		}
		return 0
	}
	days := make([]date.Date, 0, 60)
	for d := date.New(2021, time.December, 20); len(days) < 60; d = d.AddDays(1) {
		days = append(days, d)
	}
	for _, a := range days {
		for _, b := range days {
			// the earlier day is counted one way round and skipped the other
			earlier, later := a, b
			if b.Before(a) {
				earlier, later = b, a
			}
			want := working(earlier) - working(later)
			if a == b {
				want = 0
			}

			ab := cal.DifferenceInBusinessDays(a, b)
			ba := cal.DifferenceInBusinessDays(b, a)

			if !assert.Equal(t, want, ab.Days+ba.Days, "%s vs %s", a, b) {
				return
			}
		}
	}
}

func TestDifferenceSwappedArgumentsExamples(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		a, b   date.Date
		ab, ba int
	}{
		"ok/ Saturday against Thursday": {
			a: date.New(2019, time.July, 20), b: date.New(2019, time.July, 18),
			ab: 2, ba: -1,
		},
		"ok/ both working days": {
			a: date.New(2019, time.July, 22), b: date.New(2019, time.July, 18),
			ab: 2, ba: -2,
		},
		"ok/ both weekend days": {
			a: date.New(2019, time.July, 27), b: date.New(2019, time.July, 20),
			ab: 5, ba: -5,
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ab, err := bizday.DifferenceInBusinessDays(tt.a, tt.b, bizday.Options{})
			require.NoError(t, err)
			ba, err := bizday.DifferenceInBusinessDays(tt.b, tt.a, bizday.Options{})
			require.NoError(t, err)

			assert.Equal(t, tt.ab, ab.Days)
			assert.Equal(t, tt.ba, ba.Days)
		})
	}
}

func TestDifferenceMatchesDayByDayWalk(t *testing.T) {
	t.Parallel()

	cal := bizday.MustCalendar(bizday.Options{
		BusinessDays: []int{0, 3, 5},
		Exceptions: map[string]bool{
			"01/02/22": false, "01/04/22": true, "01/19/22": false, "02/06/22": false, "02/10/22": true,
		},
	})
	right := date.New(2021, time.December, 28)
	for left := right.AddDays(-60); left.Before(right.AddDays(60)); left = left.AddDays(1) {
		want := 0
		switch {
		case left.After(right):
			for d := right; d.Before(left); d = d.AddDays(1) {
				if cal.IsWorkingDay(d) {
					want++
				}
			}
		case left.Before(right):
			for d := right; d.After(left); d = d.AddDays(-1) {
				if cal.IsWorkingDay(d) {
					want--
				}
			}
		}
		assert.Equal(t, want, cal.DifferenceInBusinessDays(left, right).Days, "%s", left)
	}
}

func TestDifferenceOfStep(t *testing.T) {
	t.Parallel()

	// stepping n days from a working day and measuring back gives n
	cal := bizday.MustCalendar(bizday.Options{BusinessDays: monFri})
	start := jan22(3)
	for _, n := range []int{1, 4, 5, 6, 23, 250} {
		end, err := cal.AddBusinessDays(start, n)
		require.NoError(t, err)
		assert.Equal(t, n, cal.DifferenceInBusinessDays(end, start).Days)
	}
}
