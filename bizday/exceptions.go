package bizday

import (
	"sort"
	"strings"

	"github.com/alpacahq/bizday/utils/date"
	"github.com/alpacahq/bizday/utils/log"
)

// exceptionLayouts are tried in order. Leading zeros are optional. A
// two-digit year follows time.Parse: 69-99 is 1969-1999, 00-68 is 2000-2068.
var exceptionLayouts = []string{"1/2/06", "1/2/2006"}

// Exceptions is a parsed exception table: calendar days forced to be working
// (true) or non-working (false). The zero value and nil are empty tables.
type Exceptions struct {
	days      map[int]bool // julian day number -> working
	index     []int        // sorted keys of days
	malformed []string
}

// ParseExceptions parses a table keyed by MM/DD/YY dates. Keys that are not
// dates are kept aside and never match anything. When two keys name the same
// day the one sorting last wins.
func ParseExceptions(raw map[string]bool) *Exceptions {
	e := &Exceptions{days: make(map[int]bool, len(raw))}
	if len(raw) == 0 {
		return e
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		d, ok := ParseExceptionKey(key)
		if !ok {
			log.Debug("ignoring malformed business day exception %q", key)
			e.malformed = append(e.malformed, key)
			continue
		}
		e.days[d.JulianDay()] = raw[key]
	}

	e.index = make([]int, 0, len(e.days))
	for jd := range e.days {
		e.index = append(e.index, jd)
	}
	sort.Ints(e.index)
	return e
}

// ParseExceptionKey reads an exception table key.
func ParseExceptionKey(key string) (date.Date, bool) {
	key = strings.TrimSpace(key)
	for _, layout := range exceptionLayouts {
		if d, err := date.Parse(layout, key); err == nil {
			return d, true
		}
	}
	return date.Invalid, false
}

// FormatExceptionKey renders d in the four-digit year form. ParseExceptionKey
// reads it back for years 1 through 9999.
func FormatExceptionKey(d date.Date) string {
	return d.Format("01/02/2006")
}

// Lookup returns the forced status of d and whether d is an exception at all.
func (e *Exceptions) Lookup(d date.Date) (working, ok bool) {
	if !d.IsValid() {
		return false, false
	}
	return e.lookup(d.JulianDay())
}

func (e *Exceptions) lookup(jd int) (working, ok bool) {
	if e == nil {
		return false, false
	}
	working, ok = e.days[jd]
	return working, ok
}

// Len returns the number of dated entries.
func (e *Exceptions) Len() int {
	if e == nil {
		return 0
	}
	return len(e.index)
}

// Malformed returns the keys that could not be read as dates.
func (e *Exceptions) Malformed() []string {
	if e == nil {
		return nil
	}
	return e.malformed
}

// Map returns the table keyed by ISO date.
func (e *Exceptions) Map() map[date.Date]bool {
	m := make(map[date.Date]bool, e.Len())
	if e == nil {
		return m
	}
	for jd, working := range e.days {
		m[date.FromJulianDay(jd)] = working
	}
	return m
}

// anyWithin reports whether an entry falls on a day between a and b, both
// inclusive, in either order.
func (e *Exceptions) anyWithin(a, b int) bool {
	if e.Len() == 0 {
		return false
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	i := sort.SearchInts(e.index, lo)
	return i < len(e.index) && e.index[i] <= hi
}

// each calls fn for every entry between lo and hi inclusive, ascending.
func (e *Exceptions) each(lo, hi int, fn func(jd int, working bool)) {
	if e.Len() == 0 {
		return
	}
	for i := sort.SearchInts(e.index, lo); i < len(e.index) && e.index[i] <= hi; i++ {
		jd := e.index[i]
		fn(jd, e.days[jd])
	}
}

// nthWorking returns the n-th working entry strictly after from (dir > 0) or
// strictly before it (dir < 0).
func (e *Exceptions) nthWorking(from, dir, n int) (int, bool) {
	if e.Len() == 0 || n <= 0 {
		return 0, false
	}
	if dir > 0 {
		for i := sort.SearchInts(e.index, from+1); i < len(e.index); i++ {
			if jd := e.index[i]; e.days[jd] {
				if n--; n == 0 {
					return jd, true
				}
			}
		}
		return 0, false
	}
	for i := sort.SearchInts(e.index, from) - 1; i >= 0; i-- {
		if jd := e.index[i]; e.days[jd] {
			if n--; n == 0 {
				return jd, true
			}
		}
	}
	return 0, false
}
