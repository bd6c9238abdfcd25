// Package date provides the calendar-day type used by the business-day
// arithmetic. A Date carries no time of day and no location.
//
// The zero Date is not a valid calendar day and serves as the invalid-date
// sentinel: every operation on an invalid Date yields an invalid Date
// instead of panicking or silently normalizing it into a real day.
package date

import (
	"time"

	"cloud.google.com/go/civil"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Date civil.Date

// Invalid is the canonical invalid date.
var Invalid = Date{}

// Layout is the ISO calendar-date layout used by String and Parse.
const Layout = "2006-01-02"

// New returns the date for the given calendar fields. Out-of-range fields
// yield an invalid date.
func New(year int, month time.Month, day int) Date {
	d := Date{Year: year, Month: month, Day: day}
	if !d.IsValid() {
		return Invalid
	}
	return d
}

// Of returns the calendar day of t in t's own location.
func Of(t time.Time) Date {
	return Date(civil.DateOf(t))
}

func ParseDate(s string) (Date, error) {
	d, err := civil.ParseDate(s)
	return Date(d), err
}

// Parse reads value with the given time layout and keeps only its calendar day.
func Parse(layout, value string) (Date, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return Invalid, err
	}
	return Of(t), nil
}

// ParseLoose accepts either an ISO date or an RFC 3339 timestamp. The time of
// day of a timestamp is dropped after resolving it in its own offset.
func ParseLoose(s string) (Date, error) {
	d, err := ParseDate(s)
	if err == nil {
		return d, nil
	}
	t, err2 := time.Parse(time.RFC3339Nano, s)
	if err2 != nil {
		return Invalid, err
	}
	return Of(t), nil
}

func (d Date) c() civil.Date {
	return civil.Date(d)
}

func (d Date) IsValid() bool {
	return d.c().IsValid()
}

// AddDays returns the date n days after d. An invalid d stays invalid.
func (d Date) AddDays(n int) Date {
	if !d.IsValid() {
		return Invalid
	}
	return FromJulianDay(d.JulianDay() + n)
}

func (d Date) After(d2 Date) bool {
	return d.c().After(d2.c())
}

func (d Date) Before(d2 Date) bool {
	return d.c().Before(d2.c())
}

// DaysSince returns the signed number of days from s to d.
func (d Date) DaysSince(s Date) int {
	return d.JulianDay() - s.JulianDay()
}

func (d Date) In(loc *time.Location) time.Time {
	return d.c().In(loc)
}

// Weekday returns the day of the week, 0=Sunday through 6=Saturday.
func (d Date) Weekday() int {
	return WeekdayOf(d.JulianDay())
}

// JulianDay returns the Julian day number of d. The result is meaningless
// for an invalid date. Years before the Julian epoch give negative numbers.
func (d Date) JulianDay() int {
	// nolint:gomnd // days from civil, floor division keeps negative years exact
	year, month := d.Year, int(d.Month)
	if month <= 2 {
		year--
	}
	era := floorDiv(year, 400)
	yoe := year - era*400
	mp := (month + 9) % 12
	doy := (153*mp+2)/5 + d.Day - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe + 1721120
}

// FromJulianDay is the inverse of JulianDay.
func FromJulianDay(jd int) Date {
	// nolint:gomnd // civil from days
	z := jd - 1721120
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day := doy - (153*mp+2)/5 + 1
	month := (mp+2)%12 + 1
	year := yoe + era*400
	if month <= 2 {
		year++
	}
	return Date{Year: year, Month: time.Month(month), Day: day}
}

// WeekdayOf returns the weekday (0=Sunday) of a Julian day number.
func WeekdayOf(jd int) int {
	// JDN 0 is a Monday.
	return ((jd+1)%7 + 7) % 7
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func (d Date) MarshalText() ([]byte, error) {
	return d.c().MarshalText()
}

func (d Date) String() string {
	if !d.IsValid() {
		return "Invalid Date"
	}
	return d.c().String()
}

func (d *Date) UnmarshalText(data []byte) error {
	return (*civil.Date)(d).UnmarshalText(data)
}

func (d Date) Format(layout string) string {
	return d.In(time.UTC).Format(layout)
}

// NullDate is a Date that may be absent. It encodes to JSON as
// {"date": "2006-01-02", "valid": true} or {"valid": false}.
type NullDate struct {
	Date  Date
	Valid bool
}

type nullDateJSON struct {
	Date  *Date `json:"date,omitempty"`
	Valid bool  `json:"valid"`
}

func (n NullDate) MarshalJSON() ([]byte, error) {
	if !n.Valid || !n.Date.IsValid() {
		return json.Marshal(nullDateJSON{})
	}
	return json.Marshal(nullDateJSON{Date: &n.Date, Valid: true})
}

// UnmarshalJSON treats a missing date as absent.
func (n *NullDate) UnmarshalJSON(data []byte) error {
	aux := nullDateJSON{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*n = MakeNullDate(aux.Date)
	return nil
}

func MakeNullDate(d *Date) NullDate {
	if d != nil && d.IsValid() {
		return NullDate{
			Date:  *d,
			Valid: true,
		}
	}

	return NullDate{}
}
