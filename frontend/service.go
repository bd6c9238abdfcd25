package frontend

import (
	"net/http"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/alpacahq/bizday/bizday"
	"github.com/alpacahq/bizday/calendar"
	"github.com/alpacahq/bizday/metrics"
	"github.com/alpacahq/bizday/utils/date"
	"github.com/alpacahq/bizday/utils/log"
)

var (
	errNotQueryable     = errors.New("server is not queryable")
	errArgsNil          = errors.New("arguments are nil")
	errUnknownCalendar  = errors.New("unknown calendar")
	errAmbiguousOptions = errors.New("calendar name and inline business_days/exceptions are mutually exclusive")
)

// CalendarArgs selects the calendar a request is answered with: either a
// configured calendar by name or an inline definition. An absent
// business_days means Monday through Friday, an empty list means no day.
type CalendarArgs struct {
	Calendar     string          `json:"calendar,omitempty"`
	BusinessDays []int           `json:"business_days,omitempty"`
	Exceptions   map[string]bool `json:"exceptions,omitempty"`
}

type StepArgs struct {
	CalendarArgs
	// Date is 2006-01-02 or an RFC 3339 timestamp.
	Date   string `json:"date"`
	Amount int    `json:"amount"`
}

// DateReply encodes as {"date": "2006-01-02", "valid": true}, or
// {"valid": false} for an invalid date.
type DateReply = date.NullDate

type DifferenceArgs struct {
	CalendarArgs
	Left  string `json:"left"`
	Right string `json:"right"`
}

// DifferenceReply holds the signed count; Valid is false when it is undefined.
type DifferenceReply struct {
	Days  int  `json:"days"`
	Valid bool `json:"valid"`
}

type DayArgs struct {
	CalendarArgs
	Date string `json:"date"`
}

type WorkingDayReply struct {
	Working bool `json:"working"`
	Valid   bool `json:"valid"`
}

type ListCalendarsArgs struct{}

type CalendarInfo struct {
	Name         string `json:"name"`
	BusinessDays []int  `json:"business_days"`
	Exceptions   int    `json:"exceptions"`
}

type ListCalendarsReply struct {
	Calendars []CalendarInfo `json:"calendars"`
}

// BusinessDayService is registered on the RPC server. Its methods are safe
// for concurrent use.
type BusinessDayService struct {
	registry *calendar.Registry
}

func NewBusinessDayService(reg *calendar.Registry) *BusinessDayService {
	if reg == nil {
		reg = calendar.NewRegistry()
	}
	return &BusinessDayService{registry: reg}
}

func (s *BusinessDayService) Add(_ *http.Request, args *StepArgs, reply *DateReply) error {
	return observe("Add", s.step(args, 1, reply))
}

func (s *BusinessDayService) Sub(_ *http.Request, args *StepArgs, reply *DateReply) error {
	return observe("Sub", s.step(args, -1, reply))
}

func (s *BusinessDayService) Difference(_ *http.Request, args *DifferenceArgs, reply *DifferenceReply) error {
	err := func() error {
		if args == nil {
			return errArgsNil
		}
		cal, err := s.resolve(args.CalendarArgs)
		if err != nil {
			return err
		}
		days := cal.DifferenceInBusinessDays(parseDate(args.Left), parseDate(args.Right))
		*reply = DifferenceReply{Days: days.Days, Valid: days.Valid}
		if !days.Valid {
			metrics.InvalidDatesTotal.WithLabelValues("Difference").Inc()
		}
		return nil
	}()
	return observe("Difference", err)
}

func (s *BusinessDayService) IsWorkingDay(_ *http.Request, args *DayArgs, reply *WorkingDayReply) error {
	err := func() error {
		if args == nil {
			return errArgsNil
		}
		cal, err := s.resolve(args.CalendarArgs)
		if err != nil {
			return err
		}
		d := parseDate(args.Date)
		*reply = WorkingDayReply{Working: cal.IsWorkingDay(d), Valid: d.IsValid()}
		if !d.IsValid() {
			metrics.InvalidDatesTotal.WithLabelValues("IsWorkingDay").Inc()
		}
		return nil
	}()
	return observe("IsWorkingDay", err)
}

func (s *BusinessDayService) ListCalendars(_ *http.Request, _ *ListCalendarsArgs, reply *ListCalendarsReply) error {
	if atomic.LoadUint32(&Queryable) == 0 {
		return observe("ListCalendars", errNotQueryable)
	}
	names := s.registry.Names()
	reply.Calendars = make([]CalendarInfo, 0, len(names))
	for _, name := range names {
		cal, ok := s.registry.Get(name)
		if !ok {
			continue
		}
		reply.Calendars = append(reply.Calendars, CalendarInfo{
			Name:         name,
			BusinessDays: cal.Weekdays().Days(),
			Exceptions:   cal.Exceptions().Len(),
		})
	}
	return observe("ListCalendars", nil)
}

func (s *BusinessDayService) step(args *StepArgs, sign int, reply *DateReply) error {
	if args == nil {
		return errArgsNil
	}
	cal, err := s.resolve(args.CalendarArgs)
	if err != nil {
		return err
	}
	got, err := cal.AddBusinessDays(parseDate(args.Date), sign*args.Amount)
	if err != nil {
		return err
	}
	*reply = date.MakeNullDate(&got)
	if !reply.Valid {
		method := "Add"
		if sign < 0 {
			method = "Sub"
		}
		metrics.InvalidDatesTotal.WithLabelValues(method).Inc()
	}
	return nil
}

func (s *BusinessDayService) resolve(args CalendarArgs) (*bizday.Calendar, error) {
	if atomic.LoadUint32(&Queryable) == 0 {
		return nil, errNotQueryable
	}
	if args.Calendar != "" {
		if args.BusinessDays != nil || args.Exceptions != nil {
			return nil, errAmbiguousOptions
		}
		cal, ok := s.registry.Get(args.Calendar)
		if !ok {
			return nil, errors.Wrapf(errUnknownCalendar, "%q", args.Calendar)
		}
		return cal.Calendar, nil
	}
	return bizday.NewCalendar(bizday.Options{
		BusinessDays: args.BusinessDays,
		Exceptions:   args.Exceptions,
	})
}

// parseDate maps anything unreadable to date.Invalid.
func parseDate(s string) date.Date {
	d, err := date.ParseLoose(s)
	if err != nil {
		log.Debug("unparsable date %q: %v", s, err)
		return date.Invalid
	}
	return d
}

func observe(method string, err error) error {
	if err != nil {
		metrics.RPCFailedRequestsTotal.WithLabelValues(method).Inc()
		return err
	}
	metrics.RPCSuccessfulRequestsTotal.WithLabelValues(method).Inc()
	return nil
}
