// Package calendar provides named business-day calendars. A calendar is
// defined as a JSON (or YAML) document:
//
//	{
//	  "name": "ops",
//	  "business_days": [1, 2, 3, 4, 5, 6],
//	  "exceptions": {"01/08/22": true},
//	  "non_working_days": ["2022-01-17"],
//	  "working_days": ["2022-01-09"]
//	}
//
// business_days defaults to Monday through Friday. The ISO-dated lists are
// folded into the exception table; an explicit entry in exceptions wins over
// a list entry for the same day, and working_days wins over non_working_days.
package calendar

import (
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/alpacahq/bizday/bizday"
	"github.com/alpacahq/bizday/utils/date"
	"github.com/alpacahq/bizday/utils/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Definition is the serialized form of a calendar.
type Definition struct {
	Name           string          `json:"name" yaml:"name"`
	BusinessDays   []int           `json:"business_days" yaml:"business_days"`
	Exceptions     map[string]bool `json:"exceptions" yaml:"exceptions"`
	NonWorkingDays []string        `json:"non_working_days" yaml:"non_working_days"`
	WorkingDays    []string        `json:"working_days" yaml:"working_days"`
}

// Calendar is a validated, named business-day calendar.
type Calendar struct {
	*bizday.Calendar
	name string
	opts bizday.Options
}

// New parses a calendar from its JSON definition.
func New(calendarJSON string) (*Calendar, error) {
	def := Definition{}
	if err := json.Unmarshal([]byte(calendarJSON), &def); err != nil {
		log.Error("failed to unmarshal calendar json: %v", err)
		return nil, errors.Wrap(err, "failed to unmarshal calendar json")
	}
	return FromDefinition(def)
}

// Load reads a calendar definition file. Files ending in .yml or .yaml are
// parsed as YAML, everything else as JSON. A definition without a name takes
// the file's base name.
func Load(path string) (*Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read calendar file %s", path)
	}

	def := Definition{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, &def)
	default:
		err = json.Unmarshal(data, &def)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse calendar file %s", path)
	}

	if def.Name == "" {
		base := filepath.Base(path)
		def.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return FromDefinition(def)
}

// FromDefinition validates def and builds the calendar.
func FromDefinition(def Definition) (*Calendar, error) {
	opts, err := def.Options()
	if err != nil {
		return nil, errors.Wrapf(err, "calendar %q", def.Name)
	}
	cal, err := bizday.NewCalendar(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "calendar %q", def.Name)
	}
	if bad := cal.Exceptions().Malformed(); len(bad) > 0 {
		log.Warn("calendar %q: ignoring malformed exceptions %v", def.Name, bad)
	}
	return &Calendar{Calendar: cal, name: def.Name, opts: opts}, nil
}

// Options flattens the definition into bizday options. Dates in the ISO
// lists must be valid; exception table keys are not checked here.
func (def Definition) Options() (bizday.Options, error) {
	opts := bizday.Options{BusinessDays: def.BusinessDays}
	if len(def.Exceptions) == 0 && len(def.NonWorkingDays) == 0 && len(def.WorkingDays) == 0 {
		return opts, nil
	}

	exceptions := make(map[string]bool, len(def.Exceptions)+len(def.NonWorkingDays)+len(def.WorkingDays))
	explicit := map[int]bool{}
	for key, working := range def.Exceptions {
		exceptions[key] = working
		if d, ok := bizday.ParseExceptionKey(key); ok {
			explicit[d.JulianDay()] = true
		}
	}

	fold := func(days []string, working bool) error {
		for _, s := range days {
			d, err := date.ParseDate(s)
			if err != nil {
				return errors.Wrapf(err, "invalid date %q", s)
			}
			if explicit[d.JulianDay()] {
				continue
			}
			exceptions[bizday.FormatExceptionKey(d)] = working
		}
		return nil
	}
	if err := fold(def.NonWorkingDays, false); err != nil {
		return bizday.Options{}, err
	}
	if err := fold(def.WorkingDays, true); err != nil {
		return bizday.Options{}, err
	}

	opts.Exceptions = exceptions
	return opts, nil
}

func (c *Calendar) Name() string {
	return c.name
}

// Options returns the flattened options the calendar was built from.
func (c *Calendar) Options() bizday.Options {
	return c.opts
}
