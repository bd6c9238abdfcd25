// Package calc implements the add, sub and diff commands.
package calc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/alpacahq/bizday/bizday"
	"github.com/alpacahq/bizday/calendar"
	"github.com/alpacahq/bizday/utils/date"
)

const (
	businessDaysDesc = "comma separated weekdays counted as business days, 0 is Sunday (default 1,2,3,4,5)"
	exceptionDesc    = "MM/DD/YY=true|false, overrides the weekly pattern for one day (repeatable)"
	calendarFileDesc = "JSON or YAML calendar definition to use instead of inline flags"
)

var (
	// AddCmd is the add command.
	AddCmd = newStepCmd(1)
	// SubCmd is the sub command.
	SubCmd = newStepCmd(-1)
	// DiffCmd is the diff command.
	DiffCmd = newDiffCmd()
)

// calendarFlags are shared by every calc command.
type calendarFlags struct {
	businessDays string
	exceptions   []string
	calendarFile string
}

func (f *calendarFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.businessDays, "business-days", "b", "", businessDaysDesc)
	cmd.Flags().StringArrayVarP(&f.exceptions, "exception", "e", nil, exceptionDesc)
	cmd.Flags().StringVarP(&f.calendarFile, "calendar-file", "f", "", calendarFileDesc)
}

// calendar builds the calendar selected by the flags of cmd.
func (f *calendarFlags) calendar(cmd *cobra.Command) (*bizday.Calendar, error) {
	inline := cmd.Flags().Changed("business-days") || len(f.exceptions) > 0
	if f.calendarFile != "" {
		if inline {
			return nil, errors.New("--calendar-file cannot be combined with --business-days or --exception")
		}
		cal, err := calendar.Load(f.calendarFile)
		if err != nil {
			return nil, err
		}
		return cal.Calendar, nil
	}

	opts := bizday.Options{}
	if cmd.Flags().Changed("business-days") {
		days, err := parseBusinessDays(f.businessDays)
		if err != nil {
			return nil, err
		}
		opts.BusinessDays = days
	}
	if len(f.exceptions) > 0 {
		opts.Exceptions = make(map[string]bool, len(f.exceptions))
		for _, e := range f.exceptions {
			key, value, err := parseException(e)
			if err != nil {
				return nil, err
			}
			opts.Exceptions[key] = value
		}
	}
	return bizday.NewCalendar(opts)
}

// parseBusinessDays reads "1,2,3". An empty string is the empty set.
func parseBusinessDays(s string) ([]int, error) {
	days := []int{}
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		day, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid business day %q", field)
		}
		days = append(days, day)
	}
	return days, nil
}

// parseException reads "01/08/22=true".
func parseException(s string) (string, bool, error) {
	i := strings.LastIndex(s, "=")
	if i < 0 {
		return "", false, errors.Errorf("invalid exception %q, want MM/DD/YY=true|false", s)
	}
	working, err := strconv.ParseBool(strings.TrimSpace(s[i+1:]))
	if err != nil {
		return "", false, errors.Errorf("invalid exception %q, want MM/DD/YY=true|false", s)
	}
	return strings.TrimSpace(s[:i]), working, nil
}

func parseDateArg(s string) (date.Date, error) {
	d, err := date.ParseLoose(s)
	if err != nil {
		return date.Invalid, errors.Errorf("invalid date %q, want 2006-01-02 or an RFC 3339 timestamp", s)
	}
	return d, nil
}

func newStepCmd(sign int) *cobra.Command {
	flags := &calendarFlags{}
	use, short := "add <date> <amount>", "Add business days to a date"
	example := "bizday add 2022-01-07 8 --business-days 1,2,3,4,5,6"
	if sign < 0 {
		use, short = "sub <date> <amount>", "Subtract business days from a date"
		example = "bizday sub 2022-01-17 10 -e 01/16/22=true -e 01/09/22=true"
	}

	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: example,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDateArg(args[0])
			if err != nil {
				return err
			}
			amount, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Errorf("invalid amount %q", args[1])
			}
			cal, err := flags.calendar(cmd)
			if err != nil {
				return err
			}

			cmd.SilenceUsage = true
			got, err := cal.AddBusinessDays(d, sign*amount)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), got)
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func newDiffCmd() *cobra.Command {
	flags := &calendarFlags{}
	cmd := &cobra.Command{
		Use:   "diff <left> <right>",
		Short: "Count the business days between two dates",
		Long: "Count the business days between two dates. The result is positive when left " +
			"is later than right; right is counted, left is not.",
		Example: "bizday diff 2014-07-18 2014-01-10",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := parseDateArg(args[0])
			if err != nil {
				return err
			}
			right, err := parseDateArg(args[1])
			if err != nil {
				return err
			}
			cal, err := flags.calendar(cmd)
			if err != nil {
				return err
			}

			cmd.SilenceUsage = true
			days := cal.DifferenceInBusinessDays(left, right)
			if !days.Valid {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "NaN")
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), days.Days)
			return err
		},
	}
	flags.register(cmd)
	return cmd
}
