package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/alpacahq/bizday/calendar"
	"github.com/alpacahq/bizday/utils/log"
)

// ListenPortEnv overrides listen_port from the config file.
const ListenPortEnv = "BIZDAY_LISTEN_PORT"

const defaultListenPort = "5995"

var InstanceConfig BizdayConfig

func init() {
	InstanceConfig.StartTime = time.Now()
}

// CalendarSetting is one entry of the calendars list: either a path to a
// definition file or an inline definition.
type CalendarSetting struct {
	File       string
	Definition calendar.Definition
}

type BizdayConfig struct {
	ListenPort      string
	LogLevel        log.Level
	StopGracePeriod time.Duration
	StartTime       time.Time
	Calendars       []*CalendarSetting
}

// ParseConfig reads the YAML service configuration.
func ParseConfig(data []byte) (*BizdayConfig, error) {
	var (
		m   = &BizdayConfig{StartTime: InstanceConfig.StartTime}
		aux struct {
			ListenPort      string `yaml:"listen_port"`
			LogLevel        string `yaml:"log_level"`
			StopGracePeriod int    `yaml:"stop_grace_period"`
			Calendars       []struct {
				File                string `yaml:"file"`
				calendar.Definition `yaml:",inline"`
			} `yaml:"calendars"`
		}
	)

	if err := yaml.Unmarshal(data, &aux); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	listenPort := aux.ListenPort
	if port := os.Getenv(ListenPortEnv); port != "" {
		listenPort = port
	}
	if listenPort == "" {
		listenPort = defaultListenPort
	}
	if _, err := strconv.ParseUint(listenPort, 10, 16); err != nil {
		return nil, errors.Errorf("invalid listen port: %q", listenPort)
	}
	m.ListenPort = fmt.Sprintf(":%v", listenPort)

	m.LogLevel = log.ParseLevel(aux.LogLevel)
	if aux.LogLevel != "" && !strings.EqualFold(aux.LogLevel, "info") && m.LogLevel == log.INFO {
		log.Warn("unknown log level %q, using info", aux.LogLevel)
	}

	if aux.StopGracePeriod < 0 {
		return nil, errors.Errorf("invalid stop grace period: %d", aux.StopGracePeriod)
	}
	m.StopGracePeriod = time.Duration(aux.StopGracePeriod) * time.Second

	for i, cal := range aux.Calendars {
		if cal.File == "" && cal.Name == "" {
			return nil, errors.Errorf("calendar #%d needs a file or a name", i+1)
		}
		if cal.File != "" && (cal.BusinessDays != nil || cal.Exceptions != nil ||
			cal.NonWorkingDays != nil || cal.WorkingDays != nil) {
			return nil, errors.Errorf("calendar #%d mixes a file with an inline definition", i+1)
		}
		m.Calendars = append(m.Calendars, &CalendarSetting{
			File:       cal.File,
			Definition: cal.Definition,
		})
	}

	return m, nil
}

// LoadCalendars builds the registry of every configured calendar.
func (m *BizdayConfig) LoadCalendars() (*calendar.Registry, error) {
	reg := calendar.NewRegistry()
	for _, setting := range m.Calendars {
		var (
			cal *calendar.Calendar
			err error
		)
		if setting.File != "" {
			cal, err = calendar.Load(setting.File)
		} else {
			cal, err = calendar.FromDefinition(setting.Definition)
		}
		if err != nil {
			return nil, err
		}
		if err := reg.Add(cal); err != nil {
			return nil, err
		}
		log.Info("loaded calendar %q with business days %v and %d exceptions",
			cal.Name(), cal.Weekdays(), cal.Exceptions().Len())
	}
	return reg, nil
}
