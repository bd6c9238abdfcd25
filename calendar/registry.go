package calendar

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Registry holds calendars by name.
type Registry struct {
	mu        sync.RWMutex
	calendars map[string]*Calendar
}

func NewRegistry() *Registry {
	return &Registry{calendars: map[string]*Calendar{}}
}

// Add registers c under its name. Names must be non-empty and unique.
func (r *Registry) Add(c *Calendar) error {
	if c.Name() == "" {
		return errors.New("calendar name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.calendars[c.Name()]; ok {
		return errors.Errorf("calendar %q is already registered", c.Name())
	}
	r.calendars[c.Name()] = c
	return nil
}

func (r *Registry) Get(name string) (*Calendar, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.calendars[name]
	return c, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.calendars))
	for name := range r.calendars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.calendars)
}
