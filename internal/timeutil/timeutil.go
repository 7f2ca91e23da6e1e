// Package timeutil converts stored UTC timestamps to and from the user's local
// time. It is presentational only.
package timeutil

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// InputLayout is the value format of an HTML datetime-local field.
const InputLayout = "2006-01-02T15:04"

const minLead = time.Minute

func parseUTC(utcISO string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, utcISO)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", utcISO, err)
	}
	return t.UTC(), nil
}

func ToLocalInputValue(utcISO string, loc *time.Location) string {
	if utcISO == "" {
		return ""
	}
	t, err := parseUTC(utcISO)
	if err != nil {
		return ""
	}
	return t.In(loc).Format(InputLayout)
}

// FromLocalInputValue reads a datetime-local value in loc and returns it as UTC.
func FromLocalInputValue(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(InputLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid local time %q: %w", value, err)
	}
	return t.UTC(), nil
}

func IsFuture(utcISO string, now time.Time) bool {
	if utcISO == "" {
		return false
	}
	t, err := parseUTC(utcISO)
	if err != nil {
		return false
	}
	return t.After(now)
}

func MinSelectableInstant(now time.Time) string {
	return FormatUTC(now.Add(minLead))
}

func FormatUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

var displayLayouts = map[string]string{
	"es": "02/01/2006 15:04",
	"en": "01/02/2006 3:04 PM",
	"pt": "02/01/2006 15:04",
	"fr": "02/01/2006 15:04",
	"de": "02.01.2006 15:04",
}

// FormatForDisplay falls back to the Spanish layout for unknown locales.
func FormatForDisplay(utcISO, locale string, loc *time.Location) string {
	t, err := parseUTC(utcISO)
	if err != nil {
		return ""
	}
	lang := strings.ToLower(locale)
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	layout, ok := displayLayouts[lang]
	if !ok {
		layout = displayLayouts["es"]
	}
	return t.In(loc).Format(layout)
}

// Locations resolves IANA names once per process.
type Locations struct {
	fallback *time.Location
	mu       sync.RWMutex
	cache    map[string]*time.Location
}

func NewLocations(fallback string) *Locations {
	loc, err := time.LoadLocation(fallback)
	if err != nil {
		loc = time.UTC
	}
	return &Locations{fallback: loc, cache: make(map[string]*time.Location)}
}

func (l *Locations) Resolve(name string) *time.Location {
	if name == "" {
		return l.fallback
	}

	l.mu.RLock()
	loc, ok := l.cache[name]
	l.mu.RUnlock()
	if ok {
		return loc
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		loc = l.fallback
	}

	l.mu.Lock()
	l.cache[name] = loc
	l.mu.Unlock()
	return loc
}
