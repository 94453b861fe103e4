package dirgrowth

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimestamp is returned when a window bound cannot be parsed.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// Layouts that carry their own offset.
//
//nolint:gochecknoglobals // Parse table
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
}

// Layouts interpreted in the local time zone.
//
//nolint:gochecknoglobals // Parse table
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Window is an inclusive time range with optional bounds.
// A nil bound is open on that side.
type Window struct {
	// Start is the inclusive lower bound.
	Start *time.Time
	// End is the inclusive upper bound.
	End *time.Time
}

// NewWindow returns a window from the given bounds. Either may be nil.
// Start after End is accepted and yields a window that contains nothing.
func NewWindow(start, end *time.Time) Window {
	return Window{Start: start, End: end}
}

// Contains reports whether t lies inside the window.
func (w Window) Contains(t time.Time) bool {
	switch {
	case w.Start != nil && w.End != nil:
		return !t.Before(*w.Start) && !t.After(*w.End)
	case w.Start != nil:
		return !t.Before(*w.Start)
	case w.End != nil:
		return !t.After(*w.End)
	default:
		return true
	}
}

// Empty reports whether no instant can satisfy the window.
func (w Window) Empty() bool {
	return w.Start != nil && w.End != nil && w.Start.After(*w.End)
}

func (w Window) String() string {
	bound := func(t *time.Time) string {
		if t == nil {
			return "*"
		}

		return t.Format(time.RFC3339)
	}

	return "[" + bound(w.Start) + ", " + bound(w.End) + "]"
}

// ParseTime parses a window bound. It accepts RFC 3339 timestamps (with "T"
// or a space between date and time), date-times without an offset and bare
// dates; the last two are taken in the local time zone.
func ParseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidTimestamp)
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, raw)
}

// ParseOptionalTime parses raw with ParseTime, returning nil for an empty string.
func ParseOptionalTime(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil //nolint:nilnil // Absent bound
	}

	t, err := ParseTime(raw)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
