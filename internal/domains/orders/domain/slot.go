package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

// Layouts of the canonical "HH-mm dd-MM-yyyy" order time.
const (
	HourLayout = "15-04"
	DayLayout  = "02-01-2006"
	TimeLayout = HourLayout + " " + DayLayout
)

var ErrInvalidTime = fmt.Errorf("%w: order time must look like HH-mm dd-MM-yyyy", result.ErrValidation)

// Slot is the editable form of an order time.
type Slot struct {
	Hour string
	Day  string
}

// SlotOf splits t into its editable parts.
func SlotOf(t time.Time) Slot {
	return Slot{Hour: t.Format(HourLayout), Day: t.Format(DayLayout)}
}

// String joins the slot into the canonical time string.
func (s Slot) String() string {
	return strings.TrimSpace(s.Hour) + " " + strings.TrimSpace(s.Day)
}

// Compose parses the slot back into a point in time in loc.
func (s Slot) Compose(loc *time.Location) (time.Time, error) {
	return ParseTime(s.String(), loc)
}

// FormatTime renders t in the canonical layout.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseTime parses the canonical layout in loc.
func ParseTime(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(TimeLayout, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", raw, ErrInvalidTime)
	}
	return t, nil
}

// WithTime returns a copy whose time and slot are t.
func (o *Order) WithTime(t time.Time) *Order {
	c := o.Clone()
	c.Time = t
	c.Slot = SlotOf(t)
	return c
}
