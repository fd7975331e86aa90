package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// slotLabelLayout renders slot times the way the booking page shows them,
// e.g. "10:00 AM", "1:30 PM".
const slotLabelLayout = "3:04 PM"

// Slot is one fixed entry of the daily time catalog.
type Slot struct {
	Label  string `json:"label"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
}

// At returns the slot's start on the given date in loc.
func (s Slot) At(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, s.Hour, s.Minute, 0, 0, loc)
}

// Catalog is the ordered, immutable list of bookable slots for a business day.
type Catalog struct {
	slots  []Slot
	index  map[string]int
	length time.Duration
}

// NewCatalog generates count slots starting at hour:minute, spaced by
// interval. Generation goes through a MINUTELY recurrence rule so the
// catalog follows the same expansion path as any other recurring series.
func NewCatalog(hour, minute int, interval time.Duration, count int) (*Catalog, error) {
	if count <= 0 {
		return nil, errors.New("catalog: count must be positive")
	}
	if interval < time.Minute || interval%time.Minute != 0 {
		return nil, fmt.Errorf("catalog: interval %s is not a whole number of minutes", interval)
	}

	// Any fixed day works; only the clock part of each occurrence is kept.
	start := time.Date(2000, time.January, 1, hour, minute, 0, 0, time.UTC)
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.MINUTELY,
		Interval: int(interval / time.Minute),
		Count:    count,
		Dtstart:  start,
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: build rule: %w", err)
	}

	times := r.All()
	c := &Catalog{
		slots:  make([]Slot, 0, len(times)),
		index:  make(map[string]int, len(times)),
		length: interval,
	}
	for _, t := range times {
		label := t.Format(slotLabelLayout)
		if _, dup := c.index[label]; dup {
			// Wrapped past midnight; the catalog is a single business day.
			return nil, fmt.Errorf("catalog: slot %q repeats, day window too long", label)
		}
		c.index[label] = len(c.slots)
		c.slots = append(c.slots, Slot{Label: label, Hour: t.Hour(), Minute: t.Minute()})
	}
	return c, nil
}

// DefaultCatalog is the 20 half-hour slots from 10:00 AM to 7:30 PM.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(10, 0, 30*time.Minute, 20)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Len() int {
	return len(c.slots)
}

// Slots returns a copy of the catalog in order.
func (c *Catalog) Slots() []Slot {
	out := make([]Slot, len(c.slots))
	copy(out, c.slots)
	return out
}

func (c *Catalog) At(i int) Slot {
	return c.slots[i]
}

// Lookup finds a slot by its label.
func (c *Catalog) Lookup(label string) (Slot, int, bool) {
	i, ok := c.index[label]
	if !ok {
		return Slot{}, -1, false
	}
	return c.slots[i], i, true
}

// SlotLength is the duration of one slot.
func (c *Catalog) SlotLength() time.Duration {
	return c.length
}
