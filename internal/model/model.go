package model

import (
	"fmt"
	"time"
)

// Date is a calendar date without time-of-day or zone. All booking logic
// compares dates, never instants, so "today" is derived once per render in
// the shop's configured timezone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// NewDate normalizes overflowing values the same way time.Date does,
// e.g. NewDate(2026, 3, 0) is the last day of February.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses an ISO "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// String returns the ISO form used in forms and JSON.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Month identifies a visible calendar page.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month page containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Add moves n months forward (or backward for negative n), wrapping years.
func (m Month) Add(n int) Month {
	idx := m.Year*12 + int(m.Month-1) + n
	year := idx / 12
	mon := idx % 12
	if mon < 0 {
		mon += 12
		year--
	}
	return Month{Year: year, Month: time.Month(mon + 1)}
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// First returns day 1 of the month.
func (m Month) First() Date {
	return Date{Year: m.Year, Month: m.Month, Day: 1}
}

// Label renders "January 2026".
func (m Month) Label() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Barber is one selectable barber shown in the first booking step.
type Barber struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Contact holds the customer fields collected in the details step. They are
// only displayed and logged; nothing validates them beyond phone formatting.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}
