package booking

import (
	"slices"
	"time"

	"barberbook/internal/model"
)

// GridCells is the fixed size of a month page: six full weeks.
const GridCells = 42

// CellKind tags which month a grid cell belongs to.
type CellKind string

const (
	CellPrevMonth    CellKind = "prev"
	CellCurrentMonth CellKind = "current"
	CellNextMonth    CellKind = "next"
)

// Cell is one day of the rendered month grid.
type Cell struct {
	Date     model.Date `json:"-"`
	ISO      string     `json:"date"`
	Day      int        `json:"day"`
	Kind     CellKind   `json:"kind"`
	Today    bool       `json:"today"`
	Disabled bool       `json:"disabled"`
	Selected bool       `json:"selected"`
}

// CalendarRules are the shop-wide inputs to grid rendering.
type CalendarRules struct {
	// Closed lists weekdays on which nothing can be booked.
	Closed []time.Weekday
	// WeekStart is the weekday of each row's first column.
	WeekStart time.Weekday
}

// Selectable reports whether d can be chosen given today's date.
func (r CalendarRules) Selectable(d, today model.Date) bool {
	if d.Before(today) {
		return false
	}
	return !slices.Contains(r.Closed, d.Weekday())
}

// WeekdayLabels returns the column headers starting at WeekStart.
func (r CalendarRules) WeekdayLabels() []string {
	out := make([]string, 7)
	for i := range out {
		out[i] = time.Weekday((int(r.WeekStart) + i) % 7).String()[:3]
	}
	return out
}

// Grid lays out month as GridCells cells: the tail of the previous month up
// to the first column, every day of month, then the head of the next month.
// Only current-month cells can be today, selected, or enabled. selected may
// be nil.
func Grid(month model.Month, today model.Date, selected *model.Date, rules CalendarRules) []Cell {
	cells := make([]Cell, 0, GridCells)

	first := month.First()
	leading := (int(first.Weekday()) - int(rules.WeekStart) + 7) % 7

	prev := month.Add(-1)
	prevDays := prev.Days()
	for i := leading - 1; i >= 0; i-- {
		d := model.Date{Year: prev.Year, Month: prev.Month, Day: prevDays - i}
		cells = append(cells, otherMonthCell(d, CellPrevMonth))
	}

	days := month.Days()
	for day := 1; day <= days; day++ {
		d := model.Date{Year: month.Year, Month: month.Month, Day: day}
		cells = append(cells, Cell{
			Date:     d,
			ISO:      d.String(),
			Day:      day,
			Kind:     CellCurrentMonth,
			Today:    d == today,
			Disabled: !rules.Selectable(d, today),
			Selected: selected != nil && d == *selected,
		})
	}

	next := month.Add(1)
	for day := 1; len(cells) < GridCells; day++ {
		d := model.Date{Year: next.Year, Month: next.Month, Day: day}
		cells = append(cells, otherMonthCell(d, CellNextMonth))
	}

	return cells
}

func otherMonthCell(d model.Date, kind CellKind) Cell {
	return Cell{
		Date:     d,
		ISO:      d.String(),
		Day:      d.Day,
		Kind:     kind,
		Disabled: true,
	}
}
