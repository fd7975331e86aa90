package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barberbook/internal/model"
)

var defaultRules = CalendarRules{
	Closed:    []time.Weekday{time.Sunday, time.Monday},
	WeekStart: time.Sunday,
}

func TestGridAlwaysHas42Cells(t *testing.T) {
	today := model.NewDate(2026, time.March, 10)
	for year := 2024; year <= 2028; year++ {
		for m := time.January; m <= time.December; m++ {
			month := model.Month{Year: year, Month: m}
			for _, rules := range []CalendarRules{defaultRules, {Closed: defaultRules.Closed, WeekStart: time.Monday}} {
				cells := Grid(month, today, nil, rules)
				require.Len(t, cells, GridCells, "%s", month.Label())

				current := 0
				for _, c := range cells {
					if c.Kind == CellCurrentMonth {
						current++
					}
				}
				assert.Equal(t, month.Days(), current, "%s", month.Label())
			}
		}
	}
}

func TestGridLayout(t *testing.T) {
	today := model.NewDate(2026, time.March, 10)

	// August 2026 starts on a Saturday.
	cells := Grid(model.Month{Year: 2026, Month: time.August}, today, nil, defaultRules)
	for i := 0; i < 6; i++ {
		assert.Equal(t, CellPrevMonth, cells[i].Kind)
		assert.True(t, cells[i].Disabled)
	}
	assert.Equal(t, 26, cells[0].Day)
	assert.Equal(t, 31, cells[5].Day)
	assert.Equal(t, model.NewDate(2026, time.July, 31), cells[5].Date)
	assert.Equal(t, 1, cells[6].Day)
	assert.Equal(t, CellCurrentMonth, cells[6].Kind)
	assert.Equal(t, CellNextMonth, cells[37].Kind)
	assert.Equal(t, 5, cells[41].Day)

	// March 2026 starts on a Sunday: no leading cells with a Sunday start,
	// six with a Monday start.
	march := model.Month{Year: 2026, Month: time.March}
	assert.Equal(t, CellCurrentMonth, Grid(march, today, nil, defaultRules)[0].Kind)
	monday := CalendarRules{Closed: defaultRules.Closed, WeekStart: time.Monday}
	assert.Equal(t, 1, Grid(march, today, nil, monday)[6].Day)
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, monday.WeekdayLabels())
}

func TestGridDisablesPastAndClosedDays(t *testing.T) {
	today := model.NewDate(2026, time.March, 10) // Tuesday
	cells := Grid(model.Month{Year: 2026, Month: time.March}, today, nil, defaultRules)

	todays := 0
	for _, c := range cells {
		if c.Kind != CellCurrentMonth {
			assert.True(t, c.Disabled)
			assert.False(t, c.Today)
			continue
		}
		wd := c.Date.Weekday()
		wantDisabled := c.Date.Before(today) || wd == time.Sunday || wd == time.Monday
		assert.Equal(t, wantDisabled, c.Disabled, "%s", c.ISO)
		if c.Today {
			todays++
			assert.Equal(t, today, c.Date)
			assert.False(t, c.Disabled)
		}
	}
	assert.Equal(t, 1, todays)

	// No today flag when viewing another month.
	for _, c := range Grid(model.Month{Year: 2026, Month: time.April}, today, nil, defaultRules) {
		assert.False(t, c.Today)
	}
}

func TestGridSelected(t *testing.T) {
	today := model.NewDate(2026, time.March, 10)
	sel := model.NewDate(2026, time.March, 21)

	selected := 0
	for _, c := range Grid(model.Month{Year: 2026, Month: time.March}, today, &sel, defaultRules) {
		if c.Selected {
			selected++
			assert.Equal(t, sel, c.Date)
		}
	}
	assert.Equal(t, 1, selected)

	// A selection in March never marks April's leading/trailing cells.
	for _, c := range Grid(model.Month{Year: 2026, Month: time.April}, today, &sel, defaultRules) {
		assert.False(t, c.Selected)
	}
}
