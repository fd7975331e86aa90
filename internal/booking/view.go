package booking

import (
	"barberbook/internal/model"
)

const (
	// placeholder shown for absent summary values.
	placeholder = "-"

	longDateLayout  = "Monday, January 2"
	shortDateLayout = "Mon, Jan 2"

	noDateLabel = "Select a date"
)

// View is the full presentation state of a session. It is recomputed from
// scratch on every render.
type View struct {
	Step     Step            `json:"step"`
	Steps    []StepIndicator `json:"steps"`
	Barbers  []BarberOption  `json:"barbers"`
	Calendar CalendarView    `json:"calendar"`

	SelectedDateLabel string     `json:"selected_date_label"`
	Slots             []SlotView `json:"slots"`

	CanContinueBarber   bool `json:"can_continue_barber"`
	CanContinueSchedule bool `json:"can_continue_schedule"`
	CanSubmit           bool `json:"can_submit"`
	Submitting          bool `json:"submitting"`

	Summary      *Summary      `json:"summary,omitempty"`
	Contact      model.Contact `json:"contact"`
	Confirmation *Confirmation `json:"confirmation,omitempty"`
}

// StepIndicator drives the progress header.
type StepIndicator struct {
	Number    Step `json:"number"`
	Active    bool `json:"active"`
	Completed bool `json:"completed"`
}

type BarberOption struct {
	model.Barber
	Selected bool `json:"selected"`
}

type CalendarView struct {
	MonthLabel string   `json:"month_label"`
	Weekdays   []string `json:"weekdays"`
	Cells      []Cell   `json:"cells"`
}

type SlotView struct {
	Label     string `json:"label"`
	Available bool   `json:"available"`
	Selected  bool   `json:"selected"`
}

// Summary is the read-only recap on the details step.
type Summary struct {
	Barber string `json:"barber"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

// ViewConfig holds the shop-wide inputs of a projection.
type ViewConfig struct {
	Catalog *Catalog
	Barbers []model.Barber
	Rules   CalendarRules
}

// Project renders s into a View. It has no side effects; today is the
// current date in the shop's timezone.
func Project(s *Session, cfg ViewConfig, today model.Date) View {
	v := View{
		Step:                s.Step,
		Steps:               stepIndicators(s.Step),
		Barbers:             barberOptions(cfg.Barbers, s.Barber),
		Calendar:            calendarView(s, cfg.Rules, today),
		SelectedDateLabel:   noDateLabel,
		CanContinueBarber:   s.Barber != nil,
		CanContinueSchedule: s.Date != nil && s.Time != "",
		CanSubmit:           s.CanSubmit(),
		Submitting:          s.Submitting,
		Contact:             s.Contact,
		Confirmation:        s.Confirmation,
	}

	if s.Date != nil {
		v.SelectedDateLabel = ShortDate(*s.Date)
		v.Slots = slotViews(cfg.Catalog, *s.Date, s.Time)
	}

	if s.Step == StepDetails {
		v.Summary = summarize(s)
	}
	return v
}

func stepIndicators(current Step) []StepIndicator {
	out := make([]StepIndicator, 0, int(LastInputStep))
	for n := StepBarber; n <= LastInputStep; n++ {
		out = append(out, StepIndicator{
			Number:    n,
			Active:    n == current,
			Completed: n < current,
		})
	}
	return out
}

func barberOptions(barbers []model.Barber, chosen *model.Barber) []BarberOption {
	out := make([]BarberOption, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, BarberOption{
			Barber:   b,
			Selected: chosen != nil && chosen.ID == b.ID,
		})
	}
	return out
}

func calendarView(s *Session, rules CalendarRules, today model.Date) CalendarView {
	return CalendarView{
		MonthLabel: s.VisibleMonth.Label(),
		Weekdays:   rules.WeekdayLabels(),
		Cells:      Grid(s.VisibleMonth, today, s.Date, rules),
	}
}

func slotViews(c *Catalog, d model.Date, chosen string) []SlotView {
	if c == nil {
		return nil
	}
	avail := c.Availability(d)
	out := make([]SlotView, 0, c.Len())
	for i, slot := range c.slots {
		out = append(out, SlotView{
			Label:     slot.Label,
			Available: avail[i],
			Selected:  slot.Label == chosen,
		})
	}
	return out
}

func summarize(s *Session) *Summary {
	sum := &Summary{Barber: placeholder, Date: placeholder, Time: placeholder}
	if s.Barber != nil {
		sum.Barber = s.Barber.Name
	}
	if s.Date != nil {
		sum.Date = LongDate(*s.Date)
	}
	if s.Time != "" {
		sum.Time = s.Time
	}
	return sum
}

// LongDate formats d as "Saturday, March 21".
func LongDate(d model.Date) string {
	return d.Time(nil).Format(longDateLayout)
}

// ShortDate formats d as "Sat, Mar 21".
func ShortDate(d model.Date) string {
	return d.Time(nil).Format(shortDateLayout)
}

// ConfirmationText formats the date/time line of a confirmation, e.g.
// "Saturday, March 21 at 2:00 PM".
func ConfirmationText(d model.Date, slot string) string {
	return LongDate(d) + " at " + slot
}
