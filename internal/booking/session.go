package booking

import (
	"time"

	"barberbook/internal/model"
)

// Step is a position in the booking flow.
type Step int

const (
	StepBarber    Step = 1
	StepSchedule  Step = 2
	StepDetails   Step = 3
	StepConfirmed Step = 4

	// LastInputStep is the highest step reachable through advance/retreat.
	// StepConfirmed is only entered by a completed submission.
	LastInputStep = StepDetails
)

func (s Step) String() string {
	switch s {
	case StepBarber:
		return "barber"
	case StepSchedule:
		return "schedule"
	case StepDetails:
		return "details"
	case StepConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// Session is the state of one visitor's booking widget.
//
// Date and Time are absent when nil/empty. Time is cleared every time Date
// changes. InitialMonth is fixed at creation and is where Reset returns the
// calendar to.
type Session struct {
	Step         Step
	Barber       *model.Barber
	Date         *model.Date
	Time         string
	VisibleMonth model.Month
	InitialMonth model.Month
	Submitting   bool
	Contact      model.Contact
	Confirmation *Confirmation
}

// NewSession starts a session on step 1 showing the month of now.
func NewSession(now time.Time) Session {
	m := model.MonthOf(now)
	return Session{
		Step:         StepBarber,
		VisibleMonth: m,
		InitialMonth: m,
	}
}

// CanSubmit reports whether the details step may be submitted: the session
// is on that step with a date and time chosen and nothing in flight.
func (s *Session) CanSubmit() bool {
	return s.Step == StepDetails && s.Date != nil && s.Time != "" && !s.Submitting
}

// Confirmation is the result shown on the terminal step.
type Confirmation struct {
	Booking  Booking `json:"booking"`
	With     string  `json:"with"`
	DateTime string  `json:"date_time"`
}

// Booking is a confirmed appointment. It only lives as long as its session.
type Booking struct {
	ID          string        `json:"id"`
	Barber      model.Barber  `json:"barber"`
	Date        model.Date    `json:"-"`
	Slot        Slot          `json:"slot"`
	Contact     model.Contact `json:"contact"`
	ConfirmedAt time.Time     `json:"confirmed_at"`
}
