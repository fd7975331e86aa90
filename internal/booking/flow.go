package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	appLog "barberbook/internal/log"
	"barberbook/internal/model"
)

// IntentKind names a user action on the booking widget.
type IntentKind string

const (
	IntentSelectBarber IntentKind = "select-barber"
	IntentPrevMonth    IntentKind = "prev-month"
	IntentNextMonth    IntentKind = "next-month"
	IntentSelectDate   IntentKind = "select-date"
	IntentSelectTime   IntentKind = "select-time"
	IntentAdvance      IntentKind = "advance"
	IntentRetreat      IntentKind = "retreat"
	IntentSubmit       IntentKind = "submit"
	IntentReset        IntentKind = "reset"
)

// Known reports whether k is one of the intents a Flow understands.
func (k IntentKind) Known() bool {
	switch k {
	case IntentSelectBarber, IntentPrevMonth, IntentNextMonth, IntentSelectDate,
		IntentSelectTime, IntentAdvance, IntentRetreat, IntentSubmit, IntentReset:
		return true
	}
	return false
}

// Intent is one user action. Only the fields relevant to Kind are read.
type Intent struct {
	Kind    IntentKind    `json:"intent"`
	Barber  string        `json:"barber,omitempty"`
	Date    string        `json:"date,omitempty"`
	Time    string        `json:"time,omitempty"`
	Step    int           `json:"step,omitempty"`
	Contact model.Contact `json:"contact"`
}

// Options configures a Flow. Zero values get defaults in NewFlow.
type Options struct {
	Catalog   *Catalog
	Barbers   []model.Barber
	Rules     CalendarRules
	Location  *time.Location
	Now       func() time.Time
	Submitter Submitter
}

// Flow owns one booking session and applies intents to it. It is safe for
// concurrent use; intents on a flow are serialized, except that the
// submission delay runs without holding the lock.
type Flow struct {
	mu   sync.Mutex
	opts Options
	s    Session
	// gen changes on every reset so a submission that was in flight when
	// the session got reset does not confirm the fresh session.
	gen uint64
}

// NewFlow creates a flow whose session starts on the current month.
func NewFlow(opts Options) *Flow {
	if opts.Catalog == nil {
		opts.Catalog = DefaultCatalog()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Submitter == nil {
		opts.Submitter = DelaySubmitter{Delay: DefaultSubmitDelay}
	}
	if opts.Rules.Closed == nil {
		opts.Rules.Closed = []time.Weekday{time.Sunday, time.Monday}
	}
	f := &Flow{opts: opts}
	f.s = NewSession(f.now())
	return f
}

func (f *Flow) now() time.Time {
	return f.opts.Now().In(f.opts.Location)
}

func (f *Flow) today() model.Date {
	return model.DateOf(f.now())
}

func (f *Flow) viewConfig() ViewConfig {
	return ViewConfig{
		Catalog: f.opts.Catalog,
		Barbers: f.opts.Barbers,
		Rules:   f.opts.Rules,
	}
}

// View renders the current session.
func (f *Flow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewLocked()
}

func (f *Flow) viewLocked() View {
	return Project(&f.s, f.viewConfig(), f.today())
}

// Session returns a copy of the session state.
func (f *Flow) Session() Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.s
}

// Dispatch applies in to the session and returns the re-rendered view. A
// rejected intent leaves the session untouched; the returned view is then
// the unchanged state alongside the error.
func (f *Flow) Dispatch(ctx context.Context, in Intent) (View, error) {
	if in.Kind == IntentSubmit {
		err := f.Submit(ctx, in.Contact)
		return f.View(), err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var err error
	if f.s.Submitting && in.Kind != IntentReset {
		err = ErrSubmitPending
	} else {
		err = f.applyLocked(in)
	}
	return f.viewLocked(), err
}

func (f *Flow) applyLocked(in Intent) error {
	switch in.Kind {
	case IntentSelectBarber:
		return f.selectBarber(in.Barber)
	case IntentPrevMonth:
		f.s.VisibleMonth = f.s.VisibleMonth.Add(-1)
		return nil
	case IntentNextMonth:
		f.s.VisibleMonth = f.s.VisibleMonth.Add(1)
		return nil
	case IntentSelectDate:
		d, err := model.ParseDate(in.Date)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDateUnavailable, err)
		}
		return f.selectDate(d)
	case IntentSelectTime:
		return f.selectTime(in.Time)
	case IntentAdvance, IntentRetreat:
		return f.goTo(Step(in.Step))
	case IntentReset:
		f.resetLocked()
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownIntent, in.Kind)
	}
}

func (f *Flow) selectBarber(id string) error {
	for _, b := range f.opts.Barbers {
		if b.ID == id {
			chosen := b
			f.s.Barber = &chosen
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownBarber, id)
}

func (f *Flow) selectDate(d model.Date) error {
	if !f.opts.Rules.Selectable(d, f.today()) {
		return fmt.Errorf("%w: %s", ErrDateUnavailable, d)
	}
	f.s.Date = &d
	f.s.Time = ""
	return nil
}

func (f *Flow) selectTime(label string) error {
	if f.s.Date == nil {
		return ErrNoDateSelected
	}
	if !f.opts.Catalog.Available(*f.s.Date, label) {
		return fmt.Errorf("%w: %q on %s", ErrSlotUnavailable, label, f.s.Date)
	}
	f.s.Time = label
	return nil
}

// goTo moves straight to target. Callers decide the order of steps; the
// flow only checks the target is an input step.
func (f *Flow) goTo(target Step) error {
	if target < StepBarber || target > LastInputStep {
		return fmt.Errorf("%w: %d", ErrInvalidStep, target)
	}
	f.s.Step = target
	return nil
}

func (f *Flow) resetLocked() {
	initial := f.s.InitialMonth
	f.s = Session{
		Step:         StepBarber,
		VisibleMonth: initial,
		InitialMonth: initial,
	}
	f.gen++
}

// Reset clears the session back to step 1 and the month it was created on.
func (f *Flow) Reset() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
	return f.viewLocked()
}

// Submit sends the booking through the Submitter and, once it returns,
// moves the session to the confirmed step. It is rejected unless the session
// is on the details step with a date and time set and no other submission
// in flight. If ctx ends first the
// session stays on the details step.
func (f *Flow) Submit(ctx context.Context, contact model.Contact) error {
	f.mu.Lock()
	if f.s.Submitting {
		f.mu.Unlock()
		return ErrSubmitPending
	}
	if !f.s.CanSubmit() {
		f.mu.Unlock()
		return ErrSubmitDisabled
	}
	slot, _, _ := f.opts.Catalog.Lookup(f.s.Time)
	contact.Phone = FormatPhone(contact.Phone)
	req := Request{
		Date:    *f.s.Date,
		Slot:    slot,
		Contact: contact,
	}
	if f.s.Barber != nil {
		req.Barber = *f.s.Barber
	}
	f.s.Contact = contact
	f.s.Submitting = true
	gen := f.gen
	f.mu.Unlock()

	err := f.opts.Submitter.Submit(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		// Reset while in flight; the fresh session owns nothing of this request.
		return nil
	}
	f.s.Submitting = false
	if err != nil {
		return fmt.Errorf("submit booking: %w", err)
	}

	booking := Booking{
		ID:          uuid.NewString(),
		Barber:      req.Barber,
		Date:        req.Date,
		Slot:        req.Slot,
		Contact:     req.Contact,
		ConfirmedAt: f.now(),
	}
	f.s.Step = StepConfirmed
	f.s.Confirmation = &Confirmation{
		Booking:  booking,
		With:     "with " + barberName(req.Barber),
		DateTime: ConfirmationText(req.Date, req.Slot.Label),
	}

	appLog.Info("booking confirmed",
		"booking_id", booking.ID,
		"barber", req.Barber.ID,
		"date", req.Date.String(),
		"slot", req.Slot.Label,
		"name", contact.Name,
		"phone", contact.Phone,
		"email", contact.Email,
		"notes", contact.Notes,
	)
	return nil
}

// Confirmed returns the confirmed booking, if the session has one.
func (f *Flow) Confirmed() (Booking, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.s.Confirmation == nil {
		return Booking{}, false
	}
	return f.s.Confirmation.Booking, true
}

func barberName(b model.Barber) string {
	if b.Name == "" {
		return placeholder
	}
	return b.Name
}
