package booking

import (
	"context"
	"time"

	"barberbook/internal/model"
)

// DefaultSubmitDelay is how long the simulated submission takes.
const DefaultSubmitDelay = 1500 * time.Millisecond

// Request is what gets handed to a Submitter when the visitor confirms.
type Request struct {
	Barber  model.Barber
	Date    model.Date
	Slot    Slot
	Contact model.Contact
}

// Submitter performs the booking submission. The flow treats a nil error
// as a confirmed booking. Implementations must return promptly once ctx is
// done.
type Submitter interface {
	Submit(ctx context.Context, req Request) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, req Request) error

func (f SubmitterFunc) Submit(ctx context.Context, req Request) error {
	return f(ctx, req)
}

// DelaySubmitter stands in for a booking backend: it waits Delay and
// succeeds. It only fails when ctx is cancelled first.
type DelaySubmitter struct {
	Delay time.Duration
}

func (s DelaySubmitter) Submit(ctx context.Context, _ Request) error {
	if s.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
