package booking

import "errors"

// All of these are soft failures: the intent is dropped and the session is
// left exactly as it was.
var (
	ErrUnknownIntent   = errors.New("booking: unknown intent")
	ErrInvalidStep     = errors.New("booking: step out of range")
	ErrUnknownBarber   = errors.New("booking: unknown barber")
	ErrDateUnavailable = errors.New("booking: date is not selectable")
	ErrNoDateSelected  = errors.New("booking: no date selected")
	ErrSlotUnavailable = errors.New("booking: time slot is not available")
	ErrSubmitDisabled  = errors.New("booking: date and time required on the details step before submit")
	ErrSubmitPending   = errors.New("booking: submission already in progress")
)
