package web

import (
	"errors"

	"barberbook/internal/booking"
)

// noticeMessages is the fixed set of texts the page shows after a rejected
// form intent. Unknown codes render nothing.
var noticeMessages = map[string]string{
	"barber":  "Please choose one of the listed barbers.",
	"date":    "That date is not available. Please pick another day.",
	"no-date": "Pick a date before choosing a time.",
	"slot":    "That time is already taken. Please pick another.",
	"step":    "That step is not available.",
	"submit":  "Pick a date and time before confirming.",
	"pending": "Your booking is still being processed.",
	"error":   "Something went wrong. Please try again.",
}

func noticeCode(err error) string {
	switch {
	case errors.Is(err, booking.ErrUnknownBarber):
		return "barber"
	case errors.Is(err, booking.ErrDateUnavailable):
		return "date"
	case errors.Is(err, booking.ErrNoDateSelected):
		return "no-date"
	case errors.Is(err, booking.ErrSlotUnavailable):
		return "slot"
	case errors.Is(err, booking.ErrInvalidStep):
		return "step"
	case errors.Is(err, booking.ErrSubmitDisabled):
		return "submit"
	case errors.Is(err, booking.ErrSubmitPending):
		return "pending"
	default:
		return "error"
	}
}
