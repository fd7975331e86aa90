package ics

import (
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"barberbook/internal/booking"
)

const productID = "-//barberbook//booking invite//EN"

// InviteConfig carries the shop details that are not part of a booking.
type InviteConfig struct {
	// ShopName is used in the summary when the booking has no barber.
	ShopName string
	// Location is copied verbatim into LOCATION.
	Location string
	// Zone is where the slot's wall-clock time is interpreted.
	Zone *time.Location
	// SlotLength sets DTEND relative to DTSTART.
	SlotLength time.Duration
}

// BuildInvite renders a confirmed booking as a single-event VCALENDAR.
//
//   - UID is the booking ID, so re-downloading replaces the same entry.
//   - DTSTART is the slot's clock time on the booked date in cfg.Zone.
//   - DESCRIPTION carries the customer's notes and contact details.
func BuildInvite(b booking.Booking, cfg InviteConfig) (string, error) {
	if b.ID == "" {
		return "", errors.New("ics: booking has no ID")
	}
	if cfg.Zone == nil {
		cfg.Zone = time.Local
	}
	if cfg.SlotLength <= 0 {
		cfg.SlotLength = 30 * time.Minute
	}

	start := b.Slot.At(b.Date.Year, b.Date.Month, b.Date.Day, cfg.Zone)
	end := start.Add(cfg.SlotLength)

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodRequest)
	cal.SetProductId(productID)

	ev := cal.AddEvent(b.ID)
	stamp := b.ConfirmedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	ev.SetDtStampTime(stamp)
	ev.SetCreatedTime(stamp)
	ev.SetStartAt(start)
	ev.SetEndAt(end)
	ev.SetSummary(summaryFor(b, cfg.ShopName))
	if cfg.Location != "" {
		ev.SetLocation(cfg.Location)
	}
	if desc := describe(b); desc != "" {
		ev.SetDescription(desc)
	}

	return cal.Serialize(), nil
}

func summaryFor(b booking.Booking, shop string) string {
	if b.Barber.Name != "" {
		return "Haircut with " + b.Barber.Name
	}
	if shop != "" {
		return "Haircut at " + shop
	}
	return "Haircut"
}

func describe(b booking.Booking) string {
	lines := make([]string, 0, 4)
	if b.Contact.Name != "" {
		lines = append(lines, "Name: "+b.Contact.Name)
	}
	if b.Contact.Phone != "" {
		lines = append(lines, "Phone: "+b.Contact.Phone)
	}
	if b.Contact.Email != "" {
		lines = append(lines, "Email: "+b.Contact.Email)
	}
	if b.Contact.Notes != "" {
		lines = append(lines, "Notes: "+b.Contact.Notes)
	}
	return strings.Join(lines, "\n")
}
