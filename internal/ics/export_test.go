package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barberbook/internal/booking"
	"barberbook/internal/model"
)

func TestBuildInvite(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	b := booking.Booking{
		ID:     "3f1c7a52-1d0e-4c1b-9a44-6f5d2f0b8e11",
		Barber: model.Barber{ID: "marcus", Name: "Marcus"},
		Date:   model.NewDate(2026, time.March, 21),
		Slot:   booking.Slot{Label: "2:00 PM", Hour: 14},
		Contact: model.Contact{
			Name:  "Sam",
			Phone: "(555) 123-4567",
			Notes: "Skin fade",
		},
		ConfirmedAt: time.Date(2026, time.March, 10, 15, 0, 0, 0, loc),
	}

	body, err := BuildInvite(b, InviteConfig{
		Location:   "Fade Co. Barbershop",
		Zone:       loc,
		SlotLength: 30 * time.Minute,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR"))
	assert.Contains(t, body, "METHOD:REQUEST")

	inv, err := ParseInvite(body)
	require.NoError(t, err)
	assert.Equal(t, b.ID, inv.UID)
	assert.Equal(t, "Haircut with Marcus", inv.Summary)
	assert.Equal(t, "Fade Co. Barbershop", inv.Location)
	assert.Contains(t, inv.Description, "Skin fade")

	wantStart := time.Date(2026, time.March, 21, 14, 0, 0, 0, loc)
	assert.True(t, wantStart.Equal(inv.Start), "start %s", inv.Start)
	assert.True(t, wantStart.Add(30*time.Minute).Equal(inv.End), "end %s", inv.End)
}

func TestBuildInviteWithoutBarber(t *testing.T) {
	body, err := BuildInvite(booking.Booking{
		ID:   "abc",
		Date: model.NewDate(2026, time.March, 21),
		Slot: booking.Slot{Label: "10:00 AM", Hour: 10},
	}, InviteConfig{ShopName: "Fade Co.", Zone: time.UTC})
	require.NoError(t, err)

	inv, err := ParseInvite(body)
	require.NoError(t, err)
	assert.Equal(t, "Haircut at Fade Co.", inv.Summary)
	assert.Equal(t, 30*time.Minute, inv.End.Sub(inv.Start))
}

func TestBuildInviteRequiresID(t *testing.T) {
	_, err := BuildInvite(booking.Booking{}, InviteConfig{})
	assert.Error(t, err)
}

func TestParseInviteRejectsEmpty(t *testing.T) {
	_, err := ParseInvite("  ")
	assert.Error(t, err)
	_, err = ParseInvite("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nEND:VCALENDAR\r\n")
	assert.Error(t, err)
}
