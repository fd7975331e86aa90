package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barberbook/internal/model"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	require.Equal(t, 20, c.Len())

	want := []string{
		"10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
		"12:00 PM", "12:30 PM", "1:00 PM", "1:30 PM",
		"2:00 PM", "2:30 PM", "3:00 PM", "3:30 PM",
		"4:00 PM", "4:30 PM", "5:00 PM", "5:30 PM",
		"6:00 PM", "6:30 PM", "7:00 PM", "7:30 PM",
	}
	got := make([]string, 0, c.Len())
	for _, s := range c.Slots() {
		got = append(got, s.Label)
	}
	assert.Equal(t, want, got)

	slot, idx, ok := c.Lookup("1:30 PM")
	require.True(t, ok)
	assert.Equal(t, 7, idx)
	assert.Equal(t, 13, slot.Hour)
	assert.Equal(t, 30, slot.Minute)
	assert.Equal(t, 30*time.Minute, c.SlotLength())

	_, _, ok = c.Lookup("8:00 PM")
	assert.False(t, ok)
}

func TestNewCatalogRejectsBadInput(t *testing.T) {
	_, err := NewCatalog(10, 0, 30*time.Minute, 0)
	assert.Error(t, err)
	_, err = NewCatalog(10, 0, 90*time.Second, 4)
	assert.Error(t, err)
	// 30 hours of half-hour slots wraps midnight.
	_, err = NewCatalog(10, 0, 30*time.Minute, 60)
	assert.Error(t, err)
}

func TestBookedIndices(t *testing.T) {
	tests := []struct {
		name string
		date model.Date
		want []int
	}{
		// seed 17, count 5: the five evening slots.
		{name: "march 15", date: model.NewDate(2026, time.March, 15), want: []int{19, 18, 17, 16, 15}},
		{name: "march 21", date: model.NewDate(2026, time.March, 21), want: []int{1, 2, 3, 4, 5, 6}},
		// seed 20: every candidate lands on 0.
		{name: "january 20 collapses", date: model.NewDate(2026, time.January, 20), want: []int{0}},
		{name: "january 10 collapses", date: model.NewDate(2026, time.January, 10), want: []int{10, 0}},
		{name: "october 24", date: model.NewDate(2026, time.October, 24), want: []int{11, 2, 13, 4, 15, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BookedIndices(tt.date, 20))
		})
	}

	assert.Nil(t, BookedIndices(model.NewDate(2026, time.March, 15), 0))
}

func TestAvailabilityIsPure(t *testing.T) {
	c := DefaultCatalog()
	d := model.NewDate(2026, time.March, 15)

	first := c.Booked(d)
	assert.Equal(t, first, c.Booked(d))
	assert.Equal(t, []string{"7:30 PM", "7:00 PM", "6:30 PM", "6:00 PM", "5:30 PM"}, first)

	avail := c.Availability(d)
	free := 0
	for _, ok := range avail {
		if ok {
			free++
		}
	}
	assert.Equal(t, 15, free)
	assert.True(t, c.Available(d, "10:00 AM"))
	assert.False(t, c.Available(d, "7:30 PM"))
	assert.False(t, c.Available(d, "not a slot"))
}

func TestFormatPhone(t *testing.T) {
	progressive := []string{
		"(5", "(55", "(555", "(555) 1", "(555) 12", "(555) 123",
		"(555) 123-4", "(555) 123-45", "(555) 123-456", "(555) 123-4567",
	}
	digits := "5551234567"
	for i, want := range progressive {
		assert.Equal(t, want, FormatPhone(digits[:i+1]))
	}

	assert.Equal(t, "(555) 123-4567", FormatPhone("55512345678"))
	assert.Equal(t, "(555) 123-4567", FormatPhone("(555) 123-4567 ext 9"))
	assert.Equal(t, "(555) 123", FormatPhone("555-123"))
	assert.Equal(t, "", FormatPhone("call me"))
}
