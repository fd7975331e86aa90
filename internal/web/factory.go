package web

import (
	"fmt"
	"time"

	"barberbook/internal/booking"
	"barberbook/internal/config"
	"barberbook/internal/session"
)

// FlowFactory builds the per-visitor flow constructor from configuration.
// The catalog is generated once and shared; it is immutable. now may be nil
// for the wall clock.
func FlowFactory(cfg *config.Config, now func() time.Time) (session.Factory, error) {
	hour, minute := cfg.OpeningClock()
	catalog, err := booking.NewCatalog(hour, minute, cfg.SlotLength(), cfg.SlotCount)
	if err != nil {
		return nil, fmt.Errorf("build slot catalog: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	opts := booking.Options{
		Catalog: catalog,
		Barbers: cfg.Barbers,
		Rules: booking.CalendarRules{
			Closed:    cfg.ClosedDays(),
			WeekStart: cfg.WeekStartDay(),
		},
		Location:  loc,
		Now:       now,
		Submitter: booking.DelaySubmitter{Delay: cfg.SubmitDelay()},
	}
	return func() *booking.Flow { return booking.NewFlow(opts) }, nil
}
