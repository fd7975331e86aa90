package ics

import (
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// Invite is the subset of a VEVENT that booking invites carry.
type Invite struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// ParseInvite reads back the first VEVENT of an invite produced by
// BuildInvite (or any calendar client that kept the same fields).
func ParseInvite(body string) (Invite, error) {
	if strings.TrimSpace(body) == "" {
		return Invite{}, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(strings.NewReader(body))
	if err != nil {
		return Invite{}, err
	}

	events := cal.Events()
	if len(events) == 0 {
		return Invite{}, errors.New("ics: no VEVENT in calendar")
	}
	ve := events[0]

	var out Invite
	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uidProp.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.Location = p.Value
	}

	if out.Start, err = ve.GetStartAt(); err != nil {
		return out, err
	}
	if out.End, err = ve.GetEndAt(); err != nil {
		return out, err
	}
	return out, nil
}
