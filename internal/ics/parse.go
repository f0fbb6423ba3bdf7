package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "kitplanner/internal/log"
	"kitplanner/internal/model"
)

// Custom properties written by Export so a round trip keeps catalog links.
const (
	propService   ical.ComponentProperty = "X-KITPLANNER-SERVICE"
	propClient    ical.ComponentProperty = "X-KITPLANNER-CLIENT"
	propCreatedBy ical.ComponentProperty = "X-KITPLANNER-CREATED-BY"
)

// Event is a timed VEVENT reduced to what the planner can show.
type Event struct {
	UID         string
	Summary     string
	Description string
	Status      model.Status

	ServiceID string
	ClientID  string
	CreatedBy string

	Start time.Time
	End   time.Time

	// Recurring is set when the VEVENT carries an RRULE; only its first
	// occurrence is kept.
	Recurring bool
}

// Parse reads an ICS payload. All-day events and VEVENTs without UID or
// DTSTART are skipped and logged; the rest of the calendar still loads.
func Parse(body []byte) ([]Event, error) {
	if len(body) == 0 {
		return nil, errors.New("ics: empty body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ics: parse calendar: %w", err)
	}

	events := make([]Event, 0)
	for _, ve := range cal.Events() {
		ev, perr := parseVEvent(ve)
		if perr != nil {
			appLog.Warn("ics vevent skipped", "reason", perr.Error())
			continue
		}
		if ev.Recurring {
			appLog.Debug("ics recurring event imported once", "uid", ev.UID)
		}
		events = append(events, ev)
	}

	appLog.Info("ics parse completed", "event_count", len(events))
	return events, nil
}

func parseVEvent(ve *ical.VEvent) (Event, error) {
	var out Event

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uid.Value

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return out, fmt.Errorf("%s: missing DTSTART", out.UID)
	}
	if isDateOnly(dtStart) {
		return out, fmt.Errorf("%s: all-day event", out.UID)
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return out, fmt.Errorf("%s: DTSTART: %w", out.UID, err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		end = start
	}
	out.Start = start
	out.End = end

	out.Summary = value(ve, ical.ComponentPropertySummary)
	out.Description = value(ve, ical.ComponentPropertyDescription)
	out.Status = statusFromICS(value(ve, ical.ComponentPropertyStatus))
	out.ServiceID = value(ve, propService)
	out.ClientID = value(ve, propClient)
	out.CreatedBy = value(ve, propCreatedBy)
	out.Recurring = ve.GetProperty(ical.ComponentPropertyRrule) != nil

	return out, nil
}

func value(ve *ical.VEvent, p ical.ComponentProperty) string {
	if prop := ve.GetProperty(p); prop != nil {
		return prop.Value
	}
	return ""
}

// isDateOnly reports VALUE=DATE or a YYYYMMDD value.
func isDateOnly(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func statusFromICS(s string) model.Status {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CONFIRMED":
		return model.StatusConfirmed
	case "CANCELLED":
		return model.StatusCancelled
	case "COMPLETED":
		return model.StatusDone
	default:
		return model.StatusPlanned
	}
}

func statusToICS(s model.Status) string {
	switch s {
	case model.StatusConfirmed:
		return "CONFIRMED"
	case model.StatusCancelled:
		return "CANCELLED"
	case model.StatusDone:
		return "COMPLETED"
	default:
		return "TENTATIVE"
	}
}
