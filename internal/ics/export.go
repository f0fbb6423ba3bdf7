package ics

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"kitplanner/internal/model"
)

const productID = "-//kitplanner//planner//FR"

// CatalogLookup resolves the names written next to catalog ids.
type CatalogLookup interface {
	Service(id string) (model.Service, error)
}

// Export serializes appointments as a VCALENDAR. Appointments without a UID
// use their store id, so exported files import back onto the same ids.
func Export(appointments []model.Appointment, catalog CatalogLookup, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, a := range appointments {
		uid := a.UID
		if uid == "" {
			uid = a.ID
		}
		ev := cal.AddEvent(uid)
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(a.Start)
		ev.SetEndAt(a.End)
		ev.SetSummary(a.Title)
		if a.Description != "" {
			ev.SetDescription(a.Description)
		}
		ev.AddProperty(ical.ComponentPropertyStatus, statusToICS(a.Status))

		if a.ServiceID != "" {
			ev.AddProperty(propService, a.ServiceID)
			if catalog != nil {
				if svc, err := catalog.Service(a.ServiceID); err == nil && svc.Category != "" {
					ev.AddProperty(ical.ComponentPropertyCategories, svc.Category)
				}
			}
		}
		if a.ClientID != "" {
			ev.AddProperty(propClient, a.ClientID)
		}
		if a.CreatedBy != "" {
			ev.AddProperty(propCreatedBy, a.CreatedBy)
		}
	}

	return cal.Serialize()
}
