package ics

import (
	"context"
	"time"

	appLog "kitplanner/internal/log"
	"kitplanner/internal/model"
	"kitplanner/internal/store"
)

// Seed loads source into st and returns the number of appointments added.
func Seed(ctx context.Context, f *Fetcher, st *store.Store, source string, loc *time.Location) (int, error) {
	body, err := f.Fetch(ctx, source)
	if err != nil {
		return 0, err
	}
	events, err := Parse(body)
	if err != nil {
		return 0, err
	}

	for _, ev := range events {
		st.Add(ToAppointment(ev, st, loc))
	}
	appLog.Info("planner seeded from ics", "source", displaySource(source), "count", len(events))
	return len(events), nil
}

// ToAppointment maps an imported event onto the catalog. The service is
// taken from the kitplanner property when it still exists, otherwise from
// a catalog entry named like the summary.
func ToAppointment(ev Event, st *store.Store, loc *time.Location) model.Appointment {
	if loc == nil {
		loc = time.Local
	}
	end := ev.End
	if !end.After(ev.Start) {
		end = ev.Start.Add(time.Hour)
	}

	a := model.Appointment{
		ID:          ev.UID,
		UID:         ev.UID,
		Title:       ev.Summary,
		Description: ev.Description,
		Status:      ev.Status,
		CreatedBy:   ev.CreatedBy,
		Start:       ev.Start.In(loc),
		End:         end.In(loc),
	}

	if svc, err := st.Service(ev.ServiceID); err == nil {
		a.ServiceID = svc.ID
	} else if svc, err := st.ServiceByName(ev.Summary); err == nil {
		a.ServiceID = svc.ID
	}
	if c, err := st.Client(ev.ClientID); err == nil {
		a.ClientID = c.ID
	}
	return a
}

func displaySource(source string) string {
	if isRemote(source) {
		return redactURL(source)
	}
	return source
}
