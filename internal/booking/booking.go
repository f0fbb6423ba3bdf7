package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	appLog "kitplanner/internal/log"
	"kitplanner/internal/model"
	"kitplanner/internal/store"
	"kitplanner/internal/timegrid"
)

var (
	// ErrInvalidStart is returned when the submitted start instant cannot be parsed.
	ErrInvalidStart = errors.New("booking: invalid start")
	// ErrInvalidSelection is returned when the service or client id is unknown.
	ErrInvalidSelection = errors.New("booking: invalid service or client")
)

const defaultDurationMinutes = 60

// accepted instant layouts, most specific first.
var instantLayouts = []string{
	timegrid.InstantLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Request carries the raw values of the new-event form.
type Request struct {
	Start     string
	End       string
	ServiceID string
	ClientID  string
}

// Service creates and deletes appointments in the store.
type Service struct {
	store *store.Store
	loc   *time.Location
	owner string
}

// New returns a booking service. A nil loc means time.Local.
func New(st *store.Store, loc *time.Location, owner string) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{store: st, loc: loc, owner: owner}
}

// Create validates req and stores the resulting appointment.
//
//   - an unparseable start yields ErrInvalidStart
//   - a missing or unparseable end falls back to the start
//   - unknown service or client yields ErrInvalidSelection
//   - an end not after the start becomes start + service duration
func (s *Service) Create(req Request) (model.Appointment, error) {
	start, ok := ParseInstant(req.Start, s.loc)
	if !ok {
		return model.Appointment{}, ErrInvalidStart
	}
	end, ok := ParseInstant(req.End, s.loc)
	if !ok {
		end = start
	}

	svc, serr := s.store.Service(strings.TrimSpace(req.ServiceID))
	client, cerr := s.store.Client(strings.TrimSpace(req.ClientID))
	if serr != nil || cerr != nil {
		return model.Appointment{}, fmt.Errorf("%w: service=%q client=%q", ErrInvalidSelection, req.ServiceID, req.ClientID)
	}

	if !end.After(start) {
		d := svc.DurationMinutes
		if d <= 0 {
			d = defaultDurationMinutes
		}
		end = start.Add(time.Duration(d) * time.Minute)
	}

	a := s.store.Add(model.Appointment{
		Title:       svc.Name,
		Description: svc.Description,
		Status:      model.StatusPlanned,
		ServiceID:   svc.ID,
		ClientID:    client.ID,
		CreatedBy:   s.owner,
		Start:       start,
		End:         end,
	})

	appLog.Info("appointment created", "id", a.ID, "service", svc.Name, "client", client.Name,
		"start", timegrid.FormatInstant(a.Start))
	return a, nil
}

// Delete removes the appointment with the given id.
func (s *Service) Delete(id string) error {
	if err := s.store.Delete(id); err != nil {
		return fmt.Errorf("booking: delete %q: %w", id, err)
	}
	appLog.Info("appointment deleted", "id", id)
	return nil
}

// ParseInstant reads a submitted instant. Any explicit offset is dropped and
// the wall clock is interpreted in loc, so a form filled in one zone books
// the same local time in the planner's zone.
func ParseInstant(v string, loc *time.Location) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range instantLayouts {
		t, err := time.Parse(layout, v)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), true
	}
	return time.Time{}, false
}
