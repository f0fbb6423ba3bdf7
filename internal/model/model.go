package model

import "time"

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusDone      Status = "done"
)

// Label returns the display name shown on planner cards.
func (s Status) Label() string {
	switch s {
	case StatusPlanned:
		return "Planifié"
	case StatusConfirmed:
		return "Confirmé"
	case StatusCancelled:
		return "Annulé"
	case StatusDone:
		return "Terminé"
	default:
		return string(s)
	}
}

// Service is a bookable entry of the catalog.
type Service struct {
	ID          string
	Name        string
	Category    string
	Description string
	// Price is the raw configured value; formatting happens client side.
	Price           string
	DurationMinutes int
}

// Client is a person an appointment can be booked for.
type Client struct {
	ID   string
	Name string
}

// Appointment is a single booked slot on the planner.
type Appointment struct {
	ID string
	// UID is the iCalendar UID when the appointment was imported or exported.
	UID string

	Title       string
	Description string
	Status      Status

	ServiceID string
	ClientID  string
	CreatedBy string

	// Start / End are in the planner's display timezone.
	Start time.Time
	End   time.Time
}
