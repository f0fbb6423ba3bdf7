package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"kitplanner/internal/model"
)

// ErrNotFound is returned when an appointment, service or client id is unknown.
var ErrNotFound = errors.New("store: not found")

// Store keeps appointments in memory together with the configured catalog.
// It is safe for concurrent use.
type Store struct {
	mu           sync.RWMutex
	appointments map[string]model.Appointment
	services     []model.Service
	clients      []model.Client
}

func New(services []model.Service, clients []model.Client) *Store {
	return &Store{
		appointments: make(map[string]model.Appointment),
		services:     append([]model.Service(nil), services...),
		clients:      append([]model.Client(nil), clients...),
	}
}

// Add stores a copy of a, assigning a fresh id when a.ID is empty.
func (s *Store) Add(a model.Appointment) model.Appointment {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.mu.Lock()
	s.appointments[a.ID] = a
	s.mu.Unlock()
	return a
}

func (s *Store) Get(id string) (model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.appointments[id]
	if !ok {
		return model.Appointment{}, ErrNotFound
	}
	return a, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments[id]; !ok {
		return ErrNotFound
	}
	delete(s.appointments, id)
	return nil
}

// Range returns appointments starting in [from, to), sorted by start.
func (s *Store) Range(from, to time.Time) []model.Appointment {
	s.mu.RLock()
	out := make([]model.Appointment, 0)
	for _, a := range s.appointments {
		if !a.Start.Before(from) && a.Start.Before(to) {
			out = append(out, a)
		}
	}
	s.mu.RUnlock()

	sortByStart(out)
	return out
}

// All returns every appointment sorted by start.
func (s *Store) All() []model.Appointment {
	s.mu.RLock()
	out := make([]model.Appointment, 0, len(s.appointments))
	for _, a := range s.appointments {
		out = append(out, a)
	}
	s.mu.RUnlock()

	sortByStart(out)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.appointments)
}

func (s *Store) Services() []model.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Service(nil), s.services...)
}

func (s *Store) Clients() []model.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Client(nil), s.clients...)
}

func (s *Store) Service(id string) (model.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, svc := range s.services {
		if svc.ID == id {
			return svc, nil
		}
	}
	return model.Service{}, ErrNotFound
}

// ServiceByName resolves the catalog entry an imported event title refers to.
func (s *Store) ServiceByName(name string) (model.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, svc := range s.services {
		if svc.Name == name {
			return svc, nil
		}
	}
	return model.Service{}, ErrNotFound
}

func (s *Store) Client(id string) (model.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Client{}, ErrNotFound
}

func sortByStart(list []model.Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Start.Equal(list[j].Start) {
			return list[i].ID < list[j].ID
		}
		return list[i].Start.Before(list[j].Start)
	})
}
