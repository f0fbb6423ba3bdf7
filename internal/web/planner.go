package web

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"kitplanner/internal/booking"
	"kitplanner/internal/ics"
	appLog "kitplanner/internal/log"
	"kitplanner/internal/model"
	"kitplanner/internal/store"
	"kitplanner/internal/weekview"
)

// Flash messages carried through the post/redirect/get cycle.
const (
	msgMissingFields = "Veuillez sélectionner un horaire, une prestation et un client."
	msgCreateFailed  = "Impossible de créer le rendez-vous. Vérifiez les informations fournies."
	msgInvalidStart  = "Date de début invalide."
	msgCreated       = "Rendez-vous planifié."
	msgDeleteFailed  = "Rendez-vous introuvable ou non autorisé."
	msgDeleted       = "Rendez-vous supprimé."
)

const defaultSection = "planning"

var sections = []section{
	{Key: "overview", Label: "Vue d'ensemble"},
	{Key: "services", Label: "Prestations"},
	{Key: "clients", Label: "Clients"},
	{Key: "planning", Label: "Planning"},
}

type section struct {
	Key    string
	Label  string
	Active bool
}

// weekCacheEntry holds a built week and its timestamp.
type weekCacheEntry struct {
	week      weekview.Week
	day       string
	updatedAt time.Time
}

type flash struct {
	Level   string
	Message string
}

// eventView adds the precomputed inline style to a weekview block.
type eventView struct {
	weekview.Block
	Style template.CSS
}

type dayView struct {
	weekview.Day
	Events []eventView
}

type dashboardData struct {
	Section     string
	Sections    []section
	Flash       *flash
	Labels      plannerLabels
	Week        weekview.Week
	Days        []dayView
	Hours       []string
	Services    []model.Service
	Clients     []model.Client
	PrevOffset  int
	NextOffset  int
	CreateURL   string
	DeleteURL   string
	WasmEnabled bool
}

// plannerLabels are rendered as data attributes for the browser bundle.
type plannerLabels struct {
	Week     string
	Day      string
	Locale   string
	Currency string
}

// InvalidateWeeks drops every cached week. Called after mutations and by
// the midnight job so "today" moves forward.
func (s *Server) InvalidateWeeks() {
	s.weeksMu.Lock()
	s.weeks = make(map[int]*weekCacheEntry)
	s.weeksMu.Unlock()
}

// week returns the built week for offset, serving from cache when fresh.
func (s *Server) week(offset int) (weekview.Week, error) {
	now := s.now().In(s.loc)
	day := now.Format("2006-01-02")

	s.weeksMu.RLock()
	wc := s.weeks[offset]
	s.weeksMu.RUnlock()
	if wc != nil && wc.day == day && now.Sub(wc.updatedAt) < weekCacheTTL {
		s.metrics.ObserveWeekCache(true)
		return wc.week, nil
	}
	s.metrics.ObserveWeekCache(false)

	w, err := weekview.Build(s.store, now, offset)
	if err != nil {
		return weekview.Week{}, err
	}

	s.weeksMu.Lock()
	s.weeks[offset] = &weekCacheEntry{week: w, day: day, updatedAt: now}
	s.weeksMu.Unlock()
	return w, nil
}

// handleDashboard renders the dashboard page.
//
// GET /?section=planning&week_offset=0&flash=...&level=error
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	current := q.Get("section")
	if !knownSection(current) {
		current = defaultSection
	}
	offset := parseIntDefault(q.Get("week_offset"), 0)

	week, err := s.week(offset)
	if err != nil {
		appLog.Error("dashboard: build week failed", err, "week_offset", offset)
		http.Error(w, "failed to build planner", http.StatusInternalServerError)
		return
	}

	data := dashboardData{
		Section:  current,
		Sections: make([]section, 0, len(sections)),
		Labels: plannerLabels{
			Week:     s.cfg.Labels.Week,
			Day:      s.cfg.Labels.Day,
			Locale:   s.cfg.Locale,
			Currency: s.cfg.Currency,
		},
		Week:        week,
		Days:        dayViews(week),
		Hours:       weekview.Hours(),
		Services:    s.store.Services(),
		Clients:     s.store.Clients(),
		PrevOffset:  offset - 1,
		NextOffset:  offset + 1,
		CreateURL:   "/planner/events?week_offset=" + strconv.Itoa(offset),
		DeleteURL:   "/planner/events/{id}/delete?week_offset=" + strconv.Itoa(offset),
		WasmEnabled: s.cfg.AssetsDir != "",
	}
	for _, sec := range sections {
		sec.Active = sec.Key == current
		data.Sections = append(data.Sections, sec)
	}
	if msg := q.Get("flash"); msg != "" {
		level := q.Get("level")
		if level != "error" {
			level = "success"
		}
		data.Flash = &flash{Level: level, Message: msg}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "dashboard.html.tmpl", data); err != nil {
		appLog.Error("dashboard: render failed", err)
	}
}

// handleCreateEvent books an appointment from the new-event form.
//
// POST /planner/events?week_offset=N  (start_at, end_at, service_id, client_id)
func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	offset := parseIntDefault(r.URL.Query().Get("week_offset"), 0)
	if err := r.ParseForm(); err != nil {
		s.redirectPlanner(w, r, offset, "error", msgCreateFailed)
		return
	}

	req := booking.Request{
		Start:     r.PostForm.Get("start_at"),
		End:       r.PostForm.Get("end_at"),
		ServiceID: r.PostForm.Get("service_id"),
		ClientID:  r.PostForm.Get("client_id"),
	}
	if req.Start == "" || req.ServiceID == "" || req.ClientID == "" {
		s.redirectPlanner(w, r, offset, "error", msgMissingFields)
		return
	}

	_, err := s.bookings.Create(req)
	s.metrics.ObserveBooking("create", err)
	if err != nil {
		appLog.Error("planner: create failed", err, "service_id", req.ServiceID, "client_id", req.ClientID)
		msg := msgCreateFailed
		if errors.Is(err, booking.ErrInvalidStart) {
			msg = msgInvalidStart
		}
		s.redirectPlanner(w, r, offset, "error", msg)
		return
	}

	s.InvalidateWeeks()
	s.metrics.SetAppointments(s.store.Len())
	s.redirectPlanner(w, r, offset, "success", msgCreated)
}

// handleDeleteEvent removes an appointment.
//
// POST /planner/events/{id}/delete?week_offset=N
func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	offset := parseIntDefault(r.URL.Query().Get("week_offset"), 0)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if unescaped, err := url.PathUnescape(id); err == nil {
		id = unescaped
	}

	err := s.bookings.Delete(id)
	s.metrics.ObserveBooking("delete", err)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			appLog.Error("planner: delete failed", err, "id", id)
		}
		s.redirectPlanner(w, r, offset, "error", msgDeleteFailed)
		return
	}

	s.InvalidateWeeks()
	s.metrics.SetAppointments(s.store.Len())
	s.redirectPlanner(w, r, offset, "success", msgDeleted)
}

// handleEvents returns the planner columns of a week as JSON.
//
// GET /api/events?week_offset=0
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	offset := parseIntDefault(r.URL.Query().Get("week_offset"), 0)
	week, err := s.week(offset)
	if err != nil {
		appLog.Error("api events: build week failed", err, "week_offset", offset)
		writeError(w, http.StatusInternalServerError, "failed to build week")
		return
	}
	writeJSON(w, http.StatusOK, week)
}

// handleCalendarICS exports every appointment as an iCalendar feed.
func (s *Server) handleCalendarICS(w http.ResponseWriter, _ *http.Request) {
	body := ics.Export(s.store.All(), s.store, s.now())
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="kitplanner.ics"`)
	_, _ = w.Write([]byte(body))
}

func (s *Server) redirectPlanner(w http.ResponseWriter, r *http.Request, offset int, level, msg string) {
	q := url.Values{}
	q.Set("section", defaultSection)
	q.Set("week_offset", strconv.Itoa(offset))
	q.Set("level", level)
	q.Set("flash", msg)
	http.Redirect(w, r, "/?"+q.Encode(), http.StatusSeeOther)
}

func dayViews(week weekview.Week) []dayView {
	out := make([]dayView, 0, len(week.Days))
	for _, d := range week.Days {
		dv := dayView{Day: d, Events: make([]eventView, 0, len(d.Events))}
		for _, b := range d.Events {
			dv.Events = append(dv.Events, eventView{
				Block: b,
				Style: template.CSS(fmt.Sprintf("top: %s%%; height: %s%%; --event-color: %s;",
					strconv.FormatFloat(b.TopPct, 'f', 4, 64),
					strconv.FormatFloat(b.HeightPct, 'f', 4, 64),
					b.Color)),
			})
		}
		out = append(out, dv)
	}
	return out
}

func knownSection(name string) bool {
	for _, sec := range sections {
		if sec.Key == name {
			return true
		}
	}
	return false
}
