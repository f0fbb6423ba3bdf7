package ics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitplanner/internal/model"
	"kitplanner/internal/store"
)

const sampleICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:timed-1\r\n" +
	"DTSTAMP:20261001T080000Z\r\n" +
	"DTSTART:20261020T080000Z\r\n" +
	"DTEND:20261020T090000Z\r\n" +
	"SUMMARY:Retouche\r\n" +
	"STATUS:CONFIRMED\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:allday-1\r\n" +
	"DTSTAMP:20261001T080000Z\r\n" +
	"DTSTART;VALUE=DATE:20261021\r\n" +
	"SUMMARY:Fermeture\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"DTSTAMP:20261001T080000Z\r\n" +
	"DTSTART:20261022T080000Z\r\n" +
	"SUMMARY:Sans UID\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:weekly-1\r\n" +
	"DTSTAMP:20261001T080000Z\r\n" +
	"DTSTART:20261023T130000Z\r\n" +
	"DTEND:20261023T133000Z\r\n" +
	"RRULE:FREQ=WEEKLY;COUNT=4\r\n" +
	"SUMMARY:Essayage\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestParseKeepsTimedEvents(t *testing.T) {
	events, err := Parse([]byte(sampleICS))
	require.NoError(t, err)
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "timed-1", first.UID)
	assert.Equal(t, "Retouche", first.Summary)
	assert.Equal(t, model.StatusConfirmed, first.Status)
	assert.True(t, first.Start.Equal(time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Hour, first.End.Sub(first.Start))
	assert.False(t, first.Recurring)

	assert.Equal(t, "weekly-1", events[1].UID)
	assert.True(t, events[1].Recurring)
	assert.Equal(t, model.StatusPlanned, events[1].Status)
}

func TestParseRejectsEmptyAndGarbage(t *testing.T) {
	_, err := Parse(nil)
	assert.Error(t, err)
}

func TestExportRoundTrip(t *testing.T) {
	st := store.New(
		[]model.Service{{ID: "1", Name: "Retouche", Category: "Couture"}},
		[]model.Client{{ID: "42", Name: "Jeanne"}},
	)
	loc := time.FixedZone("CEST", 2*3600)
	in := []model.Appointment{
		{
			ID: "a1", Title: "Retouche", Description: "Ourlet", Status: model.StatusDone,
			ServiceID: "1", ClientID: "42", CreatedBy: "Marie",
			Start: time.Date(2026, 10, 20, 10, 0, 0, 0, loc), End: time.Date(2026, 10, 20, 11, 0, 0, 0, loc),
		},
		{
			ID: "a2", UID: "imported@example.com", Title: "Conseil", Status: model.StatusCancelled,
			Start: time.Date(2026, 10, 21, 14, 0, 0, 0, loc), End: time.Date(2026, 10, 21, 14, 30, 0, 0, loc),
		},
	}

	body := Export(in, st, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, body, "PRODID:"+productID)
	assert.Contains(t, body, "CATEGORIES:Couture")

	events, err := Parse([]byte(body))
	require.NoError(t, err)
	require.Len(t, events, 2)

	got := ToAppointment(events[0], st, loc)
	assert.Equal(t, "a1", got.ID)
	assert.Equal(t, "Retouche", got.Title)
	assert.Equal(t, "Ourlet", got.Description)
	assert.Equal(t, model.StatusDone, got.Status)
	assert.Equal(t, "1", got.ServiceID)
	assert.Equal(t, "42", got.ClientID)
	assert.Equal(t, "Marie", got.CreatedBy)
	assert.True(t, got.Start.Equal(in[0].Start))
	assert.True(t, got.End.Equal(in[0].End))
	assert.Equal(t, loc, got.Start.Location())

	second := ToAppointment(events[1], st, loc)
	assert.Equal(t, "imported@example.com", second.ID)
	assert.Equal(t, model.StatusCancelled, second.Status)
	assert.Empty(t, second.ServiceID)
}

func TestToAppointmentMatchesServiceByName(t *testing.T) {
	st := store.New([]model.Service{{ID: "1", Name: "Retouche"}}, nil)
	start := time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC)

	a := ToAppointment(Event{UID: "x", Summary: "Retouche", Start: start}, st, time.UTC)

	assert.Equal(t, "1", a.ServiceID)
	assert.Equal(t, time.Hour, a.End.Sub(a.Start))
}

func TestSeedFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.ics")
	require.NoError(t, os.WriteFile(path, []byte(sampleICS), 0o600))
	st := store.New(nil, nil)

	n, err := Seed(context.Background(), NewFetcher(t.TempDir()), st, path, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, st.Len())

	_, err = Seed(context.Background(), NewFetcher(t.TempDir()), st, filepath.Join(t.TempDir(), "missing.ics"), time.UTC)
	assert.Error(t, err)
}

func TestFetchRemoteRevalidatesAndFallsBack(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte(sampleICS))
	}))

	f := NewFetcher(t.TempDir())
	source := srv.URL + "/private.ics?token=secret"
	ctx := context.Background()

	body, err := f.Fetch(ctx, source)
	require.NoError(t, err)
	assert.Equal(t, sampleICS, string(body))

	body, err = f.Fetch(ctx, source)
	require.NoError(t, err)
	assert.Equal(t, sampleICS, string(body))
	assert.Equal(t, int32(2), hits.Load())

	srv.Close()
	body, err = f.Fetch(ctx, source)
	require.NoError(t, err)
	assert.Equal(t, sampleICS, string(body))
}

func TestFetchRemoteErrorWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewFetcher(t.TempDir()).Fetch(context.Background(), srv.URL+"/cal.ics")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestRedactURL(t *testing.T) {
	got := redactURL("https://calendar.example.com/private/abc.ics?token=secret")
	assert.Equal(t, "https://calendar.example.com/...(redacted)", got)
	assert.False(t, strings.Contains(got, "secret"))
	assert.Equal(t, "ics://...(redacted)", redactURL("not a url"))
}
