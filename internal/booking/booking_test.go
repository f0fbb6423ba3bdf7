package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitplanner/internal/model"
	"kitplanner/internal/store"
)

var paris = time.FixedZone("CEST", 2*3600)

func newService() (*Service, *store.Store) {
	st := store.New(
		[]model.Service{
			{ID: "1", Name: "Retouche", Description: "Ourlet simple", DurationMinutes: 45},
			{ID: "2", Name: "Conseil"},
		},
		[]model.Client{{ID: "42", Name: "Jeanne"}},
	)
	return New(st, paris, "Marie"), st
}

func TestCreate(t *testing.T) {
	svc, st := newService()

	a, err := svc.Create(Request{
		Start:     "2026-10-20T10:00:00+02:00",
		End:       "2026-10-20T11:15:00+02:00",
		ServiceID: "1",
		ClientID:  "42",
	})
	require.NoError(t, err)

	assert.Equal(t, "Retouche", a.Title)
	assert.Equal(t, "Ourlet simple", a.Description)
	assert.Equal(t, model.StatusPlanned, a.Status)
	assert.Equal(t, "Marie", a.CreatedBy)
	assert.Equal(t, "42", a.ClientID)
	assert.True(t, a.Start.Equal(time.Date(2026, 10, 20, 10, 0, 0, 0, paris)))
	assert.Equal(t, 75*time.Minute, a.End.Sub(a.Start))
	assert.Equal(t, 1, st.Len())
}

func TestCreateEndDefaults(t *testing.T) {
	tests := []struct {
		name    string
		service string
		end     string
		want    time.Duration
	}{
		{"missing end uses service duration", "1", "", 45 * time.Minute},
		{"end before start uses service duration", "1", "2026-10-20T09:00:00+02:00", 45 * time.Minute},
		{"equal end uses service duration", "1", "2026-10-20T10:00:00+02:00", 45 * time.Minute},
		{"no duration defaults to an hour", "2", "garbage", time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService()
			a, err := svc.Create(Request{
				Start:     "2026-10-20T10:00:00+02:00",
				End:       tt.end,
				ServiceID: tt.service,
				ClientID:  "42",
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.End.Sub(a.Start))
		})
	}
}

func TestCreateRejects(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"empty start", Request{ServiceID: "1", ClientID: "42"}, ErrInvalidStart},
		{"malformed start", Request{Start: "20/10 10h", ServiceID: "1", ClientID: "42"}, ErrInvalidStart},
		{"unknown service", Request{Start: "2026-10-20T10:00", ServiceID: "9", ClientID: "42"}, ErrInvalidSelection},
		{"unknown client", Request{Start: "2026-10-20T10:00", ServiceID: "1", ClientID: "7"}, ErrInvalidSelection},
		{"missing selection", Request{Start: "2026-10-20T10:00"}, ErrInvalidSelection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st := newService()
			_, err := svc.Create(tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, st.Len())
		})
	}
}

func TestParseInstantKeepsWallClock(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2026-10-20T14:00:00+02:00", time.Date(2026, 10, 20, 14, 0, 0, 0, paris)},
		{"2026-10-20T14:00:00-05:00", time.Date(2026, 10, 20, 14, 0, 0, 0, paris)},
		{"2026-10-20T14:00:00Z", time.Date(2026, 10, 20, 14, 0, 0, 0, paris)},
		{"2026-10-20T14:00:00", time.Date(2026, 10, 20, 14, 0, 0, 0, paris)},
		{" 2026-10-20T14:30 ", time.Date(2026, 10, 20, 14, 30, 0, 0, paris)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseInstant(tt.in, paris)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	_, ok := ParseInstant("", paris)
	assert.False(t, ok)
	_, ok = ParseInstant("tomorrow", paris)
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	svc, st := newService()
	a, err := svc.Create(Request{Start: "2026-10-20T10:00", ServiceID: "1", ClientID: "42"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(a.ID))
	assert.Zero(t, st.Len())
	assert.ErrorIs(t, svc.Delete(a.ID), store.ErrNotFound)
}
