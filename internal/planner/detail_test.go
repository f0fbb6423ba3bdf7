package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type detailFakes struct {
	dialog                          *fakeDialog
	date, tm, title, service, price *fakeText
	category, status, createdBy     *fakeText
	client, description             *fakeText
	eventID                         *fakeValue
	del                             *fakeDelete
	form                            *fakeForm
}

func newDetail(t *testing.T) (*DetailPresenter, detailFakes) {
	t.Helper()
	f := detailFakes{
		dialog: &fakeDialog{}, date: &fakeText{}, tm: &fakeText{}, title: &fakeText{},
		service: &fakeText{}, price: &fakeText{}, category: &fakeText{}, status: &fakeText{},
		createdBy: &fakeText{}, client: &fakeText{}, description: &fakeText{},
		eventID: &fakeValue{}, del: &fakeDelete{}, form: &fakeForm{},
	}
	p := NewDetailPresenter(DetailView{
		Dialog: f.dialog, Date: f.date, Time: f.tm, Title: f.title, Service: f.service,
		Price: f.price, Category: f.category, Status: f.status, CreatedBy: f.createdBy,
		Client: f.client, Description: f.description, EventID: f.eventID,
		Delete: f.del, DeleteForm: f.form,
	}, fixedPrices{})
	require.NotNil(t, p)
	return p, f
}

func sampleCard() EventCard {
	return EventCard{
		ID:          "a1",
		Label:       "Lun.",
		Date:        "19/10",
		Time:        "10:00 – 11:00",
		Title:       "Marie · Retouche",
		Service:     "Retouche",
		Category:    "Couture",
		Description: "Ourlet",
		Status:      "Planifié",
		CreatedBy:   "Marie",
		Price:       "25,5",
		Client:      "Jeanne",
		Start:       "2026-10-19T10:00:00+02:00",
		End:         "2026-10-19T11:00:00+02:00",
	}
}

func TestShowDetailFillsAndOpens(t *testing.T) {
	p, f := newDetail(t)

	p.ShowDetail(sampleCard())

	assert.True(t, f.dialog.open)
	assert.Equal(t, "19/10", f.date.text)
	assert.Equal(t, "10:00 – 11:00", f.tm.text)
	assert.Equal(t, "Marie · Retouche", f.title.text)
	assert.Equal(t, "Retouche", f.service.text)
	assert.Equal(t, "EUR 25.50", f.price.text)
	assert.Equal(t, "Couture", f.category.text)
	assert.Equal(t, "Planifié", f.status.text)
	assert.Equal(t, "Marie", f.createdBy.text)
	assert.Equal(t, "Jeanne", f.client.text)
	assert.Equal(t, "Ourlet", f.description.text)
	assert.Equal(t, "a1", f.eventID.value)
	assert.Equal(t, "2026-10-19T10:00:00+02:00", f.del.start)
	assert.Equal(t, "2026-10-19T11:00:00+02:00", f.del.end)
	assert.Equal(t, "Supprimer Marie · Retouche", f.del.label)

	active, ok := p.Active()
	require.True(t, ok)
	assert.Equal(t, "a1", active.ID)
}

func TestShowDetailPlaceholders(t *testing.T) {
	p, f := newDetail(t)

	p.ShowDetail(EventCard{})

	for _, txt := range []*fakeText{f.date, f.tm, f.title, f.service, f.price, f.category, f.status, f.createdBy, f.client, f.description} {
		assert.Equal(t, Placeholder, txt.text)
	}
	assert.Equal(t, "Supprimer le rendez-vous", f.del.label)
	assert.Equal(t, "", f.eventID.value)
}

func TestShowDetailRawPrice(t *testing.T) {
	p, f := newDetail(t)
	card := sampleCard()
	card.Price = "sur devis"

	p.ShowDetail(card)

	assert.Equal(t, "sur devis", f.price.text)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"12.5", 12.5, true},
		{"12,5", 12.5, true},
		{" 40 ", 40, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1,2,3", 0, false},
		{"Inf", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParsePrice(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}
}

func TestDeleteWithoutIdentifierDoesNotSubmit(t *testing.T) {
	p, f := newDetail(t)

	assert.False(t, p.Delete(), "never populated")
	assert.Zero(t, f.form.submits)

	card := sampleCard()
	card.ID = ""
	p.ShowDetail(card)
	assert.False(t, p.Delete())
	assert.Zero(t, f.form.submits)
}

func TestDeleteSubmitsForm(t *testing.T) {
	p, f := newDetail(t)
	p.ShowDetail(sampleCard())

	assert.True(t, p.Delete())
	assert.Equal(t, 1, f.form.submits)
}

func TestDeleteWithoutFormIsDisabled(t *testing.T) {
	p := NewDetailPresenter(DetailView{Dialog: &fakeDialog{}}, fixedPrices{})
	p.ShowDetail(sampleCard())
	assert.False(t, p.Delete())
}

func TestDetailPresenterAbsentDialog(t *testing.T) {
	p := NewDetailPresenter(DetailView{}, nil)
	assert.Nil(t, p)

	p.ShowDetail(sampleCard())
	assert.False(t, p.Delete())
	_, ok := p.Active()
	assert.False(t, ok)
}

func TestDismissClearsActive(t *testing.T) {
	p, f := newDetail(t)
	p.ShowDetail(sampleCard())

	p.Dismiss()

	assert.False(t, f.dialog.open)
	_, ok := p.Active()
	assert.False(t, ok)
}

func TestCurrencyFormatterFrench(t *testing.T) {
	f := NewCurrencyFormatter("fr", "EUR")
	got := f.FormatPrice(12.5)
	assert.Contains(t, got, "12,50")
	assert.Contains(t, got, "€")
}
