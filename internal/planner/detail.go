package planner

import (
	"math"
	"strconv"
	"strings"
)

// Placeholder is displayed for any missing event attribute.
const Placeholder = "—"

// EventCard is the read-only data rendered on an existing appointment.
type EventCard struct {
	ID          string
	Label       string
	Date        string
	Time        string
	Title       string
	Service     string
	Category    string
	Description string
	Status      string
	CreatedBy   string
	Price       string
	Client      string
	Start       string
	End         string
}

// DetailView groups the optional capabilities of the detail dialog.
type DetailView struct {
	Dialog      Dialog
	Date        Text
	Time        Text
	Title       Text
	Service     Text
	Price       Text
	Category    Text
	Status      Text
	CreatedBy   Text
	Client      Text
	Description Text
	EventID     Value
	Delete      DeleteControl
	DeleteForm  Form
}

// DetailPresenter shows existing appointments and triggers their deletion.
type DetailPresenter struct {
	view   DetailView
	prices PriceFormatter

	active  *EventCard
	eventID string
	start   string
	end     string
}

// NewDetailPresenter returns a presenter, or nil when the page has no
// detail dialog. A nil PriceFormatter falls back to the euro formatter.
func NewDetailPresenter(view DetailView, prices PriceFormatter) *DetailPresenter {
	if view.Dialog == nil {
		return nil
	}
	if prices == nil {
		prices = NewCurrencyFormatter("fr", "EUR")
	}
	return &DetailPresenter{view: view, prices: prices}
}

// ShowDetail fills the dialog from card, stores the instants and
// identifier for deletion, and opens it.
func (p *DetailPresenter) ShowDetail(card EventCard) {
	if p == nil {
		return
	}
	setText(p.view.Date, card.Date)
	setText(p.view.Time, card.Time)
	setText(p.view.Title, card.Title)
	setText(p.view.Service, card.Service)
	if p.view.Price != nil {
		p.view.Price.SetText(p.formatPrice(card.Price))
	}
	setText(p.view.Category, card.Category)
	setText(p.view.Status, card.Status)
	setText(p.view.CreatedBy, card.CreatedBy)
	setText(p.view.Client, card.Client)
	setText(p.view.Description, card.Description)

	p.eventID = card.ID
	p.start = card.Start
	p.end = card.End
	if p.view.EventID != nil {
		p.view.EventID.SetValue(card.ID)
	}
	if p.view.Delete != nil {
		p.view.Delete.SetInstants(card.Start, card.End)
		label := "Supprimer le rendez-vous"
		if card.Title != "" {
			label = "Supprimer " + card.Title
		}
		p.view.Delete.SetLabel(label)
	}

	p.view.Dialog.Open()
	c := card
	p.active = &c
}

// Active returns the card currently displayed.
func (p *DetailPresenter) Active() (EventCard, bool) {
	if p == nil || p.active == nil {
		return EventCard{}, false
	}
	return *p.active, true
}

// Instants returns the start/end stored for deletion.
func (p *DetailPresenter) Instants() (start, end string) {
	if p == nil {
		return "", ""
	}
	return p.start, p.end
}

// Delete submits the deletion form for the displayed appointment. It
// reports whether a submission happened; without an identifier it never
// submits.
func (p *DetailPresenter) Delete() bool {
	if p == nil || p.view.DeleteForm == nil {
		return false
	}
	if p.eventID == "" {
		return false
	}
	p.view.DeleteForm.Submit()
	return true
}

// Dismiss closes the dialog and forgets the active card. The stored
// identifier stays until the next ShowDetail, matching the hidden input.
func (p *DetailPresenter) Dismiss() {
	if p == nil {
		return
	}
	p.view.Dialog.Close()
	p.active = nil
}

func (p *DetailPresenter) formatPrice(raw string) string {
	if raw == "" {
		return Placeholder
	}
	amount, ok := ParsePrice(raw)
	if !ok {
		return raw
	}
	return p.prices.FormatPrice(amount)
}

// ParsePrice reads a decimal price written with a dot or a comma.
func ParsePrice(raw string) (float64, bool) {
	v := strings.Replace(strings.TrimSpace(raw), ",", ".", 1)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func setText(t Text, v string) {
	if t == nil {
		return
	}
	if v == "" {
		v = Placeholder
	}
	t.SetText(v)
}
