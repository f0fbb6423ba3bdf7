//go:build js && wasm

package dom

import (
	"strconv"
	"syscall/js"
	"time"

	"kitplanner/internal/planner"
)

// Bind wires the planner found under doc and marks it ready. It returns
// nil when the page has no planner.
func Bind(doc js.Value) *planner.Planner {
	root := query(doc, "[data-planner]")
	if !present(root) {
		return nil
	}

	columns := queryAll(root, "[data-planner-column]")
	specs := make([]planner.ColumnSpec, 0, len(columns))
	for _, c := range columns {
		specs = append(specs, planner.ColumnSpec{
			Label: attr(c, "data-planner-date"),
			Key:   attr(c, "data-planner-day"),
		})
	}
	offset, _ := strconv.Atoi(attr(root, "data-week-offset"))

	eventModal := query(doc, "[data-event-modal]")
	eventField := func(name string) js.Value {
		if !present(eventModal) {
			return js.Null()
		}
		return query(eventModal, `[data-event-field="`+name+`"]`)
	}
	newModal := query(doc, "[data-new-event-modal]")
	newField := func(name string) js.Value {
		if !present(newModal) {
			return js.Null()
		}
		return query(newModal, `[data-new-event-field="`+name+`"]`)
	}
	inModal := func(modal js.Value, selector string) js.Value {
		if !present(modal) {
			return js.Null()
		}
		return query(modal, selector)
	}

	p := planner.New(planner.Options{
		Columns:    specs,
		WeekOffset: offset,
		Labels: planner.Labels{
			Week: attr(root, "data-label-week"),
			Day:  attr(root, "data-label-day"),
		},
		Now:    time.Now,
		Prices: planner.NewCurrencyFormatter(attr(root, "data-locale"), attr(root, "data-currency")),
		Controls: planner.ControlView{
			Columns:    columnSurface{root: root, columns: columns},
			Buttons:    modeButtons{buttons: queryAll(root, `[data-planner-action="day"], [data-planner-action="week"]`)},
			RangeLabel: newText(query(root, "[data-planner-range]")),
			Navigator:  navigator{},
		},
		Detail: planner.DetailView{
			Dialog:      newDialog(eventModal),
			Date:        newText(eventField("date")),
			Time:        newText(eventField("time")),
			Title:       newText(eventField("title")),
			Service:     newText(eventField("service")),
			Price:       newText(eventField("price")),
			Category:    newText(eventField("category")),
			Status:      newText(eventField("status")),
			CreatedBy:   newText(eventField("created-by")),
			Client:      newText(eventField("client")),
			Description: newText(eventField("description")),
			EventID:     newValue(eventField("id")),
			Delete:      newDeleteControl(inModal(eventModal, "[data-event-delete]")),
			DeleteForm:  newDeleteForm(inModal(eventModal, "[data-event-delete-form]"), eventField("id")),
		},
		Scheduler: planner.SchedulerView{
			Dialog:      newDialog(newModal),
			Date:        newText(newField("date")),
			Time:        newText(newField("time")),
			Message:     newText(newField("message")),
			StartSelect: newSelect(newField("start-select")),
			EndSelect:   newSelect(newField("end-select")),
			Service:     newChoice(newField("service")),
			Client:      newChoice(newField("client")),
			StartInput:  newValue(newField("start-input")),
			EndInput:    newValue(newField("end-input")),
			Submit:      newToggle(inModal(newModal, "[data-new-event-submit]")),
			Form:        newForm(inModal(newModal, "[data-new-event-form]")),
		},
	})
	if section := attr(root, "data-planner-section"); section != "" {
		p.SetSection(section)
	}

	listen(root, "click", func(ev js.Value) {
		target := ev.Get("target")
		if nav := target.Call("closest", "[data-planner-nav]"); present(nav) {
			ev.Call("preventDefault")
			p.HandleAction(attr(nav, "data-planner-nav"))
			return
		}
		if action := target.Call("closest", "[data-planner-action]"); present(action) {
			p.HandleAction(attr(action, "data-planner-action"))
			return
		}
		p.HandleClick(classify(ev, columns))
	})

	bindDetail(p, eventModal)
	bindScheduler(p, newModal, newField)
	bindSections(doc, p)

	listen(doc, "keydown", func(ev js.Value) {
		p.HandleKey(ev.Get("key").String())
	})

	root.Call("setAttribute", "data-ready", "true")
	return p
}

// classify turns a click on the planner surface into a planner click.
func classify(ev js.Value, columns []js.Value) planner.Click {
	target := ev.Get("target")
	if card := target.Call("closest", "[data-planner-event]"); present(card) {
		return planner.CardClick{Card: cardFrom(card)}
	}
	timeline := target.Call("closest", ".kitlast-planner__timeline")
	if !present(timeline) {
		return planner.OtherClick{}
	}
	for i, c := range columns {
		if !c.Call("contains", timeline).Bool() {
			continue
		}
		rect := timeline.Call("getBoundingClientRect")
		return planner.TimelineClick{
			Column:  i,
			ClientY: ev.Get("clientY").Float(),
			Top:     rect.Get("top").Float(),
			Bottom:  rect.Get("bottom").Float(),
			Height:  rect.Get("height").Float(),
		}
	}
	return planner.OtherClick{}
}

func cardFrom(el js.Value) planner.EventCard {
	return planner.EventCard{
		ID:          attr(el, "data-event-id"),
		Label:       attr(el, "data-event-label"),
		Date:        attr(el, "data-event-date"),
		Time:        attr(el, "data-event-time"),
		Title:       attr(el, "data-event-title"),
		Service:     attr(el, "data-event-service"),
		Category:    attr(el, "data-event-category"),
		Description: attr(el, "data-event-description"),
		Status:      attr(el, "data-event-status"),
		CreatedBy:   attr(el, "data-event-created-by"),
		Price:       attr(el, "data-event-price"),
		Client:      attr(el, "data-event-client"),
		Start:       attr(el, "data-event-start"),
		End:         attr(el, "data-event-end"),
	}
}

func bindDetail(p *planner.Planner, modal js.Value) {
	if !present(modal) {
		return
	}
	listen(modal, "click", func(ev js.Value) {
		target := ev.Get("target")
		switch {
		case present(target.Call("closest", "[data-event-delete]")):
			p.Detail.Delete()
		case present(target.Call("closest", "[data-modal-close]")), target.Equal(modal):
			p.Detail.Dismiss()
		}
	})
}

func bindScheduler(p *planner.Planner, modal js.Value, field func(string) js.Value) {
	if !present(modal) {
		return
	}
	onChange := func(name string, apply func(string)) {
		el := field(name)
		if !present(el) {
			return
		}
		listen(el, "change", func(ev js.Value) {
			apply(ev.Get("target").Get("value").String())
		})
	}
	onChange("start-select", p.Scheduler.SetStart)
	onChange("end-select", p.Scheduler.SetEnd)
	onChange("service", p.Scheduler.SetService)
	onChange("client", p.Scheduler.SetClient)

	if f := query(modal, "[data-new-event-form]"); present(f) {
		listen(f, "submit", func(ev js.Value) {
			ev.Call("preventDefault")
			p.Scheduler.Submit()
		})
	}
	listen(modal, "click", func(ev js.Value) {
		target := ev.Get("target")
		if present(target.Call("closest", "[data-modal-close]")) || target.Equal(modal) {
			p.Scheduler.Dismiss()
		}
	})
}

// bindSections switches dashboard sections in place.
func bindSections(doc js.Value, p *planner.Planner) {
	links := queryAll(doc, "[data-section-link]")
	panels := queryAll(doc, "[data-section]")
	for _, link := range links {
		listen(link, "click", func(ev js.Value) {
			ev.Call("preventDefault")
			name := attr(link, "data-section-link")
			for _, panel := range panels {
				panel.Set("hidden", attr(panel, "data-section") != name)
			}
			for _, l := range links {
				if l.Equal(link) {
					l.Call("setAttribute", "aria-current", "page")
				} else {
					l.Call("removeAttribute", "aria-current")
				}
			}
			p.SetSection(name)
		})
	}
}

// listen registers handler for event on target. Listeners live as long as
// the page.
func listen(target js.Value, event string, handler func(ev js.Value)) {
	fn := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 {
			handler(args[0])
		}
		return nil
	})
	target.Call("addEventListener", event, fn)
}
