//go:build js && wasm

// Package dom binds the planner to the server-rendered dashboard markup.
package dom

import (
	"net/url"
	"strconv"
	"strings"
	"syscall/js"

	"kitplanner/internal/planner"
)

const focusable = "select, button:not([disabled]), input:not([type=hidden])"

func present(v js.Value) bool {
	return !v.IsNull() && !v.IsUndefined()
}

func query(root js.Value, selector string) js.Value {
	return root.Call("querySelector", selector)
}

func queryAll(root js.Value, selector string) []js.Value {
	list := root.Call("querySelectorAll", selector)
	out := make([]js.Value, 0, list.Length())
	for i := 0; i < list.Length(); i++ {
		out = append(out, list.Index(i))
	}
	return out
}

// attr returns the attribute value, "" when absent.
func attr(el js.Value, name string) string {
	v := el.Call("getAttribute", name)
	if !present(v) {
		return ""
	}
	return v.String()
}

// dialog shows and hides a modal through its hidden attribute.
type dialog struct{ el js.Value }

func newDialog(el js.Value) planner.Dialog {
	if !present(el) {
		return nil
	}
	return dialog{el: el}
}

func (d dialog) Open() {
	d.el.Call("removeAttribute", "hidden")
	var focus js.Func
	focus = js.FuncOf(func(js.Value, []js.Value) any {
		defer focus.Release()
		if first := query(d.el, focusable); present(first) {
			first.Call("focus")
		}
		return nil
	})
	js.Global().Call("requestAnimationFrame", focus)
}

func (d dialog) Close() {
	d.el.Call("setAttribute", "hidden", "")
}

type text struct{ el js.Value }

func newText(el js.Value) planner.Text {
	if !present(el) {
		return nil
	}
	return text{el: el}
}

func (t text) SetText(s string) { t.el.Set("textContent", s) }

type value struct{ el js.Value }

func newValue(el js.Value) planner.Value {
	if !present(el) {
		return nil
	}
	return value{el: el}
}

func (v value) SetValue(s string) { v.el.Set("value", s) }

// slotSelect is a time <select> rebuilt on every draft.
type slotSelect struct{ el js.Value }

func newSelect(el js.Value) planner.Select {
	if !present(el) {
		return nil
	}
	return slotSelect{el: el}
}

func (s slotSelect) SetOptions(options []string, selected string) {
	doc := js.Global().Get("document")
	s.el.Set("innerHTML", "")
	for _, o := range options {
		opt := doc.Call("createElement", "option")
		opt.Set("value", o)
		opt.Set("textContent", o)
		if o == selected {
			opt.Set("selected", true)
		}
		s.el.Call("appendChild", opt)
	}
	s.el.Set("value", selected)
}

func (s slotSelect) SetValue(v string) { s.el.Set("value", v) }

type choice struct{ el js.Value }

func newChoice(el js.Value) planner.Choice {
	if !present(el) {
		return nil
	}
	return choice{el: el}
}

func (c choice) ResetToPlaceholder() { c.el.Set("value", "") }

type toggle struct{ el js.Value }

func newToggle(el js.Value) planner.Toggle {
	if !present(el) {
		return nil
	}
	return toggle{el: el}
}

func (t toggle) SetDisabled(disabled bool) { t.el.Set("disabled", disabled) }

// form submits natively, which skips the submit listeners.
type form struct{ el js.Value }

func newForm(el js.Value) planner.Form {
	if !present(el) {
		return nil
	}
	return form{el: el}
}

func (f form) Submit() { f.el.Call("submit") }

// deleteForm targets the path in data-delete-path with {id} replaced by the
// displayed appointment's identifier.
type deleteForm struct {
	el js.Value
	id js.Value
}

func newDeleteForm(el, id js.Value) planner.Form {
	if !present(el) || !present(id) {
		return nil
	}
	return deleteForm{el: el, id: id}
}

func (f deleteForm) Submit() {
	path := attr(f.el, "data-delete-path")
	if path == "" {
		return
	}
	f.el.Call("setAttribute", "action", strings.ReplaceAll(path, "{id}", url.PathEscape(f.id.Get("value").String())))
	f.el.Call("submit")
}

type deleteControl struct{ el js.Value }

func newDeleteControl(el js.Value) planner.DeleteControl {
	if !present(el) {
		return nil
	}
	return deleteControl{el: el}
}

func (d deleteControl) SetInstants(start, end string) {
	d.el.Call("setAttribute", "data-start", start)
	d.el.Call("setAttribute", "data-end", end)
}

func (d deleteControl) SetLabel(label string) {
	d.el.Call("setAttribute", "aria-label", label)
}

// modeButtons marks the day/week toolbar buttons.
type modeButtons struct{ buttons []js.Value }

func (m modeButtons) SetActive(mode planner.Mode) {
	for _, b := range m.buttons {
		b.Get("classList").Call("toggle", "is-active", attr(b, "data-planner-action") == mode.String())
	}
}

type columnSurface struct {
	root    js.Value
	columns []js.Value
}

func (c columnSurface) SetColumnVisible(index int, visible bool) {
	if index < 0 || index >= len(c.columns) {
		return
	}
	c.columns[index].Set("hidden", !visible)
}

func (c columnSurface) SetSingle(single bool) {
	c.root.Get("classList").Call("toggle", "is-single", single)
}

// navigator reloads the dashboard on another week.
type navigator struct{}

func (navigator) NavigateWeek(offset int) {
	q := url.Values{}
	q.Set("section", "planning")
	q.Set("week_offset", strconv.Itoa(offset))
	js.Global().Get("location").Call("assign", "/?"+q.Encode())
}
