package planner

import "fmt"

type fakeDialog struct {
	open   bool
	opened int
}

func (d *fakeDialog) Open()  { d.open = true; d.opened++ }
func (d *fakeDialog) Close() { d.open = false }

type fakeText struct{ text string }

func (t *fakeText) SetText(s string) { t.text = s }

type fakeValue struct{ value string }

func (v *fakeValue) SetValue(s string) { v.value = s }

type fakeSelect struct {
	options []string
	value   string
}

func (s *fakeSelect) SetOptions(options []string, selected string) {
	s.options = append([]string(nil), options...)
	s.value = selected
}

func (s *fakeSelect) SetValue(v string) { s.value = v }

type fakeChoice struct{ resets int }

func (c *fakeChoice) ResetToPlaceholder() { c.resets++ }

type fakeToggle struct{ disabled bool }

func (t *fakeToggle) SetDisabled(d bool) { t.disabled = d }

type fakeForm struct{ submits int }

func (f *fakeForm) Submit() { f.submits++ }

type fakeDelete struct {
	start, end, label string
}

func (d *fakeDelete) SetInstants(start, end string) { d.start, d.end = start, end }
func (d *fakeDelete) SetLabel(label string)         { d.label = label }

type fakeButtons struct{ active Mode }

func (b *fakeButtons) SetActive(m Mode) { b.active = m }

type fakeColumns struct {
	visible map[int]bool
	single  bool
}

func (c *fakeColumns) SetColumnVisible(i int, v bool) {
	if c.visible == nil {
		c.visible = map[int]bool{}
	}
	c.visible[i] = v
}

func (c *fakeColumns) SetSingle(s bool) { c.single = s }

type fakeNavigator struct{ offsets []int }

func (n *fakeNavigator) NavigateWeek(offset int) { n.offsets = append(n.offsets, offset) }

type fixedPrices struct{}

func (fixedPrices) FormatPrice(amount float64) string {
	return fmt.Sprintf("EUR %.2f", amount)
}
