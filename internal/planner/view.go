package planner

import (
	"time"

	"kitplanner/internal/timegrid"
)

// Mode is the planner display mode.
type Mode int

const (
	ModeWeek Mode = iota
	ModeDay
)

func (m Mode) String() string {
	if m == ModeDay {
		return "day"
	}
	return "week"
}

// Column is one calendar day rendered by the host.
type Column struct {
	Index   int
	Label   string    // dd/mm
	Key     string    // YYYY-MM-DD, may be empty
	Date    time.Time // resolved at construction
	Visible bool
}

// ViewState is the planner's explicit display state. Selected is -1 in
// week mode and a column index in day mode.
type ViewState struct {
	Section  string
	Mode     Mode
	Selected int
}

// Labels holds the localized range label texts.
type Labels struct {
	Week string
	Day  string
}

// DefaultLabels are the French labels rendered by the dashboard.
var DefaultLabels = Labels{Week: "Vue semaine", Day: "Vue jour"}

// ControlView groups the optional capabilities the view controller drives.
type ControlView struct {
	Columns    ColumnSurface
	Buttons    ModeButtons
	RangeLabel Text
	Navigator  WeekNavigator
}

// ViewController switches the planner between week and day display.
type ViewController struct {
	columns    []Column
	state      ViewState
	weekOffset int
	labels     Labels
	now        func() time.Time
	view       ControlView
}

// ColumnSpec describes a rendered column before date resolution.
type ColumnSpec struct {
	Label string
	Key   string
}

// NewViewController resolves the columns' dates against now's year and
// starts in week mode.
func NewViewController(specs []ColumnSpec, weekOffset int, labels Labels, now func() time.Time, view ControlView) *ViewController {
	if now == nil {
		now = time.Now
	}
	if labels.Week == "" {
		labels.Week = DefaultLabels.Week
	}
	if labels.Day == "" {
		labels.Day = DefaultLabels.Day
	}

	current := now()
	cols := make([]Column, len(specs))
	for i, s := range specs {
		cols[i] = Column{
			Index:   i,
			Label:   s.Label,
			Key:     s.Key,
			Date:    timegrid.ResolveColumnDate(s.Label, s.Key, current.Year(), current.Location()),
			Visible: true,
		}
	}

	vc := &ViewController{
		columns:    cols,
		state:      ViewState{Section: "planning", Mode: ModeWeek, Selected: -1},
		weekOffset: weekOffset,
		labels:     labels,
		now:        now,
		view:       view,
	}
	vc.ShowWeek()
	return vc
}

// State returns a copy of the current view state.
func (vc *ViewController) State() ViewState {
	return vc.state
}

// Columns returns a copy of the columns.
func (vc *ViewController) Columns() []Column {
	out := make([]Column, len(vc.columns))
	copy(out, vc.columns)
	return out
}

// Column returns the column at index.
func (vc *ViewController) Column(index int) (Column, bool) {
	if index < 0 || index >= len(vc.columns) {
		return Column{}, false
	}
	return vc.columns[index], true
}

// Interactable reports whether clicks on the column's timeline are handled.
func (vc *ViewController) Interactable(index int) bool {
	c, ok := vc.Column(index)
	return ok && c.Visible
}

// ShowWeek makes every column visible.
func (vc *ViewController) ShowWeek() {
	for i := range vc.columns {
		vc.columns[i].Visible = true
		if vc.view.Columns != nil {
			vc.view.Columns.SetColumnVisible(i, true)
		}
	}
	if vc.view.Columns != nil {
		vc.view.Columns.SetSingle(false)
	}
	vc.state.Mode = ModeWeek
	vc.state.Selected = -1
	vc.render()
}

// ShowToday switches to day mode on the column labelled with today's date,
// or the first column when none matches.
func (vc *ViewController) ShowToday() {
	if len(vc.columns) == 0 {
		return
	}
	today := timegrid.ColumnLabel(vc.now())
	target := 0
	for i, c := range vc.columns {
		if c.Label == today {
			target = i
			break
		}
	}
	vc.showSingle(target)
}

// NavigatePrev moves one week back in week mode, one column back (wrapping)
// in day mode.
func (vc *ViewController) NavigatePrev() {
	vc.navigate(-1)
}

// NavigateNext moves one week forward in week mode, one column forward
// (wrapping) in day mode.
func (vc *ViewController) NavigateNext() {
	vc.navigate(1)
}

func (vc *ViewController) navigate(delta int) {
	if vc.state.Mode == ModeWeek {
		if vc.view.Navigator != nil {
			vc.view.Navigator.NavigateWeek(vc.weekOffset + delta)
		}
		return
	}
	n := len(vc.columns)
	if n == 0 {
		return
	}
	vc.showSingle(((vc.state.Selected+delta)%n + n) % n)
}

func (vc *ViewController) showSingle(index int) {
	for i := range vc.columns {
		vc.columns[i].Visible = i == index
		if vc.view.Columns != nil {
			vc.view.Columns.SetColumnVisible(i, i == index)
		}
	}
	if vc.view.Columns != nil {
		vc.view.Columns.SetSingle(true)
	}
	vc.state.Mode = ModeDay
	vc.state.Selected = index
	vc.render()
}

func (vc *ViewController) render() {
	if vc.view.Buttons != nil {
		vc.view.Buttons.SetActive(vc.state.Mode)
	}
	if vc.view.RangeLabel != nil {
		if vc.state.Mode == ModeWeek {
			vc.view.RangeLabel.SetText(vc.labels.Week)
		} else {
			vc.view.RangeLabel.SetText(vc.labels.Day)
		}
	}
}
