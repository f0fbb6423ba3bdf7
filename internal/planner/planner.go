package planner

import (
	"time"

	"kitplanner/internal/timegrid"
)

// Click is a classified click on the planner surface.
type Click interface {
	click()
}

// CardClick activates an existing appointment.
type CardClick struct {
	Card EventCard
}

// TimelineClick lands on empty timeline space of a column. Geometry is
// the timeline's bounding box in the same coordinate space as ClientY.
type TimelineClick struct {
	Column  int
	ClientY float64
	Top     float64
	Bottom  float64
	Height  float64
}

// OtherClick is anything else; it is ignored.
type OtherClick struct{}

func (CardClick) click()     {}
func (TimelineClick) click() {}
func (OtherClick) click()    {}

// Outcome tells the caller what a click did.
type Outcome int

const (
	Ignored Outcome = iota
	DetailShown
	DraftOpened
)

// Action names rendered on the planner toolbar.
const (
	ActionToday = "today"
	ActionDay   = "day"
	ActionWeek  = "week"
	ActionPrev  = "prev"
	ActionNext  = "next"
)

// Options configures a Planner. Detail and Scheduler views with a nil
// Dialog disable those features.
type Options struct {
	Columns    []ColumnSpec
	WeekOffset int
	Labels     Labels
	Now        func() time.Time
	Prices     PriceFormatter

	Controls  ControlView
	Detail    DetailView
	Scheduler SchedulerView
}

// Planner routes page events to the view controller, the detail presenter
// and the new-event scheduler. Handlers run one at a time on the page's
// event loop.
type Planner struct {
	View      *ViewController
	Detail    *DetailPresenter
	Scheduler *Scheduler
}

// New wires the planner components.
func New(opts Options) *Planner {
	return &Planner{
		View:      NewViewController(opts.Columns, opts.WeekOffset, opts.Labels, opts.Now, opts.Controls),
		Detail:    NewDetailPresenter(opts.Detail, opts.Prices),
		Scheduler: NewScheduler(opts.Scheduler),
	}
}

// HandleClick dispatches a classified click.
func (p *Planner) HandleClick(c Click) Outcome {
	switch c := c.(type) {
	case CardClick:
		if p.Detail == nil {
			return Ignored
		}
		p.Detail.ShowDetail(c.Card)
		return DetailShown
	case TimelineClick:
		if p.Scheduler == nil || !p.View.Interactable(c.Column) {
			return Ignored
		}
		col, _ := p.View.Column(c.Column)
		p.Scheduler.Open(col, timegrid.SlotForClick(c.ClientY, c.Top, c.Bottom, c.Height))
		return DraftOpened
	default:
		return Ignored
	}
}

// HandleAction runs a toolbar action. Unknown actions are ignored.
func (p *Planner) HandleAction(action string) {
	switch action {
	case ActionToday, ActionDay:
		p.View.ShowToday()
	case ActionWeek:
		p.View.ShowWeek()
	case ActionPrev:
		p.View.NavigatePrev()
	case ActionNext:
		p.View.NavigateNext()
	}
}

// HandleKey closes the planner dialogs on Escape.
func (p *Planner) HandleKey(key string) {
	if key != "Escape" {
		return
	}
	p.DismissAll()
}

// SetSection records the active dashboard section. Leaving the planning
// section closes the planner dialogs.
func (p *Planner) SetSection(name string) {
	p.View.state.Section = name
	if name != "planning" {
		p.DismissAll()
	}
}

// DismissAll closes both planner dialogs and drops any draft.
func (p *Planner) DismissAll() {
	if p.Detail != nil {
		p.Detail.Dismiss()
	}
	if p.Scheduler != nil && p.Scheduler.State() == DraftOpen {
		p.Scheduler.Dismiss()
	}
}
