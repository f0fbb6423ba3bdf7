package planner

import (
	"fmt"
	"time"

	"kitplanner/internal/timegrid"
)

// Draft is the uncommitted appointment built from a timeline click.
// MinSlot <= Start < End <= MaxSlot, both on slot boundaries.
type Draft struct {
	BaseDate  time.Time
	DateLabel string
	Start     int
	End       int
	ServiceID string
	ClientID  string
}

// StartInstant renders the draft start in the submitted instant format.
func (d Draft) StartInstant() string {
	return timegrid.FormatInstant(timegrid.AtMinutes(d.BaseDate, d.Start))
}

// EndInstant renders the draft end in the submitted instant format.
func (d Draft) EndInstant() string {
	return timegrid.FormatInstant(timegrid.AtMinutes(d.BaseDate, d.End))
}

// TimeRange renders "HH:MM – HH:MM".
func (d Draft) TimeRange() string {
	return timegrid.MinutesToTime(d.Start) + " – " + timegrid.MinutesToTime(d.End)
}

// Summary is the human readable line shown under the selectors.
func (d Draft) Summary() string {
	return fmt.Sprintf("Créneau sélectionné pour le %s de %s.", d.DateLabel, d.TimeRange())
}

// lastStart keeps room for one slot after the start.
const lastStart = timegrid.MaxSlot - timegrid.SlotInterval

// NewDraft builds the draft for a click at clicked minutes on base.
func NewDraft(base time.Time, label string, clicked int) Draft {
	start := timegrid.Clamp(timegrid.SnapDown(clicked), timegrid.MinSlot, lastStart)
	return Draft{
		BaseDate:  base,
		DateLabel: label,
		Start:     start,
		End:       min(timegrid.MaxSlot, start+timegrid.DefaultDraftLength),
	}
}

// Reconcile applies raw selector values to a start/end pair. A malformed
// start falls back to MinSlot and a malformed end to start plus one slot.
// The returned pair satisfies the Draft invariant; corrected reports
// whether end differs from what the end selector holds.
func Reconcile(startValue, endValue string) (start, end int, corrected bool) {
	start, ok := timegrid.TimeToMinutes(startValue)
	if !ok {
		start = timegrid.MinSlot
	}
	start = timegrid.Clamp(timegrid.SnapDown(start), timegrid.MinSlot, lastStart)

	end, ok = timegrid.TimeToMinutes(endValue)
	if !ok {
		end = start + timegrid.SlotInterval
	}
	requested := end
	end = timegrid.SnapDown(min(end, timegrid.MaxSlot))
	if end <= start {
		end = min(timegrid.MaxSlot, start+timegrid.SlotInterval)
	}
	return start, end, !ok || end != requested
}

// SchedulerView groups the optional capabilities of the new-event dialog.
type SchedulerView struct {
	Dialog      Dialog
	Date        Text
	Time        Text
	Message     Text
	StartSelect Select
	EndSelect   Select
	Service     Choice
	Client      Choice
	StartInput  Value
	EndInput    Value
	Submit      Toggle
	Form        Form
}

// SchedulerState is Idle or DraftOpen.
type SchedulerState int

const (
	Idle SchedulerState = iota
	DraftOpen
)

// Scheduler turns timeline clicks into submittable drafts.
type Scheduler struct {
	view  SchedulerView
	state SchedulerState
	draft Draft

	startInstant string
	endInstant   string
}

// NewScheduler returns a scheduler, or nil when the page has no new-event
// dialog.
func NewScheduler(view SchedulerView) *Scheduler {
	if view.Dialog == nil {
		return nil
	}
	s := &Scheduler{view: view}
	s.updateSubmit()
	return s
}

// State reports Idle or DraftOpen.
func (s *Scheduler) State() SchedulerState {
	if s == nil {
		return Idle
	}
	return s.state
}

// Draft returns the open draft.
func (s *Scheduler) Draft() (Draft, bool) {
	if s == nil || s.state != DraftOpen {
		return Draft{}, false
	}
	return s.draft, true
}

// Instants returns the computed hidden start/end values.
func (s *Scheduler) Instants() (start, end string) {
	if s == nil {
		return "", ""
	}
	return s.startInstant, s.endInstant
}

// Open starts a fresh draft on column at clicked minutes and shows the
// dialog. Any previous draft and selection is discarded.
func (s *Scheduler) Open(col Column, clicked int) {
	if s == nil {
		return
	}
	s.draft = NewDraft(col.Date, col.Label, clicked)
	s.state = DraftOpen

	if s.view.Date != nil {
		s.view.Date.SetText(col.Label)
	}
	options := timegrid.SlotOptions()
	if s.view.StartSelect != nil {
		s.view.StartSelect.SetOptions(options, timegrid.MinutesToTime(s.draft.Start))
	}
	if s.view.EndSelect != nil {
		s.view.EndSelect.SetOptions(options, timegrid.MinutesToTime(s.draft.End))
	}
	if s.view.Service != nil {
		s.view.Service.ResetToPlaceholder()
	}
	if s.view.Client != nil {
		s.view.Client.ResetToPlaceholder()
	}

	s.sync(false)
	s.view.Dialog.Open()
}

// SetStart applies a start selector change.
func (s *Scheduler) SetStart(value string) {
	if s == nil || s.state != DraftOpen {
		return
	}
	s.apply(value, timegrid.MinutesToTime(s.draft.End))
}

// SetEnd applies an end selector change.
func (s *Scheduler) SetEnd(value string) {
	if s == nil || s.state != DraftOpen {
		return
	}
	s.apply(timegrid.MinutesToTime(s.draft.Start), value)
}

func (s *Scheduler) apply(startValue, endValue string) {
	start, end, corrected := Reconcile(startValue, endValue)
	s.draft.Start = start
	s.draft.End = end
	s.sync(corrected)
}

// SetService records the selected service id; "" is the placeholder.
func (s *Scheduler) SetService(id string) {
	if s == nil {
		return
	}
	s.draft.ServiceID = id
	s.updateSubmit()
}

// SetClient records the selected client id; "" is the placeholder.
func (s *Scheduler) SetClient(id string) {
	if s == nil {
		return
	}
	s.draft.ClientID = id
	s.updateSubmit()
}

// CanSubmit reports whether the start instant, service and client are all set.
func (s *Scheduler) CanSubmit() bool {
	if s == nil || s.state != DraftOpen {
		return false
	}
	return s.startInstant != "" && s.draft.ServiceID != "" && s.draft.ClientID != ""
}

// Submit hands the draft to the form when allowed and returns to Idle.
func (s *Scheduler) Submit() bool {
	if !s.CanSubmit() {
		return false
	}
	if s.view.Form != nil {
		s.view.Form.Submit()
	}
	s.reset()
	return true
}

// Submitted records a submission the page performed itself.
func (s *Scheduler) Submitted() {
	if s == nil {
		return
	}
	s.reset()
}

// Dismiss discards the draft.
func (s *Scheduler) Dismiss() {
	if s == nil {
		return
	}
	s.reset()
}

func (s *Scheduler) reset() {
	s.state = Idle
	s.draft = Draft{}
	s.startInstant = ""
	s.endInstant = ""
	s.view.Dialog.Close()
	s.updateSubmit()
}

// sync pushes the draft to the page after a change.
func (s *Scheduler) sync(endCorrected bool) {
	start := timegrid.MinutesToTime(s.draft.Start)
	end := timegrid.MinutesToTime(s.draft.End)

	if endCorrected && s.view.EndSelect != nil {
		s.view.EndSelect.SetValue(end)
	}
	if s.view.StartSelect != nil {
		s.view.StartSelect.SetValue(start)
	}

	s.startInstant = s.draft.StartInstant()
	s.endInstant = s.draft.EndInstant()
	if s.view.StartInput != nil {
		s.view.StartInput.SetValue(s.startInstant)
	}
	if s.view.EndInput != nil {
		s.view.EndInput.SetValue(s.endInstant)
	}

	if s.view.Time != nil {
		s.view.Time.SetText(s.draft.TimeRange())
	}
	if s.view.Message != nil && s.draft.DateLabel != "" {
		s.view.Message.SetText(s.draft.Summary())
	}
	s.updateSubmit()
}

func (s *Scheduler) updateSubmit() {
	if s.view.Submit == nil {
		return
	}
	s.view.Submit.SetDisabled(!s.CanSubmit())
}
