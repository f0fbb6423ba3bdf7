package weekview

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"kitplanner/internal/model"
	"kitplanner/internal/timegrid"
)

const minBlockMinutes = 30

// Palette colours event blocks by their position in the week.
var Palette = []string{
	"#7C8FF8", "#E07B39", "#6BC0A5", "#AF77E5", "#2CB7C6",
	"#F06FA7", "#4AC07A", "#5272FF", "#FFB347",
}

var weekdayLabels = [7]string{"Lun.", "Mar.", "Mer.", "Jeu.", "Ven.", "Sam.", "Dim."}

// Source is the read side of the appointment store.
type Source interface {
	Range(from, to time.Time) []model.Appointment
	Service(id string) (model.Service, error)
	Client(id string) (model.Client, error)
}

// Block is one appointment card as rendered in a day column. The string
// fields map one to one onto the card's data-event-* attributes.
type Block struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Title       string  `json:"title"`
	Service     string  `json:"service"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	CreatedBy   string  `json:"created_by"`
	Price       string  `json:"price"`
	Client      string  `json:"client"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Color       string  `json:"color"`
	TopPct      float64 `json:"top_pct"`
	HeightPct   float64 `json:"height_pct"`
}

// Day is one planner column.
type Day struct {
	Label  string  `json:"label"`
	Date   string  `json:"date"`
	Key    string  `json:"key"`
	Today  bool    `json:"today"`
	Events []Block `json:"events"`
}

// Week is the planner content for one week offset.
type Week struct {
	Offset  int       `json:"offset"`
	Start   time.Time `json:"start"`
	Summary string    `json:"summary"`
	Days    []Day     `json:"days"`
}

// Hours lists the hour marks drawn along the timeline, 08:00 to 20:00.
func Hours() []string {
	out := make([]string, 0, timegrid.WindowSpan/60+1)
	for m := timegrid.MinSlot; m <= timegrid.MaxSlot; m += 60 {
		out = append(out, timegrid.MinutesToTime(m))
	}
	return out
}

// Summary renders "Semaine 43 · 19/10 → 25/10" for the week starting at monday.
func Summary(monday time.Time) string {
	_, isoWeek := monday.ISOWeek()
	return fmt.Sprintf("Semaine %d · %s → %s", isoWeek, timegrid.ColumnLabel(monday), timegrid.ColumnLabel(monday.AddDate(0, 0, 6)))
}

// StartOfWeek returns local midnight of the Monday of now's week shifted by
// offset weeks.
func StartOfWeek(now time.Time, offset int) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	back := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, 7*offset-back)
}

// Days enumerates the seven local midnights starting at monday.
func Days(monday time.Time) ([]time.Time, error) {
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Count:   7,
		Dtstart: monday,
	})
	if err != nil {
		return nil, fmt.Errorf("weekview: day rule: %w", err)
	}
	return r.All(), nil
}

// Build lays out the appointments of the requested week. now fixes both the
// reference week and the zone used for columns and blocks.
func Build(src Source, now time.Time, offset int) (Week, error) {
	monday := StartOfWeek(now, offset)
	dates, err := Days(monday)
	if err != nil {
		return Week{}, err
	}

	todayKey := now.Format(timegrid.ColumnKeyLayout)
	week := Week{Offset: offset, Start: monday, Summary: Summary(monday), Days: make([]Day, 0, len(dates))}
	index := make(map[string]int, len(dates))
	for i, d := range dates {
		key := d.Format(timegrid.ColumnKeyLayout)
		index[key] = i
		week.Days = append(week.Days, Day{
			Label:  weekdayLabels[i],
			Date:   timegrid.ColumnLabel(d),
			Key:    key,
			Today:  key == todayKey,
			Events: []Block{},
		})
	}

	loc := now.Location()
	appointments := src.Range(monday, monday.AddDate(0, 0, 7))
	for n, a := range appointments {
		start := a.Start.In(loc)
		i, ok := index[start.Format(timegrid.ColumnKeyLayout)]
		if !ok {
			continue
		}
		week.Days[i].Events = append(week.Days[i].Events, block(src, a, start, a.End.In(loc), i, n))
	}
	return week, nil
}

func block(src Source, a model.Appointment, start, end time.Time, day, n int) Block {
	b := Block{
		ID:          a.ID,
		Label:       weekdayLabels[day],
		Date:        timegrid.ColumnLabel(start),
		Time:        timegrid.MinutesToTime(timegrid.MinutesOfDay(start)) + " – " + timegrid.MinutesToTime(timegrid.MinutesOfDay(end)),
		Service:     a.Title,
		Description: a.Description,
		Status:      a.Status.Label(),
		CreatedBy:   a.CreatedBy,
		Start:       timegrid.FormatInstant(start),
		End:         timegrid.FormatInstant(end),
		Color:       Palette[n%len(Palette)],
	}
	if svc, err := src.Service(a.ServiceID); err == nil {
		b.Service = svc.Name
		b.Category = svc.Category
		b.Price = svc.Price
	}
	if c, err := src.Client(a.ClientID); err == nil {
		b.Client = c.Name
	}
	b.Title = b.Service
	if b.CreatedBy != "" {
		b.Title = b.CreatedBy + " · " + b.Service
	}
	b.TopPct, b.HeightPct = Placement(start, end)
	return b
}

// Placement returns the block offset and height as percentages of the
// 08:00-20:00 window. Blocks are at least half an hour tall.
func Placement(start, end time.Time) (topPct, heightPct float64) {
	top := timegrid.MinutesOfDay(start) - timegrid.MinSlot
	if top < 0 {
		top = 0
	}
	dur := int(end.Sub(start) / time.Minute)
	if dur < minBlockMinutes {
		dur = minBlockMinutes
	}
	return float64(top) / timegrid.WindowSpan * 100, float64(dur) / timegrid.WindowSpan * 100
}
