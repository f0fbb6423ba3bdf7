package timegrid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Planner window geometry. The planner shows 08:00-20:00 in 15 minute slots.
const (
	MinSlot      = 8 * 60
	MaxSlot      = 20 * 60
	SlotInterval = 15
	WindowSpan   = MaxSlot - MinSlot

	// DefaultDraftLength is the length of a freshly opened draft.
	DefaultDraftLength = 60

	// bottomSnapRatio: clicks below this fraction of the timeline select the last slot.
	bottomSnapRatio = 0.98
)

// InstantLayout is the wire format of submitted start/end instants. The
// offset is always written as ±HH:MM, never as "Z".
const InstantLayout = "2006-01-02T15:04:05-07:00"

// ColumnLabelLayout is the dd/mm label rendered on each planner column.
const ColumnLabelLayout = "02/01"

// ColumnKeyLayout is the date-bucket identifier rendered on each column.
const ColumnKeyLayout = "2006-01-02"

// MinutesToTime renders minutes since midnight as zero padded "HH:MM".
// The caller guarantees 0 <= total < 1440.
func MinutesToTime(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// TimeToMinutes parses "HH:MM" into minutes since midnight. ok is false
// when either part is missing or not numeric.
func TimeToMinutes(v string) (int, bool) {
	h, m, found := strings.Cut(strings.TrimSpace(v), ":")
	if !found {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return hours*60 + minutes, true
}

// PixelOffsetToSlot maps a vertical click position inside a timeline
// container to a minute of the day, snapped to interval.
//
//   - clickY is clamped to [top, bottom]
//   - a zero height container maps every click to windowStart
//   - clicks in the last 2% of the container select the last slot
//   - the offset is rounded half-up to the nearest slot
func PixelOffsetToSlot(clickY, top, bottom, height float64, interval, windowStart, windowTotal int) int {
	if interval <= 0 {
		interval = SlotInterval
	}
	y := math.Min(math.Max(clickY, top), bottom)

	ratio := 0.0
	if height > 0 {
		ratio = (y - top) / height
	}
	if ratio > bottomSnapRatio {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}

	slots := math.Floor(ratio*float64(windowTotal)/float64(interval) + 0.5)
	fromStart := int(slots) * interval
	if fromStart > windowTotal {
		fromStart = windowTotal
	}
	return windowStart + fromStart
}

// SlotForClick is PixelOffsetToSlot with the planner's configured window.
func SlotForClick(clickY, top, bottom, height float64) int {
	return PixelOffsetToSlot(clickY, top, bottom, height, SlotInterval, MinSlot, WindowSpan)
}

// Clamp bounds m to [lo, hi].
func Clamp(m, lo, hi int) int {
	if m < lo {
		return lo
	}
	if m > hi {
		return hi
	}
	return m
}

// SnapDown rounds m down to the previous slot boundary.
func SnapDown(m int) int {
	if m < 0 {
		return 0
	}
	return m - m%SlotInterval
}

// SlotOptions lists every selectable "HH:MM" from MinSlot to MaxSlot inclusive.
func SlotOptions() []string {
	out := make([]string, 0, WindowSpan/SlotInterval+1)
	for m := MinSlot; m <= MaxSlot; m += SlotInterval {
		out = append(out, MinutesToTime(m))
	}
	return out
}

// AtMinutes returns midnight of day plus minutes, on the wall clock of day's location.
func AtMinutes(day time.Time, minutes int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, day.Location())
}

// FormatInstant renders t in InstantLayout with seconds forced to zero.
func FormatInstant(t time.Time) string {
	t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	return t.Format(InstantLayout)
}

// MinutesOfDay returns the wall clock minutes since midnight of t.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ResolveColumnDate turns a column's attributes into a calendar date at
// midnight in loc. A valid key (YYYY-MM-DD) wins; otherwise the dd/mm label
// is read in year, with missing or invalid parts defaulting to 1.
func ResolveColumnDate(label, key string, year int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	if key != "" {
		if d, err := time.ParseInLocation(ColumnKeyLayout, strings.TrimSpace(key), loc); err == nil {
			return d
		}
	}

	day, month := 1, 1
	parts := strings.Split(strings.TrimSpace(label), "/")
	if len(parts) > 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil && n > 0 {
			day = n
		}
	}
	if len(parts) > 1 {
		if n, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil && n > 0 {
			month = n
		}
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}

// ColumnLabel renders the dd/mm label for t.
func ColumnLabel(t time.Time) string {
	return t.Format(ColumnLabelLayout)
}
