package timegrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutesToTime(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{MinSlot, "08:00"},
		{9*60 + 5, "09:05"},
		{MaxSlot, "20:00"},
		{23*60 + 59, "23:59"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MinutesToTime(tt.in))
	}
}

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   int
		wantOK bool
	}{
		{"regular", "10:15", 615, true},
		{"midnight", "00:00", 0, true},
		{"single digit hour", "8:30", 510, true},
		{"empty", "", 0, false},
		{"no separator", "1015", 0, false},
		{"letters in hour", "ab:15", 0, false},
		{"letters in minute", "10:xx", 0, false},
		{"missing minute", "10:", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TimeToMinutes(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeRoundTripOverWindow(t *testing.T) {
	for m := MinSlot; m <= MaxSlot; m += SlotInterval {
		got, ok := TimeToMinutes(MinutesToTime(m))
		require.True(t, ok, "minute %d", m)
		assert.Equal(t, m, got)
	}
}

func TestPixelOffsetToSlotMidpoint(t *testing.T) {
	got := PixelOffsetToSlot(300, 0, 600, 600, SlotInterval, MinSlot, WindowSpan)
	assert.Equal(t, 14*60, got)
	assert.Equal(t, "14:00", MinutesToTime(got))
}

func TestPixelOffsetToSlotEdges(t *testing.T) {
	tests := []struct {
		name   string
		clickY float64
		want   int
	}{
		{"above container", -50, MinSlot},
		{"top edge", 100, MinSlot},
		{"below container", 900, MaxSlot},
		{"bottom edge", 700, MaxSlot},
		{"inside bottom snap band", 100 + 0.99*600, MaxSlot},
		{"quarter height", 250, 11 * 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PixelOffsetToSlot(tt.clickY, 100, 700, 600, SlotInterval, MinSlot, WindowSpan))
		})
	}
}

func TestPixelOffsetToSlotZeroHeight(t *testing.T) {
	assert.Equal(t, MinSlot, SlotForClick(42, 0, 0, 0))
}

func TestPixelOffsetToSlotAlwaysInWindow(t *testing.T) {
	for y := -100.0; y <= 800; y += 0.7 {
		got := SlotForClick(y, 0, 600, 600)
		require.GreaterOrEqual(t, got, MinSlot, "y=%v", y)
		require.LessOrEqual(t, got, MaxSlot, "y=%v", y)
		require.Zero(t, got%SlotInterval, "y=%v", y)
	}
}

func TestSlotOptions(t *testing.T) {
	opts := SlotOptions()
	require.Len(t, opts, WindowSpan/SlotInterval+1)
	assert.Equal(t, "08:00", opts[0])
	assert.Equal(t, "08:15", opts[1])
	assert.Equal(t, "20:00", opts[len(opts)-1])
}

func TestFormatInstant(t *testing.T) {
	paris := time.FixedZone("CEST", 2*60*60)
	ts := time.Date(2026, 10, 19, 14, 30, 45, 123, paris)
	assert.Equal(t, "2026-10-19T14:30:00+02:00", FormatInstant(ts))

	west := time.FixedZone("", -(3*60*60 + 30*60))
	assert.Equal(t, "2026-01-02T08:00:00-03:30", FormatInstant(time.Date(2026, 1, 2, 8, 0, 0, 0, west)))

	assert.Equal(t, "2026-01-02T08:00:00+00:00", FormatInstant(time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)))
}

func TestResolveColumnDate(t *testing.T) {
	loc := time.UTC

	d := ResolveColumnDate("19/10", "", 2026, loc)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, loc), d)

	d = ResolveColumnDate("02/01", "2027-01-02", 2026, loc)
	assert.Equal(t, time.Date(2027, 1, 2, 0, 0, 0, 0, loc), d, "key wins over label")

	d = ResolveColumnDate("", "garbage", 2026, loc)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, loc), d)

	d = ResolveColumnDate("15", "", 2026, loc)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, loc), d)
}

func TestAtMinutesAndMinutesOfDay(t *testing.T) {
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	at := AtMinutes(day, 10*60+15)
	assert.Equal(t, 10, at.Hour())
	assert.Equal(t, 15, at.Minute())
	assert.Equal(t, 615, MinutesOfDay(at))
}

func TestClampAndSnap(t *testing.T) {
	assert.Equal(t, MinSlot, Clamp(10, MinSlot, MaxSlot))
	assert.Equal(t, MaxSlot, Clamp(5000, MinSlot, MaxSlot))
	assert.Equal(t, 600, Clamp(600, MinSlot, MaxSlot))
	assert.Equal(t, 600, SnapDown(607))
	assert.Equal(t, 0, SnapDown(-3))
}
