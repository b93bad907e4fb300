package countdown

import (
	"testing"
	"time"

	"efgportal/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestTimeUntil(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		target time.Time
		want   domain.Remaining
	}{
		{"one of each", now.Add(90061 * time.Second), domain.Remaining{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}},
		{"exactly now", now, domain.Remaining{}},
		{"past", now.Add(-time.Hour), domain.Remaining{}},
		{"sub-second floors to zero", now.Add(900 * time.Millisecond), domain.Remaining{}},
		{"just under a day", now.Add(24*time.Hour - time.Second), domain.Remaining{Hours: 23, Minutes: 59, Seconds: 59}},
		{"many days", now.Add(400*24*time.Hour + 5*time.Minute), domain.Remaining{Days: 400, Minutes: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeUntil(tt.target, now))
		})
	}
}

func TestTimeUntil_ComponentsRecomposeToFlooredDelta(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, secs := range []int64{1, 59, 60, 61, 3599, 3600, 86399, 86400, 123456, 9876543} {
		d := time.Duration(secs)*time.Second + 250*time.Millisecond
		r := TimeUntil(now.Add(d), now)
		assert.GreaterOrEqual(t, r.Hours, 0)
		assert.Less(t, r.Hours, 24)
		assert.Less(t, r.Minutes, 60)
		assert.Less(t, r.Seconds, 60)
		got := int64(r.Days)*86400 + int64(r.Hours)*3600 + int64(r.Minutes)*60 + int64(r.Seconds)
		assert.Equal(t, secs, got, "delta %v", d)
	}
}

func TestTimeUntil_IgnoresLocation(t *testing.T) {
	loc := time.FixedZone("GST", 4*3600)
	target := time.Date(2026, 5, 20, 9, 0, 0, 0, loc)
	now := time.Date(2026, 5, 19, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, domain.Remaining{Hours: 20}, TimeUntil(target, now))
}

func TestElapsed(t *testing.T) {
	now := time.Now()
	assert.True(t, Elapsed(now, now))
	assert.True(t, Elapsed(now.Add(-time.Second), now))
	assert.False(t, Elapsed(now.Add(time.Second), now))
}
