// Package countdown computes the time remaining until an event starts.
package countdown

import (
	"time"

	"efgportal/internal/domain"
)

// TimeUntil breaks target-now into whole days, hours, minutes and seconds. Each component is
// floored; a target in the past yields all zeros.
func TimeUntil(target, now time.Time) domain.Remaining {
	d := target.Sub(now)
	if d <= 0 {
		return domain.Remaining{}
	}
	total := int64(d / time.Second)
	return domain.Remaining{
		Days:    int(total / 86400),
		Hours:   int(total % 86400 / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}
}

// Elapsed reports whether the target is at or before now.
func Elapsed(target, now time.Time) bool {
	return !target.After(now)
}
