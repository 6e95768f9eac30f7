// Package age computes how long an issue has existed.
package age

import "time"

// AgeData returns the time elapsed since createdAt, clamped at zero, and
// whether createdAt was recorded at all.
func AgeData(createdAt time.Time, now time.Time) (time.Duration, bool) {
	if createdAt.IsZero() {
		return 0, false
	}
	if age := now.Sub(createdAt); age > 0 {
		return age, true
	}
	return 0, true
}
