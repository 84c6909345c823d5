package access

import "time"

// Schedule is an optional per-user access window. A nil *Schedule means
// the user is always active; a bound left nil is open on that side.
// Granularity is whole days only.
type Schedule struct {
	Start *time.Time `json:"start_date"`
	End   *time.Time `json:"end_date"`
}

// IsZero reports whether both bounds are unset. Such a schedule is
// equivalent to no schedule at all and the store normalizes it away on
// write.
func (s *Schedule) IsZero() bool {
	return s == nil || (s.Start == nil && s.End == nil)
}

// ActiveOn evaluates the window against a single date, time of day
// ignored. Never cached: the answer flips at midnight.
func (s *Schedule) ActiveOn(today time.Time) bool {
	if s == nil {
		return true
	}
	day := dateOnly(today)
	if s.Start != nil && day.Before(dateOnly(*s.Start)) {
		return false
	}
	if s.End != nil && day.After(dateOnly(*s.End)) {
		return false
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
