package access

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestScheduleActiveOn(t *testing.T) {
	today := date(2025, time.June, 15)

	tests := []struct {
		name     string
		schedule *Schedule
		want     bool
	}{
		{"no schedule", nil, true},
		{"both bounds nil", &Schedule{}, true},
		{"inside window", &Schedule{Start: datePtr(2025, time.June, 1), End: datePtr(2025, time.June, 30)}, true},
		{"starts today", &Schedule{Start: datePtr(2025, time.June, 15)}, true},
		{"ends today", &Schedule{End: datePtr(2025, time.June, 15)}, true},
		{"not yet started", &Schedule{Start: datePtr(2025, time.June, 16)}, false},
		{"expired", &Schedule{End: datePtr(2025, time.June, 14)}, false},
		{"open start, future end", &Schedule{End: datePtr(2025, time.July, 1)}, true},
		{"open end, past start", &Schedule{Start: datePtr(2025, time.January, 1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.schedule.ActiveOn(today); got != tt.want {
				t.Errorf("ActiveOn() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScheduleIgnoresTimeOfDay(t *testing.T) {
	s := &Schedule{End: datePtr(2025, time.June, 15)}

	lateOnLastDay := time.Date(2025, time.June, 15, 23, 59, 0, 0, time.UTC)
	if !s.ActiveOn(lateOnLastDay) {
		t.Error("schedule should stay active until the end of the last day")
	}

	nextMorning := time.Date(2025, time.June, 16, 0, 1, 0, 0, time.UTC)
	if s.ActiveOn(nextMorning) {
		t.Error("schedule should expire at midnight after the last day")
	}
}

func TestScheduleIsZero(t *testing.T) {
	if !(*Schedule)(nil).IsZero() {
		t.Error("nil schedule should be zero")
	}
	if !(&Schedule{}).IsZero() {
		t.Error("schedule with both bounds nil should be zero")
	}
	if (&Schedule{Start: datePtr(2025, time.June, 1)}).IsZero() {
		t.Error("schedule with a bound should not be zero")
	}
}
