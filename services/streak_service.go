package services

import (
	"time"

	"dirtyFeedAPI/internal/types/streak"
)

// Streak day-window thresholds, in hours. Two logs less than a day apart
// belong to the same streak day; between one and two days apart they extend
// the streak; beyond two days the streak is broken.
const (
	streakSameDayHours = 24
	streakBreakHours   = 48
)

// AdvanceStreak applies one new log timestamp to the running streak. The
// comparison is between the stored last-log timestamp and the new log's own
// timestamp, never the wall clock, so replayed history produces the same
// streak.
func AdvanceStreak(s streak.Streak, logTime time.Time) streak.Streak {
	switch {
	case s.LastLogDate == nil:
		s.Count = 1
	default:
		elapsed := logTime.Sub(*s.LastLogDate).Hours()
		switch {
		case elapsed < streakSameDayHours:
			// same day-window, count unchanged
		case elapsed <= streakBreakHours:
			s.Count++
		default:
			s.Count = 1
		}
	}

	if s.Count > s.Longest {
		s.Longest = s.Count
	}
	t := logTime
	s.LastLogDate = &t
	return s
}
