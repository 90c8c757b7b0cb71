package streak

import "time"

// Streak is the current user's running consecutive-day counter. It is the
// only aggregate that cannot be rebuilt from the log history alone, so it is
// persisted after every mutation.
type Streak struct {
	Count       int        `json:"count"`
	Longest     int        `json:"longest"`
	LastLogDate *time.Time `json:"last_log_date"`
}
