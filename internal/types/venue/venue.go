package venue

import "time"

// BarActivity is the map screen's view of a bar that appears in the feed:
// how many logs it has and when it was last logged at.
type BarActivity struct {
	BarID        string    `json:"bar_id"`
	BarName      string    `json:"bar_name"`
	City         string    `json:"city"`
	LogCount     int       `json:"log_count"`
	LastLoggedAt time.Time `json:"last_logged_at"`
}
