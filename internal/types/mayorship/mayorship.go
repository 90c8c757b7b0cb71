package mayorship

// Mayorship is the single most-frequent logger of one bar. Ties go to the
// user encountered first in feed order.
type Mayorship struct {
	BarID      string `json:"bar_id"`
	BarName    string `json:"bar_name"`
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	UserAvatar string `json:"user_avatar"`
	LogCount   int    `json:"log_count"`
}

// Progress describes how close the current user is to taking a bar's
// mayorship.
type Progress struct {
	BarID            string  `json:"bar_id"`
	LeaderCount      int     `json:"leader_count"`
	CurrentUserCount int     `json:"current_user_count"`
	LogsToOvertake   int     `json:"logs_to_overtake"`
	Progress         float64 `json:"progress"`
	IsMayor          bool    `json:"is_mayor"`
}
