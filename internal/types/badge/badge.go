package badge

import "time"

// Badge is a catalog definition paired with the state computed from the
// current log history. Earned and progress are always recomputed in full;
// only the earned date survives between evaluations while a badge stays
// earned.
type Badge struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Requirement string     `json:"requirement"`
	Earned      bool       `json:"earned"`
	EarnedDate  *time.Time `json:"earned_date,omitempty"`
	Progress    int        `json:"progress"`
	ProgressMax int        `json:"progress_max"`
}

// Catalog ids.
const (
	FirstMartini     = "first_martini"
	StirredNotShaken = "stirred_not_shaken"
	DirtyDozen       = "dirty_dozen"
	OliveBranch      = "olive_branch"
	Connoisseur      = "connoisseur"
	NightOwl         = "night_owl"
	GlobeTrotter     = "globe_trotter"
	TopShelf         = "top_shelf"
	GoldenHour       = "golden_hour"
	FilthyRich       = "filthy_rich"
)
