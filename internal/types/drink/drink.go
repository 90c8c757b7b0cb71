package drink

import (
	"fmt"
	"strings"
	"time"
)

// Style vocabulary used by the log submission screen.
const (
	StyleDirty   = "Dirty"
	StyleFilthy  = "Filthy"
	StyleClassic = "Classic"
	StyleDry     = "Dry"
	StyleVesper  = "Vesper"
	StyleGibson  = "Gibson"
)

type Comment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	UserAvatar string    `json:"user_avatar"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
}

// Log is one user's record of one martini at one venue. Author and venue
// fields are denormalized at creation time and never change afterwards.
type Log struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	UserName        string    `json:"user_name"`
	UserAvatar      string    `json:"user_avatar"`
	BarID           string    `json:"bar_id"`
	BarName         string    `json:"bar_name"`
	City            string    `json:"city"`
	Rating          int       `json:"rating"`
	Photo           string    `json:"photo"`
	Notes           string    `json:"notes"`
	Style           string    `json:"style"`
	Timestamp       time.Time `json:"timestamp"`
	Likes           int       `json:"likes"`
	Liked           bool      `json:"liked"`
	Comments        []Comment `json:"comments,omitempty"`
	IsGoldenHourLog bool      `json:"is_golden_hour_log,omitempty"`
}

// Clone returns an independent copy of the log. Comments are the only
// reference data; everything else copies by value.
func (l *Log) Clone() *Log {
	c := *l
	if len(l.Comments) > 0 {
		c.Comments = append([]Comment(nil), l.Comments...)
	}
	return &c
}

type LogInput struct {
	BarID   string `json:"bar_id"`
	BarName string `json:"bar_name"`
	City    string `json:"city"`
	Rating  int    `json:"rating"`
	Photo   string `json:"photo"`
	Notes   string `json:"notes"`
	Style   string `json:"style"`
	Likes   int    `json:"likes"`
}

// Validate enforces the submission requirements: a rating between 1 and 5,
// a venue name and a style.
func (in *LogInput) Validate() error {
	if in.Rating < 1 || in.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", in.Rating)
	}
	if strings.TrimSpace(in.BarName) == "" {
		return fmt.Errorf("bar name is required")
	}
	if strings.TrimSpace(in.Style) == "" {
		return fmt.Errorf("style is required")
	}
	return nil
}

// CurrentUser is the signed-in user the app logs drinks as.
type CurrentUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	City     string `json:"city"`
}

// Profile is the summary recomputed from the current user's own logs.
type Profile struct {
	TotalMartinis int     `json:"total_martinis"`
	AverageRating float64 `json:"average_rating"`
	BarsVisited   int     `json:"bars_visited"`
}
