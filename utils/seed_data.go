package utils

import (
	"time"

	"dirtyFeedAPI/internal/types/drink"
)

// Bundled default dataset, used whenever a persisted record is missing or
// unreadable. Mirrors the demo content the app ships with.

func SeedCurrentUser() drink.CurrentUser {
	return drink.CurrentUser{
		ID:       "u1",
		Name:     "Sloane Whitmore",
		Username: "sloanedirty",
		Avatar:   "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=200",
		City:     "New York",
	}
}

func SeedFeedLogs() []*drink.Log {
	return []*drink.Log{
		{
			ID:         "log-7",
			UserID:     "u2",
			UserName:   "Marcus Vale",
			UserAvatar: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=200",
			BarID:      "bar-velvet",
			BarName:    "The Velvet Olive",
			City:       "New York",
			Rating:     5,
			Photo:      "https://images.unsplash.com/photo-1575023782549-62ca0d244b39?w=600",
			Notes:      "Filthy as it gets. Brine-forward, ice cold.",
			Style:      drink.StyleFilthy,
			Timestamp:  time.Date(2026, time.August, 28, 21, 15, 0, 0, time.Local),
			Likes:      24,
		},
		{
			ID:              "log-6",
			UserID:          "u1",
			UserName:        "Sloane Whitmore",
			UserAvatar:      "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=200",
			BarID:           "bar-gilded",
			BarName:         "Gilded Hour",
			City:            "New York",
			Rating:          4,
			Photo:           "https://images.unsplash.com/photo-1551024709-8f23befc6f87?w=600",
			Notes:           "Blue cheese olives. Decadent.",
			Style:           drink.StyleDirty,
			Timestamp:       time.Date(2026, time.August, 28, 17, 30, 0, 0, time.Local),
			Likes:           18,
			IsGoldenHourLog: true,
		},
		{
			ID:         "log-5",
			UserID:     "u3",
			UserName:   "Priya Chandra",
			UserAvatar: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=200",
			BarID:      "bar-velvet",
			BarName:    "The Velvet Olive",
			City:       "New York",
			Rating:     4,
			Photo:      "https://images.unsplash.com/photo-1560512823-829485b8bf24?w=600",
			Notes:      "Classic, stirred within an inch of its life.",
			Style:      drink.StyleClassic,
			Timestamp:  time.Date(2026, time.August, 27, 22, 5, 0, 0, time.Local),
			Likes:      11,
		},
		{
			ID:         "log-4",
			UserID:     "u2",
			UserName:   "Marcus Vale",
			UserAvatar: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=200",
			BarID:      "bar-harbor",
			BarName:    "Harbor Light",
			City:       "Chicago",
			Rating:     3,
			Photo:      "https://images.unsplash.com/photo-1536935338788-846bb9981813?w=600",
			Notes:      "Too warm, good view though.",
			Style:      drink.StyleDry,
			Timestamp:  time.Date(2026, time.August, 26, 19, 40, 0, 0, time.Local),
			Likes:      7,
		},
		{
			ID:         "log-3",
			UserID:     "u1",
			UserName:   "Sloane Whitmore",
			UserAvatar: "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=200",
			BarID:      "bar-velvet",
			BarName:    "The Velvet Olive",
			City:       "New York",
			Rating:     5,
			Photo:      "https://images.unsplash.com/photo-1514362545857-3bc16c4c7d1b?w=600",
			Notes:      "The house martini. Perfect every time.",
			Style:      drink.StyleDirty,
			Timestamp:  time.Date(2026, time.August, 25, 20, 10, 0, 0, time.Local),
			Likes:      31,
			Comments: []drink.Comment{
				{
					ID:         "c1",
					UserID:     "u3",
					UserName:   "Priya Chandra",
					UserAvatar: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=200",
					Text:       "Their olives are unreal",
					Timestamp:  time.Date(2026, time.August, 25, 20, 45, 0, 0, time.Local),
				},
			},
		},
		{
			ID:         "log-2",
			UserID:     "u4",
			UserName:   "Theo Brandt",
			UserAvatar: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=200",
			BarID:      "bar-alpine",
			BarName:    "Alpine Social",
			City:       "Denver",
			Rating:     4,
			Photo:      "https://images.unsplash.com/photo-1541976076758-347942db1970?w=600",
			Notes:      "Gibson with pickled pearl onions.",
			Style:      drink.StyleGibson,
			Timestamp:  time.Date(2026, time.August, 24, 18, 20, 0, 0, time.Local),
			Likes:      9,
		},
		{
			ID:         "log-1",
			UserID:     "u3",
			UserName:   "Priya Chandra",
			UserAvatar: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=200",
			BarID:      "bar-gilded",
			BarName:    "Gilded Hour",
			City:       "New York",
			Rating:     2,
			Photo:      "https://images.unsplash.com/photo-1551538827-9c037cb4f32a?w=600",
			Notes:      "Vesper was mostly vermouth. Disappointing.",
			Style:      drink.StyleVesper,
			Timestamp:  time.Date(2026, time.August, 23, 23, 55, 0, 0, time.Local),
			Likes:      3,
		},
	}
}

// SeedMyLogs is the current user's slice of the bundled feed.
func SeedMyLogs() []*drink.Log {
	me := SeedCurrentUser()
	var mine []*drink.Log
	for _, l := range SeedFeedLogs() {
		if l.UserID == me.ID {
			mine = append(mine, l)
		}
	}
	return mine
}
