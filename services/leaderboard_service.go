package services

import (
	"math"
	"sort"

	"dirtyFeedAPI/internal/types/drink"
	"dirtyFeedAPI/internal/types/leaderboard"
	"dirtyFeedAPI/internal/types/mayorship"
	"dirtyFeedAPI/internal/types/venue"
)

// mayorProgressCap keeps the progress bar visibly short of full while the
// user is not yet the leader.
const mayorProgressCap = 0.95

type userAggregate struct {
	userID     string
	userName   string
	userAvatar string
	logCount   int
	ratingSum  int
	bars       map[string]struct{}
}

// collectUserAggregates groups the feed by author, preserving
// first-encounter order so ties later resolve to the user seen first.
func collectUserAggregates(logs []*drink.Log) []*userAggregate {
	byUser := make(map[string]*userAggregate)
	var order []*userAggregate

	for _, l := range logs {
		agg, ok := byUser[l.UserID]
		if !ok {
			agg = &userAggregate{
				userID:     l.UserID,
				userName:   l.UserName,
				userAvatar: l.UserAvatar,
				bars:       make(map[string]struct{}),
			}
			byUser[l.UserID] = agg
			order = append(order, agg)
		}
		agg.logCount++
		agg.ratingSum += l.Rating
		agg.bars[l.BarID] = struct{}{}
	}

	return order
}

// ComputeLeaderboards produces the three ranked views from the full feed.
// Ranks are dense 1..N; the stable sort keeps feed-encounter order as the
// tie-break; only the rank-1 entry carries the category title.
func ComputeLeaderboards(logs []*drink.Log) *leaderboard.Leaderboards {
	aggs := collectUserAggregates(logs)

	mostPoured := rankEntries(aggs, "martinis", leaderboard.TitleMostPoured, func(a *userAggregate) float64 {
		return float64(a.logCount)
	})
	connoisseur := rankEntries(aggs, "avg rating", leaderboard.TitleCityConnoisseur, func(a *userAggregate) float64 {
		if a.logCount == 0 {
			return 0
		}
		return math.Round(float64(a.ratingSum)/float64(a.logCount)*10) / 10
	})
	barHopper := rankEntries(aggs, "bars", leaderboard.TitleBarHopper, func(a *userAggregate) float64 {
		return float64(len(a.bars))
	})

	return &leaderboard.Leaderboards{
		MostPoured:      mostPoured,
		CityConnoisseur: connoisseur,
		BarHopper:       barHopper,
	}
}

func rankEntries(aggs []*userAggregate, label, title string, value func(*userAggregate) float64) []*leaderboard.Entry {
	entries := make([]*leaderboard.Entry, 0, len(aggs))
	for _, a := range aggs {
		entries = append(entries, &leaderboard.Entry{
			UserID:     a.userID,
			UserName:   a.userName,
			UserAvatar: a.userAvatar,
			Value:      value(a),
			Label:      label,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})

	for i, e := range entries {
		e.Rank = i + 1
	}
	if len(entries) > 0 {
		entries[0].Title = title
	}
	return entries
}

// UserTitles inverts the leaderboards into user -> titles held.
func UserTitles(lbs *leaderboard.Leaderboards) map[string][]string {
	titles := make(map[string][]string)
	for _, category := range [][]*leaderboard.Entry{lbs.MostPoured, lbs.CityConnoisseur, lbs.BarHopper} {
		for _, e := range category {
			if e.Title != "" {
				titles[e.UserID] = append(titles[e.UserID], e.Title)
			}
		}
	}
	return titles
}

type barAggregate struct {
	barID   string
	barName string
	city    string

	countsByUser map[string]int
	userOrder    []string
	identity     map[string]*drink.Log
	logCount     int
	lastLogged   *drink.Log
}

func collectBarAggregates(logs []*drink.Log) []*barAggregate {
	byBar := make(map[string]*barAggregate)
	var order []*barAggregate

	for _, l := range logs {
		agg, ok := byBar[l.BarID]
		if !ok {
			agg = &barAggregate{
				barID:        l.BarID,
				barName:      l.BarName,
				city:         l.City,
				countsByUser: make(map[string]int),
				identity:     make(map[string]*drink.Log),
			}
			byBar[l.BarID] = agg
			order = append(order, agg)
		}
		if _, seen := agg.countsByUser[l.UserID]; !seen {
			agg.userOrder = append(agg.userOrder, l.UserID)
			agg.identity[l.UserID] = l
		}
		agg.countsByUser[l.UserID]++
		agg.logCount++
		if agg.lastLogged == nil || l.Timestamp.After(agg.lastLogged.Timestamp) {
			agg.lastLogged = l
		}
	}

	return order
}

// ComputeMayorships resolves, per bar, the author with the most logs there.
// A tie keeps the user first encountered in feed order.
func ComputeMayorships(logs []*drink.Log) map[string]*mayorship.Mayorship {
	mayors := make(map[string]*mayorship.Mayorship)

	for _, bar := range collectBarAggregates(logs) {
		var leaderID string
		leaderCount := 0
		for _, userID := range bar.userOrder {
			if c := bar.countsByUser[userID]; c > leaderCount {
				leaderCount = c
				leaderID = userID
			}
		}
		leader := bar.identity[leaderID]
		mayors[bar.barID] = &mayorship.Mayorship{
			BarID:      bar.barID,
			BarName:    bar.barName,
			UserID:     leader.UserID,
			UserName:   leader.UserName,
			UserAvatar: leader.UserAvatar,
			LogCount:   leaderCount,
		}
	}

	return mayors
}

// MayorProgress reports how far userID is from taking barID's mayorship.
func MayorProgress(logs []*drink.Log, barID, userID string) mayorship.Progress {
	userCount := 0
	for _, l := range logs {
		if l.BarID == barID && l.UserID == userID {
			userCount++
		}
	}

	p := mayorship.Progress{
		BarID:            barID,
		CurrentUserCount: userCount,
	}

	mayor, ok := ComputeMayorships(logs)[barID]
	if !ok {
		return p
	}
	p.LeaderCount = mayor.LogCount
	p.IsMayor = mayor.UserID == userID

	if p.IsMayor {
		p.Progress = 1
		return p
	}

	p.LogsToOvertake = max(0, mayor.LogCount-userCount+1)
	if mayor.LogCount > 0 {
		p.Progress = math.Min(float64(userCount)/float64(mayor.LogCount), mayorProgressCap)
	}
	return p
}

// ActiveBars lists every bar present in the feed with its activity, most
// recently logged first. Feeds the map screen.
func ActiveBars(logs []*drink.Log) []*venue.BarActivity {
	bars := make([]*venue.BarActivity, 0)
	for _, bar := range collectBarAggregates(logs) {
		bars = append(bars, &venue.BarActivity{
			BarID:        bar.barID,
			BarName:      bar.barName,
			City:         bar.city,
			LogCount:     bar.logCount,
			LastLoggedAt: bar.lastLogged.Timestamp,
		})
	}
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].LastLoggedAt.After(bars[j].LastLoggedAt)
	})
	return bars
}
