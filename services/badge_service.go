package services

import (
	"sync"
	"time"

	"dirtyFeedAPI/internal/types/badge"
	"dirtyFeedAPI/internal/types/drink"
)

type badgeDefinition struct {
	id          string
	name        string
	description string
	icon        string
	requirement string
}

// The fixed badge catalog, in display order.
var badgeCatalog = []badgeDefinition{
	{badge.FirstMartini, "First Martini", "Log your first martini", "🍸", "Log 1 martini"},
	{badge.StirredNotShaken, "Stirred, Not Shaken", "Log martinis at 5 different bars", "🥄", "Visit 5 bars"},
	{badge.DirtyDozen, "Dirty Dozen", "Log 12 martinis", "🫒", "Log 12 martinis"},
	{badge.OliveBranch, "Olive Branch", "Rate a martini 5 olives", "🌿", "Give a 5-olive rating"},
	{badge.Connoisseur, "Connoisseur", "Average 4+ olives across 5 or more logs", "🎩", "5 logs with 4.0 average"},
	{badge.NightOwl, "Night Owl", "Log a martini between midnight and 5am", "🦉", "Log after midnight"},
	{badge.GlobeTrotter, "Globe Trotter", "Log martinis in 3 different cities", "🌍", "Visit 3 cities"},
	{badge.TopShelf, "Top Shelf", "Log 50 martinis", "🏆", "Log 50 martinis"},
	{badge.GoldenHour, "Golden Hour", "Log a martini during golden hour", "✨", "Log between 5 and 6pm"},
	{badge.FilthyRich, "Filthy Rich", "Log 5 Filthy martinis", "💰", "Log 5 Filthy martinis"},
}

// BadgeService evaluates the fixed catalog against a log history. Earned and
// progress are recomputed in full on every call; the service only remembers
// when each badge was first earned so the date survives re-evaluation, and
// forgets it again if deletions un-earn the badge.
type BadgeService struct {
	mu          sync.Mutex
	earnedDates map[string]time.Time
	now         func() time.Time
}

func NewBadgeService(now func() time.Time) *BadgeService {
	if now == nil {
		now = time.Now
	}
	return &BadgeService{
		earnedDates: make(map[string]time.Time),
		now:         now,
	}
}

// Evaluate maps the full log history to the badge catalog's earned/progress
// states.
func (s *BadgeService) Evaluate(logs []*drink.Log) []*badge.Badge {
	total := len(logs)
	bars := make(map[string]struct{})
	cities := make(map[string]struct{})
	filthyCount := 0
	hasRated5 := false
	hasNightLog := false
	hasGoldenLog := false
	ratingSum := 0

	for _, l := range logs {
		bars[l.BarID] = struct{}{}
		cities[l.City] = struct{}{}
		ratingSum += l.Rating
		if l.Rating == 5 {
			hasRated5 = true
		}
		if h := l.Timestamp.Hour(); h >= 0 && h < 5 {
			hasNightLog = true
		}
		if l.IsGoldenHourLog {
			hasGoldenLog = true
		}
		if l.Style == drink.StyleFilthy {
			filthyCount++
		}
	}

	avgRating := 0.0
	if total > 0 {
		avgRating = float64(ratingSum) / float64(total)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	badges := make([]*badge.Badge, 0, len(badgeCatalog))
	for _, def := range badgeCatalog {
		b := &badge.Badge{
			ID:          def.id,
			Name:        def.name,
			Description: def.description,
			Icon:        def.icon,
			Requirement: def.requirement,
		}

		switch def.id {
		case badge.FirstMartini:
			countProgress(b, total, 1)
		case badge.StirredNotShaken:
			countProgress(b, len(bars), 5)
		case badge.DirtyDozen:
			countProgress(b, total, 12)
		case badge.OliveBranch:
			boolProgress(b, hasRated5)
		case badge.Connoisseur:
			if total < 5 {
				countProgress(b, total, 5)
			} else {
				boolProgress(b, avgRating >= 4)
			}
		case badge.NightOwl:
			boolProgress(b, hasNightLog)
		case badge.GlobeTrotter:
			countProgress(b, len(cities), 3)
		case badge.TopShelf:
			countProgress(b, total, 50)
		case badge.GoldenHour:
			boolProgress(b, hasGoldenLog)
		case badge.FilthyRich:
			countProgress(b, filthyCount, 5)
		}

		if b.Earned {
			when, ok := s.earnedDates[def.id]
			if !ok {
				when = s.now()
				s.earnedDates[def.id] = when
			}
			d := when
			b.EarnedDate = &d
		} else {
			delete(s.earnedDates, def.id)
		}

		badges = append(badges, b)
	}

	return badges
}

func countProgress(b *badge.Badge, metric, threshold int) {
	b.Earned = metric >= threshold
	b.Progress = min(metric, threshold)
	b.ProgressMax = threshold
}

func boolProgress(b *badge.Badge, met bool) {
	b.Earned = met
	b.ProgressMax = 1
	if met {
		b.Progress = 1
	}
}

// EarnedIDs reduces an evaluation to the set of earned badge ids, used by
// the feed service to diff evaluations for the celebration overlay.
func EarnedIDs(badges []*badge.Badge) map[string]bool {
	ids := make(map[string]bool, len(badges))
	for _, b := range badges {
		if b.Earned {
			ids[b.ID] = true
		}
	}
	return ids
}
