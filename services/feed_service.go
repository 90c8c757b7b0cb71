package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"dirtyFeedAPI/internal/notification"
	"dirtyFeedAPI/internal/types/badge"
	"dirtyFeedAPI/internal/types/drink"
	"dirtyFeedAPI/internal/types/leaderboard"
	"dirtyFeedAPI/internal/types/mayorship"
	"dirtyFeedAPI/internal/types/streak"
	"dirtyFeedAPI/internal/types/venue"
	"dirtyFeedAPI/utils"

	"github.com/google/uuid"
)

// Extra likes stamped onto a log created during golden hour.
const goldenHourLikeBonus = 2

const persistTimeout = 5 * time.Second

// FeedService owns the in-memory feed state and funnels every mutation.
// The feed collection is authoritative; "my logs" is the slice of it
// authored by the current user. Mutations are synchronous in memory and
// persisted fire-and-forget, so reads always see the latest write even if
// storage lags behind.
type FeedService struct {
	store  StateStore
	badges *BadgeService
	golden *GoldenHourService
	push   notification.PushProvider
	now    func() time.Time

	mu          sync.RWMutex
	feedLogs    []*drink.Log
	currentUser drink.CurrentUser
	streak      streak.Streak
	prevEarned  map[string]bool
	newlyEarned []*badge.Badge
}

func NewFeedService(store StateStore, badges *BadgeService, golden *GoldenHourService, currentUser drink.CurrentUser) *FeedService {
	return &FeedService{
		store:       store,
		badges:      badges,
		golden:      golden,
		now:         time.Now,
		currentUser: currentUser,
		prevEarned:  make(map[string]bool),
	}
}

// SetPushProvider injects the push provider once FCM is up.
func (s *FeedService) SetPushProvider(p notification.PushProvider) {
	s.push = p
}

// AddLog validates and records a new drink, advances the streak, persists,
// and returns the badges newly earned by this addition.
func (s *FeedService) AddLog(ctx context.Context, input *drink.LogInput) ([]*badge.Badge, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("invalid log: %w", err)
	}

	now := s.now()
	l := &drink.Log{
		ID:         uuid.New().String(),
		UserID:     s.currentUser.ID,
		UserName:   s.currentUser.Name,
		UserAvatar: s.currentUser.Avatar,
		BarID:      input.BarID,
		BarName:    strings.TrimSpace(input.BarName),
		City:       input.City,
		Rating:     input.Rating,
		Photo:      input.Photo,
		Notes:      input.Notes,
		Style:      input.Style,
		Timestamp:  now,
		Likes:      input.Likes,
	}
	if l.BarID == "" {
		l.BarID = "bar-" + strings.ToLower(strings.ReplaceAll(l.BarName, " ", "-"))
	}
	if s.golden.IsGoldenHourAt(now) {
		l.IsGoldenHourLog = true
		l.Likes += goldenHourLikeBonus
		goldenHourLogsTotal.Inc()
	}

	s.mu.Lock()
	s.feedLogs = append([]*drink.Log{l}, s.feedLogs...)
	s.streak = AdvanceStreak(s.streak, l.Timestamp)

	evaluated := s.badges.Evaluate(s.myLogsLocked())
	var newly []*badge.Badge
	for _, b := range evaluated {
		if b.Earned && !s.prevEarned[b.ID] {
			newly = append(newly, b)
		}
	}
	s.prevEarned = EarnedIDs(evaluated)
	s.newlyEarned = append(s.newlyEarned, newly...)
	s.mu.Unlock()

	logsCreatedTotal.Inc()
	for _, b := range newly {
		badgesEarnedTotal.WithLabelValues(b.ID).Inc()
	}

	log.Printf("Added martini log %s at %s", l.ID, l.BarName)
	s.persist()
	s.notifyBadges(newly)

	return newly, nil
}

// DeleteLog removes the current user's log with the given id. Unknown ids
// and other users' logs are no-ops.
func (s *FeedService) DeleteLog(ctx context.Context, id string) {
	s.mu.Lock()
	removed := false
	for i, l := range s.feedLogs {
		if l.ID == id && l.UserID == s.currentUser.ID {
			s.feedLogs = append(s.feedLogs[:i], s.feedLogs[i+1:]...)
			removed = true
			break
		}
	}
	if removed {
		// Deletions can un-earn badges; resync the earned set so the next
		// addition diffs against reality.
		s.prevEarned = EarnedIDs(s.badges.Evaluate(s.myLogsLocked()))
	}
	s.mu.Unlock()

	if !removed {
		return
	}

	logsDeletedTotal.Inc()
	log.Printf("Deleted martini log %s", id)
	s.persist()
}

// ToggleLike flips the liked flag and moves the like counter by one in the
// matching direction. Unknown ids are no-ops.
func (s *FeedService) ToggleLike(ctx context.Context, id string) {
	s.mu.Lock()
	found := false
	for _, l := range s.feedLogs {
		if l.ID == id {
			if l.Liked {
				l.Likes--
			} else {
				l.Likes++
			}
			l.Liked = !l.Liked
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.persist()
	}
}

// AddComment appends a comment by the current user. Text must be non-empty
// after trimming. Unknown ids are no-ops.
func (s *FeedService) AddComment(ctx context.Context, id, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("comment text is required")
	}

	s.mu.Lock()
	found := false
	for _, l := range s.feedLogs {
		if l.ID == id {
			l.Comments = append(l.Comments, drink.Comment{
				ID:         uuid.New().String(),
				UserID:     s.currentUser.ID,
				UserName:   s.currentUser.Name,
				UserAvatar: s.currentUser.Avatar,
				Text:       text,
				Timestamp:  s.now(),
			})
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.persist()
	}
	return nil
}

// Refresh invalidates the persisted aggregates and reloads them, seeding
// from the bundled dataset when a record is missing or unreadable.
func (s *FeedService) Refresh(ctx context.Context) error {
	s.store.Invalidate(KeyFeedLogs, KeyMyLogs, KeyStreakState)

	var feedLogs []*drink.Log
	found, err := s.store.Load(ctx, KeyFeedLogs, &feedLogs)
	if err != nil || !found {
		if err != nil {
			log.Printf("Failed to load feed logs, seeding defaults: %v", err)
		}
		feedLogs = utils.SeedFeedLogs()
	}

	var myLogs []*drink.Log
	found, err = s.store.Load(ctx, KeyMyLogs, &myLogs)
	if err != nil || !found {
		if err != nil {
			log.Printf("Failed to load my logs, seeding defaults: %v", err)
		}
		myLogs = utils.SeedMyLogs()
	}

	var st streak.Streak
	found, err = s.store.Load(ctx, KeyStreakState, &st)
	if err != nil || !found {
		if err != nil {
			log.Printf("Failed to load streak state, seeding zero streak: %v", err)
		}
		st = streak.Streak{}
	}

	merged := mergeLogs(feedLogs, myLogs)

	s.mu.Lock()
	s.feedLogs = merged
	s.streak = st
	s.prevEarned = EarnedIDs(s.badges.Evaluate(s.myLogsLocked()))
	s.mu.Unlock()

	log.Println("Feed refreshed")
	return nil
}

// mergeLogs unions the feed-wide and my-logs records by id, newest first.
// The two records hold overlapping copies of the same logical entries; the
// feed copy wins when both exist.
func mergeLogs(feedLogs, myLogs []*drink.Log) []*drink.Log {
	seen := make(map[string]struct{}, len(feedLogs))
	merged := make([]*drink.Log, 0, len(feedLogs)+len(myLogs))
	for _, l := range feedLogs {
		seen[l.ID] = struct{}{}
		merged = append(merged, l)
	}
	for _, l := range myLogs {
		if _, ok := seen[l.ID]; !ok {
			merged = append(merged, l)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	return merged
}

// persist writes all three aggregates fire-and-forget. The aggregates are
// serialized while the lock is still held, so the written value always
// reflects the in-memory state at call time and later in-place mutations
// cannot tear it. A failed write is logged and counted, never surfaced:
// the in-memory state stays authoritative for the session and everything
// but the streak is reconstructible from the log history.
func (s *FeedService) persist() {
	snapshots := make(map[string]json.RawMessage, 3)

	s.mu.RLock()
	for key, value := range map[string]any{
		KeyFeedLogs:    s.feedLogs,
		KeyMyLogs:      s.myLogsLocked(),
		KeyStreakState: s.streak,
	} {
		raw, err := json.Marshal(value)
		if err != nil {
			stateWriteFailures.WithLabelValues(key).Inc()
			log.Printf("Failed to encode %s: %v", key, err)
			continue
		}
		snapshots[key] = raw
	}
	s.mu.RUnlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		for key, raw := range snapshots {
			if err := s.store.Save(ctx, key, raw); err != nil {
				stateWriteFailures.WithLabelValues(key).Inc()
				log.Printf("Failed to persist %s: %v", key, err)
			}
		}
	}()
}

func (s *FeedService) notifyBadges(newly []*badge.Badge) {
	if s.push == nil || len(newly) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		for _, b := range newly {
			err := s.push.SendPush(ctx, "New badge unlocked!", b.Name+": "+b.Description, map[string]string{"badge_id": b.ID})
			if err != nil {
				log.Printf("Failed to push badge notification for %s: %v", b.ID, err)
			}
		}
	}()
}

func (s *FeedService) myLogsLocked() []*drink.Log {
	var mine []*drink.Log
	for _, l := range s.feedLogs {
		if l.UserID == s.currentUser.ID {
			mine = append(mine, l)
		}
	}
	return mine
}

// FeedLogs returns a snapshot of the feed, most recent first. Entries are
// deep copies, so callers can read or marshal them while mutations keep
// landing on the live collection.
func (s *FeedService) FeedLogs() []*drink.Log {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]*drink.Log, len(s.feedLogs))
	for i, l := range s.feedLogs {
		snapshot[i] = l.Clone()
	}
	return snapshot
}

// MyLogs returns deep copies of the current user's logs, most recent first.
func (s *FeedService) MyLogs() []*drink.Log {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var mine []*drink.Log
	for _, l := range s.feedLogs {
		if l.UserID == s.currentUser.ID {
			mine = append(mine, l.Clone())
		}
	}
	return mine
}

func (s *FeedService) Streak() streak.Streak {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.streak
}

func (s *FeedService) CurrentUser() drink.CurrentUser {
	return s.currentUser
}

// Badges evaluates the catalog against the current user's logs.
func (s *FeedService) Badges() []*badge.Badge {
	return s.badges.Evaluate(s.MyLogs())
}

// NewlyEarnedBadges returns the pending celebration queue.
func (s *FeedService) NewlyEarnedBadges() []*badge.Badge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending := make([]*badge.Badge, len(s.newlyEarned))
	copy(pending, s.newlyEarned)
	return pending
}

func (s *FeedService) ClearNewBadges() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newlyEarned = nil
}

// Profile recomputes the current user's summary from their own logs.
func (s *FeedService) Profile() drink.Profile {
	mine := s.MyLogs()

	p := drink.Profile{TotalMartinis: len(mine)}
	if len(mine) == 0 {
		return p
	}

	ratingSum := 0
	bars := make(map[string]struct{})
	for _, l := range mine {
		ratingSum += l.Rating
		bars[l.BarID] = struct{}{}
	}
	p.AverageRating = math.Round(float64(ratingSum)/float64(len(mine))*10) / 10
	p.BarsVisited = len(bars)
	return p
}

// Derived social views, recomputed from the feed snapshot on every call.

func (s *FeedService) Leaderboards() *leaderboard.Leaderboards {
	return ComputeLeaderboards(s.FeedLogs())
}

func (s *FeedService) Titles() map[string][]string {
	return UserTitles(s.Leaderboards())
}

func (s *FeedService) Mayorships() map[string]*mayorship.Mayorship {
	return ComputeMayorships(s.FeedLogs())
}

func (s *FeedService) MayorProgressFor(barID string) mayorship.Progress {
	return MayorProgress(s.FeedLogs(), barID, s.currentUser.ID)
}

func (s *FeedService) ActiveBars() []*venue.BarActivity {
	return ActiveBars(s.FeedLogs())
}

func (s *FeedService) GoldenHour() GoldenHourStatus {
	return s.golden.Status()
}
