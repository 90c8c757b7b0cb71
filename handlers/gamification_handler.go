package handlers

import (
	"net/http"

	"dirtyFeedAPI/services"

	"github.com/gorilla/mux"
)

type GamificationHandler struct {
	feedService *services.FeedService
}

func NewGamificationHandler(feedService *services.FeedService) *GamificationHandler {
	return &GamificationHandler{
		feedService: feedService,
	}
}

func (h *GamificationHandler) GetBadges(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.feedService.Badges())
}

func (h *GamificationHandler) GetNewBadges(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.feedService.NewlyEarnedBadges())
}

func (h *GamificationHandler) ClearNewBadges(w http.ResponseWriter, r *http.Request) {
	h.feedService.ClearNewBadges()
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Celebration queue cleared"})
}

func (h *GamificationHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.feedService.Streak())
}

func (h *GamificationHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{
		"user":    h.feedService.CurrentUser(),
		"profile": h.feedService.Profile(),
	})
}

func (h *GamificationHandler) GetLeaderboards(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.feedService.Leaderboards())
}

func (h *GamificationHandler) GetTitles(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.feedService.Titles())
}

func (h *GamificationHandler) GetMayorships(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.feedService.Mayorships())
}

func (h *GamificationHandler) GetMayorProgress(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.feedService.MayorProgressFor(mux.Vars(r)["barId"]))
}

func (h *GamificationHandler) GetActiveBars(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.feedService.ActiveBars())
}

func (h *GamificationHandler) GetGoldenHour(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.feedService.GoldenHour())
}
