package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"dirtyFeedAPI/internal/types/drink"
	"dirtyFeedAPI/services"

	"github.com/gorilla/mux"
)

type FeedHandler struct {
	feedService *services.FeedService
}

func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
	}
}

func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.feedService.FeedLogs())
}

func (h *FeedHandler) GetMyLogs(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.feedService.MyLogs())
}

func (h *FeedHandler) AddLog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input drink.LogInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	newlyEarned, err := h.feedService.AddLog(ctx, &input)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]any{
		"newly_earned_badges": newlyEarned,
		"streak":              h.feedService.Streak(),
	})
}

func (h *FeedHandler) DeleteLog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Deleting an unknown id is a no-op, not an error.
	h.feedService.DeleteLog(ctx, mux.Vars(r)["id"])
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Log deleted"})
}

func (h *FeedHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	h.feedService.ToggleLike(ctx, mux.Vars(r)["id"])
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Like toggled"})
}

type addCommentRequest struct {
	Text string `json:"text"`
}

func (h *FeedHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.feedService.AddComment(ctx, mux.Vars(r)["id"], req.Text); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Comment added"})
}

func (h *FeedHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.feedService.Refresh(ctx); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to refresh feed")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Feed refreshed"})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
