package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"dirtyFeedAPI/internal/types/drink"
	"dirtyFeedAPI/services"

	"github.com/gorilla/mux"
)

// stubStore keeps persisted aggregates in memory so the handlers can be
// exercised without a database.
type stubStore struct {
	mu      sync.Mutex
	records map[string][]byte
}

func newStubStore() *stubStore {
	return &stubStore{records: make(map[string][]byte)}
}

func (s *stubStore) Load(ctx context.Context, key string, dest any) (bool, error) {
	s.mu.Lock()
	raw, ok := s.records[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (s *stubStore) Save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.records[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *stubStore) Invalidate(keys ...string) {}

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	feedService := services.NewFeedService(
		newStubStore(),
		services.NewBadgeService(nil),
		services.NewGoldenHourService(nil),
		drink.CurrentUser{ID: "u1", Name: "Test User", Avatar: "https://example.com/u1.jpg"},
	)

	feedHandler := NewFeedHandler(feedService)
	gamificationHandler := NewGamificationHandler(feedService)

	r := mux.NewRouter()
	r.HandleFunc("/feed", feedHandler.GetFeed).Methods("GET")
	r.HandleFunc("/feed/log", feedHandler.AddLog).Methods("POST")
	r.HandleFunc("/feed/log/{id}", feedHandler.DeleteLog).Methods("DELETE")
	r.HandleFunc("/feed/log/{id}/like", feedHandler.ToggleLike).Methods("POST")
	r.HandleFunc("/feed/log/{id}/comment", feedHandler.AddComment).Methods("POST")
	r.HandleFunc("/user/streak", gamificationHandler.GetStreak).Methods("GET")
	r.HandleFunc("/user/badges", gamificationHandler.GetBadges).Methods("GET")
	return r
}

func doJSON(t *testing.T, r *mux.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestAddLogEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, "POST", "/feed/log", drink.LogInput{
		BarName: "Bar A",
		City:    "New York",
		Rating:  5,
		Style:   drink.StyleDirty,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		NewlyEarned []struct {
			ID string `json:"id"`
		} `json:"newly_earned_badges"`
		Streak struct {
			Count int `json:"count"`
		} `json:"streak"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Streak.Count != 1 {
		t.Errorf("streak count = %d, want 1", resp.Streak.Count)
	}
	found := false
	for _, b := range resp.NewlyEarned {
		if b.ID == "first_martini" {
			found = true
		}
	}
	if !found {
		t.Error("first log should report the first_martini badge as newly earned")
	}
}

func TestAddLogEndpointRejectsBadInput(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body any
	}{
		{"rating out of range", drink.LogInput{BarName: "Bar A", Rating: 9, Style: drink.StyleDirty}},
		{"missing bar name", drink.LogInput{Rating: 4, Style: drink.StyleDirty}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rr := doJSON(t, router, "POST", "/feed/log", tt.body); rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rr.Code)
			}
		})
	}

	// Malformed JSON never reaches the service.
	req := httptest.NewRequest("POST", "/feed/log", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status for malformed body = %d, want 400", rr.Code)
	}
}

func TestFeedRoundTripThroughHTTP(t *testing.T) {
	router := newTestRouter(t)

	if rr := doJSON(t, router, "POST", "/feed/log", drink.LogInput{
		BarName: "Bar A", Rating: 4, Style: drink.StyleClassic,
	}); rr.Code != http.StatusCreated {
		t.Fatalf("add failed with status %d", rr.Code)
	}

	rr := doJSON(t, router, "GET", "/feed", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var feed []drink.Log
	if err := json.Unmarshal(rr.Body.Bytes(), &feed); err != nil {
		t.Fatalf("invalid feed body: %v", err)
	}
	if len(feed) != 1 || feed[0].BarName != "Bar A" {
		t.Fatalf("feed = %+v, want the single added log", feed)
	}

	if rr := doJSON(t, router, "DELETE", "/feed/log/"+feed[0].ID, nil); rr.Code != http.StatusOK {
		t.Fatalf("delete failed with status %d", rr.Code)
	}
	rr = doJSON(t, router, "GET", "/feed", nil)
	feed = nil
	if err := json.Unmarshal(rr.Body.Bytes(), &feed); err != nil {
		t.Fatal(err)
	}
	if len(feed) != 0 {
		t.Errorf("feed after delete = %+v, want empty", feed)
	}
}

func TestDeleteUnknownLogIsOK(t *testing.T) {
	router := newTestRouter(t)

	if rr := doJSON(t, router, "DELETE", "/feed/log/no-such-id", nil); rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for unknown id", rr.Code)
	}
}

func TestAddCommentEndpoint(t *testing.T) {
	router := newTestRouter(t)

	if rr := doJSON(t, router, "POST", "/feed/log", drink.LogInput{
		BarName: "Bar A", Rating: 4, Style: drink.StyleDry,
	}); rr.Code != http.StatusCreated {
		t.Fatal("setup add failed")
	}
	var feed []drink.Log
	rr := doJSON(t, router, "GET", "/feed", nil)
	if err := json.Unmarshal(rr.Body.Bytes(), &feed); err != nil {
		t.Fatal(err)
	}
	id := feed[0].ID

	if rr := doJSON(t, router, "POST", "/feed/log/"+id+"/comment", map[string]string{"text": "   "}); rr.Code != http.StatusBadRequest {
		t.Errorf("blank comment status = %d, want 400", rr.Code)
	}
	if rr := doJSON(t, router, "POST", "/feed/log/"+id+"/comment", map[string]string{"text": "lovely"}); rr.Code != http.StatusOK {
		t.Errorf("comment status = %d, want 200", rr.Code)
	}
}

func TestGamificationEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, "GET", "/user/streak", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("streak status = %d, want 200", rr.Code)
	}

	rr = doJSON(t, router, "GET", "/user/badges", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("badges status = %d, want 200", rr.Code)
	}
	var badges []struct {
		ID     string `json:"id"`
		Earned bool   `json:"earned"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &badges); err != nil {
		t.Fatal(err)
	}
	if len(badges) != 10 {
		t.Errorf("badge catalog size = %d, want 10", len(badges))
	}
	for _, b := range badges {
		if b.Earned {
			t.Errorf("%s earned with no logs", b.ID)
		}
	}
}
