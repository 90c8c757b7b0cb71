package services

import (
	"context"
	"log"
	"time"
)

// Golden hour is a fixed daily window, local time.
const (
	goldenHourStart = 17
	goldenHourEnd   = 18
)

type GoldenHourStatus struct {
	Active           bool `json:"active"`
	CountdownSeconds int  `json:"countdown_seconds"`
}

// GoldenHourService detects the daily bonus window and computes the
// countdown to the next transition. The clock function is injectable so
// tests can pin the time.
type GoldenHourService struct {
	now func() time.Time
}

func NewGoldenHourService(now func() time.Time) *GoldenHourService {
	if now == nil {
		now = time.Now
	}
	return &GoldenHourService{now: now}
}

// IsGoldenHourAt reports whether t falls inside the [17:00, 18:00) window.
func (s *GoldenHourService) IsGoldenHourAt(t time.Time) bool {
	return t.Hour() >= goldenHourStart && t.Hour() < goldenHourEnd
}

// Status returns the current window state and the countdown: seconds until
// the window closes while active, otherwise seconds until the next window
// opens (rolling to tomorrow once today's window has passed).
func (s *GoldenHourService) Status() GoldenHourStatus {
	now := s.now()

	if s.IsGoldenHourAt(now) {
		end := time.Date(now.Year(), now.Month(), now.Day(), goldenHourEnd, 0, 0, 0, now.Location())
		return GoldenHourStatus{
			Active:           true,
			CountdownSeconds: int(end.Sub(now).Seconds()),
		}
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), goldenHourStart, 0, 0, 0, now.Location())
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return GoldenHourStatus{
		Active:           false,
		CountdownSeconds: int(next.Sub(now).Seconds()),
	}
}

// Start runs the once-per-second observer that keeps the golden hour gauge
// current while the server is up. The ticker stops when ctx is cancelled.
func (s *GoldenHourService) Start(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("Golden hour clock stopped")
				return
			case <-ticker.C:
				if s.IsGoldenHourAt(s.now()) {
					goldenHourActive.Set(1)
				} else {
					goldenHourActive.Set(0)
				}
			}
		}
	}()
}
