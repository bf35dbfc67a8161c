package pomodoro

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MrSnakeDoc/tacto/internal/logger"
	"github.com/MrSnakeDoc/tacto/internal/store"
)

const (
	Day  = 24 * time.Hour
	Week = 7 * Day

	saveTimeout = 5 * time.Second
)

// Summary aggregates the sessions started inside a window.
type Summary struct {
	Window       time.Duration `json:"window"`
	Total        time.Duration `json:"total"`
	Count        int           `json:"count"`
	Completed    int           `json:"completed"`
	StoppedEarly int           `json:"stoppedEarly"`
}

// Stats is the session log. Every mutation is written through to the blob store.
type Stats struct {
	mu        sync.RWMutex
	sessions  []Session
	blob      store.Blob
	retention time.Duration
	log       logger.Logger
	now       func() time.Time
}

func NewStats(blob store.Blob, retention time.Duration, log logger.Logger) *Stats {
	if retention <= 0 {
		retention = Week
	}
	return &Stats{blob: blob, retention: retention, log: log, now: time.Now}
}

// Load restores saved sessions and drops those past the retention.
// A missing or unreadable document starts an empty log.
func (s *Stats) Load(ctx context.Context) {
	var sessions []Session
	err := store.LoadJSON(ctx, s.blob, store.KeyPomodoroSessions, &sessions)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.log.Debug("no saved pomodoro sessions")
	case err != nil:
		s.log.Warn("discarding unreadable pomodoro sessions", logger.Error(err))
		sessions = nil
	}

	s.mu.Lock()
	s.sessions = sessions
	s.mu.Unlock()

	removed := s.Cleanup(ctx)
	s.log.Info("pomodoro sessions loaded",
		logger.Int("sessions", len(sessions)-removed),
		logger.Int("expired", removed),
	)
}

// AddSession records a run and persists the log.
func (s *Stats) AddSession(ctx context.Context, start, end time.Time, result Result) Session {
	sess := NewSession(start, end, result)

	s.mu.Lock()
	s.sessions = append(s.sessions, sess)
	s.dropExpiredLocked()
	s.mu.Unlock()

	s.save(ctx)
	return sess
}

// Cleanup drops sessions that started before the retention window.
func (s *Stats) Cleanup(ctx context.Context) int {
	s.mu.Lock()
	removed := s.dropExpiredLocked()
	s.mu.Unlock()

	s.save(ctx)
	return removed
}

// Clear forgets every session and deletes the saved log.
func (s *Stats) Clear(ctx context.Context) {
	s.mu.Lock()
	s.sessions = nil
	s.mu.Unlock()

	if err := s.blob.Delete(ctx, store.KeyPomodoroSessions); err != nil {
		s.log.Warn("failed to delete pomodoro sessions", logger.Error(err))
	}
}

// Sessions returns a copy of the log in insertion order.
func (s *Stats) Sessions() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Session(nil), s.sessions...)
}

// Summary covers sessions that started within window of now.
func (s *Stats) Summary(window time.Duration) Summary {
	since := s.now().Add(-window)
	sum := Summary{Window: window}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.sessions {
		if sess.StartDate.Before(since) {
			continue
		}
		sum.Count++
		sum.Total += sess.Duration
		switch sess.Result {
		case Completed:
			sum.Completed++
		case StoppedEarly:
			sum.StoppedEarly++
		}
	}
	return sum
}

func (s *Stats) Last24Hours() Summary { return s.Summary(Day) }

func (s *Stats) LastWeek() Summary { return s.Summary(Week) }

func (s *Stats) dropExpiredLocked() int {
	cutoff := s.now().Add(-s.retention)
	kept := s.sessions[:0]
	for _, sess := range s.sessions {
		if !sess.StartDate.Before(cutoff) {
			kept = append(kept, sess)
		}
	}
	removed := len(s.sessions) - len(kept)
	s.sessions = kept
	return removed
}

func (s *Stats) save(ctx context.Context) {
	sessions := s.Sessions()
	if sessions == nil {
		sessions = []Session{}
	}

	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()
	if err := store.SaveJSON(ctx, s.blob, store.KeyPomodoroSessions, sessions); err != nil {
		s.log.Warn("failed to save pomodoro sessions", logger.Error(err))
	}
}
