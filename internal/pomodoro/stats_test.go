package pomodoro

import (
	"context"
	"testing"
	"time"

	"github.com/MrSnakeDoc/tacto/internal/logger"
	"github.com/MrSnakeDoc/tacto/internal/store"
)

func newStats(blob store.Blob, now time.Time) *Stats {
	s := NewStats(blob, Week, logger.NewNop())
	s.now = func() time.Time { return now }
	return s
}

func TestStats_Summary(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	s := newStats(store.NewMemory(), now)
	ctx := context.Background()

	s.AddSession(ctx, now.Add(-time.Hour), now.Add(-35*time.Minute), Completed)
	s.AddSession(ctx, now.Add(-3*time.Hour), now.Add(-170*time.Minute), StoppedEarly)
	s.AddSession(ctx, now.Add(-3*Day), now.Add(-3*Day+25*time.Minute), Completed)

	tests := []struct {
		name string
		sum  Summary
		want Summary
	}{
		{
			name: "24 hours",
			sum:  s.Last24Hours(),
			want: Summary{Window: Day, Total: 35 * time.Minute, Count: 2, Completed: 1, StoppedEarly: 1},
		},
		{
			name: "week",
			sum:  s.LastWeek(),
			want: Summary{Window: Week, Total: 60 * time.Minute, Count: 3, Completed: 2, StoppedEarly: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.sum != tt.want {
				t.Errorf("Summary = %+v, want %+v", tt.sum, tt.want)
			}
		})
	}
}

func TestStats_RetentionOnLoad(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	blob := store.NewMemory()
	ctx := context.Background()

	old := []Session{
		NewSession(now.Add(-8*Day), now.Add(-8*Day+time.Minute), Completed),
		NewSession(now.Add(-time.Hour), now, Completed),
	}
	if err := store.SaveJSON(ctx, blob, store.KeyPomodoroSessions, old); err != nil {
		t.Fatal(err)
	}

	s := newStats(blob, now)
	s.Load(ctx)
	if got := s.Sessions(); len(got) != 1 || got[0].ID != old[1].ID {
		t.Fatalf("Sessions() = %v, want only the recent one", got)
	}

	reloaded := newStats(blob, now)
	reloaded.Load(ctx)
	if len(reloaded.Sessions()) != 1 {
		t.Error("expired session was not removed from the store")
	}
}

func TestStats_LoadCorrupt(t *testing.T) {
	blob := store.NewMemory()
	_ = blob.Save(context.Background(), store.KeyPomodoroSessions, []byte("nope"))

	s := newStats(blob, time.Now())
	s.Load(context.Background())
	if len(s.Sessions()) != 0 {
		t.Error("corrupt document should load as empty")
	}
}

func TestStats_Clear(t *testing.T) {
	blob := store.NewMemory()
	now := time.Now()
	s := newStats(blob, now)
	ctx := context.Background()

	s.AddSession(ctx, now.Add(-time.Minute), now, Completed)
	s.Clear(ctx)

	if len(s.Sessions()) != 0 {
		t.Error("Clear() left sessions behind")
	}
	if _, err := blob.Load(ctx, store.KeyPomodoroSessions); err != store.ErrNotFound {
		t.Errorf("Load() after Clear error = %v, want ErrNotFound", err)
	}
}
