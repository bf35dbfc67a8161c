package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/tacto/internal/index"
	"github.com/MrSnakeDoc/tacto/internal/logger"
)

const (
	// DefaultGCThreshold is how long a disabled catalog entry survives.
	DefaultGCThreshold = 30 * 24 * time.Hour
)

// SweepTask is an extra retention pass run on every sweep. Run returns how
// many items it removed.
type SweepTask struct {
	Name string
	Run  func(ctx context.Context) int
}

// Sweeper deletes catalog entries that have been disabled for longer than the
// threshold and runs the retention passes of the other stores.
type Sweeper struct {
	job
	index     *index.MemoryIndex
	syncer    *CatalogSyncer
	tasks     []SweepTask
	logger    logger.Logger
	threshold time.Duration
	now       func() time.Time
}

func NewSweeper(
	idx *index.MemoryIndex,
	syncer *CatalogSyncer,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
	tasks ...SweepTask,
) *Sweeper {
	if threshold == 0 {
		threshold = DefaultGCThreshold
	}
	return &Sweeper{
		job:       newJob("sweep", interval, nil, log),
		index:     idx,
		syncer:    syncer,
		tasks:     tasks,
		logger:    log,
		threshold: threshold,
		now:       time.Now,
	}
}

// Start sweeps once, then periodically.
func (s *Sweeper) Start(ctx context.Context) {
	if err := s.Collect(ctx); err != nil {
		s.logger.Warn("initial sweep failed", logger.Error(err))
	}
	s.run(ctx, s.Collect)
}

func (s *Sweeper) Stop() { s.stop() }

// Collect runs one sweep.
func (s *Sweeper) Collect(ctx context.Context) error {
	s.logger.Debug("running sweep")
	now := s.now()

	apps := s.collectApps(now)
	bookmarks := s.collectBookmarks(now)

	if apps > 0 && s.syncer != nil {
		if err := s.syncer.Save(ctx); err != nil {
			s.logger.Warn("failed to save app catalog after sweep", logger.Error(err))
		}
	}

	total := apps + bookmarks
	for _, t := range s.tasks {
		n := t.Run(ctx)
		if n > 0 {
			s.logger.Info("retention pass removed items",
				logger.String("task", t.Name),
				logger.Int("removed", n))
		}
		total += n
	}

	if total > 0 {
		s.logger.Info("sweep completed",
			logger.Int("apps_deleted", apps),
			logger.Int("bookmarks_deleted", bookmarks),
			logger.Int("total_deleted", total))
	} else {
		s.logger.Debug("nothing to sweep")
	}
	return nil
}

func (s *Sweeper) collectApps(now time.Time) int {
	deleted := 0
	for _, app := range s.index.Snapshot() {
		if !app.Disabled || app.UpdatedAt.IsZero() {
			continue
		}
		gone := now.Sub(app.UpdatedAt)
		if gone < s.threshold {
			continue
		}
		s.index.DeleteApp(app.ID)
		s.logger.Info("garbage collected disabled app",
			logger.String("app_id", app.ID),
			logger.Duration("disabled_for", gone))
		deleted++
	}
	return deleted
}

func (s *Sweeper) collectBookmarks(now time.Time) int {
	deleted := 0
	for _, b := range s.index.GetAllBookmarks() {
		if !b.Disabled || b.UpdatedAt.IsZero() {
			continue
		}
		gone := now.Sub(b.UpdatedAt)
		if gone < s.threshold {
			continue
		}
		s.index.DeleteBookmark(b.ID)
		s.logger.Info("garbage collected disabled bookmark",
			logger.String("bookmark_id", b.ID),
			logger.String("abbr", b.Abbr),
			logger.Duration("disabled_for", gone))
		deleted++
	}
	return deleted
}
