package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/tacto/internal/domain"
	"github.com/MrSnakeDoc/tacto/internal/index"
	"github.com/MrSnakeDoc/tacto/internal/logger"
	"github.com/MrSnakeDoc/tacto/internal/sources/bookmarks"
)

// BookmarkReloader keeps the index in step with the bookmark file.
type BookmarkReloader struct {
	job
	loader *bookmarks.Loader
	index  *index.MemoryIndex
	logger logger.Logger
}

func NewBookmarkReloader(
	bookmarkFile string,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger <-chan struct{},
) *BookmarkReloader {
	return &BookmarkReloader{
		job:    newJob("bookmark reload", interval, manualTrigger, log),
		loader: bookmarks.NewLoader(bookmarkFile),
		index:  idx,
		logger: log,
	}
}

// Start loads once, then keeps reloading in the background.
func (br *BookmarkReloader) Start(ctx context.Context) error {
	err := br.Reload(ctx)
	br.run(ctx, br.Reload)
	if err != nil {
		return fmt.Errorf("initial bookmark reload failed: %w", err)
	}
	return nil
}

func (br *BookmarkReloader) Stop() { br.stop() }

// Reload reads the file and replaces the bookmark set. Bookmarks no longer in
// the file are kept disabled until the sweeper collects them.
func (br *BookmarkReloader) Reload(_ context.Context) error {
	br.logger.Info("reloading bookmarks", logger.String("file", br.loader.Path()))

	f, err := br.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load bookmarks: %w", err)
	}
	now := time.Now()
	fresh, err := bookmarks.Map(f, now)
	if err != nil {
		return fmt.Errorf("failed to map bookmarks: %w", err)
	}

	ids := make(map[string]bool, len(fresh))
	for _, b := range fresh {
		ids[b.ID] = true
		if prev, ok := br.index.GetBookmark(b.ID); ok && !prev.Disabled {
			b.CreatedAt = prev.CreatedAt
		}
	}

	var disabled []*domain.Bookmark
	for _, prev := range br.index.GetAllBookmarks() {
		if ids[prev.ID] {
			continue
		}
		b := *prev
		if !b.Disabled {
			b.Disabled = true
			b.UpdatedAt = now
		}
		disabled = append(disabled, &b)
	}

	br.index.UpdateBookmarks(append(fresh, disabled...))
	br.logger.Info("bookmarks reloaded",
		logger.Int("count", len(fresh)),
		logger.Int("disabled", len(disabled)))
	return nil
}
