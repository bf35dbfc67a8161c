package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/MrSnakeDoc/tacto/internal/domain"
	"github.com/MrSnakeDoc/tacto/internal/index"
	"github.com/MrSnakeDoc/tacto/internal/logger"
	"github.com/MrSnakeDoc/tacto/internal/store"
)

func TestSweeper_Collect(t *testing.T) {
	memIndex := index.NewMemoryIndex()
	now := time.Now()

	memIndex.UpdateApps([]*domain.App{
		{ID: "/A/Active.app", Path: "/A/Active.app", Name: "Active", UpdatedAt: now},
		{ID: "/A/Recent.app", Path: "/A/Recent.app", Name: "Recent", Disabled: true, UpdatedAt: now.Add(-10 * 24 * time.Hour)},
		{ID: "/A/Old.app", Path: "/A/Old.app", Name: "Old", Disabled: true, UpdatedAt: now.Add(-35 * 24 * time.Hour)},
		{ID: "/A/Unknown.app", Path: "/A/Unknown.app", Name: "Unknown", Disabled: true},
	})
	memIndex.UpdateBookmarks([]*domain.Bookmark{
		{ID: "keep", Abbr: "gh", UpdatedAt: now},
		{ID: "drop", Abbr: "old", Disabled: true, UpdatedAt: now.Add(-40 * 24 * time.Hour)},
	})

	blob := store.NewMemory()
	ran := 0
	task := SweepTask{Name: "clipboard", Run: func(context.Context) int { ran++; return 2 }}
	sw := NewSweeper(memIndex, NewCatalogSyncer(blob, memIndex, logger.NewNop()), logger.NewNop(), 24*time.Hour, 30*24*time.Hour, task)

	if err := sw.Collect(context.Background()); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if memIndex.Count() != 3 {
		t.Errorf("Count() = %d, want 3", memIndex.Count())
	}
	if _, ok := memIndex.GetApp("/A/Old.app"); ok {
		t.Error("old disabled app was not collected")
	}
	if _, ok := memIndex.GetApp("/A/Unknown.app"); !ok {
		t.Error("disabled app without timestamp must be kept")
	}
	if _, ok := memIndex.GetBookmark("drop"); ok {
		t.Error("old disabled bookmark was not collected")
	}
	if memIndex.BookmarkCount() != 1 {
		t.Errorf("BookmarkCount() = %d, want 1", memIndex.BookmarkCount())
	}
	if ran != 1 {
		t.Errorf("sweep task ran %d times, want 1", ran)
	}
	if blob.Saves() != 1 {
		t.Errorf("Saves() = %d, want the catalog saved after deletions", blob.Saves())
	}
}
