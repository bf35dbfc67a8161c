package index

import (
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/tacto/internal/domain"
)

func testApps() []*domain.App {
	return []*domain.App{
		{ID: "/Applications/Safari.app", Path: "/Applications/Safari.app", Name: "Safari"},
		{ID: "/Applications/Notes.app", Path: "/Applications/Notes.app", Name: "Notes"},
	}
}

func TestNewMemoryIndex(t *testing.T) {
	index := NewMemoryIndex()
	if index == nil {
		t.Fatal("NewMemoryIndex() returned nil")
	}
	if n := index.Count(); n != 0 {
		t.Errorf("NewMemoryIndex() should start empty, got %v apps", n)
	}
	if !index.GetLastReload().IsZero() {
		t.Error("GetLastReload() should be zero before the first update")
	}
}

func TestUpdateAppsOverwrites(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateApps(testApps())

	index.UpdateApps([]*domain.App{{ID: "/opt/tool.app", Name: "tool"}})

	if n := index.Count(); n != 1 {
		t.Errorf("UpdateApps() should overwrite, got %v apps want 1", n)
	}
	if _, ok := index.GetApp("/Applications/Safari.app"); ok {
		t.Error("old app should be gone after UpdateApps()")
	}
	if index.GetLastReload().IsZero() {
		t.Error("GetLastReload() should be set after UpdateApps()")
	}
}

func TestIncrementCounter(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateApps(testApps())
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	if !index.IncrementCounter("/Applications/Safari.app", now) {
		t.Fatal("IncrementCounter() = false for a known app")
	}
	index.IncrementCounter("/Applications/Safari.app", now)

	app, _ := index.GetApp("/Applications/Safari.app")
	if app.Counter != 2 {
		t.Errorf("IncrementCounter() counter = %v, want 2", app.Counter)
	}
	if !app.LastUsedAt.Equal(now) {
		t.Errorf("LastUsedAt = %v, want %v", app.LastUsedAt, now)
	}
}

func TestIncrementCounterNonExistent(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateApps(testApps())

	if index.IncrementCounter("/nowhere.app", time.Now()) {
		t.Error("IncrementCounter() on unknown app should return false")
	}
	for _, app := range index.GetAllApps() {
		if app.Counter != 0 {
			t.Errorf("unknown id should not affect %s, counter = %v", app.Name, app.Counter)
		}
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateApps([]*domain.App{{ID: "a", Name: "A", Sources: []string{"appdirs"}}})

	snap := index.Snapshot()
	snap[0].Counter = 99
	snap[0].Sources[0] = "changed"

	app, _ := index.GetApp("a")
	if app.Counter != 0 || app.Sources[0] != "appdirs" {
		t.Errorf("Snapshot() must copy entries, index now holds %+v", app)
	}
}

func TestConcurrentAccess(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateApps(testApps())

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = index.Snapshot()
		}()
		go func() {
			defer wg.Done()
			index.IncrementCounter("/Applications/Notes.app", time.Now())
		}()
	}
	wg.Wait()

	app, _ := index.GetApp("/Applications/Notes.app")
	if app.Counter != 100 {
		t.Errorf("Concurrent IncrementCounter() counter = %v, want 100", app.Counter)
	}
}

func TestBookmarks(t *testing.T) {
	index := NewMemoryIndex()
	index.UpdateBookmarks([]*domain.Bookmark{
		{ID: "1", Abbr: "gh", URL: "https://github.com"},
		{ID: "2", Abbr: "hn", URL: "https://news.ycombinator.com"},
	})

	if n := index.BookmarkCount(); n != 2 {
		t.Fatalf("BookmarkCount() = %d, want 2", n)
	}
	index.DeleteBookmark("1")
	if _, ok := index.GetBookmark("1"); ok {
		t.Error("DeleteBookmark() did not remove the bookmark")
	}
	if len(index.GetAllBookmarks()) != 1 {
		t.Errorf("GetAllBookmarks() = %d entries, want 1", len(index.GetAllBookmarks()))
	}
}
