package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/tacto/internal/domain"
)

// table is one keyed collection plus the time it was last replaced wholesale.
type table[T any] struct {
	byID     map[string]*T
	reloaded time.Time
}

func newTable[T any]() table[T] {
	return table[T]{byID: make(map[string]*T)}
}

func (t *table[T]) replace(items []*T, id func(*T) string, at time.Time) {
	t.byID = make(map[string]*T, len(items))
	for _, it := range items {
		t.byID[id(it)] = it
	}
	t.reloaded = at
}

func (t *table[T]) list() []*T {
	out := make([]*T, 0, len(t.byID))
	for _, it := range t.byID {
		out = append(out, it)
	}
	return out
}

// MemoryIndex holds the app catalog and the bookmarks behind one RWMutex.
// Returned pointers are shared: treat them as read-only and mutate through
// the index.
type MemoryIndex struct {
	mu        sync.RWMutex
	apps      table[domain.App]
	bookmarks table[domain.Bookmark]
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		apps:      newTable[domain.App](),
		bookmarks: newTable[domain.Bookmark](),
	}
}

func appID(a *domain.App) string           { return a.ID }
func bookmarkID(b *domain.Bookmark) string { return b.ID }

// UpdateApps swaps in a freshly scanned catalog.
func (idx *MemoryIndex) UpdateApps(apps []*domain.App) {
	idx.mu.Lock()
	idx.apps.replace(apps, appID, time.Now())
	idx.mu.Unlock()
}

func (idx *MemoryIndex) GetApp(id string) (*domain.App, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	app, ok := idx.apps.byID[id]
	return app, ok
}

// GetAllApps lists every app, disabled ones included.
func (idx *MemoryIndex) GetAllApps() []*domain.App {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.apps.list()
}

// Snapshot copies every app so the result can be serialized while launches
// keep bumping counters.
func (idx *MemoryIndex) Snapshot() []domain.App {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]domain.App, 0, len(idx.apps.byID))
	for _, app := range idx.apps.byID {
		cp := *app
		cp.Sources = append([]string(nil), app.Sources...)
		out = append(out, cp)
	}
	return out
}

func (idx *MemoryIndex) DeleteApp(id string) {
	idx.mu.Lock()
	delete(idx.apps.byID, id)
	idx.mu.Unlock()
}

func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.apps.byID)
}

// IncrementCounter records a launch at the given time. Unknown ids report false.
func (idx *MemoryIndex) IncrementCounter(id string, at time.Time) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	app, ok := idx.apps.byID[id]
	if !ok {
		return false
	}
	app.Counter++
	app.LastUsedAt = at
	app.UpdatedAt = at
	return true
}

func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.apps.reloaded
}

// UpdateBookmarks swaps in the bookmarks of the latest file load.
func (idx *MemoryIndex) UpdateBookmarks(bookmarks []*domain.Bookmark) {
	idx.mu.Lock()
	idx.bookmarks.replace(bookmarks, bookmarkID, time.Now())
	idx.mu.Unlock()
}

func (idx *MemoryIndex) GetBookmark(id string) (*domain.Bookmark, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	b, ok := idx.bookmarks.byID[id]
	return b, ok
}

func (idx *MemoryIndex) GetAllBookmarks() []*domain.Bookmark {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.bookmarks.list()
}

func (idx *MemoryIndex) DeleteBookmark(id string) {
	idx.mu.Lock()
	delete(idx.bookmarks.byID, id)
	idx.mu.Unlock()
}

func (idx *MemoryIndex) BookmarkCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.bookmarks.byID)
}

func (idx *MemoryIndex) GetLastBookmarkReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.bookmarks.reloaded
}
