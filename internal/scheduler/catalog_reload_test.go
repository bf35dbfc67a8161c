package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MrSnakeDoc/tacto/internal/domain"
	"github.com/MrSnakeDoc/tacto/internal/index"
	"github.com/MrSnakeDoc/tacto/internal/logger"
	"github.com/MrSnakeDoc/tacto/internal/sources/appdirs"
	"github.com/MrSnakeDoc/tacto/internal/store"
)

type fakeScanner struct {
	paths []string
	err   error
}

func (f *fakeScanner) Scan(context.Context) ([]*domain.App, error) {
	if f.err != nil {
		return nil, f.err
	}
	apps := make([]*domain.App, 0, len(f.paths))
	for _, p := range f.paths {
		apps = append(apps, &domain.App{ID: p, Path: p, Name: domain.AppName(p), Sources: []string{appdirs.SourceName}})
	}
	return apps, nil
}

func TestCatalogReloader_Reload(t *testing.T) {
	idx := index.NewMemoryIndex()
	created := time.Now().Add(-48 * time.Hour)
	idx.UpdateApps([]*domain.App{
		{ID: "/A/Safari.app", Path: "/A/Safari.app", Name: "Safari", Counter: 7, CreatedAt: created, Sources: []string{appdirs.SourceName}},
		{ID: "/A/Gone.app", Path: "/A/Gone.app", Name: "Gone", Sources: []string{appdirs.SourceName}},
		{ID: "/A/Manual.app", Path: "/A/Manual.app", Name: "Manual", Sources: []string{"store"}},
	})

	blob := store.NewMemory()
	syncer := NewCatalogSyncer(blob, idx, logger.NewNop())
	scanner := &fakeScanner{paths: []string{"/A/Safari.app", "/A/Notes.app"}}
	cr := NewCatalogReloader(scanner, syncer, idx, logger.NewNop(), time.Hour, nil)

	if err := cr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	if idx.Count() != 4 {
		t.Errorf("Count() = %d, want 4", idx.Count())
	}
	safari, _ := idx.GetApp("/A/Safari.app")
	if safari.Counter != 7 || !safari.CreatedAt.Equal(created) {
		t.Errorf("Safari lost its history: %+v", safari)
	}
	gone, _ := idx.GetApp("/A/Gone.app")
	if !gone.Disabled || gone.UpdatedAt.IsZero() {
		t.Errorf("Gone should be disabled: %+v", gone)
	}
	manual, _ := idx.GetApp("/A/Manual.app")
	if manual.Disabled {
		t.Error("apps from other sources must not be disabled by a scan")
	}
	if blob.Saves() != 1 {
		t.Errorf("Saves() = %d, want the catalog written once", blob.Saves())
	}
}

func TestCatalogReloader_ScanErrorKeepsIndex(t *testing.T) {
	idx := index.NewMemoryIndex()
	idx.UpdateApps([]*domain.App{{ID: "/A/Safari.app", Path: "/A/Safari.app", Name: "Safari"}})

	cr := NewCatalogReloader(&fakeScanner{err: errors.New("boom")}, nil, idx, logger.NewNop(), time.Hour, nil)
	if err := cr.Reload(context.Background()); err == nil {
		t.Fatal("Reload() should fail when the scan fails")
	}
	if idx.Count() != 1 {
		t.Error("a failed scan must leave the catalog untouched")
	}
}

func TestCatalogReloader_ManualTrigger(t *testing.T) {
	idx := index.NewMemoryIndex()
	scanner := &fakeScanner{paths: []string{"/A/One.app"}}
	trigger := make(chan struct{})
	cr := NewCatalogReloader(scanner, nil, idx, logger.NewNop(), time.Hour, trigger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := cr.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer cr.Stop()

	scanner.paths = nil
	trigger <- struct{}{}

	deadline := time.Now().Add(time.Second)
	for {
		app, ok := idx.GetApp("/A/One.app")
		if ok && app.Disabled {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("manual trigger did not reload the catalog")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
