package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/tacto/internal/domain"
	"github.com/MrSnakeDoc/tacto/internal/index"
	"github.com/MrSnakeDoc/tacto/internal/logger"
	"github.com/MrSnakeDoc/tacto/internal/sources/appdirs"
)

// AppScanner lists the applications currently installed.
type AppScanner interface {
	Scan(ctx context.Context) ([]*domain.App, error)
}

// CatalogReloader rescans application directories and folds the result into the
// catalog. Apps that disappeared are disabled, not deleted; the sweeper removes
// them once they stayed gone long enough.
type CatalogReloader struct {
	job
	scanner AppScanner
	syncer  *CatalogSyncer
	index   *index.MemoryIndex
	logger  logger.Logger
}

func NewCatalogReloader(
	scanner AppScanner,
	syncer *CatalogSyncer,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger <-chan struct{},
) *CatalogReloader {
	return &CatalogReloader{
		job:     newJob("catalog reload", interval, manualTrigger, log),
		scanner: scanner,
		syncer:  syncer,
		index:   idx,
		logger:  log,
	}
}

// Start reloads once, then keeps reloading in the background. The periodic
// reload runs even when the first one fails.
func (cr *CatalogReloader) Start(ctx context.Context) error {
	err := cr.Reload(ctx)
	cr.run(ctx, cr.Reload)
	if err != nil {
		return fmt.Errorf("initial catalog reload failed: %w", err)
	}
	return nil
}

func (cr *CatalogReloader) Stop() { cr.stop() }

// Reload scans and merges. Launch counts and creation times of known apps are kept.
func (cr *CatalogReloader) Reload(ctx context.Context) error {
	cr.logger.Info("reloading app catalog")

	scanned, err := cr.scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan applications: %w", err)
	}

	now := time.Now()
	existing := cr.index.Snapshot()
	known := make(map[string]domain.App, len(existing))
	for _, app := range existing {
		known[app.ID] = app
	}

	merged := make([]*domain.App, 0, len(scanned)+len(existing))
	seen := make(map[string]bool, len(scanned))
	for _, app := range scanned {
		seen[app.ID] = true
		if prev, ok := known[app.ID]; ok {
			app.Counter = prev.Counter
			app.CreatedAt = prev.CreatedAt
			app.LastUsedAt = prev.LastUsedAt
			if !prev.Disabled {
				app.UpdatedAt = prev.UpdatedAt
			}
		}
		merged = append(merged, app)
	}

	disabled := 0
	for _, prev := range existing {
		if seen[prev.ID] {
			continue
		}
		app := prev
		if !app.Disabled && app.HasSource(appdirs.SourceName) {
			app.Disabled = true
			app.UpdatedAt = now
			disabled++
		}
		merged = append(merged, &app)
	}

	cr.index.UpdateApps(merged)
	cr.logger.Info("app catalog reloaded",
		logger.Int("scanned", len(scanned)),
		logger.Int("disabled", disabled))

	if cr.syncer != nil {
		if err := cr.syncer.Save(ctx); err != nil {
			cr.logger.Warn("failed to save app catalog", logger.Error(err))
		}
	}
	return nil
}
