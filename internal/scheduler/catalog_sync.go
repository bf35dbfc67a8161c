package scheduler

import (
	"context"
	"errors"

	"github.com/MrSnakeDoc/tacto/internal/domain"
	"github.com/MrSnakeDoc/tacto/internal/index"
	"github.com/MrSnakeDoc/tacto/internal/logger"
	"github.com/MrSnakeDoc/tacto/internal/store"
)

// CatalogSyncer moves the app catalog between the memory index and the blob
// store, so launch counts survive restarts.
type CatalogSyncer struct {
	blob   store.Blob
	index  *index.MemoryIndex
	logger logger.Logger
}

func NewCatalogSyncer(blob store.Blob, idx *index.MemoryIndex, log logger.Logger) *CatalogSyncer {
	return &CatalogSyncer{blob: blob, index: idx, logger: log}
}

// Restore loads the saved catalog into the index. Nothing saved is not an error.
func (cs *CatalogSyncer) Restore(ctx context.Context) error {
	cs.logger.Info("restoring app catalog from store")

	var apps []*domain.App
	err := store.LoadJSON(ctx, cs.blob, store.KeyAppCatalog, &apps)
	if errors.Is(err, store.ErrNotFound) {
		cs.logger.Info("no app catalog found in store")
		return nil
	}
	if err != nil {
		return err
	}

	cs.index.UpdateApps(apps)
	cs.logger.Info("restored app catalog", logger.Int("count", len(apps)))
	return nil
}

// Save writes the current catalog.
func (cs *CatalogSyncer) Save(ctx context.Context) error {
	apps := cs.index.Snapshot()
	if err := store.SaveJSON(ctx, cs.blob, store.KeyAppCatalog, apps); err != nil {
		return err
	}
	cs.logger.Debug("app catalog saved", logger.Int("count", len(apps)))
	return nil
}
