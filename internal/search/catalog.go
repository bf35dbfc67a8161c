package search

import (
	"context"

	"github.com/MrSnakeDoc/tacto/internal/domain"
	"github.com/MrSnakeDoc/tacto/internal/index"
)

// Catalog ranks the scanned application catalog. It only knows applications,
// so file searches come back empty.
type Catalog struct {
	index *index.MemoryIndex
}

func NewCatalog(idx *index.MemoryIndex) *Catalog {
	return &Catalog{index: idx}
}

func (c *Catalog) Search(ctx context.Context, term string, scope domain.Scope, limit int, emit func([]domain.Hit)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if scope != domain.ScopeApplications {
		emit(nil)
		return nil
	}

	snapshot := c.index.Snapshot()
	apps := make([]*domain.App, len(snapshot))
	for i := range snapshot {
		apps[i] = &snapshot[i]
	}

	candidates := domain.RankApps(domain.ParseQuery(term), apps)
	hits := make([]domain.Hit, 0, len(candidates))
	for _, cand := range candidates {
		if limit > 0 && len(hits) >= limit {
			break
		}
		hits = append(hits, domain.Hit{Path: cand.App.Path, IsApplication: true})
	}
	emit(hits)
	return nil
}
