// Package search provides the indexes the launcher queries for applications and files.
package search

import (
	"context"
	"os/exec"
	"runtime"

	"github.com/MrSnakeDoc/tacto/internal/domain"
	"github.com/MrSnakeDoc/tacto/internal/index"
	"github.com/MrSnakeDoc/tacto/internal/logger"
)

// Index answers one search. emit may be called several times, each call
// carrying the full result set so far; it is called at least once unless an
// error is returned.
type Index interface {
	Search(ctx context.Context, term string, scope domain.Scope, limit int, emit func([]domain.Hit)) error
}

// Backends pairs the index used for applications with the one used for files.
type Backends struct {
	Name  string
	Apps  Index
	Files Index
}

// Select resolves a backend name. "auto" uses Spotlight when mdfind is
// available and the catalog with a file walk otherwise.
func Select(backend string, catalog *index.MemoryIndex, roots []string, log logger.Logger) Backends {
	spotlight := func() Backends {
		s := NewSpotlight("mdfind", log.Named("spotlight"))
		return Backends{Name: "spotlight", Apps: s, Files: s}
	}
	local := func() Backends {
		return Backends{
			Name:  "catalog",
			Apps:  NewCatalog(catalog),
			Files: NewWalk(roots, log.Named("walk")),
		}
	}

	switch backend {
	case "spotlight":
		return spotlight()
	case "catalog":
		return local()
	}
	if runtime.GOOS == "darwin" {
		if _, err := exec.LookPath("mdfind"); err == nil {
			return spotlight()
		}
	}
	return local()
}

func copyHits(hits []domain.Hit) []domain.Hit {
	return append([]domain.Hit(nil), hits...)
}
