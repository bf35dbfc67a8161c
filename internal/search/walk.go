package search

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/MrSnakeDoc/tacto/internal/domain"
	"github.com/MrSnakeDoc/tacto/internal/logger"
)

const walkMaxDepth = 6

var errLimit = errors.New("limit reached")

// Walk matches file names under a set of roots. Hidden entries and the inside
// of application bundles are skipped.
type Walk struct {
	roots []string
	log   logger.Logger
}

func NewWalk(roots []string, log logger.Logger) *Walk {
	return &Walk{roots: roots, log: log}
}

func (w *Walk) Search(ctx context.Context, term string, scope domain.Scope, limit int, emit func([]domain.Hit)) error {
	needle := strings.ToLower(strings.TrimSpace(term))
	var hits []domain.Hit

	for _, root := range w.roots {
		root = filepath.Clean(root)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if path == root {
				return nil
			}

			name := d.Name()
			if strings.HasPrefix(name, ".") {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}

			isApp := domain.IsApplicationPath(path)
			if (scope == domain.ScopeAll || isApp) && strings.Contains(strings.ToLower(name), needle) {
				hits = append(hits, domain.Hit{Path: path, IsApplication: isApp})
				if limit > 0 && len(hits) >= limit {
					return errLimit
				}
				if len(hits)%emitEvery == 0 {
					emit(copyHits(hits))
				}
			}

			if d.IsDir() && (isApp || strings.Count(path[len(root):], string(filepath.Separator)) >= walkMaxDepth) {
				return fs.SkipDir
			}
			return nil
		})
		if errors.Is(err, errLimit) {
			break
		}
		if err != nil {
			return err
		}
	}

	emit(copyHits(hits))
	return nil
}
