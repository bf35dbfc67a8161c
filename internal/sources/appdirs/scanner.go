// Package appdirs discovers installed applications by scanning directories for
// application bundles and desktop entries.
package appdirs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/MrSnakeDoc/tacto/internal/domain"
	"github.com/MrSnakeDoc/tacto/internal/logger"
)

// SourceName tags apps discovered on disk.
const SourceName = "appdirs"

// maxDepth lets a scan see one level of sub-folders such as /Applications/Utilities.
const maxDepth = 2

type Scanner struct {
	dirs []string
	log  logger.Logger
}

func NewScanner(dirs []string, log logger.Logger) *Scanner {
	return &Scanner{dirs: dirs, log: log}
}

// Scan lists the applications under the configured directories. Missing
// directories are skipped; a bundle is never descended into.
func (s *Scanner) Scan(ctx context.Context) ([]*domain.App, error) {
	now := time.Now()
	seen := make(map[string]struct{})
	var apps []*domain.App

	for _, root := range s.dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		root = filepath.Clean(root)
		if _, err := os.Stat(root); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.log.Warn("skipping application directory", logger.String("dir", root), logger.Error(err))
			}
			continue
		}

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if path == root {
				return nil
			}
			if domain.IsApplicationPath(path) && (d.IsDir() || strings.HasSuffix(path, ".desktop")) {
				if _, dup := seen[path]; !dup {
					seen[path] = struct{}{}
					apps = append(apps, &domain.App{
						ID:         path,
						Path:       path,
						Name:       domain.AppName(path),
						Sources:    []string{SourceName},
						LastSeenAt: now,
						CreatedAt:  now,
						UpdatedAt:  now,
					})
				}
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() && depth(root, path) >= maxDepth {
				return fs.SkipDir
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(apps, func(i, j int) bool { return apps[i].Path < apps[j].Path })
	s.log.Debug("application scan finished", logger.Int("apps", len(apps)))
	return apps, nil
}

func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return maxDepth
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
