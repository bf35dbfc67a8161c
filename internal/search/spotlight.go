package search

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/MrSnakeDoc/tacto/internal/domain"
	"github.com/MrSnakeDoc/tacto/internal/logger"
)

// emitEvery is how many new hits accumulate before an intermediate emission.
const emitEvery = 3

// Spotlight queries the macOS metadata index through mdfind.
type Spotlight struct {
	bin string
	log logger.Logger
}

func NewSpotlight(bin string, log logger.Logger) *Spotlight {
	return &Spotlight{bin: bin, log: log}
}

// Search streams mdfind output, emitting as results arrive. mdfind is killed
// as soon as limit results are in.
func (s *Spotlight) Search(ctx context.Context, term string, scope domain.Scope, limit int, emit func([]domain.Hit)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.bin, spotlightQuery(term, scope))
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open mdfind output: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start mdfind: %w", err)
	}

	var hits []domain.Hit
	full := false
	sc := bufio.NewScanner(stdout)
	for sc.Scan() {
		path := strings.TrimSpace(sc.Text())
		if path == "" {
			continue
		}
		hits = append(hits, domain.NewHit(path))
		if limit > 0 && len(hits) >= limit {
			full = true
			break
		}
		if len(hits)%emitEvery == 0 {
			emit(copyHits(hits))
		}
	}
	if full {
		cancel()
	}

	waitErr := cmd.Wait()
	if err := ctx.Err(); err != nil && !full {
		return err
	}
	if waitErr != nil && !full {
		s.log.Debug("mdfind exited with error", logger.String("term", term), logger.Error(waitErr))
	}
	emit(copyHits(hits))
	return nil
}

// spotlightQuery matches display names containing term, ignoring case and
// diacritics. Applications scope adds a content type clause.
func spotlightQuery(term string, scope domain.Scope) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `*`, `\*`)
	q := fmt.Sprintf(`kMDItemDisplayName == "*%s*"cd`, r.Replace(term))
	if scope == domain.ScopeApplications {
		q = `kMDItemContentType == "com.apple.application-bundle" && ` + q
	}
	return q
}
