package launcher

import (
	"context"
	"sync"

	"github.com/MrSnakeDoc/tacto/internal/domain"
	"github.com/MrSnakeDoc/tacto/internal/logger"
)

// Index answers file-system searches. Search may call emit any number of times,
// each call replacing the previous result set, and must return once ctx is done.
type Index interface {
	Search(ctx context.Context, term string, scope domain.Scope, limit int, emit func([]domain.Hit)) error
}

// SearchSource runs at most one search at a time against an Index. Starting a
// search cancels the one in flight. Index failures are delivered as an empty
// result so the list still settles.
type SearchSource struct {
	name   string
	index  Index
	scope  domain.Scope
	limit  int
	logger logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    uint64
	wg     sync.WaitGroup
}

func NewSearchSource(name string, idx Index, scope domain.Scope, limit int, log logger.Logger) *SearchSource {
	return &SearchSource{
		name:   name,
		index:  idx,
		scope:  scope,
		limit:  limit,
		logger: log,
	}
}

// Search starts a search for term. deliver is called from a background goroutine.
func (s *SearchSource) Search(term string, deliver func([]domain.Hit)) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.seq++
	seq := s.seq
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer s.finish(seq, cancel)

		err := s.index.Search(ctx, term, s.scope, s.limit, func(hits []domain.Hit) {
			if ctx.Err() != nil {
				return
			}
			if len(hits) > s.limit {
				hits = hits[:s.limit]
			}
			deliver(hits)
		})
		if err != nil && ctx.Err() == nil {
			s.logger.Warn("search source failed",
				logger.String("source", s.name),
				logger.String("term", term),
				logger.Error(err))
			deliver(nil)
		}
	}()
}

func (s *SearchSource) finish(seq uint64, cancel context.CancelFunc) {
	cancel()
	s.mu.Lock()
	if s.seq == seq {
		s.cancel = nil
	}
	s.mu.Unlock()
}

// Stop cancels the search in flight, if any.
func (s *SearchSource) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
}

// Wait blocks until every started search goroutine returned.
func (s *SearchSource) Wait() {
	s.wg.Wait()
}
