package clipboard

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/MrSnakeDoc/tacto/internal/logger"
	"github.com/MrSnakeDoc/tacto/internal/store"
)

const saveTimeout = 5 * time.Second

// Persister writes history snapshots to a blob, coalescing bursts of changes
// into one write after the save delay.
type Persister struct {
	blob      store.Blob
	key       string
	log       logger.Logger
	debounced func(f func())

	mu         sync.Mutex
	pending    []Entry
	hasPending bool

	writeMu sync.Mutex
}

func NewPersister(blob store.Blob, delay time.Duration, log logger.Logger) *Persister {
	return &Persister{
		blob:      blob,
		key:       store.KeyClipboardHistory,
		log:       log,
		debounced: debounce.New(delay),
	}
}

// Schedule replaces the pending snapshot and restarts the save timer.
func (p *Persister) Schedule(snapshot []Entry) {
	p.mu.Lock()
	p.pending = snapshot
	p.hasPending = true
	p.mu.Unlock()

	p.debounced(func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		_ = p.Flush(ctx)
	})
}

// Flush writes the pending snapshot now, if there is one.
func (p *Persister) Flush(ctx context.Context) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.mu.Lock()
	if !p.hasPending {
		p.mu.Unlock()
		return nil
	}
	snap := p.pending
	p.pending, p.hasPending = nil, false
	p.mu.Unlock()

	if snap == nil {
		snap = []Entry{}
	}
	data, err := json.Marshal(snap)
	if err != nil {
		p.log.Error("failed to encode clipboard history", logger.Error(err))
		return err
	}
	if err := p.blob.Save(ctx, p.key, data); err != nil {
		p.log.Error("failed to save clipboard history", logger.Error(err))
		return err
	}
	p.log.Debug("clipboard history saved", logger.Int("entries", len(snap)))
	return nil
}

// Load reads the saved history. A missing or unreadable document yields an empty one.
func (p *Persister) Load(ctx context.Context) []Entry {
	var entries []Entry
	err := store.LoadJSON(ctx, p.blob, p.key, &entries)
	switch {
	case errors.Is(err, store.ErrNotFound):
		p.log.Debug("no saved clipboard history")
		return nil
	case err != nil:
		p.log.Warn("discarding unreadable clipboard history", logger.Error(err))
		return nil
	}
	return entries
}
