package clipboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/tacto/internal/logger"
	"github.com/MrSnakeDoc/tacto/internal/observe"
	"github.com/MrSnakeDoc/tacto/internal/store"
	"github.com/MrSnakeDoc/tacto/internal/uiloop"
)

type Options struct {
	Limits       Limits
	PollInterval time.Duration
	SaveDelay    time.Duration
	PasteDelay   time.Duration
}

func DefaultOptions() Options {
	return Options{
		Limits:       DefaultLimits(),
		PollInterval: 350 * time.Millisecond,
		SaveDelay:    500 * time.Millisecond,
		PasteDelay:   300 * time.Millisecond,
	}
}

// Service owns the clipboard history. The history itself lives on the loop;
// readers get published snapshots.
type Service struct {
	loop       *uiloop.Loop
	board      Board
	keys       Keystroker
	history    *History
	persister  *Persister
	poller     *Poller
	items      *observe.Cell[[]Entry]
	pasteDelay time.Duration
	log        logger.Logger
	now        func() time.Time
}

func NewService(loop *uiloop.Loop, board Board, keys Keystroker, blob store.Blob, opts Options, log logger.Logger) *Service {
	s := &Service{
		loop:       loop,
		board:      board,
		keys:       keys,
		history:    NewHistory(opts.Limits),
		persister:  NewPersister(blob, opts.SaveDelay, log),
		items:      observe.NewCell[[]Entry](nil),
		pasteDelay: opts.PasteDelay,
		log:        log,
		now:        time.Now,
	}
	s.poller = NewPoller(board, opts.PollInterval, s.capture, log)
	return s
}

// Load restores the saved history. Entries that no longer fit the limits are
// dropped and the trimmed list is written back.
func (s *Service) Load(ctx context.Context) {
	entries := s.persister.Load(ctx)
	s.loop.Call(func() {
		removed := s.history.Replace(entries, s.now())
		s.items.Set(s.history.Entries())
		if removed > 0 {
			s.persister.Schedule(s.history.Entries())
		}
		s.log.Info("clipboard history loaded",
			logger.Int("entries", s.history.Len()),
			logger.Int("pruned", removed),
		)
	})
}

func (s *Service) Start() { s.poller.Start() }

func (s *Service) Stop() { s.poller.Stop() }

// Close stops polling and writes any pending snapshot.
func (s *Service) Close(ctx context.Context) error {
	s.poller.Stop()
	return s.persister.Flush(ctx)
}

// Flush writes any snapshot scheduled since the last write. Captures already
// queued on the loop when Close ran only reach the store through it.
func (s *Service) Flush(ctx context.Context) error {
	return s.persister.Flush(ctx)
}

// capture runs on the poller goroutine.
func (s *Service) capture(kind Kind) {
	s.loop.Post(func() {
		if _, ok := s.history.Insert(kind, s.now()); ok {
			s.publish()
		}
	})
}

// publish must run on the loop.
func (s *Service) publish() {
	snap := s.history.Entries()
	s.items.Set(snap)
	s.persister.Schedule(snap)
}

// Items returns the last published history, newest first.
func (s *Service) Items() []Entry { return s.items.Get() }

// Filter returns the published entries matching term.
func (s *Service) Filter(term string) []Entry { return Filter(s.items.Get(), term) }

func (s *Service) Find(id uuid.UUID) (Entry, bool) {
	for _, e := range s.items.Get() {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Subscribe is notified with every new snapshot.
func (s *Service) Subscribe(fn func([]Entry)) (cancel func()) {
	return s.items.Subscribe(fn)
}

// SetClipboard puts the entry's payload back on the system clipboard.
func (s *Service) SetClipboard(e Entry) error {
	var err error
	switch e.Kind.Type {
	case TypeText:
		err = s.board.WriteText(e.Kind.Text)
	case TypeImage:
		err = s.board.WriteImage(e.Kind.ImageData)
	case TypeFiles:
		err = s.board.WriteFiles(e.Kind.FilePaths)
	default:
		err = fmt.Errorf("unknown clipboard kind %q", e.Kind.Type)
	}
	if err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

// PasteIntoFrontmostApp writes the entry and, after the paste delay that lets the
// previous application regain focus, sends the paste keystroke.
func (s *Service) PasteIntoFrontmostApp(e Entry) error {
	if err := s.SetClipboard(e); err != nil {
		return err
	}
	time.AfterFunc(s.pasteDelay, func() {
		if err := s.keys.Paste(); err != nil {
			s.log.Warn("failed to send paste keystroke", logger.Error(err))
		}
	})
	return nil
}

// Prune reapplies the limits against the current time. It returns how many
// entries were removed.
func (s *Service) Prune() int {
	var removed int
	s.loop.Call(func() {
		removed = s.history.Prune(s.now())
		if removed > 0 {
			s.publish()
		}
	})
	return removed
}

// Remove deletes one entry from the history.
func (s *Service) Remove(id uuid.UUID) bool {
	var ok bool
	s.loop.Call(func() {
		if ok = s.history.Remove(id); ok {
			s.publish()
		}
	})
	return ok
}

// Clear empties the history.
func (s *Service) Clear() {
	s.loop.Call(func() {
		s.history.Clear()
		s.publish()
	})
}

// Stats reports the size of the published history.
func (s *Service) Stats() (entries int, bytes int64) {
	items := s.items.Get()
	for _, e := range items {
		bytes += e.Kind.ApproxSize()
	}
	return len(items), bytes
}
