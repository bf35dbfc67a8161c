package clipboard

import (
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/tacto/internal/logger"
)

const zeroWidthSpace = "\u200b"

// Poller watches the board's change count and reports each new payload.
type Poller struct {
	board    Board
	interval time.Duration
	onKind   func(Kind)
	log      logger.Logger

	pollMu    sync.Mutex
	lastCount int64

	mu      sync.Mutex
	stopCh  chan struct{}
	running bool
	wg      sync.WaitGroup
}

// NewPoller takes the board's current change count as baseline, so whatever is
// on the clipboard at startup is not captured.
func NewPoller(board Board, interval time.Duration, onKind func(Kind), log logger.Logger) *Poller {
	return &Poller{
		board:     board,
		interval:  interval,
		onKind:    onKind,
		log:       log,
		lastCount: board.ChangeCount(),
	}
}

// Start begins polling. Starting a running poller restarts it.
func (p *Poller) Start() {
	p.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()
	stop := make(chan struct{})
	p.stopCh = stop
	p.running = true

	p.wg.Add(1)
	go p.run(stop)
	p.log.Debug("clipboard poller started", logger.Duration("interval", p.interval))
}

// Stop halts polling and waits for the loop to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.running {
		close(p.stopCh)
		p.running = false
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Poller) run(stop <-chan struct{}) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.Poll()
		}
	}
}

// Poll checks the board once.
func (p *Poller) Poll() {
	p.pollMu.Lock()
	count := p.board.ChangeCount()
	if count == p.lastCount {
		p.pollMu.Unlock()
		return
	}
	p.lastCount = count
	kind, ok := Classify(p.board)
	p.pollMu.Unlock()

	if ok {
		p.onKind(kind)
	}
}

// Classify reads the board, preferring file lists, then images, then text.
// Text is stripped of zero-width spaces; blank text is ignored.
func Classify(b Board) (Kind, bool) {
	if files := b.ReadFiles(); len(files) > 0 {
		return FilesKind(files), true
	}
	if data := b.ReadImage(); len(data) > 0 {
		w, h := ImageSize(data)
		return ImageKind(data, w, h), true
	}
	if text, ok := b.ReadText(); ok {
		text = strings.ReplaceAll(text, zeroWidthSpace, "")
		if strings.TrimSpace(text) != "" {
			return TextKind(text), true
		}
	}
	return Kind{}, false
}
