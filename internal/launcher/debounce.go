package launcher

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// Debouncer turns a stream of keystrokes into query emissions. A value equal to
// the one pushed just before it is dropped, and nothing is emitted until the input
// has been quiet for the whole window; then only the latest value goes out.
type Debouncer struct {
	debounced func(f func())
	emit      func(string)

	mu        sync.Mutex
	last      string
	hasLast   bool
	pending   string
	cancelled bool
}

// NewDebouncer calls emit from the timer goroutine; emit must hand the value over
// to the loop rather than act on it.
func NewDebouncer(window time.Duration, emit func(string)) *Debouncer {
	return &Debouncer{
		debounced: debounce.New(window),
		emit:      emit,
	}
}

// Push records one keystroke's worth of input.
func (d *Debouncer) Push(text string) {
	d.mu.Lock()
	if d.hasLast && d.last == text {
		d.mu.Unlock()
		return
	}
	d.last = text
	d.hasLast = true
	d.pending = text
	d.cancelled = false
	d.mu.Unlock()

	d.debounced(d.fire)
}

// Reset forgets the previous value and drops any pending emission.
func (d *Debouncer) Reset() {
	d.mu.Lock()
	d.hasLast = false
	d.last = ""
	d.cancelled = true
	d.mu.Unlock()
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.cancelled {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.mu.Unlock()

	d.emit(v)
}
