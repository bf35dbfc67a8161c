//go:build !darwin

package sysclip

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.design/x/clipboard"

	"github.com/MrSnakeDoc/tacto/internal/logger"
)

// Board reads and writes the system clipboard through golang.design/x/clipboard.
// That package has no change counter, so one is kept from its watch channels.
// File lists are not exposed on these platforms.
type Board struct {
	count atomic.Int64
	mu    sync.Mutex
	log   logger.Logger
}

var initOnce = sync.OnceValue(clipboard.Init)

// New initialises the clipboard and counts changes until ctx is done.
func New(ctx context.Context, log logger.Logger) (*Board, error) {
	if err := initOnce(); err != nil {
		return nil, fmt.Errorf("failed to initialise clipboard: %w", err)
	}
	b := &Board{log: log}
	go b.watch(ctx, clipboard.Watch(ctx, clipboard.FmtText))
	go b.watch(ctx, clipboard.Watch(ctx, clipboard.FmtImage))
	return b, nil
}

func (b *Board) watch(ctx context.Context, ch <-chan []byte) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			b.count.Add(1)
		}
	}
}

func (b *Board) ChangeCount() int64 { return b.count.Load() }

func (b *Board) ReadFiles() []string { return nil }

func (b *Board) ReadImage() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return clipboard.Read(clipboard.FmtImage)
}

func (b *Board) ReadText() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data := clipboard.Read(clipboard.FmtText)
	return string(data), len(data) > 0
}

func (b *Board) WriteText(s string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	clipboard.Write(clipboard.FmtText, []byte(s))
	return nil
}

// WriteImage accepts PNG data only.
func (b *Board) WriteImage(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

// WriteFiles falls back to the newline-separated paths as text.
func (b *Board) WriteFiles(paths []string) error {
	return b.WriteText(joinLines(paths))
}
