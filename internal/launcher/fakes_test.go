package launcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/tacto/internal/domain"
	"github.com/MrSnakeDoc/tacto/internal/logger"
	"github.com/MrSnakeDoc/tacto/internal/uiloop"
)

type recordingActions struct {
	calls chan string
}

func newRecordingActions() *recordingActions {
	return &recordingActions{calls: make(chan string, 32)}
}

func (r *recordingActions) OpenTasks()               { r.calls <- "tasks" }
func (r *recordingActions) NewTask(name string)      { r.calls <- "task:" + name }
func (r *recordingActions) StartPomodoro(m int)      { r.calls <- fmt.Sprintf("pomodoro:%d", m) }
func (r *recordingActions) OpenClipboard(f string)   { r.calls <- "clip:" + f }
func (r *recordingActions) SearchWeb(q string)       { r.calls <- "web:" + q }
func (r *recordingActions) OpenURL(u string)         { r.calls <- "url:" + u }
func (r *recordingActions) LaunchApp(path string)    { r.calls <- "launch:" + path }
func (r *recordingActions) OpenFile(path string)     { r.calls <- "open:" + path }

func (r *recordingActions) next(t *testing.T) string {
	t.Helper()
	select {
	case c := <-r.calls:
		return c
	case <-time.After(time.Second):
		t.Fatal("no action was invoked")
		return ""
	}
}

// fakeIndex answers from a fixed table keyed by term. Hits whose path ends in
// .app are applications. With ignoreCancel a held search waits for its gate
// even after ctx is done, then emits anyway.
type fakeIndex struct {
	mu           sync.Mutex
	results      map[string][]string
	err          error
	block        map[string]chan struct{}
	calls        []string
	ignoreCancel bool
}

func newFakeIndex(results map[string][]string) *fakeIndex {
	return &fakeIndex{results: results, block: make(map[string]chan struct{})}
}

func (f *fakeIndex) hold(term string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.block[term] = ch
	return ch
}

func (f *fakeIndex) Search(ctx context.Context, term string, scope domain.Scope, limit int, emit func([]domain.Hit)) error {
	f.mu.Lock()
	f.calls = append(f.calls, term)
	gate := f.block[term]
	err := f.err
	paths := f.results[term]
	stubborn := f.ignoreCancel
	f.mu.Unlock()

	if gate != nil && stubborn {
		<-gate
	} else if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err != nil {
		return err
	}

	var hits []domain.Hit
	for _, p := range paths {
		h := domain.NewHit(p)
		if scope == domain.ScopeApplications && !h.IsApplication {
			continue
		}
		hits = append(hits, h)
	}
	emit(hits)
	return nil
}

var errIndexDown = errors.New("index down")

type harness struct {
	loop     *uiloop.Loop
	actions  *recordingActions
	index    *fakeIndex
	pipeline *Pipeline
}

func newHarness(t *testing.T, idx *fakeIndex) *harness {
	t.Helper()
	loop := uiloop.New()
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)

	actions := newRecordingActions()
	p := NewPipeline(loop, NewCommands(actions, nil), actions, idx, idx,
		Options{Debounce: 20 * time.Millisecond, AppLimit: 6, FileLimit: 10}, logger.NewNop())

	t.Cleanup(func() {
		p.Close()
		cancel()
		<-loop.Done()
	})
	return &harness{loop: loop, actions: actions, index: idx, pipeline: p}
}

// query runs the build stage directly, skipping the debounce window.
func (h *harness) query(q string) {
	h.loop.Call(func() { h.pipeline.build(q) })
}

// settle waits for every search goroutine and every merge they posted.
func (h *harness) settle() {
	h.pipeline.apps.Wait()
	h.pipeline.files.Wait()
	h.loop.Call(func() {})
}

func titles(list []Suggestion) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Title
	}
	return out
}
