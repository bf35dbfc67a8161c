package launcher

import (
	"strings"
	"time"

	"github.com/MrSnakeDoc/tacto/internal/domain"
	"github.com/MrSnakeDoc/tacto/internal/logger"
	"github.com/MrSnakeDoc/tacto/internal/observe"
	"github.com/MrSnakeDoc/tacto/internal/uiloop"
)

// State is the published snapshot of the launcher list.
type State struct {
	Query       string       `json:"query"`
	Generation  uint64       `json:"generation"`
	Suggestions []Suggestion `json:"suggestions"`
	Selected    int          `json:"selected"`
	Searching   bool         `json:"searching"`
}

// Options configures a Pipeline.
type Options struct {
	Debounce  time.Duration
	AppLimit  int
	FileLimit int
}

type sourceID int

const (
	sourceApps sourceID = iota
	sourceFiles
)

// Pipeline turns query text into the ordered suggestion list:
// local commands, then applications, then files, then the web fallback.
//
// All list state below is owned by the loop; only the guard is shared with the
// search goroutines.
type Pipeline struct {
	loop      *uiloop.Loop
	logger    logger.Logger
	commands  *Commands
	actions   Actions
	apps      *SearchSource
	files     *SearchSource
	guard     Guard
	debouncer *Debouncer
	state     *observe.Cell[State]

	// loop-owned
	query     string
	searching bool
	local     []Suggestion
	web       *Suggestion
	appHits   []Suggestion
	fileHits  []Suggestion
	list      []Suggestion
	cursor    Cursor
}

// NewPipeline wires the stages. apps and files may be the same Index.
func NewPipeline(loop *uiloop.Loop, commands *Commands, actions Actions, apps, files Index, opts Options, log logger.Logger) *Pipeline {
	p := &Pipeline{
		loop:     loop,
		logger:   log,
		commands: commands,
		actions:  actions,
		apps:     NewSearchSource("apps", apps, domain.ScopeApplications, opts.AppLimit, log),
		files:    NewSearchSource("files", files, domain.ScopeAll, opts.FileLimit, log),
		state:    observe.NewCell(State{}),
	}
	p.debouncer = NewDebouncer(opts.Debounce, func(q string) {
		loop.Post(func() { p.build(q) })
	})
	p.local = commands.Defaults()
	p.list = p.local
	p.state.Set(p.snapshot())
	return p
}

// SetQuery feeds one keystroke's worth of query text.
func (p *Pipeline) SetQuery(text string) {
	p.debouncer.Push(text)
}

// Reset drops any pending query and shows the default list right away.
func (p *Pipeline) Reset() {
	p.debouncer.Reset()
	p.loop.Post(func() { p.build("") })
}

// MoveSelection shifts the cursor by delta rows.
func (p *Pipeline) MoveSelection(delta int) {
	p.loop.Post(func() {
		p.cursor.Move(delta, len(p.list))
		p.publish()
	})
}

// Select puts the cursor on row i. It reports false for an invalid row.
func (p *Pipeline) Select(i int) bool {
	var ok bool
	p.loop.Call(func() {
		ok = p.cursor.Set(i, len(p.list))
		if ok {
			p.publish()
		}
	})
	return ok
}

// Selection returns the suggestion under the cursor.
func (p *Pipeline) Selection() (Suggestion, bool) {
	var (
		s  Suggestion
		ok bool
	)
	p.loop.Call(func() { s, ok = p.cursor.Pick(p.list) })
	return s, ok
}

// State returns the latest published snapshot.
func (p *Pipeline) State() State {
	return p.state.Get()
}

// Subscribe registers fn for every published snapshot.
func (p *Pipeline) Subscribe(fn func(State)) (cancel func()) {
	return p.state.Subscribe(fn)
}

// Close cancels in-flight searches.
func (p *Pipeline) Close() {
	p.debouncer.Reset()
	p.apps.Stop()
	p.files.Stop()
}

// build runs on the loop for every emitted query.
func (p *Pipeline) build(text string) {
	p.query = text
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		p.apps.Stop()
		p.files.Stop()
		p.searching = false
		p.appHits, p.fileHits = nil, nil
		p.local = p.commands.Defaults()
		p.web = nil
		p.render()
		p.cursor.Reset()
		p.publish()
		return
	}

	gen := p.guard.Advance()
	p.searching = true
	p.appHits, p.fileHits = nil, nil
	p.local = p.commands.Local(trimmed)
	web := p.commands.Web(trimmed)
	p.web = &web
	p.render()
	p.cursor.Reset()
	p.publish()

	p.logger.Debug("query emitted",
		logger.String("query", trimmed),
		logger.Uint64("generation", gen))

	p.apps.Search(trimmed, func(hits []domain.Hit) { p.deliver(gen, sourceApps, hits) })
	p.files.Search(trimmed, func(hits []domain.Hit) { p.deliver(gen, sourceFiles, hits) })
}

// deliver runs on search goroutines. Stale results are dropped before they
// reach the loop and checked again once there.
func (p *Pipeline) deliver(gen uint64, src sourceID, hits []domain.Hit) {
	if p.guard.Check(gen) == Stale {
		return
	}
	p.loop.Post(func() { p.merge(gen, src, hits) })
}

func (p *Pipeline) merge(gen uint64, src sourceID, hits []domain.Hit) {
	if !p.searching || p.guard.Check(gen) == Stale {
		return
	}

	switch src {
	case sourceApps:
		p.appHits = make([]Suggestion, 0, len(hits))
		for _, h := range hits {
			p.appHits = append(p.appHits, appSuggestion(p.actions, h))
		}
	case sourceFiles:
		p.fileHits = make([]Suggestion, 0, len(hits))
		for _, h := range hits {
			if h.IsApplication {
				continue
			}
			p.fileHits = append(p.fileHits, fileSuggestion(p.actions, h))
		}
	}

	p.render()
	p.cursor.Clamp(len(p.list))
	p.publish()
}

func (p *Pipeline) render() {
	list := make([]Suggestion, 0, len(p.local)+len(p.appHits)+len(p.fileHits)+1)
	list = append(list, p.local...)
	list = append(list, p.appHits...)
	list = append(list, p.fileHits...)
	if p.web != nil {
		list = append(list, *p.web)
	}
	p.list = list
}

func (p *Pipeline) snapshot() State {
	return State{
		Query:       p.query,
		Generation:  p.guard.Current(),
		Suggestions: p.list,
		Selected:    p.cursor.Index(),
		Searching:   p.searching,
	}
}

func (p *Pipeline) publish() {
	p.state.Set(p.snapshot())
}
