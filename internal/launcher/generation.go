package launcher

import "sync/atomic"

// Freshness tells the merge stage whether a completion still belongs to the
// query on screen.
type Freshness int

const (
	Stale Freshness = iota
	Fresh
)

func (f Freshness) String() string {
	if f == Fresh {
		return "fresh"
	}
	return "stale"
}

// Guard is a monotonically increasing query generation. Every emitted non-empty
// query advances it; async results carry the generation they were started for.
type Guard struct {
	current atomic.Uint64
}

// Advance starts a new generation and returns it.
func (g *Guard) Advance() uint64 {
	return g.current.Add(1)
}

// Current returns the latest generation.
func (g *Guard) Current() uint64 {
	return g.current.Load()
}

func (g *Guard) IsCurrent(gen uint64) bool {
	return g.current.Load() == gen
}

// Check classifies a completion tagged with gen.
func (g *Guard) Check(gen uint64) Freshness {
	if g.IsCurrent(gen) {
		return Fresh
	}
	return Stale
}
