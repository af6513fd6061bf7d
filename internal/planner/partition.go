package planner

import (
	"github.com/danieljhkim/chunkplan/internal/element"
	"github.com/danieljhkim/chunkplan/internal/hash"
)

// Default settings used when a Partitioner is built without options.
const (
	DefaultCoreSplit = 200
	DefaultExtension = ".bst"
)

// Request describes one partitioning run.
type Request struct {
	// Elements is the plan in staged build order
	Elements []element.Element

	// CoreSplit is the number of pending elements placed in the core group
	CoreSplit int

	// NumChunks is the requested number of leaf chunks (<= 0 means none)
	NumChunks int

	// Target is echoed into Result.FinalTarget
	Target string
}

// Partitioner splits plans into core and leaf chunks.
type Partitioner struct {
	hasher      hash.Hasher
	cachedState string
	extensions  []string
}

// Option configures a Partitioner.
type Option func(*Partitioner)

// WithCachedState sets the state string that marks an element as cached.
func WithCachedState(state string) Option {
	return func(p *Partitioner) {
		p.cachedState = state
	}
}

// WithExtensions sets the suffixes stripped from chunk labels.
func WithExtensions(exts []string) Option {
	return func(p *Partitioner) {
		p.extensions = exts
	}
}

// New creates a Partitioner that computes composite keys with hasher.
func New(hasher hash.Hasher, opts ...Option) *Partitioner {
	p := &Partitioner{
		hasher:      hasher,
		cachedState: element.StateCached,
		extensions:  []string{DefaultExtension},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Partition computes the scheduling plan for req. It never fails; an input
// with nothing left to build yields an empty Result that still carries the
// target.
func (p *Partitioner) Partition(req Request) *Result {
	result := NewResult(req.Target)

	pending := Filter(req.Elements, p.cachedState)
	result.Stats.Total = len(req.Elements)
	result.Stats.Cached = len(req.Elements) - len(pending)
	if len(pending) == 0 {
		return result
	}

	core, leaf := Split(pending, req.CoreSplit)
	result.Core = append(result.Core, core...)
	result.Stats.Core = len(core)
	result.Stats.Leaf = len(leaf)

	for i, members := range RoundRobin(leaf, req.NumChunks) {
		if len(members) == 0 {
			continue
		}
		result.Chunks = append(result.Chunks, Chunk{
			Index:    i,
			Name:     ChunkName(i, members, p.extensions),
			Elements: members,
			CacheKey: hash.CompositeKey(p.hasher, element.Keys(members)),
		})
	}
	result.Stats.Chunks = len(result.Chunks)

	return result
}
