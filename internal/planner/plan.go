package planner

import (
	"strings"

	"github.com/danieljhkim/chunkplan/internal/element"
)

// TargetSeparator joins element names into a single build target string.
const TargetSeparator = " "

// Result represents the scheduling plan produced for one target.
type Result struct {
	// Core is the ordered list of foundational elements built before the chunks
	Core []element.Element

	// Chunks is the ordered list of non-empty leaf chunks
	Chunks []Chunk

	// FinalTarget is the requested target, echoed unmodified
	FinalTarget string

	// Stats summarizes how the input was partitioned
	Stats Stats
}

// Chunk is a named group of leaf elements assigned to one CI runner.
type Chunk struct {
	// Index is the chunk's position in round-robin order
	Index int

	// Name is derived from Index and the first element name
	Name string

	// Elements are the chunk members in plan order
	Elements []element.Element

	// CacheKey is the composite key of the members ("" if none has a key)
	CacheKey string
}

// Stats counts elements at each stage of partitioning.
type Stats struct {
	Total  int
	Cached int
	Core   int
	Leaf   int
	Chunks int
}

// NewResult creates an empty Result for the given target.
func NewResult(target string) *Result {
	return &Result{
		Core:        []element.Element{},
		Chunks:      []Chunk{},
		FinalTarget: target,
	}
}

// IsEmpty returns true if there is nothing left to build.
func (r *Result) IsEmpty() bool {
	return len(r.Core) == 0 && len(r.Chunks) == 0
}

// CoreTarget returns the core element names joined by spaces.
func (r *Result) CoreTarget() string {
	return strings.Join(element.Names(r.Core), TargetSeparator)
}

// Target returns the chunk's element names joined by spaces.
func (c Chunk) Target() string {
	return strings.Join(element.Names(c.Elements), TargetSeparator)
}

// Matrix maps every chunk name to its space-joined element names.
func (r *Result) Matrix() map[string]string {
	matrix := make(map[string]string, len(r.Chunks))
	for _, c := range r.Chunks {
		matrix[c.Name] = c.Target()
	}
	return matrix
}

// CacheKeys maps chunk names to composite keys. Chunks without a composite
// key are omitted.
func (r *Result) CacheKeys() map[string]string {
	keys := make(map[string]string, len(r.Chunks))
	for _, c := range r.Chunks {
		if c.CacheKey != "" {
			keys[c.Name] = c.CacheKey
		}
	}
	return keys
}
