// Package element defines the build elements produced by a plan source and
// the typed parser that turns raw plan output into them.
//
// A plan source (for example `bst show`) prints one line per element in
// staged build order:
//
//	name||state||key
//
// The key is optional. Parsing is the only place raw text is handled; the
// planner works exclusively on validated []Element values.
package element

// Cache states reported by the build-graph tool. Only StateCached has meaning
// to the planner; any other value (including unknown ones) means the element
// still has to be built.
const (
	StateCached    = "cached"
	StateBuildable = "buildable"
	StateWaiting   = "waiting"
)

// Element is one buildable unit of a dependency graph.
type Element struct {
	// Name is the path-like element identifier (e.g. "libs/foo.bst")
	Name string

	// State is the cache state reported by the plan source
	State string

	// Key is the full cache key of the element and its dependencies (may be empty)
	Key string
}

// IsCached reports whether the element's state equals the cached marker.
func (e Element) IsCached(marker string) bool {
	return e.State == marker
}

// Names returns the names of the given elements, preserving order.
func Names(elems []Element) []string {
	names := make([]string, len(elems))
	for i, e := range elems {
		names[i] = e.Name
	}
	return names
}

// Keys returns the key fields of the given elements, preserving order.
// Empty keys are included.
func Keys(elems []Element) []string {
	keys := make([]string, len(elems))
	for i, e := range elems {
		keys[i] = e.Key
	}
	return keys
}
