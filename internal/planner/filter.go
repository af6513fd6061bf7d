package planner

import "github.com/danieljhkim/chunkplan/internal/element"

// Filter returns the elements whose state is not cachedState, in plan order.
// Any other state, known or not, is kept.
func Filter(elems []element.Element, cachedState string) []element.Element {
	pending := make([]element.Element, 0, len(elems))
	for _, e := range elems {
		if e.IsCached(cachedState) {
			continue
		}
		pending = append(pending, e)
	}
	return pending
}

// Split divides elems into the first coreSplit elements and the rest.
// A coreSplit at or beyond len(elems) puts everything in core. A negative
// coreSplit is treated as zero.
func Split(elems []element.Element, coreSplit int) (core, leaf []element.Element) {
	if coreSplit < 0 {
		coreSplit = 0
	}
	if coreSplit >= len(elems) {
		return elems, nil
	}
	return elems[:coreSplit], elems[coreSplit:]
}
