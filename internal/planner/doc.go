// Package planner turns an ordered build plan into a CI scheduling plan.
//
// The planner is a pure function of its input: it performs no I/O and keeps
// no state between calls. Given elements in staged build order it:
//   - Filters out elements whose state is the cached marker
//   - Splits the remainder into a core head and a leaf tail
//   - Stripes the leaf tail round-robin into at most N chunks
//   - Names each chunk from its index and first element
//   - Computes a composite cache key per chunk from the sorted element keys
package planner
