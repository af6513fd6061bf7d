package planner

import (
	"fmt"
	"strings"

	"github.com/danieljhkim/chunkplan/internal/element"
)

// RoundRobin stripes leaf into min(n, len(leaf)) chunks: element i goes to
// chunk i mod the effective count. Relative order is kept within each chunk.
// It returns nil when n <= 0 or leaf is empty.
func RoundRobin(leaf []element.Element, n int) [][]element.Element {
	if n <= 0 || len(leaf) == 0 {
		return nil
	}
	count := min(n, len(leaf))

	chunks := make([][]element.Element, count)
	for i, e := range leaf {
		chunks[i%count] = append(chunks[i%count], e)
	}
	return chunks
}

// ChunkName derives "chunk<index>-<label>" from the first element's name,
// where label is the last path segment with the first matching extension
// removed. Empty chunks fall back to "chunk<index>".
func ChunkName(index int, elems []element.Element, extensions []string) string {
	if len(elems) == 0 {
		return fmt.Sprintf("chunk%d", index)
	}

	label := elems[0].Name
	if i := strings.LastIndex(label, "/"); i >= 0 {
		label = label[i+1:]
	}
	for _, ext := range extensions {
		if ext != "" && strings.HasSuffix(label, ext) {
			label = strings.TrimSuffix(label, ext)
			break
		}
	}
	return fmt.Sprintf("chunk%d-%s", index, label)
}
