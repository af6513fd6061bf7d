package planner

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/chunkplan/internal/element"
	"github.com/danieljhkim/chunkplan/internal/hash"
)

func sha(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestPartition_ExampleScenario(t *testing.T) {
	p := New(hash.NewSHA256Hasher())

	result := p.Partition(Request{
		Elements: []element.Element{
			{Name: "a", State: "waiting", Key: "k1"},
			{Name: "b", State: "cached", Key: "k2"},
			{Name: "c", State: "waiting", Key: "k3"},
			{Name: "d", State: "waiting", Key: ""},
		},
		CoreSplit: 1,
		NumChunks: 2,
		Target:    "all.bst",
	})

	assert.Equal(t, "a", result.CoreTarget())
	assert.Equal(t, "all.bst", result.FinalTarget)
	assert.Equal(t, map[string]string{"chunk0-c": "c", "chunk1-d": "d"}, result.Matrix())
	assert.Equal(t, map[string]string{"chunk0-c": sha("k3")}, result.CacheKeys())
	assert.Equal(t, Stats{Total: 4, Cached: 1, Core: 1, Leaf: 2, Chunks: 2}, result.Stats)
}

func TestPartition_NothingToBuild(t *testing.T) {
	hasher := hash.NewFakeHasher()
	p := New(hasher)

	for _, elems := range [][]element.Element{
		nil,
		{{Name: "a", State: element.StateCached, Key: "k1"}},
	} {
		result := p.Partition(Request{Elements: elems, CoreSplit: 0, NumChunks: 4, Target: "all.bst"})

		assert.True(t, result.IsEmpty())
		assert.Equal(t, "", result.CoreTarget())
		assert.Empty(t, result.Matrix())
		assert.Empty(t, result.CacheKeys())
		assert.Equal(t, "all.bst", result.FinalTarget)
	}
	assert.Empty(t, hasher.Inputs(), "no keying should run when nothing is pending")
}

func TestPartition_CoreSplitBeyondCount(t *testing.T) {
	p := New(hash.NewSHA256Hasher())

	result := p.Partition(Request{
		Elements:  makeElements(5),
		CoreSplit: 200,
		NumChunks: 3,
		Target:    "all.bst",
	})

	assert.Len(t, result.Core, 5)
	assert.Empty(t, result.Chunks)
	assert.Equal(t, "e0.bst e1.bst e2.bst e3.bst e4.bst", result.CoreTarget())
}

func TestPartition_Completeness(t *testing.T) {
	p := New(hash.NewSHA256Hasher())
	elems := makeElements(23)
	for _, i := range []int{1, 4, 9, 16} {
		elems[i].State = element.StateCached
	}
	pending := Filter(elems, element.StateCached)

	for _, coreSplit := range []int{0, 1, 5, 19, 30} {
		for _, n := range []int{1, 2, 3, 7, 50} {
			result := p.Partition(Request{Elements: elems, CoreSplit: coreSplit, NumChunks: n})

			seen := map[string]int{}
			for _, e := range result.Core {
				seen[e.Name]++
			}
			for _, c := range result.Chunks {
				require.NotEmpty(t, c.Elements)
				for _, e := range c.Elements {
					seen[e.Name]++
				}
			}

			require.Len(t, seen, len(pending), "coreSplit=%d n=%d", coreSplit, n)
			for _, e := range pending {
				assert.Equal(t, 1, seen[e.Name], "coreSplit=%d n=%d element %s", coreSplit, n, e.Name)
			}
		}
	}
}

func TestPartition_NoChunksRequested(t *testing.T) {
	p := New(hash.NewSHA256Hasher())

	for _, n := range []int{0, -1} {
		result := p.Partition(Request{Elements: makeElements(6), CoreSplit: 2, NumChunks: n})
		assert.Len(t, result.Core, 2)
		assert.Empty(t, result.Chunks)
		assert.Equal(t, 4, result.Stats.Leaf)
	}
}

func TestPartition_ChunkStructure(t *testing.T) {
	p := New(hash.NewSHA256Hasher())
	elems := []element.Element{
		{Name: "base/sdk.bst", State: "buildable", Key: "ks"},
		{Name: "libs/foo.bst", State: "waiting", Key: "kf"},
		{Name: "libs/bar.bst", State: "waiting", Key: "kb"},
		{Name: "apps/baz.bst", State: "waiting", Key: ""},
	}

	result := p.Partition(Request{Elements: elems, CoreSplit: 1, NumChunks: 2, Target: "t.bst"})

	want := []Chunk{
		{
			Index:    0,
			Name:     "chunk0-foo",
			Elements: []element.Element{elems[1], elems[3]},
			CacheKey: sha("kf"),
		},
		{
			Index:    1,
			Name:     "chunk1-bar",
			Elements: []element.Element{elems[2]},
			CacheKey: sha("kb"),
		},
	}
	if diff := cmp.Diff(want, result.Chunks); diff != "" {
		t.Errorf("Chunks mismatch (-want +got):\n%s", diff)
	}
}

func TestPartition_CompositeKeySetInvariance(t *testing.T) {
	p := New(hash.NewSHA256Hasher())
	elems := makeElements(4)

	// One chunk with everything, built from two different orderings.
	forward := p.Partition(Request{Elements: elems, NumChunks: 1})
	reversed := []element.Element{elems[3], elems[2], elems[1], elems[0]}
	backward := p.Partition(Request{Elements: reversed, NumChunks: 1})

	require.Len(t, forward.Chunks, 1)
	require.Len(t, backward.Chunks, 1)
	assert.Equal(t, forward.Chunks[0].CacheKey, backward.Chunks[0].CacheKey)
	assert.NotEqual(t, forward.Chunks[0].Name, backward.Chunks[0].Name)
}

func TestPartition_Options(t *testing.T) {
	hasher := hash.NewFakeHasher()
	hasher.SetHash("k1", "digest-k1")
	p := New(hasher, WithCachedState("done"), WithExtensions([]string{".yml"}))

	result := p.Partition(Request{
		Elements: []element.Element{
			{Name: "x/skip.yml", State: "done", Key: "k0"},
			{Name: "x/keep.yml", State: element.StateCached, Key: "k1"},
		},
		NumChunks: 1,
	})

	require.Len(t, result.Chunks, 1)
	assert.Equal(t, "chunk0-keep", result.Chunks[0].Name)
	assert.Equal(t, "digest-k1", result.Chunks[0].CacheKey)
	assert.Equal(t, []string{"k1"}, hasher.Inputs())
}

func TestPartition_Deterministic(t *testing.T) {
	p := New(hash.NewSHA256Hasher())
	req := Request{Elements: makeElements(40), CoreSplit: 7, NumChunks: 6, Target: "all.bst"}

	first := p.Partition(req)
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, p.Partition(req)); diff != "" {
			t.Fatalf("Partition not deterministic (-first +got):\n%s", diff)
		}
	}
}
