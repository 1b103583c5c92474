package cdc_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/kalbasit/cdc"
)

// partition splits data at random cut points into consecutive slices.
func partition(rt *rapid.T, data []byte) [][]byte {
	var parts [][]byte

	for len(data) > 0 {
		n := rapid.IntRange(1, len(data)).Draw(rt, "part")
		parts = append(parts, data[:n])
		data = data[n:]
	}

	return parts
}

// pushAll feeds parts through incr, resubmitting the rest of a slice after an
// edge, and returns the absolute edge offsets.
func pushAll(incr cdc.Incremental, parts [][]byte) []int {
	var (
		edges  []int
		offset int
	)

	for _, part := range parts {
		for len(part) > 0 {
			edge, found := incr.Push(part)
			if !found {
				offset += len(part)

				break
			}

			offset += edge
			edges = append(edges, offset)
			part = part[edge:]
		}
	}

	return edges
}

// findAll does the same as pushAll through a search state.
func findAll(state cdc.SearchState, parts [][]byte) []int {
	var (
		edges  []int
		offset int
	)

	for _, part := range parts {
		for len(part) > 0 {
			n, found := state.FindEdge(part)
			offset += n
			part = part[n:]

			if found {
				edges = append(edges, offset)
			}
		}
	}

	return edges
}

// Biased toward short ascending runs so small thresholds hit often.
func genStream() *rapid.Generator[[]byte] {
	return rapid.SliceOfN(rapid.ByteRange(0, 31), 0, 2048)
}

func TestProperty_MiiIncr_CallChunkingIndependence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.Uint64Range(0, 6).Draw(rt, "w")
		data := genStream().Draw(rt, "data")
		alg := cdc.NewMii(w)

		whole := alg.Incr()
		split := alg.Incr()

		want := pushAll(whole, [][]byte{data})
		got := pushAll(split, partition(rt, data))

		require.Equal(rt, want, got)
		require.Equal(rt, whole.Prev(), split.Prev())
		require.Equal(rt, whole.Run(), split.Run())
	})
}

func TestProperty_MiiSearchState_CallChunkingIndependence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.Uint64Range(0, 6).Draw(rt, "w")
		data := genStream().Draw(rt, "data")
		alg := cdc.NewMii(w)

		whole := alg.SearchState()
		split := alg.SearchState()

		want := findAll(whole, [][]byte{data})
		got := findAll(split, partition(rt, data))

		require.Equal(rt, want, got)
		require.Equal(rt, cdc.FindEdges(alg, data), got)
		require.Equal(rt, whole.Incr().Prev(), split.Incr().Prev())
		require.Equal(rt, whole.Incr().Run(), split.Incr().Run())
	})
}

func TestProperty_MiiSearchState_ReportedEdges(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.Uint64Range(1, 6).Draw(rt, "w")
		data := genStream().Draw(rt, "data")

		prev := 0
		for _, e := range cdc.FindEdges(cdc.NewMii(w), data) {
			require.Greater(rt, e, prev)
			require.LessOrEqual(rt, e, len(data))

			// A chunk needs at least w+1 bytes: the first byte of a run never increments.
			require.GreaterOrEqual(rt, uint64(e-prev), w+1) //nolint:gosec // G115

			// The chunk ends with w strict increases.
			for i := e - int(w); i < e; i++ { //nolint:gosec // G115
				require.Greater(rt, data[i], data[i-1])
			}

			prev = e
		}
	})
}

func TestProperty_Chunker_MatchesFindEdges(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.Uint64Range(0, 6).Draw(rt, "w")
		bufSize := rapid.IntRange(1, 64).Draw(rt, "bufSize")
		data := genStream().Draw(rt, "data")

		chunker, err := cdc.NewChunker(bytes.NewReader(data), cdc.WithThreshold(w), cdc.WithBufferSize(bufSize))
		require.NoError(rt, err)

		var (
			ends   []int
			joined []byte
		)

		for {
			chunk, err := chunker.Next()
			if err == io.EOF {
				break
			}

			require.NoError(rt, err)
			require.NotZero(rt, chunk.Length)
			require.Equal(rt, uint64(len(joined)), chunk.Offset)

			joined = append(joined, chunk.Data...)
			ends = append(ends, len(joined))
		}

		require.Equal(rt, len(data), len(joined))
		require.True(rt, bytes.Equal(data, joined))

		edges := cdc.FindEdges(cdc.NewMii(w), data)
		if len(edges) == 0 || edges[len(edges)-1] != len(data) {
			if len(data) > 0 {
				edges = append(edges, len(data))
			}
		}

		require.Equal(rt, edges, ends)
	})
}
