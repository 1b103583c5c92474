package cdc

// Incremental is the raw push side of a content-defined chunking algorithm.
//
// Push examines data left to right, continuing from whatever state the
// previous calls left behind. If a chunk edge falls inside data it returns the
// offset just past the edge (relative to data) and true; bytes after the edge
// are not examined. Otherwise every byte has been consumed and it returns
// (0, false).
//
// The result depends only on the bytes seen since construction or the last
// edge, never on how those bytes were split across calls.
type Incremental interface {
	Push(data []byte) (edge int, found bool)
}

// SearchState locates one edge at a time and restarts itself after reporting
// it, so a single instance can scan a whole stream.
//
// FindEdge returns the number of bytes of data that belong to the chunk
// currently being accumulated. When found is true that count is also the edge
// offset within data, the state has already been reset, and the caller must
// resubmit data[consumed:] on its next call. When found is false, consumed is
// always len(data).
type SearchState interface {
	FindEdge(data []byte) (consumed int, found bool)

	// Reset restores the state to what a fresh stream starts with.
	Reset()
}

// Algorithm is the stateless configuration of a chunking algorithm. It hands
// out independent scanning state, typically one per stream.
type Algorithm interface {
	NewIncremental() Incremental
	NewSearchState() SearchState
}

// FindEdges returns the absolute offsets of every chunk edge in data, scanned
// as one stream with a fresh search state from alg. The trailing bytes after
// the last edge (if any) are not an edge and are not reported.
func FindEdges(alg Algorithm, data []byte) []int {
	var edges []int

	state := alg.NewSearchState()
	offset := 0

	for offset < len(data) {
		n, found := state.FindEdge(data[offset:])
		offset += n

		if !found {
			break
		}

		edges = append(edges, offset)
	}

	return edges
}
