package cdc

// DefaultThreshold is the run length used by DefaultMii.
//
// This is the value used for the reference graphs of the MII paper, where it
// is compared against Rabin with a window of 7.
const DefaultThreshold = 5

// prevSentinel is the "previous byte" of a fresh run. No byte is greater than
// it, so the first byte examined can never count as an increment.
const prevSentinel = 0xff

// Mii is the run-counter algorithm from C. Zhang et al., "MII: A Novel Content
// Defined Chunking Algorithm for Finding Incremental Data in Data
// Synchronization," IEEE Access, vol. 7, pp. 86932-86945, 2019,
// doi:10.1109/ACCESS.2019.2926195.
//
// It cuts the stream right after w consecutive bytes that are each strictly
// greater than the byte before them. Larger values of w produce rarer, larger
// chunks.
//
// A Mii value is immutable; use NewMii to pick a different threshold.
type Mii struct {
	w uint64
}

// NewMii returns the run-counter algorithm with threshold w.
//
// w is not validated. With w = 0 the run length can never equal the threshold
// (it is incremented before it is compared), so no edge is ever reported.
func NewMii(w uint64) Mii {
	return Mii{w: w}
}

// DefaultMii returns the run-counter algorithm with DefaultThreshold.
func DefaultMii() Mii {
	return NewMii(DefaultThreshold)
}

// Threshold returns the number of consecutive increments that trigger an edge.
func (m Mii) Threshold() uint64 {
	return m.w
}

// Incr returns a fresh pusher for a new stream.
func (m Mii) Incr() *MiiIncr {
	return &MiiIncr{
		w:    m.w,
		prev: prevSentinel,
	}
}

// SearchState returns a fresh search state for a new stream.
func (m Mii) SearchState() *MiiSearchState {
	return &MiiSearchState{
		incr: MiiIncr{
			w:    m.w,
			prev: prevSentinel,
		},
	}
}

// NewIncremental implements Algorithm.
func (m Mii) NewIncremental() Incremental {
	return m.Incr()
}

// NewSearchState implements Algorithm.
func (m Mii) NewSearchState() SearchState {
	return m.SearchState()
}

// MiiIncr is the incremental run counter. It is not safe for concurrent use.
type MiiIncr struct {
	w uint64

	// last byte examined, or prevSentinel at the start of a stream
	prev byte

	// number of consecutive bytes greater than the byte before them
	run uint64
}

// Push implements Incremental.
//
// When an edge is found the run is cleared and the previous byte is set to 0,
// not to the start-of-stream sentinel, so any non-zero byte that follows counts
// as an increment. MiiSearchState resets the pusher after every edge, which
// restores the sentinel.
func (m *MiiIncr) Push(data []byte) (edge int, found bool) {
	prev := m.prev
	run := m.run

	for i, b := range data {
		if b > prev {
			run++
			if run == m.w {
				m.run = 0
				m.prev = 0

				return i + 1, true
			}
		} else {
			run = 0
		}

		prev = b
	}

	m.prev = prev
	m.run = run

	return 0, false
}

// Reset returns the pusher to its start-of-stream state without reallocating.
func (m *MiiIncr) Reset() {
	m.prev = prevSentinel
	m.run = 0
}

// Prev returns the last byte examined since the last reset.
func (m *MiiIncr) Prev() byte {
	return m.prev
}

// Run returns the length of the current ascending run.
func (m *MiiIncr) Run() uint64 {
	return m.run
}

// MiiSearchState adapts MiiIncr to SearchState. It is not safe for concurrent
// use.
type MiiSearchState struct {
	incr MiiIncr
}

// FindEdge implements SearchState.
func (s *MiiSearchState) FindEdge(data []byte) (consumed int, found bool) {
	edge, found := s.incr.Push(data)
	if !found {
		return len(data), false
	}

	s.incr.Reset()

	return edge, true
}

// Reset implements SearchState.
func (s *MiiSearchState) Reset() {
	s.incr.Reset()
}

// Incr exposes the wrapped pusher for inspection.
func (s *MiiSearchState) Incr() *MiiIncr {
	return &s.incr
}
