package cdc

import (
	"io"
	"sync"
)

// ChunkerPool is a pool of Chunker instances for reuse in high-throughput scenarios.
// It reduces allocations by recycling chunkers instead of creating new ones.
type ChunkerPool struct {
	pool sync.Pool
	cfg  config
}

// NewChunkerPool creates a new ChunkerPool with the given options.
// All chunkers created from this pool will use these options.
func NewChunkerPool(opts ...Option) (*ChunkerPool, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &ChunkerPool{
		cfg: cfg,
	}, nil
}

// Get retrieves a Chunker from the pool, or creates a new one if the pool is empty.
// The chunker is configured with the given reader and ready to use.
func (p *ChunkerPool) Get(r io.Reader) *Chunker {
	if v := p.pool.Get(); v != nil {
		chunker := v.(*Chunker)
		chunker.Reset(r)

		return chunker
	}

	return newChunkerWithConfig(r, &p.cfg)
}

// Put returns a Chunker to the pool for reuse.
// The chunker should not be used after being returned to the pool.
func (p *ChunkerPool) Put(c *Chunker) {
	// Clear the reader to avoid holding references
	c.reader = nil
	p.pool.Put(c)
}

// SearchStatePool is a pool of search states derived from one Algorithm.
// Every state handed out is reset to the start of a stream.
type SearchStatePool struct {
	pool sync.Pool
	alg  Algorithm
}

// NewSearchStatePool creates a new SearchStatePool for alg.
func NewSearchStatePool(alg Algorithm) (*SearchStatePool, error) {
	if alg == nil {
		return nil, ErrNilAlgorithm
	}

	return &SearchStatePool{
		alg: alg,
	}, nil
}

// Get retrieves a SearchState from the pool, or creates a new one if the pool is empty.
func (p *SearchStatePool) Get() SearchState {
	if v := p.pool.Get(); v != nil {
		state := v.(SearchState)
		state.Reset()

		return state
	}

	return p.alg.NewSearchState()
}

// Put returns a SearchState to the pool for reuse.
// The state should not be used after being returned to the pool.
func (p *SearchStatePool) Put(s SearchState) {
	s.Reset()
	p.pool.Put(s)
}
