package cdc

import (
	"errors"
	"io"
)

// Chunk represents a content-defined chunk with its position in the stream.
type Chunk struct {
	Offset uint64 // Absolute offset in the stream
	Length uint64 // Chunk size in bytes
	Data   []byte // Chunk data (points into internal buffer)
}

// Chunker provides a convenient streaming API for content-defined chunking.
// It wraps an io.Reader and returns chunks via the Next() method.
//
// Chunker drives the SearchState of its Algorithm: it feeds the buffered bytes
// in stream order, cuts a chunk at every reported edge and resubmits the bytes
// after the edge on the following call. The internal buffer grows when a single
// chunk does not fit, so memory use is bounded by the largest chunk.
type Chunker struct {
	alg    Algorithm   // Chunking algorithm
	state  SearchState // Edge search state for the current stream
	reader io.Reader   // Input stream

	buf    []byte // Buffered data, buf[start:] not yet returned
	start  int    // Start of the current chunk in buf
	scan   int    // Bytes of buf already fed to state
	offset uint64 // Absolute offset of buf[start]
	eof    bool   // EOF reached
}

// NewChunker creates a new Chunker that reads from the given io.Reader.
func NewChunker(r io.Reader, opts ...Option) (*Chunker, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return newChunkerWithConfig(r, &cfg), nil
}

func newChunkerWithConfig(r io.Reader, cfg *config) *Chunker {
	return &Chunker{
		alg:    cfg.alg,
		state:  cfg.alg.NewSearchState(),
		reader: r,
		buf:    make([]byte, 0, cfg.bufferSize),
	}
}

// fillBuffer moves the unfinished chunk to the front of the buffer and reads
// more from the reader, growing the buffer if the chunk already fills it.
func (c *Chunker) fillBuffer() error {
	n := copy(c.buf[:cap(c.buf)], c.buf[c.start:])
	c.scan -= c.start
	c.start = 0

	buf := c.buf[:cap(c.buf)]
	if n == len(buf) {
		grown := make([]byte, 2*len(buf))
		copy(grown, buf[:n])
		buf = grown
	}

	m, err := io.ReadFull(c.reader, buf[n:])
	c.buf = buf[:n+m]

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		c.eof = true
	} else if err != nil {
		return err
	}

	return nil
}

// Next returns the next chunk from the stream.
// Returns io.EOF when the stream is exhausted.
//
// The bytes after the last edge are returned as a final chunk.
// The returned Chunk.Data slice is valid until the next call to Next() or Reset().
// If you need to keep the data, copy it to your own buffer.
func (c *Chunker) Next() (Chunk, error) {
	for {
		if c.scan < len(c.buf) {
			n, found := c.state.FindEdge(c.buf[c.scan:])
			c.scan += n

			if found {
				return c.cut(), nil
			}
		}

		if c.eof {
			if c.start == len(c.buf) {
				return Chunk{}, io.EOF
			}

			return c.cut(), nil
		}

		if err := c.fillBuffer(); err != nil {
			return Chunk{}, err
		}
	}
}

// cut returns buf[start:scan] as a chunk and starts the next one.
func (c *Chunker) cut() Chunk {
	length := uint64(c.scan - c.start) //nolint:gosec // G115

	chunk := Chunk{
		Offset: c.offset,
		Length: length,
		Data:   c.buf[c.start:c.scan],
	}

	c.start = c.scan
	c.offset += length

	return chunk
}

// Reset resets the chunker to start processing a new stream.
// The reader is replaced with the provided one, and all state is cleared.
func (c *Chunker) Reset(r io.Reader) {
	c.reader = r
	c.state.Reset()
	c.buf = c.buf[:0]
	c.start = 0
	c.scan = 0
	c.offset = 0
	c.eof = false
}

// Offset returns the absolute offset of the next chunk in the stream.
func (c *Chunker) Offset() uint64 {
	return c.offset
}

// Algorithm returns the chunking algorithm in use.
func (c *Chunker) Algorithm() Algorithm {
	return c.alg
}
