// Package cdc provides content-defined chunking (CDC) primitives and the MII
// run-counter algorithm.
//
// # Overview
//
// Content-defined chunking picks split points ("edges") in a byte stream from
// local byte patterns only. Inserting or deleting bytes therefore only moves the
// edges near the edit, so two streams that differ by a small edit still share
// most of their chunks. This is what makes content-addressed storage and delta
// transfer effective.
//
// This package only decides where to cut. It does not hash, store or
// deduplicate chunks.
//
// # Contracts
//
// Every algorithm in this package implements three small interfaces:
//   - Algorithm: immutable configuration that produces fresh scanning state
//   - Incremental: raw Push of consecutive slices, reports the next edge
//   - SearchState: FindEdge, which resets itself after reporting an edge
//
// Slices must be fed in stream order with no gaps or overlaps. After an edge
// is reported at offset k, the next slice must start at data[k].
//
// # Quick Start
//
// Simple streaming API:
//
//	chunker, _ := cdc.NewChunker(reader, cdc.WithThreshold(5))
//	for {
//	    chunk, err := chunker.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    // Process chunk.Data
//	}
//
// Zero-allocation API for performance-critical code:
//
//	state := cdc.DefaultMii().SearchState()
//	for len(data) > 0 {
//	    n, found := state.FindEdge(data)
//	    if found {
//	        // data[:n] completes the current chunk
//	    }
//	    data = data[n:]
//	}
//
// # Algorithm
//
// MII counts runs of strictly increasing bytes. When w consecutive bytes are
// each greater than the byte before them, the stream is cut after the last of
// them. A fresh run starts with the previous byte set to 0xff, so the first
// byte of a stream never counts as an increment. On random data each byte
// increases with probability close to 1/2, so larger w gives exponentially
// larger chunks.
//
// The threshold is not validated: w = 0 never produces an edge.
//
// # Thread Safety
//
// Algorithm values are immutable and may be shared. Incremental and
// SearchState instances mutate on every call and must be owned by one
// goroutine. Separate streams may be chunked in parallel with separate states;
// use ChunkerPool or SearchStatePool to recycle them.
package cdc
