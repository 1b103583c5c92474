package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kalbasit/cdc"
)

type scanner struct {
	out    io.Writer
	stdin  io.Reader
	opts   []cdc.Option
	detail bool
	log    *zap.Logger
}

// stats accumulates chunk sizes of one stream.
type stats struct {
	chunks int
	bytes  uint64
	sumSq  float64
}

func (s *stats) add(length uint64) {
	s.chunks++
	s.bytes += length
	s.sumSq += float64(length) * float64(length)
}

func (s *stats) mean() float64 {
	if s.chunks == 0 {
		return 0
	}

	return float64(s.bytes) / float64(s.chunks)
}

func (s *stats) stddev() float64 {
	if s.chunks == 0 {
		return 0
	}

	mean := s.mean()

	return math.Sqrt(math.Max(s.sumSq/float64(s.chunks)-mean*mean, 0))
}

func (s *scanner) scanPath(path string) error {
	if path == "-" {
		return s.scan("-", s.stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	return s.scan(path, f)
}

func (s *scanner) scan(name string, r io.Reader) error {
	chunker, err := cdc.NewChunker(r, s.opts...)
	if err != nil {
		return errors.Wrap(err, "configure chunker")
	}

	var st stats

	for {
		chunk, err := chunker.Next()
		if err == io.EOF {
			break
		}

		if err != nil {
			return errors.Wrapf(err, "chunk %s at offset %d", name, chunker.Offset())
		}

		st.add(chunk.Length)

		s.log.Debug("chunk",
			zap.String("path", name),
			zap.Uint64("offset", chunk.Offset),
			zap.Uint64("length", chunk.Length),
		)

		if s.detail {
			if _, err := fmt.Fprintf(s.out, "%s\t%d\t%d\n", name, chunk.Offset, chunk.Length); err != nil {
				return errors.Wrap(err, "write output")
			}
		}
	}

	s.log.Info("scanned",
		zap.String("path", name),
		zap.Int("chunks", st.chunks),
		zap.Uint64("bytes", st.bytes),
	)

	if !s.detail {
		_, err := fmt.Fprintf(s.out, "%s: %d chunks, %s, mean %s, stddev %.0f bytes\n",
			name, st.chunks, humanize.IBytes(st.bytes), humanize.IBytes(uint64(st.mean())), st.stddev())
		if err != nil {
			return errors.Wrap(err, "write output")
		}
	}

	return nil
}
