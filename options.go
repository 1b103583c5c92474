package cdc

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBufferSize is returned when bufferSize is not positive.
	ErrInvalidBufferSize = errors.New("bufferSize must be greater than 0")

	// ErrNilAlgorithm is returned when a nil Algorithm is configured.
	ErrNilAlgorithm = errors.New("algorithm must not be nil")
)

const (
	// DefaultBufferSize is the default initial buffer size for the streaming API (512 KiB).
	// The buffer grows when a single chunk does not fit.
	DefaultBufferSize = 512 * 1024
)

// Option is a function that configures a Chunker or a pool.
type Option func(*config) error

// config holds the configuration for chunking.
type config struct {
	alg        Algorithm
	bufferSize int
}

func defaultConfig() config {
	return config{
		alg:        DefaultMii(),
		bufferSize: DefaultBufferSize,
	}
}

// newConfig applies opts on top of the defaults and validates the result.
func newConfig(opts ...Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}

	if err := cfg.validate(); err != nil {
		return config{}, err
	}

	return cfg, nil
}

// validate checks that the configuration is valid.
func (c *config) validate() error {
	if c.alg == nil {
		return ErrNilAlgorithm
	}

	if c.bufferSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBufferSize, c.bufferSize)
	}

	return nil
}

// WithAlgorithm sets the chunking algorithm.
func WithAlgorithm(alg Algorithm) Option {
	return func(c *config) error {
		if alg == nil {
			return ErrNilAlgorithm
		}

		c.alg = alg

		return nil
	}
}

// WithThreshold selects the run-counter algorithm with threshold w.
// Like NewMii, it accepts any w, including 0.
func WithThreshold(w uint64) Option {
	return func(c *config) error {
		c.alg = NewMii(w)

		return nil
	}
}

// WithBufferSize sets the initial internal buffer size for the streaming API.
func WithBufferSize(size int) Option {
	return func(c *config) error {
		if size <= 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidBufferSize, size)
		}

		c.bufferSize = size

		return nil
	}
}
