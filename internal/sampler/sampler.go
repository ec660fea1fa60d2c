// Package sampler draws cards from a candidate pool without letting any card
// exceed its copy limit. It is a bounded rejection sampler: when the attempt
// budget runs out it fails instead of searching further.
package sampler

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

const (
	DefaultMaxCopies   = 2
	DefaultMaxAttempts = 30
)

var (
	ErrInsufficientCandidates = errors.New("insufficient candidates")
	ErrInvalidCount           = errors.New("invalid card count")
)

// Source picks a uniform index in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns an independent generator for one request.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type options struct {
	maxCopies   int
	maxAttempts int
}

type Option func(*options)

// WithMaxCopies sets how many copies of one card a deck may hold.
func WithMaxCopies(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxCopies = n
		}
	}
}

// WithMaxAttempts sets how many draws Sample may make.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

// Sample draws requested cards from pool. prior holds the copies already in
// the deck and is not modified.
func Sample(src Source, pool []uint32, prior map[uint32]int, requested int, opts ...Option) ([]uint32, error) {
	o := options{maxCopies: DefaultMaxCopies, maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case requested < 0:
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, requested)
	case requested == 0:
		return []uint32{}, nil
	case len(pool) == 0:
		return nil, fmt.Errorf("%w: empty pool for %d cards", ErrInsufficientCandidates, requested)
	}

	out := make([]uint32, 0, requested)
	taken := make(map[uint32]int, requested)
	for attempt := 0; attempt < o.maxAttempts && len(out) < requested; attempt++ {
		id := pool[src.IntN(len(pool))]
		if prior[id]+taken[id] >= o.maxCopies {
			continue
		}
		taken[id]++
		out = append(out, id)
	}
	if len(out) < requested {
		return nil, fmt.Errorf("%w: drew %d of %d cards from a pool of %d in %d attempts",
			ErrInsufficientCandidates, len(out), requested, len(pool), o.maxAttempts)
	}
	return out, nil
}
