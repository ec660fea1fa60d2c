package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource records draws and replays a fixed index sequence.
type countingSource struct {
	seq   []int
	calls int
}

func (s *countingSource) IntN(n int) int {
	i := s.seq[s.calls%len(s.seq)] % n
	s.calls++
	return i
}

func TestSampleZeroRequested(t *testing.T) {
	src := &countingSource{seq: []int{0}}
	got, err := Sample(src, []uint32{1, 2, 3}, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Zero(t, src.calls)
}

func TestSampleEmptyPoolFailsImmediately(t *testing.T) {
	src := &countingSource{seq: []int{0}}
	_, err := Sample(src, nil, nil, 1)
	assert.ErrorIs(t, err, ErrInsufficientCandidates)
	assert.Zero(t, src.calls)
}

func TestSampleNegativeRequested(t *testing.T) {
	_, err := Sample(&countingSource{seq: []int{0}}, []uint32{1}, nil, -1)
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestSampleRespectsCopyLimit(t *testing.T) {
	// always draws index 0: card 10 is accepted twice then rejected
	src := &countingSource{seq: []int{0}}
	_, err := Sample(src, []uint32{10, 11}, nil, 3)
	assert.ErrorIs(t, err, ErrInsufficientCandidates)
	assert.Equal(t, DefaultMaxAttempts, src.calls)
}

func TestSampleCountsPriorCopies(t *testing.T) {
	src := &countingSource{seq: []int{0, 1, 0, 1}}
	prior := map[uint32]int{10: 1}
	got, err := Sample(src, []uint32{10, 11}, prior, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint32{10, 11, 11}, got)
	assert.Equal(t, map[uint32]int{10: 1}, prior, "prior must not be modified")
}

func TestSampleRejectedDrawsUseBudget(t *testing.T) {
	// three rejections of card 10 then one acceptance of 11 needs four draws
	src := &countingSource{seq: []int{0, 0, 0, 1}}
	prior := map[uint32]int{10: 2}

	_, err := Sample(src, []uint32{10, 11}, prior, 1, WithMaxAttempts(3))
	assert.ErrorIs(t, err, ErrInsufficientCandidates)
	assert.Equal(t, 3, src.calls)

	src = &countingSource{seq: []int{0, 0, 0, 1}}
	got, err := Sample(src, []uint32{10, 11}, prior, 1, WithMaxAttempts(4))
	require.NoError(t, err)
	assert.Equal(t, []uint32{11}, got)
}

func TestSampleMaxCopiesOption(t *testing.T) {
	src := &countingSource{seq: []int{0}}
	got, err := Sample(src, []uint32{5}, nil, 1, WithMaxCopies(1))
	require.NoError(t, err)
	assert.Equal(t, []uint32{5}, got)

	_, err = Sample(src, []uint32{5}, map[uint32]int{5: 1}, 1, WithMaxCopies(1))
	assert.ErrorIs(t, err, ErrInsufficientCandidates)
}

func TestSampleDuplicateInvariant(t *testing.T) {
	pool := make([]uint32, 40)
	for i := range pool {
		pool[i] = uint32(i + 1)
	}
	for seed := uint64(0); seed < 100; seed++ {
		prior := map[uint32]int{1: 2, 2: 1, 3: 1}
		got, err := Sample(NewSource(seed), pool, prior, 12, WithMaxAttempts(200))
		require.NoError(t, err)
		require.Len(t, got, 12)

		counts := map[uint32]int{}
		for _, id := range got {
			counts[id]++
		}
		for id, n := range counts {
			if n+prior[id] > DefaultMaxCopies {
				t.Fatalf("seed %d: card %d has %d copies", seed, id, n+prior[id])
			}
		}
	}
}

func TestSampleDeterministicWithSeed(t *testing.T) {
	pool := []uint32{1, 2, 3, 4, 5, 6, 7, 8, 9}
	a, err := Sample(NewSource(42), pool, nil, 8, WithMaxAttempts(500))
	require.NoError(t, err)
	b, err := Sample(NewSource(42), pool, nil, 8, WithMaxAttempts(500))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
