package maze

import (
	"errors"
	"math/rand/v2"
)

var (
	ErrRandomSourceExhausted = errors.New("maze: random source exhausted")
	ErrRandomSourceInvalid   = errors.New("maze: random source returned value out of range")
)

// RandomSource supplies uniform integers in [0, n).
type RandomSource interface {
	IntN(n int) (int, error)
}

// RandSource adapts a math/rand/v2 generator.
type RandSource struct {
	r *rand.Rand
}

// NewRandSource returns a PCG-backed source. The same seed always yields the
// same maze.
func NewRandSource(seed uint64) *RandSource {
	return &RandSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *RandSource) IntN(n int) (int, error) {
	if s == nil || s.r == nil {
		return 0, ErrRandomSourceExhausted
	}
	return s.r.IntN(n), nil
}

// ConstantSource always returns the same value.
type ConstantSource int

func (c ConstantSource) IntN(n int) (int, error) {
	return int(c), nil
}

// SequenceSource replays a fixed list of values and then runs dry.
type SequenceSource struct {
	values []int
	pos    int
}

func NewSequenceSource(values ...int) *SequenceSource {
	return &SequenceSource{values: append([]int(nil), values...)}
}

func (s *SequenceSource) IntN(n int) (int, error) {
	if s == nil || s.pos >= len(s.values) {
		return 0, ErrRandomSourceExhausted
	}
	v := s.values[s.pos]
	s.pos++
	return v, nil
}

// Remaining reports how many values have not been consumed yet.
func (s *SequenceSource) Remaining() int {
	if s == nil {
		return 0
	}
	return len(s.values) - s.pos
}
