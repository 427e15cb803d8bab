package environment

import (
	"golang.org/x/exp/rand"
)

// StartPool samples starting cells without replacement. The pool is a
// shuffled copy of all start cells; once it is exhausted it is refilled
// from the full set, so every cell is drawn exactly once per pass.
type StartPool struct {
	cells []Cell
	pool  []Cell
	rng   *rand.Rand
}

// NewStartPool returns a new StartPool over cells, shuffling with rng
func NewStartPool(cells []Cell, rng *rand.Rand) *StartPool {
	all := make([]Cell, len(cells))
	copy(all, cells)

	return &StartPool{cells: all, rng: rng}
}

// Start draws the next starting cell. Start panics if the pool was
// created without any cells.
func (s *StartPool) Start() Cell {
	if len(s.cells) == 0 {
		panic("start: no start cells")
	}

	if len(s.pool) == 0 {
		s.refill()
	}

	last := len(s.pool) - 1
	cell := s.pool[last]
	s.pool = s.pool[:last]
	return cell
}

// Remaining returns the number of cells left before the pool refills
func (s *StartPool) Remaining() int {
	return len(s.pool)
}

func (s *StartPool) refill() {
	s.pool = append(s.pool[:0], s.cells...)
	s.rng.Shuffle(len(s.pool), func(i, j int) {
		s.pool[i], s.pool[j] = s.pool[j], s.pool[i]
	})
}
