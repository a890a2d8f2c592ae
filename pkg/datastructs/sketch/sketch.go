package sketch

import (
	"math/rand"
	"time"

	"github.com/huynhanx03/gamekit/pkg/utils"
)

// Sketch is a Count-Min sketch with 4-bit counters, used for compact
// access-frequency estimation. NOT thread-safe.
type Sketch struct {
	rows [cmDepth]cmRow
	seed [cmDepth]uint64
	mask uint64
}

// New creates a sketch with at least numCounters counters per row,
// rounded up to a power of two.
func New(numCounters int64) *Sketch {
	if numCounters <= 0 {
		numCounters = 1
	}
	n := utils.CeilToPowerOfTwo(int(numCounters))
	s := &Sketch{
		mask: uint64(n - 1),
	}

	source := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < cmDepth; i++ {
		s.seed[i] = source.Uint64()
		s.rows[i] = newCmRow(int64(n))
	}
	return s
}

// Increment increments the counter for the given hash in every row.
func (s *Sketch) Increment(hash uint64) {
	for i := range s.rows {
		idx := (hash ^ s.seed[i]) & s.mask
		s.rows[i].increment(idx)
	}
}

// Estimate returns the minimum counter value across rows for the hash.
func (s *Sketch) Estimate(hash uint64) int64 {
	min := byte(255)
	for i := range s.rows {
		idx := (hash ^ s.seed[i]) & s.mask
		val := s.rows[i].get(idx)
		if val < min {
			min = val
		}
	}
	return int64(min)
}

// Reset halves all counter values, aging out stale frequency data.
func (s *Sketch) Reset() {
	for _, r := range s.rows {
		r.reset()
	}
}

// Clear zeroes all counters.
func (s *Sketch) Clear() {
	for _, r := range s.rows {
		r.clear()
	}
}
