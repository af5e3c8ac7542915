package utils

import (
	"math"
	"math/rand"
	"time"
)

// PRNGService wraps the standard generator so that every render object of a
// scene can draw from one seeded source and runs stay reproducible.
type PRNGService struct {
	rng *rand.Rand
}

// NewPRNGService creates a service with the given seed.
// A zero seed means the current time is used.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	source := rand.NewSource(seed)
	return &PRNGService{
		rng: rand.New(source),
	}
}

// Float64 returns a number in [0.0, 1.0).
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// Uniform returns a number in [lo, hi).
func (s *PRNGService) Uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Below returns a number in [0, n). For n <= 0 it returns 0.
func (s *PRNGService) Below(n float64) float64 {
	if n <= 0 {
		return 0
	}
	v := s.rng.Float64() * n
	// Float64()*n can round up to n for large n
	if v >= n {
		v = math.Nextafter(n, 0)
	}
	return v
}
