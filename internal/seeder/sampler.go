package seeder

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrInvalidRange reports an inverted sampling interval. Window clamping keeps
// this out of the normal flow; the guard stays for callers that bypass it.
var ErrInvalidRange = errors.New("sampler: interval start is after end")

// Sampler draws instants, integers and weighted labels from a single seedable
// source so that whole runs are reproducible under a fixed seed.
type Sampler struct {
	rand *rand.Rand
}

// NewSampler builds a sampler from the given seed. A zero seed means
// "non-reproducible": the current time is used instead.
func NewSampler(seed int64) *Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Sampler{rand: rand.New(rand.NewSource(seed))}
}

// Between returns a uniform random instant in [start, end].
func (s *Sampler) Between(start, end time.Time) (time.Time, error) {
	if start.After(end) {
		return time.Time{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	span := end.Sub(start)
	if span == 0 {
		return start, nil
	}
	// +1 keeps the interval closed: end itself must be drawable.
	return start.Add(time.Duration(s.rand.Int63n(int64(span) + 1))), nil
}

// Sequential spreads count samples across [start, end] so that index order
// roughly follows chronological order. Jitter can invert adjacent instants;
// the result is clamped back into the interval so it never escapes the
// parent window.
func (s *Sampler) Sequential(start, end time.Time, index, count int) (time.Time, error) {
	at, _, err := s.sequential(start, end, index, count)
	return at, err
}

// sequential also reports the jittered step, which the progress stage reuses
// to place a completion instant one interval after the access instant.
func (s *Sampler) sequential(start, end time.Time, index, count int) (time.Time, time.Duration, error) {
	if start.After(end) {
		return time.Time{}, 0, fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	if count < 1 {
		count = 1
	}
	base := end.Sub(start) / time.Duration(count+1)
	step := time.Duration(float64(base) * (0.8 + s.rand.Float64()*0.4))
	at := start.Add(time.Duration(index) * step)
	if at.Before(start) {
		at = start
	}
	if at.After(end) {
		at = end
	}
	return at, step, nil
}

// IntBetween returns a uniform integer in [min, max].
func (s *Sampler) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rand.Intn(max-min+1)
}

// Perm returns a random permutation of [0, n).
func (s *Sampler) Perm(n int) []int {
	return s.rand.Perm(n)
}

func (s *Sampler) pick(list []string) string {
	return list[s.rand.Intn(len(list))]
}

// Choice pairs a candidate value with its relative weight. Weights do not
// need to sum to one.
type Choice[T any] struct {
	Value  T
	Weight float64
}

// Weighted draws one value from a categorical distribution. Non-positive
// weights are ignored; if nothing has positive weight the first value wins.
func Weighted[T any](s *Sampler, choices []Choice[T]) T {
	total := 0.0
	for _, c := range choices {
		if c.Weight > 0 {
			total += c.Weight
		}
	}
	if total == 0 {
		return choices[0].Value
	}
	r := s.rand.Float64() * total
	for _, c := range choices {
		if c.Weight <= 0 {
			continue
		}
		r -= c.Weight
		if r < 0 {
			return c.Value
		}
	}
	return choices[len(choices)-1].Value
}
