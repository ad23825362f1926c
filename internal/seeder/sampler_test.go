package seeder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBetweenStaysInBounds(t *testing.T) {
	s := NewSampler(42)
	start := date("2024-01-01")
	end := date("2024-12-31")

	for i := 0; i < 1000; i++ {
		at, err := s.Between(start, end)
		require.NoError(t, err)
		assert.False(t, at.Before(start))
		assert.False(t, at.After(end))
	}
}

func TestBetweenInvertedRange(t *testing.T) {
	s := NewSampler(42)

	_, err := s.Between(date("2024-12-31"), date("2024-01-01"))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestBetweenEmptyRange(t *testing.T) {
	s := NewSampler(42)
	at := date("2024-06-01")

	got, err := s.Between(at, at)
	require.NoError(t, err)
	assert.Equal(t, at, got)
}

func TestBetweenReachesEnd(t *testing.T) {
	s := NewSampler(7)
	start := date("2024-06-01")
	end := start.Add(time.Nanosecond)

	// The interval is closed, so a one-nanosecond span must yield both ends.
	sawStart, sawEnd := false, false
	for i := 0; i < 200; i++ {
		got, err := s.Between(start, end)
		require.NoError(t, err)
		switch {
		case got.Equal(start):
			sawStart = true
		case got.Equal(end):
			sawEnd = true
		}
	}
	assert.True(t, sawStart)
	assert.True(t, sawEnd)
}

func TestSequentialStaysInBounds(t *testing.T) {
	s := NewSampler(7)
	start := date("2024-01-01")
	end := start.Add(10 * 24 * time.Hour)

	for idx := 0; idx < 4; idx++ {
		at, err := s.Sequential(start, end, idx, 4)
		require.NoError(t, err)
		assert.False(t, at.Before(start), "index %d escaped the start", idx)
		assert.False(t, at.After(end), "index %d escaped the end", idx)
	}
}

func TestSequentialIndexZeroIsStart(t *testing.T) {
	s := NewSampler(7)
	start := date("2024-01-01")
	end := date("2024-03-01")

	at, err := s.Sequential(start, end, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, start, at)
}

func TestWeightedReproducible(t *testing.T) {
	draw := func() []string {
		s := NewSampler(99)
		out := make([]string, 20)
		for i := range out {
			out[i] = Weighted(s, contentWeights)
		}
		return out
	}

	assert.Equal(t, draw(), draw())
}

func TestWeightedDistribution(t *testing.T) {
	s := NewSampler(1234)
	counts := map[string]int{}
	const trials = 10000
	for i := 0; i < trials; i++ {
		counts[Weighted(s, contentWeights)]++
	}

	published := float64(counts[StatusPublished]) / trials
	assert.InDelta(t, 0.7, published, 0.03)
}

func TestWeightedIgnoresNonPositive(t *testing.T) {
	s := NewSampler(1)
	choices := []Choice[string]{
		{"never", 0},
		{"always", 1},
		{"negative", -3},
	}
	for i := 0; i < 100; i++ {
		assert.Equal(t, "always", Weighted(s, choices))
	}
}

func TestIntBetween(t *testing.T) {
	s := NewSampler(5)
	for i := 0; i < 1000; i++ {
		n := s.IntBetween(2, 8)
		assert.GreaterOrEqual(t, n, 2)
		assert.LessOrEqual(t, n, 8)
	}
	assert.Equal(t, 3, s.IntBetween(3, 3))
	assert.Equal(t, 4, s.IntBetween(4, 1))
}
