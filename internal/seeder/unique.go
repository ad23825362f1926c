package seeder

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrDuplicatePair signals an already-reserved (user, course) pair. The
	// caller re-draws a different pair; suffixing a pair is meaningless.
	ErrDuplicatePair = errors.New("unique: pair already reserved")
	// ErrKeyExhausted signals that no unique candidate was found within the
	// attempt budget. The offending child is skipped, not the run.
	ErrKeyExhausted = errors.New("unique: attempt budget exhausted")
)

// maxReserveAttempts bounds every uniqueness retry loop.
const maxReserveAttempts = 50

// ExistsFunc reports whether a candidate is already present in the persisted
// store. A nil func means only the in-run set is consulted.
type ExistsFunc func(candidate string) (bool, error)

// Tracker guards natural-key uniqueness for one generation run. It is owned
// exclusively by the stage that created it; nothing else mutates it.
type Tracker struct {
	names map[string]map[string]struct{}
	pairs map[[2]int64]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{
		names: make(map[string]map[string]struct{}),
		pairs: make(map[[2]int64]struct{}),
	}
}

// ReserveName reserves base within scope, appending an incrementing numeric
// suffix on collision. The base is truncated so candidates never exceed
// maxLen.
func (t *Tracker) ReserveName(scope, base string, maxLen int, exists ExistsFunc) (string, error) {
	candidate := truncateRunes(base, maxLen)
	for attempt := 1; attempt <= maxReserveAttempts; attempt++ {
		ok, err := t.free(scope, candidate, maxLen, exists)
		if err != nil {
			return "", err
		}
		if ok {
			t.reserve(scope, candidate)
			return candidate, nil
		}
		suffix := strconv.Itoa(attempt)
		candidate = truncateRunes(base, maxLen-len(suffix)) + suffix
	}
	return "", fmt.Errorf("%w: scope %s, base %q", ErrKeyExhausted, scope, base)
}

// ReserveWith reserves a candidate produced by gen, which receives the
// attempt number (starting at 0) and may re-draw a completely new candidate
// each time. Used where a fresh candidate is cheaper than a suffix (emails,
// templated titles).
func (t *Tracker) ReserveWith(scope string, maxLen int, exists ExistsFunc, gen func(attempt int) string) (string, error) {
	for attempt := 0; attempt < maxReserveAttempts; attempt++ {
		candidate := truncateRunes(gen(attempt), maxLen)
		ok, err := t.free(scope, candidate, maxLen, exists)
		if err != nil {
			return "", err
		}
		if ok {
			t.reserve(scope, candidate)
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: scope %s", ErrKeyExhausted, scope)
}

// ReservePair reserves an (a, b) pair, returning ErrDuplicatePair when it was
// already taken in this run.
func (t *Tracker) ReservePair(a, b int64) error {
	key := [2]int64{a, b}
	if _, taken := t.pairs[key]; taken {
		return fmt.Errorf("%w: (%d, %d)", ErrDuplicatePair, a, b)
	}
	t.pairs[key] = struct{}{}
	return nil
}

// PairCount returns how many pairs have been reserved so far.
func (t *Tracker) PairCount() int {
	return len(t.pairs)
}

func (t *Tracker) free(scope, candidate string, maxLen int, exists ExistsFunc) (bool, error) {
	if candidate == "" {
		return false, nil
	}
	if _, taken := t.names[scope][candidate]; taken {
		return false, nil
	}
	if exists != nil {
		stored, err := exists(candidate)
		if err != nil {
			return false, fmt.Errorf("uniqueness lookup for %s failed: %w", scope, err)
		}
		if stored {
			return false, nil
		}
	}
	return true, nil
}

func (t *Tracker) reserve(scope, candidate string) {
	if t.names[scope] == nil {
		t.names[scope] = make(map[string]struct{})
	}
	t.names[scope][candidate] = struct{}{}
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
