package seeder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveNameSuffixesOnCollision(t *testing.T) {
	tr := NewTracker()

	first, err := tr.ReserveName("username", "josegarcia", 50, nil)
	require.NoError(t, err)
	second, err := tr.ReserveName("username", "josegarcia", 50, nil)
	require.NoError(t, err)

	assert.Equal(t, "josegarcia", first)
	assert.Equal(t, "josegarcia1", second)
}

func TestReserveNameScopesAreIndependent(t *testing.T) {
	tr := NewTracker()

	_, err := tr.ReserveName("username", "smith", 50, nil)
	require.NoError(t, err)
	name, err := tr.ReserveName("category", "smith", 50, nil)
	require.NoError(t, err)

	assert.Equal(t, "smith", name)
}

func TestReserveNameTruncatesToFit(t *testing.T) {
	tr := NewTracker()

	name, err := tr.ReserveName("title", "abcdefghij", 6, nil)
	require.NoError(t, err)
	assert.Equal(t, "abcdef", name)

	// The suffix must fit inside the limit too.
	next, err := tr.ReserveName("title", "abcdefghij", 6, nil)
	require.NoError(t, err)
	assert.Equal(t, "abcde1", next)
	assert.LessOrEqual(t, len(next), 6)
}

func TestReserveNameConsultsStore(t *testing.T) {
	tr := NewTracker()
	stored := map[string]bool{"taken": true}

	name, err := tr.ReserveName("username", "taken", 50, func(candidate string) (bool, error) {
		return stored[candidate], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "taken1", name)
}

func TestReserveNameStoreError(t *testing.T) {
	tr := NewTracker()
	boom := errors.New("connection lost")

	_, err := tr.ReserveName("username", "x", 50, func(string) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestReserveWithExhaustion(t *testing.T) {
	tr := NewTracker()

	// The generator keeps producing the same candidate, so after the first
	// reservation every attempt collides.
	_, err := tr.ReserveWith("title", 50, nil, func(int) string { return "same" })
	require.NoError(t, err)
	_, err = tr.ReserveWith("title", 50, nil, func(int) string { return "same" })
	assert.ErrorIs(t, err, ErrKeyExhausted)
}

func TestReservePair(t *testing.T) {
	tr := NewTracker()

	require.NoError(t, tr.ReservePair(1, 2))
	require.NoError(t, tr.ReservePair(2, 1))
	assert.ErrorIs(t, tr.ReservePair(1, 2), ErrDuplicatePair)
	assert.Equal(t, 2, tr.PairCount())
}
