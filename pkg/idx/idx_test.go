package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_Unique(t *testing.T) {
	seen := make(map[ID]struct{})
	for i := 0; i < 1000; i++ {
		id := New()
		require.False(t, id.IsZero())
		_, dup := seen[id]
		require.False(t, dup, "ids must be unique")
		seen[id] = struct{}{}
	}
}

func TestNew_Sortable(t *testing.T) {
	a := NewAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	b := NewAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Less(t, a.String(), b.String())
}

func TestParse(t *testing.T) {
	id := New()

	parsed, err := Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	_, err = Parse("")
	require.ErrorIs(t, err, ErrInvalid)

	_, err = Parse("not-a-ulid")
	require.ErrorIs(t, err, ErrInvalid)

	// Leading/trailing whitespace is tolerated
	parsed, err = Parse("  " + id.String() + "  ")
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestTime(t *testing.T) {
	at := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	id := NewAt(at)
	require.WithinDuration(t, at, id.Time(), time.Millisecond)

	require.True(t, Zero.Time().IsZero())
	require.True(t, ID("junk").Time().IsZero())
}
