package chrono

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStandardImpl(t *testing.T) {
	utc, err := NewStandardImpl("")
	require.NoError(t, err)
	require.Equal(t, time.UTC, utc.Location())
	require.Equal(t, time.UTC, utc.Now().Location())

	la, err := NewStandardImpl("America/Los_Angeles")
	require.NoError(t, err)
	require.Equal(t, "America/Los_Angeles", la.Now().Location().String())

	_, err = NewStandardImpl("Not/A_Zone")
	require.Error(t, err)
}

func TestFixedImpl(t *testing.T) {
	now := time.Date(2021, time.May, 3, 12, 30, 0, 0, time.UTC)
	fixed := FixedImpl{Time: now}
	require.Equal(t, now, fixed.Now())
	require.Equal(t, time.UTC, fixed.Location())
}
