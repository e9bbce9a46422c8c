package domain

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMacRoundTrip(t *testing.T) {
	m, err := ParseMac("aa:bb:cc:dd:ee:ff")
	require.NoError(t, err)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", m.String())
}

func TestParseMacRejectsGarbage(t *testing.T) {
	_, err := ParseMac("not-a-mac")
	assert.ErrorIs(t, err, ErrInvalidMAC)
}

func TestMinMaxIsPermutationAndOrdered(t *testing.T) {
	f := func(a, b [6]byte) bool {
		lo, hi := MinMax(Mac(a), Mac(b))
		if !lo.Less(hi) && lo != hi {
			return false
		}
		set := map[Mac]bool{Mac(a): true, Mac(b): true}
		return set[lo] && set[hi]
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestBroadcastMac(t *testing.T) {
	assert.True(t, BroadcastMac.IsBroadcast())
	m, err := ParseMac("ff:ff:ff:ff:ff:ff")
	require.NoError(t, err)
	assert.True(t, m.IsBroadcast())
}
