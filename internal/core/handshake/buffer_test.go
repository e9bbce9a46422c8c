package handshake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spyfi/internal/core/domain"
)

func rawOfLen(n int) []byte {
	return make([]byte, n)
}

func msg(n int) *domain.EapolMsg {
	return &domain.EapolMsg{MsgNu: n, Raw: rawOfLen(140)}
}

func TestAssemblyCompletesExactlyOnceForAnyPermutation(t *testing.T) {
	perms := [][]int{
		{1, 2, 3, 4},
		{4, 3, 2, 1},
		{2, 4, 1, 3},
		{3, 1, 4, 2},
	}

	for _, order := range perms {
		var buf Slots
		completions := 0
		for _, n := range order {
			var complete bool
			buf, complete = Accept(buf, msg(n))
			if complete {
				completions++
			}
		}
		assert.Equalf(t, 1, completions, "order %v should complete exactly once", order)
	}
}

func TestDuplicateCausesReset(t *testing.T) {
	var buf Slots
	buf, complete := Accept(buf, msg(1))
	require.False(t, complete)
	buf, complete = Accept(buf, msg(2))
	require.False(t, complete)
	buf, complete = Accept(buf, msg(3))
	require.False(t, complete)
	buf, complete = Accept(buf, msg(4))
	require.True(t, complete)

	// A fifth message for an already-full slot resets the buffer.
	buf, complete = Accept(buf, msg(1))
	assert.False(t, complete)
	assert.NotNil(t, buf[0])
	assert.Nil(t, buf[1])
	assert.Nil(t, buf[2])
	assert.Nil(t, buf[3])
}

func TestFreezeUsesMessagesOneAndTwo(t *testing.T) {
	var buf Slots
	m1 := msg(1)
	m1.Raw[0x19] = 0xAA
	m2 := msg(2)
	m2.Raw[0x19] = 0xBB

	buf, _ = Accept(buf, m1)
	buf, _ = Accept(buf, m2)
	buf, _ = Accept(buf, msg(3))
	buf, complete := Accept(buf, msg(4))
	require.True(t, complete)

	hs, err := Freeze("somessid", buf)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAA), hs.Anonce[0])
	assert.Equal(t, byte(0xBB), hs.Snonce[0])
}
