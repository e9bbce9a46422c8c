package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPSKKnownAnswer(t *testing.T) {
	psk := PSK("kemparajanusha", "Praneeth")
	want, err := hex.DecodeString("fb18560e63909f84")
	require.NoError(t, err)
	assert.Equal(t, want, psk[:8])
}

func TestPRFLengths(t *testing.T) {
	k := []byte("some-key-material-000000000000")
	assert.Len(t, PRF128(k, "label", []byte("b")), 16)
	assert.Len(t, PRF512(k, "label", []byte("b")), 64)
}

func TestPRFDeterministic(t *testing.T) {
	k := []byte("some-key-material-000000000000")
	a := PRF512(k, "Pairwise key expansion", []byte("context"))
	b := PRF512(k, "Pairwise key expansion", []byte("context"))
	assert.Equal(t, a, b)

	c := PRF512(k, "Pairwise key expansion", []byte("different"))
	assert.NotEqual(t, a, c)
}

func TestKCKIsFirst16BytesOfPTK(t *testing.T) {
	psk := PSK("passphraseone", "ssid")
	ptk := PTK(psk, []byte("aaaaaa"), []byte("bbbbbb"), make([]byte, 32), make([]byte, 32))
	require.Len(t, ptk, 64)
	assert.Equal(t, ptk[:16], KCK(ptk))
}

func TestZeroMicWindowPreservesOtherBytes(t *testing.T) {
	window := make([]byte, 121)
	for i := range window {
		window[i] = byte(i)
	}
	ZeroMicWindow(window, 81, 97)
	for i, b := range window {
		if i >= 81 && i < 97 {
			assert.Equalf(t, byte(0), b, "byte %d should be zeroed", i)
		} else {
			assert.Equalf(t, byte(i), b, "byte %d should be unchanged", i)
		}
	}
}

func TestPTKDeterministicForSameInputs(t *testing.T) {
	psk := PSK("passphraseone", "ssid")
	macA, macB := []byte("aaaaaa"), []byte("bbbbbb")
	nonceA, nonceB := make([]byte, 32), make([]byte, 32)
	nonceB[0] = 1

	ptk1 := PTK(psk, macA, macB, nonceA, nonceB)
	ptk2 := PTK(psk, macA, macB, nonceA, nonceB)
	assert.Equal(t, ptk1, ptk2)
}
