package ie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRSNWPA2PSK(t *testing.T) {
	data := []byte{
		0x01, 0x00, // Version
		0x00, 0x0F, 0xAC, 0x04, // Group cipher: CCMP
		0x01, 0x00, // Pairwise count
		0x00, 0x0F, 0xAC, 0x04, // Pairwise: CCMP
		0x01, 0x00, // AKM count
		0x00, 0x0F, 0xAC, 0x02, // AKM: PSK
		0x00, 0x00, // Capabilities
	}

	rsn, err := ParseRSN(data)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), rsn.Version)
	assert.Equal(t, "CCMP", rsn.GroupCipher)
	assert.Contains(t, rsn.AKMSuites, "PSK")
}

func TestParseRSNWPA3SAEWithPMF(t *testing.T) {
	data := []byte{
		0x01, 0x00,
		0x00, 0x0F, 0xAC, 0x04,
		0x01, 0x00,
		0x00, 0x0F, 0xAC, 0x04,
		0x01, 0x00,
		0x00, 0x0F, 0xAC, 0x08, // AKM: SAE
		0xC0, 0x00,             // Capabilities: MFPRequired + MFPCapable
	}

	rsn, err := ParseRSN(data)
	require.NoError(t, err)
	assert.Contains(t, rsn.AKMSuites, "SAE")
	assert.True(t, rsn.Capabilities.MFPCapable)
	assert.True(t, rsn.Capabilities.MFPRequired)
}

func TestParseRSNTooShort(t *testing.T) {
	_, err := ParseRSN([]byte{0x01})
	assert.Error(t, err)
}

func TestFindIEAndParseSSID(t *testing.T) {
	ies := []byte{0x00, 0x04, 'T', 'e', 's', 't', 0x03, 0x01, 0x06}
	assert.Equal(t, "Test", ParseSSID(ies))
	assert.Equal(t, 6, ParseChannel(ies))
}

func TestParseSSIDHidden(t *testing.T) {
	ies := []byte{0x00, 0x00}
	assert.Equal(t, "<HIDDEN>", ParseSSID(ies))
}
