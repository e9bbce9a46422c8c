package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spyfi/internal/core/domain"
)

func bssid(b byte) domain.Mac {
	return domain.Mac{0xaa, 0xbb, 0xcc, 0xdd, 0xee, b}
}

func TestUpdateCreatesOneEntryPerBSSID(t *testing.T) {
	idx := NewIndex()
	bs := bssid(1)
	now := time.Unix(1000, 0)

	n := domain.NewNetworkInfo(bs)
	n.Ssid = "cafe"
	n.SignalDB = -40
	n.LastFrameKind = domain.FrameBeacon
	n.Channel = 6

	idx.Update(n, now)
	idx.Update(n, now.Add(time.Second))

	assert.Equal(t, 1, idx.Len())
	got := idx.Get(bs)
	require.NotNil(t, got)
	assert.Equal(t, "cafe", got.Ssid)
	assert.Equal(t, 6, got.Channel)
}

func TestUpdateIdempotentExceptLastSeen(t *testing.T) {
	idx := NewIndex()
	bs := bssid(2)
	n := domain.NewNetworkInfo(bs)
	n.Ssid = "cafe"
	n.Channel = 11
	n.LastFrameKind = domain.FrameBeacon

	idx.Update(n, time.Unix(100, 0))
	first := idx.Get(bs)

	idx.Update(n, time.Unix(200, 0))
	second := idx.Get(bs)

	assert.Equal(t, first.Ssid, second.Ssid)
	assert.Equal(t, first.Channel, second.Channel)
	assert.Equal(t, first.Protocol, second.Protocol)
	assert.NotEqual(t, first.LastSeenSecs, second.LastSeenSecs)
}

func TestChannelOnlyUpdatedByAuthoritativeFrames(t *testing.T) {
	idx := NewIndex()
	bs := bssid(3)
	n := domain.NewNetworkInfo(bs)
	n.Channel = 6
	n.LastFrameKind = domain.FrameBeacon
	idx.Update(n, time.Unix(1, 0))

	probe := domain.NewNetworkInfo(bs)
	probe.Channel = 11
	probe.LastFrameKind = domain.FrameProbeResp
	idx.Update(probe, time.Unix(2, 0))

	got := idx.Get(bs)
	assert.Equal(t, 6, got.Channel, "QosData/ProbeResp must not overwrite channel")
}

func TestAddEapolNoopForUnknownBSSID(t *testing.T) {
	idx := NewIndex()
	err := idx.AddEapol(&domain.EapolMsg{Bssid: bssid(9), Client: domain.Mac{1, 2, 3, 4, 5, 6}, MsgNu: 1, Raw: make([]byte, 140)})
	assert.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
}

func TestAddEapolFreezesHandshakeAfterFourMessages(t *testing.T) {
	idx := NewIndex()
	bs := bssid(4)
	idx.Update(domain.NewNetworkInfo(bs), time.Unix(1, 0))

	client := domain.Mac{1, 2, 3, 4, 5, 6}
	for n := 1; n <= 4; n++ {
		err := idx.AddEapol(&domain.EapolMsg{Bssid: bs, Client: client, MsgNu: n, Raw: make([]byte, 140)})
		require.NoError(t, err)
	}

	got := idx.Get(bs)
	require.NotNil(t, got.Handshake)

	// Further EAPOL is dropped once a handshake exists.
	err := idx.AddEapol(&domain.EapolMsg{Bssid: bs, Client: client, MsgNu: 1, Raw: make([]byte, 140)})
	assert.NoError(t, err)
}
