package domain

import "time"

// WildcardSSID is the sentinel an empty/broadcast SSID normalises to at
// parse time, so that "unseen yet" and "explicitly hidden" never collide
// with the empty string in map keys or display code.
const WildcardSSID = "WILDCARD"

// NormalizeSSID applies the wildcard sentinel rule to a raw parsed SSID.
func NormalizeSSID(raw string) string {
	if raw == "" {
		return WildcardSSID
	}
	return raw
}

// FrameKind tags the 802.11 frame a NetworkInfo observation was derived
// from; only a subset of kinds carry authoritative channel information.
type FrameKind string

const (
	FrameBeacon    FrameKind = "Beacon"
	FrameProbeReq  FrameKind = "ProbeReq"
	FrameProbeResp FrameKind = "ProbeResp"
	FrameAssocReq  FrameKind = "AssocReq"
	FrameAssocResp FrameKind = "AssocResp"
	FrameQosNull   FrameKind = "QosNull"
	FrameQosData   FrameKind = "QosData"
	FrameUnhandled FrameKind = "Unhandled"
)

// carriesChannel reports whether a frame of this kind definitively carries
// the station's own operating channel, per the Network Index merge rule.
func (k FrameKind) carriesChannel() bool {
	switch k {
	case FrameBeacon, FrameAssocReq, FrameAssocResp:
		return true
	default:
		return false
	}
}

// Client is a station observed associated with, or probing, a network.
type Client struct {
	Mac     Mac `json:"mac"`
	Channel int `json:"channel"`
}

// NetworkInfo is the per-BSSID aggregate maintained by the Network Index.
// Exactly one instance exists per BSSID; front-end snapshots are copies.
type NetworkInfo struct {
	Bssid    Mac      `json:"bssid"`
	Ssid     string   `json:"ssid"`
	Channel  int      `json:"channel,omitempty"`
	SignalDB int      `json:"signal_dbm,omitempty"`
	Protocol Protocol `json:"protocol"`

	Clients map[Mac]Client `json:"clients"`

	// Captured holds up to four EAPOL messages per client MAC, indexed
	// 1..4 at positions 0..3. Once Handshake is non-nil for this BSSID
	// further EAPOL frames for it are dropped and Captured is no longer
	// consulted.
	Captured map[Mac][4]*EapolMsg `json:"-"`

	Handshake *Handshake `json:"handshake,omitempty"`

	// PMKIDHint records that message 1 of some client's handshake carried
	// an opportunistically capturable PMKID. Informational only: PMKID
	// cracking itself is out of scope.
	PMKIDHint bool `json:"pmkid_hint,omitempty"`

	LastSeenSecs  int64     `json:"last_seen_secs"`
	LastFrameKind FrameKind `json:"last_frame_kind"`
}

// NewNetworkInfo builds an empty aggregate for a freshly observed BSSID.
func NewNetworkInfo(bssid Mac) *NetworkInfo {
	return &NetworkInfo{
		Bssid:    bssid,
		Ssid:     WildcardSSID,
		Protocol: ProtocolUnknown,
		Clients:  make(map[Mac]Client),
		Captured: make(map[Mac][4]*EapolMsg),
	}
}

// Clone returns a deep-enough copy suitable for a front-end snapshot:
// mutating the clients map or handshake pointer on the copy never affects
// the Network Index's own entry.
func (n *NetworkInfo) Clone() *NetworkInfo {
	c := *n
	c.Clients = make(map[Mac]Client, len(n.Clients))
	for k, v := range n.Clients {
		c.Clients[k] = v
	}
	c.Captured = nil // internal handshake-assembly state; not part of a snapshot
	return &c
}

// AddClient inserts or refreshes a client, enforcing the invariant that the
// broadcast MAC is never recorded as a client.
func (n *NetworkInfo) AddClient(mac Mac, channel int) {
	if mac.IsBroadcast() {
		return
	}
	n.Clients[mac] = Client{Mac: mac, Channel: channel}
}

// Merge folds another observation of the same BSSID into n, per the Network
// Index update rules in §4.5: signal/last-seen are overwritten, channel only
// from authoritative frames, clients set-union, ssid/protocol upgrade from
// unknown only, handshake monotonic.
func (n *NetworkInfo) Merge(other *NetworkInfo, nowSecs int64) {
	n.SignalDB = other.SignalDB
	n.LastSeenSecs = nowSecs
	n.LastFrameKind = other.LastFrameKind

	if other.LastFrameKind.carriesChannel() && other.Channel != 0 {
		n.Channel = other.Channel
	}

	for mac, c := range other.Clients {
		n.Clients[mac] = c
	}

	if n.Ssid == "" || n.Ssid == WildcardSSID {
		if other.Ssid != "" && other.Ssid != WildcardSSID {
			n.Ssid = other.Ssid
		}
	}
	n.Protocol = upgradeProtocol(n.Protocol, other.Protocol)

	if other.PMKIDHint {
		n.PMKIDHint = true
	}
	// Handshake is monotonic: never cleared by a merge, only ever set via
	// the handshake-assembly path in the registry package.
}

// SecondsSince is a small clock seam so tests can supply a fixed "now"
// without depending on wall-clock time.
func SecondsSince(t time.Time) int64 {
	return t.Unix()
}
