package codec

import (
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"spyfi/internal/adapters/sniffer/handshake"
	"spyfi/internal/adapters/sniffer/ie"
	"spyfi/internal/core/domain"
)

// signalOffset is the byte offset of the radiotap antenna-signal field in
// the common capture layout this adapter targets: byte [2] gives the
// radiotap header's own length, and signal strength sits just past the
// fixed present-flags/MCS fields at offset 30. gopacket's own RadioTap
// decode is used as the authority whenever it can place the field; this
// fixed offset is only the fallback for headers it can't parse.
const signalOffset = 30

// eapolEthertypeOffset is the offset of the ethertype field within an
// LLC/SNAP-encapsulated data-frame payload (3 bytes DSAP/SSAP/Control + 3
// bytes OUI); EAPOL's ethertype 0x888e sits there.
const eapolEthertypeOffset = 6

// ParseFrame decodes one raw radiotap-prefixed 802.11 frame into a
// ParsedFrame. Unsupported or malformed frames decode to KindUnhandled,
// never an error: a noisy medium routinely carries frames this adapter
// doesn't need.
func ParseFrame(raw []byte) ParsedFrame {
	if len(raw) < signalOffset+1 {
		return unhandled()
	}

	signalDBM := int(int8(raw[signalOffset]))

	pkt := gopacket.NewPacket(raw, layers.LinkTypeIEEE802_11Radio, gopacket.DecodeOptions{Lazy: true, NoCopy: true})
	if rt, ok := pkt.Layer(layers.LayerTypeRadioTap).(*layers.RadioTap); ok && rt.Present.DBMAntennaSignal() {
		signalDBM = int(rt.DBMAntennaSignal)
	}

	dot11Layer, ok := pkt.Layer(layers.LayerTypeDot11).(*layers.Dot11)
	if !ok {
		return unhandled()
	}

	switch dot11Layer.Type {
	case layers.Dot11TypeMgmtBeacon:
		return parseManagement(pkt, dot11Layer, domain.FrameBeacon, signalDBM)
	case layers.Dot11TypeMgmtProbeReq:
		return parseManagement(pkt, dot11Layer, domain.FrameProbeReq, signalDBM)
	case layers.Dot11TypeMgmtProbeResp:
		return parseManagement(pkt, dot11Layer, domain.FrameProbeResp, signalDBM)
	case layers.Dot11TypeMgmtAssociationReq:
		return parseManagement(pkt, dot11Layer, domain.FrameAssocReq, signalDBM)
	case layers.Dot11TypeMgmtAssociationResp:
		return parseManagement(pkt, dot11Layer, domain.FrameAssocResp, signalDBM)
	case layers.Dot11TypeDataQOSNull:
		return parseQosNull(dot11Layer, signalDBM)
	case layers.Dot11TypeDataQOSData:
		return parseQosData(pkt, dot11Layer, signalDBM)
	default:
		return unhandled()
	}
}

func macFromGopacket(addr []byte) domain.Mac {
	m, _ := domain.MacFromBytes(addr)
	return m
}

func parseManagement(pkt gopacket.Packet, dot11 *layers.Dot11, kind domain.FrameKind, signalDBM int) ParsedFrame {
	bssid := macFromGopacket(dot11.Address3)
	ies := dot11.LayerPayload()

	// A zero-length (wildcard) SSID element comes back from ParseSSID as
	// "<HIDDEN>"; treat it as empty so NormalizeSSID maps it to WILDCARD.
	ssid := ie.ParseSSID(ies)
	if ssid == "<HIDDEN>" {
		ssid = ""
	}

	skeleton := &NetworkSkeleton{
		Bssid:     bssid,
		Ssid:      domain.NormalizeSSID(ssid),
		Clients:   make(map[domain.Mac]domain.Client),
		Protocol:  ClassifyProtocol(ies),
		FrameKind: kind,
		SignalDBM: signalDBM,
	}
	return networkFrame(skeleton)
}

// qosEndpoints derives the (bssid, client) pair from a QoS data/null frame's
// ToDS/FromDS direction bits, per the standard infrastructure-mode
// addressing scheme. IBSS/WDS framing (both bits equal) isn't relevant to
// infrastructure client tracking and is rejected.
func qosEndpoints(dot11 *layers.Dot11) (bssid, client domain.Mac, ok bool) {
	toDS := dot11.Flags.ToDS()
	fromDS := dot11.Flags.FromDS()
	switch {
	case toDS && !fromDS:
		return macFromGopacket(dot11.Address1), macFromGopacket(dot11.Address2), true
	case !toDS && fromDS:
		return macFromGopacket(dot11.Address2), macFromGopacket(dot11.Address1), true
	default:
		return domain.Mac{}, domain.Mac{}, false
	}
}

func parseQosNull(dot11 *layers.Dot11, signalDBM int) ParsedFrame {
	bssid, client, ok := qosEndpoints(dot11)
	if !ok || client.IsBroadcast() {
		return unhandled()
	}
	skeleton := &NetworkSkeleton{
		Bssid:     bssid,
		Ssid:      domain.WildcardSSID,
		Clients:   map[domain.Mac]domain.Client{client: {Mac: client}},
		Protocol:  domain.ProtocolUnknown,
		FrameKind: domain.FrameQosNull,
		SignalDBM: signalDBM,
	}
	return networkFrame(skeleton)
}

func parseQosData(pkt gopacket.Packet, dot11 *layers.Dot11, signalDBM int) ParsedFrame {
	bssid, client, ok := qosEndpoints(dot11)
	if !ok {
		return unhandled()
	}

	payload := dot11.LayerPayload()
	if len(payload) >= eapolEthertypeOffset+2 &&
		payload[eapolEthertypeOffset] == 0x88 && payload[eapolEthertypeOffset+1] == 0x8e {
		if msg := parseEapolBody(pkt, payload, bssid, client); msg != nil {
			return eapolFrame(msg)
		}
		return unhandled()
	}

	if client.IsBroadcast() {
		return unhandled()
	}
	skeleton := &NetworkSkeleton{
		Bssid:     bssid,
		Ssid:      domain.WildcardSSID,
		Clients:   map[domain.Mac]domain.Client{client: {Mac: client}},
		Protocol:  domain.ProtocolUnknown,
		FrameKind: domain.FrameQosData,
		SignalDBM: signalDBM,
	}
	return networkFrame(skeleton)
}

// parseEapolBody decodes an EAPOL key frame's message number, preferring the
// IEEE 802.11i bitfield decoder and falling back to the legacy magic-constant
// table only when the bitfield decoder can't place it.
//
// payload is the full QoS-data LayerPayload (6-byte LLC/SNAP + 2-byte
// ethertype, then the 802.1X/EAPOL body) and is stored verbatim as
// EapolMsg.Raw: the Handshake Model's byte offsets (§3/§4.3) are defined
// against that LLC/SNAP-prefixed base, not against gopacket's own EAPOL
// layer decode, which starts 8 bytes later at the 802.1X version byte.
func parseEapolBody(pkt gopacket.Packet, payload []byte, bssid, client domain.Mac) *domain.EapolMsg {
	kf, err := handshake.ParseEAPOLKey(pkt)
	if err != nil {
		return nil
	}

	msgNu := kf.DetermineMessageNumber()
	if msgNu == 0 {
		msgNu = domain.ClassifyLegacyKeyInformation(kf.KeyInformation)
	}
	if msgNu == 0 {
		return nil
	}

	raw := payload

	// Message 1 may opportunistically carry a PMKID in its key data; this is
	// informational only (§4 supplemented features) and never substitutes
	// for the four-message handshake the Handshake Model still requires.
	pmkidHint := msgNu == 1 && ie.ParsePMKID(kf.KeyData)

	return &domain.EapolMsg{
		Bssid:     bssid,
		Client:    client,
		MsgNu:     msgNu,
		TS:        time.Now().Unix(),
		Raw:       raw,
		PMKIDHint: pmkidHint,
	}
}
