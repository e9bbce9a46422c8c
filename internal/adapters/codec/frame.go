// Package codec implements the Frame Codec (C2): parsing radiotap + 802.11
// frames into a tagged ParsedFrame variant, classifying RSN information
// elements into a Protocol, and building de-authentication frames.
package codec

import "spyfi/internal/core/domain"

// ParsedFrameKind tags the variant a ParsedFrame holds.
type ParsedFrameKind int

const (
	KindUnhandled ParsedFrameKind = iota
	KindNetwork
	KindEapol
)

// NetworkSkeleton is the partial NetworkInfo the codec can fill in from a
// single frame; channel and signal_dbm are completed by the caller from
// radio state, not by the codec.
type NetworkSkeleton struct {
	Bssid     domain.Mac
	Ssid      string
	Clients   map[domain.Mac]domain.Client
	Protocol  domain.Protocol
	FrameKind domain.FrameKind
	SignalDBM int
}

// ParsedFrame is the tagged output of ParseFrame: exactly one of Network or
// Eapol is populated, per Kind.
type ParsedFrame struct {
	Kind    ParsedFrameKind
	Network *NetworkSkeleton
	Eapol   *domain.EapolMsg
}

func unhandled() ParsedFrame { return ParsedFrame{Kind: KindUnhandled} }

func networkFrame(n *NetworkSkeleton) ParsedFrame {
	return ParsedFrame{Kind: KindNetwork, Network: n}
}

func eapolFrame(e *domain.EapolMsg) ParsedFrame {
	return ParsedFrame{Kind: KindEapol, Eapol: e}
}
