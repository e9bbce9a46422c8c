package domain

import (
	"errors"
	"fmt"

	"spyfi/internal/core/crypto"
)

// Handshake field offsets within an EAPOL-Key body, per the captured-frame
// layout in §3/§4.3. These are wire offsets into the raw EAPOL body stored
// on EapolMsg.Raw, not struct offsets.
const (
	offsetNonce  = 0x19 // anonce (msg 1) / snonce (msg 2), 32 bytes
	offsetMIC    = 0x59 // MIC, 16 bytes, within msg 2
	micMsgStart  = 8    // mic_msg window start within msg 2's EAPOL body
	micMsgEnd    = 129  // exclusive
	micZeroStart = 81   // MIC bytes within the mic_msg window, zeroed
	micZeroEnd   = 97   // exclusive

	nonceLen = 32
	micLen   = 16
	micMsgLen = micMsgEnd - micMsgStart // 121
)

var ErrHandshakeIncomplete = errors.New("insufficient EAPOL messages to build a handshake")

// Handshake is the immutable, cheaply clonable value needed to verify a
// candidate passphrase against a captured 4-way exchange. It is built once
// from messages 1 and 2 and never mutated afterward.
type Handshake struct {
	Ssid       string
	Anonce     [nonceLen]byte
	Snonce     [nonceLen]byte
	StationMac Mac // the AP / authenticator (bssid)
	ClientMac  Mac // the supplicant
	Mic        [micLen]byte
	MicMsg     [micMsgLen]byte
}

// NewHandshake freezes a Handshake from the first two EAPOL messages of a
// completed 4-way exchange, per the exact byte offsets of §3.
func NewHandshake(ssid string, msg1, msg2 *EapolMsg) (*Handshake, error) {
	if msg1 == nil || msg2 == nil {
		return nil, ErrHandshakeIncomplete
	}
	if len(msg1.Raw) < offsetNonce+nonceLen {
		return nil, fmt.Errorf("%w: message 1 too short", ErrEapolMalformed)
	}
	if len(msg2.Raw) < micMsgEnd {
		return nil, fmt.Errorf("%w: message 2 too short", ErrEapolMalformed)
	}

	hs := &Handshake{
		Ssid:       ssid,
		StationMac: msg1.Bssid,
		ClientMac:  msg1.Client,
	}
	copy(hs.Anonce[:], msg1.Raw[offsetNonce:offsetNonce+nonceLen])
	copy(hs.Snonce[:], msg2.Raw[offsetNonce:offsetNonce+nonceLen])
	copy(hs.Mic[:], msg2.Raw[offsetMIC:offsetMIC+micLen])
	copy(hs.MicMsg[:], msg2.Raw[micMsgStart:micMsgEnd])

	crypto.ZeroMicWindow(hs.MicMsg[:], micZeroStart, micZeroEnd)

	return hs, nil
}

// TryPassword reports whether pw is the passphrase that produced this
// handshake's captured MIC. Pure and safe for concurrent use by many
// workers against clones of the same Handshake.
func (hs *Handshake) TryPassword(pw string) bool {
	psk := crypto.PSK(pw, hs.Ssid)
	a, b := MinMax(hs.StationMac, hs.ClientMac)
	na, nb := minMaxBytes(hs.Anonce[:], hs.Snonce[:])
	ptk := crypto.PTK(psk, a[:], b[:], na, nb)
	kck := crypto.KCK(ptk)
	mic := crypto.HmacSHA1(kck, hs.MicMsg[:])
	return constantTimeEqual(mic[:micLen], hs.Mic[:])
}

// minMaxBytes mirrors Mac.MinMax for the 32-byte nonce pair: the PTK
// derivation concatenates the two nonces in a deterministic order
// independent of which one is anonce vs snonce.
func minMaxBytes(a, b []byte) ([]byte, []byte) {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return a, b
			}
			return b, a
		}
	}
	return a, b
}

func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}
