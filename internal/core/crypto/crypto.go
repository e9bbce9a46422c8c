// Package crypto implements the WPA/WPA2 key-derivation chain used to turn
// a candidate passphrase into a verdict against a captured handshake:
// PBKDF2-HMAC-SHA1 (PSK), the WPA PRF (PTK/KCK), and HMAC-SHA1 (MIC).
package crypto

import (
	"crypto/hmac"
	"crypto/sha1"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pskIterations = 4096
	pskKeyLen     = 32

	ptkPairwiseExpansionLabel = "Pairwise key expansion"
)

// PSK derives the 256-bit pre-shared key from a passphrase and SSID via
// PBKDF2-HMAC-SHA1 with 4096 iterations, per IEEE 802.11i.
func PSK(passphrase, ssid string) [32]byte {
	var out [32]byte
	copy(out[:], pbkdf2.Key([]byte(passphrase), []byte(ssid), pskIterations, pskKeyLen, sha1.New))
	return out
}

// HmacSHA1 computes the 20-byte HMAC-SHA1 digest of msg under key.
func HmacSHA1(key, msg []byte) [20]byte {
	mac := hmac.New(sha1.New, key)
	mac.Write(msg)
	var out [20]byte
	copy(out[:], mac.Sum(nil))
	return out
}

// PRF implements the WPA pseudo-random function: it produces outLen bytes
// by concatenating HMAC-SHA1(k, label || 0x00 || b || i) for i = 0,1,2,...
// and truncating to outLen.
func PRF(k []byte, label string, b []byte, outLen int) []byte {
	out := make([]byte, 0, outLen+20)
	msg := make([]byte, 0, len(label)+1+len(b)+1)
	msg = append(msg, label...)
	msg = append(msg, 0x00)
	msg = append(msg, b...)
	msg = append(msg, 0) // counter byte, overwritten below per iteration

	base := len(msg) - 1
	for i := 0; len(out) < outLen; i++ {
		msg[base] = byte(i)
		digest := HmacSHA1(k, msg)
		out = append(out, digest[:]...)
	}
	return out[:outLen]
}

// PRF128 is PRF truncated to 16 bytes — used directly when only the KCK is
// needed.
func PRF128(k []byte, label string, b []byte) []byte {
	return PRF(k, label, b, 16)
}

// PRF512 is PRF truncated to 64 bytes, producing the full PTK.
func PRF512(k []byte, label string, b []byte) []byte {
	return PRF(k, label, b, 64)
}

// PTK derives the 512-bit Pairwise Transient Key from the PSK, the two
// station MACs and the two nonces. macA/macB and nonceA/nonceB must already
// be ordered min-then-max by the caller (domain.MinMax / the nonce
// equivalent): the PRF input is the concatenation of the smaller value
// first, independent of which station is the authenticator.
func PTK(psk [32]byte, minMac, maxMac, minNonce, maxNonce []byte) []byte {
	b := make([]byte, 0, len(minMac)+len(maxMac)+len(minNonce)+len(maxNonce))
	b = append(b, minMac...)
	b = append(b, maxMac...)
	b = append(b, minNonce...)
	b = append(b, maxNonce...)
	return PRF512(psk[:], ptkPairwiseExpansionLabel, b)
}

// KCK extracts the Key Confirmation Key, the first 16 bytes of the PTK.
func KCK(ptk []byte) []byte {
	if len(ptk) < 16 {
		return ptk
	}
	return ptk[:16]
}

// ZeroMicWindow zero-fills the MIC bytes within a mic_msg window in place,
// producing the canonical MIC input required before re-computing the MIC
// over message 2. start/end are offsets relative to the window itself.
func ZeroMicWindow(window []byte, start, end int) {
	if start < 0 {
		start = 0
	}
	if end > len(window) {
		end = len(window)
	}
	for i := start; i < end; i++ {
		window[i] = 0
	}
}
