// Package handshake implements the four-slot per-client EAPOL buffer (C4):
// it assembles the messages of a WPA 4-way handshake and freezes a
// domain.Handshake once all four have arrived.
package handshake

import "spyfi/internal/core/domain"

// Slots holds up to one EAPOL message per message number (1..4), stored at
// index msgNu-1.
type Slots = [4]*domain.EapolMsg

// Accept folds msg into buf per the §4.4 rules:
//   - if the target slot is empty, store it;
//   - if the target slot is already full, the whole buffer resets (a
//     duplicate strongly implies a new handshake beginning) and msg is
//     stored in the freshly emptied slot;
//   - complete reports whether all four slots are now populated.
//
// Accept is a pure function: callers own the buffer and its storage.
func Accept(buf Slots, msg *domain.EapolMsg) (out Slots, complete bool) {
	if msg == nil || msg.MsgNu < 1 || msg.MsgNu > 4 {
		return buf, allFilled(buf)
	}

	idx := msg.MsgNu - 1
	out = buf
	if out[idx] != nil {
		out = Slots{}
	}
	out[idx] = msg
	return out, allFilled(out)
}

func allFilled(buf Slots) bool {
	for _, m := range buf {
		if m == nil {
			return false
		}
	}
	return true
}

// Freeze synthesises the immutable Handshake from a completed buffer, using
// only messages 1 and 2 per §3.
func Freeze(ssid string, buf Slots) (*domain.Handshake, error) {
	return domain.NewHandshake(ssid, buf[0], buf[1])
}
