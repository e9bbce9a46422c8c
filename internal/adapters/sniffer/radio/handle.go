package radio

import (
	"errors"

	"github.com/google/gopacket/pcap"

	"spyfi/internal/core/ports"
)

// rxHandle wraps a live pcap capture handle as a ports.RxHandle, translating
// libpcap's read-timeout signal into ports.ErrReadTimeout.
type rxHandle struct {
	handle *pcap.Handle
}

// ReadFrame blocks for at most the handle's read timeout (~50ms) and
// returns the next raw radiotap-prefixed frame.
func (h *rxHandle) ReadFrame() ([]byte, error) {
	data, _, err := h.handle.ReadPacketData()
	if err != nil {
		if errors.Is(err, pcap.NextErrorTimeoutExpired) {
			return nil, ports.ErrReadTimeout
		}
		return nil, classifyOSError(err)
	}
	// The handle is NoCopy-free (ReadPacketData already copies), so this
	// buffer is safe to hand to the codec past the handle's next read.
	return data, nil
}

func (h *rxHandle) Close() error {
	h.handle.Close()
	return nil
}

// txHandle wraps a live pcap handle opened for injection as a ports.TxHandle.
type txHandle struct {
	handle *pcap.Handle
}

// Send transmits a fully formed radiotap + 802.11 frame.
func (h *txHandle) Send(frame []byte) error {
	if err := h.handle.WritePacketData(frame); err != nil {
		return classifyOSError(err)
	}
	return nil
}

func (h *txHandle) Close() error {
	h.handle.Close()
	return nil
}

var (
	_ ports.RxHandle = (*rxHandle)(nil)
	_ ports.TxHandle = (*txHandle)(nil)
)
