package handshake

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

var reUnsafeFilenameChar = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

func sanitizeFilename(s string) string {
	return reUnsafeFilenameChar.ReplaceAllString(s, "_")
}

// SaveHandshakePCAP archives the four raw captured frames of a completed
// handshake to a standard pcap file under baseDir, named by BSSID and
// client so the result can be fed straight into aircrack-ng-family tooling.
// This is archival only; it plays no part in passphrase verification, which
// operates purely on the in-memory Handshake value.
func SaveHandshakePCAP(baseDir, bssid, client string, frames [][]byte) error {
	if len(frames) == 0 {
		return nil
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return fmt.Errorf("handshake archive: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%d.pcap", sanitizeFilename(bssid), sanitizeFilename(client), time.Now().Unix())
	path := filepath.Join(baseDir, name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("handshake archive: %w", err)
	}
	defer f.Close()

	w := pcapgo.NewWriter(f)
	if err := w.WriteFileHeader(65536, layers.LinkTypeIEEE802_11Radio); err != nil {
		return fmt.Errorf("handshake archive: write header: %w", err)
	}

	now := time.Now()
	for _, raw := range frames {
		ci := gopacket.CaptureInfo{
			Timestamp:     now,
			CaptureLength: len(raw),
			Length:        len(raw),
		}
		if err := w.WritePacket(ci, raw); err != nil {
			return fmt.Errorf("handshake archive: write packet: %w", err)
		}
	}
	return nil
}
