// Package pcapfile implements offline frame ingestion for attack --source
// -c FILE: a standard pcap file is read frame-by-frame through pcapgo, the
// same library the handshake archiver writes its pcap files with.
package pcapfile

import (
	"io"
	"os"

	"github.com/google/gopacket/pcapgo"
)

// Source reads raw radiotap-prefixed frames from a pcap file in order.
type Source struct {
	f   *os.File
	rdr *pcapgo.Reader
}

// Open opens path for offline ingestion.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rdr, err := pcapgo.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Source{f: f, rdr: rdr}, nil
}

// ErrEOF is returned by ReadFrame once every frame in the file has been
// delivered.
var ErrEOF = io.EOF

// ReadFrame returns the next raw frame, or ErrEOF once the file is
// exhausted, mirroring ports.RxHandle.ReadFrame's signature so the same
// ingest loop that drives live capture can drive offline replay.
func (s *Source) ReadFrame() ([]byte, error) {
	data, _, err := s.rdr.ReadPacketData()
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Source) Close() error { return s.f.Close() }
