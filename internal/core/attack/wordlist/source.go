// Package wordlist implements the two candidate-passphrase sources the
// Attack Coordinator (C7) can stream from: a newline-delimited wordlist
// file, or a synthetic phone-number generator selected via the
// "#phone <prefix>" pseudo-wordlist syntax.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"spyfi/internal/core/domain"
	"spyfi/internal/core/ports"
)

// MinPasswordLen is the shortest valid WPA passphrase; shorter lines are
// skipped both for counting and for attempts.
const MinPasswordLen = 8

// PhoneDirective selects the synthetic phone-number generator instead of a
// file, e.g. "#phone 054".
const PhoneDirective = "#phone "

// Open resolves spec to either a FileSource or a PhoneSource.
func Open(spec string) (ports.WordlistSource, error) {
	if strings.HasPrefix(spec, PhoneDirective) {
		prefix := strings.TrimSpace(strings.TrimPrefix(spec, PhoneDirective))
		return NewPhoneSource(prefix)
	}
	return OpenFile(spec)
}

// FileSource streams valid (>= MinPasswordLen) lines from a wordlist file
// in order, skipping blank or short ones.
type FileSource struct {
	f    *os.File
	sc   *bufio.Scanner
	size int64
}

// OpenFile opens path and eagerly counts its valid lines so Size is known
// from the start; attempts then stream lazily via Next.
func OpenFile(path string) (*FileSource, error) {
	size, err := countValidLines(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWordlistOpen, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWordlistOpen, err)
	}
	return &FileSource{f: f, sc: bufio.NewScanner(f), size: size}, nil
}

func countValidLines(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var n int64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if len(strings.TrimSpace(sc.Text())) >= MinPasswordLen {
			n++
		}
	}
	return n, sc.Err()
}

// Next returns the next valid candidate, or ok=false once the file is
// exhausted.
func (s *FileSource) Next() (string, bool) {
	for s.sc.Scan() {
		line := strings.TrimSpace(s.sc.Text())
		if len(line) < MinPasswordLen {
			continue
		}
		return line, true
	}
	return "", false
}

// Size returns the pre-counted number of valid lines.
func (s *FileSource) Size() int64 { return s.size }

func (s *FileSource) Close() error { return s.f.Close() }

// PhoneSource synthesizes 10-digit, zero-padded candidates sharing a fixed
// prefix, in ascending numeric order: for a prefix of length p, it yields
// 10^(10-p) candidates.
type PhoneSource struct {
	prefix string
	width  int
	total  int64
	i      int64
}

// NewPhoneSource builds a generator for the given prefix (at most 10
// digits).
func NewPhoneSource(prefix string) (*PhoneSource, error) {
	if len(prefix) > 10 {
		return nil, fmt.Errorf("%w: phone prefix longer than 10 digits", domain.ErrWordlistOpen)
	}
	width := 10 - len(prefix)
	total := int64(1)
	for i := 0; i < width; i++ {
		total *= 10
	}
	return &PhoneSource{prefix: prefix, width: width, total: total}, nil
}

// Next returns the next zero-padded 10-digit candidate.
func (s *PhoneSource) Next() (string, bool) {
	if s.i >= s.total {
		return "", false
	}
	suffix := fmt.Sprintf("%0*d", s.width, s.i)
	s.i++
	return s.prefix + suffix, true
}

// Size returns the total candidate count, known up front.
func (s *PhoneSource) Size() int64 { return s.total }

func (s *PhoneSource) Close() error { return nil }
