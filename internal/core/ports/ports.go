package ports

import "spyfi/internal/core/domain"

// ReportExporter renders a ReportData to a file, e.g. as PDF.
type ReportExporter interface {
	Export(report domain.ReportData, path string) error
}

// WordlistSource streams candidate passphrases for the Attack Coordinator
// (C7), either from a file or a synthetic generator.
type WordlistSource interface {
	// Next returns the next candidate, or ok=false once exhausted.
	Next() (string, bool)
	// Size reports the total candidate count, or 0 if still being counted.
	Size() int64
	Close() error
}
