package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReportData aggregates everything needed to render an end-of-session
// report: the networks observed, the handshakes captured, and whatever the
// attack coordinator recovered against them.
type ReportData struct {
	ID          string
	GeneratedAt time.Time
	Interface   string
	Duration    time.Duration

	Stats     ReportStats
	Networks  []NetworkSummary
	AuditLogs []AuditLog
}

// ReportStats holds session-wide summary counters.
type ReportStats struct {
	NetworksObserved   int
	HandshakesCaptured int
	PasswordsCracked   int
	DeauthFramesSent   int
	ChannelUsage       map[int]int // channel -> number of networks observed on it
	ProtocolBreakdown  map[Protocol]int
}

// NetworkSummary is the report-facing projection of a NetworkInfo: enough to
// describe what was seen and recovered, without the internal EAPOL
// assembly buffers.
type NetworkSummary struct {
	Bssid       Mac
	Ssid        string
	Channel     int
	Protocol    Protocol
	ClientCount int
	HasHandshake bool
	Password    *string // nil unless an attack against this BSSID succeeded
}

// NewReportData projects a Network Index snapshot plus recovered passwords
// into a ReportData. passwords is keyed by BSSID.
func NewReportData(iface string, duration time.Duration, networks map[Mac]*NetworkInfo, passwords map[Mac]string, logs []AuditLog) ReportData {
	stats := ReportStats{
		ChannelUsage:      make(map[int]int),
		ProtocolBreakdown: make(map[Protocol]int),
	}
	summaries := make([]NetworkSummary, 0, len(networks))
	for bssid, n := range networks {
		stats.NetworksObserved++
		stats.ChannelUsage[n.Channel]++
		stats.ProtocolBreakdown[n.Protocol]++

		summary := NetworkSummary{
			Bssid:        bssid,
			Ssid:         n.Ssid,
			Channel:      n.Channel,
			Protocol:     n.Protocol,
			ClientCount:  len(n.Clients),
			HasHandshake: n.Handshake != nil,
		}
		if n.Handshake != nil {
			stats.HandshakesCaptured++
		}
		if pw, ok := passwords[bssid]; ok {
			p := pw
			summary.Password = &p
			stats.PasswordsCracked++
		}
		summaries = append(summaries, summary)
	}

	return ReportData{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Interface:   iface,
		Duration:    duration,
		Stats:       stats,
		Networks:    summaries,
		AuditLogs:   logs,
	}
}
