package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// FramesCaptured counts raw radiotap-prefixed frames read off the
	// Radio Adapter, before Frame Codec classification.
	FramesCaptured = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spyfi",
			Name:      "frames_captured_total",
			Help:      "Total number of raw frames read by the Monitor Loop",
		},
		[]string{"interface"},
	)

	// FramesDropped counts frames the Frame Codec could not classify
	// (truncated, unhandled protocol, malformed EAPOL).
	FramesDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spyfi",
			Name:      "frames_dropped_total",
			Help:      "Total number of frames skipped by the Frame Codec",
		},
		[]string{"interface", "reason"},
	)

	// DeauthFramesSent counts de-authentication frames transmitted by the
	// Monitor Loop on a DeauthCommand.
	DeauthFramesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spyfi",
			Name:      "deauth_frames_sent_total",
			Help:      "Total number of de-authentication frames injected",
		},
		[]string{"interface"},
	)

	// HandshakesCaptured counts completed four-message EAPOL handshakes
	// frozen by the Network Index.
	HandshakesCaptured = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spyfi",
			Name:      "handshakes_captured_total",
			Help:      "Total number of completed WPA handshakes captured",
		},
		[]string{"bssid"},
	)

	// CandidatesAttempted counts passphrase candidates tried by the Attack
	// Coordinator's worker pool.
	CandidatesAttempted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spyfi",
			Name:      "candidates_attempted_total",
			Help:      "Total number of candidate passphrases tried against a handshake",
		},
		[]string{"bssid"},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry.
// Idempotent: safe to call multiple times (e.g. once per subcommand).
func InitMetrics() {
	once.Do(func() {
		prometheus.DefaultRegisterer.Register(FramesCaptured)
		prometheus.DefaultRegisterer.Register(FramesDropped)
		prometheus.DefaultRegisterer.Register(DeauthFramesSent)
		prometheus.DefaultRegisterer.Register(HandshakesCaptured)
		prometheus.DefaultRegisterer.Register(CandidatesAttempted)
	})
}
