// Package monitor implements the Monitor Loop (C6): the single capture
// task that owns the radio, feeds parsed frames into the Network Index, and
// answers control-plane commands. It is deliberately never parallelised —
// there is exactly one Monitor Loop per running session.
package monitor

import (
	"log"
	"time"

	"spyfi/internal/adapters/codec"
	"spyfi/internal/adapters/sniffer/handshake"
	"spyfi/internal/core/control"
	"spyfi/internal/core/domain"
	"spyfi/internal/core/ports"
	"spyfi/internal/core/registry"
	"spyfi/internal/telemetry"
)

// dwellPerIteration bounds how long one loop iteration spends reading
// frames before it re-checks for commands and channel advancement.
const dwellPerIteration = time.Second

// sweepChannels is the set of channels visited when sweep mode is enabled.
var sweepChannels = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}

// Loop owns one interface's radio handles and the Network Index they feed.
type Loop struct {
	radio ports.Radio
	iface string
	idx   *registry.Index
	bus   *control.Bus

	rx ports.RxHandle
	tx ports.TxHandle

	sweeping   bool
	sweepIndex int
	channel    int

	// archiveDir, if set, archives each completed handshake's raw frames
	// to a pcap file under it. rawFrames accumulates those frames per
	// (bssid, client) while the four-way exchange is still assembling.
	archiveDir string
	rawFrames  map[domain.Mac]map[domain.Mac][][]byte
}

// New opens RX/TX handles on iface and returns a ready-to-run Loop. If
// archiveDir is non-empty, every handshake captured on this loop is also
// archived there as a standalone pcap file.
func New(radio ports.Radio, iface string, idx *registry.Index, bus *control.Bus, archiveDir string) (*Loop, error) {
	rx, err := radio.OpenRX(iface)
	if err != nil {
		return nil, err
	}
	tx, err := radio.OpenTX(iface)
	if err != nil {
		rx.Close()
		return nil, err
	}
	ch, _ := radio.GetChannel(iface)
	return &Loop{
		radio:      radio,
		iface:      iface,
		idx:        idx,
		bus:        bus,
		rx:         rx,
		tx:         tx,
		channel:    ch,
		archiveDir: archiveDir,
		rawFrames:  make(map[domain.Mac]map[domain.Mac][][]byte),
	}, nil
}

// Run is the single-task loop body: advance the channel if sweeping,
// capture for up to dwellPerIteration, fold every parsed frame into the
// index, publish one SnapshotEvent, then drain pending commands
// non-blockingly. It returns once an EndCommand is received or a
// permission error is reported.
func (l *Loop) Run() {
	defer l.rx.Close()
	defer l.tx.Close()

	for {
		if l.sweeping {
			l.advanceChannel()
		}

		deadline := time.Now().Add(dwellPerIteration)
		for time.Now().Before(deadline) {
			raw, err := l.rx.ReadFrame()
			if err == ports.ErrReadTimeout {
				continue
			}
			if err != nil {
				l.bus.MonitorEvents <- control.PermissionEvent{Err: err}
				return
			}
			telemetry.FramesCaptured.WithLabelValues(l.iface).Inc()
			l.ingest(raw)
		}

		l.bus.MonitorEvents <- control.SnapshotEvent{Networks: l.idx.Snapshot()}

		if done := l.drainCommands(); done {
			l.bus.MonitorEvents <- control.MonitorEndedEvent{}
			return
		}
	}
}

func (l *Loop) ingest(raw []byte) {
	frame := codec.ParseFrame(raw)
	switch frame.Kind {
	case codec.KindNetwork:
		n := domain.NewNetworkInfo(frame.Network.Bssid)
		n.Ssid = frame.Network.Ssid
		n.Channel = l.channel
		n.Protocol = frame.Network.Protocol
		n.LastFrameKind = frame.Network.FrameKind
		for mac, c := range frame.Network.Clients {
			n.Clients[mac] = c
		}
		l.idx.Update(n, time.Now())
	case codec.KindEapol:
		l.bufferRawFrame(frame.Eapol, raw)
		before := l.idx.Get(frame.Eapol.Bssid)
		hadHandshake := before != nil && before.Handshake != nil
		if err := l.idx.AddEapol(frame.Eapol); err != nil {
			telemetry.FramesDropped.WithLabelValues(l.iface, "eapol_assembly").Inc()
			log.Printf("monitor: eapol assembly: %v", err)
			return
		}
		// Count and archive only when this message froze a new handshake.
		if after := l.idx.Get(frame.Eapol.Bssid); !hadHandshake && after != nil && after.Handshake != nil {
			telemetry.HandshakesCaptured.WithLabelValues(frame.Eapol.Bssid.String()).Inc()
			l.archiveHandshake(frame.Eapol.Bssid, frame.Eapol.Client)
		}
	default:
		telemetry.FramesDropped.WithLabelValues(l.iface, "unclassified").Inc()
	}
}

// bufferRawFrame keeps raw alongside msg so a completed handshake can be
// archived verbatim; a no-op if archiving is disabled.
func (l *Loop) bufferRawFrame(msg *domain.EapolMsg, raw []byte) {
	if l.archiveDir == "" || msg == nil {
		return
	}
	perClient, ok := l.rawFrames[msg.Bssid]
	if !ok {
		perClient = make(map[domain.Mac][][]byte)
		l.rawFrames[msg.Bssid] = perClient
	}
	frame := make([]byte, len(raw))
	copy(frame, raw)
	perClient[msg.Client] = append(perClient[msg.Client], frame)
}

// archiveHandshake writes the buffered raw frames for bssid/client to disk
// and forgets them, regardless of outcome; archival failures are logged,
// never fatal to the Monitor Loop.
func (l *Loop) archiveHandshake(bssid, client domain.Mac) {
	if l.archiveDir == "" {
		return
	}
	frames := l.rawFrames[bssid][client]
	delete(l.rawFrames[bssid], client)
	if err := handshake.SaveHandshakePCAP(l.archiveDir, bssid.String(), client.String(), frames); err != nil {
		log.Printf("monitor: archive handshake: %v", err)
	}
}

// drainCommands processes every MonitorCommand queued so far without
// blocking; it returns true once an EndCommand has been seen.
func (l *Loop) drainCommands() bool {
	for {
		select {
		case cmd := <-l.bus.MonitorCommands:
			switch c := cmd.(type) {
			case control.SweepCommand:
				l.sweeping = true
			case control.SetChannelCommand:
				l.sweeping = false
				l.setChannel(c.Channel)
			case control.DeauthCommand:
				l.sendDeauth(c.Bssid, c.Client)
			case control.EndCommand:
				return true
			}
		default:
			return false
		}
	}
}

func (l *Loop) advanceChannel() {
	l.sweepIndex = (l.sweepIndex + 1) % len(sweepChannels)
	l.setChannel(sweepChannels[l.sweepIndex])
}

func (l *Loop) setChannel(ch int) {
	if err := l.radio.SetChannel(l.iface, ch); err != nil {
		log.Printf("monitor: set channel %d: %v", ch, err)
		return
	}
	l.channel = ch
}

// sendDeauth transmits a burst of de-authentication frames for bssid,
// targeting client if given or the broadcast address otherwise.
func (l *Loop) sendDeauth(bssid domain.Mac, client *domain.Mac) {
	target := domain.BroadcastMac
	if client != nil {
		target = *client
	}
	for _, frame := range codec.BuildDeauthBurst(target, bssid) {
		if err := l.tx.Send(frame); err != nil {
			log.Printf("monitor: deauth send: %v", err)
			return
		}
		telemetry.DeauthFramesSent.WithLabelValues(l.iface).Inc()
	}
}
