// Package radio implements the Radio Adapter (C1): the only component that
// talks to the kernel's wireless stack, via the same `ip`/`iw` command-line
// idiom the teacher's driver helpers use, plus gopacket/pcap for the raw
// RX/TX handles the Monitor Loop and de-auth injector need.
package radio

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/gopacket/pcap"

	"spyfi/internal/core/ports"
)

const (
	rxSnaplen = 65536
	rxTimeout = 50 * time.Millisecond
)

var reChannel = regexp.MustCompile(`channel\s+(\d+)`)

// Adapter implements ports.Radio against a Linux wireless stack using `ip`
// for power state and gopacket/pcap for live capture/injection handles.
type Adapter struct {
	// exec is a seam so tests can substitute a fake command runner without
	// touching a real interface.
	exec func(name string, args ...string) ([]byte, error)
}

// New returns a ready-to-use Adapter bound to the real OS command runner.
func New() *Adapter {
	return &Adapter{exec: runCommand}
}

func runCommand(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// ListInterfaces enumerates capture-capable devices via libpcap, which on
// Linux walks the same interface list `ip link` would show.
func (a *Adapter) ListInterfaces() ([]string, error) {
	devs, err := pcap.FindAllDevs()
	if err != nil {
		return nil, classifyOSError(err)
	}
	names := make([]string, 0, len(devs))
	for _, d := range devs {
		names = append(names, d.Name)
	}
	return names, nil
}

// TogglePower brings the interface up or down via `ip link set`.
func (a *Adapter) TogglePower(iface string, up bool) error {
	state := "down"
	if up {
		state = "up"
	}
	return a.run("ip", "link", "set", iface, state)
}

// SetMode is the atomic composite operation of §4.1: power the interface
// off, switch its 802.11 mode, then power it back on. If the mode-change
// step itself fails, SetMode returns with the interface left powered off
// rather than reporting success with a half-applied mode.
func (a *Adapter) SetMode(iface string, mode ports.RadioMode) error {
	if err := a.TogglePower(iface, false); err != nil {
		return err
	}
	if err := a.run("iw", iface, "set", "type", mode.String()); err != nil {
		return err
	}
	return a.TogglePower(iface, true)
}

// SetChannel tunes the interface via `iw <iface> set channel <n>`.
func (a *Adapter) SetChannel(iface string, channel int) error {
	return a.run("iw", iface, "set", "channel", strconv.Itoa(channel))
}

// GetChannel parses the interface's current channel out of `iw <iface>
// info`.
func (a *Adapter) GetChannel(iface string) (int, error) {
	out, err := a.exec("iw", iface, "info")
	if err != nil {
		return 0, classifyOSError(err)
	}
	m := reChannel.FindStringSubmatch(string(out))
	if m == nil {
		return 0, fmt.Errorf("radio: could not parse channel from 'iw %s info'", iface)
	}
	ch, _ := strconv.Atoi(m[1])
	return ch, nil
}

// OpenRX opens a promiscuous-mode capture handle with the ~50ms read
// timeout §4.1 requires, so the Monitor Loop stays responsive to control
// commands between frames.
func (a *Adapter) OpenRX(iface string) (ports.RxHandle, error) {
	handle, err := pcap.OpenLive(iface, rxSnaplen, true, rxTimeout)
	if err != nil {
		return nil, classifyOSError(err)
	}
	return &rxHandle{handle: handle}, nil
}

// OpenTX opens a transmit handle that accepts fully formed radiotap +
// 802.11 frames, as built by codec.BuildDeauthBurst.
func (a *Adapter) OpenTX(iface string) (ports.TxHandle, error) {
	handle, err := pcap.OpenLive(iface, rxSnaplen, true, pcap.BlockForever)
	if err != nil {
		return nil, classifyOSError(err)
	}
	return &txHandle{handle: handle}, nil
}

func (a *Adapter) run(name string, args ...string) error {
	out, err := a.exec(name, args...)
	if err != nil {
		return fmt.Errorf("radio: %s %s: %w: %s", name, strings.Join(args, " "), classifyOSError(err), strings.TrimSpace(string(out)))
	}
	return nil
}

// classifyOSError maps an exec/pcap failure to one of the three Radio
// Adapter error classes, per §4.1: IfaceNotFound, Permission, or an opaque
// OsError.
func classifyOSError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "no such device"), strings.Contains(msg, "not found"):
		return ports.ErrIfaceNotFound
	case strings.Contains(msg, "permission denied"), strings.Contains(msg, "operation not permitted"):
		return ports.ErrPermission
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ports.OsError{Code: exitErr.ExitCode(), Err: err}
		}
		return &ports.OsError{Code: -1, Err: err}
	}
}

var _ ports.Radio = (*Adapter)(nil)
