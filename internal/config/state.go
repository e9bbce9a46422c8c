package config

import (
	"sync"

	"spyfi/internal/core/ports"
)

// GlobalState is the process-wide record of radio interface/channel/mode,
// per §5/§9: read-heavy, written only by the front end and the radio-mode
// operations, so a single RWMutex guards it without starving readers. The
// theme/UI-related fields the source carries alongside this are a
// presentation concern (§1) and are deliberately not modeled here.
type GlobalState struct {
	mu        sync.RWMutex
	iface     string
	channel   int
	mode      ports.RadioMode
	sweepMode bool
}

// NewGlobalState returns state for iface at the given starting channel in
// managed mode (the safe default before any SetMode call).
func NewGlobalState(iface string, channel int) *GlobalState {
	return &GlobalState{iface: iface, channel: channel, mode: ports.ModeManaged}
}

func (s *GlobalState) Interface() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.iface
}

func (s *GlobalState) Channel() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.channel
}

func (s *GlobalState) Mode() ports.RadioMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *GlobalState) SweepMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sweepMode
}

func (s *GlobalState) SetChannel(channel int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channel = channel
}

func (s *GlobalState) SetMode(mode ports.RadioMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

func (s *GlobalState) SetSweepMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepMode = on
}
