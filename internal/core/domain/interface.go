package domain

import "errors"

// ErrInvalidInterfaceName is returned when an interface name fails
// validation (empty, too long, or containing characters unsafe to pass to
// external tooling like iw/ip).
var ErrInvalidInterfaceName = errors.New("invalid interface name")

// WiFiBand labels a radio frequency band supported by an interface.
type WiFiBand string

const (
	Band24GHz WiFiBand = "2.4GHz"
	Band5GHz  WiFiBand = "5GHz"
)

// InterfaceCapabilities describes what a wireless adapter supports.
type InterfaceCapabilities struct {
	SupportedBands    []WiFiBand `json:"supported_bands"`
	SupportedChannels []int      `json:"supported_channels"`
}

// InterfaceInfo represents a network interface and its state. The Radio
// Adapter lists interfaces by name only and does not build this type.
type InterfaceInfo struct {
	Name            string                `json:"name"`
	MAC             string                `json:"mac"`
	Capabilities    InterfaceCapabilities `json:"capabilities"`
	CurrentChannels []int                 `json:"current_channels"`
	Metrics         InterfaceMetrics      `json:"metrics"`
}

// NewInterfaceInfo validates name and mac and constructs an InterfaceInfo.
func NewInterfaceInfo(name, mac string, caps InterfaceCapabilities) (*InterfaceInfo, error) {
	v := DefaultValidator{}
	if err := v.Interface(name); err != nil {
		return nil, err
	}
	if err := v.MAC(mac); err != nil {
		return nil, err
	}
	return &InterfaceInfo{
		Name:         name,
		MAC:          mac,
		Capabilities: caps,
	}, nil
}

// InterfaceMetrics holds packet capture statistics for one interface.
type InterfaceMetrics struct {
	PacketsReceived int64 `json:"packets_received"`
	PacketsDropped  int64 `json:"packets_dropped"`
	// AppPacketsDropped tracks packets dropped by the application (buffer full)
	AppPacketsDropped int64 `json:"app_packets_dropped"`
	PacketsIfDropped  int64 `json:"packets_if_dropped"` // Drops by interface
	ErrorCount        int64 `json:"error_count"`        // Processing errors
}

// ResetMetrics zeroes every counter.
func (m *InterfaceMetrics) ResetMetrics() {
	*m = InterfaceMetrics{}
}

// AddMetrics accumulates other's counters into m.
func (m *InterfaceMetrics) AddMetrics(other InterfaceMetrics) {
	m.PacketsReceived += other.PacketsReceived
	m.PacketsDropped += other.PacketsDropped
	m.AppPacketsDropped += other.AppPacketsDropped
	m.PacketsIfDropped += other.PacketsIfDropped
	m.ErrorCount += other.ErrorCount
}
