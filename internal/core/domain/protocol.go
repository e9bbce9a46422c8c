package domain

// Protocol is the security-suite label derived from a BSS's RSN information
// element.
type Protocol string

const (
	ProtocolWPA2PSK  Protocol = "WPA2-PSK"
	ProtocolWPA2EAP  Protocol = "WPA2-EAP"
	ProtocolWPA3     Protocol = "WPA3"
	ProtocolUnknown  Protocol = "unknown"
)

// upgradeProtocol implements the Network Index merge rule: protocol upgrades
// from unknown to a concrete value only; a concrete value is never
// overwritten by a later, possibly stale, observation.
func upgradeProtocol(current, incoming Protocol) Protocol {
	if current == "" {
		current = ProtocolUnknown
	}
	if current == ProtocolUnknown && incoming != "" {
		return incoming
	}
	return current
}
