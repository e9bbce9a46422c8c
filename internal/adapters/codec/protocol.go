package codec

import (
	"spyfi/internal/adapters/sniffer/ie"
	"spyfi/internal/core/domain"
)

// rsnTagID is the IE tag number for the RSN information element.
const rsnTagID = 0x30

// ClassifyProtocol inspects the IEs of a management frame body and derives
// a Protocol label from the RSN element, per §3: AKM PSK + group cipher
// CCMP ⇒ WPA2-PSK; AKM 802.1X/FT-802.1X/FT-PSK ⇒ WPA2-EAP; AKM
// SAE/FT-SAE/PSK-SHA256 ⇒ WPA3 but only once the RSN capabilities also
// advertise PMF support (redesign flag iii — AKM alone is ambiguous);
// missing or unparseable RSN ⇒ unknown.
func ClassifyProtocol(ies []byte) domain.Protocol {
	rsnData := ie.FindIE(ies, rsnTagID)
	if rsnData == nil {
		return domain.ProtocolUnknown
	}

	rsn, err := ie.ParseRSN(rsnData)
	if err != nil || len(rsn.AKMSuites) == 0 {
		return domain.ProtocolUnknown
	}

	akm := rsn.AKMSuites[0]
	switch akm {
	case "PSK":
		if rsn.GroupCipher == "CCMP" {
			return domain.ProtocolWPA2PSK
		}
		return domain.ProtocolWPA2EAP
	case "802.1X", "FT-802.1X", "FT-PSK", "802.1X-SHA256":
		return domain.ProtocolWPA2EAP
	case "PSK-SHA256", "SAE", "FT-SAE":
		if rsn.Capabilities.MFPCapable || rsn.Capabilities.MFPRequired {
			return domain.ProtocolWPA3
		}
		return domain.ProtocolUnknown
	default:
		return domain.ProtocolUnknown
	}
}
