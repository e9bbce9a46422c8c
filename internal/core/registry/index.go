// Package registry implements the Network Index (C5): the mapping from
// BSSID to NetworkInfo, exactly one entry per BSSID, merged and queried by
// the Monitor Loop and snapshotted for the Control Plane.
package registry

import (
	"sync"
	"time"

	"spyfi/internal/core/domain"
	"spyfi/internal/core/handshake"
)

// Index owns the live network/client/handshake state. The Monitor thread is
// its only writer; everything else reads via Snapshot, which returns
// independent copies.
type Index struct {
	mu       sync.RWMutex
	networks map[domain.Mac]*domain.NetworkInfo

	// clientBuffers holds the in-progress four-slot EAPOL buffer for each
	// (bssid, client) pair still assembling a handshake. Entries are
	// removed once a BSSID's handshake is frozen.
	clientBuffers map[domain.Mac]map[domain.Mac]handshake.Slots
}

// NewIndex returns an empty Network Index.
func NewIndex() *Index {
	return &Index{
		networks:      make(map[domain.Mac]*domain.NetworkInfo),
		clientBuffers: make(map[domain.Mac]map[domain.Mac]handshake.Slots),
	}
}

// Update merges other into the index per §4.5: creates the entry if the
// BSSID is new, otherwise folds the observation via NetworkInfo.Merge.
// Passing the same value twice is idempotent in every observable field
// except last-seen.
func (idx *Index) Update(other *domain.NetworkInfo, now time.Time) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	existing, ok := idx.networks[other.Bssid]
	if !ok {
		existing = domain.NewNetworkInfo(other.Bssid)
		idx.networks[other.Bssid] = existing
	}
	existing.Merge(other, domain.SecondsSince(now))
}

// AddEapol delegates to the four-slot buffer assembly for msg's BSSID; a
// no-op if the BSSID is unknown, if the network already has a completed
// handshake, or if msg is malformed.
func (idx *Index) AddEapol(msg *domain.EapolMsg) error {
	if msg == nil || msg.MsgNu < 1 || msg.MsgNu > 4 {
		return domain.ErrEapolMalformed
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	net, ok := idx.networks[msg.Bssid]
	if !ok {
		return nil
	}
	if net.Handshake != nil {
		return nil // handshake already captured; further EAPOL is dropped
	}
	if msg.PMKIDHint {
		net.PMKIDHint = true
	}

	perClient, ok := idx.clientBuffers[msg.Bssid]
	if !ok {
		perClient = make(map[domain.Mac]handshake.Slots)
		idx.clientBuffers[msg.Bssid] = perClient
	}

	buf := perClient[msg.Client]
	buf, complete := handshake.Accept(buf, msg)
	perClient[msg.Client] = buf

	if net.Captured == nil {
		net.Captured = make(map[domain.Mac][4]*domain.EapolMsg)
	}
	net.Captured[msg.Client] = buf

	if complete {
		hs, err := handshake.Freeze(net.Ssid, buf)
		if err != nil {
			return err
		}
		net.Handshake = hs
		delete(idx.clientBuffers, msg.Bssid)
	}
	return nil
}

// Get returns a snapshot copy of one BSSID's entry, or nil if unknown.
func (idx *Index) Get(bssid domain.Mac) *domain.NetworkInfo {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	n, ok := idx.networks[bssid]
	if !ok {
		return nil
	}
	return n.Clone()
}

// Snapshot returns an independent copy of every entry, safe to hand to a
// front end without further locking.
func (idx *Index) Snapshot() map[domain.Mac]*domain.NetworkInfo {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make(map[domain.Mac]*domain.NetworkInfo, len(idx.networks))
	for k, v := range idx.networks {
		out[k] = v.Clone()
	}
	return out
}

// Len reports the number of known BSSIDs.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.networks)
}
