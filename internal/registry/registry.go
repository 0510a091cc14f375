// Package registry tracks the set of known peers and the tamper-detection
// vote tally used to decide whether this node's own chain can be trusted.
package registry

import (
	"sync"

	"blocknode/go-node/internal/peer"
)

// TrustStatus summarizes the outcome of Trust().
type TrustStatus int

const (
	// TrustOK means fewer than half of known peers have voted tamper.
	TrustOK TrustStatus = iota
	// TrustTampered means half or more of known peers have voted tamper.
	TrustTampered
)

// Registry holds the peer set and vote count for one node. All methods are
// safe for concurrent use; callers do not need an external lock.
type Registry struct {
	mu    sync.RWMutex
	peers map[peer.Identity]peer.Peer
	self  peer.Peer
	votes int
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{peers: make(map[peer.Identity]peer.Peer)}
}

// SetSelf records this node's own address/name, used when registering with
// other nodes and when excluding self from peer lists.
func (r *Registry) SetSelf(p peer.Peer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.self = p
}

// Self returns this node's own identity.
func (r *Registry) Self() peer.Peer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.self
}

// AddPeer adds p to the registry. It reports whether p was new: a peer
// already present under the same (address, name) identity is a no-op.
func (r *Registry) AddPeer(p peer.Peer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := p.Identity()
	if _, ok := r.peers[id]; ok {
		return false
	}
	r.peers[id] = p
	return true
}

// MergePeers adds every peer in ps that isn't already known, skipping self.
func (r *Registry) MergePeers(ps []peer.Peer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	selfID := r.self.Identity()
	for _, p := range ps {
		id := p.Identity()
		if id == selfID {
			continue
		}
		if _, ok := r.peers[id]; !ok {
			r.peers[id] = p
		}
	}
}

// Peers returns a snapshot of every known peer, in no particular order.
func (r *Registry) Peers() []peer.Peer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]peer.Peer, 0, len(r.peers))
	for _, p := range r.peers {
		out = append(out, p)
	}
	return out
}

// PeerCount returns the number of known peers.
func (r *Registry) PeerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.peers)
}

// AnyPeerExceptAddress returns a peer whose address differs from addr, if
// one exists. Used by the tamper diagnostic to pick a witness that isn't
// the source of the chain under suspicion.
func (r *Registry) AnyPeerExceptAddress(addr string) (peer.Peer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.peers {
		if p.Address != addr {
			return p, true
		}
	}
	return peer.Peer{}, false
}

// RecordVote increments the tamper-vote tally. Votes are monotonic: there is
// no mechanism to retract one, matching the protocol's append-only ballot.
func (r *Registry) RecordVote() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.votes++
}

// Votes returns the current tally.
func (r *Registry) Votes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.votes
}

// Trust reports whether this node's chain should be considered tampered:
// TrustTampered once votes*100/peerCount >= 50. With no peers, the node is
// always trusted — there is no one to contest its chain.
func (r *Registry) Trust() TrustStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := len(r.peers)
	if n == 0 {
		return TrustOK
	}
	if r.votes*100/n >= 50 {
		return TrustTampered
	}
	return TrustOK
}
