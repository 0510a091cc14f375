package engine

import (
	"context"
	"encoding/json"

	"blocknode/go-node/internal/peer"
)

// RegisterPeer announces this node to the peer at address and returns
// whatever chain info it reports back. It does not merge that info into
// this node's state — callers that want the full two-phase handshake use
// SyncNode.
func (e *Engine) RegisterPeer(ctx context.Context, address string) (peer.Info, error) {
	self := e.registry.Self()
	if self.Name == "" {
		return peer.Info{}, ErrNameNotSet
	}
	target := peer.Peer{Address: address}
	return e.transport.RegisterNode(ctx, target, self)
}

// SyncNode performs the full node-joins-network handshake (spec §4.K):
//  1. register this node with the target
//  2. rebuild a chain from the target's reported info
//  3. on tamper detection, vote the target's chain as untrusted and fail
//  4. otherwise adopt the rebuilt chain, if it is still strictly longer
//     than ours once the lock is re-acquired
//  5. merge the target's known peers into our own registry
//  6. register with every newly discovered peer
//  7. add the target itself to our registry
func (e *Engine) SyncNode(ctx context.Context, address string) error {
	self := e.registry.Self()
	if self.Name == "" {
		return ErrNameNotSet
	}

	target := peer.Peer{Address: address}
	info, err := e.transport.RegisterNode(ctx, target, self)
	if err != nil {
		return err
	}

	built, err := e.ChainBuilder(ctx, info, target)
	if err != nil {
		if _, ok := err.(*ChainTamperedError); ok {
			_ = e.transport.Vote(ctx, target)
		}
		return err
	}

	e.mu.Lock()
	if len(built) > len(e.chain) {
		e.chain = built
	}
	e.mu.Unlock()

	discovered, err := decodePeers(info.Nodes)
	if err != nil {
		return err
	}
	e.registry.MergePeers(discovered)

	for _, p := range discovered {
		if p.Identity() == self.Identity() {
			continue
		}
		if _, err := e.transport.RegisterNode(ctx, p, self); err != nil {
			e.log.Warn().Err(err).Str("peer", p.Address).Msg("sync: register with discovered peer failed")
		}
	}

	e.registry.AddPeer(target)
	return nil
}

func decodePeers(raw []string) ([]peer.Peer, error) {
	peers := make([]peer.Peer, len(raw))
	for i, s := range raw {
		if err := json.Unmarshal([]byte(s), &peers[i]); err != nil {
			return nil, err
		}
	}
	return peers, nil
}
