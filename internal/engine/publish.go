package engine

import "context"

// PublishNewBlock sends the chain's tip to every known peer, retrying each
// one per the transport's own retry budget. It returns one PublishFailure
// per peer that never accepted the block, and never blocks other engine
// operations while it's mid-flight — the lock is only held long enough to
// snapshot the tip and the peer list.
func (e *Engine) PublishNewBlock(ctx context.Context) ([]PublishFailure, error) {
	last := e.LastBlock()
	blockJSON, err := last.CanonicalWithHash()
	if err != nil {
		return nil, err
	}

	peers := e.registry.Peers()

	var failures []PublishFailure
	for _, p := range peers {
		if err := e.transport.SubmitBlock(ctx, p, blockJSON); err != nil {
			failures = append(failures, PublishFailure{
				Peer:    p.Address,
				Message: err.Error(),
			})
		}
	}

	return failures, nil
}
