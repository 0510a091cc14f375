package engine

import (
	"context"
	"fmt"
	"sync"

	"blocknode/go-node/internal/merkle"
	"blocknode/go-node/internal/peer"
)

// fakeTransport is an in-memory stand-in for peer.Transport, keyed by peer
// address, so Consensus/PublishNewBlock/SyncNode/ChainBuilder can be
// exercised without a network.
type fakeTransport struct {
	mu sync.Mutex

	chains        map[string]peer.Info
	fetchErr      map[string]error
	submitErr     map[string]error
	submitCalls   map[string]int
	registerInfo  map[string]peer.Info
	registerErr   map[string]error
	proofs        map[string]merkle.Proof
	proofErr      map[string]error
	votes         map[string]int
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		chains:       make(map[string]peer.Info),
		fetchErr:     make(map[string]error),
		submitErr:    make(map[string]error),
		submitCalls:  make(map[string]int),
		registerInfo: make(map[string]peer.Info),
		registerErr:  make(map[string]error),
		proofs:       make(map[string]merkle.Proof),
		proofErr:     make(map[string]error),
		votes:        make(map[string]int),
	}
}

func (f *fakeTransport) FetchChain(ctx context.Context, p peer.Peer) (peer.Info, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.fetchErr[p.Address]; ok {
		return peer.Info{}, err
	}
	return f.chains[p.Address], nil
}

func (f *fakeTransport) SubmitBlock(ctx context.Context, p peer.Peer, blockJSON string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitCalls[p.Address]++
	if err, ok := f.submitErr[p.Address]; ok {
		return err
	}
	return nil
}

func (f *fakeTransport) RequestMerkleProof(ctx context.Context, p peer.Peer, txIndex int, merkleRoot string) (merkle.Proof, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := fmt.Sprintf("%s|%d|%s", p.Address, txIndex, merkleRoot)
	if err, ok := f.proofErr[key]; ok {
		return nil, err
	}
	return f.proofs[key], nil
}

func (f *fakeTransport) RegisterNode(ctx context.Context, p peer.Peer, self peer.Peer) (peer.Info, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.registerErr[p.Address]; ok {
		return peer.Info{}, err
	}
	return f.registerInfo[p.Address], nil
}

func (f *fakeTransport) Vote(ctx context.Context, p peer.Peer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.votes[p.Address]++
	return nil
}
