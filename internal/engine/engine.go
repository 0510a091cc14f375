// Package engine is the core of a node: the chain itself, the pending
// transaction pool, the peer registry, and every operation that can mutate
// or inspect them. Everything that isn't pure data modeling or pure wire
// transport lives here.
package engine

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"blocknode/go-node/internal/chain"
	"blocknode/go-node/internal/consensus"
	"blocknode/go-node/internal/merkle"
	"blocknode/go-node/internal/peer"
	"blocknode/go-node/internal/registry"
)

/*
LOCKING DISCIPLINE

A single mutex guards the chain slice and the mempool. Any method that
talks to the network (Consensus, PublishNewBlock, RegisterPeer, SyncNode,
diagnoseTamper) releases the lock before the outbound call and re-acquires
it — re-checking whatever invariant justified the call — before committing
results. Holding the lock across a network round trip would let one slow
peer stall every other operation on the node.

ComputeTransactions is the one CPU-bound exception: it holds the lock for
its entire snapshot-through-clear window, proof-of-work search included,
because it touches no network. A transaction that arrives mid-mine via
AddPending simply waits for the lock and lands in the mempool after the
mined batch has been cleared out from under it — it never gets silently
dropped by an unlocked Clear racing an unlocked Add.
*/

// Engine owns one node's chain, mempool, registry, and the means to reach
// its peers.
type Engine struct {
	mu sync.Mutex

	chain      []chain.Block
	mempool    *chain.Mempool
	difficulty int

	registry  *registry.Registry
	transport peer.Transport
	log       zerolog.Logger
}

// New builds an engine seeded with the genesis block.
func New(transport peer.Transport, difficulty int, logger zerolog.Logger) *Engine {
	return &Engine{
		chain:      []chain.Block{genesisWithHash()},
		mempool:    chain.NewMempool(),
		difficulty: difficulty,
		registry:   registry.New(),
		transport:  transport,
		log:        logger,
	}
}

func genesisWithHash() chain.Block {
	b := chain.NewGenesisBlock()
	h, err := b.HashWithoutHash()
	if err != nil {
		// Hashing a fixed, literal struct cannot fail.
		panic(err)
	}
	b.Hash = h
	return b
}

// AddPending queues tx for the next mined block.
func (e *Engine) AddPending(tx chain.Transaction) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mempool.Add(tx)
}

// PendingTransactions returns a snapshot of the mempool.
func (e *Engine) PendingTransactions() []chain.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mempool.All()
}

// ChainLen returns the current chain length.
func (e *Engine) ChainLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.chain)
}

// LastBlock returns the chain's tip.
func (e *Engine) LastBlock() chain.Block {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chain[len(e.chain)-1]
}

// chainSnapshot returns a copy of the chain slice, held under lock.
func (e *Engine) chainSnapshot() []chain.Block {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]chain.Block, len(e.chain))
	copy(out, e.chain)
	return out
}

// SetSelf records this node's own address/name in the registry.
func (e *Engine) SetSelf(p peer.Peer) { e.registry.SetSelf(p) }

// Self returns this node's own identity.
func (e *Engine) Self() peer.Peer { return e.registry.Self() }

// Peers returns every known peer.
func (e *Engine) Peers() []peer.Peer { return e.registry.Peers() }

// PeerCount returns the number of known peers.
func (e *Engine) PeerCount() int { return e.registry.PeerCount() }

// RegisterIncomingPeer adds a peer that announced itself to this node,
// reporting false if it was already known under the same (address, name).
func (e *Engine) RegisterIncomingPeer(p peer.Peer) bool { return e.registry.AddPeer(p) }

// RecordVote registers a tamper vote against this node's own chain.
func (e *Engine) RecordVote() { e.registry.RecordVote() }

// Trust reports this node's current trust status.
func (e *Engine) Trust() registry.TrustStatus { return e.registry.Trust() }

// AddBlock validates and appends a single block, returning false if its
// previous-hash link or proof of work don't check out. It takes the engine
// lock for the duration.
func (e *Engine) AddBlock(b chain.Block, proofHash string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addBlockLocked(b, proofHash)
}

func (e *Engine) addBlockLocked(b chain.Block, proofHash string) (bool, error) {
	prev := e.chain[len(e.chain)-1]
	if prev.Hash != b.PreviousHash {
		return false, nil
	}

	valid, err := consensus.IsValidProofOfWork(b, proofHash, e.difficulty)
	if err != nil {
		return false, err
	}
	if !valid {
		return false, nil
	}

	b.Hash = proofHash
	e.chain = append(e.chain, b)
	return true, nil
}

// ComputeTransactions drains the mempool into a new mined block: the batch
// must already be (or be one short of) a power of two in size, since the
// Merkle tree pads odd levels by duplicating the last leaf exactly once.
//
// It holds the engine lock for the whole snapshot-through-clear window,
// mining included, so a transaction added mid-mine can never be dropped by
// the clear at the end — it just waits for the lock and joins the mempool
// after this call releases it.
func (e *Engine) ComputeTransactions() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	txs := e.mempool.All()
	if len(txs) == 0 {
		return 0, ErrNoPendingTransactions
	}

	switch {
	case chain.IsPowerOfTwo(len(txs)):
		// already a valid batch size
	case chain.IsPowerOfTwo(len(txs) + 1):
		txs = append(txs, txs[len(txs)-1])
	default:
		return 0, ErrNotPowerOfTwo
	}

	leaves := make([]string, len(txs))
	for i, tx := range txs {
		c, err := tx.Canonical()
		if err != nil {
			return 0, err
		}
		leaves[i] = c
	}
	root := merkle.RootOf(leaves)

	last := e.chain[len(e.chain)-1]
	prevHash, err := last.HashWithoutHash()
	if err != nil {
		return 0, err
	}

	newBlock := chain.NewBlock(last.Index+1, txs, float64(time.Now().UnixNano())/1e9, prevHash, root)
	proof, err := consensus.ProofOfWork(&newBlock, e.difficulty)
	if err != nil {
		return 0, err
	}

	added, err := e.addBlockLocked(newBlock, proof)
	if err != nil {
		return 0, err
	}
	if !added {
		return 0, ErrBlockRejected
	}

	e.mempool.Clear()
	return newBlock.Index, nil
}

// GetTransactionsByMerkleRoot returns the transactions of the block
// committing to the given root, if any block in the chain does.
func (e *Engine) GetTransactionsByMerkleRoot(root string) ([]chain.Transaction, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, b := range e.chain {
		if b.MerkleRoot == root {
			return b.Transactions, true
		}
	}
	return nil, false
}

// ChainLocalInfo reports this node's full state as sent to peers during
// registration and chain sync.
func (e *Engine) ChainLocalInfo() (peer.Info, error) {
	self := e.registry.Self()
	if self.Name == "" {
		return peer.Info{}, ErrNameNotSet
	}

	blocks := e.chainSnapshot()
	chainJSON := make([]string, len(blocks))
	for i, b := range blocks {
		j, err := b.CanonicalWithHash()
		if err != nil {
			return peer.Info{}, err
		}
		chainJSON[i] = j
	}

	peers := e.registry.Peers()
	nodeJSON := make([]string, len(peers))
	for i, p := range peers {
		j, err := p.Canonical()
		if err != nil {
			return peer.Info{}, err
		}
		nodeJSON[i] = j
	}

	selfJSON, err := self.Canonical()
	if err != nil {
		return peer.Info{}, err
	}

	return peer.Info{
		Length:         len(chainJSON),
		Chain:          chainJSON,
		Nodes:          nodeJSON,
		NodeIdentifier: selfJSON,
	}, nil
}
