package engine

import "errors"

// Sentinel errors surfaced by engine operations. Callers use errors.Is to
// distinguish them from transport-level failures, which are always wrapped
// and returned unchanged.
var (
	// ErrNoPendingTransactions is returned by ComputeTransactions when the
	// mempool is empty.
	ErrNoPendingTransactions = errors.New("no pending transactions to confirm")

	// ErrNotPowerOfTwo is returned by ComputeTransactions when the pending
	// batch can't be padded to a power of two by duplicating its last entry.
	ErrNotPowerOfTwo = errors.New("unconfirmed transactions are not a power of two")

	// ErrBlockRejected is returned by ComputeTransactions when its freshly
	// mined block fails the previous-hash link check or proof-of-work check.
	// AddBlock itself reports such a rejection as (false, nil).
	ErrBlockRejected = errors.New("block rejected: invalid link or proof of work")

	// ErrNameNotSet is returned by ChainLocalInfo and RegisterPeer when the
	// node hasn't been given a name yet.
	ErrNameNotSet = errors.New("node name not set")
)

// TamperedTransaction describes one transaction whose Merkle proof failed
// to validate against the block's committed root during tamper diagnosis.
type TamperedTransaction struct {
	Index      int    `json:"index_transaction"`
	MerkleRoot string `json:"merkle_root_block"`
}

// ChainTamperedError is returned by ChainBuilder when a received chain
// fails to link or prove, carrying whatever diagnostic detail tamper
// detection could gather.
type ChainTamperedError struct {
	// Reason is a short, human-readable summary.
	Reason string
	// Tampered holds the transactions pinpointed as invalid by Merkle-proof
	// cross-checks against peers, if any witness could be reached.
	Tampered []TamperedTransaction
}

func (e *ChainTamperedError) Error() string {
	return e.Reason
}

// PublishFailure records one peer's rejection of a published block.
type PublishFailure struct {
	Peer    string `json:"node"`
	Message string `json:"error_message"`
}
