package engine

import (
	"errors"

	"blocknode/go-node/internal/chain"
)

// ErrBlockNotFound and ErrTransactionNotFound back the debug tamper
// endpoint's "not found" responses.
var (
	ErrBlockNotFound       = errors.New("block index out of range")
	ErrTransactionNotFound = errors.New("transaction index out of range")
)

// TamperTransaction overwrites one transaction's author/content in place,
// without touching the stored hash or merkle root — the one sanctioned
// exception to "blocks are never mutated after append", used to exercise
// the tamper-detection protocol from the outside.
func (e *Engine) TamperTransaction(blockIndex, txIndex int, author, content string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if blockIndex < 0 || blockIndex >= len(e.chain) {
		return ErrBlockNotFound
	}
	b := &e.chain[blockIndex]
	if txIndex < 0 || txIndex >= len(b.Transactions) {
		return ErrTransactionNotFound
	}

	b.Transactions[txIndex] = chain.NewTransaction(author, content, b.Transactions[txIndex].Timestamp)
	return nil
}
