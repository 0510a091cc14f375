package chain

import "blocknode/go-node/internal/canon"

/*
BLOCK – CONSENSUS CONTAINER

A block does NOT:
- decide whether a transaction should exist (that's the pending queue)
- decide chain membership (that's the chain engine)
- search for a valid nonce (that's the miner)

A block ONLY:
- groups an ordered batch of transactions
- commits to them via a Merkle root
- links to the previous block by its hash

The zero value of Hash means "not yet committed": genesis gets its hash
attached at construction time, every other block gets it attached by
AddBlock once the proof-of-work search (or a peer's claimed proof) checks
out.
*/

// Block is a single entry in the chain.
type Block struct {
	Index        int           `json:"index"`
	Transactions []Transaction `json:"transactions"`
	Timestamp    float64       `json:"timestamp"`
	PreviousHash string        `json:"previous_hash"`
	Nonce        int           `json:"nonce"`
	MerkleRoot   string        `json:"merkle_root"`
	Hash         string        `json:"hash"`
}

// blockForHash is the canonical-without-hash shape used both for mining
// (the hash is computed over everything except itself) and for re-deriving
// a block's hash to check it hasn't been tampered with.
type blockForHash struct {
	Index        int           `json:"index"`
	Transactions []Transaction `json:"transactions"`
	Timestamp    float64       `json:"timestamp"`
	PreviousHash string        `json:"previous_hash"`
	Nonce        int           `json:"nonce"`
	MerkleRoot   string        `json:"merkle_root"`
}

// NewGenesisBlock builds the single, deterministic genesis block: empty
// transactions, timestamp zero, previous hash "0", merkle root "0". Its
// Hash field is left empty; callers attach it via HashWithoutHash.
func NewGenesisBlock() Block {
	return Block{
		Index:        0,
		Transactions: []Transaction{},
		Timestamp:    0,
		PreviousHash: "0",
		Nonce:        0,
		MerkleRoot:   "0",
	}
}

// NewBlock builds a block ready for mining: nonce 0, hash unset.
func NewBlock(index int, txs []Transaction, timestamp float64, previousHash string, merkleRoot string) Block {
	if txs == nil {
		txs = []Transaction{}
	}
	return Block{
		Index:        index,
		Transactions: txs,
		Timestamp:    timestamp,
		PreviousHash: previousHash,
		Nonce:        0,
		MerkleRoot:   merkleRoot,
	}
}

func (b Block) withoutHash() blockForHash {
	return blockForHash{
		Index:        b.Index,
		Transactions: b.Transactions,
		Timestamp:    b.Timestamp,
		PreviousHash: b.PreviousHash,
		Nonce:        b.Nonce,
		MerkleRoot:   b.MerkleRoot,
	}
}

// CanonicalWithoutHash returns the sorted-key JSON form excluding Hash — the
// form that gets hashed.
func (b Block) CanonicalWithoutHash() (string, error) {
	return canon.Canonical(b.withoutHash())
}

// HashWithoutHash computes SHA-256 over CanonicalWithoutHash.
func (b Block) HashWithoutHash() (string, error) {
	return canon.HashCanonical(b.withoutHash())
}

// CanonicalWithHash returns the sorted-key JSON form including Hash — the
// wire/storage form used in chain dumps and block-add payloads.
func (b Block) CanonicalWithHash() (string, error) {
	return canon.Canonical(b)
}
