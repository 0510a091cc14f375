package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"blocknode/go-node/internal/chain"
	"blocknode/go-node/internal/consensus"
	"blocknode/go-node/internal/merkle"
	"blocknode/go-node/internal/peer"
)

// CheckChainValidity walks chain checking that it starts with a correct
// genesis block and that every subsequent block's previous-hash link and
// proof of work check out, without mutating anything. It mirrors
// addBlockLocked's two checks but runs them independent of the engine's own
// chain state, so it can validate a chain fetched from a peer before
// replacing anything.
func (e *Engine) CheckChainValidity(blocks []chain.Block) (bool, error) {
	if len(blocks) == 0 {
		return false, nil
	}

	genesis := genesisWithHash()
	if blocks[0].Hash != genesis.Hash {
		return false, nil
	}

	previousHash := genesis.Hash
	for _, b := range blocks[1:] {
		hash := b.Hash
		b.Hash = ""

		valid, err := consensus.IsValidProofOfWork(b, hash, e.difficulty)
		if err != nil {
			return false, err
		}
		if !valid || previousHash != b.PreviousHash {
			return false, nil
		}

		previousHash = hash
	}

	return true, nil
}

// Consensus implements longest-valid-chain resolution: it asks every known
// peer for its chain, and if any peer's chain is both strictly longer than
// this node's own and passes CheckChainValidity, it replaces this node's
// chain. It returns true if a replacement occurred.
func (e *Engine) Consensus(ctx context.Context) (bool, error) {
	peers := e.registry.Peers()

	currentLen := e.ChainLen()
	var longest []chain.Block
	longestLen := currentLen

	for _, p := range peers {
		info, err := e.transport.FetchChain(ctx, p)
		if err != nil {
			e.log.Warn().Err(err).Str("peer", p.Address).Msg("consensus: fetch chain failed")
			continue
		}

		if info.Length <= longestLen {
			continue
		}

		blocks, err := decodeChainBlocks(info.Chain)
		if err != nil {
			e.log.Warn().Err(err).Str("peer", p.Address).Msg("consensus: undecodable chain")
			continue
		}

		valid, err := e.CheckChainValidity(blocks)
		if err != nil {
			return false, err
		}
		if !valid {
			e.log.Warn().Str("peer", p.Address).Msg("consensus: rejected tampered chain")
			continue
		}

		longestLen = info.Length
		longest = blocks
	}

	if longest == nil {
		return false, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if longestLen <= len(e.chain) {
		// Someone beat us to a longer chain while we were fetching.
		return false, nil
	}
	e.chain = longest
	return true, nil
}

func decodeChainBlocks(raw []string) ([]chain.Block, error) {
	blocks := make([]chain.Block, len(raw))
	for i, s := range raw {
		if err := json.Unmarshal([]byte(s), &blocks[i]); err != nil {
			return nil, fmt.Errorf("decode block %d: %w", i, err)
		}
	}
	return blocks, nil
}

// ChainBuilder constructs a fresh chain seeded with this node's own
// genesis block, then replays a remote peer's chain info onto it block by
// block starting at index 1 — the remote's claimed genesis (blocks[0]) is
// never trusted verbatim, only checked against the genesis every honest
// node generates for itself. A block that fails to link or prove triggers
// a tamper diagnosis, which asks a peer other than sourcePeer for Merkle
// proofs, before giving up.
func (e *Engine) ChainBuilder(ctx context.Context, info peer.Info, sourcePeer peer.Peer) ([]chain.Block, error) {
	blocks, err := decodeChainBlocks(info.Chain)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, &ChainTamperedError{Reason: "remote chain is empty"}
	}

	genesis := genesisWithHash()
	if blocks[0].Hash != genesis.Hash {
		return nil, &ChainTamperedError{Reason: "chain is tampered: remote genesis does not match"}
	}

	built := []chain.Block{genesis}

	for i := 1; i < len(blocks); i++ {
		b := blocks[i]
		proof := b.Hash
		candidate := b
		candidate.Hash = ""

		prev := built[len(built)-1]
		linkOK := prev.Hash == candidate.PreviousHash
		var powOK bool
		if linkOK {
			powOK, err = consensus.IsValidProofOfWork(candidate, proof, e.difficulty)
			if err != nil {
				return nil, err
			}
		}

		if linkOK && powOK {
			candidate.Hash = proof
			built = append(built, candidate)
			continue
		}

		tampered := e.diagnoseTamper(ctx, candidate.Transactions, candidate.MerkleRoot, sourcePeer)
		if len(tampered) == 0 {
			return nil, &ChainTamperedError{Reason: "chain is tampered: previous hash or proof of work mismatch"}
		}
		return nil, &ChainTamperedError{
			Reason:   "chain is tampered: the following transactions could not be validated",
			Tampered: tampered,
		}
	}

	return built, nil
}

// diagnoseTamper asks one known peer whose address differs from sourcePeer's
// (picked afresh for each transaction) for a Merkle proof of each
// transaction in a block that failed to link or prove, to pinpoint which
// transactions (if any) were altered in transit rather than just rejecting
// the whole block.
func (e *Engine) diagnoseTamper(ctx context.Context, txs []chain.Transaction, merkleRoot string, sourcePeer peer.Peer) []TamperedTransaction {
	var tampered []TamperedTransaction

	for i, tx := range txs {
		witness, ok := e.registry.AnyPeerExceptAddress(sourcePeer.Address)
		if !ok {
			continue
		}

		proof, err := e.transport.RequestMerkleProof(ctx, witness, i, merkleRoot)
		if err != nil {
			continue
		}

		leafHash, err := tx.Hash()
		if err != nil {
			continue
		}

		if !merkle.Verify(proof, leafHash, merkleRoot) {
			tampered = append(tampered, TamperedTransaction{Index: i, MerkleRoot: merkleRoot})
		}
	}

	return tampered
}
