// Package peer models a remote node: its identity, the wire shape of the
// chain-info it reports, and the Transport capability used to reach it.
//
// Per the engine's design notes, the engine never holds a live reference to
// a remote engine — only an address and a name, plus an injected Transport
// so production code dials real HTTP and tests stub it out.
package peer

import (
	"context"

	"blocknode/go-node/internal/canon"
	"blocknode/go-node/internal/merkle"
)

// Peer identifies a reachable remote node.
type Peer struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// Identity is the (address, name) pair peers are deduplicated on.
type Identity struct {
	Address string
	Name    string
}

// Identity returns the set-membership key for p.
func (p Peer) Identity() Identity {
	return Identity{Address: p.Address, Name: p.Name}
}

// Canonical returns the sorted-key JSON form of p.
func (p Peer) Canonical() (string, error) {
	return canon.Canonical(p)
}

// Info is the shape a node reports about its local chain state:
// chain_local_info in the wire protocol.
type Info struct {
	Length         int      `json:"length"`
	Chain          []string `json:"chain"`
	Nodes          []string `json:"nodes"`
	NodeIdentifier string   `json:"node_identifier"`
}

// SubmitError is returned by SubmitBlock when the peer answered but not
// with 201, after retries are exhausted — as opposed to a network-level
// error, which is returned unwrapped.
type SubmitError struct {
	StatusCode int
	Body       string
}

func (e *SubmitError) Error() string {
	return "peer rejected block"
}

// Transport is the capability a Peer needs from the outside world. All of
// it is outbound HTTP in production; tests substitute an in-memory fake so
// the engine's consensus/publish/diagnostic logic can run without a
// network.
type Transport interface {
	// FetchChain performs GET {address}/Nodes/chain.
	FetchChain(ctx context.Context, p Peer) (Info, error)

	// SubmitBlock performs POST {address}/Block/add with blockJSON as the
	// body, retrying up to 100 times until it sees HTTP 201.
	SubmitBlock(ctx context.Context, p Peer, blockJSON string) error

	// RequestMerkleProof performs POST {address}/Transactions/validator,
	// retrying up to 3 times, and parses the returned proof.
	RequestMerkleProof(ctx context.Context, p Peer, txIndex int, merkleRoot string) (merkle.Proof, error)

	// RegisterNode performs POST {address}/Nodes/register_node with self's
	// identity, retrying up to 3 times, and returns the peer's
	// chain_local_info on success.
	RegisterNode(ctx context.Context, p Peer, self Peer) (Info, error)

	// Vote performs GET {address}/Nodes/vote.
	Vote(ctx context.Context, p Peer) error
}
