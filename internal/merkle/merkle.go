// Package merkle builds a Merkle tree over raw leaf values and produces
// audit-path proofs of membership, retaining every level so a proof can be
// walked back down from a leaf to the root.
package merkle

import "blocknode/go-node/internal/canon"

// Step is one hop of an audit path: the sibling's hash and which side of
// the current running hash it sits on.
type Step struct {
	Position string `json:"position"` // "left" or "right"
	Hash     string `json:"hash"`
}

// Proof is the ordered audit path from a leaf to the root.
type Proof []Step

// Tree is a built Merkle tree, retaining every level bottom-up.
type Tree struct {
	levels [][]string // levels[0] = leaf hashes (padded), levels[len-1] = [root]
}

// Build hashes each leaf (raw canonical-JSON strings) with SHA-256 and
// builds the tree upward, duplicating the last node of any odd-length level.
func Build(leaves []string) *Tree {
	level := make([]string, len(leaves))
	for i, leaf := range leaves {
		level[i] = canon.SHA256Hex([]byte(leaf))
	}

	if len(level) == 0 {
		return &Tree{levels: [][]string{{canon.SHA256Hex(nil)}}}
	}

	levels := [][]string{level}
	cur := level
	for len(cur) > 1 {
		if len(cur)%2 == 1 {
			cur = append(cur, cur[len(cur)-1])
			levels[len(levels)-1] = cur
		}

		next := make([]string, 0, len(cur)/2)
		for i := 0; i < len(cur); i += 2 {
			next = append(next, canon.SHA256Hex([]byte(cur[i]+cur[i+1])))
		}
		cur = next
		levels = append(levels, cur)
	}

	return &Tree{levels: levels}
}

// Root returns the Merkle root.
func (t *Tree) Root() string {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// Proof returns the audit path for the leaf at index.
func (t *Tree) Proof(index int) Proof {
	proof := Proof{}
	idx := index

	for lvl := 0; lvl < len(t.levels)-1; lvl++ {
		level := t.levels[lvl]

		var siblingIdx int
		var position string
		if idx%2 == 0 {
			siblingIdx = idx + 1
			position = "right"
		} else {
			siblingIdx = idx - 1
			position = "left"
		}

		proof = append(proof, Step{Position: position, Hash: level[siblingIdx]})
		idx /= 2
	}

	return proof
}

// Verify reconstructs the root from leafHash and proof and compares it to root.
func Verify(proof Proof, leafHash string, root string) bool {
	cur := leafHash
	for _, step := range proof {
		if step.Position == "left" {
			cur = canon.SHA256Hex([]byte(step.Hash + cur))
		} else {
			cur = canon.SHA256Hex([]byte(cur + step.Hash))
		}
	}
	return cur == root
}

// RootOf is a convenience wrapper for computing just the root of a set of
// canonical-JSON leaves, used where the full proof machinery isn't needed.
func RootOf(leaves []string) string {
	return Build(leaves).Root()
}
