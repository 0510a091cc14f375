package merkle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDeterministic(t *testing.T) {
	leaves := []string{`{"a":1}`, `{"b":2}`, `{"c":3}`, `{"d":4}`}

	root1 := Build(leaves).Root()
	root2 := Build(leaves).Root()

	assert.Equal(t, root1, root2, "same leaves must yield the same root")
	assert.Len(t, root1, 64, "root is a hex SHA-256 digest")
}

func TestBuildOddLevelDuplication(t *testing.T) {
	three := Build([]string{`{"a":1}`, `{"b":2}`, `{"c":3}`}).Root()
	fourWithDup := Build([]string{`{"a":1}`, `{"b":2}`, `{"c":3}`, `{"c":3}`}).Root()

	assert.Equal(t, fourWithDup, three, "odd level pads by duplicating the last node")
}

func TestProofRoundTrip(t *testing.T) {
	leaves := []string{`{"a":1}`, `{"b":2}`, `{"c":3}`, `{"d":4}`}
	tree := Build(leaves)
	root := tree.Root()

	for i, leaf := range leaves {
		proof := tree.Proof(i)
		leafHash := sha256Hex(t, leaf)
		require.True(t, Verify(proof, leafHash, root), "proof for leaf %d must validate", i)
	}
}

func TestVerifyRejectsWrongLeaf(t *testing.T) {
	leaves := []string{`{"a":1}`, `{"b":2}`}
	tree := Build(leaves)
	root := tree.Root()
	proof := tree.Proof(0)

	wrongLeafHash := sha256Hex(t, `{"tampered":true}`)
	assert.False(t, Verify(proof, wrongLeafHash, root))
}

func TestRootOfMatchesTreeRoot(t *testing.T) {
	leaves := []string{`{"x":1}`, `{"y":2}`}
	assert.Equal(t, Build(leaves).Root(), RootOf(leaves))
}

func sha256Hex(t *testing.T, s string) string {
	t.Helper()
	return Build([]string{s}).Root()
}
