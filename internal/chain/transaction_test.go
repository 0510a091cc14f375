package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionCanonicalIsSortedKeys(t *testing.T) {
	tx := NewTransaction("alice", "hello", 100.5)

	c, err := tx.Canonical()
	require.NoError(t, err)
	assert.JSONEq(t, `{"author":"alice","content":"hello","timestamp":100.5}`, c)
}

func TestTransactionHashDeterministic(t *testing.T) {
	tx1 := NewTransaction("alice", "hello", 100.5)
	tx2 := NewTransaction("alice", "hello", 100.5)

	h1, err := tx1.Hash()
	require.NoError(t, err)
	h2, err := tx2.Hash()
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestTransactionHashSensitiveToContent(t *testing.T) {
	h1, err := NewTransaction("alice", "hello", 100.5).Hash()
	require.NoError(t, err)
	h2, err := NewTransaction("alice", "goodbye", 100.5).Hash()
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}
