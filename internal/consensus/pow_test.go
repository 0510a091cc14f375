package consensus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blocknode/go-node/internal/chain"
)

func TestProofOfWorkSatisfiesDifficulty(t *testing.T) {
	b := chain.NewBlock(1, nil, 1000, "0", "0")

	hash, err := ProofOfWork(&b, DefaultDifficulty)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, strings.Repeat("0", DefaultDifficulty)))

	recomputed, err := b.HashWithoutHash()
	require.NoError(t, err)
	assert.Equal(t, hash, recomputed, "the winning hash must match the block's own hash at the mined nonce")
}

func TestProofOfWorkDeterministicNonce(t *testing.T) {
	b1 := chain.NewBlock(1, nil, 1000, "0", "0")
	b2 := chain.NewBlock(1, nil, 1000, "0", "0")

	h1, err := ProofOfWork(&b1, DefaultDifficulty)
	require.NoError(t, err)
	h2, err := ProofOfWork(&b2, DefaultDifficulty)
	require.NoError(t, err)

	assert.Equal(t, b1.Nonce, b2.Nonce)
	assert.Equal(t, h1, h2)
}

func TestIsValidProofOfWorkAcceptsMinedHash(t *testing.T) {
	b := chain.NewBlock(1, nil, 1000, "0", "0")
	hash, err := ProofOfWork(&b, DefaultDifficulty)
	require.NoError(t, err)

	valid, err := IsValidProofOfWork(b, hash, DefaultDifficulty)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestIsValidProofOfWorkRejectsWrongHash(t *testing.T) {
	b := chain.NewBlock(1, nil, 1000, "0", "0")
	_, err := ProofOfWork(&b, DefaultDifficulty)
	require.NoError(t, err)

	valid, err := IsValidProofOfWork(b, "00aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", DefaultDifficulty)
	require.NoError(t, err)
	assert.False(t, valid, "a hash meeting the prefix but not matching the block data must be rejected")
}

func TestIsValidProofOfWorkRejectsUnmetDifficulty(t *testing.T) {
	b := chain.NewBlock(1, nil, 1000, "0", "0")
	hash, err := b.HashWithoutHash()
	require.NoError(t, err)

	valid, err := IsValidProofOfWork(b, hash, 64)
	require.NoError(t, err)
	assert.False(t, valid)
}
