package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMempoolAddAllClear(t *testing.T) {
	mp := NewMempool()
	assert.Equal(t, 0, mp.Size())

	mp.Add(NewTransaction("alice", "one", 1))
	mp.Add(NewTransaction("bob", "two", 2))
	assert.Equal(t, 2, mp.Size())

	txs := mp.All()
	assert.Len(t, txs, 2)
	assert.Equal(t, "alice", txs[0].Author)
	assert.Equal(t, "bob", txs[1].Author)

	mp.Clear()
	assert.Equal(t, 0, mp.Size())
	assert.Empty(t, mp.All())
}

func TestMempoolAllReturnsSnapshotNotAlias(t *testing.T) {
	mp := NewMempool()
	mp.Add(NewTransaction("alice", "one", 1))

	snapshot := mp.All()
	snapshot[0].Author = "mutated"

	assert.Equal(t, "alice", mp.All()[0].Author, "mutating the snapshot must not affect the mempool")
}

func TestIsPowerOfTwo(t *testing.T) {
	cases := []struct {
		n    int
		want bool
	}{
		{0, false},
		{1, true},
		{2, true},
		{3, false},
		{4, true},
		{5, false},
		{8, true},
		{15, false},
		{16, true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, IsPowerOfTwo(tc.n), "n=%d", tc.n)
	}
}
