package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blocknode/go-node/internal/chain"
	"blocknode/go-node/internal/peer"
)

func TestPublishNewBlockSendsToEveryPeer(t *testing.T) {
	e := newTestEngine()
	e.AddPending(chain.NewTransaction("a", "1", 1))
	e.AddPending(chain.NewTransaction("a", "2", 2))
	_, err := e.ComputeTransactions()
	require.NoError(t, err)

	e.registry.AddPeer(peer.Peer{Address: "http://p1", Name: "p1"})
	e.registry.AddPeer(peer.Peer{Address: "http://p2", Name: "p2"})

	failures, err := e.PublishNewBlock(context.Background())
	require.NoError(t, err)
	assert.Empty(t, failures)

	ft := e.transport.(*fakeTransport)
	assert.Equal(t, 1, ft.submitCalls["http://p1"])
	assert.Equal(t, 1, ft.submitCalls["http://p2"])
}

func TestPublishNewBlockCollectsFailures(t *testing.T) {
	e := newTestEngine()
	e.AddPending(chain.NewTransaction("a", "1", 1))
	e.AddPending(chain.NewTransaction("a", "2", 2))
	_, err := e.ComputeTransactions()
	require.NoError(t, err)

	e.registry.AddPeer(peer.Peer{Address: "http://good", Name: "good"})
	e.registry.AddPeer(peer.Peer{Address: "http://bad", Name: "bad"})

	ft := e.transport.(*fakeTransport)
	ft.submitErr["http://bad"] = &peer.SubmitError{StatusCode: 400, Body: "nope"}

	failures, err := e.PublishNewBlock(context.Background())
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, "http://bad", failures[0].Peer)
}
