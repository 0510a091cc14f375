package peer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"blocknode/go-node/internal/merkle"
)

/*
HTTP TRANSPORT

This is the only place in the repo that dials the network: a plain
*http.Client with a configured timeout, manual retry loops, and
fmt.Errorf-wrapped failures.

Retry counts are fixed, not configurable:
- SubmitBlock:         100 attempts
- RegisterNode:          3 attempts
- RequestMerkleProof:    3 attempts
- FetchChain / Vote:     1 attempt (no retry)
*/

const (
	maxPublishAttempts  = 100
	maxRegisterAttempts = 3
	maxProofAttempts    = 3
)

// HTTPTransport is the production Transport, built on the standard library
// HTTP client.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport builds a transport with the given per-request timeout.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{client: &http.Client{Timeout: timeout}}
}

func (t *HTTPTransport) FetchChain(ctx context.Context, p Peer) (Info, error) {
	url := strings.TrimRight(p.Address, "/") + "/Nodes/chain"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Info{}, fmt.Errorf("build fetch-chain request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return Info{}, fmt.Errorf("fetch chain from %s: %w", p.Address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Info{}, fmt.Errorf("fetch chain from %s: status %d", p.Address, resp.StatusCode)
	}

	var info Info
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return Info{}, fmt.Errorf("decode chain info from %s: %w", p.Address, err)
	}
	return info, nil
}

func (t *HTTPTransport) SubmitBlock(ctx context.Context, p Peer, blockJSON string) error {
	url := strings.TrimRight(p.Address, "/") + "/Block/add"

	var lastErr error
	for attempt := 0; attempt < maxPublishAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBufferString(blockJSON))
		if err != nil {
			return fmt.Errorf("build submit-block request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := t.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusCreated {
			resp.Body.Close()
			return nil
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		lastErr = &SubmitError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("submit block to %s: exhausted retries", p.Address)
	}
	return lastErr
}

func (t *HTTPTransport) RequestMerkleProof(ctx context.Context, p Peer, txIndex int, merkleRoot string) (merkle.Proof, error) {
	url := strings.TrimRight(p.Address, "/") + "/Transactions/validator"

	body, err := json.Marshal(map[string]interface{}{
		"transaction_index": txIndex,
		"merkle_root":       merkleRoot,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal proof request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < maxProofAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("build proof request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := t.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusCreated {
			respBody, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("proof request to %s: status %d: %s", p.Address, resp.StatusCode, string(respBody))
			continue
		}

		var envelope struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("decode proof response from %s: %w", p.Address, err)
		}
		resp.Body.Close()

		var proof merkle.Proof
		if err := json.Unmarshal([]byte(envelope.Message), &proof); err != nil {
			return nil, fmt.Errorf("decode proof payload from %s: %w", p.Address, err)
		}
		return proof, nil
	}

	return nil, lastErr
}

func (t *HTTPTransport) RegisterNode(ctx context.Context, p Peer, self Peer) (Info, error) {
	url := strings.TrimRight(p.Address, "/") + "/Nodes/register_node"

	body, err := json.Marshal(map[string]string{
		"node_address": self.Address,
		"node_name":    self.Name,
	})
	if err != nil {
		return Info{}, fmt.Errorf("marshal register request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < maxRegisterAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return Info{}, fmt.Errorf("build register request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := t.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusCreated {
			respBody, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("register with %s: status %d: %s", p.Address, resp.StatusCode, string(respBody))
			continue
		}

		var info Info
		if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
			resp.Body.Close()
			return Info{}, fmt.Errorf("decode register response from %s: %w", p.Address, err)
		}
		resp.Body.Close()
		return info, nil
	}

	return Info{}, lastErr
}

func (t *HTTPTransport) Vote(ctx context.Context, p Peer) error {
	url := strings.TrimRight(p.Address, "/") + "/Nodes/vote"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build vote request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("vote on %s: %w", p.Address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("vote on %s: status %d", p.Address, resp.StatusCode)
	}
	return nil
}
