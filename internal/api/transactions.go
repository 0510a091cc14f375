package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"blocknode/go-node/internal/chain"
	"blocknode/go-node/internal/engine"
	"blocknode/go-node/internal/merkle"
)

type unconfirmedRequest struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

func (s *Server) handleUnconfirmed(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req unconfirmedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Author == "" || req.Content == "" {
			respond(w, http.StatusBadRequest, "author and content are required")
			return
		}

		tx := chain.NewTransaction(req.Author, req.Content, nowUnix())
		s.engine.AddPending(tx)
		respond(w, http.StatusCreated, "added")

	case http.MethodGet:
		txs := s.engine.PendingTransactions()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(txs)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type validatorRequest struct {
	TransactionIndex int    `json:"transaction_index"`
	MerkleRoot       string `json:"merkle_root"`
}

func (s *Server) handleValidator(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req validatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MerkleRoot == "" {
		respond(w, http.StatusBadRequest, "transaction_index and merkle_root are required")
		return
	}

	txs, ok := s.engine.GetTransactionsByMerkleRoot(req.MerkleRoot)
	if !ok {
		respond(w, http.StatusNotFound, "no block matches that merkle root")
		return
	}
	if req.TransactionIndex < 0 || req.TransactionIndex >= len(txs) {
		respond(w, http.StatusBadRequest, "transaction_index out of range")
		return
	}

	leaves := make([]string, len(txs))
	for i, tx := range txs {
		c, err := tx.Canonical()
		if err != nil {
			respond(w, http.StatusBadRequest, "could not serialize block transactions")
			return
		}
		leaves[i] = c
	}

	proof := merkle.Build(leaves).Proof(req.TransactionIndex)
	proofJSON, err := json.Marshal(proof)
	if err != nil {
		respond(w, http.StatusBadRequest, "could not serialize proof")
		return
	}

	respond(w, http.StatusCreated, string(proofJSON))
}

func (s *Server) handleMine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	switched, err := s.engine.Consensus(ctx)
	if err != nil {
		respond(w, http.StatusBadRequest, err.Error())
		return
	}

	index, err := s.engine.ComputeTransactions()
	if errors.Is(err, engine.ErrNoPendingTransactions) || errors.Is(err, engine.ErrNotPowerOfTwo) {
		respond(w, http.StatusOK, "no pending transactions to mine")
		return
	}
	if err != nil {
		respond(w, http.StatusBadRequest, err.Error())
		return
	}

	failures, err := s.engine.PublishNewBlock(ctx)
	if err != nil {
		respond(w, http.StatusBadRequest, err.Error())
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"block_index":      index,
		"consensus_ran":    switched,
		"publish_failures": failures,
	})
}
