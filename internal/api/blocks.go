package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"blocknode/go-node/internal/chain"
	"blocknode/go-node/internal/engine"
)

func (s *Server) handleBlockAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var b chain.Block
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		respond(w, http.StatusBadRequest, "invalid block JSON")
		return
	}

	hash := b.Hash
	b.Hash = ""

	added, err := s.engine.AddBlock(b, hash)
	if err != nil {
		respond(w, http.StatusBadRequest, err.Error())
		return
	}
	if !added {
		respond(w, http.StatusBadRequest, "block rejected: invalid link or proof of work")
		return
	}

	respond(w, http.StatusCreated, "accepted")
}

type tamperRequest struct {
	Author           string `json:"author"`
	Content          string `json:"content"`
	BlockIndex       int    `json:"block_index"`
	TransactionIndex int    `json:"transaction_index"`
}

func (s *Server) handleBlockTamper(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req tamperRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.engine.TamperTransaction(req.BlockIndex, req.TransactionIndex, req.Author, req.Content)
	if errors.Is(err, engine.ErrBlockNotFound) || errors.Is(err, engine.ErrTransactionNotFound) {
		respond(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		respond(w, http.StatusBadRequest, err.Error())
		return
	}

	respond(w, http.StatusCreated, "transaction tampered")
}
