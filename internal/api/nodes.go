package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"blocknode/go-node/internal/engine"
	"blocknode/go-node/internal/peer"
	"blocknode/go-node/internal/registry"
)

func (s *Server) handleNodesChain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	info, err := s.engine.ChainLocalInfo()
	if errors.Is(err, engine.ErrNameNotSet) {
		respond(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err != nil {
		respond(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(info)
}

func (s *Server) handleNodesTrustable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.engine.PeerCount() == 0 {
		respond(w, http.StatusOK, "I don't know, add nodes to compare with!")
		return
	}

	if s.engine.Trust() == registry.TrustTampered {
		respond(w, http.StatusOK, "Your chain has been tampered :(, please, re-sync to a trusted node!")
		return
	}
	respond(w, http.StatusOK, "Your chain is okay! You're good to go!")
}

func (s *Server) handleNodesVote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.engine.RecordVote()
	respond(w, http.StatusOK, "Voted as not trustable!")
}

type setNameRequest struct {
	NodeName string `json:"node_name"`
}

func (s *Server) handleNodesSetName(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req setNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NodeName == "" {
		respond(w, http.StatusInternalServerError, "can't name the node like that, please choose another name")
		return
	}

	self := s.engine.Self()
	self.Name = req.NodeName
	s.engine.SetSelf(self)

	respond(w, http.StatusOK, "Name set to "+req.NodeName)
}

type registerNodeRequest struct {
	NodeAddress string `json:"node_address"`
	NodeName    string `json:"node_name"`
}

func (s *Server) handleNodesRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req registerNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NodeAddress == "" || req.NodeName == "" {
		respond(w, http.StatusRequestTimeout, "can't add the node to the chain, invalid data")
		return
	}

	added := s.engine.RegisterIncomingPeer(peer.Peer{Address: req.NodeAddress, Name: req.NodeName})
	if !added {
		respond(w, http.StatusForbidden, "node is already registered")
		return
	}

	info, err := s.engine.ChainLocalInfo()
	if err != nil {
		respond(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(info)
}

type syncNodeRequest struct {
	NodeAddress string `json:"node_address"`
}

func (s *Server) handleNodesSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req syncNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NodeAddress == "" {
		respond(w, http.StatusBadRequest, "node_address is required")
		return
	}

	if s.engine.Self().Name == "" {
		respond(w, http.StatusNotFound, "please set a name for your node")
		return
	}

	err := s.engine.SyncNode(r.Context(), req.NodeAddress)
	if err != nil {
		var tampered *engine.ChainTamperedError
		if errors.As(err, &tampered) {
			respond(w, http.StatusMethodNotAllowed, tampered.Error())
			return
		}
		respond(w, http.StatusBadRequest, "can't sync to remote node: "+err.Error())
		return
	}

	respond(w, http.StatusCreated, "registration successful")
}
