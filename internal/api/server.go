// Package api implements the node's REST interface: the same route table
// peers and operators use to talk to this node.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"blocknode/go-node/internal/config"
	"blocknode/go-node/internal/engine"
	"blocknode/go-node/internal/metrics"
	"blocknode/go-node/internal/middleware"
)

/*
API SERVER – REST ENDPOINTS

Endpoints:
- POST /Transactions/unconfirmed  - queue a transaction
- GET  /Transactions/unconfirmed  - list pending transactions
- POST /Transactions/validator    - Merkle proof for a transaction
- GET  /Transactions/mine         - mine pending transactions into a block
- POST /Block/add                 - accept a block from a peer
- POST /Block/tamper               - debug endpoint, corrupts a stored transaction
- GET  /Nodes/chain                - this node's full chain/peer info
- GET  /Nodes/trustable            - this node's tamper-vote status
- GET  /Nodes/vote                 - cast a tamper vote against this node
- POST /Nodes/set_name             - name this node
- POST /Nodes/register_node        - a peer registers itself with this node
- POST /Nodes/sync_node            - join the network through a target node
*/

// Server wires the engine to the HTTP route table.
type Server struct {
	engine *engine.Engine
	log    zerolog.Logger
	mux    *http.ServeMux
}

// NewServer builds a Server with every route registered.
func NewServer(e *engine.Engine, logger zerolog.Logger) *Server {
	s := &Server{engine: e, log: logger, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/Transactions/unconfirmed", s.handleUnconfirmed)
	s.mux.HandleFunc("/Transactions/validator", s.handleValidator)
	s.mux.HandleFunc("/Transactions/mine", s.handleMine)
	s.mux.HandleFunc("/Block/add", s.handleBlockAdd)
	s.mux.HandleFunc("/Block/tamper", s.handleBlockTamper)
	s.mux.HandleFunc("/Nodes/chain", s.handleNodesChain)
	s.mux.HandleFunc("/Nodes/trustable", s.handleNodesTrustable)
	s.mux.HandleFunc("/Nodes/vote", s.handleNodesVote)
	s.mux.HandleFunc("/Nodes/set_name", s.handleNodesSetName)
	s.mux.HandleFunc("/Nodes/register_node", s.handleNodesRegister)
	s.mux.HandleFunc("/Nodes/sync_node", s.handleNodesSync)
}

// Handler builds the full middleware-wrapped handler: Recovery → RequestID
// → Logging → Metrics → CORS → RateLimit, outside-in.
func (s *Server) Handler(cfg *config.Config, m *metrics.Metrics) http.Handler {
	return middleware.Chain(s.mux,
		middleware.Recovery(s.log),
		middleware.RequestID(),
		middleware.Logging(s.log),
		middleware.Metrics(m),
		middleware.CORS(cfg.CORS),
		middleware.RateLimit(cfg.RateLimit),
	)
}

// respond writes a small {"message": ...} envelope, mirroring the original
// api_response.raise_response shape.
func respond(w http.ResponseWriter, status int, message interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"message": message})
}

func nowUnix() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}
