// Package api exposes the market over REST and a WebSocket book feed. This is
// host-side plumbing: the engine itself knows nothing about HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/princesinha19/nearbook/pkg/contract"
	"github.com/princesinha19/nearbook/pkg/engine"
	"github.com/princesinha19/nearbook/pkg/settlement"
)

// Server handles REST API and WebSocket connections for one market.
type Server struct {
	market *contract.Market
	ledger *settlement.Ledger
	router *mux.Router
	hub    *Hub
	log    *zap.SugaredLogger
}

// NewServer creates an API server over a market and its ledger. The ledger
// may be nil; balance endpoints then report 404.
func NewServer(market *contract.Market, ledger *settlement.Ledger, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		market: market,
		ledger: ledger,
		router: mux.NewRouter(),
		hub:    NewHub(logger),
		log:    logger.Sugar(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(s.requestIDMiddleware)

	api.HandleFunc("/book", s.handleGetBook).Methods("GET")
	api.HandleFunc("/spread", s.handleGetSpread).Methods("GET")
	api.HandleFunc("/accounts/{account}/balances", s.handleGetBalances).Methods("GET")

	api.HandleFunc("/orders", s.handleSubmitOrder).Methods("POST")
	api.HandleFunc("/orders/cancel", s.handleCancelOrder).Methods("POST")
	api.HandleFunc("/orders/amend", s.handleAmendOrder).Methods("POST")

	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// requestIDMiddleware tags every request with an id for log correlation.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.New().String()
		w.Header().Set("X-Request-Id", reqID)
		s.log.Infow("http_request", "request_id", reqID, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// Start runs the hub and serves HTTP on addr. Blocks.
func (s *Server) Start(addr string) error {
	go s.hub.Run()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
	})

	s.log.Infow("api_server_starting", "addr", addr)
	return http.ListenAndServe(addr, c.Handler(s.router))
}

func (s *Server) bookSnapshot() BookSnapshot {
	return BookSnapshot{
		OrderAsset: s.market.OrderAsset().String(),
		PriceAsset: s.market.PriceAsset().String(),
		Asks:       s.market.GetAskOrders(),
		Bids:       s.market.GetBidOrders(),
		StateRoot:  s.market.StateRoot().Hex(),
		Timestamp:  time.Now().UnixMilli(),
	}
}

// ==============================
// REST handlers
// ==============================

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, s.bookSnapshot())
}

func (s *Server) handleGetSpread(w http.ResponseWriter, r *http.Request) {
	spread := s.market.GetCurrentSpread()
	respondJSON(w, SpreadInfo{Ask: spread[0], Bid: spread[1]})
}

func (s *Server) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	if s.ledger == nil {
		respondError(w, http.StatusNotFound, "no ledger configured", "")
		return
	}
	account := mux.Vars(r)["account"]

	balances := make(map[string]float64)
	for _, a := range []contract.Asset{contract.USD, contract.EUR, contract.BTC, contract.ETH} {
		if b := s.ledger.Balance(account, a); b != 0 {
			balances[a.String()] = b
		}
	}
	respondJSON(w, BalancesInfo{Account: account, Balances: balances})
}

func (s *Server) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body", err.Error())
		return
	}

	var out []engine.Outcome
	switch req.Type {
	case "Limit":
		res, err := s.market.NewLimitOrder(req.Price, req.Qty, req.Side)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid order", err.Error())
			return
		}
		out = res
	case "Market":
		res, err := s.market.NewMarketOrder(req.Qty, req.Side)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid order", err.Error())
			return
		}
		out = res
	default:
		respondError(w, http.StatusBadRequest, "invalid order type", req.Type)
		return
	}

	s.hub.Broadcast(s.bookSnapshot())
	respondJSON(w, viewOutcomes(out))
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	var req CancelOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body", err.Error())
		return
	}

	out, err := s.market.CancelLimitOrder(req.ID, req.Side)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid cancel", err.Error())
		return
	}

	s.hub.Broadcast(s.bookSnapshot())
	respondJSON(w, viewOutcomes(out))
}

func (s *Server) handleAmendOrder(w http.ResponseWriter, r *http.Request) {
	var req AmendOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body", err.Error())
		return
	}

	out, err := s.market.AmendOrder(req.ID, req.Side, req.Price, req.Qty)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid amend", err.Error())
		return
	}

	s.hub.Broadcast(s.bookSnapshot())
	respondJSON(w, viewOutcomes(out))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}

// ==============================
// Response helpers
// ==============================

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func respondError(w http.ResponseWriter, status int, msg, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: msg, Details: details})
}
