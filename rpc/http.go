package rpc

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rewardpoints/core/events"
	"rewardpoints/native/points"
	"rewardpoints/observability/metrics"
)

const (
	jsonRPCVersion  = "2.0"
	maxRequestBytes = 1 << 20 // 1 MiB
	authTokenEnv    = "REWARDPOINTS_RPC_TOKEN"
)

const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeUnauthorized   = -32001
	codeServerError    = -32000
)

// Server exposes the points engine over JSON-RPC 2.0. Mutating methods
// require the bearer token from REWARDPOINTS_RPC_TOKEN; queries are open.
type Server struct {
	engine    *points.Engine
	log       *events.Log
	logger    *slog.Logger
	authToken string
}

// NewServer creates a server around the engine and its event log.
func NewServer(engine *points.Engine, log *events.Log, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		engine:    engine,
		log:       log,
		logger:    logger,
		authToken: strings.TrimSpace(os.Getenv(authTokenEnv)),
	}
}

// Handler returns the HTTP handler serving the RPC endpoint, health check and
// Prometheus metrics.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/", s.handle)
	return r
}

// Start serves the handler on the given address.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting JSON-RPC server", slog.String("addr", addr))
	return http.ListenAndServe(addr, s.Handler())
}

type RPCRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
	ID      interface{}       `json:"id"`
}

type RPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeError(w http.ResponseWriter, status int, id interface{}, code int, message string) {
	if status <= 0 {
		status = http.StatusBadRequest
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	resp := RPCResponse{JSONRPC: jsonRPCVersion, ID: id, Error: &RPCError{Code: code, Message: message}}
	_ = json.NewEncoder(w).Encode(resp)
}

func writeResult(w http.ResponseWriter, id interface{}, result interface{}) {
	resp := RPCResponse{JSONRPC: jsonRPCVersion, ID: id, Result: result}
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, nil, codeParseError, "failed to read request body")
		return
	}
	var req RPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, nil, codeParseError, "invalid JSON payload")
		return
	}
	if req.JSONRPC != "" && req.JSONRPC != jsonRPCVersion {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidRequest, "unsupported JSON-RPC version")
		return
	}

	handler, ok := s.methods()[req.Method]
	if !ok {
		writeError(w, http.StatusNotFound, req.ID, codeMethodNotFound, "method not found: "+req.Method)
		return
	}
	if handler.mutating {
		if err := s.authorize(r); err != nil {
			s.logger.Warn("rejected RPC call", slog.String("method", req.Method), slog.Any("error", err))
			writeError(w, http.StatusUnauthorized, req.ID, codeUnauthorized, err.Error())
			return
		}
	}

	result, rpcErr := handler.fn(req.Params)
	outcome := "ok"
	if rpcErr != nil {
		outcome = "error"
	}
	metrics.Points().ObserveOperation(req.Method, outcome)
	if rpcErr != nil {
		writeError(w, http.StatusOK, req.ID, rpcErr.Code, rpcErr.Message)
		return
	}
	writeResult(w, req.ID, result)
}

func (s *Server) authorize(r *http.Request) error {
	if s.authToken == "" {
		return errAuthNotConfigured
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return errMissingBearer
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
		return errInvalidToken
	}
	return nil
}

type method struct {
	mutating bool
	fn       func(params []json.RawMessage) (interface{}, *RPCError)
}

func (s *Server) methods() map[string]method {
	return map[string]method{
		"points_addAdmin":             {mutating: true, fn: s.addAdmin},
		"points_removeAdmin":          {mutating: true, fn: s.removeAdmin},
		"points_isAdmin":              {fn: s.isAdmin},
		"points_addMerchant":          {mutating: true, fn: s.addMerchant},
		"points_banMerchant":          {mutating: true, fn: s.banMerchant},
		"points_approveMerchant":      {mutating: true, fn: s.approveMerchant},
		"points_getMerchantById":      {fn: s.getMerchantByID},
		"points_getMerchantByAddress": {fn: s.getMerchantByAddress},
		"points_addOperator":          {mutating: true, fn: s.addOperator},
		"points_removeOperator":       {mutating: true, fn: s.removeOperator},
		"points_transferOwnership":    {mutating: true, fn: s.transferOwnership},
		"points_isMerchantOperator":   {fn: s.isMerchantOperator},
		"points_addUser":              {mutating: true, fn: s.addUser},
		"points_banUser":              {mutating: true, fn: s.banUser},
		"points_approveUser":          {mutating: true, fn: s.approveUser},
		"points_getUserById":          {fn: s.getUserByID},
		"points_getUserByAddress":     {fn: s.getUserByAddress},
		"points_rewardUser":           {mutating: true, fn: s.rewardUser},
		"points_redeemPoints":         {mutating: true, fn: s.redeemPoints},
		"points_earned":               {fn: s.earned},
		"points_redeemed":             {fn: s.redeemed},
		"points_pause":                {mutating: true, fn: s.pause},
		"points_unpause":              {mutating: true, fn: s.unpause},
		"points_events":               {fn: s.events},
	}
}
