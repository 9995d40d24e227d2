// Package chi implements the JSON lookup API over the adquery client.
package chi

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/adquery"
)

// Searcher is the consumer interface for directory lookups, satisfied by
// *adquery.Client.
type Searcher interface {
	Search(ctx context.Context, req adquery.SearchRequest) ([]adquery.Entry, error)
}

// errorHandler tries to handle a known error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes directory search and SID conversion over JSON.
type Server struct {
	dir           Searcher
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates the lookup API server.
func NewServer(dir Searcher, logger *zap.Logger) *Server {
	s := &Server{dir: dir, logger: logger}
	s.errorHandlers = []errorHandler{
		sentinelHandler(adquery.ErrInvalidSIDString, http.StatusBadRequest, "invalid_sid"),
		sentinelHandler(adquery.ErrMalformedSID, http.StatusBadRequest, "malformed_sid"),
		sentinelHandler(adquery.ErrSubAuthorityOverflow, http.StatusBadRequest, "sub_authority_overflow"),
		sentinelHandler(adquery.ErrSessionClosed, http.StatusServiceUnavailable, "session_closed"),
		sentinelHandler(adquery.ErrInvalidCredentials, http.StatusBadGateway, "bind_rejected"),
		sentinelHandler(adquery.ErrConnection, http.StatusBadGateway, "directory_unreachable"),
		sentinelHandler(adquery.ErrSearch, http.StatusBadGateway, "search_failed"),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Post("/v1/search", s.handleSearch)
	r.Get("/v1/sid/{sid}", s.handleSIDEncode)
	r.Post("/v1/sid", s.handleSIDDecode)
	r.Get("/health", s.handleHealth)
}

type searchRequest struct {
	Base      string `json:"base,omitempty"`
	Field     string `json:"field"`
	Value     string `json:"value"`
	Substring bool   `json:"substring,omitempty"`
}

type entryResponse struct {
	DN         string              `json:"dn"`
	Attributes map[string][]string `json:"attributes"`
}

type searchResponse struct {
	Entries []entryResponse `json:"entries"`
}

// handleSearch handles POST /v1/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if req.Field == "" || req.Value == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "field and value are required")
		return
	}

	filter := adquery.Equality(req.Field, req.Value)
	if req.Substring {
		filter = adquery.Substring(req.Field, adquery.Any(req.Value))
	}

	entries, err := s.dir.Search(r.Context(), adquery.SearchRequest{
		Base:   req.Base,
		Filter: filter,
	})
	if err != nil {
		s.handleError(w, err)
		return
	}

	resp := searchResponse{Entries: make([]entryResponse, len(entries))}
	for i, e := range entries {
		attrs := make(map[string][]string, len(e.Attributes))
		for name := range e.Attributes {
			attrs[name] = e.AttributeValues(name)
		}
		resp.Entries[i] = entryResponse{DN: e.DN, Attributes: attrs}
	}
	writeJSON(w, http.StatusOK, resp)
}

type sidResponse struct {
	SID   string `json:"sid"`
	Bytes string `json:"bytes"` // hex
}

// handleSIDEncode handles GET /v1/sid/{sid}: SDDL text to binary hex.
func (s *Server) handleSIDEncode(w http.ResponseWriter, r *http.Request) {
	text := chi.URLParam(r, "sid")

	raw, err := adquery.SIDFromString(text)
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sidResponse{SID: text, Bytes: hex.EncodeToString(raw)})
}

type sidDecodeRequest struct {
	Bytes string `json:"bytes"` // hex
}

// handleSIDDecode handles POST /v1/sid: binary hex to SDDL text.
func (s *Server) handleSIDDecode(w http.ResponseWriter, r *http.Request) {
	var req sidDecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	raw, err := hex.DecodeString(req.Bytes)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "bytes must be hex-encoded")
		return
	}

	text, err := adquery.SIDToString(raw)
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sidResponse{SID: text, Bytes: req.Bytes})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("unhandled error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

// sentinelHandler maps a sentinel error to an HTTP status and code.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
