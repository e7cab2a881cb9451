// Package api - Thin, deterministic API layer.
// The API is ONLY responsible for: input ingestion, engine orchestration,
// output serialization. The API NEVER performs analysis logic.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stacksafe/adapters/storage"
	"stacksafe/core/engine"
	"stacksafe/internal/errors"
	"stacksafe/internal/logging"
)

// Server is the API server
type Server struct {
	analyzer *engine.Analyzer
	store    *storage.HistoryStore
	mux      *http.ServeMux
	version  string
}

// NewServer creates a new API server (without history)
func NewServer(version string, analyzer *engine.Analyzer) *Server {
	return NewServerWithStore(version, analyzer, nil)
}

// NewServerWithStore creates a new API server with a history store
func NewServerWithStore(version string, analyzer *engine.Analyzer, store *storage.HistoryStore) *Server {
	s := &Server{
		analyzer: analyzer,
		store:    store,
		mux:      http.NewServeMux(),
		version:  version,
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("POST /analyze", s.handleAnalyze)
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Supporting endpoints
	s.mux.HandleFunc("GET /version", s.handleVersion)
	s.mux.HandleFunc("GET /kb", s.handleKB)
	s.mux.HandleFunc("GET /history", s.handleHistory)
}

// handleAnalyze handles POST /analyze
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	requestID := uuid.NewString()

	var req AnalyzeRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	items, err := toEngineItems(req.Items)
	if err != nil {
		s.writeError(w, string(errors.TypeInvalidStackItem), err.Error(), http.StatusBadRequest)
		return
	}

	// Execute engine (NO ANALYSIS LOGIC HERE)
	report, err := s.analyzer.Analyze(ctx, items)
	if err != nil {
		if errors.IsType(err, errors.TypeInvalidStackItem) {
			s.writeError(w, string(errors.TypeInvalidStackItem), err.Error(), http.StatusBadRequest)
			return
		}
		s.writeError(w, "ENGINE_ERROR", err.Error(), http.StatusInternalServerError)
		return
	}

	stackHash := engine.StackHash(items)
	if s.store != nil {
		if _, err := s.store.Save(report, stackHash); err != nil {
			logging.Warn("failed to record analysis history",
				zap.String("request_id", requestID), zap.Error(err))
		}
	}

	s.writeJSON(w, &AnalyzeResponse{
		Report: report,
		Metadata: ResponseMetadata{
			RequestID:     requestID,
			InputHash:     stackHash,
			KBVersion:     report.KBVersion,
			EngineVersion: s.version,
			DurationMs:    time.Since(start).Milliseconds(),
		},
	}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "stacksafe",
		"kb_version":  s.analyzer.KnowledgeBase().Version(),
		"api_version": "v1",
	}, http.StatusOK)
}

// handleKB handles GET /kb
func (s *Server) handleKB(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.analyzer.KnowledgeBase().Stats(), http.StatusOK)
}

// handleHistory handles GET /history
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSON(w, map[string]interface{}{
			"error":   "history not configured",
			"entries": []interface{}{},
		}, http.StatusServiceUnavailable)
		return
	}

	entries, err := s.store.List(50)
	if err != nil {
		s.writeError(w, string(errors.TypeStorage), err.Error(), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []*storage.Entry{}
	}

	s.writeJSON(w, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, &ErrorResponse{Error: ErrorBody{Code: code, Message: message}}, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
