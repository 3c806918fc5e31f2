package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/talent-query/internal/logger"
	"github.com/jonathan/talent-query/internal/orchestrator"
	"github.com/jonathan/talent-query/internal/types"
)

// QueryRequest represents the request body for /v1/query
type QueryRequest struct {
	Query     string                   `json:"query"`
	RawText   string                   `json:"raw_text"`
	Chunks    []types.Chunk            `json:"chunks,omitempty"`
	History   []types.ConversationTurn `json:"history,omitempty"`
	QueryType string                   `json:"query_type,omitempty"`
}

// QueryResponse represents the response for /v1/query
type QueryResponse struct {
	RequestID     string                  `json:"request_id"`
	QueryType     string                  `json:"query_type"`
	Output        *types.StructuredOutput `json:"output"`
	FormattedText string                  `json:"formatted_text"`
}

// handleQuery runs one query through the extraction core
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Query == "" {
		s.errorResponse(w, http.StatusBadRequest, "query is required")
		return
	}

	qt := types.QueryType(req.QueryType)
	if req.QueryType != "" && !qt.Valid() {
		s.errorResponse(w, http.StatusBadRequest, "unknown query_type: "+req.QueryType)
		return
	}

	result := orchestrator.Process(orchestrator.Request{
		Raw:       req.RawText,
		Chunks:    req.Chunks,
		QueryText: req.Query,
		QueryType: qt,
		History:   req.History,
	})

	if s.db != nil {
		if id, err := uuid.Parse(result.RequestID); err == nil {
			if err := s.db.SaveResult(r.Context(), id, result.QueryType, result.Output); err != nil {
				logger.Warn().Err(err).Str("request_id", result.RequestID).Msg("failed to persist result")
			}
		}
	}

	s.jsonResponse(w, http.StatusOK, QueryResponse{
		RequestID:     result.RequestID,
		QueryType:     string(result.QueryType),
		Output:        result.Output,
		FormattedText: result.FormattedText,
	})
}

// handleGetResult returns a previously stored result
func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusNotFound, "result storage is not configured")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	out, err := s.db.GetResult(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if out == nil {
		s.errorResponse(w, http.StatusNotFound, "result not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, out)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Msg("error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
