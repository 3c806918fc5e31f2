package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(Config{Port: 0})
	require.NoError(t, err)
	return s
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestQuery(t *testing.T) {
	s := newTestServer(t)
	body := `{
		"query": "Find Python developers",
		"raw_text": "",
		"query_type": "search"
	}`

	rec := doRequest(s, http.MethodPost, "/v1/query", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp QueryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "search", resp.QueryType)
	require.NotNil(t, resp.Output)
	assert.Equal(t, "search", string(resp.Output.StructureType))
	_, err := uuid.Parse(resp.RequestID)
	assert.NoError(t, err)
}

func TestQuery_ClassifiesWithoutExplicitType(t *testing.T) {
	s := newTestServer(t)
	body := `{
		"query": "Verify that Anna Kovacs has an AWS certification",
		"raw_text": "",
		"chunks": [{"cv_id": "cv_001", "candidate_name": "Anna Kovacs", "content": "profile text"}]
	}`

	rec := doRequest(s, http.MethodPost, "/v1/query", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp QueryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "verification", resp.QueryType)
}

func TestQuery_BadRequests(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{not json"},
		{"missing query", `{"raw_text": "text"}`},
		{"unknown query type", `{"query": "hi", "query_type": "espionage"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodPost, "/v1/query", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestGetResult_WithoutStorage(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/v1/results/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodOptions, "/v1/query", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
