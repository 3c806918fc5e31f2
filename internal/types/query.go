// Package types provides type definitions for structured data used throughout the talent-query system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// QueryType is one of the nine semantic query categories that selects a Structure.
type QueryType string

// Query type values, in classifier priority order (most specific first).
const (
	QueryVerification    QueryType = "verification"
	QueryJobMatch        QueryType = "job_match"
	QueryTeamBuild       QueryType = "team_build"
	QueryRanking         QueryType = "ranking"
	QueryComparison      QueryType = "comparison"
	QueryRiskAssessment  QueryType = "risk_assessment"
	QuerySingleCandidate QueryType = "single_candidate"
	QuerySearch          QueryType = "search"
	QuerySummary         QueryType = "summary"
)

// KnownQueryTypes lists every query type the orchestrator can route.
var KnownQueryTypes = []QueryType{
	QueryVerification,
	QueryJobMatch,
	QueryTeamBuild,
	QueryRanking,
	QueryComparison,
	QueryRiskAssessment,
	QuerySingleCandidate,
	QuerySearch,
	QuerySummary,
}

// Valid reports whether qt is one of the nine known query types.
func (qt QueryType) Valid() bool {
	for _, known := range KnownQueryTypes {
		if qt == known {
			return true
		}
	}
	return false
}

// Query represents a single user question about the candidate pool.
// Queries are immutable and created per request.
type Query struct {
	Text        string `json:"text"`
	Language    string `json:"language,omitempty"`
	BoundEntity string `json:"bound_entity,omitempty"` // candidate name the query is about, if any
}

// TurnRole identifies who produced a conversation turn.
type TurnRole string

// Turn roles.
const (
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
)

// ConversationTurn is one prior exchange in the conversation, supplied read-only by
// the history collaborator. PriorOutput is set only on assistant turns that produced
// a structured result.
type ConversationTurn struct {
	Role        TurnRole          `json:"role"`
	Text        string            `json:"text"`
	PriorOutput *StructuredOutput `json:"prior_output,omitempty"`
}
