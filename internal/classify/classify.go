// Package classify maps a user query plus recent conversation turns to one of the
// nine query types.
//
// Classification is ordered rule evaluation: pattern groups are checked in a fixed
// priority order, most specific first, and the first match wins. Within a tier the
// patterns are evaluated in the order they are declared, which fixes one total
// order and keeps classification deterministic. When no rule matches the fallback
// is search for a multi-candidate chunk set, single_candidate otherwise.
//
// Pronoun and follow-up reference resolution is intentionally not performed here:
// entity binding looks only for literal candidate names in the query text or the
// subject of the immediately preceding turn.
package classify

import (
	"strings"
	"unicode"

	"github.com/jonathan/talent-query/internal/types"
)

// rule is one pattern group tied to a query type.
type rule struct {
	queryType types.QueryType
	// phrases match as substrings of the lowercased query.
	phrases []string
	// needsEntity requires a bound candidate name for the rule to fire.
	needsEntity bool
}

// rules define the total priority order. The summary tier sits between
// risk_assessment and single_candidate: pool-level language is more specific than
// a bare name mention but less specific than risk wording.
var rules = []rule{
	{queryType: types.QueryVerification, phrases: []string{
		"verify", "confirm", "is it true", "check that", "check whether", "validate that", "really ha",
	}},
	{queryType: types.QueryJobMatch, phrases: []string{
		"fit for", "match for", "good fit", "fit the role", "match the role",
		"suitable for", "job match", "match against the", "best match for",
	}},
	{queryType: types.QueryTeamBuild, phrases: []string{
		"build a team", "team of", "assemble a team", "team for", "put together a team", "staff a",
	}},
	{queryType: types.QueryRanking, phrases: []string{
		"top 1", "top 2", "top 3", "top 4", "top 5", "top 6", "top 7", "top 8", "top 9",
		"rank", "best candidates", "order by", "shortlist",
	}},
	{queryType: types.QueryComparison, phrases: []string{
		"compare", " vs ", " vs.", "versus", "difference between", "better than", "side by side", "side-by-side",
	}},
	{queryType: types.QueryRiskAssessment, phrases: []string{
		"risk", "red flag", "concern", "job hopping", "job-hopping", "stability", "how reliable",
	}, needsEntity: true},
	{queryType: types.QuerySummary, phrases: []string{
		"summary of the pool", "pool overview", "overview of", "summarize the", "all candidates",
		"talent pool", "distribution", "statistics", "how many candidates", "the pool",
	}},
	{queryType: types.QuerySingleCandidate, phrases: nil, needsEntity: true},
}

// Classify maps a query and its conversation context to a query type and bound
// candidate entity. Chunks supply the recognizable candidate names and drive the
// deterministic fallback.
func Classify(queryText string, recentTurns []types.ConversationTurn, chunks []types.Chunk) (types.QueryType, string) {
	entity := BindEntity(queryText, recentTurns, chunks)
	lower := strings.ToLower(queryText)

	for _, r := range rules {
		if r.needsEntity && entity == "" {
			continue
		}
		if len(r.phrases) == 0 {
			// Bare entity mention with no stronger signal.
			if r.needsEntity && entity != "" {
				return r.queryType, entity
			}
			continue
		}
		for _, p := range r.phrases {
			if strings.Contains(lower, p) {
				return r.queryType, entity
			}
		}
	}

	// Deterministic fallback.
	if candidateTotal(chunks) > 1 {
		return types.QuerySearch, entity
	}
	return types.QuerySingleCandidate, entity
}

// candidateTotal counts distinct candidates in the chunk set.
func candidateTotal(chunks []types.Chunk) int {
	_, order := types.CandidateChunks(chunks)
	return len(order)
}

// BindEntity finds the candidate the query is about: a chunk-set candidate name
// appearing literally in the query text, else the subject of the immediately
// preceding turn. Pronouns are not resolved.
func BindEntity(queryText string, recentTurns []types.ConversationTurn, chunks []types.Chunk) string {
	if name := nameInText(queryText, chunks); name != "" {
		return name
	}
	if len(recentTurns) == 0 {
		return ""
	}

	prev := recentTurns[len(recentTurns)-1]
	if prev.PriorOutput != nil {
		if out := prev.PriorOutput; out.SingleCandidate != nil && out.SingleCandidate.CandidateName != "" {
			return out.SingleCandidate.CandidateName
		} else if out.RiskAssessment != nil && out.RiskAssessment.CandidateName != "" {
			return out.RiskAssessment.CandidateName
		}
	}
	return nameInText(prev.Text, chunks)
}

// nameInText returns the first chunk-set candidate whose full name or first name
// appears as a word in the text.
func nameInText(text string, chunks []types.Chunk) string {
	lower := strings.ToLower(text)
	for _, c := range chunks {
		if c.CandidateName == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(c.CandidateName)) {
			return c.CandidateName
		}
		parts := strings.Fields(c.CandidateName)
		if len(parts) > 0 && containsWord(lower, strings.ToLower(parts[0])) {
			return c.CandidateName
		}
	}
	return ""
}

func containsWord(text, word string) bool {
	for _, f := range strings.Fields(text) {
		f = strings.Trim(f, ".,;:!?\"'")
		// Possessive form ("anna's") still names the candidate.
		f = strings.TrimSuffix(f, "'s")
		if f == word {
			return true
		}
	}
	return false
}

// NewQuery builds the immutable per-request query value, detecting a coarse
// language tag from the script of the text.
func NewQuery(text string, recentTurns []types.ConversationTurn, chunks []types.Chunk) types.Query {
	return types.Query{
		Text:        text,
		Language:    DetectLanguage(text),
		BoundEntity: BindEntity(text, recentTurns, chunks),
	}
}

// DetectLanguage returns a coarse language tag based on dominant script.
// Everything Latin-script is reported as "en".
func DetectLanguage(text string) string {
	var cyrillic, han, latin int
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		case unicode.Is(unicode.Han, r):
			han++
		case unicode.IsLetter(r):
			latin++
		}
	}
	switch {
	case cyrillic > latin && cyrillic > han:
		return "ru"
	case han > latin && han > cyrillic:
		return "zh"
	default:
		return "en"
	}
}
