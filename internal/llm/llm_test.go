package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-query/internal/types"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain json", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"generic fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fence with language id", "```javascript\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n{\"a\": 1}\n  ", `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	got := ExtractJSONObject(`Here is the result: {"name": "Anna", "nested": {"ok": true}} trailing prose`)
	assert.Equal(t, `{"name": "Anna", "nested": {"ok": true}}`, got)
}

func TestExtractJSONObject_BracesInsideStrings(t *testing.T) {
	got := ExtractJSONObject(`{"note": "uses } and { freely", "esc": "quote \" here"}`)
	assert.Equal(t, `{"note": "uses } and { freely", "esc": "quote \" here"}`, got)
}

func TestExtractJSONObject_Incomplete(t *testing.T) {
	assert.Equal(t, "", ExtractJSONObject(`{"never": "closed"`))
	assert.Equal(t, "", ExtractJSONObject("no object here"))
}

func TestDefaultConfig_GetModel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", cfg.GetModel(TierAdvanced))
}

func TestGetModel_FallbackChain(t *testing.T) {
	cfg := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{TierLite: "tiny"}}
	assert.Equal(t, "tiny", cfg.GetModel(TierAdvanced))

	empty := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
	assert.Equal(t, "", empty.GetModel(TierAdvanced))
}

func TestWithModel_DoesNotMutateOriginal(t *testing.T) {
	cfg := DefaultConfig()
	override := cfg.WithModel(TierAdvanced, "gemini-exp")

	assert.Equal(t, "gemini-exp", override.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-pro", cfg.GetModel(TierAdvanced))
	assert.Equal(t, cfg.GetModel(TierLite), override.GetModel(TierLite))
}

func TestTierForQueryType(t *testing.T) {
	assert.Equal(t, TierAdvanced, TierForQueryType(types.QueryRiskAssessment))
	assert.Equal(t, TierAdvanced, TierForQueryType(types.QueryVerification))
	assert.Equal(t, TierStandard, TierForQueryType(types.QueryRanking))
	assert.Equal(t, TierLite, TierForQueryType(types.QuerySearch))
	assert.Equal(t, TierLite, TierForQueryType(types.QuerySingleCandidate))
}

// stubClient fakes the provider boundary for classification tests.
type stubClient struct {
	jsonResponse string
	jsonErr      error
	tierUsed     ModelTier
}

func (s *stubClient) GenerateContent(context.Context, string, ModelTier) (string, error) {
	return "", nil
}

func (s *stubClient) GenerateJSON(_ context.Context, _ string, tier ModelTier) (string, error) {
	s.tierUsed = tier
	return s.jsonResponse, s.jsonErr
}

func (s *stubClient) GetModel(ModelTier) string { return "stub" }
func (s *stubClient) Close() error              { return nil }

func TestClassifyQuery(t *testing.T) {
	stub := &stubClient{jsonResponse: `Sure, here you go: {"query_type": "ranking"} hope that helps`}

	qt, err := ClassifyQuery(context.Background(), stub, "Who are the top 3 candidates?")

	require.NoError(t, err)
	assert.Equal(t, types.QueryRanking, qt)
	assert.Equal(t, TierLite, stub.tierUsed)
}

func TestClassifyQuery_Errors(t *testing.T) {
	tests := []struct {
		name string
		stub *stubClient
	}{
		{"call failure", &stubClient{jsonErr: errors.New("boom")}},
		{"no JSON object", &stubClient{jsonResponse: "not json"}},
		{"unknown type", &stubClient{jsonResponse: `{"query_type": "espionage"}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ClassifyQuery(context.Background(), tt.stub, "question")
			assert.Error(t, err)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	query := &types.Query{Text: "Does Anna have AWS certification?", Language: "en"}
	chunks := []types.Chunk{{
		CVID:          "cv_001",
		CandidateName: "Anna Kovacs",
		SectionType:   "certifications",
		Content:       "AWS Certified Solutions Architect, 2021.",
	}}
	history := []types.ConversationTurn{
		{Role: types.RoleUser, Text: "Tell me about Anna"},
	}

	prompt := BuildPrompt(query, types.QueryVerification, chunks, history)

	assert.Contains(t, prompt, ":::thinking")
	assert.Contains(t, prompt, ":::conclusion")
	assert.Contains(t, prompt, "[Full Name](cv:<cv_id>)")
	assert.Contains(t, prompt, "cv_001")
	assert.Contains(t, prompt, "Anna Kovacs")
	assert.Contains(t, prompt, "AWS Certified Solutions Architect")
	assert.Contains(t, prompt, "Does Anna have AWS certification?")
	assert.Contains(t, prompt, "Tell me about Anna")
}
