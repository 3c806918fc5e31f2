package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-query/internal/types"
)

func TestComparisonTable(t *testing.T) {
	raw := `| Candidate | Go | Match Score |
|---|---|---|
| [Anna Kovacs](cv:cv_001) | 9 years | 92% |
| Ben Ito | 2 years | 60 |`

	td := ComparisonTable(raw, matchPool())

	assert.Equal(t, []string{"Candidate", "Go", "Match Score"}, td.Headers)
	require.Len(t, td.Rows, 2)

	anna := td.Rows[0]
	assert.Equal(t, "Anna Kovacs", anna.CandidateName)
	assert.Equal(t, "cv_001", anna.CVID)
	assert.Equal(t, 92.0, anna.MatchScore)
	// Ref markup is stripped inside cells.
	assert.Equal(t, "Anna Kovacs", anna.Columns["Candidate"])
	assert.Equal(t, "9 years", anna.Columns["Go"])

	ben := td.Rows[1]
	assert.Equal(t, "cv_002", ben.CVID)
	assert.Equal(t, 60.0, ben.MatchScore)
}

func TestComparisonTable_NoTable(t *testing.T) {
	td := ComparisonTable("prose only", nil)

	assert.NotNil(t, td.Headers)
	assert.NotNil(t, td.Rows)
	assert.Empty(t, td.Rows)
}

func TestSearchResults_ReferencedFirstThenRemaining(t *testing.T) {
	raw := "The best hit is [Ben Ito](cv:cv_002)."

	rt := SearchResults(raw, matchPool(), "find Kubernetes experience")

	require.Len(t, rt.Results, 2)
	assert.Equal(t, "Ben Ito", rt.Results[0].CandidateName)
	assert.Equal(t, "Anna Kovacs", rt.Results[1].CandidateName)
	assert.Equal(t, []string{"kubernetes", "experience"}, rt.QueryTerms)
}

func TestSearchResults_EmptyGeneration(t *testing.T) {
	rt := SearchResults("", nil, "")

	assert.NotNil(t, rt.Results)
	assert.Empty(t, rt.Results)
	assert.NotNil(t, rt.QueryTerms)
}

func TestSearchResults_SnippetFromBestChunk(t *testing.T) {
	chunks := []types.Chunk{
		{CVID: "cv_001", CandidateName: "Anna Kovacs", Content: "weak chunk", RelevanceScore: 0.2},
		{CVID: "cv_001", CandidateName: "Anna Kovacs", Content: "strong chunk about Kubernetes", RelevanceScore: 0.9},
	}

	rt := SearchResults("", chunks, "kubernetes")

	require.Len(t, rt.Results, 1)
	assert.Equal(t, 0.9, rt.Results[0].RelevanceScore)
	assert.Equal(t, "strong chunk about Kubernetes", rt.Results[0].Snippet)
}

func TestSnippet(t *testing.T) {
	long := strings.Repeat("word ", 60)

	got := snippet(long, 160)

	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len([]rune(got)), 163)
	assert.Equal(t, "short text", snippet("short   text", 160))
}

func TestFormatTable(t *testing.T) {
	td := types.TableData{
		Headers: []string{"Candidate", "Go"},
		Rows: []types.TableRow{
			{CandidateName: "Anna", Columns: map[string]string{"Candidate": "Anna", "Go": "9y"}},
		},
	}

	got := FormatTable(td)

	assert.Contains(t, got, "| Candidate | Go |")
	assert.Contains(t, got, "| Anna | 9y |")
	assert.Equal(t, "", FormatTable(types.TableData{}))
}
