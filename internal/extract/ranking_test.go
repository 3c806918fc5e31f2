package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-query/internal/types"
)

func TestRanking_FromTextTable(t *testing.T) {
	raw := `| Rank | Candidate | Score |
|---|---|---|
| 1 | [Ben Ito](cv:cv_002) | 91% |
| 2 | [Anna Kovacs](cv:cv_001) | 85/100 |`

	rt := Ranking(raw, matchPool())

	require.Len(t, rt.Ranked, 2)
	assert.Equal(t, types.RankedCandidate{Rank: 1, CandidateName: "Ben Ito", CVID: "cv_002", Score: 91}, rt.Ranked[0])
	assert.Equal(t, types.RankedCandidate{Rank: 2, CandidateName: "Anna Kovacs", CVID: "cv_001", Score: 85}, rt.Ranked[1])
}

func TestRanking_TableReorderedByScore(t *testing.T) {
	// The generated table lists candidates in the wrong order; scores win.
	raw := `| Candidate | Score |
|---|---|
| Anna Kovacs | 70 |
| Ben Ito | 90 |`

	rt := Ranking(raw, matchPool())

	require.Len(t, rt.Ranked, 2)
	assert.Equal(t, "Ben Ito", rt.Ranked[0].CandidateName)
	assert.Equal(t, "cv_002", rt.Ranked[0].CVID)
	assert.Equal(t, 1, rt.Ranked[0].Rank)
}

func TestRanking_ChunkRelevanceFallback(t *testing.T) {
	chunks := []types.Chunk{
		{CVID: "cv_001", CandidateName: "Anna Kovacs", RelevanceScore: 0.4},
		{CVID: "cv_002", CandidateName: "Ben Ito", RelevanceScore: 0.9},
		{CVID: "cv_001", CandidateName: "Anna Kovacs", RelevanceScore: 0.7},
	}

	rt := Ranking("no table in this text", chunks)

	require.Len(t, rt.Ranked, 2)
	assert.Equal(t, "Ben Ito", rt.Ranked[0].CandidateName)
	assert.Equal(t, 90.0, rt.Ranked[0].Score)
	// Best chunk relevance per candidate.
	assert.Equal(t, 70.0, rt.Ranked[1].Score)
}

func TestRanking_EmptyInputs(t *testing.T) {
	rt := Ranking("", nil)

	assert.NotNil(t, rt.Ranked)
	assert.Empty(t, rt.Ranked)
}

func TestTopRanked(t *testing.T) {
	raw := `| Candidate | Score |
|---|---|
| Anna Kovacs | 92 |

Justification:
Deepest Go experience in the pool.`

	rt := Ranking(raw, matchPool())
	pick := TopRanked(rt, raw, matchPool())

	assert.Equal(t, "Anna Kovacs", pick.CandidateName)
	assert.Equal(t, 92.0, pick.OverallScore)
	assert.Equal(t, "Deepest Go experience in the pool.", pick.Justification)
}

func TestTopRanked_SynthesizedJustification(t *testing.T) {
	rt := types.RankingTable{Ranked: []types.RankedCandidate{
		{Rank: 1, CandidateName: "Ben Ito", Score: 88},
	}}

	pick := TopRanked(rt, "", nil)

	assert.Equal(t, "Ben Ito ranks first with a score of 88", pick.Justification)
	assert.NotNil(t, pick.KeyStrengths)
}

func TestTopRanked_EmptyRanking(t *testing.T) {
	pick := TopRanked(types.RankingTable{}, "", nil)

	assert.Equal(t, "", pick.CandidateName)
	assert.NotNil(t, pick.KeyStrengths)
}

func TestParseScore(t *testing.T) {
	assert.Equal(t, 85.0, parseScore("85%"))
	assert.Equal(t, 85.0, parseScore("85/100"))
	assert.Equal(t, 7.5, parseScore(" 7.5 "))
	assert.Equal(t, 0.0, parseScore("n/a"))
	assert.Equal(t, 0.0, parseScore(""))
}
