package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-query/internal/types"
)

func matchPool() []types.Chunk {
	return []types.Chunk{
		{
			CVID:          "cv_001",
			CandidateName: "Anna Kovacs",
			Content:       "Built Go services. Shipped Go tooling for the platform team.",
			Metadata:      types.ChunkMetadata{TotalExperienceYears: 9, Skills: []string{"Go", "Kubernetes"}},
		},
		{
			CVID:          "cv_002",
			CandidateName: "Ben Ito",
			Content:       "Mentioned Kubernetes once during a migration.",
			Metadata:      types.ChunkMetadata{TotalExperienceYears: 3},
		},
	}
}

func TestMatchScores_WeightsAndOrdering(t *testing.T) {
	reqs := []Requirement{
		{Name: "Go", Kind: ReqKindSkill, Priority: ReqRequired},
		{Name: "Kubernetes", Kind: ReqKindSkill, Priority: ReqPreferred},
	}

	ms := MatchScores(reqs, matchPool())

	require.Len(t, ms.Matches, 2)
	assert.Equal(t, 2, ms.TotalRequirements)

	// Anna meets both via metadata: full 1.6 of 1.6.
	anna := ms.Matches[0]
	assert.Equal(t, "Anna Kovacs", anna.CandidateName)
	assert.Equal(t, 100, anna.OverallMatch)
	assert.ElementsMatch(t, []string{"Go", "Kubernetes"}, anna.MetRequirements)
	assert.Equal(t, []string{"Go"}, anna.Strengths)

	// Ben: Go missing, Kubernetes mentioned once in content = partial half
	// weight. 0.3 of 1.6 rounds to 19.
	ben := ms.Matches[1]
	assert.Equal(t, "Ben Ito", ben.CandidateName)
	assert.Equal(t, 19, ben.OverallMatch)
	assert.Equal(t, []string{"Go"}, ben.MissingRequirements)
	assert.Equal(t, []string{"Kubernetes"}, ben.PartialRequirements)
}

func TestMatchScores_NoEvidenceAlwaysMissing(t *testing.T) {
	reqs := []Requirement{{Name: "Erlang", Kind: ReqKindSkill, Priority: ReqRequired}}

	ms := MatchScores(reqs, matchPool())

	for _, m := range ms.Matches {
		assert.Equal(t, []string{"Erlang"}, m.MissingRequirements)
		assert.Empty(t, m.MetRequirements)
		assert.Empty(t, m.PartialRequirements)
		assert.Equal(t, 0, m.OverallMatch)
	}
}

func TestMatchScores_ExperienceRequirement(t *testing.T) {
	reqs := []Requirement{{Name: "5+ years experience", Kind: ReqKindExperience, Priority: ReqRequired, Years: 5}}

	ms := MatchScores(reqs, matchPool())

	anna := ms.Matches[0]
	assert.Equal(t, "Anna Kovacs", anna.CandidateName)
	assert.Equal(t, 100, anna.OverallMatch)

	// Ben has 3 of 5 years: at least half, so partial.
	ben := ms.Matches[1]
	assert.Equal(t, []string{"5+ years experience"}, ben.PartialRequirements)
	assert.Equal(t, 50, ben.OverallMatch)
}

func TestMatchScores_EmptyInputs(t *testing.T) {
	ms := MatchScores(nil, nil)

	assert.Empty(t, ms.Matches)
	assert.Equal(t, 0, ms.TotalRequirements)

	ms = MatchScores(nil, matchPool())
	require.Len(t, ms.Matches, 2)
	for _, m := range ms.Matches {
		assert.Equal(t, 0, m.OverallMatch)
		assert.NotNil(t, m.MetRequirements)
		assert.NotNil(t, m.MissingRequirements)
	}
}

func TestBestMatch(t *testing.T) {
	reqs := []Requirement{{Name: "Go", Kind: ReqKindSkill, Priority: ReqRequired}}
	ms := MatchScores(reqs, matchPool())

	pick := BestMatch(ms)

	assert.Equal(t, "Anna Kovacs", pick.CandidateName)
	assert.Equal(t, 100.0, pick.OverallScore)
	assert.Contains(t, pick.Justification, "meets 1 of 1 requirements")

	empty := BestMatch(types.MatchScores{})
	assert.Equal(t, "", empty.CandidateName)
	assert.NotNil(t, empty.KeyStrengths)
}

func TestGapAnalysis(t *testing.T) {
	ms := types.MatchScores{Matches: []types.CandidateMatch{
		{CandidateName: "Anna Kovacs", MissingRequirements: []string{}},
		{CandidateName: "Ben Ito", MissingRequirements: []string{"Go", "Terraform"}},
	}}

	got := GapAnalysis(ms)

	assert.Contains(t, got, "Anna Kovacs meets every extracted requirement.")
	assert.Contains(t, got, "Ben Ito is missing: Go, Terraform.")
	assert.Equal(t, "", GapAnalysis(types.MatchScores{}))
}
