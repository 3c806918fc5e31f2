package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-query/internal/types"
)

func statsPool() []types.Chunk {
	return []types.Chunk{
		{CVID: "cv_001", CandidateName: "Anna Kovacs", Metadata: types.ChunkMetadata{TotalExperienceYears: 9, Skills: []string{"Go", "Kubernetes"}}},
		{CVID: "cv_001", CandidateName: "Anna Kovacs", Metadata: types.ChunkMetadata{TotalExperienceYears: 9, Skills: []string{"Go"}}},
		{CVID: "cv_002", CandidateName: "Ben Ito", Metadata: types.ChunkMetadata{TotalExperienceYears: 3, Skills: []string{"Python", "go"}}},
		{CVID: "cv_003", CandidateName: "Clara Diaz", Metadata: types.ChunkMetadata{TotalExperienceYears: 12, Skills: []string{"Kubernetes"}}},
		{CVID: "cv_004", CandidateName: "Dan Wu"},
	}
}

func TestPool(t *testing.T) {
	p := Pool(statsPool())

	assert.Equal(t, 4, p.TotalCandidates)
	assert.Equal(t, map[string]int{"junior": 1, "mid": 1, "senior": 1, "principal": 1}, p.ExperienceDistribution)
}

func TestPool_Empty(t *testing.T) {
	p := Pool(nil)

	assert.Equal(t, 0, p.TotalCandidates)
	assert.Equal(t, 0, p.ExperienceDistribution["junior"])
}

func TestSkillDist(t *testing.T) {
	sd := SkillDist(statsPool())

	require.Len(t, sd.Skills, 3)
	// Case-insensitive: "Go" and "go" are one skill held by two candidates.
	// Count ties break alphabetically.
	assert.Equal(t, types.SkillCount{Skill: "Go", CandidateCount: 2, Percentage: 50}, sd.Skills[0])
	assert.Equal(t, types.SkillCount{Skill: "Kubernetes", CandidateCount: 2, Percentage: 50}, sd.Skills[1])
	assert.Equal(t, types.SkillCount{Skill: "Python", CandidateCount: 1, Percentage: 25}, sd.Skills[2])
}

func TestSkillDist_SameCandidateCountedOnce(t *testing.T) {
	chunks := []types.Chunk{
		{CVID: "cv_001", Metadata: types.ChunkMetadata{Skills: []string{"Go"}}},
		{CVID: "cv_001", Metadata: types.ChunkMetadata{Skills: []string{"Go"}}},
	}

	sd := SkillDist(chunks)

	require.Len(t, sd.Skills, 1)
	assert.Equal(t, 1, sd.Skills[0].CandidateCount)
	assert.Equal(t, 100.0, sd.Skills[0].Percentage)
}

func TestExperience_BucketsPartitionThePool(t *testing.T) {
	d := Experience(statsPool())

	// Dan has no reported years and lands in junior.
	assert.Equal(t, 1, d.Junior)
	assert.Equal(t, 1, d.Mid)
	assert.Equal(t, 1, d.Senior)
	assert.Equal(t, 1, d.Principal)
	assert.Equal(t, d.Junior+d.Mid+d.Senior+d.Principal, Pool(statsPool()).TotalCandidates)
	// (9 + 3 + 12 + 0) / 4 = 6.0
	assert.Equal(t, 6.0, d.AverageYears)
}

func TestExperience_BucketBoundaries(t *testing.T) {
	chunks := []types.Chunk{
		{CVID: "a", Metadata: types.ChunkMetadata{TotalExperienceYears: 3}},
		{CVID: "b", Metadata: types.ChunkMetadata{TotalExperienceYears: 6}},
		{CVID: "c", Metadata: types.ChunkMetadata{TotalExperienceYears: 10}},
		{CVID: "d", Metadata: types.ChunkMetadata{TotalExperienceYears: 2.9}},
	}

	d := Experience(chunks)

	assert.Equal(t, 1, d.Junior)
	assert.Equal(t, 1, d.Mid)
	assert.Equal(t, 1, d.Senior)
	assert.Equal(t, 1, d.Principal)
}

func TestFormatPool(t *testing.T) {
	assert.Equal(t, "The candidate pool is empty.", FormatPool(types.TalentPool{}))
	assert.Contains(t, FormatPool(Pool(statsPool())), "4 candidates")
}
