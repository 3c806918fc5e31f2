package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-query/internal/types"
)

func teamPool() []types.Chunk {
	return []types.Chunk{
		{CVID: "cv_001", CandidateName: "Anna Kovacs", Content: "Backend services in Go.",
			Metadata: types.ChunkMetadata{Skills: []string{"Go", "PostgreSQL"}, CurrentRole: "Backend Engineer"}},
		{CVID: "cv_002", CandidateName: "Ben Ito", Content: "Terraform pipelines on AWS.",
			Metadata: types.ChunkMetadata{Skills: []string{"Terraform", "AWS"}, CurrentRole: "DevOps Engineer", JobHoppingScore: 8}},
	}
}

func TestTeamRoles_FromSection(t *testing.T) {
	raw := "Roles:\n- Backend Engineer: Go, PostgreSQL\n- DevOps Engineer: Terraform"

	roles := TeamRoles(raw, "")

	require.Len(t, roles, 2)
	assert.Equal(t, "Backend Engineer", roles[0].Name)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, roles[0].Skills)
	assert.Equal(t, []string{"Terraform"}, roles[1].Skills)
}

func TestTeamRoles_FromQuery(t *testing.T) {
	roles := TeamRoles("no sections", "Build a team with a backend engineer and a frontend developer")

	require.Len(t, roles, 2)
	assert.Equal(t, "backend engineer", roles[0].Name)
	assert.Equal(t, "frontend developer", roles[1].Name)
	assert.NotNil(t, roles[0].Skills)
}

func TestTeamRoles_Empty(t *testing.T) {
	assert.Empty(t, TeamRoles("", ""))
}

func TestCompose_GreedyAssignment(t *testing.T) {
	roles := []TeamRole{
		{Name: "Backend Engineer", Skills: []string{"Go"}},
		{Name: "DevOps Engineer", Skills: []string{"Terraform"}},
		{Name: "Data Scientist", Skills: []string{"PyTorch"}},
	}

	comp := Compose(roles, teamPool())

	require.Len(t, comp.Assignments, 2)
	assert.Equal(t, "Anna Kovacs", comp.Assignments[0].CandidateName)
	assert.Equal(t, 100.0, comp.Assignments[0].FitScore)
	assert.Equal(t, "Ben Ito", comp.Assignments[1].CandidateName)
	assert.Equal(t, []string{"Data Scientist"}, comp.UnassignedRoles)
}

func TestCompose_CandidateAssignedOnce(t *testing.T) {
	roles := []TeamRole{
		{Name: "Backend Engineer", Skills: []string{"Go"}},
		{Name: "Database Engineer", Skills: []string{"PostgreSQL"}},
	}

	comp := Compose(roles, teamPool())

	// Anna fits both, but can only take the first role.
	require.Len(t, comp.Assignments, 1)
	assert.Equal(t, "Backend Engineer", comp.Assignments[0].RoleName)
	assert.Equal(t, []string{"Database Engineer"}, comp.UnassignedRoles)
}

func TestCompose_Empty(t *testing.T) {
	comp := Compose(nil, nil)

	assert.NotNil(t, comp.Assignments)
	assert.NotNil(t, comp.UnassignedRoles)
	assert.Empty(t, comp.Assignments)
}

func TestCoverage_SkillUnion(t *testing.T) {
	roles := []TeamRole{
		{Name: "Backend", Skills: []string{"Go", "PostgreSQL"}},
		{Name: "DevOps", Skills: []string{"Terraform", "Ansible"}},
	}
	comp := Compose(roles, teamPool())

	cov := Coverage(roles, comp, teamPool())

	assert.Equal(t, 75.0, cov.OverallCoverage)
	assert.Equal(t, []string{"Ansible"}, cov.Gaps)
}

func TestCoverage_NoExplicitSkills(t *testing.T) {
	comp := types.TeamComposition{
		Assignments:     []types.RoleAssignment{{RoleName: "backend engineer"}},
		UnassignedRoles: []string{"data scientist"},
	}

	cov := Coverage([]TeamRole{{Name: "backend engineer"}, {Name: "data scientist"}}, comp, nil)

	assert.Equal(t, 50.0, cov.OverallCoverage)
	assert.Equal(t, []string{"data scientist"}, cov.Gaps)
}

func TestTeamRisk_Levels(t *testing.T) {
	// Ben's job-hopping score plus an unfilled role pushes the level to high.
	comp := types.TeamComposition{
		Assignments:     []types.RoleAssignment{{RoleName: "DevOps", CandidateName: "Ben Ito", CVID: "cv_002"}},
		UnassignedRoles: []string{"Data Scientist"},
	}

	tr := TeamRisk(comp, types.SkillCoverage{OverallCoverage: 80}, teamPool())

	assert.Equal(t, "high", tr.OverallRiskLevel)
	assert.Len(t, tr.Risks, 2)
}

func TestTeamRisk_NoRisks(t *testing.T) {
	tr := TeamRisk(types.TeamComposition{}, types.SkillCoverage{OverallCoverage: 100}, nil)

	assert.Equal(t, "low", tr.OverallRiskLevel)
	assert.Empty(t, tr.Risks)
}
