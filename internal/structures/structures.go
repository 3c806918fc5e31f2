package structures

import (
	"strings"

	"github.com/jonathan/talent-query/internal/blocks"
	"github.com/jonathan/talent-query/internal/extract"
	"github.com/jonathan/talent-query/internal/types"
)

// ForQueryType returns the Structure for a query type. Unrecognized types route to
// the generic passthrough, never an error.
func ForQueryType(qt types.QueryType) Structure {
	if s, ok := registry[qt]; ok {
		return s
	}
	return Passthrough
}

var registry map[types.QueryType]Structure

// Passthrough is the generic fallback structure: reasoning and conclusion blocks
// only, the full remaining text as body.
var Passthrough Structure

func init() {
	registry = map[types.QueryType]Structure{
		types.QuerySingleCandidate: singleCandidate(),
		types.QueryRiskAssessment:  riskAssessment(),
		types.QueryComparison:      comparison(),
		types.QuerySearch:          search(),
		types.QueryRanking:         ranking(),
		types.QueryJobMatch:        jobMatch(),
		types.QueryTeamBuild:       teamBuild(),
		types.QueryVerification:    verification(),
		types.QuerySummary:         summary(),
	}
	Passthrough = passthrough()
}

// moduleBlock consumes a delimited block of the given kind from the raw text.
func moduleBlock(kind string) Module {
	return Module{
		Name: "block:" + kind,
		Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
			body, remainder := blocks.Extract(in.Raw, kind)
			in.Raw = remainder
			if kind == blocks.KindConclusion {
				out.Conclusion = body
			} else {
				out.Thinking = body
			}
			return body, body != ""
		},
	}
}

func moduleAnalysis() Module {
	return Module{
		Name: "analysis",
		Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
			out.Analysis = extract.Analysis(in.Raw, in.Chunks)
			return out.Analysis, out.Analysis != ""
		},
	}
}

func singleCandidate() Structure {
	return Structure{
		Type: types.StructureSingleCandidate,
		Init: func(in *Input, out *types.StructuredOutput) {
			out.SingleCandidate = &types.SingleCandidateData{
				CandidateName: in.Query.BoundEntity,
				Highlights:    []string{},
				Career:        []string{},
				Skills:        []string{},
				Credentials:   []string{},
				RiskTable:     types.RiskTable{Factors: []types.RiskFactor{}},
			}
			for _, c := range in.Chunks {
				if strings.EqualFold(c.CandidateName, in.Query.BoundEntity) {
					out.SingleCandidate.CVID = c.CVID
					break
				}
			}
			// A single-candidate chunk set identifies the subject even without a
			// bound entity.
			if out.SingleCandidate.CandidateName == "" {
				if _, order := types.CandidateChunks(in.Chunks); len(order) == 1 {
					out.SingleCandidate.CVID = order[0]
					out.SingleCandidate.CandidateName = types.CandidateName(in.Chunks, order[0])
				}
			}
		},
		Modules: []Module{
			moduleBlock(blocks.KindThinking),
			{Name: "highlights", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				out.SingleCandidate.Highlights = extract.Highlights(in.Raw, in.Chunks)
				return extract.FormatList("Highlights", out.SingleCandidate.Highlights), len(out.SingleCandidate.Highlights) > 0
			}},
			{Name: "career", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				out.SingleCandidate.Career = extract.Career(in.Raw, in.Chunks)
				return extract.FormatList("Career", out.SingleCandidate.Career), len(out.SingleCandidate.Career) > 0
			}},
			{Name: "skills", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				out.SingleCandidate.Skills = extract.Skills(in.Raw, in.Chunks)
				return extract.FormatList("Skills", out.SingleCandidate.Skills), len(out.SingleCandidate.Skills) > 0
			}},
			{Name: "credentials", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				out.SingleCandidate.Credentials = extract.Credentials(in.Raw, in.Chunks)
				return extract.FormatList("Credentials", out.SingleCandidate.Credentials), len(out.SingleCandidate.Credentials) > 0
			}},
			{Name: "risk_table", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				out.SingleCandidate.RiskTable = extract.Risk(in.Raw, in.Chunks)
				return extract.FormatRisk(out.SingleCandidate.RiskTable), true
			}},
			moduleBlock(blocks.KindConclusion),
		},
		Finalize: func(in *Input, out *types.StructuredOutput) {
			out.SingleCandidate.Summary = extract.Summary(in.Raw, in.Chunks)
			out.SingleCandidate.Conclusion = out.Conclusion
		},
	}
}

func riskAssessment() Structure {
	return Structure{
		Type: types.StructureRiskAssessment,
		Init: func(in *Input, out *types.StructuredOutput) {
			out.RiskAssessment = &types.RiskAssessmentData{
				CandidateName: in.Query.BoundEntity,
				RiskTable:     types.RiskTable{Factors: []types.RiskFactor{}},
			}
			for _, c := range in.Chunks {
				if strings.EqualFold(c.CandidateName, in.Query.BoundEntity) {
					out.RiskAssessment.CVID = c.CVID
					break
				}
			}
		},
		Modules: []Module{
			moduleBlock(blocks.KindThinking),
			{Name: "risk_analysis", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				out.RiskAssessment.RiskAnalysis = extract.Analysis(in.Raw, in.Chunks)
				return out.RiskAssessment.RiskAnalysis, out.RiskAssessment.RiskAnalysis != ""
			}},
			{Name: "risk_table", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				out.RiskAssessment.RiskTable = extract.Risk(in.Raw, in.Chunks)
				return extract.FormatRisk(out.RiskAssessment.RiskTable), true
			}},
			moduleBlock(blocks.KindConclusion),
		},
		Finalize: func(_ *Input, out *types.StructuredOutput) {
			out.RiskAssessment.Assessment = out.Conclusion
		},
	}
}

func comparison() Structure {
	return Structure{
		Type: types.StructureComparison,
		Init: func(_ *Input, out *types.StructuredOutput) {
			out.TableData = &types.TableData{Headers: []string{}, Rows: []types.TableRow{}}
		},
		Modules: []Module{
			moduleBlock(blocks.KindThinking),
			moduleAnalysis(),
			{Name: "table", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				*out.TableData = extract.ComparisonTable(in.Raw, in.Chunks)
				return extract.FormatTable(*out.TableData), len(out.TableData.Rows) > 0
			}},
			moduleBlock(blocks.KindConclusion),
		},
		Finalize: func(in *Input, out *types.StructuredOutput) {
			out.DirectAnswer = extract.DirectAnswer(in.Raw, in.Chunks)
		},
	}
}

func search() Structure {
	return Structure{
		Type: types.StructureSearch,
		Init: func(in *Input, out *types.StructuredOutput) {
			out.ResultsTable = &types.ResultsTable{Results: []types.SearchResult{}, QueryTerms: extract.QueryTerms(in.Query.Text)}
		},
		Modules: []Module{
			moduleBlock(blocks.KindThinking),
			{Name: "direct_answer", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				out.DirectAnswer = extract.DirectAnswer(in.Raw, in.Chunks)
				return out.DirectAnswer, out.DirectAnswer != ""
			}},
			{Name: "results_table", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				*out.ResultsTable = extract.SearchResults(in.Raw, in.Chunks, in.Query.Text)
				return extract.FormatSearchResults(*out.ResultsTable), len(out.ResultsTable.Results) > 0
			}},
			moduleAnalysis(),
			moduleBlock(blocks.KindConclusion),
		},
		Finalize: func(_ *Input, out *types.StructuredOutput) {
			out.TotalResults = len(out.ResultsTable.Results)
		},
	}
}

func ranking() Structure {
	return Structure{
		Type: types.StructureRanking,
		Init: func(_ *Input, out *types.StructuredOutput) {
			out.RankingTable = &types.RankingTable{Ranked: []types.RankedCandidate{}}
			out.TopPick = &types.TopPick{KeyStrengths: []string{}}
		},
		Modules: []Module{
			moduleBlock(blocks.KindThinking),
			{Name: "ranking_criteria", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				criteria := extract.RankingCriteria(in.Raw, in.Chunks)
				if out.Analysis == "" {
					out.Analysis = criteria
				}
				return criteria, criteria != ""
			}},
			{Name: "ranking_table", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				*out.RankingTable = extract.Ranking(in.Raw, in.Chunks)
				return extract.FormatRanking(*out.RankingTable), len(out.RankingTable.Ranked) > 0
			}},
			{Name: "top_pick", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				*out.TopPick = extract.TopRanked(*out.RankingTable, in.Raw, in.Chunks)
				return extract.FormatTopPick(*out.TopPick), out.TopPick.CandidateName != ""
			}},
			moduleAnalysis(),
			moduleBlock(blocks.KindConclusion),
		},
	}
}

func jobMatch() Structure {
	return Structure{
		Type: types.StructureJobMatch,
		Init: func(_ *Input, out *types.StructuredOutput) {
			out.BestMatch = &types.TopPick{KeyStrengths: []string{}}
			out.MatchScores = &types.MatchScores{Matches: []types.CandidateMatch{}}
		},
		Modules: []Module{
			moduleBlock(blocks.KindThinking),
			{Name: "requirements", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				in.Requirements = extract.Requirements(in.Raw, in.Query.Text)
				out.MatchScores.TotalRequirements = len(in.Requirements)
				return extract.FormatRequirements(in.Requirements), len(in.Requirements) > 0
			}},
			{Name: "match_score", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				*out.MatchScores = extract.MatchScores(in.Requirements, in.Chunks)
				*out.BestMatch = extract.BestMatch(*out.MatchScores)
				return extract.FormatMatchScores(*out.MatchScores), len(out.MatchScores.Matches) > 0
			}},
			{Name: "gap_analysis", Run: func(_ *Input, out *types.StructuredOutput) (string, bool) {
				out.GapAnalysis = extract.GapAnalysis(*out.MatchScores)
				return out.GapAnalysis, out.GapAnalysis != ""
			}},
			moduleAnalysis(),
			moduleBlock(blocks.KindConclusion),
		},
	}
}

func teamBuild() Structure {
	return Structure{
		Type: types.StructureTeamBuild,
		Init: func(_ *Input, out *types.StructuredOutput) {
			out.TeamComposition = &types.TeamComposition{Assignments: []types.RoleAssignment{}, UnassignedRoles: []string{}}
			out.SkillCoverage = &types.SkillCoverage{Gaps: []string{}}
			out.TeamRisks = &types.TeamRisks{Risks: []string{}, OverallRiskLevel: "low"}
		},
		Modules: []Module{
			moduleBlock(blocks.KindThinking),
			{Name: "team_requirements", Run: func(in *Input, _ *types.StructuredOutput) (string, bool) {
				in.Roles = extract.TeamRoles(in.Raw, in.Query.Text)
				return extract.FormatTeamRoles(in.Roles), len(in.Roles) > 0
			}},
			{Name: "team_composition", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				*out.TeamComposition = extract.Compose(in.Roles, in.Chunks)
				return extract.FormatComposition(*out.TeamComposition), len(out.TeamComposition.Assignments) > 0
			}},
			{Name: "skill_coverage", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				*out.SkillCoverage = extract.Coverage(in.Roles, *out.TeamComposition, in.Chunks)
				return extract.FormatCoverage(*out.SkillCoverage), true
			}},
			{Name: "team_risk", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				*out.TeamRisks = extract.TeamRisk(*out.TeamComposition, *out.SkillCoverage, in.Chunks)
				return extract.FormatTeamRisks(*out.TeamRisks), true
			}},
			moduleAnalysis(),
			moduleBlock(blocks.KindConclusion),
		},
	}
}

func verification() Structure {
	return Structure{
		Type: types.StructureVerification,
		Init: func(_ *Input, out *types.StructuredOutput) {
			out.Claim = &types.Claim{}
			out.Evidence = &types.Evidence{Evidence: []types.EvidenceItem{}}
			out.Verdict = &types.Verdict{}
		},
		Modules: []Module{
			moduleBlock(blocks.KindThinking),
			{Name: "claim", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				*out.Claim = extract.ParseClaim(in.Query.Text, in.Chunks)
				return extract.FormatClaim(*out.Claim), out.Claim.ClaimValue != ""
			}},
			{Name: "evidence", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				ev, contradicting := extract.FindEvidence(*out.Claim, in.Chunks)
				*out.Evidence = ev
				in.Contradicting = contradicting
				return extract.FormatEvidence(ev), ev.TotalFound > 0
			}},
			{Name: "verdict", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				*out.Verdict = extract.DecideVerdict(*out.Claim, *out.Evidence, in.Contradicting)
				return extract.FormatVerdict(*out.Verdict), true
			}},
			moduleBlock(blocks.KindConclusion),
		},
	}
}

func summary() Structure {
	return Structure{
		Type: types.StructureSummary,
		Init: func(_ *Input, out *types.StructuredOutput) {
			out.TalentPool = &types.TalentPool{ExperienceDistribution: map[string]int{}}
			out.SkillDistribution = &types.SkillDistribution{Skills: []types.SkillCount{}}
			out.ExperienceDistribution = &types.ExperienceDistribution{}
		},
		Modules: []Module{
			moduleBlock(blocks.KindThinking),
			{Name: "talent_pool", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				*out.TalentPool = extract.Pool(in.Chunks)
				return extract.FormatPool(*out.TalentPool), out.TalentPool.TotalCandidates > 0
			}},
			{Name: "skill_distribution", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				*out.SkillDistribution = extract.SkillDist(in.Chunks)
				return extract.FormatSkillDist(*out.SkillDistribution), len(out.SkillDistribution.Skills) > 0
			}},
			{Name: "experience_distribution", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				*out.ExperienceDistribution = extract.Experience(in.Chunks)
				return extract.FormatExperience(*out.ExperienceDistribution), true
			}},
			moduleBlock(blocks.KindConclusion),
		},
	}
}

func passthrough() Structure {
	return Structure{
		Type: types.StructureUnstructured,
		Modules: []Module{
			moduleBlock(blocks.KindThinking),
			moduleBlock(blocks.KindConclusion),
			{Name: "body", Run: func(in *Input, out *types.StructuredOutput) (string, bool) {
				out.RawBody = strings.TrimSpace(in.Raw)
				return out.RawBody, out.RawBody != ""
			}},
		},
	}
}
