package types

// StructureType tags the variant of a StructuredOutput. It covers the nine query
// types plus the generic passthrough used when a query type is not recognized.
type StructureType string

// Structure type values.
const (
	StructureSingleCandidate StructureType = "single_candidate"
	StructureRiskAssessment  StructureType = "risk_assessment"
	StructureComparison      StructureType = "comparison"
	StructureSearch          StructureType = "search"
	StructureRanking         StructureType = "ranking"
	StructureJobMatch        StructureType = "job_match"
	StructureTeamBuild       StructureType = "team_build"
	StructureVerification    StructureType = "verification"
	StructureSummary         StructureType = "summary"
	StructureUnstructured    StructureType = "unstructured"
)

// RiskFactor is a single named risk with severity and a one-line justification.
type RiskFactor struct {
	Name          string `json:"name"`
	Severity      string `json:"severity" validate:"omitempty,oneof=low medium high"`
	Justification string `json:"justification"`
}

// RiskTable holds the fixed set of risk factors produced for a candidate.
type RiskTable struct {
	Factors []RiskFactor `json:"factors"`
}

// SingleCandidateData is the payload of the single_candidate variant.
type SingleCandidateData struct {
	CandidateName string    `json:"candidate_name"`
	CVID          string    `json:"cv_id"`
	Summary       string    `json:"summary"`
	Highlights    []string  `json:"highlights"`
	Career        []string  `json:"career"`
	Skills        []string  `json:"skills"`
	Credentials   []string  `json:"credentials"`
	RiskTable     RiskTable `json:"risk_table"`
	Conclusion    string    `json:"conclusion"`
}

// RiskAssessmentData is the payload of the risk_assessment variant.
type RiskAssessmentData struct {
	CandidateName string    `json:"candidate_name"`
	CVID          string    `json:"cv_id"`
	RiskAnalysis  string    `json:"risk_analysis"`
	RiskTable     RiskTable `json:"risk_table"`
	Assessment    string    `json:"assessment"`
}

// TableRow is one row of a comparison table bound to a candidate.
type TableRow struct {
	CandidateName string            `json:"candidate_name"`
	CVID          string            `json:"cv_id,omitempty"`
	Columns       map[string]string `json:"columns"`
	MatchScore    float64           `json:"match_score,omitempty"`
}

// TableData is the payload of the comparison variant's table.
type TableData struct {
	Title   string     `json:"title,omitempty"`
	Headers []string   `json:"headers"`
	Rows    []TableRow `json:"rows"`
}

// SearchResult is one hit in a search results table.
type SearchResult struct {
	CandidateName  string  `json:"candidate_name"`
	CVID           string  `json:"cv_id,omitempty"`
	Snippet        string  `json:"snippet,omitempty"`
	RelevanceScore float64 `json:"relevance_score,omitempty"`
}

// ResultsTable holds search hits plus the query terms that produced them.
type ResultsTable struct {
	Results    []SearchResult `json:"results"`
	QueryTerms []string       `json:"query_terms"`
}

// RankedCandidate is one entry in a ranking table.
type RankedCandidate struct {
	Rank          int     `json:"rank"`
	CandidateName string  `json:"candidate_name"`
	CVID          string  `json:"cv_id,omitempty"`
	Score         float64 `json:"score"`
}

// RankingTable holds candidates ordered by descending score.
type RankingTable struct {
	Ranked []RankedCandidate `json:"ranked"`
}

// TopPick surfaces the #1 candidate with its justification. The same shape serves
// the job_match variant's best_match field.
type TopPick struct {
	CandidateName string   `json:"candidate_name"`
	CVID          string   `json:"cv_id,omitempty"`
	OverallScore  float64  `json:"overall_score"`
	Justification string   `json:"justification"`
	KeyStrengths  []string `json:"key_strengths"`
}

// CandidateMatch records how one candidate scores against the extracted requirements.
type CandidateMatch struct {
	CandidateName       string   `json:"candidate_name"`
	CVID                string   `json:"cv_id,omitempty"`
	OverallMatch        int      `json:"overall_match" validate:"gte=0,lte=100"`
	MetRequirements     []string `json:"met_requirements"`
	MissingRequirements []string `json:"missing_requirements"`
	PartialRequirements []string `json:"partial_requirements"`
	Strengths           []string `json:"strengths"`
}

// MatchScores is the payload of the job_match variant's scoring section.
type MatchScores struct {
	Matches           []CandidateMatch `json:"matches"`
	TotalRequirements int              `json:"total_requirements"`
}

// RoleAssignment binds a team role to the candidate chosen for it.
type RoleAssignment struct {
	RoleName      string  `json:"role_name"`
	CandidateName string  `json:"candidate_name"`
	CVID          string  `json:"cv_id,omitempty"`
	FitScore      float64 `json:"fit_score"`
}

// TeamComposition is the payload of the team_build variant's assignment section.
type TeamComposition struct {
	Assignments     []RoleAssignment `json:"assignments"`
	UnassignedRoles []string         `json:"unassigned_roles"`
}

// SkillCoverage summarizes how well the assembled team covers the requested skills.
type SkillCoverage struct {
	OverallCoverage float64  `json:"overall_coverage"`
	Gaps            []string `json:"gaps"`
}

// TeamRisks lists team-level risks and an overall level.
type TeamRisks struct {
	Risks            []string `json:"risks"`
	OverallRiskLevel string   `json:"overall_risk_level" validate:"omitempty,oneof=low medium high"`
}

// Claim is the parsed subject/type/value of a verification query.
type Claim struct {
	Subject    string `json:"subject"`
	ClaimType  string `json:"claim_type"`
	ClaimValue string `json:"claim_value"`
}

// EvidenceItem is one supporting or contradicting excerpt found in the chunk set.
type EvidenceItem struct {
	Source    string  `json:"source"`
	Excerpt   string  `json:"excerpt"`
	Relevance float64 `json:"relevance"`
}

// Evidence holds all evidence found for a claim.
type Evidence struct {
	Evidence   []EvidenceItem `json:"evidence"`
	TotalFound int            `json:"total_found"`
}

// Verdict statuses form a closed set.
const (
	VerdictConfirmed    = "CONFIRMED"
	VerdictPartial      = "PARTIAL"
	VerdictNotFound     = "NOT_FOUND"
	VerdictContradicted = "CONTRADICTED"
)

// Verdict is the outcome of a verification claim.
type Verdict struct {
	Status      string  `json:"status" validate:"omitempty,oneof=CONFIRMED PARTIAL NOT_FOUND CONTRADICTED"`
	Confidence  float64 `json:"confidence" validate:"gte=0,lte=1"`
	Explanation string  `json:"explanation"`
}

// TalentPool aggregates headline statistics over the candidate pool.
type TalentPool struct {
	TotalCandidates        int            `json:"total_candidates"`
	ExperienceDistribution map[string]int `json:"experience_distribution"`
}

// SkillCount is one row of the pool-wide skill distribution.
type SkillCount struct {
	Skill          string  `json:"skill"`
	CandidateCount int     `json:"candidate_count"`
	Percentage     float64 `json:"percentage"`
}

// SkillDistribution holds pool-wide skill statistics.
type SkillDistribution struct {
	Skills []SkillCount `json:"skills"`
}

// ExperienceDistribution buckets the pool by experience level. Buckets partition the
// candidate set: junior < 3y, mid 3-6y, senior 6-10y, principal >= 10y.
type ExperienceDistribution struct {
	AverageYears float64 `json:"average_years"`
	Junior       int     `json:"junior"`
	Mid          int     `json:"mid"`
	Senior       int     `json:"senior"`
	Principal    int     `json:"principal"`
}

// StructuredOutput is the tagged-union result contract consumed by the rendering
// layer. StructureType is always set; exactly the fields belonging to that variant
// are populated, everything else stays at its zero value. Failed extraction of a
// sub-field yields an explicit empty default, never an absent section the renderer
// must special-case.
type StructuredOutput struct {
	StructureType StructureType `json:"structure_type" validate:"required"`

	// Common free-text sections shared by most variants.
	Thinking     string `json:"thinking,omitempty"`
	DirectAnswer string `json:"direct_answer,omitempty"`
	Analysis     string `json:"analysis,omitempty"`
	Conclusion   string `json:"conclusion,omitempty"`

	// RawBody carries the full remaining text for the unstructured passthrough.
	RawBody string `json:"raw_body,omitempty"`

	SingleCandidate *SingleCandidateData `json:"single_candidate_data,omitempty"`
	RiskAssessment  *RiskAssessmentData  `json:"risk_assessment_data,omitempty"`

	TableData *TableData `json:"table_data,omitempty"`

	ResultsTable *ResultsTable `json:"results_table,omitempty"`
	TotalResults int           `json:"total_results,omitempty"`

	RankingTable *RankingTable `json:"ranking_table,omitempty"`
	TopPick      *TopPick      `json:"top_pick,omitempty"`

	BestMatch   *TopPick     `json:"best_match,omitempty"`
	MatchScores *MatchScores `json:"match_scores,omitempty"`
	GapAnalysis string       `json:"gap_analysis,omitempty"`

	TeamComposition *TeamComposition `json:"team_composition,omitempty"`
	SkillCoverage   *SkillCoverage   `json:"skill_coverage,omitempty"`
	TeamRisks       *TeamRisks       `json:"team_risks,omitempty"`

	Claim    *Claim    `json:"claim,omitempty"`
	Evidence *Evidence `json:"evidence,omitempty"`
	Verdict  *Verdict  `json:"verdict,omitempty"`

	TalentPool             *TalentPool             `json:"talent_pool,omitempty"`
	SkillDistribution      *SkillDistribution      `json:"skill_distribution,omitempty"`
	ExperienceDistribution *ExperienceDistribution `json:"experience_distribution,omitempty"`
}

// NewStructuredOutput returns an output tagged with the given structure type.
func NewStructuredOutput(st StructureType) *StructuredOutput {
	return &StructuredOutput{StructureType: st}
}
