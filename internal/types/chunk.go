package types

// ChunkMetadata carries the extended candidate metadata attached to a chunk by the
// retrieval service. All fields are optional; zero values mean "not reported".
type ChunkMetadata struct {
	TotalExperienceYears float64  `json:"total_experience_years,omitempty"`
	CurrentRole          string   `json:"current_role,omitempty"`
	CurrentCompany       string   `json:"current_company,omitempty"`
	JobHoppingScore      float64  `json:"job_hopping_score,omitempty"`
	AvgTenureYears       float64  `json:"avg_tenure_years,omitempty"`
	PositionCount        int      `json:"position_count,omitempty"`
	EmploymentGapsCount  int      `json:"employment_gaps_count,omitempty"`
	Skills               []string `json:"skills,omitempty"`
	SeniorityLevel       string   `json:"seniority_level,omitempty"`
	EducationLevel       string   `json:"education_level,omitempty"`
	Certifications       []string `json:"certifications,omitempty"`
	Languages            []string `json:"languages,omitempty"`
	Location             string   `json:"location,omitempty"`
}

// Chunk is a retrieved fragment of a candidate document plus metadata, produced by
// the retrieval collaborator. Chunks are read-only inputs and are never mutated.
type Chunk struct {
	CVID           string        `json:"cv_id"`
	Filename       string        `json:"filename,omitempty"`
	CandidateName  string        `json:"candidate_name"`
	SectionType    string        `json:"section_type,omitempty"`
	Content        string        `json:"content"`
	RelevanceScore float64       `json:"relevance_score,omitempty"`
	Metadata       ChunkMetadata `json:"metadata,omitempty"`
}

// CandidateChunks groups a chunk set by cv_id, preserving first-seen order.
// The returned order slice holds cv_ids in the order they first appear, which keeps
// downstream aggregation deterministic.
func CandidateChunks(chunks []Chunk) (map[string][]Chunk, []string) {
	byID := make(map[string][]Chunk)
	order := make([]string, 0)
	for _, c := range chunks {
		if c.CVID == "" {
			continue
		}
		if _, seen := byID[c.CVID]; !seen {
			order = append(order, c.CVID)
		}
		byID[c.CVID] = append(byID[c.CVID], c)
	}
	return byID, order
}

// CandidateName returns the candidate name recorded for a cv_id, or empty string.
func CandidateName(chunks []Chunk, cvID string) string {
	for _, c := range chunks {
		if c.CVID == cvID && c.CandidateName != "" {
			return c.CandidateName
		}
	}
	return ""
}
