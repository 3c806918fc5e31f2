package extract

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/talent-query/internal/types"
)

// Priority weights for match scoring.
const (
	weightRequired   = 1.0
	weightPreferred  = 0.6
	weightNiceToHave = 0.3
)

// requirementStanding classifies how a candidate's chunks satisfy one requirement.
type requirementStanding int

const (
	standingMissing requirementStanding = iota
	standingPartial
	standingMet
)

// MatchScores scores every candidate in the chunk set against the requirements.
// Candidates keep their first-seen chunk order; matches are then sorted by
// descending overall score with ties broken by that original order. A requirement
// with no evidence in any chunk always lands in missing_requirements.
func MatchScores(reqs []Requirement, chunks []types.Chunk) types.MatchScores {
	byID, order := types.CandidateChunks(chunks)

	matches := make([]types.CandidateMatch, 0, len(order))
	for _, cvID := range order {
		matches = append(matches, matchCandidate(reqs, cvID, byID[cvID]))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].OverallMatch > matches[j].OverallMatch
	})

	return types.MatchScores{Matches: matches, TotalRequirements: len(reqs)}
}

// matchCandidate computes one candidate's match against all requirements.
func matchCandidate(reqs []Requirement, cvID string, chunks []types.Chunk) types.CandidateMatch {
	match := types.CandidateMatch{
		CandidateName:       types.CandidateName(chunks, cvID),
		CVID:                cvID,
		MetRequirements:     []string{},
		MissingRequirements: []string{},
		PartialRequirements: []string{},
		Strengths:           []string{},
	}

	total := 0.0
	earned := 0.0
	for _, req := range reqs {
		w := priorityWeight(req.Priority)
		total += w
		switch standing(req, chunks) {
		case standingMet:
			earned += w
			match.MetRequirements = append(match.MetRequirements, req.Name)
			if req.Priority == ReqRequired {
				match.Strengths = append(match.Strengths, req.Name)
			}
		case standingPartial:
			earned += w / 2
			match.PartialRequirements = append(match.PartialRequirements, req.Name)
		default:
			match.MissingRequirements = append(match.MissingRequirements, req.Name)
		}
	}

	if total > 0 {
		match.OverallMatch = int(math.Round(100 * earned / total))
	}
	return match
}

// standing decides met/partial/missing for one requirement against a candidate's
// chunks. Metadata evidence counts as met; a single content mention counts as
// partial; no evidence anywhere is missing.
func standing(req Requirement, chunks []types.Chunk) requirementStanding {
	if req.Kind == ReqKindExperience && req.Years > 0 {
		return experienceStanding(req.Years, chunks)
	}

	needle := strings.ToLower(req.Name)
	contentMentions := 0
	for _, c := range chunks {
		if metadataMentions(c.Metadata, req.Kind, needle) {
			return standingMet
		}
		if strings.Contains(strings.ToLower(c.Content), needle) {
			contentMentions++
		}
	}
	switch {
	case contentMentions >= 2:
		return standingMet
	case contentMentions == 1:
		return standingPartial
	default:
		return standingMissing
	}
}

// experienceStanding compares required years against reported experience. Half the
// requirement counts as partial.
func experienceStanding(needed float64, chunks []types.Chunk) requirementStanding {
	reported := 0.0
	for _, c := range chunks {
		if c.Metadata.TotalExperienceYears > reported {
			reported = c.Metadata.TotalExperienceYears
		}
	}
	switch {
	case reported >= needed:
		return standingMet
	case reported >= needed/2:
		return standingPartial
	default:
		return standingMissing
	}
}

// metadataMentions checks typed metadata fields for the requirement.
func metadataMentions(m types.ChunkMetadata, kind, needle string) bool {
	switch kind {
	case ReqKindCertification:
		for _, cert := range m.Certifications {
			if strings.Contains(strings.ToLower(cert), needle) {
				return true
			}
		}
	case ReqKindEducation:
		if m.EducationLevel != "" && strings.Contains(strings.ToLower(m.EducationLevel), needle) {
			return true
		}
	default:
		for _, s := range m.Skills {
			if strings.Contains(strings.ToLower(s), needle) || strings.Contains(needle, strings.ToLower(s)) {
				return true
			}
		}
	}
	return false
}

func priorityWeight(priority string) float64 {
	switch priority {
	case ReqPreferred:
		return weightPreferred
	case ReqNiceToHave:
		return weightNiceToHave
	default:
		return weightRequired
	}
}

// BestMatch surfaces the top-scoring candidate of a match set as a pick with
// justification. Returns an empty pick when there are no matches.
func BestMatch(ms types.MatchScores) types.TopPick {
	if len(ms.Matches) == 0 {
		return types.TopPick{KeyStrengths: []string{}}
	}
	best := ms.Matches[0]
	return types.TopPick{
		CandidateName: best.CandidateName,
		CVID:          best.CVID,
		OverallScore:  float64(best.OverallMatch),
		Justification: fmt.Sprintf("meets %d of %d requirements (%d%% match)", len(best.MetRequirements), ms.TotalRequirements, best.OverallMatch),
		KeyStrengths:  append([]string{}, best.Strengths...),
	}
}

// GapAnalysis summarizes what the best candidates are missing.
func GapAnalysis(ms types.MatchScores) string {
	if len(ms.Matches) == 0 {
		return ""
	}
	var parts []string
	limit := len(ms.Matches)
	if limit > 3 {
		limit = 3
	}
	for _, m := range ms.Matches[:limit] {
		if len(m.MissingRequirements) == 0 {
			parts = append(parts, fmt.Sprintf("%s meets every extracted requirement.", m.CandidateName))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s is missing: %s.", m.CandidateName, strings.Join(m.MissingRequirements, ", ")))
	}
	return strings.Join(parts, " ")
}

// FormatMatchScores renders match results as a markdown table.
func FormatMatchScores(ms types.MatchScores) string {
	if len(ms.Matches) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("| Candidate | Match | Met | Missing |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, m := range ms.Matches {
		b.WriteString(fmt.Sprintf("| %s | %d%% | %d | %d |\n",
			m.CandidateName, m.OverallMatch, len(m.MetRequirements), len(m.MissingRequirements)))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
