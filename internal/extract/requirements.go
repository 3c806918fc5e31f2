package extract

import (
	"strconv"
	"strings"

	"github.com/jonathan/talent-query/internal/types"
)

// Requirement kinds.
const (
	ReqKindSkill         = "skill"
	ReqKindExperience    = "experience"
	ReqKindEducation     = "education"
	ReqKindCertification = "certification"
)

// Requirement priorities.
const (
	ReqRequired   = "required"
	ReqPreferred  = "preferred"
	ReqNiceToHave = "nice_to_have"
)

// Requirement is one extracted job requirement.
type Requirement struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Priority string `json:"priority"`
	// Years is set for experience requirements that name a minimum ("5+ years").
	Years float64 `json:"years,omitempty"`
}

// Requirements extracts the requirement list for a job-match query. Labeled
// requirement sections in the generated text win; when absent, requirements are
// derived from the query text itself so the pipeline still produces a scoring
// basis. Degrades to an empty list.
func Requirements(raw string, query string) []Requirement {
	var reqs []Requirement

	for _, item := range sectionItems(raw, "requirement", "must have", "qualification") {
		reqs = append(reqs, parseRequirement(item, ReqRequired))
	}
	for _, item := range sectionItems(raw, "preferred", "desired") {
		reqs = append(reqs, parseRequirement(item, ReqPreferred))
	}
	for _, item := range sectionItems(raw, "nice to have", "nice-to-have", "bonus") {
		reqs = append(reqs, parseRequirement(item, ReqNiceToHave))
	}

	if len(reqs) == 0 {
		reqs = requirementsFromQuery(query)
	}

	return dedupeRequirements(reqs)
}

// parseRequirement builds one requirement from a bullet line, honoring inline
// priority markers like "(preferred)".
func parseRequirement(item, defaultPriority string) Requirement {
	priority := defaultPriority
	lower := strings.ToLower(item)
	switch {
	case strings.Contains(lower, "(required)"), strings.Contains(lower, "(must)"):
		priority = ReqRequired
	case strings.Contains(lower, "(preferred)"):
		priority = ReqPreferred
	case strings.Contains(lower, "(nice to have)"), strings.Contains(lower, "(bonus)"):
		priority = ReqNiceToHave
	}

	name := item
	for _, marker := range []string{"(required)", "(must)", "(preferred)", "(nice to have)", "(bonus)"} {
		if idx := strings.Index(strings.ToLower(name), marker); idx >= 0 {
			name = name[:idx] + name[idx+len(marker):]
		}
	}
	name = strings.TrimSpace(name)

	req := Requirement{Name: name, Priority: priority, Kind: classifyRequirement(name)}
	if req.Kind == ReqKindExperience {
		req.Years = parseYears(name)
	}
	return req
}

// requirementsFromQuery derives requirements directly from the query text, e.g.
// "find a match for a senior Go developer with 5+ years and AWS certification".
func requirementsFromQuery(query string) []Requirement {
	var reqs []Requirement
	if years := parseYears(query); years > 0 {
		reqs = append(reqs, Requirement{
			Name:     strconv.FormatFloat(years, 'f', -1, 64) + "+ years experience",
			Kind:     ReqKindExperience,
			Priority: ReqRequired,
			Years:    years,
		})
	}
	for _, term := range QueryTerms(query) {
		if term == "years" || term == "experience" || term == "match" || term == "role" || term == "fit" {
			continue
		}
		reqs = append(reqs, Requirement{
			Name:     term,
			Kind:     classifyRequirement(term),
			Priority: ReqRequired,
		})
	}
	return reqs
}

// classifyRequirement types a requirement by keyword.
func classifyRequirement(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "year") || strings.Contains(lower, "experience"):
		return ReqKindExperience
	case strings.Contains(lower, "degree") || strings.Contains(lower, "bachelor") ||
		strings.Contains(lower, "master") || strings.Contains(lower, "phd") ||
		strings.Contains(lower, "education"):
		return ReqKindEducation
	case strings.Contains(lower, "certif") || strings.Contains(lower, "license"):
		return ReqKindCertification
	default:
		return ReqKindSkill
	}
}

// parseYears extracts a minimum-years figure like "5 years" or "3+ yrs" from text.
func parseYears(text string) float64 {
	fields := strings.Fields(strings.ToLower(text))
	for i, f := range fields {
		if !strings.HasPrefix(f, "year") && !strings.HasPrefix(f, "yrs") && f != "yr" {
			continue
		}
		if i == 0 {
			continue
		}
		num := strings.TrimSuffix(strings.Trim(fields[i-1], ".,;:"), "+")
		if v, err := strconv.ParseFloat(num, 64); err == nil && v > 0 && v < 60 {
			return v
		}
	}
	return 0
}

func dedupeRequirements(in []Requirement) []Requirement {
	seen := make(map[string]bool, len(in))
	out := make([]Requirement, 0, len(in))
	for _, r := range in {
		key := strings.ToLower(r.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

// FormatRequirements renders the requirement list grouped by priority.
func FormatRequirements(reqs []Requirement) string {
	if len(reqs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("**Requirements**\n")
	for _, r := range reqs {
		b.WriteString("- " + r.Name + " (" + strings.ReplaceAll(r.Priority, "_", " ") + ", " + r.Kind + ")\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// chunksFor filters the chunk slice to one candidate, preserving order.
func chunksFor(chunks []types.Chunk, cvID string) []types.Chunk {
	var out []types.Chunk
	for _, c := range chunks {
		if c.CVID == cvID {
			out = append(out, c)
		}
	}
	return out
}
