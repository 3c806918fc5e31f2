package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/talent-query/internal/types"
)

// TeamRole is one role the requested team needs, with the skills it calls for.
type TeamRole struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

var roleWords = []string{
	"engineer", "developer", "designer", "architect", "manager", "lead",
	"analyst", "scientist", "devops", "tester", "qa", "consultant", "specialist",
}

// TeamRoles extracts the roles a team-build query asks for. A labeled roles
// section in the generated text ("- Backend Engineer: Go, PostgreSQL") wins;
// otherwise roles are picked out of the query text by role keyword. Degrades to an
// empty list.
func TeamRoles(raw, query string) []TeamRole {
	var roles []TeamRole
	for _, item := range sectionItems(raw, "role", "team requirement", "position") {
		roles = append(roles, parseRole(item))
	}
	if len(roles) == 0 {
		roles = rolesFromQuery(query)
	}
	return roles
}

// parseRole splits "Name: skill, skill" bullets.
func parseRole(item string) TeamRole {
	name, skillPart, found := strings.Cut(item, ":")
	role := TeamRole{Name: strings.TrimSpace(name), Skills: []string{}}
	if !found {
		return role
	}
	for _, s := range strings.Split(skillPart, ",") {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			role.Skills = append(role.Skills, trimmed)
		}
	}
	return role
}

// rolesFromQuery scans the query for role phrases like "a senior backend engineer".
func rolesFromQuery(query string) []TeamRole {
	var roles []TeamRole
	fields := strings.Fields(query)
	for i, f := range fields {
		w := strings.ToLower(strings.Trim(f, ".,;:!?"))
		isRole := false
		for _, rw := range roleWords {
			if w == rw || w == rw+"s" {
				isRole = true
				break
			}
		}
		if !isRole {
			continue
		}
		// Take up to two qualifier words before the role word ("senior backend").
		start := i - 2
		if start < 0 {
			start = 0
		}
		var parts []string
		for _, q := range fields[start:i] {
			q = strings.ToLower(strings.Trim(q, ".,;:!?"))
			if q == "" || stopwords[q] || q == "a" || q == "an" || q == "one" || q == "two" {
				continue
			}
			parts = append(parts, q)
		}
		parts = append(parts, strings.TrimSuffix(w, "s"))
		roles = append(roles, TeamRole{Name: strings.Join(parts, " "), Skills: []string{}})
	}
	return dedupeRoles(roles)
}

func dedupeRoles(in []TeamRole) []TeamRole {
	seen := make(map[string]bool)
	out := make([]TeamRole, 0, len(in))
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

// Compose assigns candidates to roles greedily: roles are filled in order, each
// taking the unassigned candidate with the best fit score. A role no remaining
// candidate fits lands in unassigned_roles.
func Compose(roles []TeamRole, chunks []types.Chunk) types.TeamComposition {
	comp := types.TeamComposition{Assignments: []types.RoleAssignment{}, UnassignedRoles: []string{}}
	byID, order := types.CandidateChunks(chunks)

	assigned := make(map[string]bool)
	for _, role := range roles {
		bestID := ""
		bestFit := 0.0
		for _, cvID := range order {
			if assigned[cvID] {
				continue
			}
			if fit := roleFit(role, byID[cvID]); fit > bestFit {
				bestFit = fit
				bestID = cvID
			}
		}
		if bestID == "" {
			comp.UnassignedRoles = append(comp.UnassignedRoles, role.Name)
			continue
		}
		assigned[bestID] = true
		comp.Assignments = append(comp.Assignments, types.RoleAssignment{
			RoleName:      role.Name,
			CandidateName: types.CandidateName(byID[bestID], bestID),
			CVID:          bestID,
			FitScore:      bestFit,
		})
	}
	return comp
}

// roleFit scores one candidate for one role on a 0-100 scale: skill overlap when
// the role names skills, else role-title match against the candidate's profile.
func roleFit(role TeamRole, chunks []types.Chunk) float64 {
	candidateSkills := make(map[string]bool)
	var currentRole, content string
	for _, c := range chunks {
		for _, s := range c.Metadata.Skills {
			candidateSkills[strings.ToLower(strings.TrimSpace(s))] = true
		}
		if c.Metadata.CurrentRole != "" {
			currentRole = strings.ToLower(c.Metadata.CurrentRole)
		}
		content += strings.ToLower(c.Content) + "\n"
	}

	if len(role.Skills) > 0 {
		matched := 0
		for _, s := range role.Skills {
			key := strings.ToLower(strings.TrimSpace(s))
			if candidateSkills[key] || strings.Contains(content, key) {
				matched++
			}
		}
		return 100 * float64(matched) / float64(len(role.Skills))
	}

	// Title-based fit: every role word found in the candidate's current role or
	// document text contributes.
	words := strings.Fields(strings.ToLower(role.Name))
	if len(words) == 0 {
		return 0
	}
	matched := 0
	for _, w := range words {
		if strings.Contains(currentRole, w) {
			matched += 2
		} else if strings.Contains(content, w) {
			matched++
		}
	}
	fit := 50 * float64(matched) / float64(len(words))
	if fit > 100 {
		fit = 100
	}
	return fit
}

// Coverage reports how well the assembled team covers the union of role skills.
func Coverage(roles []TeamRole, comp types.TeamComposition, chunks []types.Chunk) types.SkillCoverage {
	cov := types.SkillCoverage{Gaps: []string{}}

	wanted := make(map[string]string) // lower -> display
	for _, role := range roles {
		for _, s := range role.Skills {
			wanted[strings.ToLower(strings.TrimSpace(s))] = strings.TrimSpace(s)
		}
	}
	if len(wanted) == 0 {
		// No explicit skills requested: coverage is the share of filled roles.
		totalRoles := len(comp.Assignments) + len(comp.UnassignedRoles)
		if totalRoles > 0 {
			cov.OverallCoverage = 100 * float64(len(comp.Assignments)) / float64(totalRoles)
		}
		cov.Gaps = append(cov.Gaps, comp.UnassignedRoles...)
		return cov
	}

	teamSkills := make(map[string]bool)
	for _, a := range comp.Assignments {
		for _, c := range chunksFor(chunks, a.CVID) {
			for _, s := range c.Metadata.Skills {
				teamSkills[strings.ToLower(strings.TrimSpace(s))] = true
			}
		}
	}

	covered := 0
	var gaps []string
	for key, display := range wanted {
		if teamSkills[key] {
			covered++
		} else {
			gaps = append(gaps, display)
		}
	}
	sort.Strings(gaps)
	cov.Gaps = append(cov.Gaps, gaps...)
	cov.OverallCoverage = 100 * float64(covered) / float64(len(wanted))
	return cov
}

// TeamRisk derives team-level risks from unfilled roles, weak fits and coverage.
func TeamRisk(comp types.TeamComposition, cov types.SkillCoverage, chunks []types.Chunk) types.TeamRisks {
	tr := types.TeamRisks{Risks: []string{}, OverallRiskLevel: "low"}

	if len(comp.UnassignedRoles) > 0 {
		tr.Risks = append(tr.Risks, fmt.Sprintf("unfilled roles: %s", strings.Join(comp.UnassignedRoles, ", ")))
	}
	if cov.OverallCoverage < 50 && (len(comp.Assignments)+len(comp.UnassignedRoles)) > 0 {
		tr.Risks = append(tr.Risks, fmt.Sprintf("skill coverage is only %.0f%%", cov.OverallCoverage))
	}
	for _, a := range comp.Assignments {
		for _, c := range chunksFor(chunks, a.CVID) {
			if c.Metadata.JobHoppingScore >= 7 {
				tr.Risks = append(tr.Risks, fmt.Sprintf("%s has a high job-hopping score", a.CandidateName))
				break
			}
		}
	}

	switch {
	case len(tr.Risks) >= 2:
		tr.OverallRiskLevel = "high"
	case len(tr.Risks) == 1:
		tr.OverallRiskLevel = "medium"
	}
	return tr
}

// FormatTeamRoles renders the requested roles.
func FormatTeamRoles(roles []TeamRole) string {
	if len(roles) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("**Team roles**\n")
	for _, r := range roles {
		b.WriteString("- " + r.Name)
		if len(r.Skills) > 0 {
			b.WriteString(": " + strings.Join(r.Skills, ", "))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatComposition renders assignments and open roles.
func FormatComposition(comp types.TeamComposition) string {
	if len(comp.Assignments) == 0 && len(comp.UnassignedRoles) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("**Team composition**\n")
	for _, a := range comp.Assignments {
		b.WriteString(fmt.Sprintf("- %s: %s (fit %.0f)\n", a.RoleName, a.CandidateName, a.FitScore))
	}
	for _, r := range comp.UnassignedRoles {
		b.WriteString("- " + r + ": unfilled\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatCoverage renders the coverage summary.
func FormatCoverage(cov types.SkillCoverage) string {
	out := fmt.Sprintf("**Skill coverage**: %.0f%%", cov.OverallCoverage)
	if len(cov.Gaps) > 0 {
		out += " (gaps: " + strings.Join(cov.Gaps, ", ") + ")"
	}
	return out
}

// FormatTeamRisks renders team risks.
func FormatTeamRisks(tr types.TeamRisks) string {
	if len(tr.Risks) == 0 {
		return "**Team risk**: " + tr.OverallRiskLevel
	}
	var b strings.Builder
	b.WriteString("**Team risk**: " + tr.OverallRiskLevel + "\n")
	for _, r := range tr.Risks {
		b.WriteString("- " + r + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
