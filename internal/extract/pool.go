package extract

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/talent-query/internal/types"
)

// Experience bucket boundaries in years. Buckets are left-inclusive and partition
// the candidate set: junior < 3, mid 3-6, senior 6-10, principal >= 10. Candidates
// with no reported experience land in junior.
const (
	bucketMid       = 3.0
	bucketSenior    = 6.0
	bucketPrincipal = 10.0
)

// Pool aggregates headline statistics over the full chunk set.
func Pool(chunks []types.Chunk) types.TalentPool {
	dist := Experience(chunks)
	return types.TalentPool{
		TotalCandidates: candidateCount(chunks),
		ExperienceDistribution: map[string]int{
			"junior":    dist.Junior,
			"mid":       dist.Mid,
			"senior":    dist.Senior,
			"principal": dist.Principal,
		},
	}
}

// SkillDist computes the pool-wide skill distribution: for each skill, how many
// distinct candidates list it and what share of the pool that is. Skills are
// ordered by descending candidate count, ties alphabetically.
func SkillDist(chunks []types.Chunk) types.SkillDistribution {
	byID, order := types.CandidateChunks(chunks)
	total := len(order)

	counts := make(map[string]int)
	display := make(map[string]string)
	for _, cvID := range order {
		candidateSkills := make(map[string]bool)
		for _, c := range byID[cvID] {
			for _, s := range c.Metadata.Skills {
				key := strings.ToLower(strings.TrimSpace(s))
				if key == "" || candidateSkills[key] {
					continue
				}
				candidateSkills[key] = true
				counts[key]++
				if _, ok := display[key]; !ok {
					display[key] = strings.TrimSpace(s)
				}
			}
		}
	}

	skills := make([]types.SkillCount, 0, len(counts))
	for key, n := range counts {
		pct := 0.0
		if total > 0 {
			pct = math.Round(10000*float64(n)/float64(total)) / 100
		}
		skills = append(skills, types.SkillCount{Skill: display[key], CandidateCount: n, Percentage: pct})
	}
	sort.Slice(skills, func(i, j int) bool {
		if skills[i].CandidateCount != skills[j].CandidateCount {
			return skills[i].CandidateCount > skills[j].CandidateCount
		}
		return skills[i].Skill < skills[j].Skill
	})
	return types.SkillDistribution{Skills: skills}
}

// Experience buckets the pool by total experience years. Every candidate lands in
// exactly one bucket, so bucket counts always sum to the candidate total.
func Experience(chunks []types.Chunk) types.ExperienceDistribution {
	byID, order := types.CandidateChunks(chunks)

	var dist types.ExperienceDistribution
	sum := 0.0
	for _, cvID := range order {
		years := 0.0
		for _, c := range byID[cvID] {
			if c.Metadata.TotalExperienceYears > years {
				years = c.Metadata.TotalExperienceYears
			}
		}
		sum += years
		switch {
		case years >= bucketPrincipal:
			dist.Principal++
		case years >= bucketSenior:
			dist.Senior++
		case years >= bucketMid:
			dist.Mid++
		default:
			dist.Junior++
		}
	}
	if len(order) > 0 {
		dist.AverageYears = math.Round(10*sum/float64(len(order))) / 10
	}
	return dist
}

func candidateCount(chunks []types.Chunk) int {
	_, order := types.CandidateChunks(chunks)
	return len(order)
}

// FormatPool renders the pool summary.
func FormatPool(p types.TalentPool) string {
	if p.TotalCandidates == 0 {
		return "The candidate pool is empty."
	}
	return fmt.Sprintf("**Talent pool**: %d candidates (junior %d, mid %d, senior %d, principal %d)",
		p.TotalCandidates,
		p.ExperienceDistribution["junior"],
		p.ExperienceDistribution["mid"],
		p.ExperienceDistribution["senior"],
		p.ExperienceDistribution["principal"])
}

// FormatSkillDist renders the skill distribution as markdown.
func FormatSkillDist(sd types.SkillDistribution) string {
	if len(sd.Skills) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("| Skill | Candidates | Share |\n")
	b.WriteString("|---|---|---|\n")
	for _, s := range sd.Skills {
		b.WriteString(fmt.Sprintf("| %s | %d | %.1f%% |\n", s.Skill, s.CandidateCount, s.Percentage))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatExperience renders the experience distribution.
func FormatExperience(d types.ExperienceDistribution) string {
	return fmt.Sprintf("**Experience**: average %.1f years (junior %d, mid %d, senior %d, principal %d)",
		d.AverageYears, d.Junior, d.Mid, d.Senior, d.Principal)
}
