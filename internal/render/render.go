// Package render provides the flattened text rendering of structured results plus
// formatted console output for verbose CLI mode.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/talent-query/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Flatten joins the formatted section texts produced by a pipeline, in pipeline
// order, into the single markdown-equivalent string handed to clients that cannot
// consume the structured form.
func Flatten(sections []string) string {
	var kept []string
	for _, s := range sections {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, "\n\n")
}

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintOutput renders a human-readable summary of a structured result, one box
// per populated section of the variant.
func (p *Printer) PrintOutput(out *types.StructuredOutput) {
	if out == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Structure: %s\n", out.StructureType))

	switch out.StructureType {
	case types.StructureSingleCandidate:
		if d := out.SingleCandidate; d != nil {
			sb.WriteString(fmt.Sprintf("Candidate: %s\n", d.CandidateName))
			writeList(&sb, "Highlights", d.Highlights)
			writeList(&sb, "Skills", d.Skills)
		}
	case types.StructureRiskAssessment:
		if d := out.RiskAssessment; d != nil {
			sb.WriteString(fmt.Sprintf("Candidate: %s\n", d.CandidateName))
			for _, f := range d.RiskTable.Factors {
				sb.WriteString(fmt.Sprintf("  • %s: %s\n", f.Name, f.Severity))
			}
		}
	case types.StructureRanking:
		if out.RankingTable != nil {
			for _, r := range out.RankingTable.Ranked {
				sb.WriteString(fmt.Sprintf("  %d. %s (%.0f)\n", r.Rank, r.CandidateName, r.Score))
			}
		}
		if out.TopPick != nil && out.TopPick.CandidateName != "" {
			sb.WriteString(fmt.Sprintf("Top pick: %s\n", out.TopPick.CandidateName))
		}
	case types.StructureJobMatch:
		if out.MatchScores != nil {
			for _, m := range out.MatchScores.Matches {
				sb.WriteString(fmt.Sprintf("  • %s: %d%% (missing %d)\n", m.CandidateName, m.OverallMatch, len(m.MissingRequirements)))
			}
		}
	case types.StructureVerification:
		if out.Claim != nil {
			sb.WriteString(fmt.Sprintf("Claim: %s, %s\n", out.Claim.Subject, out.Claim.ClaimValue))
		}
		if out.Verdict != nil {
			sb.WriteString(fmt.Sprintf("Verdict: %s (%.2f)\n", out.Verdict.Status, out.Verdict.Confidence))
		}
	case types.StructureSummary:
		if out.TalentPool != nil {
			sb.WriteString(fmt.Sprintf("Candidates: %d\n", out.TalentPool.TotalCandidates))
		}
		if out.SkillDistribution != nil {
			count := min(len(out.SkillDistribution.Skills), maxItemsToShow)
			for _, s := range out.SkillDistribution.Skills[:count] {
				sb.WriteString(fmt.Sprintf("  • %s: %d (%.1f%%)\n", s.Skill, s.CandidateCount, s.Percentage))
			}
		}
	case types.StructureSearch:
		sb.WriteString(fmt.Sprintf("Results: %d\n", out.TotalResults))
	case types.StructureComparison:
		if out.TableData != nil {
			sb.WriteString(fmt.Sprintf("Rows: %d\n", len(out.TableData.Rows)))
		}
	case types.StructureTeamBuild:
		if out.TeamComposition != nil {
			for _, a := range out.TeamComposition.Assignments {
				sb.WriteString(fmt.Sprintf("  • %s: %s\n", a.RoleName, a.CandidateName))
			}
		}
	case types.StructureUnstructured:
		// Raw body only; nothing structured to summarize.
	}

	if out.Conclusion != "" {
		sb.WriteString("Conclusion: " + out.Conclusion + "\n")
	}

	p.printBox("STRUCTURED RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(title + ":\n")
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		sb.WriteString("  • " + item + "\n")
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}
