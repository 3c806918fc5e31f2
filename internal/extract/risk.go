package extract

import (
	"fmt"
	"strings"

	"github.com/jonathan/talent-query/internal/tables"
	"github.com/jonathan/talent-query/internal/types"
)

// The five canonical risk factors, in fixed output order.
var riskFactorNames = []string{
	"tenure stability",
	"gap frequency",
	"skill currency",
	"seniority alignment",
	"verification confidence",
}

// Risk produces the candidate risk table: always exactly five named factors, each
// with a severity and a one-line justification. Numeric signals from chunk metadata
// take precedence; a risk table present in the generated text fills factors the
// metadata cannot score; anything left is inferred qualitatively from the text.
func Risk(raw string, chunks []types.Chunk) types.RiskTable {
	fromText := riskFactorsFromText(raw)

	factors := make([]types.RiskFactor, 0, len(riskFactorNames))
	for _, name := range riskFactorNames {
		if f, ok := riskFromMetadata(name, chunks); ok {
			factors = append(factors, f)
			continue
		}
		if f, ok := fromText[name]; ok {
			f.Name = name
			factors = append(factors, f)
			continue
		}
		factors = append(factors, riskFromKeywords(name, raw))
	}
	return types.RiskTable{Factors: factors}
}

// riskFromMetadata scores a factor from numeric chunk metadata. The strongest
// signal across the chunk set wins (metadata is repeated per chunk).
func riskFromMetadata(name string, chunks []types.Chunk) (types.RiskFactor, bool) {
	switch name {
	case "tenure stability":
		for _, c := range chunks {
			m := c.Metadata
			if m.JobHoppingScore > 0 {
				switch {
				case m.JobHoppingScore >= 7:
					return factor(name, "high", fmt.Sprintf("job-hopping score %.1f indicates frequent moves", m.JobHoppingScore)), true
				case m.JobHoppingScore >= 4:
					return factor(name, "medium", fmt.Sprintf("job-hopping score %.1f suggests some mobility", m.JobHoppingScore)), true
				default:
					return factor(name, "low", fmt.Sprintf("job-hopping score %.1f indicates stable history", m.JobHoppingScore)), true
				}
			}
			if m.AvgTenureYears > 0 {
				switch {
				case m.AvgTenureYears < 1.5:
					return factor(name, "high", fmt.Sprintf("average tenure %.1f years is short", m.AvgTenureYears)), true
				case m.AvgTenureYears < 2.5:
					return factor(name, "medium", fmt.Sprintf("average tenure %.1f years is moderate", m.AvgTenureYears)), true
				default:
					return factor(name, "low", fmt.Sprintf("average tenure %.1f years shows stability", m.AvgTenureYears)), true
				}
			}
		}
	case "gap frequency":
		for _, c := range chunks {
			if c.Metadata.PositionCount == 0 && c.Metadata.EmploymentGapsCount == 0 {
				continue
			}
			gaps := c.Metadata.EmploymentGapsCount
			switch {
			case gaps > 2:
				return factor(name, "high", fmt.Sprintf("%d employment gaps on record", gaps)), true
			case gaps > 0:
				return factor(name, "medium", fmt.Sprintf("%d employment gap(s) on record", gaps)), true
			default:
				return factor(name, "low", "no employment gaps on record"), true
			}
		}
	case "skill currency":
		for _, c := range chunks {
			if len(c.Metadata.Skills) > 0 {
				return factor(name, "low", fmt.Sprintf("%d skills listed in profile", len(c.Metadata.Skills))), true
			}
		}
	case "seniority alignment":
		for _, c := range chunks {
			if c.Metadata.SeniorityLevel != "" {
				return factor(name, "low", "seniority level "+c.Metadata.SeniorityLevel+" recorded in profile"), true
			}
		}
	case "verification confidence":
		switch {
		case len(chunks) >= 3:
			return factor(name, "low", fmt.Sprintf("%d document sections available for verification", len(chunks))), true
		case len(chunks) > 0:
			return factor(name, "medium", fmt.Sprintf("only %d document section(s) available", len(chunks))), true
		default:
			return factor(name, "high", "no source documents retrieved"), true
		}
	}
	return types.RiskFactor{}, false
}

// riskFactorsFromText parses a risk table the generation may have emitted and maps
// its rows onto the canonical factor names.
func riskFactorsFromText(raw string) map[string]types.RiskFactor {
	out := make(map[string]types.RiskFactor)
	for _, t := range tables.ExtractAll(raw) {
		nameCol := firstColumn(t, "factor", "risk")
		sevCol := firstColumn(t, "severity", "level")
		if nameCol < 0 || sevCol < 0 {
			continue
		}
		justCol := firstColumn(t, "justification", "reason", "detail", "note")
		for _, row := range t.Rows {
			canonical := canonicalRiskName(row[nameCol])
			if canonical == "" {
				continue
			}
			just := ""
			if justCol >= 0 {
				just = row[justCol]
			}
			out[canonical] = types.RiskFactor{
				Severity:      normalizeSeverity(row[sevCol]),
				Justification: just,
			}
		}
	}
	return out
}

// riskFromKeywords infers a factor qualitatively from text mentions, defaulting to
// medium with an explicit "no signal" justification.
func riskFromKeywords(name, raw string) types.RiskFactor {
	lower := strings.ToLower(raw)
	var adverse []string
	switch name {
	case "tenure stability":
		adverse = []string{"job hop", "short tenure", "frequent change"}
	case "gap frequency":
		adverse = []string{"employment gap", "career gap", "gap in employment"}
	case "skill currency":
		adverse = []string{"outdated", "legacy skills", "stale"}
	case "seniority alignment":
		adverse = []string{"overqualified", "underqualified", "seniority mismatch"}
	case "verification confidence":
		adverse = []string{"unverified", "cannot verify", "no evidence"}
	}
	for _, kw := range adverse {
		if strings.Contains(lower, kw) {
			return factor(name, "high", "generated analysis mentions: "+kw)
		}
	}
	return factor(name, "medium", "no signal available; defaulting to medium")
}

func canonicalRiskName(cell string) string {
	lower := strings.ToLower(cell)
	switch {
	case strings.Contains(lower, "tenure"), strings.Contains(lower, "stability"):
		return "tenure stability"
	case strings.Contains(lower, "gap"):
		return "gap frequency"
	case strings.Contains(lower, "skill"):
		return "skill currency"
	case strings.Contains(lower, "seniority"):
		return "seniority alignment"
	case strings.Contains(lower, "verif"), strings.Contains(lower, "confidence"):
		return "verification confidence"
	}
	return ""
}

func normalizeSeverity(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(lower, "high"), strings.Contains(lower, "severe"):
		return "high"
	case strings.Contains(lower, "low"):
		return "low"
	default:
		return "medium"
	}
}

func factor(name, severity, justification string) types.RiskFactor {
	return types.RiskFactor{Name: name, Severity: severity, Justification: justification}
}

// firstColumn returns the index of the first header matching any alias.
func firstColumn(t tables.Table, aliases ...string) int {
	for i, h := range t.Headers {
		lower := strings.ToLower(h)
		for _, a := range aliases {
			if strings.Contains(lower, a) {
				return i
			}
		}
	}
	return -1
}

// FormatRisk renders the risk table as a markdown table.
func FormatRisk(rt types.RiskTable) string {
	if len(rt.Factors) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("| Risk Factor | Severity | Justification |\n")
	b.WriteString("|---|---|---|\n")
	for _, f := range rt.Factors {
		b.WriteString("| " + f.Name + " | " + f.Severity + " | " + f.Justification + " |\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
