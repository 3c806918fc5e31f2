package llm

import (
	"fmt"
	"strings"

	"github.com/jonathan/talent-query/internal/types"
)

// BuildPrompt assembles the generation prompt for a candidate-pool query.
// The instructions pin down the answer conventions the downstream parsers
// rely on: fenced reasoning blocks, pipe tables, and cv: candidate links.
func BuildPrompt(query *types.Query, qt types.QueryType, chunks []types.Chunk, history []types.ConversationTurn) string {
	var sb strings.Builder

	sb.WriteString("You are a recruiting assistant answering questions about a pool of candidate CVs.\n\n")
	sb.WriteString("Formatting rules:\n")
	sb.WriteString("- Put your internal reasoning inside a block starting with a line `:::thinking` and ending with a line `:::`.\n")
	sb.WriteString("- End the answer with a block starting with `:::conclusion` containing a one-paragraph verdict.\n")
	sb.WriteString("- When tabulating candidates, use markdown pipe tables with a header row.\n")
	sb.WriteString("- Every time you mention a candidate, link them as [Full Name](cv:<cv_id>).\n")
	sb.WriteString("- Answer in the language of the question.\n\n")

	if inst := typeInstructions(qt); inst != "" {
		sb.WriteString(inst)
		sb.WriteString("\n\n")
	}

	if len(history) > 0 {
		sb.WriteString("Conversation so far:\n")
		for _, turn := range history {
			sb.WriteString(fmt.Sprintf("%s: %s\n", turn.Role, turn.Text))
		}
		sb.WriteString("\n")
	}

	if len(chunks) > 0 {
		sb.WriteString("Candidate material:\n\n")
		for _, ch := range chunks {
			sb.WriteString(fmt.Sprintf("--- %s (cv_id: %s, section: %s) ---\n", ch.CandidateName, ch.CVID, ch.SectionType))
			sb.WriteString(strings.TrimSpace(ch.Content))
			sb.WriteString("\n\n")
		}
	}

	sb.WriteString("Question: ")
	sb.WriteString(query.Text)
	sb.WriteString("\n")

	return sb.String()
}

func typeInstructions(qt types.QueryType) string {
	switch qt {
	case types.QueryComparison:
		return "Compare the candidates side by side in a single table whose first column is the candidate."
	case types.QueryRanking:
		return "Rank the candidates in a table with columns Rank, Candidate, Score, and per-criterion columns. Justify the top pick in a section titled `Justification:`."
	case types.QueryJobMatch:
		return "List the job requirements under a `Requirements:` heading, one bullet per requirement, marking each as required, preferred, or nice to have."
	case types.QueryRiskAssessment:
		return "Produce a table with columns Factor, Severity, Evidence covering tenure stability, gap frequency, skill currency, seniority alignment, and verification confidence."
	case types.QueryTeamBuild:
		return "List the roles to fill under a `Roles:` heading as `Role: skill, skill` bullets before assigning candidates."
	case types.QueryVerification:
		return "Quote the exact CV passages that support or contradict the claim before giving the verdict."
	case types.QuerySummary:
		return "Summarize the pool as a whole; do not single out individual candidates unless the question asks."
	default:
		return ""
	}
}
