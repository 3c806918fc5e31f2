package extract

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/talent-query/internal/refs"
	"github.com/jonathan/talent-query/internal/tables"
	"github.com/jonathan/talent-query/internal/types"
)

// RankingCriteria pulls the free-text description of how candidates were ranked.
func RankingCriteria(raw string, _ []types.Chunk) string {
	return refs.Strip(sectionText(raw, "criteria", "ranking criteria", "methodology"))
}

// Ranking builds the ranking table. A pipe table in the generated text with a score
// column is authoritative; otherwise candidates are ordered by their best chunk
// relevance score. Ordering is descending by score with ties broken by original
// order (stable).
func Ranking(raw string, chunks []types.Chunk) types.RankingTable {
	ranked := rankingFromText(raw, chunks)
	if len(ranked) == 0 {
		ranked = rankingFromChunks(chunks)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	if ranked == nil {
		ranked = []types.RankedCandidate{}
	}
	return types.RankingTable{Ranked: ranked}
}

// rankingFromText parses a candidate/score table out of the generated text and
// binds rows to cv_ids via reference markers or chunk candidate names.
func rankingFromText(raw string, chunks []types.Chunk) []types.RankedCandidate {
	var ranked []types.RankedCandidate
	for _, t := range tables.ExtractAll(raw) {
		nameCol := firstColumn(t, "candidate", "name")
		scoreCol := firstColumn(t, "score", "rating", "match")
		if nameCol < 0 || scoreCol < 0 {
			continue
		}
		for _, row := range t.Rows {
			name, cvID := resolveCandidateCell(row[nameCol], chunks)
			if name == "" {
				continue
			}
			ranked = append(ranked, types.RankedCandidate{
				CandidateName: name,
				CVID:          cvID,
				Score:         parseScore(row[scoreCol]),
			})
		}
		if len(ranked) > 0 {
			break
		}
	}
	return ranked
}

// rankingFromChunks orders candidates by their best relevance score.
func rankingFromChunks(chunks []types.Chunk) []types.RankedCandidate {
	byID, order := types.CandidateChunks(chunks)
	var ranked []types.RankedCandidate
	for _, cvID := range order {
		best := 0.0
		for _, c := range byID[cvID] {
			if c.RelevanceScore > best {
				best = c.RelevanceScore
			}
		}
		ranked = append(ranked, types.RankedCandidate{
			CandidateName: types.CandidateName(byID[cvID], cvID),
			CVID:          cvID,
			Score:         best * 100,
		})
	}
	return ranked
}

// TopRanked surfaces rank #1 with justification and key strengths pulled from the
// surrounding text. Returns an empty pick for an empty ranking.
func TopRanked(rt types.RankingTable, raw string, chunks []types.Chunk) types.TopPick {
	if len(rt.Ranked) == 0 {
		return types.TopPick{KeyStrengths: []string{}}
	}
	first := rt.Ranked[0]
	pick := types.TopPick{
		CandidateName: first.CandidateName,
		CVID:          first.CVID,
		OverallScore:  first.Score,
		KeyStrengths:  Highlights(raw, chunks),
	}
	if pick.KeyStrengths == nil {
		pick.KeyStrengths = []string{}
	}

	pick.Justification = refs.Strip(sectionText(raw, "justification", "why", "top pick"))
	if pick.Justification == "" {
		pick.Justification = fmt.Sprintf("%s ranks first with a score of %.0f", first.CandidateName, first.Score)
	}
	return pick
}

// resolveCandidateCell turns a table cell into (name, cv_id), understanding
// reference markup and falling back to name lookup in the chunk set.
func resolveCandidateCell(cell string, chunks []types.Chunk) (string, string) {
	if ref, ok := refs.First(cell); ok {
		return ref.Name, ref.CVID
	}
	name := strings.TrimSpace(strings.Trim(cell, "*"))
	if name == "" {
		return "", ""
	}
	for _, c := range chunks {
		if strings.EqualFold(c.CandidateName, name) {
			return c.CandidateName, c.CVID
		}
	}
	return name, ""
}

// parseScore reads a numeric score out of a cell, tolerating "85%", "85/100" and
// plain numbers. Unparseable cells score zero.
func parseScore(cell string) float64 {
	s := strings.TrimSpace(cell)
	s = strings.TrimSuffix(s, "%")
	if idx := strings.Index(s, "/"); idx > 0 {
		s = s[:idx]
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatRanking renders the ranking table as markdown.
func FormatRanking(rt types.RankingTable) string {
	if len(rt.Ranked) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("| Rank | Candidate | Score |\n")
	b.WriteString("|---|---|---|\n")
	for _, r := range rt.Ranked {
		b.WriteString(fmt.Sprintf("| %d | %s | %.0f |\n", r.Rank, r.CandidateName, r.Score))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatTopPick renders the top pick summary.
func FormatTopPick(p types.TopPick) string {
	if p.CandidateName == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("**Top pick: %s** (score %.0f)\n%s", p.CandidateName, p.OverallScore, p.Justification))
	for _, s := range p.KeyStrengths {
		b.WriteString("\n- " + s)
	}
	return b.String()
}
