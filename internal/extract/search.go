package extract

import (
	"fmt"
	"strings"

	"github.com/jonathan/talent-query/internal/refs"
	"github.com/jonathan/talent-query/internal/tables"
	"github.com/jonathan/talent-query/internal/types"
)

// ComparisonTable builds the comparison variant's table from the first pipe table
// in the generated text, binding each row to a candidate via reference markers or
// chunk name lookup. The first column is treated as the candidate column; a
// score-like column, when present, fills the row's match score. Returns an empty
// table (never nil rows) when the text carries no table.
func ComparisonTable(raw string, chunks []types.Chunk) types.TableData {
	t := tables.Extract(raw)
	td := types.TableData{Headers: []string{}, Rows: []types.TableRow{}}
	if t.Empty() {
		return td
	}

	td.Headers = append(td.Headers, t.Headers...)
	scoreCol := firstColumn(t, "score", "match")

	for _, row := range t.Rows {
		name, cvID := resolveCandidateCell(row[0], chunks)
		tr := types.TableRow{
			CandidateName: name,
			CVID:          cvID,
			Columns:       make(map[string]string, len(t.Headers)),
		}
		for i, h := range t.Headers {
			tr.Columns[h] = refs.Strip(row[i])
		}
		if scoreCol >= 0 {
			tr.MatchScore = parseScore(row[scoreCol])
		}
		td.Rows = append(td.Rows, tr)
	}
	return td
}

// SearchResults builds the search variant's results table. Candidates referenced in
// the generated text come first (in mention order); remaining candidates from the
// chunk set follow, ordered by relevance score as retrieved.
func SearchResults(raw string, chunks []types.Chunk, query string) types.ResultsTable {
	rt := types.ResultsTable{Results: []types.SearchResult{}, QueryTerms: QueryTerms(query)}

	seen := make(map[string]bool)
	for _, ref := range refs.ExtractAll(raw) {
		rt.Results = append(rt.Results, searchResult(ref.Name, ref.CVID, chunks))
		seen[ref.CVID] = true
	}

	byID, order := types.CandidateChunks(chunks)
	for _, cvID := range order {
		if seen[cvID] {
			continue
		}
		rt.Results = append(rt.Results, searchResult(types.CandidateName(byID[cvID], cvID), cvID, chunks))
	}
	return rt
}

// searchResult assembles one hit, using the candidate's best chunk for snippet and
// relevance.
func searchResult(name, cvID string, chunks []types.Chunk) types.SearchResult {
	res := types.SearchResult{CandidateName: name, CVID: cvID}
	for _, c := range chunks {
		if c.CVID != cvID {
			continue
		}
		if c.RelevanceScore >= res.RelevanceScore {
			res.RelevanceScore = c.RelevanceScore
			res.Snippet = snippet(c.Content, 160)
		}
		if res.CandidateName == "" {
			res.CandidateName = c.CandidateName
		}
	}
	return res
}

// snippet truncates content to limit runes on a word boundary.
func snippet(content string, limit int) string {
	content = strings.Join(strings.Fields(content), " ")
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	cut := string(runes[:limit])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}

// FormatTable renders comparison table data as markdown.
func FormatTable(td types.TableData) string {
	if len(td.Headers) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("| " + strings.Join(td.Headers, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat("---|", len(td.Headers)) + "\n")
	for _, row := range td.Rows {
		cells := make([]string, len(td.Headers))
		for i, h := range td.Headers {
			cells[i] = row.Columns[h]
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatSearchResults renders the hit list.
func FormatSearchResults(rt types.ResultsTable) string {
	if len(rt.Results) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("**Results**\n")
	for _, r := range rt.Results {
		b.WriteString(fmt.Sprintf("- %s", r.CandidateName))
		if r.Snippet != "" {
			b.WriteString(": " + r.Snippet)
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
