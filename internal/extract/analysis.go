package extract

import (
	"strings"

	"github.com/jonathan/talent-query/internal/refs"
	"github.com/jonathan/talent-query/internal/types"
)

// Analysis pulls the free-text analysis section out of raw text. When no labeled
// section exists the remaining prose (headers, bullets and tables removed) is used,
// so a generation that skipped the label still yields its narrative.
func Analysis(raw string, _ []types.Chunk) string {
	if text := sectionText(raw, "analysis", "assessment", "evaluation"); text != "" {
		return refs.Strip(text)
	}
	return refs.Strip(proseOnly(raw))
}

// DirectAnswer returns the generation's direct answer to the query: a labeled
// answer section if present, else the first prose paragraph.
func DirectAnswer(raw string, _ []types.Chunk) string {
	if text := sectionText(raw, "answer", "direct answer"); text != "" {
		return refs.Strip(text)
	}
	return refs.Strip(firstParagraph(raw))
}

// QueryTerms derives search terms from the query text: lowercase tokens with
// stopwords and short fragments removed, de-duplicated in order.
func QueryTerms(query string) []string {
	var terms []string
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		tok = strings.Trim(tok, ".,;:!?\"'()[]")
		if len(tok) < 3 || stopwords[tok] {
			continue
		}
		terms = append(terms, tok)
	}
	terms = dedupeStrings(terms)
	if terms == nil {
		terms = []string{}
	}
	return terms
}

// proseOnly strips headers, bullets, table rows and block spans, keeping plain
// paragraphs.
func proseOnly(raw string) string {
	var kept []string
	for _, line := range stripBlockSpans(strings.Split(raw, "\n")) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if _, ok := headerTitle(trimmed); ok {
			continue
		}
		if _, ok := bulletItem(trimmed); ok {
			continue
		}
		if strings.HasPrefix(trimmed, "|") {
			continue
		}
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, "\n")
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "who": true,
	"has": true, "have": true, "are": true, "was": true, "can": true,
	"all": true, "any": true, "how": true, "what": true, "which": true,
	"show": true, "find": true, "list": true, "give": true, "tell": true,
	"about": true, "does": true, "candidates": true, "candidate": true,
	"that": true, "this": true, "from": true, "their": true, "them": true,
}
