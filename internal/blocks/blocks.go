// Package blocks extracts delimited free-text sections from model-generated output.
//
// The grammar is deliberately small: a block opens with the literal marker
// ":::<kind>" at the start of a line and runs until the next line beginning with
// ":::" or end of text. Generation is frequently truncated, so a missing closing
// marker is tolerated. A hand-written line scanner is used instead of regular
// expressions so the tolerance rules stay explicit.
package blocks

import "strings"

// Block kinds produced by the generation service.
const (
	KindThinking   = "thinking"
	KindConclusion = "conclusion"
)

const marker = ":::"

// Extract finds the first block of the given kind in raw text. It returns the block
// body (empty if no block was found) and the text with the matched span removed.
// For the conclusion kind, an inline single-line form (":::conclusion text...") is
// accepted when the block carries no closing marker.
func Extract(raw, kind string) (body, remainder string) {
	if raw == "" || kind == "" {
		return "", raw
	}

	open := marker + kind
	lines := strings.Split(raw, "\n")

	start := -1
	inline := ""
	for i, line := range lines {
		trimmed := strings.TrimRight(line, "\r")
		if !strings.HasPrefix(trimmed, open) {
			continue
		}
		rest := trimmed[len(open):]
		// Reject markers of a longer kind, e.g. ":::conclusions" for kind
		// "conclusion". The marker must be followed by whitespace or end with the
		// line.
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}
		start = i
		inline = strings.TrimSpace(rest)
		break
	}
	if start == -1 {
		return "", raw
	}

	// Find the terminating ":::" line. Another block opener (":::kind2") also
	// terminates this block but is not consumed.
	end := len(lines)      // exclusive index of last body line
	consumedClose := false // whether lines[end] is a bare closing marker we consume
	for i := start + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, marker) {
			end = i
			consumedClose = trimmed == marker
			break
		}
	}

	bodyLines := lines[start+1 : end]
	// Inline content on the opener line joins the body only in the documented
	// single-line conclusion form, where no closing marker follows. Anywhere else
	// it is marker-line debris, not body.
	if inline != "" && kind == KindConclusion && !consumedClose {
		bodyLines = append([]string{inline}, bodyLines...)
	}
	body = strings.TrimSpace(strings.Join(bodyLines, "\n"))

	afterStart := end
	if consumedClose {
		afterStart = end + 1
	}
	remainderLines := append(append([]string{}, lines[:start]...), lines[afterStart:]...)
	remainder = strings.Join(remainderLines, "\n")
	return body, remainder
}

// ExtractAll chains extraction of a thinking block followed by a conclusion block,
// each from the already-reduced text, and returns both bodies plus the remaining
// free text.
func ExtractAll(raw string) (thinking, conclusion, remainder string) {
	thinking, remainder = Extract(raw, KindThinking)
	conclusion, remainder = Extract(remainder, KindConclusion)
	return thinking, conclusion, remainder
}
