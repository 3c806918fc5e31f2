// Package extract is the domain extractor library: a family of single-purpose,
// stateless extractors that pull typed data out of raw generated text and the
// retrieved chunk set. Every extractor shares the same contract: it degrades to an
// explicit empty default when its section is absent or malformed, and it never
// returns an error or panics on any input.
package extract

import "strings"

// headerTitle reports whether a line is a section header and returns its bare
// title. Recognized forms: markdown headings ("## Skills"), bold headers
// ("**Skills**", "**Skills:**") and plain labeled lines ("Skills:").
func headerTitle(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}

	if strings.HasPrefix(trimmed, "#") {
		return strings.TrimSpace(strings.TrimLeft(trimmed, "# ")), true
	}

	if strings.HasPrefix(trimmed, "**") && strings.HasSuffix(strings.TrimSuffix(trimmed, ":"), "**") {
		title := strings.TrimSuffix(trimmed, ":")
		title = strings.TrimPrefix(title, "**")
		title = strings.TrimSuffix(title, "**")
		return strings.TrimSuffix(strings.TrimSpace(title), ":"), true
	}

	// Plain "Label:" lines. Require a short label so prose sentences containing a
	// colon are not mistaken for headers.
	if strings.HasSuffix(trimmed, ":") && !strings.HasPrefix(trimmed, "-") && !strings.HasPrefix(trimmed, "*") {
		label := strings.TrimSuffix(trimmed, ":")
		if len(strings.Fields(label)) <= 4 {
			return strings.TrimSpace(label), true
		}
	}

	return "", false
}

// bulletItem reports whether a line is a bullet or numbered list item and returns
// its content with markup stripped.
func bulletItem(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range []string{"- ", "* ", "• ", "+ "} {
		if strings.HasPrefix(trimmed, prefix) {
			return strings.TrimSpace(trimmed[len(prefix):]), true
		}
	}
	// Numbered items: "1. foo", "2) foo".
	for i, r := range trimmed {
		if r >= '0' && r <= '9' {
			continue
		}
		if i > 0 && (r == '.' || r == ')') && i+1 < len(trimmed) && trimmed[i+1] == ' ' {
			return strings.TrimSpace(trimmed[i+2:]), true
		}
		break
	}
	return "", false
}

// matchesAlias reports whether a header title matches any alias, case-insensitively
// and by substring (so "Key Highlights" matches alias "highlights").
func matchesAlias(title string, aliases []string) bool {
	lower := strings.ToLower(title)
	for _, a := range aliases {
		if strings.Contains(lower, strings.ToLower(a)) {
			return true
		}
	}
	return false
}

// sectionItems collects the bullet items under the first section header matching
// one of the aliases. Collection stops at the next header or at the end of text.
// Returns nil when no matching section exists.
func sectionItems(raw string, aliases ...string) []string {
	lines := strings.Split(raw, "\n")
	var items []string
	inSection := false

	for _, line := range lines {
		if title, ok := headerTitle(line); ok {
			if inSection {
				break
			}
			inSection = matchesAlias(title, aliases)
			continue
		}
		if !inSection {
			continue
		}
		if item, ok := bulletItem(line); ok && item != "" {
			items = append(items, item)
		}
	}
	return items
}

// sectionText collects the prose under the first section header matching one of
// the aliases, up to the next header. Bullet lines are kept verbatim. Returns empty
// string when no matching section exists.
func sectionText(raw string, aliases ...string) string {
	lines := stripBlockSpans(strings.Split(raw, "\n"))
	var collected []string
	inSection := false

	for _, line := range lines {
		if title, ok := headerTitle(line); ok {
			if inSection {
				break
			}
			inSection = matchesAlias(title, aliases)
			continue
		}
		if inSection {
			collected = append(collected, line)
		}
	}
	return strings.TrimSpace(strings.Join(collected, "\n"))
}

// allBullets returns every bullet item in the text regardless of section.
func allBullets(raw string) []string {
	var items []string
	for _, line := range strings.Split(raw, "\n") {
		if item, ok := bulletItem(line); ok && item != "" {
			items = append(items, item)
		}
	}
	return items
}

// firstParagraph returns the first non-empty prose paragraph, skipping headers,
// bullets, table rows and block spans.
func firstParagraph(raw string) string {
	var para []string
	for _, line := range stripBlockSpans(strings.Split(raw, "\n")) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(para) > 0 {
				break
			}
			continue
		}
		if _, isHeader := headerTitle(trimmed); isHeader {
			if len(para) > 0 {
				break
			}
			continue
		}
		if _, isBullet := bulletItem(trimmed); isBullet || strings.HasPrefix(trimmed, "|") {
			if len(para) > 0 {
				break
			}
			continue
		}
		para = append(para, trimmed)
	}
	return strings.Join(para, " ")
}

// stripBlockSpans drops ":::kind" block spans from the lines the section scanners
// consider. Those spans belong to the block extractor; a pipeline that has not
// consumed them yet must not see their markers or bodies as prose. A bare ":::"
// closes the open span, ":::kind" opens one, and a span missing its close runs to
// the end of the text, matching the block grammar's truncation tolerance.
func stripBlockSpans(lines []string) []string {
	kept := make([]string, 0, len(lines))
	inBlock := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, ":::") {
			inBlock = trimmed != ":::"
			continue
		}
		if inBlock {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

// dedupeStrings removes duplicates case-insensitively, preserving first-seen order.
func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(s))
	}
	return out
}
