package extract

import (
	"fmt"
	"strings"

	"github.com/jonathan/talent-query/internal/refs"
	"github.com/jonathan/talent-query/internal/types"
)

// Highlights pulls the labeled highlights list out of raw text. Degrades to an
// empty list when the section is absent.
func Highlights(raw string, _ []types.Chunk) []string {
	items := sectionItems(raw, "highlight", "strength", "key point")
	return stripRefs(items)
}

// Career pulls the career timeline list out of raw text, falling back to chunk
// metadata (current role/company, experience years) when no section exists.
func Career(raw string, chunks []types.Chunk) []string {
	items := stripRefs(sectionItems(raw, "career", "experience", "work history", "employment"))
	if len(items) > 0 {
		return items
	}

	// Fallback: synthesize from retrieval metadata.
	var out []string
	for _, c := range chunks {
		m := c.Metadata
		if m.CurrentRole == "" {
			continue
		}
		entry := m.CurrentRole
		if m.CurrentCompany != "" {
			entry += " at " + m.CurrentCompany
		}
		if m.TotalExperienceYears > 0 {
			entry += fmt.Sprintf(" (%.0f years total)", m.TotalExperienceYears)
		}
		out = append(out, entry)
	}
	return dedupeStrings(out)
}

// Skills pulls the skills list out of raw text, merging in chunk metadata skills so
// a thin generation still yields a usable list.
func Skills(raw string, chunks []types.Chunk) []string {
	items := stripRefs(sectionItems(raw, "skill", "technolog", "tech stack", "competenc"))

	// Sections sometimes list comma-joined skills in a single bullet.
	var split []string
	for _, item := range items {
		if strings.Contains(item, ",") && len(item) < 200 {
			for _, part := range strings.Split(item, ",") {
				split = append(split, strings.TrimSpace(part))
			}
		} else {
			split = append(split, item)
		}
	}

	for _, c := range chunks {
		split = append(split, c.Metadata.Skills...)
	}
	return dedupeStrings(split)
}

// Credentials pulls education and certification facts out of raw text, falling back
// to chunk metadata.
func Credentials(raw string, chunks []types.Chunk) []string {
	items := stripRefs(sectionItems(raw, "credential", "education", "certification", "qualification", "degree"))
	if len(items) > 0 {
		return items
	}

	var out []string
	for _, c := range chunks {
		if c.Metadata.EducationLevel != "" {
			out = append(out, c.Metadata.EducationLevel)
		}
		out = append(out, c.Metadata.Certifications...)
	}
	return dedupeStrings(out)
}

// Summary returns a one-paragraph candidate summary: the first prose paragraph of
// the reduced text.
func Summary(raw string, _ []types.Chunk) string {
	return refs.Strip(firstParagraph(raw))
}

// FormatList renders a titled bullet list, or empty string for an empty list.
func FormatList(title string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("**" + title + "**\n")
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func stripRefs(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, refs.Strip(item))
	}
	return out
}
