package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaderTitle(t *testing.T) {
	tests := []struct {
		line  string
		title string
		ok    bool
	}{
		{"## Skills", "Skills", true},
		{"# Key Highlights", "Key Highlights", true},
		{"**Skills**", "Skills", true},
		{"**Skills:**", "Skills", true},
		{"Career Timeline:", "Career Timeline", true},
		{"- bullet line:", "", false},
		{"She has worked at several companies: Acme, Globex and Initech.", "", false},
		{"", "", false},
		{"plain prose line", "", false},
	}

	for _, tt := range tests {
		title, ok := headerTitle(tt.line)
		assert.Equal(t, tt.ok, ok, "line %q", tt.line)
		assert.Equal(t, tt.title, title, "line %q", tt.line)
	}
}

func TestBulletItem(t *testing.T) {
	tests := []struct {
		line string
		item string
		ok   bool
	}{
		{"- Go microservices", "Go microservices", true},
		{"* Kubernetes", "Kubernetes", true},
		{"• Terraform", "Terraform", true},
		{"1. First entry", "First entry", true},
		{"12) Twelfth entry", "Twelfth entry", true},
		{"plain text", "", false},
		{"-no space after dash", "", false},
	}

	for _, tt := range tests {
		item, ok := bulletItem(tt.line)
		assert.Equal(t, tt.ok, ok, "line %q", tt.line)
		assert.Equal(t, tt.item, item, "line %q", tt.line)
	}
}

func TestSectionItems(t *testing.T) {
	raw := `Intro paragraph.

**Key Highlights**
- Led a platform migration
- Cut infra costs by 30%

**Skills**
- Go
- Kubernetes`

	items := sectionItems(raw, "highlight")

	assert.Equal(t, []string{"Led a platform migration", "Cut infra costs by 30%"}, items)
}

func TestSectionItems_StopsAtNextHeader(t *testing.T) {
	raw := "Skills:\n- Go\n\nEducation:\n- MSc Computer Science"

	items := sectionItems(raw, "skill")

	assert.Equal(t, []string{"Go"}, items)
}

func TestSectionItems_NoSection(t *testing.T) {
	assert.Empty(t, sectionItems("Just prose, nothing labeled.", "skills"))
}

func TestSectionText(t *testing.T) {
	raw := "Analysis:\nShe is the strongest backend candidate.\nHer cloud depth stands out.\n\nConclusion:\nHire."

	got := sectionText(raw, "analysis")

	assert.Equal(t, "She is the strongest backend candidate.\nHer cloud depth stands out.", got)
}

func TestFirstParagraph(t *testing.T) {
	raw := "## Profile\n- a bullet\n\nAnna is a senior Go engineer\nwith nine years of experience.\n\nSecond paragraph."

	got := firstParagraph(raw)

	assert.Equal(t, "Anna is a senior Go engineer with nine years of experience.", got)
}

func TestFirstParagraph_Empty(t *testing.T) {
	assert.Equal(t, "", firstParagraph("## Header only\n- bullets\n| table |"))
}

func TestSectionText_SkipsBlockSpans(t *testing.T) {
	raw := "Analysis:\nShe is the strongest backend candidate.\n:::conclusion\nHire.\n:::"

	got := sectionText(raw, "analysis")

	assert.Equal(t, "She is the strongest backend candidate.", got)
}

func TestStripBlockSpans(t *testing.T) {
	lines := []string{
		"before",
		":::thinking",
		"inner reasoning",
		":::",
		"after",
		":::conclusion",
		"truncated body with no close",
	}

	assert.Equal(t, []string{"before", "after"}, stripBlockSpans(lines))
}

func TestDedupeStrings(t *testing.T) {
	got := dedupeStrings([]string{"Go", "go", " Kubernetes ", "", "Kubernetes", "Python"})

	assert.Equal(t, []string{"Go", "Kubernetes", "Python"}, got)
}
