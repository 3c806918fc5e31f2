package extract

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jonathan/talent-query/internal/types"
)

// Claim types recognized by the verification pipeline.
var claimTypeKeywords = []struct {
	claimType string
	keywords  []string
}{
	{"certification", []string{"certification", "certified", "certificate", "license"}},
	{"education", []string{"degree", "bachelor", "master", "phd", "graduated", "education", "university"}},
	{"experience", []string{"years", "experience", "worked", "tenure"}},
	{"employment", []string{"works at", "worked at", "employed", "company", "employer"}},
	{"skill", []string{"knows", "skill", "proficient", "uses"}},
}

// ParseClaim decomposes a verification query into subject, claim type and claim
// value. The subject is a candidate name recognizable from the chunk set when
// possible, else the first capitalized token after the verification verb.
func ParseClaim(query string, chunks []types.Chunk) types.Claim {
	claim := types.Claim{Subject: claimSubject(query, chunks)}

	lower := strings.ToLower(query)
	for _, ct := range claimTypeKeywords {
		for _, kw := range ct.keywords {
			if strings.Contains(lower, kw) {
				claim.ClaimType = ct.claimType
				break
			}
		}
		if claim.ClaimType != "" {
			break
		}
	}
	if claim.ClaimType == "" {
		claim.ClaimType = "skill"
	}

	claim.ClaimValue = claimValue(query, claim.Subject)
	return claim
}

// claimSubject finds the candidate the claim is about.
func claimSubject(query string, chunks []types.Chunk) string {
	lower := strings.ToLower(query)
	for _, c := range chunks {
		if c.CandidateName == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(c.CandidateName)) {
			return c.CandidateName
		}
		// First-name match is enough for a bound subject.
		first := strings.Fields(c.CandidateName)
		if len(first) > 0 && containsWord(lower, strings.ToLower(first[0])) {
			return c.CandidateName
		}
	}

	// Fallback: first capitalized word that is not the verification verb itself.
	for i, f := range strings.Fields(query) {
		if i == 0 {
			continue
		}
		r := []rune(f)
		if len(r) > 1 && unicode.IsUpper(r[0]) {
			return strings.Trim(f, ".,;:!?")
		}
	}
	return ""
}

// claimValue extracts the fact being claimed: the query minus verification verbs,
// the subject and filler words.
func claimValue(query, subject string) string {
	drop := map[string]bool{
		"verify": true, "confirm": true, "check": true, "that": true, "whether": true,
		"if": true, "has": true, "have": true, "had": true, "a": true, "an": true,
		"the": true, "is": true, "does": true, "really": true, "truly": true,
	}
	subjectWords := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(subject)) {
		subjectWords[w] = true
	}

	var kept []string
	for _, f := range strings.Fields(query) {
		w := strings.ToLower(strings.Trim(f, ".,;:!?"))
		if w == "" || drop[w] || subjectWords[w] {
			continue
		}
		kept = append(kept, strings.Trim(f, ".,;:!?"))
	}
	return strings.Join(kept, " ")
}

// FindEvidence searches the claim subject's chunks for text supporting or
// contradicting the claim. Every item carries a relevance weight taken from the
// chunk's retrieval score.
func FindEvidence(claim types.Claim, chunks []types.Chunk) (types.Evidence, []types.EvidenceItem) {
	supporting := []types.EvidenceItem{}
	contradicting := []types.EvidenceItem{}

	terms := claimTerms(claim)
	for _, c := range chunks {
		if claim.Subject != "" && !strings.EqualFold(c.CandidateName, claim.Subject) {
			continue
		}
		content := strings.ToLower(c.Content)

		for _, term := range terms {
			idx := strings.Index(content, term)
			if idx < 0 {
				continue
			}
			item := types.EvidenceItem{
				Source:    evidenceSource(c),
				Excerpt:   excerptAround(c.Content, idx, 120),
				Relevance: relevanceOf(c),
			}
			if negatedBefore(content, idx) {
				contradicting = append(contradicting, item)
			} else {
				supporting = append(supporting, item)
			}
			break
		}

		// Typed metadata is evidence too.
		if item, ok := metadataEvidence(claim, c); ok {
			supporting = append(supporting, item)
		}
	}

	all := append(append([]types.EvidenceItem{}, supporting...), contradicting...)
	return types.Evidence{Evidence: all, TotalFound: len(all)}, contradicting
}

// DecideVerdict issues the closed-set verdict. CONTRADICTED requires affirmative
// inconsistency, never mere absence; no evidence at all is NOT_FOUND.
func DecideVerdict(claim types.Claim, ev types.Evidence, contradicting []types.EvidenceItem) types.Verdict {
	supportWeight := 0.0
	for _, item := range ev.Evidence {
		supportWeight += item.Relevance
	}
	for _, item := range contradicting {
		supportWeight -= 2 * item.Relevance
	}

	switch {
	case len(contradicting) > 0:
		return types.Verdict{
			Status:      types.VerdictContradicted,
			Confidence:  clamp01(0.6 + 0.1*float64(len(contradicting))),
			Explanation: fmt.Sprintf("found %d statement(s) inconsistent with the claim %q", len(contradicting), claim.ClaimValue),
		}
	case ev.TotalFound == 0:
		return types.Verdict{
			Status:      types.VerdictNotFound,
			Confidence:  0.3,
			Explanation: fmt.Sprintf("no evidence for %q found in any retrieved document", claim.ClaimValue),
		}
	case supportWeight >= 1.0 || ev.TotalFound >= 2:
		return types.Verdict{
			Status:      types.VerdictConfirmed,
			Confidence:  clamp01(0.7 + supportWeight/10),
			Explanation: fmt.Sprintf("%d piece(s) of evidence support the claim", ev.TotalFound),
		}
	default:
		return types.Verdict{
			Status:      types.VerdictPartial,
			Confidence:  clamp01(0.4 + supportWeight/5),
			Explanation: "evidence found is limited; the claim is only partially supported",
		}
	}
}

// claimTerms returns the searchable fragments of a claim value, longest first.
func claimTerms(claim types.Claim) []string {
	value := strings.ToLower(strings.TrimSpace(claim.ClaimValue))
	if value == "" {
		return nil
	}
	terms := []string{value}
	for _, f := range strings.Fields(value) {
		if len(f) >= 3 && f != claim.ClaimType {
			terms = append(terms, f)
		}
	}
	return terms
}

// negatedBefore reports whether the text immediately before idx negates the match.
func negatedBefore(content string, idx int) bool {
	start := idx - 40
	if start < 0 {
		start = 0
	}
	window := content[start:idx]
	for _, neg := range []string{"no ", "not ", "never ", "without ", "lacks ", "does not have", "has no"} {
		if strings.Contains(window, neg) {
			return true
		}
	}
	return false
}

// metadataEvidence checks the chunk's typed metadata for the claim.
func metadataEvidence(claim types.Claim, c types.Chunk) (types.EvidenceItem, bool) {
	value := strings.ToLower(claim.ClaimValue)
	var hit string
	switch claim.ClaimType {
	case "certification":
		for _, cert := range c.Metadata.Certifications {
			if containsEither(value, cert) {
				hit = "certification on record: " + cert
			}
		}
	case "education":
		if c.Metadata.EducationLevel != "" && containsEither(value, c.Metadata.EducationLevel) {
			hit = "education level on record: " + c.Metadata.EducationLevel
		}
	case "skill":
		for _, s := range c.Metadata.Skills {
			if containsEither(value, s) {
				hit = "skill on record: " + s
			}
		}
	case "employment":
		if c.Metadata.CurrentCompany != "" && strings.Contains(value, strings.ToLower(c.Metadata.CurrentCompany)) {
			hit = "current employer on record: " + c.Metadata.CurrentCompany
		}
	}
	if hit == "" {
		return types.EvidenceItem{}, false
	}
	return types.EvidenceItem{Source: evidenceSource(c), Excerpt: hit, Relevance: relevanceOf(c)}, true
}

func containsEither(a, b string) bool {
	al, bl := strings.ToLower(a), strings.ToLower(b)
	return al != "" && bl != "" && (strings.Contains(al, bl) || strings.Contains(bl, al))
}

func containsWord(text, word string) bool {
	for _, f := range strings.Fields(text) {
		if strings.Trim(f, ".,;:!?\"'") == word {
			return true
		}
	}
	return false
}

func evidenceSource(c types.Chunk) string {
	if c.Filename != "" {
		return c.Filename
	}
	if c.SectionType != "" {
		return c.SectionType
	}
	return c.CVID
}

func relevanceOf(c types.Chunk) float64 {
	if c.RelevanceScore > 0 {
		return clamp01(c.RelevanceScore)
	}
	return 0.5
}

func excerptAround(content string, idx, radius int) string {
	start := idx - radius
	if start < 0 {
		start = 0
	}
	end := idx + radius
	if end > len(content) {
		end = len(content)
	}
	return strings.TrimSpace(strings.ToValidUTF8(content[start:end], ""))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// FormatClaim renders the parsed claim.
func FormatClaim(c types.Claim) string {
	if c.Subject == "" && c.ClaimValue == "" {
		return ""
	}
	return fmt.Sprintf("**Claim**: %s, %s (%s)", c.Subject, c.ClaimValue, c.ClaimType)
}

// FormatEvidence renders the evidence list.
func FormatEvidence(ev types.Evidence) string {
	if ev.TotalFound == 0 {
		return "No evidence found."
	}
	var b strings.Builder
	b.WriteString("**Evidence**\n")
	for _, item := range ev.Evidence {
		b.WriteString(fmt.Sprintf("- [%s] %s\n", item.Source, item.Excerpt))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatVerdict renders the verdict line.
func FormatVerdict(v types.Verdict) string {
	if v.Status == "" {
		return ""
	}
	return fmt.Sprintf("**Verdict**: %s (confidence %.2f): %s", v.Status, v.Confidence, v.Explanation)
}
