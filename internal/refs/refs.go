// Package refs scans model output for candidate reference markers.
//
// The generation service links candidates as [Name](cv:cv_id), optionally wrapped
// in bold markers. Refs are how free text is tied back to concrete chunks.
package refs

import "strings"

// Ref is one candidate reference found in text.
type Ref struct {
	Name string
	CVID string
}

const scheme = "cv:"

// ExtractAll returns every candidate reference in raw text, in order of appearance,
// de-duplicated by cv_id (first mention wins).
func ExtractAll(raw string) []Ref {
	var out []Ref
	seen := make(map[string]bool)

	for i := 0; i < len(raw); i++ {
		if raw[i] != '[' {
			continue
		}
		closeBracket := strings.IndexByte(raw[i:], ']')
		if closeBracket < 0 {
			break
		}
		closeBracket += i
		if closeBracket+1 >= len(raw) || raw[closeBracket+1] != '(' {
			continue
		}
		closeParen := strings.IndexByte(raw[closeBracket:], ')')
		if closeParen < 0 {
			continue
		}
		closeParen += closeBracket

		target := raw[closeBracket+2 : closeParen]
		if !strings.HasPrefix(target, scheme) {
			i = closeBracket
			continue
		}
		name := strings.TrimSpace(strings.Trim(raw[i+1:closeBracket], "*"))
		id := strings.TrimSpace(target[len(scheme):])
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, Ref{Name: name, CVID: id})
		}
		i = closeParen
	}
	return out
}

// First returns the first candidate reference, if any.
func First(raw string) (Ref, bool) {
	all := ExtractAll(raw)
	if len(all) == 0 {
		return Ref{}, false
	}
	return all[0], true
}

// Strip removes all candidate reference markup from text, leaving just the names.
func Strip(raw string) string {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '[' {
			b.WriteByte(raw[i])
			continue
		}
		closeBracket := strings.IndexByte(raw[i:], ']')
		if closeBracket < 0 {
			b.WriteString(raw[i:])
			break
		}
		closeBracket += i
		if closeBracket+1 >= len(raw) || raw[closeBracket+1] != '(' {
			b.WriteByte(raw[i])
			continue
		}
		closeParen := strings.IndexByte(raw[closeBracket:], ')')
		if closeParen < 0 {
			b.WriteByte(raw[i])
			continue
		}
		closeParen += closeBracket
		if !strings.HasPrefix(raw[closeBracket+2:closeParen], scheme) {
			b.WriteByte(raw[i])
			continue
		}
		b.WriteString(raw[i+1 : closeBracket])
		i = closeParen
	}
	return b.String()
}
