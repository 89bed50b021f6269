package vcard

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

var iceTokenRe = regexp.MustCompile(`(?i)\bICE[0-9]*\b`)
var trailingIndexRe = regexp.MustCompile(`\s*\([0-9]+\)\s*$`)
var bracketSegmentRe = regexp.MustCompile(`[(\[]([^)\]]*)[)\]]`)
var displayAddrRe = regexp.MustCompile(`^\s*"?([^"<]*?)"?\s*<([^>]+)>\s*$`)

var emailPrefixes = []string{
	"contact", "info", "admin", "hello", "job", "question", "support",
	"service", "sales", "deal", "unsubscribe", "return", "credit",
	"recrute", "desinscription", "sav", "servicecommercial", "relationclient",
}

// CollectCandidateNames gathers a deduplicated ordered list of candidate
// display names from a record's FN, N, EMAIL, ORG and TEL values (§4.3).
func CollectCandidateNames(r *Record) []string {
	var out []string
	seen := map[string]bool{}
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	for _, name := range []string{"FN", "N"} {
		for _, p := range r.All(name) {
			raw := valueText(p.Value)
			raw = CloseParenthesesOrBraces(raw)
			if isOnlyNonAlphanumeric(raw) {
				continue
			}
			if n := countByte(raw, '@'); n == 1 {
				built, err := BuildNameFromEmail(raw)
				if err == nil {
					add(built)
				}
				continue
			}
			add(SanitizeName(raw))
		}
	}

	for _, p := range r.All("EMAIL") {
		if m := displayAddrRe.FindStringSubmatch(p.Value.Scalar); m != nil && m[1] != "" {
			add(SanitizeName(m[1]))
		}
	}

	if len(out) == 0 {
		for _, p := range r.All("EMAIL") {
			addr := strings.TrimSpace(p.Value.Scalar)
			if strings.HasSuffix(strings.ToLower(addr), "nowhere.invalid") {
				continue
			}
			built, err := BuildNameFromEmail(addr)
			if err == nil {
				add(built)
			}
		}
	}

	if len(out) == 0 {
		for _, p := range r.All("ORG") {
			for _, token := range p.Value.List {
				token = strings.TrimSpace(token)
				if token != "" {
					add(SanitizeName(token))
				}
			}
		}
	}

	if len(out) == 0 {
		if p := r.First("TEL"); p != nil {
			add("tel_" + strings.ReplaceAll(p.Value.Scalar, " ", ""))
		}
	}

	return out
}

// CloseParenthesesOrBraces balances a single unmatched opening '(' or '['.
func CloseParenthesesOrBraces(s string) string {
	if strings.Contains(s, "(") && !strings.Contains(s, ")") {
		trimmed := strings.TrimLeft(s, " ")
		if strings.HasPrefix(trimmed, "(") {
			s = strings.Replace(s, "(", "", 1)
		} else {
			s += ")"
		}
	}
	if strings.Contains(s, "[") && !strings.Contains(s, "]") {
		trimmed := strings.TrimLeft(s, " ")
		if strings.HasPrefix(trimmed, "[") {
			s = strings.Replace(s, "[", "", 1)
		} else {
			s += "]"
		}
	}
	return s
}

// BuildNameFromEmail derives a display name from an email address (§4.3.1).
func BuildNameFromEmail(addr string) (string, error) {
	if strings.HasSuffix(strings.ToLower(addr), "nowhere.invalid") {
		return "", ErrInvalidPlaceholderEmail
	}
	at := strings.LastIndex(addr, "@")
	if at < 0 {
		return "", ErrInvalidPlaceholderEmail
	}
	user, domain := addr[:at], addr[at+1:]

	user = stripDigits(user)
	user = strings.ReplaceAll(user, "_", " ")
	user = strings.ReplaceAll(user, "-", " ")

	lowerUser := strings.ToLower(user)
	for _, prefix := range emailPrefixes {
		if strings.HasPrefix(lowerUser, prefix) {
			domainName := domain
			if dot := strings.LastIndex(domainName, "."); dot >= 0 {
				domainName = domainName[:dot]
			}
			domainName = strings.ReplaceAll(domainName, "_", " ")
			domainName = strings.ReplaceAll(domainName, "-", " ")
			user = domainName + " - " + user
			break
		}
	}

	user = strings.ReplaceAll(user, ".", " ")
	return SanitizeName(user), nil
}

// SanitizeName normalizes a raw display name fragment (§4.3.2).
func SanitizeName(name string) string {
	original := name

	name = iceTokenRe.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, ".", " ")
	name = collapseDoubleSpaces(name)
	name = collapseDoubleSpaces(name)
	name = strings.TrimSpace(name)
	name = titleCase(name)

	if bracketSegmentRe.MatchString(original) {
		matches := bracketSegmentRe.FindAllStringSubmatch(original, -1)
		var innerParts []string
		for _, m := range matches {
			innerParts = append(innerParts, strings.TrimSpace(m[1]))
		}
		inner := titleCase(strings.TrimSpace(strings.Join(innerParts, " ")))
		outer := titleCase(strings.TrimSpace(collapseDoubleSpaces(bracketSegmentRe.ReplaceAllString(original, ""))))
		if inner == outer || TokenSortRatio(inner, outer) == 100 {
			return outer
		}
	}

	return name
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return titleCaser.String(strings.ToLower(s))
}

// SelectMostRelevantName picks the most relevant candidate name (§4.3.3).
func SelectMostRelevantName(names []string) (string, error) {
	nonEmpty := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			nonEmpty = append(nonEmpty, n)
		}
	}
	if len(nonEmpty) == 0 {
		return "", ErrEmptyCandidateList
	}

	best := nonEmpty[0]
	bestLen1 := LenWithoutParenthOrBraces(best)
	bestLen2 := LenWithoutIndex(best)
	bestHasIndex := trailingIndexRe.MatchString(best)

	for _, candidate := range nonEmpty[1:] {
		len1 := LenWithoutParenthOrBraces(candidate)
		len2 := LenWithoutIndex(candidate)
		hasIndex := trailingIndexRe.MatchString(candidate)

		better := false
		switch {
		case len1 != bestLen1:
			better = len1 > bestLen1
		case len2 != bestLen2:
			better = len2 > bestLen2
		case hasIndex != bestHasIndex:
			better = !hasIndex
		}
		if better {
			best, bestLen1, bestLen2, bestHasIndex = candidate, len1, len2, hasIndex
		}
	}

	if strings.Contains(best, "=") {
		return "", ErrUndecodedValue
	}
	return best, nil
}

// LenWithoutParenthOrBraces returns the rune length of s with any bracketed
// segments removed.
func LenWithoutParenthOrBraces(s string) int {
	stripped := bracketSegmentRe.ReplaceAllString(s, "")
	return len([]rune(strings.TrimSpace(collapseDoubleSpaces(stripped))))
}

// LenWithoutIndex returns the rune length of s with a trailing "(n)" numeric
// index suffix removed.
func LenWithoutIndex(s string) int {
	return len([]rune(trailingIndexRe.ReplaceAllString(s, "")))
}

// BuildStructuredName derives a StructuredName from a selected display name
// (§4.3.4).
func BuildStructuredName(name string, opts Options) StructuredName {
	var suffix string
	if bracketSegmentRe.MatchString(name) {
		matches := bracketSegmentRe.FindAllStringSubmatch(name, -1)
		var parts []string
		for _, m := range matches {
			parts = append(parts, strings.TrimSpace(m[1]))
		}
		suffix = strings.Join(parts, ",")
		name = strings.TrimSpace(bracketSegmentRe.ReplaceAllString(name, ""))
	}

	if idx := strings.Index(name, " - "); idx >= 0 {
		return StructuredName{Family: name[:idx], Given: strings.TrimSpace(name[idx+3:]), Suffix: suffix}
	}

	if opts.FrenchTweaks {
		if idx := strings.Index(strings.ToLower(name), " de "); idx >= 0 {
			return StructuredName{
				Family: "De " + name[:idx],
				Given:  strings.TrimSpace(name[idx+4:]),
				Suffix: suffix,
			}
		}
	}

	parts := strings.Fields(name)
	if len(parts) == 0 {
		return StructuredName{Suffix: suffix}
	}
	family := parts[len(parts)-1]
	given := strings.Join(parts[:len(parts)-1], " ")
	return StructuredName{Family: family, Given: given, Suffix: suffix}
}

func valueText(v Value) string {
	switch v.Kind {
	case ValueName:
		return collapseDoubleSpaces(strings.TrimSpace(v.Name.Family + " " + v.Name.Given + " " + v.Name.Suffix))
	case ValueList:
		return strings.Join(v.List, " ")
	default:
		return v.Scalar
	}
}

func collapseDoubleSpaces(s string) string {
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return s
}

func stripDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < '0' || r > '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func countByte(s string, b byte) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			n++
		}
	}
	return n
}

func isOnlyNonAlphanumeric(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
