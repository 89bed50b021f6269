package vcard

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// TokenSortRatio is a string-similarity score in [0, 100]: split into
// whitespace tokens, sort alphabetically, rejoin, and compute the
// normalized Levenshtein similarity on the two canonicalized strings.
func TokenSortRatio(a, b string) int {
	ca := canonicalizeTokens(a)
	cb := canonicalizeTokens(b)
	if ca == "" && cb == "" {
		return 100
	}
	dist := levenshtein.ComputeDistance(ca, cb)
	maxLen := len(ca)
	if len(cb) > maxLen {
		maxLen = len(cb)
	}
	if maxLen == 0 {
		return 100
	}
	ratio := (1.0 - float64(dist)/float64(maxLen)) * 100.0
	if ratio < 0 {
		ratio = 0
	}
	return int(ratio + 0.5)
}

func canonicalizeTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// ReverseWords moves the last word of s to the front, following the
// last-token-is-family convention of BuildStructuredName: "Given Family"
// becomes "Family Given" ("John Middle Doe" becomes "Doe John Middle").
func ReverseWords(s string) string {
	parts := strings.Fields(s)
	if len(parts) < 2 {
		return s
	}
	family := parts[len(parts)-1]
	given := strings.Join(parts[:len(parts)-1], " ")
	return family + " " + given
}

// MatchApprox reports whether ref and cmp are approximately the same name
// under opts (§4.5).
func MatchApprox(ref, cmp string, opts Options) bool {
	if opts.MatchApproxRatio == 100 && TokenSortRatio(ref, cmp) == 100 {
		return true
	}

	L := opts.MatchApproxMinLength
	if len([]rune(ref)) <= L || len([]rune(cmp)) <= L {
		return false
	}

	refRev := ReverseWords(ref)
	cmpRev := ReverseWords(cmp)

	if opts.MatchApproxSameFirstLetter {
		if !sameFirstLetter(ref, cmp) && !sameFirstLetter(ref, cmpRev) && !sameFirstLetter(refRev, cmp) {
			return false
		}
	}

	if opts.MatchApproxStartswith {
		d := len([]rune(ref)) - len([]rune(cmp))
		if d >= -opts.MatchApproxMaxDistance && d < opts.MatchApproxMaxDistance {
			if strings.HasPrefix(ref, cmp) || strings.HasPrefix(cmp, ref) ||
				strings.HasPrefix(refRev, cmp) || strings.HasPrefix(cmpRev, ref) {
				return true
			}
		}
	}

	return TokenSortRatio(ref, cmp) >= opts.MatchApproxRatio
}

func sameFirstLetter(a, b string) bool {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return false
	}
	return strings.EqualFold(string(ra[0]), string(rb[0]))
}
