package vcard

import "strings"

// Normalize mutates r in place per §4.2: it drops VERSION, fills in a
// missing FN/N from selectedName, optionally relocates parenthetical name
// content into NOTE, and cleans up EMAIL/TEL values.
func Normalize(r *Record, selectedName string, opts Options) {
	r.RemoveAll("VERSION")

	if !opts.NoOverwriteNames {
		r.RemoveAll("FN")
		r.RemoveAll("N")
	}

	if !r.Has("FN") {
		r.Add(NewProperty("FN", NewScalar(selectedName)))
	}
	if !r.Has("N") {
		r.Add(NewProperty("N", NewNameValue(BuildStructuredName(selectedName, opts))))
	}

	if opts.MoveNameParenthBracesToNote {
		for _, name := range []string{"FN", "N"} {
			for _, p := range r.All(name) {
				text := CloseParenthesesOrBraces(valueText(p.Value))
				if !bracketSegmentRe.MatchString(text) {
					continue
				}
				matches := bracketSegmentRe.FindAllStringSubmatch(text, -1)
				var inner []string
				for _, m := range matches {
					inner = append(inner, strings.TrimSpace(m[1]))
				}
				note := strings.TrimSpace(strings.Join(inner, " "))
				if note != "" {
					r.Add(NewProperty("NOTE", NewScalar(note)))
				}
				outer := strings.TrimSpace(collapseDoubleSpaces(bracketSegmentRe.ReplaceAllString(text, "")))
				if name == "N" {
					p.Value = NewNameValue(BuildStructuredName(outer, opts))
				} else {
					p.Value = NewScalar(outer)
				}
			}
		}
	}

	var keptEmails []*Property
	for _, p := range r.All("EMAIL") {
		v := strings.ToLower(strings.TrimSpace(p.Value.Scalar))
		if strings.HasSuffix(v, "@nowhere.invalid") {
			continue
		}
		if !opts.NoRemoveNameInEmail {
			if m := displayAddrRe.FindStringSubmatch(v); m != nil {
				v = m[2]
			}
		}
		p.Value = NewScalar(v)
		keptEmails = append(keptEmails, p)
	}
	r.RemoveAll("EMAIL")
	for _, p := range keptEmails {
		r.Add(p)
	}

	for _, p := range r.All("TEL") {
		v := strings.ReplaceAll(p.Value.Scalar, " ", "")
		v = strings.ReplaceAll(v, "\t", "")
		if opts.FrenchTweaks && strings.HasPrefix(v, "+33") {
			v = "0" + strings.TrimPrefix(v, "+33")
		}
		p.Value = NewScalar(v)
	}
}
