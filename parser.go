package vcard

import (
	"fmt"
	"strings"
)

// Parse splits strict vCard 3.0 text (as produced by Fix) into records. It
// is the in-module replacement for the "external parser adapter" the
// distilled spec assumed away: a generic property/parameter model rather
// than the teacher's reflection-bound schema decoder (see SPEC_FULL.md
// REDESIGN FLAGS).
func Parse(text string) ([]*Record, error) {
	lines := splitLogicalLines(text)

	var records []*Record
	var current *Record

	for _, line := range lines {
		if line == "" {
			continue
		}
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "BEGIN:VCARD"):
			if current != nil {
				return nil, fmt.Errorf("%w: nested BEGIN:VCARD", ErrMalformedInput)
			}
			current = NewRecord()
			continue
		case strings.HasPrefix(upper, "END:VCARD"):
			if current == nil {
				return nil, fmt.Errorf("%w: END:VCARD without matching BEGIN", ErrMalformedInput)
			}
			records = append(records, current)
			current = nil
			continue
		}

		if current == nil {
			return nil, fmt.Errorf("%w: property line outside of BEGIN/END block: %q", ErrMalformedInput, line)
		}

		prop, err := parsePropertyLine(line)
		if err != nil {
			return nil, err
		}
		if prop == nil { // VERSION: dropped, never kept on the internal representation
			continue
		}
		current.Add(prop)
	}

	if current != nil {
		return nil, fmt.Errorf("%w: missing END:VCARD", ErrMalformedInput)
	}

	return records, nil
}

// splitLogicalLines normalizes line endings and unfolds RFC 6350 folded
// continuation lines (a line starting with a single space or tab continues
// the previous one).
func splitLogicalLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	raw := strings.Split(text, "\n")
	var lines []string
	for _, l := range raw {
		if (strings.HasPrefix(l, " ") || strings.HasPrefix(l, "\t")) && len(lines) > 0 {
			lines[len(lines)-1] += l[1:]
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// parsePropertyLine parses one unfolded "NAME;PARAM=V1,V2;...:VALUE" line.
// Returns (nil, nil) for a VERSION line, since the internal representation
// never carries VERSION (the encoder re-injects it).
func parsePropertyLine(line string) (*Property, error) {
	colon := indexUnescapedColon(line)
	if colon < 0 {
		return nil, fmt.Errorf("%w: property line has no ':' separator: %q", ErrMalformedInput, line)
	}
	header := line[:colon]
	rawValue := line[colon+1:]

	segments := splitUnescaped(header, ';')
	if len(segments) == 0 || segments[0] == "" {
		return nil, fmt.Errorf("%w: property line has no name: %q", ErrMalformedInput, line)
	}
	name := strings.ToUpper(segments[0])
	if name == "VERSION" {
		return nil, nil
	}

	params := NewParams()
	for _, seg := range segments[1:] {
		if seg == "" {
			continue
		}
		eq := strings.IndexByte(seg, '=')
		var pname, pvalues string
		if eq < 0 {
			// bare legacy token, treated as a TYPE member
			pname, pvalues = "TYPE", seg
		} else {
			pname, pvalues = strings.ToUpper(seg[:eq]), seg[eq+1:]
		}
		for _, v := range strings.Split(pvalues, ",") {
			if v != "" {
				params.Add(pname, v)
			}
		}
	}

	value := buildValue(name, rawValue)
	return &Property{Name: name, Value: value, Params: params}, nil
}

func buildValue(name, rawValue string) Value {
	switch name {
	case "N":
		segs := splitUnescaped(rawValue, ';')
		get := func(i int) string {
			if i < len(segs) {
				return unescapeValue(segs[i])
			}
			return ""
		}
		return NewNameValue(StructuredName{
			Family: get(0),
			Given:  get(1),
			Suffix: get(4),
		})
	case "ORG":
		segs := splitUnescaped(rawValue, ';')
		items := make([]string, 0, len(segs))
		for _, s := range segs {
			items = append(items, unescapeValue(s))
		}
		return NewListValue(items)
	default:
		return NewScalar(unescapeValue(rawValue))
	}
}

// indexUnescapedColon finds the first ':' not preceded by an odd number of
// backslashes.
func indexUnescapedColon(s string) int {
	backslashes := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			backslashes++
		case ':':
			if backslashes%2 == 0 {
				return i
			}
			backslashes = 0
		default:
			backslashes = 0
		}
	}
	return -1
}

// splitUnescaped splits s on sep, ignoring occurrences preceded by an odd
// number of backslashes. Escapes are left intact in the returned segments;
// callers that need literal text call unescapeValue afterwards.
func splitUnescaped(s string, sep byte) []string {
	var out []string
	start := 0
	backslashes := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			backslashes++
		case sep:
			if backslashes%2 == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
			backslashes = 0
		default:
			backslashes = 0
		}
	}
	out = append(out, s[start:])
	return out
}

// unescapeValue reverses RFC 6350 backslash-escaping: \\, \;, \,, \n (and
// \N) become their literal characters.
func unescapeValue(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case '\\', ';', ',':
				b.WriteByte(s[i+1])
				i++
				continue
			case 'n', 'N':
				b.WriteByte('\n')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
