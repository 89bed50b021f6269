package vcard

import "strings"

// CollectValues returns the deduplicated, insertion-ordered set of string
// values a match-attribute spec selects from a record (§4.6).
func CollectValues(r *Record, spec string) []string {
	var out []string
	seen := map[string]bool{}
	add := func(v string) {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}

	switch {
	case spec == "names":
		for _, v := range CollectValues(r, "fn") {
			add(v)
		}
		for _, v := range CollectValues(r, "n") {
			add(v)
		}
		return out

	case spec == "mobiles":
		for _, p := range r.All("TEL") {
			v := strings.ReplaceAll(p.Value.Scalar, " ", "")
			if strings.HasPrefix(v, "06") || strings.HasPrefix(v, "07") {
				add(v)
			}
		}
		return out

	case strings.Contains(spec, "_"):
		idx := strings.Index(spec, "_")
		name, filter := spec[:idx], spec[idx+1:]
		negate := strings.HasPrefix(filter, "!")
		filter = strings.TrimPrefix(filter, "!")
		filter = strings.ToUpper(filter)

		for _, p := range r.All(strings.ToUpper(name)) {
			types := p.Params.Values("TYPE")
			matches := len(types) == 1 && strings.EqualFold(types[0], filter)
			if matches != negate {
				add(valueText(p.Value))
			}
		}
		return out

	default:
		name := strings.ToUpper(spec)
		for _, p := range r.All(name) {
			switch name {
			case "N":
				add(collapseDoubleSpaces(valueText(p.Value)))
			case "ORG":
				for _, item := range p.Value.List {
					item = strings.TrimSpace(item)
					if item != "" {
						add(item)
					}
				}
			default:
				add(p.Value.Scalar)
			}
		}
		return out
	}
}
