package vcard

// attributeInstance is one uniquified (by value) occurrence of a property
// name across a set of records, with its parameters unioned in.
type attributeInstance struct {
	Value  Value
	Params *Params
}

// AddAttribute folds prop into instances, uniquifying by structural value
// equality and unioning parameters on a match (§4.7).
func AddAttribute(instances []*attributeInstance, prop *Property) []*attributeInstance {
	for _, inst := range instances {
		if inst.Value.Equal(prop.Value) {
			inst.Params.MergeFrom(prop.Params)
			return instances
		}
	}
	return append(instances, &attributeInstance{Value: prop.Value, Params: prop.Params.Clone()})
}

// CollectAttributes produces a mapping property-name -> ordered,
// value-deduplicated instances, aggregated across every record (VERSION is
// always skipped), plus the first-seen order of the property names
// themselves so BuildRecord can reconstruct a record deterministically
// instead of ranging over the map directly.
func CollectAttributes(records []*Record) (map[string][]*attributeInstance, []string) {
	attrs := map[string][]*attributeInstance{}
	var order []string
	seen := map[string]bool{}
	for _, r := range records {
		for _, p := range r.Properties {
			if p.Name == "VERSION" {
				continue
			}
			attrs[p.Name] = AddAttribute(attrs[p.Name], p)
			if !seen[p.Name] {
				seen[p.Name] = true
				order = append(order, p.Name)
			}
		}
	}
	return attrs, order
}

// appendIfMissing adds name to order unless it is already present.
func appendIfMissing(order []string, name string) []string {
	for _, n := range order {
		if n == name {
			return order
		}
	}
	return append(order, name)
}

// SetName harmonizes the aggregated FN/N/EMAIL-derived names in attrs,
// replacing FN and N in place with the selected most-relevant name (§4.7).
// It returns order with FN/N guaranteed present, for records that gained a
// name where none existed before.
func SetName(attrs map[string][]*attributeInstance, order []string, opts Options) ([]string, error) {
	var candidates []string
	for _, inst := range attrs["FN"] {
		candidates = append(candidates, valueText(inst.Value))
	}
	for _, inst := range attrs["N"] {
		candidates = append(candidates, valueText(inst.Value))
	}
	for _, inst := range attrs["EMAIL"] {
		if m := displayAddrRe.FindStringSubmatch(inst.Value.Scalar); m != nil && m[1] != "" {
			candidates = append(candidates, SanitizeName(m[1]))
		}
	}

	selected, err := SelectMostRelevantName(candidates)
	if err != nil {
		return order, err
	}

	delete(attrs, "FN")
	delete(attrs, "N")
	attrs["FN"] = []*attributeInstance{{Value: NewScalar(selected), Params: NewParams()}}
	attrs["N"] = []*attributeInstance{{Value: NewNameValue(BuildStructuredName(selected, opts)), Params: NewParams()}}
	order = appendIfMissing(order, "FN")
	order = appendIfMissing(order, "N")
	return order, nil
}

// BuildRecord reconstructs a Record from aggregated attributes, iterating
// order rather than attrs directly so the resulting property sequence is
// deterministic across runs on identical input (§4.7, §5).
func BuildRecord(attrs map[string][]*attributeInstance, order []string) *Record {
	r := NewRecord()
	for _, name := range order {
		instances, ok := attrs[name]
		if !ok {
			continue
		}
		if singleInstanceProperties[name] && len(instances) > 0 {
			inst := instances[0]
			p := NewProperty(name, inst.Value)
			p.Params = inst.Params.Clone()
			r.Add(p)
			continue
		}
		for _, inst := range instances {
			p := NewProperty(name, inst.Value)
			p.Params = inst.Params.Clone()
			r.Add(p)
		}
	}
	return r
}

// Merge concatenates every property instance of others onto base, with no
// deduplication pass (§4.7's "simple variant").
func Merge(base *Record, others ...*Record) {
	for _, other := range others {
		for _, p := range other.Properties {
			if p.Name == "VERSION" {
				continue
			}
			clone := NewProperty(p.Name, p.Value)
			clone.Params = p.Params.Clone()
			base.Add(clone)
		}
	}
}

// Deduplicate rebuilds record as a single canonical instance of itself,
// folding duplicate property values and harmonizing its name.
func Deduplicate(record *Record, opts Options) (*Record, error) {
	attrs, order := CollectAttributes([]*Record{record})
	order, err := SetName(attrs, order, opts)
	if err != nil {
		return nil, err
	}
	return BuildRecord(attrs, order), nil
}
