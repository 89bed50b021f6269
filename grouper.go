package vcard

// valueIndex is an insertion-ordered map from a collected value to the
// record keys that carry it.
type valueIndex struct {
	order []string
	m     map[string][]string
}

func newValueIndex() *valueIndex {
	return &valueIndex{m: map[string][]string{}}
}

func (vi *valueIndex) get(v string) ([]string, bool) {
	list, ok := vi.m[v]
	return list, ok
}

func (vi *valueIndex) put(v string, list []string) {
	if _, existed := vi.m[v]; !existed {
		vi.order = append(vi.order, v)
	}
	vi.m[v] = list
}

// Grouper aggregates a WorkingSet of records into groups of probable
// duplicates, using exact attribute matching followed by fuzzy name
// matching (§4.4).
type Grouper struct {
	opts Options

	groups   map[string][]string // group key -> member keys, insertion order
	groupOrd []string            // group keys, insertion order
	memberOf map[string]string   // record key -> group key ("" if ungrouped)
	index    map[string]*valueIndex
}

// NewGrouper creates a Grouper configured by opts.
func NewGrouper(opts Options) *Grouper {
	return &Grouper{
		opts:     opts,
		groups:   map[string][]string{},
		memberOf: map[string]string{},
		index:    map[string]*valueIndex{},
	}
}

// Group runs both matching phases over ws and returns the resulting groups,
// the group keys in first-seen insertion order, and the keys of records that
// ended up in no group, also in insertion order. Callers must iterate
// groupOrder rather than range the groups map directly to get deterministic
// output across runs on identical input (§5).
func (g *Grouper) Group(ws *WorkingSet) (groups map[string][]string, groupOrder []string, ungroupedKeys []string, err error) {
	for _, attr := range g.opts.MatchAttributes {
		if g.index[attr] == nil {
			g.index[attr] = newValueIndex()
		}
	}

	for _, k := range ws.Keys() {
		r := ws.Get(k)
		if _, ok := g.memberOf[k]; !ok {
			g.memberOf[k] = ""
		}
		for _, attr := range g.opts.MatchAttributes {
			for _, v := range CollectValues(r, attr) {
				idx := g.index[attr]
				list, exists := idx.get(v)
				if !exists {
					idx.put(v, []string{k})
					continue
				}
				if containsStr(list, k) {
					continue
				}
				pivot := list[0]
				idx.put(v, append(list, k))
				if err := g.link(k, pivot); err != nil {
					return nil, nil, nil, err
				}
			}
		}
	}

	if !g.opts.NoMatchApprox && containsStr(g.opts.MatchAttributes, "names") {
		names := g.index["names"]
		if names == nil {
			names = newValueIndex()
		}
		pending := make(map[string][]string, len(names.order))
		for _, name := range names.order {
			pending[name], _ = names.get(name)
		}

		for i, name1 := range names.order {
			keys1 := pending[name1]
			delete(pending, name1)
			for _, name2 := range names.order[i+1:] {
				keys2, ok := pending[name2]
				if !ok {
					continue
				}
				if MatchApprox(name1, name2, g.opts) {
					key1 := keys1[0]
					key2 := keys1[0]
					if !containsStr(keys2, keys1[0]) {
						key2 = keys2[0]
					}
					if err := g.link(key1, key2); err != nil {
						return nil, nil, nil, err
					}
				}
			}
		}
	}

	var ungrouped []string
	for _, k := range ws.Keys() {
		if g.memberOf[k] == "" {
			ungrouped = append(ungrouped, k)
		}
	}

	return g.groups, g.groupOrd, ungrouped, nil
}

func (g *Grouper) link(k1, k2 string) error {
	g1 := g.memberOf[k1]
	g2 := g.memberOf[k2]
	return g.groupKeys(k1, k2, g1, g2)
}

// groupKeys implements the group-merging decision table of §4.4.
func (g *Grouper) groupKeys(k1, k2, g1, g2 string) error {
	if k1 == k2 {
		return nil
	}
	if g1 != "" && g1 == g2 {
		return nil
	}

	switch {
	case g1 == "" && g2 == "":
		key, err := SelectMostRelevantName([]string{k1, k2})
		if err != nil {
			return err
		}
		if _, exists := g.groups[key]; exists {
			return ErrGroupKeyCollision
		}
		g.groups[key] = []string{k1, k2}
		g.groupOrd = append(g.groupOrd, key)
		g.memberOf[k1] = key
		g.memberOf[k2] = key
		return nil

	case g1 == "" || g2 == "":
		existing, added := g2, k1
		if g1 != "" {
			existing, added = g1, k2
		}
		g.groups[existing] = append(g.groups[existing], added)
		g.memberOf[added] = existing
		selected := existing
		if g.opts.UpdateGroupKey {
			renamed, err := SelectMostRelevantName([]string{existing, added})
			if err != nil {
				return err
			}
			if renamed != existing {
				g.renameGroup(existing, renamed)
				selected = renamed
			}
		}
		g.memberOf[k1] = selected
		g.memberOf[k2] = selected
		return nil

	default:
		dest, src := g1, g2
		chosen, err := SelectMostRelevantName([]string{g1, g2})
		if err != nil {
			return err
		}
		if chosen == g2 {
			dest, src = g2, g1
		}
		for _, member := range g.groups[src] {
			g.groups[dest] = append(g.groups[dest], member)
			g.memberOf[member] = dest
		}
		delete(g.groups, src)
		g.removeFromOrder(src)
		g.memberOf[k1] = dest
		g.memberOf[k2] = dest
		return nil
	}
}

func (g *Grouper) renameGroup(oldKey, newKey string) {
	members := g.groups[oldKey]
	delete(g.groups, oldKey)
	g.groups[newKey] = members
	for _, m := range members {
		g.memberOf[m] = newKey
	}
	for i, k := range g.groupOrd {
		if k == oldKey {
			g.groupOrd[i] = newKey
		}
	}
}

func (g *Grouper) removeFromOrder(key string) {
	for i, k := range g.groupOrd {
		if k == key {
			g.groupOrd = append(g.groupOrd[:i], g.groupOrd[i+1:]...)
			return
		}
	}
}
