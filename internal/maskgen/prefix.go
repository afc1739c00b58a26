package maskgen

// PrefixTrie records patterns proven constant. A candidate is covered when
// one of them is a prefix of it, where a recorded Wildcard also matches any
// Key at the same position.
type PrefixTrie struct {
	root segNode[bool]
	size int
}

func NewPrefixTrie() *PrefixTrie { return &PrefixTrie{} }

// Insert marks p as a constant prefix.
func (t *PrefixTrie) Insert(p Path) {
	n := t.root.insert(p)
	if !n.val {
		n.val = true
		t.size++
	}
}

// Len returns the number of distinct prefixes inserted.
func (t *PrefixTrie) Len() int { return t.size }

// Covers reports whether some inserted prefix subsumes candidate.
func (t *PrefixTrie) Covers(candidate Path) bool {
	reach := []*segNode[bool]{&t.root}
	for _, s := range candidate {
		var next []*segNode[bool]
		for _, n := range reach {
			if n.val {
				return true
			}
			switch s.Kind {
			case SegmentIndex:
				if n.index != nil {
					next = append(next, n.index)
				}
			case SegmentWildcard:
				if n.wildcard != nil {
					next = append(next, n.wildcard)
				}
			default:
				if c := n.keys[s.Key]; c != nil {
					next = append(next, c)
				}
				if n.wildcard != nil {
					next = append(next, n.wildcard)
				}
			}
		}
		if len(next) == 0 {
			return false
		}
		reach = next
	}
	for _, n := range reach {
		if n.val {
			return true
		}
	}
	return false
}
