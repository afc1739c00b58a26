package maskgen

import (
	"cmp"
	"slices"
)

type pathTrie = segNode[struct{}]

// GenerateCandidates returns every generalization of paths reachable in the
// document's own shape: each Key segment is either kept or replaced by a
// Wildcard, unless the wildcard would match nothing beyond the key itself.
// Output is deduplicated and sorted by length, then by canonical text, and
// does not depend on the order of paths.
func GenerateCandidates(paths []Path) []Path {
	paths = dedupePaths(paths)
	root := &pathTrie{}
	for _, p := range paths {
		root.insert(p)
	}

	type state struct {
		pos     int
		reach   []*pathTrie
		pattern Path
	}

	seen := make(map[string]struct{})
	out := make([]Path, 0, len(paths))
	for _, p := range paths {
		stack := []state{{reach: []*pathTrie{root}, pattern: Path{}}}
		for len(stack) > 0 {
			st := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if st.pos == len(p) {
				k := st.pattern.sortKey()
				if _, ok := seen[k]; !ok {
					seen[k] = struct{}{}
					out = append(out, st.pattern)
				}
				continue
			}

			seg := p[st.pos]
			switch seg.Kind {
			case SegmentKey:
				if !redundantWildcard(st.reach, seg.Key) {
					if r := wildcardReach(st.reach); len(r) > 0 {
						stack = append(stack, state{st.pos + 1, r, st.pattern.with(Wildcard())})
					}
				}
				if r := followChild(st.reach, seg); len(r) > 0 {
					stack = append(stack, state{st.pos + 1, r, st.pattern.with(seg)})
				}
			case SegmentIndex:
				if r := followChild(st.reach, seg); len(r) > 0 {
					stack = append(stack, state{st.pos + 1, r, st.pattern.with(seg)})
				}
			case SegmentWildcard:
				if r := wildcardReach(st.reach); len(r) > 0 {
					stack = append(stack, state{st.pos + 1, r, st.pattern.with(seg)})
				}
			}
		}
	}

	slices.SortFunc(out, func(a, b Path) int {
		if c := cmp.Compare(len(a), len(b)); c != 0 {
			return c
		}
		return compareText(a.orderKey(), b.orderKey())
	})
	return out
}

// redundantWildcard reports whether every reachable node has key as its only
// child, in which case a wildcard would select exactly what the key does.
func redundantWildcard(reach []*pathTrie, key string) bool {
	for _, n := range reach {
		if len(n.keys) != 1 || n.keys[key] == nil || n.wildcard != nil {
			return false
		}
	}
	return true
}

func followChild(reach []*pathTrie, s Segment) []*pathTrie {
	var next []*pathTrie
	for _, n := range reach {
		if c := n.child(s); c != nil {
			next = append(next, c)
		}
	}
	return next
}

func wildcardReach(reach []*pathTrie) []*pathTrie {
	seen := make(map[*pathTrie]struct{})
	var next []*pathTrie
	add := func(c *pathTrie) {
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		next = append(next, c)
	}
	for _, n := range reach {
		for _, c := range n.keys {
			add(c)
		}
		if n.wildcard != nil {
			add(n.wildcard)
		}
	}
	return next
}
