package maskgen

import "slices"

// segNode is a trie node keyed by segment identity: named keys branch
// through a map, index and wildcard each have a single slot.
type segNode[T any] struct {
	keys     map[string]*segNode[T]
	index    *segNode[T]
	wildcard *segNode[T]
	val      T
}

func (n *segNode[T]) child(s Segment) *segNode[T] {
	switch s.Kind {
	case SegmentIndex:
		return n.index
	case SegmentWildcard:
		return n.wildcard
	default:
		return n.keys[s.Key]
	}
}

func (n *segNode[T]) ensureChild(s Segment) *segNode[T] {
	if c := n.child(s); c != nil {
		return c
	}
	c := &segNode[T]{}
	switch s.Kind {
	case SegmentIndex:
		n.index = c
	case SegmentWildcard:
		n.wildcard = c
	default:
		if n.keys == nil {
			n.keys = make(map[string]*segNode[T])
		}
		n.keys[s.Key] = c
	}
	return c
}

// insert walks p from n, creating nodes as needed, and returns the last one.
func (n *segNode[T]) insert(p Path) *segNode[T] {
	cur := n
	for _, s := range p {
		cur = cur.ensureChild(s)
	}
	return cur
}

func (n *segNode[T]) childCount() int {
	c := len(n.keys)
	if n.index != nil {
		c++
	}
	if n.wildcard != nil {
		c++
	}
	return c
}

// each calls fn for every child in render order: index, wildcard, then keys
// in collation order.
func (n *segNode[T]) each(fn func(Segment, *segNode[T])) {
	if n.index != nil {
		fn(Index(), n.index)
	}
	if n.wildcard != nil {
		fn(Wildcard(), n.wildcard)
	}
	names := make([]string, 0, len(n.keys))
	for k := range n.keys {
		names = append(names, k)
	}
	slices.SortFunc(names, compareText)
	for _, k := range names {
		fn(Key(k), n.keys[k])
	}
}
