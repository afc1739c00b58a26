package maskgen

import (
	"errors"
	"strings"
)

// ErrIndexAtRoot reports an Index segment at the top of the mask tree. Kept
// paths are normalized before rendering, so this indicates a caller bug.
var ErrIndexAtRoot = errors.New("maskgen: index nodes must be rendered by their parent key")

type maskInfo struct {
	array bool // an index child was folded into this node
}

type maskNode = segNode[maskInfo]

// Render serializes paths into the mask grammar. Paths sharing a prefix
// share a node; array element fields are grouped under their parent key; a
// node with a single child compresses to "a/b"; siblings are grouped as
// "a(b,c)". Only childless nodes render bare, so a path that is a prefix of
// another adds nothing to the mask. Empty paths are ignored.
func Render(paths []Path) (string, error) {
	root := &maskNode{}
	for _, p := range paths {
		if len(p) == 0 {
			continue
		}
		root.insert(p)
	}
	if root.index != nil {
		return "", ErrIndexAtRoot
	}

	var b strings.Builder
	first := true
	root.each(func(s Segment, n *maskNode) {
		foldIndex(n)
		if !first {
			b.WriteByte(',')
		}
		first = false
		renderNode(&b, s, n)
	})
	return b.String(), nil
}

// foldIndex merges index children into their parent, repeatedly so nested
// arrays fold as well, then recurses into the remaining children.
func foldIndex(n *maskNode) {
	for n.index != nil {
		idx := n.index
		n.index = nil
		n.val.array = true
		mergeChildren(n, idx)
	}
	if n.wildcard != nil {
		foldIndex(n.wildcard)
	}
	for _, c := range n.keys {
		foldIndex(c)
	}
}

// mergeChildren moves src's children into dst, merging subtrees that share
// a segment.
func mergeChildren(dst, src *maskNode) {
	src.each(func(s Segment, c *maskNode) {
		existing := dst.child(s)
		if existing == nil {
			switch s.Kind {
			case SegmentIndex:
				dst.index = c
			case SegmentWildcard:
				dst.wildcard = c
			default:
				if dst.keys == nil {
					dst.keys = make(map[string]*maskNode)
				}
				dst.keys[s.Key] = c
			}
			return
		}
		existing.val.array = existing.val.array || c.val.array
		mergeChildren(existing, c)
	})
}

func renderNode(b *strings.Builder, s Segment, n *maskNode) {
	b.WriteString(s.String())
	count := n.childCount()
	if count == 0 {
		return
	}
	if count == 1 && !n.val.array {
		b.WriteByte('/')
		n.each(func(cs Segment, c *maskNode) { renderNode(b, cs, c) })
		return
	}
	b.WriteByte('(')
	first := true
	n.each(func(cs Segment, c *maskNode) {
		if !first {
			b.WriteByte(',')
		}
		first = false
		renderNode(b, cs, c)
	})
	b.WriteByte(')')
}
