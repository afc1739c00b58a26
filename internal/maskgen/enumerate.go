package maskgen

import (
	"maps"
	"slices"
)

// NodeKind classifies an enumerated value.
type NodeKind uint8

const (
	NodeObject NodeKind = iota
	NodeArray
	NodeLeaf
)

func (k NodeKind) String() string {
	switch k {
	case NodeObject:
		return "object"
	case NodeArray:
		return "array"
	default:
		return "leaf"
	}
}

// Node pairs a value of the document with its concrete path.
type Node struct {
	Kind  NodeKind
	Path  Path
	Value any
}

// Enumerate emits every value of root, containers included, in depth-first
// pre-order. Object keys are visited in ascending byte order and array
// elements all share the same Index segment.
func Enumerate(root any) []Node {
	type item struct {
		value any
		path  Path
	}
	var nodes []Node
	stack := []item{{value: root, path: Path{}}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch v := it.value.(type) {
		case []any:
			nodes = append(nodes, Node{Kind: NodeArray, Path: it.path, Value: v})
			child := it.path.with(Index())
			for i := len(v) - 1; i >= 0; i-- {
				stack = append(stack, item{value: v[i], path: child})
			}
		case map[string]any:
			nodes = append(nodes, Node{Kind: NodeObject, Path: it.path, Value: v})
			keys := sortedKeys(v)
			for i := len(keys) - 1; i >= 0; i-- {
				stack = append(stack, item{value: v[keys[i]], path: it.path.with(Key(keys[i]))})
			}
		default:
			nodes = append(nodes, Node{Kind: NodeLeaf, Path: it.path, Value: v})
		}
	}
	return nodes
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
