package maskgen

// ConstancyResult is the verdict for one pattern. Value holds the shared
// value (possibly Missing) and is only set when Constant is true.
//
// Evaluation stops at the first mismatch, so for a non-constant pattern Hits
// is a lower bound on the number of instances.
type ConstancyResult struct {
	Constant bool
	Hits     int
	Value    any
}

type frontierItem struct {
	value any
	depth int
}

// Evaluate resolves pattern against doc and reports whether every resolved
// instance is equal under MissingAwareEqual and at least minHits instances
// resolved. A pattern with zero hits is never constant.
func Evaluate(doc any, pattern Path, minHits int) ConstancyResult {
	var (
		hits     int
		baseline any
	)
	mismatch := false
	walk(doc, pattern, func(v any) bool {
		hits++
		if hits == 1 {
			baseline = v
			return true
		}
		if !MissingAwareEqual(baseline, v) {
			mismatch = true
			return false
		}
		return true
	})
	if mismatch || hits == 0 || hits < minHits {
		return ConstancyResult{Hits: hits}
	}
	return ConstancyResult{Constant: true, Hits: hits, Value: baseline}
}

// IsConstant is Evaluate reduced to its verdict.
func IsConstant(doc any, pattern Path, minHits int) bool {
	return Evaluate(doc, pattern, minHits).Constant
}

// Gather returns every instance pattern resolves to, in document order.
func Gather(doc any, pattern Path) []any {
	var out []any
	walk(doc, pattern, func(v any) bool {
		out = append(out, v)
		return true
	})
	return out
}

// walk feeds each terminal instance to yield in document order until yield
// returns false.
func walk(doc any, pattern Path, yield func(any) bool) {
	stack := []frontierItem{{value: doc}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if it.depth == len(pattern) {
			if !yield(it.value) {
				return
			}
			continue
		}
		if IsMissing(it.value) {
			stack = append(stack, frontierItem{value: Missing, depth: len(pattern)})
			continue
		}

		next := it.depth + 1
		switch seg := pattern[it.depth]; seg.Kind {
		case SegmentKey:
			v := Missing
			if m, ok := it.value.(map[string]any); ok {
				if child, ok := m[seg.Key]; ok {
					v = child
				}
			}
			stack = append(stack, frontierItem{value: v, depth: next})
		case SegmentIndex:
			arr, ok := it.value.([]any)
			if !ok {
				stack = append(stack, frontierItem{value: Missing, depth: next})
				continue
			}
			for i := len(arr) - 1; i >= 0; i-- {
				stack = append(stack, frontierItem{value: arr[i], depth: next})
			}
		case SegmentWildcard:
			m, ok := it.value.(map[string]any)
			if !ok {
				stack = append(stack, frontierItem{value: Missing, depth: next})
				continue
			}
			keys := sortedKeys(m)
			for i := len(keys) - 1; i >= 0; i-- {
				stack = append(stack, frontierItem{value: m[keys[i]], depth: next})
			}
		}
	}
}
