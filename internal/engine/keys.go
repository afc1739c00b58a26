package engine

type keyFrame struct {
	object       bool
	expectingKey bool
}

// KeyTracker tells drivers whether a string token is an object key or a
// value. Decoders built on Token() APIs report both as plain strings.
type KeyTracker struct {
	stack []keyFrame
}

// Begin records an opening delimiter.
func (k *KeyTracker) Begin(object bool) {
	k.stack = append(k.stack, keyFrame{object: object, expectingKey: object})
}

// End records a closing delimiter. The closed container was a value of its
// parent.
func (k *KeyTracker) End() {
	if n := len(k.stack); n > 0 {
		k.stack = k.stack[:n-1]
	}
	k.Value()
}

// Value records a scalar value.
func (k *KeyTracker) Value() {
	if n := len(k.stack); n > 0 && k.stack[n-1].object {
		k.stack[n-1].expectingKey = true
	}
}

// StringKind classifies a string token and records it.
func (k *KeyTracker) StringKind() Kind {
	if n := len(k.stack); n > 0 {
		top := &k.stack[n-1]
		if top.object && top.expectingKey {
			top.expectingKey = false
			return KindKey
		}
	}
	k.Value()
	return KindString
}
