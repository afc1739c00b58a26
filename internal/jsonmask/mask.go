// Package jsonmask compiles and applies json-mask expressions such as
// "items(id,meta/*/name)".
//
// Grammar:
//
//	list := item (',' item)*
//	item := name ('/' item | '(' list ')')?
//
// "*" matches every key of an object. Arrays are transparent: a mask applies
// to each element. Reserved characters in names are escaped with a
// backslash, and "\*" is the literal key "*".
package jsonmask

// Mask is a compiled expression. A nil *Mask selects a whole value.
type Mask struct {
	keys    map[string]*Mask
	star    *Mask
	hasStar bool
}

// Compile parses mask. The empty mask compiles to nil, which selects
// everything.
func Compile(mask string) (*Mask, error) {
	p := &parser{toks: scan(mask)}
	m := &Mask{}
	if err := p.list(m, false); err != nil {
		return nil, err
	}
	if m.empty() {
		return nil, nil
	}
	return m, nil
}

// MustCompile is Compile that panics on error.
func MustCompile(mask string) *Mask {
	m, err := Compile(mask)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Mask) empty() bool { return len(m.keys) == 0 && !m.hasStar }

func (m *Mask) add(t token, sub *Mask) {
	if t.wildcard {
		if m.hasStar {
			m.star = union(m.star, sub)
		} else {
			m.star, m.hasStar = sub, true
		}
		return
	}
	if m.keys == nil {
		m.keys = make(map[string]*Mask)
	}
	if prev, ok := m.keys[t.text]; ok {
		m.keys[t.text] = union(prev, sub)
		return
	}
	m.keys[t.text] = sub
}

// union merges two selections; nil (whole value) absorbs anything.
func union(a, b *Mask) *Mask {
	if a == nil || b == nil {
		return nil
	}
	out := &Mask{}
	for _, src := range []*Mask{a, b} {
		for k, v := range src.keys {
			out.add(token{text: k}, v)
		}
		if src.hasStar {
			out.add(token{wildcard: true}, src.star)
		}
	}
	return out
}

// lookup returns the selection for key and whether key is selected at all.
func (m *Mask) lookup(key string) (*Mask, bool) {
	explicit, ok := m.keys[key]
	switch {
	case ok && m.hasStar:
		return union(explicit, m.star), true
	case ok:
		return explicit, true
	case m.hasStar:
		return m.star, true
	default:
		return nil, false
	}
}

// Apply projects v. The boolean is false when nothing in v is selected.
//
// Objects keep the selected keys that project to something. Arrays project
// each element and drop the empty ones; an empty input array is kept as is.
// Under a sub-selection, null passes through and other scalars are dropped.
func (m *Mask) Apply(v any) (any, bool) {
	if m == nil {
		return v, true
	}
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any)
		for k, child := range t {
			sub, ok := m.lookup(k)
			if !ok {
				continue
			}
			if pv, ok := sub.Apply(child); ok {
				out[k] = pv
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	case []any:
		if len(t) == 0 {
			return []any{}, true
		}
		out := make([]any, 0, len(t))
		for _, el := range t {
			if pv, ok := m.Apply(el); ok {
				out = append(out, pv)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	case nil:
		return nil, true
	default:
		return nil, false
	}
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t token, msg string) error {
	return &SyntaxError{Offset: t.offset, Msg: msg}
}

// list parses items into m until the end of the mask, or until the closing
// parenthesis when nested.
func (p *parser) list(m *Mask, nested bool) error {
	needSep := false
	for {
		t := p.next()
		switch t.kind {
		case tokEOF:
			if nested {
				return p.errorf(t, "missing ')'")
			}
			return nil
		case tokClose:
			if !nested {
				return p.errorf(t, "unbalanced ')'")
			}
			return nil
		case tokComma:
			needSep = false
		case tokName:
			if needSep {
				return p.errorf(t, "expected ',' before "+t.kind.String())
			}
			sub, err := p.rest()
			if err != nil {
				return err
			}
			m.add(t, sub)
			needSep = true
		default:
			return p.errorf(t, "unexpected "+t.kind.String())
		}
	}
}

// rest parses what follows a name: a "/"-chained item, a parenthesized
// group, or nothing.
func (p *parser) rest() (*Mask, error) {
	switch p.peek().kind {
	case tokSlash:
		p.next()
		t := p.next()
		if t.kind != tokName {
			return nil, p.errorf(t, "expected name after '/'")
		}
		sub, err := p.rest()
		if err != nil {
			return nil, err
		}
		m := &Mask{}
		m.add(t, sub)
		return m, nil
	case tokOpen:
		open := p.next()
		m := &Mask{}
		if err := p.list(m, true); err != nil {
			return nil, err
		}
		if m.empty() {
			return nil, p.errorf(open, "empty group")
		}
		return m, nil
	default:
		return nil, nil
	}
}
