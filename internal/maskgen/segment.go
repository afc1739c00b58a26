package maskgen

import (
	"strconv"
	"strings"
)

// SegmentKind tags the variant held by a Segment.
type SegmentKind uint8

const (
	SegmentKey      SegmentKind = iota // Named object property.
	SegmentIndex                       // Every element of an array.
	SegmentWildcard                    // Every property of an object (candidates only).
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentKey:
		return "key"
	case SegmentIndex:
		return "index"
	case SegmentWildcard:
		return "wildcard"
	default:
		return "unknown"
	}
}

// Segment is one step of a Path. Key is only meaningful for SegmentKey.
type Segment struct {
	Kind SegmentKind
	Key  string
}

// Key selects the named object property.
func Key(name string) Segment { return Segment{Kind: SegmentKey, Key: name} }

// Index selects all elements of an array. Concrete indices are never kept.
func Index() Segment { return Segment{Kind: SegmentIndex} }

// Wildcard selects all properties of an object.
func Wildcard() Segment { return Segment{Kind: SegmentWildcard} }

// String renders the segment in mask syntax.
func (s Segment) String() string {
	if s.Kind == SegmentKey {
		return EscapeKey(s.Key)
	}
	return "*"
}

// sortName orders index and wildcard before any real key name.
func (s Segment) sortName() string {
	switch s.Kind {
	case SegmentIndex:
		return "\x00"
	case SegmentWildcard:
		return "\x01"
	default:
		return s.Key
	}
}

var keyEscaper = strings.NewReplacer(`\`, `\\`, ",", `\,`, "/", `\/`, "(", `\(`, ")", `\)`)

// EscapeKey escapes the mask grammar's reserved characters in an object key.
// A key that is exactly "*" is escaped so it is not read as the wildcard.
func EscapeKey(key string) string {
	if key == "*" {
		return `\*`
	}
	return keyEscaper.Replace(key)
}

// Path is an ordered sequence of segments from the document root. The empty
// path is the root itself.
type Path []Segment

// String joins the rendered segments with "/".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, "/")
}

// Equal reports whether both paths hold the same segments.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// with returns a copy of p extended by s; p itself is never aliased.
func (p Path) with(s Segment) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = s
	return out
}

// sortKey is an injective text form used for dedupe.
func (p Path) sortKey() string {
	var b strings.Builder
	for i, s := range p {
		if i > 0 {
			b.WriteByte('/')
		}
		switch s.Kind {
		case SegmentIndex:
			b.WriteString("[]")
		case SegmentWildcard:
			b.WriteByte('*')
		default:
			b.WriteString(strconv.Quote(s.Key))
		}
	}
	return b.String()
}

// orderKey spells p as a JSON array of segment objects. Candidates are
// ordered by collating this text, which puts an index before a key and a key
// before a wildcard at the same position.
func (p Path) orderKey() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, s := range p {
		if i > 0 {
			b.WriteByte(',')
		}
		switch s.Kind {
		case SegmentIndex:
			b.WriteString(`{"type":"index"}`)
		case SegmentWildcard:
			b.WriteString(`{"type":"wildcard"}`)
		default:
			b.WriteString(`{"type":"key","key":`)
			b.WriteString(strconv.Quote(s.Key))
			b.WriteByte('}')
		}
	}
	b.WriteByte(']')
	return b.String()
}

// Normalize strips leading and trailing index segments. Array wrappers at
// either end of a path carry nothing a mask can address.
func Normalize(p Path) Path {
	start, end := 0, len(p)
	for start < end && p[start].Kind == SegmentIndex {
		start++
	}
	for end > start && p[end-1].Kind == SegmentIndex {
		end--
	}
	return p[start:end]
}

func dedupePaths(paths []Path) []Path {
	seen := make(map[string]struct{}, len(paths))
	out := make([]Path, 0, len(paths))
	for _, p := range paths {
		k := p.sortKey()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}
