package jsonmask

import (
	"fmt"
	"strings"
)

type tokKind uint8

const (
	tokEOF tokKind = iota
	tokName
	tokComma
	tokSlash
	tokOpen
	tokClose
)

func (k tokKind) String() string {
	switch k {
	case tokName:
		return "name"
	case tokComma:
		return "','"
	case tokSlash:
		return "'/'"
	case tokOpen:
		return "'('"
	case tokClose:
		return "')'"
	default:
		return "end of mask"
	}
}

type token struct {
	kind     tokKind
	text     string
	wildcard bool // unescaped "*"
	offset   int
}

// SyntaxError reports a malformed mask expression.
type SyntaxError struct {
	Offset int // byte offset into the mask
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("jsonmask: %s at offset %d", e.Msg, e.Offset)
}

// scan splits a mask into tokens. A backslash makes the following character
// literal; a trailing backslash stands for itself.
func scan(mask string) []token {
	var (
		toks    []token
		name    strings.Builder
		start   = -1
		escaped bool
	)
	flush := func() {
		if start < 0 {
			return
		}
		text := name.String()
		toks = append(toks, token{kind: tokName, text: text, wildcard: text == "*" && !escaped, offset: start})
		name.Reset()
		start, escaped = -1, false
	}
	for i := 0; i < len(mask); i++ {
		c := mask[i]
		var kind tokKind
		switch c {
		case ',':
			kind = tokComma
		case '/':
			kind = tokSlash
		case '(':
			kind = tokOpen
		case ')':
			kind = tokClose
		default:
			if start < 0 {
				start = i
			}
			if c == '\\' && i+1 < len(mask) {
				i++
				c = mask[i]
				escaped = true
			}
			name.WriteByte(c)
			continue
		}
		flush()
		toks = append(toks, token{kind: kind, offset: i})
	}
	flush()
	return append(toks, token{kind: tokEOF, offset: len(mask)})
}
