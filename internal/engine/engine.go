package engine

import (
	"encoding/json"
	"io"
	"strconv"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBeginObject:
		return "begin_object"
	case KindEndObject:
		return "end_object"
	case KindBeginArray:
		return "begin_array"
	case KindEndArray:
		return "end_array"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// NumberConv turns number text into the decoded representation.
type NumberConv func(string) (any, error)

// JSONNumber keeps numbers as json.Number so no precision is lost.
func JSONNumber(s string) (any, error) { return json.Number(s), nil }

// Float64 decodes numbers as float64.
func Float64(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}

type container struct {
	obj map[string]any
	arr []any
	key string
}

func (c *container) value() any {
	if c.obj != nil {
		return c.obj
	}
	return c.arr
}

// DecodeAny builds one value from src. Objects become map[string]any,
// arrays []any (never nil), numbers go through conv. Nesting is tracked on
// an explicit stack, so depth is bounded only by memory.
func DecodeAny(src TokenSource, conv NumberConv) (any, error) {
	if conv == nil {
		conv = JSONNumber
	}
	var stack []*container
	for {
		tok, err := src.NextToken()
		if err != nil {
			if err == io.EOF && len(stack) > 0 {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}

		var v any
		switch tok.Kind {
		case KindBeginObject:
			stack = append(stack, &container{obj: make(map[string]any)})
			continue
		case KindBeginArray:
			stack = append(stack, &container{arr: []any{}})
			continue
		case KindKey:
			if len(stack) == 0 || stack[len(stack)-1].obj == nil {
				return nil, io.ErrUnexpectedEOF
			}
			stack[len(stack)-1].key = tok.String
			continue
		case KindEndObject, KindEndArray:
			if len(stack) == 0 {
				return nil, io.ErrUnexpectedEOF
			}
			v = stack[len(stack)-1].value()
			stack = stack[:len(stack)-1]
		case KindString:
			v = tok.String
		case KindNumber:
			if v, err = conv(tok.Number); err != nil {
				return nil, err
			}
		case KindBool:
			v = tok.Bool
		case KindNull:
			v = nil
		default:
			return nil, io.ErrUnexpectedEOF
		}

		if len(stack) == 0 {
			return v, nil
		}
		top := stack[len(stack)-1]
		if top.obj != nil {
			top.obj[top.key] = v
		} else {
			top.arr = append(top.arr, v)
		}
	}
}
