package gojson

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	jsnore "github.com/lambdamechanic/jsnore"
	eng "github.com/lambdamechanic/jsnore/internal/engine"
)

// Driver returns a jsnore.JSONDriver backed by goccy/go-json.
func Driver() jsnore.JSONDriver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) NewReader(r io.Reader) jsnore.Source { return NewReader(r) }
func (driverGoJSON) NewBytes(b []byte) jsnore.Source     { return NewBytes(b) }
func (driverGoJSON) Name() string                        { return "go-json" }

type source struct {
	dec  *j.Decoder
	keys eng.KeyTracker
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
// go-json does not expose input offsets, so Location always reports -1.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	t := eng.Token{Offset: -1}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.keys.Begin(true)
			t.Kind = eng.KindBeginObject
		case '[':
			s.keys.Begin(false)
			t.Kind = eng.KindBeginArray
		case '}':
			s.keys.End()
			t.Kind = eng.KindEndObject
		default:
			s.keys.End()
			t.Kind = eng.KindEndArray
		}
		return t, nil
	case string:
		t.Kind = s.keys.StringKind()
		t.String = v
		return t, nil
	case bool:
		t.Kind, t.Bool = eng.KindBool, v
	case j.Number:
		t.Kind, t.Number = eng.KindNumber, string(v)
	case float64:
		t.Kind, t.Number = eng.KindNumber, strconv.FormatFloat(v, 'g', -1, 64)
	default:
		t.Kind = eng.KindNull
	}
	s.keys.Value()
	return t, nil
}

func (s *source) Location() int64 { return -1 }
