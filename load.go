package jsnore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	eng "github.com/lambdamechanic/jsnore/internal/engine"
)

func lastLoadOpt(opts []LoadOpt) LoadOpt {
	if len(opts) == 0 {
		return LoadOpt{}
	}
	return opts[len(opts)-1]
}

// LoadJSON reads a single JSON document from r using LoadOpt.Driver, or the
// current JSONDriver when that is nil.
// Objects decode to map[string]any, arrays to []any, numbers per NumberMode.
// Empty input, malformed input and trailing data after the document are
// reported as parse_error Issues.
func LoadJSON(r io.Reader, opts ...LoadOpt) (any, error) {
	opt := lastLoadOpt(opts)
	data, err := readLimited(r, opt.MaxBytes)
	if err != nil {
		return nil, err
	}
	return LoadSource(opt.jsonBytes(data), opt)
}

// LoadJSONBytes is LoadJSON over an in-memory document.
func LoadJSONBytes(b []byte, opts ...LoadOpt) (any, error) {
	opt := lastLoadOpt(opts)
	if opt.MaxBytes > 0 && int64(len(b)) > opt.MaxBytes {
		return nil, truncatedIssue(opt.MaxBytes)
	}
	return LoadSource(opt.jsonBytes(b), opt)
}

func (o LoadOpt) jsonBytes(b []byte) Source {
	if o.Driver != nil {
		return o.Driver.NewBytes(b)
	}
	return JSONBytes(b)
}

// LoadSource decodes one document from src, applying duplicate-key, depth
// and size enforcement.
func LoadSource(src Source, opts ...LoadOpt) (any, error) {
	opt := lastLoadOpt(opts)
	var sink func(eng.SimpleIssue)
	if opt.OnIssue != nil {
		sink = func(si eng.SimpleIssue) {
			opt.OnIssue(Issue{Path: si.Path, Code: si.Code, Message: si.Message, Offset: si.Offset})
		}
	}
	enforced := eng.WrapWithEnforcement(src, eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   sink,
	})

	conv := eng.JSONNumber
	if opt.NumberMode == NumberFloat64 {
		conv = eng.Float64
	}
	v, err := eng.DecodeAny(enforced, conv)
	if err != nil {
		return nil, toIssues(err, src)
	}
	if _, err := enforced.NextToken(); err != io.EOF {
		if err == nil {
			return nil, Issues{{Path: "/", Code: CodeParseError, Message: "unexpected data after top-level value", Offset: src.Location()}}
		}
		return nil, toIssues(err, src)
	}
	return v, nil
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, truncatedIssue(maxBytes)
	}
	return data, nil
}

func truncatedIssue(maxBytes int64) Issues {
	return Issues{{
		Path:    "/",
		Code:    CodeTruncated,
		Message: "max bytes exceeded",
		Offset:  maxBytes,
		Params:  map[string]any{"max": maxBytes},
	}}
}

func toIssues(err error, src Source) error {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issues{{Path: ie.Path, Code: ie.Code, Message: ie.Message, Offset: ie.Offset}}
	}
	it := Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err, Offset: src.Location()}
	var se *json.SyntaxError
	switch {
	case errors.Is(err, io.EOF):
		it.Message = "empty input"
	case errors.Is(err, io.ErrUnexpectedEOF):
		it.Message = "unexpected end of input"
	case errors.As(err, &se):
		it.Offset = se.Offset
	}
	return Issues{it}
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}
