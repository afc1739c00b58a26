package engine

import (
	"strconv"
	"strings"
)

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
	Offset  int64
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	// IssueSink receives non-fatal issues (duplicate keys under DupWarn).
	// Fatal issues are returned as IssueError instead.
	IssueSink func(SimpleIssue)
}

type frame struct {
	object bool
	path   string
	keys   map[string]struct{}
	key    string
	next   int
}

// WrapWithEnforcement returns a TokenSource that enforces duplicate key policy,
// maximum nesting depth, and maximum consumed bytes. Issue paths are JSON
// pointers.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	var path string
	switch tok.Kind {
	case KindKey:
		if n := len(e.stack); n > 0 && e.stack[n-1].object {
			top := &e.stack[n-1]
			path = joinJSONPointer(top.path, tok.String)
			if _, dup := top.keys[tok.String]; dup && e.opt.OnDuplicate != DupIgnore {
				si := e.issue("duplicate_key", path, "key '"+tok.String+"' duplicated")
				if e.opt.OnDuplicate == DupError {
					return Token{}, IssueError{si}
				}
				if e.opt.IssueSink != nil {
					e.opt.IssueSink(si)
				}
			}
			top.keys[tok.String] = struct{}{}
			top.key = tok.String
		}
	case KindBeginObject, KindBeginArray:
		path = e.childPath()
		f := frame{object: tok.Kind == KindBeginObject, path: path}
		if f.object {
			f.keys = make(map[string]struct{})
		}
		e.stack = append(e.stack, f)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, IssueError{e.issue("parse_error", path, "max depth exceeded")}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			path = e.stack[n-1].path
			e.stack = e.stack[:n-1]
		}
	default:
		path = e.childPath()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off >= 0 && off > e.opt.MaxBytes {
			return Token{}, IssueError{e.issue("truncated", path, "max bytes exceeded")}
		}
	}
	return tok, nil
}

// childPath returns the pointer of the value about to be read and advances
// the array index when inside an array.
func (e *enforcingTokenSource) childPath() string {
	n := len(e.stack)
	if n == 0 {
		return ""
	}
	top := &e.stack[n-1]
	if top.object {
		return joinJSONPointer(top.path, top.key)
	}
	p := joinJSONPointer(top.path, strconv.Itoa(top.next))
	top.next++
	return p
}

func (e *enforcingTokenSource) issue(code, path, msg string) SimpleIssue {
	return SimpleIssue{Code: code, Path: normalizeIssuePath(path), Message: msg, Offset: e.Location()}
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }

func normalizeIssuePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinJSONPointer(base, token string) string {
	return base + "/" + jsonPointerEscaper.Replace(token)
}
