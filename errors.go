package jsnore

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes reported by the loaders, the mask applier and option checks.
const (
	CodeParseError        = "parse_error"
	CodeDuplicateKey      = "duplicate_key"
	CodeTruncated         = "truncated"
	CodeInvalidMask       = "invalid_mask"
	CodeInvalidOption     = "invalid_option"
	CodeUnsupportedFormat = "unsupported_format"
)

// Issue represents a single input or usage problem.
type Issue struct {
	Path    string // JSON Pointer into the input (for example: /items/2/price), or the option name.
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints.
	Cause   error  // Optional: underlying error.
	Offset  int64  // Byte offset in the input source (-1 when unknown).
	// Params carries structured parameters (e.g., {"got": -1}) for i18n.
	Params map[string]any
}

// Issues is a collection of problems that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. parse_error at /items/0
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap returns the causes of the issues that carry one.
func (iss Issues) Unwrap() []error {
	var errs []error
	for _, it := range iss {
		if it.Cause != nil {
			errs = append(errs, it.Cause)
		}
	}
	return errs
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func issueAt(path, code, msg string, cause error) Issues {
	return Issues{{Path: path, Code: code, Message: msg, Cause: cause, Offset: -1}}
}
