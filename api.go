package jsnore

import (
	"log/slog"
	"strconv"

	"github.com/lambdamechanic/jsnore/internal/jsonmask"
	"github.com/lambdamechanic/jsnore/internal/maskgen"
)

// Segment model, re-exported so callers can build and render paths.
type (
	Segment     = maskgen.Segment
	SegmentKind = maskgen.SegmentKind
	Path        = maskgen.Path
)

const (
	SegmentKey      = maskgen.SegmentKey
	SegmentIndex    = maskgen.SegmentIndex
	SegmentWildcard = maskgen.SegmentWildcard
)

// Key selects the named object property.
func Key(name string) Segment { return maskgen.Key(name) }

// Index selects every element of an array.
func Index() Segment { return maskgen.Index() }

// Wildcard selects every property of an object.
func Wildcard() Segment { return maskgen.Wildcard() }

// EscapeKey escapes a key for use in a mask expression.
func EscapeKey(key string) string { return maskgen.EscapeKey(key) }

// Missing marks a pattern position that did not resolve (see Report.Constants).
var Missing = maskgen.Missing

// IsMissing reports whether v is the Missing marker.
func IsMissing(v any) bool { return maskgen.IsMissing(v) }

// ErrIndexAtRoot is returned by Render when a path starts with an Index
// segment.
var ErrIndexAtRoot = maskgen.ErrIndexAtRoot

// Report is the result of DeriveReport: the mask plus the constant prefixes,
// candidate counts and kept paths behind it.
type Report = maskgen.Derivation

// ConstantPrefix is one pattern proven constant during derivation.
type ConstantPrefix = maskgen.ConstantPrefix

// DeriveMask infers a mask that keeps the variable fields of doc and drops
// the ones that are constant across at least MinHits repeated instances.
// An empty result means nothing is worth keeping; see EmptyProjection.
//
// doc is a decoded JSON value (map[string]any, []any, string, bool, nil or a
// number). The last option wins. An unset MinHits means DefaultMinHits.
func DeriveMask(doc any, opts ...DeriveOpt) (string, error) {
	rep, err := DeriveReport(doc, opts...)
	if err != nil {
		return "", err
	}
	return rep.Mask, nil
}

// DeriveReport runs the same derivation as DeriveMask and returns the
// intermediate facts as well.
func DeriveReport(doc any, opts ...DeriveOpt) (*Report, error) {
	opt := DefaultDeriveOpt()
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	minHits := DefaultMinHits
	if opt.MinHits != nil {
		minHits = *opt.MinHits
	}
	if minHits < 0 {
		return nil, Issues{{
			Path:    "minHits",
			Code:    CodeInvalidOption,
			Message: "minHits must be a non-negative integer, got " + strconv.Itoa(minHits),
			Offset:  -1,
			Params:  map[string]any{"got": minHits},
		}}
	}
	logger := opt.Logger
	if logger == nil {
		logger = slog.Default().With("component", "jsnore")
	}
	return maskgen.Derive(doc, minHits, logger)
}

// Render serializes paths into the mask grammar.
func Render(paths []Path) (string, error) { return maskgen.Render(paths) }

// Apply projects doc through mask. The empty mask selects everything; a
// projection that selects nothing yields nil. A malformed mask is reported
// as an invalid_mask Issue.
func Apply(doc any, mask string) (any, error) {
	m, err := jsonmask.Compile(mask)
	if err != nil {
		return nil, issueAt("/", CodeInvalidMask, err.Error(), err)
	}
	v, ok := m.Apply(doc)
	if !ok {
		return nil, nil
	}
	return v, nil
}

// EmptyProjection is the value to emit when a derived mask is empty: an empty
// array for arrays, an empty object for objects and null otherwise.
func EmptyProjection(doc any) any {
	switch doc.(type) {
	case []any:
		return []any{}
	case map[string]any:
		return map[string]any{}
	default:
		return nil
	}
}
