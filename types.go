package jsnore

import "log/slog"

// NumberMode dictates how numbers are interpreted.
type NumberMode int

const (
	NumberJSONNumber NumberMode = iota // Preserve json.Number (default).
	NumberFloat64                      // Fast mode (with potential precision loss).
)

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Ignore, Warn or Error (duplicate JSON keys).
}

// LoadOpt bundles document loading options.
type LoadOpt struct {
	Strictness Strictness
	MaxDepth   int   // 0 means unlimited.
	MaxBytes   int64 // 0 means unlimited.
	NumberMode NumberMode
	// Driver overrides CurrentJSONDriver for this load.
	Driver JSONDriver
	// OnIssue receives non-fatal issues such as duplicate key warnings.
	OnIssue func(Issue)
}

// DeriveOpt bundles mask derivation options.
type DeriveOpt struct {
	// MinHits is the number of resolved instances a pattern needs before it
	// may be declared constant. Nil means DefaultMinHits; use MinHits(0) to
	// ask for no threshold.
	MinHits *int
	// Logger receives debug records about the derivation. Nil means
	// slog.Default() tagged with component=jsnore.
	Logger *slog.Logger
}

// DefaultMinHits is the MinHits used when no DeriveOpt is passed.
const DefaultMinHits = 5

// DefaultDeriveOpt returns the options DeriveMask uses when none are given.
func DefaultDeriveOpt() DeriveOpt { return DeriveOpt{MinHits: MinHits(DefaultMinHits)} }

// MinHits returns a pointer to n for DeriveOpt.MinHits.
func MinHits(n int) *int { return &n }
