package maskgen

import (
	"fmt"
	"log/slog"
)

// ConstantPrefix is one pattern proven constant during derivation.
type ConstantPrefix struct {
	Path  Path
	Hits  int
	Value any
}

// Derivation is the outcome of Derive together with the intermediate facts
// that produced it.
type Derivation struct {
	Mask       string
	Candidates int // generated candidate patterns
	Evaluated  int // candidates whose constancy was evaluated
	Skipped    int // candidates skipped because a constant prefix covered them
	Constants  []ConstantPrefix
	Kept       []Path // normalized, deduplicated paths handed to Render
}

// Derive computes the mask for doc. Candidates are visited shortest-first so
// that a constant prefix is always recorded before anything it covers.
func Derive(doc any, minHits int, logger *slog.Logger) (*Derivation, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	nodes := Enumerate(doc)
	concrete := make([]Path, 0, len(nodes))
	for _, n := range nodes {
		if len(n.Path) > 0 {
			concrete = append(concrete, n.Path)
		}
	}

	candidates := GenerateCandidates(concrete)
	d := &Derivation{Candidates: len(candidates)}
	trie := NewPrefixTrie()
	for _, c := range candidates {
		if trie.Covers(c) {
			d.Skipped++
			continue
		}
		d.Evaluated++
		res := Evaluate(doc, c, minHits)
		if !res.Constant {
			continue
		}
		trie.Insert(c)
		d.Constants = append(d.Constants, ConstantPrefix{Path: c, Hits: res.Hits, Value: res.Value})
		logger.Debug("constant prefix", "pattern", c.String(), "hits", res.Hits)
	}

	var keep []Path
	for _, n := range nodes {
		if n.Kind != NodeLeaf || len(n.Path) == 0 || trie.Covers(n.Path) {
			continue
		}
		if p := Normalize(n.Path); len(p) > 0 {
			keep = append(keep, p)
		}
	}
	d.Kept = dedupePaths(keep)

	logger.Debug("derivation finished",
		"candidates", d.Candidates,
		"evaluated", d.Evaluated,
		"skipped", d.Skipped,
		"constants", len(d.Constants),
		"kept", len(d.Kept),
	)

	if len(d.Kept) == 0 {
		return d, nil
	}
	mask, err := Render(d.Kept)
	if err != nil {
		return nil, fmt.Errorf("render mask: %w", err)
	}
	d.Mask = mask
	return d, nil
}
