// Package jsnore derives json-mask expressions that keep the variable parts of
// a JSON document and drop the parts that repeat unchanged.
//
// Given a document with repeated records (typically an array of objects), the
// derivation enumerates every path, generalizes object keys into wildcard
// candidates, checks which candidates resolve to the same value across at
// least MinHits instances, and renders the remaining leaf paths as a compact
// mask such as "items(extra,id)".
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Document loading goes through a pluggable JSONDriver (source/json, source/gojson).
// - The CLIs live under cmd/jsnore and cmd/jsonymous.
//
// Typical usage:
//
//	doc, err := jsnore.LoadJSON(r)
//	mask, err := jsnore.DeriveMask(doc, jsnore.DeriveOpt{MinHits: jsnore.MinHits(3)})
//	slim, err := jsnore.Apply(doc, mask)
//	err = jsnore.Encode(os.Stdout, slim, false)
package jsnore
