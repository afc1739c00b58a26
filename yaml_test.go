package jsnore_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	jsnore "github.com/lambdamechanic/jsnore"
)

func TestLoadYAML_Scalars(t *testing.T) {
	in := `
name: widget
hex: 0x10
ratio: 0.5
on: true
none: ~
when: 2024-01-02
inf: .inf
list: [a, 2]
anchor: &x {k: v}
ref: *x
`
	v, err := jsnore.LoadYAML(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	want := map[string]any{
		"name":   "widget",
		"hex":    json.Number("16"),
		"ratio":  json.Number("0.5"),
		"on":     true,
		"none":   nil,
		"when":   "2024-01-02",
		"inf":    ".inf",
		"list":   []any{"a", json.Number("2")},
		"anchor": map[string]any{"k": "v"},
		"ref":    map[string]any{"k": "v"},
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAML_FirstDocumentOnly(t *testing.T) {
	v, err := jsnore.LoadYAML(strings.NewReader("a: 1\n---\nb: 2\n"), jsnore.LoadOpt{NumberMode: jsnore.NumberFloat64})
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"a": 1.0}, v); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAML_Errors(t *testing.T) {
	_, err := jsnore.LoadYAML(strings.NewReader(""))
	if it := firstIssue(t, err); it.Code != jsnore.CodeParseError || it.Message != "empty input" {
		t.Fatalf("unexpected issue: %+v", it)
	}

	_, err = jsnore.LoadYAML(strings.NewReader("a: [1, 2\n"))
	if it := firstIssue(t, err); it.Code != jsnore.CodeParseError {
		t.Fatalf("unexpected issue: %+v", it)
	}

	_, err = jsnore.LoadYAML(strings.NewReader("a:\n  b:\n    c: 1\n"), jsnore.LoadOpt{MaxDepth: 2})
	if it := firstIssue(t, err); it.Path != "/a/b" {
		t.Fatalf("unexpected issue: %+v", it)
	}
}

func TestLoadYAML_DuplicateKeys(t *testing.T) {
	in := "x:\n  k: 1\n  k: 2\n"
	_, err := jsnore.LoadYAML(strings.NewReader(in), jsnore.LoadOpt{Strictness: jsnore.Strictness{OnDuplicateKey: jsnore.Error}})
	it := firstIssue(t, err)
	if it.Code != jsnore.CodeDuplicateKey || it.Path != "/x/k" || it.Params["line"] != 3 {
		t.Fatalf("unexpected issue: %+v", it)
	}

	var warned int
	v, err := jsnore.LoadYAML(strings.NewReader(in), jsnore.LoadOpt{
		Strictness: jsnore.Strictness{OnDuplicateKey: jsnore.Warn},
		OnIssue:    func(jsnore.Issue) { warned++ },
	})
	if err != nil || warned != 1 {
		t.Fatalf("warn policy: err=%v warned=%d", err, warned)
	}
	if diff := cmp.Diff(map[string]any{"x": map[string]any{"k": json.Number("2")}}, v); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
