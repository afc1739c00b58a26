package jsonmask

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func apply(t *testing.T, mask string, doc any) any {
	t.Helper()
	m, err := Compile(mask)
	if err != nil {
		t.Fatalf("Compile(%q): %v", mask, err)
	}
	v, ok := m.Apply(doc)
	if !ok {
		return nil
	}
	return v
}

func TestApply_Projections(t *testing.T) {
	cases := []struct {
		name string
		mask string
		doc  any
		want any
	}{
		{
			"array element fields", "items(id,name)",
			map[string]any{"items": []any{map[string]any{"id": 1.0, "name": "a", "extra": true}}},
			map[string]any{"items": []any{map[string]any{"id": 1.0, "name": "a"}}},
		},
		{
			"nested group", "a/b(c,d)",
			map[string]any{"a": map[string]any{"b": map[string]any{"c": 1.0, "d": 2.0, "e": 3.0}}},
			map[string]any{"a": map[string]any{"b": map[string]any{"c": 1.0, "d": 2.0}}},
		},
		{
			"mixed depth", "a(x,y/z)",
			map[string]any{"a": map[string]any{"x": 1.0, "y": map[string]any{"z": 2.0, "q": 3.0}, "other": true}},
			map[string]any{"a": map[string]any{"x": 1.0, "y": map[string]any{"z": 2.0}}},
		},
		{
			"escaped slash", `a\/b/c`,
			map[string]any{"a/b": map[string]any{"c": 1.0, "d": 2.0}},
			map[string]any{"a/b": map[string]any{"c": 1.0}},
		},
		{
			"wildcard group", "*(a,b)",
			map[string]any{"x": map[string]any{"a": 1.0, "b": 2.0, "c": 3.0}, "y": map[string]any{"a": 4.0}},
			map[string]any{"x": map[string]any{"a": 1.0, "b": 2.0}, "y": map[string]any{"a": 4.0}},
		},
		{
			"wildcard chain", "*/a/b",
			map[string]any{"x": map[string]any{"a": map[string]any{"b": 1.0, "c": 2.0}}, "y": map[string]any{"a": map[string]any{"b": 3.0}}},
			map[string]any{"x": map[string]any{"a": map[string]any{"b": 1.0}}, "y": map[string]any{"a": map[string]any{"b": 3.0}}},
		},
		{
			"literal star key", `\*`,
			map[string]any{"*": 1.0, "other": 2.0},
			map[string]any{"*": 1.0},
		},
		{
			"explicit and wildcard union", "a/x,*/y",
			map[string]any{"a": map[string]any{"x": 1.0, "y": 2.0, "z": 3.0}, "b": map[string]any{"x": 4.0, "y": 5.0}},
			map[string]any{"a": map[string]any{"x": 1.0, "y": 2.0}, "b": map[string]any{"y": 5.0}},
		},
		{
			"whole value absorbs narrower", "a,a/x",
			map[string]any{"a": map[string]any{"x": 1.0, "y": 2.0}},
			map[string]any{"a": map[string]any{"x": 1.0, "y": 2.0}},
		},
		{
			"root array", "id",
			[]any{map[string]any{"id": 1.0, "t": "x"}, map[string]any{"id": 2.0}},
			[]any{map[string]any{"id": 1.0}, map[string]any{"id": 2.0}},
		},
		{
			"empty array kept", "items",
			map[string]any{"items": []any{}, "x": 1.0},
			map[string]any{"items": []any{}},
		},
		{
			"unselected elements dropped", "items(id)",
			map[string]any{"items": []any{map[string]any{"id": 1.0}, map[string]any{"x": 2.0}, 3.0}},
			map[string]any{"items": []any{map[string]any{"id": 1.0}}},
		},
		{
			"null under sub-selection", "a/b",
			map[string]any{"a": nil},
			map[string]any{"a": nil},
		},
		{
			"nothing selected", "missing",
			map[string]any{"a": 1.0},
			nil,
		},
		{
			"empty mask selects all", "",
			map[string]any{"a": 1.0},
			map[string]any{"a": 1.0},
		},
		{
			"empty names skipped", ",a,,",
			map[string]any{"a": 1.0, "b": 2.0},
			map[string]any{"a": 1.0},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, apply(t, tc.mask, tc.doc)); diff != "" {
				t.Fatalf("Apply(%q) mismatch (-want +got):\n%s", tc.mask, diff)
			}
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	for _, mask := range []string{"a(", "a)", "a()", "a/", "/a", "(a)", "a(b)c", "a(b)(c)", "a//b"} {
		_, err := Compile(mask)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("Compile(%q): expected SyntaxError, got %v", mask, err)
		}
	}
}

func TestScan_Escapes(t *testing.T) {
	toks := scan(`a\,b,\*,*,x\`)
	var names []string
	var wild []bool
	for _, tk := range toks {
		if tk.kind == tokName {
			names = append(names, tk.text)
			wild = append(wild, tk.wildcard)
		}
	}
	if diff := cmp.Diff([]string{"a,b", "*", "*", `x\`}, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{false, false, true, false}, wild); diff != "" {
		t.Fatalf("wildcard flags mismatch (-want +got):\n%s", diff)
	}
}

func TestMustCompile_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MustCompile("a(")
}
