package maskgen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEscapeKey(t *testing.T) {
	cases := map[string]string{
		"plain":  "plain",
		"a/b":    `a\/b`,
		"a,b":    `a\,b`,
		"f(x)":   `f\(x\)`,
		`back\`:  `back\\`,
		"*":      `\*`,
		"a*":     "a*",
		"":       "",
		"日本語": "日本語",
	}
	for in, want := range cases {
		if got := EscapeKey(in); got != want {
			t.Fatalf("EscapeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPath_String(t *testing.T) {
	p := Path{Key("items"), Index(), Key("a/b"), Wildcard()}
	if got, want := p.String(), `items/*/a\/b/*`; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if got := (Path{}).String(); got != "" {
		t.Fatalf("root path should render empty, got %q", got)
	}
}

func TestPath_SortKeyDistinguishesKinds(t *testing.T) {
	keys := map[string]Path{}
	for _, p := range []Path{
		{Key("*")},
		{Wildcard()},
		{Index()},
		{Key("[]")},
		{Key("a/b")},
		{Key("a"), Key("b")},
	} {
		k := p.sortKey()
		if prev, ok := keys[k]; ok {
			t.Fatalf("sortKey collision between %v and %v: %q", prev, p, k)
		}
		keys[k] = p
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want Path
	}{
		{Path{Index(), Key("a")}, Path{Key("a")}},
		{Path{Key("items"), Index()}, Path{Key("items")}},
		{Path{Key("items"), Index(), Index()}, Path{Key("items")}},
		{Path{Index(), Index(), Key("a")}, Path{Key("a")}},
		{Path{Key("a"), Index(), Key("b")}, Path{Key("a"), Index(), Key("b")}},
		{Path{Index()}, Path{}},
	}
	for _, tc := range cases {
		got := Normalize(tc.in)
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("Normalize(%v) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}
