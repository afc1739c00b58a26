package maskgen

import (
	"errors"
	"testing"
)

func mustRender(t *testing.T, paths ...Path) string {
	t.Helper()
	s, err := Render(paths)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return s
}

func TestRender_Cases(t *testing.T) {
	cases := []struct {
		name  string
		paths []Path
		want  string
	}{
		{"array element siblings", []Path{{Key("items"), Index(), Key("id")}, {Key("items"), Index(), Key("name")}}, "items(id,name)"},
		{"single array field keeps parens", []Path{{Key("items"), Index(), Key("id")}}, "items(id)"},
		{"nested siblings", []Path{{Key("a"), Key("b"), Key("c")}, {Key("a"), Key("b"), Key("d")}}, "a/b(c,d)"},
		{"mixed depth", []Path{{Key("a"), Key("x")}, {Key("a"), Key("y"), Key("z")}}, "a(x,y/z)"},
		{"escaped key", []Path{{Key("a/b"), Key("c")}}, `a\/b/c`},
		{"literal star key", []Path{{Key("*")}}, `\*`},
		{"wildcard siblings", []Path{{Wildcard(), Key("a")}, {Wildcard(), Key("b")}}, "*(a,b)"},
		{"wildcard chain", []Path{{Wildcard(), Key("a"), Key("b")}}, "*/a/b"},
		{"index merged with direct children", []Path{{Key("a"), Index(), Key("x")}, {Key("a"), Key("y")}}, "a(x,y)"},
		{"nested arrays fold", []Path{{Key("a"), Index(), Index(), Key("x")}}, "a(x)"},
		{"prefix path adds nothing", []Path{{Key("items")}, {Key("items"), Index(), Key("x")}}, "items(x)"},
		{"prefix under array element", []Path{{Key("items"), Index(), Key("m")}, {Key("items"), Index(), Key("m"), Key("x")}}, "items(m/x)"},
		{"mixed case keys collate", []Path{{Key("items"), Index(), Key("id")}, {Key("items"), Index(), Key("Name")}}, "items(id,Name)"},
		{"lowercase before uppercase", []Path{{Key("B")}, {Key("b")}, {Key("a")}}, "a,b,B"},
		{"roots sorted", []Path{{Key("z")}, {Wildcard(), Key("a")}, {Key("b")}}, "*/a,b,z"},
		{"duplicates collapse", []Path{{Key("a")}, {Key("a")}}, "a"},
		{"empty paths ignored", []Path{{}, {Key("a")}}, "a"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mustRender(t, tc.paths...); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestRender_NoPaths(t *testing.T) {
	if got := mustRender(t); got != "" {
		t.Fatalf("expected empty mask, got %q", got)
	}
}

func TestRender_IndexAtRoot(t *testing.T) {
	_, err := Render([]Path{{Key("z")}, {Wildcard(), Key("a")}, {Index(), Key("b")}})
	if !errors.Is(err, ErrIndexAtRoot) {
		t.Fatalf("expected ErrIndexAtRoot, got %v", err)
	}
}
