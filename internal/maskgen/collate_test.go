package maskgen

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompareText_RootCollation(t *testing.T) {
	got := []string{"Name", "b", "B", "id", "a", "_x", "10", "2"}
	slices.SortFunc(got, compareText)
	want := []string{"_x", "10", "2", "a", "b", "B", "id", "Name"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateCandidates_IndexBeforeKey(t *testing.T) {
	got := GenerateCandidates([]Path{
		{Key("a"), Key("b")},
		{Key("a"), Index()},
	})
	idx := slices.IndexFunc(got, func(p Path) bool { return cmp.Equal(p, Path{Key("a"), Index()}) })
	key := slices.IndexFunc(got, func(p Path) bool { return cmp.Equal(p, Path{Key("a"), Key("b")}) })
	if idx < 0 || key < 0 || idx > key {
		t.Fatalf("expected a/[] before a/b, got %v", got)
	}
}
