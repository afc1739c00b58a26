package maskgen

import (
	"math/rand/v2"
	"strings"
	"testing"
)

var genKeys = []string{"a", "b", "c", "id", "type"}

func genValue(r *rand.Rand, depth int) any {
	if depth <= 0 {
		return genScalar(r)
	}
	switch r.IntN(4) {
	case 0:
		n := r.IntN(5)
		arr := make([]any, n)
		for i := range arr {
			arr[i] = genValue(r, depth-1)
		}
		return arr
	case 1, 2:
		obj := map[string]any{}
		for _, k := range genKeys {
			if r.IntN(2) == 0 {
				obj[k] = genValue(r, depth-1)
			}
		}
		return obj
	default:
		return genScalar(r)
	}
}

func genScalar(r *rand.Rand) any {
	switch r.IntN(5) {
	case 0:
		return nil
	case 1:
		return true
	case 2:
		return float64(r.IntN(3))
	case 3:
		return "x"
	default:
		return strings.Repeat("y", r.IntN(3))
	}
}

func TestProperty_Deterministic(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		doc := genValue(r, 4)
		minHits := r.IntN(4)
		first := mustDerive(t, doc, minHits).Mask
		for j := 0; j < 3; j++ {
			if again := mustDerive(t, doc, minHits).Mask; again != first {
				t.Fatalf("non-deterministic mask for %v: %q vs %q", doc, first, again)
			}
		}
	}
}

func TestProperty_NoIndexSpecialization(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 200; i++ {
		doc := genValue(r, 4)
		mask := mustDerive(t, doc, r.IntN(4)).Mask
		if strings.ContainsAny(mask, "0123456789") {
			t.Fatalf("mask %q mentions a concrete index for %v", mask, doc)
		}
	}
}

func TestProperty_MissingVsPresentBreaksConstancy(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 100; i++ {
		n := 2 + r.IntN(8)
		absent := r.IntN(n)
		items := records(n, func(j int) map[string]any {
			rec := map[string]any{"id": float64(j)}
			if j != absent {
				rec["flag"] = "on"
			}
			return rec
		})
		minHits := 2 + r.IntN(n-1)
		mask := mustDerive(t, map[string]any{"items": items}, minHits).Mask
		if !strings.Contains(mask, "flag") {
			t.Fatalf("flag should be kept (n=%d minHits=%d), got %q", n, minHits, mask)
		}
	}
}

func TestProperty_ConstantsAndKeptPathsConsistent(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	for i := 0; i < 200; i++ {
		doc := genValue(r, 4)
		d := mustDerive(t, doc, r.IntN(4))
		for _, c := range d.Constants {
			if !IsConstant(doc, c.Path, 0) {
				t.Fatalf("recorded prefix %v is not constant for %v", c.Path, doc)
			}
		}
		for _, p := range d.Kept {
			for _, s := range p {
				if s.Kind == SegmentWildcard {
					t.Fatalf("kept path %v contains a wildcard", p)
				}
			}
		}
	}
}
