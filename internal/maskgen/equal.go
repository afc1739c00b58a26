package maskgen

import (
	"encoding/json"
	"math/big"
	"reflect"
	"strconv"
)

// MissingAwareEqual compares two resolved instances. Missing equals only
// Missing; everything else goes through DeepEqual.
func MissingAwareEqual(a, b any) bool {
	am, bm := IsMissing(a), IsMissing(b)
	if am || bm {
		return am && bm
	}
	return DeepEqual(a, b)
}

// DeepEqual is structural equality over decoded JSON values. Numbers compare
// by value regardless of their Go representation, so 0 equals -0 and NaN
// never equals anything. Two json.Number values compare exactly, so integers
// beyond float64 precision stay distinct.
func DeepEqual(a, b any) bool {
	type pair struct{ a, b any }
	stack := []pair{{a, b}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch x := p.a.(type) {
		case map[string]any:
			y, ok := p.b.(map[string]any)
			if !ok || len(x) != len(y) {
				return false
			}
			for k, xv := range x {
				yv, ok := y[k]
				if !ok {
					return false
				}
				stack = append(stack, pair{xv, yv})
			}
		case []any:
			y, ok := p.b.([]any)
			if !ok || len(x) != len(y) {
				return false
			}
			for i := range x {
				stack = append(stack, pair{x[i], y[i]})
			}
		default:
			if !scalarEqual(p.a, p.b) {
				return false
			}
		}
	}
	return true
}

func scalarEqual(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case json.Number:
		if y, ok := b.(json.Number); ok {
			return numberEqual(x, y)
		}
	}
	xf, xok := toFloat(a)
	yf, yok := toFloat(b)
	if xok || yok {
		return xok && yok && xf == yf
	}
	return reflect.DeepEqual(a, b)
}

func numberEqual(a, b json.Number) bool {
	if a == b {
		return true
	}
	x, xok := new(big.Rat).SetString(string(a))
	y, yok := new(big.Rat).SetString(string(b))
	if !xok || !yok {
		return false
	}
	return x.Cmp(y) == 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
