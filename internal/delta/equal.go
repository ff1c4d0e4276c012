package delta

import "reflect"

// Equal compares two values structurally. Nested documents must have the same
// key sets, arrays are order-sensitive, numbers compare by value regardless of
// their Go type (JSON decoding yields float64, SQLite yields int64).
func Equal(a, b any) bool {
	if an, ok := toFloat(a); ok {
		bn, ok := toFloat(b)
		return ok && an == bn
	}

	if ad, ok := asDocument(a); ok {
		bd, ok := asDocument(b)
		if !ok || len(ad) != len(bd) {
			return false
		}
		for k, av := range ad {
			bv, ok := bd[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}

	if as, ok := asSlice(a); ok {
		bs, ok := asSlice(b)
		if !ok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !Equal(as[i], bs[i]) {
				return false
			}
		}
		return true
	}

	return reflect.DeepEqual(a, b)
}

func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out, true
	default:
		return nil, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
