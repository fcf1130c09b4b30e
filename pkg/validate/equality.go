package validate

// equal compares two projected JSON values structurally: scalars by
// primitive value, arrays pairwise in order, objects by equal key sets with
// pairwise-equal values (key order irrelevant).
func equal(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for key, aval := range av {
			bval, ok := bv[key]
			if !ok || !equal(aval, bval) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
