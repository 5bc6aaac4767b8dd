package deep

import "reflect"

// Equal reports whether a and b are structurally equal.
//
// Mappings are compared key-by-key, sequences element-by-element, and every
// other kind by value. Two values that are equal but held in distinct
// instances compare equal; identity is never consulted.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, ok := bv[k]
			if !ok || !Equal(v, bvv) {
				return false
			}
		}
		return true

	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true

	default:
		return reflect.DeepEqual(a, b)
	}
}

// Copy returns a deep copy of m. Nested mappings and sequences are copied
// recursively; scalar values are shared. A nil input returns nil.
func Copy(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		return Copy(tv)
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}

// Merge returns a new mapping combining base and override.
//
// Nested mappings merge key-by-key recursively; every other value kind,
// sequences included, is replaced wholly by the override. Neither input is
// mutated. A nil override returns a copy of base.
func Merge(base, override map[string]any) map[string]any {
	if base == nil && override == nil {
		return nil
	}

	merged := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		bv, ok := merged[k]
		if !ok {
			merged[k] = v
			continue
		}

		bm, baseIsMap := bv.(map[string]any)
		om, overrideIsMap := v.(map[string]any)
		if baseIsMap && overrideIsMap {
			merged[k] = Merge(bm, om)
		} else {
			merged[k] = v
		}
	}
	return merged
}
