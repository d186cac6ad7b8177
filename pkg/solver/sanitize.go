package solver

import "reflect"

// Sanitize recursively rewrites a value tree so that no native numeric
// array/slice type survives: typed slices and fixed-size arrays become []any
// of plain scalars, mappings and generic sequences are walked, scalars pass
// through. Applying it twice is a no-op.
func Sanitize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = Sanitize(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = Sanitize(val)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Sanitize(rv.Index(i).Interface())
		}
		return out
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return Sanitize(rv.Elem().Interface())
	}

	return v
}
