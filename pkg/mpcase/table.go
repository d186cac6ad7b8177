package mpcase

import (
	"encoding/json"
	"reflect"
)

// num coerces a scalar of any numeric flavor (JSON float64, json.Number,
// plain Go ints/floats) to float64.
func num(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// asList flattens any slice or array value into []any. Strings and maps are
// not lists.
func asList(v any) ([]any, bool) {
	if l, ok := v.([]any); ok {
		return l, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asRow coerces one element into a fixed-column numeric row. Every cell must
// be numeric.
func asRow(v any) ([]float64, bool) {
	if r, ok := v.([]float64); ok {
		return r, true
	}
	list, ok := asList(v)
	if !ok {
		return nil, false
	}
	row := make([]float64, len(list))
	for i, cell := range list {
		f, ok := num(cell)
		if !ok {
			return nil, false
		}
		row[i] = f
	}
	return row, true
}

// ToTable coerces a raw list into a uniform rectangular numeric table. Ragged
// or non-numeric input is a validation error naming the table.
func ToTable(raw []any, name string) ([][]float64, error) {
	tbl := make([][]float64, len(raw))
	width := -1
	for i, elem := range raw {
		row, ok := asRow(elem)
		if !ok {
			return nil, Invalidf("AC: %s[%d] is not a numeric row, %s must be a 2D numeric table", name, i, name)
		}
		if width >= 0 && len(row) != width {
			return nil, Invalidf("AC: %s is ragged, row %d has %d cols, expected %d", name, i, len(row), width)
		}
		width = len(row)
		tbl[i] = row
	}
	return tbl, nil
}

// PadCols right-pads every row of tbl with zero columns up to minCols.
// Existing columns are never truncated or reordered.
func PadCols(tbl [][]float64, minCols int) [][]float64 {
	if len(tbl) == 0 || len(tbl[0]) >= minCols {
		return tbl
	}
	out := make([][]float64, len(tbl))
	for i, row := range tbl {
		padded := make([]float64, minCols)
		copy(padded, row)
		out[i] = padded
	}
	return out
}
