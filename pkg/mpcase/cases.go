package mpcase

import "strings"

// Bundled reference cases in MATPOWER table layout, so callers can submit
// {"case_id": "case9"} instead of full tables. Tables are deep-copied on
// lookup: the AC path writes solved values back into them.

var case9Bus = [][]float64{
	{1, 3, 0, 0, 0, 0, 1, 1, 0, 345, 1, 1.1, 0.9},
	{2, 2, 0, 0, 0, 0, 1, 1, 0, 345, 1, 1.1, 0.9},
	{3, 2, 0, 0, 0, 0, 1, 1, 0, 345, 1, 1.1, 0.9},
	{4, 1, 0, 0, 0, 0, 1, 1, 0, 345, 1, 1.1, 0.9},
	{5, 1, 90, 30, 0, 0, 1, 1, 0, 345, 1, 1.1, 0.9},
	{6, 1, 0, 0, 0, 0, 1, 1, 0, 345, 1, 1.1, 0.9},
	{7, 1, 100, 35, 0, 0, 1, 1, 0, 345, 1, 1.1, 0.9},
	{8, 1, 0, 0, 0, 0, 1, 1, 0, 345, 1, 1.1, 0.9},
	{9, 1, 125, 50, 0, 0, 1, 1, 0, 345, 1, 1.1, 0.9},
}

var case9Gen = [][]float64{
	{1, 0, 0, 300, -300, 1, 100, 1, 250, 10, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{2, 163, 0, 300, -300, 1, 100, 1, 300, 10, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{3, 85, 0, 300, -300, 1, 100, 1, 270, 10, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
}

var case9Branch = [][]float64{
	{1, 4, 0, 0.0576, 0, 250, 250, 250, 0, 0, 1, -360, 360},
	{4, 5, 0.017, 0.092, 0.158, 250, 250, 250, 0, 0, 1, -360, 360},
	{5, 6, 0.039, 0.17, 0.358, 150, 150, 150, 0, 0, 1, -360, 360},
	{3, 6, 0, 0.0586, 0, 300, 300, 300, 0, 0, 1, -360, 360},
	{6, 7, 0.0119, 0.1008, 0.209, 150, 150, 150, 0, 0, 1, -360, 360},
	{7, 8, 0.0085, 0.072, 0.149, 250, 250, 250, 0, 0, 1, -360, 360},
	{8, 2, 0, 0.0625, 0, 250, 250, 250, 0, 0, 1, -360, 360},
	{8, 9, 0.032, 0.161, 0.306, 250, 250, 250, 0, 0, 1, -360, 360},
	{9, 4, 0.01, 0.085, 0.176, 250, 250, 250, 0, 0, 1, -360, 360},
}

var case14Bus = [][]float64{
	{1, 3, 0, 0, 0, 0, 1, 1.06, 0, 0, 1, 1.06, 0.94},
	{2, 2, 21.7, 12.7, 0, 0, 1, 1.045, -4.98, 0, 1, 1.06, 0.94},
	{3, 2, 94.2, 19, 0, 0, 1, 1.01, -12.72, 0, 1, 1.06, 0.94},
	{4, 1, 47.8, -3.9, 0, 0, 1, 1.019, -10.33, 0, 1, 1.06, 0.94},
	{5, 1, 7.6, 1.6, 0, 0, 1, 1.02, -8.78, 0, 1, 1.06, 0.94},
	{6, 2, 11.2, 7.5, 0, 0, 1, 1.07, -14.22, 0, 1, 1.06, 0.94},
	{7, 1, 0, 0, 0, 0, 1, 1.062, -13.37, 0, 1, 1.06, 0.94},
	{8, 2, 0, 0, 0, 0, 1, 1.09, -13.36, 0, 1, 1.06, 0.94},
	{9, 1, 29.5, 16.6, 0, 19, 1, 1.056, -14.94, 0, 1, 1.06, 0.94},
	{10, 1, 9, 5.8, 0, 0, 1, 1.051, -15.1, 0, 1, 1.06, 0.94},
	{11, 1, 3.5, 1.8, 0, 0, 1, 1.057, -14.79, 0, 1, 1.06, 0.94},
	{12, 1, 6.1, 1.6, 0, 0, 1, 1.055, -15.07, 0, 1, 1.06, 0.94},
	{13, 1, 13.5, 5.8, 0, 0, 1, 1.05, -15.16, 0, 1, 1.06, 0.94},
	{14, 1, 14.9, 5, 0, 0, 1, 1.036, -16.04, 0, 1, 1.06, 0.94},
}

var case14Gen = [][]float64{
	{1, 232.4, -16.9, 10, 0, 1.06, 100, 1, 332.4, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{2, 40, 42.4, 50, -40, 1.045, 100, 1, 140, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{3, 0, 23.4, 40, 0, 1.01, 100, 1, 100, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{6, 0, 12.2, 24, -6, 1.07, 100, 1, 100, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{8, 0, 17.4, 24, -6, 1.09, 100, 1, 100, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
}

var case14Branch = [][]float64{
	{1, 2, 0.01938, 0.05917, 0.0528, 0, 0, 0, 0, 0, 1, -360, 360},
	{1, 5, 0.05403, 0.22304, 0.0492, 0, 0, 0, 0, 0, 1, -360, 360},
	{2, 3, 0.04699, 0.19797, 0.0438, 0, 0, 0, 0, 0, 1, -360, 360},
	{2, 4, 0.05811, 0.17632, 0.034, 0, 0, 0, 0, 0, 1, -360, 360},
	{2, 5, 0.05695, 0.17388, 0.0346, 0, 0, 0, 0, 0, 1, -360, 360},
	{3, 4, 0.06701, 0.17103, 0.0128, 0, 0, 0, 0, 0, 1, -360, 360},
	{4, 5, 0.01335, 0.04211, 0, 0, 0, 0, 0, 0, 1, -360, 360},
	{4, 7, 0, 0.20912, 0, 0, 0, 0, 0.978, 0, 1, -360, 360},
	{4, 9, 0, 0.55618, 0, 0, 0, 0, 0.969, 0, 1, -360, 360},
	{5, 6, 0, 0.25202, 0, 0, 0, 0, 0.932, 0, 1, -360, 360},
	{6, 11, 0.09498, 0.1989, 0, 0, 0, 0, 0, 0, 1, -360, 360},
	{6, 12, 0.12291, 0.25581, 0, 0, 0, 0, 0, 0, 1, -360, 360},
	{6, 13, 0.06615, 0.13027, 0, 0, 0, 0, 0, 0, 1, -360, 360},
	{7, 8, 0, 0.17615, 0, 0, 0, 0, 0, 0, 1, -360, 360},
	{7, 9, 0, 0.11001, 0, 0, 0, 0, 0, 0, 1, -360, 360},
	{9, 10, 0.03181, 0.0845, 0, 0, 0, 0, 0, 0, 1, -360, 360},
	{9, 14, 0.12711, 0.27038, 0, 0, 0, 0, 0, 0, 1, -360, 360},
	{10, 11, 0.08205, 0.19207, 0, 0, 0, 0, 0, 0, 1, -360, 360},
	{12, 13, 0.22092, 0.19988, 0, 0, 0, 0, 0, 0, 1, -360, 360},
	{13, 14, 0.17093, 0.34802, 0, 0, 0, 0, 0, 0, 1, -360, 360},
}

func cloneTable(tbl [][]float64) []any {
	out := make([]any, len(tbl))
	for i, row := range tbl {
		r := make([]float64, len(row))
		copy(r, row)
		out[i] = r
	}
	return out
}

func bundledCase(bus, gen, branch [][]float64) map[string]any {
	return map[string]any{
		"version": "2",
		"baseMVA": 100.0,
		"bus":     cloneTable(bus),
		"gen":     cloneTable(gen),
		"branch":  cloneTable(branch),
	}
}

// Bundled resolves a case alias to a full MATPOWER-style mapping.
func Bundled(id string) (map[string]any, bool) {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case "case9", "ieee9", "ieee-9", "9":
		return bundledCase(case9Bus, case9Gen, case9Branch), true
	case "case14", "ieee14", "ieee-14", "14":
		return bundledCase(case14Bus, case14Gen, case14Branch), true
	default:
		return nil, false
	}
}

// ExpandCase replaces a {"case_id": ...} (or "id"/"name") stub with the
// bundled tables. A mapping without a case alias passes through untouched.
func ExpandCase(m map[string]any) (map[string]any, error) {
	var alias any
	for _, key := range []string{"case_id", "id", "name"} {
		if v, ok := m[key]; ok && v != nil {
			alias = v
			break
		}
	}
	if alias == nil {
		return m, nil
	}

	s, ok := alias.(string)
	if !ok {
		return nil, Invalidf("case_id must be a string")
	}
	full, ok := Bundled(s)
	if !ok {
		return nil, Invalidf("unknown case_id: %s", s)
	}
	return full, nil
}
