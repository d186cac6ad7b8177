package solver

// Result is the uniform output of a solve, shared by the DC and AC paths.
// Bus and Branch hold per-element records keyed by the boundary field names
// (id, Va_deg, Pft_pu, ...); BusVM and Error only appear on the AC path.
type Result struct {
	Converged bool
	Method    string
	Bus       []map[string]any
	Branch    []map[string]any
	BusVM     []float64
	Error     string
}

// Map renders the result as the boundary payload. The sanitizer always runs,
// so every value crossing the boundary is a JSON primitive, a sequence or a
// mapping regardless of what the solving path produced.
func (r *Result) Map() map[string]any {
	bus := r.Bus
	if bus == nil {
		bus = []map[string]any{}
	}
	branch := r.Branch
	if branch == nil {
		branch = []map[string]any{}
	}

	payload := map[string]any{
		"converged": r.Converged,
		"method":    r.Method,
		"bus":       bus,
		"branch":    branch,
	}
	if r.BusVM != nil {
		payload["bus_vm"] = r.BusVM
	}
	if r.Error != "" {
		payload["error"] = r.Error
	}

	return Sanitize(payload).(map[string]any)
}
