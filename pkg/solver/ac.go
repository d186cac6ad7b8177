package solver

import (
	"fmt"

	"powerflow/internal/consts"
	"powerflow/pkg/mpcase"
)

// Envelope is the shaped case handed to an AC solving engine: rectangular
// MATPOWER tables padded to the minimum widths the engine expects.
type Envelope struct {
	Version string
	BaseMVA float64
	Bus     [][]float64
	Gen     [][]float64
	Branch  [][]float64
}

// Tables is the raw numeric output of an AC solving engine, in the fixed
// MATPOWER column layout.
type Tables struct {
	Bus    [][]float64
	Gen    [][]float64
	Branch [][]float64
}

// ACSolver is the external nonlinear solving capability. Option keys the
// engine does not know are skipped, not rejected. The success flag is the
// engine's own convergence verdict.
type ACSolver interface {
	Solve(env *Envelope, options map[string]any) (*Tables, bool, error)
}

// runAC shapes the case for the AC engine, invokes it and maps its raw
// tables into named records. Malformed input is a hard validation error, but
// a missing or failing engine is a soft outcome: a well-formed Result with
// converged=false and an error description.
func (e *Engine) runAC(raw map[string]any, options map[string]any) (*Result, error) {
	cas, err := mpcase.FromMap(raw)
	if err != nil {
		return nil, err
	}
	if cas.Bus == nil || cas.Gen == nil || cas.Branch == nil {
		return nil, mpcase.Invalidf("AC: case must contain bus/gen/branch in MATPOWER format")
	}
	if cas.BaseMVA <= 0 {
		return nil, mpcase.Invalidf("AC: baseMVA must be positive")
	}

	bus, err := mpcase.ToTable(cas.Bus, "bus")
	if err != nil {
		return nil, err
	}
	gen, err := mpcase.ToTable(cas.Gen, "gen")
	if err != nil {
		return nil, err
	}
	branch, err := mpcase.ToTable(cas.Branch, "branch")
	if err != nil {
		return nil, err
	}

	env := &Envelope{
		Version: cas.Version,
		BaseMVA: cas.BaseMVA,
		Bus:     mpcase.PadCols(bus, consts.MinBusCols),
		Gen:     mpcase.PadCols(gen, consts.MinGenCols),
		Branch:  mpcase.PadCols(branch, consts.MinBranchCols),
	}

	if e.ac == nil {
		return acFailure("AC solver not available: no solving engine configured"), nil
	}

	tables, success, err := e.ac.Solve(env, options)
	if err != nil {
		return acFailure(fmt.Sprintf("AC solve failed: %v", err)), nil
	}

	return mapACResult(tables, success), nil
}

// acFailure is the soft, reportable empty result for an unavailable or
// failing engine.
func acFailure(msg string) *Result {
	return &Result{
		Converged: false,
		Method:    "ac",
		Bus:       []map[string]any{},
		Branch:    []map[string]any{},
		Error:     msg,
	}
}

// optCol reads a column that may not exist in a narrow result table; missing
// columns surface as null in the output record.
func optCol(row []float64, col int) any {
	if col >= len(row) {
		return nil
	}
	return row[col]
}

// mapACResult turns the engine's raw tables into named per-bus and
// per-branch records, aggregating generator output per bus id.
func mapACResult(t *Tables, success bool) *Result {
	busOut := make([]map[string]any, len(t.Bus))
	busVM := make([]float64, len(t.Bus))
	for i, row := range t.Bus {
		busOut[i] = map[string]any{
			"id":      int(row[consts.BusI]),
			"Vm_pu":   row[consts.BusVm],
			"Va_deg":  row[consts.BusVa],
			"Pd_MW":   row[consts.BusPd],
			"Qd_Mvar": row[consts.BusQd],
			"Vmax_pu": optCol(row, consts.BusVmax),
			"Vmin_pu": optCol(row, consts.BusVmin),
		}
		busVM[i] = row[consts.BusVm]
	}

	type genSum struct{ pg, qg float64 }
	byBus := make(map[int]genSum)
	for _, row := range t.Gen {
		if len(row) <= consts.GenQg {
			continue
		}
		b := int(row[consts.GenBus])
		s := byBus[b]
		s.pg += row[consts.GenPg]
		s.qg += row[consts.GenQg]
		byBus[b] = s
	}
	for _, rec := range busOut {
		s := byBus[rec["id"].(int)] // zero totals when the bus has no generator
		rec["Pg_MW"] = s.pg
		rec["Qg_Mvar"] = s.qg
	}

	branchOut := make([]map[string]any, len(t.Branch))
	for i, row := range t.Branch {
		branchOut[i] = map[string]any{
			"idx":       i,
			"fbus":      int(row[consts.BrF]),
			"tbus":      int(row[consts.BrT]),
			"Pf_MW":     optCol(row, consts.BrPf),
			"Qf_Mvar":   optCol(row, consts.BrQf),
			"Pt_MW":     optCol(row, consts.BrPt),
			"Qt_Mvar":   optCol(row, consts.BrQt),
			"rateA_MVA": optCol(row, consts.BrRateA),
		}
	}

	return &Result{
		Converged: success,
		Method:    "ac",
		Bus:       busOut,
		Branch:    branchOut,
		BusVM:     busVM,
	}
}
