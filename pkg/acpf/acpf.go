// Package acpf is a full Newton-Raphson AC power-flow engine over MATPOWER
// tables. It implements the solver.ACSolver contract, so the AC adapter can
// run against it, against a stub, or against nothing at all.
package acpf

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"powerflow/internal/consts"
	"powerflow/pkg/matrix"
	"powerflow/pkg/solver"
)

const (
	defaultTol     = 1e-8
	defaultMaxIter = 10
)

type Engine struct {
	Tol     float64
	MaxIter int
}

func New() *Engine {
	return &Engine{Tol: defaultTol, MaxIter: defaultMaxIter}
}

// applyOptions overlays caller options best-effort: known keys adjust the
// run, unknown keys are skipped without failing the call.
func (e *Engine) applyOptions(options map[string]any) (tol float64, maxIter int) {
	tol, maxIter = e.Tol, e.MaxIter
	if tol <= 0 {
		tol = defaultTol
	}
	if maxIter <= 0 {
		maxIter = defaultMaxIter
	}
	for key, val := range options {
		f, ok := val.(float64)
		if !ok {
			if i, isInt := val.(int); isInt {
				f, ok = float64(i), true
			}
		}
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "tol", "pf_tol":
			if f > 0 {
				tol = f
			}
		case "max_it", "pf_max_it":
			if f >= 1 {
				maxIter = int(f)
			}
		}
	}
	return tol, maxIter
}

// Solve runs Newton-Raphson in polar form on the padded case tables and
// returns result tables in the same layout, with Vm/Va written back to the
// bus table, slack P and per-bus Q written to the gen table, and end flows in
// branch columns 13-16. The success flag reports convergence; an error is
// reserved for cases the engine cannot even set up.
func (e *Engine) Solve(env *solver.Envelope, options map[string]any) (*solver.Tables, bool, error) {
	tol, maxIter := e.applyOptions(options)

	n := len(env.Bus)
	if n == 0 {
		return nil, false, fmt.Errorf("empty bus table")
	}
	if env.BaseMVA <= 0 {
		return nil, false, fmt.Errorf("baseMVA must be positive")
	}

	id2idx := make(map[int]int, n)
	for i, row := range env.Bus {
		id := int(row[consts.BusI])
		if _, dup := id2idx[id]; dup {
			return nil, false, fmt.Errorf("duplicated bus id=%d", id)
		}
		id2idx[id] = i
	}

	nw, err := buildNetwork(env, id2idx)
	if err != nil {
		return nil, false, err
	}

	// Online generation per bus, for injections and bus-type demotion
	pgSum := make([]float64, n)
	qgSum := make([]float64, n)
	genOn := make([]bool, n)
	vg := make([]float64, n)
	for k, row := range env.Gen {
		b, ok := id2idx[int(row[consts.GenBus])]
		if !ok {
			return nil, false, fmt.Errorf("gen[%d] references unknown bus %d", k, int(row[consts.GenBus]))
		}
		if row[consts.GenStatus] == 0 {
			continue
		}
		pgSum[b] += row[consts.GenPg]
		qgSum[b] += row[consts.GenQg]
		genOn[b] = true
		if vg[b] == 0 && row[consts.GenVg] > 0 {
			vg[b] = row[consts.GenVg]
		}
	}

	// Bus classification; a PV bus without an online generator cannot hold
	// its setpoint and is treated as PQ
	ref := -1
	var pvpq, pq []int
	for i, row := range env.Bus {
		switch int(row[consts.BusType]) {
		case consts.TypeRef:
			if ref < 0 {
				ref = i
			} else {
				pvpq = append(pvpq, i) // extra refs solve as PV
			}
		case consts.TypePV:
			pvpq = append(pvpq, i)
			if !genOn[i] {
				pq = append(pq, i)
			}
		default:
			pvpq = append(pvpq, i)
			pq = append(pq, i)
		}
	}
	if ref < 0 {
		return nil, false, fmt.Errorf("no reference bus in case")
	}

	// Flat-ish start: bus voltages, overridden by generator setpoints
	Vm := make([]float64, n)
	Va := make([]float64, n)
	for i, row := range env.Bus {
		Vm[i] = row[consts.BusVm]
		if Vm[i] <= 0 {
			Vm[i] = 1
		}
		Va[i] = row[consts.BusVa] * math.Pi / 180
		if vg[i] > 0 {
			Vm[i] = vg[i]
		}
	}

	// Specified injections in pu
	Sbus := make([]complex128, n)
	for i, row := range env.Bus {
		Sbus[i] = complex(
			(pgSum[i]-row[consts.BusPd])/env.BaseMVA,
			(qgSum[i]-row[consts.BusQd])/env.BaseMVA,
		)
	}

	V := make([]complex128, n)
	refreshV := func() {
		for i := range V {
			V[i] = cmplx.Rect(Vm[i], Va[i])
		}
	}
	refreshV()

	converged := false
	for iter := 0; iter <= maxIter; iter++ {
		S := nw.injections(V)
		if mismatchNorm(S, Sbus, pvpq, pq) < tol {
			converged = true
			break
		}
		if iter == maxIter {
			break
		}
		if err := newtonStep(nw, V, Vm, Va, S, Sbus, pvpq, pq); err != nil {
			return nil, false, err
		}
		refreshV()
	}

	return assembleTables(env, nw, V, Vm, Va, id2idx, ref, converged), converged, nil
}

func mismatchNorm(S, Sbus []complex128, pvpq, pq []int) float64 {
	norm := 0.0
	for _, i := range pvpq {
		norm = math.Max(norm, math.Abs(real(Sbus[i])-real(S[i])))
	}
	for _, i := range pq {
		norm = math.Max(norm, math.Abs(imag(Sbus[i])-imag(S[i])))
	}
	return norm
}

// newtonStep assembles the polar Jacobian rows [dP dtheta, dP dVm; dQ dtheta,
// dQ dVm], solves it against the current mismatch and applies the update.
func newtonStep(nw *network, V []complex128, Vm, Va []float64, S, Sbus []complex128, pvpq, pq []int) error {
	n := len(V)

	// Unknown positions, 1-based for the solver: theta for pvpq then Vm for pq
	thPos := make([]int, n)
	vmPos := make([]int, n)
	pos := 0
	for _, i := range pvpq {
		pos++
		thPos[i] = pos
	}
	for _, i := range pq {
		pos++
		vmPos[i] = pos
	}

	sys, err := matrix.NewSystem(pos)
	if err != nil {
		return err
	}
	defer sys.Destroy()

	// One equation row per unknown: P rows share positions with theta
	// unknowns, Q rows with Vm unknowns
	for _, i := range pvpq {
		row := thPos[i]
		Pi, Qi := real(S[i]), imag(S[i])
		for j := range n {
			y := nw.Y[i][j]
			if y == 0 && j != i {
				continue
			}
			G, B := real(y), imag(y)
			if j == i {
				sys.AddElement(row, thPos[i], -Qi-B*Vm[i]*Vm[i])
				if vmPos[i] > 0 {
					sys.AddElement(row, vmPos[i], Pi/Vm[i]+G*Vm[i])
				}
				continue
			}
			sin, cos := math.Sin(Va[i]-Va[j]), math.Cos(Va[i]-Va[j])
			if thPos[j] > 0 {
				sys.AddElement(row, thPos[j], Vm[i]*Vm[j]*(G*sin-B*cos))
			}
			if vmPos[j] > 0 {
				sys.AddElement(row, vmPos[j], Vm[i]*(G*cos+B*sin))
			}
		}
		sys.AddRHS(row, real(Sbus[i])-Pi)
	}

	for _, i := range pq {
		row := vmPos[i]
		Pi, Qi := real(S[i]), imag(S[i])
		for j := range n {
			y := nw.Y[i][j]
			if y == 0 && j != i {
				continue
			}
			G, B := real(y), imag(y)
			if j == i {
				sys.AddElement(row, thPos[i], Pi-G*Vm[i]*Vm[i])
				sys.AddElement(row, vmPos[i], Qi/Vm[i]-B*Vm[i])
				continue
			}
			sin, cos := math.Sin(Va[i]-Va[j]), math.Cos(Va[i]-Va[j])
			if thPos[j] > 0 {
				sys.AddElement(row, thPos[j], -Vm[i]*Vm[j]*(G*cos+B*sin))
			}
			if vmPos[j] > 0 {
				sys.AddElement(row, vmPos[j], Vm[i]*(G*sin-B*cos))
			}
		}
		sys.AddRHS(row, imag(Sbus[i])-Qi)
	}

	if err := sys.Solve(); err != nil {
		return fmt.Errorf("jacobian solve failed: %v", err)
	}

	sol := sys.Solution()
	for _, i := range pvpq {
		Va[i] += sol[thPos[i]]
	}
	for _, i := range pq {
		Vm[i] += sol[vmPos[i]]
	}
	return nil
}

// assembleTables writes the solved state back into copies of the input
// tables: Vm/Va on buses, slack P and per-bus Q on the first online
// generator of each bus, and end flows in branch columns 13-16.
func assembleTables(env *solver.Envelope, nw *network, V []complex128, Vm, Va []float64, id2idx map[int]int, ref int, converged bool) *solver.Tables {
	out := &solver.Tables{
		Bus:    copyTable(env.Bus, consts.MinBusCols),
		Gen:    copyTable(env.Gen, consts.MinGenCols),
		Branch: copyTable(env.Branch, consts.BrQt+1),
	}

	for i := range out.Bus {
		out.Bus[i][consts.BusVm] = Vm[i]
		out.Bus[i][consts.BusVa] = Va[i] * 180 / math.Pi
	}

	if converged {
		S := nw.injections(V)

		// Per-bus generation totals implied by the solution
		for b := range len(out.Bus) {
			first := -1
			var othersPg, othersQg float64
			for k, row := range out.Gen {
				if int(row[consts.GenBus]) != int(out.Bus[b][consts.BusI]) || row[consts.GenStatus] == 0 {
					continue
				}
				if first < 0 {
					first = k
					continue
				}
				othersPg += row[consts.GenPg]
				othersQg += row[consts.GenQg]
			}
			if first < 0 {
				continue
			}
			qTotal := imag(S[b])*env.BaseMVA + out.Bus[b][consts.BusQd]
			out.Gen[first][consts.GenQg] = qTotal - othersQg
			if b == ref {
				pTotal := real(S[b])*env.BaseMVA + out.Bus[b][consts.BusPd]
				out.Gen[first][consts.GenPg] = pTotal - othersPg
			}
		}

		for k := range out.Branch {
			Sf, St := nw.flows(k, V, env.BaseMVA)
			out.Branch[k][consts.BrPf] = real(Sf)
			out.Branch[k][consts.BrQf] = imag(Sf)
			out.Branch[k][consts.BrPt] = real(St)
			out.Branch[k][consts.BrQt] = imag(St)
		}
	}

	return out
}

func copyTable(tbl [][]float64, minCols int) [][]float64 {
	out := make([][]float64, len(tbl))
	for i, row := range tbl {
		width := len(row)
		if width < minCols {
			width = minCols
		}
		r := make([]float64, width)
		copy(r, row)
		out[i] = r
	}
	return out
}

var _ solver.ACSolver = (*Engine)(nil)
