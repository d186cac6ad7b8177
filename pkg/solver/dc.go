package solver

import (
	"math"

	"powerflow/pkg/matrix"
	"powerflow/pkg/mpcase"
)

// runDC solves the linearized power-flow equations: build the bus
// susceptance matrix, fix the reference angle at zero, solve the reduced
// system for the remaining angles and derive per-branch real power flows.
// Any malformed input is a hard validation error; DC never returns a partial
// result.
func runDC(raw map[string]any) (*Result, error) {
	cas, err := mpcase.FromMap(raw)
	if err != nil {
		return nil, err
	}
	if len(cas.Bus) == 0 {
		return nil, mpcase.Invalidf("DC: case.bus must be a non-empty list")
	}
	if len(cas.Branch) == 0 {
		return nil, mpcase.Invalidf("DC: case.branch must be a non-empty list")
	}
	if cas.BaseMVA <= 0 {
		return nil, mpcase.Invalidf("DC: baseMVA must be positive")
	}

	buses, err := mpcase.NormalizeBuses(cas.Bus)
	if err != nil {
		return nil, err
	}
	branches, err := mpcase.NormalizeBranches(cas.Branch)
	if err != nil {
		return nil, err
	}

	n := len(buses)
	id2idx := make(map[int]int, n)
	for i, b := range buses {
		id2idx[b.ID] = i
	}
	slack := mpcase.SlackIndex(buses)

	// Net injections in pu: (Pg - Pd)/baseMVA
	P := make([]float64, n)
	for i, b := range buses {
		P[i] = (b.Pg - b.Pd) / cas.BaseMVA
	}

	stamps := make([]bstamp, len(branches))
	for k, br := range branches {
		f, fOK := id2idx[br.From]
		t, tOK := id2idx[br.To]
		if !fOK || !tOK {
			return nil, mpcase.Invalidf("DC: branch[%d] references unknown bus: f=%d, t=%d", k, br.From, br.To)
		}
		if br.X == 0 {
			return nil, mpcase.Invalidf("DC: branch[%d] x cannot be 0", k)
		}
		stamps[k] = bstamp{f: f, t: t, b: 1.0 / br.X}
	}

	theta := make([]float64, n)
	if n > 1 {
		theta, err = solveAngles(n, slack, stamps, P)
		if err != nil {
			return nil, err
		}
	}

	busOut := make([]map[string]any, n)
	for i, b := range buses {
		busOut[i] = map[string]any{
			"id":      b.ID,
			"Va_deg":  theta[i] * 180.0 / math.Pi,
			"Pinj_pu": P[i],
		}
	}

	branchOut := make([]map[string]any, len(branches))
	for k, br := range branches {
		s := stamps[k]
		branchOut[k] = map[string]any{
			"idx":    k,
			"Pft_pu": (theta[s.f] - theta[s.t]) / br.X,
		}
	}

	return &Result{
		Converged: true,
		Method:    "dc",
		Bus:       busOut,
		Branch:    branchOut,
	}, nil
}

// bstamp is one branch susceptance contribution between dense bus indices.
type bstamp struct {
	f, t int
	b    float64
}

// solveAngles builds the susceptance system directly in its reduced form:
// the reference row and column are left out and its diagonal contributions
// from incident branches are kept, which is equivalent to assembling the full
// B matrix and deleting the reference row/column.
func solveAngles(n, slack int, stamps []bstamp, P []float64) ([]float64, error) {
	// 1-based reduced index per non-reference bus
	red := make([]int, n)
	pos := 0
	for i := range n {
		if i == slack {
			red[i] = 0
			continue
		}
		pos++
		red[i] = pos
	}

	sys, err := matrix.NewSystem(n - 1)
	if err != nil {
		return nil, err
	}
	defer sys.Destroy()

	for _, s := range stamps {
		fr, tr := red[s.f], red[s.t]
		if fr > 0 {
			sys.AddElement(fr, fr, s.b)
		}
		if tr > 0 {
			sys.AddElement(tr, tr, s.b)
		}
		if fr > 0 && tr > 0 {
			sys.AddElement(fr, tr, -s.b)
			sys.AddElement(tr, fr, -s.b)
		}
	}
	for i := range n {
		if red[i] > 0 {
			sys.AddRHS(red[i], P[i])
		}
	}

	if err := sys.Solve(); err != nil {
		return nil, mpcase.Invalidf("DC: singular B matrix / disconnected network: %v", err)
	}

	sol := sys.Solution()
	theta := make([]float64, n)
	for i := range n {
		if red[i] > 0 {
			theta[i] = sol[red[i]]
		}
	}
	theta[slack] = 0.0
	return theta, nil
}
