package acpf

import (
	"math"
	"math/cmplx"

	"powerflow/internal/consts"
	"powerflow/pkg/mpcase"
	"powerflow/pkg/solver"
)

// network holds the bus admittance matrix plus the per-branch two-port
// admittances needed to recover end flows after the solve.
type network struct {
	Y                  [][]complex128
	yff, yft, ytf, ytt []complex128
	fIdx, tIdx         []int
	inService          []bool
}

// buildNetwork assembles Ybus from the branch table (series impedance, line
// charging, off-nominal tap, phase shift, status) and the bus shunts.
// Branches with status 0 contribute nothing, matching the MATPOWER
// out-of-service convention; note a short branch row padded with zeros ends
// up out of service for exactly that reason.
func buildNetwork(env *solver.Envelope, id2idx map[int]int) (*network, error) {
	n := len(env.Bus)
	nb := len(env.Branch)

	nw := &network{
		Y:         make([][]complex128, n),
		yff:       make([]complex128, nb),
		yft:       make([]complex128, nb),
		ytf:       make([]complex128, nb),
		ytt:       make([]complex128, nb),
		fIdx:      make([]int, nb),
		tIdx:      make([]int, nb),
		inService: make([]bool, nb),
	}
	for i := range nw.Y {
		nw.Y[i] = make([]complex128, n)
	}

	for k, row := range env.Branch {
		f, fOK := id2idx[int(row[consts.BrF])]
		t, tOK := id2idx[int(row[consts.BrT])]
		if !fOK || !tOK {
			return nil, mpcase.Invalidf("AC: branch[%d] references unknown bus: f=%d, t=%d",
				k, int(row[consts.BrF]), int(row[consts.BrT]))
		}
		nw.fIdx[k] = f
		nw.tIdx[k] = t

		if row[consts.BrStatus] == 0 {
			continue
		}
		nw.inService[k] = true

		r, x := row[consts.BrR], row[consts.BrX]
		if r == 0 && x == 0 {
			return nil, mpcase.Invalidf("AC: branch[%d] has zero series impedance", k)
		}
		ys := 1 / complex(r, x)
		bc := complex(0, row[consts.BrB]/2)

		tap := row[consts.BrTap]
		if tap == 0 {
			tap = 1
		}
		shift := row[consts.BrShift] * math.Pi / 180
		tapc := complex(tap, 0) * cmplx.Exp(complex(0, shift))

		nw.ytt[k] = ys + bc
		nw.yff[k] = (ys + bc) / (tapc * cmplx.Conj(tapc))
		nw.yft[k] = -ys / cmplx.Conj(tapc)
		nw.ytf[k] = -ys / tapc

		nw.Y[f][f] += nw.yff[k]
		nw.Y[f][t] += nw.yft[k]
		nw.Y[t][f] += nw.ytf[k]
		nw.Y[t][t] += nw.ytt[k]
	}

	for i, row := range env.Bus {
		nw.Y[i][i] += complex(row[consts.BusGs], row[consts.BusBs]) / complex(env.BaseMVA, 0)
	}

	return nw, nil
}

// injections computes S[i] = V[i] * conj(sum_j Y[i][j] V[j]) for every bus.
func (nw *network) injections(V []complex128) []complex128 {
	S := make([]complex128, len(V))
	for i := range V {
		var I complex128
		for j, y := range nw.Y[i] {
			if y != 0 {
				I += y * V[j]
			}
		}
		S[i] = V[i] * cmplx.Conj(I)
	}
	return S
}

// flows returns the from-end and to-end complex flows of branch k in MVA.
func (nw *network) flows(k int, V []complex128, baseMVA float64) (complex128, complex128) {
	if !nw.inService[k] {
		return 0, 0
	}
	f, t := nw.fIdx[k], nw.tIdx[k]
	base := complex(baseMVA, 0)
	Sf := V[f] * cmplx.Conj(nw.yff[k]*V[f]+nw.yft[k]*V[t]) * base
	St := V[t] * cmplx.Conj(nw.ytf[k]*V[f]+nw.ytt[k]*V[t]) * base
	return Sf, St
}
