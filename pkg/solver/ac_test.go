package solver_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"powerflow/pkg/mpcase"
	"powerflow/pkg/solver"
)

// stubAC records what the adapter hands over and plays back canned tables.
type stubAC struct {
	env     *solver.Envelope
	options map[string]any
	tables  *solver.Tables
	success bool
	err     error
}

func (s *stubAC) Solve(env *solver.Envelope, options map[string]any) (*solver.Tables, bool, error) {
	s.env = env
	s.options = options
	return s.tables, s.success, s.err
}

func minimalACCase() map[string]any {
	return map[string]any{
		"baseMVA": 100.0,
		"bus": []any{
			[]any{1.0, 3.0, 0.0},
			[]any{2.0, 1.0, 40.0},
		},
		"gen": []any{
			[]any{1.0, 50.0},
		},
		"branch": []any{
			[]any{1.0, 2.0, 0.01, 0.1},
		},
	}
}

func TestAC_PadsTablesForSolver(t *testing.T) {
	stub := &stubAC{tables: &solver.Tables{}, success: true}
	_, err := solver.NewEngine(stub).RunPF(minimalACCase(), "ac", map[string]any{"max_it": 20.0})
	require.NoError(t, err)
	require.NotNil(t, stub.env)

	assert.Equal(t, "2", stub.env.Version)
	assert.Equal(t, 100.0, stub.env.BaseMVA)

	require.Len(t, stub.env.Bus, 2)
	assert.Len(t, stub.env.Bus[0], 13)
	assert.Len(t, stub.env.Gen[0], 21)
	assert.Len(t, stub.env.Branch[0], 13)

	// original cells survive in place, padding is exactly zero
	assert.Equal(t, []float64{1, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, stub.env.Bus[0])
	assert.Equal(t, []float64{2, 1, 40, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, stub.env.Bus[1])
	assert.Equal(t, 50.0, stub.env.Gen[0][1])
	assert.Equal(t, 0.1, stub.env.Branch[0][3])

	// options forwarded untouched
	assert.Equal(t, map[string]any{"max_it": 20.0}, stub.options)
}

func TestAC_SolverUnavailable(t *testing.T) {
	res, err := solver.NewEngine(nil).RunPF(minimalACCase(), "ac", nil)
	require.NoError(t, err)

	assert.False(t, res.Converged)
	assert.Equal(t, "ac", res.Method)
	assert.Empty(t, res.Bus)
	assert.Empty(t, res.Branch)
	assert.NotEmpty(t, res.Error)

	payload := res.Map()
	assert.Equal(t, []any{}, payload["bus"])
	assert.Equal(t, []any{}, payload["branch"])
	assert.NotContains(t, payload, "bus_vm")
}

func TestAC_SolverErrorIsSoft(t *testing.T) {
	stub := &stubAC{err: errors.New("jacobian blew up")}
	res, err := solver.NewEngine(stub).RunPF(minimalACCase(), "ac", nil)
	require.NoError(t, err)

	assert.False(t, res.Converged)
	assert.Contains(t, res.Error, "jacobian blew up")
	assert.Empty(t, res.Bus)
}

func TestAC_MapsSolverTables(t *testing.T) {
	wide := make([]float64, 17)
	copy(wide, []float64{1, 2, 0, 0.02, 0, 150, 0, 0, 0, 0, 1, -360, 360, 25.5, 3.2, -25.1, -2.9})

	stub := &stubAC{
		success: true,
		tables: &solver.Tables{
			Bus: [][]float64{
				{1, 3, 10, 5, 0, 0, 1, 1.04, 0, 0, 1, 1.1, 0.9},
				{2, 1, 40, 12, 0, 0, 1, 0.98, -3.5, 0, 1, 1.1, 0.9},
			},
			Gen: [][]float64{
				{1, 30, 4, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
				{1, 20, 2, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			},
			Branch: [][]float64{
				wide,
				{2, 1, 0, 0.05, 0, 0, 0, 0, 0, 0, 1, -360, 360}, // no flow columns
			},
		},
	}

	res, err := solver.NewEngine(stub).RunPF(minimalACCase(), "ac", nil)
	require.NoError(t, err)
	require.True(t, res.Converged)

	require.Len(t, res.Bus, 2)
	b1 := res.Bus[0]
	assert.Equal(t, 1, b1["id"])
	assert.Equal(t, 1.04, b1["Vm_pu"])
	assert.Equal(t, 0.0, b1["Va_deg"])
	assert.Equal(t, 10.0, b1["Pd_MW"])
	assert.Equal(t, 5.0, b1["Qd_Mvar"])
	assert.Equal(t, 1.1, b1["Vmax_pu"])
	assert.Equal(t, 0.9, b1["Vmin_pu"])

	// generator rows on the same bus are summed; a bus with no generator
	// reports zero, not a missing field
	assert.Equal(t, 50.0, b1["Pg_MW"])
	assert.Equal(t, 6.0, b1["Qg_Mvar"])
	assert.Equal(t, 0.0, res.Bus[1]["Pg_MW"])
	assert.Equal(t, 0.0, res.Bus[1]["Qg_Mvar"])

	require.Len(t, res.Branch, 2)
	br0 := res.Branch[0]
	assert.Equal(t, 0, br0["idx"])
	assert.Equal(t, 1, br0["fbus"])
	assert.Equal(t, 2, br0["tbus"])
	assert.Equal(t, 25.5, br0["Pf_MW"])
	assert.Equal(t, 3.2, br0["Qf_Mvar"])
	assert.Equal(t, -25.1, br0["Pt_MW"])
	assert.Equal(t, -2.9, br0["Qt_Mvar"])
	assert.Equal(t, 150.0, br0["rateA_MVA"])

	br1 := res.Branch[1]
	assert.Equal(t, 1, br1["idx"])
	assert.Nil(t, br1["Pf_MW"])
	assert.Nil(t, br1["Qt_Mvar"])

	assert.Equal(t, []float64{1.04, 0.98}, res.BusVM)
}

func TestAC_ValidationErrors(t *testing.T) {
	t.Run("missing table", func(t *testing.T) {
		cas := minimalACCase()
		delete(cas, "gen")
		_, err := solver.NewEngine(&stubAC{}).RunPF(cas, "ac", nil)
		require.Error(t, err)
		assert.True(t, mpcase.IsValidation(err))
		assert.Contains(t, err.Error(), "bus/gen/branch")
	})

	t.Run("ragged table", func(t *testing.T) {
		cas := minimalACCase()
		cas["bus"] = []any{[]any{1.0, 3.0, 0.0}, []any{2.0}}
		_, err := solver.NewEngine(&stubAC{}).RunPF(cas, "ac", nil)
		require.Error(t, err)
		assert.True(t, mpcase.IsValidation(err))
	})

	t.Run("non-positive baseMVA", func(t *testing.T) {
		cas := minimalACCase()
		cas["baseMVA"] = 0.0
		_, err := solver.NewEngine(&stubAC{}).RunPF(cas, "ac", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "baseMVA")
	})
}
