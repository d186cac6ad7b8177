package solver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"powerflow/pkg/mpcase"
	"powerflow/pkg/solver"
)

func TestRunPF_MethodDispatch(t *testing.T) {
	t.Run("method is trimmed and case-folded", func(t *testing.T) {
		res, err := solver.NewEngine(nil).RunPF(threeBusCase(), " DC ", nil)
		require.NoError(t, err)
		assert.Equal(t, "dc", res.Method)
		assert.True(t, res.Converged)
	})

	t.Run("ac dispatches to the configured engine", func(t *testing.T) {
		stub := &stubAC{tables: &solver.Tables{}, success: true}
		res, err := solver.NewEngine(stub).RunPF(minimalACCase(), "AC", nil)
		require.NoError(t, err)
		assert.Equal(t, "ac", res.Method)
		assert.NotNil(t, stub.env)
	})

	t.Run("unknown method names the offender", func(t *testing.T) {
		_, err := solver.NewEngine(nil).RunPF(threeBusCase(), "lf", nil)
		require.Error(t, err)
		assert.True(t, mpcase.IsValidation(err))
		assert.Contains(t, err.Error(), "lf")
		assert.Contains(t, err.Error(), "dc/ac")
	})
}
