package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"powerflow/pkg/matrix"
)

func TestSystemMatrix_Solve(t *testing.T) {
	// | 2 1 | x = |  5 |  ->  x = (1, 3)
	// | 1 3 |     | 10 |
	sys, err := matrix.NewSystem(2)
	require.NoError(t, err)
	defer sys.Destroy()

	sys.AddElement(1, 1, 2)
	sys.AddElement(1, 2, 1)
	sys.AddElement(2, 1, 1)
	sys.AddElement(2, 2, 3)
	sys.AddRHS(1, 5)
	sys.AddRHS(2, 10)

	require.NoError(t, sys.Solve())

	sol := sys.Solution()
	assert.InDelta(t, 1.0, sol[1], 1e-12)
	assert.InDelta(t, 3.0, sol[2], 1e-12)
}

func TestSystemMatrix_AccumulatesStamps(t *testing.T) {
	sys, err := matrix.NewSystem(1)
	require.NoError(t, err)
	defer sys.Destroy()

	sys.AddElement(1, 1, 2)
	sys.AddElement(1, 1, 3)
	sys.AddRHS(1, 10)

	require.NoError(t, sys.Solve())
	assert.InDelta(t, 2.0, sys.Solution()[1], 1e-12)
}

func TestSystemMatrix_Singular(t *testing.T) {
	sys, err := matrix.NewSystem(2)
	require.NoError(t, err)
	defer sys.Destroy()

	sys.AddElement(1, 1, 1)
	sys.AddElement(1, 2, 1)
	sys.AddElement(2, 1, 1)
	sys.AddElement(2, 2, 1)
	sys.AddRHS(1, 1)

	assert.Error(t, sys.Solve())
}

func TestSystemMatrix_OutOfRangeStampsIgnored(t *testing.T) {
	sys, err := matrix.NewSystem(1)
	require.NoError(t, err)
	defer sys.Destroy()

	sys.AddElement(0, 1, 5)
	sys.AddElement(2, 2, 5)
	sys.AddRHS(9, 5)

	sys.AddElement(1, 1, 1)
	sys.AddRHS(1, 4)
	require.NoError(t, sys.Solve())
	assert.InDelta(t, 4.0, sys.Solution()[1], 1e-12)
}
