package matrix

import (
	"fmt"

	"github.com/edp1096/sparse"
)

// SystemMatrix is a real n x n linear system A*x = b backed by a sparse LU
// solver. Indices are 1-based, matching the solver's convention.
type SystemMatrix struct {
	Size     int
	matrix   *sparse.Matrix
	rhs      []float64
	solution []float64
}

func NewSystem(size int) (*SystemMatrix, error) {
	config := &sparse.Configuration{
		Real:           true,
		Complex:        false,
		Expandable:     true,
		Translate:      false,
		ModifiedNodal:  true,
		TiesMultiplier: 5,
		PrinterWidth:   140,
		Annotate:       0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %v", err)
	}

	return &SystemMatrix{
		Size:     size,
		matrix:   mat,
		rhs:      make([]float64, size+1), // 1-based indexing
		solution: make([]float64, size+1),
	}, nil
}

func (m *SystemMatrix) AddElement(i, j int, value float64) {
	if i <= 0 || j <= 0 || i > m.Size || j > m.Size {
		return
	}
	m.matrix.GetElement(int64(i), int64(j)).Real += value
}

func (m *SystemMatrix) AddRHS(i int, value float64) {
	if i <= 0 || i > m.Size {
		return
	}
	m.rhs[i] += value
}

func (m *SystemMatrix) Clear() {
	m.matrix.Clear()
	for i := range m.rhs {
		m.rhs[i] = 0
	}
}

// Solve factors the matrix and solves for the current RHS. A singular system
// surfaces as an error from the factorization or the solve.
func (m *SystemMatrix) Solve() error {
	err := m.matrix.Factor()
	if err != nil {
		return fmt.Errorf("matrix factorization failed: %v", err)
	}

	m.solution, err = m.matrix.Solve(m.rhs)
	if err != nil {
		return fmt.Errorf("matrix solve failed: %v", err)
	}

	return nil
}

// Solution returns the 1-based solution vector; index 0 is unused.
func (m *SystemMatrix) Solution() []float64 {
	return m.solution
}

func (m *SystemMatrix) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
	}
}
