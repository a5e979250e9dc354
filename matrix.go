package corrplot

import "gonum.org/v1/gonum/mat"

// Matrix is a rectangular table of statistics whose rows and columns are
// both variable names: rows are the y variables, columns the x variables,
// in the order the caller requested.
type Matrix struct {
	rows []string
	cols []string
	data *mat.Dense
}

func newMatrix(rows, cols []string) *Matrix {
	return &Matrix{
		rows: append([]string(nil), rows...),
		cols: append([]string(nil), cols...),
		data: mat.NewDense(len(rows), len(cols), nil),
	}
}

// RowNames returns the ordered row (y variable) names.
func (m *Matrix) RowNames() []string { return append([]string(nil), m.rows...) }

// ColNames returns the ordered column (x variable) names.
func (m *Matrix) ColNames() []string { return append([]string(nil), m.cols...) }

// Dims returns the matrix dimensions.
func (m *Matrix) Dims() (rows, cols int) { return len(m.rows), len(m.cols) }

// At returns the entry at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.data.At(i, j) }

// Flatten returns the entries row-major.
func (m *Matrix) Flatten() []float64 {
	r, c := m.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out = append(out, m.data.At(i, j))
		}
	}
	return out
}

// Dense exposes the underlying matrix for rendering and numeric
// consumers. The returned value is the live backing store, not a copy.
func (m *Matrix) Dense() *mat.Dense { return m.data }
