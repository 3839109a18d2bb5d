// Package matrix provides the sparse linear algebra used by the echo
// engine: a compressed sparse row matrix, small vector helpers, and a
// conjugate-gradient solver for the regularized backward step.
package matrix

import "sort"

// Builder accumulates matrix entries before freezing them into a Sparse.
// Adding to the same cell twice accumulates; the influence weights are
// defined additively across group memberships.
type Builder struct {
	n    int
	rows []map[int]float64
}

// NewBuilder returns a Builder for an n×n matrix.
func NewBuilder(n int) *Builder {
	rows := make([]map[int]float64, n)
	return &Builder{n: n, rows: rows}
}

// Add accumulates v into cell (i, j). Out-of-range indices are ignored.
func (b *Builder) Add(i, j int, v float64) {
	if i < 0 || i >= b.n || j < 0 || j >= b.n {
		return
	}
	if b.rows[i] == nil {
		b.rows[i] = make(map[int]float64)
	}
	b.rows[i][j] += v
}

// Set overwrites cell (i, j).
func (b *Builder) Set(i, j int, v float64) {
	if i < 0 || i >= b.n || j < 0 || j >= b.n {
		return
	}
	if b.rows[i] == nil {
		b.rows[i] = make(map[int]float64)
	}
	b.rows[i][j] = v
}

// RowSum returns the current sum of row i.
func (b *Builder) RowSum(i int) float64 {
	var sum float64
	for _, v := range b.rows[i] {
		sum += v
	}
	return sum
}

// ScaleRow multiplies every entry of row i by f.
func (b *Builder) ScaleRow(i int, f float64) {
	for j, v := range b.rows[i] {
		b.rows[i][j] = v * f
	}
}

// Build freezes the accumulated entries into an immutable Sparse with
// column indices sorted within each row.
func (b *Builder) Build() *Sparse {
	m := &Sparse{
		n:      b.n,
		rowPtr: make([]int, b.n+1),
	}
	nnz := 0
	for _, row := range b.rows {
		nnz += len(row)
	}
	m.colInd = make([]int, 0, nnz)
	m.vals = make([]float64, 0, nnz)

	for i := 0; i < b.n; i++ {
		m.rowPtr[i] = len(m.colInd)
		row := b.rows[i]
		cols := make([]int, 0, len(row))
		for j := range row {
			cols = append(cols, j)
		}
		sort.Ints(cols)
		for _, j := range cols {
			m.colInd = append(m.colInd, j)
			m.vals = append(m.vals, row[j])
		}
	}
	m.rowPtr[b.n] = len(m.colInd)
	return m
}

// Sparse is a square matrix in compressed sparse row form. It is
// immutable after Build, so concurrent readers need no locking.
type Sparse struct {
	n      int
	rowPtr []int
	colInd []int
	vals   []float64
}

// Dim returns the matrix dimension n.
func (m *Sparse) Dim() int { return m.n }

// NNZ returns the number of stored entries.
func (m *Sparse) NNZ() int { return len(m.vals) }

// At returns the value of cell (i, j), zero when no entry is stored.
func (m *Sparse) At(i, j int) float64 {
	if i < 0 || i >= m.n {
		return 0
	}
	for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
		if m.colInd[k] == j {
			return m.vals[k]
		}
	}
	return 0
}

// RowSum returns the sum of row i.
func (m *Sparse) RowSum(i int) float64 {
	var sum float64
	for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
		sum += m.vals[k]
	}
	return sum
}

// MulVec returns y = M·x. Panics if len(x) != Dim.
func (m *Sparse) MulVec(x []float64) []float64 {
	if len(x) != m.n {
		panic("matrix: dimension mismatch in MulVec")
	}
	y := make([]float64, m.n)
	for i := 0; i < m.n; i++ {
		var sum float64
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			sum += m.vals[k] * x[m.colInd[k]]
		}
		y[i] = sum
	}
	return y
}

// MulTransVec returns y = Mᵀ·x without materializing the transpose.
func (m *Sparse) MulTransVec(x []float64) []float64 {
	if len(x) != m.n {
		panic("matrix: dimension mismatch in MulTransVec")
	}
	y := make([]float64, m.n)
	for i := 0; i < m.n; i++ {
		xi := x[i]
		if xi == 0 {
			continue
		}
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			y[m.colInd[k]] += m.vals[k] * xi
		}
	}
	return y
}
