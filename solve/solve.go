// Package solve wraps gonum's dense linear algebra behind a small
// sparse-assembly-friendly System type, used by the imesh package's
// cotangent-Laplacian diffusion, Poisson, and data-transfer solves.
package solve

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// System accumulates a linear system by (row, col, value) triplets
// before materializing it as a dense matrix. Mesh-scale cotangent
// Laplacians are sparse, but gonum's public API operates on mat.Dense;
// assembling via triplets keeps the call sites sparse-matrix-shaped
// even though the backing store is dense. Rows may exceed Cols for the
// overdetermined least-squares systems built by data transfer.
type System struct {
	Rows, Cols int
	entries    map[[2]int]float64
}

// NewSystem creates an empty n-by-n system.
func NewSystem(n int) *System {
	return NewRectSystem(n, n)
}

// NewRectSystem creates an empty rows-by-cols system, for assembling
// overdetermined least-squares systems (rows > cols).
func NewRectSystem(rows, cols int) *System {
	return &System{Rows: rows, Cols: cols, entries: make(map[[2]int]float64)}
}

// Add accumulates v into entry (i, j), summing with any prior
// contribution at that position.
func (s *System) Add(i, j int, v float64) {
	s.entries[[2]int{i, j}] += v
}

// Entries exposes the accumulated (row, col) -> value triplets.
func (s *System) Entries() map[[2]int]float64 { return s.entries }

// Dense materializes the system as a gonum dense matrix.
func (s *System) Dense() *mat.Dense {
	d := mat.NewDense(s.Rows, s.Cols, nil)
	for k, v := range s.entries {
		d.Set(k[0], k[1], v)
	}
	return d
}

// Solver solves linear systems assembled via System.
type Solver struct{}

// Solve returns x such that sys*x = b, via gonum's general solve (LU
// for square non-singular systems).
func (Solver) Solve(sys *System, b []float64) ([]float64, error) {
	a := sys.Dense()
	bv := mat.NewVecDense(len(b), b)
	var x mat.VecDense
	if err := x.SolveVec(a, bv); err != nil {
		return nil, errors.Wrap(err, "solve linear system")
	}
	out := make([]float64, sys.Cols)
	for i := range out {
		out[i] = x.AtVec(i)
	}
	return out, nil
}

// LSQR returns the minimum-norm (or, for an overdetermined system, the
// least-squares) solution of sys*x = b, via gonum's truncated SVD.
// Used both as the fallback for singular square systems (e.g. a
// cotangent Laplacian with no Dirichlet constraints pinned) and for
// genuinely rectangular systems such as data-transfer fitting.
func (Solver) LSQR(sys *System, b []float64) ([]float64, error) {
	a := sys.Dense()
	bv := mat.NewVecDense(len(b), b)
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, errors.New("least-squares solve: SVD did not converge")
	}
	out := make([]float64, sys.Cols)
	if rank := svd.Rank(1e-12); rank > 0 {
		var x mat.VecDense
		svd.SolveVecTo(&x, bv, rank)
		for i := range out {
			out[i] = x.AtVec(i)
		}
	}
	return out, nil
}
