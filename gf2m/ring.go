package gf2m

import (
	"fmt"
	"sync"
)

// Ring models the extension ring GF(2^m)[X]/p(X) for a monic polynomial p of
// degree t. Construction precomputes the matrix of the semilinear squaring map
// and its inverse, which together give cheap square roots modulo p. If p is
// not irreducible the squaring matrix is singular and construction fails with
// ErrSingular.
type Ring struct {
	field   *Field
	modulus *Polynomial
	sq      [][]uint32 // t x t, sq[row][col]: coefficient row of X^(2*col) mod p
	sqRoot  [][]uint32
}

// NewRing builds the ring and both matrices.
func NewRing(field *Field, modulus *Polynomial) (*Ring, error) {
	t := modulus.Degree()
	if t < 1 {
		return nil, fmt.Errorf("gf2m: ring modulus must have positive degree")
	}
	if !field.Equal(modulus.Field()) {
		return nil, ErrWrongField
	}
	r := &Ring{field: field, modulus: modulus.Clone()}
	r.computeSquaringMatrix()
	inv, err := r.invert(r.sq)
	if err != nil {
		return nil, fmt.Errorf("gf2m: ring modulus is not irreducible: %w", err)
	}
	r.sqRoot = inv
	return r, nil
}

// Field returns the coefficient field.
func (r *Ring) Field() *Field { return r.field }

// Modulus returns a copy of the defining polynomial.
func (r *Ring) Modulus() *Polynomial { return r.modulus.Clone() }

// Degree returns the degree of the defining polynomial.
func (r *Ring) Degree() int { return r.modulus.Degree() }

// SquaringMatrix returns a copy of the matrix of the map x -> x^2 restricted
// to the monomial basis (coefficient-wise squaring excluded).
func (r *Ring) SquaringMatrix() [][]uint32 { return copyMatrix(r.sq) }

// SquareRootMatrix returns a copy of the inverse of the squaring matrix.
func (r *Ring) SquareRootMatrix() [][]uint32 { return copyMatrix(r.sqRoot) }

// SquareRootMod returns the unique q with q*q = p mod the ring modulus.
func (r *Ring) SquareRootMod(p *Polynomial) *Polynomial {
	t := r.Degree()
	reduced := p.Mod(r.modulus)
	v := make([]uint32, t)
	for i := 0; i < t; i++ {
		var acc uint32
		for j := 0; j < t; j++ {
			acc ^= r.field.Mul(r.sqRoot[i][j], reduced.At(j))
		}
		v[i] = r.field.SqRoot(acc)
	}
	return &Polynomial{field: r.field, coeffs: v}
}

// computeSquaringMatrix reduces the even monomials X^(2*col) modulo the ring
// polynomial. Each column is independent, so the reductions run on their own
// goroutines; every worker writes only the column it owns and the shared
// matrix is only read once all workers are done.
func (r *Ring) computeSquaringMatrix() {
	t := r.Degree()
	r.sq = newMatrix(t, t)
	var wg sync.WaitGroup
	for col := 0; col < t; col++ {
		wg.Add(1)
		go func(col int) {
			defer wg.Done()
			m := Monomial(r.field, 1, 2*col).Mod(r.modulus)
			for row := 0; row < t; row++ {
				r.sq[row][col] = m.At(row)
			}
		}(col)
	}
	wg.Wait()
}

// invert runs Gauss-Jordan elimination over GF(2^m). The elimination rounds
// mutate the shared work and result matrices, so this pass stays sequential.
func (r *Ring) invert(m [][]uint32) ([][]uint32, error) {
	t := len(m)
	work := copyMatrix(m)
	out := newMatrix(t, t)
	for i := 0; i < t; i++ {
		out[i][i] = 1
	}
	for col := 0; col < t; col++ {
		pivot := -1
		for row := col; row < t; row++ {
			if work[row][col] != 0 {
				pivot = row
				break
			}
		}
		if pivot < 0 {
			return nil, ErrSingular
		}
		work[col], work[pivot] = work[pivot], work[col]
		out[col], out[pivot] = out[pivot], out[col]
		inv, _ := r.field.Inverse(work[col][col])
		scaleRow(r.field, work[col], inv)
		scaleRow(r.field, out[col], inv)
		for row := 0; row < t; row++ {
			if row == col || work[row][col] == 0 {
				continue
			}
			c := work[row][col]
			addScaledRow(r.field, work[row], work[col], c)
			addScaledRow(r.field, out[row], out[col], c)
		}
	}
	return out, nil
}

func newMatrix(rows, cols int) [][]uint32 {
	out := make([][]uint32, rows)
	for i := range out {
		out[i] = make([]uint32, cols)
	}
	return out
}

func copyMatrix(m [][]uint32) [][]uint32 {
	out := make([][]uint32, len(m))
	for i := range m {
		out[i] = make([]uint32, len(m[i]))
		copy(out[i], m[i])
	}
	return out
}

func scaleRow(f *Field, row []uint32, c uint32) {
	for i := range row {
		row[i] = f.Mul(row[i], c)
	}
}

func addScaledRow(f *Field, dst, src []uint32, c uint32) {
	for i := range dst {
		dst[i] ^= f.Mul(src[i], c)
	}
}
