// Package goppa implements binary irreducible Goppa codes: the canonical
// parity-check matrix of a (field, Goppa polynomial) pair, reduction to
// systematic form under a random support permutation, and Patterson syndrome
// decoding. These codes are the trapdoor of the McEliece cryptosystem: the
// systematic generator matrix is public while the polynomial and permutation
// stay private.
package goppa

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/op/go-logging.v1"

	"mpkc/gf2m"
	"mpkc/linalg"
)

var log = logging.MustGetLogger("goppa")

// Errors reported by code construction and decoding.
var (
	ErrDecodeFailure = errors.New("goppa: syndrome decoding failed")
	ErrInvalidCode   = errors.New("goppa: invalid code parameters")
)

// Code bundles the private description of a Goppa code together with the
// derived public generator matrix. N = 2^m is the code length, K = N - m*t the
// message length, T = t the error-correction capability.
type Code struct {
	field *gf2m.Field
	goppa *gf2m.Polynomial
	ring  *gf2m.Ring
	perm  *linalg.Permutation
	gen   *linalg.GF2Matrix
}

// Generate draws random irreducible Goppa polynomials of degree t and random
// support permutations until the permuted parity-check matrix has an
// invertible leading block, and returns the completed code.
func Generate(field *gf2m.Field, t int, rng io.Reader) (*Code, error) {
	n := field.Order()
	if t < 1 || n-field.Degree()*t < 1 {
		return nil, fmt.Errorf("%w: m=%d t=%d leaves no message bits", ErrInvalidCode, field.Degree(), t)
	}
	g, err := gf2m.RandomIrreducible(field, t, rng)
	if err != nil {
		return nil, err
	}
	ring, err := gf2m.NewRing(field, g)
	if err != nil {
		return nil, err
	}
	h, err := CheckMatrix(field, g)
	if err != nil {
		return nil, err
	}
	gen, perm, attempts, err := systematicForm(h, rng)
	if err != nil {
		return nil, err
	}
	log.Debugf("goppa code m=%d t=%d systematic after %d permutation(s)", field.Degree(), t, attempts)
	return &Code{field: field, goppa: g, ring: ring, perm: perm, gen: gen}, nil
}

// NewCode rebuilds a code from stored private material, recomputing the
// public generator matrix and ring matrices.
func NewCode(field *gf2m.Field, goppa *gf2m.Polynomial, perm *linalg.Permutation) (*Code, error) {
	if perm.Size() != field.Order() {
		return nil, fmt.Errorf("%w: permutation size %d, want %d", ErrInvalidCode, perm.Size(), field.Order())
	}
	ring, err := gf2m.NewRing(field, goppa)
	if err != nil {
		return nil, err
	}
	h, err := CheckMatrix(field, goppa)
	if err != nil {
		return nil, err
	}
	hp, err := h.PermuteColumns(perm)
	if err != nil {
		return nil, err
	}
	gen, err := systematicGenerator(hp)
	if err != nil {
		return nil, fmt.Errorf("%w: stored permutation does not yield systematic form", ErrInvalidCode)
	}
	return &Code{field: field, goppa: goppa.Clone(), ring: ring, perm: perm, gen: gen}, nil
}

// Field returns the support field GF(2^m).
func (c *Code) Field() *gf2m.Field { return c.field }

// GoppaPolynomial returns a copy of the private Goppa polynomial.
func (c *Code) GoppaPolynomial() *gf2m.Polynomial { return c.goppa.Clone() }

// Permutation returns a copy of the private support permutation.
func (c *Code) Permutation() *linalg.Permutation { return c.perm.Clone() }

// GeneratorMatrix returns the public systematic generator matrix, shape K x N.
func (c *Code) GeneratorMatrix() *linalg.GF2Matrix { return c.gen.Clone() }

// N returns the code length.
func (c *Code) N() int { return c.field.Order() }

// K returns the message length.
func (c *Code) K() int { return c.N() - c.field.Degree()*c.goppa.Degree() }

// T returns the error-correction capability.
func (c *Code) T() int { return c.goppa.Degree() }

// Clear zeroizes the private material: the Goppa polynomial and the support
// permutation. The code is unusable afterwards.
func (c *Code) Clear() {
	c.goppa.Clear()
	c.perm.Clear()
}

// CheckMatrix computes the canonical parity-check matrix of the code defined
// by g over the full support L_i = i: entry (j, i) of the GF(2^m) matrix is
// L_i^j / g(L_i), expanded over GF(2) into an (m*t) x n binary matrix with the
// m coordinate bits of each entry on consecutive rows.
func CheckMatrix(field *gf2m.Field, g *gf2m.Polynomial) (*linalg.GF2Matrix, error) {
	m := field.Degree()
	t := g.Degree()
	n := field.Order()
	if t < 1 {
		return nil, fmt.Errorf("%w: goppa polynomial degree %d", ErrInvalidCode, t)
	}
	h := linalg.NewGF2Matrix(m*t, n)
	for i := 0; i < n; i++ {
		li := uint32(i)
		gli := g.EvaluateAt(li)
		if gli == 0 {
			return nil, fmt.Errorf("%w: goppa polynomial vanishes on support element %#x", ErrInvalidCode, li)
		}
		inv, err := field.Inverse(gli)
		if err != nil {
			return nil, err
		}
		entry := inv
		for j := 0; j < t; j++ {
			for b := 0; b < m; b++ {
				if entry>>uint(b)&1 == 1 {
					h.SetBit(j*m+b, i)
				}
			}
			entry = field.Mul(entry, li)
		}
	}
	return h, nil
}

// systematicForm permutes the columns of h with fresh random permutations
// until the leading square block becomes invertible, then returns the public
// generator of the permuted code and the permutation that worked.
func systematicForm(h *linalg.GF2Matrix, rng io.Reader) (*linalg.GF2Matrix, *linalg.Permutation, int, error) {
	n := h.Cols()
	for attempts := 1; ; attempts++ {
		perm, err := linalg.RandomPermutation(n, rng)
		if err != nil {
			return nil, nil, attempts, err
		}
		hp, err := h.PermuteColumns(perm)
		if err != nil {
			return nil, nil, attempts, err
		}
		gen, err := systematicGenerator(hp)
		if errors.Is(err, linalg.ErrSingular) {
			continue
		}
		if err != nil {
			return nil, nil, attempts, err
		}
		return gen, perm, attempts, nil
	}
}

// systematicGenerator reduces hp = (A | B) to (I | M) and returns the matching
// generator (M^T | I_k). Fails with ErrSingular when A is not invertible.
func systematicGenerator(hp *linalg.GF2Matrix) (*linalg.GF2Matrix, error) {
	mt := hp.Rows()
	n := hp.Cols()
	k := n - mt
	aInv, err := hp.SubMatrix(0, mt).ComputeInverse()
	if err != nil {
		return nil, err
	}
	hsys, err := aInv.Multiply(hp)
	if err != nil {
		return nil, err
	}
	m := hsys.SubMatrix(mt, n)
	return m.Transpose().ConcatColumns(linalg.IdentityGF2Matrix(k))
}

// Encode maps a length-K message to its codeword under the public generator.
func (c *Code) Encode(message *linalg.GF2Vector) (*linalg.GF2Vector, error) {
	return c.gen.LeftMultiply(message)
}
