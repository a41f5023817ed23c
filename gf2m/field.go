// Package gf2m implements arithmetic in small binary extension fields
// GF(2^m) with m between 1 and 31, polynomials over such fields, and the
// polynomial ring GF(2^m)[X]/p(X) with its precomputed squaring and
// square-root matrices.
package gf2m

import (
	"errors"
	"fmt"
	"io"
	"math/bits"

	"mpkc/gf2"
)

// Errors reported by field construction and element arithmetic.
var (
	ErrInvalidField    = errors.New("gf2m: invalid field degree or polynomial")
	ErrDivisionByZero  = errors.New("gf2m: division by zero element")
	ErrSingular        = errors.New("gf2m: singular matrix")
	ErrWrongField      = errors.New("gf2m: element does not belong to this field")
	ErrInvalidElements = errors.New("gf2m: vector elements outside field")
)

// Field describes GF(2^m). Elements are uint32 values whose bits are the
// coefficients of the residue class modulo the reduction polynomial.
type Field struct {
	degree     int
	polynomial uint32 // reduction polynomial including the degree-m term
}

// NewField constructs GF(2^degree) with the canonical irreducible reduction
// polynomial for that degree. Degrees outside 1..31 fail with ErrInvalidField.
func NewField(degree int) (*Field, error) {
	if degree < 1 || degree > 31 {
		return nil, fmt.Errorf("%w: degree %d", ErrInvalidField, degree)
	}
	p, err := gf2.IrreduciblePolynomial(degree)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	v, _ := p.Uint64()
	return &Field{degree: degree, polynomial: uint32(v)}, nil
}

// NewFieldPoly constructs GF(2^degree) with an explicit reduction polynomial,
// validating that it is irreducible of the right degree.
func NewFieldPoly(degree int, polynomial uint32) (*Field, error) {
	if degree < 1 || degree > 31 {
		return nil, fmt.Errorf("%w: degree %d", ErrInvalidField, degree)
	}
	p := gf2.FromUint64(uint64(polynomial))
	if p.Degree() != degree {
		return nil, fmt.Errorf("%w: polynomial degree %d, want %d", ErrInvalidField, p.Degree(), degree)
	}
	if degree > 1 && !p.IsIrreducible() {
		return nil, fmt.Errorf("%w: reducible polynomial %#x", ErrInvalidField, polynomial)
	}
	return &Field{degree: degree, polynomial: polynomial}, nil
}

// Degree returns m.
func (f *Field) Degree() int { return f.degree }

// Order returns the number of field elements, 2^m.
func (f *Field) Order() int { return 1 << uint(f.degree) }

// Polynomial returns the reduction polynomial encoding.
func (f *Field) Polynomial() uint32 { return f.polynomial }

// IsElementOfThisField reports whether a is a reduced representative, that is
// whether its bit length does not exceed m.
func (f *Field) IsElementOfThisField(a uint32) bool {
	return bits.Len32(a) <= f.degree
}

// Add returns a + b.
func (f *Field) Add(a, b uint32) uint32 { return a ^ b }

// Mul returns a * b reduced modulo the field polynomial.
func (f *Field) Mul(a, b uint32) uint32 {
	var acc uint64
	x := uint64(a)
	for b != 0 {
		if b&1 == 1 {
			acc ^= x
		}
		x <<= 1
		b >>= 1
	}
	// reduce the at most (2m-1)-degree product
	red := uint64(f.polynomial)
	for d := bits.Len64(acc) - 1; d >= f.degree; d = bits.Len64(acc) - 1 {
		acc ^= red << uint(d-f.degree)
	}
	return uint32(acc)
}

// Square returns a * a.
func (f *Field) Square(a uint32) uint32 { return f.Mul(a, a) }

// Exp returns a^k. Exponent zero yields one.
func (f *Field) Exp(a uint32, k int) uint32 {
	if k < 0 {
		panic("gf2m: negative exponent")
	}
	result := uint32(1)
	base := a
	for k > 0 {
		if k&1 == 1 {
			result = f.Mul(result, base)
		}
		base = f.Square(base)
		k >>= 1
	}
	return result
}

// Inverse returns a^-1, failing with ErrDivisionByZero for the zero element.
func (f *Field) Inverse(a uint32) (uint32, error) {
	if a == 0 {
		return 0, ErrDivisionByZero
	}
	// a^(2^m - 2)
	return f.Exp(a, f.Order()-2), nil
}

// SqRoot returns the unique square root of a, a^(2^(m-1)).
func (f *Field) SqRoot(a uint32) uint32 {
	r := a
	for i := 1; i < f.degree; i++ {
		r = f.Square(r)
	}
	return r
}

// RandomElement draws a uniform field element from rng.
func (f *Field) RandomElement(rng io.Reader) uint32 {
	var buf [4]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		panic(fmt.Sprintf("gf2m: random source failure: %v", err))
	}
	v := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
	return v & (uint32(f.Order()) - 1)
}

// RandomNonZeroElement draws a uniform non-zero field element from rng.
func (f *Field) RandomNonZeroElement(rng io.Reader) uint32 {
	for {
		if v := f.RandomElement(rng); v != 0 {
			return v
		}
	}
}

// Equal reports whether g describes the same field as f.
func (f *Field) Equal(g *Field) bool {
	if g == nil {
		return false
	}
	return f.degree == g.degree && f.polynomial == g.polynomial
}

func (f *Field) String() string {
	return fmt.Sprintf("GF(2^%d)/%s", f.degree, gf2.FromUint64(uint64(f.polynomial)))
}
