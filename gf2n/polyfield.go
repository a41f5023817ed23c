package gf2n

import (
	"fmt"
	"io"

	"mpkc/gf2"
)

// PolynomialField is GF(2^n) represented as GF(2)[X] modulo a sparse
// irreducible polynomial. A trinomial X^n + X^k + 1 is preferred; when none
// exists for the degree a pentanomial is searched instead.
type PolynomialField struct {
	degree    int
	fieldPoly gf2.Polynomial
}

// NewPolynomialField constructs the polynomial-basis field of the given
// degree, selecting the lowest sparse irreducible modulus deterministically so
// that two fields of the same degree are interoperable.
func NewPolynomialField(degree int) (*PolynomialField, error) {
	if degree < 2 {
		return nil, fmt.Errorf("%w: degree %d", ErrUnsupportedDegree, degree)
	}
	fp, err := sparseIrreducible(degree)
	if err != nil {
		return nil, err
	}
	return &PolynomialField{degree: degree, fieldPoly: fp}, nil
}

// NewPolynomialFieldPoly constructs the field over a caller-supplied modulus,
// which must be irreducible of the stated degree.
func NewPolynomialFieldPoly(degree int, fieldPoly gf2.Polynomial) (*PolynomialField, error) {
	if degree < 2 {
		return nil, fmt.Errorf("%w: degree %d", ErrUnsupportedDegree, degree)
	}
	if fieldPoly.Degree() != degree {
		return nil, fmt.Errorf("gf2n: modulus degree %d does not match field degree %d",
			fieldPoly.Degree(), degree)
	}
	if !fieldPoly.IsIrreducible() {
		return nil, fmt.Errorf("gf2n: modulus %v is reducible", fieldPoly)
	}
	return &PolynomialField{degree: degree, fieldPoly: fieldPoly.Clone()}, nil
}

// sparseIrreducible returns the first irreducible trinomial X^n + X^k + 1 with
// the smallest middle term, falling back to the lexicographically first
// irreducible pentanomial. Every degree >= 2 admits one of the two shapes.
func sparseIrreducible(n int) (gf2.Polynomial, error) {
	for k := 1; k < n; k++ {
		p := gf2.NewPolynomial(n, k, 0)
		if p.IsIrreducible() {
			return p, nil
		}
	}
	for k3 := 3; k3 < n; k3++ {
		for k2 := 2; k2 < k3; k2++ {
			for k1 := 1; k1 < k2; k1++ {
				p := gf2.NewPolynomial(n, k3, k2, k1, 0)
				if p.IsIrreducible() {
					return p, nil
				}
			}
		}
	}
	return gf2.Polynomial{}, fmt.Errorf("%w: no sparse irreducible of degree %d", ErrUnsupportedDegree, n)
}

// Degree returns n.
func (f *PolynomialField) Degree() int { return f.degree }

// Basis returns BasisPolynomial.
func (f *PolynomialField) Basis() Basis { return BasisPolynomial }

// FieldPolynomial returns the reduction modulus.
func (f *PolynomialField) FieldPolynomial() gf2.Polynomial { return f.fieldPoly.Clone() }

// Zero returns the additive identity.
func (f *PolynomialField) Zero() Element {
	return &PolynomialElement{field: f, value: gf2.NewPolynomial()}
}

// One returns the multiplicative identity.
func (f *PolynomialField) One() Element {
	return &PolynomialElement{field: f, value: gf2.NewPolynomial(0)}
}

// RandomElement draws a uniform element from rng.
func (f *PolynomialField) RandomElement(rng io.Reader) Element {
	coords := make([]uint64, wordsForBits(f.degree))
	randomCoords(rng, coords, f.degree)
	return f.elementFromCoords(coords)
}

// RandomNonZeroElement draws a uniform non-zero element from rng.
func (f *PolynomialField) RandomNonZeroElement(rng io.Reader) Element {
	for {
		e := f.RandomElement(rng)
		if !e.IsZero() {
			return e
		}
	}
}

// RandomRoot finds one root of g over this field.
func (f *PolynomialField) RandomRoot(g *Polynomial, rng io.Reader) (Element, error) {
	return randomRoot(f, g, rng)
}

func (f *PolynomialField) elementFromCoords(coords []uint64) Element {
	var degrees []int
	for i := 0; i < f.degree; i++ {
		if coords[i/64]>>(uint(i)%64)&1 == 1 {
			degrees = append(degrees, i)
		}
	}
	return &PolynomialElement{field: f, value: gf2.NewPolynomial(degrees...)}
}

func (f *PolynomialField) String() string {
	return fmt.Sprintf("GF(2^%d) polynomial basis mod %v", f.degree, f.fieldPoly)
}

// PolynomialElement is a residue class modulo the field polynomial.
type PolynomialElement struct {
	field *PolynomialField
	value gf2.Polynomial
}

// Field returns the owning field.
func (e *PolynomialElement) Field() Field { return e.field }

// Basis returns BasisPolynomial.
func (e *PolynomialElement) Basis() Basis { return BasisPolynomial }

// TestBit returns polynomial-basis coordinate i, the coefficient of X^i.
func (e *PolynomialElement) TestBit(i int) bool { return e.value.TestBit(i) }

// IsZero reports whether e is the zero residue.
func (e *PolynomialElement) IsZero() bool { return e.value.Degree() == -1 }

// IsOne reports whether e is the unit residue.
func (e *PolynomialElement) IsOne() bool { return e.value.Equal(gf2.NewPolynomial(0)) }

// Clone returns an independent copy.
func (e *PolynomialElement) Clone() Element {
	return &PolynomialElement{field: e.field, value: e.value.Clone()}
}

// Equal reports whether both elements have the same field and residue.
func (e *PolynomialElement) Equal(o Element) bool {
	oe, ok := o.(*PolynomialElement)
	return ok && oe.field == e.field && oe.value.Equal(e.value)
}

// Add returns e + o.
func (e *PolynomialElement) Add(o Element) Element {
	sameField(e, o)
	oe := o.(*PolynomialElement)
	return &PolynomialElement{field: e.field, value: e.value.Add(oe.value)}
}

// Multiply returns e * o reduced modulo the field polynomial.
func (e *PolynomialElement) Multiply(o Element) Element {
	sameField(e, o)
	oe := o.(*PolynomialElement)
	return &PolynomialElement{
		field: e.field,
		value: e.value.Multiply(oe.value).Mod(e.field.fieldPoly),
	}
}

// Square returns e * e.
func (e *PolynomialElement) Square() Element {
	return &PolynomialElement{
		field: e.field,
		value: e.value.Multiply(e.value).Mod(e.field.fieldPoly),
	}
}

// SquareRoot applies the Frobenius map n-1 times, the inverse of squaring.
func (e *PolynomialElement) SquareRoot() Element {
	out := Element(e.Clone())
	for i := 1; i < e.field.degree; i++ {
		out = out.Square()
	}
	return out
}

// Invert returns e^-1, failing with ErrDivisionByZero on the zero element.
func (e *PolynomialElement) Invert() (Element, error) {
	return invertByExponent(e)
}
