// Package gf2n implements large binary extension fields GF(2^n) in two basis
// representations: a Gaussian optimal normal basis (type 1 and 2) and a
// polynomial basis over a trinomial or pentanomial. Elements of different
// representations are incompatible; conversion goes through an explicit
// Registry that caches change-of-basis matrices per field pair.
package gf2n

import (
	"errors"
	"io"

	"mpkc/gf2"
)

// Basis tags the representation an element belongs to.
type Basis int

const (
	// BasisONB marks the optimal-normal-basis representation.
	BasisONB Basis = iota + 1
	// BasisPolynomial marks the polynomial-basis representation.
	BasisPolynomial
)

func (b Basis) String() string {
	switch b {
	case BasisONB:
		return "onb"
	case BasisPolynomial:
		return "polynomial"
	default:
		return "unknown"
	}
}

// Errors reported by field construction and element arithmetic.
var (
	ErrUnsupportedDegree = errors.New("gf2n: no supported basis for this degree")
	ErrNoONB             = errors.New("gf2n: no optimal normal basis exists for this degree")
	ErrFieldMismatch     = errors.New("gf2n: elements belong to different fields")
	ErrDivisionByZero    = errors.New("gf2n: inverse of zero element")
)

// Field is the capability set shared by both basis variants.
type Field interface {
	// Degree returns n.
	Degree() int
	// Basis identifies the representation variant.
	Basis() Basis
	// FieldPolynomial returns the defining polynomial over GF(2).
	FieldPolynomial() gf2.Polynomial
	// Zero and One return the additive and multiplicative identities.
	Zero() Element
	One() Element
	// RandomElement draws a uniform element from rng.
	RandomElement(rng io.Reader) Element
	// RandomNonZeroElement draws a uniform non-zero element from rng.
	RandomNonZeroElement(rng io.Reader) Element
	// RandomRoot finds one root of g, a polynomial over this field that
	// splits into linear factors, using randomized gcd splitting. The retry
	// loop on unlucky random choices is unbounded.
	RandomRoot(g *Polynomial, rng io.Reader) (Element, error)

	// elementFromCoords rebuilds an element from its n coordinate bits.
	elementFromCoords(coords []uint64) Element
}

// Element is one GF(2^n) value tagged with its field. Arithmetic requires
// both operands to come from the same field instance and panics otherwise;
// cross-field movement goes through Registry.Convert.
type Element interface {
	// Field returns the owning field.
	Field() Field
	// Basis identifies the representation variant.
	Basis() Basis
	Add(Element) Element
	Multiply(Element) Element
	Square() Element
	SquareRoot() Element
	// Invert fails with ErrDivisionByZero on the zero element.
	Invert() (Element, error)
	IsZero() bool
	IsOne() bool
	// TestBit returns coordinate i of the element in its basis.
	TestBit(i int) bool
	Clone() Element
	Equal(Element) bool
}

// invertByExponent computes a^(2^n - 2) with the square-and-multiply chain
// a^(2^(n-1) - 1) squared once. It serves both variants since squaring and
// multiplication are the only operations involved.
func invertByExponent(a Element) (Element, error) {
	if a.IsZero() {
		return nil, ErrDivisionByZero
	}
	n := a.Field().Degree()
	y := a.Clone()
	for i := 0; i < n-2; i++ {
		y = y.Square().Multiply(a)
	}
	return y.Square(), nil
}

func sameField(a, b Element) {
	if a.Field() != b.Field() {
		panic(ErrFieldMismatch)
	}
}

func wordsForBits(n int) int { return (n + 63) / 64 }
