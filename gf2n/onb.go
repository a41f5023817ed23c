package gf2n

import (
	"fmt"
	"io"

	"mpkc/gf2"
)

// maxONBType bounds the basis-type search. Only types 1 and 2 are optimal;
// a degree whose smallest Gaussian basis type exceeds 2 is unsupported here.
const maxONBType = 2

// ONBField is GF(2^n) represented over an optimal normal basis: the element
// coordinates are taken over the conjugates beta^(2^i) of a single generator.
// Squaring is a cyclic coordinate rotation.
type ONBField struct {
	degree    int
	onbType   int
	mult      [][]int // lambda matrix rows: column indices of the non-zero entries
	fieldPoly gf2.Polynomial
}

// NewONBField constructs the type-1 or type-2 optimal normal basis field of
// the given degree. Degrees divisible by 8 admit no ONB at all; other degrees
// without a type <= 2 basis fail with ErrUnsupportedDegree.
func NewONBField(degree int) (*ONBField, error) {
	if degree < 2 {
		return nil, fmt.Errorf("%w: degree %d", ErrUnsupportedDegree, degree)
	}
	if degree%8 == 0 {
		return nil, fmt.Errorf("%w: degree %d divisible by 8", ErrNoONB, degree)
	}
	typ, err := computeONBType(degree)
	if err != nil {
		return nil, err
	}
	f := &ONBField{degree: degree, onbType: typ}
	f.computeMultMatrix()
	f.computeFieldPolynomial()
	return f, nil
}

// computeONBType returns the smallest type t <= maxONBType such that
// s = t*degree + 1 is prime and gcd(t*degree / ord_s(2), degree) = 1.
func computeONBType(degree int) (int, error) {
	for typ := 1; typ <= maxONBType; typ++ {
		s := uint64(typ*degree + 1)
		if !gf2.IsPrime(s) {
			continue
		}
		k := gf2.Order(2, s)
		if k == 0 {
			continue
		}
		if gf2.GcdInt(uint64(typ*degree)/k, uint64(degree)) == 1 {
			return typ, nil
		}
	}
	return 0, fmt.Errorf("%w: degree %d has no type 1 or 2 basis", ErrUnsupportedDegree, degree)
}

// computeMultMatrix derives the lambda matrix of the basis: row i lists the
// columns j with a non-zero coefficient of beta_0 in beta_i * beta_j. For an
// optimal basis every row carries at most two entries.
func (f *ONBField) computeMultMatrix() {
	n := f.degree
	p := f.onbType*n + 1
	pow2 := make([]int, n)
	for i, r := 0, 1; i < n; i++ {
		pow2[i] = r
		r = r * 2 % p
	}
	// index table: which basis conjugate a residue belongs to. The residues
	// of conjugate i are 2^i * w^j mod p with w of order `type`, so each
	// conjugate owns a coset of the order-`type` subgroup.
	idx := make([]int, p)
	for i := range idx {
		idx[i] = -1
	}
	w := gf2.ElementOfOrder(uint64(f.onbType), uint64(p))
	for i := 0; i < n; i++ {
		r := uint64(pow2[i])
		for j := 0; j < f.onbType; j++ {
			idx[r] = i
			r = r * w % uint64(p)
		}
	}
	lambda := make([][]uint64, n)
	for i := range lambda {
		lambda[i] = make([]uint64, wordsForBits(n))
	}
	toggle := func(i, j int) {
		lambda[i][j/64] ^= 1 << (uint(j) % 64)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			switch f.onbType {
			case 1:
				// beta_i * beta_j = gamma^(2^i + 2^j); the exponent-zero case
				// hits the identity, which is the all-ones vector
				s := (pow2[i] + pow2[j]) % p
				if s == 0 || idx[s] == 0 {
					toggle(i, j)
				}
			case 2:
				// beta = gamma + gamma^-1 gives two cross terms; exponent
				// zero contributes 2*gamma^0 = 0 in characteristic two
				s1 := (pow2[i] + pow2[j]) % p
				s2 := (pow2[i] - pow2[j] + p) % p
				if s1 != 0 && idx[s1] == 0 {
					toggle(i, j)
				}
				if s2 != 0 && idx[s2] == 0 {
					toggle(i, j)
				}
			}
		}
	}
	f.mult = make([][]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if lambda[i][j/64]>>(uint(j)%64)&1 == 1 {
				f.mult[i] = append(f.mult[i], j)
			}
		}
	}
}

// computeFieldPolynomial sets the defining polynomial of the basis generator:
// the all-ones polynomial for type 1, the Chebyshev-style linear recurrence
// p_k = X*p_(k-1) + p_(k-2) for type 2.
func (f *ONBField) computeFieldPolynomial() {
	n := f.degree
	if f.onbType == 1 {
		degrees := make([]int, n+1)
		for i := 0; i <= n; i++ {
			degrees[i] = i
		}
		f.fieldPoly = gf2.NewPolynomial(degrees...)
		return
	}
	prev := gf2.NewPolynomial(0)    // p_0 = 1
	cur := gf2.NewPolynomial(1, 0) // p_1 = X + 1
	for k := 2; k <= n; k++ {
		prev, cur = cur, cur.ShiftLeft(1).Add(prev)
	}
	f.fieldPoly = cur
}

// Degree returns n.
func (f *ONBField) Degree() int { return f.degree }

// Basis returns BasisONB.
func (f *ONBField) Basis() Basis { return BasisONB }

// Type returns the ONB type, 1 or 2.
func (f *ONBField) Type() int { return f.onbType }

// MultMatrix returns a copy of the lambda matrix rows.
func (f *ONBField) MultMatrix() [][]int {
	out := make([][]int, len(f.mult))
	for i, row := range f.mult {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// FieldPolynomial returns the defining polynomial of the basis generator.
func (f *ONBField) FieldPolynomial() gf2.Polynomial { return f.fieldPoly.Clone() }

// Zero returns the additive identity.
func (f *ONBField) Zero() Element {
	return &ONBElement{field: f, coords: make([]uint64, wordsForBits(f.degree))}
}

// One returns the multiplicative identity: in a normal basis this is the
// all-ones coordinate vector.
func (f *ONBField) One() Element {
	e := f.Zero().(*ONBElement)
	for i := 0; i < f.degree; i++ {
		e.coords[i/64] |= 1 << (uint(i) % 64)
	}
	return e
}

// RandomElement draws a uniform element from rng.
func (f *ONBField) RandomElement(rng io.Reader) Element {
	coords := make([]uint64, wordsForBits(f.degree))
	randomCoords(rng, coords, f.degree)
	return &ONBElement{field: f, coords: coords}
}

// RandomNonZeroElement draws a uniform non-zero element from rng.
func (f *ONBField) RandomNonZeroElement(rng io.Reader) Element {
	for {
		e := f.RandomElement(rng)
		if !e.IsZero() {
			return e
		}
	}
}

// RandomRoot finds one root of g over this field.
func (f *ONBField) RandomRoot(g *Polynomial, rng io.Reader) (Element, error) {
	return randomRoot(f, g, rng)
}

func (f *ONBField) elementFromCoords(coords []uint64) Element {
	out := make([]uint64, wordsForBits(f.degree))
	copy(out, coords)
	return &ONBElement{field: f, coords: out}
}

func (f *ONBField) String() string {
	return fmt.Sprintf("GF(2^%d) type-%d ONB", f.degree, f.onbType)
}

// ONBElement is a field element in normal-basis coordinates.
type ONBElement struct {
	field  *ONBField
	coords []uint64
}

// Field returns the owning field.
func (e *ONBElement) Field() Field { return e.field }

// Basis returns BasisONB.
func (e *ONBElement) Basis() Basis { return BasisONB }

// TestBit returns normal-basis coordinate i.
func (e *ONBElement) TestBit(i int) bool {
	if i < 0 || i >= e.field.degree {
		return false
	}
	return e.coords[i/64]>>(uint(i)%64)&1 == 1
}

// IsZero reports whether every coordinate is clear.
func (e *ONBElement) IsZero() bool {
	for _, w := range e.coords {
		if w != 0 {
			return false
		}
	}
	return true
}

// IsOne reports whether e is the all-ones identity vector.
func (e *ONBElement) IsOne() bool {
	for i := 0; i < e.field.degree; i++ {
		if !e.TestBit(i) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (e *ONBElement) Clone() Element {
	return e.field.elementFromCoords(e.coords)
}

// Equal reports whether both elements have the same field and coordinates.
func (e *ONBElement) Equal(o Element) bool {
	oe, ok := o.(*ONBElement)
	if !ok || oe.field != e.field {
		return false
	}
	for i := range e.coords {
		if e.coords[i] != oe.coords[i] {
			return false
		}
	}
	return true
}

// Add returns e + o (coordinate XOR).
func (e *ONBElement) Add(o Element) Element {
	sameField(e, o)
	oe := o.(*ONBElement)
	out := e.field.Zero().(*ONBElement)
	for i := range out.coords {
		out.coords[i] = e.coords[i] ^ oe.coords[i]
	}
	return out
}

// Multiply returns e * o using the lambda matrix: output coordinate l sums
// a_(i+l) * b_(j+l) over the non-zero lambda entries (i, j).
func (e *ONBElement) Multiply(o Element) Element {
	sameField(e, o)
	oe := o.(*ONBElement)
	n := e.field.degree
	out := e.field.Zero().(*ONBElement)
	for l := 0; l < n; l++ {
		var bit uint64
		for i, row := range e.field.mult {
			if !e.TestBit((i + l) % n) {
				continue
			}
			for _, j := range row {
				if oe.TestBit((j + l) % n) {
					bit ^= 1
				}
			}
		}
		if bit == 1 {
			out.coords[l/64] |= 1 << (uint(l) % 64)
		}
	}
	return out
}

// Square rotates the coordinates up by one position.
func (e *ONBElement) Square() Element {
	n := e.field.degree
	out := e.field.Zero().(*ONBElement)
	for i := 0; i < n; i++ {
		if e.TestBit(i) {
			j := (i + 1) % n
			out.coords[j/64] |= 1 << (uint(j) % 64)
		}
	}
	return out
}

// SquareRoot rotates the coordinates down by one position.
func (e *ONBElement) SquareRoot() Element {
	n := e.field.degree
	out := e.field.Zero().(*ONBElement)
	for i := 0; i < n; i++ {
		if e.TestBit(i) {
			j := (i - 1 + n) % n
			out.coords[j/64] |= 1 << (uint(j) % 64)
		}
	}
	return out
}

// Invert returns e^-1, failing with ErrDivisionByZero on the zero element.
func (e *ONBElement) Invert() (Element, error) {
	return invertByExponent(e)
}

func randomCoords(rng io.Reader, coords []uint64, n int) {
	buf := make([]byte, len(coords)*8)
	if _, err := io.ReadFull(rng, buf); err != nil {
		panic(fmt.Sprintf("gf2n: random source failure: %v", err))
	}
	for i := range coords {
		var w uint64
		for b := 0; b < 8; b++ {
			w |= uint64(buf[i*8+b]) << (8 * uint(b))
		}
		coords[i] = w
	}
	// clear the bits beyond n
	if n%64 != 0 {
		coords[len(coords)-1] &= (1 << (uint(n) % 64)) - 1
	}
}
