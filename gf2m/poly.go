package gf2m

import (
	"errors"
	"fmt"
	"io"
)

// Polynomial is a polynomial with GF(2^m) coefficients. The allocated
// coefficient slice may be longer than the degree requires; the degree is
// always derived from the highest non-zero coefficient and is -1 for the zero
// polynomial.
type Polynomial struct {
	field  *Field
	coeffs []uint32
}

// NewPolynomial validates the coefficients against the field and copies them.
// coeffs[i] is the coefficient of X^i.
func NewPolynomial(field *Field, coeffs []uint32) (*Polynomial, error) {
	for i, c := range coeffs {
		if !field.IsElementOfThisField(c) {
			return nil, fmt.Errorf("%w: coefficient %d value %#x", ErrInvalidElements, i, c)
		}
	}
	out := make([]uint32, len(coeffs))
	copy(out, coeffs)
	return &Polynomial{field: field, coeffs: out}, nil
}

// ZeroPolynomial returns the zero polynomial over the field.
func ZeroPolynomial(field *Field) *Polynomial {
	return &Polynomial{field: field}
}

// Monomial returns c * X^degree.
func Monomial(field *Field, c uint32, degree int) *Polynomial {
	coeffs := make([]uint32, degree+1)
	coeffs[degree] = c
	return &Polynomial{field: field, coeffs: coeffs}
}

// RandomIrreducible draws random monic polynomials of the given degree until
// one passes the Ben-Or irreducibility test over GF(2^m).
func RandomIrreducible(field *Field, degree int, rng io.Reader) (*Polynomial, error) {
	if degree < 1 {
		return nil, errors.New("gf2m: irreducible degree must be positive")
	}
	for {
		coeffs := make([]uint32, degree+1)
		for i := 0; i < degree; i++ {
			coeffs[i] = field.RandomElement(rng)
		}
		coeffs[0] = field.RandomNonZeroElement(rng)
		coeffs[degree] = 1
		p := &Polynomial{field: field, coeffs: coeffs}
		if p.isIrreducible() {
			return p, nil
		}
	}
}

// Field returns the coefficient field.
func (p *Polynomial) Field() *Field { return p.field }

// Degree returns the degree, -1 for the zero polynomial.
func (p *Polynomial) Degree() int {
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		if p.coeffs[i] != 0 {
			return i
		}
	}
	return -1
}

// IsZero reports whether p has no non-zero coefficient.
func (p *Polynomial) IsZero() bool { return p.Degree() == -1 }

// At returns the coefficient of X^i, zero beyond the allocated size.
func (p *Polynomial) At(i int) uint32 {
	if i < 0 || i >= len(p.coeffs) {
		return 0
	}
	return p.coeffs[i]
}

// LeadCoefficient returns the coefficient of the highest term, zero for the
// zero polynomial.
func (p *Polynomial) LeadCoefficient() uint32 {
	d := p.Degree()
	if d < 0 {
		return 0
	}
	return p.coeffs[d]
}

// Coefficients returns a copy of the coefficient slice trimmed to the degree.
func (p *Polynomial) Coefficients() []uint32 {
	d := p.Degree()
	out := make([]uint32, d+1)
	copy(out, p.coeffs[:d+1])
	return out
}

// Clone returns an independent copy.
func (p *Polynomial) Clone() *Polynomial {
	out := make([]uint32, len(p.coeffs))
	copy(out, p.coeffs)
	return &Polynomial{field: p.field, coeffs: out}
}

// Add returns p + q.
func (p *Polynomial) Add(q *Polynomial) *Polynomial {
	n := max(len(p.coeffs), len(q.coeffs))
	out := make([]uint32, n)
	for i := range out {
		out[i] = p.field.Add(p.At(i), q.At(i))
	}
	return &Polynomial{field: p.field, coeffs: out}
}

// MulScalar returns c * p.
func (p *Polynomial) MulScalar(c uint32) *Polynomial {
	out := make([]uint32, len(p.coeffs))
	for i, pc := range p.coeffs {
		out[i] = p.field.Mul(pc, c)
	}
	return &Polynomial{field: p.field, coeffs: out}
}

// Multiply returns the product p * q.
func (p *Polynomial) Multiply(q *Polynomial) *Polynomial {
	dp, dq := p.Degree(), q.Degree()
	if dp < 0 || dq < 0 {
		return ZeroPolynomial(p.field)
	}
	out := make([]uint32, dp+dq+1)
	for i := 0; i <= dp; i++ {
		pc := p.coeffs[i]
		if pc == 0 {
			continue
		}
		for j := 0; j <= dq; j++ {
			qc := q.coeffs[j]
			if qc == 0 {
				continue
			}
			out[i+j] ^= p.field.Mul(pc, qc)
		}
	}
	return &Polynomial{field: p.field, coeffs: out}
}

// QuotRem returns the quotient and remainder of p divided by m. It panics on
// division by the zero polynomial.
func (p *Polynomial) QuotRem(m *Polynomial) (quot, rem *Polynomial) {
	dm := m.Degree()
	if dm < 0 {
		panic("gf2m: division by zero polynomial")
	}
	leadInv, _ := p.field.Inverse(m.LeadCoefficient())
	rem = p.Clone()
	quotCoeffs := make([]uint32, max(p.Degree()-dm+1, 0))
	for {
		dr := rem.Degree()
		if dr < dm {
			break
		}
		c := p.field.Mul(rem.coeffs[dr], leadInv)
		quotCoeffs[dr-dm] = c
		for j := 0; j <= dm; j++ {
			rem.coeffs[dr-dm+j] ^= p.field.Mul(c, m.At(j))
		}
	}
	return &Polynomial{field: p.field, coeffs: quotCoeffs}, rem
}

// Mod returns p modulo m.
func (p *Polynomial) Mod(m *Polynomial) *Polynomial {
	_, r := p.QuotRem(m)
	return r
}

// Gcd returns the monic greatest common divisor of p and q.
func (p *Polynomial) Gcd(q *Polynomial) *Polynomial {
	a, b := p.Clone(), q.Clone()
	for !b.IsZero() {
		a, b = b, a.Mod(b)
	}
	if a.IsZero() {
		return a
	}
	leadInv, _ := p.field.Inverse(a.LeadCoefficient())
	return a.MulScalar(leadInv)
}

// ModMultiply returns p * q mod m.
func (p *Polynomial) ModMultiply(q, m *Polynomial) *Polynomial {
	return p.Multiply(q).Mod(m)
}

// ModInverse returns the inverse of p modulo m via the extended Euclidean
// algorithm. It fails if p and m share a non-trivial factor.
func (p *Polynomial) ModInverse(m *Polynomial) (*Polynomial, error) {
	r0, r1 := m.Clone(), p.Mod(m)
	t0, t1 := ZeroPolynomial(p.field), Monomial(p.field, 1, 0)
	for !r1.IsZero() {
		q, r := r0.QuotRem(r1)
		r0, r1 = r1, r
		t0, t1 = t1, t0.Add(q.Multiply(t1))
	}
	if r0.Degree() != 0 {
		return nil, fmt.Errorf("gf2m: polynomial not invertible modulo %v", m)
	}
	cInv, err := p.field.Inverse(r0.coeffs[0])
	if err != nil {
		return nil, err
	}
	return t0.MulScalar(cInv).Mod(m), nil
}

// EvaluateAt returns p(e) using Horner's method.
func (p *Polynomial) EvaluateAt(e uint32) uint32 {
	acc := uint32(0)
	for i := p.Degree(); i >= 0; i-- {
		acc = p.field.Add(p.field.Mul(acc, e), p.coeffs[i])
	}
	return acc
}

// Equal reports whether p and q are the same polynomial over the same field.
func (p *Polynomial) Equal(q *Polynomial) bool {
	if q == nil || !p.field.Equal(q.field) {
		return false
	}
	d := p.Degree()
	if d != q.Degree() {
		return false
	}
	for i := 0; i <= d; i++ {
		if p.coeffs[i] != q.coeffs[i] {
			return false
		}
	}
	return true
}

// Clear zeroizes the coefficient slice. Goppa polynomials are private-key
// material.
func (p *Polynomial) Clear() {
	for i := range p.coeffs {
		p.coeffs[i] = 0
	}
}

func (p *Polynomial) String() string {
	if p.IsZero() {
		return "0"
	}
	s := ""
	for i := p.Degree(); i >= 0; i-- {
		if p.coeffs[i] == 0 {
			continue
		}
		if s != "" {
			s += "+"
		}
		switch {
		case i == 0:
			s += fmt.Sprintf("%#x", p.coeffs[i])
		case p.coeffs[i] == 1 && i == 1:
			s += "X"
		case p.coeffs[i] == 1:
			s += fmt.Sprintf("X^%d", i)
		default:
			s += fmt.Sprintf("%#x*X^%d", p.coeffs[i], i)
		}
	}
	return s
}

// isIrreducible runs the Ben-Or test over GF(2^m): for each i up to half the
// degree, gcd(X^(q^i) - X, p) must be trivial, and X^(q^n) must reduce to X.
func (p *Polynomial) isIrreducible() bool {
	n := p.Degree()
	if n <= 0 {
		return false
	}
	if n == 1 {
		return true
	}
	x := Monomial(p.field, 1, 1)
	xp := x.Clone()
	for i := 1; i <= n/2; i++ {
		xp = xp.frobenius(p)
		if !xp.Add(x).Gcd(p).Add(Monomial(p.field, 1, 0)).IsZero() {
			return false
		}
	}
	xp = x.Clone()
	for i := 0; i < n; i++ {
		xp = xp.frobenius(p)
	}
	return xp.Add(x).IsZero()
}

// frobenius returns p^(2^m) mod modulus by m successive squarings.
func (p *Polynomial) frobenius(modulus *Polynomial) *Polynomial {
	out := p.Clone()
	for i := 0; i < p.field.degree; i++ {
		out = out.ModMultiply(out, modulus)
	}
	return out
}
