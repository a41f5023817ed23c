package gf2n

import (
	"fmt"
	"io"

	"mpkc/gf2"
)

// Polynomial is a polynomial with GF(2^n) coefficients, used transiently
// during root finding and change-of-basis computation. coeffs[i] is the
// coefficient of X^i; the degree is derived from the highest non-zero entry.
type Polynomial struct {
	field  Field
	coeffs []Element
}

// NewPolynomial copies the coefficient slice. All coefficients must belong to
// the given field.
func NewPolynomial(field Field, coeffs []Element) (*Polynomial, error) {
	out := make([]Element, len(coeffs))
	for i, c := range coeffs {
		if c == nil || c.Field() != field {
			return nil, fmt.Errorf("%w: coefficient %d", ErrFieldMismatch, i)
		}
		out[i] = c.Clone()
	}
	return &Polynomial{field: field, coeffs: out}, nil
}

// LiftGF2Polynomial interprets a polynomial over GF(2) as a polynomial over
// the field, mapping coefficient bits to zero/one elements. This is how one
// field's defining polynomial is handed to another field's root finder.
func LiftGF2Polynomial(field Field, p gf2.Polynomial) *Polynomial {
	d := p.Degree()
	coeffs := make([]Element, d+1)
	for i := 0; i <= d; i++ {
		if p.TestBit(i) {
			coeffs[i] = field.One()
		} else {
			coeffs[i] = field.Zero()
		}
	}
	return &Polynomial{field: field, coeffs: coeffs}
}

// Field returns the coefficient field.
func (p *Polynomial) Field() Field { return p.field }

// Degree returns the degree, -1 for the zero polynomial.
func (p *Polynomial) Degree() int {
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		if !p.coeffs[i].IsZero() {
			return i
		}
	}
	return -1
}

// At returns the coefficient of X^i, zero beyond the allocated size.
func (p *Polynomial) At(i int) Element {
	if i < 0 || i >= len(p.coeffs) {
		return p.field.Zero()
	}
	return p.coeffs[i]
}

// IsZero reports whether all coefficients vanish.
func (p *Polynomial) IsZero() bool { return p.Degree() == -1 }

// Clone returns an independent copy.
func (p *Polynomial) Clone() *Polynomial {
	out := make([]Element, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = c.Clone()
	}
	return &Polynomial{field: p.field, coeffs: out}
}

// Add returns p + q.
func (p *Polynomial) Add(q *Polynomial) *Polynomial {
	n := max(len(p.coeffs), len(q.coeffs))
	out := make([]Element, n)
	for i := range out {
		out[i] = p.At(i).Add(q.At(i))
	}
	return &Polynomial{field: p.field, coeffs: out}
}

// MulScalar returns c * p.
func (p *Polynomial) MulScalar(c Element) *Polynomial {
	out := make([]Element, len(p.coeffs))
	for i := range out {
		out[i] = p.coeffs[i].Multiply(c)
	}
	return &Polynomial{field: p.field, coeffs: out}
}

// Multiply returns the product p * q.
func (p *Polynomial) Multiply(q *Polynomial) *Polynomial {
	dp, dq := p.Degree(), q.Degree()
	if dp < 0 || dq < 0 {
		return &Polynomial{field: p.field}
	}
	out := make([]Element, dp+dq+1)
	for i := range out {
		out[i] = p.field.Zero()
	}
	for i := 0; i <= dp; i++ {
		if p.coeffs[i].IsZero() {
			continue
		}
		for j := 0; j <= dq; j++ {
			if q.coeffs[j].IsZero() {
				continue
			}
			out[i+j] = out[i+j].Add(p.coeffs[i].Multiply(q.coeffs[j]))
		}
	}
	return &Polynomial{field: p.field, coeffs: out}
}

// Mod returns p modulo m.
func (p *Polynomial) Mod(m *Polynomial) *Polynomial {
	dm := m.Degree()
	if dm < 0 {
		panic("gf2n: division by zero polynomial")
	}
	leadInv, err := m.coeffs[dm].Invert()
	if err != nil {
		panic(err)
	}
	rem := p.Clone()
	for {
		dr := rem.Degree()
		if dr < dm {
			return rem
		}
		c := rem.coeffs[dr].Multiply(leadInv)
		for j := 0; j <= dm; j++ {
			rem.coeffs[dr-dm+j] = rem.coeffs[dr-dm+j].Add(c.Multiply(m.At(j)))
		}
	}
}

// ModMultiply returns p * q mod m.
func (p *Polynomial) ModMultiply(q, m *Polynomial) *Polynomial {
	return p.Multiply(q).Mod(m)
}

// Gcd returns the monic greatest common divisor.
func (p *Polynomial) Gcd(q *Polynomial) *Polynomial {
	a, b := p.Clone(), q.Clone()
	for !b.IsZero() {
		a, b = b, a.Mod(b)
	}
	d := a.Degree()
	if d < 0 {
		return a
	}
	leadInv, err := a.coeffs[d].Invert()
	if err != nil {
		panic(err)
	}
	return a.MulScalar(leadInv)
}

// randomRoot is the shared gcd-splitting root finder used by both field
// variants. It repeatedly builds the trace polynomial of a random linear form
// u*X + u, reduces g by the resulting gcd factor, and keeps going until a
// linear factor remains. Unlucky random choices only cost a retry; there is
// no iteration cap.
func randomRoot(f Field, g *Polynomial, rng io.Reader) (Element, error) {
	c := g.Clone()
	if c.Degree() < 1 {
		return nil, fmt.Errorf("gf2n: root finding needs positive degree, got %d", c.Degree())
	}
	for c.Degree() > 1 {
		u := f.RandomNonZeroElement(rng)
		ut := &Polynomial{field: f, coeffs: []Element{u.Clone(), u.Clone()}}
		h := ut.Clone()
		for i := 1; i < f.Degree(); i++ {
			h = h.ModMultiply(h, c).Add(ut)
		}
		d := h.Gcd(c)
		dd := d.Degree()
		if dd <= 0 || dd >= c.Degree() {
			continue // trivial split, fresh u
		}
		c = d
	}
	// c = c1*X + c0, the root is c0/c1
	c1Inv, err := c.At(1).Invert()
	if err != nil {
		return nil, err
	}
	return c.At(0).Multiply(c1Inv), nil
}
