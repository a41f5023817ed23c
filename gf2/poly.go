// Package gf2 implements arbitrary-length polynomials over GF(2) packed into
// machine words, together with the small number-theoretic helpers needed to
// construct binary extension fields. Addition is XOR, multiplication is
// carry-less, and irreducibility testing follows the Ben-Or/Frobenius method.
package gf2

import (
	"errors"
	"fmt"
	"math/bits"
)

const wordBits = 64

// Polynomial is a polynomial over GF(2). Bit i of the backing words is the
// coefficient of X^i. The zero value is the zero polynomial.
type Polynomial struct {
	words []uint64
}

// NewPolynomial builds the polynomial whose listed monomial degrees have
// coefficient one. Duplicate degrees cancel.
func NewPolynomial(degrees ...int) Polynomial {
	p := Polynomial{}
	for _, d := range degrees {
		if d < 0 {
			panic("gf2: negative monomial degree")
		}
		p = p.ToggleBit(d)
	}
	return p
}

// FromUint64 interprets v as a polynomial of degree at most 63.
func FromUint64(v uint64) Polynomial {
	if v == 0 {
		return Polynomial{}
	}
	return Polynomial{words: []uint64{v}}
}

// Uint64 returns the low 64 coefficient bits. ok is false if the degree
// exceeds 63.
func (p Polynomial) Uint64() (v uint64, ok bool) {
	if len(p.words) == 0 {
		return 0, true
	}
	return p.words[0], len(p.words) == 1
}

// Degree returns the degree of p, or -1 for the zero polynomial.
func (p Polynomial) Degree() int {
	for i := len(p.words) - 1; i >= 0; i-- {
		if p.words[i] != 0 {
			return i*wordBits + bits.Len64(p.words[i]) - 1
		}
	}
	return -1
}

// IsZero reports whether p is the zero polynomial.
func (p Polynomial) IsZero() bool {
	for _, w := range p.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// TestBit reports whether the coefficient of X^i is one.
func (p Polynomial) TestBit(i int) bool {
	if i < 0 || i/wordBits >= len(p.words) {
		return false
	}
	return p.words[i/wordBits]>>(uint(i)%wordBits)&1 == 1
}

// ToggleBit returns a copy of p with the coefficient of X^i flipped.
func (p Polynomial) ToggleBit(i int) Polynomial {
	w := i / wordBits
	out := make([]uint64, max(len(p.words), w+1))
	copy(out, p.words)
	out[w] ^= 1 << (uint(i) % wordBits)
	return Polynomial{words: out}.trim()
}

// Add returns p + q (coefficient-wise XOR).
func (p Polynomial) Add(q Polynomial) Polynomial {
	out := make([]uint64, max(len(p.words), len(q.words)))
	copy(out, p.words)
	for i, w := range q.words {
		out[i] ^= w
	}
	return Polynomial{words: out}.trim()
}

// ShiftLeft returns p * X^k.
func (p Polynomial) ShiftLeft(k int) Polynomial {
	if k < 0 {
		panic("gf2: negative shift")
	}
	if p.IsZero() {
		return Polynomial{}
	}
	wordShift := k / wordBits
	bitShift := uint(k) % wordBits
	out := make([]uint64, len(p.words)+wordShift+1)
	for i, w := range p.words {
		out[i+wordShift] |= w << bitShift
		if bitShift != 0 {
			out[i+wordShift+1] |= w >> (wordBits - bitShift)
		}
	}
	return Polynomial{words: out}.trim()
}

// Multiply returns the carry-less product p * q.
func (p Polynomial) Multiply(q Polynomial) Polynomial {
	if p.IsZero() || q.IsZero() {
		return Polynomial{}
	}
	out := make([]uint64, len(p.words)+len(q.words))
	for i, w := range q.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			w &= w - 1
			shifted := p.ShiftLeft(i*wordBits + b)
			for j, sw := range shifted.words {
				out[j] ^= sw
			}
		}
	}
	return Polynomial{words: out}.trim()
}

// QuotRem returns the quotient and remainder of p divided by m.
func (p Polynomial) QuotRem(m Polynomial) (quot, rem Polynomial) {
	dm := m.Degree()
	if dm < 0 {
		panic("gf2: division by zero polynomial")
	}
	rem = p.Clone()
	for {
		dr := rem.Degree()
		if dr < dm {
			return quot, rem
		}
		quot = quot.ToggleBit(dr - dm)
		rem = rem.Add(m.ShiftLeft(dr - dm))
	}
}

// Mod returns p modulo m.
func (p Polynomial) Mod(m Polynomial) Polynomial {
	_, r := p.QuotRem(m)
	return r
}

// Gcd returns the greatest common divisor of p and q.
func (p Polynomial) Gcd(q Polynomial) Polynomial {
	a, b := p.Clone(), q.Clone()
	for !b.IsZero() {
		a, b = b, a.Mod(b)
	}
	return a
}

// Equal reports whether p and q have identical coefficients.
func (p Polynomial) Equal(q Polynomial) bool {
	a, b := p.trim(), q.trim()
	if len(a.words) != len(b.words) {
		return false
	}
	for i := range a.words {
		if a.words[i] != b.words[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of p.
func (p Polynomial) Clone() Polynomial {
	out := make([]uint64, len(p.words))
	copy(out, p.words)
	return Polynomial{words: out}
}

// String renders p as a sum of monomials, highest degree first.
func (p Polynomial) String() string {
	if p.IsZero() {
		return "0"
	}
	s := ""
	for i := p.Degree(); i >= 0; i-- {
		if !p.TestBit(i) {
			continue
		}
		if s != "" {
			s += "+"
		}
		switch i {
		case 0:
			s += "1"
		case 1:
			s += "x"
		default:
			s += fmt.Sprintf("x^%d", i)
		}
	}
	return s
}

func (p Polynomial) trim() Polynomial {
	n := len(p.words)
	for n > 0 && p.words[n-1] == 0 {
		n--
	}
	return Polynomial{words: p.words[:n]}
}

// mulMod returns p * q mod m without building the full product worklist twice.
func mulMod(p, q, m Polynomial) Polynomial {
	return p.Multiply(q).Mod(m)
}

// IsIrreducible implements the Ben-Or/Frobenius irreducibility test over GF(2).
func (p Polynomial) IsIrreducible() bool {
	n := p.Degree()
	if n <= 0 {
		return false
	}
	if n == 1 {
		return true
	}
	// an irreducible polynomial of degree > 1 has a non-zero constant term
	if !p.TestBit(0) {
		return false
	}
	x := NewPolynomial(1)
	xp := x.Clone()
	for i := 1; i <= n/2; i++ {
		xp = mulMod(xp, xp, p)
		g := xp.Add(x).Gcd(p)
		if g.Degree() > 0 {
			return false
		}
	}
	xp = x.Clone()
	for i := 0; i < n; i++ {
		xp = mulMod(xp, xp, p)
	}
	return xp.Add(x).IsZero()
}

// IrreduciblePolynomial returns the canonical irreducible polynomial of the
// requested degree: the monic polynomial of smallest integer encoding that
// passes the irreducibility test. Degrees up to 63 are supported, which covers
// every base field this module constructs directly.
func IrreduciblePolynomial(degree int) (Polynomial, error) {
	if degree < 1 || degree > 63 {
		return Polynomial{}, errors.New("gf2: irreducible polynomial degree out of range")
	}
	if degree == 1 {
		return NewPolynomial(1, 0), nil
	}
	top := uint64(1) << uint(degree)
	// the constant term must be one, so step through odd encodings only
	for low := uint64(1); low < top; low += 2 {
		cand := FromUint64(top | low)
		if cand.IsIrreducible() {
			return cand, nil
		}
	}
	return Polynomial{}, fmt.Errorf("gf2: no irreducible polynomial of degree %d", degree)
}
