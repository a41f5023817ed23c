package goppa

import (
	"mpkc/gf2m"
	"mpkc/linalg"
)

// Decode runs Patterson decoding on a received word in the permuted public
// coordinates: it undoes the support permutation, corrects up to T errors
// against the private polynomial, and returns the codeword and error vector
// back in public coordinates. A word further than T from every codeword fails
// with ErrDecodeFailure.
func (c *Code) Decode(received *linalg.GF2Vector) (codeword, errVec *linalg.GF2Vector, err error) {
	if received.Len() != c.N() || c.goppa.Degree() < 1 {
		return nil, nil, ErrDecodeFailure
	}
	inv := c.perm.ComputeInverse()
	word, err := received.Permute(inv)
	if err != nil {
		return nil, nil, ErrDecodeFailure
	}
	support, err := c.decodeSupport(word)
	if err != nil {
		return nil, nil, err
	}
	cw, err := support.Permute(c.perm)
	if err != nil {
		return nil, nil, ErrDecodeFailure
	}
	z, err := received.Xor(cw)
	if err != nil {
		return nil, nil, ErrDecodeFailure
	}
	return cw, z, nil
}

// decodeSupport corrects a word expressed over the canonical support order
// and returns the nearest codeword.
func (c *Code) decodeSupport(word *linalg.GF2Vector) (*linalg.GF2Vector, error) {
	s, err := c.syndrome(word)
	if err != nil {
		return nil, err
	}
	if s.IsZero() {
		return word.Clone(), nil
	}
	sigma, err := c.errorLocator(s)
	if err != nil {
		return nil, err
	}
	corrected := word.Clone()
	found := 0
	for i := 0; i < c.N(); i++ {
		if sigma.EvaluateAt(uint32(i)) == 0 {
			corrected.FlipBit(i)
			found++
		}
	}
	if found != sigma.Degree() || found > c.T() {
		return nil, ErrDecodeFailure
	}
	// the corrected word must actually lie in the code
	check, err := c.syndrome(corrected)
	if err != nil {
		return nil, err
	}
	if !check.IsZero() {
		return nil, ErrDecodeFailure
	}
	return corrected, nil
}

// syndrome accumulates sum 1/(X + L_i) mod g over the set positions of word.
// The inverse of a linear factor modulo g is computed with the synthetic
// division identity (X + a)^-1 = (g(X) + g(a)) / (X + a) * g(a)^-1.
func (c *Code) syndrome(word *linalg.GF2Vector) (*gf2m.Polynomial, error) {
	field := c.field
	s := gf2m.ZeroPolynomial(field)
	for _, i := range word.SetBitPositions() {
		term, err := c.linearFactorInverse(uint32(i))
		if err != nil {
			return nil, err
		}
		s = s.Add(term)
	}
	return s.Mod(c.goppa), nil
}

// linearFactorInverse returns (X + a)^-1 mod g.
func (c *Code) linearFactorInverse(a uint32) (*gf2m.Polynomial, error) {
	field := c.field
	t := c.goppa.Degree()
	ga := c.goppa.EvaluateAt(a)
	gaInv, err := field.Inverse(ga)
	if err != nil {
		return nil, ErrDecodeFailure
	}
	// Horner coefficients of (g(X) + g(a)) / (X + a)
	q := make([]uint32, t)
	q[t-1] = c.goppa.At(t)
	for j := t - 1; j > 0; j-- {
		q[j-1] = field.Add(c.goppa.At(j), field.Mul(a, q[j]))
	}
	for j := range q {
		q[j] = field.Mul(q[j], gaInv)
	}
	return gf2m.NewPolynomial(field, q)
}

// errorLocator turns a non-zero syndrome into the error-locator polynomial:
// invert the syndrome, take the square root of T(X) + X modulo g, split it
// with a partial extended Euclidean run, and assemble sigma = a^2 + X*b^2.
func (c *Code) errorLocator(s *gf2m.Polynomial) (*gf2m.Polynomial, error) {
	field := c.field
	x := gf2m.Monomial(field, 1, 1)
	tPoly, err := s.ModInverse(c.goppa)
	if err != nil {
		return nil, ErrDecodeFailure
	}
	radicand := tPoly.Add(x)
	if radicand.IsZero() {
		// T(X) = X: a single error at support element zero
		return x, nil
	}
	r := c.ring.SquareRootMod(radicand)
	a, b := partialEEA(c.goppa, r, c.T()/2)
	sigma := a.Multiply(a).Add(x.Multiply(b.Multiply(b)))
	if sigma.Degree() < 1 {
		return nil, ErrDecodeFailure
	}
	return sigma, nil
}

// partialEEA runs the extended Euclidean algorithm on (g, r) and stops as soon
// as the remainder degree drops to bound, returning the remainder and the
// matching Bezout coefficient of r.
func partialEEA(g, r *gf2m.Polynomial, bound int) (a, b *gf2m.Polynomial) {
	field := g.Field()
	r0, r1 := g.Clone(), r.Mod(g)
	b0, b1 := gf2m.ZeroPolynomial(field), gf2m.Monomial(field, 1, 0)
	for r1.Degree() > bound {
		q, rem := r0.QuotRem(r1)
		r0, r1 = r1, rem
		b0, b1 = b1, b0.Add(q.Multiply(b1))
	}
	return r1, b1
}
