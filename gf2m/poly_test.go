package gf2m

import (
	"math/rand"
	"testing"
)

func testField(t *testing.T, degree int) *Field {
	t.Helper()
	f, err := NewField(degree)
	if err != nil {
		t.Fatalf("field degree %d: %v", degree, err)
	}
	return f
}

func randPolynomial(f *Field, maxDegree int, rng *rand.Rand) *Polynomial {
	coeffs := make([]uint32, maxDegree+1)
	for i := range coeffs {
		coeffs[i] = uint32(rng.Intn(f.Order()))
	}
	return &Polynomial{field: f, coeffs: coeffs}
}

func TestPolynomialDegreeDerivation(t *testing.T) {
	f := testField(t, 5)
	p, err := NewPolynomial(f, []uint32{1, 0, 3, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if p.Degree() != 2 {
		t.Fatalf("degree: got %d, want 2 despite size 5", p.Degree())
	}
	if !ZeroPolynomial(f).IsZero() || ZeroPolynomial(f).Degree() != -1 {
		t.Fatalf("zero polynomial must have degree -1")
	}
	if _, err := NewPolynomial(f, []uint32{1 << 6}); err == nil {
		t.Fatalf("out-of-field coefficient must be rejected")
	}
}

func TestQuotRemRoundTrip(t *testing.T) {
	f := testField(t, 8)
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		a := randPolynomial(f, 20, rng)
		m := randPolynomial(f, 7, rng)
		if m.IsZero() {
			continue
		}
		q, r := a.QuotRem(m)
		if r.Degree() >= m.Degree() {
			t.Fatalf("remainder degree too large")
		}
		if !q.Multiply(m).Add(r).Equal(a) {
			t.Fatalf("q*m+r != a at trial %d", i)
		}
	}
}

func TestModInverse(t *testing.T) {
	f := testField(t, 8)
	rng := rand.New(rand.NewSource(12))
	m, err := RandomIrreducible(f, 6, rng)
	if err != nil {
		t.Fatal(err)
	}
	one := Monomial(f, 1, 0)
	for i := 0; i < 30; i++ {
		p := randPolynomial(f, 5, rng)
		if p.IsZero() {
			continue
		}
		inv, err := p.ModInverse(m)
		if err != nil {
			t.Fatalf("trial %d: %v", i, err)
		}
		if !p.ModMultiply(inv, m).Equal(one) {
			t.Fatalf("trial %d: p * p^-1 != 1 mod m", i)
		}
	}
}

func TestRandomIrreducibleHasNoRoots(t *testing.T) {
	f := testField(t, 6)
	rng := rand.New(rand.NewSource(13))
	p, err := RandomIrreducible(f, 4, rng)
	if err != nil {
		t.Fatal(err)
	}
	if p.Degree() != 4 || p.LeadCoefficient() != 1 {
		t.Fatalf("irreducible must be monic of requested degree")
	}
	for x := uint32(0); x < uint32(f.Order()); x++ {
		if p.EvaluateAt(x) == 0 {
			t.Fatalf("irreducible polynomial has root %#x", x)
		}
	}
}

func TestGcdOfMultiples(t *testing.T) {
	f := testField(t, 7)
	rng := rand.New(rand.NewSource(14))
	g := randPolynomial(f, 3, rng)
	for g.IsZero() {
		g = randPolynomial(f, 3, rng)
	}
	a := g.Multiply(randPolynomial(f, 4, rng))
	b := g.Multiply(randPolynomial(f, 4, rng))
	d := a.Gcd(b)
	if a.IsZero() || b.IsZero() {
		t.Skip("degenerate sample")
	}
	if !a.Mod(d).IsZero() || !b.Mod(d).IsZero() {
		t.Fatalf("gcd does not divide operands")
	}
}

func TestVectorValidation(t *testing.T) {
	f := testField(t, 4)
	v, err := NewVector(f, []uint32{0, 1, 15})
	if err != nil {
		t.Fatal(err)
	}
	if v.Len() != 3 || v.At(2) != 15 {
		t.Fatalf("vector contents wrong")
	}
	if _, err := NewVector(f, []uint32{16}); err == nil {
		t.Fatalf("out-of-field vector element must be rejected")
	}
	w, err := v.Add(v)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < w.Len(); i++ {
		if w.At(i) != 0 {
			t.Fatalf("v+v must be zero")
		}
	}
}
