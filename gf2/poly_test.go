package gf2

import (
	"math/rand"
	"testing"
)

func randPoly(rng *rand.Rand, maxDegree int) Polynomial {
	p := Polynomial{}
	for i := 0; i <= maxDegree; i++ {
		if rng.Intn(2) == 1 {
			p = p.ToggleBit(i)
		}
	}
	return p
}

func TestAddIsXor(t *testing.T) {
	a := NewPolynomial(5, 3, 0)
	b := NewPolynomial(5, 1)
	sum := a.Add(b)
	want := NewPolynomial(3, 1, 0)
	if !sum.Equal(want) {
		t.Fatalf("add: got %v, want %v", sum, want)
	}
	if !a.Add(a).IsZero() {
		t.Fatalf("p+p must be zero")
	}
}

func TestMultiplyDistributes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		a := randPoly(rng, 90)
		b := randPoly(rng, 90)
		c := randPoly(rng, 90)
		left := a.Multiply(b.Add(c))
		right := a.Multiply(b).Add(a.Multiply(c))
		if !left.Equal(right) {
			t.Fatalf("distributivity failed at trial %d", i)
		}
	}
}

func TestQuotRemReconstructs(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 50; i++ {
		a := randPoly(rng, 120)
		m := randPoly(rng, 40)
		if m.IsZero() {
			continue
		}
		q, r := a.QuotRem(m)
		if r.Degree() >= m.Degree() {
			t.Fatalf("remainder degree %d not below modulus degree %d", r.Degree(), m.Degree())
		}
		if !q.Multiply(m).Add(r).Equal(a) {
			t.Fatalf("q*m+r != a at trial %d", i)
		}
	}
}

func TestGcdDividesBoth(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 30; i++ {
		g := randPoly(rng, 10)
		if g.IsZero() {
			continue
		}
		a := g.Multiply(randPoly(rng, 20))
		b := g.Multiply(randPoly(rng, 20))
		d := a.Gcd(b)
		if a.IsZero() && b.IsZero() {
			continue
		}
		if !a.Mod(d).IsZero() || !b.Mod(d).IsZero() {
			t.Fatalf("gcd does not divide operands at trial %d", i)
		}
		if d.Degree() < g.Degree() {
			t.Fatalf("gcd degree %d below common factor degree %d", d.Degree(), g.Degree())
		}
	}
}

func TestIrreducibleKnownValues(t *testing.T) {
	// x^2+x+1, x^3+x+1 and x^4+x+1 are irreducible; x^4+x^2+1 = (x^2+x+1)^2 is not
	if !NewPolynomial(2, 1, 0).IsIrreducible() {
		t.Fatalf("x^2+x+1 must be irreducible")
	}
	if !NewPolynomial(3, 1, 0).IsIrreducible() {
		t.Fatalf("x^3+x+1 must be irreducible")
	}
	if !NewPolynomial(4, 1, 0).IsIrreducible() {
		t.Fatalf("x^4+x+1 must be irreducible")
	}
	if NewPolynomial(4, 2, 0).IsIrreducible() {
		t.Fatalf("x^4+x^2+1 is reducible")
	}
	if NewPolynomial(5, 0).IsIrreducible() {
		t.Fatalf("x^5+1 is reducible")
	}
}

func TestIrreduciblePolynomialAllDegrees(t *testing.T) {
	for degree := 1; degree <= 31; degree++ {
		p, err := IrreduciblePolynomial(degree)
		if err != nil {
			t.Fatalf("degree %d: %v", degree, err)
		}
		if p.Degree() != degree {
			t.Fatalf("degree %d: got polynomial of degree %d", degree, p.Degree())
		}
		if degree > 1 && !p.IsIrreducible() {
			t.Fatalf("degree %d: returned reducible polynomial %v", degree, p)
		}
	}
	if _, err := IrreduciblePolynomial(0); err == nil {
		t.Fatalf("degree 0 must be rejected")
	}
	if _, err := IrreduciblePolynomial(64); err == nil {
		t.Fatalf("degree 64 must be rejected")
	}
}

func TestIntegerHelpers(t *testing.T) {
	primes := []uint64{2, 3, 5, 7, 11, 13, 10007}
	for _, p := range primes {
		if !IsPrime(p) {
			t.Fatalf("%d must be prime", p)
		}
	}
	for _, n := range []uint64{0, 1, 4, 9, 10006} {
		if IsPrime(n) {
			t.Fatalf("%d must not be prime", n)
		}
	}
	if got := Order(2, 11); got != 10 {
		t.Fatalf("order of 2 mod 11: got %d, want 10", got)
	}
	if got := Order(3, 11); got != 5 {
		t.Fatalf("order of 3 mod 11: got %d, want 5", got)
	}
	u := ElementOfOrder(5, 11)
	if Order(u, 11) != 5 {
		t.Fatalf("ElementOfOrder(5, 11) returned %d of wrong order", u)
	}
}
