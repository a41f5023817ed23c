package gf2n

import (
	"crypto/rand"
	"errors"
	"testing"
)

func TestONBTypeDetection(t *testing.T) {
	cases := []struct {
		degree, typ int
	}{
		{2, 1}, {4, 1}, {10, 1}, {12, 1},
		{3, 2}, {5, 2}, {6, 2}, {11, 2}, {14, 2},
	}
	for _, c := range cases {
		f, err := NewONBField(c.degree)
		if err != nil {
			t.Fatalf("degree %d: %v", c.degree, err)
		}
		if f.Type() != c.typ {
			t.Fatalf("degree %d: got type %d, want %d", c.degree, f.Type(), c.typ)
		}
	}
}

func TestONBUnsupportedDegrees(t *testing.T) {
	if _, err := NewONBField(8); !errors.Is(err, ErrNoONB) {
		t.Fatalf("degree 8: got %v, want ErrNoONB", err)
	}
	if _, err := NewONBField(16); !errors.Is(err, ErrNoONB) {
		t.Fatalf("degree 16: got %v, want ErrNoONB", err)
	}
	if _, err := NewONBField(17); !errors.Is(err, ErrUnsupportedDegree) {
		t.Fatalf("degree 17: got %v, want ErrUnsupportedDegree", err)
	}
	if _, err := NewONBField(1); !errors.Is(err, ErrUnsupportedDegree) {
		t.Fatalf("degree 1: got %v, want ErrUnsupportedDegree", err)
	}
}

func TestONBLambdaMatrixShape(t *testing.T) {
	// an optimal basis has exactly 2n-1 non-zero lambda entries: one in the
	// first row, two in every other row
	for _, degree := range []int{4, 5, 11} {
		f, err := NewONBField(degree)
		if err != nil {
			t.Fatal(err)
		}
		rows := f.MultMatrix()
		if len(rows[0]) != 1 {
			t.Fatalf("degree %d: row 0 has %d entries, want 1", degree, len(rows[0]))
		}
		for i := 1; i < degree; i++ {
			if len(rows[i]) != 2 {
				t.Fatalf("degree %d: row %d has %d entries, want 2", degree, i, len(rows[i]))
			}
		}
	}
}

func testFieldLaws(t *testing.T, f Field) {
	t.Helper()
	one := f.One()
	if !one.IsOne() {
		t.Fatalf("%v: One() does not satisfy IsOne", f)
	}
	if !one.Multiply(one).IsOne() {
		t.Fatalf("%v: 1*1 != 1", f)
	}
	for i := 0; i < 20; i++ {
		a := f.RandomNonZeroElement(rand.Reader)
		b := f.RandomElement(rand.Reader)
		c := f.RandomElement(rand.Reader)
		if !a.Multiply(one).Equal(a) {
			t.Fatalf("%v: a*1 != a", f)
		}
		if !a.Multiply(b).Equal(b.Multiply(a)) {
			t.Fatalf("%v: multiplication is not commutative", f)
		}
		if !a.Multiply(b.Multiply(c)).Equal(a.Multiply(b).Multiply(c)) {
			t.Fatalf("%v: multiplication is not associative", f)
		}
		if !a.Multiply(b.Add(c)).Equal(a.Multiply(b).Add(a.Multiply(c))) {
			t.Fatalf("%v: multiplication does not distribute", f)
		}
		if !a.Square().Equal(a.Multiply(a)) {
			t.Fatalf("%v: Square disagrees with self-multiplication", f)
		}
		if !a.Square().SquareRoot().Equal(a) {
			t.Fatalf("%v: SquareRoot does not invert Square", f)
		}
		if !b.Add(c).Square().Equal(b.Square().Add(c.Square())) {
			t.Fatalf("%v: Frobenius is not additive", f)
		}
		inv, err := a.Invert()
		if err != nil {
			t.Fatalf("%v: Invert: %v", f, err)
		}
		if !a.Multiply(inv).IsOne() {
			t.Fatalf("%v: a * a^-1 != 1", f)
		}
	}
	if _, err := f.Zero().Invert(); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("%v: inverting zero: got %v, want ErrDivisionByZero", f, err)
	}
}

func TestONBFieldLaws(t *testing.T) {
	for _, degree := range []int{4, 5, 10, 11} {
		f, err := NewONBField(degree)
		if err != nil {
			t.Fatal(err)
		}
		testFieldLaws(t, f)
	}
}

func TestPolynomialFieldLaws(t *testing.T) {
	for _, degree := range []int{8, 10, 13} {
		f, err := NewPolynomialField(degree)
		if err != nil {
			t.Fatal(err)
		}
		testFieldLaws(t, f)
	}
}

func TestPolynomialFieldModulus(t *testing.T) {
	f, err := NewPolynomialField(10)
	if err != nil {
		t.Fatal(err)
	}
	fp := f.FieldPolynomial()
	if fp.Degree() != 10 || !fp.IsIrreducible() {
		t.Fatalf("bad modulus %v", fp)
	}
	g, err := NewPolynomialField(10)
	if err != nil {
		t.Fatal(err)
	}
	if !g.FieldPolynomial().Equal(fp) {
		t.Fatalf("modulus selection is not deterministic")
	}
}

func TestPolynomialFieldRejectsReducibleModulus(t *testing.T) {
	f, err := NewPolynomialField(4)
	if err != nil {
		t.Fatal(err)
	}
	bad := f.FieldPolynomial().Multiply(f.FieldPolynomial())
	if _, err := NewPolynomialFieldPoly(8, bad); err == nil {
		t.Fatalf("reducible modulus must be rejected")
	}
	if _, err := NewPolynomialFieldPoly(5, f.FieldPolynomial()); err == nil {
		t.Fatalf("degree mismatch must be rejected")
	}
}

func TestONBFieldPolynomialHasBasisRoot(t *testing.T) {
	// the defining polynomial of the basis generator must split over the
	// field itself, so root finding on the lifted polynomial must succeed
	for _, degree := range []int{4, 5, 10} {
		f, err := NewONBField(degree)
		if err != nil {
			t.Fatal(err)
		}
		lifted := LiftGF2Polynomial(f, f.FieldPolynomial())
		root, err := f.RandomRoot(lifted, rand.Reader)
		if err != nil {
			t.Fatalf("degree %d: %v", degree, err)
		}
		if eval := evalAt(lifted, root); !eval.IsZero() {
			t.Fatalf("degree %d: returned non-root", degree)
		}
	}
}

func TestRandomRootOnSplitPolynomial(t *testing.T) {
	f, err := NewPolynomialField(10)
	if err != nil {
		t.Fatal(err)
	}
	a := f.RandomNonZeroElement(rand.Reader)
	b := f.RandomNonZeroElement(rand.Reader)
	for b.Equal(a) {
		b = f.RandomNonZeroElement(rand.Reader)
	}
	// g = (X + a)(X + b)
	fa, err := NewPolynomial(f, []Element{a, f.One()})
	if err != nil {
		t.Fatal(err)
	}
	fb, err := NewPolynomial(f, []Element{b, f.One()})
	if err != nil {
		t.Fatal(err)
	}
	g := fa.Multiply(fb)
	root, err := f.RandomRoot(g, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	if !root.Equal(a) && !root.Equal(b) {
		t.Fatalf("root finder returned a non-root")
	}
}

func evalAt(p *Polynomial, x Element) Element {
	acc := x.Field().Zero()
	for i := p.Degree(); i >= 0; i-- {
		acc = acc.Multiply(x).Add(p.At(i))
	}
	return acc
}
