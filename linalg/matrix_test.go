package linalg

import (
	"crypto/rand"
	"testing"
)

func TestMatrixInverse(t *testing.T) {
	m, inv, err := RandomRegularGF2Matrix(60, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	prod, err := m.Multiply(inv)
	if err != nil {
		t.Fatal(err)
	}
	if !prod.Equal(IdentityGF2Matrix(60)) {
		t.Fatalf("m * m^-1 is not the identity")
	}
	prod, err = inv.Multiply(m)
	if err != nil {
		t.Fatal(err)
	}
	if !prod.Equal(IdentityGF2Matrix(60)) {
		t.Fatalf("m^-1 * m is not the identity")
	}
}

func TestSingularMatrixRejected(t *testing.T) {
	m := NewGF2Matrix(4, 4)
	m.SetBit(0, 0)
	m.SetBit(1, 0) // row 1 equals row 0
	if _, err := m.ComputeInverse(); err == nil {
		t.Fatalf("singular matrix must not invert")
	}
}

func TestLeftMultiplyMatchesMultiplyVector(t *testing.T) {
	m, _, err := RandomRegularGF2Matrix(40, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	v, err := RandomGF2Vector(40, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	left, err := m.LeftMultiply(v)
	if err != nil {
		t.Fatal(err)
	}
	viaTranspose, err := m.Transpose().MultiplyVector(v)
	if err != nil {
		t.Fatal(err)
	}
	if !left.Equal(viaTranspose) {
		t.Fatalf("v*M and M^T*v disagree")
	}
}

func TestPermuteColumnsConsistency(t *testing.T) {
	m, _, err := RandomRegularGF2Matrix(30, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	p, err := RandomPermutation(30, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	mp, err := m.PermuteColumns(p)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 30; i++ {
		for j := 0; j < 30; j++ {
			if mp.TestBit(i, j) != m.TestBit(i, p.At(j)) {
				t.Fatalf("column permutation wrong at (%d,%d)", i, j)
			}
		}
	}
	// (M*P) * v equals M * (P*v) where (P*v)[p[j]]-style indexing matches Permute
	v, err := RandomGF2Vector(30, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	lhs, err := mp.MultiplyVector(v)
	if err != nil {
		t.Fatal(err)
	}
	pv, err := v.Permute(p.ComputeInverse())
	if err != nil {
		t.Fatal(err)
	}
	rhs, err := m.MultiplyVector(pv)
	if err != nil {
		t.Fatal(err)
	}
	if !lhs.Equal(rhs) {
		t.Fatalf("permuted-matrix action mismatch")
	}
}

func TestSubMatrixConcat(t *testing.T) {
	m, _, err := RandomRegularGF2Matrix(20, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	left := m.SubMatrix(0, 8)
	right := m.SubMatrix(8, 20)
	joined, err := left.ConcatColumns(right)
	if err != nil {
		t.Fatal(err)
	}
	if !joined.Equal(m) {
		t.Fatalf("submatrix concat does not reconstruct the matrix")
	}
}

func TestOS2VPStrictness(t *testing.T) {
	v, err := RandomGF2Vector(19, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	round, err := OS2VP(19, v.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !round.Equal(v) {
		t.Fatalf("byte round trip changed the vector")
	}
	if _, err := OS2VP(19, make([]byte, 2)); err == nil {
		t.Fatalf("short octet string must be rejected")
	}
	bad := v.Bytes()
	bad[2] |= 0x80 // padding bit for length 19
	if _, err := OS2VP(19, bad); err == nil {
		t.Fatalf("set padding bits must be rejected")
	}
}
