package linalg

import (
	"crypto/rand"
	"testing"
)

func TestPermutationInverseLaw(t *testing.T) {
	for _, n := range []int{1, 2, 7, 64, 300} {
		p, err := RandomPermutation(n, rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		inv := p.ComputeInverse()
		comp, err := p.RightMultiply(inv)
		if err != nil {
			t.Fatal(err)
		}
		if !comp.IsIdentity() {
			t.Fatalf("n=%d: p * p^-1 is not the identity", n)
		}
		comp, err = inv.RightMultiply(p)
		if err != nil {
			t.Fatal(err)
		}
		if !comp.IsIdentity() {
			t.Fatalf("n=%d: p^-1 * p is not the identity", n)
		}
	}
}

func TestPermutationEncodingRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 255, 256, 257, 1000} {
		p, err := RandomPermutation(n, rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		enc := p.GetEncoded()
		q, err := PermutationFromBytes(enc)
		if err != nil {
			t.Fatalf("n=%d: decode: %v", n, err)
		}
		if !p.Equal(q) {
			t.Fatalf("n=%d: round trip changed the permutation", n)
		}
	}
}

func TestPermutationEncodingRejectsBadInput(t *testing.T) {
	p, _ := RandomPermutation(10, rand.Reader)
	enc := p.GetEncoded()
	if _, err := PermutationFromBytes(enc[:len(enc)-1]); err == nil {
		t.Fatalf("truncated encoding must be rejected")
	}
	if _, err := PermutationFromBytes(append(enc, 0)); err == nil {
		t.Fatalf("oversized encoding must be rejected")
	}
	// duplicate entry is not a bijection
	bad := append([]byte(nil), enc...)
	bad[4] = bad[5]
	if _, err := PermutationFromBytes(bad); err == nil {
		t.Fatalf("non-bijective encoding must be rejected")
	}
	if _, err := PermutationFromBytes([]byte{1, 0}); err == nil {
		t.Fatalf("missing prefix must be rejected")
	}
}

func TestPermutationFromVectorValidation(t *testing.T) {
	if _, err := PermutationFromVector([]int{0, 2, 1}); err != nil {
		t.Fatalf("valid vector rejected: %v", err)
	}
	if _, err := PermutationFromVector([]int{0, 0, 1}); err == nil {
		t.Fatalf("repeated value must be rejected")
	}
	if _, err := PermutationFromVector([]int{0, 3, 1}); err == nil {
		t.Fatalf("out-of-range value must be rejected")
	}
	if _, err := PermutationFromVector(nil); err == nil {
		t.Fatalf("empty vector must be rejected")
	}
}

func TestPermutationSinglePoint(t *testing.T) {
	p := IdentityPermutation(1)
	enc := p.GetEncoded()
	if len(enc) != 5 {
		t.Fatalf("n=1 encoding length: got %d, want 5", len(enc))
	}
	q, err := PermutationFromBytes(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !q.IsIdentity() {
		t.Fatalf("n=1 round trip broken")
	}
}

func TestPermutationClear(t *testing.T) {
	p, _ := RandomPermutation(16, rand.Reader)
	p.Clear()
	for _, v := range p.GetVector() {
		if v != 0 {
			t.Fatalf("Clear left non-zero entry")
		}
	}
}

func TestPermuteVectorRoundTrip(t *testing.T) {
	v, err := RandomGF2Vector(100, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	p, err := RandomPermutation(100, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	w, err := v.Permute(p)
	if err != nil {
		t.Fatal(err)
	}
	back, err := w.Permute(p.ComputeInverse())
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(v) {
		t.Fatalf("permute then inverse-permute changed the vector")
	}
}
