package goppa

import (
	"crypto/rand"
	"errors"
	"io"
	"testing"

	"mpkc/gf2m"
	"mpkc/linalg"
)

func newTestCode(t *testing.T, m, errs int) *Code {
	t.Helper()
	field, err := gf2m.NewField(m)
	if err != nil {
		t.Fatal(err)
	}
	code, err := Generate(field, errs, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	return code
}

func randomErrorVector(t *testing.T, n, weight int, rng io.Reader) *linalg.GF2Vector {
	t.Helper()
	v := linalg.NewGF2Vector(n)
	for v.Weight() < weight {
		var buf [4]byte
		if _, err := io.ReadFull(rng, buf[:]); err != nil {
			t.Fatal(err)
		}
		i := int(uint32(buf[0])|uint32(buf[1])<<8|uint32(buf[2])<<16|uint32(buf[3])<<24) % n
		if !v.TestBit(i) {
			v.SetBit(i)
		}
	}
	return v
}

func TestCodeDimensions(t *testing.T) {
	code := newTestCode(t, 5, 3)
	if code.N() != 32 || code.T() != 3 || code.K() != 32-5*3 {
		t.Fatalf("wrong dimensions n=%d k=%d t=%d", code.N(), code.K(), code.T())
	}
	g := code.GeneratorMatrix()
	if g.Rows() != code.K() || g.Cols() != code.N() {
		t.Fatalf("generator shape %dx%d", g.Rows(), g.Cols())
	}
}

func TestGenerateRejectsOversizedT(t *testing.T) {
	field, err := gf2m.NewField(4)
	if err != nil {
		t.Fatal(err)
	}
	// m*t = 16 >= n = 16 leaves no message bits
	if _, err := Generate(field, 4, rand.Reader); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("got %v, want ErrInvalidCode", err)
	}
	if _, err := Generate(field, 0, rand.Reader); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("t=0: got %v, want ErrInvalidCode", err)
	}
}

func TestCodewordsSatisfyCheckMatrix(t *testing.T) {
	code := newTestCode(t, 5, 3)
	h, err := CheckMatrix(code.Field(), code.GoppaPolynomial())
	if err != nil {
		t.Fatal(err)
	}
	pInv := code.Permutation().ComputeInverse()
	for i := 0; i < 5; i++ {
		msg, err := linalg.RandomGF2Vector(code.K(), rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		cw, err := code.Encode(msg)
		if err != nil {
			t.Fatal(err)
		}
		unpermuted, err := cw.Permute(pInv)
		if err != nil {
			t.Fatal(err)
		}
		syn, err := h.MultiplyVector(unpermuted)
		if err != nil {
			t.Fatal(err)
		}
		if !syn.IsZero() {
			t.Fatalf("encoded word is not in the code")
		}
	}
}

func TestDecodeCorrectsUpToTErrors(t *testing.T) {
	code := newTestCode(t, 6, 4)
	for weight := 0; weight <= code.T(); weight++ {
		msg, err := linalg.RandomGF2Vector(code.K(), rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		cw, err := code.Encode(msg)
		if err != nil {
			t.Fatal(err)
		}
		z := randomErrorVector(t, code.N(), weight, rand.Reader)
		received, err := cw.Xor(z)
		if err != nil {
			t.Fatal(err)
		}
		gotCW, gotZ, err := code.Decode(received)
		if err != nil {
			t.Fatalf("weight %d: %v", weight, err)
		}
		if !gotCW.Equal(cw) {
			t.Fatalf("weight %d: wrong codeword", weight)
		}
		if !gotZ.Equal(z) {
			t.Fatalf("weight %d: wrong error vector", weight)
		}
		if gotCW.ExtractRight(code.K()).Equal(msg) == false {
			t.Fatalf("weight %d: systematic message bits not recovered", weight)
		}
	}
}

func TestDecodeBeyondCapacity(t *testing.T) {
	code := newTestCode(t, 5, 3)
	msg, err := linalg.RandomGF2Vector(code.K(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	cw, err := code.Encode(msg)
	if err != nil {
		t.Fatal(err)
	}
	z := randomErrorVector(t, code.N(), code.T()+2, rand.Reader)
	received, err := cw.Xor(z)
	if err != nil {
		t.Fatal(err)
	}
	// with more than T errors the decoder either fails outright or lands on
	// a different codeword; it must never return the original pair
	gotCW, gotZ, err := code.Decode(received)
	if err == nil && gotCW.Equal(cw) && gotZ.Equal(z) {
		t.Fatalf("decoder corrected more errors than the code supports")
	}
}

func TestNewCodeRebuildsGenerator(t *testing.T) {
	code := newTestCode(t, 5, 3)
	rebuilt, err := NewCode(code.Field(), code.GoppaPolynomial(), code.Permutation())
	if err != nil {
		t.Fatal(err)
	}
	if !rebuilt.GeneratorMatrix().Equal(code.GeneratorMatrix()) {
		t.Fatalf("rebuilt code has a different generator matrix")
	}
}

func TestCheckMatrixRejectsSupportRoot(t *testing.T) {
	field, err := gf2m.NewField(5)
	if err != nil {
		t.Fatal(err)
	}
	// X + 3 has the support element 3 as a root
	g, err := gf2m.NewPolynomial(field, []uint32{3, 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := CheckMatrix(field, g); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("got %v, want ErrInvalidCode", err)
	}
}

func TestCodeClear(t *testing.T) {
	code := newTestCode(t, 5, 3)
	code.Clear()
	if !code.GoppaPolynomial().IsZero() {
		t.Fatalf("Clear left goppa polynomial coefficients")
	}
	for _, v := range code.Permutation().GetVector() {
		if v != 0 {
			t.Fatalf("Clear left permutation entries")
		}
	}
}
