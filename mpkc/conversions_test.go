package mpkc

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func TestConstantWeightEncodeBasics(t *testing.T) {
	v, err := Encode(8, 2, []byte{0})
	if err != nil {
		t.Fatal(err)
	}
	// index 0 selects the lexicographically smallest pair {0, 1}
	if !v.TestBit(0) || !v.TestBit(1) || v.Weight() != 2 {
		t.Fatalf("index 0 mapped to %v", v.SetBitPositions())
	}
	// the largest index selects the topmost pair {6, 7}
	v, err = Encode(8, 2, []byte{27})
	if err != nil {
		t.Fatal(err)
	}
	if !v.TestBit(6) || !v.TestBit(7) || v.Weight() != 2 {
		t.Fatalf("index 27 mapped to %v", v.SetBitPositions())
	}
	// C(8,2) = 28 is out of range
	if _, err := Encode(8, 2, []byte{28}); !errors.Is(err, ErrEncodingFailure) {
		t.Fatalf("got %v, want ErrEncodingFailure", err)
	}
}

func TestConstantWeightRoundTrip(t *testing.T) {
	n, w := 2048, 40
	for i := 0; i < 10; i++ {
		digest := make([]byte, 32)
		if _, err := rand.Read(digest); err != nil {
			t.Fatal(err)
		}
		v, err := Encode(n, w, digest)
		if err != nil {
			t.Fatal(err)
		}
		if v.Weight() != w {
			t.Fatalf("weight %d, want %d", v.Weight(), w)
		}
		back, err := Decode(w, v)
		if err != nil {
			t.Fatal(err)
		}
		// Decode returns the minimal big-endian form; compare as integers
		if !bytes.Equal(bytes.TrimLeft(digest, "\x00"), back) {
			t.Fatalf("round trip changed the index")
		}
	}
}

func TestConstantWeightEncodeDeterminism(t *testing.T) {
	digest := make([]byte, 32)
	if _, err := rand.Read(digest); err != nil {
		t.Fatal(err)
	}
	a, err := Encode(2048, 40, digest)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encode(2048, 40, digest)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Fatalf("encoding is not deterministic")
	}
}

func TestDecodeRejectsWrongWeight(t *testing.T) {
	v, err := Encode(64, 4, []byte{17})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(5, v); !errors.Is(err, ErrEncodingFailure) {
		t.Fatalf("got %v, want ErrEncodingFailure", err)
	}
}

func TestEncodeRejectsOversizedDigest(t *testing.T) {
	// C(64, 4) is about 2^19, far below a 256-bit digest
	digest := bytes.Repeat([]byte{0xff}, 32)
	if _, err := Encode(64, 4, digest); !errors.Is(err, ErrEncodingFailure) {
		t.Fatalf("got %v, want ErrEncodingFailure", err)
	}
}
