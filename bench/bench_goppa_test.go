package bench

import (
	"crypto/rand"
	"testing"

	"mpkc/gf2m"
	"mpkc/goppa"
	"mpkc/linalg"
)

func newBenchCode(b *testing.B, m, t int) *goppa.Code {
	b.Helper()
	field, err := gf2m.NewField(m)
	if err != nil {
		b.Fatal(err)
	}
	code, err := goppa.Generate(field, t, rand.Reader)
	if err != nil {
		b.Fatal(err)
	}
	return code
}

func noisyCodeword(b *testing.B, code *goppa.Code) *linalg.GF2Vector {
	b.Helper()
	msg, err := linalg.RandomGF2Vector(code.K(), rand.Reader)
	if err != nil {
		b.Fatal(err)
	}
	cw, err := code.Encode(msg)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < code.T(); i++ {
		cw.FlipBit(i * (code.N() / code.T()))
	}
	return cw
}

func BenchmarkGoppaGenerate(b *testing.B) {
	field, err := gf2m.NewField(9)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		code, err := goppa.Generate(field, 12, rand.Reader)
		if err != nil {
			b.Fatal(err)
		}
		_ = code
	}
}

func BenchmarkGoppaEncode(b *testing.B) {
	code := newBenchCode(b, 10, 20)
	msg, err := linalg.RandomGF2Vector(code.K(), rand.Reader)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := code.Encode(msg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGoppaDecode(b *testing.B) {
	code := newBenchCode(b, 10, 20)
	received := noisyCodeword(b, code)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := code.Decode(received); err != nil {
			b.Fatal(err)
		}
	}
}
