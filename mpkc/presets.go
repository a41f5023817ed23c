package mpkc

// Predefined parameter sets. All use the 2048-bit code (M=11). The 256-bit
// digest sets run with T=40, the 512-bit sets raise T to 90 so that the
// constant-weight encoding space C(N,T) still covers the digest output.

func mustParameters(oid [4]byte, engine CipherEngine, digest DigestAlgorithm, prng PRNGAlgorithm, m, t int) *Parameters {
	p, err := NewParameters(oid, engine, digest, prng, m, t, 0)
	if err != nil {
		panic(err)
	}
	return p
}

// FujisakiSHA2 is the default set: Fujisaki conversion, SHA2-256, blake2b
// keystream, M=11, T=40.
func FujisakiSHA2() *Parameters {
	return mustParameters([4]byte{1, 1, 1, 1}, EngineFujisaki, DigestSHA2_256, PRNGBlake2Xof, 11, 40)
}

// FujisakiSHA3 swaps the digest family for SHA3-256.
func FujisakiSHA3() *Parameters {
	return mustParameters([4]byte{1, 1, 2, 1}, EngineFujisaki, DigestSHA3_256, PRNGShake256, 11, 40)
}

// FujisakiBlake2b swaps the digest family for Blake2b-256.
func FujisakiBlake2b() *Parameters {
	return mustParameters([4]byte{1, 1, 3, 1}, EngineFujisaki, DigestBlake2b256, PRNGBlake2Xof, 11, 40)
}

// FujisakiSHA2Large is the 512-bit digest variant.
func FujisakiSHA2Large() *Parameters {
	return mustParameters([4]byte{1, 1, 1, 2}, EngineFujisaki, DigestSHA2_512, PRNGBlake2Xof, 11, 90)
}

// PointchevalSHA2 is the Pointcheval conversion with SHA2-256.
func PointchevalSHA2() *Parameters {
	return mustParameters([4]byte{1, 2, 1, 1}, EnginePointcheval, DigestSHA2_256, PRNGBlake2Xof, 11, 40)
}

// PointchevalSHA3 is the Pointcheval conversion with SHA3-256.
func PointchevalSHA3() *Parameters {
	return mustParameters([4]byte{1, 2, 2, 1}, EnginePointcheval, DigestSHA3_256, PRNGShake256, 11, 40)
}

// Presets returns every predefined parameter set.
func Presets() []*Parameters {
	return []*Parameters{
		FujisakiSHA2(),
		FujisakiSHA3(),
		FujisakiBlake2b(),
		FujisakiSHA2Large(),
		PointchevalSHA2(),
		PointchevalSHA3(),
	}
}
