package mpkc

import (
	"io"

	"mpkc/linalg"
)

// FujisakiCipher is the Fujisaki-Okamoto conversion of the McEliece trapdoor.
// The session value r is a random K-bit vector; the error pattern is bound to
// H(r || M) and re-derived on decryption, so any tampering invalidates the
// ciphertext.
type FujisakiCipher struct {
	// Rand supplies encryption randomness. Nil selects crypto/rand.
	Rand io.Reader
	cipherState
}

// Initialize binds the cipher to a key. A public key enables Encrypt, a
// private key enables Decrypt.
func (c *FujisakiCipher) Initialize(key Key) error {
	return c.initialize(key, c.Rand)
}

// Encrypt produces c1 || c2 where c1 is the trapdoor image of (r, z) with
// z = Encode(H(r || M)) and c2 is M under the r-seeded keystream. The message
// may be at most MaxPlainText bytes.
func (c *FujisakiCipher) Encrypt(message []byte) ([]byte, error) {
	pub, err := c.encryptKey()
	if err != nil {
		return nil, err
	}
	if len(message) > pub.MaxPlainText() {
		return nil, ErrPlaintextTooLong
	}
	r, err := linalg.RandomGF2Vector(pub.K(), c.rng)
	if err != nil {
		return nil, err
	}
	rBytes := r.Bytes()
	z, err := Encode(pub.N(), pub.T(), c.params.hash(concat(rBytes, message)))
	if err != nil {
		return nil, err
	}
	c1, err := encryptPrimitive(pub, r, z)
	if err != nil {
		return nil, err
	}
	stream, err := c.params.keystream(rBytes)
	if err != nil {
		return nil, err
	}
	c2, err := xorKeystream(stream, message)
	if err != nil {
		return nil, err
	}
	return concat(c1.Bytes(), c2), nil
}

// Decrypt splits the ciphertext at the fixed c1 boundary, inverts the
// trapdoor, recovers the plaintext from the keystream, and re-derives the
// error pattern from H(r' || M'). Any mismatch yields ErrInvalidCiphertext.
func (c *FujisakiCipher) Decrypt(ciphertext []byte) ([]byte, error) {
	priv, err := c.decryptKey()
	if err != nil {
		return nil, err
	}
	c1Len := c.c1Len()
	if len(ciphertext) < c1Len {
		return nil, ErrMalformedCiphertext
	}
	c1, err := linalg.OS2VP(priv.N(), ciphertext[:c1Len])
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	r, z, err := decryptPrimitive(priv, c1)
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	rBytes := r.Bytes()
	stream, err := c.params.keystream(rBytes)
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	message, err := xorKeystream(stream, ciphertext[c1Len:])
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	expected, err := Encode(priv.N(), priv.T(), c.params.hash(concat(rBytes, message)))
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	if !expected.Equal(z) {
		return nil, ErrInvalidCiphertext
	}
	return message, nil
}

func concat(parts ...[]byte) []byte {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]byte, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
