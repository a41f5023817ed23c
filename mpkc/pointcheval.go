package mpkc

import (
	"io"

	"mpkc/linalg"
)

// PointchevalCipher is the Pointcheval conversion of the McEliece trapdoor.
// It appends a K/8-byte random nonce to the message before hashing, encrypts
// a separate random K-bit session vector through the trapdoor, and hides the
// (message || nonce) pair under the session keystream.
type PointchevalCipher struct {
	// Rand supplies encryption randomness. Nil selects crypto/rand.
	Rand io.Reader
	cipherState
}

// Initialize binds the cipher to a key. A public key enables Encrypt, a
// private key enables Decrypt.
func (c *PointchevalCipher) Initialize(key Key) error {
	return c.initialize(key, c.Rand)
}

// Encrypt produces c1 || c2 with c1 the trapdoor image of (r', z) where
// z = Encode(H(M || nonce)), and c2 = (M || nonce) under the r'-seeded
// keystream.
func (c *PointchevalCipher) Encrypt(message []byte) ([]byte, error) {
	pub, err := c.encryptKey()
	if err != nil {
		return nil, err
	}
	if len(message) > pub.MaxPlainText() {
		return nil, ErrPlaintextTooLong
	}
	nonce := make([]byte, pub.K()/8)
	if _, err := io.ReadFull(c.rng, nonce); err != nil {
		return nil, err
	}
	session, err := linalg.RandomGF2Vector(pub.K(), c.rng)
	if err != nil {
		return nil, err
	}
	padded := concat(message, nonce)
	z, err := Encode(pub.N(), pub.T(), c.params.hash(padded))
	if err != nil {
		return nil, err
	}
	c1, err := encryptPrimitive(pub, session, z)
	if err != nil {
		return nil, err
	}
	stream, err := c.params.keystream(session.Bytes())
	if err != nil {
		return nil, err
	}
	c2, err := xorKeystream(stream, padded)
	if err != nil {
		return nil, err
	}
	return concat(c1.Bytes(), c2), nil
}

// Decrypt inverts the trapdoor for the session vector, unmasks the
// (message || nonce) pair, and re-derives the error pattern from the pair's
// digest. Any mismatch yields ErrInvalidCiphertext.
func (c *PointchevalCipher) Decrypt(ciphertext []byte) ([]byte, error) {
	priv, err := c.decryptKey()
	if err != nil {
		return nil, err
	}
	c1Len := c.c1Len()
	nonceLen := priv.K() / 8
	if len(ciphertext) < c1Len+nonceLen {
		return nil, ErrMalformedCiphertext
	}
	c1, err := linalg.OS2VP(priv.N(), ciphertext[:c1Len])
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	session, z, err := decryptPrimitive(priv, c1)
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	stream, err := c.params.keystream(session.Bytes())
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	padded, err := xorKeystream(stream, ciphertext[c1Len:])
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	expected, err := Encode(priv.N(), priv.T(), c.params.hash(padded))
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	if !expected.Equal(z) {
		return nil, ErrInvalidCiphertext
	}
	return padded[:len(padded)-nonceLen], nil
}
