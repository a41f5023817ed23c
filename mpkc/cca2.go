package mpkc

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"mpkc/linalg"
)

// Errors of the cipher layer. Every decrypt-side validation failure surfaces
// as the single ErrInvalidCiphertext so that a decryption oracle cannot be
// distinguished by failure cause.
var (
	ErrNotInitialized      = errors.New("mpkc: cipher not initialized")
	ErrWrongKeyRole        = errors.New("mpkc: operation does not match key role")
	ErrMalformedCiphertext = errors.New("mpkc: ciphertext framing invalid")
	ErrInvalidCiphertext   = errors.New("mpkc: invalid ciphertext")
	ErrPlaintextTooLong    = errors.New("mpkc: plaintext exceeds MaxPlainText")
)

// Cipher is a CCA2-secure McEliece cipher. Initialize with a PublicKey to
// encrypt or a PrivateKey to decrypt; each Encrypt/Decrypt call is stateless
// given the initialized key.
type Cipher interface {
	Initialize(key Key) error
	Encrypt(message []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// NewCipher returns the cipher selected by the parameter set's engine.
func NewCipher(params *Parameters) (Cipher, error) {
	switch params.Engine() {
	case EngineFujisaki:
		return &FujisakiCipher{}, nil
	case EnginePointcheval:
		return &PointchevalCipher{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown cipher engine %d", ErrInvalidParameters, params.Engine())
	}
}

// cipherState carries the initialized key and random source shared by both
// conversion variants.
type cipherState struct {
	params *Parameters
	pub    *PublicKey
	priv   *PrivateKey
	rng    io.Reader
}

func (c *cipherState) initialize(key Key, rng io.Reader) error {
	if key == nil {
		return ErrNotInitialized
	}
	if rng == nil {
		rng = rand.Reader
	}
	c.params = key.Parameters()
	c.rng = rng
	switch k := key.(type) {
	case *PublicKey:
		c.pub, c.priv = k, nil
	case *PrivateKey:
		c.pub, c.priv = nil, k
	default:
		return fmt.Errorf("%w: unknown key type %T", ErrWrongKeyRole, key)
	}
	return nil
}

func (c *cipherState) encryptKey() (*PublicKey, error) {
	if c.params == nil {
		return nil, ErrNotInitialized
	}
	if c.pub == nil {
		return nil, fmt.Errorf("%w: encryption needs a public key", ErrWrongKeyRole)
	}
	return c.pub, nil
}

func (c *cipherState) decryptKey() (*PrivateKey, error) {
	if c.params == nil {
		return nil, ErrNotInitialized
	}
	if c.priv == nil {
		return nil, fmt.Errorf("%w: decryption needs a private key", ErrWrongKeyRole)
	}
	return c.priv, nil
}

// c1Len returns the fixed byte length of the trapdoor part of a ciphertext,
// a hard protocol constant derived from the key's N.
func (c *cipherState) c1Len() int { return (c.params.N() + 7) / 8 }

// encryptPrimitive is the raw trapdoor one-way function: embed the K-bit
// message as a codeword of the public code and add the weight-T error z.
func encryptPrimitive(pub *PublicKey, message, z *linalg.GF2Vector) (*linalg.GF2Vector, error) {
	cw, err := pub.gen.LeftMultiply(message)
	if err != nil {
		return nil, err
	}
	return cw.Xor(z)
}

// decryptPrimitive inverts the trapdoor with the private decoder, returning
// the embedded K-bit message and the exact error vector.
func decryptPrimitive(priv *PrivateKey, c1 *linalg.GF2Vector) (message, z *linalg.GF2Vector, err error) {
	cw, z, err := priv.code.Decode(c1)
	if err != nil {
		return nil, nil, err
	}
	return cw.ExtractRight(priv.K()), z, nil
}
