package mpkc

import (
	"crypto/subtle"
	"errors"
	"fmt"
)

// ErrKeyTooSmall is reported when the key cannot carry the configured digest
// as a plaintext.
var ErrKeyTooSmall = errors.New("mpkc: key too small for digest size")

// OneTimeSignature is a signature scheme with reversed key roles: signing
// encrypts the message digest under the PUBLIC key, and verification decrypts
// it with the PRIVATE key and compares. A key pair must sign at most one
// message; reuse leaks trapdoor information. This asymmetry is a property of
// the construction, not an implementation accident.
type OneTimeSignature struct {
	cipher Cipher
	key    Key
}

// Initialize binds the scheme to a key: a public key enables Sign, a private
// key enables Verify. Fails with ErrKeyTooSmall when the digest does not fit
// in a plaintext.
func (s *OneTimeSignature) Initialize(key Key) error {
	if key == nil {
		return ErrNotInitialized
	}
	params := key.Parameters()
	maxPlain := params.K() / 8
	if maxPlain < params.DigestSize() {
		return fmt.Errorf("%w: MaxPlainText %d < digest %d", ErrKeyTooSmall, maxPlain, params.DigestSize())
	}
	cipher, err := NewCipher(params)
	if err != nil {
		return err
	}
	if err := cipher.Initialize(key); err != nil {
		return err
	}
	s.cipher = cipher
	s.key = key
	return nil
}

// Sign encrypts the digest of message under the public key.
func (s *OneTimeSignature) Sign(message []byte) ([]byte, error) {
	if s.key == nil {
		return nil, ErrNotInitialized
	}
	if s.key.role() != rolePublic {
		return nil, fmt.Errorf("%w: signing needs the public key", ErrWrongKeyRole)
	}
	return s.cipher.Encrypt(s.key.Parameters().hash(message))
}

// Verify decrypts the signature with the private key and compares it to a
// fresh digest of message. A signature that fails to decrypt verifies false
// rather than erroring.
func (s *OneTimeSignature) Verify(message, signature []byte) (bool, error) {
	if s.key == nil {
		return false, ErrNotInitialized
	}
	if s.key.role() != rolePrivate {
		return false, fmt.Errorf("%w: verification needs the private key", ErrWrongKeyRole)
	}
	recovered, err := s.cipher.Decrypt(signature)
	if errors.Is(err, ErrInvalidCiphertext) || errors.Is(err, ErrMalformedCiphertext) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	expected := s.key.Parameters().hash(message)
	return subtle.ConstantTimeCompare(recovered, expected) == 1, nil
}
