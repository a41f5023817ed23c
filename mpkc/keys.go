package mpkc

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"mpkc/gf2m"
	"mpkc/goppa"
	"mpkc/linalg"
)

// ErrInvalidKey is reported when key material fails to deserialize or is
// inconsistent with its parameter set.
var ErrInvalidKey = errors.New("mpkc: invalid key material")

type keyRole int

const (
	rolePublic keyRole = iota + 1
	rolePrivate
)

// Key is either a PublicKey or a PrivateKey. A cipher accepts a Key at
// initialization and derives its operating direction from the role.
type Key interface {
	Parameters() *Parameters
	role() keyRole
}

// PublicKey holds the systematic generator matrix of the permuted Goppa code.
// It is safe to distribute.
type PublicKey struct {
	params *Parameters
	gen    *linalg.GF2Matrix
}

// Parameters returns the parameter set the key was generated under.
func (k *PublicKey) Parameters() *Parameters { return k.params }

func (k *PublicKey) role() keyRole { return rolePublic }

// N returns the code length.
func (k *PublicKey) N() int { return k.params.N() }

// K returns the message length.
func (k *PublicKey) K() int { return k.params.K() }

// T returns the error-correction capability.
func (k *PublicKey) T() int { return k.params.T() }

// MaxPlainText returns the largest plaintext size in bytes, K/8.
func (k *PublicKey) MaxPlainText() int { return k.K() / 8 }

// GeneratorMatrix returns a copy of the public generator matrix.
func (k *PublicKey) GeneratorMatrix() *linalg.GF2Matrix { return k.gen.Clone() }

type publicKeyWire struct {
	Parameters []byte `cbor:"params"`
	Generator  []byte `cbor:"gen"`
}

// MarshalBinary encodes the key as CBOR.
func (k *PublicKey) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(publicKeyWire{
		Parameters: k.params.ToBytes(),
		Generator:  k.gen.Bytes(),
	})
}

// UnmarshalBinary decodes a CBOR public key.
func (k *PublicKey) UnmarshalBinary(data []byte) error {
	var wire publicKeyWire
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	params, err := ParametersFromBytes(wire.Parameters)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	gen, err := linalg.GF2MatrixFromBytes(params.K(), params.N(), wire.Generator)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	k.params = params
	k.gen = gen
	return nil
}

// PrivateKey holds the trapdoor: the Goppa polynomial and support permutation
// wrapped in the reconstructed code. Call Destroy when the key goes out of
// use.
type PrivateKey struct {
	params *Parameters
	code   *goppa.Code
}

// Parameters returns the parameter set the key was generated under.
func (k *PrivateKey) Parameters() *Parameters { return k.params }

func (k *PrivateKey) role() keyRole { return rolePrivate }

// N returns the code length.
func (k *PrivateKey) N() int { return k.params.N() }

// K returns the message length.
func (k *PrivateKey) K() int { return k.params.K() }

// T returns the error-correction capability.
func (k *PrivateKey) T() int { return k.params.T() }

// MaxPlainText returns the largest plaintext size in bytes, K/8.
func (k *PrivateKey) MaxPlainText() int { return k.K() / 8 }

// Public derives the matching public key.
func (k *PrivateKey) Public() *PublicKey {
	return &PublicKey{params: k.params, gen: k.code.GeneratorMatrix()}
}

// Destroy zeroizes the trapdoor material in place. The key is unusable
// afterwards.
func (k *PrivateKey) Destroy() {
	k.code.Clear()
}

type privateKeyWire struct {
	Parameters  []byte   `cbor:"params"`
	Goppa       []uint32 `cbor:"goppa"`
	Permutation []byte   `cbor:"perm"`
}

// MarshalBinary encodes the key as CBOR. The generator matrix and decoding
// matrices are not stored; they are recomputed on load.
func (k *PrivateKey) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(privateKeyWire{
		Parameters:  k.params.ToBytes(),
		Goppa:       k.code.GoppaPolynomial().Coefficients(),
		Permutation: k.code.Permutation().GetEncoded(),
	})
}

// UnmarshalBinary decodes a CBOR private key and rebuilds the code.
func (k *PrivateKey) UnmarshalBinary(data []byte) error {
	var wire privateKeyWire
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	params, err := ParametersFromBytes(wire.Parameters)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	field, err := params.Field()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	g, err := gf2m.NewPolynomial(field, wire.Goppa)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if g.Degree() != params.T() {
		return fmt.Errorf("%w: goppa degree %d, want %d", ErrInvalidKey, g.Degree(), params.T())
	}
	perm, err := linalg.PermutationFromBytes(wire.Permutation)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	code, err := goppa.NewCode(field, g, perm)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	k.params = params
	k.code = code
	return nil
}
