// Package mpkc implements the McEliece public-key cryptosystem with CCA2
// security: parameter sets, key generation over binary Goppa codes, the
// Fujisaki and Pointcheval conversions, and a one-time signature scheme.
package mpkc

import (
	"encoding/binary"
	"errors"
	"fmt"

	"mpkc/gf2m"
)

// Errors of the parameter and key layer.
var (
	ErrInvalidParameters = errors.New("mpkc: invalid parameters")
	ErrInvalidOId        = errors.New("mpkc: malformed object identifier")
)

// CipherEngine selects the CCA2 conversion wrapped around the trapdoor.
type CipherEngine uint32

const (
	EngineFujisaki CipherEngine = iota + 1
	EnginePointcheval
)

func (e CipherEngine) String() string {
	switch e {
	case EngineFujisaki:
		return "fujisaki"
	case EnginePointcheval:
		return "pointcheval"
	default:
		return "unknown"
	}
}

// DigestAlgorithm selects the hash family and output size. Only 256 and 512
// bit outputs are usable by this layer.
type DigestAlgorithm uint32

const (
	DigestSHA2_256 DigestAlgorithm = iota + 1
	DigestSHA2_512
	DigestSHA3_256
	DigestSHA3_512
	DigestBlake2b256
	DigestBlake2b512
)

func (d DigestAlgorithm) String() string {
	switch d {
	case DigestSHA2_256:
		return "sha2-256"
	case DigestSHA2_512:
		return "sha2-512"
	case DigestSHA3_256:
		return "sha3-256"
	case DigestSHA3_512:
		return "sha3-512"
	case DigestBlake2b256:
		return "blake2b-256"
	case DigestBlake2b512:
		return "blake2b-512"
	default:
		return "unknown"
	}
}

// PRNGAlgorithm selects the keystream generator seeded from the session value.
type PRNGAlgorithm uint32

const (
	// PRNGBlake2Xof is the keyed blake2b expander.
	PRNGBlake2Xof PRNGAlgorithm = iota + 1
	// PRNGShake256 is the SHAKE256 extendable-output function.
	PRNGShake256
)

func (p PRNGAlgorithm) String() string {
	switch p {
	case PRNGBlake2Xof:
		return "blake2b-xof"
	case PRNGShake256:
		return "shake256"
	default:
		return "unknown"
	}
}

// parametersByteLen is the fixed serialized size: seven little-endian 32-bit
// fields (OId, engine, digest, prng, m, t, field polynomial).
const parametersByteLen = 28

// Parameters is an immutable McEliece parameter set. N = 2^M is the code
// length, K = N - M*T the message length, T the error-correction capability.
type Parameters struct {
	oid       [4]byte
	engine    CipherEngine
	digest    DigestAlgorithm
	prng      PRNGAlgorithm
	m, t      int
	fieldPoly uint32 // 0 selects the canonical reduction polynomial for M
}

// NewParameters validates and freezes a parameter set. fieldPoly may be zero
// to select the canonical reduction polynomial of degree m.
func NewParameters(oid [4]byte, engine CipherEngine, digest DigestAlgorithm, prng PRNGAlgorithm, m, t int, fieldPoly uint32) (*Parameters, error) {
	if m < 1 || m > 31 {
		return nil, fmt.Errorf("%w: M=%d out of range 1..31", ErrInvalidParameters, m)
	}
	n := 1 << uint(m)
	if t < 1 {
		return nil, fmt.Errorf("%w: T=%d must be positive", ErrInvalidParameters, t)
	}
	if n-m*t < 1 {
		return nil, fmt.Errorf("%w: M=%d T=%d leaves no message bits", ErrInvalidParameters, m, t)
	}
	switch engine {
	case EngineFujisaki, EnginePointcheval:
	default:
		return nil, fmt.Errorf("%w: unknown cipher engine %d", ErrInvalidParameters, engine)
	}
	if _, err := digestSize(digest); err != nil {
		return nil, err
	}
	switch prng {
	case PRNGBlake2Xof, PRNGShake256:
	default:
		return nil, fmt.Errorf("%w: unknown prng %d", ErrInvalidParameters, prng)
	}
	if fieldPoly != 0 {
		if _, err := gf2m.NewFieldPoly(m, fieldPoly); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
		}
	}
	return &Parameters{oid: oid, engine: engine, digest: digest, prng: prng, m: m, t: t, fieldPoly: fieldPoly}, nil
}

// ParametersFromBytes reconstructs a parameter set from its 28-byte encoding.
func ParametersFromBytes(data []byte) (*Parameters, error) {
	if len(data) != parametersByteLen {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidParameters, len(data), parametersByteLen)
	}
	var oid [4]byte
	copy(oid[:], data[:4])
	engine := CipherEngine(binary.LittleEndian.Uint32(data[4:8]))
	digest := DigestAlgorithm(binary.LittleEndian.Uint32(data[8:12]))
	prng := PRNGAlgorithm(binary.LittleEndian.Uint32(data[12:16]))
	m := int(binary.LittleEndian.Uint32(data[16:20]))
	t := int(binary.LittleEndian.Uint32(data[20:24]))
	fieldPoly := binary.LittleEndian.Uint32(data[24:28])
	return NewParameters(oid, engine, digest, prng, m, t, fieldPoly)
}

// ToBytes returns the fixed 28-byte little-endian encoding.
func (p *Parameters) ToBytes() []byte {
	out := make([]byte, parametersByteLen)
	copy(out[:4], p.oid[:])
	binary.LittleEndian.PutUint32(out[4:8], uint32(p.engine))
	binary.LittleEndian.PutUint32(out[8:12], uint32(p.digest))
	binary.LittleEndian.PutUint32(out[12:16], uint32(p.prng))
	binary.LittleEndian.PutUint32(out[16:20], uint32(p.m))
	binary.LittleEndian.PutUint32(out[20:24], uint32(p.t))
	binary.LittleEndian.PutUint32(out[24:28], p.fieldPoly)
	return out
}

// OId returns the 4-byte object identifier (family, set, subset, designator).
func (p *Parameters) OId() [4]byte { return p.oid }

// Engine returns the CCA2 conversion variant.
func (p *Parameters) Engine() CipherEngine { return p.engine }

// Digest returns the configured hash algorithm.
func (p *Parameters) Digest() DigestAlgorithm { return p.digest }

// PRNG returns the configured keystream generator.
func (p *Parameters) PRNG() PRNGAlgorithm { return p.prng }

// M returns the field degree.
func (p *Parameters) M() int { return p.m }

// T returns the error-correction capability.
func (p *Parameters) T() int { return p.t }

// N returns the code length 2^M.
func (p *Parameters) N() int { return 1 << uint(p.m) }

// K returns the message length N - M*T.
func (p *Parameters) K() int { return p.N() - p.m*p.t }

// FieldPolynomial returns the explicit reduction polynomial, zero when the
// canonical one is selected.
func (p *Parameters) FieldPolynomial() uint32 { return p.fieldPoly }

// Field constructs the GF(2^M) support field described by the parameters.
func (p *Parameters) Field() (*gf2m.Field, error) {
	if p.fieldPoly != 0 {
		return gf2m.NewFieldPoly(p.m, p.fieldPoly)
	}
	return gf2m.NewField(p.m)
}

// Equal compares field by field.
func (p *Parameters) Equal(q *Parameters) bool {
	if q == nil {
		return false
	}
	return p.oid == q.oid && p.engine == q.engine && p.digest == q.digest &&
		p.prng == q.prng && p.m == q.m && p.t == q.t && p.fieldPoly == q.fieldPoly
}

func (p *Parameters) String() string {
	return fmt.Sprintf("mpkc(%s, %s, m=%d, t=%d)", p.engine, p.digest, p.m, p.t)
}
