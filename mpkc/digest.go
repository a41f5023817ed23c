package mpkc

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"io"

	"github.com/tuneinsight/lattigo/v4/utils"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// digestSize returns the output size in bytes, rejecting anything outside the
// 256/512-bit range this layer supports.
func digestSize(d DigestAlgorithm) (int, error) {
	switch d {
	case DigestSHA2_256, DigestSHA3_256, DigestBlake2b256:
		return 32, nil
	case DigestSHA2_512, DigestSHA3_512, DigestBlake2b512:
		return 64, nil
	default:
		return 0, fmt.Errorf("%w: unsupported digest %d", ErrInvalidParameters, d)
	}
}

// hash applies the configured digest to data.
func (p *Parameters) hash(data []byte) []byte {
	switch p.digest {
	case DigestSHA2_256:
		sum := sha256.Sum256(data)
		return sum[:]
	case DigestSHA2_512:
		sum := sha512.Sum512(data)
		return sum[:]
	case DigestSHA3_256:
		sum := sha3.Sum256(data)
		return sum[:]
	case DigestSHA3_512:
		sum := sha3.Sum512(data)
		return sum[:]
	case DigestBlake2b256:
		sum := blake2b.Sum256(data)
		return sum[:]
	case DigestBlake2b512:
		sum := blake2b.Sum512(data)
		return sum[:]
	default:
		panic(fmt.Sprintf("mpkc: unreachable digest %d", p.digest))
	}
}

// DigestSize returns the configured digest output size in bytes.
func (p *Parameters) DigestSize() int {
	size, err := digestSize(p.digest)
	if err != nil {
		panic(err)
	}
	return size
}

// keystream returns a byte stream bound to the session value: the seed is
// passed through the digest as a KDF and the result keys the configured
// expander. Raw PRNG output is never used directly.
func (p *Parameters) keystream(seed []byte) (io.Reader, error) {
	key := p.hash(seed)
	switch p.prng {
	case PRNGBlake2Xof:
		return utils.NewKeyedPRNG(key)
	case PRNGShake256:
		h := sha3.NewShake256()
		h.Write(key)
		return h, nil
	default:
		return nil, fmt.Errorf("%w: unsupported prng %d", ErrInvalidParameters, p.prng)
	}
}

// xorKeystream XORs data with the next len(data) bytes of the stream.
func xorKeystream(stream io.Reader, data []byte) ([]byte, error) {
	ks := make([]byte, len(data))
	if _, err := io.ReadFull(stream, ks); err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	for i := range data {
		out[i] = data[i] ^ ks[i]
	}
	return out, nil
}
