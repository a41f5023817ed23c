// Package linalg provides the binary linear algebra used by code-based key
// generation and encryption: bit vectors over GF(2), word-packed binary
// matrices with Gaussian inversion, and permutations with a canonical byte
// encoding and explicit zeroization.
package linalg

import (
	"errors"
	"fmt"
	"io"
	"math/bits"
)

const wordBits = 64

// Errors reported by vector, matrix and permutation construction.
var (
	ErrInvalidEncoding    = errors.New("linalg: invalid byte encoding")
	ErrInvalidPermutation = errors.New("linalg: vector is not a permutation")
	ErrDimensionMismatch  = errors.New("linalg: dimension mismatch")
	ErrSingular           = errors.New("linalg: matrix is singular")
)

// GF2Vector is a bit vector of fixed length over GF(2).
type GF2Vector struct {
	length int
	words  []uint64
}

// NewGF2Vector returns the zero vector of the given length.
func NewGF2Vector(length int) *GF2Vector {
	if length < 0 {
		panic("linalg: negative vector length")
	}
	return &GF2Vector{length: length, words: make([]uint64, (length+wordBits-1)/wordBits)}
}

// OS2VP decodes an octet string into a bit vector of the given length. The
// input must be exactly ceil(length/8) bytes with all padding bits clear.
func OS2VP(length int, data []byte) (*GF2Vector, error) {
	byteLen := (length + 7) / 8
	if len(data) != byteLen {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidEncoding, len(data), byteLen)
	}
	if length%8 != 0 && byteLen > 0 {
		if data[byteLen-1]>>(uint(length)%8) != 0 {
			return nil, fmt.Errorf("%w: non-zero padding bits", ErrInvalidEncoding)
		}
	}
	v := NewGF2Vector(length)
	for i, b := range data {
		v.words[i/8] |= uint64(b) << (uint(i) % 8 * 8)
	}
	return v, nil
}

// RandomGF2Vector draws a uniform vector of the given length from rng.
func RandomGF2Vector(length int, rng io.Reader) (*GF2Vector, error) {
	buf := make([]byte, (length+7)/8)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return nil, err
	}
	if length%8 != 0 && len(buf) > 0 {
		buf[len(buf)-1] &= byte(1<<(uint(length)%8)) - 1
	}
	return OS2VP(length, buf)
}

// Bytes encodes the vector as ceil(length/8) octets, little-endian bit order
// within each byte.
func (v *GF2Vector) Bytes() []byte {
	out := make([]byte, (v.length+7)/8)
	for i := range out {
		out[i] = byte(v.words[i/8] >> (uint(i) % 8 * 8))
	}
	return out
}

// Len returns the number of bits.
func (v *GF2Vector) Len() int { return v.length }

// TestBit reports whether bit i is set.
func (v *GF2Vector) TestBit(i int) bool {
	if i < 0 || i >= v.length {
		return false
	}
	return v.words[i/wordBits]>>(uint(i)%wordBits)&1 == 1
}

// SetBit sets bit i to one.
func (v *GF2Vector) SetBit(i int) {
	if i < 0 || i >= v.length {
		panic("linalg: bit index out of range")
	}
	v.words[i/wordBits] |= 1 << (uint(i) % wordBits)
}

// FlipBit toggles bit i.
func (v *GF2Vector) FlipBit(i int) {
	if i < 0 || i >= v.length {
		panic("linalg: bit index out of range")
	}
	v.words[i/wordBits] ^= 1 << (uint(i) % wordBits)
}

// Xor returns v + w over GF(2).
func (v *GF2Vector) Xor(w *GF2Vector) (*GF2Vector, error) {
	if v.length != w.length {
		return nil, ErrDimensionMismatch
	}
	out := NewGF2Vector(v.length)
	for i := range v.words {
		out.words[i] = v.words[i] ^ w.words[i]
	}
	return out, nil
}

// Weight returns the Hamming weight.
func (v *GF2Vector) Weight() int {
	w := 0
	for _, word := range v.words {
		w += bits.OnesCount64(word)
	}
	return w
}

// IsZero reports whether no bit is set.
func (v *GF2Vector) IsZero() bool {
	for _, w := range v.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (v *GF2Vector) Clone() *GF2Vector {
	out := NewGF2Vector(v.length)
	copy(out.words, v.words)
	return out
}

// Equal reports whether v and w are identical vectors.
func (v *GF2Vector) Equal(w *GF2Vector) bool {
	if w == nil || v.length != w.length {
		return false
	}
	for i := range v.words {
		if v.words[i] != w.words[i] {
			return false
		}
	}
	return true
}

// ExtractRight returns the last k bits of v as a vector of length k.
func (v *GF2Vector) ExtractRight(k int) *GF2Vector {
	if k < 0 || k > v.length {
		panic("linalg: extract length out of range")
	}
	out := NewGF2Vector(k)
	for i := 0; i < k; i++ {
		if v.TestBit(v.length - k + i) {
			out.SetBit(i)
		}
	}
	return out
}

// Permute returns the vector w with w[i] = v[p[i]].
func (v *GF2Vector) Permute(p *Permutation) (*GF2Vector, error) {
	if v.length != p.Size() {
		return nil, ErrDimensionMismatch
	}
	out := NewGF2Vector(v.length)
	for i := 0; i < v.length; i++ {
		if v.TestBit(p.vector[i]) {
			out.SetBit(i)
		}
	}
	return out, nil
}

// SetBitPositions returns the indices of the set bits in increasing order.
func (v *GF2Vector) SetBitPositions() []int {
	out := make([]int, 0, v.Weight())
	for i := 0; i < v.length; i++ {
		if v.TestBit(i) {
			out = append(out, i)
		}
	}
	return out
}
