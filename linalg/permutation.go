package linalg

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Permutation is a bijection on {0, ..., n-1}. It is immutable after
// construction except for Clear, which zeroizes the backing array because
// permutations are part of Goppa private-key material.
type Permutation struct {
	vector []int
}

// IdentityPermutation returns the identity on n points.
func IdentityPermutation(n int) *Permutation {
	if n <= 0 {
		panic("linalg: permutation size must be positive")
	}
	v := make([]int, n)
	for i := range v {
		v[i] = i
	}
	return &Permutation{vector: v}
}

// RandomPermutation draws a uniform permutation on n points from rng using
// Fisher-Yates.
func RandomPermutation(n int, rng io.Reader) (*Permutation, error) {
	p := IdentityPermutation(n)
	for i := n - 1; i > 0; i-- {
		j, err := uniformInt(rng, i+1)
		if err != nil {
			return nil, err
		}
		p.vector[i], p.vector[j] = p.vector[j], p.vector[i]
	}
	return p, nil
}

// PermutationFromVector validates that the vector is a bijection and copies it.
func PermutationFromVector(vector []int) (*Permutation, error) {
	n := len(vector)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty vector", ErrInvalidPermutation)
	}
	seen := make([]bool, n)
	for _, v := range vector {
		if v < 0 || v >= n || seen[v] {
			return nil, fmt.Errorf("%w: value %d", ErrInvalidPermutation, v)
		}
		seen[v] = true
	}
	out := make([]int, n)
	copy(out, vector)
	return &Permutation{vector: out}, nil
}

// PermutationFromBytes decodes the canonical encoding: a 4-byte little-endian
// count n followed by n little-endian values of width ceilLog256(n-1) bytes
// each. A one-point permutation uses width 1.
func PermutationFromBytes(data []byte) (*Permutation, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: missing length prefix", ErrInvalidEncoding)
	}
	n := int(binary.LittleEndian.Uint32(data[:4]))
	if n <= 0 {
		return nil, fmt.Errorf("%w: non-positive size %d", ErrInvalidEncoding, n)
	}
	width := ceilLog256(n - 1)
	if len(data) != 4+n*width {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidEncoding, len(data), 4+n*width)
	}
	vector := make([]int, n)
	for i := 0; i < n; i++ {
		var v uint64
		for b := 0; b < width; b++ {
			v |= uint64(data[4+i*width+b]) << (8 * uint(b))
		}
		if v >= uint64(n) {
			return nil, fmt.Errorf("%w: value %d out of range", ErrInvalidEncoding, v)
		}
		vector[i] = int(v)
	}
	p, err := PermutationFromVector(vector)
	if err != nil {
		return nil, fmt.Errorf("%w: decoded vector is not a bijection", ErrInvalidEncoding)
	}
	return p, nil
}

// Size returns the number of points.
func (p *Permutation) Size() int { return len(p.vector) }

// At returns the image of i.
func (p *Permutation) At(i int) int { return p.vector[i] }

// GetVector returns a copy of the underlying array.
func (p *Permutation) GetVector() []int {
	out := make([]int, len(p.vector))
	copy(out, p.vector)
	return out
}

// GetEncoded returns the canonical byte encoding.
func (p *Permutation) GetEncoded() []byte {
	n := len(p.vector)
	width := ceilLog256(n - 1)
	out := make([]byte, 4+n*width)
	binary.LittleEndian.PutUint32(out[:4], uint32(n))
	for i, v := range p.vector {
		for b := 0; b < width; b++ {
			out[4+i*width+b] = byte(v >> (8 * uint(b)))
		}
	}
	return out
}

// Clone returns an independent copy without revalidating the vector, so it
// also works on a cleared permutation.
func (p *Permutation) Clone() *Permutation {
	return &Permutation{vector: p.GetVector()}
}

// ComputeInverse returns the inverse permutation.
func (p *Permutation) ComputeInverse() *Permutation {
	out := make([]int, len(p.vector))
	for i, v := range p.vector {
		out[v] = i
	}
	return &Permutation{vector: out}
}

// RightMultiply returns the composition q with q[i] = p[other[i]].
func (p *Permutation) RightMultiply(other *Permutation) (*Permutation, error) {
	if p.Size() != other.Size() {
		return nil, ErrDimensionMismatch
	}
	out := make([]int, len(p.vector))
	for i := range out {
		out[i] = p.vector[other.vector[i]]
	}
	return &Permutation{vector: out}, nil
}

// IsIdentity reports whether p fixes every point.
func (p *Permutation) IsIdentity() bool {
	for i, v := range p.vector {
		if i != v {
			return false
		}
	}
	return true
}

// Equal reports whether p and q are the same permutation.
func (p *Permutation) Equal(q *Permutation) bool {
	if q == nil || p.Size() != q.Size() {
		return false
	}
	for i := range p.vector {
		if p.vector[i] != q.vector[i] {
			return false
		}
	}
	return true
}

// Clear zeroizes the backing array in place.
func (p *Permutation) Clear() {
	for i := range p.vector {
		p.vector[i] = 0
	}
}

// ceilLog256 returns the minimum number of bytes needed to represent n,
// with a floor of one byte so that the n = 1 permutation stays encodable.
func ceilLog256(n int) int {
	width := 1
	for v := n; v > 255; v >>= 8 {
		width++
	}
	return width
}

// uniformInt draws a uniform integer in [0, bound) by rejection sampling.
func uniformInt(rng io.Reader, bound int) (int, error) {
	if bound <= 0 {
		return 0, fmt.Errorf("linalg: non-positive bound")
	}
	mask := uint32(1)
	for mask < uint32(bound) {
		mask <<= 1
	}
	mask--
	var buf [4]byte
	for {
		if _, err := io.ReadFull(rng, buf[:]); err != nil {
			return 0, err
		}
		v := binary.LittleEndian.Uint32(buf[:]) & mask
		if v < uint32(bound) {
			return int(v), nil
		}
	}
}
