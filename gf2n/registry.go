package gf2n

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"mpkc/linalg"
)

// Registry caches change-of-basis matrices between field representations.
// Conversion between two GF(2^n) representations is the GF(2)-linear map
// sending the source basis elements to their images in the destination field;
// the matrix is computed once per ordered field pair, and its inverse is
// stored under the reverse pair so that round trips use the same isomorphism.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	rng   io.Reader
	cache map[pairKey]*linalg.GF2Matrix
}

type pairKey struct {
	src, dst Field
}

// NewRegistry returns an empty registry drawing randomness for root finding
// from rng; a nil rng selects crypto/rand.
func NewRegistry(rng io.Reader) *Registry {
	if rng == nil {
		rng = rand.Reader
	}
	return &Registry{rng: rng, cache: make(map[pairKey]*linalg.GF2Matrix)}
}

// Convert maps e into an equivalent element of dst. Both fields must have the
// same degree. Converting back through the same registry inverts exactly.
func (r *Registry) Convert(e Element, dst Field) (Element, error) {
	src := e.Field()
	if src == dst {
		return e.Clone(), nil
	}
	if src.Degree() != dst.Degree() {
		return nil, fmt.Errorf("%w: degree %d vs %d", ErrFieldMismatch, src.Degree(), dst.Degree())
	}
	m, err := r.matrix(src, dst)
	if err != nil {
		return nil, err
	}
	coords := elementCoords(e)
	image, err := m.LeftMultiply(coords)
	if err != nil {
		return nil, err
	}
	return dst.elementFromCoords(vectorWords(image)), nil
}

// matrix returns the cached conversion matrix from src to dst, computing and
// caching both directions on a miss.
func (r *Registry) matrix(src, dst Field) (*linalg.GF2Matrix, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.cache[pairKey{src, dst}]; ok {
		return m, nil
	}
	m, err := conversionMatrix(src, dst, r.rng)
	if err != nil {
		return nil, err
	}
	inv, err := m.ComputeInverse()
	if err != nil {
		return nil, err
	}
	r.cache[pairKey{src, dst}] = m
	r.cache[pairKey{dst, src}] = inv
	return m, nil
}

// conversionMatrix builds the matrix whose row i is the dst-coordinate vector
// of the image of the i-th src basis element. The field embedding is pinned by
// finding a random root u of the src defining polynomial inside dst: a normal
// src basis maps to the conjugates u^(2^i), a polynomial src basis to the
// powers u^i.
func conversionMatrix(src, dst Field, rng io.Reader) (*linalg.GF2Matrix, error) {
	n := src.Degree()
	lifted := LiftGF2Polynomial(dst, src.FieldPolynomial())
	u, err := dst.RandomRoot(lifted, rng)
	if err != nil {
		return nil, err
	}
	m := linalg.NewGF2Matrix(n, n)
	var b Element
	if src.Basis() == BasisONB {
		b = u.Clone() // rows are the conjugates u^(2^i)
	} else {
		b = dst.One() // rows are the powers u^i, starting at u^0
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if b.TestBit(j) {
				m.SetBit(i, j)
			}
		}
		if src.Basis() == BasisONB {
			b = b.Square()
		} else {
			b = b.Multiply(u)
		}
	}
	return m, nil
}

// FieldsCompatible reports whether direct conversion between the two fields is
// possible, meaning equal degree.
func FieldsCompatible(a, b Field) bool {
	return a.Degree() == b.Degree()
}

func elementCoords(e Element) *linalg.GF2Vector {
	n := e.Field().Degree()
	v := linalg.NewGF2Vector(n)
	for i := 0; i < n; i++ {
		if e.TestBit(i) {
			v.SetBit(i)
		}
	}
	return v
}

func vectorWords(v *linalg.GF2Vector) []uint64 {
	n := v.Len()
	out := make([]uint64, wordsForBits(n))
	for i := 0; i < n; i++ {
		if v.TestBit(i) {
			out[i/64] |= 1 << (uint(i) % 64)
		}
	}
	return out
}
