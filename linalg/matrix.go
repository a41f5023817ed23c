package linalg

import (
	"fmt"
	"io"
)

// GF2Matrix is a matrix over GF(2) with word-packed rows.
type GF2Matrix struct {
	rows, cols int
	words      [][]uint64
}

// NewGF2Matrix returns the zero matrix of the given shape.
func NewGF2Matrix(rows, cols int) *GF2Matrix {
	if rows < 0 || cols < 0 {
		panic("linalg: negative matrix shape")
	}
	words := make([][]uint64, rows)
	for i := range words {
		words[i] = make([]uint64, (cols+wordBits-1)/wordBits)
	}
	return &GF2Matrix{rows: rows, cols: cols, words: words}
}

// IdentityGF2Matrix returns the n x n identity.
func IdentityGF2Matrix(n int) *GF2Matrix {
	m := NewGF2Matrix(n, n)
	for i := 0; i < n; i++ {
		m.SetBit(i, i)
	}
	return m
}

// RandomRegularGF2Matrix draws random square matrices from rng until one is
// invertible, and returns the matrix together with its inverse.
func RandomRegularGF2Matrix(n int, rng io.Reader) (m, inv *GF2Matrix, err error) {
	buf := make([]byte, (n+7)/8)
	for {
		m = NewGF2Matrix(n, n)
		for i := 0; i < n; i++ {
			if _, err = io.ReadFull(rng, buf); err != nil {
				return nil, nil, err
			}
			for j := 0; j < n; j++ {
				if buf[j/8]>>(uint(j)%8)&1 == 1 {
					m.SetBit(i, j)
				}
			}
		}
		inv, err = m.ComputeInverse()
		if err == nil {
			return m, inv, nil
		}
	}
}

// Rows returns the number of rows.
func (m *GF2Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *GF2Matrix) Cols() int { return m.cols }

// TestBit reports whether entry (row, col) is one.
func (m *GF2Matrix) TestBit(row, col int) bool {
	return m.words[row][col/wordBits]>>(uint(col)%wordBits)&1 == 1
}

// SetBit sets entry (row, col) to one.
func (m *GF2Matrix) SetBit(row, col int) {
	m.words[row][col/wordBits] |= 1 << (uint(col) % wordBits)
}

// Clone returns an independent copy.
func (m *GF2Matrix) Clone() *GF2Matrix {
	out := NewGF2Matrix(m.rows, m.cols)
	for i := range m.words {
		copy(out.words[i], m.words[i])
	}
	return out
}

// Equal reports whether both matrices have identical entries.
func (m *GF2Matrix) Equal(o *GF2Matrix) bool {
	if o == nil || m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i := range m.words {
		for j := range m.words[i] {
			if m.words[i][j] != o.words[i][j] {
				return false
			}
		}
	}
	return true
}

// LeftMultiply computes the row vector v * M for a vector of length Rows(),
// returning a vector of length Cols().
func (m *GF2Matrix) LeftMultiply(v *GF2Vector) (*GF2Vector, error) {
	if v.Len() != m.rows {
		return nil, ErrDimensionMismatch
	}
	out := NewGF2Vector(m.cols)
	for i := 0; i < m.rows; i++ {
		if !v.TestBit(i) {
			continue
		}
		for w := range out.words {
			out.words[w] ^= m.words[i][w]
		}
	}
	return out, nil
}

// MultiplyVector computes M * v for a column vector of length Cols(),
// returning a vector of length Rows().
func (m *GF2Matrix) MultiplyVector(v *GF2Vector) (*GF2Vector, error) {
	if v.Len() != m.cols {
		return nil, ErrDimensionMismatch
	}
	out := NewGF2Vector(m.rows)
	for i := 0; i < m.rows; i++ {
		var parity uint64
		for w := range v.words {
			parity ^= m.words[i][w] & v.words[w]
		}
		if popcountParity(parity) {
			out.SetBit(i)
		}
	}
	return out, nil
}

// Multiply returns the matrix product m * o.
func (m *GF2Matrix) Multiply(o *GF2Matrix) (*GF2Matrix, error) {
	if m.cols != o.rows {
		return nil, ErrDimensionMismatch
	}
	out := NewGF2Matrix(m.rows, o.cols)
	for i := 0; i < m.rows; i++ {
		for k := 0; k < m.cols; k++ {
			if !m.TestBit(i, k) {
				continue
			}
			for w := range out.words[i] {
				out.words[i][w] ^= o.words[k][w]
			}
		}
	}
	return out, nil
}

// Transpose returns the transposed matrix.
func (m *GF2Matrix) Transpose() *GF2Matrix {
	out := NewGF2Matrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if m.TestBit(i, j) {
				out.SetBit(j, i)
			}
		}
	}
	return out
}

// ComputeInverse inverts a square matrix by Gauss-Jordan elimination, failing
// with ErrSingular if no inverse exists.
func (m *GF2Matrix) ComputeInverse() (*GF2Matrix, error) {
	if m.rows != m.cols {
		return nil, fmt.Errorf("%w: matrix is %dx%d", ErrDimensionMismatch, m.rows, m.cols)
	}
	n := m.rows
	work := m.Clone()
	out := IdentityGF2Matrix(n)
	for col := 0; col < n; col++ {
		pivot := -1
		for row := col; row < n; row++ {
			if work.TestBit(row, col) {
				pivot = row
				break
			}
		}
		if pivot < 0 {
			return nil, ErrSingular
		}
		work.words[col], work.words[pivot] = work.words[pivot], work.words[col]
		out.words[col], out.words[pivot] = out.words[pivot], out.words[col]
		for row := 0; row < n; row++ {
			if row == col || !work.TestBit(row, col) {
				continue
			}
			xorRow(work.words[row], work.words[col])
			xorRow(out.words[row], out.words[col])
		}
	}
	return out, nil
}

// Bytes encodes the matrix row-major, each row packed into ceil(cols/8)
// octets with the same bit order as GF2Vector.Bytes.
func (m *GF2Matrix) Bytes() []byte {
	rowBytes := (m.cols + 7) / 8
	out := make([]byte, m.rows*rowBytes)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < rowBytes; j++ {
			out[i*rowBytes+j] = byte(m.words[i][j/8] >> (uint(j) % 8 * 8))
		}
	}
	return out
}

// GF2MatrixFromBytes decodes the Bytes encoding for a known shape, rejecting
// wrong lengths and set padding bits.
func GF2MatrixFromBytes(rows, cols int, data []byte) (*GF2Matrix, error) {
	rowBytes := (cols + 7) / 8
	if rows < 0 || cols < 0 || len(data) != rows*rowBytes {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidEncoding, len(data), rows*rowBytes)
	}
	out := NewGF2Matrix(rows, cols)
	for i := 0; i < rows; i++ {
		row, err := OS2VP(cols, data[i*rowBytes:(i+1)*rowBytes])
		if err != nil {
			return nil, err
		}
		for w := range out.words[i] {
			out.words[i][w] = row.words[w]
		}
	}
	return out, nil
}

// PermuteColumns returns the matrix whose column j is column p[j] of m.
func (m *GF2Matrix) PermuteColumns(p *Permutation) (*GF2Matrix, error) {
	if p.Size() != m.cols {
		return nil, ErrDimensionMismatch
	}
	out := NewGF2Matrix(m.rows, m.cols)
	for j := 0; j < m.cols; j++ {
		src := p.vector[j]
		for i := 0; i < m.rows; i++ {
			if m.TestBit(i, src) {
				out.SetBit(i, j)
			}
		}
	}
	return out, nil
}

// SubMatrix returns the column slice [from, to) of m.
func (m *GF2Matrix) SubMatrix(from, to int) *GF2Matrix {
	if from < 0 || to > m.cols || from > to {
		panic("linalg: submatrix bounds out of range")
	}
	out := NewGF2Matrix(m.rows, to-from)
	for i := 0; i < m.rows; i++ {
		for j := from; j < to; j++ {
			if m.TestBit(i, j) {
				out.SetBit(i, j-from)
			}
		}
	}
	return out
}

// ConcatColumns returns the matrix [m | o].
func (m *GF2Matrix) ConcatColumns(o *GF2Matrix) (*GF2Matrix, error) {
	if m.rows != o.rows {
		return nil, ErrDimensionMismatch
	}
	out := NewGF2Matrix(m.rows, m.cols+o.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if m.TestBit(i, j) {
				out.SetBit(i, j)
			}
		}
		for j := 0; j < o.cols; j++ {
			if o.TestBit(i, j) {
				out.SetBit(i, m.cols+j)
			}
		}
	}
	return out, nil
}

func xorRow(dst, src []uint64) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

func popcountParity(w uint64) bool {
	w ^= w >> 32
	w ^= w >> 16
	w ^= w >> 8
	w ^= w >> 4
	w ^= w >> 2
	w ^= w >> 1
	return w&1 == 1
}
