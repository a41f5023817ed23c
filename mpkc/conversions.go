package mpkc

import (
	"errors"
	"fmt"
	"math/big"

	"mpkc/linalg"
)

// ErrEncodingFailure is reported when bytes cannot be mapped into the
// constant-weight encoding space, or a vector of the wrong weight is decoded.
var ErrEncodingFailure = errors.New("mpkc: constant-weight encoding failure")

// Encode deterministically maps data, read as a big-endian integer, into the
// weight-t bit vector of length n with that combinadic index. It fails when
// the integer reaches C(n, t): a parameter set whose digest outruns the
// encoding space is unusable, not retryable.
func Encode(n, t int, data []byte) (*linalg.GF2Vector, error) {
	if t < 0 || t > n {
		return nil, fmt.Errorf("%w: weight %d out of range", ErrEncodingFailure, t)
	}
	d := new(big.Int).SetBytes(data)
	if d.Cmp(binomial(n, t)) >= 0 {
		return nil, fmt.Errorf("%w: %d-byte input exceeds C(%d,%d)", ErrEncodingFailure, len(data), n, t)
	}
	v := linalg.NewGF2Vector(n)
	remaining := t
	for i := n - 1; i >= 0 && remaining > 0; i-- {
		bc := binomial(i, remaining)
		if d.Cmp(bc) >= 0 {
			d.Sub(d, bc)
			v.SetBit(i)
			remaining--
		}
	}
	if remaining != 0 || d.Sign() != 0 {
		return nil, fmt.Errorf("%w: combinadic expansion did not terminate", ErrEncodingFailure)
	}
	return v, nil
}

// Decode inverts Encode: it maps a weight-t vector back to the big-endian
// bytes of its combinadic index.
func Decode(t int, v *linalg.GF2Vector) ([]byte, error) {
	if v.Weight() != t {
		return nil, fmt.Errorf("%w: vector weight %d, want %d", ErrEncodingFailure, v.Weight(), t)
	}
	d := new(big.Int)
	remaining := t
	for i := v.Len() - 1; i >= 0 && remaining > 0; i-- {
		if v.TestBit(i) {
			d.Add(d, binomial(i, remaining))
			remaining--
		}
	}
	return d.Bytes(), nil
}

// binomial returns C(n, k) as a big integer, zero when k > n.
func binomial(n, k int) *big.Int {
	if k < 0 || k > n {
		return new(big.Int)
	}
	if k > n-k {
		k = n - k
	}
	out := big.NewInt(1)
	for i := 1; i <= k; i++ {
		out.Mul(out, big.NewInt(int64(n-k+i)))
		out.Div(out, big.NewInt(int64(i)))
	}
	return out
}
