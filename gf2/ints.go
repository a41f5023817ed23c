package gf2

// Integer helpers used by the optimal-normal-basis construction. The moduli
// involved are s = type*degree + 1 for small types, so trial division and
// direct order computation are sufficient.

// IsPrime reports whether n is prime, by trial division.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := uint64(3); d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// Order returns the multiplicative order of a modulo p, or 0 if a and p are
// not coprime.
func Order(a, p uint64) uint64 {
	a %= p
	if a == 0 || GcdInt(a, p) != 1 {
		return 0
	}
	x := a
	for k := uint64(1); ; k++ {
		if x == 1 {
			return k
		}
		x = x * a % p
	}
}

// GcdInt returns the greatest common divisor of a and b.
func GcdInt(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ElementOfOrder returns an element of the requested multiplicative order
// modulo the prime p, or 0 if none exists.
func ElementOfOrder(order, p uint64) uint64 {
	if order == 0 || (p-1)%order != 0 {
		return 0
	}
	for g := uint64(2); g < p; g++ {
		// g^((p-1)/order) has order dividing `order`
		c := powMod(g, (p-1)/order, p)
		if Order(c, p) == order {
			return c
		}
	}
	return 0
}

func powMod(a, e, p uint64) uint64 {
	result := uint64(1)
	base := a % p
	for e > 0 {
		if e&1 == 1 {
			result = result * base % p
		}
		base = base * base % p
		e >>= 1
	}
	return result
}
