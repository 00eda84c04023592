package crypto

// Square roots in the Goldilocks field.
//
// p - 1 = 2^32 * (2^32 - 1), so the field has 2-adicity 32 and square roots
// need Tonelli-Shanks. 7 generates the multiplicative group; its
// (2^32 - 1)-th power generates the order-2^32 subgroup.

// gfTwoAdicGenerator is 7^(2^32-1), a primitive 2^32-th root of unity.
var gfTwoAdicGenerator = Goldilocks(7).Exp(1<<32 - 1)

// Legendre returns 1 if a is a nonzero square, -1 if a nonsquare,
// and 0 for a = 0.
func (a Goldilocks) Legendre() int {
	if a == 0 {
		return 0
	}
	// a^((p-1)/2) is 1 or p-1.
	if a.Exp((GoldilocksModulus-1)/2) == 1 {
		return 1
	}
	return -1
}

// Sqrt returns a square root of a and true, or (0, false) if a is not a
// square. For nonzero squares the returned root is one of the two; the
// caller disambiguates if it cares.
func (a Goldilocks) Sqrt() (Goldilocks, bool) {
	if a == 0 {
		return 0, true
	}
	if a.Legendre() != 1 {
		return 0, false
	}

	// Tonelli-Shanks with m = (p-1)/2^32 = 2^32 - 1.
	const m = uint64(1)<<32 - 1
	x := a.Exp((m + 1) / 2)
	t := a.Exp(m)
	g := gfTwoAdicGenerator
	r := 32
	for t != 1 {
		// Least i with t^(2^i) = 1.
		i := 0
		for t2 := t; t2 != 1; t2 = t2.Square() {
			i++
		}
		b := g
		for j := 0; j < r-i-1; j++ {
			b = b.Square()
		}
		x = x.Mul(b)
		g = b.Square()
		t = t.Mul(g)
		r = i
	}
	return x, true
}
