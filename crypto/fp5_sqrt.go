package crypto

// Square roots and quadratic residuosity in Fp5.
//
// Both reduce to the base field through the norm map. With q = p^5,
// (q-1)/2 = ((p-1)/2)*(1 + p + p^2 + p^3 + p^4), and the second factor is
// exactly the norm exponent, so legendre(a) = legendre_p(N(a)).
//
// For the root itself, let b = a^((p + p^2 + p^3 + p^4)/2). Then
// a*b^2 = N(a) in the base field, hence sqrt(a) = sqrt_p(N(a)) * b^-1.
// The exponent factors as p * ((p+1)/2) * (1 + p^2), so b costs one 63-bit
// exponentiation plus two Frobenius applications.

// Legendre returns 1 if a is a nonzero square in Fp5, -1 if a nonsquare,
// and 0 for a = 0.
func (a Fp5) Legendre() int {
	if a.IsZero() {
		return 0
	}
	return a.norm().Legendre()
}

// Sqrt returns a square root of a and true, or (zero, false) when a is not
// a square.
func (a Fp5) Sqrt() (Fp5, bool) {
	if a.IsZero() {
		return Fp5Zero(), true
	}

	// b = a^((p + p^2 + p^3 + p^4)/2) = ((a^((p+1)/2))^p)^(1 + p^2).
	d := a.expUint64((GoldilocksModulus + 1) / 2)
	d = d.Frobenius()
	b := d.Mul(d.RepeatedFrobenius(2))

	// a * b^2 = N(a), a base-field value.
	n := a.Mul(b.Square())
	s, ok := n[0].Sqrt()
	if !ok {
		return Fp5Zero(), false
	}
	return b.Inverse().ScalarMul(s), true
}
