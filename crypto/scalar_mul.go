package crypto

// Windowed scalar multiplication.
//
// The scalar is recoded into 64 signed base-32 digits in [-16, 16]; a
// 17-entry window {0, P, 2P, ..., 16P} then covers every digit, with
// negative digits served by negating u in the affine lookup. Each digit
// costs five doublings and one mixed addition.

const (
	mulWindowBits = 5
	mulWindowSize = 16 // 2^(w-1); negatives come from u-negation
)

// windowAffine builds {1P .. 16P} in affine form via batch inversion.
func (p Point) windowAffine() []AffinePoint {
	tmp := make([]Point, mulWindowSize)
	tmp[0] = p
	for i := 1; i < mulWindowSize; i++ {
		if i&1 == 1 {
			tmp[i] = tmp[i>>1].Double()
		} else {
			tmp[i] = tmp[i-1].Add(p)
		}
	}
	return batchToAffine(tmp)
}

// lookup selects win[|k|-1] with the sign of k applied to u, scanning the
// whole window so the access pattern does not depend on the digit value.
// k = 0 yields the affine neutral (0, 0).
func lookup(win []AffinePoint, k int32) AffinePoint {
	sign := uint32(k) >> 31
	ka := (uint32(k) ^ -sign) + sign
	km1 := ka - 1 // wraps for k = 0, selecting no entry

	var x, u Fp5
	for i := range win {
		// c is nonzero exactly when i == km1.
		m := km1 - uint32(i)
		c := ((m | -m) >> 31) - 1
		mask := Goldilocks(uint64(c) | uint64(c)<<32)
		for j := range x {
			x[j] |= win[i].x[j] & mask
			u[j] |= win[i].u[j] & mask
		}
	}

	if sign != 0 {
		u = u.Neg()
	}
	return AffinePoint{x: x, u: u}
}

// Mul returns [s]P by windowed double-and-add.
func (p Point) Mul(s Scalar) Point {
	if s.IsZero() {
		return pointNeutral
	}

	win := p.windowAffine()
	digits := s.recodeSigned5()

	// Seed with the most significant digit. The affine neutral (0, 0)
	// lifts to the projective neutral (0:1:0:1).
	top := lookup(win, digits[len(digits)-1])
	result := Point{x: top.x, z: Fp5One(), u: top.u, t: Fp5One()}

	for i := len(digits) - 2; i >= 0; i-- {
		result = result.MDouble(mulWindowBits)
		result = result.AddAffine(lookup(win, digits[i]))
	}
	return result
}
