package crypto

// Quintic extension field Fp5 = GF(p)[X] / (X^5 - 3).
//
// An element is five Goldilocks coefficients c0 + c1*X + ... + c4*X^4.
// Products fold the overflow terms back through X^5 = 3. Inversion uses
// the Frobenius tower: the product of all five conjugates of a lands in
// the base field, so one 64-bit inverse plus a few extension products
// recovers a^-1 without any wide-integer GCD.

// fp5W is the defining constant: X^5 = fp5W.
const fp5W = Goldilocks(3)

// fp5DthRoot is 3^((p-1)/5), the image of X under Frobenius: X^p = w*X.
// Its successive powers form the per-coefficient Frobenius table.
const fp5DthRoot = Goldilocks(1041288259238279555)

// Fp5 is an element of the quintic extension, coefficient order c0..c4.
type Fp5 [5]Goldilocks

// Fp5Zero returns the additive identity.
func Fp5Zero() Fp5 { return Fp5{} }

// Fp5One returns the multiplicative identity.
func Fp5One() Fp5 { return Fp5{1, 0, 0, 0, 0} }

// Fp5FromUint64Array builds an element from five u64 limbs, reducing each
// mod p.
func Fp5FromUint64Array(arr [5]uint64) Fp5 {
	var out Fp5
	for i, v := range arr {
		out[i] = NewGoldilocks(v)
	}
	return out
}

// fp5FromUint64 embeds a base-field value as the constant coefficient.
func fp5FromUint64(v uint64) Fp5 {
	return Fp5{NewGoldilocks(v), 0, 0, 0, 0}
}

// IsZero reports whether all coefficients are zero.
func (a Fp5) IsZero() bool {
	return a[0] == 0 && a[1] == 0 && a[2] == 0 && a[3] == 0 && a[4] == 0
}

// Equal reports coefficient-wise equality. Elements are canonical, so this
// is exact field equality.
func (a Fp5) Equal(b Fp5) bool { return a == b }

// Add returns a + b.
func (a Fp5) Add(b Fp5) Fp5 {
	var out Fp5
	for i := range out {
		out[i] = a[i].Add(b[i])
	}
	return out
}

// Sub returns a - b.
func (a Fp5) Sub(b Fp5) Fp5 {
	var out Fp5
	for i := range out {
		out[i] = a[i].Sub(b[i])
	}
	return out
}

// Neg returns -a.
func (a Fp5) Neg() Fp5 {
	var out Fp5
	for i := range out {
		out[i] = a[i].Neg()
	}
	return out
}

// Double returns 2a.
func (a Fp5) Double() Fp5 { return a.Add(a) }

// ScalarMul multiplies every coefficient by the base-field element k.
func (a Fp5) ScalarMul(k Goldilocks) Fp5 {
	var out Fp5
	for i := range out {
		out[i] = a[i].Mul(k)
	}
	return out
}

// Mul returns a * b, schoolbook with X^5 = 3 folding.
func (a Fp5) Mul(b Fp5) Fp5 {
	// c0 = a0*b0 + 3*(a1*b4 + a2*b3 + a3*b2 + a4*b1)
	c0 := a[0].Mul(b[0]).Add(
		fp5W.Mul(a[1].Mul(b[4]).Add(a[2].Mul(b[3])).Add(a[3].Mul(b[2])).Add(a[4].Mul(b[1]))))
	// c1 = a0*b1 + a1*b0 + 3*(a2*b4 + a3*b3 + a4*b2)
	c1 := a[0].Mul(b[1]).Add(a[1].Mul(b[0])).Add(
		fp5W.Mul(a[2].Mul(b[4]).Add(a[3].Mul(b[3])).Add(a[4].Mul(b[2]))))
	// c2 = a0*b2 + a1*b1 + a2*b0 + 3*(a3*b4 + a4*b3)
	c2 := a[0].Mul(b[2]).Add(a[1].Mul(b[1])).Add(a[2].Mul(b[0])).Add(
		fp5W.Mul(a[3].Mul(b[4]).Add(a[4].Mul(b[3]))))
	// c3 = a0*b3 + a1*b2 + a2*b1 + a3*b0 + 3*a4*b4
	c3 := a[0].Mul(b[3]).Add(a[1].Mul(b[2])).Add(a[2].Mul(b[1])).Add(a[3].Mul(b[0])).Add(
		fp5W.Mul(a[4].Mul(b[4])))
	// c4 = a0*b4 + a1*b3 + a2*b2 + a3*b1 + a4*b0
	c4 := a[0].Mul(b[4]).Add(a[1].Mul(b[3])).Add(a[2].Mul(b[2])).Add(a[3].Mul(b[1])).Add(a[4].Mul(b[0]))
	return Fp5{c0, c1, c2, c3, c4}
}

// Square returns a^2 using the reduced-product count specialization.
func (a Fp5) Square() Fp5 {
	doubleW := fp5W.Double() // 6

	a0d := a[0].Double()
	a1d := a[1].Double()

	// c0 = a0^2 + 6*(a1*a4 + a2*a3)
	c0 := a[0].Square().Add(doubleW.Mul(a[1].Mul(a[4]).Add(a[2].Mul(a[3]))))
	// c1 = 2*a0*a1 + 6*a2*a4 + 3*a3^2
	c1 := a0d.Mul(a[1]).Add(doubleW.Mul(a[2].Mul(a[4]))).Add(fp5W.Mul(a[3].Square()))
	// c2 = 2*a0*a2 + a1^2 + 6*a3*a4
	c2 := a0d.Mul(a[2]).Add(a[1].Square()).Add(doubleW.Mul(a[4].Mul(a[3])))
	// c3 = 2*a0*a3 + 2*a1*a2 + 3*a4^2
	c3 := a0d.Mul(a[3]).Add(a1d.Mul(a[2])).Add(fp5W.Mul(a[4].Square()))
	// c4 = 2*a0*a4 + 2*a1*a3 + a2^2
	c4 := a0d.Mul(a[4]).Add(a1d.Mul(a[3])).Add(a[2].Square())
	return Fp5{c0, c1, c2, c3, c4}
}

// Frobenius returns a^p: each coefficient c_i picks up the factor w^i
// where w is the dth root table constant.
func (a Fp5) Frobenius() Fp5 { return a.RepeatedFrobenius(1) }

// RepeatedFrobenius returns a^(p^count) by scaling coefficients with the
// precomputed root powers.
func (a Fp5) RepeatedFrobenius(count int) Fp5 {
	count %= 5
	if count == 0 {
		return a
	}
	z0 := fp5DthRoot
	for i := 1; i < count; i++ {
		z0 = z0.Mul(fp5DthRoot)
	}
	var out Fp5
	zi := Goldilocks(1)
	for i := range out {
		out[i] = a[i].Mul(zi)
		zi = zi.Mul(z0)
	}
	return out
}

// frobeniusProduct returns a^(p + p^2 + p^3 + p^4), the product of the four
// nontrivial conjugates. Multiplying by a itself yields the field norm,
// which lies in the base field.
func (a Fp5) frobeniusProduct() Fp5 {
	d := a.Frobenius()
	e := d.Mul(d.Frobenius())
	return e.Mul(e.RepeatedFrobenius(2))
}

// norm returns the base-field norm N(a) = a^(1 + p + p^2 + p^3 + p^4),
// read off as the constant coefficient of a * frobeniusProduct(a).
func (a Fp5) norm() Goldilocks {
	f := a.frobeniusProduct()
	// Constant coefficient of a*f; the other coefficients vanish.
	return a[0].Mul(f[0]).Add(
		fp5W.Mul(a[1].Mul(f[4]).Add(a[2].Mul(f[3])).Add(a[3].Mul(f[2])).Add(a[4].Mul(f[1]))))
}

// Inverse returns a^-1, or zero for a = 0. Callers must not use the
// zero-input convention for security decisions.
func (a Fp5) Inverse() Fp5 {
	if a.IsZero() {
		return Fp5Zero()
	}
	f := a.frobeniusProduct()
	g := a[0].Mul(f[0]).Add(
		fp5W.Mul(a[1].Mul(f[4]).Add(a[2].Mul(f[3])).Add(a[3].Mul(f[2])).Add(a[4].Mul(f[1]))))
	return f.ScalarMul(g.Inverse())
}

// expUint64 returns a^e for a 64-bit exponent.
func (a Fp5) expUint64(e uint64) Fp5 {
	result := Fp5One()
	base := a
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Square()
		e >>= 1
	}
	return result
}

// half returns a/2.
func (a Fp5) half() Fp5 {
	// 1/2 = (p+1)/2 in the base field.
	return a.ScalarMul(Goldilocks((GoldilocksModulus + 1) / 2))
}

// Bytes returns the 40-byte encoding: five canonical limbs, little-endian,
// coefficient order.
func (a Fp5) Bytes() [40]byte {
	var out [40]byte
	for i, c := range a {
		b := c.Bytes()
		copy(out[8*i:], b[:])
	}
	return out
}

// Fp5FromBytes decodes 40 little-endian bytes into an element. Limbs at or
// above p are reduced; callers that need strict canonicity check the
// round-trip at their boundary.
func Fp5FromBytes(b []byte) (Fp5, bool) {
	if len(b) != 40 {
		return Fp5Zero(), false
	}
	var out Fp5
	for i := 0; i < 5; i++ {
		var limb [8]byte
		copy(limb[:], b[8*i:8*i+8])
		out[i] = GoldilocksFromBytes(limb)
	}
	return out, true
}
