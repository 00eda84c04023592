package crypto

// ECgFp5 curve arithmetic.
//
// The curve is y^2 = x*(x^2 + a*x + b) over Fp5 with a = 2 and b = 263*X.
// Points are held in the fractional (x, u) representation of the
// Jacobi-quartic model: a projective 4-tuple (X, Z, U, T) with affine
// x = X/Z and u = U/T, where u = x/y. These formulas are complete: the
// neutral element (0:1:0:1) and doubled inputs go through the same code
// path as everything else. Do not swap in Weierstrass formulas; the
// encoding and the completeness argument depend on this model.
//
// The group of interest has prime order n (320 bits); group elements have
// nonsquare affine x, which is what lets Decode pick the right quadratic
// root.

import "errors"

// ErrInvalidPoint is returned when an Fp5 value does not decode to a
// curve point.
var ErrInvalidPoint = errors.New("crypto: invalid point encoding")

// Curve constants: a = 2, b = 263*X, plus the small b multiples the
// doubling chains want.
var (
	curveA   = fp5FromUint64(2)
	curveB   = Fp5{0, 263, 0, 0, 0}
	curveB2  = Fp5{0, 526, 0, 0, 0}
	curveB4  = Fp5{0, 1052, 0, 0, 0}
	curveB16 = Fp5{0, 4208, 0, 0, 0}
	fp5Four  = fp5FromUint64(4)
)

// Point is an ECgFp5 point in (X, Z, U, T) coordinates.
type Point struct {
	x, z, u, t Fp5
}

// AffinePoint is a point in affine (x, u) form, as stored in the
// precomputed multiplication window. The neutral is (0, 0).
type AffinePoint struct {
	x, u Fp5
}

var pointNeutral = Point{
	x: Fp5Zero(),
	z: Fp5One(),
	u: Fp5Zero(),
	t: Fp5One(),
}

var pointGenerator = Point{
	x: Fp5{
		12883135586176881569, 4356519642755055268, 5248930565894896907,
		2165973894480315022, 2448410071095648785,
	},
	z: Fp5One(),
	u: Fp5One(),
	t: fp5FromUint64(4),
}

// Generator returns the fixed group generator G.
func Generator() Point { return pointGenerator }

// NeutralPoint returns the group neutral element.
func NeutralPoint() Point { return pointNeutral }

// IsNeutral reports whether P is the neutral element (U = 0).
func (p Point) IsNeutral() bool { return p.u.IsZero() }

// Equal compares projective representatives by cross-multiplication:
// U1*T2 = U2*T1.
func (p Point) Equal(q Point) bool {
	return p.u.Mul(q.t).Equal(q.u.Mul(p.t))
}

// Neg returns -P, which negates the u coordinate.
func (p Point) Neg() Point {
	return Point{x: p.x, z: p.z, u: p.u.Neg(), t: p.t}
}

// Add returns P + Q. Complete; cost 10M.
func (p Point) Add(q Point) Point {
	t1 := p.x.Mul(q.x)
	t2 := p.z.Mul(q.z)
	t3 := p.u.Mul(q.u)
	t4 := p.t.Mul(q.t)

	// t5 = X1*Z2 + X2*Z1, t6 = U1*T2 + U2*T1 via Karatsuba folds.
	t5 := p.x.Add(p.z).Mul(q.x.Add(q.z)).Sub(t1.Add(t2))
	t6 := p.u.Add(p.t).Mul(q.u.Add(q.t)).Sub(t3.Add(t4))

	t7 := t1.Add(t2.Mul(curveB))
	t8 := t4.Mul(t7)
	t9 := t3.Mul(t5.Mul(curveB2).Add(t7.Double()))
	t10 := t4.Add(t3.Double()).Mul(t5.Add(t7))

	return Point{
		x: t10.Sub(t8).Mul(curveB),
		z: t8.Sub(t9),
		u: t6.Mul(t2.Mul(curveB).Sub(t1)),
		t: t8.Add(t9),
	}
}

// AddAffine returns P + Q for a precomputed affine Q (Z2 = T2 = 1).
// Complete; cost 8M.
func (p Point) AddAffine(q AffinePoint) Point {
	t1 := p.x.Mul(q.x)
	t2 := p.z
	t3 := p.u.Mul(q.u)
	t4 := p.t

	t5 := p.x.Add(q.x.Mul(p.z))
	t6 := p.u.Add(q.u.Mul(p.t))

	t7 := t1.Add(t2.Mul(curveB))
	t8 := t4.Mul(t7)
	t9 := t3.Mul(t5.Mul(curveB2).Add(t7.Double()))
	t10 := t4.Add(t3.Double()).Mul(t5.Add(t7))

	return Point{
		x: t10.Sub(t8).Mul(curveB),
		z: t8.Sub(t9),
		u: t6.Mul(t2.Mul(curveB).Sub(t1)),
		t: t8.Add(t9),
	}
}

// Double returns 2P. Cost 4M+5S.
func (p Point) Double() Point {
	t1 := p.z.Mul(p.t)
	t2 := t1.Mul(p.t)
	x1 := t2.Square()
	z1 := t1.Mul(p.u)
	t3 := p.u.Square()
	w1 := t2.Sub(t3.Mul(p.x.Add(p.z).Double()))
	t4 := z1.Square()

	zn := w1.Square()
	return Point{
		x: t4.Mul(curveB4),
		z: zn,
		u: w1.Add(z1).Square().Sub(t4.Add(zn)),
		t: x1.Double().Sub(t4.Mul(fp5Four).Add(zn)),
	}
}

// MDouble returns 2^n * P with an amortized per-doubling body of 2M+5S.
func (p Point) MDouble(n uint) Point {
	if n == 0 {
		return p
	}
	if n == 1 {
		return p.Double()
	}

	// First doubling, leaving (x, w, z) for the inner iterations.
	t1 := p.z.Mul(p.t)
	t2 := t1.Mul(p.t)
	x1 := t2.Square()
	z1 := t1.Mul(p.u)
	t3 := p.u.Square()
	w1 := t2.Sub(t3.Mul(p.x.Add(p.z).Double()))
	t4 := w1.Square()
	t5 := z1.Square()

	x := t5.Square().Mul(curveB16)
	w := x1.Double().Sub(t5.Mul(fp5Four).Add(t4))
	z := w1.Add(z1).Square().Sub(t4.Add(t5))

	for i := uint(2); i < n; i++ {
		t1 = z.Square()
		t2 = t1.Square()
		t3 = w.Square()
		t4 = t3.Square()
		t5 = w.Add(z).Square().Sub(t1.Add(t3))
		z = t5.Mul(x.Add(t1).Double().Sub(t3))
		x = t2.Mul(t4).Mul(curveB16)
		w = t4.Add(t2.Mul(curveB4.Sub(fp5Four))).Neg()
	}

	// Final conversion back to (X, Z, U, T).
	t1 = w.Square()
	t2 = z.Square()
	t3 = w.Add(z).Square().Sub(t1.Add(t2))
	w1 = t1.Sub(x.Add(t2).Double())
	zf := w1.Square()
	return Point{
		x: t3.Square().Mul(curveB),
		z: zf,
		u: t3.Mul(w1),
		t: t1.Double().Mul(t1.Sub(t2.Double())).Sub(zf),
	}
}

// Encode compresses P into a single Fp5 value w = T/U; the neutral encodes
// as zero.
func (p Point) Encode() Fp5 {
	if p.u.IsZero() {
		return Fp5Zero()
	}
	return p.t.Mul(p.u.Inverse())
}

// DecodePoint reconstructs a point from its compressed Fp5 form.
//
// A nonzero w is valid iff x^2 - (w^2 - a)x + b = 0 has roots, i.e. the
// discriminant (w^2 - a)^2 - 4b is a square. Exactly one root is a
// nonsquare (the roots multiply to the nonsquare b) and that root is the
// x of the group element; the decoded point is then (x : 1 : 1 : w).
func DecodePoint(w Fp5) (Point, error) {
	if w.IsZero() {
		return pointNeutral, nil
	}

	e := w.Square().Sub(curveA)
	delta := e.Square().Sub(curveB4)
	r, ok := delta.Sqrt()
	if !ok {
		return pointNeutral, ErrInvalidPoint
	}

	x := e.Add(r).half()
	if x.Legendre() == 1 {
		x = e.Sub(r).half()
	}

	return Point{x: x, z: Fp5One(), u: Fp5One(), t: w}, nil
}

// affine converts a single point to affine (x, u) form.
func (p Point) affine() AffinePoint {
	m := p.z.Mul(p.t).Inverse()
	return AffinePoint{
		x: p.x.Mul(p.t).Mul(m),
		u: p.u.Mul(p.z).Mul(m),
	}
}

// batchToAffine converts points to affine form with Montgomery's trick:
// one field inverse plus eight multiplications per extra point.
func batchToAffine(src []Point) []AffinePoint {
	n := len(src)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []AffinePoint{src[0].affine()}
	}

	res := make([]AffinePoint, n)

	// Forward pass: res[i] holds the partial products that, once
	// multiplied by the running inverse, become 1/(Z_i) and 1/(T_i).
	m := src[0].z.Mul(src[0].t)
	for i := 1; i < n; i++ {
		x := m
		m = m.Mul(src[i].z)
		u := m
		m = m.Mul(src[i].t)
		res[i] = AffinePoint{x: x, u: u}
	}

	m = m.Inverse()

	// Backward pass: peel the inverse apart.
	for i := n - 1; i >= 1; i-- {
		res[i].u = src[i].u.Mul(res[i].u).Mul(m)
		m = m.Mul(src[i].t)
		res[i].x = src[i].x.Mul(res[i].x).Mul(m)
		m = m.Mul(src[i].z)
	}
	res[0].u = src[0].u.Mul(src[0].z).Mul(m)
	m = m.Mul(src[0].t)
	res[0].x = src[0].x.Mul(m)

	return res
}
