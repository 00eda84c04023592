package crypto

import (
	"math/rand"
	"testing"
)

func randomFp5(rng *rand.Rand) Fp5 {
	var out Fp5
	for i := range out {
		out[i] = NewGoldilocks(rng.Uint64())
	}
	return out
}

// TestFp5MulProperties checks ring axioms on random elements: commutative,
// associative, distributive, identity.
func TestFp5MulProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	for i := 0; i < 100; i++ {
		a := randomFp5(rng)
		b := randomFp5(rng)
		c := randomFp5(rng)

		if !a.Mul(b).Equal(b.Mul(a)) {
			t.Fatal("mul not commutative")
		}
		if !a.Mul(b).Mul(c).Equal(a.Mul(b.Mul(c))) {
			t.Fatal("mul not associative")
		}
		if !a.Mul(b.Add(c)).Equal(a.Mul(b).Add(a.Mul(c))) {
			t.Fatal("mul not distributive")
		}
		if !a.Mul(Fp5One()).Equal(a) {
			t.Fatal("one is not identity")
		}
		if !a.Square().Equal(a.Mul(a)) {
			t.Fatal("square != mul(a, a)")
		}
	}
}

// TestFp5PolynomialReduction checks X^5 = 3: X^4 * X must land on 3.
func TestFp5PolynomialReduction(t *testing.T) {
	x := Fp5{0, 1, 0, 0, 0}
	x4 := Fp5{0, 0, 0, 0, 1}
	want := fp5FromUint64(3)
	if got := x4.Mul(x); !got.Equal(want) {
		t.Fatalf("X^4 * X = %v, want 3", got)
	}
}

// TestFp5Inverse checks a*a^-1 = 1, the zero convention, and a pinned
// vector.
func TestFp5Inverse(t *testing.T) {
	want := Fp5FromUint64Array([5]uint64{
		16227807958868272813, 4552730750487813724, 11612833514307017418,
		9161515214422980997, 13509202856671625680,
	})
	got := Fp5FromUint64Array([5]uint64{1, 2, 3, 4, 5}).Inverse()
	if !got.Equal(want) {
		t.Fatalf("inverse(1,2,3,4,5) = %v, want %v", got, want)
	}

	if !Fp5Zero().Inverse().IsZero() {
		t.Fatal("inverse(0) must be 0 by convention")
	}

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 100; i++ {
		a := randomFp5(rng)
		if a.IsZero() {
			continue
		}
		if !a.Mul(a.Inverse()).Equal(Fp5One()) {
			t.Fatalf("a * a^-1 != 1 for %v", a)
		}
	}
}

// TestFp5Frobenius checks that the table-driven Frobenius agrees with a
// plain p-th power and composes correctly.
func TestFp5Frobenius(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	a := randomFp5(rng)

	if !a.Frobenius().Equal(a.expUint64(GoldilocksModulus)) {
		t.Fatal("frobenius != a^p")
	}
	if !a.RepeatedFrobenius(2).Equal(a.Frobenius().Frobenius()) {
		t.Fatal("frobenius^2 mismatch")
	}
	if !a.RepeatedFrobenius(3).Equal(a.Frobenius().Frobenius().Frobenius()) {
		t.Fatal("frobenius^3 mismatch")
	}
	// Five applications are the identity on GF(p^5).
	if !a.RepeatedFrobenius(5).Equal(a) {
		t.Fatal("frobenius^5 != id")
	}
}

// TestFp5BytesRoundTrip checks the 40-byte coefficient-major codec and
// that out-of-range limbs reduce on decode.
func TestFp5BytesRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	for i := 0; i < 100; i++ {
		a := randomFp5(rng)
		b := a.Bytes()
		back, ok := Fp5FromBytes(b[:])
		if !ok || !back.Equal(a) {
			t.Fatalf("round trip failed for %v", a)
		}
	}

	// A limb of 2^64-1 is non-canonical and must silently reduce.
	var raw [40]byte
	for i := 0; i < 8; i++ {
		raw[i] = 0xff
	}
	got, ok := Fp5FromBytes(raw[:])
	if !ok {
		t.Fatal("decode failed")
	}
	if got[0].Uint64() != 1<<32-2 {
		t.Fatalf("limb did not reduce: %d", got[0].Uint64())
	}

	if _, ok := Fp5FromBytes(make([]byte, 39)); ok {
		t.Fatal("short input must be rejected")
	}
}

// TestFp5Legendre checks squares map to 1 and the multiplicativity of the
// symbol.
func TestFp5Legendre(t *testing.T) {
	rng := rand.New(rand.NewSource(14))
	for i := 0; i < 30; i++ {
		a := randomFp5(rng)
		if a.IsZero() {
			continue
		}
		if got := a.Square().Legendre(); got != 1 {
			t.Fatalf("legendre(a^2) = %d", got)
		}
	}
	if got := Fp5Zero().Legendre(); got != 0 {
		t.Fatalf("legendre(0) = %d", got)
	}
	// b = 263*X is a nonsquare (the curve design relies on it).
	if got := (Fp5{0, 263, 0, 0, 0}).Legendre(); got != -1 {
		t.Fatalf("legendre(263X) = %d, want -1", got)
	}
}

// TestFp5Sqrt checks root recovery on squares, rejection of nonsquares,
// and a pinned vector.
func TestFp5Sqrt(t *testing.T) {
	base := Fp5FromUint64Array([5]uint64{9, 8, 7, 6, 5})
	r, ok := base.Square().Sqrt()
	if !ok {
		t.Fatal("sqrt of a square failed")
	}
	if !r.Equal(base) && !r.Equal(base.Neg()) {
		t.Fatalf("sqrt gave unrelated root %v", r)
	}
	if !r.Equal(base) {
		t.Fatalf("sqrt(sq(9,8,7,6,5)) = %v, want (9,8,7,6,5)", r)
	}

	if _, ok := (Fp5{0, 263, 0, 0, 0}).Sqrt(); ok {
		t.Fatal("sqrt of a nonsquare must fail")
	}

	rng := rand.New(rand.NewSource(15))
	for i := 0; i < 20; i++ {
		a := randomFp5(rng)
		sq := a.Square()
		r, ok := sq.Sqrt()
		if !ok {
			t.Fatal("sqrt of a square failed")
		}
		if !r.Square().Equal(sq) {
			t.Fatal("returned root does not square back")
		}
	}

	if r, ok := Fp5Zero().Sqrt(); !ok || !r.IsZero() {
		t.Fatal("sqrt(0) must be 0")
	}
}
