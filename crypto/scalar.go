package crypto

// Scalar field Z/nZ, where n is the 320-bit prime order of the ECgFp5
// group. Scalars are held as five little-endian 64-bit limbs, always
// reduced mod n. Arithmetic routes through math/big: per signature there
// are only a handful of scalar products, so the wide-integer path costs
// nothing measurable next to the curve work.

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// scalarOrderLimbs is n in little-endian 64-bit limbs.
var scalarOrderLimbs = [5]uint64{
	0xE80FD996948BFFE1,
	0xE8885C39D724A09C,
	0x7FFFFFE6CFB80639,
	0x7FFFFFF100000016,
	0x7FFFFFFD80000007,
}

// scalarOrder is n as a big integer.
var scalarOrder = limbsToBig(scalarOrderLimbs)

// Scalar is an element of Z/nZ, canonical little-endian limbs.
type Scalar [5]uint64

// ScalarZero returns 0.
func ScalarZero() Scalar { return Scalar{} }

// ScalarOne returns 1.
func ScalarOne() Scalar { return Scalar{1} }

// ScalarTwo returns 2.
func ScalarTwo() Scalar { return Scalar{2} }

// ScalarFromUint64 returns the scalar for v.
func ScalarFromUint64(v uint64) Scalar { return Scalar{v} }

func limbsToBig(limbs [5]uint64) *big.Int {
	out := new(big.Int)
	for i := 4; i >= 0; i-- {
		out.Lsh(out, 64)
		out.Or(out, new(big.Int).SetUint64(limbs[i]))
	}
	return out
}

func bigToLimbs(v *big.Int) Scalar {
	var out Scalar
	mask := new(big.Int).SetUint64(^uint64(0))
	t := new(big.Int).Set(v)
	for i := 0; i < 5; i++ {
		out[i] = new(big.Int).And(t, mask).Uint64()
		t.Rsh(t, 64)
	}
	return out
}

func (s Scalar) big() *big.Int { return limbsToBig([5]uint64(s)) }

func reduceScalar(v *big.Int) Scalar {
	return bigToLimbs(new(big.Int).Mod(v, scalarOrder))
}

// IsZero reports whether s = 0.
func (s Scalar) IsZero() bool { return s == Scalar{} }

// Equal reports whether s = t. Scalars are canonical, so limb equality is
// field equality.
func (s Scalar) Equal(t Scalar) bool { return s == t }

// Add returns s + t mod n.
func (s Scalar) Add(t Scalar) Scalar {
	return reduceScalar(new(big.Int).Add(s.big(), t.big()))
}

// Sub returns s - t mod n.
func (s Scalar) Sub(t Scalar) Scalar {
	return reduceScalar(new(big.Int).Sub(s.big(), t.big()))
}

// Neg returns -s mod n.
func (s Scalar) Neg() Scalar {
	return reduceScalar(new(big.Int).Neg(s.big()))
}

// Mul returns s * t mod n.
func (s Scalar) Mul(t Scalar) Scalar {
	return reduceScalar(new(big.Int).Mul(s.big(), t.big()))
}

// BytesLE returns the canonical 40-byte little-endian encoding.
func (s Scalar) BytesLE() [40]byte {
	var out [40]byte
	for i, limb := range s {
		for j := 0; j < 8; j++ {
			out[8*i+j] = byte(limb >> (8 * j))
		}
	}
	return out
}

// ScalarFromBytesLE decodes a 40-byte little-endian value, reducing mod n.
func ScalarFromBytesLE(b []byte) (Scalar, error) {
	if len(b) != 40 {
		return Scalar{}, fmt.Errorf("scalar: want 40 bytes, got %d", len(b))
	}
	var limbs [5]uint64
	for i := 0; i < 5; i++ {
		for j := 0; j < 8; j++ {
			limbs[i] |= uint64(b[8*i+j]) << (8 * j)
		}
	}
	return reduceScalar(limbsToBig(limbs)), nil
}

// scalarInRange reports whether the raw limbs already lie below n, without
// reducing. Verification uses this to reject malleable encodings.
func scalarInRange(b []byte) bool {
	if len(b) != 40 {
		return false
	}
	var limbs [5]uint64
	for i := 0; i < 5; i++ {
		for j := 0; j < 8; j++ {
			limbs[i] |= uint64(b[8*i+j]) << (8 * j)
		}
	}
	return limbsToBig(limbs).Cmp(scalarOrder) < 0
}

// ScalarFromFp5 maps an Fp5 challenge into the scalar field: the five
// canonical Goldilocks limbs are read as a 320-bit little-endian integer
// and reduced mod n.
func ScalarFromFp5(v Fp5) Scalar {
	var limbs [5]uint64
	for i, c := range v {
		limbs[i] = c.Uint64()
	}
	return reduceScalar(limbsToBig(limbs))
}

// SampleScalar draws a uniform scalar from the OS CSPRNG by rejection.
// The top limb of n sits just below 2^63, so masking the top bit leaves
// an acceptance rate near 1.
func SampleScalar() (Scalar, error) {
	var buf [40]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return Scalar{}, fmt.Errorf("scalar: rng: %w", err)
		}
		buf[39] &= 0x7f
		if !scalarInRange(buf[:]) {
			continue
		}
		s, err := ScalarFromBytesLE(buf[:])
		if err != nil {
			return Scalar{}, err
		}
		return s, nil
	}
}

// scalarFromWideBytes reduces an oversized little-endian value mod n.
// Used by the hedged nonce sampler, where the width kills the mod bias.
func scalarFromWideBytes(b []byte) Scalar {
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	return reduceScalar(new(big.Int).SetBytes(be))
}

// recodeSigned5 recodes the scalar into 64 signed base-32 digits in
// [-16, 16], most significant last. Digit d_i satisfies
// sum(d_i * 32^i) = s, which the windowed multiplier consumes with five
// doublings per digit.
func (s Scalar) recodeSigned5() [64]int32 {
	var digits [64]int32
	carry := uint64(0)
	for i := 0; i < 64; i++ {
		limb := s[(5*i)/64]
		shift := uint((5 * i) % 64)
		b := limb >> shift
		if shift > 64-5 && (5*i)/64 < 4 {
			b |= s[(5*i)/64+1] << (64 - shift)
		}
		b = (b & 31) + carry
		if b > 16 {
			digits[i] = int32(b) - 32
			carry = 1
		} else {
			digits[i] = int32(b)
			carry = 0
		}
	}
	return digits
}
