package crypto

// Schnorr signatures over ECgFp5 with a Poseidon2 challenge.
//
// A signature is s || e, 80 bytes: s = r + e*x mod n and
// e = H(enc(R) || enc(P) || m) mapped into the scalar field. The challenge
// preimage is exactly 15 Goldilocks limbs with no domain-separation tag;
// both are part of the exchange verifier's contract.

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// SignatureLength is the byte length of an encoded signature.
const SignatureLength = 80

// schnorrChallenge hashes enc(R) || enc(P) || m into the scalar field.
func schnorrChallenge(encR, encPub, msg Fp5) Scalar {
	var pre [15]Goldilocks
	copy(pre[0:], encR[:])
	copy(pre[5:], encPub[:])
	copy(pre[10:], msg[:])
	return ScalarFromFp5(HashToQuinticExtension(pre[:]))
}

// SchnorrSign produces the 80-byte signature of msg under the private
// scalar priv using the supplied nonce. The nonce MUST be secret, nonzero
// and never repeat for distinct messages under the same key; production
// callers obtain one from SampleNonce.
func SchnorrSign(priv Scalar, msg Fp5, nonce Scalar) [SignatureLength]byte {
	r := Generator().Mul(nonce)
	pub := Generator().Mul(priv)

	e := schnorrChallenge(r.Encode(), pub.Encode(), msg)
	s := nonce.Add(e.Mul(priv))

	var sig [SignatureLength]byte
	sb := s.BytesLE()
	eb := e.BytesLE()
	copy(sig[:40], sb[:])
	copy(sig[40:], eb[:])
	return sig
}

// SchnorrVerify checks an 80-byte signature of msg under the compressed
// public key pub. It rejects malformed input: wrong length, s or e at or
// above the group order, a public key that is not a curve point, or a
// recomputed commitment equal to the neutral.
func SchnorrVerify(sig []byte, msg Fp5, pub Fp5) bool {
	if len(sig) != SignatureLength {
		return false
	}
	if !scalarInRange(sig[:40]) || !scalarInRange(sig[40:]) {
		return false
	}
	s, err := ScalarFromBytesLE(sig[:40])
	if err != nil {
		return false
	}
	e, err := ScalarFromBytesLE(sig[40:])
	if err != nil {
		return false
	}

	pubPoint, err := DecodePoint(pub)
	if err != nil || pubPoint.IsNeutral() {
		return false
	}

	// R' = [s]G - [e]P.
	r := Generator().Mul(s).Add(pubPoint.Mul(e.Neg()))
	if r.IsNeutral() {
		return false
	}

	return schnorrChallenge(r.Encode(), pub, msg).Equal(e)
}

// SampleNonce derives a signing nonce from the OS CSPRNG, hedged through
// SHAKE256 over the private key, the message and 64 fresh random bytes.
// The hedge keeps a weak entropy read from silently repeating a nonce for
// two different messages; the output still never repeats across restarts.
func SampleNonce(priv Scalar, msg Fp5) (Scalar, error) {
	var seed [64]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return Scalar{}, fmt.Errorf("schnorr: rng: %w", err)
	}

	h := sha3.NewShake256()
	pb := priv.BytesLE()
	mb := msg.Bytes()
	h.Write(pb[:])
	h.Write(mb[:])
	h.Write(seed[:])

	// 64 squeezed bytes leave the mod-n bias below 2^-190.
	var wide [64]byte
	if _, err := h.Read(wide[:]); err != nil {
		return Scalar{}, fmt.Errorf("schnorr: shake: %w", err)
	}
	nonce := scalarFromWideBytes(wide[:])
	if nonce.IsZero() {
		// Unreachable in practice; resample rather than sign with 0.
		return SampleNonce(priv, msg)
	}
	return nonce, nil
}
