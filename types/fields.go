// Package types defines the Lighter transaction variants and their
// deterministic canonicalization into Goldilocks field elements for
// signing. The field schemas, their declared order, the integer casts and
// the byte-array chunking are a copy-contract with the exchange verifier:
// any deviation produces signatures the exchange rejects.
package types

import "github.com/eth2030/lighter-signer/crypto"

// Field is one typed token of a transaction's canonical field sequence.
// Each token renders itself into one or more Goldilocks limbs.
type Field interface {
	appendLimbs(dst []crypto.Goldilocks) []crypto.Goldilocks
}

// FieldSeq is an ordered list of typed fields.
type FieldSeq []Field

type i64Field int64
type u64Field uint64
type u8Field uint8
type boolField bool
type bytesField []byte

// I64 declares a signed 64-bit field. It enters the hash as its
// two's-complement u64 image reduced mod p.
func I64(v int64) Field { return i64Field(v) }

// U64 declares an unsigned 64-bit field, reduced mod p.
func U64(v uint64) Field { return u64Field(v) }

// U8 declares a byte-sized field, zero-extended.
func U8(v uint8) Field { return u8Field(v) }

// Bool declares a boolean field, rendered as 0 or 1.
func Bool(v bool) Field { return boolField(v) }

// Bytes40 declares a 40-byte field (a compressed key), split into five
// 8-byte little-endian limbs.
func Bytes40(v [40]byte) Field { return bytesField(v[:]) }

// Bytes declares an arbitrary byte-array field, split into 8-byte
// little-endian chunks with the final chunk zero-padded.
func Bytes(v []byte) Field { return bytesField(v) }

func (f i64Field) appendLimbs(dst []crypto.Goldilocks) []crypto.Goldilocks {
	return append(dst, crypto.GoldilocksFromI64(int64(f)))
}

func (f u64Field) appendLimbs(dst []crypto.Goldilocks) []crypto.Goldilocks {
	return append(dst, crypto.NewGoldilocks(uint64(f)))
}

func (f u8Field) appendLimbs(dst []crypto.Goldilocks) []crypto.Goldilocks {
	return append(dst, crypto.NewGoldilocks(uint64(f)))
}

func (f boolField) appendLimbs(dst []crypto.Goldilocks) []crypto.Goldilocks {
	if f {
		return append(dst, crypto.NewGoldilocks(1))
	}
	return append(dst, crypto.NewGoldilocks(0))
}

func (f bytesField) appendLimbs(dst []crypto.Goldilocks) []crypto.Goldilocks {
	for off := 0; off < len(f); off += 8 {
		var chunk [8]byte
		copy(chunk[:], f[off:])
		dst = append(dst, crypto.GoldilocksFromBytes(chunk))
	}
	return dst
}

// CanonicalLimbs renders the sequence into Goldilocks limbs in declared
// order.
func (fs FieldSeq) CanonicalLimbs() []crypto.Goldilocks {
	limbs := make([]crypto.Goldilocks, 0, len(fs)+4)
	for _, f := range fs {
		limbs = f.appendLimbs(limbs)
	}
	return limbs
}

// HashTransaction canonicalizes a transaction and hashes it to the Fp5
// signing message: a leading element for the type code, the fields in
// declared order, and a trailing element for the chain id.
func HashTransaction(txType uint8, fields FieldSeq, chainID int64) crypto.Fp5 {
	limbs := make([]crypto.Goldilocks, 0, len(fields)+6)
	limbs = append(limbs, crypto.NewGoldilocks(uint64(txType)))
	for _, f := range fields {
		limbs = f.appendLimbs(limbs)
	}
	limbs = append(limbs, crypto.GoldilocksFromI64(chainID))
	return crypto.HashToQuinticExtension(limbs)
}
