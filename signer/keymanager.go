// Package signer holds API keys for the Lighter exchange and produces the
// 80-byte Schnorr signatures and auth tokens its verifier expects.
package signer

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/eth2030/lighter-signer/crypto"
	"github.com/eth2030/lighter-signer/types"
)

// KeyManager owns one private scalar and its precomputed public point.
// It is immutable after construction and safe for concurrent use.
type KeyManager struct {
	priv    crypto.Scalar
	pub     crypto.Point
	pubEnc  crypto.Fp5
	chainID int64
}

// NewKeyManager builds a key manager from a 40-byte little-endian private
// scalar. The chain id (used only for auth tokens) defaults to testnet;
// see SetChainID.
func NewKeyManager(privateKey []byte) (*KeyManager, error) {
	if len(privateKey) != types.KeyLength {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeyLength, len(privateKey))
	}
	priv, err := crypto.ScalarFromBytesLE(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyEncoding, err)
	}
	if priv.IsZero() {
		return nil, fmt.Errorf("%w: zero scalar", ErrInvalidKeyEncoding)
	}
	pub := crypto.Generator().Mul(priv)
	return &KeyManager{
		priv:    priv,
		pub:     pub,
		pubEnc:  pub.Encode(),
		chainID: types.ChainIDTestnet,
	}, nil
}

// FromHex builds a key manager from an 80-character hex private key, with
// or without a 0x prefix.
func FromHex(s string) (*KeyManager, error) {
	b := common.FromHex(s)
	if len(b) != types.KeyLength {
		if len(s) > 0 && len(b) == 0 {
			return nil, fmt.Errorf("%w: not valid hex", ErrInvalidKeyEncoding)
		}
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeyLength, len(b))
	}
	return NewKeyManager(b)
}

// Generate draws a fresh nonzero private scalar from the OS CSPRNG.
func Generate() (*KeyManager, error) {
	for {
		priv, err := crypto.SampleScalar()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRngFailure, err)
		}
		if priv.IsZero() {
			continue
		}
		b := priv.BytesLE()
		return NewKeyManager(b[:])
	}
}

// SetChainID fixes the chain id baked into auth tokens. Call it once right
// after construction; KeyManager is otherwise immutable.
func (km *KeyManager) SetChainID(chainID int64) { km.chainID = chainID }

// ChainID returns the chain id used for auth tokens.
func (km *KeyManager) ChainID() int64 { return km.chainID }

// PublicKeyBytes returns the 40-byte compressed public key.
func (km *KeyManager) PublicKeyBytes() [types.KeyLength]byte {
	return km.pubEnc.Bytes()
}

// PrivateKeyBytes returns the 40-byte little-endian private scalar.
func (km *KeyManager) PrivateKeyBytes() [types.KeyLength]byte {
	return km.priv.BytesLE()
}

// Sign produces the 80-byte signature of an Fp5 message under a fresh
// hedged nonce.
func (km *KeyManager) Sign(message crypto.Fp5) ([crypto.SignatureLength]byte, error) {
	nonce, err := crypto.SampleNonce(km.priv, message)
	if err != nil {
		return [crypto.SignatureLength]byte{}, fmt.Errorf("%w: %v", ErrRngFailure, err)
	}
	return crypto.SchnorrSign(km.priv, message, nonce), nil
}

// SignMessageBytes signs a 40-byte message digest, the form the transaction
// pipeline hands over.
func (km *KeyManager) SignMessageBytes(message []byte) ([crypto.SignatureLength]byte, error) {
	if len(message) != types.KeyLength {
		return [crypto.SignatureLength]byte{}, fmt.Errorf("%w: got %d bytes", ErrInvalidMessageLength, len(message))
	}
	m, _ := crypto.Fp5FromBytes(message)
	return km.Sign(m)
}

// signWithNonce is the deterministic signing path for test vectors. It
// deliberately has no exported counterpart: nonce reuse across distinct
// messages forfeits the key.
func (km *KeyManager) signWithNonce(message crypto.Fp5, nonce crypto.Scalar) [crypto.SignatureLength]byte {
	return crypto.SchnorrSign(km.priv, message, nonce)
}

// SignTransaction canonicalizes tx under the manager's chain id and signs
// the resulting digest.
func (km *KeyManager) SignTransaction(tx types.Transaction) ([crypto.SignatureLength]byte, error) {
	return km.Sign(types.SigningHash(tx, km.chainID))
}

// Verify checks an 80-byte signature of message under a 40-byte compressed
// public key. A malformed signature or key yields false, never an error;
// so does a well-formed signature that fails the check.
func Verify(sig []byte, message crypto.Fp5, publicKey []byte) bool {
	if len(sig) != crypto.SignatureLength || len(publicKey) != types.KeyLength {
		return false
	}
	pub, ok := crypto.Fp5FromBytes(publicKey)
	if !ok {
		return false
	}
	return crypto.SchnorrVerify(sig, message, pub)
}

// ParsePublicKey validates a 40-byte compressed public key and decodes it
// to a curve point.
func ParsePublicKey(b []byte) (crypto.Point, error) {
	if len(b) != types.KeyLength {
		return crypto.Point{}, fmt.Errorf("%w: got %d bytes", ErrInvalidKeyLength, len(b))
	}
	w, _ := crypto.Fp5FromBytes(b)
	p, err := crypto.DecodePoint(w)
	if err != nil {
		return crypto.Point{}, ErrInvalidPointEncoding
	}
	return p, nil
}

// CheckSignatureEncoding validates the shape of an 80-byte signature
// without verifying it: correct length and both scalars strictly below
// the group order.
func CheckSignatureEncoding(sig []byte) error {
	if len(sig) != crypto.SignatureLength {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidSignatureEncoding, len(sig))
	}
	for _, half := range [][]byte{sig[:40], sig[40:]} {
		s, err := crypto.ScalarFromBytesLE(half)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSignatureEncoding, err)
		}
		round := s.BytesLE()
		if !bytes.Equal(round[:], half) {
			return fmt.Errorf("%w: scalar not below the group order", ErrInvalidSignatureEncoding)
		}
	}
	return nil
}

// Zeroize clears the private scalar. The manager must not be used
// afterwards.
func (km *KeyManager) Zeroize() {
	km.priv = crypto.ScalarZero()
}
