package signer

import "errors"

// The error taxonomy is small and flat: constructors and decoders return
// one of these; primitive arithmetic never fails. A well-formed signature
// that simply does not verify is reported as a false boolean, not an
// error.
var (
	// ErrInvalidKeyLength means supplied key bytes are not exactly 40.
	ErrInvalidKeyLength = errors.New("signer: invalid key length")

	// ErrInvalidKeyEncoding means a hex parse failure, a zero private
	// scalar, or limbs that cannot serve where canonicity is required.
	ErrInvalidKeyEncoding = errors.New("signer: invalid key encoding")

	// ErrInvalidMessageLength means a message payload is not 40 bytes.
	ErrInvalidMessageLength = errors.New("signer: invalid message length")

	// ErrInvalidPointEncoding means an Fp5 value does not decode to a
	// curve point.
	ErrInvalidPointEncoding = errors.New("signer: invalid point encoding")

	// ErrInvalidSignatureEncoding means signature bytes are not 80, or a
	// scalar limb is at or above the group order.
	ErrInvalidSignatureEncoding = errors.New("signer: invalid signature encoding")

	// ErrRngFailure means the OS CSPRNG refused to supply entropy.
	ErrRngFailure = errors.New("signer: rng failure")
)
