package signer

import (
	"encoding/hex"
	"fmt"

	"github.com/eth2030/lighter-signer/crypto"
)

// authTokenMessage canonicalizes the token tuple (deadline, account index,
// api key index, chain id) and hashes it to the Fp5 message that gets
// signed. Integer casts follow the transaction field rules.
func authTokenMessage(deadline, accountIndex int64, apiKeyIndex uint8, chainID int64) crypto.Fp5 {
	limbs := []crypto.Goldilocks{
		crypto.GoldilocksFromI64(deadline),
		crypto.GoldilocksFromI64(accountIndex),
		crypto.NewGoldilocks(uint64(apiKeyIndex)),
		crypto.GoldilocksFromI64(chainID),
	}
	return crypto.HashToQuinticExtension(limbs)
}

// CreateAuthToken mints the authentication token
// "{deadline}:{account_index}:{api_key_index}:{sig_hex}" where sig_hex is
// the 80-byte signature of the canonicalized tuple as 160 lowercase hex
// characters. The chain id comes from the key manager.
func (km *KeyManager) CreateAuthToken(deadline int64, accountIndex int64, apiKeyIndex uint8) (string, error) {
	msg := authTokenMessage(deadline, accountIndex, apiKeyIndex, km.chainID)
	sig, err := km.Sign(msg)
	if err != nil {
		return "", err
	}
	return formatAuthToken(deadline, accountIndex, apiKeyIndex, sig), nil
}

// createAuthTokenWithNonce is the deterministic variant backing the token
// test vectors.
func (km *KeyManager) createAuthTokenWithNonce(deadline, accountIndex int64, apiKeyIndex uint8, nonce crypto.Scalar) string {
	msg := authTokenMessage(deadline, accountIndex, apiKeyIndex, km.chainID)
	sig := km.signWithNonce(msg, nonce)
	return formatAuthToken(deadline, accountIndex, apiKeyIndex, sig)
}

func formatAuthToken(deadline, accountIndex int64, apiKeyIndex uint8, sig [crypto.SignatureLength]byte) string {
	return fmt.Sprintf("%d:%d:%d:%s", deadline, accountIndex, apiKeyIndex, hex.EncodeToString(sig[:]))
}

// VerifyAuthToken recomputes the token message from its visible components
// and checks the embedded signature under the given public key. The chain
// id must match the one the token was minted for.
func VerifyAuthToken(token string, chainID int64, publicKey []byte) bool {
	var deadline, accountIndex int64
	var apiKeyIndex uint8
	var sigHex string
	if _, err := fmt.Sscanf(token, "%d:%d:%d:%s", &deadline, &accountIndex, &apiKeyIndex, &sigHex); err != nil {
		return false
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil || len(sig) != crypto.SignatureLength {
		return false
	}
	msg := authTokenMessage(deadline, accountIndex, apiKeyIndex, chainID)
	return Verify(sig, msg, publicKey)
}
