package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/eth2030/lighter-signer/signer"
	"github.com/eth2030/lighter-signer/types"
)

// keyEnvVar is the environment fallback for --key.
const keyEnvVar = "LIGHTER_PRIVATE_KEY"

// cliConfig carries the flags shared by the key-bearing subcommands.
type cliConfig struct {
	keyHex       string
	chainID      int64
	accountIndex int64
	apiKeyIndex  uint8
	deadline     int64
	token        string
	pubKeyHex    string
}

// parseKeyFlags parses the common flag set for a subcommand.
func parseKeyFlags(name string, args []string) (*cliConfig, error) {
	cfg := &cliConfig{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	var apiKeyIndex uint
	var ttl time.Duration
	fs.StringVar(&cfg.keyHex, "key", "", "private key hex (default: $"+keyEnvVar+")")
	fs.Int64Var(&cfg.chainID, "chain", types.ChainIDTestnet, "chain id (304 mainnet, 300 testnet)")
	fs.Int64Var(&cfg.accountIndex, "account", 0, "account index")
	fs.UintVar(&apiKeyIndex, "api-key", 0, "api key slot index")
	fs.Int64Var(&cfg.deadline, "deadline", 0, "token deadline, unix seconds (default: now + ttl)")
	fs.DurationVar(&ttl, "ttl", 10*time.Minute, "token lifetime when --deadline is unset")
	fs.StringVar(&cfg.token, "token", "", "auth token to verify")
	fs.StringVar(&cfg.pubKeyHex, "pubkey", "", "public key hex for verification")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if apiKeyIndex > 255 {
		return nil, fmt.Errorf("api-key index out of range")
	}
	cfg.apiKeyIndex = uint8(apiKeyIndex)
	if cfg.deadline == 0 {
		cfg.deadline = time.Now().Add(ttl).Unix()
	}
	return cfg, nil
}

// keyManager resolves the private key from the flag or the environment.
func (cfg *cliConfig) keyManager() (*signer.KeyManager, error) {
	keyHex := cfg.keyHex
	if keyHex == "" {
		keyHex = os.Getenv(keyEnvVar)
	}
	if keyHex == "" {
		return nil, fmt.Errorf("no private key: pass --key or set $%s", keyEnvVar)
	}
	return signer.FromHex(keyHex)
}

// decodeHexKey parses a 40-byte hex key with optional 0x prefix.
func decodeHexKey(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(b) != types.KeyLength {
		return nil, fmt.Errorf("want %d key bytes, got %d", types.KeyLength, len(b))
	}
	return b, nil
}
