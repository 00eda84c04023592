// Command lighter-signer is the offline companion tool for the Lighter
// signer library: key generation, public key derivation and auth-token
// minting without touching the network.
//
// Usage:
//
//	lighter-signer <command> [flags]
//
// Commands:
//
//	generate      Generate a fresh private key and print both key halves
//	pubkey        Derive the public key from a private key
//	auth-token    Mint an authentication token
//	verify-token  Check an auth token against a public key
//
// The private key comes from --key or, if unset, the LIGHTER_PRIVATE_KEY
// environment variable.
package main

import (
	"fmt"
	"os"

	"github.com/eth2030/lighter-signer/signer"
)

// Build-time version info, overridable with ldflags.
var version = "v0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 2
	}

	switch args[0] {
	case "generate":
		return cmdGenerate()
	case "pubkey":
		return cmdPubkey(args[1:])
	case "auth-token":
		return cmdAuthToken(args[1:])
	case "verify-token":
		return cmdVerifyToken(args[1:])
	case "version", "--version":
		fmt.Printf("lighter-signer %s\n", version)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		usage()
		return 2
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: lighter-signer <generate|pubkey|auth-token|verify-token> [flags]")
}

func cmdGenerate() int {
	km, err := signer.Generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate: %v\n", err)
		return 1
	}
	priv := km.PrivateKeyBytes()
	pub := km.PublicKeyBytes()
	fmt.Printf("private key: %x\n", priv)
	fmt.Printf("public key:  %x\n", pub)
	return 0
}

func cmdPubkey(args []string) int {
	cfg, err := parseKeyFlags("pubkey", args)
	if err != nil {
		return 2
	}
	km, err := cfg.keyManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pubkey: %v\n", err)
		return 1
	}
	pub := km.PublicKeyBytes()
	fmt.Printf("%x\n", pub)
	return 0
}

func cmdAuthToken(args []string) int {
	cfg, err := parseKeyFlags("auth-token", args)
	if err != nil {
		return 2
	}
	km, err := cfg.keyManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "auth-token: %v\n", err)
		return 1
	}
	km.SetChainID(cfg.chainID)
	token, err := km.CreateAuthToken(cfg.deadline, cfg.accountIndex, cfg.apiKeyIndex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "auth-token: %v\n", err)
		return 1
	}
	fmt.Println(token)
	return 0
}

func cmdVerifyToken(args []string) int {
	cfg, err := parseKeyFlags("verify-token", args)
	if err != nil {
		return 2
	}
	if cfg.token == "" || cfg.pubKeyHex == "" {
		fmt.Fprintln(os.Stderr, "verify-token: --token and --pubkey are required")
		return 2
	}
	pub, err := decodeHexKey(cfg.pubKeyHex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify-token: %v\n", err)
		return 1
	}
	if !signer.VerifyAuthToken(cfg.token, cfg.chainID, pub) {
		fmt.Println("invalid")
		return 1
	}
	fmt.Println("ok")
	return 0
}
