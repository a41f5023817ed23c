package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"mpkc/mpkc"
)

const keyDir = "mpkc_keys"

func usage() {
	fmt.Println(`usage: mpkc <gen|encrypt|decrypt|sign|verify> [options]

Subcommands:
  gen      Generate a key pair and write ./mpkc_keys/{public,private}.cbor
           Flags:
             -preset <name>   parameter set (default: fujisaki-sha2)
                              one of: fujisaki-sha2, fujisaki-sha3,
                              fujisaki-blake2b, fujisaki-sha2-512,
                              pointcheval-sha2, pointcheval-sha3

  encrypt  Encrypt a message with ./mpkc_keys/public.cbor
           Flags:
             -m   <string>    message to encrypt (required)
             -out <path>      ciphertext file (default: mpkc_keys/ciphertext.bin)

  decrypt  Decrypt a ciphertext with ./mpkc_keys/private.cbor
           Flags:
             -in <path>       ciphertext file (default: mpkc_keys/ciphertext.bin)

  sign     One-time signature: encrypt the message digest with the public key
           Flags:
             -m   <string>    message to sign (required)
             -out <path>      signature file (default: mpkc_keys/signature.bin)

  verify   Verify a signature with the private key
           Flags:
             -m  <string>     message that was signed (required)
             -in <path>       signature file (default: mpkc_keys/signature.bin)`)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "gen":
		runGen(os.Args[2:])
	case "encrypt":
		runEncrypt(os.Args[2:])
	case "decrypt":
		runDecrypt(os.Args[2:])
	case "sign":
		runSign(os.Args[2:])
	case "verify":
		runVerify(os.Args[2:])
	default:
		usage()
	}
}

func presetByName(name string) (*mpkc.Parameters, error) {
	switch name {
	case "fujisaki-sha2":
		return mpkc.FujisakiSHA2(), nil
	case "fujisaki-sha3":
		return mpkc.FujisakiSHA3(), nil
	case "fujisaki-blake2b":
		return mpkc.FujisakiBlake2b(), nil
	case "fujisaki-sha2-512":
		return mpkc.FujisakiSHA2Large(), nil
	case "pointcheval-sha2":
		return mpkc.PointchevalSHA2(), nil
	case "pointcheval-sha3":
		return mpkc.PointchevalSHA3(), nil
	default:
		return nil, fmt.Errorf("unknown preset %q", name)
	}
}

func runGen(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	preset := fs.String("preset", "fujisaki-sha2", "parameter set name")
	fs.Parse(args)

	params, err := presetByName(*preset)
	if err != nil {
		log.Fatalf("gen: %v", err)
	}
	pub, priv, err := mpkc.GenerateKeyPair(params, nil)
	if err != nil {
		log.Fatalf("gen: %v", err)
	}
	if err := os.MkdirAll(keyDir, 0o755); err != nil {
		log.Fatalf("gen: %v", err)
	}
	if err := writeKey(filepath.Join(keyDir, "public.cbor"), pub); err != nil {
		log.Fatalf("gen: %v", err)
	}
	if err := writeKey(filepath.Join(keyDir, "private.cbor"), priv); err != nil {
		log.Fatalf("gen: %v", err)
	}
	fmt.Printf("generated %s key pair (n=%d, k=%d, t=%d), keys written to ./%s\n",
		*preset, params.N(), params.K(), params.T(), keyDir)
}

func runEncrypt(args []string) {
	fs := flag.NewFlagSet("encrypt", flag.ExitOnError)
	msg := fs.String("m", "", "message string (required)")
	out := fs.String("out", filepath.Join(keyDir, "ciphertext.bin"), "ciphertext output path")
	fs.Parse(args)
	if *msg == "" {
		log.Fatal("encrypt: -m is required")
	}

	pub := new(mpkc.PublicKey)
	if err := readKey(filepath.Join(keyDir, "public.cbor"), pub); err != nil {
		log.Fatalf("encrypt: %v", err)
	}
	cipher, err := mpkc.NewCipher(pub.Parameters())
	if err != nil {
		log.Fatalf("encrypt: %v", err)
	}
	if err := cipher.Initialize(pub); err != nil {
		log.Fatalf("encrypt: %v", err)
	}
	ct, err := cipher.Encrypt([]byte(*msg))
	if err != nil {
		log.Fatalf("encrypt: %v", err)
	}
	if err := os.WriteFile(*out, ct, 0o644); err != nil {
		log.Fatalf("encrypt: %v", err)
	}
	fmt.Printf("ciphertext (%d bytes) written to %s\n", len(ct), *out)
}

func runDecrypt(args []string) {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	in := fs.String("in", filepath.Join(keyDir, "ciphertext.bin"), "ciphertext input path")
	fs.Parse(args)

	priv := new(mpkc.PrivateKey)
	if err := readKey(filepath.Join(keyDir, "private.cbor"), priv); err != nil {
		log.Fatalf("decrypt: %v", err)
	}
	ct, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("decrypt: %v", err)
	}
	cipher, err := mpkc.NewCipher(priv.Parameters())
	if err != nil {
		log.Fatalf("decrypt: %v", err)
	}
	if err := cipher.Initialize(priv); err != nil {
		log.Fatalf("decrypt: %v", err)
	}
	pt, err := cipher.Decrypt(ct)
	if err != nil {
		log.Fatalf("decrypt: %v", err)
	}
	fmt.Printf("plaintext: %s\n", pt)
}

func runSign(args []string) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	msg := fs.String("m", "", "message string (required)")
	out := fs.String("out", filepath.Join(keyDir, "signature.bin"), "signature output path")
	fs.Parse(args)
	if *msg == "" {
		log.Fatal("sign: -m is required")
	}

	pub := new(mpkc.PublicKey)
	if err := readKey(filepath.Join(keyDir, "public.cbor"), pub); err != nil {
		log.Fatalf("sign: %v", err)
	}
	signer := new(mpkc.OneTimeSignature)
	if err := signer.Initialize(pub); err != nil {
		log.Fatalf("sign: %v", err)
	}
	sig, err := signer.Sign([]byte(*msg))
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	if err := os.WriteFile(*out, sig, 0o644); err != nil {
		log.Fatalf("sign: %v", err)
	}
	fmt.Printf("signature %s... (%d bytes) written to %s\n", hex.EncodeToString(sig[:8]), len(sig), *out)
	fmt.Println("warning: this scheme is one-time; do not sign again with this key pair")
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	msg := fs.String("m", "", "message that was signed (required)")
	in := fs.String("in", filepath.Join(keyDir, "signature.bin"), "signature input path")
	fs.Parse(args)
	if *msg == "" {
		log.Fatal("verify: -m is required")
	}

	priv := new(mpkc.PrivateKey)
	if err := readKey(filepath.Join(keyDir, "private.cbor"), priv); err != nil {
		log.Fatalf("verify: %v", err)
	}
	sig, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("verify: %v", err)
	}
	verifier := new(mpkc.OneTimeSignature)
	if err := verifier.Initialize(priv); err != nil {
		log.Fatalf("verify: %v", err)
	}
	ok, err := verifier.Verify([]byte(*msg), sig)
	if err != nil {
		log.Fatalf("verify: %v", err)
	}
	if !ok {
		log.Fatal("verify failed: signature does not match message")
	}
	fmt.Println("signature verified")
}

type binaryMarshaler interface {
	MarshalBinary() ([]byte, error)
}

type binaryUnmarshaler interface {
	UnmarshalBinary([]byte) error
}

func writeKey(path string, key binaryMarshaler) error {
	blob, err := key.MarshalBinary()
	if err != nil {
		return err
	}
	return os.WriteFile(path, blob, 0o600)
}

func readKey(path string, key binaryUnmarshaler) error {
	blob, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return key.UnmarshalBinary(blob)
}
