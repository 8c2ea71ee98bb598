package main

import (
	"crypto/ed25519"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Signs a request body the way the chat platform does, so the webhook can be
// exercised with curl during development.
func main() {
	privKeyHex := flag.String("key", "", "Hex-encoded Ed25519 private key")
	bodyFile := flag.String("body", "", "File containing request body (or use stdin)")
	flag.Parse()

	if *privKeyHex == "" {
		fmt.Fprintln(os.Stderr, "Usage: sign -key <private-key-hex> [-body <file>]")
		fmt.Fprintln(os.Stderr, "  Reads body from stdin if -body not specified")
		os.Exit(1)
	}

	// Decode private key
	privKeyBytes, err := hex.DecodeString(*privKeyHex)
	if err != nil || len(privKeyBytes) != ed25519.PrivateKeySize {
		fmt.Fprintf(os.Stderr, "Invalid private key: %v\n", err)
		os.Exit(1)
	}
	privKey := ed25519.PrivateKey(privKeyBytes)

	// Read body
	var body []byte
	if *bodyFile != "" {
		body, err = os.ReadFile(*bodyFile)
	} else {
		body, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read body: %v\n", err)
		os.Exit(1)
	}

	// Sign timestamp || body, the message the server verifies
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := ed25519.Sign(privKey, append([]byte(timestamp), body...))

	// Output headers
	fmt.Printf("X-Signature-Ed25519: %s\n", hex.EncodeToString(signature))
	fmt.Printf("X-Signature-Timestamp: %s\n", timestamp)
}
