package crypto

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	ErrInvalidPublicKey = errors.New("invalid Ed25519 public key")
	ErrInvalidSignature = errors.New("invalid signature")
)

// ParsePublicKey checks if a hex-encoded string is a valid Ed25519 public key.
func ParsePublicKey(pubkeyHex string) (ed25519.PublicKey, error) {
	decoded, err := hex.DecodeString(pubkeyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hex encoding", ErrInvalidPublicKey)
	}

	if len(decoded) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidPublicKey, ed25519.PublicKeySize, len(decoded))
	}

	return ed25519.PublicKey(decoded), nil
}

// VerifyInteraction verifies the detached signature the chat platform sends
// with each webhook call. The signed message is the timestamp header
// concatenated with the raw request body.
func VerifyInteraction(pubkey ed25519.PublicKey, timestamp string, body []byte, signatureHex string) error {
	signature, err := hex.DecodeString(signatureHex)
	if err != nil {
		return fmt.Errorf("%w: invalid hex encoding", ErrInvalidSignature)
	}

	if len(signature) != ed25519.SignatureSize {
		return fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidSignature, ed25519.SignatureSize, len(signature))
	}

	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)

	if !ed25519.Verify(pubkey, msg, signature) {
		return ErrInvalidSignature
	}

	return nil
}
