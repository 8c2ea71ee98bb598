package middleware

import (
	"bytes"
	"crypto/ed25519"
	"io"
	"net/http"

	"github.com/tpc3/MisskeyIntegrate/internal/crypto"
	"github.com/tpc3/MisskeyIntegrate/internal/metrics"
)

// Signature headers the chat platform sends with every webhook call.
const (
	HeaderSignature = "X-Signature-Ed25519"
	HeaderTimestamp = "X-Signature-Timestamp"
)

// VerifySignature returns middleware that authenticates webhook calls with
// the platform's detached Ed25519 signature. A missing header fails closed;
// nothing past this middleware ever sees an unverified body.
func VerifySignature(pubkey ed25519.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			signature := r.Header.Get(HeaderSignature)
			timestamp := r.Header.Get(HeaderTimestamp)

			if signature == "" || timestamp == "" {
				metrics.SignatureFailures.Inc()
				http.Error(w, "Invalid signature", http.StatusUnauthorized)
				return
			}

			// The signature covers the exact body bytes, so buffer them
			// once and hand the handler a fresh reader.
			body, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, "failed to read request body", http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(bytes.NewBuffer(body))

			if err := crypto.VerifyInteraction(pubkey, timestamp, body, signature); err != nil {
				metrics.SignatureFailures.Inc()
				http.Error(w, "Invalid signature", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
