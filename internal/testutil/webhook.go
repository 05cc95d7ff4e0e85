package testutil

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// WebhookKeypair generates an Ed25519 keypair for signing test webhook
// payloads. The public key is returned hex-encoded, the form it takes in
// configuration.
func WebhookKeypair(t *testing.T) (pubHex string, priv ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate keypair: %v", err)
	}
	return hex.EncodeToString(pub), priv
}

// SignedInteraction builds a webhook request whose body is signed the way
// the chat platform signs deliveries: signature over timestamp||rawBody.
func SignedInteraction(t *testing.T, priv ed25519.PrivateKey, timestamp, body string) *http.Request {
	t.Helper()
	sig := ed25519.Sign(priv, []byte(timestamp+body))
	req := httptest.NewRequest("POST", "/webhooks/interactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(sig))
	req.Header.Set("X-Signature-Timestamp", timestamp)
	return req
}
