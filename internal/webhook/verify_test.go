package webhook

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestReadVerifiedPayload(t *testing.T) {
	secret := "s3cret"
	body := []byte(`{"action":"created"}`)

	req := httptest.NewRequest("POST", "/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Hub-Signature-256", sign(secret, body))

	payload, err := ReadVerifiedPayload(req, secret)
	require.NoError(t, err)
	assert.Equal(t, body, payload)
}

func TestReadVerifiedPayload_Rejects(t *testing.T) {
	body := []byte(`{"action":"created"}`)

	tests := []struct {
		name      string
		secret    string
		signature string
	}{
		{name: "bad signature", secret: "s3cret", signature: sign("other", body)},
		{name: "missing signature", secret: "s3cret", signature: ""},
		{name: "no secret configured", secret: "", signature: sign("", body)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/webhook", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			if tt.signature != "" {
				req.Header.Set("X-Hub-Signature-256", tt.signature)
			}

			_, err := ReadVerifiedPayload(req, tt.secret)
			assert.ErrorIs(t, err, ErrInvalidSignature)
		})
	}
}
