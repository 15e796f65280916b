package webhook

import (
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v66/github"
)

// ReadVerifiedPayload reads the request body and checks it against the
// X-Hub-Signature-256 header (falling back to X-Hub-Signature) using the webhook secret.
func ReadVerifiedPayload(r *http.Request, secret string) ([]byte, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: webhook secret is not configured", ErrInvalidSignature)
	}
	payload, err := gh.ValidatePayload(r, []byte(secret))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return payload, nil
}
