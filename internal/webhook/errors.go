package webhook

import "errors"

var (
	// ErrInvalidSignature indicates the payload signature did not match the webhook secret.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrMissingEvent indicates the request carried no X-GitHub-Event header.
	ErrMissingEvent = errors.New("missing X-GitHub-Event header")
)
