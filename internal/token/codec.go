// Package token implements the compact HMAC-signed token format used for
// both session and login-state cookies: base64url(json payload) + "." +
// base64url(HMAC-SHA256 signature). Tokens are never stored server-side;
// expiry and cookie clearing are the only lifecycle.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Verification errors. Callers normally collapse all of these into a single
// generic outcome; the distinction exists for logs and tests.
var (
	ErrMalformed    = errors.New("token: malformed")
	ErrBadSignature = errors.New("token: bad signature")
	ErrExpired      = errors.New("token: expired")
)

// Payload is implemented by token payload types. Stamp records the validity
// window at creation time; Expiry reads it back during verification.
type Payload interface {
	Stamp(issuedAt, expiresAt time.Time)
	Expiry() time.Time
}

// Codec creates and verifies signed tokens for one payload shape. Session
// and state tokens use distinct Codec instances with their own TTLs but
// identical mechanics.
type Codec[T any, PT interface {
	*T
	Payload
}] struct {
	secret []byte
	now    func() time.Time
}

// NewCodec creates a codec signing with the given server secret.
func NewCodec[T any, PT interface {
	*T
	Payload
}](secret []byte) *Codec[T, PT] {
	return &Codec[T, PT]{
		secret: secret,
		now:    time.Now,
	}
}

// SetNow overrides the time source (for testing).
func (c *Codec[T, PT]) SetNow(fn func() time.Time) {
	c.now = fn
}

// Create stamps the payload with a validity window of ttl and returns the
// signed token.
func (c *Codec[T, PT]) Create(payload T, ttl time.Duration) (string, error) {
	now := c.now()
	PT(&payload).Stamp(now, now.Add(ttl))

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal token payload: %w", err)
	}

	encoded := base64.RawURLEncoding.EncodeToString(data)
	return encoded + "." + c.sign(encoded), nil
}

// Verify checks the signature and expiry of a token and returns its payload.
// The signature is checked before the payload is decoded so that nothing
// from a forged token is ever parsed.
func (c *Codec[T, PT]) Verify(tok string) (T, error) {
	var zero T

	parts := strings.Split(tok, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return zero, ErrMalformed
	}
	encoded, sig := parts[0], parts[1]

	expected := c.sign(encoded)
	if len(sig) != len(expected) {
		return zero, ErrBadSignature
	}
	if subtle.ConstantTimeCompare([]byte(sig), []byte(expected)) != 1 {
		return zero, ErrBadSignature
	}

	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return zero, ErrMalformed
	}

	var payload T
	if err := json.Unmarshal(data, &payload); err != nil {
		return zero, ErrMalformed
	}

	if !c.now().Before(PT(&payload).Expiry()) {
		return zero, ErrExpired
	}

	return payload, nil
}

func (c *Codec[T, PT]) sign(data string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
