package httputil

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

type nonceKey struct{}

// NewNonce returns a fresh 128-bit CSP nonce.
func NewNonce() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate csp nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b[:]), nil
}

func WithNonce(ctx context.Context, nonce string) context.Context {
	return context.WithValue(ctx, nonceKey{}, nonce)
}

// Nonce is the value templates put on inline <style> and <script> tags. It is
// "" outside the security middleware.
func Nonce(ctx context.Context) string {
	nonce, _ := ctx.Value(nonceKey{}).(string)
	return nonce
}
