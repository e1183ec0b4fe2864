package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/chromamind/booth/internal/httputil"
)

type SecurityConfig struct {
	BaseURL string
	// AllowedFrameAncestors is appended to frame-ancestors 'self'.
	AllowedFrameAncestors string
}

func securityHeaders(cfg SecurityConfig) func(http.Handler) http.Handler {
	strictTransport := hasHTTPS(cfg.BaseURL)

	frameAncestors := "'self'"
	if cfg.AllowedFrameAncestors != "" {
		frameAncestors += " " + cfg.AllowedFrameAncestors
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nonce, err := httputil.NewNonce()
			if err != nil {
				slog.Error("security headers", "error", err)
			}
			ctx := httputil.WithNonce(r.Context(), nonce)

			w.Header().Set("Referrer-Policy", "no-referrer")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "SAMEORIGIN")
			w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), autoplay=(self)")

			w.Header().Set("Content-Security-Policy", contentSecurityPolicy(nonce, frameAncestors))

			if strictTransport {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// contentSecurityPolicy admits inline styles and scripts only through the
// nonce. An empty nonce blocks them and the page falls back to plain forms.
func contentSecurityPolicy(nonce, frameAncestors string) string {
	inline := ""
	if nonce != "" {
		inline = fmt.Sprintf(" 'nonce-%s'", nonce)
	}
	return fmt.Sprintf(
		"default-src 'self'; img-src 'self' data:; media-src 'self'; script-src 'self'%s; style-src 'self'%s; connect-src 'self'; frame-ancestors %s;",
		inline, inline, frameAncestors,
	)
}

func hasHTTPS(baseURL string) bool {
	return strings.HasPrefix(baseURL, "https://")
}
