// Package docs serves the OpenAPI description of the booth endpoints and a
// browsable reference rendered from it.
package docs

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const (
	docsPath = "/api/docs"
	specPath = docsPath + "/openapi.yaml"
)

//go:embed openapi.yaml
var specYAML []byte

var specETag = func() string {
	sum := sha256.Sum256(specYAML)
	return `"` + hex.EncodeToString(sum[:8]) + `"`
}()

// Mount registers the reference page and the raw document on r.
func Mount(r chi.Router) {
	r.Get(docsPath, HandleDocs)
	r.Get(specPath, HandleSpec)
}

func HandleSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("ETag", specETag)
	w.Header().Set("Cache-Control", "public, max-age=300")
	if r.Header.Get("If-None-Match") == specETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(specYAML)
}

// HandleDocs replaces the page CSP: the reference viewer loads from a CDN
// and injects inline styles.
func HandleDocs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Security-Policy", referenceCSP)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(referencePage))
}

const referenceCSP = "default-src 'self'; " +
	"script-src 'self' https://cdn.jsdelivr.net 'unsafe-inline'; " +
	"style-src 'self' https://cdn.jsdelivr.net 'unsafe-inline'; " +
	"font-src 'self' https://cdn.jsdelivr.net data:; " +
	"img-src 'self' data:; connect-src 'self'; frame-ancestors 'self';"

const referencePage = `<!DOCTYPE html>
<html lang="en"><head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>ChromaMind Booth API Reference</title>
</head><body>
  <script id="api-reference" data-url="` + specPath + `"></script>
  <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body></html>`
