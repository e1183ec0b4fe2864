package docs

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestHandleSpec(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/docs/openapi.yaml", nil)
	rec := httptest.NewRecorder()

	HandleSpec(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/yaml" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/yaml")
	}
	if !strings.HasPrefix(rec.Body.String(), "openapi:") {
		t.Error("body should start with 'openapi:'")
	}
}

func TestHandleDocs(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/docs", nil)
	rec := httptest.NewRecorder()

	HandleDocs(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	ct := rec.Header().Get("Content-Type")
	if !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "api-reference") {
		t.Error("body should contain 'api-reference'")
	}
	if !strings.Contains(body, "scalar") {
		t.Error("body should contain 'scalar'")
	}
	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "cdn.jsdelivr.net") {
		t.Errorf("CSP should allow cdn.jsdelivr.net, got %q", csp)
	}
}

func TestDocumentContainsAllEndpoints(t *testing.T) {
	doc := string(specYAML)

	endpoints := []string{
		"/api/health",
		"/api/signup",
	}

	for _, ep := range endpoints {
		if !strings.Contains(doc, ep) {
			t.Errorf("openapi.yaml missing endpoint: %s", ep)
		}
	}
}

func TestDocumentListsSignupStatuses(t *testing.T) {
	doc := string(specYAML)
	for _, code := range []string{`"200"`, `"400"`, `"413"`, `"422"`, `"429"`, `"502"`} {
		if !strings.Contains(doc, code+":") {
			t.Errorf("openapi.yaml missing response %s", code)
		}
	}
}

func TestHandleDocsTitle(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleDocs(rec, httptest.NewRequest(http.MethodGet, "/api/docs", nil))

	if !strings.Contains(rec.Body.String(), "<title>ChromaMind Booth API Reference</title>") {
		t.Error("unexpected docs title")
	}
}

func TestHandleSpecNotModified(t *testing.T) {
	first := httptest.NewRecorder()
	HandleSpec(first, httptest.NewRequest(http.MethodGet, specPath, nil))
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatal("expected ETag header")
	}
	if cc := first.Header().Get("Cache-Control"); !strings.Contains(cc, "max-age=") {
		t.Errorf("Cache-Control = %q, want max-age", cc)
	}

	req := httptest.NewRequest(http.MethodGet, specPath, nil)
	req.Header.Set("If-None-Match", etag)
	rec := httptest.NewRecorder()
	HandleSpec(rec, req)

	if rec.Code != http.StatusNotModified {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotModified)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %d bytes", rec.Body.Len())
	}
}

func TestMount(t *testing.T) {
	r := chi.NewRouter()
	Mount(r)

	for _, path := range []string{docsPath, specPath} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want %d", path, rec.Code, http.StatusOK)
		}
	}
}
