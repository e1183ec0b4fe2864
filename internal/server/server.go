package server

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/chromamind/booth/internal/docs"
	"github.com/chromamind/booth/internal/metrics"
	"github.com/chromamind/booth/internal/page"
	"github.com/chromamind/booth/internal/ratelimit"
	"github.com/chromamind/booth/internal/signup"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	Pinger  Pinger
	BaseURL string

	// AllowedFrameAncestors lists extra origins allowed to embed the page.
	AllowedFrameAncestors string

	Page          *page.Handler
	Signup        *signup.Handler
	SignupLimiter *ratelimit.Limiter
	MediaFS       fs.FS
	Metrics       *metrics.Registry
	ExposeMetrics bool
	EnableDocs    bool
}

type Server struct {
	router        chi.Router
	pinger        Pinger
	page          *page.Handler
	signup        *signup.Handler
	signupLimiter *ratelimit.Limiter
	mediaFS       fs.FS
	metrics       *metrics.Registry
	exposeMetrics bool
	enableDocs    bool
}

func New(cfg Config) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(slogMiddleware(cfg.Metrics))
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders(SecurityConfig{
		BaseURL:               cfg.BaseURL,
		AllowedFrameAncestors: cfg.AllowedFrameAncestors,
	}))

	s := &Server{
		router:        r,
		pinger:        cfg.Pinger,
		page:          cfg.Page,
		signup:        cfg.Signup,
		signupLimiter: cfg.SignupLimiter,
		mediaFS:       cfg.MediaFS,
		metrics:       cfg.Metrics,
		exposeMetrics: cfg.ExposeMetrics,
		enableDocs:    cfg.EnableDocs,
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)

	if s.page != nil {
		s.router.Get("/", s.page.Index)
		s.router.Get("/partials/terms", s.page.Terms)
		s.router.With(s.limitPage).Post("/signup", s.page.Submit)
	}

	if s.signup != nil {
		s.router.With(s.limit).Post("/api/signup", s.signup.Create)
	}

	if s.mediaFS != nil {
		s.router.Handle("/media/*", http.StripPrefix("/media", newMediaServer(s.mediaFS)))
	}

	if s.exposeMetrics && s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler())
	}

	if s.enableDocs {
		docs.Mount(s.router)
	}
}

// limit applies the signup limiter when one is configured.
func (s *Server) limit(next http.Handler) http.Handler {
	if s.signupLimiter == nil {
		return next
	}
	return s.signupLimiter.Middleware(next)
}

// limitPage is limit for the HTML form: turned-away posts get the page back
// with a message instead of a JSON body.
func (s *Server) limitPage(next http.Handler) http.Handler {
	if s.signupLimiter == nil {
		return next
	}
	return s.signupLimiter.RejectWith(s.page.TooManyRequests)(next)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unhealthy","error":"mailing list unavailable"}`))
			return
		}
	}
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
