package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"syscall"
	"time"

	"github.com/chromamind/booth/internal/config"
	"github.com/chromamind/booth/internal/mailinglist"
	"github.com/chromamind/booth/internal/metrics"
	"github.com/chromamind/booth/internal/page"
	"github.com/chromamind/booth/internal/player"
	"github.com/chromamind/booth/internal/ratelimit"
	"github.com/chromamind/booth/internal/server"
	"github.com/chromamind/booth/internal/signup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration invalid: %v", err)
	}

	submitter, pinger, err := newSubmitter(cfg)
	if err != nil {
		log.Fatalf("signup provider setup failed: %v", err)
	}
	log.Printf("signup provider: %s", cfg.SignupProvider)

	probeCtx, probeCancel := context.WithTimeout(context.Background(), 10*time.Second)
	video := mediaAsset(probeCtx, cfg)
	probeCancel()

	limiterCtx, limiterCancel := context.WithCancel(context.Background())
	defer limiterCancel()

	reg := metrics.New()
	signupHandler := signup.NewHandler(submitter, cfg.SignupProvider, reg)

	srv := server.New(server.Config{
		Pinger:                pinger,
		BaseURL:               cfg.BaseURL,
		AllowedFrameAncestors: cfg.AllowedFrameAncestors,
		Page: page.NewHandler(page.Config{
			Signup:  signupHandler,
			Video:   video,
			LogoURL: mediaURL(cfg.LogoFile),
		}),
		Signup:        signupHandler,
		SignupLimiter: ratelimit.NewLimiter(limiterCtx, cfg.SignupRate, cfg.SignupBurst),
		MediaFS:       os.DirFS(cfg.MediaDir),
		Metrics:       reg,
		ExposeMetrics: cfg.MetricsEnabled,
		EnableDocs:    cfg.APIDocsEnabled,
	})

	if cfg.MetricsEnabled {
		log.Println("prometheus metrics enabled at /metrics")
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("booth listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-shutdownCh
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}
	log.Println("shutdown complete")
}

// newSubmitter picks the one signup strategy the configuration names. Remote
// providers come wrapped in a breaker, which doubles as the health pinger.
func newSubmitter(cfg config.Config) (signup.Submitter, server.Pinger, error) {
	switch cfg.SignupProvider {
	case config.ProviderMailchimp:
		client, err := mailinglist.NewMailchimp(cfg.MailchimpURL)
		if err != nil {
			return nil, nil, err
		}
		b := mailinglist.NewBreaker(config.ProviderMailchimp, client, cfg.BreakerTimeout)
		return b, b, nil
	case config.ProviderListmonk:
		client := mailinglist.NewListmonk(mailinglist.ListmonkConfig{
			BaseURL:   cfg.ListmonkURL,
			ListUUIDs: cfg.ListmonkListUUIDs,
		})
		b := mailinglist.NewBreaker(config.ProviderListmonk, client, cfg.BreakerTimeout)
		return b, b, nil
	case config.ProviderSimulate:
		return signup.NewSimulator(cfg.SimulateDelay), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown signup provider %q", cfg.SignupProvider)
	}
}

// mediaAsset probes the player video. A failed probe leaves the duration at
// zero until the browser reports metadata.
func mediaAsset(ctx context.Context, cfg config.Config) *player.Asset {
	file := filepath.Join(cfg.MediaDir, filepath.FromSlash(cfg.MediaFile))
	duration, err := player.ProbeDuration(ctx, cfg.FFprobePath, file)
	if err != nil {
		log.Printf("media duration unavailable: %v", err)
	}
	return player.NewAsset(mediaURL(cfg.MediaFile), duration)
}

func mediaURL(name string) string {
	u := url.URL{Path: path.Join("/media", name)}
	return u.EscapedPath()
}
