package mailinglist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/chromamind/booth/internal/signup"
)

var _ signup.Submitter = (*Listmonk)(nil)

type ListmonkConfig struct {
	BaseURL   string
	ListUUIDs []string
}

// Listmonk subscribes through the unauthenticated public subscription API.
type Listmonk struct {
	config ListmonkConfig
	http   *http.Client
}

func NewListmonk(cfg ListmonkConfig) *Listmonk {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Listmonk{
		config: cfg,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
}

type subscriptionRequest struct {
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	ListUUIDs []string `json:"list_uuids"`
}

type listmonkError struct {
	Message string `json:"message"`
}

func (l *Listmonk) Subscribe(ctx context.Context, f signup.Fields) (signup.Outcome, error) {
	if l.config.BaseURL == "" {
		slog.Warn("listmonk not configured, dropping signup", "email", f.Email)
		return signup.Outcome{}, ErrNotConfigured
	}
	jsonBody, err := json.Marshal(subscriptionRequest{
		Email:     f.Email,
		Name:      f.Name,
		ListUUIDs: l.config.ListUUIDs,
	})
	if err != nil {
		return signup.Outcome{}, fmt.Errorf("marshal subscription request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.config.BaseURL+"/api/public/subscription", bytes.NewReader(jsonBody))
	if err != nil {
		return signup.Outcome{}, fmt.Errorf("create subscription request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.http.Do(req)
	if err != nil {
		return signup.Outcome{}, fmt.Errorf("send subscription request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return signup.Outcome{}, fmt.Errorf("read listmonk response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return signup.Outcome{Success: true, Message: signup.MsgSuccess}, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var e listmonkError
		_ = json.Unmarshal(body, &e)
		return signup.Outcome{Success: false, Message: e.Message}, nil
	default:
		return signup.Outcome{}, fmt.Errorf("listmonk returned status %d", resp.StatusCode)
	}
}
