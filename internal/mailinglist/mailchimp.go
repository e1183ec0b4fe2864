// Package mailinglist holds the remote signup providers: the Mailchimp
// post-json endpoint, Listmonk public subscriptions and a circuit breaker
// that wraps either.
package mailinglist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chromamind/booth/internal/signup"
)

const maxResponseBodyBytes = 64 << 10

var _ signup.Submitter = (*Mailchimp)(nil)

// Mailchimp subscribes through a hosted-form post-json URL, the endpoint
// embedded signup forms use. The URL carries the account (u), list (id) and
// form (f_id) identifiers.
type Mailchimp struct {
	endpoint *url.URL
	http     *http.Client
	callback func() string
}

// ErrNotConfigured is returned when a client has no endpoint to call.
var ErrNotConfigured = errors.New("mailing list endpoint not configured")

func NewMailchimp(rawURL string) (*Mailchimp, error) {
	m := &Mailchimp{
		http:     &http.Client{Timeout: 10 * time.Second},
		callback: func() string { return "booth_" + strings.ReplaceAll(uuid.NewString(), "-", "") },
	}
	if rawURL == "" {
		return m, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse mailchimp url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("mailchimp url must be http or https, got %q", rawURL)
	}
	m.endpoint = u
	return m, nil
}

type mailchimpResponse struct {
	Result string `json:"result"`
	Msg    string `json:"msg"`
}

func (m *Mailchimp) Subscribe(ctx context.Context, f signup.Fields) (signup.Outcome, error) {
	if m.endpoint == nil {
		slog.Warn("mailchimp not configured, dropping signup", "email", f.Email)
		return signup.Outcome{}, ErrNotConfigured
	}
	u := *m.endpoint
	q := u.Query()
	q.Set("EMAIL", f.Email)
	q.Set("FNAME", f.Name)
	q.Set("c", m.callback())
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return signup.Outcome{}, fmt.Errorf("create mailchimp request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/javascript")

	resp, err := m.http.Do(req)
	if err != nil {
		return signup.Outcome{}, fmt.Errorf("send mailchimp request: %w", redactQuery(err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return signup.Outcome{}, fmt.Errorf("read mailchimp response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return signup.Outcome{}, fmt.Errorf("mailchimp returned status %d", resp.StatusCode)
	}

	var parsed mailchimpResponse
	if err := json.Unmarshal(unwrapJSONP(body), &parsed); err != nil {
		return signup.Outcome{}, fmt.Errorf("decode mailchimp response: %w", err)
	}
	if parsed.Result == "" {
		return signup.Outcome{}, errors.New("mailchimp response has no result")
	}
	if parsed.Result == "success" {
		return signup.Outcome{Success: true, Message: signup.MsgSuccess}, nil
	}
	return signup.Outcome{Success: false, Message: parsed.Msg}, nil
}

// redactQuery drops the query string from a transport error's URL. The
// query carries the visitor's address and name.
func redactQuery(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	clean := *ue
	if u, perr := url.Parse(ue.URL); perr == nil {
		u.RawQuery = ""
		clean.URL = u.String()
	} else {
		clean.URL = "[redacted]"
	}
	return &clean
}

// unwrapJSONP strips a callback wrapper such as cb({...}); so the payload can
// be decoded as plain JSON. Bare JSON passes through unchanged.
func unwrapJSONP(body []byte) []byte {
	b := bytes.TrimSpace(body)
	if len(b) == 0 || b[0] == '{' {
		return b
	}
	open := bytes.IndexByte(b, '(')
	end := bytes.LastIndexByte(b, ')')
	if open < 0 || end <= open {
		return b
	}
	return bytes.TrimSpace(b[open+1 : end])
}
