package signup

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/chromamind/booth/internal/httputil"
	"github.com/chromamind/booth/internal/metrics"
)

const maxBodyBytes = 16 << 10

type Handler struct {
	submitter Submitter
	provider  string
	metrics   *metrics.Registry
}

// NewHandler serves signups through s. provider labels the attempt metrics.
func NewHandler(s Submitter, provider string, m *metrics.Registry) *Handler {
	return &Handler{submitter: s, provider: provider, metrics: m}
}

type createRequest struct {
	Name        string `json:"name"`
	FName       string `json:"FNAME"`
	Email       string `json:"email"`
	AcceptTerms bool   `json:"acceptTerms"`
}

type createResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	State    string `json:"state"`
	Position string `json:"position,omitempty"`
}

// Create handles POST /api/signup with a JSON or form-encoded body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		if errors.Is(err, httputil.ErrBodyTooLarge) {
			httputil.WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form, out, err := h.Run(r.Context(), fields)
	view := form.View()
	resp := createResponse{
		Success:  out.Success,
		Message:  Message(out, err),
		State:    view.State.String(),
		Position: view.Position,
	}
	httputil.WriteJSON(w, Status(view, err), resp)
}

// Message is the text shown to the visitor for one attempt.
func Message(out Outcome, err error) string {
	switch {
	case errors.Is(err, ErrRequired):
		return MsgRequired
	case errors.Is(err, ErrTermsNotAccepted):
		return MsgTermsRequired
	case err != nil:
		return err.Error()
	}
	return out.Message
}

// Status maps an attempt to its HTTP status code.
func Status(v View, err error) int {
	switch {
	case errors.Is(err, ErrRequired), errors.Is(err, ErrTermsNotAccepted):
		return http.StatusBadRequest
	case err != nil:
		return http.StatusConflict
	}
	switch v.Failure {
	case FailureNone:
		return http.StatusOK
	case FailureTransport:
		return http.StatusBadGateway
	default:
		return http.StatusUnprocessableEntity
	}
}

// Run submits fields through a fresh Form and records the attempt.
func (h *Handler) Run(ctx context.Context, fields Fields) (*Form, Outcome, error) {
	form := NewForm(h.timed())
	if err := form.SetFields(fields); err != nil {
		return form, Outcome{}, err
	}
	out, err := form.Submit(ctx)
	h.metrics.ObserveSignup(h.provider, attemptLabel(form.View(), err))
	return form, out, err
}

func (h *Handler) timed() Submitter {
	return SubmitterFunc(func(ctx context.Context, f Fields) (Outcome, error) {
		start := time.Now()
		defer func() { h.metrics.ObserveProvider(h.provider, time.Since(start)) }()
		return h.submitter.Subscribe(ctx, f)
	})
}

func attemptLabel(v View, err error) string {
	switch {
	case errors.Is(err, ErrRequired):
		return "missing_fields"
	case errors.Is(err, ErrTermsNotAccepted):
		return "terms_not_accepted"
	case err != nil:
		return "conflict"
	case v.Confirmed():
		return "confirmed"
	default:
		return v.Failure.String()
	}
}

func decodeFields(r *http.Request) (Fields, error) {
	if httputil.IsJSON(r) {
		var req createRequest
		if err := httputil.DecodeJSON(r, maxBodyBytes, &req); err != nil {
			return Fields{}, err
		}
		name := req.Name
		if name == "" {
			name = req.FName
		}
		return Fields{Name: name, Email: req.Email, AcceptTerms: req.AcceptTerms}, nil
	}
	return ParseForm(r)
}

// ParseForm reads the HTML form fields FNAME, email and acceptTerms.
func ParseForm(r *http.Request) (Fields, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return Fields{}, httputil.ErrBodyTooLarge
		}
		return Fields{}, err
	}
	name := r.PostForm.Get("FNAME")
	if name == "" {
		name = r.PostForm.Get("name")
	}
	return Fields{
		Name:        name,
		Email:       r.PostForm.Get("email"),
		AcceptTerms: checked(r.PostForm.Get("acceptTerms")),
	}, nil
}

func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
