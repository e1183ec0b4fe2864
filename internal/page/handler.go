package page

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/chromamind/booth/internal/httputil"
	"github.com/chromamind/booth/internal/player"
	"github.com/chromamind/booth/internal/signup"
	"github.com/chromamind/booth/internal/validate"
)

const playerTitle = "ChromaMind Demo"

const msgTooManyAttempts = "Too many signup attempts. Please wait a moment and try again."

type Config struct {
	Signup  *signup.Handler
	Video   *player.Asset
	LogoURL string
}

type Handler struct {
	signup  *signup.Handler
	video   *player.Asset
	logoURL string
}

func NewHandler(cfg Config) *Handler {
	return &Handler{signup: cfg.Signup, video: cfg.Video, logoURL: cfg.LogoURL}
}

// Index serves GET /. ?terms=open renders the page with the modal open.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	shell := NewShell(r.URL.Query().Get("terms") == "open")
	h.render(w, r, shell, editable(signup.Fields{}, ""), http.StatusOK)
}

// Submit serves POST /signup, the script-free form submission.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	fields, err := signup.ParseForm(r)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, httputil.ErrBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		http.Error(w, http.StatusText(status), status)
		return
	}

	form, out, err := h.signup.Run(r.Context(), fields)
	view := form.View()
	data := editable(view.Fields, signup.Message(out, err))
	if view.Confirmed() {
		data.Confirmed = true
		data.Position = view.Position
	}
	h.render(w, r, NewShell(false), data, signup.Status(view, err))
}

// TooManyRequests re-renders the form with a rate-limit message, for script-free
// posts the signup limiter turns away. Whatever fields parse are kept.
func (h *Handler) TooManyRequests(w http.ResponseWriter, r *http.Request) {
	fields, _ := signup.ParseForm(r)
	h.render(w, r, NewShell(false), editable(fields, msgTooManyAttempts), http.StatusTooManyRequests)
}

// Terms serves GET /partials/terms, the open modal on its own.
func (h *Handler) Terms(w http.ResponseWriter, r *http.Request) {
	shell := NewShell(false)
	shell.OpenTerms()

	var buf bytes.Buffer
	if err := shell.Modal().Render(&buf); err != nil {
		slog.Error("render terms partial", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(buf.Bytes())
}

func editable(f signup.Fields, message string) formData {
	return formData{
		Name:        f.Name,
		Email:       f.Email,
		AcceptTerms: f.AcceptTerms,
		Message:     message,
		NameMax:     validate.MaxNameLength,
		EmailMax:    validate.MaxEmailLength,
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, shell *Shell, form formData, status int) {
	modal, err := shell.Modal().HTML()
	if err != nil {
		slog.Error("render terms modal", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	video := h.video
	if video == nil {
		video = player.NewAsset("", 0)
	}

	var buf bytes.Buffer
	err = landingTemplate.Execute(&buf, pageData{
		Nonce:         httputil.Nonce(r.Context()),
		LogoSrc:       h.logoURL,
		BackgroundSrc: video.URL,
		Player:        player.ViewFor(video, playerTitle),
		Form:          form,
		Terms:         modal,
		Messages:      pageMessages,
	})
	if err != nil {
		slog.Error("render landing page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
