package signup

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"testing"
)

type recordingSubmitter struct {
	mu      sync.Mutex
	calls   []Fields
	outcome Outcome
	err     error
	entered chan struct{}
	block   chan struct{}
}

func (s *recordingSubmitter) Subscribe(ctx context.Context, f Fields) (Outcome, error) {
	s.mu.Lock()
	s.calls = append(s.calls, f)
	s.mu.Unlock()
	if s.block != nil {
		s.entered <- struct{}{}
		<-s.block
	}
	return s.outcome, s.err
}

func (s *recordingSubmitter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func filledForm(t *testing.T, s Submitter, accept bool) *Form {
	t.Helper()
	f := NewForm(s)
	if err := f.SetName("Ada"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetEmail("ada@example.com"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetAcceptTerms(accept); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestSubmitWithoutTermsNeverCallsProvider(t *testing.T) {
	sub := &recordingSubmitter{outcome: Outcome{Success: true}}
	f := filledForm(t, sub, false)

	_, err := f.Submit(context.Background())

	if !errors.Is(err, ErrTermsNotAccepted) {
		t.Fatalf("expected ErrTermsNotAccepted, got %v", err)
	}
	if sub.callCount() != 0 {
		t.Errorf("expected no provider call, got %d", sub.callCount())
	}
	if v := f.View(); v.State != StateEditing || v.Message != "" {
		t.Errorf("expected untouched editing state, got %+v", v)
	}
}

func TestSubmitRequiresNameAndEmail(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
	}{
		{"no name", Fields{Email: "ada@example.com", AcceptTerms: true}},
		{"no email", Fields{Name: "Ada", AcceptTerms: true}},
		{"blank name", Fields{Name: "   ", Email: "ada@example.com", AcceptTerms: true}},
		{"nothing, terms unchecked", Fields{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &recordingSubmitter{}
			f := NewForm(sub)
			_ = f.SetFields(tt.fields)

			_, err := f.Submit(context.Background())

			if !errors.Is(err, ErrRequired) {
				t.Fatalf("expected ErrRequired, got %v", err)
			}
			if sub.callCount() != 0 {
				t.Errorf("expected no provider call")
			}
			if f.View().State != StateEditing {
				t.Errorf("expected editing state")
			}
		})
	}
}

func TestSubmitRejectsEmailWithoutAt(t *testing.T) {
	sub := &recordingSubmitter{outcome: Outcome{Success: true}}
	f := NewForm(sub)
	_ = f.SetFields(Fields{Name: "Ada", Email: "ada.example.com", AcceptTerms: true})

	out, err := f.Submit(context.Background())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Success || out.Message != MsgInvalidEmail {
		t.Errorf("unexpected outcome %+v", out)
	}
	if sub.callCount() != 0 {
		t.Errorf("expected no provider call, got %d", sub.callCount())
	}
	v := f.View()
	if v.State != StateEditing || v.Message != MsgInvalidEmail || v.Failure != FailureValidation {
		t.Errorf("expected editing-with-error, got %+v", v)
	}
}

func TestSubmitSuccessConfirmsOnce(t *testing.T) {
	sub := &recordingSubmitter{outcome: Outcome{Success: true, Message: "Almost finished..."}}
	f := filledForm(t, sub, true)

	out, err := f.Submit(context.Background())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Success || out.Message != MsgSuccess {
		t.Errorf("unexpected outcome %+v", out)
	}
	v := f.View()
	if !v.Confirmed() || v.Position != PlaceholderPosition {
		t.Errorf("expected confirmed view with placeholder position, got %+v", v)
	}
	if sub.callCount() != 1 {
		t.Errorf("expected exactly one provider call, got %d", sub.callCount())
	}
	if sub.calls[0] != (Fields{Name: "Ada", Email: "ada@example.com", AcceptTerms: true}) {
		t.Errorf("unexpected submitted fields %+v", sub.calls[0])
	}

	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrConfirmed) {
		t.Errorf("expected ErrConfirmed on resubmit, got %v", err)
	}
	if err := f.SetName("Grace"); !errors.Is(err, ErrConfirmed) {
		t.Errorf("expected edits to be refused after confirmation, got %v", err)
	}
	if sub.callCount() != 1 {
		t.Errorf("confirmed form must not call the provider again")
	}
}

func TestSubmitTrimsBeforeDelivery(t *testing.T) {
	sub := &recordingSubmitter{outcome: Outcome{Success: true}}
	f := NewForm(sub)
	_ = f.SetFields(Fields{Name: "  Ada ", Email: " ada@example.com\n", AcceptTerms: true})

	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := sub.calls[0]; got.Name != "Ada" || got.Email != "ada@example.com" {
		t.Errorf("expected trimmed fields, got %+v", got)
	}
}

func TestSubmitProviderRejectionPreservesFields(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    string
	}{
		{"provider message verbatim", Outcome{Message: "ada@example.com is already subscribed to list ChromaMind."}, "ada@example.com is already subscribed to list ChromaMind."},
		{"fallback when provider is silent", Outcome{}, MsgProviderFallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &recordingSubmitter{outcome: tt.outcome}
			f := filledForm(t, sub, true)

			out, err := f.Submit(context.Background())

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Success || out.Message != tt.want {
				t.Errorf("outcome = %+v, want message %q", out, tt.want)
			}
			v := f.View()
			if v.State != StateEditing || v.Failure != FailureRejected {
				t.Errorf("expected editing-with-error, got %+v", v)
			}
			if v.Fields.Name != "Ada" || v.Fields.Email != "ada@example.com" {
				t.Errorf("expected fields preserved, got %+v", v.Fields)
			}
		})
	}
}

func TestSubmitTransportFailureAllowsRetry(t *testing.T) {
	sub := &recordingSubmitter{err: errors.New("dial tcp: connection refused")}
	f := filledForm(t, sub, true)

	out, err := f.Submit(context.Background())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Success || out.Message != MsgConnectFailed {
		t.Errorf("unexpected outcome %+v", out)
	}
	if f.View().Failure != FailureTransport {
		t.Errorf("expected transport failure, got %v", f.View().Failure)
	}

	sub.err = nil
	sub.outcome = Outcome{Success: true}
	out, err = f.Submit(context.Background())
	if err != nil || !out.Success {
		t.Fatalf("expected retry to confirm, got %+v %v", out, err)
	}
	if sub.callCount() != 2 {
		t.Errorf("expected one call per attempt, got %d", sub.callCount())
	}
}

func TestSubmitWhileSubmittingIsRefused(t *testing.T) {
	sub := &recordingSubmitter{
		outcome: Outcome{Success: true},
		entered: make(chan struct{}),
		block:   make(chan struct{}),
	}
	f := filledForm(t, sub, true)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.Submit(context.Background())
	}()

	<-sub.entered
	if !f.View().Submitting() {
		t.Fatalf("expected submitting state, got %v", f.View().State)
	}
	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrInFlight) {
		t.Errorf("expected ErrInFlight, got %v", err)
	}
	if err := f.SetEmail("other@example.com"); !errors.Is(err, ErrInFlight) {
		t.Errorf("expected edits to be refused while submitting, got %v", err)
	}

	close(sub.block)
	<-done
	if !f.View().Confirmed() {
		t.Errorf("expected confirmation after provider returned")
	}
	if sub.callCount() != 1 {
		t.Errorf("expected one provider call, got %d", sub.callCount())
	}
}

func TestStateAndFailureStrings(t *testing.T) {
	if StateEditing.String() != "editing" || StateSubmitting.String() != "submitting" || StateConfirmed.String() != "confirmed" {
		t.Error("unexpected state names")
	}
	if FailureTransport.String() != "transport_error" || FailureRejected.String() != "rejected" {
		t.Error("unexpected failure names")
	}
}

func TestTransportFailureLogOmitsFormFields(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	sub := &recordingSubmitter{err: &url.Error{
		Op:  "Get",
		URL: "https://list.example.com/subscribe/post-json?u=a&EMAIL=ada%40example.com&FNAME=Ada",
		Err: errors.New("connection refused"),
	}}
	f := filledForm(t, sub, true)

	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logged := buf.String()
	if !strings.Contains(logged, "provider unreachable") {
		t.Fatalf("expected a transport warning, got %q", logged)
	}
	for _, leak := range []string{"EMAIL", "FNAME", "ada%40example.com"} {
		if strings.Contains(logged, leak) {
			t.Errorf("log exposes %q: %s", leak, logged)
		}
	}
	if !strings.Contains(logged, "list.example.com") || !strings.Contains(logged, "connection refused") {
		t.Errorf("log should keep host and cause: %s", logged)
	}
}
