package signup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/chromamind/booth/internal/validate"
)

type State int

const (
	StateEditing State = iota
	StateSubmitting
	StateConfirmed
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateConfirmed:
		return "confirmed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Failure classifies why the last attempt did not confirm.
type Failure int

const (
	FailureNone Failure = iota
	FailureValidation
	FailureRejected
	FailureTransport
)

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureValidation:
		return "invalid"
	case FailureRejected:
		return "rejected"
	case FailureTransport:
		return "transport_error"
	default:
		return fmt.Sprintf("failure(%d)", int(f))
	}
}

// Form is one visitor's signup form. Confirmed is terminal.
type Form struct {
	mu        sync.Mutex
	submitter Submitter
	fields    Fields
	state     State
	message   string
	failure   Failure
}

func NewForm(s Submitter) *Form {
	return &Form{submitter: s}
}

func (f *Form) SetName(name string) error {
	return f.edit(func(fl *Fields) { fl.Name = name })
}

func (f *Form) SetEmail(email string) error {
	return f.edit(func(fl *Fields) { fl.Email = email })
}

func (f *Form) SetAcceptTerms(accept bool) error {
	return f.edit(func(fl *Fields) { fl.AcceptTerms = accept })
}

// SetFields replaces every field at once.
func (f *Form) SetFields(fields Fields) error {
	return f.edit(func(fl *Fields) { *fl = fields })
}

func (f *Form) edit(apply func(*Fields)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case StateConfirmed:
		return ErrConfirmed
	case StateSubmitting:
		return ErrInFlight
	}
	apply(&f.fields)
	return nil
}

// Submit runs one attempt. Precondition failures (ErrRequired,
// ErrTermsNotAccepted, ErrConfirmed, ErrInFlight) leave the form untouched and
// never reach the submitter. Every other path yields an Outcome and calls the
// submitter at most once.
func (f *Form) Submit(ctx context.Context) (Outcome, error) {
	f.mu.Lock()
	switch f.state {
	case StateConfirmed:
		f.mu.Unlock()
		return Outcome{}, ErrConfirmed
	case StateSubmitting:
		f.mu.Unlock()
		return Outcome{}, ErrInFlight
	}

	fields := f.fields
	fields.Name = strings.TrimSpace(fields.Name)
	fields.Email = strings.TrimSpace(fields.Email)

	if fields.Name == "" || fields.Email == "" {
		f.mu.Unlock()
		return Outcome{}, ErrRequired
	}
	if !fields.AcceptTerms {
		f.mu.Unlock()
		return Outcome{}, ErrTermsNotAccepted
	}
	if msg := firstNonEmpty(validate.Name(fields.Name), validate.Email(fields.Email)); msg != "" {
		out := f.failLocked(FailureValidation, msg)
		f.mu.Unlock()
		return out, nil
	}
	if !validate.EmailShape(fields.Email) {
		out := f.failLocked(FailureValidation, MsgInvalidEmail)
		f.mu.Unlock()
		return out, nil
	}

	f.state = StateSubmitting
	f.message = ""
	f.failure = FailureNone
	f.mu.Unlock()

	out, err := f.submitter.Subscribe(ctx, fields)

	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case err != nil:
		slog.Warn("signup: provider unreachable", "error", scrubURL(err))
		return f.failLocked(FailureTransport, MsgConnectFailed), nil
	case !out.Success:
		msg := out.Message
		if msg == "" {
			msg = MsgProviderFallback
		}
		return f.failLocked(FailureRejected, msg), nil
	default:
		f.state = StateConfirmed
		f.message = MsgSuccess
		f.failure = FailureNone
		return Outcome{Success: true, Message: MsgSuccess}, nil
	}
}

func (f *Form) failLocked(kind Failure, msg string) Outcome {
	f.state = StateEditing
	f.message = msg
	f.failure = kind
	return Outcome{Success: false, Message: msg}
}

// View is a consistent snapshot of the form for rendering.
type View struct {
	State    State
	Fields   Fields
	Message  string
	Failure  Failure
	Position string
}

func (v View) Confirmed() bool { return v.State == StateConfirmed }
func (v View) Submitting() bool { return v.State == StateSubmitting }

func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := View{State: f.state, Fields: f.fields, Message: f.message, Failure: f.failure}
	if f.state == StateConfirmed {
		v.Position = PlaceholderPosition
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// scrubURL reduces a transport error to its operation, host and cause so a
// request URL carrying form fields never reaches the logs.
func scrubURL(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	host := "provider"
	if u, perr := url.Parse(ue.URL); perr == nil && u.Host != "" {
		host = u.Host
	}
	return fmt.Errorf("%s %s: %w", ue.Op, host, ue.Err)
}
