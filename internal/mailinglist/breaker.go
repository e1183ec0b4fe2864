package mailinglist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/chromamind/booth/internal/signup"
)

var _ signup.Submitter = (*Breaker)(nil)

// ErrUnavailable is returned without calling the provider while the breaker
// is open.
var ErrUnavailable = errors.New("mailing list temporarily unavailable")

// Breaker stops calling a provider after three consecutive transport
// failures and retries it once timeout has passed. Provider rejections are
// answers, not failures, and never trip it. Neither do calls whose request
// context ended first: the visitor left, the provider did not fail.
type Breaker struct {
	next signup.Submitter
	cb   *gobreaker.CircuitBreaker
}

func NewBreaker(name string, next signup.Submitter, timeout time.Duration) *Breaker {
	st := gobreaker.Settings{Name: name}
	st.Interval = 60 * time.Second
	st.Timeout = timeout
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= 3
	}
	st.IsSuccessful = func(err error) bool {
		var a abandoned
		return err == nil || errors.As(err, &a)
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		slog.Warn("mailing list breaker state changed", "provider", name, "from", from.String(), "to", to.String())
	}
	return &Breaker{next: next, cb: gobreaker.NewCircuitBreaker(st)}
}

func (b *Breaker) Subscribe(ctx context.Context, f signup.Fields) (signup.Outcome, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		out, err := b.next.Subscribe(ctx, f)
		if err != nil && ctx.Err() != nil {
			return out, abandoned{err}
		}
		return out, err
	})
	var a abandoned
	if errors.As(err, &a) {
		return signup.Outcome{}, a.err
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return signup.Outcome{}, fmt.Errorf("%s: %w", b.cb.Name(), ErrUnavailable)
	}
	if err != nil {
		return signup.Outcome{}, err
	}
	return res.(signup.Outcome), nil
}

// abandoned marks an error from a call whose context was already done.
type abandoned struct{ err error }

func (a abandoned) Error() string { return a.err.Error() }
func (a abandoned) Unwrap() error { return a.err }

// State reports the breaker state, for health output.
func (b *Breaker) State() string {
	return b.cb.State().String()
}

// Ping fails while the breaker is open, so the health check reports a
// provider that is currently being skipped.
func (b *Breaker) Ping(ctx context.Context) error {
	if b.cb.State() == gobreaker.StateOpen {
		return ErrUnavailable
	}
	return nil
}
