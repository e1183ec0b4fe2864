package signup

import (
	"context"
	"log/slog"
	"time"
)

var _ Submitter = (*Simulator)(nil)

// Simulator stands in for a mailing list. It waits Delay, always succeeds and
// only logs what it was given.
type Simulator struct {
	Delay time.Duration
}

func NewSimulator(delay time.Duration) *Simulator {
	return &Simulator{Delay: delay}
}

func (s *Simulator) Subscribe(ctx context.Context, f Fields) (Outcome, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		}
	}
	slog.Info("signup simulated", "name", f.Name, "email", f.Email, "accept_terms", f.AcceptTerms)
	return Outcome{Success: true, Message: MsgSuccess}, nil
}
