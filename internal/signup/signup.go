// Package signup implements the waiting-list form: its fields, its
// Editing/Submitting/Confirmed state machine and the pluggable strategy that
// actually delivers a submission.
package signup

import (
	"context"
	"errors"
)

// Messages shown to the visitor.
const (
	MsgRequired         = "Please enter your name and email"
	MsgTermsRequired    = "Please accept the terms and conditions"
	MsgInvalidEmail     = "Please enter a valid email address"
	MsgSuccess          = "Thank you for subscribing!"
	MsgProviderFallback = "An error occurred. Please try again."
	MsgConnectFailed    = "Failed to connect to the subscription service. Please try again later."
)

// PlaceholderPosition is the fixed queue position on the confirmation view.
// There is no queue behind it.
const PlaceholderPosition = "#156"

var (
	ErrRequired         = errors.New("name and email are required")
	ErrTermsNotAccepted = errors.New("terms and conditions not accepted")
	ErrConfirmed        = errors.New("signup already confirmed")
	ErrInFlight         = errors.New("signup already submitting")
)

type Fields struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	AcceptTerms bool   `json:"acceptTerms"`
}

type Outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Submitter delivers one signup to a mailing list. A returned error means the
// provider could not be reached or answered unintelligibly; a provider that
// understood and refused the address reports Outcome{Success: false}.
type Submitter interface {
	Subscribe(ctx context.Context, f Fields) (Outcome, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, f Fields) (Outcome, error)

func (fn SubmitterFunc) Subscribe(ctx context.Context, f Fields) (Outcome, error) {
	return fn(ctx, f)
}
