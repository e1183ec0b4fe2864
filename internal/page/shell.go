// Package page renders the ChromaMind landing page.
package page

import (
	"sync"

	"github.com/chromamind/booth/internal/terms"
)

// Shell composes the page and owns the only piece of page-level state: whether
// the terms modal is visible.
type Shell struct {
	mu           sync.Mutex
	termsVisible bool
}

func NewShell(termsVisible bool) *Shell {
	return &Shell{termsVisible: termsVisible}
}

func (s *Shell) OpenTerms() {
	s.mu.Lock()
	s.termsVisible = true
	s.mu.Unlock()
}

func (s *Shell) CloseTerms() {
	s.mu.Lock()
	s.termsVisible = false
	s.mu.Unlock()
}

func (s *Shell) TermsVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.termsVisible
}

// Modal returns the terms modal for the current visibility. Closing it
// clears the shell's flag.
func (s *Shell) Modal() terms.Modal {
	return terms.NewModal(s.TermsVisible(), "/", s.CloseTerms)
}
