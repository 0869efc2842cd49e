package learning

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/heartmarshall/leitner/internal/domain"
	"github.com/heartmarshall/leitner/internal/learning/schedule"
)

// Registry owns the running session and keeps the summaries of ended ones.
type Registry struct {
	log *slog.Logger

	mu        sync.Mutex
	current   *Session
	summaries []domain.SessionSummary
	onEnded   []func(domain.SessionSummary)
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{log: logger}
}

// Start creates and starts a session. It fails with domain.ErrConflict while
// another session is running.
func (r *Registry) Start(model cardModel, policy schedule.Policy, opts Options) (*Session, error) {
	r.mu.Lock()
	if r.current != nil {
		r.mu.Unlock()
		return nil, fmt.Errorf("start session: %w", domain.ErrConflict)
	}
	s := NewSession(r.log, model, policy, opts, r)
	r.current = s
	r.mu.Unlock()

	// Start may end the session right away, which re-enters SessionEnded.
	s.Start()
	return s, nil
}

// SessionEnded records the summary of s and notifies the listeners.
func (r *Registry) SessionEnded(s *Session) {
	summary := s.Summary()

	r.mu.Lock()
	if r.current == s {
		r.current = nil
	}
	r.summaries = append(r.summaries, summary)
	listeners := slices.Clone(r.onEnded)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(summary)
	}
}

// Current returns the running session, or nil.
func (r *Registry) Current() *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Summaries returns the summaries of all ended sessions, oldest first.
func (r *Registry) Summaries() []domain.SessionSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.summaries)
}

// OnSessionEnded registers fn to receive the summary of every ended session.
func (r *Registry) OnSessionEnded(fn func(domain.SessionSummary)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onEnded = append(r.onEnded, fn)
}
