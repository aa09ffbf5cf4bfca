// Solving sessions own the incompleteness flag.
//
// The flag is monotonic: reset only by starting a new session, set the
// first time preprocessing sees an unsupported predicate, read by the
// host when it finalizes an answer. It deliberately lives on an explicit
// session value rather than package state so independent solving
// sessions never observe each other.
package strtheory

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Session is one solving session over a fixed theory. Safe for
// concurrent use by parallel proof branches.
type Session struct {
	theory     *Theory
	incomplete atomic.Bool
	logger     *zap.Logger
}

// SessionOption configures a session at construction.
type SessionOption func(*Session)

// WithLogger attaches a structured logger. Sessions default to a no-op
// logger so the library stays silent unless asked.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession starts a fresh solving session: the incompleteness flag is
// clear and no decisions are cached yet.
func NewSession(theory *Theory, opts ...SessionOption) *Session {
	s := &Session{
		theory: theory,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Theory returns the session's theory.
func (s *Session) Theory() *Theory { return s.theory }

// Incomplete reports whether an unsupported symbol was encountered at
// any point in this session. Once true it stays true: satisfiability
// answers for stronger soundness configurations must be downgraded to
// "don't know", while satisfiability-witnessing answers remain sound.
func (s *Session) Incomplete() bool { return s.incomplete.Load() }

// markIncomplete raises the flag. Logs only on the first transition.
func (s *Session) markIncomplete(p *Predicate) {
	if s.incomplete.CompareAndSwap(false, true) {
		s.logger.Warn("unsupported predicate encountered; downgrading completeness",
			zap.String("predicate", p.String()))
	}
}
