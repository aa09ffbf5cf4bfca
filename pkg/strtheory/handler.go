// The goal handler: the state-machine-facing entry point the host's
// proof search invokes.
//
// The host calls the theory at specific proof states. In non-final
// states the theory defers entirely to other reasoning. In the final
// state — every other theory has finished contributing — it must decide
// the current constraint set:
//
//  1. Cyclic-equation breaking runs first, unconditionally, and
//     short-circuits decision when it fires.
//  2. Otherwise the decision cache is consulted; on a miss the external
//     searcher runs exactly once and the outcome is cached.
//  3. A model means the goal is accepted: no corrective action.
//  4. No model means local unsatisfiability: a contradiction action.
//
// Model extraction is a separate callback, invoked by the host after
// acceptance. It re-reads the cached outcome — decide and extract must
// never diverge for the same goal state — and runs the model
// translator.
package strtheory

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// GoalState is the host's proof-search phase, as this theory sees it.
type GoalState int

const (
	// StateNonFinal: other theories are still contributing; no action.
	StateNonFinal GoalState = iota
	// StateFinal: the theory must decide the current constraint set.
	StateFinal
)

// String returns a human-readable state name.
func (s GoalState) String() string {
	switch s {
	case StateNonFinal:
		return "non-final"
	case StateFinal:
		return "final"
	default:
		return "unknown"
	}
}

// GoalHandler implements the theory's two callbacks — decide and
// extract-model — against one session. Safe for concurrent use by
// parallel proof branches.
type GoalHandler struct {
	session  *Session
	searcher ModelSearcher
	cache    *DecisionCache
	logger   *zap.Logger
}

// HandlerOption configures a goal handler at construction.
type HandlerOption func(*GoalHandler)

// WithCacheCapacity overrides the decision cache capacity.
func WithCacheCapacity(n int) HandlerOption {
	return func(h *GoalHandler) { h.cache = NewDecisionCache(n) }
}

// NewGoalHandler creates a handler for a session and an external model
// searcher.
func NewGoalHandler(session *Session, searcher ModelSearcher, opts ...HandlerOption) *GoalHandler {
	h := &GoalHandler{
		session:  session,
		searcher: searcher,
		cache:    NewDecisionCache(DefaultCacheCapacity),
		logger:   session.logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Session returns the handler's session.
func (h *GoalHandler) Session() *Session { return h.session }

// HandleGoal is the host-facing entry point. Non-final states produce
// no actions; the final state delegates to Decide.
func (h *GoalHandler) HandleGoal(ctx context.Context, state GoalState, cs *ConstraintSet) ([]Action, error) {
	if state != StateFinal {
		return nil, nil
	}
	return h.Decide(ctx, cs)
}

// Decide decides the constraint set at a final proof state. An empty
// action list accepts the goal as satisfiable; a contradiction action
// rejects it; cycle-breaking rewrites take priority over both. Errors
// are internal searcher failures and must be surfaced by the host, not
// treated as unsatisfiability.
func (h *GoalHandler) Decide(ctx context.Context, cs *ConstraintSet) ([]Action, error) {
	cs = h.session.Preprocess(cs)

	// The cycle check always precedes cache lookup: it can change the
	// constraint set being decided, and a cached outcome for the
	// uncorrected set must not short-circuit it.
	if actions, found := BreakCycles(cs, h.session.theory.Catalogue()); found {
		h.logger.Debug("cyclic word equations broken",
			zap.Int("actions", len(actions)))
		return actions, nil
	}

	outcome, err := h.cache.Resolve(cs.Key(), func() (Outcome, error) {
		return h.searchOnce(ctx, cs)
	})
	if err != nil {
		return nil, err
	}
	if outcome.Sat {
		return nil, nil
	}
	return []Action{AssertContradiction{}}, nil
}

// searchOnce invokes the external searcher for a cache miss.
func (h *GoalHandler) searchOnce(ctx context.Context, cs *ConstraintSet) (Outcome, error) {
	model, err := h.searcher.Search(ctx, cs, h.session.theory.Registry())
	switch {
	case err == nil:
		h.logger.Debug("model found", zap.Int("assignments", model.Size()))
		return Outcome{Sat: true, Model: model}, nil
	case errors.Is(err, ErrNoModel):
		h.logger.Debug("no model")
		return Outcome{Sat: false}, nil
	default:
		// Internal searcher failure: fatal, surfaced, never retried and
		// never masked as "no model".
		return Outcome{}, fmt.Errorf("strtheory: model search failed: %w", err)
	}
}

// ExtractModel is the model-generation callback. If the constraint set
// shares no symbol with the theory it reports no contribution (false).
// Otherwise the decision cache must already hold the outcome — Decide
// runs first for the same goal state — and the stored model is
// translated into equalities under the current ordering.
func (h *GoalHandler) ExtractModel(cs *ConstraintSet, ord Ordering, b TermBuilder) ([]Equality, bool, error) {
	if !cs.SharesSymbols(h.session.theory.Catalogue()) {
		return nil, false, nil
	}
	outcome, ok := h.cache.Lookup(cs.Key())
	if !ok {
		return nil, false, fmt.Errorf("strtheory: model requested for an undecided constraint set")
	}
	if !outcome.Sat {
		return nil, false, nil
	}
	return TranslateModel(outcome.Model, ord, b), true, nil
}
