// The string model search boundary.
package strtheory

import (
	"context"
	"errors"
)

// ErrNoModel is the explicit "no model" result of a model searcher: a
// genuine local unsatisfiability witness, not a failure. The goal
// handler turns it into a contradiction action.
var ErrNoModel = errors.New("strtheory: no model")

// ErrSearchIncomplete marks a searcher giving up on a fragment outside
// its reach. It is an internal failure: the goal handler surfaces it to
// the host rather than masking it as "no model".
var ErrSearchIncomplete = errors.New("strtheory: search incomplete")

// ModelSearcher is the external string model search routine. Given a
// constraint set over supported symbols and the frozen operator
// registry, it returns either a model assigning each relevant variable
// a length integer or a literal word, or ErrNoModel.
//
// Implementations must be deterministic for a fixed input — the
// decision cache depends on it — and must treat any other returned
// error as an internal failure the caller may not retry.
type ModelSearcher interface {
	Search(ctx context.Context, cs *ConstraintSet, reg *Registry) (*Model, error)
}

// SearcherFunc adapts a function to the ModelSearcher interface.
type SearcherFunc func(ctx context.Context, cs *ConstraintSet, reg *Registry) (*Model, error)

// Search implements ModelSearcher.
func (f SearcherFunc) Search(ctx context.Context, cs *ConstraintSet, reg *Registry) (*Model, error) {
	return f(ctx, cs, reg)
}
