// Actions: what the theory hands back to the host's proof search.
package strtheory

import (
	"fmt"
	"strings"
)

// Action is a corrective proof action for the host. An empty action
// list means the theory accepts the goal as satisfiable.
type Action interface {
	String() string
	isAction()
}

// AssertContradiction asserts a trivial contradiction, signaling the
// host to backtrack: the theory found the constraint set unsatisfiable.
type AssertContradiction struct{}

func (AssertContradiction) isAction() {}

// String renders the action.
func (AssertContradiction) String() string { return "assert ⊥" }

// ReplaceAtom rewrites one atom of the goal into a conjunction of
// simpler atoms. Emitted by cyclic-equation breaking to dissolve word
// equations that would otherwise make the searcher loop.
type ReplaceAtom struct {
	Old Atom
	New []Atom
}

func (ReplaceAtom) isAction() {}

// String renders the rewrite.
func (r ReplaceAtom) String() string {
	parts := make([]string, len(r.New))
	for i, a := range r.New {
		parts[i] = a.String()
	}
	return fmt.Sprintf("replace %s by %s", r.Old, strings.Join(parts, " ∧ "))
}
