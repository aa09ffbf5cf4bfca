// Atoms and constraint-set snapshots.
//
// A constraint set is the immutable conjunction of atoms the host is
// currently considering. Snapshots carry a canonical key — the sorted
// rendering of their atoms — so structurally equal sets collide in the
// decision cache regardless of construction order.
package strtheory

import (
	"fmt"
	"sort"
	"strings"
)

// Atom is one predicate application.
type Atom struct {
	pred *Predicate
	args []Term
}

// NewAtom builds an atom and checks the argument count against the
// predicate's signature.
func NewAtom(pred *Predicate, args ...Term) (Atom, error) {
	if pred == nil {
		return Atom{}, fmt.Errorf("strtheory: atom predicate cannot be nil")
	}
	if len(args) != pred.Arity() {
		return Atom{}, fmt.Errorf("strtheory: %s expects %d arguments, got %d", pred, pred.Arity(), len(args))
	}
	for i, a := range args {
		if a == nil {
			return Atom{}, fmt.Errorf("strtheory: %s argument %d is nil", pred, i)
		}
	}
	copied := make([]Term, len(args))
	copy(copied, args)
	return Atom{pred: pred, args: copied}, nil
}

// MustAtom is NewAtom that panics on signature violations. Intended for
// construction sites where the shape is statically known.
func MustAtom(pred *Predicate, args ...Term) Atom {
	a, err := NewAtom(pred, args...)
	if err != nil {
		panic(err)
	}
	return a
}

// Pred returns the atom's predicate.
func (a Atom) Pred() *Predicate { return a.pred }

// Args returns a copy of the atom's arguments.
func (a Atom) Args() []Term {
	out := make([]Term, len(a.args))
	copy(out, a.args)
	return out
}

// Arg returns the i-th argument without copying.
func (a Atom) Arg(i int) Term { return a.args[i] }

// String returns the canonical rendering "pred(arg,...)".
func (a Atom) String() string {
	parts := make([]string, len(a.args))
	for i, t := range a.args {
		parts[i] = t.String()
	}
	return a.pred.name + "(" + strings.Join(parts, ",") + ")"
}

// Equal checks structural equality of two atoms.
func (a Atom) Equal(b Atom) bool {
	if a.pred != b.pred || len(a.args) != len(b.args) {
		return false
	}
	for i := range a.args {
		if !a.args[i].Equal(b.args[i]) {
			return false
		}
	}
	return true
}

// ConstraintSet is an immutable snapshot of the atoms under
// consideration. Construction computes the canonical cache key.
type ConstraintSet struct {
	atoms []Atom
	key   string
}

// NewConstraintSet snapshots a conjunction of atoms.
func NewConstraintSet(atoms []Atom) *ConstraintSet {
	copied := make([]Atom, len(atoms))
	copy(copied, atoms)
	rendered := make([]string, len(copied))
	for i, a := range copied {
		rendered[i] = a.String()
	}
	sort.Strings(rendered)
	return &ConstraintSet{
		atoms: copied,
		key:   strings.Join(rendered, ";"),
	}
}

// Atoms returns the snapshot's atoms in presentation order.
// The returned slice must not be modified.
func (cs *ConstraintSet) Atoms() []Atom { return cs.atoms }

// Size returns the number of atoms.
func (cs *ConstraintSet) Size() int { return len(cs.atoms) }

// Key returns the canonical snapshot key used by the decision cache.
// Structurally equal snapshots share a key.
func (cs *ConstraintSet) Key() string { return cs.key }

// Equal reports structural equality of two snapshots.
func (cs *ConstraintSet) Equal(other *ConstraintSet) bool {
	return other != nil && cs.key == other.key
}

// SharesSymbols reports whether any atom's predicate belongs to the
// given catalogue. A set sharing no symbol contributes nothing to the
// theory's model.
func (cs *ConstraintSet) SharesSymbols(cat *Catalogue) bool {
	for _, a := range cs.atoms {
		if cat.Contains(a.pred) {
			return true
		}
	}
	return false
}

// String renders the conjunction for debugging.
func (cs *ConstraintSet) String() string {
	parts := make([]string, len(cs.atoms))
	for i, a := range cs.atoms {
		parts[i] = a.String()
	}
	return "{" + strings.Join(parts, " ∧ ") + "}"
}
