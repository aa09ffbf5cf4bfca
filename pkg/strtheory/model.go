// Models and their back-translation into host-level equalities.
package strtheory

import (
	"fmt"
	"sort"
	"strings"
)

// Assignment is one model entry: a length integer or a literal word.
type Assignment struct {
	isWord bool
	length int
	word   []int
}

// LengthAssignment assigns an integer length value.
func LengthAssignment(n int) Assignment { return Assignment{length: n} }

// WordAssignment assigns a literal word. The slice is copied.
func WordAssignment(w []int) Assignment {
	cp := make([]int, len(w))
	copy(cp, w)
	return Assignment{isWord: true, word: cp}
}

// IsWord reports whether the entry is a word assignment.
func (a Assignment) IsWord() bool { return a.isWord }

// Length returns the integer value of a length assignment.
func (a Assignment) Length() int { return a.length }

// Word returns a copy of the word of a word assignment.
func (a Assignment) Word() []int {
	cp := make([]int, len(a.word))
	copy(cp, a.word)
	return cp
}

// String renders the entry.
func (a Assignment) String() string {
	if a.isWord {
		return NewWord(a.word).String()
	}
	return fmt.Sprintf("%d", a.length)
}

// Model maps solver-level variables to assignments. Searchers populate
// it with Set*; once it is stored in a decision-cache entry it must be
// treated as immutable.
type Model struct {
	vars    map[int64]*Var
	entries map[int64]Assignment
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{
		vars:    make(map[int64]*Var),
		entries: make(map[int64]Assignment),
	}
}

// SetLength records a length-integer assignment for a variable.
func (m *Model) SetLength(v *Var, n int) {
	m.vars[v.ID()] = v
	m.entries[v.ID()] = LengthAssignment(n)
}

// SetWord records a literal-word assignment for a variable.
func (m *Model) SetWord(v *Var, w []int) {
	m.vars[v.ID()] = v
	m.entries[v.ID()] = WordAssignment(w)
}

// Get returns the assignment of a variable, if any.
func (m *Model) Get(v *Var) (Assignment, bool) {
	a, ok := m.entries[v.ID()]
	return a, ok
}

// Size returns the number of assigned variables.
func (m *Model) Size() int { return len(m.entries) }

// sortedVars returns the assigned variables in ascending id order, so
// translation output is deterministic.
func (m *Model) sortedVars() []*Var {
	out := make([]*Var, 0, len(m.vars))
	for _, v := range m.vars {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// String renders the model for debugging.
func (m *Model) String() string {
	parts := make([]string, 0, len(m.entries))
	for _, v := range m.sortedVars() {
		parts = append(parts, fmt.Sprintf("%s↦%s", v, m.entries[v.ID()]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Equality is one host-level equality of the conjunction handed back
// after model extraction.
type Equality struct {
	Lhs Term
	Rhs Term
}

// String renders the equality.
func (e Equality) String() string { return e.Lhs.String() + " = " + e.Rhs.String() }

// Ordering is the host's view of which variables are still active. The
// translator drops length assignments for variables that have left the
// ordering — stale residue of an earlier cache snapshot must not be
// asserted.
type Ordering interface {
	Contains(v *Var) bool
}

// SetOrdering is a simple Ordering over an explicit variable set.
type SetOrdering map[int64]bool

// NewSetOrdering builds an ordering containing exactly the given
// variables.
func NewSetOrdering(vars ...*Var) SetOrdering {
	o := make(SetOrdering, len(vars))
	for _, v := range vars {
		o[v.ID()] = true
	}
	return o
}

// Contains implements Ordering.
func (o SetOrdering) Contains(v *Var) bool { return o[v.ID()] }

// TermBuilder constructs host string terms for literal words. The
// concrete construction is owned by the host's string-term builder;
// the translator only folds empty/cons over it.
type TermBuilder interface {
	// EmptyWord returns the host term for the empty word.
	EmptyWord() Term
	// ConsWord returns the host term prepending a character to a tail.
	ConsWord(ch int, tail Term) Term
	// IntTerm returns the host term for an integer literal.
	IntTerm(n int) Term
}

// LiteralBuilder is the reference TermBuilder producing this package's
// own literal terms.
type LiteralBuilder struct{}

// EmptyWord implements TermBuilder.
func (LiteralBuilder) EmptyWord() Term { return EmptyWord() }

// ConsWord implements TermBuilder. The result stays a flat literal;
// LiteralBuilder only ever consumes its own output as tail.
func (LiteralBuilder) ConsWord(ch int, tail Term) Term {
	w, ok := tail.(*Word)
	if !ok {
		panic("strtheory: LiteralBuilder tail must be a literal word")
	}
	return NewWord(append([]int{ch}, w.chars...))
}

// IntTerm implements TermBuilder.
func (LiteralBuilder) IntTerm(n int) Term { return NewIntLit(n) }

// TranslateModel converts a stored model into a conjunction of
// host-level equalities:
//
//   - a length assignment v ↦ n becomes v = n, but only when v is still
//     present in the active ordering;
//   - a word assignment v ↦ w becomes v = <word term>, built by folding
//     the builder's empty/cons constructors over w.
//
// No new variables are introduced, and the conjunction is satisfiable
// exactly when the model is consistent with the current ordering.
func TranslateModel(m *Model, ord Ordering, b TermBuilder) []Equality {
	if m == nil {
		return nil
	}
	var out []Equality
	for _, v := range m.sortedVars() {
		a := m.entries[v.ID()]
		if a.IsWord() {
			t := b.EmptyWord()
			for i := len(a.word) - 1; i >= 0; i-- {
				t = b.ConsWord(a.word[i], t)
			}
			out = append(out, Equality{Lhs: v, Rhs: t})
			continue
		}
		if ord != nil && !ord.Contains(v) {
			continue
		}
		out = append(out, Equality{Lhs: v, Rhs: b.IntTerm(a.Length())})
	}
	return out
}
