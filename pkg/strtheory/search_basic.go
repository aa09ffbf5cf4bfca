// BasicSearcher: the reference string model search routine.
//
// This is not a complete word-equation solver. It runs a propagation
// fixpoint over the atoms — pushing literal words, lengths, and ground
// regex values through the registry's PreOps, the chaotic-iteration
// scheme a constraint solver uses for plugin propagation — and then,
// when the configuration permits forward approximation, chooses witness
// words for the remaining string variables from their accumulated
// automata constraints.
//
// Outcome discipline:
//   - a conflict found before any witness choice is a genuine
//     unsatisfiability witness: ErrNoModel;
//   - any failure after the first choice only disproves the chosen
//     witnesses, not the constraint set: ErrSearchIncomplete;
//   - leftover non-ground atoms after propagation and choices:
//     ErrSearchIncomplete.
//
// The search is deterministic for a fixed input: atoms are processed in
// snapshot order, variables chosen in ascending id order, and witness
// words preferred smallest-character-first.
package strtheory

import (
	"context"
	"errors"
	"fmt"

	"github.com/gitrdm/gostrlogic/internal/automata"
)

// errConflict marks a propagation conflict inside one search run.
var errConflict = errors.New("strtheory: propagation conflict")

// BasicSearcher is a reference ModelSearcher. Stateless across calls
// and safe for concurrent use.
type BasicSearcher struct {
	cfg Config
}

// NewBasicSearcher creates a reference searcher honoring the theory
// configuration (forward approximation controls witness choice).
func NewBasicSearcher(cfg Config) *BasicSearcher {
	return &BasicSearcher{cfg: cfg}
}

// Search implements ModelSearcher.
func (b *BasicSearcher) Search(ctx context.Context, cs *ConstraintSet, reg *Registry) (*Model, error) {
	ops, err := reg.Operators()
	if err != nil {
		return nil, err
	}
	st := &searchState{
		alphabet: reg.Catalogue().Alphabet(),
		ops:      ops,
		bindings: map[int64]Term{},
		lengths:  map[int64]int{},
		members:  map[int64][]*automata.Regex{},
		seenRe:   map[int64]map[string]bool{},
		vars:     map[int64]*Var{},
		dfas:     map[string]*automata.DFA{},
	}
	st.collectVars(cs)

	if err := st.propagate(ctx, cs); err != nil {
		if errors.Is(err, errConflict) {
			return nil, ErrNoModel
		}
		return nil, err
	}

	if b.cfg.ForwardApprox {
		if err := st.chooseWitnesses(ctx, cs); err != nil {
			return nil, err
		}
	}

	if !st.allGround(cs) {
		return nil, ErrSearchIncomplete
	}
	return st.model(), nil
}

// searchState is the mutable state of one search run.
type searchState struct {
	alphabet Alphabet
	ops      map[*Predicate]*PreOp

	// bindings maps variable ids to terms; a variable may be bound to
	// another variable, forming a walkable chain exactly like a
	// substitution.
	bindings map[int64]Term
	lengths  map[int64]int                  // required length per string-var representative
	members  map[int64][]*automata.Regex    // membership constraints per representative
	seenRe   map[int64]map[string]bool      // dedupe for members
	vars     map[int64]*Var                 // every variable seen in the snapshot
	dfas     map[string]*automata.DFA       // compiled regexes, keyed by rendering

	changed bool
	choices int
}

// collectVars indexes every variable occurring in the snapshot.
func (st *searchState) collectVars(cs *ConstraintSet) {
	for _, a := range cs.Atoms() {
		for _, t := range a.Args() {
			if v, ok := t.(*Var); ok {
				st.vars[v.ID()] = v
			}
		}
	}
}

// walk follows variable bindings to the representative term.
func (st *searchState) walk(t Term) Term {
	for {
		v, ok := t.(*Var)
		if !ok {
			return t
		}
		next, bound := st.bindings[v.ID()]
		if !bound {
			return v
		}
		t = next
	}
}

// compile memoizes regex→DFA compilation within the run.
func (st *searchState) compile(re *automata.Regex) (*automata.DFA, error) {
	key := re.String()
	if d, ok := st.dfas[key]; ok {
		return d, nil
	}
	d, err := automata.CompileRegex(re, st.alphabet.Size())
	if err != nil {
		return nil, err
	}
	st.dfas[key] = d
	return d, nil
}

// setLength records a required length for an unbound variable.
func (st *searchState) setLength(v *Var, n int) error {
	if n < 0 {
		return errConflict
	}
	if cur, ok := st.lengths[v.ID()]; ok {
		if cur != n {
			return errConflict
		}
		return nil
	}
	st.lengths[v.ID()] = n
	st.changed = true
	return nil
}

// addMember records a membership constraint for an unbound variable.
func (st *searchState) addMember(v *Var, re *automata.Regex) {
	key := re.String()
	set := st.seenRe[v.ID()]
	if set == nil {
		set = map[string]bool{}
		st.seenRe[v.ID()] = set
	}
	if set[key] {
		return
	}
	set[key] = true
	st.members[v.ID()] = append(st.members[v.ID()], re)
	st.changed = true
}

// bindVar binds an unbound variable to a term, checking accumulated
// length and membership constraints when the term is a literal word and
// migrating them when the term is another variable.
func (st *searchState) bindVar(v *Var, t Term) error {
	switch t := t.(type) {
	case *Word:
		if n, ok := st.lengths[v.ID()]; ok && n != t.Len() {
			return errConflict
		}
		for _, re := range st.members[v.ID()] {
			d, err := st.compile(re)
			if err != nil {
				return err
			}
			if !d.Accepts(t.chars) {
				return errConflict
			}
		}
	case *Var:
		if n, ok := st.lengths[v.ID()]; ok {
			if err := st.setLength(t, n); err != nil {
				return err
			}
		}
		for _, re := range st.members[v.ID()] {
			st.addMember(t, re)
		}
	}
	st.bindings[v.ID()] = t
	st.changed = true
	return nil
}

// unify merges two walked terms.
func (st *searchState) unify(a, b Term) error {
	a, b = st.walk(a), st.walk(b)
	if av, ok := a.(*Var); ok {
		if bv, ok := b.(*Var); ok {
			if av.ID() == bv.ID() {
				return nil
			}
			// Deterministic direction: higher id points at lower.
			if av.ID() > bv.ID() {
				return st.bindVar(av, bv)
			}
			return st.bindVar(bv, av)
		}
		return st.bindVar(av, b)
	}
	if bv, ok := b.(*Var); ok {
		return st.bindVar(bv, a)
	}
	if !a.Equal(b) {
		return errConflict
	}
	return nil
}

// unifyWord unifies a term with a literal word value.
func (st *searchState) unifyWord(t Term, w []int) error {
	return st.unify(t, NewWord(w))
}

// lengthOf returns the known length of a walked string term.
func (st *searchState) lengthOf(t Term) (int, bool) {
	switch t := t.(type) {
	case *Word:
		return t.Len(), true
	case *Var:
		n, ok := st.lengths[t.ID()]
		return n, ok
	default:
		return 0, false
	}
}

// propagate runs the fixpoint over the snapshot's atoms.
func (st *searchState) propagate(ctx context.Context, cs *ConstraintSet) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		st.changed = false
		for _, a := range cs.Atoms() {
			if err := st.step(a); err != nil {
				return err
			}
		}
		if !st.changed {
			return nil
		}
	}
}

// step propagates one atom through its PreOp.
func (st *searchState) step(a Atom) error {
	op, ok := st.ops[a.Pred()]
	if !ok {
		// Foreign predicate: no semantics here, leave it to other
		// theories.
		return nil
	}
	args := op.Args(a)
	for i := range args {
		args[i] = st.walk(args[i])
	}
	res, hasRes := op.Result(a)
	if hasRes {
		res = st.walk(res)
	}

	switch op.Kind() {
	case OpEquality:
		return st.unify(args[0], args[1])

	case OpEmpty:
		return st.unifyWord(res, nil)

	case OpCons:
		return st.stepCons(args[0], args[1], res)

	case OpConcat:
		return st.stepConcat(args[0], args[1], res)

	case OpLength:
		return st.stepLength(args[0], res)

	case OpMembership:
		return st.stepMembership(args[0], args[1])

	case OpReplace:
		return st.stepReplace(args, res, false)

	case OpReplaceAll:
		return st.stepReplace(args, res, true)

	case OpRegexBuild:
		return st.stepRegexBuild(op, args, res)

	case OpTransduce:
		return st.stepTransduce(op, args[0], args[1])

	case OpApply:
		return st.stepApply(op, args, res)

	default:
		return fmt.Errorf("strtheory: unhandled pre-operation %s", op.Kind())
	}
}

func (st *searchState) stepCons(c, s, r Term) error {
	ch, chOK := c.(*IntLit)
	if chOK && !st.alphabet.Contains(ch.Value()) {
		return errConflict
	}
	if w, ok := s.(*Word); ok && chOK {
		return st.unifyWord(r, append([]int{ch.Value()}, w.chars...))
	}
	if rw, ok := r.(*Word); ok {
		if rw.Len() == 0 {
			return errConflict
		}
		if err := st.unify(c, NewIntLit(rw.chars[0])); err != nil {
			return err
		}
		return st.unifyWord(s, rw.chars[1:])
	}
	// Length arithmetic: |r| = |s| + 1.
	if n, ok := st.lengthOf(s); ok {
		if rv, isVar := r.(*Var); isVar {
			return st.setLength(rv, n+1)
		}
	}
	if n, ok := st.lengthOf(r); ok {
		if sv, isVar := s.(*Var); isVar {
			return st.setLength(sv, n-1)
		}
	}
	return nil
}

func (st *searchState) stepConcat(u, v, r Term) error {
	uw, uOK := u.(*Word)
	vw, vOK := v.(*Word)
	rw, rOK := r.(*Word)

	switch {
	case uOK && vOK:
		return st.unifyWord(r, append(append([]int{}, uw.chars...), vw.chars...))
	case rOK && uOK:
		if uw.Len() > rw.Len() {
			return errConflict
		}
		for i, c := range uw.chars {
			if rw.chars[i] != c {
				return errConflict
			}
		}
		return st.unifyWord(v, rw.chars[uw.Len():])
	case rOK && vOK:
		if vw.Len() > rw.Len() {
			return errConflict
		}
		off := rw.Len() - vw.Len()
		for i, c := range vw.chars {
			if rw.chars[off+i] != c {
				return errConflict
			}
		}
		return st.unifyWord(u, rw.chars[:off])
	}

	// Length arithmetic: |r| = |u| + |v|, any two determine the third.
	un, uHas := st.lengthOf(u)
	vn, vHas := st.lengthOf(v)
	rn, rHas := st.lengthOf(r)
	switch {
	case uHas && vHas && !rHas:
		if rv, ok := r.(*Var); ok {
			return st.setLength(rv, un+vn)
		}
	case uHas && rHas && !vHas:
		if vv, ok := v.(*Var); ok {
			return st.setLength(vv, rn-un)
		}
	case vHas && rHas && !uHas:
		if uv, ok := u.(*Var); ok {
			return st.setLength(uv, rn-vn)
		}
	case uHas && vHas && rHas:
		if un+vn != rn {
			return errConflict
		}
	}
	return nil
}

func (st *searchState) stepLength(s, n Term) error {
	if w, ok := s.(*Word); ok {
		return st.unify(n, NewIntLit(w.Len()))
	}
	sv, ok := s.(*Var)
	if !ok {
		return errConflict
	}
	if lit, ok := n.(*IntLit); ok {
		return st.setLength(sv, lit.Value())
	}
	if ln, ok := st.lengths[sv.ID()]; ok {
		return st.unify(n, NewIntLit(ln))
	}
	return nil
}

func (st *searchState) stepMembership(s, re Term) error {
	rl, ok := re.(*RegexLit)
	if !ok {
		// Regex value not ground yet; a later iteration may bind it.
		return nil
	}
	if w, ok := s.(*Word); ok {
		d, err := st.compile(rl.Regex())
		if err != nil {
			return err
		}
		if !d.Accepts(w.chars) {
			return errConflict
		}
		return nil
	}
	if sv, ok := s.(*Var); ok {
		st.addMember(sv, rl.Regex())
	}
	return nil
}

func (st *searchState) stepReplace(args []Term, res Term, all bool) error {
	s, sOK := args[0].(*Word)
	pat, pOK := args[1].(*Word)
	rep, rOK := args[2].(*Word)
	if !sOK || !pOK || !rOK {
		return nil
	}
	out := replaceWord(s.chars, pat.chars, rep.chars, all)
	return st.unifyWord(res, out)
}

func (st *searchState) stepRegexBuild(op *PreOp, args []Term, res Term) error {
	for _, t := range args {
		if t.IsVar() {
			return nil
		}
	}
	re, err := op.BuildRegex()(args)
	if err != nil {
		return err
	}
	return st.unify(res, NewRegexLit(re))
}

func (st *searchState) stepTransduce(op *PreOp, in, out Term) error {
	t := op.Transducer()
	if t == nil {
		return fmt.Errorf("strtheory: transducer %q has no compiled form", op.TransducerName())
	}
	w, ok := in.(*Word)
	if !ok {
		return nil
	}
	img, accepted := t.Image(w.chars)
	if !accepted {
		return errConflict
	}
	return st.unifyWord(out, img)
}

func (st *searchState) stepApply(op *PreOp, args []Term, res Term) error {
	words := make([][]int, len(args))
	for i, t := range args {
		switch t := t.(type) {
		case *Word:
			words[i] = t.chars
		case *IntLit:
			words[i] = []int{t.Value()}
		default:
			return nil
		}
	}
	out, err := op.Eval()(words)
	if err != nil {
		return errConflict
	}
	return st.unifyWord(res, out)
}

// chooseWitnesses picks literal words for the string variables left
// unbound after propagation, smallest variable id first, re-running
// propagation after each choice.
func (st *searchState) chooseWitnesses(ctx context.Context, cs *ConstraintSet) error {
	for {
		v := st.nextUnboundStringVar(cs)
		if v == nil {
			return nil
		}
		word, found, err := st.witnessFor(v)
		if err != nil {
			return err
		}
		if !found {
			// Length and membership constraints are necessary
			// conditions; before any choice their inconsistency is a
			// genuine witness of unsatisfiability.
			if st.choices == 0 {
				return ErrNoModel
			}
			return ErrSearchIncomplete
		}
		st.choices++
		if err := st.bindVar(v, NewWord(word)); err != nil {
			return ErrSearchIncomplete
		}
		if err := st.propagate(ctx, cs); err != nil {
			if errors.Is(err, errConflict) {
				return ErrSearchIncomplete
			}
			return err
		}
	}
}

// nextUnboundStringVar returns the smallest-id unbound variable in a
// string position, or nil.
func (st *searchState) nextUnboundStringVar(cs *ConstraintSet) *Var {
	var best *Var
	for _, a := range cs.Atoms() {
		sorts := a.Pred().ArgSorts()
		for i, t := range a.Args() {
			if sorts[i] != SortString {
				continue
			}
			w := st.walk(t)
			v, ok := w.(*Var)
			if !ok {
				continue
			}
			if best == nil || v.ID() < best.ID() {
				best = v
			}
		}
	}
	return best
}

// witnessFor chooses a deterministic witness word for a variable from
// its accumulated constraints.
func (st *searchState) witnessFor(v *Var) ([]int, bool, error) {
	n, hasLen := st.lengths[v.ID()]
	res := st.members[v.ID()]
	if len(res) == 0 {
		if !hasLen {
			return nil, true, nil // unconstrained: the empty word
		}
		if n < 0 {
			return nil, false, nil
		}
		return make([]int, n), true, nil // n copies of character 0
	}
	d, err := st.compile(res[0])
	if err != nil {
		return nil, false, err
	}
	for _, re := range res[1:] {
		other, err := st.compile(re)
		if err != nil {
			return nil, false, err
		}
		d, err = automata.Intersect(d, other)
		if err != nil {
			return nil, false, err
		}
	}
	if hasLen {
		w, ok := d.AcceptedOfLength(n)
		return w, ok, nil
	}
	w, ok := d.ShortestAccepted()
	return w, ok, nil
}

// allGround reports whether every atom argument walks to a ground term.
func (st *searchState) allGround(cs *ConstraintSet) bool {
	for _, a := range cs.Atoms() {
		if _, ok := st.ops[a.Pred()]; !ok {
			continue
		}
		for _, t := range a.Args() {
			if st.walk(t).IsVar() {
				return false
			}
		}
	}
	return true
}

// model collects the final assignment for every snapshot variable.
func (st *searchState) model() *Model {
	m := NewModel()
	for _, v := range st.vars {
		switch t := st.walk(v).(type) {
		case *Word:
			m.SetWord(v, t.chars)
		case *IntLit:
			m.SetLength(v, t.Value())
		}
	}
	return m
}

// replaceWord replaces occurrences of pat in s by rep. With all set,
// every non-overlapping occurrence is replaced left to right; otherwise
// only the first. An empty pattern prepends rep once.
func replaceWord(s, pat, rep []int, all bool) []int {
	if len(pat) == 0 {
		out := append([]int{}, rep...)
		return append(out, s...)
	}
	out := []int{}
	i := 0
	replaced := false
	for i <= len(s)-len(pat) {
		match := true
		for j := range pat {
			if s[i+j] != pat[j] {
				match = false
				break
			}
		}
		if match && (all || !replaced) {
			out = append(out, rep...)
			i += len(pat)
			replaced = true
			continue
		}
		out = append(out, s[i])
		i++
	}
	return append(out, s[i:]...)
}
