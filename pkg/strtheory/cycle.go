// Cyclic-equation breaking.
//
// Word equations whose concatenation atoms form a cycle — a variable
// that depends on itself through results of concatenations, such as
// {x = y ++ "a", y = x ++ "b"} — would make the external searcher loop
// or answer incorrectly. A cycle forces every companion word on it to be
// empty: for a cycle x₁ = w₁·x₂, …, xₙ = wₙ·x₁ the lengths give
// |x₁| = |x₁| + Σ|wᵢ|, so Σ|wᵢ| = 0. The pre-check dissolves the cycle
// into equalities and emptiness assertions, or reports an outright
// contradiction when a companion is visibly non-empty.
//
// This check always runs before any cache lookup or searcher
// invocation: it can change the constraint set being decided.
package strtheory

// cycleEdge is one dependency r → part contributed by a concatenation
// or cons atom with result r.
type cycleEdge struct {
	from      int64
	to        int64
	atom      Atom
	result    Term
	part      Term
	companion Term // nil for cons edges: the companion is a single char, never empty
}

// BreakCycles detects one concatenation cycle in the constraint set and
// returns the corrective actions dissolving it. The second result is
// false when the set is acyclic.
func BreakCycles(cs *ConstraintSet, cat *Catalogue) ([]Action, bool) {
	catPred := cat.PredicateOf(cat.Cat)
	consPred := cat.PredicateOf(cat.Cons)

	edges := map[int64][]cycleEdge{}
	addEdge := func(e cycleEdge) {
		edges[e.from] = append(edges[e.from], e)
	}
	for _, a := range cs.Atoms() {
		switch a.Pred() {
		case catPred:
			u, v, r := a.Arg(0), a.Arg(1), a.Arg(2)
			rv, ok := r.(*Var)
			if !ok {
				continue
			}
			if uv, ok := u.(*Var); ok {
				addEdge(cycleEdge{from: rv.ID(), to: uv.ID(), atom: a, result: r, part: u, companion: v})
			}
			if vv, ok := v.(*Var); ok {
				addEdge(cycleEdge{from: rv.ID(), to: vv.ID(), atom: a, result: r, part: v, companion: u})
			}
		case consPred:
			s, r := a.Arg(1), a.Arg(2)
			rv, okR := r.(*Var)
			sv, okS := s.(*Var)
			if okR && okS {
				addEdge(cycleEdge{from: rv.ID(), to: sv.ID(), atom: a, result: r, part: s})
			}
		}
	}
	if len(edges) == 0 {
		return nil, false
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := map[int64]int{}
	var path []cycleEdge
	var cycle []cycleEdge

	var visit func(id int64) bool
	visit = func(id int64) bool {
		color[id] = gray
		for _, e := range edges[id] {
			switch color[e.to] {
			case white:
				path = append(path, e)
				if visit(e.to) {
					return true
				}
				path = path[:len(path)-1]
			case gray:
				// Back edge: the cycle is the path suffix from e.to,
				// closed by e.
				start := 0
				for i, pe := range path {
					if pe.from == e.to {
						start = i
						break
					}
				}
				cycle = append(cycle, path[start:]...)
				cycle = append(cycle, e)
				return true
			}
		}
		color[id] = black
		return false
	}
	for id := range edges {
		if color[id] == white {
			path = path[:0]
			if visit(id) {
				break
			}
		}
	}
	if len(cycle) == 0 {
		return nil, false
	}

	actions := make([]Action, 0, len(cycle))
	for _, e := range cycle {
		if e.companion == nil {
			// A cons edge strictly grows the word; the cycle is
			// unsatisfiable outright.
			return []Action{AssertContradiction{}}, true
		}
		if w, ok := e.companion.(*Word); ok && w.Len() > 0 {
			return []Action{AssertContradiction{}}, true
		}
		var repl []Atom
		if _, ok := e.companion.(*Word); !ok {
			// Non-literal companion: assert it empty. Literal companions
			// reaching this point are already the empty word.
			repl = append(repl, MustAtom(cat.StrEq, e.companion, EmptyWord()))
		}
		if !e.result.Equal(e.part) {
			repl = append(repl, MustAtom(cat.StrEq, e.result, e.part))
		}
		actions = append(actions, ReplaceAtom{Old: e.atom, New: repl})
	}
	return actions, true
}
