package strtheory

import (
	"testing"
)

func TestBreakCyclesAcyclicSet(t *testing.T) {
	th := newTestTheory(t, DefaultConfig())
	cat := th.Catalogue()

	x, y, z := Fresh("x"), Fresh("y"), Fresh("z")
	cs := NewConstraintSet([]Atom{
		catAtom(t, cat, y, z, x), // x = y ++ z: a chain, no cycle
		lenAtom(t, cat, x, NewIntLit(4)),
	})
	if actions, found := BreakCycles(cs, cat); found {
		t.Fatalf("acyclic set reported a cycle: %v", actions)
	}
}

func TestBreakCyclesVariableCompanions(t *testing.T) {
	th := newTestTheory(t, DefaultConfig())
	cat := th.Catalogue()

	// x = y ++ z and y = x ++ w: the x→y→x cycle forces z and w empty
	// and collapses each equation to an equality.
	x, y, z, w := Fresh("x"), Fresh("y"), Fresh("z"), Fresh("w")
	a1 := catAtom(t, cat, y, z, x)
	a2 := catAtom(t, cat, x, w, y)
	cs := NewConstraintSet([]Atom{a1, a2})

	actions, found := BreakCycles(cs, cat)
	if !found {
		t.Fatalf("expected a cycle in %s", cs)
	}
	if len(actions) != 2 {
		t.Fatalf("expected one rewrite per cycle edge, got %d: %v", len(actions), actions)
	}
	for _, act := range actions {
		rep, ok := act.(ReplaceAtom)
		if !ok {
			t.Fatalf("expected ReplaceAtom actions, got %T", act)
		}
		if !rep.Old.Equal(a1) && !rep.Old.Equal(a2) {
			t.Fatalf("rewrite targets unknown atom %s", rep.Old)
		}
		// Each rewrite asserts the companion empty and equates result
		// with the on-cycle part.
		if len(rep.New) != 2 {
			t.Fatalf("expected emptiness + equality, got %v", rep.New)
		}
		for _, na := range rep.New {
			if na.Pred() != cat.StrEq {
				t.Fatalf("rewrite must produce equalities, got %s", na)
			}
		}
	}
}

func TestBreakCyclesEmptyLiteralCompanion(t *testing.T) {
	th := newTestTheory(t, DefaultConfig())
	cat := th.Catalogue()

	// x = y ++ "" and y = x ++ "": companions are already empty, so
	// each rewrite is just the equality result = part.
	x, y := Fresh("x"), Fresh("y")
	cs := NewConstraintSet([]Atom{
		catAtom(t, cat, y, EmptyWord(), x),
		catAtom(t, cat, x, EmptyWord(), y),
	})

	actions, found := BreakCycles(cs, cat)
	if !found {
		t.Fatalf("expected a cycle in %s", cs)
	}
	for _, act := range actions {
		rep, ok := act.(ReplaceAtom)
		if !ok {
			t.Fatalf("expected ReplaceAtom actions, got %T", act)
		}
		if len(rep.New) != 1 {
			t.Fatalf("empty-literal companion needs no emptiness atom, got %v", rep.New)
		}
	}
}

func TestBreakCyclesNonEmptyLiteralContradiction(t *testing.T) {
	th := newTestTheory(t, DefaultConfig())
	cat := th.Catalogue()

	// x = y ++ "a" and y = x ++ "b": the cycle forces |"a"|+|"b"| = 0.
	x, y := Fresh("x"), Fresh("y")
	cs := NewConstraintSet([]Atom{
		catAtom(t, cat, y, WordFromString("a"), x),
		catAtom(t, cat, x, WordFromString("b"), y),
	})

	actions, found := BreakCycles(cs, cat)
	if !found {
		t.Fatalf("expected a cycle in %s", cs)
	}
	if len(actions) != 1 {
		t.Fatalf("expected a single contradiction, got %v", actions)
	}
	if _, ok := actions[0].(AssertContradiction); !ok {
		t.Fatalf("expected AssertContradiction, got %T", actions[0])
	}
}

func TestBreakCyclesConsCycleContradiction(t *testing.T) {
	th := newTestTheory(t, DefaultConfig())
	cat := th.Catalogue()
	consPred := cat.PredicateOf(cat.Cons)

	// y = cons(c, x) and x = cons(d, y): each cons strictly grows the
	// word, so the cycle is unsatisfiable outright.
	x, y := Fresh("x"), Fresh("y")
	cs := NewConstraintSet([]Atom{
		MustAtom(consPred, NewIntLit('a'), x, y),
		MustAtom(consPred, NewIntLit('b'), y, x),
	})

	actions, found := BreakCycles(cs, cat)
	if !found {
		t.Fatalf("expected a cycle in %s", cs)
	}
	if len(actions) != 1 {
		t.Fatalf("expected a single contradiction, got %v", actions)
	}
	if _, ok := actions[0].(AssertContradiction); !ok {
		t.Fatalf("expected AssertContradiction, got %T", actions[0])
	}
}

func TestBreakCyclesSelfLoop(t *testing.T) {
	th := newTestTheory(t, DefaultConfig())
	cat := th.Catalogue()

	// x = x ++ y: y must be empty; no residual equality since the
	// result already is the on-cycle part.
	x, y := Fresh("x"), Fresh("y")
	a := catAtom(t, cat, x, y, x)
	cs := NewConstraintSet([]Atom{a})

	actions, found := BreakCycles(cs, cat)
	if !found {
		t.Fatalf("expected a self-loop cycle in %s", cs)
	}
	if len(actions) != 1 {
		t.Fatalf("expected one rewrite, got %v", actions)
	}
	rep, ok := actions[0].(ReplaceAtom)
	if !ok {
		t.Fatalf("expected ReplaceAtom, got %T", actions[0])
	}
	if !rep.Old.Equal(a) {
		t.Fatalf("rewrite targets %s, want %s", rep.Old, a)
	}
	if len(rep.New) != 1 {
		t.Fatalf("self-loop rewrite should only assert the companion empty, got %v", rep.New)
	}
	want := MustAtom(cat.StrEq, y, EmptyWord())
	if !rep.New[0].Equal(want) {
		t.Fatalf("rewrite produced %s, want %s", rep.New[0], want)
	}
}
