package strtheory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The full stack: session, goal handler, reference searcher, decision
// cache, model translation.

func TestEndToEndConcatLengthGoal(t *testing.T) {
	th := newTestTheory(t, DefaultConfig())
	cat := th.Catalogue()
	session := NewSession(th)
	h := NewGoalHandler(session, NewBasicSearcher(th.Config()))

	// x = "ab" ++ y, |x| = 5.
	y := Fresh("y")
	x := Fresh("x")
	cs := NewConstraintSet([]Atom{
		catAtom(t, cat, WordFromString("ab"), y, x),
		lenAtom(t, cat, x, NewIntLit(5)),
	})

	actions, err := h.HandleGoal(context.Background(), StateFinal, cs)
	require.NoError(t, err)
	assert.Empty(t, actions, "the goal is satisfiable")
	assert.False(t, session.Incomplete())

	eqs, contributed, err := h.ExtractModel(cs, NewSetOrdering(x, y), LiteralBuilder{})
	require.NoError(t, err)
	require.True(t, contributed)
	require.Len(t, eqs, 2)

	// Ascending variable id: y was created first.
	assert.True(t, eqs[0].Lhs.Equal(y))
	assert.True(t, eqs[0].Rhs.Equal(NewWord([]int{0, 0, 0})))
	assert.True(t, eqs[1].Lhs.Equal(x))
	assert.True(t, eqs[1].Rhs.Equal(NewWord([]int{'a', 'b', 0, 0, 0})))
	for _, eq := range eqs {
		_, isWord := eq.Rhs.(*Word)
		assert.True(t, isWord, "word-assigned variables must yield word equalities, not lengths")
	}
}

func TestEndToEndUnsatisfiableGoal(t *testing.T) {
	th := newTestTheory(t, DefaultConfig())
	cat := th.Catalogue()
	h := NewGoalHandler(NewSession(th), NewBasicSearcher(th.Config()))

	// |x| = 3 while x = "ab".
	x := Fresh("x")
	cs := NewConstraintSet([]Atom{
		eqAtom(t, cat, x, WordFromString("ab")),
		lenAtom(t, cat, x, NewIntLit(3)),
	})

	actions, err := h.HandleGoal(context.Background(), StateFinal, cs)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.IsType(t, AssertContradiction{}, actions[0])

	eqs, contributed, err := h.ExtractModel(cs, nil, LiteralBuilder{})
	require.NoError(t, err)
	assert.False(t, contributed)
	assert.Nil(t, eqs)
}

func TestEndToEndLengthOffRaisesIncompleteness(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Length = LengthOff
	th := newTestTheory(t, cfg)
	cat := th.Catalogue()
	session := NewSession(th)
	h := NewGoalHandler(session, NewBasicSearcher(cfg))

	y := Fresh("y")
	x := Fresh("x")
	cs := NewConstraintSet([]Atom{
		catAtom(t, cat, WordFromString("ab"), y, x),
		lenAtom(t, cat, x, NewIntLit(5)),
	})

	_, err := h.HandleGoal(context.Background(), StateFinal, cs)
	require.NoError(t, err)
	assert.True(t, session.Incomplete(),
		"length atoms under LengthOff must downgrade the completeness claim")
}

func TestEndToEndCyclicGoalRewrittenThenDecided(t *testing.T) {
	th := newTestTheory(t, DefaultConfig())
	cat := th.Catalogue()
	h := NewGoalHandler(NewSession(th), NewBasicSearcher(th.Config()))

	// x = y ++ z, y = x ++ w: first the cycle is dissolved, then the
	// host would re-enter with the rewritten set.
	x, y, z, w := Fresh("x"), Fresh("y"), Fresh("z"), Fresh("w")
	cyclic := NewConstraintSet([]Atom{
		catAtom(t, cat, y, z, x),
		catAtom(t, cat, x, w, y),
	})
	actions, err := h.HandleGoal(context.Background(), StateFinal, cyclic)
	require.NoError(t, err)
	require.NotEmpty(t, actions)

	// Apply the rewrites by hand and decide the corrected set.
	rewritten := []Atom{}
	for _, act := range actions {
		rep, ok := act.(ReplaceAtom)
		require.True(t, ok)
		rewritten = append(rewritten, rep.New...)
	}
	corrected := NewConstraintSet(rewritten)
	actions, err = h.HandleGoal(context.Background(), StateFinal, corrected)
	require.NoError(t, err)
	assert.Empty(t, actions, "the dissolved cycle is satisfiable (all words empty)")
}
