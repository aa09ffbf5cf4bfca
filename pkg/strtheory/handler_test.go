package strtheory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleGoalNonFinalTakesNoAction(t *testing.T) {
	th := newTestTheory(t, DefaultConfig())
	searcher := &countingSearcher{model: NewModel()}
	h := NewGoalHandler(NewSession(th), searcher)

	cs := NewConstraintSet([]Atom{
		lenAtom(t, th.Catalogue(), Fresh("x"), NewIntLit(1)),
	})
	actions, err := h.HandleGoal(context.Background(), StateNonFinal, cs)
	require.NoError(t, err)
	assert.Nil(t, actions)
	assert.Equal(t, int64(0), searcher.count(), "non-final states must not trigger search")
}

func TestDecideSatisfiableAcceptsAndCaches(t *testing.T) {
	th := newTestTheory(t, DefaultConfig())
	searcher := &countingSearcher{model: NewModel()}
	h := NewGoalHandler(NewSession(th), searcher)

	cs := NewConstraintSet([]Atom{
		lenAtom(t, th.Catalogue(), Fresh("x"), NewIntLit(1)),
	})
	for i := 0; i < 3; i++ {
		actions, err := h.HandleGoal(context.Background(), StateFinal, cs)
		require.NoError(t, err)
		assert.Empty(t, actions, "a satisfiable goal needs no corrective action")
	}
	assert.Equal(t, int64(1), searcher.count(), "repeated decisions of one snapshot must search once")
}

func TestDecideNoModelAssertsContradiction(t *testing.T) {
	th := newTestTheory(t, DefaultConfig())
	searcher := &countingSearcher{err: ErrNoModel}
	h := NewGoalHandler(NewSession(th), searcher)

	cs := NewConstraintSet([]Atom{
		lenAtom(t, th.Catalogue(), Fresh("x"), NewIntLit(1)),
	})
	for i := 0; i < 2; i++ {
		actions, err := h.Decide(context.Background(), cs)
		require.NoError(t, err)
		require.Len(t, actions, 1)
		assert.IsType(t, AssertContradiction{}, actions[0])
	}
	assert.Equal(t, int64(1), searcher.count(), "the no-model outcome must be cached too")
}

func TestDecideInternalSearchErrorSurfaces(t *testing.T) {
	th := newTestTheory(t, DefaultConfig())
	boom := errors.New("solver fault")
	searcher := &countingSearcher{err: boom}
	h := NewGoalHandler(NewSession(th), searcher)

	cs := NewConstraintSet([]Atom{
		lenAtom(t, th.Catalogue(), Fresh("x"), NewIntLit(1)),
	})
	_, err := h.Decide(context.Background(), cs)
	require.ErrorIs(t, err, boom, "internal failures must surface, never become contradictions")

	// Errors are not cached: the next decision retries the search.
	_, err = h.Decide(context.Background(), cs)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, int64(2), searcher.count())
}

func TestDecideSearchIncompleteSurfaces(t *testing.T) {
	th := newTestTheory(t, DefaultConfig())
	searcher := &countingSearcher{err: ErrSearchIncomplete}
	h := NewGoalHandler(NewSession(th), searcher)

	cs := NewConstraintSet([]Atom{
		lenAtom(t, th.Catalogue(), Fresh("x"), NewIntLit(1)),
	})
	actions, err := h.Decide(context.Background(), cs)
	require.ErrorIs(t, err, ErrSearchIncomplete)
	assert.Nil(t, actions, "an incomplete search must not be mistaken for unsatisfiability")
}

func TestDecideCycleCheckPrecedesSearchAndCache(t *testing.T) {
	th := newTestTheory(t, DefaultConfig())
	cat := th.Catalogue()
	searcher := &countingSearcher{model: NewModel()}
	h := NewGoalHandler(NewSession(th), searcher)

	x, y := Fresh("x"), Fresh("y")
	cyclic := NewConstraintSet([]Atom{
		catAtom(t, cat, y, Fresh("z"), x),
		catAtom(t, cat, x, Fresh("w"), y),
	})

	actions, err := h.Decide(context.Background(), cyclic)
	require.NoError(t, err)
	require.NotEmpty(t, actions)
	for _, a := range actions {
		assert.IsType(t, ReplaceAtom{}, a)
	}
	assert.Equal(t, int64(0), searcher.count(), "cycle breaking must short-circuit the search")
	assert.Equal(t, 0, h.cache.Len(), "cycle breaking must not populate the decision cache")
}

func TestExtractModelForeignSetContributesNothing(t *testing.T) {
	th := newTestTheory(t, DefaultConfig())
	h := NewGoalHandler(NewSession(th), &countingSearcher{model: NewModel()})

	foreign := &Predicate{name: "arith.lt", args: []Sort{SortInt, SortInt}}
	cs := NewConstraintSet([]Atom{
		MustAtom(foreign, NewIntLit(0), NewIntLit(1)),
	})
	eqs, contributed, err := h.ExtractModel(cs, nil, LiteralBuilder{})
	require.NoError(t, err)
	assert.False(t, contributed)
	assert.Nil(t, eqs)
}

func TestExtractModelUndecidedSetIsAnError(t *testing.T) {
	th := newTestTheory(t, DefaultConfig())
	h := NewGoalHandler(NewSession(th), &countingSearcher{model: NewModel()})

	cs := NewConstraintSet([]Atom{
		lenAtom(t, th.Catalogue(), Fresh("x"), NewIntLit(1)),
	})
	_, _, err := h.ExtractModel(cs, nil, LiteralBuilder{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undecided")
}

func TestExtractModelAgreesWithDecision(t *testing.T) {
	th := newTestTheory(t, DefaultConfig())
	cat := th.Catalogue()

	x := Fresh("x")
	model := NewModel()
	model.SetWord(x, []int{'a', 'b'})
	searcher := &countingSearcher{model: model}
	h := NewGoalHandler(NewSession(th), searcher)

	cs := NewConstraintSet([]Atom{lenAtom(t, cat, x, NewIntLit(2))})
	actions, err := h.Decide(context.Background(), cs)
	require.NoError(t, err)
	require.Empty(t, actions)

	eqs, contributed, err := h.ExtractModel(cs, NewSetOrdering(x), LiteralBuilder{})
	require.NoError(t, err)
	require.True(t, contributed)
	require.Len(t, eqs, 1)
	assert.True(t, eqs[0].Lhs.Equal(x))
	assert.True(t, eqs[0].Rhs.Equal(WordFromString("ab")))
	assert.Equal(t, int64(1), searcher.count(), "extraction must reuse the cached outcome")
}

func TestExtractModelUnsatisfiableContributesNothing(t *testing.T) {
	th := newTestTheory(t, DefaultConfig())
	searcher := &countingSearcher{err: ErrNoModel}
	h := NewGoalHandler(NewSession(th), searcher)

	cs := NewConstraintSet([]Atom{
		lenAtom(t, th.Catalogue(), Fresh("x"), NewIntLit(1)),
	})
	_, err := h.Decide(context.Background(), cs)
	require.NoError(t, err)

	eqs, contributed, err := h.ExtractModel(cs, nil, LiteralBuilder{})
	require.NoError(t, err)
	assert.False(t, contributed)
	assert.Nil(t, eqs)
}
