package strtheory

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/gitrdm/gostrlogic/internal/automata"
)

// newTestTheory builds a byte-alphabet theory with no extensions.
func newTestTheory(t *testing.T, cfg Config) *Theory {
	t.Helper()
	b, err := NewBuilder(256)
	if err != nil {
		t.Fatalf("NewBuilder error: %v", err)
	}
	th, err := NewTheory(cfg, b.Build(nil))
	if err != nil {
		t.Fatalf("NewTheory error: %v", err)
	}
	return th
}

// catAtom builds u ++ v = r.
func catAtom(t *testing.T, cat *Catalogue, u, v, r Term) Atom {
	t.Helper()
	a, err := NewAtom(cat.PredicateOf(cat.Cat), u, v, r)
	if err != nil {
		t.Fatalf("cat atom error: %v", err)
	}
	return a
}

// lenAtom builds len(s) = n.
func lenAtom(t *testing.T, cat *Catalogue, s, n Term) Atom {
	t.Helper()
	a, err := NewAtom(cat.PredicateOf(cat.Len), s, n)
	if err != nil {
		t.Fatalf("len atom error: %v", err)
	}
	return a
}

// eqAtom builds a = b.
func eqAtom(t *testing.T, cat *Catalogue, a, b Term) Atom {
	t.Helper()
	at, err := NewAtom(cat.StrEq, a, b)
	if err != nil {
		t.Fatalf("eq atom error: %v", err)
	}
	return at
}

// countingSearcher is a ModelSearcher test double recording invocation
// counts and returning a fixed result.
type countingSearcher struct {
	calls int64
	model *Model
	err   error
}

func (c *countingSearcher) Search(ctx context.Context, cs *ConstraintSet, reg *Registry) (*Model, error) {
	atomic.AddInt64(&c.calls, 1)
	if c.err != nil {
		return nil, c.err
	}
	return c.model, nil
}

func (c *countingSearcher) count() int64 { return atomic.LoadInt64(&c.calls) }

// countingCompiler wraps RangeCompiler to count compilations per name.
type countingCompiler struct {
	counts map[string]*int64
	inner  RangeCompiler
}

func newCountingCompiler() *countingCompiler {
	return &countingCompiler{counts: map[string]*int64{}}
}

func (c *countingCompiler) register(name string) {
	var n int64
	c.counts[name] = &n
}

func (c *countingCompiler) Compile(name string, sym *SymbolicTransducer, alphabet Alphabet) (*automata.Transducer, error) {
	if n, ok := c.counts[name]; ok {
		atomic.AddInt64(n, 1)
	}
	return c.inner.Compile(name, sym, alphabet)
}

// identityTransducer copies every character of the byte alphabet.
func identityTransducer() *SymbolicTransducer {
	return &SymbolicTransducer{
		NumStates: 1,
		Start:     1,
		Accept:    []int{1},
		Rules: []SymbolicRule{
			{From: 1, Guard: GuardAny(), To: 1, Output: OutputCopy()},
		},
	}
}
