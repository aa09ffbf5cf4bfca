// Operator registry: a two-phase builder and its frozen product.
//
// RegistryBuilder is the mutable pre-construction buffer. Extension
// functions and transducers must be registered while it is open;
// Build freezes it into an immutable Registry, after which registration
// panics — registering into a frozen registry is a programming-contract
// violation, not a solving-time condition.
//
// Transducer compilation is lazy and memoized: the full operator table,
// including every compiled transducer, is materialized exactly once, the
// first time Operators is called on the frozen registry (or eagerly at
// theory construction when the configuration asks for it). Independent
// transducers compile concurrently through a bounded batch.
package strtheory

import (
	"fmt"
	"sync"

	"github.com/gitrdm/gostrlogic/internal/automata"
	"github.com/gitrdm/gostrlogic/internal/parallel"
)

// RegistryBuilder accumulates the symbol catalogue and PreOp table
// before the theory is constructed. Not safe for concurrent use; it is
// a construction-time buffer, not shared state.
type RegistryBuilder struct {
	mu     sync.Mutex
	frozen bool

	cat      *Catalogue
	preops   map[*Predicate]*PreOp
	symbolic map[string]*SymbolicTransducer
}

// NewBuilder creates an open registry builder pre-populated with the
// predefined catalogue and its PreOps for the given alphabet size.
func NewBuilder(alphabetSize int) (*RegistryBuilder, error) {
	alphabet, err := NewAlphabet(alphabetSize)
	if err != nil {
		return nil, err
	}
	b := &RegistryBuilder{
		cat:      newCatalogue(alphabet),
		preops:   make(map[*Predicate]*PreOp),
		symbolic: make(map[string]*SymbolicTransducer),
	}
	b.seedCorePreOps()
	return b, nil
}

// seedCorePreOps associates every predefined predicate with its
// automata-level operation.
func (b *RegistryBuilder) seedCorePreOps() {
	c := b.cat
	fun := func(f *Function, kind OpKind) *PreOp {
		return &PreOp{kind: kind, nArgs: f.Arity(), hasResult: true}
	}
	b.preops[c.PredicateOf(c.Empty)] = fun(c.Empty, OpEmpty)
	b.preops[c.PredicateOf(c.Cons)] = fun(c.Cons, OpCons)
	b.preops[c.PredicateOf(c.Cat)] = fun(c.Cat, OpConcat)
	b.preops[c.PredicateOf(c.Len)] = fun(c.Len, OpLength)
	b.preops[c.PredicateOf(c.Replace)] = fun(c.Replace, OpReplace)
	b.preops[c.PredicateOf(c.ReplaceAll)] = fun(c.ReplaceAll, OpReplaceAll)

	regex := func(f *Function, build RegexBuildFunc) {
		p := c.PredicateOf(f)
		b.preops[p] = &PreOp{kind: OpRegexBuild, nArgs: f.Arity(), hasResult: true, buildRegex: build}
	}
	regex(c.ToRE, func(args []Term) (*automata.Regex, error) {
		w, ok := args[0].(*Word)
		if !ok {
			return nil, fmt.Errorf("str.to_re: argument must be a literal word, got %s", args[0])
		}
		return automata.Literal(w.Chars()), nil
	})
	regex(c.ReNone, func([]Term) (*automata.Regex, error) { return automata.None(), nil })
	regex(c.ReEps, func([]Term) (*automata.Regex, error) { return automata.Eps(), nil })
	regex(c.ReAllChar, func([]Term) (*automata.Regex, error) { return automata.AnyChar(), nil })
	regex(c.ReRange, func(args []Term) (*automata.Regex, error) {
		lo, okLo := args[0].(*IntLit)
		hi, okHi := args[1].(*IntLit)
		if !okLo || !okHi {
			return nil, fmt.Errorf("re.range: bounds must be character literals")
		}
		return automata.Range(lo.Value(), hi.Value()), nil
	})
	binRegex := func(name string, combine func(a, b *automata.Regex) *automata.Regex) RegexBuildFunc {
		return func(args []Term) (*automata.Regex, error) {
			ra, okA := args[0].(*RegexLit)
			rb, okB := args[1].(*RegexLit)
			if !okA || !okB {
				return nil, fmt.Errorf("%s: arguments must be ground regex values", name)
			}
			return combine(ra.Regex(), rb.Regex()), nil
		}
	}
	regex(c.ReCat, binRegex("re.++", func(a, b *automata.Regex) *automata.Regex { return automata.Cat(a, b) }))
	regex(c.ReUnion, binRegex("re.union", func(a, b *automata.Regex) *automata.Regex { return automata.Union(a, b) }))
	regex(c.ReStar, func(args []Term) (*automata.Regex, error) {
		r, ok := args[0].(*RegexLit)
		if !ok {
			return nil, fmt.Errorf("re.*: argument must be a ground regex value")
		}
		return automata.Star(r.Regex()), nil
	})

	b.preops[c.StrEq] = &PreOp{kind: OpEquality, nArgs: 2}
	b.preops[c.InRE] = &PreOp{kind: OpMembership, nArgs: 2}
}

// ensureOpen panics when the builder has already been frozen.
func (b *RegistryBuilder) ensureOpen(op string) {
	if b.frozen {
		panic(fmt.Sprintf("strtheory: %s after the registry was frozen", op))
	}
}

// AddFunction registers a user extension function with a concrete
// word-level evaluator (for example, string reverse). The function's
// relationally-encoded predicate joins the catalogue. Panics if the
// registry is already frozen.
func (b *RegistryBuilder) AddFunction(name string, argSorts []Sort, res Sort, eval WordFunc) (*Function, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureOpen("AddFunction")
	if eval == nil {
		return nil, fmt.Errorf("strtheory: extension function %q needs a concrete evaluator", name)
	}
	if _, exists := b.cat.Lookup(name); exists {
		return nil, fmt.Errorf("strtheory: symbol %q already declared", name)
	}
	f := b.cat.addFunction(name, argSorts, res, KindExtra)
	b.preops[b.cat.PredicateOf(f)] = &PreOp{
		kind:      OpApply,
		nArgs:     f.Arity(),
		hasResult: true,
		eval:      eval,
	}
	return f, nil
}

// AddTransducer registers a named transducer predicate: a binary
// relation over two strings backed by the symbolic transducer, compiled
// lazily when operators materialize. Panics if the registry is already
// frozen.
func (b *RegistryBuilder) AddTransducer(name string, sym *SymbolicTransducer) (*Predicate, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureOpen("AddTransducer")
	if sym == nil {
		return nil, fmt.Errorf("strtheory: transducer %q needs a symbolic description", name)
	}
	if _, exists := b.cat.Lookup(name); exists {
		return nil, fmt.Errorf("strtheory: symbol %q already declared", name)
	}
	p := b.cat.addRelation(name, []Sort{SortString, SortString}, KindTransducer)
	b.preops[p] = &PreOp{kind: OpTransduce, nArgs: 2, transName: name}
	b.symbolic[name] = sym
	return p, nil
}

// Build freezes the builder and returns the immutable registry. The
// builder must not be used afterward; further registration panics.
// Transducers are not compiled here — that happens exactly once on the
// first Operators call.
func (b *RegistryBuilder) Build(compiler TransducerCompiler) *Registry {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureOpen("Build")
	b.frozen = true
	if compiler == nil {
		compiler = RangeCompiler{}
	}
	return &Registry{
		cat:      b.cat,
		preops:   b.preops,
		symbolic: b.symbolic,
		compiler: compiler,
	}
}

// Registry is the frozen operator registry: the complete, immutable
// association of catalogue predicates with their PreOps. Safe to share
// across concurrent proof branches.
type Registry struct {
	cat      *Catalogue
	preops   map[*Predicate]*PreOp
	symbolic map[string]*SymbolicTransducer
	compiler TransducerCompiler

	once     sync.Once
	ops      map[*Predicate]*PreOp
	buildErr error
}

// Catalogue returns the symbol catalogue.
func (r *Registry) Catalogue() *Catalogue { return r.cat }

// FunctionOf returns the originating function of a predicate, if any.
func (r *Registry) FunctionOf(p *Predicate) (*Function, bool) {
	return r.cat.FunctionOf(p)
}

// Operators materializes and returns the full operator table. The first
// call compiles every registered transducer (concurrently, each at most
// once); subsequent calls return the memoized table. A compilation
// failure is a construction-time error and is returned on every call —
// never a silent omission.
func (r *Registry) Operators() (map[*Predicate]*PreOp, error) {
	r.once.Do(func() {
		compiled := make(map[string]*automata.Transducer, len(r.symbolic))
		var mu sync.Mutex
		batch := parallel.NewBatch(0)
		for name, sym := range r.symbolic {
			name, sym := name, sym
			batch.Go(func() error {
				t, err := r.compiler.Compile(name, sym, r.cat.Alphabet())
				if err != nil {
					return err
				}
				mu.Lock()
				compiled[name] = t
				mu.Unlock()
				return nil
			})
		}
		if err := batch.Wait(); err != nil {
			r.buildErr = err
			return
		}
		ops := make(map[*Predicate]*PreOp, len(r.preops))
		for p, op := range r.preops {
			if op.kind == OpTransduce {
				ops[p] = op.withTransducer(compiled[op.transName])
			} else {
				ops[p] = op
			}
		}
		r.ops = ops
	})
	return r.ops, r.buildErr
}

// PreOp returns the PreOp of one predicate, materializing the operator
// table if necessary. Every catalogue predicate has exactly one PreOp.
func (r *Registry) PreOp(p *Predicate) (*PreOp, error) {
	ops, err := r.Operators()
	if err != nil {
		return nil, err
	}
	op, ok := ops[p]
	if !ok {
		return nil, fmt.Errorf("strtheory: predicate %s is not in the registry", p)
	}
	return op, nil
}
